package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bundle-orders/internal/application/inventory"
)

// InventoryHandler consultas de inventario.
type InventoryHandler struct {
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{replenishment: replenishment}
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Productos en o bajo el 20% de su stock inicial con la cantidad sugerida
//
//	para volver al stock inicial, del más crítico al menos crítico.
//
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "total, replenishments[]"
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}
