package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bundle-orders/internal/application/catalog"
)

// SystemHandler expone la composición de los kits (solo lectura).
type SystemHandler struct {
	catalog *catalog.BundleCatalog
}

// NewSystemHandler construye el handler.
func NewSystemHandler(catalog *catalog.BundleCatalog) *SystemHandler {
	return &SystemHandler{catalog: catalog}
}

// GetByID godoc
// @Summary      Obtener kit y su composición
// @Tags         systems
// @Produce      json
// @Param        id   path  int  true  "ID del kit"
// @Success      200  {object}  dto.SystemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/systems/{id} [get]
func (h *SystemHandler) GetByID(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return badRequest(c, "INVALID_ID", "id must be a positive integer")
	}
	out, err := h.catalog.Get(c.UserContext(), int64(id))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
