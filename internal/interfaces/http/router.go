package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bundle-orders/internal/application/catalog"
	"github.com/jhoicas/bundle-orders/internal/application/inventory"
	"github.com/jhoicas/bundle-orders/internal/application/order"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	PlaceOrder    *order.PlaceOrderUseCase
	Catalog       *catalog.BundleCatalog
	Replenishment *inventory.ReplenishmentUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.PlaceOrder)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)

	systems := api.Group("/systems")
	systemHandler := NewSystemHandler(deps.Catalog)
	systems.Get("/:id", systemHandler.GetByID)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.Replenishment)
	products.Get("/", productHandler.List)
	products.Post("/:id/replenish", productHandler.Replenish)

	invGroup := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Replenishment)
	invGroup.Get("/replenishment-list", inventoryHandler.GetReplenishmentList)
}
