package routes

import (
	"swapstock-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupItemRoutes registers the item lifecycle and list-view routes.
func SetupItemRoutes(app *fiber.App, itemController *controllers.ItemController) {
	api := app.Group("/api")

	// List views
	api.Get("/conversion_kits", itemController.GetConversionKits) // GET /api/conversion_kits - kits with their allocations
	api.Get("/spare_parts", itemController.GetSpareParts)         // GET /api/spare_parts - spares with replacement records

	// Registration shortcut for conversion kits (blank available defaults to imported)
	api.Post("/conversion_kits", itemController.CreateConversionKit)

	items := api.Group("/items")
	items.Post("/", itemController.CreateItem)      // POST /api/items - register any item
	items.Put("/:id", itemController.UpdateItem)    // PUT /api/items/:id - full update with availability clamp
	items.Delete("/:id", itemController.DeleteItem) // DELETE /api/items/:id - no cascade to allocations/returns
}
