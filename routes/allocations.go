package routes

import (
	"swapstock-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupAllocationRoutes registers the allocation and replacement routes.
func SetupAllocationRoutes(app *fiber.App, allocationController *controllers.AllocationController) {
	api := app.Group("/api")

	allocations := api.Group("/allocations")
	allocations.Post("/", allocationController.CreateAllocation)      // POST /api/allocations - record kit allocation
	allocations.Put("/:id", allocationController.UpdateAllocation)    // PUT /api/allocations/:id - edit, no quantity recompute
	allocations.Delete("/:id", allocationController.DeleteAllocation) // DELETE /api/allocations/:id - no rollback

	replacements := api.Group("/replacements")
	replacements.Post("/", allocationController.CreateReplacement)      // POST /api/replacements - record spare-part swap
	replacements.Delete("/:id", allocationController.DeleteReplacement) // DELETE /api/replacements/:id
}
