package routes

import (
	"swapstock-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupReturnRoutes registers the returns workflow routes.
func SetupReturnRoutes(app *fiber.App, returnController *controllers.ReturnController) {
	returns := app.Group("/api/returns")

	returns.Get("/", returnController.GetReturns)                   // GET /api/returns - newest first
	returns.Post("/", returnController.CreateReturn)                // POST /api/returns - log a pending return
	returns.Put("/:id", returnController.UpdateReturn)              // PUT /api/returns/:id - full edit
	returns.Put("/:id/status", returnController.UpdateReturnStatus) // PUT /api/returns/:id/status - status+notes only
	returns.Post("/:id/process", returnController.ProcessReturn)    // POST /api/returns/:id/process - stamp + restock
	returns.Delete("/:id", returnController.DeleteReturn)           // DELETE /api/returns/:id
}
