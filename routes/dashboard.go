package routes

import (
	"swapstock-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupDashboardRoutes registers the dashboard reporting route.
func SetupDashboardRoutes(app *fiber.App, dashboardController *controllers.DashboardController) {
	api := app.Group("/api/dashboard")

	// Full dashboard: collections plus aggregate stock figures
	api.Get("/", dashboardController.GetDashboard)
}
