package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"

	"swapstock-backend/controllers"
	"swapstock-backend/models"
	"swapstock-backend/routes"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory test database with the inventory schema.
func setupTestDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic("Failed to connect to test database")
	}
	db.AutoMigrate(&models.Item{}, &models.Allocation{}, &models.Return{})
	return db
}

// createTestApp builds a Fiber app with every inventory route registered.
func createTestApp(db *gorm.DB) *fiber.App {
	app := fiber.New()

	routes.SetupDashboardRoutes(app, controllers.NewDashboardController(db))
	routes.SetupItemRoutes(app, controllers.NewItemController(db))
	routes.SetupAllocationRoutes(app, controllers.NewAllocationController(db))
	routes.SetupReturnRoutes(app, controllers.NewReturnController(db))

	return app
}

// formRequest builds the url-encoded request shape the web layer submits.
func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// itoa renders a record ID for use in request paths.
func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// createTestItem inserts an item row directly, bypassing registration.
func createTestItem(db *gorm.DB, serial, name, itemType string, imported, installed, available int) models.Item {
	item := models.Item{
		Serial:         serial,
		ItemName:       name,
		ItemType:       itemType,
		Admin:          "Inventory",
		CreatedAt:      "2024-01-01",
		UnitsImported:  imported,
		UnitsInstalled: installed,
		UnitsAvailable: available,
	}
	db.Create(&item)
	return item
}
