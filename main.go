package main

import (
	"log"
	"os"
	"time"

	"swapstock-backend/controllers"
	"swapstock-backend/models"
	"swapstock-backend/routes"
	"swapstock-backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	// Database initialization
	db, err := models.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Schema setup is the one fatal failure mode
	if err := db.AutoMigrate(&models.Item{}, &models.Allocation{}, &models.Return{}); err != nil {
		log.Fatal("Failed to migrate database schema:", err)
	}

	inventory := services.NewInventoryService(db)

	// Seed sample records, then reconcile kit counters against allocations
	initSampleData(db, inventory)
	if err := inventory.ReconcileKits(); err != nil {
		log.Printf("Kit reconciliation failed: %v", err)
	}

	// Fiber application
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
				"code":    code,
			})
		},
	})

	// Middleware
	app.Use(logger.New())

	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000,http://127.0.0.1:3000"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Controllers
	dashboardController := controllers.NewDashboardController(db)
	itemController := controllers.NewItemController(db)
	allocationController := controllers.NewAllocationController(db)
	returnController := controllers.NewReturnController(db)

	// Routes
	routes.SetupDashboardRoutes(app, dashboardController)
	routes.SetupItemRoutes(app, itemController)
	routes.SetupAllocationRoutes(app, allocationController)
	routes.SetupReturnRoutes(app, returnController)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"message":   "Swapstock Backend is running",
			"timestamp": time.Now().Unix(),
		})
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

// initSampleData seeds the sample items, allocations and returns. Every row
// is insert-if-absent, so re-running initialization leaves an already seeded
// database unchanged.
func initSampleData(db *gorm.DB, inventory *services.InventoryService) {
	// Conversion kit stock overview
	sampleItems := []models.Item{
		{Serial: "15092501", ItemName: "Electrical component box", ItemType: models.ItemTypeConversionKit, Admin: "Inventory", CreatedAt: "45915", UnitsImported: 125, UnitsInstalled: 6, UnitsAvailable: 119},
		{Serial: "15092502", ItemName: "Shaft cups", ItemType: models.ItemTypeConversionKit, Admin: "Inventory", CreatedAt: "45915", UnitsImported: 130, UnitsInstalled: 6, UnitsAvailable: 124},
		{Serial: "15092503", ItemName: "Motor", ItemType: models.ItemTypeConversionKit, Admin: "Inventory", CreatedAt: "45915", UnitsImported: 125, UnitsInstalled: 6, UnitsAvailable: 119},
		{Serial: "15092504", ItemName: "Controller", ItemType: models.ItemTypeConversionKit, Admin: "Inventory", CreatedAt: "45915", UnitsImported: 120, UnitsInstalled: 6, UnitsAvailable: 114},
		{Serial: "15092505", ItemName: "Gear", ItemType: models.ItemTypeConversionKit, Admin: "Inventory", CreatedAt: "45915", UnitsImported: 125, UnitsInstalled: 6, UnitsAvailable: 119},
		{Serial: "15092506", ItemName: "Engine mount (front)", ItemType: models.ItemTypeConversionKit, Admin: "Inventory", CreatedAt: "45915"},
		{Serial: "15092507", ItemName: "Engine mount fittings (back)", ItemType: models.ItemTypeConversionKit, Admin: "Inventory", CreatedAt: "45915"},
		{Serial: "15092508", ItemName: "Engine mount fitting (sides)", ItemType: models.ItemTypeConversionKit, Admin: "Inventory", CreatedAt: "45915"},

		// Spare parts with stock data
		{Serial: "SP001", ItemName: "Motor", ItemType: models.ItemTypeSparePart, Admin: "Inventory", CreatedAt: "2024-01-01", UnitsImported: 50, UnitsInstalled: 12, UnitsAvailable: 38},
		{Serial: "SP002", ItemName: "Battery", ItemType: models.ItemTypeSparePart, Admin: "Inventory", CreatedAt: "2024-01-01", UnitsImported: 75, UnitsInstalled: 20, UnitsAvailable: 55},
		{Serial: "SP003", ItemName: "Controller", ItemType: models.ItemTypeSparePart, Admin: "Inventory", CreatedAt: "2024-01-01", UnitsImported: 40, UnitsInstalled: 8, UnitsAvailable: 32},
		{Serial: "SP004", ItemName: "Throttle", ItemType: models.ItemTypeSparePart, Admin: "Inventory", CreatedAt: "2024-01-01", UnitsImported: 60, UnitsInstalled: 15, UnitsAvailable: 45},

		// Spare-part options without stock data yet
		{Serial: "SP005", ItemName: "Charger", ItemType: models.ItemTypeSparePart},
		{Serial: "SP006", ItemName: "Screen", ItemType: models.ItemTypeSparePart},
		{Serial: "SP007", ItemName: "Gear", ItemType: models.ItemTypeSparePart},
		{Serial: "SP008", ItemName: "PSU", ItemType: models.ItemTypeSparePart},
		{Serial: "SP009", ItemName: "Relays", ItemType: models.ItemTypeSparePart},
		{Serial: "SP010", ItemName: "Breakers", ItemType: models.ItemTypeSparePart},
		{Serial: "SP011", ItemName: "Wiper switch", ItemType: models.ItemTypeSparePart},
		{Serial: "SP012", ItemName: "Battery switch", ItemType: models.ItemTypeSparePart},
		{Serial: "SP013", ItemName: "Ignition and key", ItemType: models.ItemTypeSparePart},
		{Serial: "SP014", ItemName: "Connecting wires", ItemType: models.ItemTypeSparePart},
		{Serial: "SP015", ItemName: "Wire holder", ItemType: models.ItemTypeSparePart},
	}

	for _, item := range sampleItems {
		if err := inventory.RegisterItem(&item); err != nil && err != services.ErrDuplicateSerial {
			log.Printf("Failed to seed item '%s': %v", item.Serial, err)
		}
	}

	// Kit allocations; the old_item_serial column historically carries the
	// bike plate number for these rows.
	sampleAllocations := []models.Allocation{
		{Date: "2024-01-15", NewItemSerial: "15092501", OldItemSerial: "APP 181 QY", RiderName: "Adeleke Sikiru", RiderNumber: "08012345678", Station: "Lagos Island"},
		{Date: "2024-01-16", NewItemSerial: "15092502", OldItemSerial: "AGL 874 QD", RiderName: "Ayomide Olorunlana", RiderNumber: "08023456789", Station: "Victoria Island"},
		{Date: "2024-01-17", NewItemSerial: "15092503", OldItemSerial: "KSF 199 QM", RiderName: "Adekoya Ebenezer", RiderNumber: "08034567890", Station: "Ikeja"},
		{Date: "2024-01-18", NewItemSerial: "15092504", OldItemSerial: "SMK 743 QL", RiderName: "Hilary Maanpar", RiderNumber: "08045678901", Station: "Surulere"},
		{Date: "2024-01-19", NewItemSerial: "15092505", OldItemSerial: "XYZ 456 AB", RiderName: "Ibrahim Musa", RiderNumber: "08056789012", Station: "Yaba"},
		{Date: "2024-01-20", NewItemSerial: "15092501", OldItemSerial: "DEF 789 CD", RiderName: "Chidi Okwu", RiderNumber: "08067890123", Station: "Apapa"},

		// Spare-part replacement records
		{Date: "2024-01-22", OldItemSerial: "SP001-OLD", NewItemSerial: "SP001", RiderName: "Ahmed Bello", RiderNumber: "08011111111", Station: "Ikeja"},
		{Date: "2024-01-23", OldItemSerial: "SP002-OLD", NewItemSerial: "SP002", RiderName: "Fatima Yusuf", RiderNumber: "08022222222", Station: "Victoria Island"},
		{Date: "2024-01-24", OldItemSerial: "SP003-OLD", NewItemSerial: "SP003", RiderName: "Emeka Okafor", RiderNumber: "08033333333", Station: "Surulere"},
	}

	for _, alloc := range sampleAllocations {
		var count int64
		db.Model(&models.Allocation{}).
			Where("date = ? AND new_item_serial = ? AND rider_name = ?", alloc.Date, alloc.NewItemSerial, alloc.RiderName).
			Count(&count)
		if count > 0 {
			continue
		}
		// Raw insert: kit counters get rebuilt by the reconciliation pass,
		// spare counters keep their seeded values.
		if err := db.Create(&alloc).Error; err != nil {
			log.Printf("Failed to seed allocation for '%s': %v", alloc.NewItemSerial, err)
		}
	}

	sampleReturns := []models.Return{
		{Date: "2024-01-25", ItemSerial: "15092501", Personnel: "John Doe", Status: models.ReturnStatusPending, Notes: "Kit returned for maintenance", ConditionRating: 5},
		{Date: "2024-01-26", ItemSerial: "SP001", Personnel: "Jane Smith", Status: models.ReturnStatusProcessed, Notes: "Motor replacement completed", ConditionRating: 5},
	}

	for _, ret := range sampleReturns {
		var count int64
		db.Model(&models.Return{}).
			Where("date = ? AND item_serial = ? AND personnel = ?", ret.Date, ret.ItemSerial, ret.Personnel).
			Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&ret).Error; err != nil {
			log.Printf("Failed to seed return for '%s': %v", ret.ItemSerial, err)
		}
	}
}
