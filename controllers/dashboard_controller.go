package controllers

import (
	"math"

	"swapstock-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Items with this many units or fewer (but more than zero) count as low stock.
const lowStockThreshold = 5

// DashboardController computes the reporting figures for the dashboard view.
type DashboardController struct {
	DB *gorm.DB
}

// NewDashboardController creates a new DashboardController.
func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// DashboardResponse carries the dashboard collections and aggregate figures.
type DashboardResponse struct {
	Success             bool                `json:"success"`
	ConversionKits      []models.Item       `json:"conversion_kits"`
	SpareParts          []models.Item       `json:"spare_parts"`
	Returns             []models.Return     `json:"returns"`
	KitAllocations      []models.Allocation `json:"kit_allocations"`
	SpareReplacements   []models.Allocation `json:"spare_replacements"`
	TotalImported       int                 `json:"total_imported"`
	TotalInstalled      int                 `json:"total_installed"`
	TotalAvailable      int                 `json:"total_available"`
	TotalItems          int64               `json:"total_items"`
	ConversionKitsCount int64               `json:"conversion_kits_count"`
	SparePartsCount     int64               `json:"spare_parts_count"`
	OutOfStockCount     int64               `json:"out_of_stock_count"`
	LowStockCount       int64               `json:"low_stock_count"`
	ReturnCount         int64               `json:"return_count"`
	AllocationCount     int64               `json:"allocation_count"`
	PendingReturns      int64               `json:"pending_returns"`
	StockAvailability   float64             `json:"stock_availability"`
}

// GetDashboard assembles the full dashboard: current kit and spare rows, the
// five most recent returns/allocations/replacements and the aggregate stock
// figures. Everything is computed from current storage state on each call,
// nothing is cached.
func (dc *DashboardController) GetDashboard(c *fiber.Ctx) error {
	resp := DashboardResponse{Success: true}

	dc.DB.Where("item_type = ?", models.ItemTypeConversionKit).Find(&resp.ConversionKits)
	dc.DB.Where("item_type = ?", models.ItemTypeSparePart).Find(&resp.SpareParts)

	dc.DB.Order("date DESC").Limit(5).Find(&resp.Returns)

	// Recent allocations whose target resolves to a conversion kit.
	dc.DB.Joins("JOIN items ON items.serial = allocations.new_item_serial").
		Where("items.item_type = ?", models.ItemTypeConversionKit).
		Order("allocations.date DESC").
		Limit(5).
		Find(&resp.KitAllocations)

	// Recent replacements: spare parts or orphaned serials with an old item set.
	dc.DB.Joins("LEFT JOIN items ON items.serial = allocations.new_item_serial").
		Where("(items.item_type = ? OR items.serial IS NULL) AND allocations.old_item_serial <> ''",
			models.ItemTypeSparePart).
		Order("allocations.date DESC").
		Limit(5).
		Find(&resp.SpareReplacements)

	var totals struct {
		TotalImported  int
		TotalInstalled int
		TotalAvailable int
	}
	if err := dc.DB.Model(&models.Item{}).
		Select("COALESCE(SUM(units_imported), 0) AS total_imported, "+
			"COALESCE(SUM(units_installed), 0) AS total_installed, "+
			"COALESCE(SUM(units_available), 0) AS total_available").
		Where("item_type IN ?", models.TrackedItemTypes).
		Scan(&totals).Error; err != nil {
		return c.Status(500).JSON(ActionResponse{Success: false, Message: "Failed to compute totals"})
	}
	resp.TotalImported = totals.TotalImported
	resp.TotalInstalled = totals.TotalInstalled
	resp.TotalAvailable = totals.TotalAvailable

	dc.DB.Model(&models.Item{}).
		Where("item_type IN ? AND item_name <> ''", models.TrackedItemTypes).
		Count(&resp.TotalItems)
	dc.DB.Model(&models.Item{}).
		Where("item_type = ? AND item_name <> ''", models.ItemTypeConversionKit).
		Count(&resp.ConversionKitsCount)
	dc.DB.Model(&models.Item{}).
		Where("item_type = ? AND item_name <> ''", models.ItemTypeSparePart).
		Count(&resp.SparePartsCount)
	dc.DB.Model(&models.Item{}).
		Where("item_type IN ? AND item_name <> '' AND units_available = 0", models.TrackedItemTypes).
		Count(&resp.OutOfStockCount)
	dc.DB.Model(&models.Item{}).
		Where("item_type IN ? AND item_name <> '' AND units_available > 0 AND units_available <= ?",
			models.TrackedItemTypes, lowStockThreshold).
		Count(&resp.LowStockCount)

	dc.DB.Model(&models.Return{}).Count(&resp.ReturnCount)
	dc.DB.Model(&models.Allocation{}).Count(&resp.AllocationCount)
	dc.DB.Model(&models.Return{}).
		Where("status = ? OR status = ''", models.ReturnStatusPending).
		Count(&resp.PendingReturns)

	// Percentage of imported units still available; can exceed 100 when the
	// stored counters drifted past imported.
	if resp.TotalImported > 0 {
		pct := float64(resp.TotalAvailable) / float64(resp.TotalImported) * 100
		resp.StockAvailability = math.Round(pct*10) / 10
	}

	return c.JSON(resp)
}
