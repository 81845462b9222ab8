package controllers

import (
	"errors"
	"strconv"
	"time"

	"swapstock-backend/models"
	"swapstock-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ItemController manages item records and the kit/spare list views.
type ItemController struct {
	DB        *gorm.DB
	inventory *services.InventoryService
}

// NewItemController creates a new ItemController.
func NewItemController(db *gorm.DB) *ItemController {
	return &ItemController{DB: db, inventory: services.NewInventoryService(db)}
}

// ConversionKitsResponse is the conversion-kit list view.
type ConversionKitsResponse struct {
	Success     bool                `json:"success"`
	Kits        []models.Item       `json:"kits"`
	Allocations []models.Allocation `json:"allocations"`
}

// SparePartsResponse is the spare-part list view.
type SparePartsResponse struct {
	Success      bool                `json:"success"`
	Parts        []models.Item       `json:"parts"`
	Replacements []models.Allocation `json:"replacements"`
}

// GetConversionKits returns all conversion kits with their allocations.
func (ic *ItemController) GetConversionKits(c *fiber.Ctx) error {
	var kits []models.Item
	if err := ic.DB.Where("item_type = ?", models.ItemTypeConversionKit).Order("serial").Find(&kits).Error; err != nil {
		return c.Status(500).JSON(ActionResponse{Success: false, Message: "Failed to load conversion kits"})
	}

	// Only allocations whose target serial resolves to a conversion kit.
	var allocations []models.Allocation
	if err := ic.DB.Joins("JOIN items ON items.serial = allocations.new_item_serial").
		Where("items.item_type = ?", models.ItemTypeConversionKit).
		Order("allocations.date DESC").
		Find(&allocations).Error; err != nil {
		return c.Status(500).JSON(ActionResponse{Success: false, Message: "Failed to load allocations"})
	}

	return c.JSON(ConversionKitsResponse{Success: true, Kits: kits, Allocations: allocations})
}

// GetSpareParts returns all spare parts with their replacement records.
func (ic *ItemController) GetSpareParts(c *fiber.Ctx) error {
	var parts []models.Item
	if err := ic.DB.Where("item_type = ?", models.ItemTypeSparePart).Find(&parts).Error; err != nil {
		return c.Status(500).JSON(ActionResponse{Success: false, Message: "Failed to load spare parts"})
	}

	var replacements []models.Allocation
	if err := ic.DB.Where("old_item_serial <> ''").Find(&replacements).Error; err != nil {
		return c.Status(500).JSON(ActionResponse{Success: false, Message: "Failed to load replacements"})
	}

	return c.JSON(SparePartsResponse{Success: true, Parts: parts, Replacements: replacements})
}

// CreateItem registers an item from submitted form fields. A duplicate
// serial is swallowed: the existing row wins and the caller still gets a
// success response.
func (ic *ItemController) CreateItem(c *fiber.Ctx) error {
	item := models.Item{
		Serial:         c.FormValue("serial"),
		ItemName:       c.FormValue("item_name"),
		ItemType:       c.FormValue("item_type"),
		Admin:          c.FormValue("admin"),
		CreatedAt:      time.Now().Format("2006-01-02"),
		UnitsImported:  formInt(c, "units_imported", 0),
		UnitsInstalled: formInt(c, "units_installed", 0),
		UnitsAvailable: formInt(c, "units_available", 0),
	}

	if err := ic.inventory.RegisterItem(&item); err != nil && !errors.Is(err, services.ErrDuplicateSerial) {
		return c.Status(500).JSON(ActionResponse{Success: false, Message: "Failed to save item"})
	}

	return c.JSON(ActionResponse{Success: true, Redirect: "/"})
}

// CreateConversionKit registers a conversion kit. A blank units_available
// defaults to units_imported, so a fresh kit starts fully in stock.
func (ic *ItemController) CreateConversionKit(c *fiber.Ctx) error {
	unitsImported := formInt(c, "units_imported", 0)
	unitsAvailable := formInt(c, "units_available", unitsImported)

	item := models.Item{
		Serial:         c.FormValue("serial"),
		ItemName:       c.FormValue("item_name"),
		ItemType:       models.ItemTypeConversionKit,
		Admin:          c.FormValue("admin"),
		CreatedAt:      time.Now().Format("2006-01-02"),
		UnitsImported:  unitsImported,
		UnitsInstalled: 0,
		UnitsAvailable: unitsAvailable,
	}

	if err := ic.inventory.RegisterItem(&item); err != nil && !errors.Is(err, services.ErrDuplicateSerial) {
		return c.Status(500).JSON(ActionResponse{Success: false, Message: "Failed to save conversion kit"})
	}

	return c.JSON(ActionResponse{Success: true, Redirect: "/conversion_kits"})
}

// UpdateItem overwrites an item. If installed+available would exceed
// imported, available is clamped to max(0, imported-installed); installed is
// never adjusted.
func (ic *ItemController) UpdateItem(c *fiber.Ctx) error {
	itemID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(ActionResponse{Success: false, Message: "Invalid item ID"})
	}

	// Stored type decides the redirect; missing items fall back to the kit view.
	itemType := models.ItemTypeConversionKit
	var existing models.Item
	if err := ic.DB.First(&existing, itemID).Error; err == nil {
		itemType = existing.ItemType
	}

	unitsImported := formInt(c, "units_imported", 0)
	unitsInstalled := formInt(c, "units_installed", 0)
	unitsAvailable := formInt(c, "units_available", 0)

	if unitsInstalled+unitsAvailable > unitsImported {
		unitsAvailable = unitsImported - unitsInstalled
		if unitsAvailable < 0 {
			unitsAvailable = 0
		}
	}

	if err := ic.DB.Model(&models.Item{}).Where("id = ?", itemID).Updates(map[string]interface{}{
		"serial":          c.FormValue("serial"),
		"item_name":       c.FormValue("item_name"),
		"item_type":       c.FormValue("item_type"),
		"admin":           c.FormValue("admin"),
		"created_at":      c.FormValue("created_at"),
		"units_imported":  unitsImported,
		"units_installed": unitsInstalled,
		"units_available": unitsAvailable,
	}).Error; err != nil {
		return c.Status(500).JSON(ActionResponse{Success: false, Message: "Failed to update item"})
	}

	return c.JSON(ActionResponse{Success: true, Redirect: redirectForItemType(itemType)})
}

// DeleteItem removes an item. Allocations and returns referencing its serial
// stay behind as orphaned soft references.
func (ic *ItemController) DeleteItem(c *fiber.Ctx) error {
	itemID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(ActionResponse{Success: false, Message: "Invalid item ID"})
	}

	itemType := models.ItemTypeConversionKit
	var existing models.Item
	if err := ic.DB.First(&existing, itemID).Error; err == nil {
		itemType = existing.ItemType
	}

	if err := ic.DB.Delete(&models.Item{}, itemID).Error; err != nil {
		return c.Status(500).JSON(ActionResponse{Success: false, Message: "Failed to delete item"})
	}

	return c.JSON(ActionResponse{Success: true, Redirect: redirectForItemType(itemType)})
}
