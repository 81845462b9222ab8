package controllers

import (
	"strconv"

	"swapstock-backend/models"
	"swapstock-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AllocationController manages allocation and replacement records.
type AllocationController struct {
	DB        *gorm.DB
	inventory *services.InventoryService
}

// NewAllocationController creates a new AllocationController.
func NewAllocationController(db *gorm.DB) *AllocationController {
	return &AllocationController{DB: db, inventory: services.NewInventoryService(db)}
}

// CreateAllocation records a kit allocation and moves one unit of the target
// item from available to installed when stock allows.
func (ac *AllocationController) CreateAllocation(c *fiber.Ctx) error {
	alloc := models.Allocation{
		Date:          c.FormValue("date"),
		OldItemSerial: c.FormValue("old_item_serial"),
		NewItemSerial: c.FormValue("new_item_serial"),
		RiderNumber:   c.FormValue("rider_number"),
		RiderName:     c.FormValue("rider_name"),
		Station:       c.FormValue("station"),
	}

	if err := ac.inventory.RecordAllocation(&alloc); err != nil {
		return c.Status(500).JSON(ActionResponse{Success: false, Message: "Failed to save allocation"})
	}

	return c.JSON(ActionResponse{Success: true, Redirect: "/conversion_kits"})
}

// CreateReplacement records a spare-part replacement. It runs through the
// same allocation path, so a tracked spare part also has one unit moved to
// installed.
func (ac *AllocationController) CreateReplacement(c *fiber.Ctx) error {
	alloc := models.Allocation{
		Date:          c.FormValue("date"),
		OldItemSerial: c.FormValue("old_item_serial"),
		NewItemSerial: c.FormValue("new_item_serial"),
		RiderNumber:   c.FormValue("rider_number"),
		RiderName:     c.FormValue("rider_name"),
		ReleasedTo:    c.FormValue("released_to"),
		Link:          c.FormValue("link"),
		Station:       c.FormValue("station"),
	}

	if err := ac.inventory.RecordAllocation(&alloc); err != nil {
		return c.Status(500).JSON(ActionResponse{Success: false, Message: "Failed to save replacement"})
	}

	return c.JSON(ActionResponse{Success: true, Redirect: "/spare_parts"})
}

// UpdateAllocation overwrites the mutable fields of an allocation. Editing
// never re-runs the quantity step, even when the target serial changes.
func (ac *AllocationController) UpdateAllocation(c *fiber.Ctx) error {
	allocID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(ActionResponse{Success: false, Message: "Invalid allocation ID"})
	}

	if err := ac.DB.Model(&models.Allocation{}).Where("id = ?", allocID).Updates(map[string]interface{}{
		"date":            c.FormValue("date"),
		"old_item_serial": c.FormValue("old_item_serial"),
		"new_item_serial": c.FormValue("new_item_serial"),
		"rider_name":      c.FormValue("rider_name"),
		"rider_number":    c.FormValue("rider_number"),
		"station":         c.FormValue("station"),
	}).Error; err != nil {
		return c.Status(500).JSON(ActionResponse{Success: false, Message: "Failed to update allocation"})
	}

	return c.JSON(ActionResponse{Success: true, Redirect: "/spare_parts"})
}

// DeleteAllocation removes an allocation without rolling back the item
// quantity change it may have caused.
func (ac *AllocationController) DeleteAllocation(c *fiber.Ctx) error {
	return ac.deleteByID(c, "/conversion_kits")
}

// DeleteReplacement removes a replacement record; same semantics as
// DeleteAllocation, only the redirect differs.
func (ac *AllocationController) DeleteReplacement(c *fiber.Ctx) error {
	return ac.deleteByID(c, "/spare_parts")
}

func (ac *AllocationController) deleteByID(c *fiber.Ctx, redirect string) error {
	allocID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(ActionResponse{Success: false, Message: "Invalid allocation ID"})
	}

	if err := ac.DB.Delete(&models.Allocation{}, allocID).Error; err != nil {
		return c.Status(500).JSON(ActionResponse{Success: false, Message: "Failed to delete allocation"})
	}

	return c.JSON(ActionResponse{Success: true, Redirect: redirect})
}
