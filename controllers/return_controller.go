package controllers

import (
	"strconv"

	"swapstock-backend/models"
	"swapstock-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ReturnController manages return records and the pending→processed workflow.
type ReturnController struct {
	DB        *gorm.DB
	inventory *services.InventoryService
}

// NewReturnController creates a new ReturnController.
func NewReturnController(db *gorm.DB) *ReturnController {
	return &ReturnController{DB: db, inventory: services.NewInventoryService(db)}
}

// ReturnsResponse is the returns list view.
type ReturnsResponse struct {
	Success bool            `json:"success"`
	Returns []models.Return `json:"returns"`
}

// GetReturns returns all return records, newest first.
func (rc *ReturnController) GetReturns(c *fiber.Ctx) error {
	var returns []models.Return
	if err := rc.DB.Order("date DESC").Find(&returns).Error; err != nil {
		return c.Status(500).JSON(ActionResponse{Success: false, Message: "Failed to load returns"})
	}

	return c.JSON(ReturnsResponse{Success: true, Returns: returns})
}

// CreateReturn logs a return in pending state. Status and condition rating
// take their defaults when the form leaves them blank.
func (rc *ReturnController) CreateReturn(c *fiber.Ctx) error {
	ret := models.Return{
		Date:            c.FormValue("date"),
		ItemSerial:      c.FormValue("item_serial"),
		Personnel:       c.FormValue("personnel"),
		Status:          formString(c, "status", models.ReturnStatusPending),
		Notes:           c.FormValue("notes"),
		ConditionRating: formInt(c, "condition_rating", 5),
	}

	if err := rc.DB.Create(&ret).Error; err != nil {
		return c.Status(500).JSON(ActionResponse{Success: false, Message: "Failed to save return"})
	}

	return c.JSON(ActionResponse{Success: true, Redirect: "/returns"})
}

// UpdateReturn overwrites the mutable fields of a return. It never touches
// item quantities, even when the status field is edited to processed.
func (rc *ReturnController) UpdateReturn(c *fiber.Ctx) error {
	returnID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(ActionResponse{Success: false, Message: "Invalid return ID"})
	}

	if err := rc.DB.Model(&models.Return{}).Where("id = ?", returnID).Updates(map[string]interface{}{
		"date":        c.FormValue("date"),
		"item_serial": c.FormValue("item_serial"),
		"personnel":   c.FormValue("personnel"),
		"status":      c.FormValue("status"),
		"notes":       c.FormValue("notes"),
	}).Error; err != nil {
		return c.Status(500).JSON(ActionResponse{Success: false, Message: "Failed to update return"})
	}

	return c.JSON(ActionResponse{Success: true, Redirect: "/returns"})
}

// UpdateReturnStatus edits only status and notes.
func (rc *ReturnController) UpdateReturnStatus(c *fiber.Ctx) error {
	returnID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(ActionResponse{Success: false, Message: "Invalid return ID"})
	}

	if err := rc.DB.Model(&models.Return{}).Where("id = ?", returnID).Updates(map[string]interface{}{
		"status": c.FormValue("status"),
		"notes":  c.FormValue("notes"),
	}).Error; err != nil {
		return c.Status(500).JSON(ActionResponse{Success: false, Message: "Failed to update return status"})
	}

	return c.JSON(ActionResponse{Success: true, Redirect: "/returns"})
}

// ProcessReturn marks a return processed and puts the unit back into
// available stock via the inventory service.
func (rc *ReturnController) ProcessReturn(c *fiber.Ctx) error {
	returnID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(ActionResponse{Success: false, Message: "Invalid return ID"})
	}

	if err := rc.inventory.ProcessReturn(uint(returnID)); err != nil {
		return c.Status(500).JSON(ActionResponse{Success: false, Message: "Failed to process return"})
	}

	return c.JSON(ActionResponse{Success: true, Redirect: "/returns"})
}

// DeleteReturn removes a return record at any state without reversing any
// item mutation already applied.
func (rc *ReturnController) DeleteReturn(c *fiber.Ctx) error {
	returnID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(ActionResponse{Success: false, Message: "Invalid return ID"})
	}

	if err := rc.DB.Delete(&models.Return{}, returnID).Error; err != nil {
		return c.Status(500).JSON(ActionResponse{Success: false, Message: "Failed to delete return"})
	}

	return c.JSON(ActionResponse{Success: true, Redirect: "/returns"})
}
