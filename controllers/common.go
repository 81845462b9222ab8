package controllers

import (
	"strconv"
	"strings"

	"swapstock-backend/models"

	"github.com/gofiber/fiber/v2"
)

// ActionResponse is the result of a mutating endpoint. Redirect names the
// view the web layer should navigate to next.
type ActionResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// formInt parses a numeric form field, falling back to def when the field is
// blank, absent or not a number. The upstream web layer submits everything as
// strings, so this is the only place coercion happens.
func formInt(c *fiber.Ctx, key string, def int) int {
	v := strings.TrimSpace(c.FormValue(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

// formString reads a form field with a default for blank/absent values.
func formString(c *fiber.Ctx, key, def string) string {
	v := c.FormValue(key)
	if v == "" {
		return def
	}
	return v
}

// redirectForItemType picks the list view an item-type belongs to.
func redirectForItemType(itemType string) string {
	switch itemType {
	case models.ItemTypeConversionKit:
		return "/conversion_kits"
	case models.ItemTypeSparePart:
		return "/spare_parts"
	default:
		return "/"
	}
}
