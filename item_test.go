package main

import (
	"encoding/json"
	"net/url"
	"testing"

	"swapstock-backend/controllers"
	"swapstock-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateItemDuplicateSerialIsNoOp(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	form := url.Values{
		"serial":         {"KIT-100"},
		"item_name":      {"Motor"},
		"item_type":      {models.ItemTypeConversionKit},
		"units_imported": {"10"},
	}

	resp, err := app.Test(formRequest("POST", "/api/items/", form))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	// Second registration with the same serial succeeds but changes nothing
	form.Set("item_name", "Different name")
	resp, err = app.Test(formRequest("POST", "/api/items/", form))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var count int64
	db.Model(&models.Item{}).Where("serial = ?", "KIT-100").Count(&count)
	assert.Equal(t, int64(1), count)

	var item models.Item
	db.Where("serial = ?", "KIT-100").First(&item)
	assert.Equal(t, "Motor", item.ItemName)
	assert.Equal(t, 10, item.UnitsImported)
}

func TestCreateItemBlankQuantitiesDefaultToZero(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	form := url.Values{
		"serial":          {"SP-100"},
		"item_name":       {"Relay"},
		"item_type":       {models.ItemTypeSparePart},
		"units_imported":  {""},
		"units_available": {"not-a-number"},
	}

	resp, err := app.Test(formRequest("POST", "/api/items/", form))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var item models.Item
	db.Where("serial = ?", "SP-100").First(&item)
	assert.Equal(t, 0, item.UnitsImported)
	assert.Equal(t, 0, item.UnitsInstalled)
	assert.Equal(t, 0, item.UnitsAvailable)
}

func TestCreateConversionKitDefaultsAvailableToImported(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	form := url.Values{
		"serial":         {"KIT-200"},
		"item_name":      {"Controller"},
		"admin":          {"Inventory"},
		"units_imported": {"25"},
	}

	resp, err := app.Test(formRequest("POST", "/api/conversion_kits", form))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var item models.Item
	db.Where("serial = ?", "KIT-200").First(&item)
	assert.Equal(t, models.ItemTypeConversionKit, item.ItemType)
	assert.Equal(t, 25, item.UnitsImported)
	assert.Equal(t, 0, item.UnitsInstalled)
	assert.Equal(t, 25, item.UnitsAvailable)
}

func TestUpdateItemClampsAvailable(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	item := createTestItem(db, "KIT-300", "Gear", models.ItemTypeConversionKit, 10, 0, 10)

	form := url.Values{
		"serial":          {"KIT-300"},
		"item_name":       {"Gear"},
		"item_type":       {models.ItemTypeConversionKit},
		"admin":           {"Inventory"},
		"created_at":      {"2024-01-01"},
		"units_imported":  {"10"},
		"units_installed": {"8"},
		"units_available": {"8"},
	}

	resp, err := app.Test(formRequest("PUT", "/api/items/"+itoa(item.ID), form))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var updated models.Item
	db.First(&updated, item.ID)
	assert.Equal(t, 10, updated.UnitsImported)
	assert.Equal(t, 8, updated.UnitsInstalled)
	assert.Equal(t, 2, updated.UnitsAvailable) // clamped to imported - installed
}

func TestUpdateItemClampFloorsAtZero(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	item := createTestItem(db, "KIT-301", "Gear", models.ItemTypeConversionKit, 5, 0, 5)

	form := url.Values{
		"serial":          {"KIT-301"},
		"item_name":       {"Gear"},
		"item_type":       {models.ItemTypeConversionKit},
		"admin":           {"Inventory"},
		"created_at":      {"2024-01-01"},
		"units_imported":  {"5"},
		"units_installed": {"9"},
		"units_available": {"3"},
	}

	resp, err := app.Test(formRequest("PUT", "/api/items/"+itoa(item.ID), form))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var updated models.Item
	db.First(&updated, item.ID)
	assert.Equal(t, 9, updated.UnitsInstalled) // installed is never adjusted
	assert.Equal(t, 0, updated.UnitsAvailable)
}

func TestUpdateItemRedirectFollowsStoredType(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	item := createTestItem(db, "SP-300", "Battery", models.ItemTypeSparePart, 10, 2, 8)

	form := url.Values{
		"serial":          {"SP-300"},
		"item_name":       {"Battery"},
		"item_type":       {models.ItemTypeSparePart},
		"admin":           {"Inventory"},
		"created_at":      {"2024-01-01"},
		"units_imported":  {"10"},
		"units_installed": {"2"},
		"units_available": {"8"},
	}

	resp, err := app.Test(formRequest("PUT", "/api/items/"+itoa(item.ID), form))
	assert.NoError(t, err)

	var body controllers.ActionResponse
	json.NewDecoder(resp.Body).Decode(&body)
	assert.True(t, body.Success)
	assert.Equal(t, "/spare_parts", body.Redirect)
}

func TestDeleteItemLeavesSoftReferences(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	item := createTestItem(db, "KIT-400", "Motor", models.ItemTypeConversionKit, 10, 1, 9)
	db.Create(&models.Allocation{Date: "2024-02-01", NewItemSerial: "KIT-400", RiderName: "Rider"})
	db.Create(&models.Return{Date: "2024-02-02", ItemSerial: "KIT-400", Personnel: "Tech"})

	resp, err := app.Test(formRequest("DELETE", "/api/items/"+itoa(item.ID), url.Values{}))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var itemCount, allocCount, returnCount int64
	db.Model(&models.Item{}).Count(&itemCount)
	db.Model(&models.Allocation{}).Count(&allocCount)
	db.Model(&models.Return{}).Count(&returnCount)

	assert.Equal(t, int64(0), itemCount)
	assert.Equal(t, int64(1), allocCount) // orphaned references stay behind
	assert.Equal(t, int64(1), returnCount)
}

func TestGetConversionKitsFiltersAllocationsByType(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	createTestItem(db, "KIT-500", "Motor", models.ItemTypeConversionKit, 10, 0, 10)
	createTestItem(db, "SP-500", "Battery", models.ItemTypeSparePart, 10, 0, 10)
	db.Create(&models.Allocation{Date: "2024-02-01", NewItemSerial: "KIT-500", RiderName: "Kit rider"})
	db.Create(&models.Allocation{Date: "2024-02-02", NewItemSerial: "SP-500", RiderName: "Spare rider"})
	db.Create(&models.Allocation{Date: "2024-02-03", NewItemSerial: "GHOST", RiderName: "Orphan"})

	resp, err := app.Test(formRequest("GET", "/api/conversion_kits", url.Values{}))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body controllers.ConversionKitsResponse
	json.NewDecoder(resp.Body).Decode(&body)
	assert.True(t, body.Success)
	assert.Len(t, body.Kits, 1)
	assert.Len(t, body.Allocations, 1)
	assert.Equal(t, "KIT-500", body.Allocations[0].NewItemSerial)
}
