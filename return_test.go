package main

import (
	"net/url"
	"testing"

	"swapstock-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateReturnDefaults(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	form := url.Values{
		"date":        {"2024-02-10"},
		"item_serial": {"KIT-700"},
		"personnel":   {"John Doe"},
		"notes":       {"Returned for inspection"},
	}

	resp, err := app.Test(formRequest("POST", "/api/returns/", form))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var ret models.Return
	db.Where("item_serial = ?", "KIT-700").First(&ret)
	assert.Equal(t, models.ReturnStatusPending, ret.Status)
	assert.Equal(t, 5, ret.ConditionRating)
	assert.Empty(t, ret.ProcessedDate)
}

func TestProcessReturnFloorsInstalledAtZero(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	createTestItem(db, "KIT-701", "Motor", models.ItemTypeConversionKit, 5, 0, 5)
	ret := models.Return{Date: "2024-02-10", ItemSerial: "KIT-701", Personnel: "John Doe", Status: models.ReturnStatusPending, ConditionRating: 5}
	db.Create(&ret)

	resp, err := app.Test(formRequest("POST", "/api/returns/"+itoa(ret.ID)+"/process", url.Values{}))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var item models.Item
	db.Where("serial = ?", "KIT-701").First(&item)
	assert.Equal(t, 0, item.UnitsInstalled) // floored, never negative
	assert.Equal(t, 6, item.UnitsAvailable)

	var processed models.Return
	db.First(&processed, ret.ID)
	assert.Equal(t, models.ReturnStatusProcessed, processed.Status)
	assert.NotEmpty(t, processed.ProcessedDate)
}

func TestProcessReturnUnknownSerialStillProcesses(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	createTestItem(db, "KIT-702", "Motor", models.ItemTypeConversionKit, 5, 2, 3)
	ret := models.Return{Date: "2024-02-10", ItemSerial: "GHOST", Personnel: "Jane Smith", Status: models.ReturnStatusPending, ConditionRating: 5}
	db.Create(&ret)

	resp, err := app.Test(formRequest("POST", "/api/returns/"+itoa(ret.ID)+"/process", url.Values{}))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var processed models.Return
	db.First(&processed, ret.ID)
	assert.Equal(t, models.ReturnStatusProcessed, processed.Status)

	var item models.Item
	db.Where("serial = ?", "KIT-702").First(&item)
	assert.Equal(t, 2, item.UnitsInstalled)
	assert.Equal(t, 3, item.UnitsAvailable)
}

func TestProcessReturnMissingIDIsNoOp(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	resp, err := app.Test(formRequest("POST", "/api/returns/9999/process", url.Values{}))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestProcessReturnTwiceIncrementsTwice(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	createTestItem(db, "KIT-703", "Motor", models.ItemTypeConversionKit, 10, 4, 6)
	ret := models.Return{Date: "2024-02-10", ItemSerial: "KIT-703", Personnel: "John Doe", Status: models.ReturnStatusPending, ConditionRating: 5}
	db.Create(&ret)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(formRequest("POST", "/api/returns/"+itoa(ret.ID)+"/process", url.Values{}))
		assert.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	}

	// Re-processing is not guarded, each call moves another unit
	var item models.Item
	db.Where("serial = ?", "KIT-703").First(&item)
	assert.Equal(t, 2, item.UnitsInstalled)
	assert.Equal(t, 8, item.UnitsAvailable)
}

func TestUpdateReturnStatusTouchesOnlyStatusAndNotes(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	ret := models.Return{Date: "2024-02-10", ItemSerial: "KIT-704", Personnel: "John Doe", Status: models.ReturnStatusPending, Notes: "initial", ConditionRating: 4}
	db.Create(&ret)

	form := url.Values{
		"status": {models.ReturnStatusProcessed},
		"notes":  {"inspected, ok"},
	}
	resp, err := app.Test(formRequest("PUT", "/api/returns/"+itoa(ret.ID)+"/status", form))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var updated models.Return
	db.First(&updated, ret.ID)
	assert.Equal(t, models.ReturnStatusProcessed, updated.Status)
	assert.Equal(t, "inspected, ok", updated.Notes)
	assert.Equal(t, "John Doe", updated.Personnel)
	assert.Equal(t, 4, updated.ConditionRating)
}

func TestUpdateReturnDoesNotTouchInventory(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	createTestItem(db, "KIT-705", "Motor", models.ItemTypeConversionKit, 10, 4, 6)
	ret := models.Return{Date: "2024-02-10", ItemSerial: "KIT-705", Personnel: "John Doe", Status: models.ReturnStatusPending, ConditionRating: 5}
	db.Create(&ret)

	// Editing the status field directly is a plain overwrite, not a process action
	form := url.Values{
		"date":        {"2024-02-11"},
		"item_serial": {"KIT-705"},
		"personnel":   {"John Doe"},
		"status":      {models.ReturnStatusProcessed},
		"notes":       {"edited"},
	}
	resp, err := app.Test(formRequest("PUT", "/api/returns/"+itoa(ret.ID), form))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var item models.Item
	db.Where("serial = ?", "KIT-705").First(&item)
	assert.Equal(t, 4, item.UnitsInstalled)
	assert.Equal(t, 6, item.UnitsAvailable)

	var updated models.Return
	db.First(&updated, ret.ID)
	assert.Empty(t, updated.ProcessedDate)
}

func TestDeleteReturnKeepsItemState(t *testing.T) {
	db := setupTestDB()
	app := createTestApp(db)

	createTestItem(db, "KIT-706", "Motor", models.ItemTypeConversionKit, 10, 4, 6)
	ret := models.Return{Date: "2024-02-10", ItemSerial: "KIT-706", Personnel: "John Doe", Status: models.ReturnStatusPending, ConditionRating: 5}
	db.Create(&ret)

	resp, err := app.Test(formRequest("POST", "/api/returns/"+itoa(ret.ID)+"/process", url.Values{}))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(formRequest("DELETE", "/api/returns/"+itoa(ret.ID), url.Values{}))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var count int64
	db.Model(&models.Return{}).Count(&count)
	assert.Equal(t, int64(0), count)

	// The restock applied during processing stays applied
	var item models.Item
	db.Where("serial = ?", "KIT-706").First(&item)
	assert.Equal(t, 3, item.UnitsInstalled)
	assert.Equal(t, 7, item.UnitsAvailable)
}
