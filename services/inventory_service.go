package services

import (
	"errors"
	"time"

	"swapstock-backend/models"

	"gorm.io/gorm"
)

// ErrDuplicateSerial is returned by RegisterItem when the serial is already
// taken. Callers treat it as a silent no-op, not a user-visible failure.
var ErrDuplicateSerial = errors.New("item serial already exists")

// InventoryService applies the unit-count rules that keep units_imported,
// units_installed and units_available consistent across item registration,
// allocation creation and return processing. Every method runs as a single
// transaction; stock shortfalls are absorbed silently, never surfaced.
type InventoryService struct {
	db *gorm.DB
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{db: db}
}

// RegisterItem inserts a new item, storing the quantities exactly as given.
// Registration does not check installed+available against imported.
// A duplicate serial returns ErrDuplicateSerial and leaves the existing row
// untouched.
func (s *InventoryService) RegisterItem(item *models.Item) error {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var count int64
	if err := tx.Model(&models.Item{}).Where("serial = ?", item.Serial).Count(&count).Error; err != nil {
		tx.Rollback()
		return err
	}
	if count > 0 {
		tx.Rollback()
		return ErrDuplicateSerial
	}

	if err := tx.Create(item).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// RecordAllocation inserts the allocation row unconditionally, then moves
// exactly one unit from available to installed on the referenced item.
// An unknown serial or empty stock still records the allocation; the
// quantity step is simply skipped.
func (s *InventoryService) RecordAllocation(alloc *models.Allocation) error {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(alloc).Error; err != nil {
		tx.Rollback()
		return err
	}

	var item models.Item
	err := tx.Where("serial = ?", alloc.NewItemSerial).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Allocation to an unknown item is permitted, no quantity change.
		return tx.Commit().Error
	}
	if err != nil {
		tx.Rollback()
		return err
	}

	if item.UnitsAvailable > 0 {
		if err := tx.Model(&models.Item{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
			"units_installed": gorm.Expr("units_installed + 1"),
			"units_available": gorm.Expr("units_available - 1"),
		}).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit().Error
}

// ProcessReturn marks the return processed, stamps the processed date and
// puts one unit back into available stock on the referenced item, flooring
// units_installed at zero. A missing return id is a no-op. Re-processing an
// already processed return stamps and increments again.
func (s *InventoryService) ProcessReturn(returnID uint) error {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var ret models.Return
	err := tx.First(&ret, returnID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tx.Rollback()
		return nil
	}
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Model(&models.Return{}).Where("id = ?", ret.ID).Updates(map[string]interface{}{
		"status":         models.ReturnStatusProcessed,
		"processed_date": time.Now().Format("2006-01-02"),
	}).Error; err != nil {
		tx.Rollback()
		return err
	}

	var item models.Item
	err = tx.Where("serial = ?", ret.ItemSerial).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Item no longer (or never) tracked, the return is still processed.
		return tx.Commit().Error
	}
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Model(&models.Item{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
		"units_available": gorm.Expr("units_available + 1"),
		"units_installed": gorm.Expr("CASE WHEN units_installed > 0 THEN units_installed - 1 ELSE 0 END"),
	}).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

// ReconcileKits recomputes the counters of every conversion kit that appears
// as an allocation target: units_installed becomes the allocation count for
// the serial and units_available becomes imported minus that count. It is a
// full overwrite of whatever the columns currently hold, so running it twice
// with unchanged allocations yields the same values.
func (s *InventoryService) ReconcileKits() error {
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var serials []string
	if err := tx.Model(&models.Allocation{}).
		Distinct("new_item_serial").
		Where("new_item_serial <> ''").
		Pluck("new_item_serial", &serials).Error; err != nil {
		tx.Rollback()
		return err
	}

	for _, serial := range serials {
		var item models.Item
		err := tx.Where("serial = ? AND item_type = ?", serial, models.ItemTypeConversionKit).First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			tx.Rollback()
			return err
		}

		var count int64
		if err := tx.Model(&models.Allocation{}).Where("new_item_serial = ?", serial).Count(&count).Error; err != nil {
			tx.Rollback()
			return err
		}

		if err := tx.Model(&models.Item{}).Where("id = ?", item.ID).Updates(map[string]interface{}{
			"units_installed": int(count),
			"units_available": item.UnitsImported - int(count),
		}).Error; err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit().Error
}
