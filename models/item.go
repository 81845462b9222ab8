package models

import (
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Item types tracked by the inventory.
const (
	ItemTypeConversionKit = "conversion_kit"
	ItemTypeSparePart     = "spare_part"
)

// TrackedItemTypes lists the item types included in dashboard reporting.
var TrackedItemTypes = []string{ItemTypeConversionKit, ItemTypeSparePart}

// Item represents a trackable unit type (conversion kit or spare part)
// with its quantity counters.
type Item struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	Serial         string `json:"serial" gorm:"uniqueIndex;size:64"`
	ItemName       string `json:"item_name" gorm:"not null;size:255"`
	ItemType       string `json:"item_type" gorm:"not null;size:50"`
	Admin          string `json:"admin" gorm:"size:255;default:''"`
	CreatedAt      string `json:"created_at" gorm:"size:32;default:''"` // date string, Excel-era rows carry serial day numbers
	UnitsImported  int    `json:"units_imported" gorm:"default:0"`
	UnitsInstalled int    `json:"units_installed" gorm:"default:0"`
	UnitsAvailable int    `json:"units_available" gorm:"default:0"`
}

// InitDB opens the database connection.
func InitDB() (*gorm.DB, error) {
	// PostgreSQL for production when DATABASE_URL is set
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		return db, nil
	}

	// SQLite file otherwise (persistent volume path or local file)
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "inventory.db"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}
