package models

// Return statuses.
const (
	ReturnStatusPending   = "pending"
	ReturnStatusProcessed = "processed"
)

// Return records an item coming back from the field for inspection/reissue.
// ItemSerial is a soft reference to Item.Serial.
type Return struct {
	ID              uint   `json:"id" gorm:"primaryKey"`
	Date            string `json:"date" gorm:"size:32"`
	ItemSerial      string `json:"item_serial" gorm:"size:64;index"`
	Personnel       string `json:"personnel" gorm:"size:255"`
	Status          string `json:"status" gorm:"size:20;default:'pending'"`
	Notes           string `json:"notes" gorm:"type:text"`
	ProcessedDate   string `json:"processed_date" gorm:"size:32"`
	ConditionRating int    `json:"condition_rating" gorm:"default:5"`
}
