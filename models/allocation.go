package models

// Allocation records one unit issued to a rider/station, or a spare-part
// replacement event. NewItemSerial is a soft reference to Item.Serial:
// it is matched by string and never enforced as a foreign key, so an
// allocation may point at a nonexistent or deleted item.
type Allocation struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	Date          string `json:"date" gorm:"size:32"`
	ItemID        uint   `json:"item_id" gorm:"default:0"` // legacy column, most rows link via NewItemSerial instead
	OldItemSerial string `json:"old_item_serial" gorm:"size:64"`
	NewItemSerial string `json:"new_item_serial" gorm:"size:64;index"`
	RiderNumber   string `json:"rider_number" gorm:"size:32"`
	RiderName     string `json:"rider_name" gorm:"size:255"`
	ReleasedTo    string `json:"released_to" gorm:"size:255"`
	Link          string `json:"link" gorm:"size:500"`
	Station       string `json:"station" gorm:"size:255"`
}
