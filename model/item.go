// model/item.go
package model

import "time"

// Item is a rentable thing. UnitsTotal is the immutable inventory ceiling
// used for virtual-stock checks; UnitsInStorage is the count physically
// present right now and moves on pickup/return.
type Item struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	LocationID     int64     `json:"location_id"`
	UnitsTotal     int64     `json:"items_number_total"`
	UnitsInStorage int64     `json:"items_number_currently_in_storage"`
	CreatedAt      time.Time `json:"created_at"`
}
