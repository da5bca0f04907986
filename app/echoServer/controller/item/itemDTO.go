package item

type CreateItemReq struct {
	Name       string `json:"name" validate:"required"`
	LocationID int64  `json:"location_id"`
	Total      int64  `json:"items_number_total" validate:"gte=0"`
	InStorage  int64  `json:"items_number_currently_in_storage" validate:"gte=0"`
}
