package booking

import (
	"fmt"
	"time"

	bs "storagebooking/service/booking"
)

type ItemReq struct {
	ItemID    int64  `json:"item_id" validate:"required,gt=0"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0"`
	StartDate string `json:"start_date" validate:"required,bookingdate"`
	EndDate   string `json:"end_date" validate:"required,bookingdate"`
}

type CreateBookingReq struct {
	Items []ItemReq `json:"items" validate:"required,min=1,dive"`
}

type UpdateBookingReq struct {
	Items []ItemReq `json:"items" validate:"required,min=1,dive"`
}

// PaymentStatus null clears the field.
type UpdatePaymentStatusReq struct {
	PaymentStatus *string `json:"payment_status"`
}

const dateLayout = "2006-01-02"

func toItemRequests(in []ItemReq) ([]bs.ItemRequest, error) {
	out := make([]bs.ItemRequest, 0, len(in))
	for _, it := range in {
		start, err := time.ParseInLocation(dateLayout, it.StartDate, time.Local)
		if err != nil {
			return nil, fmt.Errorf("item %d: bad start_date %q", it.ItemID, it.StartDate)
		}
		end, err := time.ParseInLocation(dateLayout, it.EndDate, time.Local)
		if err != nil {
			return nil, fmt.Errorf("item %d: bad end_date %q", it.ItemID, it.EndDate)
		}
		out = append(out, bs.ItemRequest{
			ItemID:    it.ItemID,
			Quantity:  it.Quantity,
			StartDate: start,
			EndDate:   end,
		})
	}
	return out, nil
}
