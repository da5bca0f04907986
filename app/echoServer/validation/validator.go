// Package validation adapts go-playground/validator for echo and registers
// the request-level rules shared by the API DTOs.
package validation

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

// NewValidate builds the validator the controllers share. The bookingdate
// rule accepts calendar dates in YYYY-MM-DD form.
func NewValidate() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("bookingdate", isBookingDate)
	return v
}

func isBookingDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(dateLayout, fl.Field().String())
	return err == nil
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	return &Validator{v: NewValidate()}
}

func (v *Validator) Validate(i interface{}) error {
	return v.v.Struct(i)
}
