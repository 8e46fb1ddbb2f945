package validate

import (
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const TagPrice = "price"

// New returns a validator that also checks decimal.Decimal fields tagged with price.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	if err := v.RegisterValidation(TagPrice, ValidatePrice); err != nil {
		panic(err)
	}
	return v
}

func decimalValue(v reflect.Value) interface{} {
	d, ok := v.Interface().(decimal.Decimal)
	if !ok {
		return nil
	}
	return d.String()
}

// ValidatePrice accepts zero or positive amounts with at most two fractional digits.
func ValidatePrice(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	return !d.IsNegative() && d.Equal(d.Truncate(2))
}
