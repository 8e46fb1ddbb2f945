package request

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	Name      string          `validate:"required"              json:"name"`
	Subtitle  string          `                                 json:"subtitle"`
	MainImage string          `                                 json:"main_image"`
	Price     decimal.Decimal `validate:"price"                 json:"price"`
	Stock     int32           `validate:"gte=0"                 json:"stock"`
	Status    int32           `validate:"omitempty,oneof=1 2 3" json:"status"`
}

type ProductStock struct {
	Stock *int32 `validate:"required,gte=0" json:"stock"`
}
