package domain

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrProductNotFound = errors.New("product not found")

type ProductStatus int32

const (
	ProductStatusOnSale   ProductStatus = 1
	ProductStatusOffShelf ProductStatus = 2
	ProductStatusDeleted  ProductStatus = 3
)

// Visible reports whether a product with this status may still be priced in a cart.
func (s ProductStatus) Visible() bool {
	return s != ProductStatusDeleted
}

type CatalogEntry struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Subtitle  string          `json:"subtitle"`
	MainImage string          `json:"main_image"`
	Price     decimal.Decimal `json:"price"`
	Stock     int32           `json:"stock"`
	Status    ProductStatus   `json:"status"`
}
