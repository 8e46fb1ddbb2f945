package response

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Alturino/mallcart/internal/repository"
)

// Product is the catalog entry shape the cart service reads from GET /products/{productId}.
type Product struct {
	ProductID uuid.UUID       `json:"product_id"`
	Name      string          `json:"name"`
	Subtitle  string          `json:"subtitle"`
	MainImage string          `json:"main_image"`
	Price     decimal.Decimal `json:"price"`
	Stock     int32           `json:"stock"`
	Status    int32           `json:"status"`
}

func FromRow(p repository.Product) Product {
	return Product{
		ProductID: p.ID,
		Name:      p.Name,
		Subtitle:  p.Subtitle.String,
		MainImage: p.MainImage.String,
		Price:     p.PriceDecimal(),
		Stock:     p.Stock,
		Status:    p.Status,
	}
}
