package response

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ClampOutcome string

const (
	LimitNumSuccess ClampOutcome = "LIMIT_NUM_SUCCESS"
	LimitNumFail    ClampOutcome = "LIMIT_NUM_FAIL"
)

type CartProduct struct {
	Name      string          `json:"name"`
	Subtitle  string          `json:"subtitle"`
	MainImage string          `json:"main_image"`
	Price     decimal.Decimal `json:"price"`
	Stock     int32           `json:"stock"`
	Status    int32           `json:"status"`
}

// CartLine is a cart row joined with its catalog entry. Quantity is the effective quantity after
// clamping to stock; Product is nil when the catalog entry no longer exists.
type CartLine struct {
	ID            uuid.UUID       `json:"id"`
	UserID        uuid.UUID       `json:"user_id"`
	ProductID     uuid.UUID       `json:"product_id"`
	Quantity      int32           `json:"quantity"`
	Selected      bool            `json:"selected"`
	LimitQuantity ClampOutcome    `json:"limit_quantity,omitempty"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Product       *CartProduct    `json:"product,omitempty"`
}

func (l CartLine) Clamped() bool {
	return l.LimitQuantity == LimitNumFail
}

type Cart struct {
	Lines       []CartLine      `json:"lines"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	AllSelected bool            `json:"all_selected"`
	ImageHost   string          `json:"image_host"`
}
