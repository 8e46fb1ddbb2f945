package domain

import (
	"errors"

	"github.com/google/uuid"
)

var ErrLineNotFound = errors.New("cart line not found")

// AllProducts selects every line of a user when passed as the product id of a selection change.
var AllProducts = uuid.Nil

type CartLine struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int32     `json:"quantity"`
	Selected  bool      `json:"selected"`
}
