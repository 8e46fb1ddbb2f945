package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/Alturino/mallcart/cart/internal/domain"
)

// CartStore persists cart lines keyed by user and product. FindLine returns domain.ErrLineNotFound
// when the user has no line for the product. ListLines preserves insertion order.
type CartStore interface {
	FindLine(c context.Context, userID, productID uuid.UUID) (domain.CartLine, error)
	InsertLine(c context.Context, line domain.CartLine) (domain.CartLine, error)
	UpdateLineQuantity(c context.Context, lineID uuid.UUID, quantity int32) error
	DeleteLines(c context.Context, userID uuid.UUID, productIDs []uuid.UUID) error
	SetSelected(c context.Context, userID, productID uuid.UUID, selected bool) error
	ListLines(c context.Context, userID uuid.UUID) ([]domain.CartLine, error)
	CountUnselected(c context.Context, userID uuid.UUID) (int64, error)
	CountItems(c context.Context, userID uuid.UUID) (int64, error)
}

// CatalogLookup returns domain.ErrProductNotFound for products that do not exist.
type CatalogLookup interface {
	FindProductById(c context.Context, productID uuid.UUID) (domain.CatalogEntry, error)
}
