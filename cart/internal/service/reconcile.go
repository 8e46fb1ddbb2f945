package service

import (
	"github.com/Alturino/mallcart/cart/internal/domain"
)

type Reconciliation struct {
	EffectiveQuantity int32
	CorrectionNeeded  bool
}

// Reconcile decides the quantity a line may be priced with against the current catalog entry. A nil
// entry prices the line at zero without asking for a correction.
func Reconcile(line domain.CartLine, entry *domain.CatalogEntry) Reconciliation {
	if entry == nil {
		return Reconciliation{}
	}
	stock := max(entry.Stock, 0)
	if stock >= line.Quantity {
		return Reconciliation{EffectiveQuantity: line.Quantity}
	}
	return Reconciliation{EffectiveQuantity: stock, CorrectionNeeded: true}
}
