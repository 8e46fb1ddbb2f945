package request

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	inErrors "github.com/Alturino/mallcart/internal/errors"
)

const ProductIdsSeparator = ","

type AddCartLine struct {
	ProductID uuid.UUID `validate:"required"       json:"product_id"`
	Count     *int32    `validate:"omitnil,gte=0" json:"count"`
}

type UpdateCartLine struct {
	ProductID uuid.UUID `json:"-"`
	Count     *int32    `validate:"omitnil,gte=0" json:"count"`
}

type ToggleSelection struct {
	Selected *bool `validate:"required" json:"selected"`
}

// ParseProductIds splits a comma delimited list of product ids. Blank entries are skipped; an
// unparseable entry or a list without any id is an invalid argument.
func ParseProductIds(productIds string) ([]uuid.UUID, error) {
	ids := []uuid.UUID{}
	for _, raw := range strings.Split(productIds, ProductIdsSeparator) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf(
				"failed parsing productId=%s with error=%w",
				raw,
				inErrors.Join(inErrors.InvalidArgument("unparseable productId=%s", raw), err),
			)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, inErrors.InvalidArgument("empty productIds")
	}
	return ids, nil
}
