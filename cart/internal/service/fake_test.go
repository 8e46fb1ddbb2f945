package service

import (
	"context"
	"slices"

	"github.com/google/uuid"

	"github.com/Alturino/mallcart/cart/internal/domain"
)

type fakeStore struct {
	lines        []domain.CartLine
	quantitySets int
	err          error
}

func (s *fakeStore) FindLine(_ context.Context, userID, productID uuid.UUID) (domain.CartLine, error) {
	if s.err != nil {
		return domain.CartLine{}, s.err
	}
	for _, l := range s.lines {
		if l.UserID == userID && l.ProductID == productID {
			return l, nil
		}
	}
	return domain.CartLine{}, domain.ErrLineNotFound
}

func (s *fakeStore) InsertLine(_ context.Context, line domain.CartLine) (domain.CartLine, error) {
	if s.err != nil {
		return domain.CartLine{}, s.err
	}
	s.lines = append(s.lines, line)
	return line, nil
}

func (s *fakeStore) UpdateLineQuantity(_ context.Context, lineID uuid.UUID, quantity int32) error {
	if s.err != nil {
		return s.err
	}
	s.quantitySets++
	for i := range s.lines {
		if s.lines[i].ID == lineID {
			s.lines[i].Quantity = quantity
		}
	}
	return nil
}

func (s *fakeStore) DeleteLines(_ context.Context, userID uuid.UUID, productIDs []uuid.UUID) error {
	if s.err != nil {
		return s.err
	}
	s.lines = slices.DeleteFunc(s.lines, func(l domain.CartLine) bool {
		return l.UserID == userID && slices.Contains(productIDs, l.ProductID)
	})
	return nil
}

func (s *fakeStore) SetSelected(_ context.Context, userID, productID uuid.UUID, selected bool) error {
	if s.err != nil {
		return s.err
	}
	for i := range s.lines {
		if s.lines[i].UserID != userID {
			continue
		}
		if productID == domain.AllProducts || s.lines[i].ProductID == productID {
			s.lines[i].Selected = selected
		}
	}
	return nil
}

func (s *fakeStore) ListLines(_ context.Context, userID uuid.UUID) ([]domain.CartLine, error) {
	if s.err != nil {
		return nil, s.err
	}
	lines := []domain.CartLine{}
	for _, l := range s.lines {
		if l.UserID == userID {
			lines = append(lines, l)
		}
	}
	return lines, nil
}

func (s *fakeStore) CountUnselected(_ context.Context, userID uuid.UUID) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	var count int64
	for _, l := range s.lines {
		if l.UserID == userID && !l.Selected {
			count++
		}
	}
	return count, nil
}

func (s *fakeStore) CountItems(_ context.Context, userID uuid.UUID) (int64, error) {
	if s.err != nil {
		return 0, s.err
	}
	var count int64
	for _, l := range s.lines {
		if l.UserID == userID {
			count += int64(l.Quantity)
		}
	}
	return count, nil
}

type fakeCatalog struct {
	entries map[uuid.UUID]domain.CatalogEntry
	err     error
}

func (f *fakeCatalog) FindProductById(_ context.Context, productID uuid.UUID) (domain.CatalogEntry, error) {
	if f.err != nil {
		return domain.CatalogEntry{}, f.err
	}
	entry, ok := f.entries[productID]
	if !ok {
		return domain.CatalogEntry{}, domain.ErrProductNotFound
	}
	return entry, nil
}
