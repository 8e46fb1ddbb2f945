package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/Alturino/mallcart/cart/internal/domain"
	"github.com/Alturino/mallcart/cart/internal/otel"
	"github.com/Alturino/mallcart/internal/log"
	inOtel "github.com/Alturino/mallcart/internal/otel"
	"github.com/Alturino/mallcart/internal/repository"
)

// CartStore keeps cart lines in the cart_lines table.
type CartStore struct {
	queries *repository.Queries
}

func NewCartStore(queries *repository.Queries) *CartStore {
	return &CartStore{queries: queries}
}

func lineFromRow(row repository.CartLine) domain.CartLine {
	return domain.CartLine{
		ID:        row.ID,
		UserID:    row.UserID,
		ProductID: row.ProductID,
		Quantity:  row.Quantity,
		Selected:  row.Selected,
	}
}

func (s *CartStore) FindLine(c context.Context, userID, productID uuid.UUID) (domain.CartLine, error) {
	c, span := otel.Tracer.Start(c, "CartStore FindLine")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartStore FindLine").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyProductID, productID.String()).
		Logger()

	logger.Trace().Msg("finding cart line")
	row, err := s.queries.FindCartLineByUserIdAndProductId(
		c,
		repository.FindCartLineByUserIdAndProductIdParams{UserID: userID, ProductID: productID},
	)
	if errors.Is(err, pgx.ErrNoRows) {
		logger.Trace().Msg("cart line not found")
		return domain.CartLine{}, domain.ErrLineNotFound
	}
	if err != nil {
		err = fmt.Errorf("failed finding cart line with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return domain.CartLine{}, err
	}
	logger.Trace().Str(log.KeyCartLineID, row.ID.String()).Msg("found cart line")

	return lineFromRow(row), nil
}

func (s *CartStore) InsertLine(c context.Context, line domain.CartLine) (domain.CartLine, error) {
	c, span := otel.Tracer.Start(c, "CartStore InsertLine")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartStore InsertLine").
		Any(log.KeyCartLine, line).
		Logger()

	logger.Trace().Msg("inserting cart line")
	row, err := s.queries.InsertCartLine(c, repository.InsertCartLineParams{
		ID:        line.ID,
		UserID:    line.UserID,
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
		Selected:  line.Selected,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting cart line with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return domain.CartLine{}, err
	}
	logger.Trace().Msg("inserted cart line")

	return lineFromRow(row), nil
}

func (s *CartStore) UpdateLineQuantity(c context.Context, lineID uuid.UUID, quantity int32) error {
	c, span := otel.Tracer.Start(c, "CartStore UpdateLineQuantity")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartStore UpdateLineQuantity").
		Str(log.KeyCartLineID, lineID.String()).
		Int32(log.KeyQuantity, quantity).
		Logger()

	logger.Trace().Msg("updating cart line quantity")
	_, err := s.queries.UpdateCartLineQuantityById(
		c,
		repository.UpdateCartLineQuantityByIdParams{ID: lineID, Quantity: quantity},
	)
	if err != nil {
		err = fmt.Errorf("failed updating cart line quantity with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("updated cart line quantity")

	return nil
}

func (s *CartStore) DeleteLines(c context.Context, userID uuid.UUID, productIDs []uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "CartStore DeleteLines")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartStore DeleteLines").
		Str(log.KeyUserID, userID.String()).
		Any(log.KeyProductIDs, productIDs).
		Logger()

	logger.Trace().Msg("deleting cart lines")
	deleted, err := s.queries.DeleteCartLinesByUserIdAndProductIds(
		c,
		repository.DeleteCartLinesByUserIdAndProductIdsParams{UserID: userID, ProductIds: productIDs},
	)
	if err != nil {
		err = fmt.Errorf("failed deleting cart lines with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Int64(log.KeyCartLineCount, deleted).Msg("deleted cart lines")

	return nil
}

// SetSelected changes the selection of one line, or of every line of the user when productID is
// domain.AllProducts.
func (s *CartStore) SetSelected(c context.Context, userID, productID uuid.UUID, selected bool) error {
	c, span := otel.Tracer.Start(c, "CartStore SetSelected")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartStore SetSelected").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyProductID, productID.String()).
		Bool(log.KeySelected, selected).
		Logger()

	logger.Trace().Msg("updating selection")
	var err error
	if productID == domain.AllProducts {
		_, err = s.queries.UpdateCartLinesSelectedByUserId(
			c,
			repository.UpdateCartLinesSelectedByUserIdParams{UserID: userID, Selected: selected},
		)
	} else {
		_, err = s.queries.UpdateCartLineSelectedByUserIdAndProductId(
			c,
			repository.UpdateCartLineSelectedByUserIdAndProductIdParams{
				UserID:    userID,
				ProductID: productID,
				Selected:  selected,
			},
		)
	}
	if err != nil {
		err = fmt.Errorf("failed updating selection with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	logger.Trace().Msg("updated selection")

	return nil
}

func (s *CartStore) ListLines(c context.Context, userID uuid.UUID) ([]domain.CartLine, error) {
	c, span := otel.Tracer.Start(c, "CartStore ListLines")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartStore ListLines").
		Str(log.KeyUserID, userID.String()).
		Logger()

	logger.Trace().Msg("finding cart lines")
	rows, err := s.queries.FindCartLinesByUserId(c, userID)
	if err != nil {
		err = fmt.Errorf("failed finding cart lines with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return nil, err
	}
	logger.Trace().Int(log.KeyCartLineCount, len(rows)).Msg("found cart lines")

	lines := make([]domain.CartLine, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, lineFromRow(row))
	}
	return lines, nil
}

func (s *CartStore) CountUnselected(c context.Context, userID uuid.UUID) (int64, error) {
	c, span := otel.Tracer.Start(c, "CartStore CountUnselected")
	defer span.End()

	count, err := s.queries.CountUnselectedCartLinesByUserId(c, userID)
	if err != nil {
		err = fmt.Errorf("failed counting unselected cart lines with error=%w", err)
		inOtel.RecordError(err, span)
		zerolog.Ctx(c).Error().Err(err).Str(log.KeyUserID, userID.String()).Msg(err.Error())
		return 0, err
	}
	return count, nil
}

// CountItems sums the quantities of the user's lines.
func (s *CartStore) CountItems(c context.Context, userID uuid.UUID) (int64, error) {
	c, span := otel.Tracer.Start(c, "CartStore CountItems")
	defer span.End()

	count, err := s.queries.SumCartLineQuantityByUserId(c, userID)
	if err != nil {
		err = fmt.Errorf("failed summing cart line quantities with error=%w", err)
		inOtel.RecordError(err, span)
		zerolog.Ctx(c).Error().Err(err).Str(log.KeyUserID, userID.String()).Msg(err.Error())
		return 0, err
	}
	return count, nil
}
