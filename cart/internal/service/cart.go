package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alturino/mallcart/cart/internal/domain"
	"github.com/Alturino/mallcart/cart/internal/otel"
	"github.com/Alturino/mallcart/cart/pkg/request"
	"github.com/Alturino/mallcart/cart/pkg/response"
	"github.com/Alturino/mallcart/internal/config"
	inErrors "github.com/Alturino/mallcart/internal/errors"
	"github.com/Alturino/mallcart/internal/log"
	inOtel "github.com/Alturino/mallcart/internal/otel"
)

const MetricLineQuantityClamped = "cart.line.quantity.clamped"

type CartService struct {
	store   CartStore
	catalog CatalogLookup
	config  config.Cart
	clamped metric.Int64Counter
}

func NewCartService(store CartStore, catalog CatalogLookup, cfg config.Cart) *CartService {
	clamped, err := otel.Meter.Int64Counter(
		MetricLineQuantityClamped,
		metric.WithDescription("number of cart lines whose quantity was lowered to the available stock"),
		metric.WithUnit("{line}"),
	)
	if err != nil {
		clamped = noop.Int64Counter{}
	}
	return &CartService{store: store, catalog: catalog, config: cfg, clamped: clamped}
}

func (svc *CartService) List(c context.Context, userID uuid.UUID) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService List")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService List").
		Str(log.KeyUserID, userID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "building cart view").Logger()
	logger.Info().Msg("building cart view")
	c = logger.WithContext(c)
	view, err := svc.BuildView(c, userID)
	if err != nil {
		err = fmt.Errorf("failed building cart view with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Int(log.KeyCartLineCount, len(view.Lines)).Msg("built cart view")

	return view, nil
}

// BuildView reconciles every line of the user against the catalog and prices the selected ones.
// Quantities above the current stock are lowered and written back before the line enters the view.
func (svc *CartService) BuildView(c context.Context, userID uuid.UUID) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService BuildView")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService BuildView").
		Str(log.KeyUserID, userID.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "listing cart lines").Logger()
	logger.Trace().Msg("listing cart lines")
	lines, err := svc.store.ListLines(c, userID)
	if err != nil {
		err = fmt.Errorf("failed listing cart lines of userId=%s with error=%w", userID.String(), err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger = logger.With().Int(log.KeyCartLineCount, len(lines)).Logger()
	logger.Trace().Msg("listed cart lines")

	view := response.Cart{
		Lines:      make([]response.CartLine, 0, len(lines)),
		TotalPrice: decimal.Zero,
		ImageHost:  svc.config.AssetBasePath(),
	}
	for _, line := range lines {
		c = logger.WithContext(c)
		reconciled, err := svc.reconcileLine(c, line)
		if err != nil {
			err = fmt.Errorf("failed reconciling cartLineId=%s with error=%w", line.ID.String(), err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
		if reconciled.Selected && reconciled.Product != nil {
			view.TotalPrice = view.TotalPrice.Add(reconciled.TotalPrice)
		}
		view.Lines = append(view.Lines, reconciled)
	}

	logger = logger.With().Str(log.KeyProcess, "checking selection").Logger()
	logger.Trace().Msg("checking selection")
	c = logger.WithContext(c)
	allSelected, err := svc.allSelected(c, userID)
	if err != nil {
		err = fmt.Errorf("failed checking selection of userId=%s with error=%w", userID.String(), err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	view.AllSelected = allSelected
	logger.Trace().Bool(log.KeySelected, allSelected).Msg("checked selection")

	span.SetAttributes(
		attribute.Int("cart.lines", len(view.Lines)),
		attribute.String("cart.total_price", view.TotalPrice.String()),
		attribute.Bool("cart.all_selected", view.AllSelected),
	)
	return view, nil
}

func (svc *CartService) reconcileLine(
	c context.Context,
	line domain.CartLine,
) (response.CartLine, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyCartLineID, line.ID.String()).
		Str(log.KeyProductID, line.ProductID.String()).
		Int32(log.KeyQuantity, line.Quantity).
		Logger()

	result := response.CartLine{
		ID:         line.ID,
		UserID:     line.UserID,
		ProductID:  line.ProductID,
		Quantity:   line.Quantity,
		Selected:   line.Selected,
		TotalPrice: decimal.Zero,
	}

	logger = logger.With().Str(log.KeyProcess, "finding product").Logger()
	logger.Trace().Msg("finding product")
	entry, err := svc.catalog.FindProductById(c, line.ProductID)
	if errors.Is(err, domain.ErrProductNotFound) || (err == nil && !entry.Status.Visible()) {
		logger.Info().Msg("product not found, returning line without product")
		return result, nil
	}
	if err != nil {
		return response.CartLine{}, fmt.Errorf(
			"failed finding productId=%s with error=%w",
			line.ProductID.String(),
			err,
		)
	}
	logger.Trace().Int32(log.KeyStock, entry.Stock).Msg("found product")

	reconciliation := Reconcile(line, &entry)
	result.LimitQuantity = response.LimitNumSuccess
	if reconciliation.CorrectionNeeded {
		logger = logger.With().
			Str(log.KeyProcess, "clamping quantity to stock").
			Int32(log.KeyRequestedQuantity, line.Quantity).
			Int32(log.KeyEffectiveQuantity, reconciliation.EffectiveQuantity).
			Logger()
		logger.Warn().Msg("quantity exceeds stock, clamping quantity to stock")
		if err := svc.store.UpdateLineQuantity(c, line.ID, reconciliation.EffectiveQuantity); err != nil {
			return response.CartLine{}, fmt.Errorf(
				"failed clamping quantity of cartLineId=%s with error=%w",
				line.ID.String(),
				err,
			)
		}
		trace.SpanFromContext(c).AddEvent("clamped cart line quantity", trace.WithAttributes(
			attribute.String("cart.line.id", line.ID.String()),
			attribute.Int("cart.line.requested_quantity", int(line.Quantity)),
			attribute.Int("cart.line.effective_quantity", int(reconciliation.EffectiveQuantity)),
		))
		svc.clamped.Add(c, 1)
		logger.Warn().Msg("clamped quantity to stock")
		result.LimitQuantity = response.LimitNumFail
	}

	result.Quantity = reconciliation.EffectiveQuantity
	result.TotalPrice = entry.Price.Mul(decimal.NewFromInt32(reconciliation.EffectiveQuantity))
	result.Product = &response.CartProduct{
		Name:      entry.Name,
		Subtitle:  entry.Subtitle,
		MainImage: entry.MainImage,
		Price:     entry.Price,
		Stock:     entry.Stock,
		Status:    int32(entry.Status),
	}
	return result, nil
}

func (svc *CartService) allSelected(c context.Context, userID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, nil
	}
	unselected, err := svc.store.CountUnselected(c, userID)
	if err != nil {
		return false, err
	}
	return unselected == 0, nil
}

func (svc *CartService) Add(
	c context.Context,
	userID uuid.UUID,
	param request.AddCartLine,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService Add")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService Add").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyProductID, param.ProductID.String()).
		Logger()

	if userID == uuid.Nil || param.ProductID == uuid.Nil || param.Count == nil {
		err := inErrors.InvalidArgument(
			"userId, productId and count are required, userId=%s productId=%s",
			userID.String(),
			param.ProductID.String(),
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	count := *param.Count
	logger = logger.With().Int32(log.KeyRequestedQuantity, count).Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart line").Logger()
	logger.Info().Msg("finding cart line")
	line, err := svc.store.FindLine(c, userID, param.ProductID)
	switch {
	case errors.Is(err, domain.ErrLineNotFound):
		logger = logger.With().Str(log.KeyProcess, "inserting cart line").Logger()
		logger.Info().Msg("cart line not found, inserting cart line")
		line, err = svc.store.InsertLine(c, domain.CartLine{
			ID:        uuid.New(),
			UserID:    userID,
			ProductID: param.ProductID,
			Quantity:  count,
			Selected:  true,
		})
		if err != nil {
			err = fmt.Errorf("failed inserting cart line with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
		logger.Info().Str(log.KeyCartLineID, line.ID.String()).Msg("inserted cart line")
	case err != nil:
		err = fmt.Errorf("failed finding cart line with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	default:
		quantity := line.Quantity + count
		logger = logger.With().
			Str(log.KeyProcess, "increasing cart line quantity").
			Str(log.KeyCartLineID, line.ID.String()).
			Int32(log.KeyQuantity, quantity).
			Logger()
		logger.Info().Msg("increasing cart line quantity")
		if err := svc.store.UpdateLineQuantity(c, line.ID, quantity); err != nil {
			err = fmt.Errorf("failed increasing cart line quantity with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
		logger.Info().Msg("increased cart line quantity")
	}

	c = logger.WithContext(c)
	return svc.List(c, userID)
}

func (svc *CartService) Update(
	c context.Context,
	userID uuid.UUID,
	param request.UpdateCartLine,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService Update")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService Update").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyProductID, param.ProductID.String()).
		Logger()

	if param.ProductID == uuid.Nil || param.Count == nil {
		err := inErrors.InvalidArgument(
			"productId and count are required, productId=%s",
			param.ProductID.String(),
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	count := *param.Count
	logger = logger.With().Int32(log.KeyRequestedQuantity, count).Logger()

	logger = logger.With().Str(log.KeyProcess, "finding cart line").Logger()
	logger.Info().Msg("finding cart line")
	line, err := svc.store.FindLine(c, userID, param.ProductID)
	switch {
	case errors.Is(err, domain.ErrLineNotFound):
		logger.Info().Msg("cart line not found, skipping update")
	case err != nil:
		err = fmt.Errorf("failed finding cart line with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	default:
		logger = logger.With().
			Str(log.KeyProcess, "updating cart line quantity").
			Str(log.KeyCartLineID, line.ID.String()).
			Logger()
		logger.Info().Msg("updating cart line quantity")
		if err := svc.store.UpdateLineQuantity(c, line.ID, count); err != nil {
			err = fmt.Errorf("failed updating cart line quantity with error=%w", err)
			inOtel.RecordError(err, span)
			logger.Error().Err(err).Msg(err.Error())
			return response.Cart{}, err
		}
		logger.Info().Msg("updated cart line quantity")
	}

	c = logger.WithContext(c)
	return svc.List(c, userID)
}

// Delete removes the lines of the given comma delimited product ids.
func (svc *CartService) Delete(
	c context.Context,
	userID uuid.UUID,
	productIds string,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService Delete")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService Delete").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyProductIDs, productIds).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "parsing productIds").Logger()
	logger.Info().Msg("parsing productIds")
	ids, err := request.ParseProductIds(productIds)
	if err != nil {
		err = fmt.Errorf("failed parsing productIds with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Int(log.KeyCartLineCount, len(ids)).Msg("parsed productIds")

	logger = logger.With().Str(log.KeyProcess, "deleting cart lines").Logger()
	logger.Info().Msg("deleting cart lines")
	if err := svc.store.DeleteLines(c, userID, ids); err != nil {
		err = fmt.Errorf("failed deleting cart lines with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("deleted cart lines")

	c = logger.WithContext(c)
	return svc.List(c, userID)
}

// ToggleSelection marks one line, or every line when productID is domain.AllProducts, as selected
// or unselected.
func (svc *CartService) ToggleSelection(
	c context.Context,
	userID uuid.UUID,
	productID uuid.UUID,
	selected bool,
) (response.Cart, error) {
	c, span := otel.Tracer.Start(c, "CartService ToggleSelection")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService ToggleSelection").
		Str(log.KeyUserID, userID.String()).
		Str(log.KeyProductID, productID.String()).
		Bool(log.KeySelected, selected).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "setting selection").Logger()
	logger.Info().Msg("setting selection")
	if err := svc.store.SetSelected(c, userID, productID, selected); err != nil {
		err = fmt.Errorf("failed setting selection with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Cart{}, err
	}
	logger.Info().Msg("set selection")

	c = logger.WithContext(c)
	return svc.List(c, userID)
}

// CountItems returns the sum of line quantities of the user, zero for an anonymous user.
func (svc *CartService) CountItems(c context.Context, userID uuid.UUID) (int64, error) {
	c, span := otel.Tracer.Start(c, "CartService CountItems")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartService CountItems").
		Str(log.KeyUserID, userID.String()).
		Logger()

	if userID == uuid.Nil {
		logger.Info().Msg("anonymous user, returning zero items")
		return 0, nil
	}

	logger = logger.With().Str(log.KeyProcess, "counting items").Logger()
	logger.Info().Msg("counting items")
	count, err := svc.store.CountItems(c, userID)
	if err != nil {
		err = fmt.Errorf("failed counting items of userId=%s with error=%w", userID.String(), err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return 0, err
	}
	logger.Info().Int64(log.KeyItemCount, count).Msg("counted items")

	return count, nil
}
