package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/mallcart/internal/constants"
	inErrors "github.com/Alturino/mallcart/internal/errors"
	"github.com/Alturino/mallcart/internal/log"
	inOtel "github.com/Alturino/mallcart/internal/otel"
	"github.com/Alturino/mallcart/internal/repository"
	"github.com/Alturino/mallcart/product/internal/otel"
	"github.com/Alturino/mallcart/product/pkg/request"
	"github.com/Alturino/mallcart/product/pkg/response"
)

const (
	StatusOnSale  int32 = 1
	StatusDeleted int32 = 3
)

var ErrProductNotFound = errors.New("product not found")

// ProductQueries is satisfied by *repository.Queries.
type ProductQueries interface {
	FindProductById(c context.Context, id uuid.UUID) (repository.Product, error)
	InsertProduct(c context.Context, arg repository.InsertProductParams) (repository.Product, error)
	UpdateProductStock(c context.Context, arg repository.UpdateProductStockParams) (int64, error)
	UpdateProductStatus(c context.Context, arg repository.UpdateProductStatusParams) (int64, error)
}

// ProductService owns the products table. Every change evicts the catalog entry cached by the cart
// service so carts see the new stock or status on their next view.
type ProductService struct {
	queries ProductQueries
	cache   *redis.Client
}

func NewProductService(queries ProductQueries, cache *redis.Client) *ProductService {
	return &ProductService{queries: queries, cache: cache}
}

func cacheKey(id uuid.UUID) string {
	return constants.CacheKeyProducts + id.String()
}

func (svc *ProductService) InsertProduct(
	c context.Context,
	param request.Product,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService InsertProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService InsertProduct").
		Logger()

	if param.Price.IsNegative() {
		err := inErrors.InvalidArgument("negative price=%s", param.Price.String())
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	status := param.Status
	if status == 0 {
		status = StatusOnSale
	}

	logger = logger.With().Str(log.KeyProcess, "inserting product to database").Logger()
	logger.Trace().Msg("inserting product to database")
	span.AddEvent("inserting product to database")
	product, err := svc.queries.InsertProduct(c, repository.InsertProductParams{
		ID:        uuid.New(),
		Name:      param.Name,
		Subtitle:  repository.TextFromString(param.Subtitle),
		MainImage: repository.TextFromString(param.MainImage),
		Price:     repository.NumericFromDecimal(param.Price),
		Stock:     param.Stock,
		Status:    status,
	})
	if err != nil {
		err = fmt.Errorf("failed inserting product with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	span.AddEvent("inserted product to database")
	logger.Info().Str(log.KeyProductID, product.ID.String()).Msg("inserted product to database")

	return response.FromRow(product), nil
}

func (svc *ProductService) FindProductById(
	c context.Context,
	id uuid.UUID,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService FindProductById").
		Str(log.KeyProductID, id.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "finding product in database").Logger()
	logger.Trace().Msg("finding product in database")
	product, err := svc.queries.FindProductById(c, id)
	if errors.Is(err, pgx.ErrNoRows) {
		err = fmt.Errorf("failed finding productId=%s with error=%w", id.String(), ErrProductNotFound)
		logger.Info().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	if err != nil {
		err = fmt.Errorf("failed finding product in database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Trace().Msg("found product in database")

	return response.FromRow(product), nil
}

func (svc *ProductService) UpdateStock(
	c context.Context,
	id uuid.UUID,
	param request.ProductStock,
) (response.Product, error) {
	c, span := otel.Tracer.Start(c, "ProductService UpdateStock")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService UpdateStock").
		Str(log.KeyProductID, id.String()).
		Logger()

	if param.Stock == nil || *param.Stock < 0 {
		err := inErrors.InvalidArgument("stock must be zero or positive")
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger = logger.With().Int32(log.KeyStock, *param.Stock).Logger()

	logger = logger.With().Str(log.KeyProcess, "updating product stock").Logger()
	logger.Trace().Msg("updating product stock")
	updated, err := svc.queries.UpdateProductStock(
		c,
		repository.UpdateProductStockParams{ID: id, Stock: *param.Stock},
	)
	if err != nil {
		err = fmt.Errorf("failed updating product stock with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	if updated == 0 {
		err = fmt.Errorf("failed updating productId=%s with error=%w", id.String(), ErrProductNotFound)
		logger.Info().Err(err).Msg(err.Error())
		return response.Product{}, err
	}
	logger.Info().Msg("updated product stock")

	c = logger.WithContext(c)
	svc.evict(c, id)
	return svc.FindProductById(c, id)
}

// RemoveProduct marks the product deleted. Cart lines pointing at it stay in place and are no
// longer priced.
func (svc *ProductService) RemoveProduct(c context.Context, id uuid.UUID) error {
	c, span := otel.Tracer.Start(c, "ProductService RemoveProduct")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "ProductService RemoveProduct").
		Str(log.KeyProductID, id.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "marking product deleted").Logger()
	logger.Trace().Msg("marking product deleted")
	updated, err := svc.queries.UpdateProductStatus(
		c,
		repository.UpdateProductStatusParams{ID: id, Status: StatusDeleted},
	)
	if err != nil {
		err = fmt.Errorf("failed marking product deleted with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if updated == 0 {
		err = fmt.Errorf("failed removing productId=%s with error=%w", id.String(), ErrProductNotFound)
		logger.Info().Err(err).Msg(err.Error())
		return err
	}
	logger.Info().Msg("marked product deleted")

	c = logger.WithContext(c)
	svc.evict(c, id)
	return nil
}

func (svc *ProductService) evict(c context.Context, id uuid.UUID) {
	if svc.cache == nil {
		return
	}
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyProcess, "removing product in cache").
		Str(log.KeyCacheKey, cacheKey(id)).
		Logger()

	logger.Trace().Msg("removing product in cache")
	if err := svc.cache.Del(c, cacheKey(id)).Err(); err != nil {
		err = fmt.Errorf("failed removing product in cache with error=%w", err)
		logger.Warn().Err(err).Msg(err.Error())
		return
	}
	logger.Trace().Msg("removed product in cache")
}
