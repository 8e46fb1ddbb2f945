package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Alturino/mallcart/cart/internal/domain"
	"github.com/Alturino/mallcart/cart/internal/otel"
	"github.com/Alturino/mallcart/internal/log"
	inOtel "github.com/Alturino/mallcart/internal/otel"
	"github.com/Alturino/mallcart/internal/repository"
)

// ProductFinder is satisfied by *repository.Queries.
type ProductFinder interface {
	FindProductById(c context.Context, id uuid.UUID) (repository.Product, error)
}

// DatabaseCatalog reads products from the products table through a read-through redis cache. A nil
// cache client or a non-positive ttl disables caching.
type DatabaseCatalog struct {
	finder ProductFinder
	cache  entryCache
}

func NewDatabaseCatalog(finder ProductFinder, cache *redis.Client, ttl time.Duration) *DatabaseCatalog {
	return &DatabaseCatalog{finder: finder, cache: entryCache{client: cache, ttl: ttl}}
}

func EntryFromProduct(p repository.Product) domain.CatalogEntry {
	return domain.CatalogEntry{
		ProductID: p.ID,
		Name:      p.Name,
		Subtitle:  p.Subtitle.String,
		MainImage: p.MainImage.String,
		Price:     p.PriceDecimal(),
		Stock:     p.Stock,
		Status:    domain.ProductStatus(p.Status),
	}
}

func visible(entry domain.CatalogEntry) (domain.CatalogEntry, error) {
	if !entry.Status.Visible() {
		return domain.CatalogEntry{}, domain.ErrProductNotFound
	}
	return entry, nil
}

func (d *DatabaseCatalog) FindProductById(
	c context.Context,
	productID uuid.UUID,
) (domain.CatalogEntry, error) {
	c, span := otel.Tracer.Start(c, "DatabaseCatalog FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "DatabaseCatalog FindProductById").
		Str(log.KeyProductID, productID.String()).
		Str(log.KeyCacheKey, CacheKey(productID)).
		Logger()

	if d.cache.enabled() {
		logger = logger.With().Str(log.KeyProcess, "finding product in cache").Logger()
		logger.Trace().Msg("finding product in cache")
		entry, err := d.cache.get(c, productID)
		switch {
		case err == nil:
			span.AddEvent("found product in cache")
			logger.Trace().Msg("found product in cache")
			return visible(entry)
		case errors.Is(err, redis.Nil):
			logger.Trace().Msg("product not found in cache")
		default:
			err = fmt.Errorf("failed finding product in cache with error=%w", err)
			logger.Warn().Err(err).Msg(err.Error())
		}
	}

	logger = logger.With().Str(log.KeyProcess, "finding product in database").Logger()
	logger.Trace().Msg("finding product in database")
	span.AddEvent("finding product in database")
	product, err := d.finder.FindProductById(c, productID)
	if errors.Is(err, pgx.ErrNoRows) {
		logger.Info().Msg("product not found in database")
		return domain.CatalogEntry{}, domain.ErrProductNotFound
	}
	if err != nil {
		err = fmt.Errorf("failed finding product in database with error=%w", err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return domain.CatalogEntry{}, err
	}
	entry := EntryFromProduct(product)
	span.AddEvent("found product in database")
	logger.Trace().Any(log.KeyProduct, entry).Msg("found product in database")

	if d.cache.enabled() {
		logger = logger.With().Str(log.KeyProcess, "inserting product to cache").Logger()
		logger.Trace().Msg("inserting product to cache")
		if err := d.cache.set(c, entry); err != nil {
			err = fmt.Errorf("failed inserting product to cache with error=%w", err)
			logger.Warn().Err(err).Msg(err.Error())
		} else {
			logger.Trace().Msg("inserted product to cache")
		}
	}

	return visible(entry)
}
