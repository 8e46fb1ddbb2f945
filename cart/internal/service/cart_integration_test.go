package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	testRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/Alturino/mallcart/cart/internal/catalog"
	"github.com/Alturino/mallcart/cart/internal/domain"
	"github.com/Alturino/mallcart/cart/internal/store"
	"github.com/Alturino/mallcart/cart/pkg/request"
	"github.com/Alturino/mallcart/cart/pkg/response"
	"github.com/Alturino/mallcart/internal/config"
	"github.com/Alturino/mallcart/internal/infra"
	"github.com/Alturino/mallcart/internal/repository"
)

type integration struct {
	queries *repository.Queries
	cache   *redis.Client
	svc     *CartService
}

func setupIntegration(t *testing.T) integration {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container backed test in short mode")
	}
	c := context.Background()

	pgContainer, err := postgres.Run(
		c,
		"postgres:16.6-alpine3.21",
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.WithDatabase("mallcart"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			t.Logf("failed terminating postgres container with error: %s", err)
		}
	})

	pgConnStr, err := pgContainer.ConnectionString(c, "sslmode=disable")
	require.NoError(t, err)
	pgConfig, err := pgxpool.ParseConfig(pgConnStr)
	require.NoError(t, err)
	pgConfig.AfterConnect = infra.RegisterTypes
	pool, err := pgxpool.NewWithConfig(c, pgConfig)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pool.Ping(c))

	migrationPath, err := filepath.Abs(filepath.Join("..", "..", "..", "migrations"))
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(c, pool, "file://"+migrationPath))

	redisContainer, err := testRedis.Run(c, "redis:7.4.2-alpine3.21")
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(redisContainer); err != nil {
			t.Logf("failed terminating redis container with error: %s", err)
		}
	})
	redisConnStr, err := redisContainer.ConnectionString(c)
	require.NoError(t, err)
	redisOpt, err := redis.ParseURL(redisConnStr)
	require.NoError(t, err)
	cache := redis.NewClient(redisOpt)
	t.Cleanup(func() { cache.Close() })
	require.NoError(t, cache.Ping(c).Err())

	queries := repository.New(pool)
	svc := NewCartService(
		store.NewCartStore(queries),
		catalog.NewDatabaseCatalog(queries, cache, time.Minute),
		config.Cart{ImageHost: imageHost},
	)
	return integration{queries: queries, cache: cache, svc: svc}
}

func (i integration) insertProduct(t *testing.T, price string, stock int32) uuid.UUID {
	t.Helper()
	product, err := i.queries.InsertProduct(context.Background(), repository.InsertProductParams{
		ID:        uuid.New(),
		Name:      "product " + price,
		Subtitle:  repository.TextFromString("subtitle"),
		MainImage: repository.TextFromString("image.jpg"),
		Price:     repository.NumericFromDecimal(decimal.RequireFromString(price)),
		Stock:     stock,
		Status:    int32(domain.ProductStatusOnSale),
	})
	require.NoError(t, err)
	return product.ID
}

func TestCartAgainstPostgresAndRedis(t *testing.T) {
	it := setupIntegration(t)
	c := context.Background()
	userID := uuid.New()
	p1 := it.insertProduct(t, "5.00", 2)
	p2 := it.insertProduct(t, "0.10", 100)

	view, err := it.svc.List(c, userID)
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.True(t, view.AllSelected)

	view, err = it.svc.Add(c, userID, request.AddCartLine{ProductID: p1, Count: count(3)})
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, int32(2), view.Lines[0].Quantity)
	assert.Equal(t, response.LimitNumFail, view.Lines[0].LimitQuantity)
	assertDecimal(t, "10.00", view.TotalPrice)

	stored, err := it.queries.FindCartLineByUserIdAndProductId(
		c,
		repository.FindCartLineByUserIdAndProductIdParams{UserID: userID, ProductID: p1},
	)
	require.NoError(t, err)
	assert.Equal(t, int32(2), stored.Quantity)

	view, err = it.svc.Add(c, userID, request.AddCartLine{ProductID: p2, Count: count(3)})
	require.NoError(t, err)
	require.Len(t, view.Lines, 2)
	assert.Equal(t, []uuid.UUID{p1, p2}, []uuid.UUID{view.Lines[0].ProductID, view.Lines[1].ProductID})
	assertDecimal(t, "10.30", view.TotalPrice)
	assert.Equal(t, response.LimitNumSuccess, view.Lines[0].LimitQuantity)

	view, err = it.svc.ToggleSelection(c, userID, p1, false)
	require.NoError(t, err)
	assertDecimal(t, "0.30", view.TotalPrice)
	assert.False(t, view.AllSelected)

	view, err = it.svc.ToggleSelection(c, userID, domain.AllProducts, true)
	require.NoError(t, err)
	assert.True(t, view.AllSelected)

	view, err = it.svc.Update(c, userID, request.UpdateCartLine{ProductID: p2, Count: count(0)})
	require.NoError(t, err)
	assert.Equal(t, int32(0), view.Lines[1].Quantity)
	assertDecimal(t, "10.00", view.TotalPrice)

	items, err := it.svc.CountItems(c, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), items)

	view, err = it.svc.Delete(c, userID, p1.String()+","+p2.String())
	require.NoError(t, err)
	assert.Empty(t, view.Lines)

	items, err = it.svc.CountItems(c, userID)
	require.NoError(t, err)
	assert.Zero(t, items)
}
