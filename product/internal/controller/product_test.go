package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/mallcart/internal/auth"
	inHttp "github.com/Alturino/mallcart/internal/http"
	"github.com/Alturino/mallcart/internal/repository"
	"github.com/Alturino/mallcart/product/internal/service"
	"github.com/Alturino/mallcart/product/pkg/response"
)

const secretKey = "product-secret"

type memoryQueries struct {
	products map[uuid.UUID]repository.Product
}

func (m *memoryQueries) FindProductById(_ context.Context, id uuid.UUID) (repository.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return repository.Product{}, pgx.ErrNoRows
	}
	return p, nil
}

func (m *memoryQueries) InsertProduct(
	_ context.Context,
	arg repository.InsertProductParams,
) (repository.Product, error) {
	p := repository.Product{
		ID:     arg.ID,
		Name:   arg.Name,
		Price:  arg.Price,
		Stock:  arg.Stock,
		Status: arg.Status,
	}
	m.products[p.ID] = p
	return p, nil
}

func (m *memoryQueries) UpdateProductStock(
	_ context.Context,
	arg repository.UpdateProductStockParams,
) (int64, error) {
	p, ok := m.products[arg.ID]
	if !ok {
		return 0, nil
	}
	p.Stock = arg.Stock
	m.products[arg.ID] = p
	return 1, nil
}

func (m *memoryQueries) UpdateProductStatus(
	_ context.Context,
	arg repository.UpdateProductStatusParams,
) (int64, error) {
	p, ok := m.products[arg.ID]
	if !ok {
		return 0, nil
	}
	p.Status = arg.Status
	m.products[arg.ID] = p
	return 1, nil
}

type productEnvelope struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Data       struct {
		Product response.Product `json:"product"`
	} `json:"data"`
}

func do(t *testing.T, router *mux.Router, method, target, body string, authenticated bool) (int, productEnvelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if authenticated {
		token, err := auth.SignToken(uuid.New(), secretKey, time.Hour)
		require.NoError(t, err)
		req.Header.Set(inHttp.KeyHeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	env := productEnvelope{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec.Code, env
}

func TestProductController(t *testing.T) {
	router := mux.NewRouter()
	svc := service.NewProductService(&memoryQueries{products: map[uuid.UUID]repository.Product{}}, nil)
	AttachProductController(router, svc, secretKey)

	code, _ := do(t, router, http.MethodPost, "/products", `{"name":"Phone","price":"9.99","stock":3}`, false)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, inserted := do(t, router, http.MethodPost, "/products", `{"name":"Phone","price":"9.99","stock":3}`, true)
	require.Equal(t, http.StatusOK, code)
	productID := inserted.Data.Product.ProductID
	require.NotEqual(t, uuid.Nil, productID)

	code, found := do(t, router, http.MethodGet, "/products/"+productID.String(), "", false)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Phone", found.Data.Product.Name)
	assert.Equal(t, int32(3), found.Data.Product.Stock)
	assert.Equal(t, service.StatusOnSale, found.Data.Product.Status)

	code, updated := do(t, router, http.MethodPut, "/products/"+productID.String()+"/stock", `{"stock":1}`, true)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, int32(1), updated.Data.Product.Stock)

	code, _ = do(t, router, http.MethodPut, "/products/"+productID.String()+"/stock", `{"stock":-1}`, true)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = do(t, router, http.MethodDelete, "/products/"+productID.String(), "", true)
	require.Equal(t, http.StatusOK, code)

	code, found = do(t, router, http.MethodGet, "/products/"+productID.String(), "", false)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, service.StatusDeleted, found.Data.Product.Status)

	code, _ = do(t, router, http.MethodGet, "/products/"+uuid.NewString(), "", false)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = do(t, router, http.MethodGet, "/products/not-a-uuid", "", false)
	assert.Equal(t, http.StatusBadRequest, code)
}
