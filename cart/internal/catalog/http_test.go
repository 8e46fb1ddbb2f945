package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/mallcart/cart/internal/domain"
	inHttp "github.com/Alturino/mallcart/internal/http"
	"github.com/Alturino/mallcart/internal/log"
)

func TestHttpCatalogFindProductById(t *testing.T) {
	onSale := domain.CatalogEntry{
		ProductID: uuid.New(),
		Name:      "Phone",
		Price:     decimal.RequireFromString("12.34"),
		Stock:     3,
		Status:    domain.ProductStatusOnSale,
	}
	deleted := domain.CatalogEntry{ProductID: uuid.New(), Status: domain.ProductStatusDeleted}
	broken := uuid.New()

	var requestIDs []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestIDs = append(requestIDs, r.Header.Get(inHttp.KeyHeaderRequestID))
		entries := map[string]domain.CatalogEntry{
			"/products/" + onSale.ProductID.String():  onSale,
			"/products/" + deleted.ProductID.String(): deleted,
		}
		if r.URL.Path == "/products/"+broken.String() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		entry, ok := entries[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set(inHttp.KeyHeaderContentType, inHttp.ValueHeaderApplicationJson)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":     inHttp.StatusSuccess,
			"statusCode": http.StatusOK,
			"data":       map[string]any{"product": entry},
		})
	}))
	t.Cleanup(server.Close)

	catalog := NewHttpCatalog(server.Client(), server.URL+"/", time.Second)
	c := log.AttachRequestIDToContext(context.Background(), "request-1")

	actual, err := catalog.FindProductById(c, onSale.ProductID)
	require.NoError(t, err)
	assert.Equal(t, onSale.ProductID, actual.ProductID)
	assert.Equal(t, "Phone", actual.Name)
	assert.True(t, onSale.Price.Equal(actual.Price))
	assert.Equal(t, int32(3), actual.Stock)
	assert.Equal(t, "request-1", requestIDs[0])

	_, err = catalog.FindProductById(c, deleted.ProductID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = catalog.FindProductById(c, uuid.New())
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = catalog.FindProductById(c, broken)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrProductNotFound)
}
