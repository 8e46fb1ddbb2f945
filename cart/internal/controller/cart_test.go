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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/mallcart/cart/internal/domain"
	"github.com/Alturino/mallcart/cart/pkg/request"
	"github.com/Alturino/mallcart/cart/pkg/response"
	"github.com/Alturino/mallcart/internal/auth"
	inErrors "github.com/Alturino/mallcart/internal/errors"
	inHttp "github.com/Alturino/mallcart/internal/http"
)

const secretKey = "controller-secret"

type call struct {
	method     string
	userID     uuid.UUID
	productID  uuid.UUID
	count      *int32
	productIds string
	selected   bool
}

type fakeService struct {
	calls []call
	cart  response.Cart
	items int64
	err   error
}

func (f *fakeService) List(_ context.Context, userID uuid.UUID) (response.Cart, error) {
	f.calls = append(f.calls, call{method: "List", userID: userID})
	return f.cart, f.err
}

func (f *fakeService) Add(_ context.Context, userID uuid.UUID, param request.AddCartLine) (response.Cart, error) {
	f.calls = append(f.calls, call{method: "Add", userID: userID, productID: param.ProductID, count: param.Count})
	return f.cart, f.err
}

func (f *fakeService) Update(_ context.Context, userID uuid.UUID, param request.UpdateCartLine) (response.Cart, error) {
	f.calls = append(f.calls, call{method: "Update", userID: userID, productID: param.ProductID, count: param.Count})
	return f.cart, f.err
}

func (f *fakeService) Delete(_ context.Context, userID uuid.UUID, productIds string) (response.Cart, error) {
	f.calls = append(f.calls, call{method: "Delete", userID: userID, productIds: productIds})
	return f.cart, f.err
}

func (f *fakeService) ToggleSelection(
	_ context.Context,
	userID, productID uuid.UUID,
	selected bool,
) (response.Cart, error) {
	f.calls = append(f.calls, call{method: "ToggleSelection", userID: userID, productID: productID, selected: selected})
	return f.cart, f.err
}

func (f *fakeService) CountItems(_ context.Context, userID uuid.UUID) (int64, error) {
	f.calls = append(f.calls, call{method: "CountItems", userID: userID})
	return f.items, f.err
}

type envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"statusCode"`
	Code       int             `json:"code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

func newRouter(svc CartService) *mux.Router {
	router := mux.NewRouter()
	AttachCartController(router, svc, secretKey)
	return router
}

func serve(t *testing.T, router *mux.Router, method, target, body string, userID uuid.UUID) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if userID != uuid.Nil {
		token, err := auth.SignToken(userID, secretKey, time.Hour)
		require.NoError(t, err)
		req.Header.Set(inHttp.KeyHeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	env := envelope{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestCartControllerRoutes(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	other := uuid.New()

	tests := []struct {
		name     string
		method   string
		target   string
		body     string
		expected call
	}{
		{
			name:     "given get carts should list",
			method:   http.MethodGet,
			target:   "/carts",
			expected: call{method: "List", userID: userID},
		},
		{
			name:     "given post lines should add",
			method:   http.MethodPost,
			target:   "/carts/lines",
			body:     `{"product_id":"` + productID.String() + `","count":3}`,
			expected: call{method: "Add", userID: userID, productID: productID},
		},
		{
			name:     "given put line should update",
			method:   http.MethodPut,
			target:   "/carts/lines/" + productID.String(),
			body:     `{"count":0}`,
			expected: call{method: "Update", userID: userID, productID: productID},
		},
		{
			name:   "given delete lines should delete",
			method: http.MethodDelete,
			target: "/carts/lines?product_ids=" + productID.String() + "," + other.String(),
			expected: call{
				method:     "Delete",
				userID:     userID,
				productIds: productID.String() + "," + other.String(),
			},
		},
		{
			name:     "given put selection should toggle all lines",
			method:   http.MethodPut,
			target:   "/carts/selection",
			body:     `{"selected":false}`,
			expected: call{method: "ToggleSelection", userID: userID, productID: domain.AllProducts},
		},
		{
			name:     "given put line selection should toggle one line",
			method:   http.MethodPut,
			target:   "/carts/lines/" + productID.String() + "/selection",
			body:     `{"selected":true}`,
			expected: call{method: "ToggleSelection", userID: userID, productID: productID, selected: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{cart: response.Cart{
				Lines:       []response.CartLine{},
				TotalPrice:  decimal.RequireFromString("15.00"),
				AllSelected: true,
				ImageHost:   "http://img.example.com/",
			}}
			rec, env := serve(t, newRouter(svc), tt.method, tt.target, tt.body, userID)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, inHttp.StatusSuccess, env.Status)
			assert.Equal(t, int(inErrors.CodeSuccess), env.Code)
			require.Len(t, svc.calls, 1)
			actual := svc.calls[0]
			actual.count = nil
			assert.Equal(t, tt.expected, actual)

			data := struct {
				Cart response.Cart `json:"cart"`
			}{}
			require.NoError(t, json.Unmarshal(env.Data, &data))
			assert.True(t, data.Cart.AllSelected)
			assert.True(t, decimal.RequireFromString("15").Equal(data.Cart.TotalPrice))
		})
	}
}

func TestCartControllerPassesCount(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()
	svc := &fakeService{}

	_, _ = serve(t, newRouter(svc), http.MethodPost, "/carts/lines", `{"product_id":"`+productID.String()+`","count":4}`, userID)

	require.Len(t, svc.calls, 1)
	require.NotNil(t, svc.calls[0].count)
	assert.Equal(t, int32(4), *svc.calls[0].count)
}

func TestCartControllerRejectsInvalidRequests(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name               string
		method             string
		target             string
		body               string
		userID             uuid.UUID
		expectedStatusCode int
		expectedCode       inErrors.Code
	}{
		{
			name:               "given no token should return need login",
			method:             http.MethodGet,
			target:             "/carts",
			expectedStatusCode: http.StatusUnauthorized,
			expectedCode:       inErrors.CodeNeedLogin,
		},
		{
			name:               "given malformed body should return illegal argument",
			method:             http.MethodPost,
			target:             "/carts/lines",
			body:               `{"product_id":`,
			userID:             userID,
			expectedStatusCode: http.StatusBadRequest,
			expectedCode:       inErrors.CodeInvalidArgument,
		},
		{
			name:               "given negative count should return illegal argument",
			method:             http.MethodPost,
			target:             "/carts/lines",
			body:               `{"product_id":"` + uuid.NewString() + `","count":-2}`,
			userID:             userID,
			expectedStatusCode: http.StatusBadRequest,
			expectedCode:       inErrors.CodeInvalidArgument,
		},
		{
			name:               "given unparseable product id should return illegal argument",
			method:             http.MethodPut,
			target:             "/carts/lines/P1",
			body:               `{"count":1}`,
			userID:             userID,
			expectedStatusCode: http.StatusBadRequest,
			expectedCode:       inErrors.CodeInvalidArgument,
		},
		{
			name:               "given selection without flag should return illegal argument",
			method:             http.MethodPut,
			target:             "/carts/selection",
			body:               `{}`,
			userID:             userID,
			expectedStatusCode: http.StatusBadRequest,
			expectedCode:       inErrors.CodeInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			rec, env := serve(t, newRouter(svc), tt.method, tt.target, tt.body, tt.userID)

			assert.Equal(t, tt.expectedStatusCode, rec.Code)
			assert.Equal(t, inHttp.StatusFailed, env.Status)
			assert.Equal(t, int(tt.expectedCode), env.Code)
			assert.Empty(t, svc.calls)
		})
	}
}

func TestCartControllerMapsServiceErrors(t *testing.T) {
	userID := uuid.New()

	t.Run("given invalid argument from service should return bad request", func(t *testing.T) {
		svc := &fakeService{err: inErrors.InvalidArgument("empty productIds")}
		rec, env := serve(t, newRouter(svc), http.MethodDelete, "/carts/lines?product_ids=", "", userID)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, int(inErrors.CodeInvalidArgument), env.Code)
	})

	t.Run("given unexpected error from service should return internal server error", func(t *testing.T) {
		svc := &fakeService{err: assert.AnError}
		rec, env := serve(t, newRouter(svc), http.MethodGet, "/carts", "", userID)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, int(inErrors.CodeError), env.Code)
	})
}

func TestCartControllerCountItems(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		userID         uuid.UUID
		expectedUserID uuid.UUID
	}{
		{name: "given anonymous request should count for nil user", userID: uuid.Nil, expectedUserID: uuid.Nil},
		{name: "given authenticated request should count for token subject", userID: userID, expectedUserID: userID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{items: 9}
			rec, env := serve(t, newRouter(svc), http.MethodGet, "/carts/count", "", tt.userID)

			assert.Equal(t, http.StatusOK, rec.Code)
			require.Len(t, svc.calls, 1)
			assert.Equal(t, call{method: "CountItems", userID: tt.expectedUserID}, svc.calls[0])

			data := struct {
				Count int64 `json:"count"`
			}{}
			require.NoError(t, json.Unmarshal(env.Data, &data))
			assert.Equal(t, int64(9), data.Count)
		})
	}
}
