package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	"github.com/Alturino/mallcart/cart/internal/domain"
	"github.com/Alturino/mallcart/cart/internal/otel"
	"github.com/Alturino/mallcart/cart/pkg/request"
	"github.com/Alturino/mallcart/cart/pkg/response"
	"github.com/Alturino/mallcart/internal/auth"
	inErrors "github.com/Alturino/mallcart/internal/errors"
	inHttp "github.com/Alturino/mallcart/internal/http"
	"github.com/Alturino/mallcart/internal/log"
	"github.com/Alturino/mallcart/internal/middleware"
	inOtel "github.com/Alturino/mallcart/internal/otel"
	"github.com/Alturino/mallcart/internal/validate"
)

const (
	PathVarProductId     = "productId"
	QueryParamProductIds = "product_ids"
)

// CartService is implemented by *service.CartService.
type CartService interface {
	List(c context.Context, userID uuid.UUID) (response.Cart, error)
	Add(c context.Context, userID uuid.UUID, param request.AddCartLine) (response.Cart, error)
	Update(c context.Context, userID uuid.UUID, param request.UpdateCartLine) (response.Cart, error)
	Delete(c context.Context, userID uuid.UUID, productIds string) (response.Cart, error)
	ToggleSelection(c context.Context, userID, productID uuid.UUID, selected bool) (response.Cart, error)
	CountItems(c context.Context, userID uuid.UUID) (int64, error)
}

type CartController struct {
	service  CartService
	validate *validator.Validate
}

func AttachCartController(router *mux.Router, service CartService, secretKey string) {
	controller := CartController{
		service:  service,
		validate: validate.New(),
	}

	carts := router.PathPrefix("/carts").Subrouter()
	carts.Handle("/count", middleware.OptionalAuth(secretKey)(http.HandlerFunc(controller.CountItems))).
		Methods(http.MethodGet)

	authed := carts.NewRoute().Subrouter()
	authed.Use(middleware.Auth(secretKey))
	authed.HandleFunc("", controller.List).Methods(http.MethodGet)
	authed.HandleFunc("/lines", controller.Add).Methods(http.MethodPost)
	authed.HandleFunc("/lines", controller.Delete).Methods(http.MethodDelete)
	authed.HandleFunc("/lines/{productId}", controller.Update).Methods(http.MethodPut)
	authed.HandleFunc("/lines/{productId}/selection", controller.ToggleLineSelection).
		Methods(http.MethodPut)
	authed.HandleFunc("/selection", controller.ToggleAllSelection).Methods(http.MethodPut)
}

func (t CartController) fail(
	c context.Context,
	w http.ResponseWriter,
	span trace.Span,
	logger zerolog.Logger,
	err error,
) {
	inOtel.RecordError(err, span)
	logger.Error().Err(err).Msg(err.Error())
	inHttp.WriteErrorResponse(c, w, err)
}

func (t CartController) userId(c context.Context) (uuid.UUID, error) {
	userId, err := auth.UserIdFromJwtToken(c)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed getting userId from jwtToken with error=%w", err)
	}
	return userId, nil
}

func (t CartController) decode(c context.Context, r *http.Request, body any) error {
	if err := json.NewDecoder(r.Body).Decode(body); err != nil {
		return fmt.Errorf(
			"failed decoding request body with error=%w",
			inErrors.Join(inErrors.InvalidArgument("malformed request body"), err),
		)
	}
	if err := t.validate.StructCtx(c, body); err != nil {
		return fmt.Errorf(
			"failed validating request body with error=%w",
			inErrors.Join(inErrors.InvalidArgument("invalid request body"), err),
		)
	}
	return nil
}

func productIdFromPath(r *http.Request) (uuid.UUID, error) {
	raw := mux.Vars(r)[PathVarProductId]
	productId, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf(
			"failed parsing productId with error=%w",
			inErrors.Join(inErrors.InvalidArgument("unparseable productId=%s", raw), err),
		)
	}
	return productId, nil
}

func writeCart(c context.Context, w http.ResponseWriter, message string, cart response.Cart) {
	inHttp.WriteSuccessResponse(c, w, message, map[string]interface{}{"cart": cart})
}

func (t CartController) List(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController List")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "CartController List").Logger()

	userId, err := t.userId(c)
	if err != nil {
		t.fail(c, w, span, logger, err)
		return
	}
	logger = logger.With().Str(log.KeyUserID, userId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "listing cart").Logger()
	logger.Info().Msg("listing cart")
	c = logger.WithContext(c)
	cart, err := t.service.List(c, userId)
	if err != nil {
		t.fail(c, w, span, logger, fmt.Errorf("failed listing cart with error=%w", err))
		return
	}
	logger.Info().Msg("listed cart")

	writeCart(c, w, "listed cart", cart)
}

func (t CartController) Add(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController Add")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "CartController Add").Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.AddCartLine{}
	if err := t.decode(c, r, &reqBody); err != nil {
		t.fail(c, w, span, logger, err)
		return
	}
	logger.Info().Msg("decoded request body")

	userId, err := t.userId(c)
	if err != nil {
		t.fail(c, w, span, logger, err)
		return
	}
	logger = logger.With().
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProductID, reqBody.ProductID.String()).
		Str(log.KeyProcess, "adding cart line").
		Logger()

	logger.Info().Msg("adding cart line")
	c = logger.WithContext(c)
	cart, err := t.service.Add(c, userId, reqBody)
	if err != nil {
		t.fail(c, w, span, logger, fmt.Errorf("failed adding cart line with error=%w", err))
		return
	}
	logger.Info().Msg("added cart line")

	writeCart(c, w, "added cart line", cart)
}

func (t CartController) Update(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController Update")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "CartController Update").Logger()

	productId, err := productIdFromPath(r)
	if err != nil {
		t.fail(c, w, span, logger, err)
		return
	}
	logger = logger.With().Str(log.KeyProductID, productId.String()).Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.UpdateCartLine{}
	if err := t.decode(c, r, &reqBody); err != nil {
		t.fail(c, w, span, logger, err)
		return
	}
	reqBody.ProductID = productId
	logger.Info().Msg("decoded request body")

	userId, err := t.userId(c)
	if err != nil {
		t.fail(c, w, span, logger, err)
		return
	}
	logger = logger.With().
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProcess, "updating cart line").
		Logger()

	logger.Info().Msg("updating cart line")
	c = logger.WithContext(c)
	cart, err := t.service.Update(c, userId, reqBody)
	if err != nil {
		t.fail(c, w, span, logger, fmt.Errorf("failed updating cart line with error=%w", err))
		return
	}
	logger.Info().Msg("updated cart line")

	writeCart(c, w, "updated cart line", cart)
}

func (t CartController) Delete(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController Delete")
	defer span.End()

	productIds := r.URL.Query().Get(QueryParamProductIds)
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController Delete").
		Str(log.KeyProductIDs, productIds).
		Logger()

	userId, err := t.userId(c)
	if err != nil {
		t.fail(c, w, span, logger, err)
		return
	}
	logger = logger.With().
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProcess, "deleting cart lines").
		Logger()

	logger.Info().Msg("deleting cart lines")
	c = logger.WithContext(c)
	cart, err := t.service.Delete(c, userId, productIds)
	if err != nil {
		t.fail(c, w, span, logger, fmt.Errorf("failed deleting cart lines with error=%w", err))
		return
	}
	logger.Info().Msg("deleted cart lines")

	writeCart(c, w, "deleted cart lines", cart)
}

func (t CartController) ToggleAllSelection(w http.ResponseWriter, r *http.Request) {
	t.toggleSelection(w, r, domain.AllProducts)
}

func (t CartController) ToggleLineSelection(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController ToggleLineSelection")
	defer span.End()

	productId, err := productIdFromPath(r)
	if err != nil {
		logger := zerolog.Ctx(c).With().Str(log.KeyTag, "CartController ToggleLineSelection").Logger()
		t.fail(c, w, span, logger, err)
		return
	}
	if productId == domain.AllProducts {
		logger := zerolog.Ctx(c).With().Str(log.KeyTag, "CartController ToggleLineSelection").Logger()
		t.fail(c, w, span, logger, inErrors.InvalidArgument("productId must not be the nil uuid"))
		return
	}
	t.toggleSelection(w, r.WithContext(c), productId)
}

func (t CartController) toggleSelection(w http.ResponseWriter, r *http.Request, productId uuid.UUID) {
	c, span := otel.Tracer.Start(r.Context(), "CartController ToggleSelection")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "CartController ToggleSelection").
		Str(log.KeyProductID, productId.String()).
		Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Info().Msg("decoding request body")
	reqBody := request.ToggleSelection{}
	if err := t.decode(c, r, &reqBody); err != nil {
		t.fail(c, w, span, logger, err)
		return
	}
	logger.Info().Msg("decoded request body")

	userId, err := t.userId(c)
	if err != nil {
		t.fail(c, w, span, logger, err)
		return
	}
	logger = logger.With().
		Str(log.KeyUserID, userId.String()).
		Bool(log.KeySelected, *reqBody.Selected).
		Str(log.KeyProcess, "toggling selection").
		Logger()

	logger.Info().Msg("toggling selection")
	c = logger.WithContext(c)
	cart, err := t.service.ToggleSelection(c, userId, productId, *reqBody.Selected)
	if err != nil {
		t.fail(c, w, span, logger, fmt.Errorf("failed toggling selection with error=%w", err))
		return
	}
	logger.Info().Msg("toggled selection")

	writeCart(c, w, "toggled selection", cart)
}

// CountItems answers anonymous requests with zero.
func (t CartController) CountItems(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "CartController CountItems")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "CartController CountItems").Logger()

	userId := uuid.Nil
	if _, ok := auth.JwtTokenFromContext(c); ok {
		id, err := t.userId(c)
		if err != nil {
			t.fail(c, w, span, logger, err)
			return
		}
		userId = id
	}
	logger = logger.With().
		Str(log.KeyUserID, userId.String()).
		Str(log.KeyProcess, "counting items").
		Logger()

	logger.Info().Msg("counting items")
	c = logger.WithContext(c)
	count, err := t.service.CountItems(c, userId)
	if err != nil {
		t.fail(c, w, span, logger, fmt.Errorf("failed counting items with error=%w", err))
		return
	}
	logger.Info().Int64(log.KeyItemCount, count).Msg("counted items")

	inHttp.WriteSuccessResponse(c, w, "counted items", map[string]interface{}{"count": count})
}
