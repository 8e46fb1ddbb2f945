package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"

	inErrors "github.com/Alturino/mallcart/internal/errors"
	inHttp "github.com/Alturino/mallcart/internal/http"
	"github.com/Alturino/mallcart/internal/log"
	"github.com/Alturino/mallcart/internal/middleware"
	inOtel "github.com/Alturino/mallcart/internal/otel"
	"github.com/Alturino/mallcart/internal/validate"
	"github.com/Alturino/mallcart/product/internal/otel"
	"github.com/Alturino/mallcart/product/internal/service"
	"github.com/Alturino/mallcart/product/pkg/request"
	"github.com/Alturino/mallcart/product/pkg/response"
)

type ProductController struct {
	service  *service.ProductService
	validate *validator.Validate
}

func AttachProductController(router *mux.Router, service *service.ProductService, secretKey string) {
	controller := ProductController{
		service:  service,
		validate: validate.New(),
	}

	products := router.PathPrefix("/products").Subrouter()
	products.HandleFunc("/{productId}", controller.FindProductById).Methods(http.MethodGet)

	authed := products.NewRoute().Subrouter()
	authed.Use(middleware.Auth(secretKey))
	authed.HandleFunc("", controller.InsertProduct).Methods(http.MethodPost)
	authed.HandleFunc("/{productId}/stock", controller.UpdateStock).Methods(http.MethodPut)
	authed.HandleFunc("/{productId}", controller.RemoveProduct).Methods(http.MethodDelete)
}

func (p ProductController) fail(
	c context.Context,
	w http.ResponseWriter,
	span trace.Span,
	logger zerolog.Logger,
	err error,
) {
	logger.Error().Err(err).Msg(err.Error())
	if errors.Is(err, service.ErrProductNotFound) {
		inHttp.WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
			"status":     inHttp.StatusFailed,
			"statusCode": http.StatusNotFound,
			"code":       inErrors.CodeError,
			"message":    err.Error(),
		})
		return
	}
	inOtel.RecordError(err, span)
	inHttp.WriteErrorResponse(c, w, err)
}

func productIdFromPath(r *http.Request) (uuid.UUID, error) {
	raw := mux.Vars(r)["productId"]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf(
			"failed parsing productId with error=%w",
			inErrors.Join(inErrors.InvalidArgument("unparseable productId=%s", raw), err),
		)
	}
	return id, nil
}

func (p ProductController) decode(c context.Context, r *http.Request, body any) error {
	if err := json.NewDecoder(r.Body).Decode(body); err != nil {
		return fmt.Errorf(
			"failed decoding request body with error=%w",
			inErrors.Join(inErrors.InvalidArgument("malformed request body"), err),
		)
	}
	if err := p.validate.StructCtx(c, body); err != nil {
		return fmt.Errorf(
			"failed validating request body with error=%w",
			inErrors.Join(inErrors.InvalidArgument("invalid request body"), err),
		)
	}
	return nil
}

func writeProduct(c context.Context, w http.ResponseWriter, message string, product response.Product) {
	inHttp.WriteSuccessResponse(c, w, message, map[string]interface{}{"product": product})
}

func (p ProductController) InsertProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController InsertProduct")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "ProductController InsertProduct").Logger()

	logger = logger.With().Str(log.KeyProcess, "decoding request body").Logger()
	logger.Trace().Msg("decoding request body")
	reqBody := request.Product{}
	if err := p.decode(c, r, &reqBody); err != nil {
		p.fail(c, w, span, logger, err)
		return
	}
	logger.Trace().Msg("decoded request body")

	logger = logger.With().Str(log.KeyProcess, "inserting product").Logger()
	logger.Info().Msg("inserting product")
	c = logger.WithContext(c)
	product, err := p.service.InsertProduct(c, reqBody)
	if err != nil {
		p.fail(c, w, span, logger, fmt.Errorf("failed inserting product with error=%w", err))
		return
	}
	logger.Info().Str(log.KeyProductID, product.ProductID.String()).Msg("inserted product")

	writeProduct(c, w, "inserted product", product)
}

func (p ProductController) FindProductById(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController FindProductById")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "ProductController FindProductById").Logger()

	id, err := productIdFromPath(r)
	if err != nil {
		p.fail(c, w, span, logger, err)
		return
	}
	logger = logger.With().
		Str(log.KeyProductID, id.String()).
		Str(log.KeyProcess, "finding product").
		Logger()

	logger.Trace().Msg("finding product")
	c = logger.WithContext(c)
	product, err := p.service.FindProductById(c, id)
	if err != nil {
		p.fail(c, w, span, logger, fmt.Errorf("failed finding product with error=%w", err))
		return
	}
	logger.Trace().Msg("found product")

	writeProduct(c, w, "found product", product)
}

func (p ProductController) UpdateStock(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController UpdateStock")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "ProductController UpdateStock").Logger()

	id, err := productIdFromPath(r)
	if err != nil {
		p.fail(c, w, span, logger, err)
		return
	}
	logger = logger.With().Str(log.KeyProductID, id.String()).Logger()

	reqBody := request.ProductStock{}
	if err := p.decode(c, r, &reqBody); err != nil {
		p.fail(c, w, span, logger, err)
		return
	}

	logger = logger.With().Str(log.KeyProcess, "updating product stock").Logger()
	logger.Info().Msg("updating product stock")
	c = logger.WithContext(c)
	product, err := p.service.UpdateStock(c, id, reqBody)
	if err != nil {
		p.fail(c, w, span, logger, fmt.Errorf("failed updating product stock with error=%w", err))
		return
	}
	logger.Info().Msg("updated product stock")

	writeProduct(c, w, "updated product stock", product)
}

func (p ProductController) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	c, span := otel.Tracer.Start(r.Context(), "ProductController RemoveProduct")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "ProductController RemoveProduct").Logger()

	id, err := productIdFromPath(r)
	if err != nil {
		p.fail(c, w, span, logger, err)
		return
	}
	logger = logger.With().
		Str(log.KeyProductID, id.String()).
		Str(log.KeyProcess, "removing product").
		Logger()

	logger.Info().Msg("removing product")
	c = logger.WithContext(c)
	if err := p.service.RemoveProduct(c, id); err != nil {
		p.fail(c, w, span, logger, fmt.Errorf("failed removing product with error=%w", err))
		return
	}
	logger.Info().Msg("removed product")

	inHttp.WriteSuccessResponse(c, w, "removed product", map[string]interface{}{})
}
