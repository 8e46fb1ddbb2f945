package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/Alturino/mallcart/cart/internal/domain"
	"github.com/Alturino/mallcart/cart/internal/otel"
	inHttp "github.com/Alturino/mallcart/internal/http"
	"github.com/Alturino/mallcart/internal/log"
	inOtel "github.com/Alturino/mallcart/internal/otel"
)

type productEnvelope struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Data       struct {
		Product domain.CatalogEntry `json:"product"`
	} `json:"data"`
}

// HttpCatalog looks products up from the product service at GET {baseURL}/products/{id}.
type HttpCatalog struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
}

// NewHttpCatalog uses otelhttp.DefaultClient when client is nil.
func NewHttpCatalog(client *http.Client, baseURL string, timeout time.Duration) *HttpCatalog {
	if client == nil {
		client = otelhttp.DefaultClient
	}
	return &HttpCatalog{client: client, baseURL: strings.TrimRight(baseURL, "/"), timeout: timeout}
}

func (h *HttpCatalog) FindProductById(
	c context.Context,
	productID uuid.UUID,
) (domain.CatalogEntry, error) {
	c, span := otel.Tracer.Start(c, "HttpCatalog FindProductById")
	defer span.End()

	url := fmt.Sprintf("%s/products/%s", h.baseURL, productID.String())
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "HttpCatalog FindProductById").
		Str(log.KeyProductID, productID.String()).
		Str(log.KeyRequestURL, url).
		Logger()

	if h.timeout > 0 {
		var cancel context.CancelFunc
		c, cancel = context.WithTimeout(c, h.timeout)
		defer cancel()
	}

	logger = logger.With().Str(log.KeyProcess, "requesting product").Logger()
	logger.Trace().Msg("requesting product")
	req, err := http.NewRequestWithContext(c, http.MethodGet, url, nil)
	if err != nil {
		err = fmt.Errorf("failed creating request of productId=%s with error=%w", productID.String(), err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return domain.CatalogEntry{}, err
	}
	if requestID := log.RequestIDFromContext(c); requestID != "" {
		req.Header.Set(inHttp.KeyHeaderRequestID, requestID)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		err = fmt.Errorf("failed requesting productId=%s with error=%w", productID.String(), err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return domain.CatalogEntry{}, err
	}
	defer resp.Body.Close()
	logger = logger.With().Int(log.KeyResponseStatusCode, resp.StatusCode).Logger()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		logger.Info().Msg("product not found in product service")
		return domain.CatalogEntry{}, domain.ErrProductNotFound
	default:
		err = fmt.Errorf(
			"failed requesting productId=%s with unexpected statusCode=%d",
			productID.String(),
			resp.StatusCode,
		)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return domain.CatalogEntry{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "decoding product").Logger()
	envelope := productEnvelope{}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		err = fmt.Errorf("failed decoding productId=%s with error=%w", productID.String(), err)
		inOtel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return domain.CatalogEntry{}, err
	}
	logger.Trace().Any(log.KeyProduct, envelope.Data.Product).Msg("requested product")

	entry := envelope.Data.Product
	if entry.ProductID == uuid.Nil {
		entry.ProductID = productID
	}
	return visible(entry)
}
