package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	inErrors "github.com/Alturino/mallcart/internal/errors"
	"github.com/Alturino/mallcart/internal/log"
	"github.com/Alturino/mallcart/internal/otel"
)

func WriteJsonResponse(
	c context.Context,
	w http.ResponseWriter,
	header map[string]string,
	body map[string]interface{},
) {
	c, span := otel.Tracer.Start(c, "WriteJsonResponse")
	defer span.End()

	logger := zerolog.Ctx(c).With().Str(log.KeyTag, "WriteJsonResponse").Logger()

	w.Header().Set(KeyHeaderContentType, ValueHeaderApplicationJson)
	for k, v := range header {
		w.Header().Add(k, v)
	}

	if v, ok := body["statusCode"].(int); ok {
		w.WriteHeader(v)
	}

	err := json.NewEncoder(w).Encode(body)
	if err != nil {
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
}

// StatusCodeOf maps an error to the HTTP status its envelope is written with.
func StatusCodeOf(err error) int {
	var e *inErrors.Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Code {
	case inErrors.CodeInvalidArgument:
		return http.StatusBadRequest
	case inErrors.CodeNeedLogin:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func WriteErrorResponse(c context.Context, w http.ResponseWriter, err error) {
	WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     StatusFailed,
		"statusCode": StatusCodeOf(err),
		"code":       inErrors.CodeOf(err),
		"message":    err.Error(),
	})
}

func WriteSuccessResponse(
	c context.Context,
	w http.ResponseWriter,
	message string,
	data map[string]interface{},
) {
	WriteJsonResponse(c, w, map[string]string{}, map[string]interface{}{
		"status":     StatusSuccess,
		"statusCode": http.StatusOK,
		"code":       inErrors.CodeSuccess,
		"message":    message,
		"data":       data,
	})
}
