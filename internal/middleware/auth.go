package middleware

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/Alturino/mallcart/internal/auth"
	inErrors "github.com/Alturino/mallcart/internal/errors"
	inHttp "github.com/Alturino/mallcart/internal/http"
	"github.com/Alturino/mallcart/internal/log"
)

// Auth rejects requests without a valid bearer token and attaches the parsed token to the request
// context.
func Auth(secretKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context()).With().Str(log.KeyTag, "middleware Auth").Logger()
			c := logger.WithContext(r.Context())

			token, ok := auth.BearerToken(r.Header.Get(inHttp.KeyHeaderAuthorization))
			if !ok {
				logger.Error().Err(inErrors.ErrEmptyAuth).Msg(inErrors.ErrEmptyAuth.Error())
				inHttp.WriteErrorResponse(c, w, inErrors.ErrEmptyAuth)
				return
			}

			jwtToken, err := auth.VerifyToken(c, token, secretKey)
			if err != nil {
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteErrorResponse(c, w, inErrors.ErrTokenInvalid)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.AttachJwtToken(c, jwtToken)))
		})
	}
}

// OptionalAuth attaches a valid bearer token when one is sent and lets anonymous requests through.
func OptionalAuth(secretKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := zerolog.Ctx(r.Context()).With().Str(log.KeyTag, "middleware OptionalAuth").Logger()
			c := logger.WithContext(r.Context())

			token, ok := auth.BearerToken(r.Header.Get(inHttp.KeyHeaderAuthorization))
			if !ok {
				logger.Trace().Msg("anonymous request")
				next.ServeHTTP(w, r)
				return
			}

			jwtToken, err := auth.VerifyToken(c, token, secretKey)
			if err != nil {
				logger.Error().Err(err).Msg(err.Error())
				inHttp.WriteErrorResponse(c, w, inErrors.ErrTokenInvalid)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.AttachJwtToken(c, jwtToken)))
		})
	}
}
