package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"lagoon/config"
	"lagoon/shared/cache"
	"lagoon/shared/failure"
	"lagoon/transport/http/response"
)

type App interface {
	Recovery() func(http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
}

type appMiddleware struct {
	config *config.Config
	cache  cache.RedisCache
}

func NewAppMiddleware(config *config.Config, cache cache.RedisCache) App {
	return &appMiddleware{
		config: config,
		cache:  cache,
	}
}

// Recovery turns handler panics into 500 responses instead of dropped
// connections. Detail suppression outside development happens in response.
func (a *appMiddleware) Recovery() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error().
						Interface("panic", rec).
						Str("path", r.URL.Path).
						Str("method", r.Method).
						Msg("recovered from panic in handler")

					response.WithError(w, failure.InternalErrorFromString("unexpected server error"))
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
