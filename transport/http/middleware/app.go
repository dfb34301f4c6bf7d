package middleware

import (
	"fmt"
	"net/http"

	"roam/config"
	"roam/infras/otel"
	"roam/shared/cache"
	"roam/shared/constant"
	"roam/shared/failure"
	"roam/transport/http/response"
)

const (
	otelHTTPScopeName = "http"
)

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
	APIKey(next http.Handler) http.Handler
}

type appMiddleware struct {
	otel   otel.Otel
	config *config.Config
	cache  cache.RedisCache
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache) AppMiddleware {
	return &appMiddleware{
		otel:   otel,
		config: config,
		cache:  cache,
	}
}

func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		spanName := fmt.Sprintf("%s %s", r.Method, r.URL.Path)

		ctx, scope := a.otel.NewScope(r.Context(), otelHTTPScopeName, spanName)
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       r.URL.Path,
			"http.method":     r.Method,
			"http.user_agent": a.getUA(r),
			"http.host":       r.Host,
			"http.source":     a.getClientIP(r),
		})

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// APIKey guards the admin surface. Requests must carry the configured
// key in the X-API-Key header.
func (a *appMiddleware) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(constant.RequestHeaderAPIKey)

		if a.config.App.APIKey == constant.Empty || key != a.config.App.APIKey {
			response.WithError(w, failure.Unauthorized("invalid or missing API key"))

			return
		}

		next.ServeHTTP(w, r)
	})
}
