package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/muhammadolammi/icanmatch/internal/catalog"
	"github.com/muhammadolammi/icanmatch/internal/logging"
)

// UserIDHeader carries the acting user's id.
const UserIDHeader = "x-user-id"

type userKey struct{}

func UserFromContext(ctx context.Context) (catalog.User, bool) {
	u, ok := ctx.Value(userKey{}).(catalog.User)
	return u, ok
}

// requestIDWithLogging tags the context with request and correlation ids
// before chi's RequestID middleware runs.
func requestIDWithLogging() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		chiRequestID := chimiddleware.RequestID(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(chimiddleware.RequestIDHeader)
			if requestID == "" {
				requestID = logging.GenerateCorrelationID()
				r.Header.Set(chimiddleware.RequestIDHeader, requestID)
			}
			w.Header().Set(chimiddleware.RequestIDHeader, requestID)

			ctx := logging.ContextWithRequestID(r.Context(), requestID)
			ctx = logging.ContextWithCorrelationID(ctx, logging.GenerateCorrelationID())
			chiRequestID.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		logging.Ctx(r.Context()).Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", UserIDHeader, chimiddleware.RequestIDHeader},
		ExposedHeaders: []string{chimiddleware.RequestIDHeader},
		MaxAge:         300,
	})
}

func rateLimit(perMinute int) func(http.Handler) http.Handler {
	if perMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			respondError(w, r, http.StatusTooManyRequests, ErrCodeTooManyRequests, "rate limit exceeded")
		}),
	)
}

// identify resolves the x-user-id header against the user catalog.
func identify(users *catalog.Catalog) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get(UserIDHeader))
			if raw == "" {
				respondError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "missing "+UserIDHeader+" header")
				return
			}
			id, err := strconv.Atoi(raw)
			if err != nil {
				respondError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "invalid "+UserIDHeader+" header")
				return
			}
			u, ok := users.User(id)
			if !ok {
				respondError(w, r, http.StatusUnauthorized, ErrCodeUnauthorized, "unknown user")
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, u)))
		})
	}
}
