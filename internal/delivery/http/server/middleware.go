package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/LavaJover/printshop-order-service/internal/delivery/http/authctx"
	"github.com/LavaJover/printshop-order-service/internal/domain"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const (
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"
)

// IdentityMiddleware trusts the caller identity forwarded by the gateway.
func IdentityMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(HeaderActorID))
			role := domain.Role(strings.ToLower(strings.TrimSpace(r.Header.Get(HeaderActorRole))))
			if id == "" || !role.Valid() {
				writeAuthError(w, http.StatusUnauthorized, "missing caller identity")
				return
			}
			ctx := authctx.WithActor(r.Context(), domain.Actor{ID: id, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole ensures the caller has one of the allowed roles.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := authctx.FromContext(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "missing caller identity")
				return
			}
			if _, ok := allowed[actor.Role]; !ok {
				writeAuthError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func NewLoggerMiddleware(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			}
			if ww.Status() >= http.StatusInternalServerError {
				log.Error("http request", fields...)
				return
			}
			log.Info("http request", fields...)
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "error",
		"message": message,
		"data":    nil,
		"error": map[string]any{
			"code":   status,
			"status": http.StatusText(status),
		},
	})
}
