package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type HealthHandler struct {
	// Check reports whether the backing store is reachable. Nil means always healthy.
	Check func(ctx context.Context) error
}

func NewHealthHandler(check func(ctx context.Context) error) HealthHandler {
	return HealthHandler{Check: check}
}

func (h HealthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/healthz", h.health)
}

func (h HealthHandler) health(w http.ResponseWriter, r *http.Request) {
	if h.Check != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.Check(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, "store unavailable")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "up"})
}
