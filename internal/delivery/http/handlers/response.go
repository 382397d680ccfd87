package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/LavaJover/printshop-order-service/internal/delivery/http/authctx"
	"github.com/LavaJover/printshop-order-service/internal/domain"
)

type apiError struct {
	Code   int    `json:"code"`
	Status string `json:"status"`
}

type apiResponse struct {
	Status  string    `json:"status"`
	Message string    `json:"message,omitempty"`
	Data    any       `json:"data"`
	Error   *apiError `json:"error,omitempty"`
}

func writeRawJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	writeRawJSON(w, status, apiResponse{Status: "ok", Data: payload})
}

func writeError(w http.ResponseWriter, status int, message string) {
	if status < 400 {
		status = http.StatusInternalServerError
	}
	writeRawJSON(w, status, apiResponse{
		Status:  "error",
		Message: message,
		Error: &apiError{
			Code:   status,
			Status: http.StatusText(status),
		},
	})
}

// writeDomainError answers with the status that matches err's domain class.
func writeDomainError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError || status == http.StatusServiceUnavailable {
		message = http.StatusText(status)
	}
	writeError(w, status, message)
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidTransition), errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientPoints):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrStorage):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return false
	}
	return true
}

// actorFrom reads the caller set by the identity middleware.
func actorFrom(w http.ResponseWriter, r *http.Request) (domain.Actor, bool) {
	actor, ok := authctx.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing caller identity")
	}
	return actor, ok
}
