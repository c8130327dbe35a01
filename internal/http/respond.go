package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/sony/gobreaker/v2"

	"github.com/YashSharma2129/shopping-cart/internal/catalog"
	"github.com/YashSharma2129/shopping-cart/internal/checkout"
	"github.com/YashSharma2129/shopping-cart/internal/pricing"
	"github.com/YashSharma2129/shopping-cart/internal/validate"
	"github.com/YashSharma2129/shopping-cart/internal/wallet"
)

type ErrorResponse struct {
	Error   string   `json:"error"`
	Code    string   `json:"code,omitempty"`
	Details []string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// handleDomainError maps core errors onto HTTP status codes.
func handleDomainError(w http.ResponseWriter, err error) {
	var vErr *validate.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   vErr.Message,
			Code:    "validation_failed",
			Details: vErr.MissingFields,
		})
	case errors.Is(err, validate.ErrEmptyCart),
		errors.Is(err, validate.ErrInvalidOrderAmount),
		errors.Is(err, pricing.ErrInvalidPincode):
		respondError(w, http.StatusBadRequest, "validation_failed", err.Error())
	case errors.Is(err, wallet.ErrInsufficientFunds):
		respondError(w, http.StatusPaymentRequired, "insufficient_funds", err.Error())
	case errors.Is(err, checkout.ErrCheckoutInProgress):
		respondError(w, http.StatusConflict, "checkout_in_progress", err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		respondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "timeout", err.Error())
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
