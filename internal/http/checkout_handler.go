package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/YashSharma2129/shopping-cart/internal/domain"
)

// Checkouter runs one checkout attempt and exposes its progress.
type Checkouter interface {
	Checkout(ctx context.Context, address domain.Address) (*domain.Order, error)
	Step() domain.CheckoutStep
	Status() string
}

type CheckoutHandler struct {
	orchestrator Checkouter
	timeout      time.Duration
}

func NewCheckoutHandler(orchestrator Checkouter, timeout time.Duration) *CheckoutHandler {
	return &CheckoutHandler{
		orchestrator: orchestrator,
		timeout:      timeout,
	}
}

type CheckoutRequestDTO struct {
	Address domain.Address `json:"address"`
}

type CheckoutProgressDTO struct {
	Step    int    `json:"step"`
	Message string `json:"message"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) InitiateCheckout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	log.Printf("checkout initiated request_id=%s", getRequestID(r.Context()))

	order, err := h.orchestrator.Checkout(ctx, req.Address)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}

// GET /api/v1/checkout/progress
func (h *CheckoutHandler) GetProgress(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, CheckoutProgressDTO{
		Step:    int(h.orchestrator.Step()),
		Message: h.orchestrator.Status(),
	})
}
