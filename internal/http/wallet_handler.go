package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/YashSharma2129/shopping-cart/internal/domain"
	"github.com/YashSharma2129/shopping-cart/internal/wallet"
)

type WalletHandler struct {
	wallet  *wallet.Ledger
	timeout time.Duration
}

func NewWalletHandler(walletLedger *wallet.Ledger, timeout time.Duration) *WalletHandler {
	return &WalletHandler{
		wallet:  walletLedger,
		timeout: timeout,
	}
}

type WalletResponseDTO struct {
	Balance      float64              `json:"balance"`
	Transactions []domain.Transaction `json:"transactions"`
}

type DepositRequestDTO struct {
	Amount float64 `json:"amount"`
}

func (h *WalletHandler) GetWallet(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, WalletResponseDTO{
		Balance:      h.wallet.Balance(),
		Transactions: h.wallet.Transactions(),
	})
}

func (h *WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req DepositRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Amount <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_amount", "amount must be positive")
		return
	}

	tx, err := h.wallet.AddFunds(ctx, req.Amount)
	if err != nil {
		handleDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, tx)
}
