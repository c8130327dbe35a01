package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/YashSharma2129/shopping-cart/internal/domain"
	"github.com/YashSharma2129/shopping-cart/internal/events"
)

var ErrInsufficientFunds = errors.New("insufficient funds")

const (
	// DefaultSeedBalance is the balance a fresh wallet starts with.
	DefaultSeedBalance = 9000.0

	// Default latencies simulate the payment provider round trip.
	DefaultPaymentLatency = 2 * time.Second
	DefaultDepositLatency = 1 * time.Second
)

// Ledger is an in-memory wallet: a balance plus an append-only transaction
// history ordered most recent first. The balance is always recomputable as
// seed + sum of transaction amounts. All mutation goes through
// ProcessPayment and AddFunds.
type Ledger struct {
	mu           sync.Mutex
	seed         float64
	balance      float64
	transactions []domain.Transaction

	paymentLatency time.Duration
	depositLatency time.Duration
	bus            *events.Bus
}

type Option func(*Ledger)

// WithLatency overrides the simulated provider latencies. Zero disables
// the delay (used by tests).
func WithLatency(payment, deposit time.Duration) Option {
	return func(l *Ledger) {
		l.paymentLatency = payment
		l.depositLatency = deposit
	}
}

func WithBus(bus *events.Bus) Option {
	return func(l *Ledger) {
		l.bus = bus
	}
}

func NewLedger(seed float64, opts ...Option) *Ledger {
	l := &Ledger{
		seed:           seed,
		balance:        seed,
		paymentLatency: DefaultPaymentLatency,
		depositLatency: DefaultDepositLatency,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// ProcessPayment debits amount from the wallet. The simulated provider
// delay happens before any state is touched, so a cancellation mid-delay
// leaves the ledger unchanged. The balance check and the debit run under
// one lock: no caller can observe a state where the check passed but the
// balance has not moved.
func (l *Ledger) ProcessPayment(ctx context.Context, amount float64) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("payment amount must be positive, got %v", amount)
	}
	if err := wait(ctx, l.paymentLatency); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.balance < amount {
		return nil, ErrInsufficientFunds
	}

	tx := domain.Transaction{
		ID:        uuid.New().String(),
		Amount:    -amount,
		Kind:      domain.KindPayment,
		Status:    domain.StatusSuccess,
		Timestamp: time.Now(),
	}
	l.balance -= amount
	l.transactions = append([]domain.Transaction{tx}, l.transactions...)

	l.publish(events.Event{Kind: events.PaymentConfirmed, Message: fmt.Sprintf("payment of %.2f confirmed", amount)})
	return &tx, nil
}

// AddFunds credits amount to the wallet. Always succeeds for a positive
// amount.
func (l *Ledger) AddFunds(ctx context.Context, amount float64) (*domain.Transaction, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("deposit amount must be positive, got %v", amount)
	}
	if err := wait(ctx, l.depositLatency); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	tx := domain.Transaction{
		ID:        uuid.New().String(),
		Amount:    amount,
		Kind:      domain.KindDeposit,
		Status:    domain.StatusSuccess,
		Timestamp: time.Now(),
	}
	l.balance += amount
	l.transactions = append([]domain.Transaction{tx}, l.transactions...)

	l.publish(events.Event{Kind: events.FundsAdded, Message: fmt.Sprintf("deposit of %.2f received", amount)})
	return &tx, nil
}

func (l *Ledger) Balance() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance
}

func (l *Ledger) Seed() float64 {
	return l.seed
}

// Transactions returns a copy of the history, most recent first.
func (l *Ledger) Transactions() []domain.Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

func (l *Ledger) publish(e events.Event) {
	if l.bus != nil {
		l.bus.Publish(e)
	}
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
