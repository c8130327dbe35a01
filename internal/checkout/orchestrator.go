package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/YashSharma2129/shopping-cart/internal/cart"
	"github.com/YashSharma2129/shopping-cart/internal/domain"
	"github.com/YashSharma2129/shopping-cart/internal/events"
	"github.com/YashSharma2129/shopping-cart/internal/pricing"
	"github.com/YashSharma2129/shopping-cart/internal/validate"
	"github.com/YashSharma2129/shopping-cart/internal/wallet"
)

var (
	ErrCheckoutInProgress = errors.New("another checkout is already in progress")
	ErrIllegalTransition  = errors.New("illegal transition of checkout step")
)

// deliveryOffset is added to the order timestamp for the delivery estimate.
const deliveryOffset = 4 * 24 * time.Hour

// Progress is one externally observable step update.
type Progress struct {
	Step    domain.CheckoutStep `json:"step"`
	Message string              `json:"message"`
}

// Orchestrator sequences a checkout attempt:
// address validation → order validation → payment → finalization.
// On any failure it resets to StepIdle and surfaces the error. A payment
// that already succeeded is not rolled back by a later failure of the same
// attempt; the wallet keeps the debit and the cart is left intact.
type Orchestrator struct {
	cart   *cart.Ledger
	wallet *wallet.Ledger
	bus    *events.Bus

	onProgress func(Progress)

	mu       sync.Mutex
	step     domain.CheckoutStep
	status   string
	inFlight bool
}

type Option func(*Orchestrator)

// WithProgress registers a callback invoked on every step change. The
// callback runs on the checkout goroutine and must not block.
func WithProgress(fn func(Progress)) Option {
	return func(o *Orchestrator) {
		o.onProgress = fn
	}
}

func WithBus(bus *events.Bus) Option {
	return func(o *Orchestrator) {
		o.bus = bus
	}
}

func NewOrchestrator(cartLedger *cart.Ledger, walletLedger *wallet.Ledger, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cart:   cartLedger,
		wallet: walletLedger,
		step:   domain.StepIdle,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Step returns the current checkout step.
func (o *Orchestrator) Step() domain.CheckoutStep {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.step
}

// Status returns the descriptive text for the current step.
func (o *Orchestrator) Status() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// Checkout runs one attempt against the given address. Only one attempt
// may be in flight per orchestrator; a concurrent call fails with
// ErrCheckoutInProgress so it cannot act on a balance another attempt is
// about to debit.
func (o *Orchestrator) Checkout(ctx context.Context, address domain.Address) (*domain.Order, error) {
	o.mu.Lock()
	if o.inFlight {
		o.mu.Unlock()
		return nil, ErrCheckoutInProgress
	}
	o.inFlight = true
	o.step = domain.StepIdle
	o.status = "validating address"
	o.mu.Unlock()

	defer func() {
		o.mu.Lock()
		o.inFlight = false
		o.mu.Unlock()
	}()

	// Step 1: address validation and derived pricing.
	if err := validate.Address(address); err != nil {
		return nil, o.reset(err)
	}

	// price against a snapshot so cart mutations during the attempt cannot
	// skew the totals the order records
	lines := o.cart.Lines()
	var subtotal float64
	for _, line := range lines {
		subtotal += line.Subtotal()
	}
	subtotal = pricing.Round2(subtotal)
	tax := pricing.Tax(subtotal)
	shipping, err := pricing.Shipping(address.Pincode)
	if err != nil {
		return nil, o.reset(err)
	}
	total := pricing.Round2(subtotal + tax + shipping)

	if err := o.advance(domain.StepAddressValidated, "address validated"); err != nil {
		return nil, o.reset(err)
	}

	// Step 2: order validation against the computed total.
	if err := validate.Order(lines, total); err != nil {
		return nil, o.reset(err)
	}
	if err := o.advance(domain.StepOrderValidated, "order validated"); err != nil {
		return nil, o.reset(err)
	}

	// Step 3: payment. On rejection the wallet is guaranteed unmutated.
	tx, err := o.wallet.ProcessPayment(ctx, total)
	if err != nil {
		return nil, o.reset(err)
	}
	if err := o.advance(domain.StepPaymentConfirmed, "payment confirmed"); err != nil {
		return nil, o.reset(err)
	}

	// An abort here leaves the payment committed: no rollback, no order,
	// cart untouched.
	if err := ctx.Err(); err != nil {
		return nil, o.reset(fmt.Errorf("checkout aborted after payment: %w", err))
	}

	// Step 4: finalize. No failure mode is modeled for building the
	// in-memory order record.
	now := time.Now()
	order := &domain.Order{
		ID:                fmt.Sprintf("ORD-%d", now.UnixMilli()),
		Status:            domain.OrderStatusConfirmed,
		Timestamp:         now,
		Items:             orderItems(lines),
		Subtotal:          subtotal,
		Tax:               tax,
		Shipping:          shipping,
		Total:             total,
		EstimatedDelivery: now.Add(deliveryOffset),
		PaymentID:         tx.ID,
	}

	if err := o.advance(domain.StepFinalized, "order confirmed"); err != nil {
		return nil, o.reset(err)
	}

	o.cart.Clear()
	if o.bus != nil {
		o.bus.Publish(events.Event{Kind: events.OrderPlaced, Message: fmt.Sprintf("order %s placed", order.ID)})
	}
	log.Printf("checkout completed: order=%s total=%.2f payment=%s", order.ID, order.Total, order.PaymentID)

	return order, nil
}

func (o *Orchestrator) advance(to domain.CheckoutStep, message string) error {
	o.mu.Lock()
	if !domain.CanTransitionTo(o.step, to) {
		o.mu.Unlock()
		return ErrIllegalTransition
	}
	o.step = to
	o.status = message
	o.mu.Unlock()

	o.notify(Progress{Step: to, Message: message})
	return nil
}

// reset returns the orchestrator to StepIdle and passes the triggering
// error back to the caller.
func (o *Orchestrator) reset(cause error) error {
	o.mu.Lock()
	o.step = domain.StepIdle
	o.status = cause.Error()
	o.mu.Unlock()

	o.notify(Progress{Step: domain.StepIdle, Message: cause.Error()})
	log.Printf("checkout failed: %v", cause)
	return cause
}

func (o *Orchestrator) notify(p Progress) {
	if o.onProgress != nil {
		o.onProgress(p)
	}
}

func orderItems(lines []domain.CartLine) []domain.OrderItem {
	items := make([]domain.OrderItem, len(lines))
	for i, line := range lines {
		items[i] = domain.OrderItem{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Title,
			Quantity:    line.Quantity,
			UnitPrice:   line.Product.Price,
		}
	}
	return items
}
