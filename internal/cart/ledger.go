package cart

import (
	"sync"

	"github.com/YashSharma2129/shopping-cart/internal/domain"
	"github.com/YashSharma2129/shopping-cart/internal/events"
	"github.com/YashSharma2129/shopping-cart/internal/pricing"
)

// Ledger holds the line items a user intends to purchase. At most one line
// exists per product id; adds merge into the existing line. Mutation
// methods are the only write path.
type Ledger struct {
	mu    sync.Mutex
	lines []domain.CartLine
	bus   *events.Bus
}

type Option func(*Ledger)

func WithBus(bus *events.Bus) Option {
	return func(l *Ledger) {
		l.bus = bus
	}
}

func NewLedger(opts ...Option) *Ledger {
	l := &Ledger{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add puts a product in the cart. A product already present gets its
// quantity bumped by one instead of a duplicate line.
func (l *Ledger) Add(p domain.Product) {
	l.mu.Lock()
	for i := range l.lines {
		if l.lines[i].Product.ID == p.ID {
			l.lines[i].Quantity++
			l.mu.Unlock()
			l.publish(events.Event{Kind: events.ItemAdded, ProductID: p.ID, Message: "item added to cart"})
			return
		}
	}
	l.lines = append(l.lines, domain.CartLine{Product: p, Quantity: 1})
	l.mu.Unlock()

	l.publish(events.Event{Kind: events.ItemAdded, ProductID: p.ID, Message: "item added to cart"})
}

// UpdateQuantity sets a line's quantity directly. The ledger does not
// enforce a lower bound; callers own that policy.
func (l *Ledger) UpdateQuantity(productID int64, quantity int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.lines {
		if l.lines[i].Product.ID == productID {
			l.lines[i].Quantity = quantity
			return
		}
	}
}

// Remove deletes a line. Removing an absent product is a no-op.
func (l *Ledger) Remove(productID int64) {
	l.mu.Lock()
	removed := false
	for i, line := range l.lines {
		if line.Product.ID == productID {
			l.lines = append(l.lines[:i], l.lines[i+1:]...)
			removed = true
			break
		}
	}
	l.mu.Unlock()

	if removed {
		l.publish(events.Event{Kind: events.ItemRemoved, ProductID: productID, Message: "item removed from cart"})
	}
}

// Clear empties the cart unconditionally.
func (l *Ledger) Clear() {
	l.mu.Lock()
	l.lines = nil
	l.mu.Unlock()

	l.publish(events.Event{Kind: events.CartCleared, Message: "cart cleared"})
}

// Lines returns a copy of the current line items.
func (l *Ledger) Lines() []domain.CartLine {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]domain.CartLine, len(l.lines))
	copy(out, l.lines)
	return out
}

// Subtotal is the derived sum of price × quantity over all lines.
func (l *Ledger) Subtotal() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	var sum float64
	for _, line := range l.lines {
		sum += line.Subtotal()
	}
	return pricing.Round2(sum)
}

func (l *Ledger) publish(e events.Event) {
	if l.bus != nil {
		l.bus.Publish(e)
	}
}
