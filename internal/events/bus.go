package events

import (
	"sync"
	"time"
)

type Kind string

const (
	ItemAdded        Kind = "ITEM_ADDED"
	ItemRemoved      Kind = "ITEM_REMOVED"
	CartCleared      Kind = "CART_CLEARED"
	FundsAdded       Kind = "FUNDS_ADDED"
	PaymentConfirmed Kind = "PAYMENT_CONFIRMED"
	OrderPlaced      Kind = "ORDER_PLACED"
)

// Event is a discrete domain notification a presentation layer can react
// to (toasts, cart badge animations). The core never waits on consumers.
type Event struct {
	Kind      Kind      `json:"kind"`
	ProductID int64     `json:"product_id,omitempty"`
	Message   string    `json:"message"`
	At        time.Time `json:"at"`
}

// Bus fans events out to every subscriber. Publish never blocks: if a
// subscriber's buffer is full the event is dropped for that subscriber.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]chan Event
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Event)}
}

// Subscribe registers a consumer with the given buffer size and returns
// its channel plus a cancel func that closes the channel.
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Event, buffer)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
	return ch, cancel
}

func (b *Bus) Publish(e Event) {
	if e.At.IsZero() {
		e.At = time.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}
