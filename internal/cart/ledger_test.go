package cart

import (
	"testing"

	"github.com/YashSharma2129/shopping-cart/internal/domain"
	"github.com/YashSharma2129/shopping-cart/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	shirt = domain.Product{ID: 1, Title: "Casual Shirt", Price: 100, Category: "men's clothing"}
	mug   = domain.Product{ID: 2, Title: "Coffee Mug", Price: 12.5, Category: "home"}
)

func TestAdd_MergesByProductID(t *testing.T) {
	l := NewLedger()

	l.Add(shirt)
	l.Add(shirt)

	lines := l.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, shirt.ID, lines[0].Product.ID)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestAdd_DistinctProductsAppend(t *testing.T) {
	l := NewLedger()

	l.Add(shirt)
	l.Add(mug)

	lines := l.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, shirt.ID, lines[0].Product.ID)
	assert.Equal(t, mug.ID, lines[1].Product.ID)
}

func TestUpdateQuantity(t *testing.T) {
	l := NewLedger()
	l.Add(shirt)

	l.UpdateQuantity(shirt.ID, 5)
	assert.Equal(t, 5, l.Lines()[0].Quantity)

	// unknown product id is a no-op
	l.UpdateQuantity(999, 3)
	require.Len(t, l.Lines(), 1)
}

func TestRemove_IsIdempotent(t *testing.T) {
	l := NewLedger()
	l.Add(shirt)

	l.Remove(shirt.ID)
	assert.Empty(t, l.Lines())

	// removing again, and removing something never added, are both no-ops
	l.Remove(shirt.ID)
	l.Remove(42)
	assert.Empty(t, l.Lines())
}

func TestClear(t *testing.T) {
	l := NewLedger()
	l.Add(shirt)
	l.Add(mug)

	l.Clear()
	assert.Empty(t, l.Lines())
	assert.Equal(t, 0.0, l.Subtotal())
}

func TestSubtotal(t *testing.T) {
	l := NewLedger()
	l.Add(shirt)
	l.Add(shirt)
	l.Add(mug)

	// 2×100 + 1×12.5
	assert.Equal(t, 212.5, l.Subtotal())
}

func TestAdd_PublishesItemAdded(t *testing.T) {
	bus := events.NewBus()
	ch, cancel := bus.Subscribe(4)
	defer cancel()

	l := NewLedger(WithBus(bus))
	l.Add(shirt)

	e := <-ch
	assert.Equal(t, events.ItemAdded, e.Kind)
	assert.Equal(t, shirt.ID, e.ProductID)
}

func TestLines_ReturnsCopy(t *testing.T) {
	l := NewLedger()
	l.Add(shirt)

	lines := l.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, l.Lines()[0].Quantity)
}
