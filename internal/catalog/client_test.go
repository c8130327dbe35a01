package catalog

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const productJSON = `{"id":1,"title":"Casual Shirt","price":109.95,"category":"men's clothing","image":"https://img.example/1.png"}`

func TestProducts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products", r.URL.Path)
		fmt.Fprintf(w, "[%s]", productJSON)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	products, err := c.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, "Casual Shirt", products[0].Title)
	assert.Equal(t, 109.95, products[0].Price)
}

func TestCategories(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/products/categories", r.URL.Path)
		fmt.Fprint(w, `["electronics","jewelery"]`)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	categories, err := c.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"electronics", "jewelery"}, categories)
}

func TestProduct_CachesResult(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, productJSON)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithCacheTTL(time.Minute))

	for i := 0; i < 3; i++ {
		p, err := c.Product(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), p.ID)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestProduct_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Product(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := c.Products(ctx)
		require.Error(t, err)
	}

	// breaker is open now; the server is not hit again
	_, err := c.Products(ctx)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(3), hits.Load())
}

func TestBreaker_NotFoundDoesNotTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := c.Product(ctx, int64(i+100))
		require.ErrorIs(t, err, ErrNotFound)
	}
}
