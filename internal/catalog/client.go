package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/singleflight"

	"github.com/YashSharma2129/shopping-cart/internal/domain"
)

// DefaultBaseURL points at the public demo catalog.
const DefaultBaseURL = "https://fakestoreapi.com"

const defaultCacheTTL = 15 * time.Minute

var ErrNotFound = errors.New("product not found")

type cachedProduct struct {
	product   domain.Product
	expiresAt time.Time
}

// Client is a read-only consumer of the remote catalog API. Requests go
// through a circuit breaker; concurrent fetches of the same product are
// collapsed with singleflight and results are cached with a TTL.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	sfg     singleflight.Group

	mu       sync.Mutex
	cache    map[int64]cachedProduct
	cacheTTL time.Duration
}

type Option func(*Client)

func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

func WithCacheTTL(ttl time.Duration) Option {
	return func(cl *Client) {
		cl.cacheTTL = ttl
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Client{
		baseURL: baseURL,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   10 * time.Second,
		},
		cache:    make(map[int64]cachedProduct),
		cacheTTL: defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:    "catalog",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Printf("circuit breaker %s: %s -> %s", name, from, to)
		},
		IsSuccessful: func(err error) bool {
			// a missing product is a valid answer, not an outage
			return err == nil || errors.Is(err, ErrNotFound)
		},
	})
	return c
}

// Products returns the full catalog.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	body, err := c.get(ctx, "/products")
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, fmt.Errorf("unmarshal products failed: %w", err)
	}
	return products, nil
}

// Categories returns the catalog's category names.
func (c *Client) Categories(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/products/categories")
	if err != nil {
		return nil, err
	}

	var categories []string
	if err := json.Unmarshal(body, &categories); err != nil {
		return nil, fmt.Errorf("unmarshal categories failed: %w", err)
	}
	return categories, nil
}

// Product returns a single product by id, served from the local cache when
// fresh. Concurrent misses for the same id share one request.
func (c *Client) Product(ctx context.Context, id int64) (*domain.Product, error) {
	c.mu.Lock()
	if entry, ok := c.cache[id]; ok && time.Now().Before(entry.expiresAt) {
		c.mu.Unlock()
		p := entry.product
		return &p, nil
	}
	c.mu.Unlock()

	v, err, _ := c.sfg.Do(fmt.Sprintf("product:%d", id), func() (interface{}, error) {
		body, err := c.get(ctx, fmt.Sprintf("/products/%d", id))
		if err != nil {
			return nil, err
		}

		var product domain.Product
		if err := json.Unmarshal(body, &product); err != nil {
			return nil, fmt.Errorf("unmarshal product %d failed: %w", id, err)
		}
		if product.ID == 0 {
			// the demo API answers 200 with an empty body for unknown ids
			return nil, ErrNotFound
		}

		c.mu.Lock()
		c.cache[id] = cachedProduct{product: product, expiresAt: time.Now().Add(c.cacheTTL)}
		c.mu.Unlock()
		return &product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.breaker.Execute(func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, fmt.Errorf("build request failed: %w", err)
		}

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("catalog request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusNotFound {
			return nil, ErrNotFound
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("catalog returned status %d for %s", resp.StatusCode, path)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response failed: %w", err)
		}
		return body, nil
	})
}
