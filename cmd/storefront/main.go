package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/YashSharma2129/shopping-cart/internal/cart"
	"github.com/YashSharma2129/shopping-cart/internal/catalog"
	"github.com/YashSharma2129/shopping-cart/internal/checkout"
	"github.com/YashSharma2129/shopping-cart/internal/events"
	h "github.com/YashSharma2129/shopping-cart/internal/http"
	"github.com/YashSharma2129/shopping-cart/internal/wallet"
)

type Config struct {
	HTTPPort        string
	CatalogBaseURL  string
	WalletSeed      float64
	PaymentLatency  time.Duration
	DepositLatency  time.Duration
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		CatalogBaseURL:  getEnv("CATALOG_BASE_URL", catalog.DefaultBaseURL),
		WalletSeed:      getEnvFloat("WALLET_SEED_BALANCE", wallet.DefaultSeedBalance),
		PaymentLatency:  getEnvDuration("PAYMENT_LATENCY", wallet.DefaultPaymentLatency),
		DepositLatency:  getEnvDuration("DEPOSIT_LATENCY", wallet.DefaultDepositLatency),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using default %v", key, value, defaultValue)
		return defaultValue
	}
	return f
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("invalid %s=%q, using default %v", key, value, defaultValue)
		return defaultValue
	}
	return d
}

func main() {
	log.Println("storefront starting...")

	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg := loadConfig()

	// Session-scoped ledgers; the event bus stands in for the UI layer's
	// toast/animation subscriptions.
	bus := events.NewBus()
	cartLedger := cart.NewLedger(cart.WithBus(bus))
	walletLedger := wallet.NewLedger(cfg.WalletSeed,
		wallet.WithLatency(cfg.PaymentLatency, cfg.DepositLatency),
		wallet.WithBus(bus),
	)
	orchestrator := checkout.NewOrchestrator(cartLedger, walletLedger,
		checkout.WithBus(bus),
		checkout.WithProgress(func(p checkout.Progress) {
			log.Printf("checkout step %d (%s): %s", int(p.Step), p.Step, p.Message)
		}),
	)
	catalogClient := catalog.NewClient(cfg.CatalogBaseURL)

	eventCh, cancelEvents := bus.Subscribe(64)
	defer cancelEvents()
	go func() {
		for e := range eventCh {
			log.Printf("domain event %s: %s", e.Kind, e.Message)
		}
	}()

	productHandler := h.NewProductHandler(catalogClient, cfg.RequestTimeout)
	cartHandler := h.NewCartHandler(cartLedger, catalogClient, cfg.RequestTimeout)
	walletHandler := h.NewWalletHandler(walletLedger, cfg.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(orchestrator, cfg.RequestTimeout)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Get("/categories", productHandler.ListCategories)
			r.Get("/{id}", productHandler.GetProduct)
		})
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})
		r.Route("/wallet", func(r chi.Router) {
			r.Get("/", walletHandler.GetWallet)
			r.Post("/deposit", walletHandler.Deposit)
		})
		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkoutHandler.InitiateCheckout)
			r.Get("/progress", checkoutHandler.GetProgress)
		})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "storefront"),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront listening on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
