// Command storefront wires the full client stack — transport, query cache,
// cart store, pricing and checkout — and runs a browse/cart/price smoke flow
// against the configured API. It doubles as the integration entry point for
// operating the stack outside tests.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/ZeyadMohamed5/Morph/internal/api"
	"github.com/ZeyadMohamed5/Morph/internal/cart"
	"github.com/ZeyadMohamed5/Morph/internal/cart/snapshot"
	"github.com/ZeyadMohamed5/Morph/internal/config"
	"github.com/ZeyadMohamed5/Morph/internal/domain"
	"github.com/ZeyadMohamed5/Morph/internal/pricing"
	"github.com/ZeyadMohamed5/Morph/internal/query"
	"github.com/ZeyadMohamed5/Morph/internal/shop"
	"github.com/ZeyadMohamed5/Morph/pkg/httpclient"
	"github.com/ZeyadMohamed5/Morph/pkg/logger"
	"github.com/ZeyadMohamed5/Morph/pkg/tracing"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "storefront:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.AppName, cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    cfg.AppName,
		ServiceVersion: "0.1.0",
		Environment:    "development",
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRate:     cfg.TraceSampleRate,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, log)
	}

	// Transport: retrying client behind a circuit breaker. Retries stay off
	// by default here; the query layer owns the per-resource retry policy.
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = cfg.HTTPTimeout
	httpCfg.MaxRetries = cfg.HTTPMaxRetries
	transport := httpclient.NewCircuitBreakerClient(
		httpclient.New(httpCfg),
		httpclient.DefaultCircuitBreakerConfig("storefront-api"),
		log,
	)

	apiClient := api.NewClient(cfg.APIBaseURL, transport, log)
	cache := query.NewCache(log)
	store := shop.NewService(apiClient, cache, log)

	snap, closeSnap, err := buildSnapshot(cfg)
	if err != nil {
		return err
	}
	defer closeSnap()

	cartStore := cart.NewStore(ctx, snap, log)
	session := pricing.NewSession(cartStore, apiClient, log)
	defer session.Close()

	return smokeFlow(ctx, log, store, cartStore, apiClient)
}

// buildSnapshot picks the cart persistence backend: Redis when configured,
// a local JSON file otherwise.
func buildSnapshot(cfg *config.Config) (cart.Snapshot, func(), error) {
	if cfg.RedisAddr == "" {
		return snapshot.NewFileStore(cfg.CartSnapshotPath), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	return snapshot.NewRedisStore(client, cfg.CartClientID), func() { _ = client.Close() }, nil
}

func serveMetrics(addr string, log *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Info("metrics listening", slog.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error("metrics server stopped", slog.String("error", err.Error()))
	}
}

// smokeFlow exercises the read path and the cart/pricing pipeline end to
// end: categories, first product page, add to cart, priced cart totals.
func smokeFlow(ctx context.Context, log *slog.Logger, store *shop.Service, cartStore *cart.Store, fetcher pricing.ProductFetcher) error {
	categories, err := store.Categories(ctx)
	if err != nil {
		return fmt.Errorf("fetch categories: %w", err)
	}
	log.Info("categories loaded", slog.Int("count", len(categories)))

	page, err := store.ListProducts(ctx, api.ProductListParams{Page: 1, Limit: 12})
	if err != nil {
		return fmt.Errorf("fetch products: %w", err)
	}
	log.Info("products loaded",
		slog.Int("count", len(page.Products)),
		slog.Int64("total", page.Total),
	)
	if len(page.Products) == 0 {
		log.Info("no products to exercise the cart with")
		return nil
	}

	first := page.Products[0]
	item := cart.LineItem{ProductID: first.ID, Quantity: 1}
	if len(first.Variants) > 0 {
		variant := first.Variants[0]
		item.VariantID = &variant.ID
		if sizes := variant.SelectableSizes(); len(sizes) > 0 {
			item.Size = &sizes[0].Size
		}
	}
	cartStore.Dispatch(ctx, cart.AddToCart{Item: item})

	detail, err := store.GetProduct(ctx, domain.BySlug(first.Slug))
	if err != nil {
		return fmt.Errorf("fetch product detail: %w", err)
	}
	log.Info("product detail loaded", slog.String("slug", detail.Slug))

	view := pricing.BuildPricedCart(ctx, fetcher, cartStore.Items(), log)
	if warning := view.Warning(); warning != "" {
		log.Warn(warning)
	}
	log.Info("cart priced",
		slog.Int("items", len(view.Items)),
		slog.Int("badge_count", cartStore.ItemCount()),
		slog.String("subtotal", pricing.Subtotal(view.Items).StringFixed(2)),
		slog.String("total", pricing.Total(view.Items, nil).StringFixed(2)),
	)
	return nil
}
