package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/LeroySteding/medusajs-yn-railway/internal/cache"
	"github.com/LeroySteding/medusajs-yn-railway/internal/config"
	apphttp "github.com/LeroySteding/medusajs-yn-railway/internal/http"
	"github.com/LeroySteding/medusajs-yn-railway/internal/http/handlers"
	"github.com/LeroySteding/medusajs-yn-railway/internal/http/middleware"
	"github.com/LeroySteding/medusajs-yn-railway/internal/mailer"
	"github.com/LeroySteding/medusajs-yn-railway/internal/medusa"
	"github.com/LeroySteding/medusajs-yn-railway/internal/metrics"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/cart"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/catalog"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/customer"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/newsletter"
	"github.com/LeroySteding/medusajs-yn-railway/internal/modules/payments"
	"github.com/LeroySteding/medusajs-yn-railway/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	level := slog.LevelInfo
	if cfg.App.Env == "development" {
		level = slog.LevelDebug
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	client := medusa.New(medusa.Options{
		BaseURL:        cfg.Medusa.BackendURL,
		PublishableKey: cfg.Medusa.PublishableKey,
		Timeout:        cfg.Medusa.Timeout,
		Observer:       m.ObserveBackend,
		Logger:         logger,
	})

	cacheStore := newCacheStore(ctx, cfg.Cache, logger)
	if mem, ok := cacheStore.(*cache.Memory); ok {
		go mem.Run(ctx, time.Minute)
	}
	c := cache.New(cacheStore, cfg.Cache.TTL, logger)
	catalogSvc := catalog.NewService(client, c, logger)
	cartSvc := cart.NewService(client, catalogSvc, c, logger)
	customerSvc := customer.NewService(client, logger)

	store, err := storage.FromConfig(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	mail, err := mailer.FromConfig(cfg.Mail, logger)
	if err != nil {
		log.Fatalf("mailer: %v", err)
	}

	var subs handlers.Subscriber
	if cfg.DB.DSN != "" {
		db, err := gorm.Open(mysql.Open(cfg.DB.DSN), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
		subs = newsletter.NewService(newsletter.NewRepo(db), mail, cfg.App.BaseURL, logger)
	} else {
		logger.Warn("newsletter_disabled", "reason", "DB_DSN is not set")
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, logger)
	go limiter.Run(ctx, time.Minute, 10*time.Minute)

	r := apphttp.NewRouter(apphttp.Deps{
		Config:    cfg,
		Logger:    logger,
		Metrics:   m,
		Catalog:   catalogSvc,
		Carts:     cartSvc,
		Customers: customerSvc,
		Orders:    client,
		Payments: payments.NewRegistry(payments.Keys{
			StripePublishableKey: cfg.Stripe.PublishableKey,
			StripeAccountID:      cfg.Stripe.AccountID,
			PayPalClientID:       cfg.PayPal.ClientID,
		}),
		Storage:     store,
		Newsletter:  subs,
		RateLimiter: limiter,
	})

	srv := &http.Server{
		Addr:              cfg.App.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("server_started", "addr", cfg.App.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("server_stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
}

// newCacheStore falls back to the in-process store when Redis is unreachable.
func newCacheStore(ctx context.Context, cfg config.CacheConfig, logger *slog.Logger) cache.Store {
	if cfg.Driver != "redis" {
		return cache.NewMemory()
	}
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		logger.Warn("redis_unavailable", "addr", cfg.RedisAddr, "error", err)
		_ = rdb.Close()
		return cache.NewMemory()
	}
	return cache.NewRedis(rdb, "storefront:")
}
