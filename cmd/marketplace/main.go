package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/teakmarket/marketplace-api/internal/api"
	"github.com/teakmarket/marketplace-api/internal/api/handler"
	"github.com/teakmarket/marketplace-api/internal/core/service"
	"github.com/teakmarket/marketplace-api/internal/infrastructure/config"
	mongodb "github.com/teakmarket/marketplace-api/internal/infrastructure/db/mongo"
	redisdb "github.com/teakmarket/marketplace-api/internal/infrastructure/db/redis"
	"github.com/teakmarket/marketplace-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	app := &cli.App{
		Name:  "marketplace",
		Usage: "multi-vendor marketplace API",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API",
				Action: serve,
			},
			{
				Name:   "ensure-indexes",
				Usage:  "create MongoDB indexes and exit",
				Action: ensureIndexes,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}
	logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "marketplace",
	})
	return cfg, nil
}

func ensureIndexes(c *cli.Context) error {
	cfg, err := setup(c.Context)
	if err != nil {
		return err
	}
	log := logger.Get()

	client, db, err := mongodb.Connect(c.Context, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(c.Context, db); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("indexes ensured")
	return nil
}

func serve(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := setup(ctx)
	if err != nil {
		return err
	}
	log := logger.Get()

	// --- Infrastructure ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories and services ---
	users := mongodb.NewUserRepository(db)
	products := mongodb.NewProductRepository(db)
	carts := mongodb.NewCartRepository(db)
	sales := mongodb.NewSaleRepository(db)

	services := api.Services{
		Auth:     service.NewAuthService(users, cfg.JWTSecret, cfg.TokenTTL, logger.Component("auth")),
		Products: service.NewProductService(products, users, logger.Component("catalog")),
		Carts:    service.NewCartService(carts, products, users, logger.Component("cart")),
		Orders: service.NewOrderService(service.OrderDeps{
			Users:      users,
			Products:   products,
			Carts:      carts,
			Sales:      sales,
			Transactor: mongodb.NewTransactor(client),
			Locker:     redisdb.NewSettlementLocker(rdb, cfg.Settlement.LockTTL),
		}, logger.Component("settlement")),
		Sales:   service.NewSaleService(sales, logger.Component("sales")),
		Vendors: service.NewVendorService(users),
	}

	e := api.NewRouter(api.RouterConfig{
		Services:  services,
		JWTSecret: cfg.JWTSecret,
		Logger:    logger.Component("http"),
		Readiness: map[string]handler.Pinger{
			"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
	})

	// --- Run until signalled ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
