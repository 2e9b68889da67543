package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	fiberadapter "github.com/sardor-dev/myid-auth/adapters/fiber"
	"github.com/sardor-dev/myid-auth/adapters/myid"
	pgxadapter "github.com/sardor-dev/myid-auth/adapters/pgx"
	"github.com/sardor-dev/myid-auth/config"
	"github.com/sardor-dev/myid-auth/core"
	"github.com/sardor-dev/myid-auth/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config.Load: %v", err)
	}

	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("zap.NewProduction: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("pgxpool.New", zap.Error(err))
	}
	defer pool.Close()

	provider := myid.New(myid.Config{
		BaseURL:      cfg.MyID.BaseURL,
		ClientID:     cfg.MyID.ClientID,
		ClientSecret: cfg.MyID.ClientSecret,
		Timeout:      cfg.MyID.Timeout,
	})

	states := core.NewStateStore(core.StateStoreConfig{TTL: cfg.StateTTL})

	db := pgxadapter.New(pool)
	auth := services.NewAuthService(db, provider, states, zlog)

	app := fiber.New()
	app.Use(requestid.New())
	app.Use(logger.New())

	if err := fiberadapter.New(app, auth, db).RegisterRoutes(); err != nil {
		zlog.Fatal("register routes", zap.Error(err))
	}

	go func() {
		if err := app.Listen(cfg.ListenAddr); err != nil {
			zlog.Fatal("app.Listen", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		zlog.Error("shutdown", zap.Error(err))
	}
}
