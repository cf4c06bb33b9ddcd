// Command server runs the painting catalog web application.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/iliyamo/painting-catalog/internal/config"
	"github.com/iliyamo/painting-catalog/internal/database"
	"github.com/iliyamo/painting-catalog/internal/handler"
	"github.com/iliyamo/painting-catalog/internal/middleware"
	"github.com/iliyamo/painting-catalog/internal/router"
	"github.com/iliyamo/painting-catalog/internal/service"
	"github.com/iliyamo/painting-catalog/internal/web"
)

func main() {
	cfg := config.Load()
	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	creds, err := config.LoadCredentials(cfg.SecretsPath)
	if err != nil {
		return err
	}
	db, err := database.Open(ctx, creds)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("database connected", zap.String("dialect", string(db.Dialect())), zap.String("database", creds.Database))

	renderer, err := web.NewRenderer()
	if err != nil {
		return err
	}

	var pub service.Publisher = service.NopPublisher{}
	if cfg.AMQPURL != "" {
		amqpPub := service.NewAMQPPublisher(cfg.AMQPURL, logger)
		defer amqpPub.Close()
		pub = amqpPub
	}

	var limiter echo.MiddlewareFunc
	if rdb := config.NewRedisClient(ctx); rdb != nil {
		defer rdb.Close()
		limiter = middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb, logger)
	}
	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET not set: write routes are open")
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	router.RegisterRoutes(e)
	router.RegisterCatalog(e, handler.NewCatalogHandler(pub, logger), router.Options{
		DB:           db,
		Logger:       logger,
		JWTSecret:    cfg.JWTSecret,
		WriteLimiter: limiter,
	})

	errc := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		logger.Info("listening", zap.String("addr", addr), zap.String("env", cfg.Env))
		errc <- e.Start(addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(sctx)
}
