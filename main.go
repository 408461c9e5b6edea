package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"campusfee_backend/internals/configs"
	database "campusfee_backend/internals/databases"
	"campusfee_backend/internals/features/finance/fees/repository"
	authHelper "campusfee_backend/internals/features/users/auth/helper"
	helper "campusfee_backend/internals/helpers"
	"campusfee_backend/internals/logger"
	middlewares "campusfee_backend/internals/middlewares"
	routes "campusfee_backend/internals/route"
	"campusfee_backend/internals/seeds"
)

func main() {
	logger.Init(configs.GetEnv("APP_LOG_LEVEL", "info"))
	defer func() { _ = logger.Log.Sync() }()

	configs.LoadEnv()
	cfg := configs.AppConfig
	logger.Init(cfg.App.LogLevel)
	helper.ExposeErrors = cfg.App.Debug

	app := fiber.New(newFiberConfig(cfg))

	// middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// Request-ID + timing
	requestTimeout := cfg.HTTP.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 5 * time.Second
	}
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		// selaras dengan statement_timeout di DB
		ctx, cancel := context.WithTimeout(c.Context(), requestTimeout)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		logger.Log.Debug("request",
			zap.String("id", id),
			zap.String("method", c.Method()),
			zap.String("url", c.OriginalURL()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("dur", time.Since(start)),
		)
		return err
	})

	middlewares.SetupMiddlewares(app, cfg)

	store := openStore(cfg)
	hasher := authHelper.BcryptHasher{}

	if cfg.Seed.OnStart {
		seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		seeds.RunAllSeeds(seedCtx, store, hasher, cfg)
		cancel()
	}

	routes.SetupRoutes(app, routes.Deps{
		Store:  store,
		Config: cfg,
		Hasher: hasher,
	})

	// Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = cfg.HTTP.ReadTimeout
	app.Server().WriteTimeout = cfg.HTTP.WriteTimeout
	app.Server().IdleTimeout = cfg.HTTP.IdleTimeout

	go func() {
		logger.Log.Info("listening", zap.String("port", cfg.HTTP.Port))
		if err := app.Listen("0.0.0.0:" + cfg.HTTP.Port); err != nil {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	if cfg.DB.Driver != "memory" {
		database.Close()
	}
}

func newFiberConfig(cfg configs.Config) fiber.Config {
	fc := fiber.Config{
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		ErrorHandler:          helper.ErrorHandler,
		DisableStartupMessage: true,
	}
	// X-Forwarded-For hanya dipercaya dari proxy yang dikonfigurasi
	if proxies := cfg.TrustedProxies(); len(proxies) > 0 {
		fc.ProxyHeader = fiber.HeaderXForwardedFor
		fc.EnableTrustedProxyCheck = true
		fc.TrustedProxies = proxies
	}
	return fc
}

func openStore(cfg configs.Config) repository.Store {
	if cfg.DB.Driver == "memory" {
		logger.Log.Warn("using in-memory store, data is lost on restart")
		return repository.NewMemoryStore()
	}

	// DB connect + migrate + pool + warm-up
	database.ConnectDB(cfg)
	database.AutoMigrate()
	database.TunePool()
	database.WarmUpQueries()
	return repository.NewGormStore(database.DB)
}
