package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/bikeshop/shop-api/internal/api"
	"github.com/bikeshop/shop-api/internal/api/handler"
	"github.com/bikeshop/shop-api/internal/core/ports"
	"github.com/bikeshop/shop-api/internal/core/service"
	"github.com/bikeshop/shop-api/internal/infrastructure/config"
	"github.com/bikeshop/shop-api/internal/infrastructure/db/mongo"
	"github.com/bikeshop/shop-api/internal/infrastructure/db/redis"
	"github.com/bikeshop/shop-api/internal/infrastructure/events"
	"github.com/bikeshop/shop-api/internal/infrastructure/queue"
	"github.com/bikeshop/shop-api/internal/pkg/token"
	"github.com/bikeshop/shop-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

// @title Bike Shop API
// @version 1.0
// @description REST API of the bike shop: catalog, orders, accounts and JWT authentication.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// logger is not configured yet
		boot := logger.Init(logger.Options{Level: "info"})
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "shop-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			log.Error().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")

	// The cache is optional: requests fall back to MongoDB while Redis is down.
	redisClient := redis.NewClient(redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()
	cache := redis.NewCache(redisClient, "shop:")
	if err := cache.Ping(ctx); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, continuing without cache")
	}

	var publisher ports.EventPublisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		log.Info().Strs("brokers", cfg.Kafka.Brokers).Str("topic", cfg.Kafka.Topic).Msg("publishing events to kafka")
	} else {
		publisher = events.NewLogPublisher(logger.For("events"))
	}
	defer publisher.Close()

	dispatcher := queue.NewDispatcher(cfg.Kafka.Workers, publisher, logger.For("dispatcher"))
	dispatcher.Start(ctx)
	defer dispatcher.Close()

	tokens := token.New(cfg.TokenConfig())

	users := mongo.NewUserRepository(db)
	products := mongo.NewProductRepository(db)
	orders := mongo.NewOrderRepository(db)

	authService := service.NewAuthService(users, tokens, dispatcher, logger.For("auth"))
	userService := service.NewUserService(users, dispatcher, logger.For("users"))
	productService := service.NewProductService(products, cache, dispatcher, logger.For("products"))
	orderService := service.NewOrderService(orders, products, dispatcher, logger.For("orders"))

	if seed := cfg.AdminSeed; seed.Email != "" {
		if err := authService.EnsureAdmin(ctx, seed.Name, seed.Email, seed.Password); err != nil {
			return err
		}
	}

	e := api.NewRouter(api.Deps{
		Log:      logger.For("http"),
		Tokens:   tokens,
		Auth:     authService,
		Users:    userService,
		Products: productService,
		Orders:   orderService,
		Checks: map[string]handler.Pinger{
			"mongodb": mongo.Pinger{Client: client},
			"redis":   cache,
		},
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		RateLimitRPS:   cfg.HTTP.RateLimitRPS,
		RateLimitBurst: cfg.HTTP.RateLimitBurst,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting http server")
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
