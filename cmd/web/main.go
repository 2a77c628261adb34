package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/NaveenSasalu/organic-farm/internal/api"
	"github.com/NaveenSasalu/organic-farm/internal/cart"
	"github.com/NaveenSasalu/organic-farm/internal/checkout"
	"github.com/NaveenSasalu/organic-farm/internal/web"
	"github.com/NaveenSasalu/organic-farm/pkg/logger"
)

type Config struct {
	HTTPPort        string
	APIBaseURL      string
	RedisAddr       string
	RedisPassword   string
	Env             string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		APIBaseURL:      getEnv("API_BASE_URL", "https://of.kaayaka.in/api/v1"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		Env:             getEnv("ENV", "development"),
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

func main() {
	cfg := loadConfig()

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	// Carts live in redis so they survive restarts; if redis is down the
	// site still works, carts just reset with the process.
	var carts cart.Storage
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		zlog.Warn("redis unreachable, falling back to in-memory carts",
			zap.String("addr", cfg.RedisAddr), zap.Error(err))
		carts = cart.NewMemoryStorage()
	} else {
		zlog.Info("connected to redis", zap.String("addr", cfg.RedisAddr))
		carts = cart.NewRedisStorage(redisClient)
	}

	backend := api.New(cfg.APIBaseURL, zlog)
	checkoutSvc := checkout.NewService(backend, carts, zlog)

	render, err := web.NewRenderer(zlog)
	if err != nil {
		zlog.Fatal("failed to parse templates", zap.Error(err))
	}

	router := web.NewRouter(backend, carts, checkoutSvc, render, zlog, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info("web server starting",
			zap.String("port", cfg.HTTPPort),
			zap.String("api", cfg.APIBaseURL))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited")
}
