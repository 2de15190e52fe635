package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"afterschool/internal/adapter/handler"
	"afterschool/internal/adapter/storage"
	"afterschool/internal/config"
	"afterschool/internal/core/service"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Connect Mongo
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logger.Fatal("mongo connect", zap.Error(err))
	}
	if err := client.Ping(ctx, nil); err != nil {
		logger.Fatal("mongo ping", zap.Error(err))
	}
	logger.Info("connected to mongo", zap.String("db", cfg.MongoDB))

	// Connect Redis
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Fatal("redis ping", zap.Error(err))
	}
	logger.Info("connected to redis", zap.String("addr", cfg.RedisAddr))

	mongoAdapter := storage.NewMongoAdapter(client.Database(cfg.MongoDB))
	redisAdapter := storage.NewRedisAdapter(rdb)

	catalogService := service.NewCatalogService(mongoAdapter, logger)
	orderService := service.NewOrderService(mongoAdapter, mongoAdapter, redisAdapter, logger)

	if err := catalogService.Seed(ctx, sampleLessons); err != nil {
		logger.Fatal("seed catalog", zap.Error(err))
	}

	httpHandler := handler.NewHTTPHandler(catalogService, orderService, logger)
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpHandler.Routes(),
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("http server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)

	rdb.Close()
	client.Disconnect(shutdownCtx)
	logger.Info("stopped")
}
