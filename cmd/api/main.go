package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/fluffylabs/cdn-img/internal/adapter/handler"
	adapterstorage "github.com/fluffylabs/cdn-img/internal/adapter/storage"
	"github.com/fluffylabs/cdn-img/internal/infrastructure/auth"
	"github.com/fluffylabs/cdn-img/internal/infrastructure/cache"
	"github.com/fluffylabs/cdn-img/internal/infrastructure/config"
	"github.com/fluffylabs/cdn-img/internal/infrastructure/middleware"
	"github.com/fluffylabs/cdn-img/internal/infrastructure/observability"
	"github.com/fluffylabs/cdn-img/internal/infrastructure/server"
	"github.com/fluffylabs/cdn-img/internal/infrastructure/storage"
	"github.com/fluffylabs/cdn-img/internal/pkg/keygen"
	"github.com/fluffylabs/cdn-img/internal/usecase/image"
	"github.com/fluffylabs/cdn-img/internal/usecase/upload"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Infrastructure services
	s3Storage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		logger.Fatal("failed to create s3 storage", zap.Error(err))
	}

	var transformer adapterstorage.ImageTransformer
	if cfg.Transform.Enabled {
		transformer = storage.NewImagingTransformer()
	}

	var responseCache *cache.ResponseCache
	var rateLimiter *middleware.RateLimiter
	if cfg.Cache.Enabled || cfg.RateLimit.Enabled {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			logger.Fatal("failed to connect to redis", zap.Error(err))
		}
		defer redisClient.Close()

		if cfg.Cache.Enabled {
			responseCache = cache.NewResponseCache(redisClient, cfg.Cache.Name, cfg.Cache.TTL, logger)
		}
		if cfg.RateLimit.Enabled {
			rateLimiter = middleware.NewRateLimiter(redisClient, cfg.RateLimit)
		}
	}

	// Use cases
	uploadSvc := upload.NewService(s3Storage, keygen.New())
	imageSvc := image.NewService(s3Storage, transformer)

	// Handlers
	uploadHandler := handler.NewUploadHandler(uploadSvc)
	imageHandler := handler.NewImageHandler(imageSvc)

	// Middleware
	checker := auth.NewCredentialChecker(cfg.Auth.Username, cfg.Auth.Password, cfg.Auth.PasswordHash)
	authMiddleware := middleware.NewBasicAuthMiddleware(checker)

	// Router
	router := server.NewRouter(server.RouterConfig{
		UploadHandler:  uploadHandler,
		ImageHandler:   imageHandler,
		AuthMiddleware: authMiddleware,
		RateLimiter:    rateLimiter,
		ResponseCache:  responseCache,
		Logger:         logger,
		Environment:    cfg.Server.Environment,
	})

	// Server
	srv := server.NewServer(server.ServerConfig{
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.Engine(),
		Logger:       logger,
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}

	logger.Info("server stopped")
}
