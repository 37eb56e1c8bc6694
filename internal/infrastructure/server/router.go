package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/fluffylabs/cdn-img/internal/adapter/handler"
	"github.com/fluffylabs/cdn-img/internal/infrastructure/cache"
	"github.com/fluffylabs/cdn-img/internal/infrastructure/middleware"
)

type Router struct {
	engine         *gin.Engine
	uploadHandler  *handler.UploadHandler
	imageHandler   *handler.ImageHandler
	authMiddleware *middleware.BasicAuthMiddleware
	rateLimiter    *middleware.RateLimiter
	responseCache  *cache.ResponseCache
	logger         *zap.Logger
}

type RouterConfig struct {
	UploadHandler  *handler.UploadHandler
	ImageHandler   *handler.ImageHandler
	AuthMiddleware *middleware.BasicAuthMiddleware
	RateLimiter    *middleware.RateLimiter // optional
	ResponseCache  *cache.ResponseCache    // optional
	Logger         *zap.Logger
	Environment    string
}

func NewRouter(cfg RouterConfig) *Router {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	r := &Router{
		engine:         engine,
		uploadHandler:  cfg.UploadHandler,
		imageHandler:   cfg.ImageHandler,
		authMiddleware: cfg.AuthMiddleware,
		rateLimiter:    cfg.RateLimiter,
		responseCache:  cfg.ResponseCache,
		logger:         cfg.Logger,
	}

	r.setupMiddleware()
	r.setupRoutes()

	return r
}

func (r *Router) setupMiddleware() {
	r.engine.Use(middleware.Recovery(r.logger))
	r.engine.Use(middleware.RequestID())
	r.engine.Use(middleware.Logger(r.logger))
	r.engine.Use(middleware.CORS())

	if r.responseCache != nil {
		r.engine.Use(r.responseCache.Wrap())
	}
}

func (r *Router) setupRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	uploadChain := []gin.HandlerFunc{r.authMiddleware.Require()}
	if r.rateLimiter != nil {
		uploadChain = append(uploadChain, r.rateLimiter.Limit())
	}
	uploadChain = append(uploadChain, r.uploadHandler.Upload)
	r.engine.PUT("/upload", uploadChain...)

	// Keys are path-like (2026/08/28/abc123.png), so a root catch-all
	// route would conflict with /health. NoRoute serves retrievals
	// instead.
	r.engine.NoRoute(func(c *gin.Context) {
		if c.Request.Method == http.MethodGet {
			r.imageHandler.Get(c)
			return
		}
		c.Status(http.StatusNotFound)
	})
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
