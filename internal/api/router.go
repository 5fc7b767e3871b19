package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"noshnurture/internal/api/handlers/health"
	recipeHandler "noshnurture/internal/api/handlers/recipe"
	"noshnurture/internal/api/middleware"
	"noshnurture/internal/core/cache"
	"noshnurture/internal/core/normalizer"
	"noshnurture/internal/infrastructure/config"
	"noshnurture/internal/infrastructure/metrics"
	"noshnurture/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InventoryStore 使用者庫存，需支援就緒檢查
type InventoryStore interface {
	recipeHandler.Inventory
	Ping(ctx context.Context) error
}

// Dependencies 路由需要的服務；Inventory、Cache、Metrics、Dedup 可為 nil
type Dependencies struct {
	Config      *config.Config
	Suggestions recipeHandler.Suggester
	Builder     recipeHandler.PantryBuilder
	Normalizer  normalizer.Normalizer
	Inventory   InventoryStore
	Cache       cache.Store
	Metrics     *metrics.Collector
	Dedup       *middleware.Deduplicator
}

// SetupRouter 設置路由
func SetupRouter(deps Dependencies) (*gin.Engine, error) {
	cfg := deps.Config
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if deps.Suggestions == nil || deps.Builder == nil || deps.Normalizer == nil {
		return nil, fmt.Errorf("suggestion service, pantry builder and normalizer are required")
	}

	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, common.ErrNotFound.Response(false))
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, common.ErrMethodNotAllowed.Response(false))
	})

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New()) // 自動生成請求 ID
	router.Use(middleware.Logger())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(cfg.Server.MaxBodyBytes))

	// 健康檢查與指標不受限流影響
	checks := map[string]health.Check{}
	if deps.Inventory != nil {
		checks["inventory"] = deps.Inventory.Ping
	}
	if pinger, ok := deps.Cache.(interface{ Ping(context.Context) error }); ok {
		checks["cache"] = pinger.Ping
	}
	var cacheStats health.StatsFunc
	if deps.Cache != nil {
		cacheStats = deps.Cache.Stats
	}
	healthHandler := health.NewHandler(cfg.App.Version, checks, cacheStats)

	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)
	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	// API 路由組
	api := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		api.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	api.Use(middleware.Timeout(cfg.Server.RequestTimeout))

	prefer, err := normalizer.ParsePreference(cfg.Normalizer.Prefer, normalizer.PreferFuzzy)
	if err != nil {
		return nil, fmt.Errorf("invalid normalizer preference: %w", err)
	}

	var inventory recipeHandler.Inventory
	if deps.Inventory != nil {
		inventory = deps.Inventory
	}
	h := recipeHandler.NewHandler(deps.Suggestions, deps.Builder, deps.Normalizer, inventory, prefer, cfg.App.Debug)
	{
		// 去重只套用在純查詢的 POST；新增庫存允許重複品項
		reads := api.Group("")
		if deps.Dedup != nil {
			reads.Use(deps.Dedup.Handler())
		}
		reads.POST("/recipes/suggest", h.HandleSuggest)
		reads.POST("/pantry", h.HandlePantry)
		reads.POST("/ingredients/normalize", h.HandleNormalize)

		users := api.Group("/users/:user_id")
		users.GET("/suggestions", h.HandleUserSuggestions)
		users.POST("/inventory", h.HandleAddInventory)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("inventory_enabled", deps.Inventory != nil),
		zap.Bool("cache_enabled", deps.Cache != nil),
		zap.Bool("metrics_enabled", deps.Metrics != nil),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.String("prefer", string(prefer)),
		zap.Duration("timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router, nil
}
