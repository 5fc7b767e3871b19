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

	"noshnurture/internal/api"
	"noshnurture/internal/api/middleware"
	"noshnurture/internal/core/cache"
	"noshnurture/internal/core/normalizer"
	"noshnurture/internal/core/pantry"
	"noshnurture/internal/core/recipe"
	"noshnurture/internal/infrastructure/config"
	"noshnurture/internal/infrastructure/metrics"
	"noshnurture/internal/infrastructure/storage"
	"noshnurture/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("normalizer_prefer", cfg.Normalizer.Prefer),
		zap.Bool("openrouter_enabled", cfg.OpenRouter.Enabled),
		zap.String("openrouter_api_key", config.MaskAPIKey(cfg.OpenRouter.APIKey)),
		zap.String("openrouter_model", cfg.OpenRouter.Model),
		zap.String("inventory_db", cfg.Inventory.DBPath),
	)

	ctx := context.Background()
	collector := metrics.NewCollector()

	// 初始化快取
	store, err := cache.NewStore(ctx, cfg)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}
	if store != nil {
		defer store.Close()
	}

	// 正規化服務：語意後端僅在啟用 OpenRouter 時建立
	var semantic normalizer.Normalizer
	if cfg.OpenRouter.Enabled {
		semantic = normalizer.NewOpenRouter(cfg.OpenRouter)
	}
	norm := normalizer.NewService(normalizer.NewDictionary(cfg.Normalizer.FuzzyThreshold), semantic, store, collector)

	prefer, err := normalizer.ParsePreference(cfg.Normalizer.Prefer, normalizer.PreferFuzzy)
	if err != nil {
		common.LogFatal("Invalid normalizer preference", zap.Error(err))
	}
	builder := pantry.NewBuilder(norm,
		pantry.WithWorkers(cfg.Normalizer.Workers),
		pantry.WithExpiringDays(cfg.Suggestion.ExpiringDays),
		pantry.WithPreference(prefer),
		pantry.WithMetrics(collector),
	)
	suggestions := recipe.NewSuggestionService(builder, cfg.Suggestion.Limit, collector)

	// 庫存資料庫
	inventory, err := storage.NewSQLiteInventory(ctx, cfg.Inventory.DBPath)
	if err != nil {
		common.LogFatal("Failed to open inventory database", zap.Error(err))
	}
	defer inventory.Close()

	dedup := middleware.NewDeduplicator(cfg.DedupWindow)
	defer dedup.Stop()

	// 設置路由
	router, err := api.SetupRouter(api.Dependencies{
		Config:      cfg,
		Suggestions: suggestions,
		Builder:     builder,
		Normalizer:  norm,
		Inventory:   inventory,
		Cache:       store,
		Metrics:     collector,
		Dedup:       dedup,
	})
	if err != nil {
		common.LogFatal("Failed to setup router", zap.Error(err))
	}

	// 設置 HTTP 服務器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	errCh := make(chan error, 1)
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Bool("debug", cfg.App.Debug),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		common.LogError("Failed to start server", zap.Error(err))
		return
	}

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		return
	}

	common.LogInfo("Server exited")
}
