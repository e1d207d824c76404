package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/aquasense/aquasense-engine/pkg/alerts"
	"github.com/aquasense/aquasense-engine/pkg/classify"
	"github.com/aquasense/aquasense-engine/pkg/compose"
	"github.com/aquasense/aquasense-engine/pkg/config"
	"github.com/aquasense/aquasense-engine/pkg/handlers"
	"github.com/aquasense/aquasense-engine/pkg/llm"
	"github.com/aquasense/aquasense-engine/pkg/logging"
	"github.com/aquasense/aquasense-engine/pkg/manual"
	"github.com/aquasense/aquasense-engine/pkg/models"
	"github.com/aquasense/aquasense-engine/pkg/prediction"
	"github.com/aquasense/aquasense-engine/pkg/query"
	"github.com/aquasense/aquasense-engine/pkg/retry"
	"github.com/aquasense/aquasense-engine/pkg/services"
	"github.com/aquasense/aquasense-engine/pkg/store"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("database", logging.SanitizeConnectionString(cfg.Database.ConnectionString())),
		zap.String("redis", fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)),
		zap.String("llm_provider", cfg.LLM.Provider))

	rdb, err := newRedisClient(&cfg.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, snapshot cache disabled", zap.Error(err))
		rdb = nil
	}

	cache := store.NewDatasetCache(rdb, logger)
	readiness := store.NewReadiness()
	tabular := store.NewLazy(readiness)
	defer tabular.Close()

	// Connect the remote store in the background so questions against the
	// cached dataset can be served immediately.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var pg *store.PostgresStore
		err := retry.Do(ctx, retry.DefaultConfig(), func() error {
			var connErr error
			pg, connErr = store.NewPostgresStore(ctx, cfg.Database.ConnectionString(), store.Options{
				InsertBatchSize: cfg.Engine.InsertBatchSize,
				DeleteBatchSize: cfg.Engine.DeleteBatchSize,
				MaxConnections:  cfg.Database.MaxConnections,
			}, logger)
			return connErr
		})
		if err != nil {
			logger.Warn("Remote store unavailable, serving from cache only", zap.Error(err))
			tabular.Resolve(nil, err)
			return
		}
		logger.Info("Remote store connected")
		tabular.Resolve(pg, nil)
	}()

	manualDocs := manual.DefaultManuals()
	if cfg.Engine.ManualsPath != "" {
		docs, err := manual.LoadManuals(cfg.Engine.ManualsPath)
		if err != nil {
			logger.Warn("Failed to load manual corpus, using defaults", zap.Error(err))
		} else {
			manualDocs = docs
		}
	}
	searcher := manual.NewSearcher(manualDocs, logger)

	llmClient, err := llm.NewFromConfig(&cfg.LLM, logger)
	if err != nil {
		logger.Warn("LLM disabled", zap.Error(err))
		llmClient = nil
	}

	classifier := classify.NewDefaultClassifier()
	checker := alerts.NewChecker(alerts.DefaultThresholds(), classifier)
	aliases := query.DefaultAliasTable()
	parser := query.NewParser(aliases, cfg.Engine.NumericTolerance)
	engine := query.NewEngine(aliases, logger)
	composer := compose.NewComposer(llmClient, classifier, searcher, models.DefaultRelatedMetrics(), compose.Options{
		MaxContextRows: cfg.Engine.MaxContextRows,
		MaxDisplayRows: cfg.Engine.MaxDisplayRows,
		MaxTokens:      cfg.LLM.MaxTokens,
		Temperature:    cfg.LLM.Temperature,
	}, logger)

	chatService := services.NewChatService(
		parser, engine, checker, composer,
		tabular, cache, readiness,
		cfg.Engine.FetchLimit,
		time.Duration(cfg.Engine.StoreTimeoutSeconds)*time.Second,
		logger,
	)
	ingestService := services.NewIngestService(tabular, cache, logger)
	forecaster := prediction.NewForecaster(cache, classifier, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewAskHandler(chatService, logger).RegisterRoutes(mux)
	handlers.NewDatasetHandler(ingestService, logger).RegisterRoutes(mux)
	handlers.NewManualHandler(searcher, logger).RegisterRoutes(mux)
	handlers.NewPredictionHandler(forecaster, logger).RegisterRoutes(mux)

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting aquasense-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

func newRedisClient(cfg *config.RedisConfig) (*redis.Client, error) {
	if cfg.Host == "" {
		return nil, nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}
