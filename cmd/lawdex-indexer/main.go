// Command lawdex-indexer rebuilds the search indices from the authoritative
// article store. It drops and recreates each index, so it is meant to run as
// a one-shot job during deploys or after corpus updates.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/lawdex/lawdex/internal/config"
	"github.com/lawdex/lawdex/internal/domain"
	engineRedis "github.com/lawdex/lawdex/internal/engine/redis"
	"github.com/lawdex/lawdex/internal/indexer"
	logpkg "github.com/lawdex/lawdex/internal/logger"
	"github.com/lawdex/lawdex/internal/metrics"
	articlerepo "github.com/lawdex/lawdex/internal/repository/article"
	"github.com/lawdex/lawdex/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting lawdex indexer",
		zap.String("version", version.Version),
		zap.String("env", env),
		zap.Strings("engine_addrs", cfg.Engine.Addrs),
		zap.String("store_path", cfg.Store.Path),
		zap.Int("batch_size", cfg.Indexer.BatchSize),
		zap.Int("workers", cfg.Indexer.Workers),
	)

	engineStore, err := engineRedis.NewStore(engineRedis.Config{
		Addrs:    cfg.Engine.Addrs,
		Password: cfg.Engine.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create engine store", zap.Error(err))
	}
	defer engineStore.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := engineStore.WaitForReady(ctx, time.Duration(cfg.Engine.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Search engine not ready", zap.Error(err))
	}

	articles, err := articlerepo.Open(cfg.Store.Path)
	if err != nil {
		logger.Fatal("Failed to open article store", zap.Error(err))
	}
	defer func() { _ = articles.Close() }()

	metrics.RegisterEngineMetrics()

	ix := indexer.New(articles, engineStore, logger, cfg.Indexer.BatchSize, cfg.Indexer.Workers)

	targets := []struct {
		lawCode   string
		indexName string
	}{
		{domain.CivilCode, cfg.Engine.CivilIndex},
		{domain.CriminalCode, cfg.Engine.CriminalIndex},
	}

	start := time.Now()
	for _, t := range targets {
		n, err := ix.Reindex(ctx, t.lawCode, t.indexName)
		if err != nil {
			logger.Fatal("Reindex failed",
				zap.String("law_code", t.lawCode),
				zap.String("index", t.indexName),
				zap.Error(err),
			)
		}
		logger.Info("Reindexed",
			zap.String("law_code", t.lawCode),
			zap.String("index", t.indexName),
			zap.Int("documents", n),
		)
	}

	logger.Info("Indexing complete", zap.Duration("elapsed", time.Since(start)))
}
