package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/oms/backend/internal/application/promotion"
	"github.com/oms/backend/internal/domain/shared"
	"github.com/oms/backend/internal/infrastructure/cache"
	"github.com/oms/backend/internal/infrastructure/config"
	applog "github.com/oms/backend/internal/infrastructure/logger"
	"github.com/oms/backend/internal/infrastructure/persistence"
	gormlogger "gorm.io/gorm/logger"

	"go.uber.org/zap"
)

func main() {
	var (
		runID    string
		useRedis bool
	)
	flag.StringVar(&runID, "run-id", "", "Run ID to retry a failed run (default: generate a new one)")
	flag.BoolVar(&useRedis, "redis", true, "Use Redis for run locking and idempotency (false: in-process store)")
	flag.Parse()

	if err := run(runID, useRedis); err != nil {
		fmt.Fprintf(os.Stderr, "promoapply: %v\n", err)
		os.Exit(1)
	}
}

func run(runID string, useRedis bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := applog.New(&applog.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = applog.Sync(log)
	}()

	db, err := persistence.NewDatabaseWithLogger(
		&cfg.Database,
		applog.NewGormLogger(log, gormlogger.Warn),
	)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	var idem shared.IdempotencyStore
	if useRedis {
		store, err := cache.NewRedisIdempotencyStore(cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		idem = store
	} else {
		log.Warn("Using in-process idempotency store; run locking is not shared across processes")
		idem = cache.NewInMemoryIdempotencyStore()
	}
	defer idem.Close()

	engine := promotion.NewGiftApplicationService(
		persistence.NewGormOrderLineRepository(db.DB),
		persistence.NewGormPromoRuleRepository(db.DB),
		persistence.NewGormGiftApplicationRepository(db.DB),
		idem,
		promotion.EngineConfig{
			GiftBatchSize:   cfg.Engine.GiftBatchSize,
			GiftBatchDelay:  cfg.Engine.GiftBatchDelay,
			StatusBatchSize: cfg.Engine.StatusBatchSize,
			RunLockTTL:      cfg.Engine.RunLockTTL,
			TargetKeyTTL:    cfg.Engine.TargetKeyTTL,
		},
		log,
	)

	if runID == "" {
		runID = uuid.NewString()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = applog.WithRunID(ctx, runID)

	result, err := engine.Run(ctx, runID)
	if err != nil {
		if result != nil {
			reportResult(log, result)
		}
		return fmt.Errorf("gift application run failed: %w", err)
	}

	reportResult(log, result)
	return nil
}

func reportResult(log *zap.Logger, r *promotion.ApplyResult) {
	log.Info("Gift application run finished",
		zap.String("run_id", r.RunID),
		zap.Int("orders_scanned", r.OrdersScanned),
		zap.Int("rules_evaluated", r.RulesEvaluated),
		zap.Int("targets_qualified", r.TargetsQualified),
		zap.Int("targets_skipped", r.TargetsSkipped),
		zap.Int("gifts_created", r.GiftsCreated),
		zap.Int64("sources_marked", r.SourcesMarked),
	)
}
