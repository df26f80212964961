package promotion

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/oms/backend/internal/domain/order"
	"github.com/oms/backend/internal/domain/promotion"
	"github.com/oms/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// runLockKey guards against overlapping engine invocations: two runs
// reading the same pending set would both qualify the same destination
// groups and both generate gifts for them.
const runLockKey = "promo:apply:run-lock"

// EngineConfig holds tuning for one gift application run
type EngineConfig struct {
	GiftBatchSize   int
	GiftBatchDelay  time.Duration
	StatusBatchSize int
	RunLockTTL      time.Duration
	TargetKeyTTL    time.Duration
}

// DefaultEngineConfig returns production defaults
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		GiftBatchSize:   5,
		GiftBatchDelay:  300 * time.Millisecond,
		StatusBatchSize: 50,
		RunLockTTL:      10 * time.Minute,
		TargetKeyTTL:    24 * time.Hour,
	}
}

// GiftApplicationService runs the promotion gift-application pipeline:
// candidate rule selection, per-rule matching, destination grouping,
// qualification, gift generation, and source status transition. One
// invocation processes the currently-pending order set to completion
// or failure.
type GiftApplicationService struct {
	orders  order.OrderLineRepository
	rules   promotion.RuleRepository
	idem    shared.IdempotencyStore
	matcher *promotion.Matcher

	generator *GiftGenerator
	status    *StatusTransitionManager

	cfg    EngineConfig
	logger *zap.Logger
}

// NewGiftApplicationService creates the engine with injected
// collaborators. The store clients are owned by the caller and passed
// by reference; the engine holds no process-wide state.
func NewGiftApplicationService(
	orders order.OrderLineRepository,
	rules promotion.RuleRepository,
	records promotion.GiftApplicationRepository,
	idem shared.IdempotencyStore,
	cfg EngineConfig,
	logger *zap.Logger,
) *GiftApplicationService {
	return &GiftApplicationService{
		orders:    orders,
		rules:     rules,
		idem:      idem,
		matcher:   promotion.NewMatcher(),
		generator: NewGiftGenerator(orders, records, idem, cfg.GiftBatchSize, cfg.GiftBatchDelay, cfg.TargetKeyTTL, logger),
		status:    NewStatusTransitionManager(orders, records, cfg.StatusBatchSize, logger),
		cfg:       cfg,
		logger:    logger,
	}
}

// Run executes one gift application pass. An empty runID gets a fresh
// one; passing the runID of a failed run retries it, skipping targets
// that already received their gift (the idempotency keys are
// deterministic per rule, destination, and run).
func (s *GiftApplicationService) Run(ctx context.Context, runID string) (*ApplyResult, error) {
	if runID == "" {
		runID = uuid.NewString()
	}
	result := &ApplyResult{RunID: runID}
	log := s.logger.With(zap.String("run_id", runID))

	acquired, err := s.idem.MarkProcessed(ctx, runLockKey, s.cfg.RunLockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquiring run lock: %w", err)
	}
	if !acquired {
		return nil, shared.ErrRunInProgress
	}
	defer func() {
		if err := s.idem.Release(ctx, runLockKey); err != nil {
			log.Warn("failed to release run lock", zap.Error(err))
		}
	}()

	pending, err := s.orders.FindUnprocessed(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading pending orders: %w", err)
	}
	result.OrdersScanned = len(pending)
	if len(pending) == 0 {
		log.Info("no pending orders, nothing to apply")
		return result, nil
	}

	minDate, maxDate := batchWindow(pending)
	result.MinDate, result.MaxDate = minDate, maxDate

	candidates, err := s.rules.FindCandidates(ctx, minDate, maxDate, promotion.PromoTypeQBased)
	if err != nil {
		return nil, fmt.Errorf("loading candidate rules: %w", err)
	}
	log.Info("candidate rules selected",
		zap.Int("orders", len(pending)),
		zap.Time("min_date", minDate),
		zap.Time("max_date", maxDate),
		zap.Int("rules", len(candidates)),
	)

	var targets []Target
	for _, rule := range candidates {
		if !rule.HasTargets() {
			continue
		}
		result.RulesEvaluated++

		matched := s.matcher.Match(&rule, pending)
		if len(matched) == 0 {
			continue
		}

		groups := promotion.GroupByDestination(&rule, matched)
		for _, g := range promotion.QualifyAll(&rule, groups) {
			targets = append(targets, Target{Rule: rule, Group: g})
		}
	}

	// Deterministic per-target keys let a retried run skip targets the
	// failed attempt already wrote. The keys are marked by the
	// generator once a target's line and record are committed, so a
	// target the failed attempt never reached is still unmarked here.
	fresh := targets[:0]
	for _, t := range targets {
		key := promotion.TargetKey(t.Rule.ID, t.Group.Key, runID)
		done, err := s.idem.IsProcessed(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("checking target idempotency: %w", err)
		}
		if done {
			result.TargetsSkipped++
			log.Info("target already applied, skipping",
				zap.Int64("rule_id", t.Rule.ID),
				zap.String("destination", t.Group.Key),
			)
			continue
		}
		fresh = append(fresh, t)
	}
	targets = fresh
	result.TargetsQualified = len(targets)

	if len(targets) == 0 {
		log.Info("no qualified targets")
		return result, nil
	}

	generated, err := s.generator.Generate(ctx, runID, targets)
	if err != nil {
		// Prior batches are committed; report what exists so operators
		// can reconcile instead of losing track of created gifts.
		result.GiftsCreated = len(generated.GiftOrderIDs)
		result.SourcesMarked = s.status.Apply(ctx, generated.SourceOrderIDs)
		return result, fmt.Errorf("gift generation aborted after %d gifts: %w", result.GiftsCreated, err)
	}
	result.GiftsCreated = len(generated.GiftOrderIDs)

	result.SourcesMarked = s.status.Apply(ctx, generated.SourceOrderIDs)

	log.Info("gift application run complete",
		zap.Int("rules_evaluated", result.RulesEvaluated),
		zap.Int("targets_qualified", result.TargetsQualified),
		zap.Int("gifts_created", result.GiftsCreated),
		zap.Int64("sources_marked", result.SourcesMarked),
	)
	return result, nil
}

// batchWindow returns the calendar-date bounds of the pending set.
// Lines arrive ordered ascending by paid-at, so the bounds come from
// the first and last rows after normalization.
func batchWindow(pending []order.OrderLine) (minDate, maxDate time.Time) {
	minDate = pending[0].PaidDate()
	maxDate = pending[len(pending)-1].PaidDate()
	// Vendor strings are not guaranteed monotonic after normalization;
	// a malformed row degrades to "now" and can invert the bounds.
	if maxDate.Before(minDate) {
		minDate, maxDate = maxDate, minDate
	}
	return minDate, maxDate
}
