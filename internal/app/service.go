// Package service owns the inference engine and the activity log and
// implements the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	activityqueue "github.com/okian/fitfuzz/internal/adapters/mq/queue"
	workerpool "github.com/okian/fitfuzz/internal/adapters/mq/worker"
	"github.com/okian/fitfuzz/internal/adapters/repository"
	"github.com/okian/fitfuzz/internal/domain/exercise"
	"github.com/okian/fitfuzz/internal/domain/fuzzy"
	"github.com/okian/fitfuzz/internal/domain/model"
	"github.com/okian/fitfuzz/internal/domain/types"
	"github.com/okian/fitfuzz/pkg/logger"
	"github.com/okian/fitfuzz/pkg/metrics"
)

const stopTimeout = 10 * time.Second

// Request is one recommendation query.
type Request struct {
	Age     float64
	BMI     float64
	Explain bool
}

type cacheKey struct{ age, bmi float64 }

type outcome struct {
	minutes    float64
	degenerate bool
}

// Service implements the API dependencies for the recommender.
type Service struct {
	mu sync.RWMutex

	// Core components
	engine   *fuzzy.Engine
	cache    *lru.Cache[cacheKey, outcome]
	activity activityqueue.Queue
	pool     *workerpool.Pool
	store    repository.Store

	// Configuration
	profile         exercise.Profile
	implication     fuzzy.Implication
	cacheSize       int
	queueSize       int
	workerCount     int
	dbPath          string
	memoryRetention int
	injectedStore   repository.Store

	// State
	started bool
	dropped atomic.Int64

	logger logger.Logger
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		profile:         exercise.ProfileReference,
		implication:     fuzzy.ImplicationClip,
		cacheSize:       4096,
		queueSize:       10_000,
		workerCount:     runtime.NumCPU(),
		memoryRetention: 10_000,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the engine and starts the activity log. Starting twice is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.logger.Info(ctx, "starting recommender service...")

	engine, err := exercise.NewEngine(s.profile, fuzzy.WithImplication(s.implication))
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	var cache *lru.Cache[cacheKey, outcome]
	if s.cacheSize > 0 {
		if cache, err = lru.New[cacheKey, outcome](s.cacheSize); err != nil {
			return fmt.Errorf("build cache: %w", err)
		}
	}

	store, err := s.openStore(ctx)
	if err != nil {
		return err
	}

	q := activityqueue.NewInMemoryQueue(activityqueue.WithCapacity(s.queueSize))
	pool := workerpool.NewPool(s.workerCount, q, store)
	// Workers outlive the start context; Stop drains them.
	pool.Start(context.WithoutCancel(ctx))

	s.engine, s.cache, s.store, s.activity, s.pool = engine, cache, store, q, pool
	s.dropped.Store(0)
	s.started = true
	s.logger.Info(ctx, "recommender service started",
		logger.String("profile", string(s.profile)),
		logger.String("implication", s.implication.String()),
		logger.Int("rules", len(engine.Rules())),
		logger.Int("cacheSize", s.cacheSize),
		logger.Int("queueSize", s.queueSize),
		logger.Int("workers", pool.Size()),
	)
	return nil
}

func (s *Service) openStore(ctx context.Context) (repository.Store, error) {
	switch {
	case s.injectedStore != nil:
		return s.injectedStore, nil
	case s.dbPath != "":
		store, err := repository.OpenSQLite(ctx, s.dbPath)
		if err != nil {
			return nil, err
		}
		s.logger.Info(ctx, "using sqlite activity store", logger.String("path", s.dbPath))
		return store, nil
	default:
		s.logger.Info(ctx, "using in-memory activity store", logger.Int("retention", s.memoryRetention))
		return repository.NewMemoryStore(repository.WithCapacity(s.memoryRetention)), nil
	}
}

// Stop drains the activity log and releases the store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	s.logger.Info(ctx, "stopping recommender service...")

	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "activity log not fully drained", logger.Error(err))
	}
	if s.injectedStore == nil {
		if err := s.store.Close(); err != nil {
			s.logger.Error(ctx, "error closing activity store", logger.Error(err))
		}
	}

	s.started = false
	s.logger.Info(ctx, "recommender service stopped",
		logger.Int("persisted", int(s.pool.Processed())),
		logger.Int("dropped", int(s.dropped.Load())),
	)
}

// Recommend validates the inputs, evaluates the rule base and records the
// request in the activity log. A degenerate aggregate returns a
// no_recommendation result together with fuzzy.ErrDegenerateAggregate.
func (s *Service) Recommend(ctx context.Context, req Request) (types.Recommendation, error) {
	start := time.Now()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return types.Recommendation{}, ErrNotStarted
	}

	rec := types.Recommendation{
		Age:         req.Age,
		BMI:         req.BMI,
		Profile:     string(s.profile),
		Implication: s.implication.String(),
	}

	if err := exercise.ValidateInput(req.Age, req.BMI); err != nil {
		metrics.RecordEvaluation(metrics.OutcomeInvalid, msSince(start))
		return types.Recommendation{}, err
	}

	res, cached, err := s.evaluate(req, &rec)
	if err != nil && !errors.Is(err, fuzzy.ErrDegenerateAggregate) {
		metrics.RecordErrorByComponent("engine", "evaluate")
		return types.Recommendation{}, fmt.Errorf("evaluate: %w", err)
	}
	rec.Cached = cached

	status := model.StatusOK
	if res.degenerate {
		status = model.StatusNoRecommendation
		metrics.RecordEvaluation(metrics.OutcomeNoResult, msSince(start))
	} else {
		rec.Minutes = res.minutes
		metrics.RecordEvaluation(metrics.OutcomeOK, msSince(start))
	}
	rec.Status = string(status)

	s.record(ctx, model.NewActivity(req.Age, req.BMI, res.minutes, status, string(s.profile)))

	if res.degenerate {
		return rec, fuzzy.ErrDegenerateAggregate
	}
	return rec, nil
}

// evaluate consults the cache unless an explanation is requested. Explained
// requests fill rec with the rule activations and the aggregate.
func (s *Service) evaluate(req Request, rec *types.Recommendation) (outcome, bool, error) {
	key := cacheKey{age: req.Age, bmi: req.BMI}
	if s.cache != nil && !req.Explain {
		if res, ok := s.cache.Get(key); ok {
			metrics.RecordCacheHit()
			return res, true, nil
		}
		metrics.RecordCacheMiss()
	}

	inf, err := s.engine.Infer(exercise.Inputs(req.Age, req.BMI))
	res := outcome{minutes: inf.Value, degenerate: errors.Is(err, fuzzy.ErrDegenerateAggregate)}
	if err != nil && !res.degenerate {
		return outcome{}, false, err
	}

	fired := 0
	for _, a := range inf.Activations {
		if a.Strength > 0 {
			fired++
			metrics.RecordRuleStrength(a.Consequent, a.Strength)
		}
	}
	metrics.RecordRulesFired(fired)
	if req.Explain {
		rec.Activations = inf.Activations
		rec.Aggregate = inf.Aggregate
	}
	if s.cache != nil {
		s.cache.Add(key, res)
	}
	return res, false, err
}

func (s *Service) record(ctx context.Context, a model.Activity) {
	if err := s.activity.Enqueue(ctx, a); err != nil {
		s.dropped.Add(1)
		metrics.RecordActivityDropped()
		s.logger.Debug(ctx, "activity entry dropped", logger.String("id", a.ID), logger.Error(err))
	}
}

// Variables returns read-only snapshots of every variable of the engine,
// inputs first.
func (s *Service) Variables(_ context.Context) ([]types.VariableView, error) {
	vars, err := s.variables()
	if err != nil {
		return nil, err
	}
	views := make([]types.VariableView, 0, len(vars))
	for _, v := range vars {
		view, err := types.NewVariableView(v)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// Variable looks up one variable by name.
func (s *Service) Variable(name string) (*fuzzy.Variable, error) {
	vars, err := s.variables()
	if err != nil {
		return nil, err
	}
	for _, v := range vars {
		if v.Name() == name {
			return v, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrVariableNotFound, name)
}

func (s *Service) variables() ([]*fuzzy.Variable, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return append(s.engine.Inputs(), s.engine.Output()), nil
}

// Rules returns the rule base in declaration order.
func (s *Service) Rules() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	rules := s.engine.Rules()
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.String()
	}
	return out, nil
}

// Recent returns up to n activity entries, newest first.
func (s *Service) Recent(ctx context.Context, n int) ([]model.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.store.Recent(ctx, n)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"profile":     string(s.profile),
		"implication": s.implication.String(),
		"cacheSize":   s.cacheSize,
		"queueSize":   s.queueSize,
		"workerCount": s.workerCount,
	}
	if !s.started {
		return stats
	}

	ctx := context.Background()
	stats["rules"] = len(s.engine.Rules())
	stats["queueLength"] = s.activity.Len(ctx)
	stats["workerCount"] = s.pool.Size()
	stats["activityPersisted"] = s.pool.Processed()
	stats["activityFailed"] = s.pool.Failed()
	stats["activityDropped"] = s.dropped.Load()
	if s.cache != nil {
		stats["cacheEntries"] = s.cache.Len()
	}
	if n, err := s.store.Count(ctx); err == nil {
		stats["activityStored"] = n
		metrics.UpdateStoreRecords(n)
	}
	return stats
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
