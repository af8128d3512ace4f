// Package service fronts the calculation engine with result caching and net
// worth snapshot persistence.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/rpgo/finplan/internal/calculation"
	"github.com/rpgo/finplan/internal/common"
	"github.com/rpgo/finplan/internal/domain"
	"github.com/rpgo/finplan/internal/store"
)

// DefaultSnapshotLimit caps snapshot listings when no limit is configured.
const DefaultSnapshotLimit = 50

// CalculatorService runs calculations through a result cache and stores net
// worth snapshots.
type CalculatorService struct {
	engine        *calculation.CalculationEngine
	cache         store.Cache
	snapshots     store.SnapshotRepository
	logger        *common.Logger
	snapshotLimit int
	now           store.Clock
}

// Option configures a CalculatorService.
type Option func(*CalculatorService)

// WithCache sets the result cache. The default stores nothing.
func WithCache(c store.Cache) Option {
	return func(s *CalculatorService) { s.cache = c }
}

// WithSnapshots sets the snapshot repository. The default keeps snapshots in memory.
func WithSnapshots(r store.SnapshotRepository) Option {
	return func(s *CalculatorService) { s.snapshots = r }
}

// WithLogger sets the service logger.
func WithLogger(l *common.Logger) Option {
	return func(s *CalculatorService) { s.logger = l }
}

// WithClock sets the time source for snapshot timestamps.
func WithClock(now store.Clock) Option {
	return func(s *CalculatorService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSnapshotLimit caps how many snapshots List returns.
func WithSnapshotLimit(n int) Option {
	return func(s *CalculatorService) {
		if n > 0 {
			s.snapshotLimit = n
		}
	}
}

// NewCalculatorService creates a service around engine.
func NewCalculatorService(engine *calculation.CalculationEngine, opts ...Option) *CalculatorService {
	s := &CalculatorService{
		engine:        engine,
		cache:         store.NopCache{},
		snapshots:     store.NewMemorySnapshots(),
		logger:        common.NewSilentLogger(),
		snapshotLimit: DefaultSnapshotLimit,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// cacheKey hashes the canonical JSON encoding of the input. Map keys are
// sorted by encoding/json, so equal inputs always share a key.
func cacheKey(kind domain.CalculatorKind, in any) (string, error) {
	data, err := json.Marshal(in)
	if err != nil {
		return "", fmt.Errorf("failed to encode %s input: %w", kind, err)
	}
	return fmt.Sprintf("%s:%016x", kind, xxhash.Sum64(data)), nil
}

// cached serves a result from the cache or computes and stores it. Cache
// failures are logged and never fail the calculation.
func cached[I any, R any](ctx context.Context, s *CalculatorService, kind domain.CalculatorKind, in I,
	compute func(context.Context, I) (*R, error)) (*R, error) {
	key, keyErr := cacheKey(kind, in)
	if keyErr == nil {
		if raw, ok := s.cache.Get(ctx, key); ok {
			var hit R
			if err := json.Unmarshal([]byte(raw), &hit); err == nil {
				s.logger.Debug().Str("kind", string(kind)).Str("key", key).Msg("cache hit")
				return &hit, nil
			}
			s.logger.Warn().Str("key", key).Msg("discarding undecodable cache entry")
		}
	} else {
		s.logger.Warn().Err(keyErr).Msg("cache key unavailable")
	}

	result, err := compute(ctx, in)
	if err != nil {
		return nil, err
	}

	if keyErr == nil {
		if data, err := json.Marshal(result); err != nil {
			s.logger.Warn().Err(err).Str("kind", string(kind)).Msg("failed to encode result for cache")
		} else if err := s.cache.Set(ctx, key, string(data)); err != nil {
			s.logger.Warn().Err(err).Str("kind", string(kind)).Msg("failed to cache result")
		}
	}
	return result, nil
}

// Mortgage computes (or recalls) a mortgage analysis.
func (s *CalculatorService) Mortgage(ctx context.Context, in domain.MortgageInput) (*domain.MortgageResult, error) {
	return cached(ctx, s, domain.KindMortgage, in, s.engine.Mortgage)
}

// CompoundInterest computes (or recalls) a compound growth projection.
func (s *CalculatorService) CompoundInterest(ctx context.Context, in domain.CompoundInterestInput) (*domain.CompoundInterestResult, error) {
	in.CompoundingFrequency = in.CompoundingFrequency.Normalize()
	return cached(ctx, s, domain.KindCompoundInterest, in, s.engine.CompoundInterest)
}

// Retirement computes (or recalls) a retirement analysis.
func (s *CalculatorService) Retirement(ctx context.Context, in domain.RetirementInput) (*domain.RetirementResult, error) {
	return cached(ctx, s, domain.KindRetirement, in, s.engine.Retirement)
}

// NetWorth computes (or recalls) a balance sheet aggregation.
func (s *CalculatorService) NetWorth(ctx context.Context, in domain.NetWorthInput) (*domain.NetWorthResult, error) {
	return cached(ctx, s, domain.KindNetWorth, in, s.engine.NetWorth)
}

// SaveSnapshot computes net worth for in and stores the totals with the input.
func (s *CalculatorService) SaveSnapshot(ctx context.Context, label string, in domain.NetWorthInput) (*domain.NetWorthSnapshot, *domain.NetWorthResult, error) {
	result, err := s.NetWorth(ctx, in)
	if err != nil {
		return nil, nil, err
	}

	snapshot := domain.NetWorthSnapshot{
		ID:               uuid.New().String(),
		Label:            strings.TrimSpace(label),
		CreatedAt:        s.now().UTC(),
		Input:            in,
		NetWorth:         result.CurrentNetWorth,
		TotalAssets:      result.TotalAssets,
		TotalLiabilities: result.TotalLiabilities,
	}
	if err := s.snapshots.Save(ctx, snapshot); err != nil {
		return nil, nil, fmt.Errorf("failed to save snapshot: %w", err)
	}
	s.logger.Info().Str("snapshot_id", snapshot.ID).Str("net_worth", snapshot.NetWorth.StringFixed(2)).Msg("net worth snapshot saved")
	return &snapshot, result, nil
}

// ListSnapshots returns the newest snapshots. A limit outside 1..max uses max.
func (s *CalculatorService) ListSnapshots(ctx context.Context, limit int) ([]domain.NetWorthSnapshot, error) {
	if limit <= 0 || limit > s.snapshotLimit {
		limit = s.snapshotLimit
	}
	list, err := s.snapshots.List(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return list, nil
}

// GetSnapshot loads one snapshot by id.
func (s *CalculatorService) GetSnapshot(ctx context.Context, id string) (*domain.NetWorthSnapshot, error) {
	return s.snapshots.Get(ctx, id)
}
