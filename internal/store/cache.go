// Package store owns the refresh lifecycle of the listing dataset: a
// process-wide TTL cache in front of the fetch+normalize pipeline.
package store

import (
	"context"
	"sync"
	"time"

	"github.com/quantbr/fiiscan/internal/core"
	"github.com/quantbr/fiiscan/internal/metrics"
	"github.com/quantbr/fiiscan/internal/normalize"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Fetcher retrieves the raw listing. Implemented by fundamentus.Client.
type Fetcher interface {
	Fetch(ctx context.Context) (core.RawTable, error)
}

// Clock supplies the current time. Injectable so tests can move through
// the TTL window without sleeping.
type Clock func() time.Time

// Config holds the cache settings.
type Config struct {
	// Key identifies the source; concurrent refreshes of the same key are
	// collapsed into one in-flight fetch.
	Key string
	TTL time.Duration
}

// Service serves the current dataset, refreshing it at most once per TTL
// window. Reads vastly outnumber refreshes; the cached value is immutable
// and superseded wholesale.
type Service struct {
	fetcher    Fetcher
	normalizer *normalize.Normalizer
	cfg        Config
	clock      Clock
	logger     *zap.Logger
	metrics    *metrics.Registry

	group singleflight.Group

	mu        sync.RWMutex
	cached    core.Dataset
	fetchedAt time.Time
	hasValue  bool
}

// New creates a cache service. A nil clock defaults to time.Now and a nil
// metrics registry disables instrumentation.
func New(fetcher Fetcher, normalizer *normalize.Normalizer, cfg Config, logger *zap.Logger, reg *metrics.Registry) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetcher:    fetcher,
		normalizer: normalizer,
		cfg:        cfg,
		clock:      time.Now,
		logger:     logger,
		metrics:    reg,
	}
}

// WithClock overrides the clock. Intended for tests.
func (s *Service) WithClock(clock Clock) *Service {
	s.clock = clock
	return s
}

// GetOrRefresh returns the cached dataset when it is still within the TTL
// window, otherwise fetches and normalizes a fresh one. Concurrent callers
// past expiry share a single in-flight refresh. On failure it returns an
// empty Dataset together with a typed error (FETCH_* or a parse code);
// it never panics past this boundary.
func (s *Service) GetOrRefresh(ctx context.Context) (core.Dataset, error) {
	if ds, ok := s.fresh(); ok {
		if s.metrics != nil {
			s.metrics.RecordCacheHit()
		}
		return ds, nil
	}
	if s.metrics != nil {
		s.metrics.RecordCacheMiss()
	}

	v, err, _ := s.group.Do(s.cfg.Key, func() (any, error) {
		// A caller queued behind the winning refresh sees its result here.
		if ds, ok := s.fresh(); ok {
			return ds, nil
		}
		return s.refresh(ctx)
	})
	if err != nil {
		return core.Dataset{}, err
	}
	return v.(core.Dataset), nil
}

// fresh returns the cached dataset if it is still within the TTL window.
func (s *Service) fresh() (core.Dataset, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.hasValue && s.clock().Sub(s.fetchedAt) < s.cfg.TTL {
		return s.cached, true
	}
	return core.Dataset{}, false
}

func (s *Service) refresh(ctx context.Context) (core.Dataset, error) {
	start := time.Now()

	raw, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.observe("fetch_error", start)
		s.logger.Error("refresh failed", zap.Error(err))
		return core.Dataset{}, err
	}

	ds, report, err := s.normalizer.Normalize(raw)
	if err != nil {
		s.observe("parse_error", start)
		s.logger.Error("refresh failed", zap.Error(err))
		return core.Dataset{}, err
	}

	s.mu.Lock()
	s.cached = ds
	s.fetchedAt = s.clock()
	s.hasValue = true
	s.mu.Unlock()

	s.observe("success", start)
	if s.metrics != nil {
		s.metrics.SetDatasetSize(ds.Size())
		for reason, count := range report.Dropped {
			s.metrics.RecordRowsDropped(reason, count)
		}
	}
	s.logger.Info("dataset refreshed",
		zap.String("refresh_id", ds.RefreshID),
		zap.Int("records", ds.Size()),
		zap.Int("dropped", report.TotalDropped()),
		zap.Duration("duration", time.Since(start)),
	)
	return ds, nil
}

func (s *Service) observe(outcome string, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordFetch(outcome, time.Since(start).Seconds())
	}
}
