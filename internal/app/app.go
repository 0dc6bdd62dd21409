// Package app wires the pipeline together: fetcher, normalizer, TTL cache,
// screener and analytics, behind one facade the CLI and API consume.
package app

import (
	"context"

	"github.com/quantbr/fiiscan/internal/analytics"
	"github.com/quantbr/fiiscan/internal/config"
	"github.com/quantbr/fiiscan/internal/core"
	"github.com/quantbr/fiiscan/internal/fundamentus"
	"github.com/quantbr/fiiscan/internal/metrics"
	"github.com/quantbr/fiiscan/internal/normalize"
	"github.com/quantbr/fiiscan/internal/screener"
	"github.com/quantbr/fiiscan/internal/store"
	"go.uber.org/zap"
)

// DatasetSource serves the current dataset. Implemented by store.Service;
// tests substitute a static source.
type DatasetSource interface {
	GetOrRefresh(ctx context.Context) (core.Dataset, error)
}

// App is the pipeline facade. All operations are read-only over the
// dataset the source serves; filtering and aggregation never mutate it, so
// concurrent calls with different criteria are safe.
type App struct {
	cfg     *config.Config
	logger  *zap.Logger
	source  DatasetSource
	metrics *metrics.Registry
}

// New builds the full pipeline from configuration.
func New(cfg *config.Config, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}

	reg := metrics.NewRegistry()
	client := fundamentus.New(fundamentus.Config{
		URL:       cfg.Source.URL,
		UserAgent: cfg.Source.UserAgent,
		Timeout:   cfg.Source.Timeout,
	}, logger)
	normalizer := normalize.New(logger)
	cache := store.New(client, normalizer, store.Config{
		Key: cfg.Source.URL,
		TTL: cfg.Source.CacheTTL,
	}, logger, reg)

	return &App{
		cfg:     cfg,
		logger:  logger,
		source:  cache,
		metrics: reg,
	}
}

// NewWithSource builds an App over a custom dataset source. Used by tests.
func NewWithSource(cfg *config.Config, logger *zap.Logger, source DatasetSource) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		cfg:     cfg,
		logger:  logger,
		source:  source,
		metrics: metrics.NewRegistry(),
	}
}

// Metrics returns the app's metrics registry.
func (a *App) Metrics() *metrics.Registry { return a.metrics }

// Dataset returns the current full dataset, refreshing it when the cache
// window has lapsed.
func (a *App) Dataset(ctx context.Context) (core.Dataset, error) {
	return a.source.GetOrRefresh(ctx)
}

// ScreenResult is one screening run: the matching records plus headline
// numbers against the full dataset.
type ScreenResult struct {
	Filtered core.Dataset
	Summary  screener.Summary
}

// Screen filters the current dataset by the given criteria.
func (a *App) Screen(ctx context.Context, criteria core.FilterCriteria) (ScreenResult, error) {
	ds, err := a.source.GetOrRefresh(ctx)
	if err != nil {
		return ScreenResult{}, err
	}
	filtered := screener.Apply(ds, criteria)
	return ScreenResult{
		Filtered: filtered,
		Summary:  screener.Summarize(filtered, ds),
	}, nil
}

// Bounds returns the dataset-derived valid ranges for the filter
// thresholds. ok is false when the dataset is empty.
func (a *App) Bounds(ctx context.Context) (screener.Bounds, bool, error) {
	ds, err := a.source.GetOrRefresh(ctx)
	if err != nil {
		return screener.Bounds{}, false, err
	}
	b, ok := screener.ComputeBounds(ds)
	return b, ok, nil
}

// Segments aggregates the dataset filtered by the given criteria into
// per-segment summaries.
func (a *App) Segments(ctx context.Context, criteria core.FilterCriteria) ([]core.SegmentSummary, error) {
	ds, err := a.source.GetOrRefresh(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Aggregate(screener.Apply(ds, criteria)), nil
}

// Segment restricts the filtered dataset to one segment value.
func (a *App) Segment(ctx context.Context, criteria core.FilterCriteria, segment string) (core.Dataset, error) {
	ds, err := a.source.GetOrRefresh(ctx)
	if err != nil {
		return core.Dataset{}, err
	}
	return analytics.RestrictToSegment(screener.Apply(ds, criteria), segment), nil
}

// Compare builds the same-segment comparison for one ticker within the
// filtered dataset. ok is false when the ticker did not pass the filter.
func (a *App) Compare(ctx context.Context, criteria core.FilterCriteria, ticker string) (analytics.Comparison, bool, error) {
	ds, err := a.source.GetOrRefresh(ctx)
	if err != nil {
		return analytics.Comparison{}, false, err
	}
	cmp, ok := analytics.Compare(screener.Apply(ds, criteria), ticker)
	return cmp, ok, nil
}
