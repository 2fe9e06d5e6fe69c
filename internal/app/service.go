// Package service wires the fetcher, cache and analytics into the operations
// served by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/okian/careerlens/internal/adapters/repository"
	"github.com/okian/careerlens/internal/domain/analysis"
	"github.com/okian/careerlens/internal/domain/charts"
	"github.com/okian/careerlens/internal/domain/compare"
	"github.com/okian/careerlens/internal/domain/model"
	"github.com/okian/careerlens/internal/domain/normalize"
	"github.com/okian/careerlens/pkg/logger"
	"github.com/okian/careerlens/pkg/metrics"
)

const (
	searchLimit   = 10
	popularLimit  = 20
	trendingLimit = 10
	popularPage   = 1

	// resolveConcurrency bounds parallel career loads for multi-actor calls.
	resolveConcurrency = 4
)

// Fetcher supplies raw upstream records. Implementations are total: failures
// are absorbed into fallback data rather than returned.
type Fetcher interface {
	normalize.Enricher
	SearchPersons(ctx context.Context, query string) []model.RawPersonSummary
	PersonDetails(ctx context.Context, id int) (model.RawPerson, bool)
	PopularPersons(ctx context.Context, page int) []model.RawPersonSummary
}

// Service implements the API dependencies for career analytics.
type Service struct {
	fetcher    Fetcher
	store      repository.Store
	normalizer *normalize.Normalizer
	analyzer   *analysis.Analyzer
	comparer   *compare.Engine
	projector  *charts.Projector

	genres  normalize.GenreEstimator
	weights *analysis.Weights
	clock   func() time.Time

	loads     singleflight.Group
	startedAt time.Time

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the query cache. Defaults to a fresh MemoryStore.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithClock sets the time source used as the analysis date.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithWeights overrides the career score weights.
func WithWeights(w analysis.Weights) Option {
	return func(s *Service) {
		s.weights = &w
	}
}

// WithGenreEstimator sets the genre estimator used during normalization.
func WithGenreEstimator(g normalize.GenreEstimator) Option {
	return func(s *Service) {
		if g != nil {
			s.genres = g
		}
	}
}

// New constructs a Service on top of fetcher.
func New(ctx context.Context, fetcher Fetcher, opts ...Option) *Service {
	s := &Service{
		fetcher: fetcher,
		clock:   time.Now,
		genres:  normalize.PlaceholderGenres{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore(ctx)
	}

	var analyzerOpts []analysis.Option
	if s.weights != nil {
		analyzerOpts = append(analyzerOpts, analysis.WithWeights(*s.weights))
	}
	s.analyzer = analysis.New(analyzerOpts...)
	s.comparer = compare.New(s.analyzer)
	s.projector = charts.New(s.analyzer)
	s.normalizer = normalize.New(fetcher,
		normalize.WithGenreEstimator(s.genres),
		normalize.WithLogger(s.logger.Named("normalize")),
	)
	s.startedAt = s.clock()
	return s
}

// SearchActors returns up to ten people matching query. Empty results are
// cached too.
func (s *Service) SearchActors(ctx context.Context, query string) ([]model.ActorSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := repository.SearchKey(query)
	if cached, ok := repository.Lookup[[]model.ActorSummary](ctx, s.store, key); ok {
		return cached, nil
	}

	raw := s.fetcher.SearchPersons(ctx, query)
	// A cancelled fetch returns fallback data, which must not be cached.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := summaries(raw, searchLimit)
	s.store.Put(ctx, key, out)
	s.logger.Debug(ctx, "actor search", logger.String("query", query), logger.Int("results", len(out)))
	return out, nil
}

// GetActorCareer resolves name to the first search hit and returns its
// normalized career. Concurrent loads of the same name share one fetch. A
// miss returns model.ErrNotFound and is not cached.
//
// The shared load is detached from any single caller's cancellation; a
// caller whose ctx ends returns ctx.Err() while the load completes for the
// others and for the cache.
func (s *Service) GetActorCareer(ctx context.Context, name string) (*model.ActorCareer, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("actor career: empty name: %w", model.ErrNotFound)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := repository.ActorKey(name)
	if cached, ok := repository.Lookup[*model.ActorCareer](ctx, s.store, key); ok {
		return cached, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := s.loads.DoChan(key, func() (any, error) {
		if cached, ok := repository.Lookup[*model.ActorCareer](loadCtx, s.store, key); ok {
			return cached, nil
		}
		return s.loadCareer(loadCtx, name, key)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Shared {
			metrics.RecordSharedLoad()
		}
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*model.ActorCareer), nil
	}
}

func (s *Service) loadCareer(ctx context.Context, name, key string) (*model.ActorCareer, error) {
	hits, err := s.SearchActors(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(hits) == 0 {
		return nil, fmt.Errorf("actor %q: %w", name, model.ErrNotFound)
	}

	raw, ok := s.fetcher.PersonDetails(ctx, hits[0].ID)
	if !ok {
		return nil, fmt.Errorf("actor %q (id %d): %w", name, hits[0].ID, model.ErrNotFound)
	}
	career := s.normalizer.Normalize(ctx, raw)
	s.store.Put(ctx, key, career)
	s.logger.Info(ctx, "actor career loaded",
		logger.String("name", career.Name),
		logger.Int("credits", career.TotalMovies()))
	return career, nil
}

// GetPopularActors returns up to twenty popular people.
func (s *Service) GetPopularActors(ctx context.Context) ([]model.ActorSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	key := repository.PopularKey()
	if cached, ok := repository.Lookup[[]model.ActorSummary](ctx, s.store, key); ok {
		return cached, nil
	}

	raw := s.fetcher.PopularPersons(ctx, popularPage)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := summaries(raw, popularLimit)
	s.store.Put(ctx, key, out)
	return out, nil
}

// GetTrendingActors returns the first ten popular people.
func (s *Service) GetTrendingActors(ctx context.Context) ([]model.ActorSummary, error) {
	popular, err := s.GetPopularActors(ctx)
	if err != nil {
		return nil, err
	}
	if len(popular) > trendingLimit {
		popular = popular[:trendingLimit]
	}
	return popular, nil
}

// AnalyzeCareer analyzes career as of the service clock.
func (s *Service) AnalyzeCareer(ctx context.Context, career *model.ActorCareer) (analysis.Result, error) {
	start := time.Now()
	res, err := s.analyzer.Analyze(career, s.clock())
	if err != nil {
		metrics.RecordAnalysisError(analysisReason(err))
		s.logger.Debug(ctx, "career analysis unavailable", logger.Error(err))
		return analysis.Result{}, err
	}
	metrics.RecordCareerAnalyzed(float64(time.Since(start).Microseconds()) / 1000)
	return res, nil
}

// CompareActors loads every named career and ranks them per metric. Fewer
// than two names yields model.ErrInsufficientActors; fewer than two
// resolvable names yields model.ErrNotFound.
func (s *Service) CompareActors(ctx context.Context, names []string) (compare.Result, error) {
	if len(names) < 2 {
		return compare.Result{}, fmt.Errorf("compare %d names: %w", len(names), model.ErrInsufficientActors)
	}
	careers, err := s.resolveCareers(ctx, names)
	if err != nil {
		return compare.Result{}, err
	}
	if len(careers) < 2 {
		return compare.Result{}, fmt.Errorf("compare: %d of %d actors found: %w", len(careers), len(names), model.ErrNotFound)
	}

	res, err := s.comparer.Compare(careers, s.clock())
	if err != nil {
		return compare.Result{}, err
	}
	metrics.RecordComparison()
	return res, nil
}

// ProjectCharts builds chart series for the named actors. It returns
// model.ErrNotFound when none of them resolve.
func (s *Service) ProjectCharts(ctx context.Context, names []string) (charts.Bundle, error) {
	careers, err := s.resolveCareers(ctx, names)
	if err != nil {
		return charts.Bundle{}, err
	}
	if len(careers) == 0 {
		return charts.Bundle{}, fmt.Errorf("charts: %w", model.ErrNotFound)
	}
	b := s.projector.Project(careers, s.clock())
	metrics.RecordChartProjection()
	return b, nil
}

// IndustryInsights aggregates statistics over the named actors. With no
// names it summarizes the trending actors.
func (s *Service) IndustryInsights(ctx context.Context, names []string) (analysis.Insights, error) {
	if len(names) == 0 {
		trending, err := s.GetTrendingActors(ctx)
		if err != nil {
			return analysis.Insights{}, err
		}
		for _, a := range trending {
			names = append(names, a.Name)
		}
	}
	careers, err := s.resolveCareers(ctx, names)
	if err != nil {
		return analysis.Insights{}, err
	}
	return s.analyzer.Insights(careers, s.clock()), nil
}

// ClearCache drops every cached query result.
func (s *Service) ClearCache(ctx context.Context) {
	s.store.Clear(ctx)
	s.logger.Info(ctx, "query cache cleared")
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) map[string]any {
	return map[string]any{
		"cacheEntries":  s.store.Len(ctx),
		"startedAt":     s.startedAt.UTC().Format(time.RFC3339),
		"uptimeSeconds": int64(s.clock().Sub(s.startedAt).Seconds()),
	}
}

// resolveCareers loads careers concurrently, keeping the order of names and
// dropping names that do not resolve.
func (s *Service) resolveCareers(ctx context.Context, names []string) ([]*model.ActorCareer, error) {
	found := make([]*model.ActorCareer, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)
	for i, name := range names {
		g.Go(func() error {
			career, err := s.GetActorCareer(gctx, name)
			switch {
			case errors.Is(err, model.ErrNotFound):
				s.logger.Debug(gctx, "actor not found", logger.String("name", name))
				return nil
			case err != nil:
				return err
			}
			found[i] = career
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*model.ActorCareer, 0, len(found))
	for _, c := range found {
		if c != nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func summaries(raw []model.RawPersonSummary, limit int) []model.ActorSummary {
	if len(raw) > limit {
		raw = raw[:limit]
	}
	out := make([]model.ActorSummary, 0, len(raw))
	for _, p := range raw {
		out = append(out, p.Summary())
	}
	return out
}

func analysisReason(err error) string {
	switch {
	case errors.Is(err, model.ErrInsufficientData):
		return "insufficient_data"
	case errors.Is(err, model.ErrNoRatingData):
		return "no_rating_data"
	default:
		return "other"
	}
}
