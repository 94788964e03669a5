package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/riskibarqy/worldcup-insights/internal/analytics"
	"github.com/riskibarqy/worldcup-insights/internal/domain/worldcup"
	"github.com/riskibarqy/worldcup-insights/internal/platform/cache"
)

// AnalyticsService answers statistics queries over the loaded catalog.
// Results are memoized per facet and team codes for the process lifetime.
type AnalyticsService struct {
	catalog CatalogReader
	cache   *cache.Store
}

func NewAnalyticsService(catalog CatalogReader, store *cache.Store) *AnalyticsService {
	if store == nil {
		store = cache.NewStore(0)
	}
	return &AnalyticsService{catalog: catalog, cache: store}
}

func (s *AnalyticsService) GoalStats(ctx context.Context, code string) (analytics.GoalStats, error) {
	return facet(ctx, s, "goals", code, analytics.ComputeGoalStats)
}

func (s *AnalyticsService) HomeAway(ctx context.Context, code string) (analytics.HomeAway, error) {
	return facet(ctx, s, "home-away", code, analytics.ComputeHomeAway)
}

func (s *AnalyticsService) Streaks(ctx context.Context, code string) (analytics.Streaks, error) {
	return facet(ctx, s, "streaks", code, analytics.ComputeStreaks)
}

func (s *AnalyticsService) Graph(ctx context.Context, code string) (analytics.Dominance, error) {
	return facet(ctx, s, "graph", code, analytics.ComputeDominance)
}

func (s *AnalyticsService) GoalPercentage(ctx context.Context, code string) (analytics.GoalPercentage, error) {
	return facet(ctx, s, "goal-percentage", code, analytics.ComputeGoalPercentage)
}

func (s *AnalyticsService) Effectiveness(ctx context.Context, code string) (analytics.Unavailable, error) {
	return facet(ctx, s, "effectiveness", code, analytics.ComputeEffectiveness)
}

func (s *AnalyticsService) Possession(ctx context.Context, code string) (analytics.Unavailable, error) {
	return facet(ctx, s, "possession", code, analytics.ComputePossession)
}

func (s *AnalyticsService) Record(ctx context.Context, code string) (analytics.Record, error) {
	return facet(ctx, s, "record", code, analytics.ComputeRecord)
}

// Momentum uses the default span when span is not positive.
func (s *AnalyticsService) Momentum(ctx context.Context, code string, span int) (analytics.Momentum, error) {
	if span < 1 {
		span = analytics.DefaultMomentumSpan
	}
	return facet(ctx, s, "momentum:"+strconv.Itoa(span), code, func(code string, matches []worldcup.Match) analytics.Momentum {
		return analytics.ComputeMomentum(code, matches, span)
	})
}

func (s *AnalyticsService) HeadToHead(ctx context.Context, codeA, codeB string) (analytics.HeadToHead, error) {
	return pairFacet(ctx, s, "history", codeA, codeB, analytics.ComputeHeadToHead)
}

func (s *AnalyticsService) Predict(ctx context.Context, codeA, codeB string) (analytics.Prediction, error) {
	return pairFacet(ctx, s, "prediction", codeA, codeB, analytics.Predict)
}

func facet[T any](
	ctx context.Context,
	s *AnalyticsService,
	name, code string,
	compute func(string, []worldcup.Match) T,
) (T, error) {
	var zero T
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalyticsService."+name)
	defer span.End()

	code, err := normalizeCode(code)
	if err != nil {
		return zero, err
	}
	return memoize(ctx, s, "facet:"+name+":"+code, func(matches []worldcup.Match) T {
		return compute(code, matches)
	})
}

func pairFacet[T any](
	ctx context.Context,
	s *AnalyticsService,
	name, codeA, codeB string,
	compute func(string, string, []worldcup.Match) T,
) (T, error) {
	var zero T
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalyticsService."+name)
	defer span.End()

	codeA, err := normalizeCode(codeA)
	if err != nil {
		return zero, err
	}
	codeB, err = normalizeCode(codeB)
	if err != nil {
		return zero, err
	}
	return memoize(ctx, s, "facet:"+name+":"+codeA+":"+codeB, func(matches []worldcup.Match) T {
		return compute(codeA, codeB, matches)
	})
}

func memoize[T any](ctx context.Context, s *AnalyticsService, key string, compute func([]worldcup.Match) T) (T, error) {
	var zero T
	catalog, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return zero, err
	}

	v, err := s.cache.GetOrLoad(ctx, key, func(context.Context) (any, error) {
		return compute(catalog.Matches), nil
	})
	if err != nil {
		return zero, err
	}
	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("cached %s has unexpected type %T", key, v)
	}
	return out, nil
}
