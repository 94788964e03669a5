package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/riskibarqy/worldcup-insights/internal/domain/team"
	"github.com/riskibarqy/worldcup-insights/internal/domain/worldcup"
)

type stubCatalog struct {
	catalog Catalog
	err     error
	calls   atomic.Int32
}

func (s *stubCatalog) Snapshot(context.Context) (Catalog, error) {
	s.calls.Add(1)
	return s.catalog, s.err
}

func rivalryCatalog() Catalog {
	argentina := team.Team{Name: "Argentina", Code: "ARG"}
	return Catalog{
		Years: []int{1978, 1986, 1990},
		Matches: []worldcup.Match{
			{Num: 1, Date: "1978-06-18", TeamA: argentina, TeamB: brazil, ScoreA: 0, ScoreB: 0, Competition: "World Cup", Year: "1978"},
			{Num: 2, Date: "1986-06-29", TeamA: argentina, TeamB: germany, ScoreA: 3, ScoreB: 2, Competition: "World Cup", Year: "1986"},
			{Num: 3, Date: "1990-06-24", TeamA: brazil, TeamB: argentina, ScoreA: 0, ScoreB: 1, Competition: "World Cup", Year: "1990"},
		},
	}
}

func TestAnalyticsService_Facets(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := NewAnalyticsService(&stubCatalog{catalog: rivalryCatalog()}, nil)

	record, err := service.Record(ctx, "arg")
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if record.Wins != 2 || record.Draws != 1 || record.Losses != 0 {
		t.Fatalf("unexpected record: %+v", record)
	}

	goals, err := service.GoalStats(ctx, "ARG")
	if err != nil {
		t.Fatalf("goal stats: %v", err)
	}
	if goals.Global.GoalsFor != 4 || goals.Global.GoalsAgainst != 2 {
		t.Fatalf("unexpected goal totals: %+v", goals.Global)
	}

	history, err := service.HeadToHead(ctx, "ARG", "BRA")
	if err != nil {
		t.Fatalf("head to head: %v", err)
	}
	if history.TotalMatches != 2 || history.WinsA != 1 || history.Draws != 1 || history.WinsB != 0 {
		t.Fatalf("unexpected head to head: %+v", history)
	}

	prediction, err := service.Predict(ctx, "ARG", "BRA")
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if prediction.ProbabilityA <= prediction.ProbabilityB {
		t.Fatalf("expected ARG to be favoured: %+v", prediction)
	}

	momentum, err := service.Momentum(ctx, "ARG", 0)
	if err != nil {
		t.Fatalf("momentum: %v", err)
	}
	if len(momentum.History) != 3 {
		t.Fatalf("unexpected momentum history: %d", len(momentum.History))
	}

	possession, err := service.Possession(ctx, "ARG")
	if err != nil {
		t.Fatalf("possession: %v", err)
	}
	if possession.Available {
		t.Fatalf("possession must be reported unavailable")
	}
}

func TestAnalyticsService_MemoizesPerFacetAndCode(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stub := &stubCatalog{catalog: rivalryCatalog()}
	service := NewAnalyticsService(stub, nil)

	first, err := service.Streaks(ctx, "ARG")
	if err != nil {
		t.Fatalf("streaks: %v", err)
	}

	stub.catalog = Catalog{}
	second, err := service.Streaks(ctx, "arg")
	if err != nil {
		t.Fatalf("streaks again: %v", err)
	}
	if first.Current != second.Current || first.Longest != second.Longest {
		t.Fatalf("expected memoized streaks, got %+v then %+v", first, second)
	}

	other, err := service.Streaks(ctx, "BRA")
	if err != nil {
		t.Fatalf("streaks for BRA: %v", err)
	}
	if other.Current.Count != 0 {
		t.Fatalf("BRA streaks should come from the emptied catalog: %+v", other.Current)
	}
}

func TestAnalyticsService_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	unloaded := NewAnalyticsService(&stubCatalog{err: ErrDataNotLoaded}, nil)
	if _, err := unloaded.HomeAway(ctx, "ARG"); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}

	stub := &stubCatalog{catalog: rivalryCatalog()}
	service := NewAnalyticsService(stub, nil)
	if _, err := service.Graph(ctx, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := service.HeadToHead(ctx, "ARG", " "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if stub.calls.Load() != 0 {
		t.Fatalf("invalid input must not touch the catalog")
	}

	unknown, err := service.Record(ctx, "XYZ")
	if err != nil {
		t.Fatalf("record for unknown code: %v", err)
	}
	if unknown.TotalMatches != 0 {
		t.Fatalf("unknown code must produce an empty record: %+v", unknown)
	}
}
