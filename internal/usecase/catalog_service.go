package usecase

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/iter"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/worldcup-insights/internal/domain/team"
	"github.com/riskibarqy/worldcup-insights/internal/domain/worldcup"
	"github.com/riskibarqy/worldcup-insights/internal/platform/cache"
	"github.com/riskibarqy/worldcup-insights/internal/platform/logging"
)

const catalogCacheKey = "catalog:snapshot"

// Catalog is the read-only match and team snapshot every query runs against.
type Catalog struct {
	Years    []int            `json:"years"`
	Matches  []worldcup.Match `json:"-"`
	Teams    []team.Team      `json:"-"`
	LoadedAt time.Time        `json:"loaded_at"`
}

type CatalogConfig struct {
	Competition string
	// Years limits loading to these editions; empty loads every converted year.
	Years []int
}

type CatalogObserver interface {
	CatalogLoaded(matches int)
}

// CatalogReader hands out the loaded snapshot.
type CatalogReader interface {
	Snapshot(ctx context.Context) (Catalog, error)
}

type TeamDetails struct {
	Team          team.Team      `json:"team"`
	Aliases       []string       `json:"aliases"`
	Lineage       []team.Lineage `json:"lineage"`
	MatchesPlayed int            `json:"matches_played"`
	Editions      []string       `json:"editions"`
}

type CatalogService struct {
	repo      worldcup.Repository
	directory team.Directory
	cache     *cache.Store
	cfg       CatalogConfig
	logger    *logging.Logger
	observer  CatalogObserver
	loaded    atomic.Bool
}

func NewCatalogService(
	repo worldcup.Repository,
	directory team.Directory,
	store *cache.Store,
	cfg CatalogConfig,
	logger *logging.Logger,
	observer CatalogObserver,
) *CatalogService {
	if store == nil {
		store = cache.NewStore(0)
	}
	if logger == nil {
		logger = logging.Default()
	}
	if strings.TrimSpace(cfg.Competition) == "" {
		cfg.Competition = "World Cup"
	}
	return &CatalogService{
		repo:      repo,
		directory: directory,
		cache:     store,
		cfg:       cfg,
		logger:    logger,
		observer:  observer,
	}
}

// Load reads every configured year once. Concurrent callers share one load.
func (s *CatalogService) Load(ctx context.Context) (Catalog, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.Load")
	defer span.End()

	v, err := s.cache.GetOrLoad(ctx, catalogCacheKey, func(ctx context.Context) (any, error) {
		return s.build(ctx)
	})
	if err != nil {
		recordSpanError(span, err)
		return Catalog{}, err
	}

	catalog, _ := v.(Catalog)
	if s.loaded.CompareAndSwap(false, true) {
		s.logger.InfoContext(ctx, "catalog loaded",
			"years", len(catalog.Years),
			"matches", len(catalog.Matches),
			"teams", len(catalog.Teams),
		)
		if s.observer != nil {
			s.observer.CatalogLoaded(len(catalog.Matches))
		}
	}
	return catalog, nil
}

func (s *CatalogService) Loaded() bool {
	return s.loaded.Load()
}

// Snapshot returns the loaded catalog or ErrDataNotLoaded.
func (s *CatalogService) Snapshot(ctx context.Context) (Catalog, error) {
	if !s.loaded.Load() {
		return Catalog{}, ErrDataNotLoaded
	}
	if v, ok := s.cache.Get(ctx, catalogCacheKey); ok {
		catalog, _ := v.(Catalog)
		return catalog, nil
	}
	return s.Load(ctx)
}

type yearData struct {
	year    int
	matches []worldcup.Match
	teams   []team.Team
}

func (s *CatalogService) build(ctx context.Context) (Catalog, error) {
	years := slices.Clone(s.cfg.Years)
	if len(years) == 0 {
		listed, err := s.repo.Years(ctx)
		if err != nil {
			return Catalog{}, fmt.Errorf("%w: list dataset years: %v", ErrDependencyUnavailable, err)
		}
		years = listed
	}
	slices.Sort(years)

	loaded, err := iter.MapErr(years, func(year *int) (yearData, error) {
		return s.loadYear(ctx, *year)
	})
	if err != nil {
		return Catalog{}, fmt.Errorf("%w: load datasets: %v", ErrDependencyUnavailable, err)
	}

	out := Catalog{Years: years, LoadedAt: time.Now().UTC()}
	byCode := make(map[string]team.Team)
	for _, item := range loaded {
		out.Matches = append(out.Matches, item.matches...)
		for _, t := range item.teams {
			byCode[t.Code] = t
		}
	}
	for _, m := range out.Matches {
		for _, t := range []team.Team{m.TeamA, m.TeamB} {
			if _, ok := byCode[t.Code]; !ok && t.Known() {
				byCode[t.Code] = t.Ref()
			}
		}
	}

	out.Teams = make([]team.Team, 0, len(byCode))
	for _, t := range byCode {
		out.Teams = append(out.Teams, t)
	}
	slices.SortFunc(out.Teams, func(a, b team.Team) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.Code, b.Code)
	})
	if out.Matches == nil {
		out.Matches = []worldcup.Match{}
	}
	return out, nil
}

func (s *CatalogService) loadYear(ctx context.Context, year int) (yearData, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.loadYear", attribute.Int("year", year))
	defer span.End()

	doc, err := s.repo.ReadDocument(ctx, year)
	if err != nil {
		recordSpanError(span, err)
		return yearData{}, fmt.Errorf("read %d document: %w", year, err)
	}
	out := yearData{year: year, matches: doc.Flatten(s.cfg.Competition, strconv.Itoa(year))}

	groups, err := s.repo.ReadGroups(ctx, year)
	switch {
	case crerr.Is(err, worldcup.ErrFileNotFound):
		s.logger.WarnContext(ctx, "groups file missing, teams taken from matches", "year", year)
	case err != nil:
		recordSpanError(span, err)
		return yearData{}, fmt.Errorf("read %d groups: %w", year, err)
	default:
		for _, g := range groups.Groups {
			for _, t := range g.Teams {
				if t.Known() {
					out.teams = append(out.teams, t.Ref())
				}
			}
		}
	}
	return out, nil
}

// ListTeams returns every team in the catalog sorted by name.
func (s *CatalogService) ListTeams(ctx context.Context) ([]team.Team, error) {
	catalog, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return slices.Clone(catalog.Teams), nil
}

// GetTeam describes one team. Codes known only to the identity database are
// still reported, with zero matches.
func (s *CatalogService) GetTeam(ctx context.Context, code string) (TeamDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CatalogService.GetTeam")
	defer span.End()

	code, err := normalizeCode(code)
	if err != nil {
		return TeamDetails{}, err
	}
	catalog, err := s.Snapshot(ctx)
	if err != nil {
		return TeamDetails{}, err
	}

	idx := slices.IndexFunc(catalog.Teams, func(t team.Team) bool { return t.Code == code })
	var found team.Team
	switch {
	case idx >= 0:
		found = catalog.Teams[idx]
	case s.directory != nil:
		t, ok := s.directory.ByCode(code)
		if !ok {
			return TeamDetails{}, fmt.Errorf("%w: team %s", ErrNotFound, code)
		}
		found = t
	default:
		return TeamDetails{}, fmt.Errorf("%w: team %s", ErrNotFound, code)
	}

	out := TeamDetails{Team: found, Aliases: []string{}, Lineage: []team.Lineage{}, Editions: []string{}}
	if s.directory != nil {
		out.Aliases = append(out.Aliases, s.directory.Aliases(code)...)
		out.Lineage = append(out.Lineage, s.directory.Historical(code)...)
	}
	for _, m := range catalog.Matches {
		if !m.Involves(code) {
			continue
		}
		out.MatchesPlayed++
		if !slices.Contains(out.Editions, m.Key()) {
			out.Editions = append(out.Editions, m.Key())
		}
	}
	return out, nil
}

// ListMatches returns every match, or only the team's when code is set.
func (s *CatalogService) ListMatches(ctx context.Context, code string) ([]worldcup.Match, error) {
	catalog, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return slices.Clone(catalog.Matches), nil
	}

	out := make([]worldcup.Match, 0)
	for _, m := range catalog.Matches {
		if m.Involves(code) {
			out = append(out, m)
		}
	}
	return out, nil
}

func normalizeCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", fmt.Errorf("%w: team code is required", ErrInvalidInput)
	}
	return code, nil
}
