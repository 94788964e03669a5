package pipeline

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"slices"
	"sort"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"

	"github.com/riskibarqy/worldcup-insights/internal/domain/validation"
	"github.com/riskibarqy/worldcup-insights/internal/domain/worldcup"
	"github.com/riskibarqy/worldcup-insights/internal/ingestion/textparser"
	"github.com/riskibarqy/worldcup-insights/internal/platform/logging"
)

// Years whose source files are known to need manual fixes. Batch conversion
// skips them unless forced.
var DefaultExcludedYears = []int{2014, 2018}

// Observer receives one callback per converted year.
type Observer interface {
	ConversionFinished(valid bool, errors, warnings int, took time.Duration)
}

type nopObserver struct{}

func (nopObserver) ConversionFinished(bool, int, int, time.Duration) {}

// Options controls a batch conversion.
type Options struct {
	Workers int
	DryRun  bool
}

// Service runs the per-year conversion pipeline against a dataset store.
type Service struct {
	store     worldcup.Repository
	converter *Converter
	logger    *logging.Logger
	observer  Observer
}

func NewService(store worldcup.Repository, converter *Converter, logger *logging.Logger, observer Observer) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	if observer == nil {
		observer = nopObserver{}
	}
	return &Service{
		store:     store,
		converter: converter,
		logger:    logger,
		observer:  observer,
	}
}

// SelectYears drops the excluded years unless force is set. A nil excluded
// list means DefaultExcludedYears.
func SelectYears(years, excluded []int, force bool) []int {
	if excluded == nil {
		excluded = DefaultExcludedYears
	}
	if force {
		return slices.Clone(years)
	}
	out := make([]int, 0, len(years))
	for _, year := range years {
		if slices.Contains(excluded, year) {
			continue
		}
		out = append(out, year)
	}
	return out
}

// ParseYear reads cup.txt and, when present, cup_finals.txt for one year.
func (s *Service) ParseYear(ctx context.Context, year int) (textparser.Tournament, error) {
	ctx, span := startPipelineSpan(ctx, "pipeline.Service.ParseYear")
	defer span.End()

	group, err := s.parseFile(ctx, year, worldcup.FileCup, textparser.StageGroup)
	if err != nil {
		return textparser.Tournament{}, err
	}

	knockout, err := s.parseFile(ctx, year, worldcup.FileCupFinals, textparser.StageKnockout)
	switch {
	case crerr.Is(err, worldcup.ErrFileNotFound):
		s.logger.DebugContext(ctx, "no knockout source for year", "year", year)
		knockout = textparser.Tournament{}
	case err != nil:
		return textparser.Tournament{}, err
	}

	merged := textparser.Merge(group, knockout)
	if merged.Year == 0 {
		merged.Year = year
	}
	return merged, nil
}

func (s *Service) parseFile(ctx context.Context, year int, file string, stage textparser.Stage) (textparser.Tournament, error) {
	rc, err := s.store.OpenSource(ctx, year, file)
	if err != nil {
		return textparser.Tournament{}, err
	}
	defer func(c io.Closer) { _ = c.Close() }(rc)

	t, err := textparser.ReadYear(rc, stage, year)
	if err != nil {
		return textparser.Tournament{}, crerr.Wrapf(err, "parse %d/%s", year, file)
	}
	return t, nil
}

// ConvertYear parses and converts one year without writing anything.
func (s *Service) ConvertYear(ctx context.Context, year int) (Result, error) {
	ctx, span := startPipelineSpan(ctx, "pipeline.Service.ConvertYear")
	defer span.End()

	start := time.Now()
	parsed, err := s.ParseYear(ctx, year)
	if err != nil {
		return Result{}, err
	}

	out := s.converter.Convert(parsed)
	out.Year = year
	s.observer.ConversionFinished(out.Validation.Valid, len(out.Validation.Errors), len(out.Validation.Warnings), time.Since(start))
	return out, nil
}

// SaveYear writes both JSON documents of a converted year. Documents are saved
// regardless of their validation outcome.
func (s *Service) SaveYear(ctx context.Context, result Result) error {
	ctx, span := startPipelineSpan(ctx, "pipeline.Service.SaveYear")
	defer span.End()

	if err := s.store.WriteDocument(ctx, result.Year, result.Document); err != nil {
		return err
	}
	if err := s.store.WriteGroups(ctx, result.Year, result.Groups); err != nil {
		return err
	}
	return nil
}

// ConvertAndSaveYear converts one year and persists the output.
func (s *Service) ConvertAndSaveYear(ctx context.Context, year int) (Result, error) {
	result, err := s.ConvertYear(ctx, year)
	if err != nil {
		return Result{}, err
	}
	if err := s.SaveYear(ctx, result); err != nil {
		return result, err
	}
	return result, nil
}

// ValidateYear checks the JSON files already on disk for one year. A missing
// worldcup.json is an error, a missing groups file only a warning.
func (s *Service) ValidateYear(ctx context.Context, year int) (validation.Result, error) {
	ctx, span := startPipelineSpan(ctx, "pipeline.Service.ValidateYear")
	defer span.End()

	v := s.converter.validator
	if v == nil {
		v = validation.New(nil)
	}
	out := validation.NewResult()

	data, err := s.store.ReadRaw(ctx, year, worldcup.FileDocument)
	switch {
	case crerr.Is(err, worldcup.ErrFileNotFound):
		out.AddError("%s not found", worldcup.FileDocument)
	case err != nil:
		return validation.Result{}, err
	default:
		out = out.Merge(v.Raw(data, validation.KindTournament))
	}

	data, err = s.store.ReadRaw(ctx, year, worldcup.FileGroups)
	switch {
	case crerr.Is(err, worldcup.ErrFileNotFound):
		out.AddWarning("%s not found", worldcup.FileGroups)
	case err != nil:
		return validation.Result{}, err
	default:
		out = out.Merge(v.Raw(data, validation.KindGroups))
	}

	return out, nil
}

// YearOutcome is one row of a batch conversion.
type YearOutcome struct {
	Result
	Saved    bool  `json:"saved"`
	Duration int64 `json:"duration_ms"`
}

// BatchResult summarizes a batch conversion. A year counts as succeeded only
// when it converted, saved (unless dry run) and validated without errors.
type BatchResult struct {
	Years     []YearOutcome `json:"years"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
}

// ConvertYears converts years concurrently. Failures are reported per year and
// never abort the batch. Results are sorted by year.
func (s *Service) ConvertYears(ctx context.Context, years []int, opts Options) (BatchResult, error) {
	ctx, span := startPipelineSpan(ctx, "pipeline.Service.ConvertYears")
	defer span.End()

	if len(years) == 0 {
		return BatchResult{Years: []YearOutcome{}}, nil
	}

	workerCount := opts.Workers
	if workerCount <= 0 {
		workerCount = runtime.GOMAXPROCS(0)
	}
	if workerCount > len(years) {
		workerCount = len(years)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return BatchResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan YearOutcome, len(years))

	var workers sync.WaitGroup
	for _, year := range years {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			results <- s.convertOne(ctx, year, opts.DryRun)
		}); err != nil {
			workers.Done()
			return BatchResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	out := BatchResult{Years: make([]YearOutcome, 0, len(years))}
	for row := range results {
		if row.Validation.Valid {
			out.Succeeded++
		} else {
			out.Failed++
		}
		out.Years = append(out.Years, row)
	}

	sort.SliceStable(out.Years, func(i, j int) bool {
		return out.Years[i].Year < out.Years[j].Year
	})

	s.logger.InfoContext(ctx, "batch conversion finished",
		"years", len(years),
		"succeeded", out.Succeeded,
		"failed", out.Failed,
		"dry_run", opts.DryRun,
	)
	return out, nil
}

func (s *Service) convertOne(ctx context.Context, year int, dryRun bool) YearOutcome {
	start := time.Now()
	row := YearOutcome{}

	result, err := s.ConvertYear(ctx, year)
	if err != nil {
		s.logger.WarnContext(ctx, "year conversion failed", "year", year, "error", err)
		row.Result = failedResult(year, "Conversion failed: %v", err)
		row.Duration = time.Since(start).Milliseconds()
		return row
	}
	row.Result = result

	if !dryRun {
		if err := s.SaveYear(ctx, result); err != nil {
			s.logger.WarnContext(ctx, "year save failed", "year", year, "error", err)
			row.Validation.AddError("Save failed: %v", err)
		} else {
			row.Saved = true
		}
	}

	row.Duration = time.Since(start).Milliseconds()
	return row
}

func failedResult(year int, format string, args ...any) Result {
	v := validation.NewResult()
	v.AddError(format, args...)
	return Result{
		Year:       year,
		Document:   worldcup.Document{Rounds: []worldcup.Round{}},
		Groups:     worldcup.GroupsDocument{Groups: []worldcup.Group{}},
		Validation: v,
	}
}

// RoundStats summarizes one round of a converted document.
type RoundStats struct {
	Name    string `json:"name"`
	Matches int    `json:"matches"`
	Goals   int    `json:"goals"`
}

// YearStats summarizes a converted worldcup.json. Goals are counted from the
// goal lists, not the scores.
type YearStats struct {
	Year            int          `json:"year"`
	Rounds          []RoundStats `json:"rounds"`
	TotalMatches    int          `json:"total_matches"`
	TotalGoals      int          `json:"total_goals"`
	GroupMatches    int          `json:"group_matches"`
	KnockoutMatches int          `json:"knockout_matches"`
	AverageGoals    float64      `json:"average_goals"`
}

// Stats reads the converted document for a year and summarizes it.
func (s *Service) Stats(ctx context.Context, year int) (YearStats, error) {
	ctx, span := startPipelineSpan(ctx, "pipeline.Service.Stats")
	defer span.End()

	doc, err := s.store.ReadDocument(ctx, year)
	if err != nil {
		return YearStats{}, err
	}
	return Summarize(year, doc), nil
}

// Summarize computes per-round and total counts for a document.
func Summarize(year int, doc worldcup.Document) YearStats {
	out := YearStats{Year: year, Rounds: make([]RoundStats, 0, len(doc.Rounds))}
	for _, round := range doc.Rounds {
		name := round.Name
		if name == "" {
			name = "Unknown"
		}
		row := RoundStats{Name: name, Matches: len(round.Matches)}
		for _, m := range round.Matches {
			if m.Knockout {
				out.KnockoutMatches++
			}
			row.Goals += len(m.GoalsA) + len(m.GoalsB)
		}
		out.TotalMatches += row.Matches
		out.TotalGoals += row.Goals
		out.Rounds = append(out.Rounds, row)
	}
	out.GroupMatches = out.TotalMatches - out.KnockoutMatches
	if out.TotalMatches > 0 {
		out.AverageGoals = float64(out.TotalGoals) / float64(out.TotalMatches)
	}
	return out
}
