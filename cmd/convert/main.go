package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	crerr "github.com/cockroachdb/errors"
	"github.com/sourcegraph/conc/iter"

	"github.com/riskibarqy/worldcup-insights/internal/app"
	"github.com/riskibarqy/worldcup-insights/internal/config"
	"github.com/riskibarqy/worldcup-insights/internal/domain/validation"
	"github.com/riskibarqy/worldcup-insights/internal/domain/worldcup"
	"github.com/riskibarqy/worldcup-insights/internal/infrastructure/repository/filesystem"
	"github.com/riskibarqy/worldcup-insights/internal/pipeline"
	"github.com/riskibarqy/worldcup-insights/internal/platform/logging"
)

const (
	maxReportedErrors   = 10
	maxReportedWarnings = 5
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type command struct {
	cfg     config.Config
	repo    worldcup.Repository
	svc     *pipeline.Service
	stdout  io.Writer
	stderr  io.Writer
	verbose bool
}

// run executes one CLI invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	global := flag.NewFlagSet("convert", flag.ContinueOnError)
	global.SetOutput(stderr)
	datasetsDir := global.String("datasets-dir", cfg.DatasetsDir, "path to the datasets directory")
	global.StringVar(datasetsDir, "d", cfg.DatasetsDir, "shorthand for --datasets-dir")
	verbose := global.Bool("verbose", false, "verbose output")
	global.BoolVar(verbose, "v", false, "shorthand for --verbose")
	global.Usage = func() { printUsage(stderr) }

	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	rest := global.Args()
	if len(rest) == 0 {
		printUsage(stderr)
		return 1
	}

	cfg.DatasetsDir = *datasetsDir
	if info, err := os.Stat(cfg.DatasetsDir); err != nil || !info.IsDir() {
		fmt.Fprintf(stdout, "Error: Datasets directory not found: %s\n", cfg.DatasetsDir)
		return 1
	}

	level := logging.LevelWarn
	if *verbose {
		level = logging.LevelDebug
	}
	logger := logging.New(logging.Options{Level: level, Format: logging.FormatConsole, Output: stderr})
	defer func() { _ = logger.Sync() }()

	cmd := &command{
		cfg:     cfg,
		repo:    filesystem.NewDatasetRepository(cfg.DatasetsDir),
		svc:     app.NewPipeline(cfg, logger, nil),
		stdout:  stdout,
		stderr:  stderr,
		verbose: *verbose,
	}

	name, sub := strings.ToLower(strings.TrimSpace(rest[0])), rest[1:]
	switch name {
	case "convert":
		return cmd.convert(ctx, sub)
	case "validate":
		return cmd.validate(ctx, sub)
	case "list":
		return cmd.list(ctx)
	case "stats":
		return cmd.stats(ctx, sub)
	default:
		printUsage(stderr)
		return 1
	}
}

func (c *command) convert(ctx context.Context, args []string) int {
	fs := c.flagSet("convert")
	year := fs.Int("year", 0, "year to convert")
	fs.IntVar(year, "y", 0, "shorthand for --year")
	all := fs.Bool("all", false, "convert every year with a cup.txt")
	fs.BoolVar(all, "a", false, "shorthand for --all")
	dryRun := fs.Bool("dry-run", false, "convert and validate without writing")
	force := fs.Bool("force", false, "include the preconverted years")
	fs.BoolVar(force, "f", false, "shorthand for --force")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var years []int
	switch {
	case *all:
		sources, err := c.repo.SourceYears(ctx)
		if err != nil {
			return c.fail(err)
		}
		years = pipeline.SelectYears(sources, c.cfg.PreconvertedYears, *force)
		fmt.Fprintf(c.stdout, "Converting %d World Cup(s): %v\n", len(years), years)
	case *year > 0:
		years = []int{*year}
		fmt.Fprintf(c.stdout, "Converting World Cup %d\n", *year)
	default:
		fmt.Fprintln(c.stdout, "Error: Specify --year YEAR or --all")
		return 1
	}

	batch, err := c.svc.ConvertYears(ctx, years, pipeline.Options{Workers: c.cfg.ConvertWorkers, DryRun: *dryRun})
	if err != nil {
		return c.fail(err)
	}

	for _, row := range batch.Years {
		if *dryRun {
			fmt.Fprintf(c.stdout, "\nDry run for %d:\n", row.Year)
			fmt.Fprintf(c.stdout, "   Matches: %d\n", row.MatchCount())
			fmt.Fprintf(c.stdout, "   Groups: %d\n", len(row.Groups.Groups))
		} else {
			fmt.Fprintf(c.stdout, "\nConverting %d...\n", row.Year)
			if row.Saved {
				fmt.Fprintf(c.stdout, "   Saved %s and %s\n", worldcup.FileDocument, worldcup.FileGroups)
			}
		}
		printReport(c.stdout, row.Year, row.Validation)
	}

	fmt.Fprintf(c.stdout, "\n%s\n", strings.Repeat("=", 50))
	fmt.Fprintf(c.stdout, "Summary: %d succeeded, %d failed\n", batch.Succeeded, batch.Failed)
	if batch.Failed > 0 {
		return 1
	}
	return 0
}

func (c *command) validate(ctx context.Context, args []string) int {
	fs := c.flagSet("validate")
	year := fs.Int("year", 0, "year to validate")
	fs.IntVar(year, "y", 0, "shorthand for --year")
	all := fs.Bool("all", false, "validate every year with a worldcup.json")
	fs.BoolVar(all, "a", false, "shorthand for --all")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var years []int
	switch {
	case *all:
		converted, err := c.repo.Years(ctx)
		if err != nil {
			return c.fail(err)
		}
		years = converted
		fmt.Fprintf(c.stdout, "Validating %d World Cup(s): %v\n", len(years), years)
	case *year > 0:
		years = []int{*year}
	default:
		fmt.Fprintln(c.stdout, "Error: Specify --year YEAR or --all")
		return 1
	}

	results := iter.Map(years, func(year *int) validation.Result {
		result, err := c.svc.ValidateYear(ctx, *year)
		if err != nil {
			failed := validation.NewResult()
			failed.AddError("Validation failed: %v", err)
			return failed
		}
		return result
	})

	code := 0
	for i, result := range results {
		printReport(c.stdout, years[i], result)
		if !result.Valid {
			code = 1
		}
	}
	return code
}

func (c *command) list(ctx context.Context) int {
	inventory, err := c.repo.Inventory(ctx)
	if err != nil {
		return c.fail(err)
	}

	fmt.Fprint(c.stdout, "Available World Cup years:\n\n")
	w := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Year\tcup.txt\tfinals.txt\tJSON")
	fmt.Fprintln(w, "----\t-------\t----------\t----")
	for _, row := range inventory {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", row.Year, mark(row.HasCup), mark(row.HasFinals), mark(row.HasDocument))
	}
	if err := w.Flush(); err != nil {
		return c.fail(err)
	}
	return 0
}

func (c *command) stats(ctx context.Context, args []string) int {
	fs := c.flagSet("stats")
	year := fs.Int("year", 0, "year to summarize")
	fs.IntVar(year, "y", 0, "shorthand for --year")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *year <= 0 {
		fmt.Fprintln(c.stdout, "Error: Specify --year YEAR")
		return 1
	}

	stats, err := c.svc.Stats(ctx, *year)
	if crerr.Is(err, worldcup.ErrFileNotFound) {
		fmt.Fprintf(c.stdout, "Error: No %s found for %d\n", worldcup.FileDocument, *year)
		return 1
	}
	if err != nil {
		return c.fail(err)
	}

	fmt.Fprintf(c.stdout, "\nWorld Cup %d Statistics\n", stats.Year)
	fmt.Fprintln(c.stdout, strings.Repeat("=", 40))
	for _, round := range stats.Rounds {
		fmt.Fprintf(c.stdout, "%s: %d matches, %d goals\n", round.Name, round.Matches, round.Goals)
	}
	fmt.Fprintln(c.stdout, strings.Repeat("-", 40))
	fmt.Fprintf(c.stdout, "Total: %d matches, %d goals recorded\n", stats.TotalMatches, stats.TotalGoals)
	fmt.Fprintf(c.stdout, "Group stage: %d matches\n", stats.GroupMatches)
	fmt.Fprintf(c.stdout, "Knockout stage: %d matches\n", stats.KnockoutMatches)
	if stats.TotalMatches > 0 {
		fmt.Fprintf(c.stdout, "Average goals per match: %.2f\n", stats.AverageGoals)
	}
	return 0
}

func (c *command) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(c.stderr)
	return fs
}

func (c *command) fail(err error) int {
	fmt.Fprintf(c.stdout, "Error: %v\n", err)
	if c.verbose {
		fmt.Fprintf(c.stderr, "%+v\n", err)
	}
	return 1
}

// printReport prints one year's findings, capped at 10 errors and 5 warnings.
func printReport(w io.Writer, year int, result validation.Result) {
	if result.Valid {
		fmt.Fprintf(w, "%d: Valid\n", year)
	} else {
		fmt.Fprintf(w, "%d: Invalid\n", year)
	}
	printFindings(w, "Errors", "errors", result.Errors, maxReportedErrors)
	printFindings(w, "Warnings", "warnings", result.Warnings, maxReportedWarnings)
}

func printFindings(w io.Writer, title, noun string, findings []string, limit int) {
	if len(findings) == 0 {
		return
	}
	fmt.Fprintf(w, "   %s (%d):\n", title, len(findings))
	for i, finding := range findings {
		if i == limit {
			fmt.Fprintf(w, "     ... and %d more %s\n", len(findings)-limit, noun)
			break
		}
		fmt.Fprintf(w, "     - %s\n", finding)
	}
}

func mark(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `World Cup data conversion tool

Usage:
  convert [--datasets-dir DIR] [--verbose] <command> [flags]

Commands:
  convert   --year Y | --all [--dry-run] [--force]   convert cup.txt sources to JSON
  validate  --year Y | --all                         validate converted JSON files
  list                                               list dataset years and their files
  stats     --year Y                                 summarize a converted year

Years listed in PRECONVERTED_YEARS are skipped by "convert --all" unless --force is set.
`)
}
