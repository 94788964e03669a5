package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/worldcup-insights/internal/domain/validation"
	"github.com/riskibarqy/worldcup-insights/internal/domain/worldcup"
)

const cup1994 = `
= World Cup 1994    # in United States

Group A  |  United States   Switzerland   Colombia   Romania

Group A
(1) Sat Jun/18 11:30   United States   1-1 (1-1)   Switzerland   @ Pontiac Silverdome, Detroit
  [Wynalda 44'; Bregy 39']
(2) Sat Jun/18 19:30   Colombia   1-3 (1-2)   Romania   @ Rose Bowl, Pasadena
  [Valencia 43'; Raducioiu 16' 89'  Hagi 34']
(3) Wed Jun/22 16:30   United States   2-1 (1-0)   Colombia   @ Rose Bowl, Pasadena
  [Stewart 52'; Escobar 35' (o.g.), Valencia 90']
`

func newDatasets(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, "1994")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, worldcup.FileCup), []byte(cup1994), 0o644))
	return root
}

func runCLI(t *testing.T, args ...string) (int, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String()
}

func TestConvertThenValidateAndStats(t *testing.T) {
	root := newDatasets(t)

	code, out := runCLI(t, "--datasets-dir", root, "convert", "--year", "1994")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Converting World Cup 1994")
	assert.Contains(t, out, "Saved worldcup.json and worldcup.groups.json")
	assert.Contains(t, out, "1994: Valid")
	assert.Contains(t, out, "Summary: 1 succeeded, 0 failed")
	assert.FileExists(t, filepath.Join(root, "1994", worldcup.FileDocument))
	assert.FileExists(t, filepath.Join(root, "1994", worldcup.FileGroups))

	code, out = runCLI(t, "-d", root, "validate", "--all")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Validating 1 World Cup(s): [1994]")

	code, out = runCLI(t, "-d", root, "stats", "-y", "1994")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "World Cup 1994 Statistics")
	assert.Contains(t, out, "Total: 3 matches")
	assert.Contains(t, out, "Group stage: 3 matches")
	assert.Contains(t, out, "Knockout stage: 0 matches")
}

func TestConvertAllDryRunWritesNothing(t *testing.T) {
	root := newDatasets(t)

	code, out := runCLI(t, "--datasets-dir", root, "convert", "--all", "--dry-run")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Converting 1 World Cup(s): [1994]")
	assert.Contains(t, out, "Dry run for 1994:")
	assert.Contains(t, out, "Matches: 3")
	assert.Contains(t, out, "Groups: 1")
	assert.NoFileExists(t, filepath.Join(root, "1994", worldcup.FileDocument))
}

func TestConvertAllSkipsPreconvertedYears(t *testing.T) {
	root := newDatasets(t)
	t.Setenv("PRECONVERTED_YEARS", "1994")

	code, out := runCLI(t, "--datasets-dir", root, "convert", "--all", "--dry-run")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Converting 0 World Cup(s): []")

	code, out = runCLI(t, "--datasets-dir", root, "convert", "--all", "--dry-run", "--force")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Converting 1 World Cup(s): [1994]")
}

func TestMissingYearFails(t *testing.T) {
	root := newDatasets(t)

	code, out := runCLI(t, "--datasets-dir", root, "convert", "--year", "2002")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "2002: Invalid")
	assert.Contains(t, out, "Summary: 0 succeeded, 1 failed")

	code, out = runCLI(t, "--datasets-dir", root, "validate", "--year", "1994")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "worldcup.json not found")

	code, out = runCLI(t, "--datasets-dir", root, "stats", "--year", "1994")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Error: No worldcup.json found for 1994")
}

func TestValidateAllReportsEveryYear(t *testing.T) {
	root := newDatasets(t)

	code, out := runCLI(t, "--datasets-dir", root, "convert", "--year", "1994")
	require.Equal(t, 0, code, out)

	dir := filepath.Join(root, "1998")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, worldcup.FileGroups), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, worldcup.FileDocument), []byte(`{"name": "World Cup 1998", "rounds": []}`), 0o644))

	code, out = runCLI(t, "--datasets-dir", root, "validate", "--all")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Validating 2 World Cup(s): [1994 1998]")
	assert.Contains(t, out, "1994: Valid")
	assert.Contains(t, out, "1998: Invalid")
	assert.Contains(t, out, "Validation failed:")
	assert.NotContains(t, out, "\nError:")
}

func TestList(t *testing.T) {
	root := newDatasets(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "notes"), 0o755))

	code, out := runCLI(t, "--datasets-dir", root, "list")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Available World Cup years:")
	assert.Regexp(t, `1994\s+yes\s+no\s+no`, out)
	assert.NotContains(t, out, "notes")
}

func TestUsageErrors(t *testing.T) {
	root := newDatasets(t)

	tests := []struct {
		name string
		args []string
		code int
		out  string
	}{
		{name: "no command", args: []string{"--datasets-dir", root}, code: 1},
		{name: "unknown command", args: []string{"--datasets-dir", root, "export"}, code: 1},
		{name: "convert without target", args: []string{"--datasets-dir", root, "convert"}, code: 1, out: "Error: Specify --year YEAR or --all"},
		{name: "stats without year", args: []string{"--datasets-dir", root, "stats"}, code: 1, out: "Error: Specify --year YEAR"},
		{name: "missing datasets dir", args: []string{"--datasets-dir", filepath.Join(root, "missing"), "list"}, code: 1, out: "Error: Datasets directory not found"},
		{name: "bad flag", args: []string{"--datasets-dir", root, "convert", "--year", "abc"}, code: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out := runCLI(t, tt.args...)
			assert.Equal(t, tt.code, code)
			if tt.out != "" {
				assert.Contains(t, out, tt.out)
			}
		})
	}
}

func TestPrintReportTruncates(t *testing.T) {
	t.Parallel()

	result := validation.NewResult()
	for i := range 12 {
		result.AddError("error %d", i)
	}
	for i := range 7 {
		result.AddWarning("warning %d", i)
	}

	var buf bytes.Buffer
	printReport(&buf, 1930, result)
	out := buf.String()

	assert.Contains(t, out, "1930: Invalid")
	assert.Contains(t, out, "Errors (12):")
	assert.Contains(t, out, "- error 9\n")
	assert.NotContains(t, out, "- error 10\n")
	assert.Contains(t, out, "... and 2 more errors")
	assert.Contains(t, out, "Warnings (7):")
	assert.Contains(t, out, fmt.Sprintf("- warning %d\n", 4))
	assert.NotContains(t, out, "- warning 5\n")
	assert.Contains(t, out, "... and 2 more warnings")
}
