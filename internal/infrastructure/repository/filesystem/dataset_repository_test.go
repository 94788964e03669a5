package filesystem

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	crerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/worldcup-insights/internal/domain/team"
	"github.com/riskibarqy/worldcup-insights/internal/domain/worldcup"
)

func writeFile(t *testing.T, root string, year, file, content string) {
	t.Helper()
	dir := filepath.Join(root, year)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644))
}

func TestDatasetRepositoryListing(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "2022", worldcup.FileCup, "= World Cup 2022\n")
	writeFile(t, root, "1930", worldcup.FileCup, "= World Cup 1930\n")
	writeFile(t, root, "1930", worldcup.FileDocument, `{"name":"World Cup 1930","rounds":[]}`)
	writeFile(t, root, "2022", worldcup.FileCupFinals, "")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "notes"), 0o755))

	repo := NewDatasetRepository(root)
	ctx := context.Background()

	years, err := repo.SourceYears(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1930, 2022}, years)

	years, err = repo.Years(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{1930}, years)

	inventory, err := repo.Inventory(ctx)
	require.NoError(t, err)
	assert.Equal(t, []worldcup.YearInventory{
		{Year: 1930, HasCup: true, HasDocument: true},
		{Year: 2022, HasCup: true, HasFinals: true},
	}, inventory)
}

func TestDatasetRepositoryMissingRoot(t *testing.T) {
	t.Parallel()

	repo := NewDatasetRepository(filepath.Join(t.TempDir(), "absent"))
	_, err := repo.Years(context.Background())
	require.Error(t, err)
	assert.True(t, crerr.Is(err, ErrFileNotFound))
}

func TestDatasetRepositoryReadErrors(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "1934", worldcup.FileDocument, `{"name": "World Cup 1934", "rounds": "nope"}`)
	writeFile(t, root, "1938", worldcup.FileDocument, `{"name": "World Cup 1938"}`)
	repo := NewDatasetRepository(root)
	ctx := context.Background()

	_, err := repo.OpenSource(ctx, 1934, worldcup.FileCup)
	assert.True(t, crerr.Is(err, ErrFileNotFound))

	_, err = repo.ReadDocument(ctx, 1934)
	assert.True(t, crerr.Is(err, ErrInvalidSchema))

	_, err = repo.ReadDocument(ctx, 1938)
	assert.True(t, crerr.Is(err, ErrInvalidSchema))

	_, err = repo.ReadGroups(ctx, 1938)
	assert.True(t, crerr.Is(err, ErrFileNotFound))
}

func TestDatasetRepositoryWriteAndRead(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	repo := NewDatasetRepository(root)
	ctx := context.Background()

	one := 1
	doc := worldcup.Document{
		Name: "World Cup 1930",
		Rounds: []worldcup.Round{{
			Name: "Final",
			Matches: []worldcup.Match{{
				Num:         18,
				Date:        "1930-07-30",
				TeamA:       team.Team{Name: "Uruguay", Code: "URU"},
				TeamB:       team.Team{Name: "Argentina", Code: "ARG"},
				ScoreA:      4,
				ScoreB:      2,
				HalftimeA:   &one,
				HalftimeB:   &one,
				GoalsA:      []worldcup.Goal{},
				GoalsB:      []worldcup.Goal{},
				Knockout:    true,
				ExtraScores: &worldcup.ExtraScores{},
			}},
		}},
	}
	require.NoError(t, repo.WriteDocument(ctx, 1930, doc))
	require.NoError(t, repo.WriteGroups(ctx, 1930, worldcup.GroupsDocument{Name: "World Cup 1930", Groups: []worldcup.Group{}}))

	raw, err := repo.ReadRaw(ctx, 1930, worldcup.FileDocument)
	require.NoError(t, err)
	text := string(raw)
	assert.True(t, strings.HasSuffix(text, "}\n"))
	assert.False(t, strings.HasSuffix(text, "\n\n"))
	assert.Contains(t, text, "\n  \"rounds\": [")
	assert.Contains(t, text, `"score1et": null`)

	got, err := repo.ReadDocument(ctx, 1930)
	require.NoError(t, err)
	require.Len(t, got.Rounds, 1)
	assert.Equal(t, "URU", got.Rounds[0].Matches[0].TeamA.Code)
	assert.True(t, got.Rounds[0].Matches[0].Knockout)

	groups, err := repo.ReadGroups(ctx, 1930)
	require.NoError(t, err)
	assert.Empty(t, groups.Groups)

	rc, err := repo.OpenSource(ctx, 1930, worldcup.FileGroups)
	require.NoError(t, err)
	defer rc.Close()
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Contains(t, string(body), "World Cup 1930")

	entries, err := os.ReadDir(filepath.Join(root, "1930"))
	require.NoError(t, err)
	assert.Len(t, entries, 2, "temp files must not be left behind")
}
