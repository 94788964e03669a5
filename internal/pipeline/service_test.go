package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/worldcup-insights/internal/domain/worldcup"
	"github.com/riskibarqy/worldcup-insights/internal/platform/logging"
)

type memoryStore struct {
	mu       sync.Mutex
	files    map[int]map[string][]byte
	failSave bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{files: make(map[int]map[string][]byte)}
}

func (s *memoryStore) put(year int, file, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.files[year] == nil {
		s.files[year] = make(map[string][]byte)
	}
	s.files[year][file] = []byte(content)
}

func (s *memoryStore) get(year int, file string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[year][file]
	if !ok {
		return nil, crerr.Wrapf(worldcup.ErrFileNotFound, "%d/%s", year, file)
	}
	return data, nil
}

func (s *memoryStore) Years(context.Context) ([]int, error)       { return nil, nil }
func (s *memoryStore) SourceYears(context.Context) ([]int, error) { return nil, nil }
func (s *memoryStore) Inventory(context.Context) ([]worldcup.YearInventory, error) {
	return nil, nil
}

func (s *memoryStore) OpenSource(_ context.Context, year int, file string) (io.ReadCloser, error) {
	data, err := s.get(year, file)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (s *memoryStore) ReadRaw(_ context.Context, year int, file string) ([]byte, error) {
	return s.get(year, file)
}

func (s *memoryStore) ReadDocument(_ context.Context, year int) (worldcup.Document, error) {
	data, err := s.get(year, worldcup.FileDocument)
	if err != nil {
		return worldcup.Document{}, err
	}
	var doc worldcup.Document
	err = sonic.Unmarshal(data, &doc)
	return doc, err
}

func (s *memoryStore) ReadGroups(_ context.Context, year int) (worldcup.GroupsDocument, error) {
	data, err := s.get(year, worldcup.FileGroups)
	if err != nil {
		return worldcup.GroupsDocument{}, err
	}
	var doc worldcup.GroupsDocument
	err = sonic.Unmarshal(data, &doc)
	return doc, err
}

func (s *memoryStore) WriteDocument(_ context.Context, year int, doc worldcup.Document) error {
	if s.failSave {
		return errors.New("read-only filesystem")
	}
	data, err := sonic.Marshal(doc)
	if err != nil {
		return err
	}
	s.put(year, worldcup.FileDocument, string(data))
	return nil
}

func (s *memoryStore) WriteGroups(_ context.Context, year int, doc worldcup.GroupsDocument) error {
	data, err := sonic.Marshal(doc)
	if err != nil {
		return err
	}
	s.put(year, worldcup.FileGroups, string(data))
	return nil
}

type countingObserver struct {
	mu    sync.Mutex
	calls int
}

func (o *countingObserver) ConversionFinished(bool, int, int, time.Duration) {
	o.mu.Lock()
	o.calls++
	o.mu.Unlock()
}

func newTestService(store *memoryStore, observer Observer) *Service {
	return NewService(store, newTestConverter(), logging.NewNop(), observer)
}

func TestParseYearFinalsAreOptional(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	store.put(1994, worldcup.FileCup, cup1994)
	svc := newTestService(store, nil)

	got, err := svc.ParseYear(context.Background(), 1994)
	require.NoError(t, err)
	assert.Len(t, got.Matches, 3)

	store.put(1994, worldcup.FileCupFinals, cupFinals1994)
	got, err = svc.ParseYear(context.Background(), 1994)
	require.NoError(t, err)
	assert.Len(t, got.Matches, 5)

	_, err = svc.ParseYear(context.Background(), 1998)
	require.Error(t, err)
	assert.True(t, crerr.Is(err, worldcup.ErrFileNotFound))
}

func TestParseYearDatesHeaderlessFinals(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	store.put(1994, worldcup.FileCup, cup1994)
	store.put(1994, worldcup.FileCupFinals, `
Final
(52) Sun Jul/17 12:30   Brazil   3-2 pen. 0-0 a.e.t. (0-0)   Italy   @ Rose Bowl, Pasadena
`)
	svc := newTestService(store, nil)

	got, err := svc.ParseYear(context.Background(), 1994)
	require.NoError(t, err)
	require.Len(t, got.Matches, 4)
	final := got.Matches[3]
	assert.True(t, final.Knockout)
	assert.Equal(t, "1994-07-17", final.Date)
}

func TestConvertYearsContinuesPastFailures(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	store.put(1994, worldcup.FileCup, cup1994)
	store.put(1994, worldcup.FileCupFinals, cupFinals1994)
	observer := &countingObserver{}
	svc := newTestService(store, observer)

	got, err := svc.ConvertYears(context.Background(), []int{2002, 1994}, Options{Workers: 2})
	require.NoError(t, err)

	require.Len(t, got.Years, 2)
	assert.Equal(t, 1, got.Succeeded)
	assert.Equal(t, 1, got.Failed)

	ok := got.Years[0]
	assert.Equal(t, 1994, ok.Year)
	assert.True(t, ok.Saved)
	assert.True(t, ok.Validation.Valid)
	assert.Equal(t, 5, ok.MatchCount())

	failed := got.Years[1]
	assert.Equal(t, 2002, failed.Year)
	assert.False(t, failed.Saved)
	require.Len(t, failed.Validation.Errors, 1)
	assert.Contains(t, failed.Validation.Errors[0], "Conversion failed: ")

	assert.Equal(t, 1, observer.calls)

	doc, err := store.ReadDocument(context.Background(), 1994)
	require.NoError(t, err)
	assert.Equal(t, "World Cup 1994", doc.Name)
}

func TestConvertYearsDryRunWritesNothing(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	store.put(1994, worldcup.FileCup, cup1994)
	svc := newTestService(store, nil)

	got, err := svc.ConvertYears(context.Background(), []int{1994}, Options{DryRun: true})
	require.NoError(t, err)
	require.Len(t, got.Years, 1)
	assert.False(t, got.Years[0].Saved)
	assert.Equal(t, 1, got.Succeeded)

	_, err = store.ReadRaw(context.Background(), 1994, worldcup.FileDocument)
	assert.True(t, crerr.Is(err, worldcup.ErrFileNotFound))
}

func TestConvertYearsReportsSaveFailures(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	store.put(1994, worldcup.FileCup, cup1994)
	store.failSave = true
	svc := newTestService(store, nil)

	got, err := svc.ConvertYears(context.Background(), []int{1994}, Options{Workers: 1})
	require.NoError(t, err)
	require.Len(t, got.Years, 1)
	assert.Equal(t, 1, got.Failed)
	assert.Equal(t, []string{"Save failed: read-only filesystem"}, got.Years[0].Validation.Errors)
}

func TestValidateYear(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	svc := newTestService(store, nil)
	ctx := context.Background()

	got, err := svc.ValidateYear(ctx, 1994)
	require.NoError(t, err)
	assert.False(t, got.Valid)
	assert.Equal(t, []string{"worldcup.json not found"}, got.Errors)
	assert.Equal(t, []string{"worldcup.groups.json not found"}, got.Warnings)

	store.put(1994, worldcup.FileCup, cup1994)
	store.put(1994, worldcup.FileCupFinals, cupFinals1994)
	_, err = svc.ConvertAndSaveYear(ctx, 1994)
	require.NoError(t, err)

	got, err = svc.ValidateYear(ctx, 1994)
	require.NoError(t, err)
	assert.True(t, got.Valid, got.Errors)

	store.put(1994, worldcup.FileDocument, "{broken")
	got, err = svc.ValidateYear(ctx, 1994)
	require.NoError(t, err)
	assert.False(t, got.Valid)
}

func TestStats(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	store.put(1994, worldcup.FileCup, cup1994)
	store.put(1994, worldcup.FileCupFinals, cupFinals1994)
	svc := newTestService(store, nil)
	ctx := context.Background()

	_, err := svc.ConvertAndSaveYear(ctx, 1994)
	require.NoError(t, err)

	got, err := svc.Stats(ctx, 1994)
	require.NoError(t, err)
	assert.Equal(t, 5, got.TotalMatches)
	assert.Equal(t, 2, got.KnockoutMatches)
	assert.Equal(t, 3, got.GroupMatches)
	assert.Equal(t, 14, got.TotalGoals)
	assert.InDelta(t, 2.8, got.AverageGoals, 0.001)
	assert.Equal(t, RoundStats{Name: "Matchday 1", Matches: 2, Goals: 6}, got.Rounds[0])

	_, err = svc.Stats(ctx, 2030)
	assert.True(t, crerr.Is(err, worldcup.ErrFileNotFound))
}

func TestSelectYears(t *testing.T) {
	t.Parallel()

	years := []int{2010, 2014, 2018, 2022}
	assert.Equal(t, []int{2010, 2022}, SelectYears(years, nil, false))
	assert.Equal(t, years, SelectYears(years, nil, true))
	assert.Equal(t, []int{2010, 2014, 2018}, SelectYears(years, []int{2022}, false))
	assert.Equal(t, years, SelectYears(years, []int{}, false))
	assert.Empty(t, SelectYears(nil, nil, false))
}
