package cache

import (
	"context"
	"io"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/worldcup-insights/internal/domain/worldcup"
	basecache "github.com/riskibarqy/worldcup-insights/internal/platform/cache"
)

type countingRepository struct {
	worldcup.Repository
	documentReads atomic.Int32
	name          string
}

func (r *countingRepository) ReadDocument(context.Context, int) (worldcup.Document, error) {
	r.documentReads.Add(1)
	return worldcup.Document{Name: r.name}, nil
}

func (r *countingRepository) WriteDocument(_ context.Context, _ int, doc worldcup.Document) error {
	r.name = doc.Name
	return nil
}

func (r *countingRepository) OpenSource(context.Context, int, string) (io.ReadCloser, error) {
	return nil, worldcup.ErrFileNotFound
}

func TestDatasetRepositoryCachesDocuments(t *testing.T) {
	t.Parallel()

	next := &countingRepository{name: "World Cup 1954"}
	repo := NewDatasetRepository(next, basecache.NewStore(0))
	ctx := context.Background()

	for range 3 {
		doc, err := repo.ReadDocument(ctx, 1954)
		require.NoError(t, err)
		assert.Equal(t, "World Cup 1954", doc.Name)
	}
	assert.Equal(t, int32(1), next.documentReads.Load())

	require.NoError(t, repo.WriteDocument(ctx, 1954, worldcup.Document{Name: "Coupe du Monde 1954"}))
	doc, err := repo.ReadDocument(ctx, 1954)
	require.NoError(t, err)
	assert.Equal(t, "Coupe du Monde 1954", doc.Name)
	assert.Equal(t, int32(2), next.documentReads.Load())

	_, err = repo.OpenSource(ctx, 1954, worldcup.FileCup)
	assert.ErrorIs(t, err, worldcup.ErrFileNotFound)
}
