package cache

import (
	"context"
	"io"
	"strconv"

	"github.com/riskibarqy/worldcup-insights/internal/domain/worldcup"
	basecache "github.com/riskibarqy/worldcup-insights/internal/platform/cache"
)

// DatasetRepository memoizes decoded documents of the wrapped repository.
// Writes drop the cached entry for the year they touch.
type DatasetRepository struct {
	next  worldcup.Repository
	cache *basecache.Store
}

func NewDatasetRepository(next worldcup.Repository, cache *basecache.Store) *DatasetRepository {
	return &DatasetRepository{next: next, cache: cache}
}

var _ worldcup.Repository = (*DatasetRepository)(nil)

func (r *DatasetRepository) Years(ctx context.Context) ([]int, error) {
	return r.next.Years(ctx)
}

func (r *DatasetRepository) SourceYears(ctx context.Context) ([]int, error) {
	return r.next.SourceYears(ctx)
}

func (r *DatasetRepository) Inventory(ctx context.Context) ([]worldcup.YearInventory, error) {
	return r.next.Inventory(ctx)
}

func (r *DatasetRepository) OpenSource(ctx context.Context, year int, file string) (io.ReadCloser, error) {
	return r.next.OpenSource(ctx, year, file)
}

func (r *DatasetRepository) ReadRaw(ctx context.Context, year int, file string) ([]byte, error) {
	return r.next.ReadRaw(ctx, year, file)
}

func (r *DatasetRepository) ReadDocument(ctx context.Context, year int) (worldcup.Document, error) {
	v, err := r.cache.GetOrLoad(ctx, documentKey(year), func(ctx context.Context) (any, error) {
		return r.next.ReadDocument(ctx, year)
	})
	if err != nil {
		return worldcup.Document{}, err
	}

	doc, _ := v.(worldcup.Document)
	return doc, nil
}

func (r *DatasetRepository) ReadGroups(ctx context.Context, year int) (worldcup.GroupsDocument, error) {
	v, err := r.cache.GetOrLoad(ctx, groupsKey(year), func(ctx context.Context) (any, error) {
		return r.next.ReadGroups(ctx, year)
	})
	if err != nil {
		return worldcup.GroupsDocument{}, err
	}

	doc, _ := v.(worldcup.GroupsDocument)
	return doc, nil
}

func (r *DatasetRepository) WriteDocument(ctx context.Context, year int, doc worldcup.Document) error {
	if err := r.next.WriteDocument(ctx, year, doc); err != nil {
		return err
	}
	r.cache.Delete(ctx, documentKey(year))
	return nil
}

func (r *DatasetRepository) WriteGroups(ctx context.Context, year int, doc worldcup.GroupsDocument) error {
	if err := r.next.WriteGroups(ctx, year, doc); err != nil {
		return err
	}
	r.cache.Delete(ctx, groupsKey(year))
	return nil
}

func documentKey(year int) string {
	return "dataset:document:" + strconv.Itoa(year)
}

func groupsKey(year int) string {
	return "dataset:groups:" + strconv.Itoa(year)
}
