package filesystem

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/worldcup-insights/internal/domain/worldcup"
)

var (
	ErrFileNotFound  = worldcup.ErrFileNotFound
	ErrInvalidSchema = worldcup.ErrInvalidSchema
)

// DatasetRepository stores one directory per tournament year under root:
// <root>/<year>/{cup.txt, cup_finals.txt, worldcup.json, worldcup.groups.json}.
type DatasetRepository struct {
	root string
}

func NewDatasetRepository(root string) *DatasetRepository {
	return &DatasetRepository{root: root}
}

var _ worldcup.Repository = (*DatasetRepository)(nil)

func (r *DatasetRepository) Root() string {
	return r.root
}

func (r *DatasetRepository) Years(ctx context.Context) ([]int, error) {
	return r.yearsWith(ctx, worldcup.FileDocument)
}

func (r *DatasetRepository) SourceYears(ctx context.Context) ([]int, error) {
	return r.yearsWith(ctx, worldcup.FileCup)
}

func (r *DatasetRepository) Inventory(ctx context.Context) ([]worldcup.YearInventory, error) {
	years, err := r.yearDirs(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]worldcup.YearInventory, 0, len(years))
	for _, year := range years {
		out = append(out, worldcup.YearInventory{
			Year:        year,
			HasCup:      r.exists(year, worldcup.FileCup),
			HasFinals:   r.exists(year, worldcup.FileCupFinals),
			HasDocument: r.exists(year, worldcup.FileDocument),
			HasGroups:   r.exists(year, worldcup.FileGroups),
		})
	}
	return out, nil
}

func (r *DatasetRepository) OpenSource(ctx context.Context, year int, file string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(r.path(year, file))
	if err != nil {
		return nil, r.wrapOpen(err, year, file)
	}
	return f, nil
}

func (r *DatasetRepository) ReadRaw(ctx context.Context, year int, file string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(r.path(year, file))
	if err != nil {
		return nil, r.wrapOpen(err, year, file)
	}
	return data, nil
}

func (r *DatasetRepository) ReadDocument(ctx context.Context, year int) (worldcup.Document, error) {
	var doc worldcup.Document
	if err := r.readJSON(ctx, year, worldcup.FileDocument, &doc); err != nil {
		return worldcup.Document{}, err
	}
	if doc.Rounds == nil {
		return worldcup.Document{}, crerr.Mark(
			crerr.Newf("%d/%s: missing rounds", year, worldcup.FileDocument),
			ErrInvalidSchema,
		)
	}
	return doc, nil
}

func (r *DatasetRepository) ReadGroups(ctx context.Context, year int) (worldcup.GroupsDocument, error) {
	var doc worldcup.GroupsDocument
	if err := r.readJSON(ctx, year, worldcup.FileGroups, &doc); err != nil {
		return worldcup.GroupsDocument{}, err
	}
	if doc.Groups == nil {
		return worldcup.GroupsDocument{}, crerr.Mark(
			crerr.Newf("%d/%s: missing groups", year, worldcup.FileGroups),
			ErrInvalidSchema,
		)
	}
	return doc, nil
}

func (r *DatasetRepository) WriteDocument(ctx context.Context, year int, doc worldcup.Document) error {
	return r.writeJSON(ctx, year, worldcup.FileDocument, doc)
}

func (r *DatasetRepository) WriteGroups(ctx context.Context, year int, doc worldcup.GroupsDocument) error {
	return r.writeJSON(ctx, year, worldcup.FileGroups, doc)
}

func (r *DatasetRepository) readJSON(ctx context.Context, year int, file string, dst any) error {
	data, err := r.ReadRaw(ctx, year, file)
	if err != nil {
		return err
	}
	if err := sonic.Unmarshal(data, dst); err != nil {
		return crerr.Mark(crerr.Wrapf(err, "decode %d/%s", year, file), ErrInvalidSchema)
	}
	return nil
}

// writeJSON pretty-prints v and replaces the target file atomically.
func (r *DatasetRepository) writeJSON(ctx context.Context, year int, file string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	enc := sonic.ConfigStd.NewEncoder(buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return crerr.Wrapf(err, "encode %d/%s", year, file)
	}

	dir := filepath.Join(r.root, strconv.Itoa(year))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return crerr.Wrapf(err, "create year directory %d", year)
	}

	tmp, err := os.CreateTemp(dir, "."+file+".*")
	if err != nil {
		return crerr.Wrapf(err, "create temp file for %d/%s", year, file)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := buf.WriteTo(tmp); err != nil {
		_ = tmp.Close()
		return crerr.Wrapf(err, "write %d/%s", year, file)
	}
	if err := tmp.Close(); err != nil {
		return crerr.Wrapf(err, "close %d/%s", year, file)
	}
	if err := os.Rename(tmpName, r.path(year, file)); err != nil {
		return crerr.Wrapf(err, "replace %d/%s", year, file)
	}
	return nil
}

func (r *DatasetRepository) yearsWith(ctx context.Context, file string) ([]int, error) {
	years, err := r.yearDirs(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]int, 0, len(years))
	for _, year := range years {
		if r.exists(year, file) {
			out = append(out, year)
		}
	}
	return out, nil
}

// yearDirs lists the numeric subdirectories of root, ascending.
func (r *DatasetRepository) yearDirs(ctx context.Context) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(r.root)
	if err != nil {
		if crerr.Is(err, fs.ErrNotExist) {
			return nil, crerr.Mark(crerr.Newf("datasets directory not found: %s", r.root), ErrFileNotFound)
		}
		return nil, crerr.Wrapf(err, "list datasets directory %s", r.root)
	}

	out := make([]int, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		year, err := strconv.Atoi(entry.Name())
		if err != nil || year <= 0 {
			continue
		}
		out = append(out, year)
	}
	sort.Ints(out)
	return out, nil
}

func (r *DatasetRepository) exists(year int, file string) bool {
	info, err := os.Stat(r.path(year, file))
	return err == nil && !info.IsDir()
}

func (r *DatasetRepository) path(year int, file string) string {
	return filepath.Join(r.root, strconv.Itoa(year), file)
}

func (r *DatasetRepository) wrapOpen(err error, year int, file string) error {
	if crerr.Is(err, fs.ErrNotExist) {
		return crerr.Mark(crerr.Newf("%s not found for %d", file, year), ErrFileNotFound)
	}
	return crerr.Wrapf(err, "open %d/%s", year, file)
}
