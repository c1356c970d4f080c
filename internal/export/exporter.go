// Package export persists the merged output tables. The CSV file under the
// export directory is canonical; mirrors (parquet, xlsx) and object-storage
// publishing are secondary and can fail without affecting it.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/albapepper/scoracle-boxscores/internal/table"
)

// Mirror writes a secondary copy of a table in another format.
type Mirror interface {
	// Ext is the file extension without the dot.
	Ext() string
	Write(w io.Writer, name string, t *table.Table) error
}

// Publisher uploads a finished file to remote storage.
type Publisher interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) error
}

// Exporter reads, merges and writes the tables under one directory.
type Exporter struct {
	dir       string
	mirrors   []Mirror
	publisher Publisher
	logger    *slog.Logger
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithMirrors adds secondary formats written after every canonical write.
func WithMirrors(mirrors ...Mirror) Option {
	return func(e *Exporter) { e.mirrors = append(e.mirrors, mirrors...) }
}

// WithPublisher uploads each canonical file after it is written.
func WithPublisher(p Publisher) Option {
	return func(e *Exporter) { e.publisher = p }
}

// New creates an exporter rooted at dir.
func New(dir string, logger *slog.Logger, opts ...Option) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Exporter{dir: dir, logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dir returns the export directory.
func (e *Exporter) Dir() string { return e.dir }

// Path returns the canonical CSV path of a table.
func (e *Exporter) Path(name string) string {
	return filepath.Join(e.dir, name+".csv")
}

// ErrNoTable is returned by Load when a table has never been written.
var ErrNoTable = errors.New("table not found")

// Load reads the canonical file of a table.
func (e *Exporter) Load(name string) (*table.Table, error) {
	t, err := table.ReadFile(e.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoTable, name)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ModTime returns when a table's canonical file was last written.
func (e *Exporter) ModTime(name string) (time.Time, error) {
	info, err := os.Stat(e.Path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return time.Time{}, fmt.Errorf("%w: %s", ErrNoTable, name)
	}
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// Outcome describes one Upsert.
type Outcome struct {
	Rows     int      // rows in the merged table
	Warnings []string // mirror and publish failures
}

// Upsert merges fresh into the stored table on keys and persists the result.
//
// A failure to read, merge or write the canonical file is returned. Mirror
// and publish failures are logged and reported in Outcome.Warnings.
func (e *Exporter) Upsert(ctx context.Context, name string, fresh *table.Table, keys []string) (Outcome, error) {
	var out Outcome

	existing, err := e.Load(name)
	if errors.Is(err, ErrNoTable) {
		existing = nil
	} else if err != nil {
		return out, fmt.Errorf("load %s: %w", name, err)
	}

	merged, err := table.Merge(existing, fresh, keys)
	if err != nil {
		return out, fmt.Errorf("merge %s: %w", name, err)
	}

	path := e.Path(name)
	if err := merged.WriteFile(path); err != nil {
		return out, err
	}
	out.Rows = merged.Len()
	e.logger.Info("table written", "table", name, "rows", out.Rows,
		"fresh", fresh.Len(), "path", path)

	for _, m := range e.mirrors {
		mpath := filepath.Join(e.dir, name+"."+m.Ext())
		err := table.WriteAtomic(mpath, func(w io.Writer) error {
			return m.Write(w, name, merged)
		})
		if err != nil {
			e.logger.Warn("mirror write skipped", "table", name, "format", m.Ext(), "error", err)
			out.Warnings = append(out.Warnings, fmt.Sprintf("%s %s mirror: %v", name, m.Ext(), err))
		}
	}

	if e.publisher != nil {
		if err := e.publish(ctx, name, path); err != nil {
			e.logger.Warn("publish skipped", "table", name, "error", err)
			out.Warnings = append(out.Warnings, fmt.Sprintf("%s publish: %v", name, err))
		}
	}

	return out, nil
}

func (e *Exporter) publish(ctx context.Context, name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return e.publisher.Upload(ctx, name+".csv", "text/csv", f)
}
