package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/inodb/vibe-dms/internal/duckdb"
	"github.com/inodb/vibe-dms/internal/frame"
)

// ErrUnknownDataset is returned when a dataset name is not in the catalog.
var ErrUnknownDataset = errors.New("unknown dataset")

// LoadError reports a file that could not be loaded.
type LoadError struct {
	File string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.File, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Catalog holds the loaded tables keyed by file name.
// It is filled once by a Loader and only read afterwards, so it can be shared
// by concurrent requests without locking.
type Catalog struct {
	tables map[string]*Table
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{tables: make(map[string]*Table)}
}

// Add registers a table under its name.
func (c *Catalog) Add(t *Table) {
	c.tables[t.Name] = t
}

// Get returns the table with the given name.
func (c *Catalog) Get(name string) (*Table, error) {
	t, ok := c.tables[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDataset, name)
	}
	return t, nil
}

// Names returns the dataset names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.tables))
	for n := range c.tables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of tables.
func (c *Catalog) Count() int { return len(c.tables) }

// Summaries returns one Summary per table, sorted by name.
func (c *Catalog) Summaries() []Summary {
	names := c.Names()
	out := make([]Summary, len(names))
	for i, n := range names {
		out[i] = c.tables[n].Summarize()
	}
	return out
}

// Loader reads every *.csv file of a directory into a Catalog.
type Loader struct {
	store   *duckdb.Store
	dir     string
	workers int
	logger  *zap.Logger
}

// NewLoader creates a loader for dir that reads files through store.
func NewLoader(store *duckdb.Store, dir string) *Loader {
	return &Loader{
		store:   store,
		dir:     dir,
		workers: 4,
		logger:  zap.NewNop(),
	}
}

// SetWorkers sets how many files are parsed at once. Values below 1 mean 1.
func (l *Loader) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	l.workers = n
}

// SetLogger sets the logger for per-file load messages.
func (l *Loader) SetLogger(logger *zap.Logger) {
	l.logger = logger
}

// Files lists the *.csv files of the loader's directory, sorted by name.
func (l *Loader) Files() ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("read data directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// Load reads every CSV file into c. Any file that fails aborts the load.
func (l *Loader) Load(ctx context.Context, c *Catalog) error {
	names, err := l.Files()
	if err != nil {
		return err
	}

	tables := make([]*Table, len(names))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, name := range names {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := l.LoadFile(name)
			if err != nil {
				return err
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, t := range tables {
		c.Add(t)
	}
	return nil
}

// LoadFile reads one file of the loader's directory into a Table.
func (l *Loader) LoadFile(name string) (*Table, error) {
	path := filepath.Join(l.dir, name)

	src, err := duckdb.StatSource(path)
	if err != nil {
		return nil, &LoadError{File: name, Err: err}
	}
	recs, err := l.store.ReadCSV(path)
	if err != nil {
		return nil, &LoadError{File: name, Err: err}
	}
	f, err := frame.New(recs.Columns, recs.Rows)
	if err != nil {
		return nil, &LoadError{File: name, Err: err}
	}
	t, err := NewTable(name, f)
	if err != nil {
		return nil, &LoadError{File: name, Err: err}
	}
	t.Source = src

	l.logger.Info("loaded dataset",
		zap.String("name", name),
		zap.Int("rows", t.Len()),
		zap.Int("residues", len(t.scores)),
		zap.Strings("flags", t.flags))
	return t, nil
}
