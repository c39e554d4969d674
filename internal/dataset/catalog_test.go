package dataset

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-dms/internal/duckdb"
	"github.com/inodb/vibe-dms/internal/frame"
)

func openStore(t *testing.T) *duckdb.Store {
	t.Helper()
	s, err := duckdb.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func loadTestdata(t *testing.T) *Catalog {
	t.Helper()
	c := NewCatalog()
	l := NewLoader(openStore(t), "testdata")
	require.NoError(t, l.Load(context.Background(), c))
	return c
}

func TestLoader_Load(t *testing.T) {
	c := loadTestdata(t)

	assert.Equal(t, 2, c.Count())
	assert.Equal(t, []string{"escape_ab8307.csv", "escape_ab8314.csv"}, c.Names())

	tbl, err := c.Get("escape_ab8307.csv")
	require.NoError(t, err)
	assert.Equal(t, 10, tbl.Len())
	assert.Equal(t, "331", tbl.Positions()[0])
	assert.Equal(t, "N", tbl.WildType()[0])
	assert.Len(t, tbl.AminoAcids(), 20)
	assert.Equal(t, "A", tbl.AminoAcids()[0])
	assert.Equal(t, "Y", tbl.AminoAcids()[19])
	assert.Equal(t, []string{"site_1", "site_2", "ab8307_site", "ab8314_site", "c_c"}, tbl.FlagColumns())
	assert.InDelta(t, 0.2593, tbl.Median()[2], 1e-9)
	assert.Greater(t, tbl.Source.Size, int64(0))
	assert.False(t, tbl.Summarize().Stale)
}

func TestLoader_SkipsNonCSV(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("hello"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "upper.CSV"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.csv"), 0755))

	c := NewCatalog()
	require.NoError(t, NewLoader(openStore(t), dir).Load(context.Background(), c))
	assert.Equal(t, 0, c.Count())
}

func TestLoadFile_MissingTrailingFlag(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "short.csv"), []byte(
		"position,wt_aa,A,Y,median_score,site_1\n"+
			"1,M,0.1,0.2,0.15\n"+
			"2,K,0.3,0.4,0.35,yes\n"), 0644))

	tbl, err := NewLoader(openStore(t), dir).LoadFile("short.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, tbl.Positions())
	assert.Equal(t, []string{"site_1"}, tbl.FlagColumns())

	flags, err := tbl.Frame().Strings("site_1")
	require.NoError(t, err)
	assert.Equal(t, []string{"", "yes"}, flags)
}

func TestLoader_BadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.csv"),
		[]byte("position,wt_aa,median_score\n1,M,0.1\n"), 0644))

	l := NewLoader(openStore(t), dir)
	l.SetWorkers(0)
	err := l.Load(context.Background(), NewCatalog())
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "bad.csv", le.File)
	assert.True(t, errors.Is(err, frame.ErrColumnNotFound))
}

func TestLoader_MissingDir(t *testing.T) {
	l := NewLoader(openStore(t), filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, l.Load(context.Background(), NewCatalog()))
}

func TestCatalog_Unknown(t *testing.T) {
	c := NewCatalog()
	_, err := c.Get("nope.csv")
	assert.True(t, errors.Is(err, ErrUnknownDataset))
}

func TestNewTable_ScoreBlock(t *testing.T) {
	f, err := frame.New(
		[]string{"position", "wt_aa", "A", "C", "Y", "median_score", "site_1"},
		[][]string{
			{"1", "M", "0.1", "0.2", "0.3", "0.2", "yes"},
			{"2", "K", "-0.1", "", "0.5", "0.1", "no"},
		})
	require.NoError(t, err)

	tbl, err := NewTable("t.csv", f)
	require.NoError(t, err)

	scores := tbl.Scores()
	require.Len(t, scores, 3)
	assert.Equal(t, "C", scores[1].AA)
	assert.Equal(t, 0.2, scores[1].Values[0])
	assert.True(t, math.IsNaN(scores[1].Values[1]))
	assert.Equal(t, []string{"site_1"}, tbl.FlagColumns())

	m := tbl.ScoreMatrix()
	require.NotNil(t, m)
	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, 0.5, m.At(1, 2))
}

func TestNewTable_NonNumericScore(t *testing.T) {
	f, err := frame.New(
		[]string{"position", "wt_aa", "A", "Y", "median_score"},
		[][]string{{"1", "M", "high", "0.3", "0.2"}})
	require.NoError(t, err)

	_, err = NewTable("t.csv", f)
	assert.Error(t, err)
}

func TestNewTable_Empty(t *testing.T) {
	f, err := frame.New([]string{"position", "wt_aa", "A", "Y", "median_score"}, nil)
	require.NoError(t, err)

	tbl, err := NewTable("empty.csv", f)
	require.NoError(t, err)
	assert.Nil(t, tbl.ScoreMatrix())

	s := tbl.Summarize()
	assert.Equal(t, 0, s.Rows)
	assert.Equal(t, 0, s.Scored)
}

func TestSummarize(t *testing.T) {
	f, err := frame.New(
		[]string{"position", "wt_aa", "A", "Y", "median_score"},
		[][]string{
			{"1", "M", "0", "0", "0.4"},
			{"2", "K", "0", "0", "NA"},
			{"3", "L", "0", "0", "-0.2"},
			{"4", "L", "0", "0", "0.1"},
		})
	require.NoError(t, err)
	tbl, err := NewTable("s.csv", f)
	require.NoError(t, err)

	s := tbl.Summarize()
	assert.Equal(t, 4, s.Rows)
	assert.Equal(t, 3, s.Scored)
	assert.InDelta(t, -0.2, s.MinMedian, 1e-12)
	assert.InDelta(t, 0.1, s.Median, 1e-12)
	assert.InDelta(t, 0.4, s.MaxMedian, 1e-12)
	assert.False(t, s.Stale)
}
