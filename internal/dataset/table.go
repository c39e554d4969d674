// Package dataset provides the in-memory catalog of variant score tables.
package dataset

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/mat"

	"github.com/inodb/vibe-dms/internal/duckdb"
	"github.com/inodb/vibe-dms/internal/frame"
)

// Required column labels.
const (
	ColPosition    = "position"
	ColWildType    = "wt_aa"
	ColMedianScore = "median_score"
)

// The amino-acid score block spans the columns from ScoreFrom to ScoreTo inclusive.
const (
	ScoreFrom = "A"
	ScoreTo   = "Y"
)

// FlagYes is the cell value that marks a flag column as set.
const FlagYes = "yes"

// ScoreColumn is one variant residue's scores, one value per position.
type ScoreColumn struct {
	AA     string
	Values []float64
}

// Table is one loaded score file. It is never modified after NewTable returns.
type Table struct {
	Name   string
	Source duckdb.Source

	frame     *frame.Frame
	positions []string
	wildType  []string
	median    []float64
	scores    []ScoreColumn
	flags     []string
}

// NewTable validates f and extracts the typed columns a table is used for.
func NewTable(name string, f *frame.Frame) (*Table, error) {
	t := &Table{Name: name, frame: f}

	var err error
	if t.positions, err = f.Strings(ColPosition); err != nil {
		return nil, err
	}
	if t.wildType, err = f.Strings(ColWildType); err != nil {
		return nil, err
	}
	if t.median, err = f.Float(ColMedianScore); err != nil {
		return nil, err
	}

	labels, err := f.Range(ScoreFrom, ScoreTo)
	if err != nil {
		return nil, fmt.Errorf("score block: %w", err)
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("score block: column %q comes after %q", ScoreFrom, ScoreTo)
	}
	inBlock := make(map[string]bool, len(labels))
	for _, aa := range labels {
		vals, err := f.Float(aa)
		if err != nil {
			return nil, fmt.Errorf("score block: %w", err)
		}
		t.scores = append(t.scores, ScoreColumn{AA: aa, Values: vals})
		inBlock[aa] = true
	}

	for _, c := range f.Columns() {
		if inBlock[c] || c == ColPosition || c == ColWildType || c == ColMedianScore {
			continue
		}
		vals, _ := f.Strings(c)
		for _, v := range vals {
			if v == FlagYes {
				t.flags = append(t.flags, c)
				break
			}
		}
	}

	return t, nil
}

// Frame returns the full table, including columns with no typed accessor.
func (t *Table) Frame() *frame.Frame { return t.frame }

// Len returns the number of positions (rows).
func (t *Table) Len() int { return len(t.positions) }

// Positions returns the position keys in file order.
func (t *Table) Positions() []string { return t.positions }

// WildType returns the wild-type residue of each row.
func (t *Table) WildType() []string { return t.wildType }

// Median returns the median score of each row.
func (t *Table) Median() []float64 { return t.median }

// Scores returns the amino-acid score block as ordered (label, column) pairs.
func (t *Table) Scores() []ScoreColumn { return t.scores }

// FlagColumns returns the non-score columns that contain at least one "yes".
func (t *Table) FlagColumns() []string { return t.flags }

// AminoAcids returns the score block labels in order.
func (t *Table) AminoAcids() []string {
	out := make([]string, len(t.scores))
	for i, sc := range t.scores {
		out[i] = sc.AA
	}
	return out
}

// ScoreMatrix returns the score block as a positions × residues matrix.
// It returns nil for a table with no rows.
func (t *Table) ScoreMatrix() *mat.Dense {
	r, c := len(t.positions), len(t.scores)
	if r == 0 || c == 0 {
		return nil
	}
	m := mat.NewDense(r, c, nil)
	for j, sc := range t.scores {
		for i, v := range sc.Values {
			m.Set(i, j, v)
		}
	}
	return m
}

// Summary describes a table for listings.
type Summary struct {
	Name       string   `json:"name"`
	Rows       int      `json:"rows"`
	AminoAcids []string `json:"amino_acids"`
	Flags      []string `json:"flags"`
	MinMedian  float64  `json:"min_median"`
	Median     float64  `json:"median"`
	MaxMedian  float64  `json:"max_median"`
	Scored     int      `json:"scored"`

	// Stale is set when the file on disk changed after it was loaded.
	Stale bool `json:"stale"`
}

// Summarize computes the listing summary. NaN median scores are ignored.
func (t *Table) Summarize() Summary {
	s := Summary{
		Name:       t.Name,
		Rows:       t.Len(),
		AminoAcids: t.AminoAcids(),
		Flags:      t.flags,
		Stale:      t.Source.Changed(),
	}
	data := Finite(t.median)
	s.Scored = len(data)
	if len(data) == 0 {
		return s
	}
	s.MinMedian, _ = stats.Min(data)
	s.Median, _ = stats.Median(data)
	s.MaxMedian, _ = stats.Max(data)
	return s
}

// Finite returns the values of vals that are neither NaN nor infinite.
func Finite(vals []float64) stats.Float64Data {
	out := make(stats.Float64Data, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			out = append(out, v)
		}
	}
	return out
}
