// Package compare turns a selection of two datasets and flag columns into a
// merged view and the scatter and heatmap figures drawn from it.
//
// Run is a pure function of the catalog and the selection: nothing is cached
// and the catalog is only read.
package compare

import (
	"fmt"

	"github.com/inodb/vibe-dms/internal/dataset"
	"github.com/inodb/vibe-dms/internal/figure"
	"github.com/inodb/vibe-dms/internal/frame"
)

// Join suffixes for columns present in both tables.
const (
	Suffix1 = "_1"
	Suffix2 = "_2"
)

// Merged median score columns.
const (
	ColMedian1 = dataset.ColMedianScore + Suffix1
	ColMedian2 = dataset.ColMedianScore + Suffix2
)

// Selection is the state of the three pickers.
type Selection struct {
	File1 string
	File2 string
	Flags []string
}

// Skip reports whether the selection yields no result: a dataset is not
// chosen or both pickers hold the same dataset.
func (s Selection) Skip() bool {
	return s.File1 == "" || s.File2 == "" || s.File1 == s.File2
}

// Result holds the outputs of one selection. For a skipped selection Merged is
// nil and all figures are empty.
type Result struct {
	Merged   *frame.Frame
	Points   []figure.Point
	Scatter  figure.Figure
	Heatmap1 figure.Figure
	Heatmap2 figure.Figure
}

// Figures is the JSON shape of the three outputs.
type Figures struct {
	Scatter  figure.Figure `json:"scatter"`
	Heatmap1 figure.Figure `json:"heatmap1"`
	Heatmap2 figure.Figure `json:"heatmap2"`
}

// Figures returns the three figures of r.
func (r *Result) Figures() Figures {
	return Figures{Scatter: r.Scatter, Heatmap1: r.Heatmap1, Heatmap2: r.Heatmap2}
}

// Run computes the merged view and figures for sel.
func Run(c *dataset.Catalog, sel Selection) (*Result, error) {
	if sel.Skip() {
		return &Result{}, nil
	}

	t1, err := c.Get(sel.File1)
	if err != nil {
		return nil, err
	}
	t2, err := c.Get(sel.File2)
	if err != nil {
		return nil, err
	}

	merged, err := Merge(t1, t2, sel.Flags)
	if err != nil {
		return nil, err
	}

	points, err := Points(merged)
	if err != nil {
		return nil, err
	}

	return &Result{
		Merged:   merged,
		Points:   points,
		Scatter:  figure.Scatter(points, sel.ScatterOptions()),
		Heatmap1: figure.Heatmap(t1),
		Heatmap2: figure.Heatmap(t2),
	}, nil
}

// ScatterOptions returns the scatter styling for s.
func (s Selection) ScatterOptions() figure.ScatterOptions {
	return figure.ScatterOptions{
		File1:           s.File1,
		File2:           s.File2,
		DefaultCategory: DefaultCategory,
		Colors:          MarkerColors,
	}
}

// Merge inner-joins t1 and t2 on position and adds the color column for flags.
func Merge(t1, t2 *dataset.Table, flags []string) (*frame.Frame, error) {
	merged, err := frame.InnerJoin(t1.Frame(), t2.Frame(), dataset.ColPosition, [2]string{Suffix1, Suffix2})
	if err != nil {
		return nil, fmt.Errorf("merge %s with %s: %w", t1.Name, t2.Name, err)
	}
	return AssignColors(merged, t1.Frame(), flags)
}

// Points extracts the scatter points of a merged view.
func Points(merged *frame.Frame) ([]figure.Point, error) {
	positions, err := merged.Strings(dataset.ColPosition)
	if err != nil {
		return nil, err
	}
	xs, err := merged.Float(ColMedian1)
	if err != nil {
		return nil, err
	}
	ys, err := merged.Float(ColMedian2)
	if err != nil {
		return nil, err
	}
	colors, err := merged.Strings(ColorColumn)
	if err != nil {
		return nil, err
	}

	points := make([]figure.Point, len(positions))
	for i := range points {
		points[i] = figure.Point{Position: positions[i], X: xs[i], Y: ys[i], Category: colors[i]}
	}
	return points, nil
}
