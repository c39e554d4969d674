package figure

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/inodb/vibe-dms/internal/dataset"
)

// Heatmap color domain, fixed so that figures of different files compare.
const (
	ZMin = -0.8
	ZMax = 0.8
)

// divergingScale runs blue (negative) through white to red (positive).
var divergingScale = [][2]any{
	{0.0, "rgb(5,48,97)"},
	{0.1, "rgb(33,102,172)"},
	{0.2, "rgb(67,147,195)"},
	{0.3, "rgb(146,197,222)"},
	{0.4, "rgb(209,229,240)"},
	{0.5, "rgb(247,247,247)"},
	{0.6, "rgb(253,219,199)"},
	{0.7, "rgb(244,165,130)"},
	{0.8, "rgb(214,96,77)"},
	{0.9, "rgb(178,24,43)"},
	{1.0, "rgb(103,0,31)"},
}

// HeatmapTrace is a Plotly heatmap trace.
type HeatmapTrace struct {
	Type          string     `json:"type"`
	Z             []Values   `json:"z"`
	X             []any      `json:"x"`
	Y             []string   `json:"y"`
	ColorScale    [][2]any   `json:"colorscale"`
	ZMin          float64    `json:"zmin"`
	ZMax          float64    `json:"zmax"`
	ColorBar      ColorBar   `json:"colorbar"`
	HoverOnGaps   bool       `json:"hoverongaps"`
	Text          [][]string `json:"text"`
	HoverTemplate string     `json:"hovertemplate"`
}

// ColorBar is a Plotly color bar.
type ColorBar struct {
	Title    Title     `json:"title"`
	TickVals []float64 `json:"tickvals"`
}

// Heatmap draws the amino-acid score block of t: one row per residue label,
// one column per position.
func Heatmap(t *dataset.Table) Figure {
	aas := t.AminoAcids()
	positions := t.Positions()

	z := make([]Values, len(aas))
	if m := t.ScoreMatrix(); m != nil {
		zt := mat.DenseCopyOf(m.T())
		for i := range aas {
			z[i] = Values(mat.Row(nil, i, zt))
		}
	}

	ticks := make([]int, len(aas))
	for i := range ticks {
		ticks[i] = i
	}

	trace := HeatmapTrace{
		Type:       "heatmap",
		Z:          z,
		X:          Positions(positions),
		Y:          aas,
		ColorScale: divergingScale,
		ZMin:       ZMin,
		ZMax:       ZMax,
		ColorBar: ColorBar{
			Title:    Title{Text: "variant score (log2)", Side: "right", Font: &Font{Size: 12}},
			TickVals: []float64{ZMin, 0, ZMax},
		},
		HoverOnGaps:   false,
		Text:          HoverText(t),
		HoverTemplate: "%{text}<extra></extra>",
	}

	layout := &Layout{
		Title: &Title{Text: t.Name},
		XAxis: &Axis{Title: &Title{Text: "Position"}, ShowGrid: boolPtr(false)},
		YAxis: &Axis{
			TickMode:   "array",
			TickVals:   ticks,
			TickText:   aas,
			AutoMargin: true,
			FixedRange: true,
			ShowGrid:   boolPtr(false),
		},
		PlotBGColor: "grey",
	}

	return Figure{Data: []any{trace}, Layout: layout}
}

// HoverText returns one label per heatmap cell, shaped like z
// (residues × positions).
func HoverText(t *dataset.Table) [][]string {
	positions := t.Positions()
	wt := t.WildType()
	median := t.Median()

	text := make([][]string, 0, len(t.Scores()))
	for _, sc := range t.Scores() {
		row := make([]string, len(positions))
		for j, pos := range positions {
			row[j] = fmt.Sprintf("Position: %s<br>WT aa: %s<br>Variant aa: %s<br>Variant Score: %.4f<br>Median Score: %.4f",
				pos, wt[j], sc.AA, sc.Values[j], median[j])
		}
		text = append(text, row)
	}
	return text
}
