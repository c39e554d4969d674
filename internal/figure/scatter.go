package figure

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/inodb/vibe-dms/internal/dataset"
)

// Point is one merged row drawn on the scatter plot.
type Point struct {
	Position string
	X, Y     float64
	Category string
}

// ScatterOptions names the two datasets and the category styling.
type ScatterOptions struct {
	File1, File2 string
	// DefaultCategory marks unannotated points; they get no label.
	DefaultCategory string
	// Colors maps a category to a marker color. Categories not in the map
	// are drawn in the category name itself.
	Colors map[string]string
}

// ScatterTrace is a Plotly scatter trace.
type ScatterTrace struct {
	Type          string `json:"type"`
	Mode          string `json:"mode"`
	Name          string `json:"name"`
	LegendGroup   string `json:"legendgroup"`
	ShowLegend    bool   `json:"showlegend"`
	X             Values `json:"x"`
	Y             Values `json:"y"`
	CustomData    []any  `json:"customdata"`
	HoverTemplate string `json:"hovertemplate"`
	Marker        Marker `json:"marker"`
}

// Marker is a Plotly scatter marker.
type Marker struct {
	Color string `json:"color"`
}

// Scatter plots median score of file 1 against file 2, one trace per category
// in order of first appearance. Non-default points are labelled with their
// position.
func Scatter(points []Point, opts ScatterOptions) Figure {
	type series struct {
		x, y      Values
		positions []string
	}
	var order []string
	byCat := make(map[string]*series)
	for _, p := range points {
		s, ok := byCat[p.Category]
		if !ok {
			s = &series{}
			byCat[p.Category] = s
			order = append(order, p.Category)
		}
		s.x = append(s.x, p.X)
		s.y = append(s.y, p.Y)
		s.positions = append(s.positions, p.Position)
	}

	data := make([]any, 0, len(order))
	for _, cat := range order {
		s := byCat[cat]
		color, ok := opts.Colors[cat]
		if !ok {
			color = cat
		}
		data = append(data, ScatterTrace{
			Type:          "scatter",
			Mode:          "markers",
			Name:          cat,
			LegendGroup:   cat,
			ShowLegend:    true,
			X:             s.x,
			Y:             s.y,
			CustomData:    Positions(s.positions),
			HoverTemplate: "color=" + cat + "<br>median_score_1=%{x}<br>median_score_2=%{y}<br>position=%{customdata}<extra></extra>",
			Marker:        Marker{Color: color},
		})
	}

	var annotations []Annotation
	for _, p := range points {
		if p.Category == opts.DefaultCategory || !isFinite(p.X) || !isFinite(p.Y) {
			continue
		}
		annotations = append(annotations, Annotation{
			X:         p.X,
			Y:         p.Y,
			Text:      p.Position,
			ShowArrow: true,
			ArrowHead: 2,
			AX:        0,
			AY:        -20,
			BGColor:   "rgba(255,255,255,0.7)",
		})
	}

	layout := &Layout{
		Title:        &Title{Text: scatterTitle(opts)},
		XAxis:        scatterAxis(opts.File1),
		YAxis:        scatterAxis(opts.File2),
		PlotBGColor:  "white",
		PaperBGColor: "white",
		ClickMode:    "event+select",
		AutoSize:     boolPtr(false),
		Width:        700,
		Height:       600,
		Margin:       &Margin{L: 50, R: 50, B: 50, T: 50},
		Shapes:       scatterShapes(points),
		Annotations:  annotations,
		Legend:       &Legend{Title: Title{Text: "color"}},
	}

	return Figure{Data: data, Layout: layout}
}

func scatterTitle(opts ScatterOptions) string {
	return fmt.Sprintf("Scatter Plot of %s vs %s", opts.File1, opts.File2)
}

func scatterAxis(file string) *Axis {
	return &Axis{
		Title:     &Title{Text: fmt.Sprintf("<b>Median Score (%s)</b>", file)},
		ShowGrid:  boolPtr(true),
		GridColor: "lightgray",
		TickFont:  &Font{Size: 14},
	}
}

// scatterShapes returns the plot border plus zero reference lines. The
// vertical line at x=0 spans the y range; the horizontal line at y=0 spans
// the x range. A line is omitted when its range has no finite values.
func scatterShapes(points []Point) []Shape {
	shapes := []Shape{{
		Type: "rect", XRef: "paper", YRef: "paper",
		X0: 0, Y0: 0, X1: 1, Y1: 1,
		Line: Line{Color: "black", Width: 2},
	}}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i], ys[i] = p.X, p.Y
	}
	if lo, hi, ok := extent(ys); ok {
		shapes = append(shapes, Shape{
			Type: "line", XRef: "x", YRef: "y",
			X0: 0, Y0: lo, X1: 0, Y1: hi,
			Line: Line{Color: "black", Width: 1},
		})
	}
	if lo, hi, ok := extent(xs); ok {
		shapes = append(shapes, Shape{
			Type: "line", XRef: "x", YRef: "y",
			X0: lo, Y0: 0, X1: hi, Y1: 0,
			Line: Line{Color: "black", Width: 1},
		})
	}
	return shapes
}

func extent(vals []float64) (lo, hi float64, ok bool) {
	data := dataset.Finite(vals)
	if len(data) == 0 {
		return 0, 0, false
	}
	lo, _ = stats.Min(data)
	hi, _ = stats.Max(data)
	return lo, hi, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
