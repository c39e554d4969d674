package figure

import (
	"errors"
	"io"
	"strings"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoPoints is returned when there is nothing finite to draw.
var ErrNoPoints = errors.New("no finite points to plot")

// namedColors resolves the CSS color names used as scatter categories.
var namedColors = map[string]string{
	"gray":   "808080",
	"grey":   "808080",
	"green":  "008000",
	"blue":   "0000ff",
	"violet": "ee82ee",
	"orange": "ffa500",
	"red":    "ff0000",
	"black":  "000000",
}

// dotColor maps a marker color, either a CSS name or #rrggbb, to a drawing color.
func dotColor(c string) drawing.Color {
	if hex, ok := namedColors[strings.ToLower(c)]; ok {
		return drawing.ColorFromHex(hex)
	}
	if strings.HasPrefix(c, "#") && len(c) == 7 {
		return drawing.ColorFromHex(c[1:])
	}
	return chart.ColorAlternateGray
}

// pointStyle draws points only, no connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		StrokeColor: drawing.ColorTransparent,
		DotWidth:    4,
		DotColor:    col,
	}
}

// RenderScatterPNG draws the median score scatter as a static PNG, one series
// per category. Points with a missing score are skipped.
func RenderScatterPNG(w io.Writer, points []Point, opts ScatterOptions) error {
	var order []string
	xs := make(map[string][]float64)
	ys := make(map[string][]float64)
	var allX, allY []float64
	for _, p := range points {
		if !isFinite(p.X) || !isFinite(p.Y) {
			continue
		}
		if _, ok := xs[p.Category]; !ok {
			order = append(order, p.Category)
		}
		xs[p.Category] = append(xs[p.Category], p.X)
		ys[p.Category] = append(ys[p.Category], p.Y)
		allX = append(allX, p.X)
		allY = append(allY, p.Y)
	}
	if len(order) == 0 {
		return ErrNoPoints
	}

	series := make([]chart.Series, 0, len(order))
	for _, cat := range order {
		color := cat
		if c, ok := opts.Colors[cat]; ok {
			color = c
		}
		series = append(series, chart.ContinuousSeries{
			Name:    cat,
			XValues: xs[cat],
			YValues: ys[cat],
			Style:   pointStyle(dotColor(color)),
		})
	}

	ch := chart.Chart{
		Title:      scatterTitle(opts),
		Width:      700,
		Height:     600,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		XAxis:      chart.XAxis{Name: "Median Score (" + opts.File1 + ")", Range: paddedRange(allX)},
		YAxis:      chart.YAxis{Name: "Median Score (" + opts.File2 + ")", Range: paddedRange(allY)},
		Series:     series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch.Render(chart.PNG, w)
}

// paddedRange spans vals with a 5% margin. A single value gets a unit span.
func paddedRange(vals []float64) *chart.ContinuousRange {
	lo, hi, _ := extent(vals)
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = 0.5
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}
