// Package figure builds Plotly.js figure descriptions for score tables.
//
// A Figure marshals to the {"data": [...], "layout": {...}} object that
// Plotly.react accepts. The zero Figure marshals to {} and renders as nothing.
package figure

import (
	"encoding/json"
	"math"
	"strconv"
)

// Figure is a Plotly figure.
type Figure struct {
	Data   []any   `json:"data,omitempty"`
	Layout *Layout `json:"layout,omitempty"`
}

// Empty reports whether the figure has nothing to draw.
func (f Figure) Empty() bool { return len(f.Data) == 0 && f.Layout == nil }

// Values is a numeric series. NaN and infinities marshal as null so that
// Plotly draws a gap.
type Values []float64

func (v Values) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, 8*len(v)+2)
	buf = append(buf, '[')
	for i, x := range v {
		if i > 0 {
			buf = append(buf, ',')
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			buf = append(buf, "null"...)
			continue
		}
		buf = strconv.AppendFloat(buf, x, 'g', -1, 64)
	}
	return append(buf, ']'), nil
}

// Positions converts position keys to axis values: numbers when every key is an
// integer, otherwise the keys as strings (a category axis).
func Positions(keys []string) []any {
	out := make([]any, len(keys))
	for i, k := range keys {
		n, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			for j, kk := range keys {
				out[j] = kk
			}
			return out
		}
		out[i] = n
	}
	return out
}

// Font is a Plotly font.
type Font struct {
	Size int `json:"size,omitempty"`
}

// Line is a Plotly line style.
type Line struct {
	Color string `json:"color,omitempty"`
	Width int    `json:"width,omitempty"`
}

// Title is a Plotly title object.
type Title struct {
	Text string `json:"text"`
	Side string `json:"side,omitempty"`
	Font *Font  `json:"font,omitempty"`
}

// Axis is a Plotly layout axis.
type Axis struct {
	Title      *Title   `json:"title,omitempty"`
	ShowGrid   *bool    `json:"showgrid,omitempty"`
	GridColor  string   `json:"gridcolor,omitempty"`
	TickFont   *Font    `json:"tickfont,omitempty"`
	TickMode   string   `json:"tickmode,omitempty"`
	TickVals   []int    `json:"tickvals,omitempty"`
	TickText   []string `json:"ticktext,omitempty"`
	AutoMargin bool     `json:"automargin,omitempty"`
	FixedRange bool     `json:"fixedrange,omitempty"`
}

// Margin is a Plotly layout margin.
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	B int `json:"b"`
	T int `json:"t"`
}

// Shape is a Plotly layout shape (rect or line).
type Shape struct {
	Type string  `json:"type"`
	XRef string  `json:"xref"`
	YRef string  `json:"yref"`
	X0   float64 `json:"x0"`
	Y0   float64 `json:"y0"`
	X1   float64 `json:"x1"`
	Y1   float64 `json:"y1"`
	Line Line    `json:"line"`
}

// Annotation is a Plotly layout annotation.
type Annotation struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Text      string  `json:"text"`
	ShowArrow bool    `json:"showarrow"`
	ArrowHead int     `json:"arrowhead,omitempty"`
	AX        int     `json:"ax"`
	AY        int     `json:"ay"`
	BGColor   string  `json:"bgcolor,omitempty"`
}

// Layout is a Plotly layout.
type Layout struct {
	Title        *Title       `json:"title,omitempty"`
	XAxis        *Axis        `json:"xaxis,omitempty"`
	YAxis        *Axis        `json:"yaxis,omitempty"`
	PlotBGColor  string       `json:"plot_bgcolor,omitempty"`
	PaperBGColor string       `json:"paper_bgcolor,omitempty"`
	ClickMode    string       `json:"clickmode,omitempty"`
	AutoSize     *bool        `json:"autosize,omitempty"`
	Width        int          `json:"width,omitempty"`
	Height       int          `json:"height,omitempty"`
	Margin       *Margin      `json:"margin,omitempty"`
	Shapes       []Shape      `json:"shapes,omitempty"`
	Annotations  []Annotation `json:"annotations,omitempty"`
	Legend       *Legend      `json:"legend,omitempty"`
}

// Legend is a Plotly legend.
type Legend struct {
	Title Title `json:"title"`
}

func boolPtr(b bool) *bool { return &b }

// MarshalIndent renders a figure for files and debugging output.
func MarshalIndent(f Figure) ([]byte, error) {
	return json.MarshalIndent(f, "", "  ")
}
