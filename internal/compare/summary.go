package compare

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/inodb/vibe-dms/internal/figure"
)

// CategoryCount is the number of merged rows in one color category.
type CategoryCount struct {
	Category string `json:"category"`
	Rows     int    `json:"rows"`
}

// Summary describes a merged view.
type Summary struct {
	Rows       int             `json:"rows"`
	Categories []CategoryCount `json:"categories"`
	// Pearson is the correlation of the two median scores over rows where both
	// are finite. It is NaN when fewer than two such rows exist.
	Pearson float64 `json:"-"`
	Paired  int     `json:"paired"`
}

// Summarize counts categories in order of first appearance and correlates the
// two median scores.
func Summarize(points []figure.Point) Summary {
	s := Summary{Rows: len(points), Pearson: math.NaN()}

	idx := make(map[string]int)
	var xs, ys []float64
	for _, p := range points {
		i, ok := idx[p.Category]
		if !ok {
			i = len(s.Categories)
			idx[p.Category] = i
			s.Categories = append(s.Categories, CategoryCount{Category: p.Category})
		}
		s.Categories[i].Rows++

		if isFinite(p.X) && isFinite(p.Y) {
			xs = append(xs, p.X)
			ys = append(ys, p.Y)
		}
	}

	s.Paired = len(xs)
	if len(xs) >= 2 {
		s.Pearson = stat.Correlation(xs, ys, nil)
	}
	return s
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
