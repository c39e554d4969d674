package frame

import (
	"fmt"
	"strconv"
	"strings"
)

// InnerJoin joins left and right on the column `on`.
//
// The result holds every left column in left order, the key included at its
// left position, then the right columns other than the key. Labels present on both sides (other than the key)
// get suffixes[0] on the left copy and suffixes[1] on the right copy. Rows come out
// in left order; a left row matching several right rows is repeated once per match,
// in right order.
func InnerJoin(left, right *Frame, on string, suffixes [2]string) (*Frame, error) {
	lk, ok := left.index[on]
	if !ok {
		return nil, fmt.Errorf("left: %w: %q", ErrColumnNotFound, on)
	}
	rk, ok := right.index[on]
	if !ok {
		return nil, fmt.Errorf("right: %w: %q", ErrColumnNotFound, on)
	}

	var columns []string
	for _, c := range left.columns {
		if c != on && right.Has(c) {
			c += suffixes[0]
		}
		columns = append(columns, c)
	}
	var rightCols []int
	for j, c := range right.columns {
		if j == rk {
			continue
		}
		if left.Has(c) {
			c += suffixes[1]
		}
		columns = append(columns, c)
		rightCols = append(rightCols, j)
	}

	matches := make(map[string][]int, len(right.records))
	for i, rec := range right.records {
		k := normalizeKey(rec[rk])
		matches[k] = append(matches[k], i)
	}

	var records [][]string
	for _, lrec := range left.records {
		for _, ri := range matches[normalizeKey(lrec[lk])] {
			rrec := right.records[ri]
			row := make([]string, 0, len(columns))
			row = append(row, lrec...)
			for _, j := range rightCols {
				row = append(row, rrec[j])
			}
			records = append(records, row)
		}
	}

	return New(columns, records)
}

// normalizeKey makes "12", " 12" and "12.0" join to each other.
func normalizeKey(s string) string {
	s = strings.TrimSpace(s)
	if v, err := strconv.ParseFloat(s, 64); err == nil && v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}
	return s
}
