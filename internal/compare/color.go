package compare

import (
	"errors"
	"fmt"

	"github.com/inodb/vibe-dms/internal/dataset"
	"github.com/inodb/vibe-dms/internal/frame"
)

// DefaultCategory is given to rows that match no selected flag.
const DefaultCategory = "gray"

// MaxFlags is the number of flag selections that take effect. Further
// selections are ignored.
const MaxFlags = 4

// ColorColumn is the derived category column of a merged view.
const ColorColumn = "color"

// Flag is a selectable flag column and the category it assigns.
type Flag struct {
	Column   string `json:"column"`
	Category string `json:"category"`
}

// Flags lists the selectable flag columns in display order.
var Flags = []Flag{
	{Column: "site_1", Category: "green"},
	{Column: "site_2", Category: "blue"},
	{Column: "ab8307_site", Category: "violet"},
	{Column: "ab8314_site", Category: "darkbrown"},
	{Column: "c_c", Category: "orange"},
}

// MarkerColors maps categories to marker colors where the category name is
// not itself a browser color.
var MarkerColors = map[string]string{
	"darkbrown": "#654321",
}

// CategoryOf returns the category a flag column assigns, or DefaultCategory
// for a column that is not in Flags.
func CategoryOf(column string) string {
	for _, f := range Flags {
		if f.Column == column {
			return f.Category
		}
	}
	return DefaultCategory
}

// Truncate returns at most the first MaxFlags selections.
func Truncate(flags []string) []string {
	if len(flags) > MaxFlags {
		return flags[:MaxFlags]
	}
	return flags
}

// AssignColors returns merged with a ColorColumn. Every row starts as
// DefaultCategory; then, for each selected flag in order, rows whose first-table
// copy of the flag equals "yes" take that flag's category. Later flags win.
// left is the first table of the join.
func AssignColors(merged, left *frame.Frame, flags []string) (*frame.Frame, error) {
	colors := make([]string, merged.Len())
	for i := range colors {
		colors[i] = DefaultCategory
	}

	for _, flag := range Truncate(flags) {
		category := CategoryOf(flag)
		values, err := merged.Strings(flag + Suffix1)
		if errors.Is(err, frame.ErrColumnNotFound) && left.Has(flag) {
			// Only the first table has the flag, so the join kept its name.
			values, err = merged.Strings(flag)
		}
		if err != nil {
			return nil, fmt.Errorf("flag %q: %w", flag, err)
		}
		for i, v := range values {
			if v == dataset.FlagYes {
				colors[i] = category
			}
		}
	}

	return merged.WithColumn(ColorColumn, colors)
}
