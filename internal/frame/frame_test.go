package frame

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFrame(t *testing.T, columns []string, records ...[]string) *Frame {
	t.Helper()
	f, err := New(columns, records)
	require.NoError(t, err)
	return f
}

func TestNew_Validation(t *testing.T) {
	_, err := New([]string{"a", "a"}, nil)
	assert.Error(t, err)

	_, err = New([]string{"a", "b"}, [][]string{{"1"}})
	assert.Error(t, err)
}

func TestFloat(t *testing.T) {
	f := mustFrame(t, []string{"position", "median_score"},
		[]string{"1", "0.5"},
		[]string{"2", ""},
		[]string{"3", "NA"},
		[]string{"4", "-1.25"},
	)

	got, err := f.Float("median_score")
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, 0.5, got[0])
	assert.True(t, math.IsNaN(got[1]))
	assert.True(t, math.IsNaN(got[2]))
	assert.Equal(t, -1.25, got[3])

	_, err = f.Float("missing")
	assert.True(t, errors.Is(err, ErrColumnNotFound))
}

func TestFloat_NonNumeric(t *testing.T) {
	f := mustFrame(t, []string{"x"}, []string{"abc"})
	_, err := f.Float("x")
	assert.Error(t, err)
}

func TestRange(t *testing.T) {
	f := mustFrame(t, []string{"position", "wt_aa", "A", "C", "D", "Y", "median_score"})

	got, err := f.Range("A", "Y")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "D", "Y"}, got)

	got, err = f.Range("Y", "A")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = f.Range("A", "Z")
	assert.True(t, errors.Is(err, ErrColumnNotFound))
}

func TestWithColumn(t *testing.T) {
	f := mustFrame(t, []string{"a"}, []string{"1"}, []string{"2"})

	g, err := f.WithColumn("color", []string{"gray", "green"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "color"}, g.Columns())
	assert.False(t, f.Has("color"), "original frame must not change")

	h, err := g.WithColumn("color", []string{"blue", "blue"})
	require.NoError(t, err)
	colors, err := h.Strings("color")
	require.NoError(t, err)
	assert.Equal(t, []string{"blue", "blue"}, colors)

	_, err = f.WithColumn("short", []string{"x"})
	assert.Error(t, err)
}

func TestInnerJoin_SharedPositions(t *testing.T) {
	a := mustFrame(t, []string{"position", "median_score"},
		[]string{"1", "0.1"}, []string{"2", "-0.2"}, []string{"3", "0.3"})
	b := mustFrame(t, []string{"position", "median_score"},
		[]string{"2", "0.05"}, []string{"3", "-0.1"}, []string{"4", "0.2"})

	m, err := InnerJoin(a, b, "position", [2]string{"_1", "_2"})
	require.NoError(t, err)

	assert.Equal(t, []string{"position", "median_score_1", "median_score_2"}, m.Columns())
	require.Equal(t, 2, m.Len())

	pos, _ := m.Strings("position")
	assert.Equal(t, []string{"2", "3"}, pos)
	x, _ := m.Float("median_score_1")
	y, _ := m.Float("median_score_2")
	assert.Equal(t, []float64{-0.2, 0.3}, x)
	assert.Equal(t, []float64{0.05, -0.1}, y)
}

func TestInnerJoin_Suffixes(t *testing.T) {
	a := mustFrame(t, []string{"position", "site_1", "only_left"}, []string{"1", "yes", "l"})
	b := mustFrame(t, []string{"site_1", "position", "only_right"}, []string{"no", "1", "r"})

	m, err := InnerJoin(a, b, "position", [2]string{"_1", "_2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"position", "site_1_1", "only_left", "site_1_2", "only_right"}, m.Columns())

	v, err := m.Cell(0, "site_1_2")
	require.NoError(t, err)
	assert.Equal(t, "no", v)
}

func TestInnerJoin_KeyKeepsLeftPosition(t *testing.T) {
	a := mustFrame(t, []string{"wt_aa", "position", "v"}, []string{"M", "1", "a"})
	b := mustFrame(t, []string{"v", "position", "w"}, []string{"b", "1", "c"})

	m, err := InnerJoin(a, b, "position", [2]string{"_1", "_2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"wt_aa", "position", "v_1", "v_2", "w"}, m.Columns())
	assert.Equal(t, []string{"M", "1", "a", "b", "c"}, m.Row(0))
}

func TestInnerJoin_DuplicateKeys(t *testing.T) {
	a := mustFrame(t, []string{"position", "v"}, []string{"1", "a1"}, []string{"1", "a2"})
	b := mustFrame(t, []string{"position", "v"}, []string{"1", "b1"}, []string{"1", "b2"})

	m, err := InnerJoin(a, b, "position", [2]string{"_1", "_2"})
	require.NoError(t, err)
	require.Equal(t, 4, m.Len())

	left, _ := m.Strings("v_1")
	right, _ := m.Strings("v_2")
	assert.Equal(t, []string{"a1", "a1", "a2", "a2"}, left)
	assert.Equal(t, []string{"b1", "b2", "b1", "b2"}, right)
}

func TestInnerJoin_NormalizesKeys(t *testing.T) {
	a := mustFrame(t, []string{"position"}, []string{"12"})
	b := mustFrame(t, []string{"position"}, []string{"12.0"})

	m, err := InnerJoin(a, b, "position", [2]string{"_1", "_2"})
	require.NoError(t, err)
	assert.Equal(t, 1, m.Len())
}

func TestInnerJoin_MissingKey(t *testing.T) {
	a := mustFrame(t, []string{"position"})
	b := mustFrame(t, []string{"pos"})

	_, err := InnerJoin(a, b, "position", [2]string{"_1", "_2"})
	assert.True(t, errors.Is(err, ErrColumnNotFound))
}
