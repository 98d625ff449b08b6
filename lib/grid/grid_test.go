package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func uniform(x0, dx float64, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs { xs[i] = x0 + dx*float64(i) }
	return xs
}

func ramp(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs { xs[i] = float64(i) }
	return xs
}

func TestNewErrors(t *testing.T) {
	x, y := uniform(0, 1, 3), uniform(0, 1, 4)

	_, err := New([][]float64{x, y}, make([]float64, 12))
	assert.NoError(t, err, "valid 2D grid")

	_, err = New([][]float64{}, []float64{})
	assert.Error(t, err, "zero axes")

	_, err = New([][]float64{x, y, x, y}, make([]float64, 144))
	assert.Error(t, err, "too many axes")

	_, err = New([][]float64{x, y}, make([]float64, 11))
	assert.Error(t, err, "value count mismatch")

	_, err = New([][]float64{{0}, y}, make([]float64, 4))
	assert.Error(t, err, "single-sample axis")

	_, err = New([][]float64{{0, 1, 1}, y}, make([]float64, 12))
	assert.Error(t, err, "non-increasing axis")
}

func TestIndexing(t *testing.T) {
	g, err := New(
		[][]float64{uniform(0, 1, 2), uniform(0, 1, 3), uniform(0, 1, 4)},
		ramp(24),
	)
	assert.NoError(t, err)

	assert.Equal(t, []int{2, 3, 4}, g.Shape())
	assert.Equal(t, 24, g.Len())
	assert.Equal(t, 3, g.Dim())

	// C order: the last axis varies fastest.
	assert.Equal(t, 0, g.Index(0, 0, 0))
	assert.Equal(t, 1, g.Index(0, 0, 1))
	assert.Equal(t, 4, g.Index(0, 1, 0))
	assert.Equal(t, 12, g.Index(1, 0, 0))
	assert.Equal(t, 23, g.Index(1, 2, 3))

	sub := make([]int, 3)
	for idx := 0; idx < g.Len(); idx++ {
		g.Unindex(idx, sub)
		assert.Equal(t, idx, g.Index(sub...), "Unindex/Index round trip")
		assert.Equal(t, float64(idx), g.At(sub...))
	}
}

func TestPoints(t *testing.T) {
	g, err := New(
		[][]float64{{0, 1}, {10, 20, 30}},
		ramp(6),
	)
	assert.NoError(t, err)

	pts := g.Points()
	assert.Equal(t, []float64{0, 0, 0, 1, 1, 1}, pts[0], "axis 0 coordinates")
	assert.Equal(t, []float64{10, 20, 30, 10, 20, 30}, pts[1],
		"axis 1 coordinates")
}

func TestSpacing(t *testing.T) {
	g, err := New(
		[][]float64{uniform(1, 0.5, 5), uniform(0, 2, 3)},
		make([]float64, 15),
	)
	assert.NoError(t, err)
	assert.InDelta(t, 0.5, g.Spacing(0), 1e-14)
	assert.InDelta(t, 2.0, g.Spacing(1), 1e-14)
}
