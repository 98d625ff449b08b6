/*package grid contains the rectilinear grid type shared by the field
reconstruction components, along with periodic padding.

A Grid stores one strictly increasing coordinate vector per axis and a flat
value array in C order: the last axis varies fastest, so the linear index of
cell (i0, i1, i2) on an n0×n1×n2 grid is (i0*n1 + i1)*n2 + i2. This is the
single storage convention of the whole library. Callers holding data with
the first axis fastest must transpose before constructing a Grid.
*/
package grid

import (
	"fmt"
)

// Grid is a rectilinear grid with one scalar value per grid node. Per-axis
// spacing is expected to be uniform except across a periodic seam; the
// components that require strict uniformity (e.g. stress reconstruction)
// validate it themselves.
type Grid struct {
	// Coords holds one strictly increasing coordinate vector per axis.
	Coords [][]float64
	// Vals holds the node values in C order (last axis fastest).
	Vals []float64
}

// New validates the coordinate vectors against the value array and wraps
// them in a Grid. The arrays are not copied.
func New(coords [][]float64, vals []float64) (*Grid, error) {
	dim := len(coords)
	if dim < 1 || dim > 3 {
		return nil, fmt.Errorf("Grid dimension is %d, but must be 1, 2, or 3.",
			dim)
	}

	n := 1
	for a := range coords {
		if len(coords[a]) < 2 {
			return nil, fmt.Errorf("Axis %d has %d samples, but grids need "+
				"at least 2 per axis.", a, len(coords[a]))
		}
		for i := 1; i < len(coords[a]); i++ {
			if coords[a][i] <= coords[a][i-1] {
				return nil, fmt.Errorf("Axis %d is not strictly increasing "+
					"at sample %d.", a, i)
			}
		}
		n *= len(coords[a])
	}

	if len(vals) != n {
		return nil, fmt.Errorf("Grid shape implies %d values, but the value "+
			"array has length %d.", n, len(vals))
	}

	return &Grid{Coords: coords, Vals: vals}, nil
}

// Dim returns the number of axes.
func (g *Grid) Dim() int { return len(g.Coords) }

// Shape returns the number of samples along each axis.
func (g *Grid) Shape() []int {
	shape := make([]int, len(g.Coords))
	for a := range g.Coords { shape[a] = len(g.Coords[a]) }
	return shape
}

// Len returns the total number of grid nodes.
func (g *Grid) Len() int {
	n := 1
	for a := range g.Coords { n *= len(g.Coords[a]) }
	return n
}

// Index returns the C-order linear index of the node with the given per-axis
// subscripts.
func (g *Grid) Index(sub ...int) int {
	idx := 0
	for a := range g.Coords {
		idx = idx*len(g.Coords[a]) + sub[a]
	}
	return idx
}

// Unindex decomposes a linear index into per-axis subscripts, writing them
// to sub and returning it.
func (g *Grid) Unindex(idx int, sub []int) []int {
	for a := len(g.Coords) - 1; a >= 0; a-- {
		n := len(g.Coords[a])
		sub[a] = idx % n
		idx /= n
	}
	return sub
}

// At returns the value at the given per-axis subscripts.
func (g *Grid) At(sub ...int) float64 { return g.Vals[g.Index(sub...)] }

// Points expands the per-axis coordinate vectors into d flat coordinate
// arrays of length Len(), one entry per grid node in C order. These are the
// query arrays expected by scatter interpolation.
func (g *Grid) Points() [][]float64 {
	dim, n := g.Dim(), g.Len()
	pts := make([][]float64, dim)
	for a := range pts { pts[a] = make([]float64, n) }

	sub := make([]int, dim)
	for idx := 0; idx < n; idx++ {
		g.Unindex(idx, sub)
		for a := 0; a < dim; a++ {
			pts[a][idx] = g.Coords[a][sub[a]]
		}
	}
	return pts
}

// Spacing returns the mean sample spacing along the given axis.
func (g *Grid) Spacing(axis int) float64 {
	c := g.Coords[axis]
	return (c[len(c)-1] - c[0]) / float64(len(c)-1)
}
