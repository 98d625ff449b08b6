/*package neighbor constructs per-particle neighbor lists within a fixed
cutoff. A List is valid for the positions it was built from and becomes stale
once any particle moves by more than half the cutoff, at which point it must
be rebuilt through a Builder.

Tree-based search is deliberately not offered: the library targets modest
particle counts per frame and a cell list is already linear in n.
*/
package neighbor

import (
	"fmt"
	"math"
	"sort"
)

// List maps a particle index to the ordered indices of its neighbors within
// the build cutoff. Lists never contain self-entries and are sorted in
// ascending index order.
type List [][]int

// Builder constructs neighbor lists from particle positions. Build fixes the
// cutoff; Update reuses it to refresh a previously built adjacency for new
// positions. Implementations are free to reuse the storage in prev.
type Builder interface {
	Build(x [][]float64, cutoff float64) (List, error)
	Update(x [][]float64, prev List) (List, error)
}

// checkPositions validates an n×d position array with d in {2, 3}.
func checkPositions(x [][]float64) (dim int, err error) {
	if len(x) == 0 {
		return 0, fmt.Errorf("Cannot build a neighbor list from zero particles.")
	}
	dim = len(x[0])
	if dim != 2 && dim != 3 {
		return 0, fmt.Errorf("Position dimension is %d, but must be 2 or 3.", dim)
	}
	for i := range x {
		if len(x[i]) != dim {
			return 0, fmt.Errorf("Position %d has dimension %d, but position "+
				"0 has dimension %d.", i, len(x[i]), dim)
		}
	}
	return dim, nil
}

func dist2(xi, xj []float64) float64 {
	sum := 0.0
	for k := range xi {
		dx := xi[k] - xj[k]
		sum += dx * dx
	}
	return sum
}

// BruteForce is a Builder that compares every particle pair. It is O(n^2) and
// exists as the reference implementation that CellList is tested against.
type BruteForce struct {
	cutoff float64
}

func (b *BruteForce) Build(x [][]float64, cutoff float64) (List, error) {
	if cutoff <= 0 {
		return nil, fmt.Errorf("Neighbor cutoff is %g, but must be positive.",
			cutoff)
	}
	if _, err := checkPositions(x); err != nil { return nil, err }

	b.cutoff = cutoff
	r2 := cutoff * cutoff
	nb := make(List, len(x))
	for i := range x {
		for j := range x {
			if i == j { continue }
			if dist2(x[i], x[j]) <= r2 {
				nb[i] = append(nb[i], j)
			}
		}
	}
	return nb, nil
}

func (b *BruteForce) Update(x [][]float64, prev List) (List, error) {
	if b.cutoff == 0 {
		return nil, fmt.Errorf("Update() called on a BruteForce builder " +
			"before Build().")
	}
	return b.Build(x, b.cutoff)
}

// CellList is a Builder that bins particles into cubic cells with side equal
// to the cutoff and only compares particles in adjacent cells.
type CellList struct {
	cutoff float64
}

func (c *CellList) Build(x [][]float64, cutoff float64) (List, error) {
	if cutoff <= 0 {
		return nil, fmt.Errorf("Neighbor cutoff is %g, but must be positive.",
			cutoff)
	}
	dim, err := checkPositions(x)
	if err != nil { return nil, err }
	c.cutoff = cutoff

	// Bounding box and cell counts per axis.
	origin, span := make([]float64, dim), make([]int, dim)
	for k := 0; k < dim; k++ {
		lo, hi := x[0][k], x[0][k]
		for i := range x {
			if x[i][k] < lo { lo = x[i][k] }
			if x[i][k] > hi { hi = x[i][k] }
		}
		origin[k] = lo
		span[k] = int(math.Floor((hi-lo)/cutoff)) + 1
	}

	cellIdx := func(xi []float64) int {
		idx := 0
		for k := 0; k < dim; k++ {
			ck := int(math.Floor((xi[k] - origin[k]) / cutoff))
			if ck < 0 { ck = 0 }
			if ck >= span[k] { ck = span[k] - 1 }
			idx = idx*span[k] + ck
		}
		return idx
	}

	nCells := 1
	for k := 0; k < dim; k++ { nCells *= span[k] }
	cells := make([][]int, nCells)
	for i := range x {
		ci := cellIdx(x[i])
		cells[ci] = append(cells[ci], i)
	}

	// Offsets of the 3^dim adjacent cells.
	nOff := 1
	for k := 0; k < dim; k++ { nOff *= 3 }

	r2 := cutoff * cutoff
	sub := make([]int, dim)
	nb := make(List, len(x))
	for i := range x {
		for k := 0; k < dim; k++ {
			sub[k] = int(math.Floor((x[i][k] - origin[k]) / cutoff))
			if sub[k] < 0 { sub[k] = 0 }
			if sub[k] >= span[k] { sub[k] = span[k] - 1 }
		}

		for o := 0; o < nOff; o++ {
			idx, rem, ok := 0, o, true
			for k := 0; k < dim; k++ {
				ck := sub[k] + rem%3 - 1
				rem /= 3
				if ck < 0 || ck >= span[k] {
					ok = false
					break
				}
				idx = idx*span[k] + ck
			}
			if !ok { continue }

			for _, j := range cells[idx] {
				if j == i { continue }
				if dist2(x[i], x[j]) <= r2 {
					nb[i] = append(nb[i], j)
				}
			}
		}

		sort.Ints(nb[i])
	}

	return nb, nil
}

func (c *CellList) Update(x [][]float64, prev List) (List, error) {
	if c.cutoff == 0 {
		return nil, fmt.Errorf("Update() called on a CellList builder " +
			"before Build().")
	}
	return c.Build(x, c.cutoff)
}
