package grid

/* pad.go extends a grid with translated periodic mirror images so that
boundary-adjacent interpolation and force evaluation see the correct
neighbor images across each periodic seam. */

import (
	"fmt"
	"math"
)

// Pad returns a copy of g extended along every axis whose periodic flag is
// set. For a periodic axis, the samples within cutoff of each edge are
// translated across the domain by the axis span plus the seam-adjacent
// spacing and concatenated as prefix and suffix; non-periodic axes are left
// untouched.
//
// cutoffs may be nil, in which case every periodic axis uses the default
// spacing*pointCount^(1/d)/4. A per-axis cutoff of zero also selects the
// default. A cutoff that covers more than one side's span simply mirrors
// the full axis; that is not an error.
//
// The second return value gives the number of prefix images added per axis,
// which lets callers map padded subscripts back to the original grid.
func Pad(g *Grid, periodic []bool, cutoffs []float64) (*Grid, []int, error) {
	dim := g.Dim()
	if len(periodic) != dim {
		return nil, nil, fmt.Errorf("Grid has %d axes, but %d periodic flags "+
			"were given.", dim, len(periodic))
	}
	if cutoffs != nil && len(cutoffs) != dim {
		return nil, nil, fmt.Errorf("Grid has %d axes, but %d cutoffs were "+
			"given.", dim, len(cutoffs))
	}

	// Defaults are computed from the input grid, not from partially padded
	// intermediates.
	c := make([]float64, dim)
	scale := math.Pow(float64(g.Len()), 1/float64(dim))
	for a := 0; a < dim; a++ {
		if cutoffs != nil && cutoffs[a] > 0 {
			c[a] = cutoffs[a]
		} else {
			c[a] = g.Spacing(a) * scale / 4
		}
	}

	pre := make([]int, dim)
	out := g
	for a := 0; a < dim; a++ {
		if !periodic[a] { continue }

		mPre, mSuf := mirrorCounts(g.Coords[a], c[a])
		out = padAxis(out, a, mPre, mSuf)
		pre[a] = mPre
	}

	return out, pre, nil
}

// mirrorCounts returns how many samples to mirror from each end of an axis:
// mPre right-end samples become the prefix and mSuf left-end samples become
// the suffix. A sample is mirrored when its cumulative distance from its
// edge is within the cutoff, so each side mirrors at least the edge sample
// itself. Counts are clamped to the axis length.
func mirrorCounts(coords []float64, cutoff float64) (mPre, mSuf int) {
	n := len(coords)
	for k := 0; k < n; k++ {
		if coords[n-1]-coords[n-1-k] <= cutoff { mPre = k + 1 }
		if coords[k]-coords[0] <= cutoff { mSuf = k + 1 }
	}
	return mPre, mSuf
}

// padAxis concatenates mPre prefix and mSuf suffix mirror images along one
// axis of g and returns the extended grid.
func padAxis(g *Grid, axis, mPre, mSuf int) *Grid {
	dim := g.Dim()
	src := g.Coords[axis]
	n := len(src)

	// Seam-adjacent spacings. Images are anchored to the opposite edge so
	// the seam coordinates are exact, not accumulated through the span.
	dLeft := src[1] - src[0]
	dRight := src[n-1] - src[n-2]

	coords := make([][]float64, dim)
	for a := range coords {
		if a != axis {
			coords[a] = g.Coords[a]
			continue
		}
		ext := make([]float64, mPre+n+mSuf)
		for k := 0; k < mPre; k++ {
			// Image of src[n-mPre+k], ending exactly at src[0]-dLeft.
			ext[k] = src[0] - dLeft - (src[n-1] - src[n-mPre+k])
		}
		copy(ext[mPre:], src)
		for k := 0; k < mSuf; k++ {
			// Image of src[k], starting exactly at src[n-1]+dRight.
			ext[mPre+n+k] = src[n-1] + dRight + (src[k] - src[0])
		}
		coords[a] = ext
	}

	outShape := make([]int, dim)
	outLen := 1
	for a := range coords {
		outShape[a] = len(coords[a])
		outLen *= outShape[a]
	}

	vals := make([]float64, outLen)
	sub := make([]int, dim)
	for idx := 0; idx < outLen; idx++ {
		// Mixed-radix decomposition of idx over the padded shape.
		rem := idx
		for a := dim - 1; a >= 0; a-- {
			sub[a] = rem % outShape[a]
			rem /= outShape[a]
		}

		// Wrap the padded subscript back into the source range.
		ia := sub[axis]
		switch {
		case ia < mPre:
			sub[axis] = n - mPre + ia
		case ia < mPre+n:
			sub[axis] = ia - mPre
		default:
			sub[axis] = ia - mPre - n
		}

		vals[idx] = g.Vals[g.Index(sub...)]
	}

	out, err := New(coords, vals)
	if err != nil {
		// New can only fail here through a bug in the padding math.
		panic(fmt.Sprintf("Internal error: padded grid is invalid: %v", err))
	}
	return out
}
