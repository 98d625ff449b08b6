/*package scatter reconstructs continuous fields at arbitrary query points
from kernel-weighted particle samples. The reconstruction at a query point q
is the direct sum over centers i of y_i * V_i * W(|q - x_i|), evaluated
independently per channel.

The summation is intentionally unaccelerated: the number of centers is
typically modest compared to a dense query grid, and W's compact support
already discards distant centers.
*/
package scatter

import (
	"fmt"
	"math"

	"github.com/ovitrac/Pizza3-sub001/lib/parallel"
)

// Interpolator scatters weighted particle samples onto query points. It is
// bound to one set of centers, sample values, and volumes at construction
// and is safe for concurrent use afterwards.
type Interpolator struct {
	centers [][]float64
	vals    [][]float64
	vol     []float64
	w       func(r float64) float64

	dim, channels int

	// Workers caps the number of goroutines used by Eval. Zero or negative
	// selects one per CPU.
	Workers int
}

// New creates an Interpolator over k centers. vals holds one row of channel
// values per center; a nil vals gives every center a uniform unit weight,
// which turns Eval into a density estimate. vol holds the per-center volume
// and defaults to 1 everywhere when nil. w is the kernel weight function.
func New(
	centers, vals [][]float64, vol []float64, w func(r float64) float64,
) (*Interpolator, error) {
	k := len(centers)
	if k == 0 {
		return nil, fmt.Errorf("Cannot interpolate from zero centers.")
	}
	if w == nil {
		return nil, fmt.Errorf("No kernel weight function was given.")
	}

	dim := len(centers[0])
	if dim != 2 && dim != 3 {
		return nil, fmt.Errorf("Center dimension is %d, but must be 2 or 3.",
			dim)
	}
	for i := range centers {
		if len(centers[i]) != dim {
			return nil, fmt.Errorf("Center %d has dimension %d, but center "+
				"0 has dimension %d.", i, len(centers[i]), dim)
		}
	}

	channels := 1
	if vals != nil {
		if len(vals) != k {
			return nil, fmt.Errorf("There are %d centers, but %d value rows.",
				k, len(vals))
		}
		channels = len(vals[0])
		if channels == 0 {
			return nil, fmt.Errorf("Value rows have zero channels.")
		}
		for i := range vals {
			if len(vals[i]) != channels {
				return nil, fmt.Errorf("Value row %d has %d channels, but "+
					"row 0 has %d.", i, len(vals[i]), channels)
			}
		}
	}

	if vol != nil && len(vol) != k {
		return nil, fmt.Errorf("There are %d centers, but %d volumes.",
			k, len(vol))
	}

	return &Interpolator{
		centers: centers, vals: vals, vol: vol, w: w,
		dim: dim, channels: channels,
	}, nil
}

// Channels returns the number of output channels per query point.
func (in *Interpolator) Channels() int { return in.channels }

// Eval reconstructs the field at the given query points. query holds one
// flat coordinate array per axis, all of equal length; grid.(*Grid).Points()
// produces exactly this layout. The result holds one array per channel,
// each of the query length.
func (in *Interpolator) Eval(query [][]float64) ([][]float64, error) {
	if len(query) != in.dim {
		return nil, fmt.Errorf("Centers have dimension %d, but %d query "+
			"coordinate arrays were given.", in.dim, len(query))
	}
	nq := len(query[0])
	for a := range query {
		if len(query[a]) != nq {
			return nil, fmt.Errorf("Query coordinate array %d has length "+
				"%d, but array 0 has length %d.", a, len(query[a]), nq)
		}
	}

	out := make([][]float64, in.channels)
	for c := range out { out[c] = make([]float64, nq) }

	parallel.Do(nq, in.Workers, func(lo, hi int) {
		q := make([]float64, in.dim)
		for j := lo; j < hi; j++ {
			for a := 0; a < in.dim; a++ { q[a] = query[a][j] }

			for i := range in.centers {
				r2 := 0.0
				for a := 0; a < in.dim; a++ {
					d := q[a] - in.centers[i][a]
					r2 += d * d
				}
				wv := in.w(math.Sqrt(r2))
				if wv == 0 { continue }

				if in.vol != nil { wv *= in.vol[i] }
				if in.vals == nil {
					out[0][j] += wv
					continue
				}
				for c := 0; c < in.channels; c++ {
					out[c][j] += in.vals[i][c] * wv
				}
			}
		}
	})

	return out, nil
}
