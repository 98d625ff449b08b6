/*package snapshot contains the in-memory representation of a single particle
frame. A Frame is validated once on construction and treated as read-only by
every component downstream: time-series aggregation and any mutation between
frames belong to the caller.
*/
package snapshot

import (
	"fmt"
)

// Frame is one snapshot of a particle system. X and V are n×d position and
// velocity arrays with d in {2, 3}. Type optionally labels each particle
// (e.g. "fluid", "solid"); it may be nil when a simulation has a single
// species.
type Frame struct {
	X, V [][]float64
	Type []string

	n, dim int
}

// NewFrame validates x and v and wraps them in a Frame. The arrays are not
// copied: the caller must not mutate them while the Frame is in use.
func NewFrame(x, v [][]float64, types []string) (*Frame, error) {
	if len(x) == 0 {
		return nil, fmt.Errorf("Cannot create a frame with zero particles.")
	}
	if len(x) != len(v) {
		return nil, fmt.Errorf("Frame has %d positions but %d velocities.",
			len(x), len(v))
	}
	if types != nil && len(types) != len(x) {
		return nil, fmt.Errorf("Frame has %d positions but %d type labels.",
			len(x), len(types))
	}

	dim := len(x[0])
	if dim != 2 && dim != 3 {
		return nil, fmt.Errorf("Frame dimension is %d, but must be 2 or 3.",
			dim)
	}
	for i := range x {
		if len(x[i]) != dim {
			return nil, fmt.Errorf("Position %d has dimension %d, but the "+
				"frame has dimension %d.", i, len(x[i]), dim)
		}
		if len(v[i]) != dim {
			return nil, fmt.Errorf("Velocity %d has dimension %d, but the "+
				"frame has dimension %d.", i, len(v[i]), dim)
		}
	}

	return &Frame{X: x, V: v, Type: types, n: len(x), dim: dim}, nil
}

// Len returns the number of particles in the frame.
func (fr *Frame) Len() int { return fr.n }

// Dim returns the spatial dimension of the frame.
func (fr *Frame) Dim() int { return fr.dim }

// Select returns the indices of the particles whose type label equals name.
// A Frame without labels matches nothing.
func (fr *Frame) Select(name string) []int {
	idx := []int{}
	for i := range fr.Type {
		if fr.Type[i] == name { idx = append(idx, i) }
	}
	return idx
}
