/*package stress derives a discretized stress-like tensor field from a
gridded vector force field by finite-volume face averaging.

For each cell, the β-normal face is the quad spanned by the cell's +1
neighbors along the two transverse axes. Entry (β, α) of the cell's tensor
is the mean of force component α over that face's four vertices, divided by
the face area. The result approximates a Cauchy stress but is not guaranteed
symmetric; treat it as a diagnostic field, not an exact continuum tensor.
*/
package stress

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ovitrac/Pizza3-sub001/lib/parallel"
)

// uniformityTol is the relative tolerance on the spread of per-axis sample
// spacings. The face-averaging geometry assumes uniform spacing; grids that
// fail this check are rejected up front.
const uniformityTol = 1e-8

// Field is a per-cell flattened 3×3 tensor field on a rectilinear grid.
// Cells are stored in C order and each cell holds 9 entries indexed as
// beta*3 + alpha, where beta is the face normal axis and alpha the force
// component. Cells whose β-normal face falls outside the grid hold NaN in
// the three affected slots.
type Field struct {
	Vals  []float64
	shape [3]int
}

// Shape returns the cell counts along each axis.
func (f *Field) Shape() []int { return []int{f.shape[0], f.shape[1], f.shape[2]} }

// At returns the (beta, alpha) tensor entry of cell (i, j, k).
func (f *Field) At(i, j, k, beta, alpha int) float64 {
	cell := (i*f.shape[1]+j)*f.shape[2] + k
	return f.Vals[cell*9+beta*3+alpha]
}

// Crop returns the sub-field of shape n starting at cell lo. It is the
// inverse of periodic padding: reconstructing on a padded grid and cropping
// by the prefix counts yields the tensor field of the original region.
func (f *Field) Crop(lo, n []int) (*Field, error) {
	if len(lo) != 3 || len(n) != 3 {
		return nil, fmt.Errorf("Crop bounds must have 3 axes, but %d and "+
			"%d were given.", len(lo), len(n))
	}
	for a := 0; a < 3; a++ {
		if lo[a] < 0 || n[a] < 1 || lo[a]+n[a] > f.shape[a] {
			return nil, fmt.Errorf("Crop range [%d, %d) on axis %d is "+
				"outside the field's %d cells.", lo[a], lo[a]+n[a], a,
				f.shape[a])
		}
	}

	out := &Field{
		Vals:  make([]float64, n[0]*n[1]*n[2]*9),
		shape: [3]int{n[0], n[1], n[2]},
	}
	for i := 0; i < n[0]; i++ {
		for j := 0; j < n[1]; j++ {
			for k := 0; k < n[2]; k++ {
				src := ((lo[0]+i)*f.shape[1]+lo[1]+j)*f.shape[2] + lo[2] + k
				dst := (i*n[1]+j)*n[2] + k
				copy(out.Vals[dst*9:dst*9+9], f.Vals[src*9:src*9+9])
			}
		}
	}
	return out, nil
}

// checkAxis validates that one coordinate axis is strictly increasing with
// spacing uniform within tolerance, and returns its spacing.
func checkAxis(axis int, coords []float64) (float64, error) {
	n := len(coords)
	if n < 2 {
		return 0, fmt.Errorf("Axis %d has %d samples, but stress "+
			"reconstruction needs at least 2 per axis.", axis, n)
	}

	diffs := make([]float64, n-1)
	for i := range diffs {
		diffs[i] = coords[i+1] - coords[i]
		if diffs[i] <= 0 {
			return 0, fmt.Errorf("Axis %d is not strictly increasing at "+
				"sample %d.", axis, i+1)
		}
	}

	mean := (coords[n-1] - coords[0]) / float64(n-1)
	if len(diffs) > 1 {
		if sd := stat.StdDev(diffs, nil); sd > uniformityTol*mean {
			return 0, fmt.Errorf("Axis %d spacing is non-uniform: standard "+
				"deviation %g exceeds tolerance %g.",
				axis, sd, uniformityTol*mean)
		}
	}

	return mean, nil
}

// Reconstructor computes stress fields. The zero value is ready to use.
type Reconstructor struct {
	// Workers caps the number of goroutines. Zero or negative selects one
	// per CPU.
	Workers int
}

// Reconstruct computes the stress tensor field from force components fx, fy,
// fz sampled on the grid described by the three coordinate vectors in
// coords. The force arrays are in C order (last axis fastest) and NaN force
// samples are ignored when averaging over a face's vertices.
func Reconstruct(coords [][]float64, fx, fy, fz []float64) (*Field, error) {
	return (&Reconstructor{}).Reconstruct(coords, fx, fy, fz)
}

// Reconstruct is the worker-limited form of the package-level Reconstruct.
func (re *Reconstructor) Reconstruct(
	coords [][]float64, fx, fy, fz []float64,
) (*Field, error) {
	if len(coords) != 3 {
		return nil, fmt.Errorf("Stress reconstruction needs 3 coordinate "+
			"axes, but %d were given.", len(coords))
	}

	var shape [3]int
	n := 1
	for a := 0; a < 3; a++ {
		if _, err := checkAxis(a, coords[a]); err != nil { return nil, err }
		shape[a] = len(coords[a])
		n *= shape[a]
	}
	for _, f := range [][]float64{fx, fy, fz} {
		if len(f) != n {
			return nil, fmt.Errorf("Grid shape implies %d samples, but a "+
				"force component array has length %d.", n, len(f))
		}
	}

	field := &Field{Vals: make([]float64, n*9), shape: shape}
	field.reconstruct(coords, [3][]float64{fx, fy, fz}, re.Workers)
	return field, nil
}

// faceVertices lists, for each face normal, the two transverse axes whose
// +1 neighbors span the face.
var faceVertices = [3][2]int{
	{1, 2}, // x-normal face spans y and z
	{0, 2}, // y-normal face spans x and z
	{0, 1}, // z-normal face spans x and y
}

func (f *Field) reconstruct(
	coords [][]float64, force [3][]float64, workers int,
) {
	ny, nz := f.shape[1], f.shape[2]
	nCells := f.shape[0] * ny * nz

	parallel.Do(nCells, workers, func(lo, hi int) {
		var sub, step [3]int
		for cell := lo; cell < hi; cell++ {
			sub[2] = cell % nz
			sub[1] = (cell / nz) % ny
			sub[0] = cell / (nz * ny)

			// Local spacing, clamped at the last index.
			var d [3]float64
			for a := 0; a < 3; a++ {
				i, c := sub[a], coords[a]
				if i == len(c)-1 { i-- }
				d[a] = c[i+1] - c[i]
			}
			area := [3]float64{d[1] * d[2], d[0] * d[2], d[0] * d[1]}

			for beta := 0; beta < 3; beta++ {
				t1, t2 := faceVertices[beta][0], faceVertices[beta][1]
				out := f.Vals[cell*9+beta*3:]

				if sub[t1]+1 >= f.shape[t1] || sub[t2]+1 >= f.shape[t2] {
					out[0], out[1], out[2] = math.NaN(), math.NaN(), math.NaN()
					continue
				}

				for alpha := 0; alpha < 3; alpha++ {
					sum, count := 0.0, 0
					for v := 0; v < 4; v++ {
						step = sub
						step[t1] += v % 2
						step[t2] += v / 2
						vi := (step[0]*ny+step[1])*nz + step[2]
						if x := force[alpha][vi]; !math.IsNaN(x) {
							sum += x
							count++
						}
					}
					if count == 0 {
						out[alpha] = math.NaN()
					} else {
						out[alpha] = sum / float64(count) / area[beta]
					}
				}
			}
		}
	})
}
