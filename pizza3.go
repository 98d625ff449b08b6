/*package pizza3 post-processes particle simulation frames into continuum
fields. The library is organized as a chain of per-frame stages: neighbor
search (lib/neighbor), pairwise dissipative forces with optional virial
stress (lib/forcefield), kernel-weighted scattering onto rectilinear grids
(lib/scatter and lib/grid), periodic mirror padding (lib/grid), and
finite-volume stress reconstruction (lib/stress).

Each stage can be called on its own; the Pipeline type in this package wires
them together for the common one-frame analysis.
*/
package pizza3

import (
	"fmt"

	"github.com/ovitrac/Pizza3-sub001/lib/forcefield"
	"github.com/ovitrac/Pizza3-sub001/lib/grid"
	"github.com/ovitrac/Pizza3-sub001/lib/neighbor"
	"github.com/ovitrac/Pizza3-sub001/lib/scatter"
	"github.com/ovitrac/Pizza3-sub001/lib/snapshot"
	"github.com/ovitrac/Pizza3-sub001/lib/stress"
)

// Pipeline chains the per-frame analysis stages. Force is required; the
// other fields select optional behavior and may be left zero.
type Pipeline struct {
	// Force holds the physical parameters of the dissipative force and the
	// smoothing kernel shared by all stages.
	Force *forcefield.Config
	// Builder supplies neighbor lists. A nil Builder selects a cell list.
	Builder neighbor.Builder
	// Periodic flags the axes that wrap around. A nil Periodic skips the
	// padding stage entirely, so stress cells on the upper boundary are
	// left NaN.
	Periodic []bool
	// Cutoffs is the per-axis padding depth. Nil or non-positive entries
	// fall back to the padder's default depth.
	Cutoffs []float64
}

// Forces builds a neighbor list with the kernel's smoothing length as the
// cutoff and computes the per-particle dissipative forces of fr.
func (p *Pipeline) Forces(fr *snapshot.Frame) (*forcefield.Result, error) {
	if p.Force == nil {
		return nil, fmt.Errorf("The pipeline has no force configuration.")
	}

	b := p.Builder
	if b == nil { b = &neighbor.CellList{} }

	nb, err := b.Build(fr.X, p.Force.Kernel.H)
	if err != nil { return nil, err }
	return forcefield.Compute(fr.X, fr.V, nb, p.Force)
}

// ForceField scatters the per-particle force vectors of res onto the points
// of g and returns one gridded field per force component. The per-particle
// volume is Mass / Rho0.
func (p *Pipeline) ForceField(
	fr *snapshot.Frame, res *forcefield.Result, g *grid.Grid,
) ([]*grid.Grid, error) {
	if p.Force == nil {
		return nil, fmt.Errorf("The pipeline has no force configuration.")
	}

	dim := fr.Dim()
	if g.Dim() != dim {
		return nil, fmt.Errorf("The frame has dimension %d, but the grid "+
			"has dimension %d.", dim, g.Dim())
	}
	if len(res.F) != fr.Len() {
		return nil, fmt.Errorf("The frame has %d particles, but the force "+
			"result has %d.", fr.Len(), len(res.F))
	}

	vals := make([][]float64, fr.Len())
	for i := range vals {
		row := make([]float64, dim)
		for k := 0; k < dim; k++ {
			row[k] = res.F[i] * res.N[i][k]
		}
		vals[i] = row
	}

	vol := make([]float64, fr.Len())
	v := p.Force.Mass / p.Force.Rho0
	for i := range vol { vol[i] = v }

	in, err := scatter.New(fr.X, vals, vol, p.Force.Kernel.W)
	if err != nil { return nil, err }
	in.Workers = p.Force.Workers

	ch, err := in.Eval(g.Points())
	if err != nil { return nil, err }

	out := make([]*grid.Grid, dim)
	for k := range out {
		if out[k], err = grid.New(g.Coords, ch[k]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// StressField runs the full chain on a 3D frame: forces, scattering onto g,
// optional periodic padding, and stress reconstruction. When padding is
// active the reconstruction runs on the padded grid and the result is
// cropped back to the cells of g, so boundary cells see their periodic
// images instead of NaN faces.
func (p *Pipeline) StressField(
	fr *snapshot.Frame, g *grid.Grid,
) (*stress.Field, error) {
	if fr.Dim() != 3 {
		return nil, fmt.Errorf("Stress reconstruction needs a 3D frame, "+
			"but the frame has dimension %d.", fr.Dim())
	}

	res, err := p.Forces(fr)
	if err != nil { return nil, err }
	comps, err := p.ForceField(fr, res, g)
	if err != nil { return nil, err }

	if p.Periodic == nil {
		return stress.Reconstruct(
			g.Coords, comps[0].Vals, comps[1].Vals, comps[2].Vals,
		)
	}

	padded := make([]*grid.Grid, 3)
	var pre []int
	for k := range comps {
		if padded[k], pre, err = grid.Pad(
			comps[k], p.Periodic, p.Cutoffs,
		); err != nil {
			return nil, err
		}
	}

	f, err := stress.Reconstruct(
		padded[0].Coords, padded[0].Vals, padded[1].Vals, padded[2].Vals,
	)
	if err != nil { return nil, err }
	return f.Crop(pre, g.Shape())
}
