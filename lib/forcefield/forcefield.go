/*package forcefield computes pairwise dissipative (artificial viscosity)
forces and, optionally, per-particle virial stress tensors from one particle
frame and its neighbor list.

Only approaching pairs contribute: the force is a shock-only damping term and
must not act on separating particles. Numerical edge cases never abort a
frame. Near-zero separations are regularized and particles with no
approaching neighbor get a well-defined degenerate result instead of an
error.
*/
package forcefield

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/ovitrac/Pizza3-sub001/lib/kernel"
	"github.com/ovitrac/Pizza3-sub001/lib/neighbor"
	"github.com/ovitrac/Pizza3-sub001/lib/parallel"
)

// Config collects the physical parameters of the dissipative force. The
// kernel is bound once at configuration time and its gradient is the g(r)
// term of the pairwise force.
type Config struct {
	// Kernel supplies the smoothing length h, the gradient dW/dr, and the
	// support volume used to normalize virial stress.
	Kernel kernel.Kernel
	// C0 is the sound speed of the artificial viscosity model.
	C0 float64
	// Q1 is the linear artificial viscosity coefficient.
	Q1 float64
	// Rho0 is the reference density.
	Rho0 float64
	// Mass is the particle mass.
	Mass float64
	// Virial requests per-particle virial stress accumulation.
	Virial bool
	// Workers caps the number of goroutines. Zero or negative selects one
	// per CPU.
	Workers int
}

// Result holds the per-particle output of Compute. F[i] is the magnitude of
// the summed dissipative force on particle i and N[i] its unit direction.
// When F[i] = 0 no neighbor of i was approaching; N[i] then falls back to
// the raw sum of unit separation vectors, a documented non-physical default
// with no normalization guarantee.
type Result struct {
	F []float64
	N [][]float64
	// Stress is nil unless virial stress was requested; otherwise it stores
	// one flattened d×d tensor per particle.
	Stress []float64

	dim int
}

// StressAt returns a d×d matrix view of particle i's virial stress, or nil
// if stress was not requested. The view shares storage with Stress.
func (r *Result) StressAt(i int) *mat.Dense {
	if r.Stress == nil { return nil }
	dd := r.dim * r.dim
	return mat.NewDense(r.dim, r.dim, r.Stress[i*dd:(i+1)*dd])
}

// check validates the frame arrays and config before any numerical work.
func check(x, v [][]float64, nb neighbor.List, cfg *Config) error {
	n := len(x)
	if n == 0 {
		return fmt.Errorf("Cannot compute forces for zero particles.")
	}
	if len(v) != n {
		return fmt.Errorf("Frame has %d positions but %d velocities.",
			n, len(v))
	}
	if len(nb) != n {
		return fmt.Errorf("Frame has %d particles but the neighbor list "+
			"has %d entries.", n, len(nb))
	}

	k := cfg.Kernel
	if k.GradW == nil || k.H <= 0 {
		return fmt.Errorf("Config kernel is not bound: it needs a gradient " +
			"function and a positive smoothing length.")
	}
	dim := k.Dim
	for i := range x {
		if len(x[i]) != dim || len(v[i]) != dim {
			return fmt.Errorf("Particle %d has position dimension %d and "+
				"velocity dimension %d, but the kernel is bound to "+
				"dimension %d.", i, len(x[i]), len(v[i]), dim)
		}
	}
	for i := range nb {
		for _, j := range nb[i] {
			if j < 0 || j >= n {
				return fmt.Errorf("Neighbor list entry %d contains index "+
					"%d, but the frame has %d particles.", i, j, n)
			}
			if j == i {
				return fmt.Errorf("Neighbor list entry %d contains a "+
					"self-reference.", i)
			}
		}
	}

	if cfg.Rho0 <= 0 {
		return fmt.Errorf("Reference density is %g, but must be positive.",
			cfg.Rho0)
	}
	if cfg.Mass <= 0 {
		return fmt.Errorf("Particle mass is %g, but must be positive.",
			cfg.Mass)
	}
	if cfg.Virial {
		vol, vMin := k.SupportVolume(), cfg.Mass/cfg.Rho0
		if vol < vMin {
			return fmt.Errorf("Kernel support volume %g is smaller than the "+
				"minimum physical volume m/rho = %g.", vol, vMin)
		}
	}

	return nil
}

// Compute evaluates the dissipative force on every particle. x and v are n×d
// position and velocity arrays matching the kernel's dimension, and nb is a
// neighbor list of length n built within the kernel's support radius.
//
// All validation happens before any numerical work; on error no partial
// output is returned.
func Compute(x, v [][]float64, nb neighbor.List, cfg *Config) (*Result, error) {
	if err := check(x, v, nb, cfg); err != nil { return nil, err }

	n, dim := len(x), cfg.Kernel.Dim
	res := &Result{
		F:   make([]float64, n),
		N:   make([][]float64, n),
		dim: dim,
	}
	if cfg.Virial {
		res.Stress = make([]float64, n*dim*dim)
	}

	h := cfg.Kernel.H
	gradW := cfg.Kernel.GradW
	eps := 0.01 * h * h
	prefactor := cfg.Mass / cfg.Rho0 * cfg.Q1 * cfg.C0 * h
	var vol float64
	if cfg.Virial { vol = cfg.Kernel.SupportVolume() }

	parallel.Do(n, cfg.Workers, func(lo, hi int) {
		// Per-goroutine scratch. Output slots are disjoint across blocks.
		r := make([]float64, dim)
		u := make([]float64, dim)
		sum := make([]float64, dim)
		fallback := make([]float64, dim)
		rVec := mat.NewVecDense(dim, r)
		uVec := mat.NewVecDense(dim, u)

		for i := lo; i < hi; i++ {
			for k := range sum {
				sum[k], fallback[k] = 0, 0
			}
			var st *mat.Dense
			if cfg.Virial { st = res.StressAt(i) }

			for _, j := range nb[i] {
				r2, rv := 0.0, 0.0
				for k := 0; k < dim; k++ {
					r[k] = x[i][k] - x[j][k]
					r2 += r[k] * r[k]
					rv += r[k] * (v[i][k] - v[j][k])
				}
				dist := math.Sqrt(r2)

				if dist > 0 {
					for k := 0; k < dim; k++ {
						u[k] = r[k] / dist
						fallback[k] += u[k]
					}
				}

				// Shock-only switch: separating pairs are never damped.
				if rv >= 0 { continue }

				mu := rv / (r2 + eps)
				mag := prefactor * mu * gradW(dist)
				for k := 0; k < dim; k++ {
					sum[k] += mag * u[k]
				}

				if st != nil {
					// stress -= outer(r_ij, F_ij) / V_support
					st.RankOne(st, -mag/vol, rVec, uVec)
				}
			}

			norm := floats.Norm(sum, 2)
			res.F[i] = norm
			ni := make([]float64, dim)
			if norm > 0 {
				for k := 0; k < dim; k++ { ni[k] = sum[k] / norm }
			} else {
				copy(ni, fallback)
			}
			res.N[i] = ni
		}
	})

	return res, nil
}
