/*package kernel contains compactly supported SPH smoothing kernels. A Kernel
is a pair of bound function values, the weight W(r) and its radial derivative
dW/dr, fixed to a smoothing length h and a dimension at construction time.
Both functions are zero beyond h.
*/
package kernel

import (
	"math"
)

// Kernel is a smoothing kernel bound to a fixed smoothing length and
// dimension. W and GradW must not be re-bound after construction: components
// that consume a Kernel assume its support never changes mid-call.
type Kernel struct {
	// H is the support radius: W(r) = 0 for r >= H.
	H float64
	// Dim is the spatial dimension, 2 or 3.
	Dim int
	// W is the weight function, defined for r >= 0.
	W func(r float64) float64
	// GradW is the radial derivative dW/dr, defined for r >= 0.
	GradW func(r float64) float64
}

// SupportVolume returns the volume (3D) or area (2D) of the kernel's support
// sphere. It is the normalization volume used by virial stress accumulation.
func (k Kernel) SupportVolume() float64 {
	if k.Dim == 2 {
		return math.Pi * k.H * k.H
	}
	return 4.0 / 3.0 * math.Pi * k.H * k.H * k.H
}

// WAll evaluates W on every distance in rs. If an output array is given, the
// output is written to that array (the array is still returned as a
// convenience). If more than one output array is provided, only the first is
// used.
func (k Kernel) WAll(rs []float64, out ...[]float64) []float64 {
	if len(out) == 0 { out = [][]float64{ make([]float64, len(rs)) } }
	for i, r := range rs { out[0][i] = k.W(r) }
	return out[0]
}

// GradWAll evaluates dW/dr on every distance in rs, with the same output
// conventions as WAll.
func (k Kernel) GradWAll(rs []float64, out ...[]float64) []float64 {
	if len(out) == 0 { out = [][]float64{ make([]float64, len(rs)) } }
	for i, r := range rs { out[0][i] = k.GradW(r) }
	return out[0]
}

// Lucy returns the Lucy (1977) quartic kernel with support radius h in dim
// dimensions. This is the default kernel used by LAMMPS-style SPH
// post-processing.
func Lucy(h float64, dim int) Kernel {
	var alpha float64
	if dim == 2 {
		alpha = 5.0 / (math.Pi * h * h)
	} else {
		alpha = 105.0 / (16.0 * math.Pi * h * h * h)
	}

	w := func(r float64) float64 {
		if r >= h { return 0 }
		q := r / h
		u := 1 - q
		return alpha * (1 + 3*q) * u * u * u
	}
	gw := func(r float64) float64 {
		if r >= h { return 0 }
		q := r / h
		u := 1 - q
		return -12 * alpha * q * u * u / h
	}

	return Kernel{H: h, Dim: dim, W: w, GradW: gw}
}

// CubicSpline returns the M4 cubic spline kernel with support radius h in dim
// dimensions. Note that h here is the full support radius, so the classic
// piecewise form switches at h/2.
func CubicSpline(h float64, dim int) Kernel {
	hs := h / 2
	var sigma float64
	if dim == 2 {
		sigma = 10.0 / (7.0 * math.Pi * hs * hs)
	} else {
		sigma = 1.0 / (math.Pi * hs * hs * hs)
	}

	w := func(r float64) float64 {
		q := r / hs
		switch {
		case q < 1:
			return sigma * (1 - 1.5*q*q + 0.75*q*q*q)
		case q < 2:
			u := 2 - q
			return sigma * 0.25 * u * u * u
		}
		return 0
	}
	gw := func(r float64) float64 {
		q := r / hs
		switch {
		case q < 1:
			return sigma * (-3*q + 2.25*q*q) / hs
		case q < 2:
			u := 2 - q
			return -sigma * 0.75 * u * u / hs
		}
		return 0
	}

	return Kernel{H: h, Dim: dim, W: w, GradW: gw}
}

// Poly6 returns the Mueller poly6 kernel with support radius h in dim
// dimensions. Its gradient vanishes at r = 0, which makes it a poor choice
// for force evaluation, but it is cheap and smooth for density estimates.
func Poly6(h float64, dim int) Kernel {
	h2 := h * h
	var c float64
	if dim == 2 {
		c = 4.0 / (math.Pi * math.Pow(h, 8))
	} else {
		c = 315.0 / (64.0 * math.Pi * math.Pow(h, 9))
	}

	w := func(r float64) float64 {
		if r >= h { return 0 }
		u := h2 - r*r
		return c * u * u * u
	}
	gw := func(r float64) float64 {
		if r >= h { return 0 }
		u := h2 - r*r
		return -6 * c * r * u * u
	}

	return Kernel{H: h, Dim: dim, W: w, GradW: gw}
}
