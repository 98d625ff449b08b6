package kernel

import (
	"math"
	"testing"

	"github.com/ovitrac/Pizza3-sub001/lib/eq"
)

// integrate computes the integral of W over its full support using the
// midpoint rule on radial shells.
func integrate(k Kernel) float64 {
	n := 20000
	dr := k.H / float64(n)
	sum := 0.0
	for i := 0; i < n; i++ {
		r := (float64(i) + 0.5) * dr
		var shell float64
		if k.Dim == 2 {
			shell = 2 * math.Pi * r
		} else {
			shell = 4 * math.Pi * r * r
		}
		sum += k.W(r) * shell * dr
	}
	return sum
}

// differentiate computes dW/dr at r with a centered difference.
func differentiate(k Kernel, r float64) float64 {
	dr := k.H * 1e-6
	return (k.W(r+dr) - k.W(r-dr)) / (2 * dr)
}

func testKernels() []Kernel {
	return []Kernel{
		Lucy(0.5, 2), Lucy(2.0, 3),
		CubicSpline(0.5, 2), CubicSpline(2.0, 3),
		Poly6(0.5, 2), Poly6(2.0, 3),
	}
}

func TestNormalization(t *testing.T) {
	for i, k := range testKernels() {
		got := integrate(k)
		if math.Abs(got-1) > 1e-3 {
			t.Errorf("%d) kernel with h = %g, dim = %d integrates to %g, "+
				"expected 1.", i, k.H, k.Dim, got)
		}
	}
}

func TestCompactSupport(t *testing.T) {
	for i, k := range testKernels() {
		for _, r := range []float64{k.H, k.H * 1.0001, k.H * 10} {
			if k.W(r) != 0 {
				t.Errorf("%d) W(%g) = %g beyond support h = %g, expected 0.",
					i, r, k.W(r), k.H)
			}
			if k.GradW(r) != 0 {
				t.Errorf("%d) GradW(%g) = %g beyond support h = %g, "+
					"expected 0.", i, r, k.GradW(r), k.H)
			}
		}
	}
}

func TestGradientMatchesWeight(t *testing.T) {
	for i, k := range testKernels() {
		for _, q := range []float64{0.1, 0.3, 0.45, 0.6, 0.8, 0.95} {
			r := q * k.H
			got, want := k.GradW(r), differentiate(k, r)
			scale := math.Abs(k.W(0))
			if math.Abs(got-want) > 1e-3*scale/k.H {
				t.Errorf("%d) GradW(%g) = %g, but numerical derivative is %g.",
					i, r, got, want)
			}
		}
	}
}

func TestMonotoneDecay(t *testing.T) {
	for i, k := range testKernels() {
		prev := k.W(0)
		for j := 1; j <= 100; j++ {
			r := float64(j) / 100 * k.H
			cur := k.W(r)
			if cur > prev+1e-12 {
				t.Errorf("%d) W increases at r = %g.", i, r)
				break
			}
			prev = cur
		}
	}
}

func TestWAll(t *testing.T) {
	k := Lucy(1.5, 3)
	rs := []float64{0, 0.5, 1.0, 1.5, 3.0}

	want := make([]float64, len(rs))
	for i, r := range rs { want[i] = k.W(r) }

	if got := k.WAll(rs); !eq.Float64s(got, want) {
		t.Errorf("WAll(%v) = %v, expected %v.", rs, got, want)
	}

	out := make([]float64, len(rs))
	if got := k.WAll(rs, out); &got[0] != &out[0] {
		t.Errorf("WAll did not write to the provided output array.")
	} else if !eq.Float64s(out, want) {
		t.Errorf("WAll wrote %v to the output array, expected %v.", out, want)
	}

	for i, r := range rs { want[i] = k.GradW(r) }
	if got := k.GradWAll(rs); !eq.Float64s(got, want) {
		t.Errorf("GradWAll(%v) = %v, expected %v.", rs, got, want)
	}
}

func TestSupportVolume(t *testing.T) {
	k2, k3 := Lucy(2, 2), Lucy(2, 3)
	if got := k2.SupportVolume(); math.Abs(got-math.Pi*4) > 1e-12 {
		t.Errorf("2D support volume = %g, expected %g.", got, math.Pi*4)
	}
	if got := k3.SupportVolume(); math.Abs(got-4.0/3.0*math.Pi*8) > 1e-12 {
		t.Errorf("3D support volume = %g, expected %g.", got,
			4.0/3.0*math.Pi*8)
	}
}
