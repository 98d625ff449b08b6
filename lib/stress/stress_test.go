package stress

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func uniform(x0, dx float64, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs { xs[i] = x0 + dx*float64(i) }
	return xs
}

func constant(v float64, n int) []float64 {
	xs := make([]float64, n)
	for i := range xs { xs[i] = v }
	return xs
}

func cube(dx float64, n int) [][]float64 {
	return [][]float64{
		uniform(0, dx, n), uniform(0, dx, n), uniform(0, dx, n),
	}
}

func TestReconstructErrors(t *testing.T) {
	n := 27

	_, err := Reconstruct(cube(1, 3)[:2], constant(0, 9), constant(0, 9),
		constant(0, 9))
	assert.Error(t, err, "two axes")

	_, err = Reconstruct(cube(1, 3), constant(0, n-1), constant(0, n),
		constant(0, n))
	assert.Error(t, err, "force length mismatch")

	bad := cube(1, 3)
	bad[1] = []float64{0, 1, 0.5}
	_, err = Reconstruct(bad, constant(0, n), constant(0, n), constant(0, n))
	assert.Error(t, err, "non-increasing axis")

	bad = cube(1, 3)
	bad[2] = []float64{0, 1, 3}
	_, err = Reconstruct(bad, constant(0, n), constant(0, n), constant(0, n))
	assert.Error(t, err, "non-uniform axis")

	short := cube(1, 3)
	short[0] = []float64{0}
	_, err = Reconstruct(short, constant(0, 9), constant(0, 9),
		constant(0, 9))
	assert.Error(t, err, "single-sample axis")
}

func TestUniformForceField(t *testing.T) {
	// 3×3×3 unit-spacing grid with FX = 5 and FY = FZ = 0: every cell with
	// a complete face has tensor slot (x-normal, x-force) = 5 and all other
	// defined slots equal to 0.
	n := 27
	f, err := Reconstruct(cube(1, 3), constant(5, n), constant(0, n),
		constant(0, n))
	assert.NoError(t, err)
	assert.Equal(t, []int{3, 3, 3}, f.Shape())

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				sub := [3]int{i, j, k}
				for beta := 0; beta < 3; beta++ {
					t1, t2 := faceVertices[beta][0], faceVertices[beta][1]
					missing := sub[t1] == 2 || sub[t2] == 2
					for alpha := 0; alpha < 3; alpha++ {
						got := f.At(i, j, k, beta, alpha)
						if missing {
							assert.True(t, math.IsNaN(got),
								"cell (%d,%d,%d) slot (%d,%d) should be NaN",
								i, j, k, beta, alpha)
							continue
						}
						want := 0.0
						if beta == 0 && alpha == 0 { want = 5.0 }
						assert.InDelta(t, want, got, 1e-12,
							"cell (%d,%d,%d) slot (%d,%d)", i, j, k,
							beta, alpha)
					}
				}
			}
		}
	}
}

func TestFaceAreaScaling(t *testing.T) {
	// Doubling the grid spacing quadruples each face area, so the uniform
	// FX = 5 field maps to 5/4 in the (x-normal, x-force) slot.
	n := 27
	f, err := Reconstruct(cube(2, 3), constant(5, n), constant(0, n),
		constant(0, n))
	assert.NoError(t, err)
	assert.InDelta(t, 1.25, f.At(0, 0, 0, 0, 0), 1e-12)
}

func TestNaNVerticesIgnored(t *testing.T) {
	// One NaN vertex on a face: the mean is taken over the remaining three.
	n := 27
	fx := constant(6, n)
	// Vertex (0, 1, 1) belongs to the x-normal face of cell (0, 0, 0).
	fx[(0*3+1)*3+1] = math.NaN()

	f, err := Reconstruct(cube(1, 3), fx, constant(0, n), constant(0, n))
	assert.NoError(t, err)
	assert.InDelta(t, 6.0, f.At(0, 0, 0, 0, 0), 1e-12,
		"mean over the three finite vertices")

	// A face whose vertices are all NaN stays NaN.
	allNaN := constant(math.NaN(), n)
	f, err = Reconstruct(cube(1, 3), allNaN, constant(0, n), constant(0, n))
	assert.NoError(t, err)
	assert.True(t, math.IsNaN(f.At(0, 0, 0, 0, 0)))
}

func TestLinearForceField(t *testing.T) {
	// FX = x on a unit grid: the x-normal face of cell (i, j, k) lies at
	// x = x_i, so slot (x-normal, x-force) equals x_i.
	coords := cube(1, 4)
	n := 64
	fx := make([]float64, n)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			for k := 0; k < 4; k++ {
				fx[(i*4+j)*4+k] = coords[0][i]
			}
		}
	}

	f, err := Reconstruct(coords, fx, constant(0, n), constant(0, n))
	assert.NoError(t, err)

	for i := 0; i < 4; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				assert.InDelta(t, coords[0][i], f.At(i, j, k, 0, 0), 1e-12,
					"cell (%d,%d,%d)", i, j, k)
			}
		}
	}
}

func TestWorkersDeterministic(t *testing.T) {
	n := 5 * 5 * 5
	fx, fy, fz := make([]float64, n), make([]float64, n), make([]float64, n)
	for i := range fx {
		fx[i] = float64(i)
		fy[i] = float64(i % 7)
		fz[i] = float64(i % 3)
	}

	re1, re4 := &Reconstructor{Workers: 1}, &Reconstructor{Workers: 4}
	f1, err := re1.Reconstruct(cube(0.5, 5), fx, fy, fz)
	assert.NoError(t, err)
	f4, err := re4.Reconstruct(cube(0.5, 5), fx, fy, fz)
	assert.NoError(t, err)

	for i := range f1.Vals {
		if math.IsNaN(f1.Vals[i]) {
			assert.True(t, math.IsNaN(f4.Vals[i]))
		} else {
			assert.Equal(t, f1.Vals[i], f4.Vals[i])
		}
	}
}
