/*package eq is a simple package for telling whether two arrays are equal to
one another. The NaN-aware variants are needed when comparing stress fields,
where boundary cells are deliberately set to NaN.*/
package eq

import (
	"math"
)

// Ints returns true if two []int arrays are the same and false otherwise.
func Ints(x, y []int) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// Strings returns true if two []string arrays are the same and false otherwise.
func Strings(x, y []string) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// Float64s returns true if two []float64 arrays are the same and false
// otherwise.
func Float64s(x, y []float64) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// Float64sEps returns true if the two []float64 arrays are within eps of one
// another and false otherwise.
func Float64sEps(x, y []float64, eps float64) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i]+eps < y[i] || x[i]-eps > y[i] {
			return false
		}
	}
	return true
}

// Float64sNaNEps is Float64sEps, except that a NaN in one array matches only
// a NaN in the other.
func Float64sNaNEps(x, y []float64, eps float64) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		xNaN, yNaN := math.IsNaN(x[i]), math.IsNaN(y[i])
		if xNaN != yNaN { return false }
		if xNaN { continue }
		if x[i]+eps < y[i] || x[i]-eps > y[i] {
			return false
		}
	}
	return true
}

// Vecs returns true if two [][]float64 arrays have the same shape and values
// and false otherwise.
func Vecs(x, y [][]float64) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if !Float64s(x[i], y[i]) { return false }
	}
	return true
}

// VecsEps returns true if two [][]float64 arrays have the same shape and are
// within eps of one another and false otherwise.
func VecsEps(x, y [][]float64, eps float64) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if !Float64sEps(x[i], y[i], eps) { return false }
	}
	return true
}
