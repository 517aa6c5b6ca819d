package vecmath

import (
	"errors"
	"math"
)

// Float is the set of element types the engine can run in.
type Float interface {
	~float32 | ~float64
}

// ErrZeroLength is returned by Normalize when the vector has Euclidean length 0.
var ErrZeroLength = errors.New("vecmath: vector has zero length")

// Sqrt returns the square root of x in precision T.
func Sqrt[T Float](x T) T {
	return T(math.Sqrt(float64(x)))
}

// Length returns the Euclidean norm ‖v‖ = sqrt(Σ v_i²).
// Complexity: O(n).
func Length[T Float](v []T) T {
	var sq T
	var i int
	for i = 0; i < len(v); i++ {
		sq += T(v[i] * v[i])
	}

	return Sqrt(sq)
}

// Dot returns Σ a_i·b_i over the first len(a) components.
// b must be at least as long as a.
func Dot[T Float](a, b []T) T {
	var s T
	var i int
	for i = 0; i < len(a); i++ {
		s += T(a[i] * b[i])
	}

	return s
}

// Sum returns Σ v_i.
func Sum[T Float](v []T) T {
	var s T
	for _, x := range v {
		s += x
	}

	return s
}

// IsNull reports whether every component of v is exactly zero.
func IsNull[T Float](v []T) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}

	return true
}

// Scale multiplies every component of v by f in place.
func Scale[T Float](v []T, f T) {
	var i int
	for i = 0; i < len(v); i++ {
		v[i] *= f
	}
}

// Normalize divides v by its Euclidean length in place and returns that length.
// A zero-length vector is left untouched and ErrZeroLength is returned.
//
// Complexity: O(n).
func Normalize[T Float](v []T) (T, error) {
	l := Length(v)
	if l == 0 {
		return 0, ErrZeroLength
	}
	var i int
	for i = 0; i < len(v); i++ {
		v[i] /= l
	}

	return l, nil
}

// ZeroAtOrBelow sets every component v_i ≤ threshold to 0 (contrast enhancement)
// and returns how many components were zeroed.
func ZeroAtOrBelow[T Float](v []T, threshold T) int {
	var n, i int
	for i = 0; i < len(v); i++ {
		if v[i] <= threshold {
			v[i] = 0
			n++
		}
	}

	return n
}

// MaskBy zeroes v_i wherever the reference component ref_i ≤ threshold.
// ref must be at least as long as v.
func MaskBy[T Float](v, ref []T, threshold T) {
	var i int
	for i = 0; i < len(v); i++ {
		if ref[i] <= threshold {
			v[i] = 0
		}
	}
}

// Blend writes the convex combination a·x + b·y into dst.
// dst may alias x or y. All slices must share the same length.
func Blend[T Float](dst, x, y []T, a, b T) {
	var i int
	for i = 0; i < len(dst); i++ {
		dst[i] = T(a*x[i]) + T(b*y[i])
	}
}

// Fill sets every component of v to c.
func Fill[T Float](v []T, c T) {
	var i int
	for i = 0; i < len(v); i++ {
		v[i] = c
	}
}

// EuclideanDistance returns ‖a−b‖. b must be at least as long as a.
func EuclideanDistance[T Float](a, b []T) T {
	var sq, d T
	var i int
	for i = 0; i < len(a); i++ {
		d = a[i] - b[i]
		sq += T(d * d)
	}

	return Sqrt(sq)
}
