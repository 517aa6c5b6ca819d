// Package vecmath provides the small set of dense-vector kernels used by the
// ART-2A engine: Euclidean length, normalization, dot products, component sums,
// contrast enhancement and the convex blend used for learning.
//
// All kernels are generic over Float (float32 or float64). A kernel never mixes
// precisions: accumulation happens in T, and only math.Sqrt is evaluated in
// float64 and rounded straight back to T (which is the correctly rounded square
// root for both widths). Every product is converted to T before it is added,
// so no platform may fuse a multiply-add and results are bit-identical across
// architectures.
//
// Kernels come in two flavours:
//
//	read-only reductions: Length, Dot, Sum, IsNull
//	in-place transforms:  Normalize, Scale, ZeroAtOrBelow, MaskBy, Blend, Fill
//
// None of the kernels allocate. Length mismatches between operands are a
// programmer error and are not checked in the hot path; callers validate shapes
// once up front (see matrix.ValidateVecLen).
//
// Complexity: every kernel is O(n) for vectors of length n.
package vecmath
