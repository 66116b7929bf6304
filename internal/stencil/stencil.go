// Package stencil provides point-wise finite-difference primitives.
//
// All operators are second-order accurate in the grid spacing and read a
// single buffer, so they can be applied to either time level of a field.
// Index bounds are the caller's responsibility:
//
//   - [Centered] needs both neighbors: 1 <= i <= len(f)-2
//   - [Backward] reaches two points left: i >= 2
//   - [Forward] reaches two points right: i <= len(f)-3
//
// On the minimum 3-point grid, Forward at the first point and Backward at
// the last point stay within bounds.
package stencil

// Centered is the centered first derivative (f[i+1] - f[i-1]) / (2 dx).
func Centered(f []float64, i int, dx float64) float64 {
	return (f[i+1] - f[i-1]) / (2 * dx)
}

// Backward is the one-sided first derivative using points to the left,
// (3 f[i] - 4 f[i-1] + f[i-2]) / (2 dx).
func Backward(f []float64, i int, dx float64) float64 {
	return (3*f[i] - 4*f[i-1] + f[i-2]) / (2 * dx)
}

// Forward is the one-sided first derivative using points to the right,
// (-3 f[i] + 4 f[i+1] - f[i+2]) / (2 dx).
func Forward(f []float64, i int, dx float64) float64 {
	return (-3*f[i] + 4*f[i+1] - f[i+2]) / (2 * dx)
}
