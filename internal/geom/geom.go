// Package geom provides the geometric primitives behind rigid-body
// conformer searches: point distances, centroids and rotation matrices
// about arbitrary axes.
//
// Point sets are N×3 [mat.Dense] matrices, one cartesian point per row,
// the same convention the mol package uses for position matrices.
package geom

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrEmptyInput indicates a point-set argument with zero points.
var ErrEmptyInput = errors.New("geom: empty point set")

// Distance returns the Euclidean distance between two 3D points.
func Distance(p, q []float64) float64 {
	dx := p[0] - q[0]
	dy := p[1] - q[1]
	dz := p[2] - q[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Centroid returns the arithmetic mean of the rows of points.
func Centroid(points *mat.Dense) ([]float64, error) {
	if points == nil {
		return nil, fmt.Errorf("%w: nil matrix", ErrEmptyInput)
	}
	n, _ := points.Dims()
	if n == 0 {
		return nil, fmt.Errorf("%w: centroid of zero points", ErrEmptyInput)
	}
	c := make([]float64, 3)
	for i := 0; i < n; i++ {
		row := points.RawRowView(i)
		c[0] += row[0]
		c[1] += row[1]
		c[2] += row[2]
	}
	c[0] /= float64(n)
	c[1] /= float64(n)
	c[2] /= float64(n)
	return c, nil
}

// MinPairwiseDistance returns the smallest distance over all cross pairs
// between the rows of a and the rows of b. It is O(|a|·|b|); the point
// counts this package targets (tens to low hundreds) do not warrant a
// spatial index.
func MinPairwiseDistance(a, b *mat.Dense) (float64, error) {
	if a == nil || b == nil {
		return 0, fmt.Errorf("%w: nil matrix", ErrEmptyInput)
	}
	na, _ := a.Dims()
	nb, _ := b.Dims()
	if na == 0 || nb == 0 {
		return 0, fmt.Errorf("%w: min distance needs two non-empty sets", ErrEmptyInput)
	}
	min := math.Inf(1)
	for i := 0; i < na; i++ {
		p := a.RawRowView(i)
		for j := 0; j < nb; j++ {
			if d := Distance(p, b.RawRowView(j)); d < min {
				min = d
			}
		}
	}
	return min, nil
}

// RotationAbout returns the 3×3 rotation matrix for a rotation of angle
// radians about the given axis through the origin. The axis need not be
// normalized; a zero axis yields the identity.
func RotationAbout(axis []float64, angle float64) *mat.Dense {
	x, y, z := axis[0], axis[1], axis[2]
	norm := math.Sqrt(x*x + y*y + z*z)
	if norm == 0 {
		return mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	}
	x, y, z = x/norm, y/norm, z/norm

	c := math.Cos(angle)
	s := math.Sin(angle)
	t := 1 - c
	return mat.NewDense(3, 3, []float64{
		t*x*x + c, t*x*y - s*z, t*x*z + s*y,
		t*x*y + s*z, t*y*y + c, t*y*z - s*x,
		t*x*z - s*y, t*y*z + s*x, t*z*z + c,
	})
}
