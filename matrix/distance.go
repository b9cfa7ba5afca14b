package matrix

import (
	"fmt"

	"github.com/evilsocket/islazy/log"

	"github.com/mcbolto/facerec/matrix/backend"
)

// DistFunc measures the distance between column i of a and column j of b.
// Smaller means more similar for every metric in this package, which is what
// the nearest-neighbor classifier on top of the engine assumes.
type DistFunc func(a *Matrix, i int, b *Matrix, j int) (float64, error)

func distColumns(a *Matrix, i int, b *Matrix, j int) ([]Scalar, []Scalar, error) {
	if a.Rows != b.Rows {
		return nil, nil, fmt.Errorf("%w: distance between %s and %s", ErrShape, a.dims(), b.dims())
	}
	if i < 0 || i >= a.Cols || j < 0 || j >= b.Cols {
		return nil, nil, fmt.Errorf("%w: distance between %s(:, %d) and %s(:, %d)", ErrIndex, a.dims(), i, b.dims(), j)
	}
	return a.column(i), b.column(j), nil
}

// EuclideanDistance returns the L2 distance between two column vectors.
func EuclideanDistance(a *Matrix, i int, b *Matrix, j int) (float64, error) {
	x, y, err := distColumns(a, i, b, j)
	if err != nil {
		return 0, err
	}

	diff := make([]Scalar, len(x))
	copy(diff, x)
	backend.Axpy(-1, y, diff)
	d := backend.Nrm2(diff)

	log.Debug("L2(%s(:, %d), %s(:, %d)) = %g", a.dims(), i, b.dims(), j, d)

	return d, nil
}

// TaxicabDistance returns the L1 distance between two column vectors.
func TaxicabDistance(a *Matrix, i int, b *Matrix, j int) (float64, error) {
	x, y, err := distColumns(a, i, b, j)
	if err != nil {
		return 0, err
	}

	diff := make([]Scalar, len(x))
	copy(diff, x)
	backend.Axpy(-1, y, diff)
	d := backend.Asum(diff)

	log.Debug("L1(%s(:, %d), %s(:, %d)) = %g", a.dims(), i, b.dims(), j, d)

	return d, nil
}

// CosineDistance returns the negated cosine similarity between two column
// vectors, so that like the other metrics a smaller value means a better
// match. The sign must stay negated for the classifier to rank correctly.
func CosineDistance(a *Matrix, i int, b *Matrix, j int) (float64, error) {
	x, y, err := distColumns(a, i, b, j)
	if err != nil {
		return 0, err
	}

	d := 0.0
	if den := backend.Nrm2(x) * backend.Nrm2(y); den != 0.0 {
		d = -backend.Dot(x, y) / den
	}

	log.Debug("COS(%s(:, %d), %s(:, %d)) = %g", a.dims(), i, b.dims(), j, d)

	return d, nil
}
