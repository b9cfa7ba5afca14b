package matrix

import (
	"fmt"

	"github.com/evilsocket/islazy/log"

	"github.com/mcbolto/facerec/matrix/backend"
)

// Add accumulates b into m in place. Shapes must match.
func (m *Matrix) Add(b *Matrix) error {
	if m.Rows != b.Rows || m.Cols != b.Cols {
		return fmt.Errorf("%w: %s + %s", ErrShape, m.dims(), b.dims())
	}

	log.Debug("%s + %s", m.dims(), b.dims())

	backend.Axpy(1, b.Data, m.Data)
	return nil
}

// Sub subtracts b from m in place. Shapes must match.
func (m *Matrix) Sub(b *Matrix) error {
	if m.Rows != b.Rows || m.Cols != b.Cols {
		return fmt.Errorf("%w: %s - %s", ErrShape, m.dims(), b.dims())
	}

	log.Debug("%s - %s", m.dims(), b.dims())

	backend.Axpy(-1, b.Data, m.Data)
	return nil
}

// Scale multiplies every element by c in place.
func (m *Matrix) Scale(c Scalar) {
	log.Debug("%s * %g", m.dims(), c)

	backend.Scal(c, m.Data)
}

// Apply replaces every element with f(element) in place.
func (m *Matrix) Apply(f func(Scalar) Scalar) {
	log.Debug("%s <- f(%s)", m.dims(), m.dims())

	for i, v := range m.Data {
		m.Data[i] = f(v)
	}
}

// MeanColumn returns the column vector of per-row means across all columns.
func (m *Matrix) MeanColumn(name string) (*Matrix, error) {
	mean, err := Zeros(name, m.Rows, 1)
	if err != nil {
		return nil, err
	}
	for j := 0; j < m.Cols; j++ {
		backend.Axpy(1, m.column(j), mean.Data)
	}
	backend.Scal(1/Scalar(m.Cols), mean.Data)

	log.Debug("%s <- mean columns of %s", mean.dims(), m.dims())

	return mean, nil
}

// MeanRow returns the row vector of per-column means across all rows.
func (m *Matrix) MeanRow(name string) (*Matrix, error) {
	mean, err := Zeros(name, 1, m.Cols)
	if err != nil {
		return nil, err
	}
	for j := 0; j < m.Cols; j++ {
		var sum float64
		for _, v := range m.column(j) {
			sum += float64(v)
		}
		mean.Data[j] = Scalar(sum / float64(m.Rows))
	}

	log.Debug("%s <- mean rows of %s", mean.dims(), m.dims())

	return mean, nil
}

// SubColumns broadcast-subtracts the column vector a from every column of m
// in place.
func (m *Matrix) SubColumns(a *Matrix) error {
	if a.Cols != 1 || a.Rows != m.Rows {
		return fmt.Errorf("%w: %s - columns %s", ErrShape, m.dims(), a.dims())
	}

	log.Debug("%s - columns %s", m.dims(), a.dims())

	for j := 0; j < m.Cols; j++ {
		backend.Axpy(-1, a.Data, m.column(j))
	}
	return nil
}

// SubRows broadcast-subtracts the row vector a from every row of m in place.
func (m *Matrix) SubRows(a *Matrix) error {
	if a.Rows != 1 || a.Cols != m.Cols {
		return fmt.Errorf("%w: %s - rows %s", ErrShape, m.dims(), a.dims())
	}

	log.Debug("%s - rows %s", m.dims(), a.dims())

	for j := 0; j < m.Cols; j++ {
		col := m.column(j)
		v := a.Data[j]
		for i := range col {
			col[i] -= v
		}
	}
	return nil
}

// Diagonal returns the square matrix with the elements of the vector v on
// its diagonal and zero elsewhere.
func Diagonal(name string, v *Matrix) (*Matrix, error) {
	if !v.IsVector() {
		return nil, fmt.Errorf("%w: diag of %s", ErrVector, v.dims())
	}

	n := len(v.Data)
	d, err := Zeros(name, n, n)
	if err != nil {
		return nil, err
	}
	for i, e := range v.Data {
		d.Set(i, i, e)
	}

	log.Debug("%s <- diag %s", d.dims(), v.dims())

	return d, nil
}

// Covariance returns the covariance matrix of m, with each row treated as
// one observation of Cols variables: the mean row is subtracted from every
// row of a working copy and the Gram matrix of the centered data is scaled
// by 1/max(Rows-1, 1). The result is symmetric positive semi-definite up to
// rounding.
func Covariance(name string, m *Matrix) (*Matrix, error) {
	centered, err := m.Copy("centered")
	if err != nil {
		return nil, err
	}
	defer centered.Release()

	mean, err := m.MeanRow("mean")
	if err != nil {
		return nil, err
	}
	defer mean.Release()

	if err := centered.SubRows(mean); err != nil {
		return nil, err
	}

	cov, err := Product(name, centered, centered, true, false)
	if err != nil {
		return nil, err
	}

	c := m.Rows - 1
	if c < 1 {
		c = 1
	}
	cov.Scale(1 / Scalar(c))

	log.Debug("%s <- cov %s", cov.dims(), m.dims())

	return cov, nil
}

// AssignColumn copies column j of b into column i of m in place.
func (m *Matrix) AssignColumn(i int, b *Matrix, j int) error {
	if m.Rows != b.Rows {
		return fmt.Errorf("%w: %s(:, %d) <- %s(:, %d)", ErrShape, m.dims(), i, b.dims(), j)
	}
	if i < 0 || i >= m.Cols || j < 0 || j >= b.Cols {
		return fmt.Errorf("%w: %s(:, %d) <- %s(:, %d)", ErrIndex, m.dims(), i, b.dims(), j)
	}

	log.Debug("%s(:, %d) <- %s(:, %d)", m.dims(), i, b.dims(), j)

	copy(m.column(i), b.column(j))
	return nil
}

// AssignRow copies row j of b into row i of m in place.
func (m *Matrix) AssignRow(i int, b *Matrix, j int) error {
	if m.Cols != b.Cols {
		return fmt.Errorf("%w: %s(%d, :) <- %s(%d, :)", ErrShape, m.dims(), i, b.dims(), j)
	}
	if i < 0 || i >= m.Rows || j < 0 || j >= b.Rows {
		return fmt.Errorf("%w: %s(%d, :) <- %s(%d, :)", ErrIndex, m.dims(), i, b.dims(), j)
	}

	log.Debug("%s(%d, :) <- %s(%d, :)", m.dims(), i, b.dims(), j)

	for col := 0; col < m.Cols; col++ {
		m.Set(i, col, b.At(j, col))
	}
	return nil
}

// ShuffleColumns permutes the columns of m in place with a Fisher-Yates
// shuffle driven by the package Shuffle source.
func (m *Matrix) ShuffleColumns() {
	log.Debug("%s <- shuffle columns", m.dims())

	tmp := make([]Scalar, m.Rows)
	for j := m.Cols - 1; j > 0; j-- {
		k := Shuffle.Intn(j + 1)
		if k == j {
			continue
		}
		copy(tmp, m.column(j))
		copy(m.column(j), m.column(k))
		copy(m.column(k), tmp)
	}
}
