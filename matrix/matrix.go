// Package matrix implements the dense matrix engine behind the subspace
// learning pipeline: constructors, elementwise and reduction operators,
// the linear solver primitives and the column-vector distance metrics.
//
// Buffers are column-major and owned exclusively by their matrix; every
// operation that is not explicitly documented as in-place returns a fresh
// matrix and leaves its operands untouched. Heavy numeric kernels are
// delegated to the matrix/backend package.
package matrix

import (
	"fmt"

	"github.com/evilsocket/islazy/log"
	"github.com/pbnjay/memory"

	"github.com/mcbolto/facerec/matrix/backend"
)

// Matrix is the engine's sole data entity: a 2D array of scalars with an
// optional mirror on the accelerator device. Name is a diagnostic label,
// not an identity key.
type Matrix struct {
	Name string
	Rows int
	Cols int
	// Data holds Rows*Cols elements in column-major order; element (i,j)
	// lives at Data[j*Rows+i].
	Data []Scalar

	dev []Scalar
}

func (m *Matrix) dims() string {
	return fmt.Sprintf("%s [%d x %d]", m.Name, m.Rows, m.Cols)
}

// raw returns the buffer descriptor the backend kernels operate on.
func (m *Matrix) raw() backend.Dense {
	return backend.Dense{Rows: m.Rows, Cols: m.Cols, Data: m.Data}
}

// column returns the contiguous slice backing column j.
func (m *Matrix) column(j int) []Scalar {
	return m.Data[j*m.Rows : (j+1)*m.Rows]
}

// IsVector returns true if the matrix is a single row or a single column.
func (m *Matrix) IsVector() bool {
	return m.Rows == 1 || m.Cols == 1
}

// At returns element (i, j).
func (m *Matrix) At(i, j int) Scalar {
	return m.Data[j*m.Rows+i]
}

// Set assigns element (i, j).
func (m *Matrix) Set(i, j int, v Scalar) {
	m.Data[j*m.Rows+i] = v
}

// New allocates an uninitialized rows x cols matrix.
func New(name string, rows, cols int) (*Matrix, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: can not allocate %s [%d x %d]", ErrShape, name, rows, cols)
	}
	if ScalarSize*uint64(rows)*uint64(cols) > memory.TotalMemory() {
		return nil, fmt.Errorf("%w: %s [%d x %d]", ErrSize, name, rows, cols)
	}

	m := &Matrix{
		Name: name,
		Rows: rows,
		Cols: cols,
		Data: make([]Scalar, rows*cols),
	}

	log.Debug("%s <- malloc", m.dims())

	return m, nil
}

// Identity allocates the n x n identity matrix.
func Identity(name string, n int) (*Matrix, error) {
	m, err := New(name, n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}

	log.Debug("%s <- eye(%d)", m.dims(), n)

	return m, nil
}

// Zeros allocates a zero-filled rows x cols matrix.
func Zeros(name string, rows, cols int) (*Matrix, error) {
	m, err := New(name, rows, cols)
	if err != nil {
		return nil, err
	}

	log.Debug("%s <- zeros(%d, %d)", m.dims(), rows, cols)

	return m, nil
}

// Ones allocates a rows x cols matrix with every element set to one.
func Ones(name string, rows, cols int) (*Matrix, error) {
	m, err := New(name, rows, cols)
	if err != nil {
		return nil, err
	}
	for i := range m.Data {
		m.Data[i] = 1
	}

	log.Debug("%s <- ones(%d, %d)", m.dims(), rows, cols)

	return m, nil
}

// RandomNormal allocates a rows x cols matrix filled with draws from the
// process-wide Normal source.
func RandomNormal(name string, rows, cols int) (*Matrix, error) {
	m, err := New(name, rows, cols)
	if err != nil {
		return nil, err
	}
	for i := range m.Data {
		m.Data[i] = Normal.Next()
	}

	log.Debug("%s <- randn(%d, %d)", m.dims(), rows, cols)

	return m, nil
}

// Copy returns a deep copy of the matrix. The device mirror, if any, is not
// copied; the clone starts host-only.
func (m *Matrix) Copy(name string) (*Matrix, error) {
	c, err := New(name, m.Rows, m.Cols)
	if err != nil {
		return nil, err
	}
	copy(c.Data, m.Data)

	log.Debug("%s <- %s", c.dims(), m.dims())

	return c, nil
}

// CopyColumns returns a deep copy of the half-open column range [i, j).
func (m *Matrix) CopyColumns(name string, i, j int) (*Matrix, error) {
	if i < 0 || i >= j || j > m.Cols {
		return nil, fmt.Errorf("%w: columns [%d, %d) of %s", ErrIndex, i, j, m.dims())
	}

	c, err := New(name, m.Rows, j-i)
	if err != nil {
		return nil, err
	}
	copy(c.Data, m.Data[i*m.Rows:j*m.Rows])

	log.Debug("%s <- %s(:, %d:%d)", c.dims(), m.dims(), i, j)

	return c, nil
}

// CopyRows returns a deep copy of the half-open row range [i, j).
func (m *Matrix) CopyRows(name string, i, j int) (*Matrix, error) {
	if i < 0 || i >= j || j > m.Rows {
		return nil, fmt.Errorf("%w: rows [%d, %d) of %s", ErrIndex, i, j, m.dims())
	}

	c, err := New(name, j-i, m.Cols)
	if err != nil {
		return nil, err
	}
	for col := 0; col < m.Cols; col++ {
		copy(c.column(col), m.column(col)[i:j])
	}

	log.Debug("%s <- %s(%d:%d, :)", c.dims(), m.dims(), i, j)

	return c, nil
}

// Release frees both the host buffer and the device mirror. The matrix must
// not be used afterwards.
func (m *Matrix) Release() {
	log.Debug("%s <- free", m.dims())

	m.Data = nil
	m.dev = nil
	m.Rows = 0
	m.Cols = 0
}

// SyncToDevice copies the host buffer to the accelerator mirror, allocating
// the mirror on first use. It is a no-op when the active backend is not
// accelerated; staleness between the two buffers is otherwise the caller's
// responsibility.
func (m *Matrix) SyncToDevice() {
	if !backend.Accelerated() {
		log.Debug("%s <- sync to device skipped, %s backend", m.dims(), backend.Name())
		return
	}
	if m.dev == nil {
		m.dev = make([]Scalar, len(m.Data))
	}
	copy(m.dev, m.Data)

	log.Debug("%s -> device", m.dims())
}

// SyncToHost copies the accelerator mirror back to the host buffer. It is a
// no-op when the active backend is not accelerated or the mirror was never
// populated.
func (m *Matrix) SyncToHost() {
	if !backend.Accelerated() || m.dev == nil {
		log.Debug("%s <- sync to host skipped, %s backend", m.dims(), backend.Name())
		return
	}
	copy(m.Data, m.dev)

	log.Debug("%s <- device", m.dims())
}
