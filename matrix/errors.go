package matrix

import (
	"errors"

	"github.com/evilsocket/islazy/log"
)

var (
	// ErrShape is returned when two operands have incompatible dimensions,
	// or a constructor is given a row or column count below one.
	ErrShape = errors.New("matrix: dimension mismatch")
	// ErrIndex is returned when a row or column index falls outside the
	// matrix, or a half-open range does not satisfy 0 <= i < j <= bound.
	ErrIndex = errors.New("matrix: index out of range")
	// ErrSquare is returned when a square-only operation is given a
	// rectangular matrix.
	ErrSquare = errors.New("matrix: matrix is not square")
	// ErrVector is returned when a vector-only operation is given an
	// operand with more than one row and more than one column.
	ErrVector = errors.New("matrix: operand is not a vector")
	// ErrBackend is returned when a kernel reports a non-success status,
	// such as a singular matrix during inversion or a non-converging
	// eigensolve. It indicates a numerically degenerate input, not a bug
	// in the engine.
	ErrBackend = errors.New("matrix: backend kernel failed")
	// ErrFormat is returned when serialized matrix data cannot be parsed.
	ErrFormat = errors.New("matrix: malformed matrix data")
	// ErrSize is returned when a requested allocation exceeds the memory
	// available to the process.
	ErrSize = errors.New("matrix: allocation exceeds available memory")
)

// Must is the fatal policy for callers that treat every engine error as a
// programmer contract violation: it aborts the process on error and returns
// the matrix otherwise. Library code and tests handle the error values
// directly instead.
func Must(m *Matrix, err error) *Matrix {
	if err != nil {
		log.Fatal("%v", err)
	}
	return m
}
