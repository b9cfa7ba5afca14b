package backend

// Dense describes a column-major matrix buffer shared with the engine. The
// leading dimension is always Rows; element (i, j) lives at Data[j*Rows+i].
type Dense struct {
	Rows int
	Cols int
	Data []float32
}

// each backend must implement these kernels. Dimension checking happens in
// the matrix layer before dispatch; a non-nil error from a solver means the
// input was numerically degenerate (singular, not positive definite, no
// convergence), never a shape problem.
type implementation interface {
	Name() string
	Space() uint64
	Accelerated() bool

	// level 1, contiguous buffers
	Dot(x, y []float32) float64
	Nrm2(x []float32) float64
	Asum(x []float32) float64
	Axpy(alpha float32, x, y []float32)
	Scal(alpha float32, x []float32)

	// level 3 and solvers
	Gemm(transA, transB bool, a, b, c Dense)
	Inverse(a, dst Dense) error
	Eigh(a Dense, w []float32, v Dense) error
	EighGen(a, b Dense, w []float32, v Dense) error
}
