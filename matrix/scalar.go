package matrix

// Scalar is the element type of every matrix buffer. The engine is built for
// a single fixed-width floating point type chosen here at build time; the
// default is single precision, matching the width the BLAS kernels operate on.
type Scalar = float32

// ScalarSize is the size in bytes of one element, used by the allocation
// guard and the binary codec.
const ScalarSize = 4
