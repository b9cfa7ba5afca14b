package backend

import "fmt"

// TODO: pick at startup the best backend available ( CUDA, OpenCL or BLAS ).
var impl implementation = blas{}

// Use switches the active implementation by name. Matrices allocated before
// the switch keep working; only kernel dispatch changes.
func Use(name string) error {
	switch name {
	case "blas":
		impl = blas{}
	case "naive":
		impl = naive{}
	default:
		return fmt.Errorf("backend: unknown implementation %q", name)
	}
	return nil
}

// Name returns the name of the active implementation.
func Name() string {
	return impl.Name()
}

// Space returns the memory available to the active implementation.
func Space() uint64 {
	return impl.Space()
}

// Accelerated reports whether the active implementation keeps a device-side
// copy of matrix buffers.
func Accelerated() bool {
	return impl.Accelerated()
}

func Dot(x, y []float32) float64 {
	return impl.Dot(x, y)
}

func Nrm2(x []float32) float64 {
	return impl.Nrm2(x)
}

func Asum(x []float32) float64 {
	return impl.Asum(x)
}

func Axpy(alpha float32, x, y []float32) {
	impl.Axpy(alpha, x, y)
}

func Scal(alpha float32, x []float32) {
	impl.Scal(alpha, x)
}

func Gemm(transA, transB bool, a, b, c Dense) {
	impl.Gemm(transA, transB, a, b, c)
}

func Inverse(a, dst Dense) error {
	return impl.Inverse(a, dst)
}

func Eigh(a Dense, w []float32, v Dense) error {
	return impl.Eigh(a, w, v)
}

func EighGen(a, b Dense, w []float32, v Dense) error {
	return impl.EighGen(a, b, w, v)
}
