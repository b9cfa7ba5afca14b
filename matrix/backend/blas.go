package backend

import (
	"errors"
	"fmt"
	"math"

	"github.com/pbnjay/memory"
	gblas "gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/mat"
)

// blas delegates level 1 and level 3 kernels to gonum's single precision
// BLAS and the solver kernels (LU inverse, symmetric eigendecomposition,
// Cholesky reduction of the generalized problem) to gonum/mat. gonum has no
// single precision LAPACK, so the solvers compute in double precision and
// round back to the engine width.
type blas struct {
}

func (impl blas) Name() string {
	return "blas"
}

func (impl blas) Space() uint64 {
	return memory.TotalMemory()
}

func (impl blas) Accelerated() bool {
	return false
}

func vec(x []float32) blas32.Vector {
	return blas32.Vector{N: len(x), Inc: 1, Data: x}
}

func (impl blas) Dot(x, y []float32) float64 {
	return float64(blas32.Dot(vec(x), vec(y)))
}

func (impl blas) Nrm2(x []float32) float64 {
	return float64(blas32.Nrm2(vec(x)))
}

func (impl blas) Asum(x []float32) float64 {
	return float64(blas32.Asum(vec(x)))
}

func (impl blas) Axpy(alpha float32, x, y []float32) {
	blas32.Axpy(alpha, vec(x), vec(y))
}

func (impl blas) Scal(alpha float32, x []float32) {
	blas32.Scal(alpha, vec(x))
}

// rowMajor presents a column-major buffer to the row-major blas32 API: the
// same bytes read row-major are the transpose, so C = op(A) * op(B) is
// computed as C^T = op(B)^T * op(A)^T with the operand order swapped and the
// transpose flags carried over unchanged.
func rowMajor(d Dense) blas32.General {
	return blas32.General{
		Rows:   d.Cols,
		Cols:   d.Rows,
		Stride: d.Rows,
		Data:   d.Data,
	}
}

func transFlag(t bool) gblas.Transpose {
	if t {
		return gblas.Trans
	}
	return gblas.NoTrans
}

func (impl blas) Gemm(transA, transB bool, a, b, c Dense) {
	blas32.Gemm(transFlag(transB), transFlag(transA), 1, rowMajor(b), rowMajor(a), 0, rowMajor(c))
}

// denseOf copies a column-major float32 buffer into a float64 row-major
// mat.Dense.
func denseOf(d Dense) *mat.Dense {
	out := mat.NewDense(d.Rows, d.Cols, nil)
	for j := 0; j < d.Cols; j++ {
		for i := 0; i < d.Rows; i++ {
			out.Set(i, j, float64(d.Data[j*d.Rows+i]))
		}
	}
	return out
}

// symOf copies the upper triangle of a square column-major buffer into a
// mat.SymDense; the lower triangle is assumed equal by the caller contract.
func symOf(d Dense) *mat.SymDense {
	n := d.Rows
	s := mat.NewSymDense(n, nil)
	for j := 0; j < n; j++ {
		for i := 0; i <= j; i++ {
			s.SetSym(i, j, float64(d.Data[j*n+i]))
		}
	}
	return s
}

// denseInto rounds a float64 matrix back into a column-major float32 buffer.
func denseInto(src mat.Matrix, dst Dense) {
	for j := 0; j < dst.Cols; j++ {
		for i := 0; i < dst.Rows; i++ {
			dst.Data[j*dst.Rows+i] = float32(src.At(i, j))
		}
	}
}

func (impl blas) Inverse(a, dst Dense) error {
	var inv mat.Dense
	if err := inv.Inverse(denseOf(a)); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) || math.IsInf(float64(cond), 1) {
			return fmt.Errorf("blas: %v", err)
		}
		// ill-conditioned but invertible, accept the result like dgetri would
	}
	denseInto(&inv, dst)
	return nil
}

func (impl blas) Eigh(a Dense, w []float32, v Dense) error {
	n := a.Rows

	var es mat.EigenSym
	if !es.Factorize(symOf(a), true) {
		return errors.New("blas: eigensolver failed to converge")
	}

	vals := es.Values(nil)
	vecs := mat.NewDense(n, n, nil)
	es.VectorsTo(vecs)

	for i := 0; i < n; i++ {
		w[i] = float32(vals[i])
	}
	denseInto(vecs, v)
	return nil
}

func (impl blas) EighGen(a, b Dense, w []float32, v Dense) error {
	n := a.Rows

	// b = L L^T; the problem reduces to the standard one on L^-1 A L^-T
	// with eigenvectors mapped back through L^-T, which also leaves them
	// b-orthonormal. This is the dsygv reduction.
	var ch mat.Cholesky
	if !ch.Factorize(symOf(b)) {
		return errors.New("blas: right-hand matrix is not positive definite")
	}
	var l mat.TriDense
	ch.LTo(&l)

	var y mat.Dense
	if err := y.Solve(&l, denseOf(a)); err != nil {
		return fmt.Errorf("blas: %v", err)
	}
	var z mat.Dense
	if err := z.Solve(&l, y.T()); err != nil {
		return fmt.Errorf("blas: %v", err)
	}

	// z is symmetric up to rounding, fold it before the eigensolve
	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, 0.5*(z.At(i, j)+z.At(j, i)))
		}
	}

	var es mat.EigenSym
	if !es.Factorize(s, true) {
		return errors.New("blas: generalized eigensolver failed to converge")
	}

	vals := es.Values(nil)
	vecs := mat.NewDense(n, n, nil)
	es.VectorsTo(vecs)

	var x mat.Dense
	if err := x.Solve(l.T(), vecs); err != nil {
		return fmt.Errorf("blas: %v", err)
	}

	for i := 0; i < n; i++ {
		w[i] = float32(vals[i])
	}
	denseInto(&x, v)
	return nil
}
