package matrix

import (
	"fmt"
	"math"

	"github.com/evilsocket/islazy/log"

	"github.com/mcbolto/facerec/matrix/backend"
)

// eigenEpsilon is the threshold under which eigenvalues of the standard
// symmetric problem are treated as rounding artifacts and their eigenpairs
// dropped. The generalized problem keeps every eigenpair on purpose: the
// consuming pipeline relies on its small eigenvalues.
const eigenEpsilon = 1e-8

func opShape(m *Matrix, trans bool) (rows, cols int) {
	if trans {
		return m.Cols, m.Rows
	}
	return m.Rows, m.Cols
}

// Product returns op(a) * op(b), where op is the identity or the transpose
// per the corresponding flag. The inner dimensions after applying the flags
// must match.
func Product(name string, a, b *Matrix, transA, transB bool) (*Matrix, error) {
	m, ka := opShape(a, transA)
	kb, n := opShape(b, transB)
	if ka != kb {
		return nil, fmt.Errorf("%w: %s(T=%v) * %s(T=%v)", ErrShape, a.dims(), transA, b.dims(), transB)
	}

	c, err := Zeros(name, m, n)
	if err != nil {
		return nil, err
	}

	log.Debug("%s <- %s(T=%v) * %s(T=%v)", c.dims(), a.dims(), transA, b.dims(), transB)

	backend.Gemm(transA, transB, a.raw(), b.raw(), c.raw())
	return c, nil
}

// Inverse returns the inverse of the square matrix m, computed from its LU
// factorization. A singular m surfaces as ErrBackend.
func Inverse(name string, m *Matrix) (*Matrix, error) {
	if m.Rows != m.Cols {
		return nil, fmt.Errorf("%w: inverse of %s", ErrSquare, m.dims())
	}

	inv, err := New(name, m.Rows, m.Cols)
	if err != nil {
		return nil, err
	}

	log.Debug("%s <- inv %s", inv.dims(), m.dims())

	if err := backend.Inverse(m.raw(), inv.raw()); err != nil {
		return nil, fmt.Errorf("%w: inverse of %s: %v", ErrBackend, m.dims(), err)
	}
	return inv, nil
}

// Eigen computes the eigendecomposition of the symmetric matrix m. It
// returns the eigenvectors as the columns of V and the matching eigenvalues
// on the diagonal of D, in ascending order, after discarding every eigenpair
// whose eigenvalue falls below the filtering threshold. V may therefore have
// fewer columns than m has rows.
func Eigen(m *Matrix) (v *Matrix, d *Matrix, err error) {
	if m.Rows != m.Cols {
		return nil, nil, fmt.Errorf("%w: eigen of %s", ErrSquare, m.dims())
	}

	n := m.Rows
	w := make([]Scalar, n)
	full, err := New("V", n, n)
	if err != nil {
		return nil, nil, err
	}
	defer full.Release()

	if err := backend.Eigh(m.raw(), w, full.raw()); err != nil {
		return nil, nil, fmt.Errorf("%w: eigen of %s: %v", ErrBackend, m.dims(), err)
	}

	// eigenvalues come back ascending, so the pairs to keep form a suffix
	first := 0
	for first < n && w[first] < eigenEpsilon {
		first++
	}
	if first == n {
		return nil, nil, fmt.Errorf("%w: eigen of %s: no eigenvalue above %g", ErrBackend, m.dims(), eigenEpsilon)
	}

	v, err = full.CopyColumns("V", first, n)
	if err != nil {
		return nil, nil, err
	}

	keep := n - first
	d, err = Zeros("D", keep, keep)
	if err != nil {
		v.Release()
		return nil, nil, err
	}
	for i := 0; i < keep; i++ {
		d.Set(i, i, w[first+i])
	}

	log.Debug("%s, %s <- eigen %s, dropped %d", v.dims(), d.dims(), m.dims(), first)

	return v, d, nil
}

// GeneralizedEigen solves A x = lambda B x for symmetric a and symmetric
// positive definite b of the same order. Eigenvalues come back ascending on
// the diagonal of D with matching eigenvectors as the columns of V; unlike
// Eigen, no eigenpair is filtered out.
func GeneralizedEigen(a, b *Matrix) (v *Matrix, d *Matrix, err error) {
	if a.Rows != a.Cols || b.Rows != b.Cols {
		return nil, nil, fmt.Errorf("%w: generalized eigen of %s, %s", ErrSquare, a.dims(), b.dims())
	}
	if a.Rows != b.Rows {
		return nil, nil, fmt.Errorf("%w: generalized eigen of %s, %s", ErrShape, a.dims(), b.dims())
	}

	n := a.Rows
	w := make([]Scalar, n)
	v, err = New("V", n, n)
	if err != nil {
		return nil, nil, err
	}

	if err := backend.EighGen(a.raw(), b.raw(), w, v.raw()); err != nil {
		v.Release()
		return nil, nil, fmt.Errorf("%w: generalized eigen of %s, %s: %v", ErrBackend, a.dims(), b.dims(), err)
	}

	d, err = Zeros("D", n, n)
	if err != nil {
		v.Release()
		return nil, nil, err
	}
	for i := 0; i < n; i++ {
		d.Set(i, i, w[i])
	}

	log.Debug("%s, %s <- generalized eigen %s, %s", v.dims(), d.dims(), a.dims(), b.dims())

	return v, d, nil
}

// Sqrtm returns the principal square root of the symmetric matrix m,
// reconstructed as V * sqrt(D) * V^T from its eigendecomposition. It
// inherits the eigenvalue filtering of Eigen.
func Sqrtm(name string, m *Matrix) (*Matrix, error) {
	v, d, err := Eigen(m)
	if err != nil {
		return nil, err
	}
	defer v.Release()
	defer d.Release()

	d.Apply(func(x Scalar) Scalar {
		return Scalar(math.Sqrt(float64(x)))
	})

	vd, err := Product("VD", v, d, false, false)
	if err != nil {
		return nil, err
	}
	defer vd.Release()

	root, err := Product(name, vd, v, false, true)
	if err != nil {
		return nil, err
	}

	log.Debug("%s <- sqrtm %s", root.dims(), m.dims())

	return root, nil
}

// Norm returns the Euclidean norm of the row or column vector v.
func Norm(v *Matrix) (float64, error) {
	if !v.IsVector() {
		return 0, fmt.Errorf("%w: norm of %s", ErrVector, v.dims())
	}

	nrm := backend.Nrm2(v.Data)

	log.Debug("norm %s = %g", v.dims(), nrm)

	return nrm, nil
}

// Transpose returns the transposed copy of m. Callers combining a transpose
// with a product are better served by the flags on Product; this exists for
// the few places that need the transposed value itself.
func Transpose(name string, m *Matrix) (*Matrix, error) {
	t, err := New(name, m.Cols, m.Rows)
	if err != nil {
		return nil, err
	}
	for j := 0; j < m.Cols; j++ {
		for i := 0; i < m.Rows; i++ {
			t.Set(j, i, m.At(i, j))
		}
	}

	log.Debug("%s <- %s'", t.dims(), m.dims())

	return t, nil
}
