package backend

import (
	"errors"
	"math"

	"github.com/pbnjay/memory"
)

// naive implements every kernel with plain Go loops. It exists as the
// no-dependency reference the optimized implementations are cross-checked
// against; solvers accumulate in double precision like the blas path.
type naive struct {
}

const (
	jacobiTolerance = 1e-12
	jacobiMaxSweeps = 100
)

func (impl naive) Name() string {
	return "naive"
}

func (impl naive) Space() uint64 {
	return memory.TotalMemory()
}

func (impl naive) Accelerated() bool {
	return false
}

func (impl naive) Dot(x, y []float32) float64 {
	dot := 0.0
	for i, v := range x {
		dot += float64(v) * float64(y[i])
	}
	return dot
}

func (impl naive) Nrm2(x []float32) float64 {
	sum := 0.0
	for _, v := range x {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum)
}

func (impl naive) Asum(x []float32) float64 {
	sum := 0.0
	for _, v := range x {
		sum += math.Abs(float64(v))
	}
	return sum
}

func (impl naive) Axpy(alpha float32, x, y []float32) {
	for i, v := range x {
		y[i] += alpha * v
	}
}

func (impl naive) Scal(alpha float32, x []float32) {
	for i := range x {
		x[i] *= alpha
	}
}

func opAt(d Dense, trans bool, i, j int) float64 {
	if trans {
		i, j = j, i
	}
	return float64(d.Data[j*d.Rows+i])
}

func (impl naive) Gemm(transA, transB bool, a, b, c Dense) {
	k := a.Cols
	if transA {
		k = a.Rows
	}
	for j := 0; j < c.Cols; j++ {
		for i := 0; i < c.Rows; i++ {
			sum := 0.0
			for p := 0; p < k; p++ {
				sum += opAt(a, transA, i, p) * opAt(b, transB, p, j)
			}
			c.Data[j*c.Rows+i] = float32(sum)
		}
	}
}

// toFloat64 expands a square column-major buffer into a row-indexed working
// copy, [i][j] addressing.
func toFloat64(d Dense) [][]float64 {
	n := d.Rows
	out := make([][]float64, n)
	for i := 0; i < n; i++ {
		out[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			out[i][j] = float64(d.Data[j*n+i])
		}
	}
	return out
}

func (impl naive) Inverse(a, dst Dense) error {
	n := a.Rows
	work := toFloat64(a)

	// Gauss-Jordan with partial pivoting, identity augmented in inv
	inv := make([][]float64, n)
	for i := range inv {
		inv[i] = make([]float64, n)
		inv[i][i] = 1
	}

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(work[r][col]) > math.Abs(work[pivot][col]) {
				pivot = r
			}
		}
		if work[pivot][col] == 0 {
			return errors.New("naive: matrix is singular")
		}
		work[col], work[pivot] = work[pivot], work[col]
		inv[col], inv[pivot] = inv[pivot], inv[col]

		p := work[col][col]
		for j := 0; j < n; j++ {
			work[col][j] /= p
			inv[col][j] /= p
		}
		for r := 0; r < n; r++ {
			if r == col || work[r][col] == 0 {
				continue
			}
			f := work[r][col]
			for j := 0; j < n; j++ {
				work[r][j] -= f * work[col][j]
				inv[r][j] -= f * inv[col][j]
			}
		}
	}

	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			dst.Data[j*n+i] = float32(inv[i][j])
		}
	}
	return nil
}

// jacobi diagonalizes the symmetric matrix a in place with cyclic Jacobi
// rotations, accumulating the rotations into q. Returns the diagonal as the
// eigenvalues, unsorted.
func jacobi(a, q [][]float64) ([]float64, error) {
	n := len(a)
	for i := 0; i < n; i++ {
		q[i][i] = 1
	}

	for sweep := 0; sweep < jacobiMaxSweeps; sweep++ {
		off, total := 0.0, 0.0
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				total += a[i][j] * a[i][j]
				if j > i {
					off += a[i][j] * a[i][j]
				}
			}
		}
		if off <= jacobiTolerance*total || total == 0 {
			vals := make([]float64, n)
			for i := 0; i < n; i++ {
				vals[i] = a[i][i]
			}
			return vals, nil
		}

		for p := 0; p < n-1; p++ {
			for r := p + 1; r < n; r++ {
				if a[p][r] == 0 {
					continue
				}
				theta := (a[r][r] - a[p][p]) / (2 * a[p][r])
				t := 1 / (math.Abs(theta) + math.Sqrt(theta*theta+1))
				if theta < 0 {
					t = -t
				}
				c := 1 / math.Sqrt(t*t+1)
				s := t * c

				for k := 0; k < n; k++ {
					akp, akr := a[k][p], a[k][r]
					a[k][p] = c*akp - s*akr
					a[k][r] = s*akp + c*akr
				}
				for k := 0; k < n; k++ {
					apk, ark := a[p][k], a[r][k]
					a[p][k] = c*apk - s*ark
					a[r][k] = s*apk + c*ark
				}
				for k := 0; k < n; k++ {
					qkp, qkr := q[k][p], q[k][r]
					q[k][p] = c*qkp - s*qkr
					q[k][r] = s*qkp + c*qkr
				}
			}
		}
	}
	return nil, errors.New("naive: eigensolver failed to converge")
}

// eighSorted runs jacobi and emits eigenpairs in ascending eigenvalue order.
func eighSorted(a [][]float64, w []float32, v Dense) error {
	n := len(a)
	q := make([][]float64, n)
	for i := range q {
		q[i] = make([]float64, n)
	}

	vals, err := jacobi(a, q)
	if err != nil {
		return err
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	for i := 1; i < n; i++ {
		for j := i; j > 0 && vals[order[j]] < vals[order[j-1]]; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}

	for j, idx := range order {
		w[j] = float32(vals[idx])
		for i := 0; i < n; i++ {
			v.Data[j*n+i] = float32(q[i][idx])
		}
	}
	return nil
}

func (impl naive) Eigh(a Dense, w []float32, v Dense) error {
	return eighSorted(toFloat64(a), w, v)
}

func (impl naive) EighGen(a, b Dense, w []float32, v Dense) error {
	n := a.Rows

	// b = L L^T, then the standard problem on L^-1 A L^-T and the vectors
	// mapped back through L^-T, same reduction as the blas path
	l := toFloat64(b)
	for j := 0; j < n; j++ {
		for i := j; i < n; i++ {
			sum := l[i][j]
			for k := 0; k < j; k++ {
				sum -= l[i][k] * l[j][k]
			}
			if i == j {
				if sum <= 0 {
					return errors.New("naive: right-hand matrix is not positive definite")
				}
				l[j][j] = math.Sqrt(sum)
			} else {
				l[i][j] = sum / l[j][j]
			}
		}
		for i := 0; i < j; i++ {
			l[i][j] = 0
		}
	}

	// Y = L^-1 A by forward substitution, column by column
	work := toFloat64(a)
	y := make([][]float64, n)
	for i := range y {
		y[i] = make([]float64, n)
	}
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			sum := work[i][j]
			for k := 0; k < i; k++ {
				sum -= l[i][k] * y[k][j]
			}
			y[i][j] = sum / l[i][i]
		}
	}

	// Z = Y L^-T, i.e. Z L^T = Y, again forward substitution on the rows
	z := make([][]float64, n)
	for i := range z {
		z[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum := y[i][j]
			for k := 0; k < j; k++ {
				sum -= z[i][k] * l[j][k]
			}
			z[i][j] = sum / l[j][j]
		}
	}

	// fold rounding asymmetry before the eigensolve
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			m := 0.5 * (z[i][j] + z[j][i])
			z[i][j], z[j][i] = m, m
		}
	}

	if err := eighSorted(z, w, v); err != nil {
		return err
	}

	// back-transform: solve L^T x = y for every eigenvector column
	for j := 0; j < n; j++ {
		col := v.Data[j*n : (j+1)*n]
		for i := n - 1; i >= 0; i-- {
			sum := float64(col[i])
			for k := i + 1; k < n; k++ {
				sum -= l[k][i] * float64(col[k])
			}
			col[i] = float32(sum / l[i][i])
		}
	}
	return nil
}
