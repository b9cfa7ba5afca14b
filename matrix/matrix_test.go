package matrix

import (
	"errors"
	"testing"

	"github.com/evilsocket/islazy/log"
)

func init() {
	log.Level = log.ERROR
}

// fromColumns builds a rows x cols matrix from explicit column slices.
func fromColumns(t *testing.T, name string, rows int, cols ...[]Scalar) *Matrix {
	t.Helper()
	m, err := New(name, rows, len(cols))
	if err != nil {
		t.Fatal(err)
	}
	for j, col := range cols {
		if len(col) != rows {
			t.Fatalf("column %d has %d elements, want %d", j, len(col), rows)
		}
		copy(m.column(j), col)
	}
	return m
}

func closeTo(a, b, eps float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestNew(t *testing.T) {
	m, err := New("m", 3, 4)
	if err != nil {
		t.Fatal(err)
	} else if m.Rows != 3 || m.Cols != 4 {
		t.Fatalf("unexpected shape %d x %d", m.Rows, m.Cols)
	} else if len(m.Data) != 12 {
		t.Fatalf("unexpected buffer length %d", len(m.Data))
	}
	m.Release()
}

func TestNewWithBadShape(t *testing.T) {
	for _, shape := range [][2]int{{0, 1}, {1, 0}, {-2, 3}, {0, 0}} {
		if _, err := New("m", shape[0], shape[1]); !errors.Is(err, ErrShape) {
			t.Fatalf("expected ErrShape for %v, got %v", shape, err)
		}
	}
}

func TestNewWithImpossibleSize(t *testing.T) {
	if _, err := New("m", 1<<30, 1<<30); !errors.Is(err, ErrSize) {
		t.Fatalf("expected ErrSize, got %v", err)
	}
}

func TestIdentity(t *testing.T) {
	m, err := Identity("I", 3)
	if err != nil {
		t.Fatal(err)
	}
	defer m.Release()

	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := Scalar(0)
			if i == j {
				want = 1
			}
			if m.At(i, j) != want {
				t.Fatalf("I(%d, %d) = %g", i, j, m.At(i, j))
			}
		}
	}
}

func TestZerosAndOnes(t *testing.T) {
	z, err := Zeros("z", 2, 5)
	if err != nil {
		t.Fatal(err)
	}
	defer z.Release()

	o, err := Ones("o", 2, 5)
	if err != nil {
		t.Fatal(err)
	}
	defer o.Release()

	for i := range z.Data {
		if z.Data[i] != 0 {
			t.Fatalf("zeros element %d = %g", i, z.Data[i])
		}
		if o.Data[i] != 1 {
			t.Fatalf("ones element %d = %g", i, o.Data[i])
		}
	}
}

func TestCopyIsDeep(t *testing.T) {
	m := fromColumns(t, "m", 2, []Scalar{1, 2}, []Scalar{3, 4})
	defer m.Release()

	c, err := m.Copy("c")
	if err != nil {
		t.Fatal(err)
	}
	defer c.Release()

	c.Set(0, 0, 42)
	if m.At(0, 0) != 1 {
		t.Fatal("copy shares the buffer with its source")
	}
}

func TestCopyColumns(t *testing.T) {
	m := fromColumns(t, "m", 2, []Scalar{1, 2}, []Scalar{3, 4}, []Scalar{5, 6})
	defer m.Release()

	c, err := m.CopyColumns("c", 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Release()

	if c.Rows != 2 || c.Cols != 2 {
		t.Fatalf("unexpected shape %d x %d", c.Rows, c.Cols)
	}
	if c.At(0, 0) != 3 || c.At(1, 0) != 4 || c.At(0, 1) != 5 || c.At(1, 1) != 6 {
		t.Fatalf("unexpected contents %v", c.Data)
	}
}

func TestCopyColumnsWithBadRange(t *testing.T) {
	m := fromColumns(t, "m", 2, []Scalar{1, 2}, []Scalar{3, 4})
	defer m.Release()

	for _, r := range [][2]int{{-1, 1}, {1, 1}, {2, 1}, {0, 3}} {
		if _, err := m.CopyColumns("c", r[0], r[1]); !errors.Is(err, ErrIndex) {
			t.Fatalf("expected ErrIndex for [%d, %d), got %v", r[0], r[1], err)
		}
	}
}

func TestCopyRows(t *testing.T) {
	m := fromColumns(t, "m", 3, []Scalar{1, 2, 3}, []Scalar{4, 5, 6})
	defer m.Release()

	c, err := m.CopyRows("c", 1, 3)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Release()

	if c.Rows != 2 || c.Cols != 2 {
		t.Fatalf("unexpected shape %d x %d", c.Rows, c.Cols)
	}
	if c.At(0, 0) != 2 || c.At(1, 0) != 3 || c.At(0, 1) != 5 || c.At(1, 1) != 6 {
		t.Fatalf("unexpected contents %v", c.Data)
	}
}

func TestCopyRowsWithBadRange(t *testing.T) {
	m := fromColumns(t, "m", 2, []Scalar{1, 2})
	defer m.Release()

	if _, err := m.CopyRows("c", 0, 3); !errors.Is(err, ErrIndex) {
		t.Fatalf("expected ErrIndex, got %v", err)
	}
}

func TestSyncIsANoOpOnHostBackends(t *testing.T) {
	m := fromColumns(t, "m", 2, []Scalar{1, 2})
	defer m.Release()

	m.SyncToDevice()
	m.SyncToHost()

	if m.At(0, 0) != 1 || m.At(1, 0) != 2 {
		t.Fatalf("sync altered the host buffer: %v", m.Data)
	}
	if m.dev != nil {
		t.Fatal("device mirror allocated without an accelerated backend")
	}
}

func TestRelease(t *testing.T) {
	m := fromColumns(t, "m", 2, []Scalar{1, 2})
	m.Release()
	if m.Data != nil || m.Rows != 0 || m.Cols != 0 {
		t.Fatal("release did not invalidate the handle")
	}
}
