package matrix

import (
	"errors"
	"math"
	"testing"
)

func distanceFixtures(t *testing.T) (*Matrix, *Matrix) {
	t.Helper()
	a := fromColumns(t, "a", 3, []Scalar{1, 0, 0}, []Scalar{2, 2, 1})
	b := fromColumns(t, "b", 3, []Scalar{0, 1, 0}, []Scalar{1, 1, 1})
	return a, b
}

func TestEuclideanDistanceConcrete(t *testing.T) {
	a, b := distanceFixtures(t)
	defer a.Release()
	defer b.Release()

	d, err := EuclideanDistance(a, 0, b, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !closeTo(d, math.Sqrt2, 1e-5) {
		t.Fatalf("L2([1 0 0], [0 1 0]) = %g, want sqrt(2)", d)
	}
}

func TestTaxicabDistanceConcrete(t *testing.T) {
	a, b := distanceFixtures(t)
	defer a.Release()
	defer b.Release()

	d, err := TaxicabDistance(a, 0, b, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !closeTo(d, 2, 1e-5) {
		t.Fatalf("L1([1 0 0], [0 1 0]) = %g, want 2", d)
	}
}

func TestCosineDistanceConcrete(t *testing.T) {
	a, b := distanceFixtures(t)
	defer a.Release()
	defer b.Release()

	// orthogonal vectors: negated cosine similarity is zero
	d, err := CosineDistance(a, 0, b, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !closeTo(d, 0, 1e-5) {
		t.Fatalf("COS of orthogonal vectors = %g, want 0", d)
	}

	// parallel vectors: most similar possible, so the most negative
	d, err = CosineDistance(a, 0, a, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !closeTo(d, -1, 1e-5) {
		t.Fatalf("COS of a vector with itself = %g, want -1", d)
	}
}

func TestCosineDistanceWithZeroVector(t *testing.T) {
	a := fromColumns(t, "a", 2, []Scalar{0, 0})
	defer a.Release()
	b := fromColumns(t, "b", 2, []Scalar{1, 1})
	defer b.Release()

	d, err := CosineDistance(a, 0, b, 0)
	if err != nil {
		t.Fatal(err)
	}
	if d != 0 {
		t.Fatalf("COS with a zero vector = %g, want 0", d)
	}
}

func TestDistanceSymmetry(t *testing.T) {
	a, b := distanceFixtures(t)
	defer a.Release()
	defer b.Release()

	for _, dist := range []DistFunc{EuclideanDistance, TaxicabDistance, CosineDistance} {
		for i := 0; i < a.Cols; i++ {
			for j := 0; j < b.Cols; j++ {
				d1, err := dist(a, i, b, j)
				if err != nil {
					t.Fatal(err)
				}
				d2, err := dist(b, j, a, i)
				if err != nil {
					t.Fatal(err)
				}
				if !closeTo(d1, d2, 1e-6) {
					t.Fatalf("metric is not symmetric: %g vs %g", d1, d2)
				}
			}
		}
	}
}

func TestDistanceWithMismatchedRows(t *testing.T) {
	a, _ := Ones("a", 2, 1)
	defer a.Release()
	b, _ := Ones("b", 3, 1)
	defer b.Release()

	for _, dist := range []DistFunc{EuclideanDistance, TaxicabDistance, CosineDistance} {
		if _, err := dist(a, 0, b, 0); !errors.Is(err, ErrShape) {
			t.Fatalf("expected ErrShape, got %v", err)
		}
	}
}

func TestDistanceWithBadColumn(t *testing.T) {
	a, _ := Ones("a", 2, 1)
	defer a.Release()

	if _, err := EuclideanDistance(a, 1, a, 0); !errors.Is(err, ErrIndex) {
		t.Fatalf("expected ErrIndex, got %v", err)
	}
	if _, err := EuclideanDistance(a, 0, a, -1); !errors.Is(err, ErrIndex) {
		t.Fatalf("expected ErrIndex, got %v", err)
	}
}
