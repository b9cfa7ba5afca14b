package matrix

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func testImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(0, 0, color.Gray{Y: 10})
	img.SetGray(1, 0, color.Gray{Y: 20})
	img.SetGray(0, 1, color.Gray{Y: 30})
	img.SetGray(1, 1, color.Gray{Y: 40})
	return img
}

func TestFillColumnFromImage(t *testing.T) {
	m, _ := Zeros("m", 4, 2)
	defer m.Release()

	if err := m.FillColumnFromImage(1, testImage()); err != nil {
		t.Fatal(err)
	}

	// pixels land in row scanning order
	want := []Scalar{10, 20, 30, 40}
	for i, v := range want {
		if m.At(i, 1) != v {
			t.Fatalf("element %d = %g, want %g", i, m.At(i, 1), v)
		}
	}
	for i := 0; i < 4; i++ {
		if m.At(i, 0) != 0 {
			t.Fatal("untouched column was modified")
		}
	}
}

func TestFillColumnFromImageWithWrongPixelCount(t *testing.T) {
	m, _ := Zeros("m", 3, 1)
	defer m.Release()

	if err := m.FillColumnFromImage(0, testImage()); !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape, got %v", err)
	}
}

func TestColumnImageRoundTrip(t *testing.T) {
	m, _ := Zeros("m", 4, 1)
	defer m.Release()
	if err := m.FillColumnFromImage(0, testImage()); err != nil {
		t.Fatal(err)
	}

	img, err := m.ColumnImage(0, 2, 2)
	if err != nil {
		t.Fatal(err)
	}

	want := testImage()
	for i := range want.Pix {
		if img.Pix[i] != want.Pix[i] {
			t.Fatalf("pixel %d = %d, want %d", i, img.Pix[i], want.Pix[i])
		}
	}
}

func TestColumnImageClampsValues(t *testing.T) {
	m := fromColumns(t, "m", 4, []Scalar{-5, 0, 255, 300})
	defer m.Release()

	img, err := m.ColumnImage(0, 2, 2)
	if err != nil {
		t.Fatal(err)
	}

	want := []uint8{0, 0, 255, 255}
	for i, v := range want {
		if img.Pix[i] != v {
			t.Fatalf("pixel %d = %d, want %d", i, img.Pix[i], v)
		}
	}
}

func TestColumnImageWithBadShape(t *testing.T) {
	m, _ := Zeros("m", 3, 1)
	defer m.Release()

	if _, err := m.ColumnImage(0, 2, 2); !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape, got %v", err)
	}
	if _, err := m.ColumnImage(1, 3, 1); !errors.Is(err, ErrIndex) {
		t.Fatalf("expected ErrIndex, got %v", err)
	}
}
