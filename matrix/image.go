package matrix

import (
	"fmt"
	"image"
	"image/color"

	"github.com/evilsocket/islazy/log"
)

// FillColumnFromImage loads the grayscale intensities of img into column j,
// scanning pixels in row order. The pixel count must equal the matrix row
// count.
func (m *Matrix) FillColumnFromImage(j int, img image.Image) error {
	bounds := img.Bounds()
	if bounds.Dx()*bounds.Dy() != m.Rows {
		return fmt.Errorf("%w: %d x %d image into column of %s", ErrShape, bounds.Dx(), bounds.Dy(), m.dims())
	}
	if j < 0 || j >= m.Cols {
		return fmt.Errorf("%w: %s(:, %d)", ErrIndex, m.dims(), j)
	}

	col := m.column(j)
	idx := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			col[idx] = Scalar(gray.Y)
			idx++
		}
	}

	log.Debug("%s(:, %d) <- %d x %d image", m.dims(), j, bounds.Dx(), bounds.Dy())

	return nil
}

// ColumnImage renders column j as a w x h grayscale image, the reverse of
// FillColumnFromImage. Values are clamped to the 8 bit range.
func (m *Matrix) ColumnImage(j, w, h int) (*image.Gray, error) {
	if w*h != m.Rows {
		return nil, fmt.Errorf("%w: column of %s into %d x %d image", ErrShape, m.dims(), w, h)
	}
	if j < 0 || j >= m.Cols {
		return nil, fmt.Errorf("%w: %s(:, %d)", ErrIndex, m.dims(), j)
	}

	img := image.NewGray(image.Rect(0, 0, w, h))
	col := m.column(j)
	for idx, v := range col {
		switch {
		case v < 0:
			v = 0
		case v > 255:
			v = 255
		}
		img.Pix[idx] = uint8(v)
	}

	log.Debug("%d x %d image <- %s(:, %d)", w, h, m.dims(), j)

	return img, nil
}
