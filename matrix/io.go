package matrix

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/evilsocket/islazy/log"
)

// WriteText writes the matrix in its text form: a `<label> [<rows>, <cols>]`
// header line followed by one line per row of whitespace separated values.
func (m *Matrix) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "%s [%d, %d]\n", m.Name, m.Rows, m.Cols); err != nil {
		return err
	}
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			if j > 0 {
				if err := bw.WriteByte(' '); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(bw, "%g", m.At(i, j)); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadText parses the text form produced by external tooling: `<rows> <cols>`
// followed by the values in row order. Note the asymmetry with WriteText:
// no label is expected or recovered.
func ReadText(name string, r io.Reader) (*Matrix, error) {
	br := bufio.NewReader(r)

	var rows, cols int
	if _, err := fmt.Fscan(br, &rows, &cols); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: %d x %d header", ErrFormat, rows, cols)
	}

	m, err := New(name, rows, cols)
	if err != nil {
		return nil, err
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			var v Scalar
			if _, err := fmt.Fscan(br, &v); err != nil {
				m.Release()
				return nil, fmt.Errorf("%w: element (%d, %d): %v", ErrFormat, i, j, err)
			}
			m.Set(i, j, v)
		}
	}

	log.Debug("%s <- text stream", m.dims())

	return m, nil
}

// WriteBinary writes the matrix in its binary form: rows and cols as 32 bit
// little-endian integers followed by the raw column-major element buffer.
// No label is stored.
func (m *Matrix) WriteBinary(w io.Writer) error {
	header := [2]int32{int32(m.Rows), int32(m.Cols)}
	if err := binary.Write(w, binary.LittleEndian, header[:]); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, m.Data)
}

// ReadBinary parses the binary form written by WriteBinary.
func ReadBinary(name string, r io.Reader) (*Matrix, error) {
	var header [2]int32
	if err := binary.Read(r, binary.LittleEndian, header[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}
	if header[0] < 1 || header[1] < 1 {
		return nil, fmt.Errorf("%w: %d x %d header", ErrFormat, header[0], header[1])
	}

	m, err := New(name, int(header[0]), int(header[1]))
	if err != nil {
		return nil, err
	}
	if err := binary.Read(r, binary.LittleEndian, m.Data); err != nil {
		m.Release()
		return nil, fmt.Errorf("%w: %v", ErrFormat, err)
	}

	log.Debug("%s <- binary stream", m.dims())

	return m, nil
}

// Save writes the binary form to a file.
func (m *Matrix) Save(fileName string) error {
	f, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := m.WriteBinary(f); err != nil {
		return fmt.Errorf("error while saving %s to %s: %v", m.dims(), fileName, err)
	}
	return nil
}

// Load reads the binary form from a file, using the file name as the label.
func Load(fileName string) (*Matrix, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadBinary(fileName, f)
}
