// Package storage maps matrices to unique integer identifiers and persists
// them on disk transparently, one binary data file per matrix.
package storage

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/evilsocket/islazy/log"

	"github.com/mcbolto/facerec/matrix"
)

var (
	// ErrInvalidID is returned when the index detects a collision of
	// identifiers, usually due to multiple processes sharing a data path.
	ErrInvalidID = errors.New("storage: identifier is not unique")
	// ErrNotFound is returned when no matrix is mapped to the queried
	// identifier.
	ErrNotFound = errors.New("storage: matrix not found")

	pathSep = string(os.PathSeparator)
)

// Index maps matrices to unique integer identifiers, keeps them in memory
// and persists every mutation to a <id>.mat file under the data path.
type Index struct {
	sync.RWMutex
	dataPath string
	index    map[uint64]*matrix.Matrix
	nextID   uint64
}

// New creates an empty Index rooted at dataPath.
//
// NOTE: pathSep is added if needed when the index object is created, this
// spares us a string concatenation per lookup.
func New(dataPath string) *Index {
	if !strings.HasSuffix(dataPath, pathSep) {
		dataPath += pathSep
	}
	return &Index{
		dataPath: dataPath,
		index:    make(map[uint64]*matrix.Matrix),
		nextID:   1,
	}
}

func (i *Index) pathForID(id uint64) string {
	return i.dataPath + strconv.FormatUint(id, 10) + DatFileExt
}

// Load enumerates the data files under the data path, deserializes them and
// maps them into the index by their identifiers.
func (i *Index) Load() error {
	i.Lock()
	defer i.Unlock()

	absPath, files, err := ListPath(i.dataPath)
	if err != nil {
		return err
	}

	i.dataPath = absPath + pathSep
	i.nextID = 1
	if nfiles := len(files); nfiles > 0 {
		log.Info("loading %d data files from %s ...", nfiles, i.dataPath)
		for id, fileName := range files {
			m, err := matrix.Load(fileName)
			if err != nil {
				return err
			}
			i.index[id] = m
			// files are not enumerated in id order
			if id >= i.nextID {
				i.nextID = id + 1
			}
		}
	}

	return nil
}

// ForEach executes a callback passing as arguments every identifier and
// matrix of the index; it interrupts the loop if the callback returns an
// error, and the same error is returned.
func (i *Index) ForEach(cb func(id uint64, m *matrix.Matrix) error) error {
	i.RLock()
	defer i.RUnlock()
	for id, m := range i.index {
		if err := cb(id, m); err != nil {
			return err
		}
	}
	return nil
}

// Size returns the number of matrices stored in this index.
func (i *Index) Size() int {
	i.RLock()
	defer i.RUnlock()
	return len(i.index)
}

// Find returns the matrix mapped to the given identifier, or nil.
func (i *Index) Find(id uint64) *matrix.Matrix {
	i.RLock()
	defer i.RUnlock()
	return i.index[id]
}

// Create maps the matrix to a new unique identifier, persists it and
// returns the identifier.
func (i *Index) Create(m *matrix.Matrix) (uint64, error) {
	i.Lock()
	defer i.Unlock()

	id := i.nextID
	if _, found := i.index[id]; found {
		return 0, ErrInvalidID
	}
	if err := m.Save(i.pathForID(id)); err != nil {
		return 0, err
	}

	i.nextID++
	i.index[id] = m

	return id, nil
}

// Update replaces the matrix mapped to an existing identifier and persists
// the new contents.
func (i *Index) Update(id uint64, m *matrix.Matrix) error {
	i.Lock()
	defer i.Unlock()

	if _, found := i.index[id]; !found {
		return ErrNotFound
	}
	if err := m.Save(i.pathForID(id)); err != nil {
		return err
	}

	i.index[id] = m
	return nil
}

// Delete removes the identifier from the index and its data file from disk,
// returning the matrix that was mapped to it.
func (i *Index) Delete(id uint64) (*matrix.Matrix, error) {
	i.Lock()
	defer i.Unlock()

	m, found := i.index[id]
	if !found {
		return nil, ErrNotFound
	}

	delete(i.index, id)
	if err := os.Remove(i.pathForID(id)); err != nil {
		return nil, err
	}

	return m, nil
}
