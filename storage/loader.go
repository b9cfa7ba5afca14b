package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// DatFileExt holds the file extension of serialized matrix files.
	DatFileExt = ".mat"
)

// ListPath enumerates .mat files in a given folder and returns the same
// folder as an absolute path plus a map from matrix identifier to file path.
// Files whose base name is not an unsigned integer are skipped.
func ListPath(dataPath string) (string, map[uint64]string, error) {
	dataPath, _ = filepath.Abs(dataPath)
	if info, err := os.Stat(dataPath); err != nil {
		return "", nil, err
	} else if !info.IsDir() {
		return "", nil, fmt.Errorf("%s is not a folder", dataPath)
	}

	files, err := os.ReadDir(dataPath)
	if err != nil {
		return "", nil, err
	}

	loadable := make(map[uint64]string)
	for _, file := range files {
		fileName := file.Name()
		if filepath.Ext(fileName) != DatFileExt {
			continue
		}

		id, err := strconv.ParseUint(strings.TrimSuffix(fileName, DatFileExt), 10, 64)
		if err != nil {
			continue
		}
		loadable[id] = filepath.Join(dataPath, fileName)
	}

	return dataPath, loadable, nil
}
