package romloader

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/bodgit/sevenzip"
)

// unpack7z returns the first 7z entry with a ROM extension.
func unpack7z(data []byte, extensions []string) ([]byte, string, error) {
	zr, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read 7z archive: %w", err)
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !hasROMExtension(f.Name, extensions) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, "", fmt.Errorf("failed to open %s in 7z archive: %w", f.Name, err)
		}
		rom, err := readEntry(rc)
		rc.Close()
		if err != nil {
			return nil, "", fmt.Errorf("failed to extract %s: %w", f.Name, err)
		}
		return rom, filepath.Base(f.Name), nil
	}

	return nil, "", ErrNoROMFile
}
