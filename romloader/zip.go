package romloader

import (
	"archive/zip"
	"bytes"
	"fmt"
	"path/filepath"
)

// unpackZIP returns the first ZIP entry with a ROM extension.
func unpackZIP(data []byte, extensions []string) ([]byte, string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read ZIP archive: %w", err)
	}

	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !hasROMExtension(f.Name, extensions) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, "", fmt.Errorf("failed to open %s in ZIP archive: %w", f.Name, err)
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
