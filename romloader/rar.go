package romloader

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"

	"github.com/nwaples/rardecode/v2"
)

// unpackRAR returns the first RAR entry with a ROM extension.
func unpackRAR(data []byte, extensions []string) ([]byte, string, error) {
	rr, err := rardecode.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read RAR archive: %w", err)
	}

	for {
		hdr, err := rr.Next()
		if err == io.EOF {
			return nil, "", ErrNoROMFile
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to read RAR archive: %w", err)
		}
		if hdr.IsDir || !hasROMExtension(hdr.Name, extensions) {
			continue
		}
		rom, err := readEntry(rr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to extract %s: %w", hdr.Name, err)
		}
		return rom, filepath.Base(hdr.Name), nil
	}
}
