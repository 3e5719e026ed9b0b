package romloader

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// unpackGzip decompresses a gzip file. The payload may itself be a tar
// archive (a .tar.gz), detected by the ustar magic, in which case the
// first tar entry with a ROM extension is returned. A plain gzipped ROM
// keeps its name minus the compression suffix.
func unpackGzip(data []byte, path string, extensions []string) ([]byte, string, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read gzip file: %w", err)
	}
	defer gz.Close()

	payload, err := io.ReadAll(io.LimitReader(gz, maxArchiveSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decompress gzip file: %w", err)
	}
	if len(payload) > maxArchiveSize {
		return nil, "", ErrFileTooLarge
	}

	if isTar(payload) {
		return unpackTar(payload, extensions)
	}

	if len(payload) > maxROMSize {
		return nil, "", ErrFileTooLarge
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return payload, name, nil
}

// isTar checks for the ustar magic at its fixed header offset.
func isTar(data []byte) bool {
	const magicOffset = 257
	return len(data) > magicOffset+5 &&
		bytes.Equal(data[magicOffset:magicOffset+5], []byte("ustar"))
}

// unpackTar returns the first tar entry with a ROM extension.
func unpackTar(data []byte, extensions []string) ([]byte, string, error) {
	tr := tar.NewReader(bytes.NewReader(data))
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil, "", ErrNoROMFile
		}
		if err != nil {
			return nil, "", fmt.Errorf("failed to read tar archive: %w", err)
		}
		if hdr.Typeflag != tar.TypeReg || !hasROMExtension(hdr.Name, extensions) {
			continue
		}
		rom, err := readEntry(tr)
		if err != nil {
			return nil, "", fmt.Errorf("failed to extract %s: %w", hdr.Name, err)
		}
		return rom, filepath.Base(hdr.Name), nil
	}
}
