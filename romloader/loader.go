// Package romloader reads ROM images from disk. Archives (ZIP, 7z,
// gzip/tar.gz, RAR) are unpacked in memory and the first entry matching
// a recognized ROM extension is returned.
package romloader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	// maxROMSize caps a single ROM image. The largest licensed
	// cartridges are 4MB; 8MB leaves headroom for oversized dumps.
	maxROMSize = 8 * 1024 * 1024

	// maxArchiveSize caps how much of an archive file is pulled into
	// memory before unpacking.
	maxArchiveSize = 64 * 1024 * 1024
)

var (
	// ErrNoROMFile means an archive held no entry with a ROM extension.
	ErrNoROMFile = errors.New("no ROM file found in archive")

	// ErrUnsupportedFormat means the file is neither a known archive
	// nor a file with a recognized ROM extension.
	ErrUnsupportedFormat = errors.New("unsupported file format")

	// ErrFileTooLarge means the file, or what it unpacks to, exceeds
	// the size cap.
	ErrFileTooLarge = errors.New("file exceeds maximum size limit")
)

// containerKind identifies the archive wrapping a ROM, if any.
type containerKind int

const (
	containerNone containerKind = iota
	containerZIP
	container7z
	containerGzip
	containerRAR
)

// containerMagics maps leading signature bytes to archive kinds.
var containerMagics = []struct {
	prefix []byte
	kind   containerKind
}{
	{[]byte{0x50, 0x4B, 0x03, 0x04}, containerZIP},
	{[]byte{0x50, 0x4B, 0x05, 0x06}, containerZIP}, // empty zip
	{[]byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}, container7z},
	{[]byte{0x52, 0x61, 0x72, 0x21}, containerRAR}, // "Rar!"
	{[]byte{0x1F, 0x8B}, containerGzip},
}

// Load reads a ROM image from path. Archives are detected by signature
// bytes, with the filename extension as a fallback, and the first entry
// matching one of the given ROM extensions is unpacked. A bare file is
// returned as-is when its own extension matches.
//
// The returned name is the basename of the ROM file itself (the entry
// name for archives), suitable for display and save-file naming.
func Load(path string, extensions []string) ([]byte, string, error) {
	raw, err := readFileCapped(path)
	if err != nil {
		return nil, "", err
	}

	switch sniffContainer(raw, path) {
	case containerZIP:
		return unpackZIP(raw, extensions)
	case container7z:
		return unpack7z(raw, extensions)
	case containerGzip:
		return unpackGzip(raw, path, extensions)
	case containerRAR:
		return unpackRAR(raw, extensions)
	}

	if !hasROMExtension(path, extensions) {
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if len(raw) > maxROMSize {
		return nil, "", ErrFileTooLarge
	}
	return raw, filepath.Base(path), nil
}

// sniffContainer classifies data by signature bytes, falling back to
// the archive filename extensions.
func sniffContainer(data []byte, path string) containerKind {
	for _, m := range containerMagics {
		if bytes.HasPrefix(data, m.prefix) {
			return m.kind
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return containerZIP
	case ".7z":
		return container7z
	case ".gz", ".tgz":
		return containerGzip
	case ".rar":
		return containerRAR
	}
	return containerNone
}

// hasROMExtension reports whether name ends in one of the ROM
// extensions, case-insensitively.
func hasROMExtension(name string, extensions []string) bool {
	lower := strings.ToLower(name)
	for _, ext := range extensions {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

// readFileCapped reads the whole file, refusing anything larger than
// maxArchiveSize.
func readFileCapped(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxArchiveSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if len(data) > maxArchiveSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}

// readEntry drains one archive entry, enforcing the ROM size cap.
func readEntry(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxROMSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxROMSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}
