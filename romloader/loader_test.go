package romloader

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// testExtensions is a common set of ROM extensions used across tests
var testExtensions = []string{".sms"}

// writeTestFile writes data under a temp dir and returns the path
func writeTestFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return path
}

// writeTestZip writes a .zip containing the given entries, in order
func writeTestZip(t *testing.T, entries map[string][]byte, order []string) string {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range order {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to create zip entry: %v", err)
		}
		if _, err := fw.Write(entries[name]); err != nil {
			t.Fatalf("Failed to write zip entry: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return writeTestFile(t, "test.zip", buf.Bytes())
}

// writeTestGzip writes a .gz wrapping the given payload
func writeTestGzip(t *testing.T, name string, payload []byte) string {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write(payload); err != nil {
		t.Fatalf("Failed to write gzip: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close gzip: %v", err)
	}
	return writeTestFile(t, name, buf.Bytes())
}

// tarball builds an in-memory tar archive with the given entries
func tarball(t *testing.T, entries map[string][]byte, order []string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := tar.NewWriter(&buf)
	for _, name := range order {
		data := entries[name]
		hdr := &tar.Header{Name: name, Mode: 0644, Size: int64(len(data))}
		if err := w.WriteHeader(hdr); err != nil {
			t.Fatalf("Failed to write tar header: %v", err)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatalf("Failed to write tar entry: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close tar: %v", err)
	}
	return buf.Bytes()
}

func TestLoad_RawROM(t *testing.T) {
	want := []byte{0x01, 0x02, 0x03, 0x04, 0x05}
	path := writeTestFile(t, "game.sms", want)

	data, name, err := Load(path, testExtensions)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(data, want) {
		t.Errorf("Data mismatch: expected %v, got %v", want, data)
	}
	if name != "game.sms" {
		t.Errorf("Name mismatch: expected game.sms, got %s", name)
	}
}

func TestLoad_RawROMCaseInsensitiveExtension(t *testing.T) {
	path := writeTestFile(t, "game.SMS", []byte{0x01})

	_, name, err := Load(path, testExtensions)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if name != "game.SMS" {
		t.Errorf("Name mismatch: got %s", name)
	}
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeTestFile(t, "game.xyz", []byte{0x01, 0x02})

	_, _, err := Load(path, testExtensions)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, _, err := Load("/nonexistent/path/game.sms", testExtensions)
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeTestFile(t, "game.sms", []byte{})

	data, _, err := Load(path, testExtensions)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("Expected empty data, got %d bytes", len(data))
	}
}

func TestLoad_RawROMTooLarge(t *testing.T) {
	path := writeTestFile(t, "game.sms", make([]byte, maxROMSize+1))

	_, _, err := Load(path, testExtensions)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("Expected ErrFileTooLarge, got %v", err)
	}
}

func TestLoad_ZipArchive(t *testing.T) {
	want := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	path := writeTestZip(t, map[string][]byte{"game.sms": want}, []string{"game.sms"})

	data, name, err := Load(path, testExtensions)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(data, want) {
		t.Errorf("Data mismatch: expected %v, got %v", want, data)
	}
	if name != "game.sms" {
		t.Errorf("Name mismatch: expected game.sms, got %s", name)
	}
}

func TestLoad_ZipSkipsNonROMEntries(t *testing.T) {
	want := []byte{0x12, 0x34}
	entries := map[string][]byte{
		"readme.txt": []byte("docs"),
		"game.sms":   want,
	}
	path := writeTestZip(t, entries, []string{"readme.txt", "game.sms"})

	data, name, err := Load(path, testExtensions)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(data, want) {
		t.Errorf("Data mismatch: expected %v, got %v", want, data)
	}
	if name != "game.sms" {
		t.Errorf("Name mismatch: got %s", name)
	}
}

func TestLoad_ZipSubdirectoryEntry(t *testing.T) {
	want := []byte{0x12, 0x34, 0x56}
	path := writeTestZip(t, map[string][]byte{"roms/games/game.sms": want}, []string{"roms/games/game.sms"})

	data, name, err := Load(path, testExtensions)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(data, want) {
		t.Errorf("Data mismatch: expected %v, got %v", want, data)
	}
	if name != "game.sms" {
		t.Errorf("Name should be just the filename, got %s", name)
	}
}

func TestLoad_ZipWithoutROM(t *testing.T) {
	path := writeTestZip(t, map[string][]byte{"readme.txt": []byte("hello")}, []string{"readme.txt"})

	_, _, err := Load(path, testExtensions)
	if !errors.Is(err, ErrNoROMFile) {
		t.Errorf("Expected ErrNoROMFile, got %v", err)
	}
}

func TestLoad_GzippedROM(t *testing.T) {
	want := []byte{0x11, 0x22, 0x33, 0x44, 0x55}
	path := writeTestGzip(t, "game.sms.gz", want)

	data, name, err := Load(path, testExtensions)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(data, want) {
		t.Errorf("Data mismatch: expected %v, got %v", want, data)
	}
	if name != "game.sms" {
		t.Errorf("Name should drop the .gz suffix, got %s", name)
	}
}

func TestLoad_GzippedROMTooLarge(t *testing.T) {
	path := writeTestGzip(t, "game.sms.gz", make([]byte, maxROMSize+1))

	_, _, err := Load(path, testExtensions)
	if !errors.Is(err, ErrFileTooLarge) {
		t.Errorf("Expected ErrFileTooLarge, got %v", err)
	}
}

func TestLoad_TarGz(t *testing.T) {
	want := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	entries := map[string][]byte{
		"notes.txt": []byte("ignore me"),
		"game.sms":  want,
	}
	payload := tarball(t, entries, []string{"notes.txt", "game.sms"})
	path := writeTestGzip(t, "game.tar.gz", payload)

	data, name, err := Load(path, testExtensions)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(data, want) {
		t.Errorf("Data mismatch: expected %v, got %v", want, data)
	}
	if name != "game.sms" {
		t.Errorf("Name mismatch: got %s", name)
	}
}

func TestLoad_TarGzWithoutROM(t *testing.T) {
	payload := tarball(t, map[string][]byte{"notes.txt": []byte("x")}, []string{"notes.txt"})
	path := writeTestGzip(t, "stuff.tar.gz", payload)

	_, _, err := Load(path, testExtensions)
	if !errors.Is(err, ErrNoROMFile) {
		t.Errorf("Expected ErrNoROMFile, got %v", err)
	}
}

func TestSniffContainer_Magic(t *testing.T) {
	tests := []struct {
		data []byte
		want containerKind
	}{
		{[]byte{0x50, 0x4B, 0x03, 0x04, 0x00}, containerZIP},
		{[]byte{0x50, 0x4B, 0x05, 0x06, 0x00}, containerZIP},
		{[]byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C, 0x00}, container7z},
		{[]byte{0x1F, 0x8B, 0x08}, containerGzip},
		{[]byte("Rar!\x1a\x07\x01\x00"), containerRAR},
		{[]byte{0x01, 0x02, 0x03, 0x04}, containerNone},
	}

	for _, tc := range tests {
		// Neutral path so only the signature decides
		if got := sniffContainer(tc.data, "file.dat"); got != tc.want {
			t.Errorf("sniffContainer(%v): expected %d, got %d", tc.data, tc.want, got)
		}
	}
}

func TestSniffContainer_ExtensionFallback(t *testing.T) {
	tests := []struct {
		path string
		want containerKind
	}{
		{"game.zip", containerZIP},
		{"game.ZIP", containerZIP},
		{"game.7z", container7z},
		{"game.gz", containerGzip},
		{"game.tgz", containerGzip},
		{"game.tar.gz", containerGzip},
		{"game.rar", containerRAR},
		{"game.RAR", containerRAR},
		{"game.sms", containerNone},
		{"game.unknown", containerNone},
	}

	for _, tc := range tests {
		if got := sniffContainer([]byte{}, tc.path); got != tc.want {
			t.Errorf("sniffContainer([], %s): expected %d, got %d", tc.path, tc.want, got)
		}
	}
}

func TestHasROMExtension(t *testing.T) {
	exts := []string{".sms", ".md", ".bin"}
	tests := []struct {
		name string
		want bool
	}{
		{"game.sms", true},
		{"game.SMS", true},
		{"game.Sms", true},
		{"game.md", true},
		{"game.BIN", true},
		{"game.gen", false},
		{"game.sms.bak", false},
		{"game", false},
		{"sms", false},
		{".sms", true},
	}

	for _, tc := range tests {
		if got := hasROMExtension(tc.name, exts); got != tc.want {
			t.Errorf("hasROMExtension(%q): expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestIsTar(t *testing.T) {
	payload := tarball(t, map[string][]byte{"game.sms": {0x01}}, []string{"game.sms"})
	if !isTar(payload) {
		t.Error("Expected tar payload to be recognized")
	}
	if isTar([]byte("plain rom data")) {
		t.Error("Short non-tar payload should not be recognized")
	}
	if isTar(make([]byte, 1024)) {
		t.Error("Zeroed payload should not be recognized as tar")
	}
}
