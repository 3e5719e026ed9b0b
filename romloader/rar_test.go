package romloader

import (
	"testing"
)

func TestUnpackRAR_InvalidData(t *testing.T) {
	_, _, err := unpackRAR([]byte("not a rar archive"), testExtensions)
	if err == nil {
		t.Error("Expected error for invalid RAR data")
	}
}

func TestUnpackRAR_EmptyData(t *testing.T) {
	_, _, err := unpackRAR([]byte{}, testExtensions)
	if err == nil {
		t.Error("Expected error for empty data")
	}
}

func TestUnpackRAR_TruncatedSignature(t *testing.T) {
	_, _, err := unpackRAR([]byte{0x52, 0x61}, testExtensions)
	if err == nil {
		t.Error("Expected error for truncated signature")
	}
}

// The rardecode library may panic on severely malformed input; treat
// that the same as an error return.
func TestUnpackRAR_CorruptedArchive(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Logf("rardecode panicked on corrupted input: %v", r)
		}
	}()

	data := append([]byte("Rar!\x1a\x07\x01\x00"), make([]byte, 100)...)
	_, _, err := unpackRAR(data, testExtensions)
	if err == nil {
		t.Error("Expected error for corrupted RAR archive")
	}
}

func TestLoad_RARDispatch(t *testing.T) {
	path := writeTestFile(t, "game.rar", append([]byte("Rar!"), []byte("invalid")...))

	_, _, err := Load(path, testExtensions)
	if err == nil {
		t.Error("Expected error loading invalid RAR file")
	}
}
