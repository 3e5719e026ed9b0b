package shell

import (
	"fmt"
	"testing"

	emucore "github.com/thomas-k-cameron/meru/api"
)

// fakeStater serializes a counter so tests can tell states apart.
type fakeStater struct {
	counter  int
	restored int
	failNext bool
}

func (f *fakeStater) Serialize() ([]byte, error) {
	if f.failNext {
		f.failNext = false
		return nil, fmt.Errorf("serialize refused")
	}
	f.counter++
	return []byte{byte(f.counter)}, nil
}

func (f *fakeStater) Deserialize(data []byte) error {
	f.restored = int(data[0])
	return nil
}

// fakeSession counts RunFrame calls; everything else is inert.
type fakeSession struct {
	frames    int
	resets    int
	autoSaves int
	buttons   map[int]uint32
	saveErr   error
	loadErr   error
	lastSlot  uint
}

func (f *fakeSession) Reset()    { f.resets++ }
func (f *fakeSession) RunFrame() { f.frames++ }
func (f *fakeSession) FrameBuffer() []byte {
	return make([]byte, 4)
}
func (f *fakeSession) FrameBufferSize() emucore.FrameSize {
	return emucore.FrameSize{Width: 1, Height: 1}
}
func (f *fakeSession) AudioSamples() []int16 { return nil }
func (f *fakeSession) SetButtons(player int, buttons uint32) {
	if f.buttons == nil {
		f.buttons = make(map[int]uint32)
	}
	f.buttons[player] = buttons
}
func (f *fakeSession) SaveStateSlot(slot uint, cfg emucore.StateConfig) error {
	f.lastSlot = slot
	return f.saveErr
}
func (f *fakeSession) LoadStateSlot(slot uint, cfg emucore.StateConfig) error {
	f.lastSlot = slot
	return f.loadErr
}
func (f *fakeSession) PushAutoSave() { f.autoSaves++ }
func (f *fakeSession) Close()        {}

func TestNewRewindBuffer(t *testing.T) {
	// 1MB buffer, 100 bytes per state = 10485 entries
	rb := NewRewindBuffer(1, 1, 100)
	if rb == nil {
		t.Fatal("expected non-nil buffer")
	}
	if rb.Capacity() != (1*1024*1024)/100 {
		t.Errorf("capacity = %d, want %d", rb.Capacity(), (1*1024*1024)/100)
	}
	if rb.Count() != 0 {
		t.Errorf("count = %d, want 0", rb.Count())
	}
}

func TestNewRewindBufferInvalidArgs(t *testing.T) {
	tests := []struct {
		name      string
		sizeMB    int
		frameStep int
		stateSize int
	}{
		{"zero state size", 1, 1, 0},
		{"negative state size", 1, 1, -1},
		{"zero buffer size", 0, 1, 100},
		{"zero frame step", 1, 0, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rb := NewRewindBuffer(tt.sizeMB, tt.frameStep, tt.stateSize)
			if rb != nil {
				t.Error("expected nil buffer for invalid args")
			}
		})
	}
}

func TestRewindBufferCaptureAndRewind(t *testing.T) {
	// Capacity of 8
	rb := NewRewindBuffer(1, 1, (1*1024*1024)/8)
	if rb == nil {
		t.Fatal("expected non-nil buffer")
	}

	stater := &fakeStater{}
	for i := 0; i < 5; i++ {
		if err := rb.Capture(stater); err != nil {
			t.Fatalf("capture %d: %v", i, err)
		}
	}
	if rb.Count() != 5 {
		t.Fatalf("count = %d, want 5", rb.Count())
	}

	session := &fakeSession{}
	// Pop two states: lands on the third capture.
	if !rb.Rewind(session, stater, 2) {
		t.Fatal("rewind failed with populated buffer")
	}
	if stater.restored != 3 {
		t.Errorf("restored state = %d, want 3", stater.restored)
	}
	if session.frames != 1 {
		t.Errorf("RunFrame calls = %d, want 1 to regenerate framebuffer", session.frames)
	}
	if rb.Count() != 3 {
		t.Errorf("count = %d after rewind, want 3", rb.Count())
	}
}

func TestRewindBufferRewindPastOldest(t *testing.T) {
	rb := NewRewindBuffer(1, 1, (1*1024*1024)/8)
	stater := &fakeStater{}
	for i := 0; i < 3; i++ {
		rb.Capture(stater)
	}

	session := &fakeSession{}
	// Asking for more steps than stored clamps to the oldest state.
	if !rb.Rewind(session, stater, 10) {
		t.Fatal("rewind failed")
	}
	if stater.restored != 1 {
		t.Errorf("restored state = %d, want oldest (1)", stater.restored)
	}
	if rb.Count() != 0 {
		t.Errorf("count = %d, want 0", rb.Count())
	}

	// Buffer is now exhausted.
	if rb.Rewind(session, stater, 1) {
		t.Error("rewind succeeded on exhausted buffer")
	}
}

func TestRewindBufferCaptureError(t *testing.T) {
	rb := NewRewindBuffer(1, 1, (1*1024*1024)/8)
	stater := &fakeStater{failNext: true}
	if err := rb.Capture(stater); err == nil {
		t.Fatal("expected error from failed serialize")
	}
	if rb.Count() != 0 {
		t.Errorf("count = %d after failed capture, want 0", rb.Count())
	}
}

func TestRewindBufferFrameStepSkipping(t *testing.T) {
	rb := NewRewindBuffer(1, 3, (1*1024*1024)/8)
	stater := &fakeStater{}

	// With frameStep=3, only every 3rd call captures.
	for i := 0; i < 9; i++ {
		if err := rb.Capture(stater); err != nil {
			t.Fatalf("capture %d: %v", i, err)
		}
	}
	if rb.Count() != 3 {
		t.Errorf("count = %d after 9 calls at step 3, want 3", rb.Count())
	}
}

func TestRewindBufferReset(t *testing.T) {
	rb := NewRewindBuffer(1, 1, (1*1024*1024)/8)
	stater := &fakeStater{}
	for i := 0; i < 4; i++ {
		rb.Capture(stater)
	}

	rb.Reset()

	if rb.head != 0 || rb.count != 0 || rb.frameTick != 0 {
		t.Errorf("head/count/frameTick = %d/%d/%d after reset, want 0/0/0", rb.head, rb.count, rb.frameTick)
	}
	for i, slot := range rb.buffer {
		if slot != nil {
			t.Errorf("buffer[%d] not nil after reset", i)
		}
	}
}

func TestRewindBufferCountNeverExceedsCapacity(t *testing.T) {
	// Small buffer: 10 entries
	rb := NewRewindBuffer(1, 1, (1*1024*1024)/10)
	if rb.Capacity() != 10 {
		t.Fatalf("capacity = %d, want 10", rb.Capacity())
	}

	stater := &fakeStater{}
	for i := 0; i < 20; i++ {
		rb.Capture(stater)
	}
	if rb.Count() != 10 {
		t.Errorf("count = %d, want 10", rb.Count())
	}

	// Oldest surviving state is capture 11.
	session := &fakeSession{}
	rb.Rewind(session, stater, 10)
	if stater.restored != 11 {
		t.Errorf("restored = %d, want 11 after wraparound", stater.restored)
	}
}

func TestRewindItemsForHoldDuration(t *testing.T) {
	tests := []struct {
		duration int
		expected int
	}{
		{0, 0},   // Not pressed
		{-1, 0},  // Invalid
		{1, 1},   // Just pressed - single step
		{2, 0},   // Early hold, not on 4th frame
		{4, 1},   // 4th frame fires
		{5, 0},   // Not on 4th frame
		{8, 1},   // 8th frame fires
		{15, 0},  // 15 not divisible by 4
		{16, 1},  // Transition to faster rate, 16%2==0
		{17, 0},  // Odd frame
		{20, 1},  // Even frame
		{30, 1},  // Even frame, boundary
		{31, 1},  // Every frame zone
		{45, 1},  // Every frame
		{60, 1},  // Boundary of every frame zone
		{61, 2},  // Fast zone: 2 items/frame
		{100, 2}, // Still fast
		{999, 2}, // Very long hold
	}
	for _, tt := range tests {
		result := rewindItemsForHoldDuration(tt.duration)
		if result != tt.expected {
			t.Errorf("rewindItemsForHoldDuration(%d) = %d, want %d", tt.duration, result, tt.expected)
		}
	}
}
