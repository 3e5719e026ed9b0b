package shell

import (
	"io"
	"sync"
)

// AudioRingBuffer is a fixed-capacity byte ring shared between the
// game loop (writer) and oto's playback goroutine (reader). Writes
// never block: when the ring is full the oldest bytes are dropped so
// playback stays near real time. Reads block until data arrives or the
// buffer is closed, then drain what remains and return io.EOF.
type AudioRingBuffer struct {
	mu       sync.Mutex
	cond     *sync.Cond
	data     []byte
	readPos  int
	writePos int
	count    int
	closed   bool
}

// NewAudioRingBuffer creates a ring buffer holding capacity bytes.
func NewAudioRingBuffer(capacity int) *AudioRingBuffer {
	rb := &AudioRingBuffer{
		data: make([]byte, capacity),
	}
	rb.cond = sync.NewCond(&rb.mu)
	return rb
}

// Write copies p into the ring, dropping the oldest bytes on overflow.
// Writes to a closed buffer are ignored.
func (rb *AudioRingBuffer) Write(p []byte) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if rb.closed || len(p) == 0 {
		return
	}

	// Writes larger than the ring keep only the tail.
	if len(p) > len(rb.data) {
		p = p[len(p)-len(rb.data):]
	}

	// Drop oldest bytes to make room.
	overflow := rb.count + len(p) - len(rb.data)
	if overflow > 0 {
		rb.readPos = (rb.readPos + overflow) % len(rb.data)
		rb.count -= overflow
	}

	n := copy(rb.data[rb.writePos:], p)
	if n < len(p) {
		copy(rb.data, p[n:])
	}
	rb.writePos = (rb.writePos + len(p)) % len(rb.data)
	rb.count += len(p)

	rb.cond.Signal()
}

// Read implements io.Reader for oto. It blocks while the ring is empty
// and open, and returns io.EOF once the ring is closed and drained.
func (rb *AudioRingBuffer) Read(p []byte) (int, error) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	for rb.count == 0 && !rb.closed {
		rb.cond.Wait()
	}

	if rb.count == 0 {
		return 0, io.EOF
	}

	n := len(p)
	if n > rb.count {
		n = rb.count
	}

	copied := copy(p, rb.data[rb.readPos:])
	if copied < n {
		copy(p[copied:], rb.data[:n-copied])
	}
	rb.readPos = (rb.readPos + n) % len(rb.data)
	rb.count -= n

	return n, nil
}

// Buffered returns the number of unread bytes in the ring.
func (rb *AudioRingBuffer) Buffered() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.count
}

// Clear drops all buffered bytes.
func (rb *AudioRingBuffer) Clear() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.readPos = 0
	rb.writePos = 0
	rb.count = 0
}

// Close marks the buffer closed and wakes any blocked reader. Buffered
// bytes remain readable until drained.
func (rb *AudioRingBuffer) Close() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.closed = true
	rb.cond.Broadcast()
}
