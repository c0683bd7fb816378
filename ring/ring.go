// Package ring implements the bounded single-producer/single-consumer
// circular buffer (spec component C7) that feeds sliding windows to the
// streaming denoiser: one writer thread advances W, one reader thread
// advances R, and publishing a write uses release/acquire ordering on the
// shared position counters so the two sides never need a lock in the
// steady state (spec.md §5, §4.7).
package ring

import (
	"fmt"
	"sync/atomic"
)

// Kind classifies a Buffer error.
type Kind int

const (
	KindValidation Kind = iota
	KindState
	KindResource
)

// Error carries the op/kind/quantity/hint shape spec.md §7 asks for.
type Error struct {
	Op       string
	Kind     Kind
	Quantity string
	Hint     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("ring: %s: %s (%s)", e.Op, e.Quantity, e.Hint)
}

// Buffer is a fixed-capacity SPSC circular store. The zero value is not
// valid; use New. Writes publish the new write position with release
// semantics (atomic.StoreInt64 after copying data into the backing array);
// reads observe it with acquire semantics (atomic.LoadInt64) before
// touching the array, so a single writer goroutine and a single reader
// goroutine never need a mutex for steady-state operation.
type Buffer struct {
	data       []float64
	capacity   int
	windowSize int
	hopSize    int

	w int64 // write position, monotonically increasing; only the producer mutates
	r int64 // read position, monotonically increasing; only the consumer mutates

	closed int32
}

// New creates a Buffer with the given capacity, windowSize, and hopSize.
// capacity must be >= 2*windowSize (spec.md §4.7: "Capacity must be >=
// 2*windowSize to always permit window extraction while producer keeps
// writing"), windowSize must be >= 1, and hopSize must be in [1,
// windowSize].
func New(capacity, windowSize, hopSize int) (*Buffer, error) {
	if windowSize < 1 {
		return nil, &Error{Op: "New", Kind: KindValidation, Quantity: fmt.Sprintf("windowSize=%d", windowSize), Hint: "windowSize must be >= 1"}
	}
	if hopSize < 1 || hopSize > windowSize {
		return nil, &Error{Op: "New", Kind: KindValidation, Quantity: fmt.Sprintf("hopSize=%d", hopSize), Hint: "hopSize must be in [1, windowSize]"}
	}
	if capacity < 2*windowSize {
		return nil, &Error{Op: "New", Kind: KindValidation, Quantity: fmt.Sprintf("capacity=%d", capacity), Hint: "capacity must be >= 2*windowSize"}
	}
	return &Buffer{
		data:       make([]float64, capacity),
		capacity:   capacity,
		windowSize: windowSize,
		hopSize:    hopSize,
	}, nil
}

// Capacity is the fixed backing-array size C.
func (b *Buffer) Capacity() int { return b.capacity }

// WindowSize is the fixed window length every CurrentWindow call returns.
func (b *Buffer) WindowSize() int { return b.windowSize }

// HopSize is the fixed number of samples Advance consumes.
func (b *Buffer) HopSize() int { return b.hopSize }

// Available reports W-R: samples written but not yet consumed.
func (b *Buffer) Available() int {
	w := atomic.LoadInt64(&b.w)
	r := atomic.LoadInt64(&b.r)
	return int(w - r)
}

func (b *Buffer) isClosed() bool { return atomic.LoadInt32(&b.closed) != 0 }

// Write stores data[offset:offset+length] if all of it fits without
// exceeding capacity. Per spec.md §4.7, a write here is all-or-nothing:
// either every requested sample is accepted, or none are (returning 0),
// never a partial count. It returns the number of samples accepted.
func (b *Buffer) Write(data []float64, offset, length int) (int, error) {
	if b.isClosed() {
		return 0, &Error{Op: "Write", Kind: KindState, Quantity: "closed=true", Hint: "ring buffer already closed"}
	}
	free := b.capacity - b.Available()
	if length > free {
		return 0, nil
	}
	w := atomic.LoadInt64(&b.w)
	for i := 0; i < length; i++ {
		idx := int((w + int64(i)) % int64(b.capacity))
		b.data[idx] = data[offset+i]
	}
	atomic.StoreInt64(&b.w, w+int64(length)) // release: publish new W after data is in place
	return length, nil
}

// HasWindow reports whether a full window is currently available.
func (b *Buffer) HasWindow() bool {
	return b.Available() >= b.windowSize
}

// CurrentWindow returns the windowSize samples starting at the current
// read position. It copies when the window wraps the backing array;
// otherwise it returns a direct view into the backing array (spec.md
// §4.7). The caller must not retain a direct view across an Advance.
func (b *Buffer) CurrentWindow() ([]float64, error) {
	if b.isClosed() {
		return nil, &Error{Op: "CurrentWindow", Kind: KindState, Quantity: "closed=true", Hint: "ring buffer already closed"}
	}
	if !b.HasWindow() {
		return nil, &Error{Op: "CurrentWindow", Kind: KindResource, Quantity: fmt.Sprintf("available=%d windowSize=%d", b.Available(), b.windowSize), Hint: "call HasWindow before CurrentWindow"}
	}
	r := atomic.LoadInt64(&b.r) // acquire: observe W's publish before reading data
	_ = atomic.LoadInt64(&b.w)
	start := int(r % int64(b.capacity))
	end := start + b.windowSize
	if end <= b.capacity {
		return b.data[start:end], nil
	}
	out := make([]float64, b.windowSize)
	n := copy(out, b.data[start:b.capacity])
	copy(out[n:], b.data[:b.windowSize-n])
	return out, nil
}

// Advance consumes hopSize samples, moving the read position forward.
func (b *Buffer) Advance() error {
	if b.isClosed() {
		return &Error{Op: "Advance", Kind: KindState, Quantity: "closed=true", Hint: "ring buffer already closed"}
	}
	atomic.AddInt64(&b.r, int64(b.hopSize))
	return nil
}

// Close transitions the buffer to its terminal state. Subsequent
// operations fail with a State error. Close is idempotent: closing twice
// is a no-op, not an error, since the spec only requires that the *second
// operation's effect* (terminal state) already holds.
func (b *Buffer) Close() {
	atomic.StoreInt32(&b.closed, 1)
}

// Closed reports whether Close has been called.
func (b *Buffer) Closed() bool { return b.isClosed() }
