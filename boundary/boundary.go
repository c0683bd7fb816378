// Package boundary maps a convolution tap index to a source-array index
// under one of the two boundary policies a MODWT kernel supports.
package boundary

// Mode selects how an out-of-range convolution tap is resolved.
type Mode int

const (
	// Periodic wraps the index around the signal, i.e. circular
	// convolution. Every index resolves to a value; Index never reports a
	// miss for Periodic.
	Periodic Mode = iota

	// ZeroPadding treats any index outside [0, n) as an implicit zero.
	// Index reports a miss and the caller substitutes 0.
	ZeroPadding
)

// String renders the mode the way it would appear in an error message.
func (m Mode) String() string {
	switch m {
	case Periodic:
		return "PERIODIC"
	case ZeroPadding:
		return "ZERO_PADDING"
	default:
		return "UNKNOWN"
	}
}

// Index resolves tap index i against a source array of length n under mode.
// It returns (resolved index, true) when a value exists, or (0, false) when
// the caller should treat the tap as contributing zero.
//
// This is the only place boundary arithmetic happens; kernels are expected
// to specialize by mode (see internal/kernel) rather than branch on mode
// inside the innermost loop — Index exists for the scalar fallback path and
// for tests that want a mode-agnostic reference.
func Index(i, n int, mode Mode) (int, bool) {
	if n <= 0 {
		return 0, false
	}
	switch mode {
	case Periodic:
		r := i % n
		if r < 0 {
			r += n
		}
		return r, true
	case ZeroPadding:
		if i >= 0 && i < n {
			return i, true
		}
		return 0, false
	default:
		return 0, false
	}
}
