package modwt

import (
	"fmt"
	"math"

	"github.com/voxwave/modwt/boundary"
	"github.com/voxwave/modwt/internal/kernel"
	"github.com/voxwave/modwt/wavelet"
)

// BoundaryMode selects how a convolution tap past the edge of the signal is
// resolved. It is an alias of boundary.Mode so callers never need to import
// the boundary package directly for the common case.
type BoundaryMode = boundary.Mode

const (
	// Periodic wraps tap indices around the signal (circular convolution).
	Periodic = boundary.Periodic
	// ZeroPadding treats out-of-range taps as zero. Accepted by Forward;
	// Inverse accepts it too but only Periodic is guaranteed to perfectly
	// reconstruct (spec.md §4.3).
	ZeroPadding = boundary.ZeroPadding
)

// Wavelet is an alias of wavelet.Wavelet: the four-filter value every
// transform in this module consumes. Use the wavelet package's built-in
// constructors (wavelet.Haar, wavelet.DB2, ...) or wavelet.New /
// wavelet.NewBiorthogonal to build one.
type Wavelet = wavelet.Wavelet

// Result is the output of a single-level MODWT: two vectors the same
// length as the input signal (spec.md §3 — unlike the decimated DWT,
// length never halves).
type Result struct {
	Approximation []float64
	Detail        []float64
}

func validateSignal(op string, x []float64) error {
	if len(x) == 0 {
		return newErr(op, KindValidation, ErrEmpty, "length=0", "signal must have length >= 1")
	}
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return newErr(op, KindValidation, ErrNonFinite, fmt.Sprintf("x[%d]=%v", i, v), "remove or replace non-finite samples before transforming")
		}
	}
	return nil
}

// Forward computes the single-level MODWT of x at scale level (default 1
// for a top-level call; the multilevel package passes level>1 internally)
// under mode, using w's analysis filters.
//
// x may have any length N>=1. The returned Approximation and Detail are
// both length N. ZeroPadding is accepted here (forward direction only per
// spec.md §4.3).
func Forward(x []float64, w Wavelet, mode BoundaryMode, level int) (Result, error) {
	if err := validateSignal("Forward", x); err != nil {
		return Result{}, err
	}
	if level < 1 {
		return Result{}, newErr("Forward", KindConfiguration, ErrConflictingOptions, fmt.Sprintf("level=%d", level), "level must be >= 1")
	}
	h, g := w.Analysis()
	a, d := kernel.Forward(x, h, g, level, mode)
	return Result{Approximation: a, Detail: d}, nil
}

// Inverse reconstructs a signal from a single-level MODWT result using w's
// synthesis filters. a and d must share the same length; the result has
// that same length. mode == ZeroPadding is accepted but only Periodic is
// guaranteed perfect reconstruction (spec.md §4.3).
func Inverse(a, d []float64, w Wavelet, mode BoundaryMode, level int) ([]float64, error) {
	if err := validateSignal("Inverse", a); err != nil {
		return nil, err
	}
	if err := validateSignal("Inverse", d); err != nil {
		return nil, err
	}
	if len(a) != len(d) {
		return nil, newErr("Inverse", KindValidation, ErrInvalidCombination,
			fmt.Sprintf("len(a)=%d len(d)=%d", len(a), len(d)), "approximation and detail must share length")
	}
	if level < 1 {
		return nil, newErr("Inverse", KindConfiguration, ErrConflictingOptions, fmt.Sprintf("level=%d", level), "level must be >= 1")
	}
	ht, gt := w.Synthesis()
	return kernel.Inverse(a, d, ht, gt, level, mode), nil
}
