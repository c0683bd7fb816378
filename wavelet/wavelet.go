// Package wavelet holds named wavelet filter sets: the four filter arrays
// (analysis low/high, synthesis low/high) a MODWT kernel convolves a signal
// with, plus the invariants that make them a valid wavelet.
package wavelet

import (
	"fmt"
	"math"
)

// orthogonalityTolerance bounds the constructor-time checks on Σh² and Σh·g.
const orthogonalityTolerance = 1e-10

// Family tags whether a wavelet's synthesis filters equal its analysis
// filters (Orthogonal) or differ (Biorthogonal).
type Family int

const (
	Orthogonal Family = iota
	Biorthogonal
)

func (f Family) String() string {
	if f == Biorthogonal {
		return "biorthogonal"
	}
	return "orthogonal"
}

// Wavelet is an immutable named filter set. Zero value is not valid; use one
// of the built-in constructors (Haar, DB2, DB4, DB6, CDF97) or New for a
// custom filter set.
type Wavelet struct {
	name   string
	family Family

	h  []float64 // analysis low-pass
	g  []float64 // analysis high-pass
	ht []float64 // synthesis low-pass (== h for orthogonal)
	gt []float64 // synthesis high-pass (== g for orthogonal)

	// scale is the reconstruction scaling factor carried by biorthogonal
	// wavelets; 1.0 for orthogonal wavelets. It is data only: no transform
	// in this module multiplies by it.
	scale float64
	// groupDelay is the integer sample delay biorthogonal reconstruction
	// would need to compensate for phase (see DESIGN.md Open Question 2).
	groupDelay int
}

// Name is the wavelet's stable identifier, e.g. "haar", "db4".
func (w Wavelet) Name() string { return w.name }

// FilterFamily reports whether synthesis equals analysis.
func (w Wavelet) FilterFamily() Family { return w.family }

// FilterLength returns L, the common length of all four filter arrays.
func (w Wavelet) FilterLength() int { return len(w.h) }

// Analysis returns the analysis low-pass and high-pass filters. The
// returned slices are shared with the Wavelet's internal state and must not
// be mutated by the caller.
func (w Wavelet) Analysis() (h, g []float64) { return w.h, w.g }

// Synthesis returns the synthesis low-pass and high-pass filters (equal to
// Analysis for orthogonal wavelets). The returned slices must not be
// mutated.
func (w Wavelet) Synthesis() (ht, gt []float64) { return w.ht, w.gt }

// ReconstructionScale is the reconstruction scaling factor associated with
// a biorthogonal wavelet; 1 for orthogonal wavelets. It is exposed as data
// only: internal/kernel and Inverse do not multiply reconstructed samples
// by it.
func (w Wavelet) ReconstructionScale() float64 { return w.scale }

// GroupDelay is the integer sample delay associated with biorthogonal
// reconstruction phase. It is exposed as data only: internal/kernel does not
// apply it automatically (see DESIGN.md Open Question 2).
func (w Wavelet) GroupDelay() int { return w.groupDelay }

// ValidationError reports a failed wavelet-construction invariant.
type ValidationError struct {
	Op       string
	Quantity string
	Hint     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("wavelet: %s: invalid %s (%s)", e.Op, e.Quantity, e.Hint)
}

// New builds a custom orthogonal wavelet from its low-pass analysis filter
// h; the high-pass g is derived via the quadrature mirror relation
// g[k] = (-1)^k * h[L-1-k]. It validates L>=2, Σh²=1, and Σh·g=0 within
// 1e-10, matching spec.md §3's Wavelet invariants.
func New(name string, h []float64) (Wavelet, error) {
	if len(h) < 2 {
		return Wavelet{}, &ValidationError{Op: "New", Quantity: "filter length", Hint: "L >= 2"}
	}
	g := qmf(h)

	sumSq := 0.0
	for _, v := range h {
		sumSq += v * v
	}
	if math.Abs(sumSq-1) > orthogonalityTolerance {
		return Wavelet{}, &ValidationError{Op: "New", Quantity: "Σh²", Hint: "must equal 1 within 1e-10"}
	}
	dot := 0.0
	for k := range h {
		dot += h[k] * g[k]
	}
	if math.Abs(dot) > orthogonalityTolerance {
		return Wavelet{}, &ValidationError{Op: "New", Quantity: "Σh·g", Hint: "must equal 0 within 1e-10"}
	}

	return Wavelet{
		name:   name,
		family: Orthogonal,
		h:      append([]float64(nil), h...),
		g:      g,
		ht:     append([]float64(nil), h...),
		gt:     g,
		scale:  1,
	}, nil
}

// NewBiorthogonal builds a biorthogonal wavelet from explicit analysis and
// synthesis low-pass filters; high-pass filters are derived via the
// alternating-flip relation from the *other* pair's low-pass filter, as is
// standard for biorthogonal wavelet families. scale and groupDelay are
// carried as metadata (see GroupDelay).
func NewBiorthogonal(name string, h, ht []float64, scale float64, groupDelay int) (Wavelet, error) {
	if len(h) < 2 || len(ht) < 2 {
		return Wavelet{}, &ValidationError{Op: "NewBiorthogonal", Quantity: "filter length", Hint: "L >= 2"}
	}
	if len(h) != len(ht) {
		return Wavelet{}, &ValidationError{Op: "NewBiorthogonal", Quantity: "filter length mismatch", Hint: "analysis and synthesis filters must share length"}
	}
	g := qmf(ht)
	gt := qmf(h)
	return Wavelet{
		name:       name,
		family:     Biorthogonal,
		h:          append([]float64(nil), h...),
		g:          g,
		ht:         append([]float64(nil), ht...),
		gt:         gt,
		scale:      scale,
		groupDelay: groupDelay,
	}, nil
}

// qmf derives a high-pass filter from a low-pass filter via the quadrature
// mirror relation g[k] = (-1)^k * h[L-1-k].
func qmf(h []float64) []float64 {
	l := len(h)
	g := make([]float64, l)
	for k := 0; k < l; k++ {
		sign := 1.0
		if k%2 != 0 {
			sign = -1.0
		}
		g[k] = sign * h[l-1-k]
	}
	return g
}
