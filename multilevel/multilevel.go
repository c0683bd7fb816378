// Package multilevel implements the pyramidal multi-level MODWT
// decomposition and reconstruction driver (spec component C4), built on
// top of a single-level kernel.
package multilevel

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/voxwave/modwt/boundary"
	"github.com/voxwave/modwt/internal/kernel"
	"github.com/voxwave/modwt/wavelet"
)

// Kind mirrors the root package's error taxonomy without importing it
// (multilevel sits below the root package in the dependency graph — the
// root package composes this one, not the reverse).
type Kind int

const (
	KindValidation Kind = iota
	KindConfiguration
)

// Error carries the op/kind/quantity/hint shape spec.md §7 asks for.
type Error struct {
	Op       string
	Kind     Kind
	Quantity string
	Hint     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("multilevel: %s: %s (%s)", e.Op, e.Quantity, e.Hint)
}

func validationErr(op, quantity, hint string) error {
	return &Error{Op: op, Kind: KindValidation, Quantity: quantity, Hint: hint}
}

func configErr(op, quantity, hint string) error {
	return &Error{Op: op, Kind: KindConfiguration, Quantity: quantity, Hint: hint}
}

// MaxLevel returns the greatest J for which the effective filter length
// (L-1)*2^(j-1)+1 <= n, per spec.md §4.4.
func MaxLevel(filterLength, n int) int {
	j := 1
	for {
		effective := (filterLength-1)*(1<<uint(j-1)) + 1
		if effective > n {
			break
		}
		j++
	}
	return j - 1
}

// Result is an immutable multi-level MODWT decomposition: J detail vectors
// D_1..D_J (each length N), one final approximation A_J (length N), and
// the signal length and level count. Detail energies are computed lazily
// and cached (spec.md §4.4, §9's "lazy-computed cache protected by
// interior mutability... compute once, publish with release semantics").
type Result struct {
	details      [][]float64 // details[j-1] = D_j
	finalApprox  []float64
	signalLength int
	levels       int

	wavelet wavelet.Wavelet
	mode    boundary.Mode

	energiesOnce sync.Once
	energies     []float64
}

// Details returns D_j for 1<=j<=Levels(). It panics if j is out of range,
// matching Go slice-index-out-of-range conventions for programmer error.
func (r *Result) Details(j int) []float64 { return r.details[j-1] }

// FinalApproximation returns A_J, the coarsest-scale approximation.
func (r *Result) FinalApproximation() []float64 { return r.finalApprox }

// SignalLength is N, the length shared by every returned vector.
func (r *Result) SignalLength() int { return r.signalLength }

// Levels is J, the decomposition depth.
func (r *Result) Levels() int { return r.levels }

// DetailEnergyAtLevel returns Σ|D_j[t]|², lazily computed with gonum's
// floats.Dot(d, d) and cached on first call (spec.md §4.4).
func (r *Result) DetailEnergyAtLevel(j int) float64 {
	r.energiesOnce.Do(func() {
		r.energies = make([]float64, r.levels)
		for i := 0; i < r.levels; i++ {
			d := r.details[i]
			r.energies[i] = floats.Dot(d, d)
		}
	})
	return r.energies[j-1]
}

func validateSignal(op string, x []float64) error {
	if len(x) == 0 {
		return validationErr(op, "length=0", "signal must have length >= 1")
	}
	for i, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return validationErr(op, fmt.Sprintf("x[%d]=%v", i, v), "remove or replace non-finite samples before decomposing")
		}
	}
	return nil
}

// Decompose runs the pyramidal forward MODWT: A_0 = x, and for j=1..J,
// (A_j, D_j) = Forward(A_{j-1}, w, mode, j). J must not exceed MaxLevel for
// the signal's length and w's filter length, or Decompose fails with a
// max-level-exceeded configuration error (spec.md §4.4).
//
// Each level's kernel.Forward call allocates fresh A_j and D_j vectors;
// A_j becomes the next level's input and the previous approximation is
// dropped, so no workspace is reused across levels.
func Decompose(x []float64, w wavelet.Wavelet, mode boundary.Mode, levels int) (*Result, error) {
	if err := validateSignal("Decompose", x); err != nil {
		return nil, err
	}
	if levels < 1 {
		return nil, configErr("Decompose", fmt.Sprintf("levels=%d", levels), "levels must be >= 1")
	}
	maxJ := MaxLevel(w.FilterLength(), len(x))
	if levels > maxJ {
		return nil, configErr("Decompose", fmt.Sprintf("levels=%d max=%d", levels, maxJ),
			"reduce levels or use a longer signal / shorter filter")
	}

	h, g := w.Analysis()
	details := make([][]float64, levels)
	current := x
	for j := 1; j <= levels; j++ {
		a, d := kernel.Forward(current, h, g, j, mode)
		details[j-1] = d
		current = a // a becomes next level's input, old current is discarded
	}

	return &Result{
		details:      details,
		finalApprox:  current,
		signalLength: len(x),
		levels:       levels,
		wavelet:      w,
		mode:         mode,
	}, nil
}

// Reconstruct inverts a Result back to the original-length signal: starting
// from A_J, it runs the single-level inverse from level J down to 1,
// consuming D_j at each step (spec.md §4.4).
func Reconstruct(r *Result) ([]float64, error) {
	return ReconstructFromLevel(r, 1)
}

// ReconstructFromLevel reconstructs using only details at levels >= k,
// treating D_1..D_{k-1} as zero. This is the primitive multi-level
// denoising-by-detail-zeroing uses (spec.md §4.4).
func ReconstructFromLevel(r *Result, k int) ([]float64, error) {
	if k < 1 || k > r.levels {
		return nil, configErr("ReconstructFromLevel", fmt.Sprintf("k=%d levels=%d", k, r.levels), "k must be in [1, levels]")
	}
	ht, gt := r.wavelet.Synthesis()
	xhat := r.finalApprox
	for j := r.levels; j >= 1; j-- {
		d := r.details[j-1]
		if j < k {
			d = make([]float64, r.signalLength) // treat detail as zero below k
		}
		xhat = kernel.Inverse(xhat, d, ht, gt, j, r.mode)
	}
	return xhat, nil
}
