// Package kernel implements the single-level MODWT forward and inverse
// transforms (spec component C3). It is internal because its only contract
// is numerical: its callers (the root package's Forward/Inverse, package
// multilevel, and package denoise) own argument validation and error
// wrapping; this package assumes valid, already-checked inputs.
//
// Kernels are specialized by boundary mode and by filter length, per
// spec.md §4.2/§4.3: rather than branch on mode inside the innermost loop,
// Forward/Inverse pick one of a small set of mode- and length-specialized
// loops once per call, mirroring the teacher's kf_bfly_default.go /
// kf_bfly_asm.go split (scalar fallback vs. feature-gated fast path) and
// its kissfft32_opt_amd64.go / kissfft32_opt_stub.go build-tag pairing.
package kernel

import (
	"math"

	"github.com/voxwave/modwt/boundary"
)

const invSqrt2 = 1 / math.Sqrt2

// shortFilterLen is the spec's threshold (L<=4) below which a fully
// unrolled kernel is used instead of the generic tap loop.
const shortFilterLen = 4

// scale returns h/√2, the MODWT-rescaled filter used internally at every
// level (spec.md §3: "the MODWT-scaled filters used internally are
// h/√2, g/√2").
func scale(h []float64) []float64 {
	out := make([]float64, len(h))
	for i, v := range h {
		out[i] = v * invSqrt2
	}
	return out
}

// Forward computes a single-level MODWT of x at the given scale (level>=1)
// under mode, using analysis filters h, g (unscaled — Forward applies the
// 1/√2 rescale). len(h) must equal len(g); len(x) must be >= 1.
//
// Output approximation and detail are both len(x), per spec.md §4.3.
func Forward(x, h, g []float64, level int, mode boundary.Mode) (approx, detail []float64) {
	stride := 1 << uint(level-1)
	hs := scale(h)
	gs := scale(g)
	l := len(hs)

	if stride == 1 && l <= shortFilterLen {
		return forwardShort(x, hs, gs, mode)
	}
	if mode == boundary.Periodic {
		return forwardGenericPeriodic(x, hs, gs, stride)
	}
	return forwardGenericZeroPad(x, hs, gs, stride)
}

// Inverse computes the single-level MODWT inverse at the given scale from
// approximation a and detail d (both len N) using synthesis filters ht, gt,
// producing a reconstructed signal of length N. mode == ZeroPadding is
// accepted (not rejected) but spec.md §4.3 only guarantees perfect
// reconstruction under Periodic; ZeroPadding inverse may carry boundary
// error, by design.
func Inverse(a, d, ht, gt []float64, level int, mode boundary.Mode) []float64 {
	stride := 1 << uint(level-1)
	hs := scale(ht)
	gs := scale(gt)
	l := len(hs)

	if stride == 1 && l <= shortFilterLen {
		return inverseShort(a, d, hs, gs, mode)
	}
	if mode == boundary.Periodic {
		return inverseGenericPeriodic(a, d, hs, gs, stride)
	}
	return inverseGenericZeroPad(a, d, hs, gs, stride)
}
