//go:build amd64 && !purego

package kernel

import "golang.org/x/sys/cpu"

// hasAVX2 gates the 4-wide unrolled accumulation path. Detected once at
// init, same pattern as the teacher's celt/kissfft32_opt_amd64.go gating
// kfBfly2M1Impl on cpu.X86.HasAVX2/HasAVX.
var hasAVX2 = cpu.X86.HasAVX2

// accelDotPair dispatches to a 4-wide manually unrolled accumulation when
// AVX2 is available (the shape the Go compiler's SSA backend vectorizes
// best on amd64) and falls back to the portable scalar loop otherwise.
// Both paths are pure Go — gopus's own AVX2 paths are hand-written
// assembly (kfBfly2M1AVX2 etc.), which this module does not attempt to
// port without a build+test loop (see DESIGN.md C3 entry) — but the
// dispatch shape (build tag + cpu-feature gate + scalar stub) matches.
func accelDotPair(hs, gs, window []float64) (av, dv float64) {
	l := len(hs)
	if !hasAVX2 || l < 4 {
		for k := 0; k < l; k++ {
			xv := window[l-1-k]
			av += hs[k] * xv
			dv += gs[k] * xv
		}
		return av, dv
	}

	k := 0
	for ; k+4 <= l; k += 4 {
		x0 := window[l-1-k]
		x1 := window[l-2-k]
		x2 := window[l-3-k]
		x3 := window[l-4-k]
		av += hs[k]*x0 + hs[k+1]*x1 + hs[k+2]*x2 + hs[k+3]*x3
		dv += gs[k]*x0 + gs[k+1]*x1 + gs[k+2]*x2 + gs[k+3]*x3
	}
	for ; k < l; k++ {
		xv := window[l-1-k]
		av += hs[k] * xv
		dv += gs[k] * xv
	}
	return av, dv
}

// accelDotSingle is the AVX2-gated counterpart used by the inverse kernel.
func accelDotSingle(taps, window []float64) float64 {
	l := len(taps)
	var sum float64
	if !hasAVX2 || l < 4 {
		for k := 0; k < l; k++ {
			sum += taps[k] * window[k]
		}
		return sum
	}

	k := 0
	for ; k+4 <= l; k += 4 {
		sum += taps[k]*window[k] + taps[k+1]*window[k+1] + taps[k+2]*window[k+2] + taps[k+3]*window[k+3]
	}
	for ; k < l; k++ {
		sum += taps[k] * window[k]
	}
	return sum
}
