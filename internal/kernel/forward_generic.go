package kernel

import "github.com/voxwave/modwt/boundary"

// forwardGenericPeriodic handles any filter length and any stride under
// PERIODIC wrap-around. The dual A/D accumulation is fused into one pass
// over k so x_at(...) (here, the wrapped index) is computed once per tap,
// per spec.md §4.3's vectorization guidance.
func forwardGenericPeriodic(x, hs, gs []float64, stride int) (approx, detail []float64) {
	n := len(x)
	a := make([]float64, n)
	d := make([]float64, n)
	l := len(hs)

	for t := 0; t < n; t++ {
		// Fast path: the tap window [t-(L-1)*stride, t] falls entirely
		// inside [0,n) — no wrap, so accumulate contiguously (with stride)
		// instead of computing a modulo per tap.
		lo := t - (l-1)*stride
		if lo >= 0 {
			av, dv := accumulateStrided(x, hs, gs, t, stride, l)
			a[t] = av
			d[t] = dv
			continue
		}
		var av, dv float64
		for k := 0; k < l; k++ {
			idx, _ := boundary.Index(t-k*stride, n, boundary.Periodic)
			xv := x[idx]
			av += hs[k] * xv
			dv += gs[k] * xv
		}
		a[t] = av
		d[t] = dv
	}
	return a, d
}

// forwardGenericZeroPad mirrors forwardGenericPeriodic but treats
// out-of-range taps as contributing zero instead of wrapping.
func forwardGenericZeroPad(x, hs, gs []float64, stride int) (approx, detail []float64) {
	n := len(x)
	a := make([]float64, n)
	d := make([]float64, n)
	l := len(hs)

	for t := 0; t < n; t++ {
		lo := t - (l-1)*stride
		if lo >= 0 {
			av, dv := accumulateStrided(x, hs, gs, t, stride, l)
			a[t] = av
			d[t] = dv
			continue
		}
		var av, dv float64
		for k := 0; k < l; k++ {
			idx := t - k*stride
			if idx < 0 || idx >= n {
				continue
			}
			xv := x[idx]
			av += hs[k] * xv
			dv += gs[k] * xv
		}
		a[t] = av
		d[t] = dv
	}
	return a, d
}

// accumulateStrided computes A[t] and D[t] when every tap t-k*stride,
// k=0..l-1, is known to lie in [0,n) — the common case away from either
// boundary. It is the hook accelDotPair specializes on amd64 when AVX2 is
// available (see accel_amd64.go / accel_stub.go).
func accumulateStrided(x, hs, gs []float64, t, stride, l int) (av, dv float64) {
	if stride == 1 {
		return accelDotPair(hs, gs, x[t-l+1:t+1])
	}
	for k := 0; k < l; k++ {
		xv := x[t-k*stride]
		av += hs[k] * xv
		dv += gs[k] * xv
	}
	return av, dv
}
