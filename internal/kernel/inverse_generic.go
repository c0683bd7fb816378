package kernel

import "github.com/voxwave/modwt/boundary"

// inverseGenericPeriodic handles any filter length and any stride under
// PERIODIC wrap-around for the inverse transform. Tap indices advance
// forward from t (t+k*stride), the mirror image of the forward kernel's
// backward taps.
func inverseGenericPeriodic(a, d, hs, gs []float64, stride int) []float64 {
	n := len(a)
	x := make([]float64, n)
	l := len(hs)

	for t := 0; t < n; t++ {
		hi := t + (l-1)*stride
		if hi < n {
			x[t] = accumulateStridedInverse(a, d, hs, gs, t, stride, l)
			continue
		}
		var sum float64
		for k := 0; k < l; k++ {
			idx, _ := boundary.Index(t+k*stride, n, boundary.Periodic)
			sum += hs[k]*a[idx] + gs[k]*d[idx]
		}
		x[t] = sum
	}
	return x
}

// inverseGenericZeroPad mirrors inverseGenericPeriodic but treats
// out-of-range taps as contributing zero.
func inverseGenericZeroPad(a, d, hs, gs []float64, stride int) []float64 {
	n := len(a)
	x := make([]float64, n)
	l := len(hs)

	for t := 0; t < n; t++ {
		hi := t + (l-1)*stride
		if hi < n {
			x[t] = accumulateStridedInverse(a, d, hs, gs, t, stride, l)
			continue
		}
		var sum float64
		for k := 0; k < l; k++ {
			idx := t + k*stride
			if idx < 0 || idx >= n {
				continue
			}
			sum += hs[k]*a[idx] + gs[k]*d[idx]
		}
		x[t] = sum
	}
	return x
}

// accumulateStridedInverse computes x̂[t] when every tap t+k*stride,
// k=0..l-1, is known to lie in [0,n).
func accumulateStridedInverse(a, d, hs, gs []float64, t, stride, l int) float64 {
	if stride == 1 {
		return accelDotSingle(hs, a[t:t+l]) + accelDotSingle(gs, d[t:t+l])
	}
	var sum float64
	for k := 0; k < l; k++ {
		sum += hs[k]*a[t+k*stride] + gs[k]*d[t+k*stride]
	}
	return sum
}
