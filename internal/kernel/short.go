package kernel

import "github.com/voxwave/modwt/boundary"

// forwardShort is the fully-unrolled stride==1, L<=4 fast path (spec.md
// §4.3: "specialize kernels for short filters (L ≤ 4 — e.g. Haar L=2,
// DB2 L=4) and for stride==1"). It still has to branch per-sample near the
// two boundaries, but the interior loop for every length is branch-free.
func forwardShort(x, hs, gs []float64, mode boundary.Mode) (approx, detail []float64) {
	n := len(x)
	a := make([]float64, n)
	d := make([]float64, n)
	l := len(hs)

	at := func(i int) (float64, bool) {
		if mode == boundary.Periodic {
			idx, ok := boundary.Index(i, n, boundary.Periodic)
			return x[idx], ok
		}
		idx, ok := boundary.Index(i, n, boundary.ZeroPadding)
		if !ok {
			return 0, false
		}
		return x[idx], true
	}

	switch l {
	case 2:
		h0, h1 := hs[0], hs[1]
		g0, g1 := gs[0], gs[1]
		for t := 0; t < n; t++ {
			if t >= 1 {
				x0, x1 := x[t], x[t-1]
				a[t] = h0*x0 + h1*x1
				d[t] = g0*x0 + g1*x1
				continue
			}
			x0, _ := at(t)
			x1, _ := at(t - 1)
			a[t] = h0*x0 + h1*x1
			d[t] = g0*x0 + g1*x1
		}
	case 3:
		h0, h1, h2 := hs[0], hs[1], hs[2]
		g0, g1, g2 := gs[0], gs[1], gs[2]
		for t := 0; t < n; t++ {
			if t >= 2 {
				x0, x1, x2 := x[t], x[t-1], x[t-2]
				a[t] = h0*x0 + h1*x1 + h2*x2
				d[t] = g0*x0 + g1*x1 + g2*x2
				continue
			}
			x0, _ := at(t)
			x1, _ := at(t - 1)
			x2, _ := at(t - 2)
			a[t] = h0*x0 + h1*x1 + h2*x2
			d[t] = g0*x0 + g1*x1 + g2*x2
		}
	default: // l == 4
		h0, h1, h2, h3 := hs[0], hs[1], hs[2], hs[3]
		g0, g1, g2, g3 := gs[0], gs[1], gs[2], gs[3]
		for t := 0; t < n; t++ {
			if t >= 3 {
				x0, x1, x2, x3 := x[t], x[t-1], x[t-2], x[t-3]
				a[t] = h0*x0 + h1*x1 + h2*x2 + h3*x3
				d[t] = g0*x0 + g1*x1 + g2*x2 + g3*x3
				continue
			}
			x0, _ := at(t)
			x1, _ := at(t - 1)
			x2, _ := at(t - 2)
			x3, _ := at(t - 3)
			a[t] = h0*x0 + h1*x1 + h2*x2 + h3*x3
			d[t] = g0*x0 + g1*x1 + g2*x2 + g3*x3
		}
	}
	return a, d
}

// inverseShort is the stride==1, L<=4 unrolled inverse counterpart of
// forwardShort.
func inverseShort(a, d, hs, gs []float64, mode boundary.Mode) []float64 {
	n := len(a)
	x := make([]float64, n)
	l := len(hs)

	at := func(arr []float64, i int) (float64, bool) {
		idx, ok := boundary.Index(i, n, mode)
		if !ok {
			return 0, false
		}
		return arr[idx], true
	}

	switch l {
	case 2:
		h0, h1 := hs[0], hs[1]
		g0, g1 := gs[0], gs[1]
		for t := 0; t < n; t++ {
			if t <= n-2 {
				x[t] = h0*a[t] + h1*a[t+1] + g0*d[t] + g1*d[t+1]
				continue
			}
			a0, _ := at(a, t)
			a1, _ := at(a, t+1)
			d0, _ := at(d, t)
			d1, _ := at(d, t+1)
			x[t] = h0*a0 + h1*a1 + g0*d0 + g1*d1
		}
	case 3:
		h0, h1, h2 := hs[0], hs[1], hs[2]
		g0, g1, g2 := gs[0], gs[1], gs[2]
		for t := 0; t < n; t++ {
			if t <= n-3 {
				x[t] = h0*a[t] + h1*a[t+1] + h2*a[t+2] + g0*d[t] + g1*d[t+1] + g2*d[t+2]
				continue
			}
			a0, _ := at(a, t)
			a1, _ := at(a, t+1)
			a2, _ := at(a, t+2)
			d0, _ := at(d, t)
			d1, _ := at(d, t+1)
			d2, _ := at(d, t+2)
			x[t] = h0*a0 + h1*a1 + h2*a2 + g0*d0 + g1*d1 + g2*d2
		}
	default: // l == 4
		h0, h1, h2, h3 := hs[0], hs[1], hs[2], hs[3]
		g0, g1, g2, g3 := gs[0], gs[1], gs[2], gs[3]
		for t := 0; t < n; t++ {
			if t <= n-4 {
				x[t] = h0*a[t] + h1*a[t+1] + h2*a[t+2] + h3*a[t+3] +
					g0*d[t] + g1*d[t+1] + g2*d[t+2] + g3*d[t+3]
				continue
			}
			a0, _ := at(a, t)
			a1, _ := at(a, t+1)
			a2, _ := at(a, t+2)
			a3, _ := at(a, t+3)
			d0, _ := at(d, t)
			d1, _ := at(d, t+1)
			d2, _ := at(d, t+2)
			d3, _ := at(d, t+3)
			x[t] = h0*a0 + h1*a1 + h2*a2 + h3*a3 + g0*d0 + g1*d1 + g2*d2 + g3*d3
		}
	}
	return x
}
