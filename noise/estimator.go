// Package noise implements the online noise-level estimator (spec
// component C5): a streaming Median Absolute Deviation computed with a
// pair of P² quantile trackers, so sigma can be refreshed from each block
// of detail coefficients without ever buffering the sample history.
package noise

import "math"

// madConstant converts a MAD estimate into a Gaussian sigma estimate.
const madConstant = 1.4826

// Method selects the threshold formula Threshold applies to the current
// smoothed sigma.
type Method int

const (
	// Universal is the Donoho-Johnstone threshold sigma*sqrt(2*ln N).
	Universal Method = iota
	// SURE is a conservative streaming proxy, sigma*2.5 — spec.md §4.5/§9
	// preserves this approximation deliberately rather than computing a
	// textbook Stein's Unbiased Risk Estimate, which needs the whole
	// coefficient vector at once and would break the streaming contract.
	SURE
	// Minimax is a proxy, sigma*1.5, preserved for the same reason as SURE.
	Minimax
)

// quantileP2 is a single P² (Jain-Chlamtac, 1985) streaming estimator of
// the 0.5 quantile (median). It holds exactly five markers (positions n_i
// and heights q_i) and their desired positions, updated in O(1) per
// sample with O(1) memory regardless of stream length.
type quantileP2 struct {
	initialized bool
	count       int // number of samples fed so far; only read until the 5-marker state seeds

	// seed buffers the first 5 samples until the markers can be initialized
	// from their sorted order.
	seed [5]float64

	n  [5]float64 // marker positions (float for fractional desired-position increments)
	np [5]float64 // desired marker positions
	dn [5]float64 // desired-position increments per update
	q  [5]float64 // marker heights (the quantile estimates at each marker)
}

// newQuantileP2 configures the five markers for the 0.5 (median) quantile,
// per the standard P² marker layout: positions 1, 1+2p, 1+4p, 3+2p, 5 for
// p=0.5, i.e. 1, 2, 3, 4, 5 with desired increments 0, p/2, p, (1+p)/2, 1.
func newQuantileP2() *quantileP2 {
	const p = 0.5
	return &quantileP2{
		dn: [5]float64{0, p / 2, p, (1 + p) / 2, 1},
	}
}

func (q *quantileP2) update(x float64) {
	q.count++
	if !q.initialized {
		q.seed[q.count-1] = x
		if q.count < 5 {
			return
		}
		// Sort the first 5 samples and seed markers 1..5.
		s := q.seed
		for i := 1; i < 5; i++ {
			v := s[i]
			j := i - 1
			for j >= 0 && s[j] > v {
				s[j+1] = s[j]
				j--
			}
			s[j+1] = v
		}
		for i := 0; i < 5; i++ {
			q.n[i] = float64(i + 1)
			q.q[i] = s[i]
		}
		q.initialized = true
		// Desired positions per the standard formula np_i = 1 + (m-1)*dn_i
		// with m=5 observations so far.
		for i := 0; i < 5; i++ {
			q.np[i] = 1 + 4*q.dn[i]
		}
		return
	}

	// Find cell k such that q.q[k] <= x < q.q[k+1], clamping at the ends.
	k := 0
	switch {
	case x < q.q[0]:
		q.q[0] = x
		k = 0
	case x >= q.q[4]:
		q.q[4] = x
		k = 3
	default:
		for i := 0; i < 4; i++ {
			if x >= q.q[i] && x < q.q[i+1] {
				k = i
				break
			}
		}
	}

	for i := k + 1; i < 5; i++ {
		q.n[i]++
	}
	for i := 0; i < 5; i++ {
		q.np[i] += q.dn[i]
	}

	for i := 1; i < 4; i++ {
		d := q.np[i] - q.n[i]
		if (d >= 1 && q.n[i+1]-q.n[i] > 1) || (d <= -1 && q.n[i-1]-q.n[i] < -1) {
			sign := 1.0
			if d < 0 {
				sign = -1.0
			}
			qNew := q.parabolic(i, sign)
			if q.q[i-1] < qNew && qNew < q.q[i+1] {
				q.q[i] = qNew
			} else {
				q.q[i] = q.linear(i, sign)
			}
			q.n[i] += sign
		}
	}
}

func (q *quantileP2) parabolic(i int, d float64) float64 {
	return q.q[i] + d/(q.n[i+1]-q.n[i-1])*((q.n[i]-q.n[i-1]+d)*(q.q[i+1]-q.q[i])/(q.n[i+1]-q.n[i])+
		(q.n[i+1]-q.n[i]-d)*(q.q[i]-q.q[i-1])/(q.n[i]-q.n[i-1]))
}

func (q *quantileP2) linear(i int, d float64) float64 {
	return q.q[i] + d*(q.q[i+int(d)]-q.q[i])/(q.n[i+int(d)]-q.n[i])
}

// quantile returns the current estimate of the 0.5 quantile. Before the
// fifth sample it falls back to the running median of the seeded samples,
// since the P² markers are not yet initialized.
func (q *quantileP2) quantile() float64 {
	if q.initialized {
		return q.q[2]
	}
	if q.count == 0 {
		return 0
	}
	s := append([]float64(nil), q.seed[:q.count]...)
	for i := 1; i < len(s); i++ {
		v := s[i]
		j := i - 1
		for j >= 0 && s[j] > v {
			s[j+1] = s[j]
			j--
		}
		s[j+1] = v
	}
	return s[len(s)/2]
}

// alpha is the exponential smoothing factor for sigma updates (spec.md
// §4.5: "sigma <- alpha*sigma + (1-alpha)*sigma_raw").
const alpha = 0.9

// Estimator is the online MAD-via-P² noise estimator (spec component C5).
// Its memory cost is O(1) regardless of how many samples have been fed.
type Estimator struct {
	qx          *quantileP2 // tracks the median of coefficients
	qd          *quantileP2 // tracks the median of |c - median|
	sigma       float64
	initialized bool
	samples     int
}

// NewEstimator returns a fresh estimator with no observed samples.
func NewEstimator() *Estimator {
	return &Estimator{qx: newQuantileP2(), qd: newQuantileP2()}
}

// Update feeds one block of coefficients through the two-pass MAD update
// (spec.md §4.5): first every coefficient updates the median tracker, then
// the absolute deviation from that median updates the MAD tracker. Sigma is
// refreshed once per call via exponential smoothing.
func (e *Estimator) Update(block []float64) {
	for _, c := range block {
		e.qx.update(c)
	}
	m := e.qx.quantile()
	for _, c := range block {
		e.qd.update(math.Abs(c - m))
	}
	sigmaRaw := madConstant * e.qd.quantile()
	if !e.initialized {
		e.sigma = sigmaRaw
		e.initialized = true
	} else {
		e.sigma = alpha*e.sigma + (1-alpha)*sigmaRaw
	}
	e.samples += len(block)
}

// Sigma returns the current smoothed noise-level estimate.
func (e *Estimator) Sigma() float64 { return e.sigma }

// SampleCount returns the total number of coefficients observed across all
// Update calls.
func (e *Estimator) SampleCount() int { return e.samples }

// Threshold computes the shrinkage threshold for method from the current
// sigma and sample count (spec.md §4.5):
//
//	Universal: sigma * sqrt(2*ln(N))
//	SURE:      sigma * 2.5   (conservative streaming proxy)
//	Minimax:   sigma * 1.5   (proxy)
func (e *Estimator) Threshold(method Method) float64 {
	n := e.samples
	if n < 1 {
		n = 1
	}
	switch method {
	case SURE:
		return e.sigma * 2.5
	case Minimax:
		return e.sigma * 1.5
	default: // Universal
		return e.sigma * math.Sqrt(2*math.Log(float64(n)))
	}
}
