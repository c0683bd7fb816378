package modwt

import (
	"math"
	"testing"

	"github.com/voxwave/modwt/wavelet"
)

const tol = 1e-10

func maxAbsDiff(a, b []float64) float64 {
	m := 0.0
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if d > m {
			m = d
		}
	}
	return m
}

// S1: Haar, N=8.
func TestForwardInverseHaarS1(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 4, 3, 2}
	w := wavelet.Haar()
	res, err := Forward(x, w, Periodic, 1)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Inverse(res.Approximation, res.Detail, w, Periodic, 1)
	if err != nil {
		t.Fatal(err)
	}
	if d := maxAbsDiff(x, got); d > tol {
		t.Errorf("reconstruction error %v exceeds tolerance", d)
	}
}

// S2: DB4, N=7 (non-power-of-two).
func TestForwardInverseDB4S2(t *testing.T) {
	x := []float64{0.1, -0.4, 2.2, 1.0, -3.5, 0.0, 1.7}
	w := wavelet.DB4()
	res, err := Forward(x, w, Periodic, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Approximation) != 7 || len(res.Detail) != 7 {
		t.Fatalf("expected length-7 outputs, got A=%d D=%d", len(res.Approximation), len(res.Detail))
	}
	got, err := Inverse(res.Approximation, res.Detail, w, Periodic, 1)
	if err != nil {
		t.Fatal(err)
	}
	if d := maxAbsDiff(x, got); d > tol {
		t.Errorf("reconstruction error %v exceeds tolerance", d)
	}
}

// Property 1 & 6: perfect reconstruction and length preservation across
// the orthogonal family and a spread of signal lengths, including N=1, 2.
func TestPerfectReconstructionAcrossFamily(t *testing.T) {
	wavelets := []Wavelet{wavelet.Haar(), wavelet.DB2(), wavelet.DB4()}
	lengths := []int{1, 2, 7, 8, 100, 257}
	for _, w := range wavelets {
		for _, n := range lengths {
			x := make([]float64, n)
			for i := range x {
				x[i] = math.Sin(float64(i)*0.3) + float64(i%5)
			}
			res, err := Forward(x, w, Periodic, 1)
			if err != nil {
				t.Fatalf("%s N=%d: Forward: %v", w.Name(), n, err)
			}
			if len(res.Approximation) != n || len(res.Detail) != n {
				t.Fatalf("%s N=%d: length not preserved", w.Name(), n)
			}
			got, err := Inverse(res.Approximation, res.Detail, w, Periodic, 1)
			if err != nil {
				t.Fatalf("%s N=%d: Inverse: %v", w.Name(), n, err)
			}
			if d := maxAbsDiff(x, got); d > tol {
				t.Errorf("%s N=%d: reconstruction error %v exceeds tolerance", w.Name(), n, d)
			}
		}
	}
}

// Property 3: shift-invariance under PERIODIC.
func TestShiftInvariance(t *testing.T) {
	n := 16
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(2 * math.Pi * float64(i) / 8)
	}
	w := wavelet.Haar()
	base, err := Forward(x, w, Periodic, 1)
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range []int{1, n / 2} {
		shifted := make([]float64, n)
		for i := range x {
			shifted[(i+s)%n] = x[i]
		}
		res, err := Forward(shifted, w, Periodic, 1)
		if err != nil {
			t.Fatal(err)
		}
		// Compare the shifted spectra against the base spectra rotated by s.
		for i := 0; i < n; i++ {
			gotA := res.Approximation[(i+s)%n]
			gotD := res.Detail[(i+s)%n]
			if math.Abs(gotA-base.Approximation[i]) > tol {
				t.Errorf("shift %d: A[%d] mismatch: %v vs %v", s, i, gotA, base.Approximation[i])
			}
			if math.Abs(gotD-base.Detail[i]) > tol {
				t.Errorf("shift %d: D[%d] mismatch: %v vs %v", s, i, gotD, base.Detail[i])
			}
		}
	}
}

// Property 4: energy relation for orthogonal wavelets, Σ A² + Σ D² = Σ x².
// The h/√2 analysis scaling (kernel.go's scale()) required for perfect
// reconstruction normalizes this to unity gain, not the factor-2 that
// unscaled orthonormal filters would give.
func TestEnergyRelation(t *testing.T) {
	x := []float64{1, -2, 3, -4, 5, -6, 7, -8}
	for _, w := range []Wavelet{wavelet.Haar(), wavelet.DB2(), wavelet.DB4()} {
		res, err := Forward(x, w, Periodic, 1)
		if err != nil {
			t.Fatal(err)
		}
		var sumX, sumA, sumD float64
		for i := range x {
			sumX += x[i] * x[i]
			sumA += res.Approximation[i] * res.Approximation[i]
			sumD += res.Detail[i] * res.Detail[i]
		}
		if math.Abs(sumA+sumD-sumX) > 1e-8 {
			t.Errorf("%s: energy relation violated: A+D=%v, x=%v", w.Name(), sumA+sumD, sumX)
		}
	}
}

// Property 5: linearity.
func TestLinearity(t *testing.T) {
	n := 32
	x := make([]float64, n)
	y := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(float64(i) * 0.2)
		y[i] = math.Cos(float64(i) * 0.3)
	}
	alpha, beta := 2.0, -0.5
	w := wavelet.DB2()
	rx, _ := Forward(x, w, Periodic, 1)
	ry, _ := Forward(y, w, Periodic, 1)
	combined := make([]float64, n)
	for i := range combined {
		combined[i] = alpha*x[i] + beta*y[i]
	}
	rc, err := Forward(combined, w, Periodic, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < n; i++ {
		wantA := alpha*rx.Approximation[i] + beta*ry.Approximation[i]
		wantD := alpha*rx.Detail[i] + beta*ry.Detail[i]
		if math.Abs(rc.Approximation[i]-wantA) > tol {
			t.Errorf("A[%d]: got %v want %v", i, rc.Approximation[i], wantA)
		}
		if math.Abs(rc.Detail[i]-wantD) > tol {
			t.Errorf("D[%d]: got %v want %v", i, rc.Detail[i], wantD)
		}
	}
}

// Property 7: determinism.
func TestDeterminism(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	w := wavelet.DB4()
	r1, _ := Forward(x, w, Periodic, 1)
	r2, _ := Forward(x, w, Periodic, 1)
	for i := range x {
		if r1.Approximation[i] != r2.Approximation[i] || r1.Detail[i] != r2.Detail[i] {
			t.Fatalf("non-deterministic output at index %d", i)
		}
	}
}

// Property 9: PERIODIC and ZERO_PADDING agree away from the boundary but
// may differ at it.
func TestBoundaryModeDifference(t *testing.T) {
	n := 64
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(float64(i) * 0.15)
	}
	w := wavelet.DB4()
	l := w.FilterLength()
	per, err := Forward(x, w, Periodic, 1)
	if err != nil {
		t.Fatal(err)
	}
	zp, err := Forward(x, w, ZeroPadding, 1)
	if err != nil {
		t.Fatal(err)
	}
	for i := l; i < n-l; i++ {
		if math.Abs(per.Approximation[i]-zp.Approximation[i]) > tol {
			t.Errorf("interior index %d: PERIODIC/ZERO_PADDING approximation disagree", i)
		}
		if math.Abs(per.Detail[i]-zp.Detail[i]) > tol {
			t.Errorf("interior index %d: PERIODIC/ZERO_PADDING detail disagree", i)
		}
	}
}

func TestForwardRejectsEmpty(t *testing.T) {
	_, err := Forward(nil, wavelet.Haar(), Periodic, 1)
	if err == nil {
		t.Fatal("expected error for empty signal")
	}
}

func TestForwardRejectsNonFinite(t *testing.T) {
	_, err := Forward([]float64{1, math.NaN(), 3}, wavelet.Haar(), Periodic, 1)
	if err == nil {
		t.Fatal("expected error for non-finite sample")
	}
}

func TestInverseRejectsLengthMismatch(t *testing.T) {
	_, err := Inverse([]float64{1, 2}, []float64{1, 2, 3}, wavelet.Haar(), Periodic, 1)
	if err == nil {
		t.Fatal("expected error for length mismatch")
	}
}
