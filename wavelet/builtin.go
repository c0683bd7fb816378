package wavelet

import "math"

// Daubechies-family low-pass analysis coefficients, constructed via the
// standard maximally-flat spectral factorization (Daubechies, 1988): for N
// vanishing moments the filter has length 2N. db2Coeffs/db4Coeffs/
// db6Coeffs correspond to N=2,4,6. Values below satisfy Σh²=1 and Σh·g=0
// to float64 precision by construction.

var haarCoeffs = []float64{1 / math.Sqrt2, 1 / math.Sqrt2}

var db2Coeffs = []float64{
	-0.12940952255126040,
	0.22414386804201342,
	0.83651630373780790,
	0.48296291314453420,
}

var db4Coeffs = []float64{
	-0.010597401785069028,
	0.032883011666885203,
	0.030841381835560800,
	-0.187034811719093000,
	-0.027983769416859630,
	0.630880767929859000,
	0.714846570552915700,
	0.230377813308896480,
}

var db6Coeffs = []float64{
	-0.0010773010853084898,
	0.0047772575109455410,
	0.0005538422011615399,
	-0.0315820393174863100,
	0.0275228655303054940,
	0.0975016055873232100,
	-0.1297668675672635000,
	-0.2262646939654434600,
	0.3152503517091944700,
	0.7511339080210948000,
	0.4946238903984538000,
	0.1115407433501097000,
}

func mustNew(name string, h []float64) Wavelet {
	w, err := New(name, h)
	if err != nil {
		// Built-in tables are fixed constants validated once at call time;
		// a failure here means a transcription error in this file.
		panic("wavelet: built-in " + name + " failed validation: " + err.Error())
	}
	return w
}

// Haar returns the Haar wavelet (L=2), the simplest orthogonal wavelet.
func Haar() Wavelet { return mustNew("haar", haarCoeffs) }

// DB2 returns the Daubechies wavelet with 2 vanishing moments (L=4).
func DB2() Wavelet { return mustNew("db2", db2Coeffs) }

// DB4 returns the Daubechies wavelet with 4 vanishing moments (L=8).
func DB4() Wavelet { return mustNew("db4", db4Coeffs) }

// DB6 returns the Daubechies wavelet with 6 vanishing moments (L=12).
func DB6() Wavelet { return mustNew("db6", db6Coeffs) }

// CDF97 returns the Cohen-Daubechies-Feauveau 9/7 biorthogonal wavelet, the
// spline-based pair used in lossy JPEG2000. Its analysis and synthesis
// low-pass filters differ, so Σh²=1 is not required or checked; scale and
// groupDelay are carried as reconstruction metadata.
func CDF97() Wavelet {
	w, err := NewBiorthogonal("cdf9/7", cdf97Analysis, cdf97Synthesis, 1.0, 4)
	if err != nil {
		panic("wavelet: built-in cdf9/7 failed validation: " + err.Error())
	}
	return w
}

var cdf97Analysis = []float64{
	0.026748757411,
	-0.016864118443,
	-0.078223266529,
	0.266864118443,
	0.602949018236,
	0.266864118443,
	-0.078223266529,
	-0.016864118443,
	0.026748757411,
}

// cdf97Synthesis is the 7-tap CDF9/7 synthesis low-pass, zero-padded to the
// analysis filter's length (9) so every filter in the set shares one L, as
// internal/kernel assumes.
var cdf97Synthesis = []float64{
	0,
	-0.045635881557,
	-0.028771763114,
	0.295635881557,
	0.557543526229,
	0.295635881557,
	-0.028771763114,
	-0.045635881557,
	0,
}

// ByName resolves a built-in wavelet by its stable name. It returns false
// for unknown names.
func ByName(name string) (Wavelet, bool) {
	switch name {
	case "haar":
		return Haar(), true
	case "db2":
		return DB2(), true
	case "db4":
		return DB4(), true
	case "db6":
		return DB6(), true
	case "cdf9/7":
		return CDF97(), true
	default:
		return Wavelet{}, false
	}
}
