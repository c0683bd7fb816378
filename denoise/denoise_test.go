package denoise

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voxwave/modwt/noise"
	"github.com/voxwave/modwt/pool"
	"github.com/voxwave/modwt/shrink"
	"github.com/voxwave/modwt/wavelet"
)

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

func collectBlocks(t *testing.T, d *Denoiser, want int, timeout time.Duration) []Block {
	t.Helper()
	var got []Block
	deadline := time.After(timeout)
	for len(got) < want {
		select {
		case b := <-d.Blocks():
			got = append(got, b)
		case <-deadline:
			t.Fatalf("timed out waiting for blocks: got %d, want %d", len(got), want)
		}
	}
	return got
}

// S4: Haar streaming, blockSize=4, hopSize=4, clean ramp.
func TestDenoiserS4CleanRampIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Wavelet = wavelet.Haar()
	cfg.BlockSize = 4
	cfg.HopSize = 4

	d, err := New(cfg)
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, d.Process([]float64{1, 2, 3, 4, 5, 6, 7, 8}))

	blocks := collectBlocks(t, d, 2, 2*time.Second)
	assert.InDeltaSlice(t, []float64{1, 2, 3, 4}, blocks[0].Samples, 1e-9)
	assert.InDeltaSlice(t, []float64{5, 6, 7, 8}, blocks[1].Samples, 1e-9)
}

func TestDenoiserStatsTrackCounters(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BlockSize = 8
	cfg.HopSize = 8
	d, err := New(cfg)
	require.NoError(t, err)
	defer d.Close()

	require.NoError(t, d.Process([]float64{1, 2, 3, 4, 5, 6, 7, 8}))
	collectBlocks(t, d, 1, 2*time.Second)

	stats := d.Stats()
	assert.Equal(t, int64(8), stats.SamplesProcessed)
	assert.Equal(t, int64(1), stats.BlocksEmitted)
}

func TestDenoiserCloseDrainsThenCompletes(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BlockSize = 4
	cfg.HopSize = 4
	d, err := New(cfg)
	require.NoError(t, err)

	require.NoError(t, d.Process([]float64{1, 2, 3, 4}))
	collectBlocks(t, d, 1, 2*time.Second)

	d.Close()
	select {
	case c := <-d.Done():
		assert.NoError(t, c.Err)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for completion")
	}

	err = d.Process([]float64{1})
	assert.Error(t, err, "Process after Close should fail")
}

func TestDenoiserRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HopSize = cfg.BlockSize + 1
	_, err := New(cfg)
	assert.Error(t, err)
}

func TestFastAndQualityPresetsDiffer(t *testing.T) {
	fast := NewFast()
	quality := NewQuality()
	assert.NotEqual(t, fast.BlockSize, quality.BlockSize)
	assert.NotEqual(t, fast.ThresholdFlavor, quality.ThresholdFlavor)
}

// Property 12: denoiser idempotence on a clean signal.
func TestDenoiserIdempotenceOnCleanSignal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BlockSize = 32
	cfg.HopSize = 32
	cfg.ThresholdFlavor = shrink.Soft
	cfg.ThresholdMethod = noise.Universal

	d, err := New(cfg)
	require.NoError(t, err)
	defer d.Close()

	x := make([]float64, 32)
	for i := range x {
		x[i] = float64(i) // clean ramp: Haar details are 0.5 except the periodic wrap at index 0
	}
	require.NoError(t, d.Process(x))
	blocks := collectBlocks(t, d, 1, 2*time.Second)

	diff := maxAbsDiff(x, blocks[0].Samples)
	tau := d.est.Threshold(cfg.ThresholdMethod)
	bound := tau * math.Sqrt(float64(len(x)))
	if diff > bound+1e-9 {
		t.Errorf("change %v exceeds bound tau*sqrt(N)=%v", diff, bound)
	}
}

// A shared pool backing the scratch copy should produce the same output as
// the default direct-allocation path, just recycling buffers instead of
// allocating them.
func TestDenoiserWithSharedPoolMatchesDirectAllocation(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8}

	baseline := DefaultConfig()
	baseline.Wavelet = wavelet.Haar()
	baseline.BlockSize = 4
	baseline.HopSize = 4
	db, err := New(baseline)
	require.NoError(t, err)
	defer db.Close()
	require.NoError(t, db.Process(x))
	wantBlocks := collectBlocks(t, db, 2, 2*time.Second)

	pooled := DefaultConfig()
	pooled.Wavelet = wavelet.Haar()
	pooled.BlockSize = 4
	pooled.HopSize = 4
	pooled.Pool = pool.New()
	dp, err := New(pooled)
	require.NoError(t, err)
	defer dp.Close()
	require.NoError(t, dp.Process(x))
	gotBlocks := collectBlocks(t, dp, 2, 2*time.Second)

	for i := range wantBlocks {
		assert.InDeltaSlice(t, wantBlocks[i].Samples, gotBlocks[i].Samples, 1e-9)
	}
}

func TestProfileReportsNonZeroValues(t *testing.T) {
	cfg := DefaultConfig()
	p := cfg.profile()
	assert.Greater(t, p.ExpectedLatencyPerSample, time.Duration(0))
	assert.Greater(t, p.ExpectedSNRImprovementDB, 0.0)
	assert.Greater(t, p.MemoryFootprintBytes, int64(0))
}
