package ring

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S5: capacity=8, windowSize=4, hopSize=2.
func TestRingBufferS5(t *testing.T) {
	buf, err := New(8, 4, 2)
	require.NoError(t, err)

	n, err := buf.Write([]float64{1, 2, 3, 4, 5, 6, 7, 8}, 0, 8)
	require.NoError(t, err)
	require.Equal(t, 8, n)

	require.True(t, buf.HasWindow())
	w, err := buf.CurrentWindow()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, w)

	require.NoError(t, buf.Advance())
	w, err = buf.CurrentWindow()
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 4, 5, 6}, w)

	require.NoError(t, buf.Advance())
	w, err = buf.CurrentWindow()
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 6, 7, 8}, w)

	require.NoError(t, buf.Advance())
	assert.False(t, buf.HasWindow())
}

func TestNewRejectsUndersizedCapacity(t *testing.T) {
	_, err := New(4, 4, 1) // capacity must be >= 2*windowSize
	require.Error(t, err)
}

func TestNewRejectsHopSizeOutOfRange(t *testing.T) {
	_, err := New(16, 4, 5)
	require.Error(t, err)
	_, err = New(16, 4, 0)
	require.Error(t, err)
}

func TestWriteFailsAllOrNothing(t *testing.T) {
	buf, err := New(8, 4, 2)
	require.NoError(t, err)
	n, err := buf.Write([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9}, 0, 9)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "write exceeding capacity should accept zero, not a partial count")
}

func TestCloseRejectsSubsequentOps(t *testing.T) {
	buf, err := New(8, 4, 2)
	require.NoError(t, err)
	buf.Close()
	_, err = buf.Write([]float64{1}, 0, 1)
	assert.Error(t, err)
	_, err = buf.CurrentWindow()
	assert.Error(t, err)
	assert.Error(t, buf.Advance())
}

// Property 10: SPSC integrity under concurrent write/read.
func TestSPSCIntegrityConcurrent(t *testing.T) {
	buf, err := New(64, 8, 8) // non-overlapping windows for a simple total-count check
	require.NoError(t, err)

	const total = 1000
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		i := 0
		for i < total {
			chunk := make([]float64, 8)
			for j := range chunk {
				chunk[j] = float64(i + j)
			}
			n, err := buf.Write(chunk, 0, 8)
			if err != nil {
				return
			}
			if n == 8 {
				i += 8
			} else {
				time.Sleep(time.Microsecond)
			}
		}
	}()

	var got []float64
	go func() {
		defer wg.Done()
		seen := 0
		for seen < total {
			if !buf.HasWindow() {
				time.Sleep(time.Microsecond)
				continue
			}
			w, err := buf.CurrentWindow()
			if err != nil {
				return
			}
			got = append(got, append([]float64(nil), w...)...)
			buf.Advance()
			seen += 8
		}
	}()

	wg.Wait()
	require.Len(t, got, total)
	for i, v := range got {
		assert.Equal(t, float64(i), v, "value ordering must be preserved at index %d", i)
	}
}

func TestResizableGrowsOnHighUtilization(t *testing.T) {
	base, err := New(8, 4, 4)
	require.NoError(t, err)
	rb := NewResizable(base)
	rb.SetThresholds(0.1, 0.0) // force a grow on any nonzero utilization
	rb.minResizeGap = 0

	n, err := rb.Write([]float64{1, 2, 3, 4, 5, 6}, 0, 6)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Greater(t, rb.Capacity(), 8, "expected capacity to grow past the initial 8")
}

func TestResizablePreservesDataAcrossResize(t *testing.T) {
	base, err := New(8, 4, 4)
	require.NoError(t, err)
	rb := NewResizable(base)
	rb.SetThresholds(0.1, 0.0)
	rb.minResizeGap = 0

	_, err = rb.Write([]float64{1, 2, 3, 4}, 0, 4)
	require.NoError(t, err)
	require.True(t, rb.HasWindow())
	w, err := rb.CurrentWindow()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4}, w)
}
