// Package denoise implements the streaming wavelet denoiser (spec
// component C8): it glues a ring buffer, a single-level MODWT, an online
// noise estimator, and a shrinkage thresholder into a pipeline that turns
// a live sample stream into a stream of denoised blocks with bounded
// memory and real-time latency.
//
// Recasting spec.md §9's "reactive subscription model... recast as one
// consumer task pulls windows... pushes blocks into a bounded channel",
// a Denoiser runs its pipeline on a dedicated goroutine and exposes
// results through a channel the caller ranges over.
package denoise

import (
	"fmt"
	"sync"
	"time"

	"github.com/voxwave/modwt/boundary"
	"github.com/voxwave/modwt/internal/kernel"
	"github.com/voxwave/modwt/noise"
	"github.com/voxwave/modwt/pool"
	"github.com/voxwave/modwt/ring"
	"github.com/voxwave/modwt/shrink"
	"github.com/voxwave/modwt/wavelet"
)

// Kind classifies a Denoiser error.
type Kind int

const (
	KindValidation Kind = iota
	KindState
	KindConfiguration
)

// Error carries the op/kind/quantity/hint shape spec.md §7 asks for.
type Error struct {
	Op       string
	Kind     Kind
	Quantity string
	Hint     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("denoise: %s: %s (%s)", e.Op, e.Quantity, e.Hint)
}

// BoundaryMode is an alias of boundary.Mode, re-exported so callers
// configuring a Denoiser do not need to import the boundary package
// directly.
type BoundaryMode = boundary.Mode

// Config is the enumerated configuration surface from spec.md §4.8. The
// zero value is not meant to be used directly; call DefaultConfig and
// override fields, or use NewFast/NewQuality.
type Config struct {
	Wavelet         wavelet.Wavelet
	BoundaryMode    BoundaryMode
	BlockSize       int
	HopSize         int
	ThresholdMethod noise.Method
	ThresholdFlavor shrink.Flavor

	// Pool, if non-nil, supplies the scratch buffer the consumer copies
	// each window's detail coefficients into before shrinking them
	// (shrink.ShrinkSlice mutates in place, and the original detail must
	// stay untouched for any caller inspecting Stats/diagnostics). A nil
	// Pool falls back to a direct allocation per window (spec.md §4.9:
	// "the kernel never requires it").
	Pool *pool.Pool

	ringCapacityMult int // internal: ring capacity = ringCapacityMult * BlockSize
}

// DefaultConfig returns the spec's documented defaults: Haar wavelet,
// PERIODIC boundary, blockSize 256, non-overlapping hop, UNIVERSAL
// threshold, SOFT shrinkage.
func DefaultConfig() Config {
	return Config{
		Wavelet:          wavelet.Haar(),
		BoundaryMode:     boundary.Periodic,
		BlockSize:        256,
		HopSize:          256,
		ThresholdMethod:  noise.Universal,
		ThresholdFlavor:  shrink.Soft,
		ringCapacityMult: 4,
	}
}

// NewFast returns the "FAST" performance profile preset: a smaller block
// and the simpler Haar kernel, trading denoising quality for latency
// (spec.md §4.8's factory-selectable FAST/QUALITY variants).
func NewFast() Config {
	c := DefaultConfig()
	c.BlockSize = 64
	c.HopSize = 64
	c.ThresholdFlavor = shrink.Hard
	return c
}

// NewQuality returns the "QUALITY" performance profile preset: a larger
// block, overlapping hop, and richer (soft, SURE) shrinkage.
func NewQuality() Config {
	c := DefaultConfig()
	c.Wavelet = wavelet.DB4()
	c.BlockSize = 1024
	c.HopSize = 512
	c.ThresholdMethod = noise.SURE
	c.ThresholdFlavor = shrink.Soft
	return c
}

func (c Config) validate() error {
	if c.Wavelet.FilterLength() < 2 {
		return &Error{Op: "NewDenoiser", Kind: KindConfiguration, Quantity: "wavelet", Hint: "a valid Wavelet is required"}
	}
	if c.BlockSize < 1 {
		return &Error{Op: "NewDenoiser", Kind: KindConfiguration, Quantity: fmt.Sprintf("blockSize=%d", c.BlockSize), Hint: "blockSize must be >= 1"}
	}
	if c.HopSize < 1 || c.HopSize > c.BlockSize {
		return &Error{Op: "NewDenoiser", Kind: KindConfiguration, Quantity: fmt.Sprintf("hopSize=%d blockSize=%d", c.HopSize, c.BlockSize), Hint: "hopSize must be in [1, blockSize]"}
	}
	return nil
}

// Stats reports the running counters spec.md §3 requires a Denoiser to
// own: samples processed, blocks emitted, and cumulative processing time.
type Stats struct {
	SamplesProcessed int64
	BlocksEmitted    int64
	ProcessingTime   time.Duration
}

// Profile reports the Denoiser's expected performance characteristics,
// computed from its configuration (spec.md §4.8). These are heuristic/
// advisory, not measured: exact values depend on hardware.
type Profile struct {
	ExpectedLatencyPerSample time.Duration
	ExpectedSNRImprovementDB float64
	MemoryFootprintBytes     int64
}

func (c Config) profile() Profile {
	l := c.Wavelet.FilterLength()
	// Heuristic cost model: one MODWT forward + inverse pass over a block
	// costs O(blockSize * filterLength); spread over hopSize new samples
	// per emitted block.
	workPerBlock := float64(c.BlockSize * l * 4)
	const nsPerFlop = 0.5 // rough scalar-FMA heuristic, not a measurement
	latencyPerBlock := time.Duration(workPerBlock * nsPerFlop)
	latencyPerSample := latencyPerBlock / time.Duration(c.HopSize)

	// Heuristic SNR improvement: longer filters and SOFT thresholding
	// model better; larger blocks give the noise estimator more samples
	// per threshold update.
	snr := 3.0 + float64(l)*0.3
	if c.ThresholdFlavor == shrink.Soft {
		snr += 1.0
	}
	if c.BlockSize >= 512 {
		snr += 1.0
	}

	mem := int64(c.BlockSize) * 8 * 4 // approx: window + A + D + output, float64

	return Profile{
		ExpectedLatencyPerSample: latencyPerSample,
		ExpectedSNRImprovementDB: snr,
		MemoryFootprintBytes:     mem,
	}
}

// Block is one emitted denoised window.
type Block struct {
	Samples     []float64
	WindowStart int64 // read-position the window started at, for total ordering
}

// Completion is sent once, after the output channel closes, reporting
// whether the stream ended cleanly or via an error (spec.md §7: "any
// kernel failure terminates the stream with an error completion
// delivered to the subscriber").
type Completion struct {
	Err error
}

// Denoiser owns a ring buffer, wavelet, boundary mode, threshold method,
// shrinkage flavor, noise estimator, and running Stats (spec component
// C8's state). Process feeds it samples; Blocks()/Done() expose the
// consumer-side channels a subscriber drains.
type Denoiser struct {
	cfg Config
	buf *ring.Buffer
	est *noise.Estimator

	out  chan Block
	done chan Completion

	mu       sync.Mutex
	stats    Stats
	closed   bool
	consumer chan struct{} // closed once the consumer goroutine has exited
}

// New constructs a Denoiser from cfg and starts its consumer goroutine.
func New(cfg Config) (*Denoiser, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	capMult := cfg.ringCapacityMult
	if capMult < 2 {
		capMult = 4
	}
	buf, err := ring.New(capMult*cfg.BlockSize, cfg.BlockSize, cfg.HopSize)
	if err != nil {
		return nil, &Error{Op: "New", Kind: KindConfiguration, Quantity: err.Error(), Hint: "adjust blockSize/hopSize"}
	}

	d := &Denoiser{
		cfg:      cfg,
		buf:      buf,
		est:      noise.NewEstimator(),
		out:      make(chan Block, 16),
		done:     make(chan Completion, 1),
		consumer: make(chan struct{}),
	}
	go d.consume()
	return d, nil
}

// Blocks returns the channel of emitted denoised blocks, in window-start
// order (spec.md §5: "emitted blocks are totally ordered by window start
// index").
func (d *Denoiser) Blocks() <-chan Block { return d.out }

// Done returns the channel a single Completion is sent on once the
// Denoiser's output stream ends, whether cleanly (Close) or on error.
func (d *Denoiser) Done() <-chan Completion { return d.done }

// Process pushes chunk into the ring buffer for the consumer goroutine to
// pick up. It never blocks on the subscriber (spec.md §4.8: "Emission is
// non-blocking from the subscriber side").
func (d *Denoiser) Process(chunk []float64) error {
	d.mu.Lock()
	closed := d.closed
	d.mu.Unlock()
	if closed {
		return &Error{Op: "Process", Kind: KindState, Quantity: "closed=true", Hint: "denoiser already closed"}
	}
	n, err := d.buf.Write(chunk, 0, len(chunk))
	if err != nil {
		return &Error{Op: "Process", Kind: KindState, Quantity: err.Error(), Hint: ""}
	}
	if n < len(chunk) {
		return &Error{Op: "Process", Kind: KindConfiguration, Quantity: fmt.Sprintf("accepted=%d requested=%d", n, len(chunk)), Hint: "producer is outpacing the consumer; drain Blocks() faster or enlarge the ring"}
	}
	d.mu.Lock()
	d.stats.SamplesProcessed += int64(len(chunk))
	d.mu.Unlock()
	return nil
}

// Close transitions the Denoiser to closed: it drains any in-flight
// window, emits a clean Completion, and causes subsequent Process calls to
// fail with a State error (spec.md §4.8, §5: "Cancellation is cooperative
// via a terminal flag + channel close"). Close is idempotent: a second
// call observes d.closed already set and returns immediately without
// re-waiting or erroring, the same "second call is a no-op, not a State
// error" idempotency ring.Buffer.Close documents.
func (d *Denoiser) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	d.mu.Unlock()
	<-d.consumer // wait for the consumer to drain in-flight windows and exit
}

// Stats returns a snapshot of the running counters.
func (d *Denoiser) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stats
}

// Profile returns this Denoiser's heuristic performance profile.
func (d *Denoiser) Profile() Profile { return d.cfg.profile() }

// consume is the dedicated consumer goroutine: it polls HasWindow, and for
// each window runs forward MODWT -> noise update -> threshold -> shrink ->
// inverse MODWT -> emit, then advances by hopSize (spec.md §4.8 pipeline).
func (d *Denoiser) consume() {
	defer close(d.consumer)
	defer close(d.out)

	var windowStart int64
	var completionErr error

	for {
		d.mu.Lock()
		closed := d.closed
		d.mu.Unlock()

		if !d.buf.HasWindow() {
			if closed {
				d.buf.Close() // terminal only once no in-flight window remains
				break
			}
			time.Sleep(100 * time.Microsecond)
			continue
		}

		started := time.Now()
		w, err := d.buf.CurrentWindow()
		if err != nil {
			completionErr = err
			break
		}

		h, g := d.cfg.Wavelet.Analysis()
		a, det := kernel.Forward(w, h, g, 1, d.cfg.BoundaryMode)

		d.est.Update(det)
		tau := d.est.Threshold(d.cfg.ThresholdMethod)

		var scratch []float64
		var pooled *pool.Buffer
		if d.cfg.Pool != nil {
			pooled = d.cfg.Pool.Acquire(len(det))
			scratch = pooled.Data
			copy(scratch, det)
		} else {
			scratch = append([]float64(nil), det...)
		}
		detShrunk := shrink.ShrinkSlice(scratch, tau, d.cfg.ThresholdFlavor)

		ht, gt := d.cfg.Wavelet.Synthesis()
		denoised := kernel.Inverse(a, detShrunk, ht, gt, 1, d.cfg.BoundaryMode)
		if pooled != nil {
			pooled.Release()
		}

		d.mu.Lock()
		d.stats.BlocksEmitted++
		d.stats.ProcessingTime += time.Since(started)
		d.mu.Unlock()

		d.out <- Block{Samples: denoised, WindowStart: windowStart}
		windowStart += int64(d.cfg.HopSize)

		if err := d.buf.Advance(); err != nil {
			completionErr = err
			break
		}
	}

	close(d.out)
	d.done <- Completion{Err: completionErr}
}
