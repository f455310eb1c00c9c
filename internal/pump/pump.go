// Package pump simulates the embedded pattern the fixed rings are built for:
// an interrupt handler producing samples and a main loop consuming them.
//
// Both sides run on the calling goroutine, which gives the ring the
// happens-before edge it requires. Each iteration of the loop is one poll:
//
//	for !stopped {
//	    if trigger.Fire() { write a burst }   // interrupt handler
//	    read up to DrainPerPoll items         // main loop
//	    if reporter.Due() { log stats }
//	}
//
// Samples are consecutive sequence numbers, so the consumer can tell
// whether every item arrived in order.
package pump

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/valyala/fastrand"
	"go.uber.org/zap"

	"github.com/randomizedcoder/fixedring/internal/ring"
)

// ErrOrder is returned when the consumer reads a sample older than one it
// has already seen. Dropped samples show up as gaps, never as ErrOrder.
var ErrOrder = errors.New("pump: sample read out of order")

// Options shapes the simulated load.
type Options struct {
	// Every is the number of polls between interrupts.
	Every int
	// MaxBurst bounds the samples written per interrupt; each burst is
	// uniformly 1..MaxBurst.
	MaxBurst int
	// DrainPerPoll bounds the samples the main loop reads per poll.
	DrainPerPoll int
	// Iterations is the number of polls to run; 0 runs until stopped.
	Iterations int
	// ReportEvery is the stats log interval; 0 disables periodic reports.
	ReportEvery time.Duration
	// Seed seeds the burst generator; 0 picks a random seed.
	Seed uint32
}

// Stats summarizes a run.
type Stats struct {
	Polls        uint64
	Written      uint64 // samples accepted by the ring
	Read         uint64
	Rejected     uint64 // writes refused with ring.ErrFull
	Dropped      uint64 // samples overwritten before being read
	Gaps         uint64 // reads that skipped ahead past lost samples
	MaxFill      int
	MaxAvailable int    // largest Buffer.Available after a burst
	Count        uint64 // ring read position at the end of the run
	Elapsed      time.Duration
}

// Pump moves samples through a ring.Buffer.
type Pump struct {
	buf  ring.Buffer[uint32]
	opts Options
	log  *zap.Logger

	trigger *Trigger
	stop    Stopper
	rng     fastrand.RNG

	next     uint32 // next sequence number to produce
	expected uint32 // next sequence number the consumer expects
	dropped0 uint64 // buf.Dropped() when the current run started
	stats    Stats
}

// New creates a Pump over buf. A nil logger disables logging.
func New(buf ring.Buffer[uint32], opts Options, log *zap.Logger) (*Pump, error) {
	if buf == nil {
		return nil, errors.New("pump: nil buffer")
	}
	if opts.MaxBurst < 1 {
		return nil, errors.Errorf("pump: max burst %d must be positive", opts.MaxBurst)
	}
	if opts.DrainPerPoll < 1 {
		return nil, errors.Errorf("pump: drain per poll %d must be positive", opts.DrainPerPoll)
	}
	if opts.Iterations < 0 {
		return nil, errors.Errorf("pump: iterations %d must not be negative", opts.Iterations)
	}
	if log == nil {
		log = zap.NewNop()
	}
	p := &Pump{
		buf:     buf,
		opts:    opts,
		log:     log,
		trigger: NewTrigger(opts.Every),
	}
	p.rng.Seed(opts.Seed)
	return p, nil
}

// Stop asks a running Run to return after the current poll. It has no
// effect on a later Run. Safe to call from any goroutine.
func (p *Pump) Stop() {
	p.stop.Stop()
}

// Run polls until Iterations is reached, Stop is called, or ctx is done.
// Stopping is not an error; Run only fails on ErrOrder.
//
// A Pump may be run again. Each Run starts with a cleared stop flag and
// fresh Stats; the ring contents and the sample sequence carry over.
// Run must not be called concurrently with itself.
func (p *Pump) Run(ctx context.Context) (Stats, error) {
	p.stop.Reset()
	p.trigger.Reset()
	p.stats = Stats{}
	p.dropped0 = p.buf.Dropped()

	release := p.stop.Bind(ctx)
	defer release()

	reporter := NewReporter(p.opts.ReportEvery)
	defer reporter.Stop()

	p.log.Info("pump started",
		zap.Int("capacity", p.buf.Cap()),
		zap.Int("every", p.trigger.Every()),
		zap.Int("max_burst", p.opts.MaxBurst),
		zap.Int("drain_per_poll", p.opts.DrainPerPoll),
		zap.Int("iterations", p.opts.Iterations),
	)

	start := time.Now()
	for !p.stop.Stopped() {
		if p.opts.Iterations > 0 && p.stats.Polls >= uint64(p.opts.Iterations) {
			break
		}
		p.stats.Polls++

		if p.trigger.Fire() {
			p.interrupt()
		}
		if err := p.drain(); err != nil {
			p.finish(start)
			p.log.Error("pump failed", zap.Error(err), zap.Object("stats", p.stats))
			return p.stats, err
		}
		if reporter.Due() {
			p.snapshot()
			p.log.Info("pump stats", zap.Object("stats", p.stats))
		}
	}

	p.finish(start)
	p.log.Info("pump stopped", zap.Object("stats", p.stats))
	return p.stats, nil
}

// interrupt writes one burst of consecutive samples.
func (p *Pump) interrupt() {
	n := 1 + int(p.rng.Uint32n(uint32(p.opts.MaxBurst)))
	for i := 0; i < n; i++ {
		if err := p.buf.Write(p.next); err != nil {
			p.stats.Rejected++
			continue
		}
		p.stats.Written++
		p.next++
	}
	if l := p.buf.Len(); l > p.stats.MaxFill {
		p.stats.MaxFill = l
	}
	if a := p.buf.Available(); a > p.stats.MaxAvailable {
		p.stats.MaxAvailable = a
	}
}

// drain reads up to DrainPerPoll samples and checks their order.
func (p *Pump) drain() error {
	for i := 0; i < p.opts.DrainPerPoll; i++ {
		v, err := p.buf.Read()
		if errors.Is(err, ring.ErrEmpty) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "pump: read")
		}
		p.stats.Read++

		switch {
		case v == p.expected:
		case v > p.expected:
			p.stats.Gaps++
		default:
			return errors.Wrapf(ErrOrder, "got %d, want at least %d", v, p.expected)
		}
		p.expected = v + 1
	}
	return nil
}

func (p *Pump) snapshot() {
	p.stats.Dropped = p.buf.Dropped() - p.dropped0
	p.stats.Count = p.buf.Count()
}

func (p *Pump) finish(start time.Time) {
	p.snapshot()
	p.stats.Elapsed = time.Since(start)
}
