package frontend

import (
	"log/slog"
	"time"
)

// Defaults used when a DriverConfig field is left at zero.
const (
	DefaultTicksPerFrame = 10
	DefaultScale         = 15

	// MaxFrameElapsed bounds the wall time credited to a single frame when
	// pacing by cycles per second, so a stalled host does not burst.
	MaxFrameElapsed = 250 * time.Millisecond
)

// DriverConfig controls how many cycles a frame executes and how the
// framebuffer is scaled.
type DriverConfig struct {
	TicksPerFrame int
	Scale         int

	// CyclesPerSecond, when positive, replaces the fixed TicksPerFrame count
	// with elapsed*CyclesPerSecond cycles, carrying the fractional remainder
	// into the next frame.
	CyclesPerSecond float64
}

// DriverStats counts the work done by the current and previous sessions.
type DriverStats struct {
	Frames      uint64
	Cycles      uint64
	LastElapsed time.Duration
}

// Driver is the frame driver. It is Idle until started and then runs one
// iteration per frame until cancelled or the engine faults.
type Driver struct {
	engine  Engine
	surface Surface
	sched   Scheduler
	log     *slog.Logger

	ticks int
	scale int
	cps   float64

	active    bool
	handle    Handle
	session   uint64
	lastFrame time.Time
	carry     float64
	stats     DriverStats
}

// NewDriver returns an idle driver. Zero config fields take their defaults.
func NewDriver(engine Engine, surface Surface, sched Scheduler, cfg DriverConfig, log *slog.Logger) *Driver {
	if cfg.TicksPerFrame <= 0 {
		cfg.TicksPerFrame = DefaultTicksPerFrame
	}
	if cfg.Scale <= 0 {
		cfg.Scale = DefaultScale
	}
	if log == nil {
		log = slog.Default()
	}
	return &Driver{
		engine:  engine,
		surface: surface,
		sched:   sched,
		log:     log,
		ticks:   cfg.TicksPerFrame,
		scale:   cfg.Scale,
		cps:     cfg.CyclesPerSecond,
	}
}

// Running reports whether a session is active.
func (d *Driver) Running() bool {
	return d.active
}

// Stats returns the driver counters.
func (d *Driver) Stats() DriverStats {
	return d.stats
}

// start begins a new session. The caller must have cancelled the previous one.
func (d *Driver) start(now time.Time) {
	d.session++
	d.active = true
	d.lastFrame = now
	d.carry = 0
	d.schedule(d.session)
	d.log.Debug("frame session started", "session", d.session)
}

// cancel stops the current session. Any callback still carrying the old
// session number becomes a no-op, and a frame that is executing when cancel
// is called does not schedule another.
func (d *Driver) cancel() {
	if d.handle != 0 {
		d.sched.CancelFrame(d.handle)
		d.handle = 0
	}
	d.session++
	if d.active {
		d.active = false
		d.log.Debug("frame session cancelled", "frames", d.stats.Frames)
	}
}

func (d *Driver) schedule(session uint64) {
	d.handle = d.sched.RequestFrame(func(now time.Time) error {
		return d.frame(session, now)
	})
}

func (d *Driver) frame(session uint64, now time.Time) error {
	if session != d.session {
		return nil
	}
	d.handle = 0

	elapsed := now.Sub(d.lastFrame)
	d.lastFrame = now
	d.stats.LastElapsed = elapsed

	cycles := d.cyclesFor(elapsed)
	for i := 0; i < cycles; i++ {
		if err := d.engine.StepCycle(); err != nil {
			d.session++
			d.active = false
			fault := &EngineFault{Frame: d.stats.Frames, Cycle: i, Err: err}
			d.log.Debug("engine fault", "frame", fault.Frame, "cycle", i, "err", err)
			return fault
		}
		d.stats.Cycles++
	}
	d.engine.StepTimer()

	d.surface.Clear()
	d.engine.Render(d.surface, d.scale)
	d.stats.Frames++

	if session == d.session {
		d.schedule(session)
	}
	return nil
}

// cyclesFor returns the number of cycles to run in a frame that followed the
// previous one by elapsed.
func (d *Driver) cyclesFor(elapsed time.Duration) int {
	if d.cps <= 0 {
		return d.ticks
	}
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > MaxFrameElapsed {
		elapsed = MaxFrameElapsed
	}
	want := elapsed.Seconds()*d.cps + d.carry
	n := int(want)
	d.carry = want - float64(n)
	return n
}
