// Package pool implements a fixed-capacity object recycler for simulation
// entities. Items, projectiles, powerups and particles are spawned and
// destroyed several times per second; acquiring them from a pool instead of
// allocating keeps per-tick cost flat and avoids GC churn during play.
package pool

import (
	"time"

	"github.com/charmbracelet/log"
)

// EvictionPolicy controls what happens when Acquire is called with no idle
// entries and the pool at capacity.
type EvictionPolicy int

const (
	// EvictOldest force-recycles the oldest active entry (FIFO displacement).
	// An on-screen entity may visibly disappear under load; that is the
	// accepted trade-off for keeping the pool responsive.
	EvictOldest EvictionPolicy = iota

	// GrowAlways skips displacement and constructs a new entry instead.
	GrowAlways
)

// Metrics is a read-only snapshot of pool occupancy.
type Metrics struct {
	Created  int // Total entries constructed since the last Clear
	Active   int // Entries currently acquired
	Idle     int // Entries available for reuse
	Capacity int // Soft capacity
}

// PressureFunc receives a metrics snapshot whenever the pool recycles under
// pressure or grows past capacity. Reports are rate-limited; this is a
// diagnostic signal, not backpressure.
type PressureFunc func(Metrics)

// Config tunes a pool's capacity and pressure reporting.
type Config struct {
	Capacity       int            // Soft maximum of active+idle entries
	InitialSize    int            // Entries pre-constructed at creation (clamped to Capacity)
	Policy         EvictionPolicy // Behavior when exhausted at capacity
	ReportInterval time.Duration  // Minimum interval between pressure reports (default 2s)
	OnPressure     PressureFunc   // Optional pressure sink; defaults to a log warning
}

// Pool recycles entries of type T. An entry is always in exactly one of two
// disjoint sets: idle (available) or active (currently simulated). Idle
// entries are reused LIFO so recently released, still-warm entries come back
// first. Capacity is advisory: Acquire never fails, it recycles or grows.
//
// Pool is not safe for concurrent use. The simulation mutates it from a
// single tick goroutine; callers that parallelize updates must add their own
// locking around Acquire/Release.
type Pool[T comparable] struct {
	factory func() T
	reset   func(T)

	idle   []T // LIFO stack
	active []T // FIFO queue, head is the oldest acquired entry

	created  int
	capacity int
	policy   EvictionPolicy

	onPressure     PressureFunc
	reportInterval time.Duration
	lastReport     time.Time
	now            func() time.Time // injectable for tests
}

// New creates a pool and pre-constructs min(InitialSize, Capacity) idle
// entries. factory builds a fresh entry; reset must zero all gameplay fields
// of an entry being returned to the idle set (park off-screen, clear flags,
// zero velocity).
func New[T comparable](cfg Config, factory func() T, reset func(T)) *Pool[T] {
	if cfg.Capacity <= 0 {
		cfg.Capacity = 1
	}
	if cfg.ReportInterval <= 0 {
		cfg.ReportInterval = 2 * time.Second
	}
	if cfg.OnPressure == nil {
		cfg.OnPressure = func(m Metrics) {
			log.Warn("entity pool under pressure",
				"active", m.Active, "idle", m.Idle,
				"created", m.Created, "capacity", m.Capacity)
		}
	}

	p := &Pool[T]{
		factory:        factory,
		reset:          reset,
		idle:           make([]T, 0, cfg.Capacity),
		active:         make([]T, 0, cfg.Capacity),
		capacity:       cfg.Capacity,
		policy:         cfg.Policy,
		onPressure:     cfg.OnPressure,
		reportInterval: cfg.ReportInterval,
		now:            time.Now,
	}

	warm := cfg.InitialSize
	if warm > cfg.Capacity {
		warm = cfg.Capacity
	}
	for i := 0; i < warm; i++ {
		e := p.factory()
		p.reset(e)
		p.created++
		p.idle = append(p.idle, e)
	}

	return p
}

// Acquire returns an entry ready for use and records it as active.
//
// Resolution order: reuse the most recently released idle entry; below
// capacity, construct a new one; at capacity, recycle the oldest active
// entry (EvictOldest) or construct anyway (GrowAlways). Construction past
// capacity and recycling under pressure both emit a rate-limited report.
func (p *Pool[T]) Acquire() T {
	// Idle stack first: most recently released is reused first.
	if n := len(p.idle); n > 0 {
		e := p.idle[n-1]
		p.idle = p.idle[:n-1]
		p.active = append(p.active, e)
		return e
	}

	if p.created < p.capacity {
		e := p.factory()
		p.created++
		p.active = append(p.active, e)
		return e
	}

	// Exhausted at capacity.
	if p.policy == EvictOldest && len(p.active) > 0 {
		e := p.active[0]
		p.active = p.active[1:]
		p.reset(e)
		p.active = append(p.active, e)
		p.report()
		return e
	}

	// Last resort: capacity is advisory, never a hard failure.
	e := p.factory()
	p.created++
	p.active = append(p.active, e)
	p.report()
	return e
}

// Release returns an entry to the idle set. The entry is removed from
// active, reset, and pushed onto the idle stack. Releasing an entry that is
// not active (already idle, or foreign) is a no-op, so double release cannot
// corrupt the sets.
func (p *Pool[T]) Release(e T) {
	for i, a := range p.active {
		if a == e {
			p.active = append(p.active[:i], p.active[i+1:]...)
			p.reset(e)
			p.idle = append(p.idle, e)
			return
		}
	}
}

// Active returns the active set in acquisition order (oldest first). The
// slice aliases pool internals and is valid only until the next
// Acquire/Release/Clear; callers iterating it must defer releases until the
// iteration is done.
func (p *Pool[T]) Active() []T {
	return p.active
}

// Clear drops every entry in both sets and resets counters.
// Used at run teardown.
func (p *Pool[T]) Clear() {
	p.idle = p.idle[:0]
	p.active = p.active[:0]
	p.created = 0
}

// Metrics returns a snapshot of {created, active, idle, capacity}.
func (p *Pool[T]) Metrics() Metrics {
	return Metrics{
		Created:  p.created,
		Active:   len(p.active),
		Idle:     len(p.idle),
		Capacity: p.capacity,
	}
}

// report emits a pressure snapshot, suppressing repeats within the
// configured interval.
func (p *Pool[T]) report() {
	now := p.now()
	if !p.lastReport.IsZero() && now.Sub(p.lastReport) < p.reportInterval {
		return
	}
	p.lastReport = now
	p.onPressure(p.Metrics())
}
