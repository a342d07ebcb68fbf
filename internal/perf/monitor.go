// Package perf implements the adaptive quality controller. It keeps a rolling
// window of measured frame rates and maps the window mean onto a discrete
// quality level that the renderer and the simulation's spawn/particle budgets
// consume.
package perf

// Quality levels, low to high.
const (
	LevelLow    = 0
	LevelMedium = 1
	LevelHigh   = 2
)

// Tuning defaults. The split thresholds (40 to degrade, 58 to upgrade) give
// hysteresis so the level does not oscillate around a single cutoff, and the
// minimum sample gate avoids downgrades during startup transients.
const (
	DefaultWindowSize    = 60
	DefaultMinSamples    = 10
	DefaultLowThreshold  = 40.0
	DefaultHighThreshold = 58.0
)

// QualityConfig is the tuple broadcast to subscribers on a level change.
type QualityConfig struct {
	Level           int
	ParticleDensity float64 // Multiplier for particle budgets (0..1]
	EffectIntensity float64 // Multiplier for visual effect strength (0..1]
	ShadowsEnabled  bool
	GridEnabled     bool
}

// qualityPresets binds each level to its fixed configuration tuple.
var qualityPresets = [3]QualityConfig{
	{Level: LevelLow, ParticleDensity: 0.3, EffectIntensity: 0.5, ShadowsEnabled: false, GridEnabled: false},
	{Level: LevelMedium, ParticleDensity: 0.6, EffectIntensity: 0.8, ShadowsEnabled: false, GridEnabled: true},
	{Level: LevelHigh, ParticleDensity: 1.0, EffectIntensity: 1.0, ShadowsEnabled: true, GridEnabled: true},
}

// QualityFor returns the configuration tuple for a level, clamped to the
// valid range.
func QualityFor(level int) QualityConfig {
	if level < LevelLow {
		level = LevelLow
	}
	if level > LevelHigh {
		level = LevelHigh
	}
	return qualityPresets[level]
}

// Monitor samples frame rate once per second, maintains a bounded FIFO
// window, and moves the quality level when the window mean crosses a
// threshold. It starts at high quality and only degrades on evidence.
//
// Monitor is driven from the platform's frame loop; it is not safe for
// concurrent use.
type Monitor struct {
	samples []float64 // ring buffer
	head    int       // index of the oldest sample
	count   int

	level         int
	minSamples    int
	lowThreshold  float64
	highThreshold float64

	subscribers []func(QualityConfig)
}

// Option adjusts monitor tuning.
type Option func(*Monitor)

// WithThresholds overrides the degrade/upgrade FPS thresholds.
func WithThresholds(low, high float64) Option {
	return func(m *Monitor) {
		m.lowThreshold = low
		m.highThreshold = high
	}
}

// WithWindow overrides the sample window length and the minimum sample gate.
func WithWindow(size, minSamples int) Option {
	return func(m *Monitor) {
		if size > 0 {
			m.samples = make([]float64, size)
		}
		if minSamples > 0 {
			m.minSamples = minSamples
		}
	}
}

// NewMonitor creates a monitor at high quality with default tuning.
func NewMonitor(opts ...Option) *Monitor {
	m := &Monitor{
		samples:       make([]float64, DefaultWindowSize),
		level:         LevelHigh,
		minSamples:    DefaultMinSamples,
		lowThreshold:  DefaultLowThreshold,
		highThreshold: DefaultHighThreshold,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Subscribe registers a callback invoked with the new configuration tuple on
// every level transition. This is a publish step, not request/response:
// subscribers must not call back into the monitor.
func (m *Monitor) Subscribe(fn func(QualityConfig)) {
	m.subscribers = append(m.subscribers, fn)
}

// AddSample pushes a per-second FPS sample, evicting the oldest sample once
// the window is full, then re-evaluates the quality level.
func (m *Monitor) AddSample(fps float64) {
	if m.count < len(m.samples) {
		m.samples[(m.head+m.count)%len(m.samples)] = fps
		m.count++
	} else {
		m.samples[m.head] = fps
		m.head = (m.head + 1) % len(m.samples)
	}

	m.evaluate()
}

// evaluate applies the hysteresis transition rules.
func (m *Monitor) evaluate() {
	if m.count < m.minSamples {
		return
	}

	mean := m.Mean()
	switch {
	case mean < m.lowThreshold && m.level > LevelLow:
		m.level--
	case mean > m.highThreshold && m.level < LevelHigh:
		m.level++
	default:
		return
	}

	cfg := QualityFor(m.level)
	for _, fn := range m.subscribers {
		fn(cfg)
	}
}

// Mean returns the arithmetic mean of the sample window, or 0 when empty.
func (m *Monitor) Mean() float64 {
	if m.count == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < m.count; i++ {
		sum += m.samples[(m.head+i)%len(m.samples)]
	}
	return sum / float64(m.count)
}

// Level returns the current quality level.
func (m *Monitor) Level() int {
	return m.level
}

// Quality returns the current configuration tuple.
func (m *Monitor) Quality() QualityConfig {
	return QualityFor(m.level)
}

// SampleCount returns how many samples the window currently holds.
func (m *Monitor) SampleCount() int {
	return m.count
}

// Oldest returns the oldest sample in the window, or 0 when empty.
// Exposed for tests verifying FIFO eviction.
func (m *Monitor) Oldest() float64 {
	if m.count == 0 {
		return 0
	}
	return m.samples[m.head]
}
