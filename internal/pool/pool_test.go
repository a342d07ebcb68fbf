package pool

import (
	"testing"
	"time"
)

// testEntity mirrors the shape of simulation entities: gameplay fields that
// reset must clear, and an identity we can track across recycles.
type testEntity struct {
	id     int
	x, y   float64
	active bool
}

func newTestPool(capacity, initial int, policy EvictionPolicy, onPressure PressureFunc) *Pool[*testEntity] {
	nextID := 0
	factory := func() *testEntity {
		nextID++
		return &testEntity{id: nextID}
	}
	reset := func(e *testEntity) {
		e.x, e.y = -1, -1
		e.active = false
	}
	return New(Config{
		Capacity:    capacity,
		InitialSize: initial,
		Policy:      policy,
		OnPressure:  onPressure,
	}, factory, reset)
}

func TestPoolPreallocation(t *testing.T) {
	p := newTestPool(10, 4, EvictOldest, nil)

	m := p.Metrics()
	if m.Idle != 4 || m.Active != 0 || m.Created != 4 {
		t.Errorf("after init: %+v", m)
	}
}

func TestPoolInitialSizeClampedToCapacity(t *testing.T) {
	p := newTestPool(3, 10, EvictOldest, nil)

	if m := p.Metrics(); m.Created != 3 || m.Idle != 3 {
		t.Errorf("initial size should clamp to capacity: %+v", m)
	}
}

func TestPoolAcquireReusesLIFO(t *testing.T) {
	p := newTestPool(10, 0, EvictOldest, nil)

	a := p.Acquire()
	b := p.Acquire()
	p.Release(a)
	p.Release(b)

	// b was released last, so it must come back first.
	if got := p.Acquire(); got != b {
		t.Errorf("expected most recently released entity %d, got %d", b.id, got.id)
	}
}

func TestPoolMembershipInvariant(t *testing.T) {
	p := newTestPool(8, 2, EvictOldest, nil)

	var held []*testEntity
	for i := 0; i < 6; i++ {
		held = append(held, p.Acquire())
	}
	p.Release(held[0])
	p.Release(held[3])

	m := p.Metrics()
	if m.Active+m.Idle > max(m.Capacity, m.Created) {
		t.Errorf("active+idle exceeds bound: %+v", m)
	}
	if m.Active != 4 || m.Idle != 2 {
		t.Errorf("expected 4 active / 2 idle, got %+v", m)
	}

	// No entity may be in both sets.
	seen := make(map[*testEntity]bool)
	for _, e := range p.Active() {
		if seen[e] {
			t.Errorf("entity %d appears twice in active", e.id)
		}
		seen[e] = true
	}
	for _, e := range p.idle {
		if seen[e] {
			t.Errorf("entity %d is in both active and idle", e.id)
		}
	}
}

func TestPoolReleaseResetsEntity(t *testing.T) {
	p := newTestPool(4, 0, EvictOldest, nil)

	e := p.Acquire()
	e.x, e.y = 12, 34
	e.active = true

	p.Release(e)

	if e.active || e.x != -1 || e.y != -1 {
		t.Errorf("release did not reset entity: %+v", e)
	}
	if m := p.Metrics(); m.Active != 0 || m.Idle != 1 {
		t.Errorf("after release: %+v", m)
	}
}

func TestPoolDoubleReleaseIsNoop(t *testing.T) {
	p := newTestPool(4, 0, EvictOldest, nil)

	e := p.Acquire()
	p.Release(e)
	p.Release(e) // already idle

	if m := p.Metrics(); m.Idle != 1 {
		t.Errorf("double release duplicated idle entry: %+v", m)
	}
}

func TestPoolReleaseForeignEntityIsNoop(t *testing.T) {
	p := newTestPool(4, 0, EvictOldest, nil)
	p.Acquire()

	p.Release(&testEntity{id: 999})

	if m := p.Metrics(); m.Active != 1 || m.Idle != 0 {
		t.Errorf("foreign release changed sets: %+v", m)
	}
}

func TestPoolEvictsOldestAtCapacity(t *testing.T) {
	p := newTestPool(10, 0, EvictOldest, func(Metrics) {})

	var held []*testEntity
	for i := 0; i < 10; i++ {
		e := p.Acquire()
		e.active = true
		held = append(held, e)
	}

	got := p.Acquire()
	if got != held[0] {
		t.Errorf("expected oldest active entity %d to be recycled, got %d", held[0].id, got.id)
	}
	if got.active {
		t.Error("recycled entity was not reset")
	}
	if m := p.Metrics(); m.Active != 10 || m.Created != 10 {
		t.Errorf("eviction should not grow the pool: %+v", m)
	}
}

func TestPoolGrowAlwaysPolicy(t *testing.T) {
	p := newTestPool(2, 0, GrowAlways, func(Metrics) {})

	p.Acquire()
	p.Acquire()
	p.Acquire() // over capacity

	if m := p.Metrics(); m.Created != 3 || m.Active != 3 {
		t.Errorf("GrowAlways should construct past capacity: %+v", m)
	}
}

func TestPoolPressureReportRateLimited(t *testing.T) {
	reports := 0
	p := newTestPool(1, 0, EvictOldest, func(m Metrics) {
		reports++
		if m.Capacity != 1 {
			t.Errorf("report metrics: %+v", m)
		}
	})

	// Fixed clock: every eviction happens "at the same instant".
	base := time.Unix(1000, 0)
	p.now = func() time.Time { return base }

	p.Acquire()
	for i := 0; i < 50; i++ {
		p.Acquire() // every call evicts under pressure
	}
	if reports != 1 {
		t.Fatalf("expected 1 rate-limited report, got %d", reports)
	}

	// Advance past the interval: one more report allowed.
	p.now = func() time.Time { return base.Add(2100 * time.Millisecond) }
	p.Acquire()
	if reports != 2 {
		t.Errorf("expected second report after interval, got %d", reports)
	}
}

func TestPoolClear(t *testing.T) {
	p := newTestPool(8, 4, EvictOldest, nil)
	p.Acquire()
	p.Acquire()

	p.Clear()

	if m := p.Metrics(); m.Active != 0 || m.Idle != 0 || m.Created != 0 {
		t.Errorf("Clear left state: %+v", m)
	}
}
