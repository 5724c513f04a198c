package event

import (
	"math"
	"math/rand"
	"sort"
)

// Generator produces a monotonically time-ordered sequence of events,
// windowed by successive calls to Events. The regular and Poisson
// generators deliver to a single fixed (mechanism, target, weight); the
// explicit generator replays whatever events it was given. Calls to Events on one Generator must be
// monotonic in time: without an intervening Reset, successive calls
// Events(t0, t1) then Events(t2, t3) must satisfy t0 <= t1 <= t2 <= t3.
type Generator interface {
	Reset()
	Events(t0, t1 float64) []Event
}

// Drain pulls every event a Generator produces in [t0, t1) and pushes
// them onto q. This is the bridge between a Generator (a time-schedule
// abstraction with no notion of a queue) and the Queue an Integrator
// actually drains.
func Drain(q *Queue, gen Generator, t0, t1 float64) {
	for _, e := range gen.Events(t0, t1) {
		q.Push(e)
	}
}

// regularGenerator yields one event at every tStart + k*dt strictly
// less than tStop, k = 0, 1, 2, ....
type regularGenerator struct {
	mechanism, target int
	weight            float64
	tStart, dt, tStop float64
	next              float64
}

// RegularGenerator produces events at a fixed period dt, starting at
// tStart and stopping before tStop, targeting (mechanism, target) with
// the given weight. mechanism == -1 selects the integrator's single
// designated synapse, as in Event.Mechanism.
func RegularGenerator(mechanism, target int, weight, tStart, dt, tStop float64) Generator {
	return &regularGenerator{
		mechanism: mechanism, target: target, weight: weight,
		tStart: tStart, dt: dt, tStop: tStop,
		next: tStart,
	}
}

func (g *regularGenerator) Reset() { g.next = g.tStart }

func (g *regularGenerator) Events(t0, t1 float64) []Event {
	if g.next < t0 {
		// Catch up without emitting events already skipped past; this
		// happens when a window starts later than the next pending
		// event time (a gap between windows, or a first window that
		// begins after tStart).
		k := math.Ceil((t0 - g.next) / g.dt)
		g.next += k * g.dt
	}
	var out []Event
	for g.next < t1 && g.next < g.tStop {
		out = append(out, Event{Time: g.next, Mechanism: g.mechanism, Target: g.target, Weight: g.weight})
		g.next += g.dt
	}
	return out
}

// poissonGenerator yields events at times drawn from a homogeneous
// Poisson process of the given rate (kHz, i.e. events per ms), using
// the standard exponential-interarrival construction.
type poissonGenerator struct {
	mechanism, target      int
	weight                 float64
	tStart, rateKHz, tStop float64
	rng                    *rand.Rand
	next                   float64
	started                bool
}

// PoissonGenerator produces events at a homogeneous Poisson rate
// (events/ms) starting at tStart and stopping before tStop. rng must
// be non-nil; callers supply their own source so runs stay
// reproducible under the determinism property (§8) when seeded
// identically.
func PoissonGenerator(mechanism, target int, weight, tStart, rateKHz, tStop float64, rng *rand.Rand) Generator {
	return &poissonGenerator{
		mechanism: mechanism, target: target, weight: weight,
		tStart: tStart, rateKHz: rateKHz, tStop: tStop,
		rng: rng,
	}
}

func (g *poissonGenerator) Reset() {
	g.started = false
}

func (g *poissonGenerator) draw() float64 {
	return -math.Log(1-g.rng.Float64()) / g.rateKHz
}

func (g *poissonGenerator) Events(t0, t1 float64) []Event {
	if !g.started {
		g.next = g.tStart + g.draw()
		g.started = true
	}
	if g.next < t0 {
		g.next = t0 + g.draw()
	}
	var out []Event
	for g.next < t1 && g.next < g.tStop {
		out = append(out, Event{Time: g.next, Mechanism: g.mechanism, Target: g.target, Weight: g.weight})
		g.next += g.draw()
	}
	return out
}

// explicitGenerator replays a fixed, pre-sorted list of events.
type explicitGenerator struct {
	events []Event
	cursor int
}

// ExplicitGenerator produces exactly the given events, sorted into
// delivery order (time, then target, then weight) at construction.
func ExplicitGenerator(events []Event) Generator {
	sorted := append([]Event(nil), events...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Time != sorted[j].Time {
			return sorted[i].Time < sorted[j].Time
		}
		if sorted[i].Target != sorted[j].Target {
			return sorted[i].Target < sorted[j].Target
		}
		return sorted[i].Weight < sorted[j].Weight
	})
	return &explicitGenerator{events: sorted}
}

func (g *explicitGenerator) Reset() { g.cursor = 0 }

func (g *explicitGenerator) Events(t0, t1 float64) []Event {
	lb := sort.Search(len(g.events)-g.cursor, func(i int) bool {
		return g.events[g.cursor+i].Time >= t0
	}) + g.cursor
	ub := sort.Search(len(g.events)-lb, func(i int) bool {
		return g.events[lb+i].Time >= t1
	}) + lb
	g.cursor = ub
	return g.events[lb:ub]
}
