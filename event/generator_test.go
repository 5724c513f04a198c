package event

import (
	"math/rand"
	"testing"
)

func TestRegularGeneratorProducesFixedPeriodEvents(t *testing.T) {
	g := RegularGenerator(-1, 0, 1.0, 2.0, 0.5, 4.0)
	got := g.Events(0, 10)
	want := []float64{2.0, 2.5, 3.0, 3.5}
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Time != w {
			t.Errorf("event[%d].Time = %v, want %v", i, got[i].Time, w)
		}
	}
}

func TestRegularGeneratorWindowedCallsAreMonotonic(t *testing.T) {
	g := RegularGenerator(-1, 0, 1.0, 0.0, 1.0, 5.0)
	first := g.Events(0, 2.5)
	second := g.Events(2.5, 5.5)
	if len(first) != 3 || len(second) != 2 {
		t.Fatalf("windowed counts = %d, %d; want 3, 2", len(first), len(second))
	}
	if second[0].Time != 3.0 {
		t.Errorf("second window first event at %v, want 3.0 (no double delivery at the boundary)", second[0].Time)
	}
}

func TestRegularGeneratorResetReplaysFromStart(t *testing.T) {
	g := RegularGenerator(-1, 0, 1.0, 0.0, 1.0, 3.0)
	g.Events(0, 10)
	g.Reset()
	got := g.Events(0, 10)
	if len(got) != 3 {
		t.Fatalf("after Reset, got %d events, want 3", len(got))
	}
}

func TestExplicitGeneratorSortsAndWindows(t *testing.T) {
	g := ExplicitGenerator([]Event{
		{Time: 5, Target: 0, Weight: 1},
		{Time: 1, Target: 0, Weight: 1},
		{Time: 3, Target: 0, Weight: 1},
	})
	first := g.Events(0, 2)
	if len(first) != 1 || first[0].Time != 1 {
		t.Fatalf("first window = %v, want single event at t=1", first)
	}
	second := g.Events(2, 10)
	if len(second) != 2 || second[0].Time != 3 || second[1].Time != 5 {
		t.Fatalf("second window = %v, want events at t=3,5", second)
	}
}

func TestPoissonGeneratorRespectsStopTime(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := PoissonGenerator(-1, 0, 1.0, 0.0, 0.5, 50.0, rng)
	got := g.Events(0, 1000)
	for _, e := range got {
		if e.Time < 0 || e.Time >= 50.0 {
			t.Errorf("event at t=%v outside [0, 50)", e.Time)
		}
	}
}

func TestDrainPushesGeneratedEventsIntoQueue(t *testing.T) {
	q := NewQueue()
	g := RegularGenerator(-1, 2, 1.0, 0.0, 1.0, 3.0)
	Drain(q, g, 0, 10)
	if q.Len() != 3 {
		t.Fatalf("queue length = %d, want 3", q.Len())
	}
	e, ok := q.PopIfBefore(100)
	if !ok || e.Time != 0 {
		t.Fatalf("first popped event = %+v, ok=%v, want time 0", e, ok)
	}
}
