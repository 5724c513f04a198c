package cell

import (
	"math"
	"testing"

	"cablecell/event"
	"cablecell/morphology"
)

// Scenario 4: a single synaptic event scheduled between fixed steps is
// applied exactly at its scheduled time, not snapped to a step boundary.
func TestAdvanceToAppliesEventAtExactTime(t *testing.T) {
	c := &morphology.CellSpec{
		Segs: []morphology.Segment{
			{Kind: morphology.SegmentSoma, Parent: -1, SomaRadius: 10, CM: 1, RL: 100},
		},
		MechSpecs: []morphology.MechanismSpec{
			{Kind: "pas", Locs: []morphology.Location{{Segment: 0}}, Params: map[string]float64{"g_leak": 0.001, "e_leak": -65}},
			{Kind: "expsyn", Locs: []morphology.Location{{Segment: 0}}, Params: map[string]float64{"tau": 2.0, "e": 0}},
		},
	}
	ig, err := New(c, DefaultConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ig.Initialize()
	ig.PushEvent(event.Event{Time: 3.3, Mechanism: -1, Target: 0, Weight: 0.01})

	peakV := math.Inf(-1)
	peakT := 0.0
	const dt = 0.5
	for ig.Time() < 10.0 {
		prevT := ig.Time()
		target := math.Min(10.0, prevT+dt)
		if err := ig.AdvanceTo(target, dt); err != nil {
			t.Fatalf("AdvanceTo: %v", err)
		}
		if v := ig.Voltage()[0]; v > peakV {
			peakV = v
			peakT = ig.Time()
		}
		if ig.Time() == prevT {
			t.Fatal("AdvanceTo made no progress")
		}
	}
	if peakT <= 3.3 || peakT > 3.3+20 {
		t.Errorf("EPSP peak at t=%v, want within (3.3, 3.3+a few tau] of the event", peakT)
	}
}
