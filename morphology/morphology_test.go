package morphology

import (
	"math"
	"testing"
)

func oneCable(n int, length, radius float64) []Segment {
	comps := make([]Compartment, n)
	for i := range comps {
		comps[i] = Compartment{Length: length / float64(n), RadiusLeft: radius, RadiusCenter: radius, RadiusRight: radius}
	}
	return []Segment{
		{Kind: SegmentSoma, Parent: -1, SomaRadius: 10, CM: 1, RL: 100},
		{Kind: SegmentCable, Parent: 0, CM: 1, RL: 100, Compartments: comps},
	}
}

func TestBuildParentIndexOrdering(t *testing.T) {
	m, err := Build(oneCable(5, 100, 1))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i := 1; i < m.N; i++ {
		if m.ParentIndex[i] >= i {
			t.Errorf("CV %d has parent_index %d, want < %d", i, m.ParentIndex[i], i)
		}
	}
	if m.ParentIndex[0] != 0 {
		t.Errorf("root self-sentinel = %d, want 0", m.ParentIndex[0])
	}
}

func TestBuildAreaConservation(t *testing.T) {
	m, err := Build(oneCable(8, 200, 2))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	sum := 0.0
	for _, a := range m.Areas {
		sum += a
	}
	if math.Abs(sum-m.AnalyticArea) > 1e-9*m.AnalyticArea {
		t.Errorf("sum(Areas) = %v, AnalyticArea = %v", sum, m.AnalyticArea)
	}
}

func TestBuildPositiveCapacitance(t *testing.T) {
	m, err := Build(oneCable(4, 40, 0.5))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i, c := range m.Capacitance {
		if c <= 0 {
			t.Errorf("Capacitance[%d] = %v, want > 0", i, c)
		}
	}
}

func TestBuildRejectsNonSomaFirstSegment(t *testing.T) {
	segs := oneCable(3, 30, 1)
	segs[0], segs[1] = segs[1], segs[0]
	segs[0].Parent = -1
	segs[1].Parent = 0
	if _, err := Build(segs); err == nil {
		t.Fatal("Build: expected error for non-soma first segment")
	}
}

func TestBuildRejectsForwardParentReference(t *testing.T) {
	segs := oneCable(3, 30, 1)
	segs = append(segs, Segment{Kind: SegmentCable, Parent: 3, CM: 1, RL: 100, Compartments: segs[1].Compartments})
	if _, err := Build(segs); err == nil {
		t.Fatal("Build: expected error for forward parent reference")
	}
}
