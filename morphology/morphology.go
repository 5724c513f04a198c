// Package morphology adapts a tree of soma/cable segments into the
// control-volume (CV) geometry the rest of the core operates on: a
// parent-index array, a segment-to-CV range map, and per-CV surface
// area, lumped capacitance, and face conductance.
package morphology

import (
	"fmt"
	"math"
)

// SegmentKind distinguishes the two segment shapes the adapter accepts.
type SegmentKind uint8

const (
	// SegmentSoma is a single sphere and must appear at segment index 0.
	SegmentSoma SegmentKind = iota
	// SegmentCable is an ordered chain of frustum compartments.
	SegmentCable
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentSoma:
		return "soma"
	case SegmentCable:
		return "cable"
	default:
		return fmt.Sprintf("SegmentKind(%d)", uint8(k))
	}
}

// Compartment is one cable compartment: a frustum of length L with
// radii at its left, center, and right cross-sections (um).
type Compartment struct {
	Length       float64
	RadiusLeft   float64
	RadiusCenter float64
	RadiusRight  float64
}

// Segment is one soma or cable in the morphology tree. Parent is the
// index, within the segment slice passed to Build, of this segment's
// parent (0 for any segment attached directly to the soma); the soma's
// own Parent is ignored.
type Segment struct {
	Kind   SegmentKind
	Parent int

	// SomaRadius is used only when Kind == SegmentSoma (um).
	SomaRadius float64

	// CM and RL are the passive membrane properties of a cable segment:
	// specific membrane capacitance (uF/cm^2) and axial resistivity
	// (ohm*cm). They are first-class cable attributes (see §9's open
	// question about the "membrane" parameter bag) rather than a
	// separate pseudo-mechanism.
	CM float64
	RL float64

	// Compartments is used only when Kind == SegmentCable, in order
	// from the segment's attachment point outward.
	Compartments []Compartment
}

// MorphologyError reports a structural violation discovered while
// adapting a cell's segments into CV geometry.
type MorphologyError struct {
	Segment int
	Reason  string
}

func (e *MorphologyError) Error() string {
	return fmt.Sprintf("morphology: segment %d: %s", e.Segment, e.Reason)
}

// Morphology is the result of adapting a cell's segments: the CV tree
// shape plus per-CV geometry.
type Morphology struct {
	// ParentIndex[i] is the parent CV of CV i; ParentIndex[0] == 0 (the
	// root sentinel). Children always have a higher index than their
	// parent.
	ParentIndex []int

	// SegmentIndex[s] is the first CV index of segment s;
	// SegmentIndex[s+1]-SegmentIndex[s] is its compartment count.
	// Length is len(segments)+1.
	SegmentIndex []int

	// Areas[i] is the CV surface area in um^2.
	Areas []float64

	// Capacitance[i] is the CV's lumped specific capacitance in
	// F/m^2 (converted from Segment.CM), after normalization by
	// Areas[i].
	Capacitance []float64

	// FaceAlpha[i] is the face conductance coefficient between CV i
	// and its parent, computed with c_m in F/m^2, r_L in ohm*cm and
	// lengths in um, the units the tree matrix assembly expects;
	// FaceAlpha[0] is unused.
	FaceAlpha []float64

	// AnalyticArea is the sum of the geometric (sphere/frustum) areas
	// contributed during construction, independent of how they were
	// distributed across CVs. It must equal Sum(Areas) within
	// numerical tolerance.
	AnalyticArea float64

	N int
}

// frustumArea returns the lateral surface area of a conical frustum of
// length h between radii r1 and r2.
func frustumArea(h, r1, r2 float64) float64 {
	dr := r1 - r2
	slant := h*h + dr*dr
	if slant < 0 {
		slant = 0
	}
	return math.Pi * (r1 + r2) * math.Sqrt(slant)
}

// Build adapts segments into CV geometry. segments[0] must be a soma;
// every other segment must be a cable whose Parent references an
// already-built segment (segment indices must therefore be in
// depth-first construction order, parent before child).
func Build(segments []Segment) (*Morphology, error) {
	if len(segments) == 0 {
		return nil, &MorphologyError{Segment: 0, Reason: "no segments"}
	}
	if segments[0].Kind != SegmentSoma {
		return nil, &MorphologyError{Segment: 0, Reason: "first segment must be a soma"}
	}

	segIndex := make([]int, len(segments)+1)
	segCVCount := make([]int, len(segments))
	n := 1 // soma occupies CV 0
	segIndex[0] = 0
	for s, seg := range segments {
		switch seg.Kind {
		case SegmentSoma:
			if s != 0 {
				return nil, &MorphologyError{Segment: s, Reason: "soma may only appear at segment index 0"}
			}
			segCVCount[s] = 1
		case SegmentCable:
			if s == 0 {
				return nil, &MorphologyError{Segment: s, Reason: "segment 0 must be a soma"}
			}
			if len(seg.Compartments) == 0 {
				return nil, &MorphologyError{Segment: s, Reason: "cable segment has no compartments"}
			}
			segCVCount[s] = len(seg.Compartments)
			n += len(seg.Compartments)
		default:
			return nil, &MorphologyError{Segment: s, Reason: "unsupported segment kind"}
		}
		if s > 0 {
			segIndex[s] = segIndex[s-1] + segCVCount[s-1]
		}
	}
	segIndex[len(segments)] = segIndex[len(segments)-1] + segCVCount[len(segments)-1]

	m := &Morphology{
		ParentIndex:  make([]int, n),
		SegmentIndex: segIndex,
		Areas:        make([]float64, n),
		Capacitance:  make([]float64, n),
		FaceAlpha:    make([]float64, n),
		N:            n,
	}

	// Segment.CM is given in uF/cm^2; the tree matrix assembly constants
	// (units.KappaArea, units.KappaCurrent) assume F/m^2.
	const uFPerCm2ToFPerM2 = 1e-2

	soma := segments[0]
	somaArea := 4 * math.Pi * soma.SomaRadius * soma.SomaRadius
	m.Areas[0] += somaArea
	m.Capacitance[0] += somaArea * soma.CM * uFPerCm2ToFPerM2
	m.AnalyticArea += somaArea

	for s := 1; s < len(segments); s++ {
		seg := segments[s]
		if seg.Parent < 0 || seg.Parent >= s {
			return nil, &MorphologyError{Segment: s, Reason: "parent segment must precede this segment"}
		}
		parentSeg := segments[seg.Parent]
		var parentCV int
		switch parentSeg.Kind {
		case SegmentSoma:
			parentCV = 0
		default:
			parentCV = segIndex[seg.Parent+1] - 1
		}
		base := segIndex[s]
		cm := seg.CM * uFPerCm2ToFPerM2
		for c, comp := range seg.Compartments {
			cv := base + c
			parent := parentCV
			if c > 0 {
				parent = cv - 1
			}
			m.ParentIndex[cv] = parent

			half := comp.Length / 2
			al := frustumArea(half, comp.RadiusLeft, comp.RadiusCenter)
			ar := frustumArea(half, comp.RadiusRight, comp.RadiusCenter)

			m.Areas[parent] += al
			m.Capacitance[parent] += al * cm
			m.Areas[cv] += ar
			m.Capacitance[cv] += ar * cm
			m.AnalyticArea += al + ar

			m.FaceAlpha[cv] = math.Pi * comp.RadiusCenter * comp.RadiusCenter / (cm * seg.RL * comp.Length)
		}
	}

	for i := 0; i < n; i++ {
		if m.Areas[i] <= 0 {
			return nil, &MorphologyError{Segment: -1, Reason: fmt.Sprintf("CV %d has non-positive area", i)}
		}
		m.Capacitance[i] /= m.Areas[i]
	}

	return m, nil
}
