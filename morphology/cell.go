package morphology

// Location addresses one compartment within a segment. Compartment is
// ignored (treated as 0) when the segment is a soma.
type Location struct {
	Segment     int
	Compartment int
}

// CVIndex resolves a Location to a CV index given the built Morphology.
func (l Location) CVIndex(m *Morphology) int {
	if l.Segment == 0 {
		// Build guarantees segment 0 is the soma, which owns one CV.
		return m.SegmentIndex[0]
	}
	return m.SegmentIndex[l.Segment] + l.Compartment
}

// StimulusSpec is a current-clamp stimulus: a total-current (nA)
// function of time applied at one CV.
type StimulusSpec struct {
	Loc Location
	Amp func(t float64) float64
}

// MechanismSpec declares an instance of a named mechanism kind placed
// over a set of locations. For density mechanisms, Locs lists every CV
// the mechanism covers; the resolved CVs become node_index in the given
// order, without sorting, so they must be strictly increasing or
// construction fails. For point-process mechanisms, Locs lists one
// entry per local target index, in target order.
type MechanismSpec struct {
	Kind   string
	Params map[string]float64
	Locs   []Location
}

// Cell is the opaque external input the core adapts: a morphology plus
// the mechanism, stimulus, and synapse placements a catalog/parser
// layer (out of scope for the core) would otherwise supply.
type Cell interface {
	NumCompartments() int
	Segments() []Segment
	Stimuli() []StimulusSpec
	Mechanisms() []MechanismSpec
}

// CellSpec is a minimal in-memory Cell implementation, suitable for
// tests and for callers that already have segment/mechanism data in
// hand rather than a parsed S-expression description.
type CellSpec struct {
	Segs      []Segment
	Stims     []StimulusSpec
	MechSpecs []MechanismSpec
}

func (c *CellSpec) NumCompartments() int {
	n := 0
	for _, s := range c.Segs {
		if s.Kind == SegmentSoma {
			n++
		} else {
			n += len(s.Compartments)
		}
	}
	return n
}

func (c *CellSpec) Segments() []Segment         { return c.Segs }
func (c *CellSpec) Stimuli() []StimulusSpec     { return c.Stims }
func (c *CellSpec) Mechanisms() []MechanismSpec { return c.MechSpecs }
