package mechanism

import "cablecell/ion"

// Passive is the leak density mechanism: a constant conductance to a
// fixed reversal potential, with no internal state and no ion
// coupling. It is the minimal density mechanism used by the
// resting-potential and passive-cable scenarios.
type Passive struct {
	nodeIndex []int
	gLeak     float64 // S/cm^2
	eLeak     float64 // mV
}

// NewPassive constructs a leak mechanism over nodeIndex (strictly
// increasing CV indices) with the given conductance and reversal
// potential.
func NewPassive(nodeIndex []int, gLeak, eLeak float64) *Passive {
	return &Passive{
		nodeIndex: append([]int(nil), nodeIndex...),
		gLeak:     gLeak,
		eLeak:     eLeak,
	}
}

func (m *Passive) Kind() Kind               { return KindPassive }
func (m *Passive) NodeIndex() []int         { return m.nodeIndex }
func (m *Passive) Init(V []float64)         {}
func (m *Passive) SetParams(t, dt float64)  {}

func (m *Passive) ComputeCurrent(V, I []float64) {
	for _, cv := range m.nodeIndex {
		I[cv] += m.gLeak * (V[cv] - m.eLeak)
	}
}

func (m *Passive) AdvanceState(V []float64, dt float64) {}

func (m *Passive) UsesIon(k ion.Kind) bool         { return false }
func (m *Passive) BindIon(k ion.Kind, v *ion.View) {}
