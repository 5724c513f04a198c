package mechanism

import (
	"math"

	"cablecell/ion"
	"cablecell/units"
)

// ExpSyn is a single-exponential conductance synapse: a point process
// whose local targets each carry a conductance g that jumps by an
// event's weight and decays with time constant Tau. Its current
// contribution is a true current in nA, scaled by 1/Area[cv] (as
// every point process must be) to become a density contribution.
type ExpSyn struct {
	nodeIndex []int
	area      []float64

	tau  float64 // ms
	eRev float64 // mV

	g []float64 // uS, one per local target
}

// NewExpSyn constructs a synapse with one local target per entry in
// nodeIndex (a point process may bind several CVs, each its own
// target), decaying with time constant tau to reversal potential eRev.
func NewExpSyn(nodeIndex []int, tau, eRev float64) *ExpSyn {
	return &ExpSyn{
		nodeIndex: append([]int(nil), nodeIndex...),
		tau:       tau,
		eRev:      eRev,
		g:         make([]float64, len(nodeIndex)),
	}
}

func (m *ExpSyn) Kind() Kind       { return KindExpSyn }
func (m *ExpSyn) NodeIndex() []int { return m.nodeIndex }

func (m *ExpSyn) Init(V []float64) {
	for i := range m.g {
		m.g[i] = 0
	}
}

func (m *ExpSyn) SetParams(t, dt float64) {}

func (m *ExpSyn) SetAreas(area []float64) {
	m.area = append([]float64(nil), area...)
}

func (m *ExpSyn) ComputeCurrent(V, I []float64) {
	for k, cv := range m.nodeIndex {
		if m.g[k] == 0 {
			continue
		}
		iSyn := m.g[k] * (V[cv] - m.eRev) // uS * mV = nA
		I[cv] += units.KappaStimulus * iSyn / m.area[k]
	}
}

func (m *ExpSyn) AdvanceState(V []float64, dt float64) {
	decay := math.Exp(-dt / m.tau)
	for k := range m.g {
		m.g[k] *= decay
	}
}

func (m *ExpSyn) NetReceive(target int, weight float64) {
	m.g[target] += weight
}

func (m *ExpSyn) UsesIon(k ion.Kind) bool         { return false }
func (m *ExpSyn) BindIon(k ion.Kind, v *ion.View) {}

func (m *ExpSyn) SnapshotState() any {
	return append([]float64(nil), m.g...)
}

func (m *ExpSyn) RestoreState(s any) {
	copy(m.g, s.([]float64))
}
