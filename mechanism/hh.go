package mechanism

import (
	"math"

	"cablecell/ion"
)

// HH is the classic Hodgkin-Huxley squid-axon Na/K/leak density
// mechanism: three gating variables (m, h, n) per CV, integrated with
// the standard 1952 rate functions, ion-coupled to Na and K so its
// reversal potentials come from shared ion state rather than being
// hardcoded.
type HH struct {
	nodeIndex []int

	gNaBar float64 // S/cm^2
	gKBar  float64
	gLeak  float64
	eLeak  float64 // mV

	m, h, n []float64

	na *ion.View
	k  *ion.View
}

// NewHH constructs an HH mechanism over nodeIndex with the given
// maximal Na and K conductances, leak conductance, and leak reversal.
func NewHH(nodeIndex []int, gNaBar, gKBar, gLeak, eLeak float64) *HH {
	count := len(nodeIndex)
	return &HH{
		nodeIndex: append([]int(nil), nodeIndex...),
		gNaBar:    gNaBar,
		gKBar:     gKBar,
		gLeak:     gLeak,
		eLeak:     eLeak,
		m:         make([]float64, count),
		h:         make([]float64, count),
		n:         make([]float64, count),
	}
}

func (m *HH) Kind() Kind       { return KindHH }
func (m *HH) NodeIndex() []int { return m.nodeIndex }

func vtrap(x, y float64) float64 {
	if math.Abs(x/y) < 1e-6 {
		return y * (1 - x/y/2)
	}
	return x / (math.Exp(x/y) - 1)
}

func rates(v float64) (am, bm, ah, bh, an, bn float64) {
	am = 0.1 * vtrap(-(v + 40), 10)
	bm = 4 * math.Exp(-(v + 65) / 18)
	ah = 0.07 * math.Exp(-(v + 65) / 20)
	bh = 1 / (math.Exp(-(v+35)/10) + 1)
	an = 0.01 * vtrap(-(v + 55), 10)
	bn = 0.125 * math.Exp(-(v + 65) / 80)
	return
}

func (m *HH) Init(V []float64) {
	for k, cv := range m.nodeIndex {
		am, bm, ah, bh, an, bn := rates(V[cv])
		m.m[k] = am / (am + bm)
		m.h[k] = ah / (ah + bh)
		m.n[k] = an / (an + bn)
	}
}

func (m *HH) SetParams(t, dt float64) {}

func (m *HH) ComputeCurrent(V, I []float64) {
	for k, cv := range m.nodeIndex {
		eNa := m.na.E(cv)
		eK := m.k.E(cv)
		mv, hv, nv := m.m[k], m.h[k], m.n[k]
		iNa := m.gNaBar * mv * mv * mv * hv * (V[cv] - eNa)
		iK := m.gKBar * nv * nv * nv * nv * (V[cv] - eK)
		iLeak := m.gLeak * (V[cv] - m.eLeak)
		I[cv] += iNa + iK + iLeak
	}
}

func (m *HH) AdvanceState(V []float64, dt float64) {
	for k, cv := range m.nodeIndex {
		am, bm, ah, bh, an, bn := rates(V[cv])
		mInf, mTau := am/(am+bm), 1/(am+bm)
		hInf, hTau := ah/(ah+bh), 1/(ah+bh)
		nInf, nTau := an/(an+bn), 1/(an+bn)
		m.m[k] = mInf + (m.m[k]-mInf)*math.Exp(-dt/mTau)
		m.h[k] = hInf + (m.h[k]-hInf)*math.Exp(-dt/hTau)
		m.n[k] = nInf + (m.n[k]-nInf)*math.Exp(-dt/nTau)
	}
}

func (m *HH) UsesIon(k ion.Kind) bool { return k == ion.Na || k == ion.K }

func (m *HH) BindIon(k ion.Kind, v *ion.View) {
	switch k {
	case ion.Na:
		m.na = v
	case ion.K:
		m.k = v
	}
}

type hhState struct {
	m, h, n []float64
}

func (m *HH) SnapshotState() any {
	return hhState{
		m: append([]float64(nil), m.m...),
		h: append([]float64(nil), m.h...),
		n: append([]float64(nil), m.n...),
	}
}

func (m *HH) RestoreState(s any) {
	st := s.(hhState)
	copy(m.m, st.m)
	copy(m.h, st.h)
	copy(m.n, st.n)
}
