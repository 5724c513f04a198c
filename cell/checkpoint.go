package cell

import "cablecell/ion"

// Checkpoint is an opaque snapshot of an Integrator's mutable state,
// grounded on the teacher's pervasive Update/Rollback element idiom:
// time, V, each Stateful mechanism, and each ion's concentrations
// contribute a snapshot, and Restore replays them rather than
// reconstructing the Integrator. The pending event queue and the ion
// reversal potentials are not captured.
type Checkpoint struct {
	t float64
	v []float64

	mechStates []any // nil entry for a non-Stateful mechanism

	ionXi map[ion.Kind][]float64
	ionXo map[ion.Kind][]float64
}

// Checkpoint captures the current time, voltage, every Stateful
// mechanism's internal state, and every ion state's concentrations.
func (ig *Integrator) Checkpoint() *Checkpoint {
	cp := &Checkpoint{
		t:          ig.t,
		v:          append([]float64(nil), ig.V...),
		mechStates: make([]any, len(ig.mechs)),
		ionXi:      make(map[ion.Kind][]float64, len(ig.ions)),
		ionXo:      make(map[ion.Kind][]float64, len(ig.ions)),
	}
	for i, m := range ig.mechs {
		if sm, ok := m.(mechanismStateful); ok {
			cp.mechStates[i] = sm.SnapshotState()
		}
	}
	for k, st := range ig.ions {
		cp.ionXi[k] = append([]float64(nil), st.Xi...)
		cp.ionXo[k] = append([]float64(nil), st.Xo...)
	}
	return cp
}

// Restore rewinds the integrator to a previously captured checkpoint.
// The checkpoint must have been produced by this same Integrator; it
// is not portable across cells of different shape.
func (ig *Integrator) Restore(cp *Checkpoint) {
	ig.t = cp.t
	copy(ig.V, cp.v)
	for i, m := range ig.mechs {
		if sm, ok := m.(mechanismStateful); ok && cp.mechStates[i] != nil {
			sm.RestoreState(cp.mechStates[i])
		}
	}
	for k, st := range ig.ions {
		copy(st.Xi, cp.ionXi[k])
		copy(st.Xo, cp.ionXo[k])
	}
}

// mechanismStateful is a local alias avoiding a direct dependency on
// the mechanism package's exported name in this file's signatures.
type mechanismStateful interface {
	SnapshotState() any
	RestoreState(s any)
}
