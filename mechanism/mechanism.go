// Package mechanism defines the ABI the cell integrator requires of a
// membrane mechanism (ion channel, synapse) and supplies three
// built-in kinds: a passive leak, classic Hodgkin-Huxley Na/K/leak
// channels, and a single-exponential conductance synapse.
//
// A mechanism never mutates V; only the integrator's tree-matrix solve
// writes it. Mechanisms hold non-owning views into integrator-owned
// vectors and must never reassign those bindings after construction.
package mechanism

import (
	"fmt"

	"cablecell/ion"
)

// Kind names a mechanism implementation. The core ships a closed set;
// a catalog of externally-registered kinds is out of scope.
type Kind string

const (
	KindPassive Kind = "pas"
	KindHH      Kind = "hh"
	KindExpSyn  Kind = "expsyn"
)

// UnknownMechanismError is returned when a mechanism spec names a kind
// the core does not implement.
type UnknownMechanismError struct {
	Name string
}

func (e *UnknownMechanismError) Error() string {
	return fmt.Sprintf("mechanism: unknown kind %q", e.Name)
}

// Mechanism is the capability set every mechanism instance implements.
// NodeIndex is a strictly increasing list of CV indices, fixed at
// construction.
type Mechanism interface {
	Kind() Kind
	NodeIndex() []int

	Init(V []float64)
	SetParams(t, dt float64)
	ComputeCurrent(V, I []float64)
	AdvanceState(V []float64, dt float64)

	UsesIon(k ion.Kind) bool
	BindIon(k ion.Kind, view *ion.View)
}

// PointProcess is the additional capability of a mechanism localized
// at CVs rather than distributed over them: its current contribution
// must be scaled by 1/Area[cv], so it needs the CV areas bound in.
type PointProcess interface {
	Mechanism
	SetAreas(area []float64)
}

// Synapse is a point process that additionally accepts discrete
// events, addressed by the local index into its own NodeIndex (not by
// global CV).
type Synapse interface {
	PointProcess
	NetReceive(target int, weight float64)
}

// InvalidNodeIndexError is returned when a mechanism's node_index is
// not strictly increasing, or references a CV outside the cell.
type InvalidNodeIndexError struct {
	Kind Kind
}

func (e *InvalidNodeIndexError) Error() string {
	return fmt.Sprintf("mechanism: %s: node_index must be strictly increasing and in range", e.Kind)
}

// ValidateNodeIndex checks the §3 invariant that a mechanism's
// node_index is strictly increasing and every entry lies in [0, n).
func ValidateNodeIndex(kind Kind, nodeIndex []int, n int) error {
	prev := -1
	for _, cv := range nodeIndex {
		if cv <= prev || cv < 0 || cv >= n {
			return &InvalidNodeIndexError{Kind: kind}
		}
		prev = cv
	}
	return nil
}

// Stateful is implemented by mechanisms that carry per-CV internal
// state beyond V (gating variables, synaptic conductance) and support
// the checkpoint/restore extension in package cell.
type Stateful interface {
	Mechanism
	SnapshotState() any
	RestoreState(s any)
}
