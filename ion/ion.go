// Package ion holds per-ion-species state (reversal potential, internal
// and external concentration) shared across every mechanism instance
// that references a given ion. Each referencing mechanism sees an
// aliased view into the same underlying vectors, so a write by one
// mechanism is visible to every other mechanism sharing that CV.
package ion

import (
	"fmt"
	"math"
	"sort"
)

// Kind identifies an ion species.
type Kind uint8

const (
	Na Kind = iota
	K
	Ca
)

func (k Kind) String() string {
	switch k {
	case Na:
		return "na"
	case K:
		return "k"
	case Ca:
		return "ca"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// UnknownIonError is returned when a mechanism or caller references an
// ion kind the core does not recognize.
type UnknownIonError struct {
	Kind Kind
}

func (e *UnknownIonError) Error() string {
	return fmt.Sprintf("ion: unknown ion kind %v", e.Kind)
}

// DefaultReversal, DefaultInternal, and DefaultExternal give each
// ion's contract default at construction, overridable per cell.
func DefaultReversal(k Kind) (float64, error) {
	switch k {
	case Na:
		return 115 - 65, nil
	case K:
		return -12 - 65, nil
	case Ca:
		return 12.5 * math.Log(2.0/5e-5), nil
	default:
		return 0, &UnknownIonError{Kind: k}
	}
}

func DefaultInternal(k Kind) (float64, error) {
	switch k {
	case Na:
		return 10.0, nil
	case K:
		return 54.4, nil
	case Ca:
		return 5.0e-5, nil
	default:
		return 0, &UnknownIonError{Kind: k}
	}
}

func DefaultExternal(k Kind) (float64, error) {
	switch k {
	case Na:
		return 140.0, nil
	case K:
		return 2.5, nil
	case Ca:
		return 2.0, nil
	default:
		return 0, &UnknownIonError{Kind: k}
	}
}

// State is the sorted-union CV index list for one ion kind, with its
// reversal potential and concentration vectors. Lifetime equals the
// owning cell.Integrator's; mechanisms only ever hold a View onto it.
type State struct {
	Kind  Kind
	CVs   []int
	Xi    []float64
	Xo    []float64
	E     []float64
	index map[int]int
}

// NewState builds the ion state over the sorted, deduplicated union of
// referencing mechanisms' node indices, initialized to the ion's
// default values (or the supplied overrides).
func NewState(kind Kind, cvs []int, reversal, internal, external float64) *State {
	sorted := append([]int(nil), cvs...)
	sort.Ints(sorted)
	sorted = dedupSorted(sorted)

	n := len(sorted)
	s := &State{
		Kind:  kind,
		CVs:   sorted,
		Xi:    make([]float64, n),
		Xo:    make([]float64, n),
		E:     make([]float64, n),
		index: make(map[int]int, n),
	}
	for i, cv := range sorted {
		s.Xi[i] = internal
		s.Xo[i] = external
		s.E[i] = reversal
		s.index[cv] = i
	}
	return s
}

func dedupSorted(s []int) []int {
	if len(s) == 0 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}

// View is a mechanism's non-owning, index-translated window into a
// shared ion State: mechanism-local CV values map through to the
// State's compacted index space.
type View struct {
	state *State
}

// NewView returns a view over state for a mechanism whose node_index
// is a subset of state.CVs.
func NewView(state *State) *View { return &View{state: state} }

func (v *View) local(cv int) int {
	i, ok := v.state.index[cv]
	if !ok {
		panic(fmt.Sprintf("ion: CV %d not bound to ion %v", cv, v.state.Kind))
	}
	return i
}

func (v *View) E(cv int) float64      { return v.state.E[v.local(cv)] }
func (v *View) SetE(cv int, e float64) { v.state.E[v.local(cv)] = e }

func (v *View) Xi(cv int) float64        { return v.state.Xi[v.local(cv)] }
func (v *View) SetXi(cv int, xi float64) { v.state.Xi[v.local(cv)] = xi }

func (v *View) Xo(cv int) float64        { return v.state.Xo[v.local(cv)] }
func (v *View) SetXo(cv int, xo float64) { v.state.Xo[v.local(cv)] = xo }
