// Package cell implements the top-level engine: it owns the CV
// geometry, voltage/current vectors, mechanism instances, ion state,
// stimuli, and event queue for a single morphologically detailed
// neuron, and drives them through Initialize, Advance, and AdvanceTo.
package cell

import (
	"math"
	"sort"

	"cablecell/event"
	"cablecell/ion"
	"cablecell/mechanism"
	"cablecell/morphology"
	"cablecell/treematrix"
	"cablecell/units"
)

// Stimulus is a resolved current-clamp stimulus bound to one CV.
type Stimulus struct {
	CV  int
	Amp func(t float64) float64
}

// Integrator is the per-cell engine. It exclusively owns V, I, the CV
// geometry, the tree matrix, every mechanism instance, every ion
// state, and the event queue. Mechanisms hold only non-owning views
// into this state; an Integrator's mechanisms must never outlive it.
type Integrator struct {
	t float64

	morph  *morphology.Morphology
	matrix *treematrix.Matrix

	V []float64
	I []float64

	mechs         []mechanism.Mechanism
	singleSynapse int // index of the sole synapse mechanism, or -1

	ions map[ion.Kind]*ion.State

	stimuli []Stimulus
	queue   *event.Queue
}

// New adapts c's morphology, builds and binds every declared
// mechanism, resolves stimuli, and returns a ready-to-Initialize
// Integrator. Construction errors leave no partially-initialized
// Integrator visible: on any error the partially built value is
// discarded.
func New(c morphology.Cell, cfg Config) (*Integrator, error) {
	morph, err := morphology.Build(c.Segments())
	if err != nil {
		return nil, err
	}

	ig := &Integrator{
		morph:         morph,
		V:             make([]float64, morph.N),
		I:             make([]float64, morph.N),
		singleSynapse: -1,
		ions:          make(map[ion.Kind]*ion.State),
		queue:         event.NewQueue(),
	}
	for i := range ig.V {
		ig.V[i] = cfg.RestingPotential
	}
	ig.matrix = treematrix.New(morph.ParentIndex, morph.Areas, morph.FaceAlpha)

	synapseCount := 0
	for _, spec := range c.Mechanisms() {
		m, err := buildMechanism(spec, morph)
		if err != nil {
			return nil, err
		}
		ig.mechs = append(ig.mechs, m)
		if _, ok := m.(mechanism.Synapse); ok {
			synapseCount++
			ig.singleSynapse = len(ig.mechs) - 1
		}
	}
	if synapseCount != 1 {
		ig.singleSynapse = -1
	}

	if err := ig.bindIons(cfg); err != nil {
		return nil, err
	}

	for _, s := range c.Stimuli() {
		ig.stimuli = append(ig.stimuli, Stimulus{
			CV:  s.Loc.CVIndex(morph),
			Amp: s.Amp,
		})
	}

	return ig, nil
}

func buildMechanism(spec morphology.MechanismSpec, morph *morphology.Morphology) (mechanism.Mechanism, error) {
	cvs := make([]int, len(spec.Locs))
	for i, loc := range spec.Locs {
		cvs[i] = loc.CVIndex(morph)
	}

	var m mechanism.Mechanism
	switch mechanism.Kind(spec.Kind) {
	case mechanism.KindPassive:
		gLeak := paramOr(spec.Params, "g_leak", 0.001)
		eLeak := paramOr(spec.Params, "e_leak", units.RestingPotential)
		m = mechanism.NewPassive(cvs, gLeak, eLeak)
	case mechanism.KindHH:
		gNaBar := paramOr(spec.Params, "gnabar", 0.12)
		gKBar := paramOr(spec.Params, "gkbar", 0.036)
		gLeak := paramOr(spec.Params, "gl", 0.0003)
		eLeak := paramOr(spec.Params, "el", -54.3)
		m = mechanism.NewHH(cvs, gNaBar, gKBar, gLeak, eLeak)
	case mechanism.KindExpSyn:
		tau := paramOr(spec.Params, "tau", 2.0)
		eRev := paramOr(spec.Params, "e", 0.0)
		syn := mechanism.NewExpSyn(cvs, tau, eRev)
		areas := make([]float64, len(cvs))
		for i, cv := range cvs {
			areas[i] = morph.Areas[cv]
		}
		syn.SetAreas(areas)
		m = syn
	default:
		return nil, &mechanism.UnknownMechanismError{Name: spec.Kind}
	}

	if err := mechanism.ValidateNodeIndex(m.Kind(), m.NodeIndex(), morph.N); err != nil {
		return nil, err
	}
	return m, nil
}

func paramOr(params map[string]float64, key string, def float64) float64 {
	if v, ok := params[key]; ok {
		return v
	}
	return def
}

func (ig *Integrator) bindIons(cfg Config) error {
	kinds := []ion.Kind{ion.Na, ion.K, ion.Ca}
	for _, k := range kinds {
		var union []int
		for _, m := range ig.mechs {
			if m.UsesIon(k) {
				union = append(union, m.NodeIndex()...)
			}
		}
		if len(union) == 0 {
			continue
		}
		sort.Ints(union)

		reversal, err := ion.DefaultReversal(k)
		if err != nil {
			return err
		}
		internal, _ := ion.DefaultInternal(k)
		external, _ := ion.DefaultExternal(k)
		if o, ok := cfg.IonOverrides[k]; ok {
			reversal, internal, external = o.Reversal, o.Internal, o.External
		}

		state := ion.NewState(k, union, reversal, internal, external)
		ig.ions[k] = state
		for _, m := range ig.mechs {
			if m.UsesIon(k) {
				m.BindIon(k, ion.NewView(state))
			}
		}
	}
	return nil
}

// Initialize sets t = 0 and initializes every mechanism's state at
// the cell's constructed resting voltage.
func (ig *Integrator) Initialize() {
	ig.t = 0
	for _, m := range ig.mechs {
		m.Init(ig.V)
	}
}

// Advance takes one fixed-size step of size dt. The caller must not
// call it with an event scheduled strictly inside (t, t+dt); AdvanceTo
// enforces this by splitting its own steps at event times.
func (ig *Integrator) Advance(dt float64) error {
	for i := range ig.I {
		ig.I[i] = 0
	}
	for _, m := range ig.mechs {
		m.SetParams(ig.t, dt)
		m.ComputeCurrent(ig.V, ig.I)
	}
	for _, s := range ig.stimuli {
		ig.I[s.CV] -= units.KappaStimulus * s.Amp(ig.t) / ig.morph.Areas[s.CV]
	}

	ig.matrix.Assemble(ig.V, ig.I, ig.morph.Capacitance, dt)
	if err := ig.matrix.Solve(); err != nil {
		return err
	}
	copy(ig.V, ig.matrix.Rhs)

	for _, m := range ig.mechs {
		m.AdvanceState(ig.V, dt)
	}
	ig.t += dt
	return nil
}

// AdvanceTo advances the cell to tfinal using steps no larger than dt,
// splitting a step whenever an event falls before its natural end so
// every event is applied exactly at its scheduled time.
func (ig *Integrator) AdvanceTo(tfinal, dt float64) error {
	if ig.t >= tfinal {
		return nil
	}
	for ig.t < tfinal {
		tnext := math.Min(tfinal, ig.t+dt)
		ev, popped := ig.queue.PopIfBefore(tnext)
		if popped {
			tnext = ev.Time
		}
		if err := ig.Advance(tnext - ig.t); err != nil {
			return err
		}
		if popped {
			if err := ig.dispatch(ev); err != nil {
				return err
			}
		}
	}
	return nil
}

func (ig *Integrator) dispatch(ev event.Event) error {
	idx := ev.Mechanism
	if idx < 0 {
		if ig.singleSynapse < 0 {
			return &NoSynapseError{}
		}
		idx = ig.singleSynapse
	}
	if idx < 0 || idx >= len(ig.mechs) {
		return &OutOfRangeTargetError{Mechanism: idx, Target: ev.Target}
	}
	syn, ok := ig.mechs[idx].(mechanism.Synapse)
	if !ok {
		return &OutOfRangeTargetError{Mechanism: idx, Target: ev.Target}
	}
	if ev.Target < 0 || ev.Target >= len(syn.NodeIndex()) {
		return &OutOfRangeTargetError{Mechanism: idx, Target: ev.Target}
	}
	syn.NetReceive(ev.Target, ev.Weight)
	return nil
}

// PushEvent schedules an event for future delivery.
func (ig *Integrator) PushEvent(e event.Event) { ig.queue.Push(e) }

// GenerateEvents drains every event an event.Generator produces over
// [t0, t1) into the integrator's queue. Callers advancing the cell in
// windows matching their generators' own window calls keep the
// monotonic-window contract event.Generator requires.
func (ig *Integrator) GenerateEvents(gen event.Generator, t0, t1 float64) {
	event.Drain(ig.queue, gen, t0, t1)
}

// ResetEvents clears the pending event queue.
func (ig *Integrator) ResetEvents() { ig.queue.Reset() }

// ------------------------------ outputs ------------------------------

func (ig *Integrator) Time() float64                     { return ig.t }
func (ig *Integrator) Voltage() []float64                { return ig.V }
func (ig *Integrator) Current() []float64                { return ig.I }
func (ig *Integrator) Areas() []float64                  { return ig.morph.Areas }
func (ig *Integrator) Capacitance() []float64            { return ig.morph.Capacitance }
func (ig *Integrator) Mechanisms() []mechanism.Mechanism { return ig.mechs }
func (ig *Integrator) Ions() map[ion.Kind]*ion.State     { return ig.ions }
func (ig *Integrator) NumCV() int                        { return ig.morph.N }
