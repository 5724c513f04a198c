// Command cablecell-demo builds a two-segment cell (a soma carrying
// Hodgkin-Huxley channels, attached to a ten-compartment passive
// cable), injects a brief current pulse into the soma, and renders
// the resulting somatic action potential to a PNG trace.
package main

import (
	"fmt"
	"log"

	"cablecell/cell"
	"cablecell/morphology"
	"cablecell/trace"
)

func main() {
	soma := morphology.Segment{
		Kind:       morphology.SegmentSoma,
		Parent:     -1,
		SomaRadius: 10,
		CM:         1.0,
		RL:         100,
	}
	dendrite := morphology.Segment{
		Kind:   morphology.SegmentCable,
		Parent: 0,
		CM:     1.0,
		RL:     100,
		Compartments: makeCompartments(10, 100, 1.0),
	}

	somaCV := morphology.Location{Segment: 0, Compartment: 0}

	c := morphology.CellSpec{
		Segs: []morphology.Segment{soma, dendrite},
		Stims: []morphology.StimulusSpec{
			{
				Loc: somaCV,
				Amp: func(t float64) float64 {
					if t >= 2.0 && t < 3.0 {
						return 1.0 // nA
					}
					return 0
				},
			},
		},
		MechSpecs: []morphology.MechanismSpec{
			{
				Kind:  "hh",
				Locs:  []morphology.Location{somaCV},
				Params: map[string]float64{
					"gnabar": 0.12,
					"gkbar":  0.036,
					"gl":     0.0003,
					"el":     -54.3,
				},
			},
			{
				Kind: "pas",
				Locs: cableLocations(1, 10),
				Params: map[string]float64{
					"g_leak": 0.001,
					"e_leak": -65.0,
				},
			},
		},
	}

	ig, err := cell.New(&c, cell.DefaultConfig())
	if err != nil {
		log.Fatalf("cablecell-demo: building cell: %v", err)
	}
	ig.Initialize()

	rec := trace.NewRecorder([]string{"soma V"})

	const dt = 0.01
	const tfinal = 20.0
	for ig.Time() < tfinal {
		if err := rec.Sample(ig.Time(), []float64{ig.Voltage()[0]}); err != nil {
			_ = err // width mismatch impossible here; keep the error path wired
		}
		if err := ig.Advance(dt); err != nil {
			log.Fatalf("cablecell-demo: advance at t=%.3f: %v", ig.Time(), err)
		}
	}

	if err := rec.RenderPNG("soma_spike.png", "Somatic action potential"); err != nil {
		log.Fatalf("cablecell-demo: rendering trace: %v", err)
	}
	fmt.Println("wrote soma_spike.png")
}

func makeCompartments(n int, length, radius float64) []morphology.Compartment {
	step := length / float64(n)
	out := make([]morphology.Compartment, n)
	for i := range out {
		out[i] = morphology.Compartment{
			Length:       step,
			RadiusLeft:   radius,
			RadiusCenter: radius,
			RadiusRight:  radius,
		}
	}
	return out
}

func cableLocations(segment, n int) []morphology.Location {
	out := make([]morphology.Location, n)
	for i := range out {
		out[i] = morphology.Location{Segment: segment, Compartment: i}
	}
	return out
}
