package cell

import (
	"cablecell/ion"
	"cablecell/units"
)

// IonOverride replaces one ion kind's default reversal/internal/
// external values at construction.
type IonOverride struct {
	Reversal float64
	Internal float64
	External float64
}

// Config carries construction-time parameters for an Integrator,
// mirroring the teacher's per-element Config value (a plain struct
// embedded at construction) rather than a global or flag-driven
// configuration surface.
type Config struct {
	// RestingPotential seeds V for every CV (mV).
	RestingPotential float64

	// IonOverrides replaces the §4.4 default table entry for any ion
	// kind present as a key.
	IonOverrides map[ion.Kind]IonOverride
}

// DefaultConfig returns the contract defaults: resting potential
// -65 mV, no ion overrides.
func DefaultConfig() Config {
	return Config{RestingPotential: units.RestingPotential}
}
