// Package units collects the unit-reconciliation constants shared by the
// treematrix, mechanism, and cell packages. They are part of
// the numerical contract between a mechanism's current density and the
// Hines matrix assembly and must not be changed without reworking every
// mechanism that reports current in mA/cm^2.
package units

const (
	// KappaArea absorbs the unit reconciliation between um^2 surface
	// areas and the face-conductance contribution to the tree matrix
	// diagonal/off-diagonal entries.
	KappaArea = 1e5

	// KappaCurrent absorbs the unit reconciliation between mV, ms, and
	// mechanism-supplied current densities (mA/cm^2) in the matrix
	// right-hand side.
	KappaCurrent = 10

	// KappaStimulus converts a stimulus amplitude in nA, divided by a
	// CV area in um^2, into a current density in mA/cm^2.
	KappaStimulus = 100
)

// Default resting membrane potential, mV.
const RestingPotential = -65.0
