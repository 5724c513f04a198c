// Package treematrix implements the Hines tridiagonal-on-a-tree linear
// system used to advance a cable cell's membrane potential implicitly
// each timestep: assembly from CV geometry and mechanism current, and
// an O(N) elimination/back-substitution solve that exploits the CV
// tree's parent-index structure.
package treematrix

import (
	"fmt"
	"math"

	"cablecell/units"
)

// NumericalError reports a non-recoverable failure during Solve, such
// as a zero pivot produced by an ill-formed or degenerate system.
type NumericalError struct {
	Row    int
	Reason string
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("treematrix: row %d: %s", e.Row, e.Reason)
}

// Matrix is a linear system M*x = b with non-zeros only on the
// diagonal and at (i, p[i])/(p[i], i). D, L, U, and Rhs are parallel
// to P: for i >= 1, L[i] is row i's entry in column p[i], and U[i] is
// row p[i]'s entry in column i. L[0] and U[0] are unused.
type Matrix struct {
	P     []int
	D     []float64
	L     []float64
	U     []float64
	Rhs   []float64
	area  []float64
	alpha []float64
}

// New builds a tree matrix over the given parent-index tree, with
// per-CV surface area and per-CV face conductance coefficient fixed
// for the lifetime of the matrix (both are morphology properties, not
// step-varying quantities).
func New(parent []int, area []float64, alpha []float64) *Matrix {
	n := len(parent)
	return &Matrix{
		P:     append([]int(nil), parent...),
		D:     make([]float64, n),
		L:     make([]float64, n),
		U:     make([]float64, n),
		Rhs:   make([]float64, n),
		area:  append([]float64(nil), area...),
		alpha: append([]float64(nil), alpha...),
	}
}

// Reset replaces the parent-index array, resizing the internal buffers.
func (m *Matrix) Reset(parent []int) {
	n := len(parent)
	m.P = append([]int(nil), parent...)
	m.D = make([]float64, n)
	m.L = make([]float64, n)
	m.U = make([]float64, n)
	m.Rhs = make([]float64, n)
}

// Assemble fills D, L, U, and Rhs from the current voltage V, current
// density I, and per-CV capacitance C, for a step of size dt. This is
// the one assembly prescription the tree matrix supports; the
// constants KappaArea and KappaCurrent are part of the numerical
// contract with mechanisms reporting current in mA/cm^2 and must not
// change independently of them.
func (m *Matrix) Assemble(V, I, C []float64, dt float64) {
	n := len(m.P)
	for i := 0; i < n; i++ {
		m.D[i] = m.area[i]
		m.L[i] = 0
		m.U[i] = 0
	}
	for i := 1; i < n; i++ {
		a := units.KappaArea * dt * m.alpha[i]
		m.D[i] += a
		m.L[i] = -a
		m.U[i] = -a
		m.D[m.P[i]] += a
	}
	for i := 0; i < n; i++ {
		m.Rhs[i] = m.area[i] * (V[i] - units.KappaCurrent*dt*I[i]/C[i])
	}
}

// Solve performs Hines elimination in place: a reverse sweep (i =
// N-1..1) eliminates each CV's coupling to its parent using its own
// (already-reduced) row, then a forward sweep back-substitutes.
// Because CV indices increase with tree depth, every child of node i
// has a higher index and is therefore already folded into row i by
// the time the reverse sweep reaches i. Rhs is overwritten with the
// solution.
func (m *Matrix) Solve() error {
	n := len(m.P)
	if n == 0 {
		return nil
	}
	for i := n - 1; i >= 1; i-- {
		if m.D[i] == 0 || math.IsNaN(m.D[i]) {
			return &NumericalError{Row: i, Reason: "zero or invalid pivot during elimination"}
		}
		factor := m.U[i] / m.D[i]
		p := m.P[i]
		m.D[p] -= factor * m.L[i]
		m.Rhs[p] -= factor * m.Rhs[i]
	}
	if m.D[0] == 0 || math.IsNaN(m.D[0]) {
		return &NumericalError{Row: 0, Reason: "zero or invalid pivot at root"}
	}
	m.Rhs[0] = m.Rhs[0] / m.D[0]
	for i := 1; i < n; i++ {
		if m.D[i] == 0 || math.IsNaN(m.D[i]) {
			return &NumericalError{Row: i, Reason: "zero or invalid pivot during back-substitution"}
		}
		m.Rhs[i] = (m.Rhs[i] - m.L[i]*m.Rhs[m.P[i]]) / m.D[i]
	}
	return nil
}

// N returns the number of CVs (equations) in the system.
func (m *Matrix) N() int { return len(m.P) }
