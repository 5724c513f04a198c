package treematrix

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// buildDense assembles the same tree system as a full n x n matrix, for
// cross-checking the O(N) Hines solve against a general dense solve.
func buildDense(parent []int, area, alpha []float64, V, I, C []float64, dt float64) (*mat.Dense, *mat.VecDense) {
	n := len(parent)
	a := mat.NewDense(n, n, nil)
	b := mat.NewVecDense(n, nil)
	kappaArea := 1e5
	kappaCurrent := 10.0

	for i := 0; i < n; i++ {
		a.Set(i, i, area[i])
	}
	for i := 1; i < n; i++ {
		x := kappaArea * dt * alpha[i]
		a.Set(i, i, a.At(i, i)+x)
		a.Set(parent[i], parent[i], a.At(parent[i], parent[i])+x)
		a.Set(i, parent[i], a.At(i, parent[i])-x)
		a.Set(parent[i], i, a.At(parent[i], i)-x)
	}
	for i := 0; i < n; i++ {
		b.SetVec(i, area[i]*(V[i]-kappaCurrent*dt*I[i]/C[i]))
	}
	return a, b
}

func TestSolveMatchesDenseGaussianElimination(t *testing.T) {
	parent := []int{0, 0, 1, 1, 3}
	area := []float64{300, 120, 80, 90, 60}
	alphaTree := []float64{0, 0.8, 0.5, 0.6, 0.3}
	V := []float64{-65, -64, -63, -66, -65.5}
	I := []float64{0.01, -0.02, 0, 0.005, 0}
	C := []float64{1, 1, 1, 1, 1}
	dt := 0.025

	m := New(parent, area, alphaTree)
	m.Assemble(V, I, C, dt)
	if err := m.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}

	a, b := buildDense(parent, area, alphaTree, V, I, C, dt)
	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		t.Fatalf("dense solve: %v", err)
	}

	for i := 0; i < len(parent); i++ {
		got, want := m.Rhs[i], x.AtVec(i)
		if math.Abs(got-want) > 1e-6*math.Max(1, math.Abs(want)) {
			t.Errorf("Rhs[%d] = %v, dense solve = %v", i, got, want)
		}
	}
}

func TestSolveIdentityWithNoCoupling(t *testing.T) {
	parent := []int{0, 0, 0}
	area := []float64{1, 1, 1}
	alpha := []float64{0, 0, 0}
	V := []float64{-65, -65, -65}
	I := []float64{0, 0, 0}
	C := []float64{1, 1, 1}

	m := New(parent, area, alpha)
	m.Assemble(V, I, C, 0.025)
	if err := m.Solve(); err != nil {
		t.Fatalf("Solve: %v", err)
	}
	for i, v := range m.Rhs {
		if math.Abs(v-(-65)) > 1e-12 {
			t.Errorf("Rhs[%d] = %v, want -65 within 1e-12", i, v)
		}
	}
}

func TestSolveRejectsZeroPivot(t *testing.T) {
	m := &Matrix{
		P:   []int{0, 0},
		D:   []float64{0, 0},
		L:   []float64{0, 0},
		U:   []float64{0, 0},
		Rhs: []float64{0, 0},
	}
	if err := m.Solve(); err == nil {
		t.Fatal("Solve: expected error for zero pivot")
	}
}
