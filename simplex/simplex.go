// Package simplex solves linear programs of the form
//
//	maximize   c*x
//	subject to A*x <= b, x >= 0
//
// with the two-phase tableau simplex method. When the slack basis is not
// feasible, phase I solves an auxiliary problem with one extra variable to
// find a feasible basis, and phase II optimizes the original objective from
// there.
package simplex

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"q.log/tableau/model"
)

// Status is the outcome of a solve.
type Status int

const (
	StatusOptimal Status = iota
	StatusInfeasible
	StatusUnbounded
	// StatusCyclingSuspected means a simplex loop reached the iteration
	// cap before terminating.
	StatusCyclingSuspected
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	case StatusCyclingSuspected:
		return "cycling suspected"
	}
	return "unknown"
}

// Result is returned by Solve. X and Objective are only meaningful when
// Status is StatusOptimal; X is nil otherwise.
type Result struct {
	Status    Status
	X         []float64
	Objective float64
	// Iterations counts the pivots of both phases.
	Iterations int
	// Phase1 reports whether the auxiliary problem had to be solved.
	Phase1 bool
}

// Solve maximizes c*x subject to A*x <= b and x >= 0. A must be m×n with
// len(b) == m and len(c) == n, otherwise a *DimensionError is returned.
// Infeasible and unbounded problems are reported through Result.Status.
func Solve(A mat.Matrix, b, c []float64, opts ...Option) (*Result, error) {
	if err := checkDims(A, b, c); err != nil {
		return nil, err
	}
	s := &solver{options: newOptions(opts)}
	_, n := A.Dims()

	if nearZero(b, s.tol) && allBelow(c, s.tol) {
		s.log.V(1).Info("trivial problem, returning the origin")
		return &Result{Status: StatusOptimal, X: make([]float64, n)}, nil
	}

	t, status, err := s.initialize(A, b, c)
	if err != nil {
		return nil, err
	}
	res := &Result{Status: status, Phase1: s.pivots > 0}
	if status != StatusOptimal {
		res.Iterations = s.pivots
		s.log.V(1).Info("phase I failed", "status", status)
		return res, nil
	}

	status, err = s.optimize(t)
	if err != nil {
		return nil, err
	}
	res.Status, res.Iterations = status, s.pivots
	if status != StatusOptimal {
		s.log.V(1).Info("phase II failed", "status", status)
		return res, nil
	}

	res.X = make([]float64, n)
	for i := range res.X {
		res.X[i] = t.Value(i)
	}
	res.Objective = floats.Dot(c, res.X)
	s.log.V(1).Info("optimal solution found", "objective", res.Objective, "pivots", s.pivots)
	return res, nil
}

// SolveModel solves m. For a minimization model the objective is negated
// for the solver and reported back in the model's own sense.
func SolveModel(m *model.Model, opts ...Option) (*Result, error) {
	if m.NumRows == 0 {
		return nil, dimensionErrorf("A", "model has no constraints")
	}
	res, err := Solve(m.A, mat.Col(nil, 0, m.B), m.Objective(), opts...)
	if err != nil {
		return nil, err
	}
	if res.Status == StatusOptimal {
		res.Objective = m.ObjectiveValue(res.X)
	}
	return res, nil
}

func checkDims(A mat.Matrix, b, c []float64) error {
	var isNil bool
	switch a := A.(type) {
	case nil:
		isNil = true
	case *mat.Dense:
		isNil = a == nil
	case *mat.VecDense:
		isNil = a == nil
	case *mat.SymDense:
		isNil = a == nil
	case *mat.TriDense:
		isNil = a == nil
	}
	if isNil {
		return dimensionErrorf("A", "matrix is nil")
	}
	m, n := A.Dims()
	switch {
	case m == 0 || n == 0:
		return dimensionErrorf("A", "matrix is %dx%d", m, n)
	case len(b) != m:
		return dimensionErrorf("b", "len(b) = %d, A has %d rows", len(b), m)
	case len(c) != n:
		return dimensionErrorf("c", "len(c) = %d, A has %d columns", len(c), n)
	}
	return nil
}

func nearZero(x []float64, tol float64) bool {
	for _, v := range x {
		if !(math.Abs(v) < tol) {
			return false
		}
	}
	return true
}

func allBelow(x []float64, tol float64) bool {
	for _, v := range x {
		if !(v < tol) {
			return false
		}
	}
	return true
}

// Feasible reports whether x satisfies A*x <= b and x >= 0 within tol.
func Feasible(A mat.Matrix, b, x []float64, tol float64) bool {
	m, n := A.Dims()
	if len(x) != n || len(b) != m {
		return false
	}
	for _, v := range x {
		if v < -tol || math.IsNaN(v) {
			return false
		}
	}
	ax := mat.NewVecDense(m, nil)
	ax.MulVec(A, mat.NewVecDense(n, x))
	for i := 0; i < m; i++ {
		if ax.AtVec(i) > b[i]+tol {
			return false
		}
	}
	return true
}
