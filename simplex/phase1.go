package simplex

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// initialize returns a feasible dictionary for max c*x s.t. A*x <= b,
// x >= 0. The status is StatusOptimal when the dictionary is ready for
// phase II. Otherwise the problem is infeasible, or phase I hit the
// iteration cap, and the tableau is nil.
func (s *solver) initialize(A mat.Matrix, b, c []float64) (*Tableau, Status, error) {
	m, n := A.Dims()
	t := NewTableau(A, b, c, s.tol)

	k := floats.MinIdx(b)
	if b[k] >= -s.tol {
		return t, StatusOptimal, nil
	}
	s.log.V(1).Info("slack basis infeasible, solving auxiliary problem", "row", k, "rhs", b[k])

	aux := n + m
	if err := t.addAuxiliary(aux); err != nil {
		return nil, 0, err
	}
	if err := s.pivot(t, n+k, aux); err != nil {
		return nil, 0, err
	}

	status, err := s.optimize(t)
	switch {
	case err != nil:
		return nil, 0, err
	case status == StatusUnbounded:
		return nil, StatusInfeasible, nil
	case status != StatusOptimal:
		return nil, status, nil
	}

	if xa := t.Value(aux); math.Abs(xa) >= s.tol {
		s.log.V(1).Info("auxiliary optimum is nonzero", "value", xa)
		return nil, StatusInfeasible, nil
	}

	if r, basic := t.Basic.Position(aux); basic {
		if err := s.evictAuxiliary(t, r); err != nil {
			return nil, 0, err
		}
	}
	col, _ := t.Nonbasic.Position(aux)
	t.dropColumn(col)

	restoreObjective(t, c)
	s.log.V(1).Info("feasible basis found", "objective", t.V)
	return t, StatusOptimal, nil
}

// evictAuxiliary pivots the degenerate basic auxiliary variable at row r
// out of the basis. The entering variable is the first nonbasic column with
// a coefficient beyond the tolerance, falling back to the largest nonzero
// coefficient in the row.
func (s *solver) evictAuxiliary(t *Tableau, r int) error {
	row := t.A.RawRowView(r)
	for j, a := range row {
		if math.Abs(a) > s.tol {
			return s.pivot(t, t.Basic.Var(r), t.Nonbasic.Var(j))
		}
	}
	j := floats.MaxIdx(absolute(row))
	if row[j] == 0 {
		return errors.New("simplex: auxiliary variable has an empty row and cannot leave the basis")
	}
	t.pivot(r, j)
	s.pivots++
	return nil
}

// restoreObjective rewrites the objective row of t for the original costs
// c, substituting the defining row of every basic variable.
func restoreObjective(t *Tableau, c []float64) {
	t.C = make([]float64, len(c))
	t.V = 0
	for i, val := range c {
		if math.Abs(val) < t.tol {
			continue
		}
		if r, ok := t.Basic.Position(i); ok {
			floats.AddScaled(t.C, -val, t.A.RawRowView(r))
			t.V += val * t.B[r]
			continue
		}
		k, _ := t.Nonbasic.Position(i)
		t.C[k] += val
	}
}

func absolute(x []float64) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = math.Abs(v)
	}
	return out
}
