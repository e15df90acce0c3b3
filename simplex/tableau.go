package simplex

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// reverseEvery is the default period of the reversed entering-variable
// scan.
const reverseEvery = 5

// Tableau is the dictionary of the current basis. Each basic variable x_B
// satisfies A*x_N + x_B = B, and V + C*x_N is the objective.
type Tableau struct {
	// A is the coefficient matrix, one row per basic variable and one
	// column per nonbasic variable.
	A *mat.Dense
	// B holds the values of the basic variables.
	B []float64
	// C holds the reduced costs of the nonbasic variables.
	C []float64
	// V is the objective value at the current vertex.
	V float64

	Nonbasic *IndexSet
	Basic    *IndexSet

	tol float64
}

// NewTableau builds the slack-basis dictionary of max c*x s.t. A*x <= b,
// x >= 0. Original variables are 0..n-1 and nonbasic, slacks are n..n+m-1
// and basic. A, b and c are copied.
func NewTableau(A mat.Matrix, b, c []float64, tol float64) *Tableau {
	m, n := A.Dims()
	return &Tableau{
		A:        mat.DenseCopyOf(A),
		B:        append([]float64(nil), b...),
		C:        append([]float64(nil), c...),
		Nonbasic: rangeSet(0, n),
		Basic:    rangeSet(n, n+m),
		tol:      tol,
	}
}

// Pivot exchanges the basic variable leaving with the nonbasic variable
// entering. The pivot element must be nonzero beyond the tolerance.
func (t *Tableau) Pivot(leaving, entering int) error {
	r, ok := t.Basic.Position(leaving)
	if !ok {
		return errors.Errorf("simplex: leaving variable %d is not basic", leaving)
	}
	k, ok := t.Nonbasic.Position(entering)
	if !ok {
		return errors.Errorf("simplex: entering variable %d is not nonbasic", entering)
	}
	if div := t.A.At(r, k); math.Abs(div) <= t.tol {
		return errors.Errorf("simplex: pivot element %g at (%d, %d) is within tolerance of zero", div, r, k)
	}
	t.pivot(r, k)
	return nil
}

// pivot performs the Gauss-Jordan step on row r and column k.
func (t *Tableau) pivot(r, k int) {
	m, _ := t.A.Dims()
	div := t.A.At(r, k)

	// The pivot column of row r becomes the coefficient of the leaving
	// variable, 1/div.
	pr := t.A.RawRowView(r)
	t.B[r] /= div
	pr[k] = 1
	for j := range pr {
		pr[j] /= div
	}

	for i := 0; i < m; i++ {
		if i == r {
			continue
		}
		row := t.A.RawRowView(i)
		coef := row[k]
		t.B[i] -= coef * t.B[r]
		floats.AddScaled(row, -coef, pr)
		row[k] = coef / -div
	}

	ck := t.C[k]
	t.V += ck * t.B[r]
	floats.AddScaled(t.C, -ck, pr)
	t.C[k] = ck / -div

	l, e := t.Basic.Var(r), t.Nonbasic.Var(k)
	// Both variables are known members, neither call can fail.
	_ = t.Nonbasic.Replace(e, l)
	_ = t.Basic.Replace(l, e)
}

// enteringColumn returns the column of the first nonbasic variable with a
// reduced cost above the tolerance, or -1 when there is none. The scan runs
// backwards on every period-th iteration; a period <= 0 never reverses.
func (t *Tableau) enteringColumn(iteration, period int) int {
	if period <= 0 || iteration%period != 0 {
		for j, cj := range t.C {
			if cj > t.tol {
				return j
			}
		}
		return -1
	}
	for j := len(t.C) - 1; j >= 0; j-- {
		if t.C[j] > t.tol {
			return j
		}
	}
	return -1
}

// leavingRow runs the minimum ratio test on column k. It returns -1 when
// no row bounds the entering variable.
func (t *Tableau) leavingRow(k int) int {
	row, best := -1, math.Inf(1)
	for i, bi := range t.B {
		a := t.A.At(i, k)
		if a <= t.tol {
			continue
		}
		if ratio := bi / a; ratio < best {
			row, best = i, ratio
		}
	}
	return row
}

// Value returns the value of variable v at the current vertex.
func (t *Tableau) Value(v int) float64 {
	if r, ok := t.Basic.Position(v); ok {
		return t.B[r]
	}
	return 0
}

// addAuxiliary appends the phase I variable aux as a nonbasic column of -1
// and replaces the objective with max -x_aux.
func (t *Tableau) addAuxiliary(aux int) error {
	if t.Nonbasic.Contains(aux) || t.Basic.Contains(aux) {
		return errors.Errorf("simplex: auxiliary variable %d is already in the tableau", aux)
	}
	m, n := t.A.Dims()
	grown := mat.DenseCopyOf(t.A.Grow(0, 1))
	for i := 0; i < m; i++ {
		grown.Set(i, n, -1)
	}
	t.A = grown
	t.C = make([]float64, n+1)
	t.C[n] = -1
	t.V = 0
	return t.Nonbasic.Add(aux)
}

// dropColumn removes nonbasic column k from A, C and the nonbasic set.
func (t *Tableau) dropColumn(k int) {
	m, n := t.A.Dims()
	a := mat.NewDense(m, n-1, nil)
	for i := 0; i < m; i++ {
		src, dst := t.A.RawRowView(i), a.RawRowView(i)
		copy(dst, src[:k])
		copy(dst[k:], src[k+1:])
	}
	t.A = a
	t.C = append(t.C[:k:k], t.C[k+1:]...)
	t.Nonbasic = t.Nonbasic.without(k)
}
