package model

import (
	"fmt"
	"io"
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrDimensionMismatch = errors.New("model: dimension mismatch")
	ErrOutOfRange        = errors.New("model: index out of range")
	ErrUnsupportedBound  = errors.New("model: unsupported variable bound")
)

// Sense is the optimization direction of the objective.
type Sense int

const (
	Maximize Sense = iota
	Minimize
)

func (s Sense) String() string {
	if s == Minimize {
		return "min"
	}
	return "max"
}

// Relation is the comparison of a constraint row with its right-hand side.
type Relation string

const (
	LessEq    Relation = "<="
	GreaterEq Relation = ">="
	Equal     Relation = "="
)

// Model is a linear program lowered to
//
//	max/min c*x s.t. A*x <= b, x >= 0
//
// Every constraint added through AddConstraint or the bound helpers is
// rewritten into one or two <= rows.
type Model struct {
	Name  string
	Sense Sense

	// Names labels the variables, one per column.
	Names []string

	//C objective function coefficients, 1×NumCols
	C *mat.Dense

	//A constraints matrix, nil until the first row is added
	A *mat.Dense

	//B constraints rhs, NumRows×1
	B *mat.Dense

	// Offset is a constant added to the reported objective.
	Offset float64

	NumRows int
	NumCols int
}

// NewModel returns a model over numCols variables with no constraints.
func NewModel(numCols int) (*Model, error) {
	if numCols <= 0 {
		return nil, errors.Wrapf(ErrDimensionMismatch, "model needs at least one variable, got %d", numCols)
	}
	names := make([]string, numCols)
	for j := range names {
		names[j] = fmt.Sprintf("x%d", j+1)
	}
	return &Model{
		Names:   names,
		C:       mat.NewDense(1, numCols, nil),
		NumCols: numCols,
	}, nil
}

func (m *Model) SetC(cVec []float64) error {
	if len(cVec) != m.NumCols {
		return errors.Wrapf(ErrDimensionMismatch, "objective has %d coefficients, want %d", len(cVec), m.NumCols)
	}

	m.C = mat.NewDense(1, m.NumCols, append([]float64(nil), cVec...))

	return nil
}

// SetRows replaces all constraints with A*x <= b.
func (m *Model) SetRows(a [][]float64, b []float64) error {
	if len(a) != len(b) {
		return errors.Wrapf(ErrDimensionMismatch, "%d rows but %d right-hand sides", len(a), len(b))
	}
	for i, row := range a {
		if len(row) != m.NumCols {
			return errors.Wrapf(ErrDimensionMismatch, "row %d has %d coefficients, want %d", i, len(row), m.NumCols)
		}
	}
	m.A, m.B, m.NumRows = nil, nil, 0
	for i, row := range a {
		if err := m.AddRow(row, b[i]); err != nil {
			return err
		}
	}
	return nil
}

// AddRow appends the row rVec*x <= rhs.
func (m *Model) AddRow(rVec []float64, rhs float64) error {
	if len(rVec) != m.NumCols {
		return errors.Wrapf(ErrDimensionMismatch, "row has %d coefficients, want %d", len(rVec), m.NumCols)
	}

	if m.A == nil {
		m.A = mat.NewDense(1, m.NumCols, append([]float64(nil), rVec...))
		m.B = mat.NewDense(1, 1, []float64{rhs})
		m.NumRows = 1
		return nil
	}

	m.A = mat.DenseCopyOf(m.A.Grow(1, 0))
	m.A.SetRow(m.NumRows, rVec)

	m.B = mat.DenseCopyOf(m.B.Grow(1, 0))
	m.B.Set(m.NumRows, 0, rhs)

	m.NumRows++
	return nil
}

// AddConstraint lowers coefs*x rel rhs into <= rows: a >= row is negated
// and an equality becomes a pair of opposite rows.
func (m *Model) AddConstraint(coefs []float64, rel Relation, rhs float64) error {
	switch rel {
	case LessEq:
		return m.AddRow(coefs, rhs)
	case GreaterEq:
		if err := m.AddRow(coefs, rhs); err != nil {
			return err
		}
		return m.MultiplyConstraint(m.NumRows-1, -1)
	case Equal:
		if err := m.AddConstraint(coefs, LessEq, rhs); err != nil {
			return err
		}
		return m.AddConstraint(coefs, GreaterEq, rhs)
	}
	return errors.Errorf("model: unknown relation %q", rel)
}

// AddBounds restricts variable col to [lb, ub]. A lower bound of zero and an
// infinite upper bound add nothing; negative lower bounds would make the
// variable free below zero and are rejected.
func (m *Model) AddBounds(col int, lb, ub float64) error {
	if col < 0 || col >= m.NumCols {
		return errors.Wrapf(ErrOutOfRange, "column %d", col)
	}
	if lb < 0 || math.IsNaN(lb) {
		return errors.Wrapf(ErrUnsupportedBound, "%s has lower bound %g", m.Names[col], lb)
	}
	if ub < lb {
		return errors.Wrapf(ErrUnsupportedBound, "%s has upper bound %g below lower bound %g", m.Names[col], ub, lb)
	}
	unit := make([]float64, m.NumCols)
	unit[col] = 1
	if lb > 0 {
		if err := m.AddConstraint(unit, GreaterEq, lb); err != nil {
			return err
		}
	}
	if !math.IsInf(ub, 1) {
		return m.AddRow(unit, ub)
	}
	return nil
}

func (m *Model) MultiplyConstraint(row int, mul float64) error {
	if row < 0 || row >= m.NumRows {
		return errors.Wrapf(ErrOutOfRange, "row %d", row)
	}

	for col := 0; col < m.NumCols; col++ {
		m.A.Set(row, col, m.A.At(row, col)*mul)
	}
	m.B.Set(row, 0, m.B.At(row, 0)*mul)
	return nil
}

// Objective returns the cost vector of the equivalent maximization.
func (m *Model) Objective() []float64 {
	c := mat.Row(nil, 0, m.C)
	if m.Sense == Minimize {
		for j := range c {
			c[j] = -c[j]
		}
	}
	return c
}

// ObjectiveValue evaluates the objective at x in the model's own sense.
func (m *Model) ObjectiveValue(x []float64) float64 {
	z := m.Offset
	for c := 0; c < m.NumCols; c++ {
		z += x[c] * m.C.At(0, c)
	}
	return z
}

// Fprint writes the model data in gonum's matrix format.
func (m *Model) Fprint(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s c = %v\n", m.Sense, mat.Formatted(m.C, mat.Prefix("        "), mat.Squeeze())); err != nil {
		return err
	}
	if m.A == nil {
		_, err := fmt.Fprintln(w, "no constraints")
		return err
	}
	if _, err := fmt.Fprintf(w, "A = %v\n", mat.Formatted(m.A, mat.Prefix("    "), mat.Squeeze())); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "b = %v\n", mat.Formatted(m.B, mat.Prefix("    "), mat.Squeeze()))
	return err
}
