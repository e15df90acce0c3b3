package simplex

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

const testTol = 1e-9

func exampleTableau() *Tableau {
	A := mat.NewDense(2, 2, []float64{
		1, 1,
		1, 3,
	})
	return NewTableau(A, []float64{4, 6}, []float64{3, 2}, DefaultTolerance)
}

func TestNewTableau_SlackBasis(t *testing.T) {
	tab := exampleTableau()
	require.Equal(t, []int{0, 1}, tab.Nonbasic.Vars())
	require.Equal(t, []int{2, 3}, tab.Basic.Vars())
	require.Equal(t, 0.0, tab.V)
	require.Equal(t, 6.0, tab.Value(3))
	require.Equal(t, 0.0, tab.Value(0))
}

func TestTableau_Pivot(t *testing.T) {
	tab := exampleTableau()
	// x0 enters, the slack of row 0 leaves.
	require.NoError(t, tab.Pivot(2, 0))

	require.InDeltaSlice(t, []float64{1, 1, -1, 2}, tab.A.RawMatrix().Data, testTol)
	require.InDeltaSlice(t, []float64{4, 2}, tab.B, testTol)
	require.InDeltaSlice(t, []float64{-3, -1}, tab.C, testTol)
	require.InDelta(t, 12.0, tab.V, testTol)
	require.Equal(t, []int{2, 1}, tab.Nonbasic.Vars())
	require.Equal(t, []int{0, 3}, tab.Basic.Vars())
	require.InDelta(t, 4.0, tab.Value(0), testTol)
}

func TestTableau_PivotInvolution(t *testing.T) {
	A := mat.NewDense(3, 3, []float64{
		2, -1, 4,
		1, 5, -2,
		-3, 2, 1,
	})
	b := []float64{7, 3, 5}
	c := []float64{1, -2, 3}
	tab := NewTableau(A, b, c, DefaultTolerance)
	orig := NewTableau(A, b, c, DefaultTolerance)

	// x2 enters at column 2, slack 4 (row 1) leaves; pivot element is -2.
	require.NoError(t, tab.Pivot(4, 2))
	require.NoError(t, tab.Pivot(2, 4))

	require.InDeltaSlice(t, orig.A.RawMatrix().Data, tab.A.RawMatrix().Data, testTol)
	require.InDeltaSlice(t, orig.B, tab.B, testTol)
	require.InDeltaSlice(t, orig.C, tab.C, testTol)
	require.InDelta(t, orig.V, tab.V, testTol)
	require.Equal(t, orig.Nonbasic.Vars(), tab.Nonbasic.Vars())
	require.Equal(t, orig.Basic.Vars(), tab.Basic.Vars())
}

func TestTableau_PivotErrors(t *testing.T) {
	tab := NewTableau(mat.NewDense(1, 2, []float64{0, 1}), []float64{1}, []float64{1, 1}, DefaultTolerance)

	require.Error(t, tab.Pivot(0, 1), "leaving variable is nonbasic")
	require.Error(t, tab.Pivot(2, 2), "entering variable is basic")
	require.Error(t, tab.Pivot(2, 0), "zero pivot element")
	// a failed pivot leaves the tableau untouched
	require.Equal(t, []int{0, 1}, tab.Nonbasic.Vars())
	require.Equal(t, []float64{1}, tab.B)
}

func TestTableau_EnteringColumn(t *testing.T) {
	tab := &Tableau{C: []float64{0, 1, 2, -1}, tol: DefaultTolerance}
	for _, tc := range []struct {
		iteration int
		want      int
	}{
		{1, 1}, {2, 1}, {4, 1}, {5, 2}, {6, 1}, {10, 2},
	} {
		require.Equal(t, tc.want, tab.enteringColumn(tc.iteration, reverseEvery), "iteration %d", tc.iteration)
	}
	require.Equal(t, 1, tab.enteringColumn(5, 0), "reversal disabled")

	tab.C = []float64{0, 1e-12, -3}
	require.Equal(t, -1, tab.enteringColumn(1, reverseEvery))
	require.Equal(t, -1, tab.enteringColumn(5, reverseEvery))
}

func TestTableau_LeavingRow(t *testing.T) {
	tests := []struct {
		name string
		col  []float64
		b    []float64
		want int
	}{
		{"minimum ratio", []float64{1, 2, -1}, []float64{4, 6, 1}, 1},
		{"ties go to the first row", []float64{1, 1}, []float64{2, 2}, 0},
		{"non-positive entries are skipped", []float64{0, 1e-12, 4}, []float64{0, 0, 8}, 2},
		{"unbounded", []float64{-1, 0}, []float64{1, 1}, -1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tab := &Tableau{
				A:   mat.NewDense(len(tc.col), 1, tc.col),
				B:   tc.b,
				tol: DefaultTolerance,
			}
			require.Equal(t, tc.want, tab.leavingRow(0))
		})
	}
}

func TestTableau_AuxiliaryColumn(t *testing.T) {
	tab := exampleTableau()
	require.Error(t, tab.addAuxiliary(3), "slack id already basic")
	require.NoError(t, tab.addAuxiliary(4))
	r, c := tab.A.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 3, c)
	require.Equal(t, []float64{-1, -1}, mat.Col(nil, 2, tab.A))
	require.Equal(t, []float64{0, 0, -1}, tab.C)
	require.Equal(t, []int{0, 1, 4}, tab.Nonbasic.Vars())

	tab.dropColumn(2)
	require.Equal(t, []float64{1, 1, 1, 3}, tab.A.RawMatrix().Data)
	require.Equal(t, []float64{0, 0}, tab.C)
	require.Equal(t, []int{0, 1}, tab.Nonbasic.Vars())
}

func TestNewOptions(t *testing.T) {
	o := newOptions([]Option{WithTolerance(0), WithMaxIterations(-3)})
	require.Equal(t, DefaultTolerance, o.tol)
	require.Equal(t, DefaultMaxIterations, o.maxIterations)
	require.Equal(t, reverseEvery, o.reverseEvery)

	o = newOptions([]Option{WithTolerance(1e-6), WithMaxIterations(12)})
	require.Equal(t, 1e-6, o.tol)
	require.Equal(t, 12, o.maxIterations)
}

// cyclingTableau is a degenerate problem on which the first-index entering
// rule with first-row ratio ties returns to its starting basis after six
// pivots. Its optimum is 5/3 at x = (10/3, 0, 5/2, 25/6).
func cyclingTableau() *Tableau {
	A := mat.NewDense(4, 4, []float64{
		1, -2, 2, -2,
		0, -3, -3, -1,
		2, 3, -1, -1,
		1, 1, 1, 1,
	})
	return NewTableau(A, []float64{0, 0, 0, 10}, []float64{1, -1, 1, -1}, DefaultTolerance)
}

func TestOptimize_ReversedScanBreaksCycle(t *testing.T) {
	s := &solver{options: newOptions([]Option{WithMaxIterations(100)})}
	s.reverseEvery = 0
	tab := cyclingTableau()
	status, err := s.optimize(tab)
	require.NoError(t, err)
	require.Equal(t, StatusCyclingSuspected, status)
	require.Equal(t, 100, s.pivots)
	require.InDelta(t, 0.0, tab.V, testTol, "no progress while cycling")

	s = &solver{options: newOptions([]Option{WithMaxIterations(100)})}
	tab = cyclingTableau()
	status, err = s.optimize(tab)
	require.NoError(t, err)
	require.Equal(t, StatusOptimal, status)
	require.LessOrEqual(t, s.pivots, 15)
	require.InDelta(t, 5.0/3, tab.V, testTol)
	for v, want := range []float64{10.0 / 3, 0, 2.5, 25.0 / 6} {
		require.InDelta(t, want, tab.Value(v), testTol, "x%d", v)
	}
}
