package instance_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"q.log/tableau/instance"
	"q.log/tableau/model"
	"q.log/tableau/simplex"
)

func TestReader_ConstructModelFromFile(t *testing.T) {
	m, err := instance.NewReader(filepath.Join("testdata", "lp.mps")).ConstructModelFromFile()
	require.NoError(t, err)

	require.Equal(t, "TESTLP", m.Name)
	require.Equal(t, model.Minimize, m.Sense)
	require.Equal(t, []string{"X", "Y"}, m.Names)
	require.Equal(t, []float64{-3, -2}, m.Objective())
	// the objective row's RHS is the constant term with the opposite sign
	require.InDelta(t, 5.0, m.Offset, 1e-12)

	// CAP, DEMAND, BAL twice, RANGED twice, then the lower and upper bound
	// of X. The free row SPARE and the default bounds of Y add nothing.
	require.Equal(t, 8, m.NumRows)
	require.InDeltaSlice(t, []float64{
		1, 1,
		-1, -1,
		1, -1,
		-1, 1,
		-1, -2,
		1, 2,
		-1, 0,
		1, 0,
	}, m.A.RawMatrix().Data, 1e-12)
	require.InDeltaSlice(t, []float64{8, -2, 1, -1, -2, 6, -1, 5}, mat.Col(nil, 0, m.B), 1e-12)

	res, err := simplex.SolveModel(m)
	require.NoError(t, err)
	require.Equal(t, simplex.StatusOptimal, res.Status)
	require.InDeltaSlice(t, []float64{1.5, 0.5}, res.X, 1e-7)
	require.InDelta(t, 10.5, res.Objective, 1e-7)
}

func TestReader_MissingFile(t *testing.T) {
	_, err := instance.NewReader(filepath.Join(t.TempDir(), "missing.mps")).ConstructModelFromFile()
	require.Error(t, err)
}
