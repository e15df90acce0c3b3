package instance

import (
	"math"
	"runtime"

	"github.com/lukpank/go-glpk/glpk"
	"github.com/pkg/errors"
	"q.log/tableau/model"
)

// Reader reads a mps file to construct a model
type Reader struct {
	filename string
}

func NewReader(filename string) *Reader {
	return &Reader{
		filename: filename,
	}
}

// ConstructModelFromFile returns the problem in the file lowered to
// A*x <= b, x >= 0. Free rows are skipped, ranged and equality rows become
// two <= rows, and finite column bounds become rows of their own.
func (r *Reader) ConstructModelFromFile() (*model.Model, error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	lp := glpk.New()
	defer lp.Delete()
	if err := lp.ReadMPS(glpk.MPS_FILE, nil, r.filename); err != nil {
		return nil, errors.Wrapf(err, "read mps %s", r.filename)
	}

	m, err := model.NewModel(lp.NumCols())
	if err != nil {
		return nil, errors.Wrapf(err, "mps %s", r.filename)
	}
	m.Name = lp.ProbName()
	if lp.ObjDir() == glpk.MIN {
		m.Sense = model.Minimize
	}
	m.Offset = lp.ObjCoef(0)

	//populate obj function
	cVec := make([]float64, lp.NumCols())
	for c := 0; c < lp.NumCols(); c++ {
		cVec[c] = lp.ObjCoef(c + 1)
		if name := lp.ColName(c + 1); name != "" {
			m.Names[c] = name
		}
	}
	if err := m.SetC(cVec); err != nil {
		return nil, err
	}

	//populate constraints
	for i := 1; i <= lp.NumRows(); i++ {
		rowVec := make([]float64, lp.NumCols())
		idxs, row := lp.MatRow(i)
		for k, v := range idxs {
			if v == 0 {
				continue
			}
			rowVec[v-1] = row[k]
		}

		lb, ub := lp.RowLB(i), lp.RowUB(i)
		hasLB, hasUB := lb != -math.MaxFloat64, ub != math.MaxFloat64
		switch {
		case hasLB && hasUB && lb == ub:
			err = m.AddConstraint(rowVec, model.Equal, lb)
		case hasLB && hasUB:
			if err = m.AddConstraint(rowVec, model.GreaterEq, lb); err == nil {
				err = m.AddConstraint(rowVec, model.LessEq, ub)
			}
		case hasLB:
			err = m.AddConstraint(rowVec, model.GreaterEq, lb)
		case hasUB:
			err = m.AddConstraint(rowVec, model.LessEq, ub)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "mps %s: row %d", r.filename, i)
		}
	}

	for c := 0; c < lp.NumCols(); c++ {
		lb, ub := lp.ColLB(c+1), lp.ColUB(c+1)
		if lb == -math.MaxFloat64 {
			lb = math.Inf(-1)
		}
		if ub == math.MaxFloat64 {
			ub = math.Inf(1)
		}
		if err := m.AddBounds(c, lb, ub); err != nil {
			return nil, errors.Wrapf(err, "mps %s", r.filename)
		}
	}

	return m, nil
}
