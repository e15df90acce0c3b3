package instance

import (
	"io"
	"math"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"q.log/tableau/model"
)

// Document is the YAML (or JSON) form of a linear program:
//
//	name: diet
//	sense: max
//	variables: [x, y]
//	objective: [3, 2]
//	constraints:
//	  - coefs: [1, 1]
//	    rel: "<="
//	    rhs: 4
//	bounds:
//	  - var: 1
//	    upper: 3
type Document struct {
	Name        string       `yaml:"name"`
	Sense       string       `yaml:"sense"`
	Variables   []string     `yaml:"variables"`
	Objective   []float64    `yaml:"objective"`
	Offset      float64      `yaml:"offset"`
	Constraints []Constraint `yaml:"constraints"`
	Bounds      []Bound      `yaml:"bounds"`
}

type Constraint struct {
	Coefs []float64 `yaml:"coefs"`
	Rel   string    `yaml:"rel"`
	RHS   float64   `yaml:"rhs"`
}

// Bound limits variable Var to [Lower, Upper]. A missing upper bound means
// +Inf.
type Bound struct {
	Var   int      `yaml:"var"`
	Lower float64  `yaml:"lower"`
	Upper *float64 `yaml:"upper"`
}

// ReadFile decodes the problem document at path.
func ReadFile(path string) (*model.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open problem")
	}
	defer f.Close()
	m, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "problem %s", path)
	}
	return m, nil
}

// Decode reads one problem document from r and builds its model.
func Decode(r io.Reader) (*model.Model, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decode problem")
	}
	return doc.Model()
}

// Model lowers the document into a model.
func (d *Document) Model() (*model.Model, error) {
	m, err := model.NewModel(len(d.Objective))
	if err != nil {
		return nil, err
	}
	m.Name, m.Offset = d.Name, d.Offset
	switch d.Sense {
	case "", "max", "maximize":
	case "min", "minimize":
		m.Sense = model.Minimize
	default:
		return nil, errors.Errorf("unknown sense %q", d.Sense)
	}
	if len(d.Variables) > 0 {
		if len(d.Variables) != m.NumCols {
			return nil, errors.Wrapf(model.ErrDimensionMismatch, "%d variable names for %d objective coefficients", len(d.Variables), m.NumCols)
		}
		copy(m.Names, d.Variables)
	}
	if err := m.SetC(d.Objective); err != nil {
		return nil, err
	}

	for i, c := range d.Constraints {
		rel := model.Relation(c.Rel)
		if c.Rel == "" {
			rel = model.LessEq
		}
		if err := m.AddConstraint(c.Coefs, rel, c.RHS); err != nil {
			return nil, errors.Wrapf(err, "constraint %d", i)
		}
	}
	for _, b := range d.Bounds {
		ub := math.Inf(1)
		if b.Upper != nil {
			ub = *b.Upper
		}
		if err := m.AddBounds(b.Var, b.Lower, ub); err != nil {
			return nil, err
		}
	}
	return m, nil
}
