package simplex

// solver carries the configuration and counters of one Solve call.
type solver struct {
	options
	pivots int
}

// optimize runs simplex iterations on t for its current objective row.
// It returns StatusOptimal when no reduced cost exceeds the tolerance,
// StatusUnbounded when the ratio test finds no leaving row and
// StatusCyclingSuspected when the iteration cap is reached.
//
// The entering variable is the first improving column in position order,
// except on every fifth iteration where the scan runs backwards. This is a
// heuristic against cycling and does not guarantee termination; without it
// some degenerate problems cycle forever under the first-index rule.
func (s *solver) optimize(t *Tableau) (Status, error) {
	for iteration := 1; ; iteration++ {
		k := t.enteringColumn(iteration, s.reverseEvery)
		if k < 0 {
			return StatusOptimal, nil
		}
		if iteration > s.maxIterations {
			s.log.Info("iteration limit reached", "limit", s.maxIterations, "objective", t.V)
			return StatusCyclingSuspected, nil
		}
		r := t.leavingRow(k)
		if r < 0 {
			s.log.V(1).Info("ratio test found no leaving variable", "entering", t.Nonbasic.Var(k))
			return StatusUnbounded, nil
		}
		if err := s.pivot(t, t.Basic.Var(r), t.Nonbasic.Var(k)); err != nil {
			return 0, err
		}
	}
}

func (s *solver) pivot(t *Tableau, leaving, entering int) error {
	if err := t.Pivot(leaving, entering); err != nil {
		return err
	}
	s.pivots++
	s.log.V(2).Info("pivot", "leaving", leaving, "entering", entering, "objective", t.V)
	return nil
}
