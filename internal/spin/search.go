package spin

import (
	"iter"

	"github.com/mwillard/confspin/internal/geom"
	"github.com/mwillard/confspin/internal/mol"
)

// Stats summarizes a search after (or during) its run.
type Stats struct {
	// Proposals is the number of moves tried so far.
	Proposals int
	// Accepted is the number of moves that passed the Metropolis test.
	Accepted int
	// Exhausted reports that the attempt cap ended the search before the
	// requested number of conformers was reached. This is a documented
	// degenerate termination, not an error.
	Exhausted bool
}

// Search is one running Markov chain. It is pull-driven: nothing happens
// between calls to Next, and abandoning the Search performs no further
// evaluations. A Search is not safe for concurrent use; run independent
// Spinners instead.
type Search struct {
	sp      *Spinner
	movable []int
	initial *mol.SupraMolecule
	current *mol.SupraMolecule
	energy  float64
	cid     int
	tried   int
	passed  int
	limit   int
	done    bool
}

// Initial returns the starting assembly tagged as conformer 0 with its
// energy.
func (s *Search) Initial() *mol.SupraMolecule { return s.initial }

// Stats reports attempt accounting so callers can tell a normal
// completion from a degenerate one without an error value.
func (s *Search) Stats() Stats {
	return Stats{
		Proposals: s.tried,
		Accepted:  s.passed,
		Exhausted: s.done && s.passed < s.sp.cfg.NumConformers,
	}
}

// Next advances the chain to its next accepted conformer and returns it
// as an independent snapshot. It returns false once the configured number
// of conformers has been produced or the attempt cap is reached.
func (s *Search) Next() (*mol.SupraMolecule, bool) {
	if s.done {
		return nil, false
	}
	for s.tried < s.limit && s.passed < s.sp.cfg.NumConformers {
		s.tried++
		candidate, err := s.propose()
		if err != nil {
			// Component indices were validated at Start; a failing
			// proposal means the assembly itself is inconsistent.
			s.done = true
			return nil, false
		}
		u := s.sp.pot.Compute(candidate)
		if !s.sp.accept(s.energy, u) {
			continue
		}
		s.cid++
		s.passed++
		s.energy = u
		s.current = candidate.Conformer(s.cid, u)
		return s.current, true
	}
	s.done = true
	return nil, false
}

// propose draws one rigid move for one movable component: a translation
// along a random direction and a rotation about a random axis through the
// component centroid, combined into a single candidate. The current
// conformer is never touched.
func (s *Search) propose() (*mol.SupraMolecule, error) {
	comp := s.movable[s.sp.rng.Intn(len(s.movable))]

	trans := s.sp.unitVector()
	scale := s.sp.symmetric(s.sp.cfg.StepSize)
	trans[0] *= scale
	trans[1] *= scale
	trans[2] *= scale

	angle := s.sp.symmetric(s.sp.cfg.RotationStepSize)
	axis := s.sp.unitVector()
	rot := geom.RotationAbout(axis, angle)

	return s.current.WithRigidMotion(comp, rot, trans)
}

// All adapts the search to a range-over-func sequence of accepted
// conformers. Breaking out of the range stops the chain with no further
// evaluations.
func (s *Search) All() iter.Seq[*mol.SupraMolecule] {
	return func(yield func(*mol.SupraMolecule) bool) {
		for {
			c, ok := s.Next()
			if !ok || !yield(c) {
				return
			}
		}
	}
}

// FinalConformer drains the chain and returns the last accepted
// conformer, or the initial configuration if nothing was ever accepted.
func (s *Search) FinalConformer() *mol.SupraMolecule {
	last := s.current
	for {
		c, ok := s.Next()
		if !ok {
			return last
		}
		last = c
	}
}
