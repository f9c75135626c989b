// Package potential implements the pairwise energy functions used to
// score host-guest configurations.
//
// Both implementations sum a Lennard-Jones-like term over every pair of
// atoms belonging to different components:
//
//	U_ij = eps * ((sig_ij/r_ij)^12 - (sig_ij/r_ij)^6)
//
// with sig_ij the arithmetic mean of the two atoms' covalent radii
// (Lorentz-Berthelot). Pairs within one component are never evaluated:
// bodies are rigid, so intra-component energy is a constant that can
// affect no accept/reject decision.
//
// This potential has no relation to an empirical force field; it only
// needs to rank configurations by steric clash and loose contact.
package potential

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/mwillard/confspin/internal/geom"
	"github.com/mwillard/confspin/internal/mol"
)

// distFloor guards the pair-distance denominator. Coincident atoms then
// score a huge finite repulsion instead of tripping an IEEE fault; the
// Metropolis test rejects such moves essentially always.
const distFloor = 1e-12

// DefaultEpsilon is the pair strength used when none is configured.
const DefaultEpsilon = 5.0

// crossPairSum accumulates the pair term over all cross-component pairs.
// eps is resolved per component pair so the annealed variant can scale it.
func crossPairSum(s *mol.SupraMolecule, eps float64) float64 {
	comps := s.Components()
	type block struct {
		pos   *mat.Dense
		radii []float64
	}
	blocks := make([]block, len(comps))
	for i, c := range comps {
		radii := make([]float64, c.NumAtoms())
		for j, a := range c.Atoms() {
			radii[j] = mol.Radius(a.Element)
		}
		blocks[i] = block{pos: c.PositionMatrix(), radii: radii}
	}

	total := 0.0
	for i := 0; i < len(blocks); i++ {
		for j := i + 1; j < len(blocks); j++ {
			a, b := blocks[i], blocks[j]
			na, _ := a.pos.Dims()
			nb, _ := b.pos.Dims()
			for p := 0; p < na; p++ {
				rowA := a.pos.RawRowView(p)
				for q := 0; q < nb; q++ {
					r := geom.Distance(rowA, b.pos.RawRowView(q))
					if r < distFloor {
						r = distFloor
					}
					sig := (a.radii[p] + b.radii[q]) / 2
					x := sig / r
					x6 := x * x * x
					x6 *= x6
					total += eps * (x6*x6 - x6)
				}
			}
		}
	}
	return total
}

// LennardJones is the default fixed-strength pair potential.
type LennardJones struct {
	epsilon float64
}

// NewLennardJones returns a pair potential with the given strength.
// Non-positive epsilon falls back to DefaultEpsilon.
func NewLennardJones(epsilon float64) *LennardJones {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	return &LennardJones{epsilon: epsilon}
}

// Epsilon returns the configured pair strength.
func (lj *LennardJones) Epsilon() float64 { return lj.epsilon }

// Compute returns the total cross-component pair energy of s.
func (lj *LennardJones) Compute(s *mol.SupraMolecule) float64 {
	return crossPairSum(s, lj.epsilon)
}

// Schedule maps an evaluation index to a multiplier on the pair strength.
type Schedule func(eval int) float64

// Annealed scales the pair strength per evaluation through a schedule,
// typically soft early in a run and hard later, without the engine
// knowing anything changed. The configuration is a pure function of the
// supramolecule and the schedule state; the supramolecule is never
// touched.
type Annealed struct {
	epsilon  float64
	schedule Schedule
	evals    int
}

// NewAnnealed returns an annealed pair potential. A nil schedule means a
// constant multiplier of 1.
func NewAnnealed(epsilon float64, schedule Schedule) *Annealed {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	if schedule == nil {
		schedule = func(int) float64 { return 1 }
	}
	return &Annealed{epsilon: epsilon, schedule: schedule}
}

// LinearRamp builds a schedule that grows the multiplier linearly from
// start to 1 over the first n evaluations and holds 1 afterwards.
func LinearRamp(start float64, n int) Schedule {
	if n < 1 {
		n = 1
	}
	return func(eval int) float64 {
		if eval >= n {
			return 1
		}
		return start + (1-start)*float64(eval)/float64(n)
	}
}

// Evals returns the number of evaluations performed so far.
func (a *Annealed) Evals() int { return a.evals }

// Compute returns the cross-component pair energy of s with the pair
// strength scaled by the schedule at the current evaluation index.
func (a *Annealed) Compute(s *mol.SupraMolecule) float64 {
	scale := a.schedule(a.evals)
	a.evals++
	if scale < 0 {
		scale = 0
	}
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = 1
	}
	return crossPairSum(s, a.epsilon*scale)
}
