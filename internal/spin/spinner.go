// Package spin drives the Metropolis Monte Carlo search for low-energy
// host-guest conformers.
//
// A [Spinner] owns the move parameters and a seeded random source. Each
// call to [Spinner.Start] opens one [Search]: a single sequential Markov
// chain over rigid translations and rotations of one guest at a time.
// Conformers are pulled one accepted move at a time through
// [Search.Next]; the consumer stopping early cancels all further work.
package spin

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/mwillard/confspin/internal/mol"
)

// ErrInvalidConfig indicates an engine parameter outside its domain.
// It is returned at construction or search start, never mid-run.
var ErrInvalidConfig = errors.New("spin: invalid configuration")

// DefaultMaxAttemptsFactor sets MaxAttempts when left zero:
// 100 proposals per requested conformer.
const DefaultMaxAttemptsFactor = 100

// Config holds the engine parameters.
type Config struct {
	// StepSize is the maximum translation magnitude per move.
	StepSize float64
	// RotationStepSize is the maximum rotation angle per move, radians.
	RotationStepSize float64
	// NumConformers is how many accepted conformers to produce.
	NumConformers int
	// MaxAttempts caps total proposals regardless of acceptances.
	// Zero means DefaultMaxAttemptsFactor × NumConformers.
	MaxAttempts int
	// Beta is the inverse temperature of the Metropolis test.
	Beta float64
	// Seed fixes the random source for deterministic replay. Nil seeds
	// from the clock for non-deterministic runs.
	Seed *int64
	// Movable lists the component indices the engine may move. Empty
	// means every component except the host (index 0).
	Movable []int
}

// Validate checks every parameter against its stated domain.
func (c Config) Validate() error {
	if c.StepSize <= 0 {
		return fmt.Errorf("%w: step size must be positive, got %v", ErrInvalidConfig, c.StepSize)
	}
	if c.RotationStepSize <= 0 {
		return fmt.Errorf("%w: rotation step size must be positive, got %v", ErrInvalidConfig, c.RotationStepSize)
	}
	if c.NumConformers < 1 {
		return fmt.Errorf("%w: num conformers must be at least 1, got %d", ErrInvalidConfig, c.NumConformers)
	}
	if c.MaxAttempts != 0 && c.MaxAttempts < c.NumConformers {
		return fmt.Errorf("%w: max attempts %d below num conformers %d", ErrInvalidConfig, c.MaxAttempts, c.NumConformers)
	}
	if c.Beta <= 0 {
		return fmt.Errorf("%w: beta must be positive, got %v", ErrInvalidConfig, c.Beta)
	}
	return nil
}

// maxAttempts resolves the attempts cap, applying the default.
func (c Config) maxAttempts() int {
	if c.MaxAttempts == 0 {
		return DefaultMaxAttemptsFactor * c.NumConformers
	}
	return c.MaxAttempts
}

// Spinner proposes rigid moves, scores them and applies the Metropolis
// acceptance test. One Spinner runs one search at a time; independent
// searches with separate Spinners share nothing and may run concurrently.
type Spinner struct {
	cfg Config
	pot mol.Potential
	rng *rand.Rand
}

// New builds a Spinner, validating the configuration up front.
func New(cfg Config, pot mol.Potential) (*Spinner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if pot == nil {
		return nil, fmt.Errorf("%w: nil potential", ErrInvalidConfig)
	}
	var seed int64
	if cfg.Seed != nil {
		seed = *cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}
	return &Spinner{
		cfg: cfg,
		pot: pot,
		rng: rand.New(rand.NewSource(seed)),
	}, nil
}

// Start opens a search from the given assembly. The assembly's energy is
// computed once here; the assembly itself becomes conformer 0 and is
// never mutated afterwards.
func (sp *Spinner) Start(assembly *mol.SupraMolecule) (*Search, error) {
	if assembly == nil {
		return nil, fmt.Errorf("%w: nil assembly", ErrInvalidConfig)
	}
	movable, err := sp.movableComponents(assembly)
	if err != nil {
		return nil, err
	}

	u0 := sp.pot.Compute(assembly)
	initial := assembly.Conformer(0, u0)
	return &Search{
		sp:      sp,
		movable: movable,
		initial: initial,
		current: initial,
		energy:  u0,
		limit:   sp.cfg.maxAttempts(),
	}, nil
}

func (sp *Spinner) movableComponents(assembly *mol.SupraMolecule) ([]int, error) {
	n := assembly.NumComponents()
	if len(sp.cfg.Movable) > 0 {
		movable := make([]int, len(sp.cfg.Movable))
		for i, idx := range sp.cfg.Movable {
			if idx < 0 || idx >= n {
				return nil, fmt.Errorf("%w: movable component %d outside assembly of %d", ErrInvalidConfig, idx, n)
			}
			movable[i] = idx
		}
		return movable, nil
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: assembly has no guest to move", ErrInvalidConfig)
	}
	movable := make([]int, 0, n-1)
	for i := 1; i < n; i++ {
		movable = append(movable, i)
	}
	return movable, nil
}

// unitVector draws a uniformly random direction by normalizing three
// uniform draws, retrying on the (vanishing) chance of a zero vector.
func (sp *Spinner) unitVector() []float64 {
	for {
		x := sp.rng.Float64()
		y := sp.rng.Float64()
		z := sp.rng.Float64()
		n := x*x + y*y + z*z
		if n > 0 {
			inv := 1 / math.Sqrt(n)
			return []float64{x * inv, y * inv, z * inv}
		}
	}
}

// symmetric draws a scalar in [-max, max).
func (sp *Spinner) symmetric(max float64) float64 {
	return (sp.rng.Float64() - 0.5) * 2 * max
}

// accept applies the Metropolis criterion. Downhill moves always pass;
// uphill moves pass with probability exp(-beta·dU). Equal energies land
// in the exp(0) = 1 > R branch and always pass.
func (sp *Spinner) accept(current, candidate float64) bool {
	if candidate < current {
		return true
	}
	return math.Exp(-sp.cfg.Beta*(candidate-current)) > sp.rng.Float64()
}
