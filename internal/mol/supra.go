package mol

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/mwillard/confspin/internal/geom"
)

// Potential scores the configuration of a supramolecule. Implementations
// must not mutate their argument; the engine only ever calls Compute.
type Potential interface {
	Compute(s *SupraMolecule) float64
}

// componentRange is the fixed row span of one component in the global
// position matrix.
type componentRange struct {
	start int
	n     int
}

// SupraMolecule is a host plus one or more guest bodies sharing a single
// concatenated position matrix. By convention component 0 is the host.
// The per-component row ranges are fixed at assembly time; transforms
// replace rows, never reorder or resize them. Every transform returns a
// new, independent value.
type SupraMolecule struct {
	atoms  []Atom
	bonds  []Bond
	ranges []componentRange
	comps  []componentMeta
	pos    *mat.Dense
	pot    Potential
	cid    int
	energy float64
}

// componentMeta keeps the per-component topology so components can be
// rebuilt from the global matrix at any time.
type componentMeta struct {
	atoms []Atom
	bonds []Bond
}

// NewSupraMolecule assembles a supramolecule from component molecules,
// concatenating their atoms, bonds and position matrices in order. Atom
// and bond indices are remapped to the global matrix. The result has
// conformer id 0 and zero energy until the engine scores it.
func NewSupraMolecule(components []*Molecule, pot Potential) (*SupraMolecule, error) {
	if len(components) == 0 {
		return nil, ErrEmptyAssembly
	}

	total := 0
	for _, c := range components {
		total += c.NumAtoms()
	}

	s := &SupraMolecule{
		atoms:  make([]Atom, 0, total),
		ranges: make([]componentRange, 0, len(components)),
		comps:  make([]componentMeta, 0, len(components)),
		pos:    mat.NewDense(total, 3, nil),
		pot:    pot,
	}

	offset := 0
	for _, c := range components {
		n := c.NumAtoms()
		s.ranges = append(s.ranges, componentRange{start: offset, n: n})
		s.comps = append(s.comps, componentMeta{atoms: c.Atoms(), bonds: c.Bonds()})
		for _, a := range c.Atoms() {
			s.atoms = append(s.atoms, Atom{ID: offset + a.ID, Element: a.Element})
		}
		for _, b := range c.Bonds() {
			s.bonds = append(s.bonds, Bond{
				Atom1: offset + b.Atom1,
				Atom2: offset + b.Atom2,
				Order: b.Order,
			})
		}
		cp := c.PositionMatrix()
		for i := 0; i < n; i++ {
			s.pos.SetRow(offset+i, cp.RawRowView(i))
		}
		offset += n
	}
	return s, nil
}

// NumAtoms returns the total atom count across all components.
func (s *SupraMolecule) NumAtoms() int { return len(s.atoms) }

// NumComponents returns the number of component bodies.
func (s *SupraMolecule) NumComponents() int { return len(s.ranges) }

// CID returns the conformer id. The initial assembly is conformer 0;
// the engine increments it on every accepted move.
func (s *SupraMolecule) CID() int { return s.cid }

// Energy returns the potential energy recorded at acceptance time.
func (s *SupraMolecule) Energy() float64 { return s.energy }

// PotentialFunc returns the potential shared by all conformers derived
// from this assembly.
func (s *SupraMolecule) PotentialFunc() Potential { return s.pot }

// Atoms returns the global atom list, indices remapped to matrix rows.
func (s *SupraMolecule) Atoms() []Atom {
	out := make([]Atom, len(s.atoms))
	copy(out, s.atoms)
	return out
}

// Bonds returns the global bond list.
func (s *SupraMolecule) Bonds() []Bond {
	out := make([]Bond, len(s.bonds))
	copy(out, s.bonds)
	return out
}

// PositionMatrix returns a copy of the concatenated position matrix.
func (s *SupraMolecule) PositionMatrix() *mat.Dense {
	return mat.DenseCopyOf(s.pos)
}

// Components rebuilds the component molecules from the current global
// matrix. The returned containers hold copies of their rows; mutating
// them cannot reach the supramolecule.
func (s *SupraMolecule) Components() []*Molecule {
	out := make([]*Molecule, len(s.ranges))
	for i := range s.ranges {
		out[i] = s.Component(i)
	}
	return out
}

// Component returns component i rebuilt from the current global matrix.
// Panics if i is out of range, like a slice index would.
func (s *SupraMolecule) Component(i int) *Molecule {
	r := s.ranges[i]
	pos := mat.NewDense(r.n, 3, nil)
	for j := 0; j < r.n; j++ {
		pos.SetRow(j, s.pos.RawRowView(r.start+j))
	}
	meta := s.comps[i]
	return &Molecule{atoms: meta.atoms, bonds: meta.bonds, pos: pos}
}

// clone copies everything except the position matrix, which the caller
// supplies (already detached from the receiver's).
func (s *SupraMolecule) clone(pos *mat.Dense) *SupraMolecule {
	return &SupraMolecule{
		atoms:  s.atoms,
		bonds:  s.bonds,
		ranges: s.ranges,
		comps:  s.comps,
		pos:    pos,
		pot:    s.pot,
		cid:    s.cid,
		energy: s.energy,
	}
}

// WithDisplacement returns a new supramolecule with the rows of component
// comp translated by vec. All other rows are value-copies.
func (s *SupraMolecule) WithDisplacement(comp int, vec []float64) (*SupraMolecule, error) {
	if comp < 0 || comp >= len(s.ranges) {
		return nil, fmt.Errorf("%w: component %d of %d", ErrComponentRange, comp, len(s.ranges))
	}
	pos := mat.DenseCopyOf(s.pos)
	r := s.ranges[comp]
	for i := r.start; i < r.start+r.n; i++ {
		row := pos.RawRowView(i)
		row[0] += vec[0]
		row[1] += vec[1]
		row[2] += vec[2]
	}
	return s.clone(pos), nil
}

// WithPositionMatrix returns a new supramolecule with the full position
// matrix replaced. The replacement must match the current row count.
func (s *SupraMolecule) WithPositionMatrix(pos *mat.Dense) (*SupraMolecule, error) {
	if pos == nil {
		return nil, fmt.Errorf("%w: nil position matrix", ErrShapeMismatch)
	}
	r, c := pos.Dims()
	if r != len(s.atoms) || c != 3 {
		return nil, fmt.Errorf("%w: have %d atoms, matrix %dx%d", ErrShapeMismatch, len(s.atoms), r, c)
	}
	return s.clone(mat.DenseCopyOf(pos)), nil
}

// WithRigidMotion returns a new supramolecule with component comp rotated
// by rot about its own centroid and then translated by trans. Rows of all
// other components are value-copies; within-component distances are
// preserved exactly up to floating point.
func (s *SupraMolecule) WithRigidMotion(comp int, rot *mat.Dense, trans []float64) (*SupraMolecule, error) {
	if comp < 0 || comp >= len(s.ranges) {
		return nil, fmt.Errorf("%w: component %d of %d", ErrComponentRange, comp, len(s.ranges))
	}
	r := s.ranges[comp]
	block := mat.NewDense(r.n, 3, nil)
	for i := 0; i < r.n; i++ {
		block.SetRow(i, s.pos.RawRowView(r.start+i))
	}
	c, err := geom.Centroid(block)
	if err != nil {
		return nil, err
	}
	for i := 0; i < r.n; i++ {
		row := block.RawRowView(i)
		row[0] -= c[0]
		row[1] -= c[1]
		row[2] -= c[2]
	}
	rotated := mat.NewDense(r.n, 3, nil)
	rotated.Mul(block, rot.T())

	pos := mat.DenseCopyOf(s.pos)
	for i := 0; i < r.n; i++ {
		row := rotated.RawRowView(i)
		pos.SetRow(r.start+i, []float64{
			row[0] + c[0] + trans[0],
			row[1] + c[1] + trans[1],
			row[2] + c[2] + trans[2],
		})
	}
	return s.clone(pos), nil
}

// Conformer returns a copy of s tagged with a conformer id and the energy
// recorded at acceptance.
func (s *SupraMolecule) Conformer(cid int, energy float64) *SupraMolecule {
	out := s.clone(mat.DenseCopyOf(s.pos))
	out.cid = cid
	out.energy = energy
	return out
}

// MinComponentDistance returns the smallest atom-atom distance between
// any two different components, a measure of the worst steric clash.
func (s *SupraMolecule) MinComponentDistance() (float64, error) {
	if len(s.ranges) < 2 {
		return 0, fmt.Errorf("%w: need at least two components", ErrComponentRange)
	}
	min := 0.0
	first := true
	for i := 0; i < len(s.ranges); i++ {
		for j := i + 1; j < len(s.ranges); j++ {
			d, err := geom.MinPairwiseDistance(s.Component(i).pos, s.Component(j).pos)
			if err != nil {
				return 0, err
			}
			if first || d < min {
				min = d
				first = false
			}
		}
	}
	return min, nil
}

// CentroidDistance returns the host-guest centroid separation of a 1:1
// complex.
func (s *SupraMolecule) CentroidDistance() (float64, error) {
	if len(s.ranges) != 2 {
		return 0, fmt.Errorf("%w: centroid distance needs exactly two components", ErrComponentRange)
	}
	a, err := s.Component(0).Centroid()
	if err != nil {
		return 0, err
	}
	b, err := s.Component(1).Centroid()
	if err != nil {
		return 0, err
	}
	return geom.Distance(a, b), nil
}

// XYZContent serializes the supramolecule as one XYZ block: the atom
// count, a comment carrying the conformer id and energy, then one
// "<element> <x> <y> <z>" line per atom in global atom order. The exact
// line structure is a compatibility surface; do not add trailing lines.
func (s *SupraMolecule) XYZContent() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d\ncid:%d energy:%f\n", len(s.atoms), s.cid, s.energy)
	for i, a := range s.atoms {
		row := s.pos.RawRowView(i)
		fmt.Fprintf(&b, "%s %f %f %f\n", a.Element, row[0], row[1], row[2])
	}
	return b.String()
}
