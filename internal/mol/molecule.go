package mol

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/mwillard/confspin/internal/geom"
)

// Molecule is one rigid body: an ordered atom list, its bonds and an N×3
// position matrix with row i holding the coordinates of atom i. The
// topology is immutable; transforms return new Molecule values.
type Molecule struct {
	atoms []Atom
	bonds []Bond
	pos   *mat.Dense
}

// NewMolecule builds a molecule from atoms, bonds and a position matrix.
// The matrix must have one row per atom and three columns.
func NewMolecule(atoms []Atom, bonds []Bond, pos *mat.Dense) (*Molecule, error) {
	if pos == nil {
		return nil, fmt.Errorf("%w: nil position matrix", ErrShapeMismatch)
	}
	r, c := pos.Dims()
	if r != len(atoms) || c != 3 {
		return nil, fmt.Errorf("%w: %d atoms, matrix %dx%d", ErrShapeMismatch, len(atoms), r, c)
	}
	m := &Molecule{
		atoms: make([]Atom, len(atoms)),
		bonds: make([]Bond, len(bonds)),
		pos:   mat.DenseCopyOf(pos),
	}
	copy(m.atoms, atoms)
	copy(m.bonds, bonds)
	return m, nil
}

// NumAtoms returns the number of atoms in the molecule.
func (m *Molecule) NumAtoms() int { return len(m.atoms) }

// Atoms returns the atoms in input order.
func (m *Molecule) Atoms() []Atom {
	out := make([]Atom, len(m.atoms))
	copy(out, m.atoms)
	return out
}

// Bonds returns the bonds of the molecule.
func (m *Molecule) Bonds() []Bond {
	out := make([]Bond, len(m.bonds))
	copy(out, m.bonds)
	return out
}

// PositionMatrix returns a copy of the N×3 position matrix.
func (m *Molecule) PositionMatrix() *mat.Dense {
	return mat.DenseCopyOf(m.pos)
}

// Centroid returns the mean position of all atoms.
func (m *Molecule) Centroid() ([]float64, error) {
	return geom.Centroid(m.pos)
}

// WithDisplacement returns a clone translated by vec.
func (m *Molecule) WithDisplacement(vec []float64) *Molecule {
	pos := mat.DenseCopyOf(m.pos)
	n, _ := pos.Dims()
	for i := 0; i < n; i++ {
		row := pos.RawRowView(i)
		row[0] += vec[0]
		row[1] += vec[1]
		row[2] += vec[2]
	}
	return &Molecule{atoms: m.atoms, bonds: m.bonds, pos: pos}
}

// WithPositionMatrix returns a clone with the position matrix replaced.
func (m *Molecule) WithPositionMatrix(pos *mat.Dense) (*Molecule, error) {
	if pos == nil {
		return nil, fmt.Errorf("%w: nil position matrix", ErrShapeMismatch)
	}
	r, c := pos.Dims()
	if r != len(m.atoms) || c != 3 {
		return nil, fmt.Errorf("%w: %d atoms, matrix %dx%d", ErrShapeMismatch, len(m.atoms), r, c)
	}
	return &Molecule{atoms: m.atoms, bonds: m.bonds, pos: mat.DenseCopyOf(pos)}, nil
}

// Transformed returns a clone with p' = R·p + t applied to every atom.
func (m *Molecule) Transformed(rot *mat.Dense, trans []float64) *Molecule {
	n, _ := m.pos.Dims()
	pos := mat.NewDense(n, 3, nil)
	if n > 0 {
		pos.Mul(m.pos, rot.T())
	}
	for i := 0; i < n; i++ {
		row := pos.RawRowView(i)
		row[0] += trans[0]
		row[1] += trans[1]
		row[2] += trans[2]
	}
	return &Molecule{atoms: m.atoms, bonds: m.bonds, pos: pos}
}

// WithCentroid returns a clone whose centroid sits at position.
func (m *Molecule) WithCentroid(position []float64) (*Molecule, error) {
	c, err := m.Centroid()
	if err != nil {
		return nil, err
	}
	return m.WithDisplacement([]float64{
		position[0] - c[0],
		position[1] - c[1],
		position[2] - c[2],
	}), nil
}

// XYZContent serializes the molecule in XYZ format: atom count, a comment
// line, then one "<element> <x> <y> <z>" line per atom in atom order.
func (m *Molecule) XYZContent(comment string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d\n%s\n", len(m.atoms), comment)
	for i, a := range m.atoms {
		row := m.pos.RawRowView(i)
		fmt.Fprintf(&b, "%s %f %f %f\n", a.Element, row[0], row[1], row[2])
	}
	return b.String()
}
