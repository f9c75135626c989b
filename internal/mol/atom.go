package mol

// Atom is one atom of a rigid body. ID is the atom's stable index within
// its owning container; coordinates live in the container's position
// matrix, row ID.
type Atom struct {
	ID      int
	Element string
}

// Bond joins two atoms of the same container. It is carried for topology
// bookkeeping and export only; bonded terms are never evaluated.
type Bond struct {
	Atom1 int
	Atom2 int
	Order float64
}

// NewBond returns a single bond between two atom ids.
func NewBond(atom1, atom2 int) Bond {
	return Bond{Atom1: atom1, Atom2: atom2, Order: 1}
}
