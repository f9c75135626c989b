package mol

import "errors"

// Domain errors for assembly and transform operations.
var (
	// ErrEmptyAssembly indicates a supramolecule built from zero components.
	ErrEmptyAssembly = errors.New("mol: supramolecule needs at least one component")

	// ErrShapeMismatch indicates a position matrix whose row count does not
	// match the atom count of the container it is applied to.
	ErrShapeMismatch = errors.New("mol: position matrix shape mismatch")

	// ErrComponentRange indicates a component index outside the assembly.
	ErrComponentRange = errors.New("mol: component index out of range")

	// ErrBadXYZ indicates malformed XYZ file content.
	ErrBadXYZ = errors.New("mol: malformed xyz content")
)
