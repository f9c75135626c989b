package mol

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ReadXYZ parses one XYZ block from r into a Molecule. The first line is
// the atom count, the second a free-form comment, then one atom per line
// as "<element> <x> <y> <z>". Element symbols are normalized to title
// case so files with upper-cased symbols still load. XYZ carries no
// connectivity, so the molecule has no bonds.
func ReadXYZ(r io.Reader) (*Molecule, error) {
	sc := bufio.NewScanner(r)

	if !sc.Scan() {
		return nil, fmt.Errorf("%w: missing atom count line", ErrBadXYZ)
	}
	count, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil || count < 1 {
		return nil, fmt.Errorf("%w: bad atom count %q", ErrBadXYZ, strings.TrimSpace(sc.Text()))
	}
	if !sc.Scan() {
		return nil, fmt.Errorf("%w: missing comment line", ErrBadXYZ)
	}

	atoms := make([]Atom, 0, count)
	coords := make([]float64, 0, count*3)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, fmt.Errorf("%w: atom line %q", ErrBadXYZ, line)
		}
		for _, f := range fields[1:4] {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: coordinate %q", ErrBadXYZ, f)
			}
			coords = append(coords, v)
		}
		atoms = append(atoms, Atom{ID: len(atoms), Element: titleElement(fields[0])})
		if len(atoms) == count {
			break
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(atoms) != count {
		return nil, fmt.Errorf("%w: header says %d atoms, found %d", ErrBadXYZ, count, len(atoms))
	}
	return NewMolecule(atoms, nil, mat.NewDense(count, 3, coords))
}

// ReadXYZFile reads a molecule from an XYZ file on disk.
func ReadXYZFile(path string) (*Molecule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := ReadXYZ(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// titleElement normalizes an element symbol: first rune upper, rest lower.
func titleElement(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
