package mol

import (
	"bufio"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func hostGuest(t *testing.T) *SupraMolecule {
	t.Helper()
	host, err := NewMolecule(
		[]Atom{{0, "C"}, {1, "C"}, {2, "C"}},
		[]Bond{NewBond(0, 1), NewBond(1, 2)},
		mat.NewDense(3, 3, []float64{
			0, 1, 0,
			1, 1, 0,
			-1, 1, 0,
		}),
	)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	guest, err := NewMolecule(
		[]Atom{{0, "N"}, {1, "N"}},
		[]Bond{NewBond(0, 1)},
		mat.NewDense(2, 3, []float64{
			0, 10, 0,
			1, 10, 0,
		}),
	)
	if err != nil {
		t.Fatalf("guest: %v", err)
	}
	s, err := NewSupraMolecule([]*Molecule{host, guest}, nil)
	if err != nil {
		t.Fatalf("assembly: %v", err)
	}
	return s
}

func TestNewSupraMoleculeEmpty(t *testing.T) {
	_, err := NewSupraMolecule(nil, nil)
	if !errors.Is(err, ErrEmptyAssembly) {
		t.Errorf("expected ErrEmptyAssembly, got %v", err)
	}
}

func TestAssemblyConcatenation(t *testing.T) {
	s := hostGuest(t)

	if s.NumAtoms() != 5 {
		t.Fatalf("atoms = %d, want 5", s.NumAtoms())
	}
	if s.NumComponents() != 2 {
		t.Fatalf("components = %d, want 2", s.NumComponents())
	}
	if s.CID() != 0 {
		t.Errorf("fresh assembly cid = %d, want 0", s.CID())
	}

	atoms := s.Atoms()
	for i, a := range atoms {
		if a.ID != i {
			t.Errorf("atom %d has global id %d", i, a.ID)
		}
	}
	// Guest bond indices must be offset past the host atoms.
	bonds := s.Bonds()
	last := bonds[len(bonds)-1]
	if last.Atom1 != 3 || last.Atom2 != 4 {
		t.Errorf("guest bond = (%d,%d), want (3,4)", last.Atom1, last.Atom2)
	}

	pos := s.PositionMatrix()
	if pos.At(3, 1) != 10 {
		t.Errorf("guest row not stacked after host rows")
	}
}

func TestWithDisplacementMovesOnlyOneComponent(t *testing.T) {
	s := hostGuest(t)
	before := s.PositionMatrix()

	moved, err := s.WithDisplacement(1, []float64{0, -2, 0})
	if err != nil {
		t.Fatalf("displacement: %v", err)
	}

	if !mat.Equal(before, s.PositionMatrix()) {
		t.Fatal("displacement mutated the source supramolecule")
	}
	after := moved.PositionMatrix()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if before.At(i, j) != after.At(i, j) {
				t.Fatalf("host row %d changed", i)
			}
		}
	}
	if after.At(3, 1) != 8 || after.At(4, 1) != 8 {
		t.Errorf("guest rows not translated: %v %v", after.At(3, 1), after.At(4, 1))
	}
}

func TestWithDisplacementBadComponent(t *testing.T) {
	s := hostGuest(t)
	if _, err := s.WithDisplacement(5, []float64{1, 0, 0}); !errors.Is(err, ErrComponentRange) {
		t.Errorf("expected ErrComponentRange, got %v", err)
	}
}

func TestWithPositionMatrixShapeMismatch(t *testing.T) {
	s := hostGuest(t)
	if _, err := s.WithPositionMatrix(mat.NewDense(4, 3, nil)); !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestWithRigidMotionRigidity(t *testing.T) {
	s := hostGuest(t)
	rot := mat.NewDense(3, 3, []float64{
		0, -1, 0,
		1, 0, 0,
		0, 0, 1,
	})
	moved, err := s.WithRigidMotion(1, rot, []float64{3, 0, 0})
	if err != nil {
		t.Fatalf("rigid motion: %v", err)
	}

	// Within the moved guest, distances are preserved.
	g0 := s.Component(1).PositionMatrix()
	g1 := moved.Component(1).PositionMatrix()
	d0 := distRows(g0, 0, 1)
	d1 := distRows(g1, 0, 1)
	if math.Abs(d0-d1) > 1e-12 {
		t.Errorf("guest bond length %v -> %v", d0, d1)
	}
	// The host rows were never touched.
	if !mat.Equal(s.Component(0).PositionMatrix(), moved.Component(0).PositionMatrix()) {
		t.Error("host rows changed under a guest move")
	}
}

func distRows(m *mat.Dense, i, j int) float64 {
	a := m.RawRowView(i)
	b := m.RawRowView(j)
	dx, dy, dz := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func TestComponentsAreRestartable(t *testing.T) {
	s := hostGuest(t)
	first := s.Components()
	second := s.Components()
	if len(first) != 2 || len(second) != 2 {
		t.Fatal("expected two components on every call")
	}
	first[1].PositionMatrix().Set(0, 0, 1e9)
	if !mat.Equal(second[1].PositionMatrix(), s.Component(1).PositionMatrix()) {
		t.Error("components alias the assembly matrix")
	}
}

func TestConformerTagging(t *testing.T) {
	s := hostGuest(t)
	c := s.Conformer(7, -1.25)
	if c.CID() != 7 || c.Energy() != -1.25 {
		t.Errorf("conformer = (cid %d, energy %v)", c.CID(), c.Energy())
	}
	if s.CID() != 0 {
		t.Error("tagging mutated the source")
	}
}

func TestMinComponentDistance(t *testing.T) {
	s := hostGuest(t)
	d, err := s.MinComponentDistance()
	if err != nil {
		t.Fatalf("min distance: %v", err)
	}
	if math.Abs(d-9) > 1e-12 {
		t.Errorf("min distance = %v, want 9", d)
	}
}

func TestXYZContentLayout(t *testing.T) {
	s := hostGuest(t).Conformer(3, -0.5)
	content := s.XYZContent()

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if len(lines) != s.NumAtoms()+2 {
		t.Fatalf("xyz has %d lines, want %d", len(lines), s.NumAtoms()+2)
	}
	n, err := strconv.Atoi(lines[0])
	if err != nil || n != s.NumAtoms() {
		t.Fatalf("first line %q does not parse to atom count", lines[0])
	}
	if !strings.Contains(lines[1], "cid:3") {
		t.Errorf("comment line %q missing conformer id", lines[1])
	}
	pos := s.PositionMatrix()
	sc := bufio.NewScanner(strings.NewReader(content))
	sc.Scan()
	sc.Scan()
	for i := 0; sc.Scan(); i++ {
		fields := strings.Fields(sc.Text())
		if len(fields) != 4 {
			t.Fatalf("atom line %q", sc.Text())
		}
		for j := 0; j < 3; j++ {
			v, err := strconv.ParseFloat(fields[j+1], 64)
			if err != nil {
				t.Fatalf("coordinate %q", fields[j+1])
			}
			if math.Abs(v-pos.At(i, j)) > 1e-6 {
				t.Errorf("atom %d coord %d = %v, want %v", i, j, v, pos.At(i, j))
			}
		}
	}
}
