package mol

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/mwillard/confspin/internal/geom"
)

func triangle(t *testing.T) *Molecule {
	t.Helper()
	m, err := NewMolecule(
		[]Atom{{0, "C"}, {1, "C"}, {2, "O"}},
		[]Bond{NewBond(0, 1), NewBond(1, 2)},
		mat.NewDense(3, 3, []float64{
			0, 0, 0,
			1, 0, 0,
			0, 1, 0,
		}),
	)
	if err != nil {
		t.Fatalf("molecule: %v", err)
	}
	return m
}

func TestNewMoleculeShapeMismatch(t *testing.T) {
	_, err := NewMolecule(
		[]Atom{{0, "C"}},
		nil,
		mat.NewDense(2, 3, nil),
	)
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestWithDisplacementIsValueSemantic(t *testing.T) {
	m := triangle(t)
	before := m.PositionMatrix()

	moved := m.WithDisplacement([]float64{1, 2, 3})

	if !mat.Equal(before, m.PositionMatrix()) {
		t.Error("displacement mutated the receiver")
	}
	got := moved.PositionMatrix()
	if got.At(0, 0) != 1 || got.At(0, 1) != 2 || got.At(0, 2) != 3 {
		t.Errorf("row 0 = %v %v %v, want 1 2 3", got.At(0, 0), got.At(0, 1), got.At(0, 2))
	}
}

func TestPositionMatrixIsACopy(t *testing.T) {
	m := triangle(t)
	p := m.PositionMatrix()
	p.Set(0, 0, 99)
	if m.PositionMatrix().At(0, 0) == 99 {
		t.Error("accessor leaked the internal matrix")
	}
}

func TestTransformedPreservesInternalDistances(t *testing.T) {
	m := triangle(t)
	rot := geom.RotationAbout([]float64{1, 1, 1}, 1.1)
	moved := m.Transformed(rot, []float64{-2, 0.5, 7})

	a := m.PositionMatrix()
	b := moved.PositionMatrix()
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			d0 := geom.Distance(a.RawRowView(i), a.RawRowView(j))
			d1 := geom.Distance(b.RawRowView(i), b.RawRowView(j))
			if math.Abs(d0-d1) > 1e-12 {
				t.Errorf("pair (%d,%d): distance %v -> %v", i, j, d0, d1)
			}
		}
	}
}

func TestWithCentroid(t *testing.T) {
	m := triangle(t)
	moved, err := m.WithCentroid([]float64{5, 5, 5})
	if err != nil {
		t.Fatalf("with centroid: %v", err)
	}
	c, err := moved.Centroid()
	if err != nil {
		t.Fatalf("centroid: %v", err)
	}
	for i, v := range c {
		if math.Abs(v-5) > 1e-12 {
			t.Errorf("centroid[%d] = %v, want 5", i, v)
		}
	}
}

func TestRadiusLookup(t *testing.T) {
	if Radius("C") != 0.76 {
		t.Errorf("C radius = %v", Radius("C"))
	}
	if Radius("Xx") != 1.0 {
		t.Errorf("unknown element should fall back to 1.0, got %v", Radius("Xx"))
	}
}
