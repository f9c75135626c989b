package potential

import (
	"math"
	"testing"

	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/mwillard/confspin/internal/mol"
)

// twoAtomSupra builds one host atom at the origin and one guest atom at
// (r, 0, 0), using placeholder elements so both radii resolve to 1.0 and
// the mixed sigma is exactly 1.
func twoAtomSupra(t *testing.T, r float64) *mol.SupraMolecule {
	t.Helper()
	host, err := mol.NewMolecule(
		[]mol.Atom{{ID: 0, Element: "X"}},
		nil,
		mat.NewDense(1, 3, []float64{0, 0, 0}),
	)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	guest, err := mol.NewMolecule(
		[]mol.Atom{{ID: 0, Element: "Y"}},
		nil,
		mat.NewDense(1, 3, []float64{r, 0, 0}),
	)
	if err != nil {
		t.Fatalf("guest: %v", err)
	}
	s, err := mol.NewSupraMolecule([]*mol.Molecule{host, guest}, nil)
	if err != nil {
		t.Fatalf("assembly: %v", err)
	}
	return s
}

func ljClosedForm(eps, sig, r float64) float64 {
	return eps * (math.Pow(sig/r, 12) - math.Pow(sig/r, 6))
}

func TestLennardJonesClosedForm(t *testing.T) {
	g := NewWithT(t)
	lj := NewLennardJones(1)

	for _, r := range []float64{0.8, 1.0, 1.5, 2.0, 5.0} {
		got := lj.Compute(twoAtomSupra(t, r))
		g.Expect(got).To(BeNumerically("~", ljClosedForm(1, 1, r), 1e-12),
			"r = %v", r)
	}
}

func TestLennardJonesSpecExample(t *testing.T) {
	g := NewWithT(t)
	lj := NewLennardJones(1)

	far := lj.Compute(twoAtomSupra(t, 5))
	g.Expect(far).To(BeNumerically("<", 0))
	g.Expect(far).To(BeNumerically("~", math.Pow(0.2, 12)-math.Pow(0.2, 6), 1e-15))

	near := lj.Compute(twoAtomSupra(t, 1))
	g.Expect(near).To(BeNumerically("~", 0, 1e-12), "at r == sigma the terms cancel")

	clash := lj.Compute(twoAtomSupra(t, 0.3))
	g.Expect(clash).To(BeNumerically(">", 1e5))
}

func TestCoincidentAtomsDoNotFault(t *testing.T) {
	g := NewWithT(t)
	lj := NewLennardJones(5)
	e := lj.Compute(twoAtomSupra(t, 0))
	g.Expect(math.IsNaN(e)).To(BeFalse())
	g.Expect(math.IsInf(e, 0)).To(BeFalse())
	g.Expect(e).To(BeNumerically(">", 1e30))
}

func TestIntraComponentPairsNeverScore(t *testing.T) {
	g := NewWithT(t)
	// Two severely clashing atoms inside one component, guest far away:
	// the clash must be invisible to the potential.
	host, err := mol.NewMolecule(
		[]mol.Atom{{ID: 0, Element: "X"}, {ID: 1, Element: "X"}},
		nil,
		mat.NewDense(2, 3, []float64{
			0, 0, 0,
			0.001, 0, 0,
		}),
	)
	g.Expect(err).NotTo(HaveOccurred())
	guest, err := mol.NewMolecule(
		[]mol.Atom{{ID: 0, Element: "Y"}},
		nil,
		mat.NewDense(1, 3, []float64{100, 0, 0}),
	)
	g.Expect(err).NotTo(HaveOccurred())
	s, err := mol.NewSupraMolecule([]*mol.Molecule{host, guest}, nil)
	g.Expect(err).NotTo(HaveOccurred())

	e := NewLennardJones(1).Compute(s)
	g.Expect(math.Abs(e)).To(BeNumerically("<", 1e-6))
}

func TestLennardJonesElementRadiiMixing(t *testing.T) {
	g := NewWithT(t)
	host, err := mol.NewMolecule(
		[]mol.Atom{{ID: 0, Element: "C"}},
		nil,
		mat.NewDense(1, 3, []float64{0, 0, 0}),
	)
	g.Expect(err).NotTo(HaveOccurred())
	guest, err := mol.NewMolecule(
		[]mol.Atom{{ID: 0, Element: "N"}},
		nil,
		mat.NewDense(1, 3, []float64{2, 0, 0}),
	)
	g.Expect(err).NotTo(HaveOccurred())
	s, err := mol.NewSupraMolecule([]*mol.Molecule{host, guest}, nil)
	g.Expect(err).NotTo(HaveOccurred())

	sig := (mol.Radius("C") + mol.Radius("N")) / 2
	g.Expect(NewLennardJones(3).Compute(s)).To(
		BeNumerically("~", ljClosedForm(3, sig, 2), 1e-12))
}

func TestAnnealedScalesWithSchedule(t *testing.T) {
	g := NewWithT(t)
	ramp := LinearRamp(0.1, 10)
	a := NewAnnealed(1, ramp)
	fixed := NewLennardJones(1)

	s := twoAtomSupra(t, 1.5)
	base := fixed.Compute(s)

	// First evaluation runs at 10% strength, the eleventh at full.
	g.Expect(a.Compute(s)).To(BeNumerically("~", 0.1*base, 1e-12))
	for i := 1; i < 10; i++ {
		a.Compute(s)
	}
	g.Expect(a.Compute(s)).To(BeNumerically("~", base, 1e-12))
	g.Expect(a.Evals()).To(Equal(11))
}

func TestAnnealedNilScheduleIsConstant(t *testing.T) {
	g := NewWithT(t)
	a := NewAnnealed(2, nil)
	s := twoAtomSupra(t, 1.5)
	first := a.Compute(s)
	second := a.Compute(s)
	g.Expect(first).To(Equal(second))
}
