package mol

// Covalent radii in Ångström, from Cordero et al., 2008
// (DOI:10.1039/B801115J). Only common "bio-elements" are present;
// Radius falls back to defaultRadius for anything else.
var covalentRadius = map[string]float64{
	"H":  0.31,
	"C":  0.76,
	"O":  0.66,
	"N":  0.71,
	"P":  1.07,
	"S":  1.05,
	"Se": 1.20,
	"K":  2.03,
	"Ca": 1.76,
	"Mg": 1.41,
	"Cl": 1.02,
	"Na": 1.66,
	"Cu": 1.32,
	"Zn": 1.22,
	"Co": 1.50,
	"Fe": 1.52,
	"Mn": 1.61,
	"Cr": 1.39,
	"Si": 1.11,
	"Be": 0.96,
	"F":  0.57,
	"Br": 1.20,
	"I":  1.39,
}

const defaultRadius = 1.0

// Radius returns the covalent radius of an element symbol in Ångström.
// Unknown symbols get a generic radius rather than an error so that
// toy systems with placeholder elements still score.
func Radius(element string) float64 {
	if r, ok := covalentRadius[element]; ok {
		return r
	}
	return defaultRadius
}
