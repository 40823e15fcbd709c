// Package greek holds the Greek alphabet used for angle names, its canonical
// sort order and a display routine for it.
package greek

import (
	"fmt"
	"io"
)

// Small letters.
const (
	Alpha      = "α"
	Beta       = "β"
	Gamma      = "γ"
	Delta      = "δ"
	Epsilon    = "ε"
	Zeta       = "ζ"
	Eta        = "η"
	Theta      = "θ"
	Iota       = "ι"
	Kappa      = "κ"
	Lambda     = "λ"
	Mu         = "μ"
	Nu         = "ν"
	Xi         = "ξ"
	Omicron    = "ο"
	Pi         = "π"
	Rho        = "ρ"
	FinalSigma = "ς"
	Sigma      = "σ"
	Tau        = "τ"
	Upsilon    = "υ"
	Phi        = "φ"
	Chi        = "χ"
	Psi        = "ψ"
	Omega      = "ω"
)

// Capital letters.
const (
	CapitalAlpha   = "Α"
	CapitalBeta    = "Β"
	CapitalGamma   = "Γ"
	CapitalDelta   = "Δ"
	CapitalEpsilon = "Ε"
	CapitalZeta    = "Ζ"
	CapitalEta     = "Η"
	CapitalTheta   = "Θ"
	CapitalIota    = "Ι"
	CapitalKappa   = "Κ"
	CapitalLambda  = "Λ"
	CapitalMu      = "Μ"
	CapitalNu      = "Ν"
	CapitalXi      = "Ξ"
	CapitalOmicron = "Ο"
	CapitalPi      = "Π"
	CapitalRho     = "Ρ"
	CapitalSigma   = "Σ"
	CapitalTau     = "Τ"
	CapitalUpsilon = "Υ"
	CapitalPhi     = "Φ"
	CapitalChi     = "Χ"
	CapitalPsi     = "Ψ"
	CapitalOmega   = "Ω"
)

// Letter pairs a glyph with its English name.
type Letter struct {
	Name  string
	Glyph string
}

// Small lists the small letters in alphabet order.
var Small = []Letter{
	{"alpha", Alpha}, {"beta", Beta}, {"gamma", Gamma}, {"delta", Delta},
	{"epsilon", Epsilon}, {"zeta", Zeta}, {"eta", Eta}, {"theta", Theta},
	{"iota", Iota}, {"kappa", Kappa}, {"lambda", Lambda}, {"mu", Mu},
	{"nu", Nu}, {"xi", Xi}, {"omicron", Omicron}, {"pi", Pi},
	{"rho", Rho}, {"varsigma", FinalSigma}, {"sigma", Sigma}, {"tau", Tau},
	{"upsilon", Upsilon}, {"phi", Phi}, {"chi", Chi}, {"psi", Psi},
	{"omega", Omega},
}

// Capital lists the capital letters in alphabet order.
var Capital = []Letter{
	{"Alpha", CapitalAlpha}, {"Beta", CapitalBeta}, {"Gamma", CapitalGamma},
	{"Delta", CapitalDelta}, {"Epsilon", CapitalEpsilon}, {"Zeta", CapitalZeta},
	{"Eta", CapitalEta}, {"Theta", CapitalTheta}, {"Iota", CapitalIota},
	{"Kappa", CapitalKappa}, {"Lambda", CapitalLambda}, {"Mu", CapitalMu},
	{"Nu", CapitalNu}, {"Xi", CapitalXi}, {"Omicron", CapitalOmicron},
	{"Pi", CapitalPi}, {"Rho", CapitalRho}, {"Sigma", CapitalSigma},
	{"Tau", CapitalTau}, {"Upsilon", CapitalUpsilon}, {"Phi", CapitalPhi},
	{"Chi", CapitalChi}, {"Psi", CapitalPsi}, {"Omega", CapitalOmega},
}

// sortOrder maps both glyphs and English names to their table position.
var sortOrder = map[string]int{}

func init() {
	i := 0
	for _, table := range [][]Letter{Small, Capital} {
		for _, l := range table {
			sortOrder[l.Glyph] = i
			sortOrder[l.Name] = i
			i++
		}
	}
}

// SortOrder returns the position of a letter, given as glyph or English name.
// Small letters come first, then capitals.
func SortOrder(name string) (int, bool) {
	i, ok := sortOrder[name]
	return i, ok
}

func IsGreek(name string) bool {
	_, ok := sortOrder[name]
	return ok
}

// Display writes the alphabet as a two-column table.
func Display(w io.Writer) error {
	for _, table := range [][]Letter{Small, Capital} {
		for _, l := range table {
			if _, err := fmt.Fprintf(w, "%20s: %s\n", l.Name, l.Glyph); err != nil {
				return err
			}
		}
	}
	return nil
}
