// Package blending has the per cell switching and damping functions of the
// gamma-ReThetat-SST model. Every function is pure; fields are assembled from
// them by the closure.
package blending

import (
	"math"

	"github.com/notargets/gotransition/utils"
)

const (
	CDkOmegaMin = 1.0e-10
	Arg1Max     = 10.
	Arg2Max     = 100.
)

func Blend(F1, psi1, psi2 float64) float64 {
	return F1*(psi1-psi2) + psi2
}

// CDkOmega is the cross diffusion 2 alphaOmega2 grad(k).grad(omega)/omega,
// unlimited so that it can be used as a source term
func CDkOmega(alphaOmega2, omega float64, gradK, gradOmega [3]float64) float64 {
	var (
		cp = gradK[0]*gradOmega[0] + gradK[1]*gradOmega[1] + gradK[2]*gradOmega[2]
	)
	return 2 * alphaOmega2 * cp / math.Max(omega, utils.VSMALL)
}

func CDkOmegaPlus(cdkw float64) float64 {
	return math.Max(cdkw, CDkOmegaMin)
}

func Arg1(k, omega, y, nu, alphaOmega2, betaStar, cdkwPlus float64) float64 {
	var (
		yy    = math.Max(y, utils.SMALL)
		w     = math.Max(omega, utils.VSMALL)
		sqK   = math.Sqrt(math.Max(k, 0))
		y2    = yy * yy
		term1 = sqK / (betaStar * w * yy)
		term2 = 500 * nu / (y2 * w)
		term3 = 4 * alphaOmega2 * k / (math.Max(cdkwPlus, CDkOmegaMin) * y2)
	)
	return math.Min(math.Min(math.Max(term1, term2), term3), Arg1Max)
}

func Arg2(k, omega, y, nu, betaStar float64) float64 {
	var (
		yy    = math.Max(y, utils.SMALL)
		w     = math.Max(omega, utils.VSMALL)
		term1 = 2 * math.Sqrt(math.Max(k, 0)) / (betaStar * w * yy)
		term2 = 500 * nu / (yy * yy * w)
	)
	return math.Min(math.Max(term1, term2), Arg2Max)
}

func F1(arg1 float64) float64 {
	return math.Tanh(utils.POW(arg1, 4))
}

func F2(arg2 float64) float64 {
	return math.Tanh(arg2 * arg2)
}

// F3 keeps F1 at one inside laminar boundary layers, where the SST F1 would
// otherwise switch to the k-epsilon branch
func F3(k, y, nu float64) float64 {
	var (
		Ry = y * math.Sqrt(math.Max(k, 0)) / nu
	)
	return math.Exp(-utils.POW(Ry/120, 8))
}

// F1Transition is the blending switch used by the transition model
func F1Transition(k, omega, y, nu, alphaOmega2, betaStar, cdkwPlus float64) float64 {
	return math.Max(F1(Arg1(k, omega, y, nu, alphaOmega2, betaStar, cdkwPlus)), F3(k, y, nu))
}
