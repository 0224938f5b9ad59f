package blending

import (
	"math"

	"github.com/notargets/gotransition/utils"
)

// Rev is the vorticity (strain rate) Reynolds number y^2 S / nu
func Rev(y, S, nu float64) float64 {
	return y * y * S / nu
}

// Rt is the viscosity ratio k / (nu omega)
func Rt(k, nu, omega float64) float64 {
	return math.Max(k, 0) / (nu * math.Max(omega, utils.VSMALL))
}

// Romega is the wall normal Reynolds number used by the sublayer damping of
// Flength
func Romega(y, omega, nu float64) float64 {
	return y * y * omega / (500 * nu)
}

func Fonset1(rev, ReThetac float64) float64 {
	return rev / (2.193 * ReThetac)
}

func Fonset2(fonset1 float64) float64 {
	return math.Min(math.Max(fonset1, utils.POW(fonset1, 4)), 2)
}

func Fonset3(rt float64) float64 {
	return math.Max(1-utils.POW(rt/2.5, 3), 0)
}

// Fonset triggers intermittency production, zero upstream of transition
func Fonset(rev, ReThetac, rt float64) float64 {
	return math.Max(Fonset2(Fonset1(rev, ReThetac))-Fonset3(rt), 0)
}

// Fturb disables intermittency destruction outside the laminar boundary layer
func Fturb(rt float64) float64 {
	return math.Exp(-utils.POW(rt/4, 4))
}

// Freattach disables the separation correction once the viscosity ratio is
// large enough for the flow to reattach
func Freattach(rt float64) float64 {
	return math.Exp(-utils.POW(rt/20, 4))
}

// Fwake switches off the wake correction far from walls
func Fwake(y, omega, nu float64) float64 {
	var (
		ReOmega = omega * y * y / nu
	)
	return math.Exp(-utils.POW(ReOmega/1.0e5, 2))
}

// FThetat is one inside the boundary layer and zero in the freestream, so
// that ReThetatTilda is only forced towards ReThetat outside the boundary
// layer and diffuses in from there
func FThetat(gamma, ReThetatTilda, U, nu, Omega, y, omega, ce2 float64) float64 {
	var (
		u       = math.Max(U, utils.SMALL)
		thetaBL = ReThetatTilda * nu / u
		deltaBL = 7.5 * thetaBL
		delta   = math.Max(50*Omega*y/u*deltaBL, utils.VSMALL)
		fw      = Fwake(y, omega, nu) * math.Exp(-utils.POW(y/delta, 4))
		g       = (gamma - 1/ce2) / (1 - 1/ce2)
		fg      = 1 - g*g
	)
	return math.Min(math.Max(fw, fg), 1)
}

// GammaSep is the separation induced intermittency, limited to sepMax
func GammaSep(s1, rev, ReThetac, rt, fThetat, sepMax float64) float64 {
	var (
		arg = s1 * math.Max(0, rev/(3.235*ReThetac)-1) * Freattach(rt)
	)
	return math.Min(arg, sepMax) * fThetat
}

func GammaEff(gamma, gammaSep float64) float64 {
	return math.Max(gamma, gammaSep)
}
