package correlations

import (
	"math"

	"github.com/notargets/gotransition/utils"
)

const (
	ReThetacMin = 1.
	FlengthMin  = 0.01
	FlengthMax  = 300.
)

// ReThetac is the critical momentum thickness Reynolds number, where
// intermittency first starts to grow, as a function of the transported
// ReThetatTilda
func (c Correlation) ReThetac(R float64) (Rc float64) {
	switch c {
	case Menter2009:
		if R <= 1870 {
			Rc = R - (396.035e-2 - 120.656e-4*R + 868.230e-6*R*R -
				696.506e-9*utils.POW(R, 3) + 174.105e-12*utils.POW(R, 4))
		} else {
			Rc = R - (593.11 + 0.482*(R-1870))
		}
	case Suluksna2009:
		Rc = math.Min(math.Max(-utils.POW(0.025*R, 2)+1.47*R-120, 125), R)
	case Malan2009:
		Rc = math.Min(0.615*R+61.5, R)
	case Sorensen2009:
		Rc = math.Tanh(math.Pow(math.Max(R-100, 0)/400, 0.25)) * R
	case Tomac2013:
		Rc = math.Min(0.67*R+24*math.Sin(R/240+0.5)+14, R)
	}
	Rc = math.Max(Rc, ReThetacMin)
	return
}

// Flength controls the length of the transition region, as a function of the
// transported ReThetatTilda. The result is never below FlengthMin.
func (c Correlation) Flength(R float64) (F float64) {
	switch c {
	case Menter2009:
		switch {
		case R < 400:
			F = 398.189e-1 - 119.270e-4*R - 132.567e-6*R*R
		case R < 596:
			F = 263.404 - 123.939e-2*R + 194.548e-5*R*R - 101.695e-8*utils.POW(R, 3)
		case R < 1200:
			F = 0.5 - (R-596)*3.0e-4
		default:
			F = 0.3188
		}
	case Suluksna2009, Tomac2013:
		F = math.Min(0.1*math.Exp(-0.022*R+12)+0.45, FlengthMax)
	case Malan2009:
		F = math.Min(math.Exp(7.168-0.01173*R)+0.5, FlengthMax)
	case Sorensen2009:
		F = math.Min(math.Exp(-0.03*(R-460))+0.5, FlengthMax)
	}
	F = math.Max(F, FlengthMin)
	return
}

// FlengthNearWall blends Flength towards 40 inside the viscous sublayer, where
// Romega = y^2 omega / (500 nu) is small
func (c Correlation) FlengthNearWall(R, Romega float64) (F float64) {
	var (
		Fsublayer = SublayerDamping(Romega)
	)
	F = c.Flength(R)*(1-Fsublayer) + 40*Fsublayer
	F = math.Max(F, FlengthMin)
	return
}

func SublayerDamping(Romega float64) float64 {
	return math.Exp(-utils.POW(Romega/0.4, 2))
}
