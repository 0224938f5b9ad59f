package correlations

import (
	"math"

	"github.com/notargets/gotransition/utils"
)

const (
	TuMin       = 0.027 // percent
	LambdaMin   = -0.1
	LambdaMax   = 0.1
	KMin        = -3.0e-6
	KMax        = 3.0e-6
	ReThetatMin = 20.
)

// ReThetat is the transition onset momentum thickness Reynolds number for the
// freestream turbulence intensity Tu, the pressure gradient parameter
// lambda = theta^2/nu dU/ds and the acceleration parameter K = nu/U^2 dU/ds.
// K is only used by Suluksna2009. Inputs are limited to the calibration range.
func (c Correlation) ReThetat(Tu, lambda, K float64) (R float64) {
	Tu = math.Max(Tu, TuMin)
	lambda = utils.Clamp(lambda, LambdaMin, LambdaMax)
	K = utils.Clamp(K, KMin, KMax)
	switch c {
	case Suluksna2009:
		R = 803.73 * math.Pow(Tu+0.6067, -1.027) * fLambdaSuluksna(Tu, lambda, K)
	default:
		R = reThetatFlatPlate(Tu) * fLambdaMenter(Tu, lambda)
	}
	R = math.Max(R, ReThetatMin)
	return
}

func reThetatFlatPlate(Tu float64) float64 {
	if Tu <= 1.3 {
		return 1173.51 - 589.428*Tu + 0.2196/(Tu*Tu)
	}
	return 331.50 * math.Pow(Tu-0.5658, -0.671)
}

func fLambdaMenter(Tu, lambda float64) float64 {
	if lambda <= 0 {
		poly := -12.986*lambda - 123.66*lambda*lambda - 405.689*utils.POW(lambda, 3)
		return 1 - poly*math.Exp(-math.Pow(Tu/1.5, 1.5))
	}
	return 1 + 0.275*(1-math.Exp(-35*lambda))*math.Exp(-Tu/0.5)
}

func fLambdaSuluksna(Tu, lambda, K float64) float64 {
	if lambda <= 0 {
		poly := -10.32*lambda - 89.47*lambda*lambda - 265.51*utils.POW(lambda, 3)
		return 1 - poly*math.Exp(-Tu/3)
	}
	K6 := K * 1.0e6
	return 1 +
		(0.0962*K6+0.148*K6*K6+0.0141*utils.POW(K6, 3))*(1-math.Exp(-Tu/1.5)) +
		0.556*(1-math.Exp(-23.9*lambda))*math.Exp(-Tu/1.5)
}
