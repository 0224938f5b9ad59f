package utils

import (
	"math"
)

const (
	// SMALL and VSMALL floor denominators that may approach zero
	SMALL  = 1.0e-15
	VSMALL = 1.0e-300
)

func ConstArray(N int, val float64) (v []float64) {
	v = make([]float64, N)
	for i := range v {
		v[i] = val
	}
	return
}

func POW(x float64, pp int) (y float64) {
	var (
		p       = pp
		flipped bool
	)
	if pp > 8 || pp < -8 {
		goto MATHPOW
	}

	if p < 0 {
		p = -pp
		flipped = true
	}
	switch p {
	case 0:
		y = 1
	case 1:
		y = x
	case 2:
		y = x * x
	case 3:
		y = x * x * x
	case 4:
		y = x * x
		y = y * y
	case 5:
		y = x * x
		y = y * y * x
	case 6:
		y = x * x
		y = y * y * y
	case 7:
		y = x * x
		y = y * y * y * x
	case 8:
		y = x * x
		y = y * y * y * y
	}
	if flipped {
		y = 1. / y
	}
	return

MATHPOW:
	y = math.Pow(x, float64(p))
	return
}

// Clamp bounds x to [lo, hi]
func Clamp(x, lo, hi float64) float64 {
	return math.Min(math.Max(x, lo), hi)
}

// BoundMin raises every value below min to min and reports how many changed
func BoundMin(v []float64, min float64) (nBounded int) {
	for i, val := range v {
		if val < min || math.IsNaN(val) {
			v[i] = min
			nBounded++
		}
	}
	return
}

// BoundRange clamps every value to [min, max] and reports how many changed
func BoundRange(v []float64, min, max float64) (nBounded int) {
	for i, val := range v {
		switch {
		case math.IsNaN(val), val < min:
			v[i] = min
			nBounded++
		case val > max:
			v[i] = max
			nBounded++
		}
	}
	return
}
