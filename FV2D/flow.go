package FV2D

import (
	"math"
)

// Boundary layer is a frozen Pohlhausen profile u/U = 2n - 2n^3 + n^4,
// n = y/delta, delta = 5.83 sqrt(nu x / U), with v from continuity so the
// field is divergence free. Upstream of the leading edge the flow is uniform.
type BoundaryLayer struct {
	UInf, Nu    float64
	LeadingEdge float64
	XMin        float64 // Smallest plate distance used, keeps delta finite at the leading edge
}

const pohlhausenDelta = 5.83

func profile(n float64) (g, dg, G float64) {
	if n >= 1 {
		return 1, 0, 0.7 + (n - 1)
	}
	g = 2*n - 2*n*n*n + n*n*n*n
	dg = 2 - 6*n*n + 4*n*n*n
	G = n*n - n*n*n*n/2 + n*n*n*n*n/5
	return
}

// Thickness is delta and d(delta)/dx at a plate distance x
func (bl *BoundaryLayer) Thickness(x float64) (delta, ddelta float64) {
	x = math.Max(x, bl.XMin)
	delta = pohlhausenDelta * math.Sqrt(bl.Nu*x/bl.UInf)
	ddelta = delta / (2 * x)
	return
}

// At is the velocity and its gradient, gradU[i][j] = dU_i/dx_j
func (bl *BoundaryLayer) At(x, y float64) (u [3]float64, gradU [3][3]float64) {
	var (
		xp = x - bl.LeadingEdge
		U  = bl.UInf
	)
	if xp <= 0 {
		u[0] = U
		return
	}
	if xp < bl.XMin {
		xp = bl.XMin
	}
	delta, d1 := bl.Thickness(xp)
	d2 := -delta / (4 * xp * xp)
	n := y / delta
	g, dg, G := profile(n)
	h := n*g - G // v = U delta' h(n), h' = n g'
	u[0] = U * g
	u[1] = U * d1 * h
	gradU[0][0] = -U * dg * n * d1 / delta
	gradU[0][1] = U * dg / delta
	gradU[1][0] = U * (d2*h - d1*n*dg*n*d1/delta)
	gradU[1][1] = -gradU[0][0]
	return
}
