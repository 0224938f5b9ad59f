package gammaReThetatSST

import (
	"math"

	"github.com/notargets/gotransition/RAS/blending"
	"github.com/notargets/gotransition/RAS/equilibrium"
	"github.com/notargets/gotransition/utils"
)

// cellState caches the quantities of one cell that several equations share
// within a step
type cellState struct {
	U, Nu, Y          float64 // Velocity magnitude, viscosity, wall distance
	S, Vorticity      float64 // sqrt(2 Sij Sij) and sqrt(2 Wij Wij)
	DUds              float64
	CDkOmega          float64
	Rev               float64
	ReThetac, Flength float64
	Fonset, Fturb     float64
	FThetat           float64
	GammaSep          float64
}

// velocityInvariants returns the strain rate and vorticity magnitudes of a
// velocity gradient with gradU[i][j] = dU_i/dx_j
func velocityInvariants(gradU [3][3]float64) (S, W float64) {
	var (
		ss, ww float64
	)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sij := 0.5 * (gradU[i][j] + gradU[j][i])
			wij := 0.5 * (gradU[i][j] - gradU[j][i])
			ss += sij * sij
			ww += wij * wij
		}
	}
	S, W = math.Sqrt(2*ss), math.Sqrt(2*ww)
	return
}

func magnitude(u [3]float64) float64 {
	return math.Sqrt(u[0]*u[0] + u[1]*u[1] + u[2]*u[2])
}

// updateBlending is the first pass of a step: invariants, SST blending, the
// equilibrium ReThetat and the onset functions, all from the fields as they
// are at the start of the step
func (m *Model) updateBlending(y []float64, U [][3]float64, gradU [][3][3]float64,
	nu []float64) (nonConverged int64) {
	var (
		c = &m.Coeffs
	)
	m.pm.ParallelFor(func(np, kMin, kMax int) {
		for i := kMin; i < kMax; i++ {
			cs := &m.cells[i]
			cs.U, cs.Nu, cs.Y = magnitude(U[i]), nu[i], y[i]
			cs.S, cs.Vorticity = velocityInvariants(gradU[i])
			cs.DUds = equilibrium.StreamwiseGradient(U[i], gradU[i])
			cs.CDkOmega = blending.CDkOmega(c.AlphaOmega2, m.omega[i], m.gradK[i], m.gradOmega[i])
			m.f1[i] = blending.F1Transition(m.k[i], m.omega[i], cs.Y, cs.Nu,
				c.AlphaOmega2, c.BetaStar, blending.CDkOmegaPlus(cs.CDkOmega))
			m.f2[i] = blending.F2(blending.Arg2(m.k[i], m.omega[i], cs.Y, cs.Nu, c.BetaStar))
			m.rt[i] = blending.Rt(m.k[i], cs.Nu, m.omega[i])
		}
	})
	nonConverged = m.solver.SolveField(m.pm, func(i int) equilibrium.Point {
		cs := &m.cells[i]
		return equilibrium.Point{
			Tu:   equilibrium.TurbulenceIntensity(m.k[i], cs.U),
			U:    cs.U,
			DUds: cs.DUds,
			Nu:   cs.Nu,
		}
	}, m.reThetat)
	m.pm.ParallelFor(func(np, kMin, kMax int) {
		for i := kMin; i < kMax; i++ {
			cs := &m.cells[i]
			R := m.reThetatTilda[i]
			cs.ReThetac = m.Corr.ReThetac(R)
			cs.Flength = m.Corr.FlengthNearWall(R, blending.Romega(cs.Y, m.omega[i], cs.Nu))
			cs.Rev = blending.Rev(cs.Y, cs.S, cs.Nu)
			cs.Fonset = blending.Fonset(cs.Rev, cs.ReThetac, m.rt[i])
			cs.Fturb = blending.Fturb(m.rt[i])
		}
	})
	return
}

// timeScale is the ReThetatTilda relaxation time 500 nu / U^2
func timeScale(nu, U float64) float64 {
	return 500 * nu / math.Max(U*U, utils.SMALL)
}
