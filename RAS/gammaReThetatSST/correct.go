package gammaReThetatSST

import (
	"math"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gotransition/RAS/blending"
	"github.com/notargets/gotransition/types"
	"github.com/notargets/gotransition/utils"
)

// Correct advances the closure by one outer step. The order is fixed:
// blending and onset functions, then the gamma, ReThetatTilda, k and omega
// equations, each solved by the host before the next is assembled, then the
// eddy viscosity. A failed solve is returned immediately as a
// *types.SolveError and the remaining equations are left untouched.
func (m *Model) Correct() (err error) {
	var (
		n        = len(m.gamma)
		y        = m.host.WallDistance()
		U        = m.host.Velocity()
		gradU    = m.host.VelocityGradient()
		nu       = m.host.Nu()
		nBounded int
	)
	if err = m.checkHost(n); err != nil {
		return
	}
	m.Step++
	m.host.Gradient(m.k, m.gradK)
	m.host.Gradient(m.omega, m.gradOmega)
	nonConverged := m.updateBlending(y, U, gradU, nu)

	m.assembleGamma()
	if err = m.solve(m.eqGamma); err != nil {
		return
	}
	nBounded += utils.BoundRange(m.gamma, 0, 1)

	m.assembleReThetatTilda()
	if err = m.solve(m.eqReThetat); err != nil {
		return
	}
	nBounded += utils.BoundMin(m.reThetatTilda, m.Coeffs.ReThetatTildaMin)

	m.assembleK()
	if err = m.solve(m.eqK); err != nil {
		return
	}
	nBounded += utils.BoundMin(m.k, m.Coeffs.KMin)

	m.assembleOmega()
	if err = m.solve(m.eqOmega); err != nil {
		return
	}
	nBounded += utils.BoundMin(m.omega, m.Coeffs.OmegaMin)

	m.updateNut()
	if m.log.Logger.IsLevelEnabled(log.DebugLevel) {
		m.log.WithFields(log.Fields{
			"step":         m.Step,
			"nonConverged": nonConverged,
			"bounded":      nBounded,
			"gammaMin":     floats.Min(m.gamma),
			"gammaMax":     floats.Max(m.gamma),
			"kMax":         floats.Max(m.k),
		}).Debug("gammaReThetatSST corrected")
	}
	return
}

func (m *Model) solve(eq *Equation) (err error) {
	if err = m.host.Solve(eq); err != nil {
		m.log.WithFields(log.Fields{
			"step":  m.Step,
			"field": eq.Name,
		}).WithError(err).Error("linear solve failed")
		err = &types.SolveError{Field: eq.Name, Err: err}
	}
	return
}

func (m *Model) assembleGamma() {
	var (
		c  = &m.Coeffs
		eq = m.eqGamma
	)
	m.pm.ParallelFor(func(np, kMin, kMax int) {
		for i := kMin; i < kMax; i++ {
			cs := &m.cells[i]
			g := m.gamma[i]
			Pgamma := cs.Flength * c.Ca1 * cs.S * math.Sqrt(math.Max(g*cs.Fonset, 0))
			Egamma := c.Ca2 * cs.Vorticity * cs.Fturb * g
			eq.Su[i] = Pgamma + Egamma
			eq.Sp[i] = c.Ce1*Pgamma + c.Ce2*Egamma
			eq.Diffusivity[i] = m.nut[i]/c.Sigmaf + cs.Nu
		}
	})
}

func (m *Model) assembleReThetatTilda() {
	var (
		c  = &m.Coeffs
		eq = m.eqReThetat
	)
	m.pm.ParallelFor(func(np, kMin, kMax int) {
		for i := kMin; i < kMax; i++ {
			cs := &m.cells[i]
			cs.FThetat = blending.FThetat(m.gamma[i], m.reThetatTilda[i], cs.U, cs.Nu,
				cs.Vorticity, cs.Y, m.omega[i], c.Ce2)
			rate := c.CThetat / timeScale(cs.Nu, cs.U) * (1 - cs.FThetat)
			eq.Su[i] = rate * m.reThetat[i]
			eq.Sp[i] = rate
			eq.Diffusivity[i] = c.SigmaThetat * (m.nut[i] + cs.Nu)
		}
	})
}

func (m *Model) assembleK() {
	var (
		c  = &m.Coeffs
		eq = m.eqK
	)
	m.pm.ParallelFor(func(np, kMin, kMax int) {
		for i := kMin; i < kMax; i++ {
			cs := &m.cells[i]
			cs.GammaSep = blending.GammaSep(c.S1, cs.Rev, cs.ReThetac, m.rt[i], cs.FThetat, c.GammaSepMax)
			gEff := blending.GammaEff(m.gamma[i], cs.GammaSep)
			G := m.nut[i] * cs.S * cs.S
			eq.Su[i] = gEff*math.Min(G, c.C1*c.BetaStar*m.k[i]*m.omega[i]) +
				c.BetaStar*c.OmegaInf*c.KInf
			eq.Sp[i] = utils.Clamp(gEff, 0.1, 1) * c.BetaStar * m.omega[i]
			eq.Diffusivity[i] = blending.Blend(m.f1[i], c.AlphaK1, c.AlphaK2)*m.nut[i] + cs.Nu
		}
	})
}

func (m *Model) assembleOmega() {
	var (
		c  = &m.Coeffs
		eq = m.eqOmega
	)
	m.pm.ParallelFor(func(np, kMin, kMax int) {
		for i := kMin; i < kMax; i++ {
			cs := &m.cells[i]
			F1 := m.f1[i]
			beta := blending.Blend(F1, c.Beta1, c.Beta2)
			cross := (1 - F1) * cs.CDkOmega
			eq.Su[i] = blending.Blend(F1, c.Gamma1, c.Gamma2)*cs.S*cs.S +
				math.Max(cross, 0) + beta*c.OmegaInf*c.OmegaInf
			eq.Sp[i] = beta*m.omega[i] + math.Max(-cross, 0)/math.Max(m.omega[i], utils.VSMALL)
			eq.Diffusivity[i] = blending.Blend(F1, c.AlphaOmega1, c.AlphaOmega2)*m.nut[i] + cs.Nu
		}
	})
}

// updateNut is the SST limited eddy viscosity a1 k / max(a1 omega, F2 S)
func (m *Model) updateNut() {
	var (
		a1 = m.Coeffs.A1
	)
	m.pm.ParallelFor(func(np, kMin, kMax int) {
		for i := kMin; i < kMax; i++ {
			denom := math.Max(math.Max(a1*m.omega[i], m.f2[i]*m.cells[i].S), utils.VSMALL)
			m.nut[i] = a1 * m.k[i] / denom
		}
	})
}
