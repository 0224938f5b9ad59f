package gammaReThetatSST

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gotransition/types"
)

// Accessors return copies; the model is the only writer of its fields

func (m *Model) Gamma() []float64         { return clone(m.gamma) }
func (m *Model) ReThetatTilda() []float64 { return clone(m.reThetatTilda) }
func (m *Model) K() []float64             { return clone(m.k) }
func (m *Model) Omega() []float64         { return clone(m.omega) }
func (m *Model) Nut() []float64           { return clone(m.nut) }
func (m *Model) F1() []float64            { return clone(m.f1) }
func (m *Model) F2() []float64            { return clone(m.f2) }
func (m *Model) Rt() []float64            { return clone(m.rt) }

// ReThetatEq is the equilibrium onset Reynolds number of the last step
func (m *Model) ReThetatEq() []float64 { return clone(m.reThetat) }

func (m *Model) DgammaEff() []float64 {
	return m.eachCell(func(i int, nu float64) float64 {
		return m.nut[i]/m.Coeffs.Sigmaf + nu
	})
}

func (m *Model) DReThetatTildaEff() []float64 {
	return m.eachCell(func(i int, nu float64) float64 {
		return m.Coeffs.SigmaThetat * (m.nut[i] + nu)
	})
}

func (m *Model) DkEff() []float64 {
	c := &m.Coeffs
	return m.eachCell(func(i int, nu float64) float64 {
		return (m.f1[i]*(c.AlphaK1-c.AlphaK2)+c.AlphaK2)*m.nut[i] + nu
	})
}

func (m *Model) DomegaEff() []float64 {
	c := &m.Coeffs
	return m.eachCell(func(i int, nu float64) float64 {
		return (m.f1[i]*(c.AlphaOmega1-c.AlphaOmega2)+c.AlphaOmega2)*m.nut[i] + nu
	})
}

// Epsilon is the turbulent dissipation rate betaStar k omega
func (m *Model) Epsilon() []float64 {
	return m.eachCell(func(i int, _ float64) float64 {
		return m.Coeffs.BetaStar * m.k[i] * m.omega[i]
	})
}

func (m *Model) eachCell(f func(i int, nu float64) float64) (v []float64) {
	var (
		nu = m.host.Nu()
	)
	v = make([]float64, len(m.k))
	for i := range v {
		v[i] = f(i, nu[i])
	}
	return
}

// R is the Reynolds stress 2/3 k I - 2 nut dev(symm(gradU)) per cell
func (m *Model) R() (R []*mat.SymDense) {
	var (
		gradU = m.host.VelocityGradient()
	)
	R = make([]*mat.SymDense, len(m.k))
	for i := range R {
		R[i] = deviatoricStress(gradU[i], -2*m.nut[i])
		for d := 0; d < 3; d++ {
			R[i].SetSym(d, d, R[i].At(d, d)+2./3.*m.k[i])
		}
	}
	return
}

// DevReff is the effective deviatoric stress -(nu + nut) dev(2 symm(gradU))
func (m *Model) DevReff() (D []*mat.SymDense) {
	var (
		gradU = m.host.VelocityGradient()
		nu    = m.host.Nu()
	)
	D = make([]*mat.SymDense, len(m.k))
	for i := range D {
		D[i] = deviatoricStress(gradU[i], -2*(nu[i]+m.nut[i]))
	}
	return
}

// deviatoricStress is scale * dev(symm(gradU))
func deviatoricStress(gradU [3][3]float64, scale float64) (S *mat.SymDense) {
	var (
		G  = mat.NewDense(3, 3, nil)
		GT mat.Dense
		tr float64
	)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			G.Set(i, j, gradU[i][j])
		}
	}
	GT.CloneFrom(G.T())
	G.Add(G, &GT)
	G.Scale(0.5, G)
	tr = mat.Trace(G)
	S = mat.NewSymDense(3, nil)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			v := G.At(i, j)
			if i == j {
				v -= tr / 3
			}
			S.SetSym(i, j, scale*v)
		}
	}
	return
}

// Field looks a field up by the name it is exchanged under
func (m *Model) Field(name types.FieldName) (v []float64, err error) {
	switch name {
	case types.Gamma:
		v = m.Gamma()
	case types.ReThetatTilda:
		v = m.ReThetatTilda()
	case types.K:
		v = m.K()
	case types.Omega:
		v = m.Omega()
	case types.Nut:
		v = m.Nut()
	case types.DgammaEff:
		v = m.DgammaEff()
	case types.DReThetatTildaEff:
		v = m.DReThetatTildaEff()
	case types.DkEff:
		v = m.DkEff()
	case types.DomegaEff:
		v = m.DomegaEff()
	case types.Epsilon:
		v = m.Epsilon()
	case types.Rt:
		v = m.Rt()
	case types.ReThetatEq:
		v = m.ReThetatEq()
	case types.BlendF1:
		v = m.F1()
	case types.BlendF2:
		v = m.F2()
	default:
		err = fmt.Errorf("unknown field %q", name)
	}
	return
}

func clone(v []float64) []float64 {
	return append([]float64(nil), v...)
}
