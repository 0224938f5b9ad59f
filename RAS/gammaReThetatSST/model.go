// Package gammaReThetatSST is the Langtry-Menter gamma-ReThetat transition
// model coupled to k-omega-SST. A Model owns the transported fields and, once
// per outer step, assembles the diffusion and source terms of each transport
// equation and hands them to its Host for the linear solve.
package gammaReThetatSST

import (
	"fmt"
	"math"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/notargets/gotransition/InputParameters"
	"github.com/notargets/gotransition/RAS/correlations"
	"github.com/notargets/gotransition/RAS/equilibrium"
	"github.com/notargets/gotransition/types"
	"github.com/notargets/gotransition/utils"
)

// Initial freestream state used when no initial fields are given
const (
	DefaultTu             = 1.  // percent
	DefaultViscosityRatio = 10. // nut/nu
)

type Model struct {
	host       Host
	Coeffs     InputParameters.TransitionCoefficients
	Corr       correlations.Correlation
	solver     *equilibrium.Solver
	pm         *utils.PartitionMap
	log        *log.Entry
	registerer prometheus.Registerer
	instance   string
	procLimit  int
	init       *Fields
	Step       int
	// Transported
	gamma, reThetatTilda, k, omega []float64
	// Derived, refreshed by Correct
	nut, f1, f2, reThetat, rt []float64
	// Per step cell state
	cells               []cellState
	gradK, gradOmega    [][3]float64
	eqGamma, eqReThetat *Equation
	eqK, eqOmega        *Equation
}

// Fields are the initial values of the transported scalars, one per cell
type Fields struct {
	Gamma, ReThetatTilda, K, Omega []float64
}

// UniformFields fills n cells with the same state
func UniformFields(n int, gamma, ReThetatTilda, k, omega float64) Fields {
	return Fields{
		Gamma:         utils.ConstArray(n, gamma),
		ReThetatTilda: utils.ConstArray(n, ReThetatTilda),
		K:             utils.ConstArray(n, k),
		Omega:         utils.ConstArray(n, omega),
	}
}

// WithFields sets the initial transported fields, which are copied
func WithFields(f Fields) Option {
	return func(m *Model) {
		m.init = &f
	}
}

// New checks the coefficients before any field is touched, so that an unknown
// correlation or an invalid coefficient is reported as a
// *types.ConfigurationError and nothing is evaluated.
func New(host Host, coeffs *InputParameters.TransitionCoefficients, opts ...Option) (m *Model, err error) {
	m = &Model{
		host: host,
		log:  log.NewEntry(log.StandardLogger()),
	}
	for _, opt := range opts {
		opt(m)
	}
	if err = m.configure(coeffs); err != nil {
		return nil, err
	}
	if m.registerer != nil {
		var c prometheus.Counter
		if c, err = equilibrium.NewNonConvergenceCounter(m.registerer, m.instance); err != nil {
			return nil, fmt.Errorf("registering equilibrium counter: %w", err)
		}
		m.solver.SetCounter(c)
	}
	if err = m.allocate(); err != nil {
		return nil, err
	}
	m.updateNut()
	m.log.WithFields(log.Fields{
		"correlation": m.Corr.String(),
		"dUds":        m.Coeffs.DUds,
		"cells":       host.NCells(),
		"parallel":    m.pm.ParallelDegree,
	}).Info("gammaReThetatSST model constructed")
	return
}

// Read replaces the coefficients of a constructed model. Fields and their
// sizes are unchanged; the diagnostic counter keeps counting.
func (m *Model) Read(coeffs *InputParameters.TransitionCoefficients) (err error) {
	var (
		counted = int64(0)
		prev    = m.solver
	)
	if prev != nil {
		counted = prev.NonConverged()
	}
	if err = m.configure(coeffs); err != nil {
		m.solver = prev
		return
	}
	if prev != nil {
		m.solver.SetCounter(prev.Counter())
		m.solver.AddNonConverged(counted)
	}
	m.log.WithFields(log.Fields{
		"correlation": m.Corr.String(),
		"dUds":        m.Coeffs.DUds,
	}).Info("gammaReThetatSST coefficients re-read")
	return
}

func (m *Model) configure(coeffs *InputParameters.TransitionCoefficients) (err error) {
	var (
		corr   correlations.Correlation
		solver *equilibrium.Solver
	)
	if coeffs == nil {
		coeffs = InputParameters.NewTransitionCoefficients()
	}
	if err = coeffs.Validate(); err != nil {
		return
	}
	if corr, err = correlations.NewCorrelation(coeffs.Correlation); err != nil {
		return
	}
	solver, err = equilibrium.NewSolver(equilibrium.Settings{
		Correlation: corr,
		Tol:         coeffs.Tolerance,
		MaxIter:     coeffs.MaxIterations,
		DUds:        coeffs.DUds,
	})
	if err != nil {
		return
	}
	m.Coeffs = *coeffs
	m.Corr = corr
	m.solver = solver
	return
}

func (m *Model) allocate() (err error) {
	var (
		n = m.host.NCells()
	)
	if n < 1 {
		return fmt.Errorf("host has no cells")
	}
	if err = m.checkHost(n); err != nil {
		return
	}
	m.pm = utils.NewPartitionMapAuto(m.procLimit, n)
	if m.init == nil {
		f := m.freestreamFields(n)
		m.init = &f
	}
	for _, f := range []struct {
		name types.FieldName
		v    []float64
	}{
		{types.Gamma, m.init.Gamma},
		{types.ReThetatTilda, m.init.ReThetatTilda},
		{types.K, m.init.K},
		{types.Omega, m.init.Omega},
	} {
		if len(f.v) != n {
			return fmt.Errorf("initial field %s has %d values, host has %d cells", f.name, len(f.v), n)
		}
	}
	m.gamma = append([]float64(nil), m.init.Gamma...)
	m.reThetatTilda = append([]float64(nil), m.init.ReThetatTilda...)
	m.k = append([]float64(nil), m.init.K...)
	m.omega = append([]float64(nil), m.init.Omega...)
	m.init = nil
	m.bound()

	m.nut = make([]float64, n)
	m.f1 = make([]float64, n)
	m.f2 = make([]float64, n)
	m.reThetat = make([]float64, n)
	m.rt = make([]float64, n)
	m.cells = make([]cellState, n)
	m.gradK = make([][3]float64, n)
	m.gradOmega = make([][3]float64, n)
	m.eqGamma = newEquation(types.Gamma, m.gamma)
	m.eqReThetat = newEquation(types.ReThetatTilda, m.reThetatTilda)
	m.eqK = newEquation(types.K, m.k)
	m.eqOmega = newEquation(types.Omega, m.omega)
	return
}

func (m *Model) checkHost(n int) (err error) {
	if len(m.host.WallDistance()) != n || len(m.host.Velocity()) != n ||
		len(m.host.VelocityGradient()) != n || len(m.host.Nu()) != n {
		err = fmt.Errorf("host fields do not match its %d cells", n)
	}
	return
}

// freestreamFields starts every cell fully turbulent at DefaultTu of the local
// velocity, with omega from DefaultViscosityRatio
func (m *Model) freestreamFields(n int) (f Fields) {
	var (
		U  = m.host.Velocity()
		nu = m.host.Nu()
	)
	f = UniformFields(n, 1, 0, 0, 0)
	for i := 0; i < n; i++ {
		Umag := math.Sqrt(U[i][0]*U[i][0] + U[i][1]*U[i][1] + U[i][2]*U[i][2])
		I := DefaultTu / 100
		f.K[i] = math.Max(1.5*(I*Umag)*(I*Umag), m.Coeffs.KMin)
		f.Omega[i] = math.Max(f.K[i]/(DefaultViscosityRatio*nu[i]), m.Coeffs.OmegaMin)
		f.ReThetatTilda[i] = m.Corr.ReThetat(DefaultTu, 0, 0)
	}
	return
}

func (m *Model) bound() (nBounded int) {
	nBounded += utils.BoundRange(m.gamma, 0, 1)
	nBounded += utils.BoundMin(m.reThetatTilda, m.Coeffs.ReThetatTildaMin)
	nBounded += utils.BoundMin(m.k, m.Coeffs.KMin)
	nBounded += utils.BoundMin(m.omega, m.Coeffs.OmegaMin)
	return
}

// NonConverged reports the equilibrium cells that hit the iteration cap
func (m *Model) NonConverged() int64 {
	return m.solver.NonConverged()
}

// ReThetatTildaInlet is the transported onset Reynolds number of an inflow
// with turbulence intensity Tu (percent) and no pressure gradient
func (m *Model) ReThetatTildaInlet(Tu float64) float64 {
	return m.solver.Solve(equilibrium.Point{Tu: Tu, U: 1, Nu: 1}).ReThetat
}
