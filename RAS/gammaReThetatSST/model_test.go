package gammaReThetatSST

import (
	"errors"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/notargets/gotransition/InputParameters"
	"github.com/notargets/gotransition/RAS/equilibrium"
	"github.com/notargets/gotransition/types"
	"github.com/notargets/gotransition/utils"
)

// pointHost advances each cell independently with an implicit Euler step of
// the source terms, no transport
type pointHost struct {
	t        *testing.T
	y, nu    []float64
	U        [][3]float64
	gradU    [][3][3]float64
	dt       float64
	failOn   types.FieldName
	solved   []types.FieldName
	accessed int
}

func newPointHost(t *testing.T, n int) (h *pointHost) {
	h = &pointHost{
		t:     t,
		y:     make([]float64, n),
		nu:    make([]float64, n),
		U:     make([][3]float64, n),
		gradU: make([][3][3]float64, n),
		dt:    1.0e-3,
	}
	for i := 0; i < n; i++ {
		// Wall distance from 1e-6 to 1e-2, shear falling off away from the wall
		h.y[i] = 1.0e-6 * math.Pow(1.0e4, float64(i)/float64(n-1))
		h.nu[i] = 1.5e-5
		h.U[i] = [3]float64{5.4 * math.Min(1, h.y[i]/1.0e-3), 0, 0}
		h.gradU[i][0][1] = 5.4 / math.Max(h.y[i], 1.0e-3)
	}
	return
}

func (h *pointHost) NCells() int                       { return len(h.y) }
func (h *pointHost) WallDistance() []float64           { h.accessed++; return h.y }
func (h *pointHost) Velocity() [][3]float64            { h.accessed++; return h.U }
func (h *pointHost) VelocityGradient() [][3][3]float64 { h.accessed++; return h.gradU }
func (h *pointHost) Nu() []float64                     { h.accessed++; return h.nu }
func (h *pointHost) Gradient(phi []float64, grad [][3]float64) {
	for i := range grad {
		grad[i] = [3]float64{}
	}
}

func (h *pointHost) Solve(eq *Equation) error {
	h.solved = append(h.solved, eq.Name)
	if eq.Name == h.failOn {
		return errors.New("diverged")
	}
	for i := range eq.Phi {
		assert.GreaterOrEqual(h.t, eq.Sp[i], 0., "%s Sp at cell %d", eq.Name, i)
		assert.False(h.t, math.IsNaN(eq.Su[i]), "%s Su at cell %d", eq.Name, i)
		eq.Phi[i] = (eq.Phi[i] + h.dt*eq.Su[i]) / (1 + h.dt*eq.Sp[i])
	}
	return nil
}

func quietLogger() *log.Entry {
	l := log.New()
	l.SetLevel(log.WarnLevel)
	return log.NewEntry(l)
}

func TestConfigurationErrorBeforeEvaluation(t *testing.T) {
	h := newPointHost(t, 8)
	{ // Unknown correlation
		tc := InputParameters.NewTransitionCoefficients()
		tc.Correlation = "Abu-Ghannam"
		m, err := New(h, tc, WithLogger(quietLogger()))
		assert.Nil(t, m)
		var ce *types.ConfigurationError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, "correlation", ce.Key)
		assert.Equal(t, 0, h.accessed)
		assert.Empty(t, h.solved)
	}
	{ // Invalid coefficient
		tc := InputParameters.NewTransitionCoefficients()
		tc.Ce2 = 0.5
		_, err := New(h, tc, WithLogger(quietLogger()))
		var ce *types.ConfigurationError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, 0, h.accessed)
	}
	{ // Wrongly sized initial fields are not a configuration error but still fail
		_, err := New(h, nil, WithLogger(quietLogger()), WithFields(UniformFields(3, 1, 100, 1, 1)))
		assert.Error(t, err)
	}
}

func TestCorrectOrderAndBounds(t *testing.T) {
	var (
		n = 64
		h = newPointHost(t, n)
	)
	m, err := New(h, nil, WithLogger(quietLogger()), WithProcLimit(4))
	require.NoError(t, err)
	for step := 0; step < 200; step++ {
		require.NoError(t, m.Correct())
	}
	assert.Equal(t, 200, m.Step)
	require.Len(t, h.solved, 4*200)
	assert.Equal(t, types.TransportedFields, h.solved[:4])

	gamma, F1, F2, nut := m.Gamma(), m.F1(), m.F2(), m.Nut()
	for i := 0; i < n; i++ {
		assert.True(t, gamma[i] >= 0 && gamma[i] <= 1, "gamma[%d] = %g", i, gamma[i])
		assert.True(t, F1[i] >= 0 && F1[i] <= 1, "F1[%d] = %g", i, F1[i])
		assert.True(t, F2[i] >= 0 && F2[i] <= 1, "F2[%d] = %g", i, F2[i])
		assert.True(t, nut[i] >= 0 && !math.IsInf(nut[i], 0), "nut[%d] = %g", i, nut[i])
	}
	for _, R := range m.ReThetatTilda() {
		assert.GreaterOrEqual(t, R, m.Coeffs.ReThetatTildaMin)
	}
	// Accessors hand out copies
	gamma[0] = -1
	assert.GreaterOrEqual(t, m.Gamma()[0], 0.)
}

func TestSolveErrorPropagation(t *testing.T) {
	h := newPointHost(t, 16)
	m, err := New(h, nil, WithLogger(quietLogger()))
	require.NoError(t, err)
	omega := m.Omega()
	h.failOn = types.K
	err = m.Correct()
	var se *types.SolveError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, types.K, se.Field)
	assert.EqualError(t, errors.Unwrap(err), "diverged")
	// No retry, omega is never handed to the host
	assert.Equal(t, []types.FieldName{types.Gamma, types.ReThetatTilda, types.K}, h.solved)
	assert.Equal(t, omega, m.Omega())
}

func TestFreestreamDecay(t *testing.T) {
	var (
		n = 4
		h = newPointHost(t, n)
	)
	for i := 0; i < n; i++ {
		h.U[i] = [3]float64{5, 0, 0}
		h.gradU[i] = [3][3]float64{}
		h.y[i] = 1
	}
	m, err := New(h, nil, WithLogger(quietLogger()), WithFields(UniformFields(n, 1, 200, 1.0e-2, 10)))
	require.NoError(t, err)
	assert.InDeltaSlice(t, utils.ConstArray(n, 1.0e-3), m.Nut(), 1.0e-12)
	k0 := m.K()
	for step := 0; step < 10; step++ {
		require.NoError(t, m.Correct())
	}
	for i, k := range m.K() {
		assert.Less(t, k, k0[i])
	}
	// Without strain, nut = k/omega
	k, w, nut := m.K(), m.Omega(), m.Nut()
	for i := range nut {
		assert.InDelta(t, k[i]/w[i], nut[i], 1.0e-12)
	}
	// ReThetatTilda relaxes toward the equilibrium value
	eq := m.ReThetatEq()
	for i, R := range m.ReThetatTilda() {
		assert.Less(t, math.Abs(R-eq[i]), math.Abs(200-eq[i]))
	}
	// Controlled decay holds k at the ambient value
	tc := InputParameters.NewTransitionCoefficients()
	tc.KInf, tc.OmegaInf = 1.0e-2, 10
	m2, err := New(h, tc, WithLogger(quietLogger()), WithFields(UniformFields(n, 1, 200, 1.0e-2, 10)))
	require.NoError(t, err)
	for step := 0; step < 10; step++ {
		require.NoError(t, m2.Correct())
	}
	assert.InDeltaSlice(t, utils.ConstArray(n, 1.0e-2), m2.K(), 1.0e-9)
	assert.InDeltaSlice(t, utils.ConstArray(n, 10), m2.Omega(), 1.0e-6)
}

func TestFieldsAndStress(t *testing.T) {
	var (
		n = 5
		h = newPointHost(t, n)
	)
	m, err := New(h, nil, WithLogger(quietLogger()))
	require.NoError(t, err)
	require.NoError(t, m.Correct())
	for _, name := range []types.FieldName{types.Gamma, types.ReThetatTilda, types.K, types.Omega,
		types.Nut, types.DgammaEff, types.DReThetatTildaEff, types.DkEff, types.DomegaEff,
		types.Epsilon, types.Rt, types.ReThetatEq, types.BlendF1, types.BlendF2} {
		v, err := m.Field(name)
		assert.NoError(t, err, name.String())
		assert.Len(t, v, n, name.String())
	}
	_, err = m.Field("p")
	assert.Error(t, err)

	k, nut, Dg := m.K(), m.Nut(), m.DgammaEff()
	for i := 0; i < n; i++ {
		assert.InDelta(t, nut[i]+h.nu[i], Dg[i], 1.0e-15)
	}
	R, D := m.R(), m.DevReff()
	for i := 0; i < n; i++ {
		// Deviatoric part is traceless, the normal stresses carry 2k
		assert.InDelta(t, 2*k[i], mat.Trace(R[i]), 1.0e-12*math.Max(1, k[i]))
		assert.InDelta(t, 0, mat.Trace(D[i]), 1.0e-12)
		// Simple shear dU/dy: R_xy = -nut dU/dy
		assert.InDelta(t, -nut[i]*h.gradU[i][0][1], R[i].At(0, 1), 1.0e-12*math.Max(1, nut[i]*h.gradU[i][0][1]))
		assert.InDelta(t, -(h.nu[i]+nut[i])*h.gradU[i][0][1], D[i].At(1, 0), 1.0e-9)
	}
}

func TestReadAndInlet(t *testing.T) {
	h := newPointHost(t, 8)
	m, err := New(h, nil, WithLogger(quietLogger()))
	require.NoError(t, err)
	gamma := m.Gamma()
	assert.InDelta(t, m.Corr.ReThetat(2, 0, 0), m.ReThetatTildaInlet(2), 1.0e-12)

	tc := InputParameters.NewTransitionCoefficients()
	tc.Correlation = "Bogus"
	var ce *types.ConfigurationError
	require.True(t, errors.As(m.Read(tc), &ce))
	assert.Equal(t, "Menter2009", m.Corr.String())

	tc.Correlation = "Tomac2013"
	require.NoError(t, m.Read(tc))
	assert.Equal(t, "Tomac2013", m.Corr.String())
	assert.Equal(t, gamma, m.Gamma())
	require.NoError(t, m.Correct())
}

func TestNonConvergenceMetric(t *testing.T) {
	var (
		n   = 6
		h   = newPointHost(t, n)
		reg = prometheus.NewRegistry()
	)
	for i := 0; i < n; i++ {
		h.U[i] = [3]float64{5, 0, 0}
		h.gradU[i] = [3][3]float64{{2, 0, 0}}
		h.y[i] = 1
	}
	tc := InputParameters.NewTransitionCoefficients()
	tc.DUds = true
	tc.MaxIterations = 1
	m, err := New(h, tc, WithLogger(quietLogger()), WithRegisterer(reg, "plate"),
		WithFields(UniformFields(n, 1, 200, 1.5*0.05*0.05, 100)))
	require.NoError(t, err)
	require.NoError(t, m.Correct())
	assert.Equal(t, int64(n), m.NonConverged())
	c, err := equilibrium.NewNonConvergenceCounter(reg, "plate")
	require.NoError(t, err)
	assert.Equal(t, float64(n), testutil.ToFloat64(c))

	// Re-reading keeps the count and the exported counter
	tc.MaxIterations = 100
	require.NoError(t, m.Read(tc))
	require.NoError(t, m.Correct())
	assert.Equal(t, int64(n), m.NonConverged())
	assert.Equal(t, float64(n), testutil.ToFloat64(c))
}
