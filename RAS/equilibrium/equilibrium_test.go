package equilibrium

import (
	"errors"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gotransition/RAS/correlations"
	"github.com/notargets/gotransition/types"
	"github.com/notargets/gotransition/utils"
)

func newSolver(t *testing.T, c correlations.Correlation, dUds bool, maxIter int) *Solver {
	sv, err := NewSolver(Settings{Correlation: c, Tol: 1.0e-4, MaxIter: maxIter, DUds: dUds})
	require.NoError(t, err)
	return sv
}

func TestSolverSettings(t *testing.T) {
	var ce *types.ConfigurationError
	_, err := NewSolver(Settings{Tol: 0, MaxIter: 10})
	assert.True(t, errors.As(err, &ce))
	_, err = NewSolver(Settings{Tol: 1e-4, MaxIter: 0})
	assert.True(t, errors.As(err, &ce))
}

func TestZeroPressureGradient(t *testing.T) {
	// With no pressure gradient feedback the fixed point is the correlation
	for _, c := range correlations.AllCorrelations {
		sv := newSolver(t, c, true, 100)
		for _, Tu := range []float64{0.1, 0.5, 1, 2, 5} {
			r := sv.Solve(Point{Tu: Tu, U: 10, DUds: 0, Nu: 1.5e-5})
			assert.True(t, r.Converged)
			assert.Equal(t, 1, r.Iterations)
			assert.InDelta(t, c.ReThetat(Tu, 0, 0), r.ReThetat, sv.Tol)
		}
	}
}

func TestSwitchOffIsDirect(t *testing.T) {
	sv := newSolver(t, correlations.Menter2009, false, 100)
	p := Point{Tu: 1, U: 10, DUds: -1, Nu: 1.5e-5}
	want := correlations.Menter2009.ReThetat(1, 0, 0)
	for _, guess := range []float64{0, 20, 1.0e6, -5} {
		r := sv.SolveFrom(p, guess)
		assert.Equal(t, 1, r.Iterations)
		assert.True(t, r.Converged)
		assert.Equal(t, want, r.ReThetat)
	}
}

func TestPressureGradientFixedPoint(t *testing.T) {
	var (
		c  = correlations.Menter2009
		sv = newSolver(t, c, true, 100)
		nu = 1.5e-5
		U  = 10.
	)
	flat := c.ReThetat(1, 0, 0)
	for _, dUds := range []float64{-3, -1, -0.5, 1, 2} {
		r := sv.Solve(Point{Tu: 1, U: U, DUds: dUds, Nu: nu})
		require.True(t, r.Converged, "dUds = %f", dUds)
		// The converged value satisfies its own correlation
		theta := r.ReThetat * nu / U
		lambda := theta * theta / nu * dUds
		assert.InDelta(t, c.ReThetat(1, lambda, nu/(U*U)*dUds), r.ReThetat, 10*sv.Tol)
		if dUds < 0 {
			assert.Less(t, r.ReThetat, flat)
			assert.Greater(t, r.Iterations, 1)
		} else {
			assert.Greater(t, r.ReThetat, flat)
		}
	}
	assert.Equal(t, int64(0), sv.NonConverged())
}

func TestNonConvergenceIsCounted(t *testing.T) {
	var (
		sv  = newSolver(t, correlations.Menter2009, true, 1)
		reg = prometheus.NewRegistry()
	)
	counter, err := NewNonConvergenceCounter(reg, "test")
	require.NoError(t, err)
	sv.SetCounter(counter)
	r := sv.Solve(Point{Tu: 1, U: 10, DUds: -1, Nu: 1.5e-5})
	assert.False(t, r.Converged)
	assert.Equal(t, 1, r.Iterations)
	assert.False(t, math.IsNaN(r.ReThetat))
	assert.Equal(t, int64(1), sv.NonConverged())
	assert.Equal(t, 1., testutil.ToFloat64(counter))

	// A second registration with the same label shares the counter
	again, err := NewNonConvergenceCounter(reg, "test")
	require.NoError(t, err)
	again.Inc()
	assert.Equal(t, 2., testutil.ToFloat64(counter))

	// A carried over count adds to the diagnostics only
	sv.AddNonConverged(3)
	assert.Equal(t, int64(4), sv.NonConverged())
	assert.Equal(t, 2., testutil.ToFloat64(counter))
}

func TestSolveField(t *testing.T) {
	var (
		K   = 257
		sv  = newSolver(t, correlations.Suluksna2009, true, 100)
		pm  = utils.NewPartitionMap(4, K)
		out = make([]float64, K)
		pt  = func(k int) Point {
			return Point{Tu: 0.1 + 0.02*float64(k), U: 5 + 0.01*float64(k),
				DUds: -2 + 0.015*float64(k), Nu: 1.5e-5}
		}
	)
	nc := sv.SolveField(pm, pt, out)
	assert.Equal(t, int64(0), nc)
	for k := 0; k < K; k++ {
		assert.Equal(t, sv.Solve(pt(k)).ReThetat, out[k])
	}
}

func TestLocalInvariants(t *testing.T) {
	k := 1.5 * (0.01 * 10) * (0.01 * 10)
	assert.InDelta(t, 1., TurbulenceIntensity(k, 10), 1e-12)
	assert.Equal(t, correlations.TuMin, TurbulenceIntensity(0, 10))

	var gradU [3][3]float64
	gradU[0][0] = 3
	assert.InDelta(t, 3., StreamwiseGradient([3]float64{2, 0, 0}, gradU), 1e-12)
	assert.InDelta(t, 0., StreamwiseGradient([3]float64{0, 2, 0}, gradU), 1e-12)
	gradU[1][1] = -1
	// Along the diagonal streamline the acceleration is the average
	assert.InDelta(t, 1., StreamwiseGradient([3]float64{1, 1, 0}, gradU), 1e-12)
	assert.Equal(t, 0., StreamwiseGradient([3]float64{}, gradU))
}
