package correlations

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gotransition/types"
)

func TestNewCorrelation(t *testing.T) {
	for name, c := range CorrelationNameMap {
		cc, err := NewCorrelation(name)
		require.NoError(t, err)
		assert.Equal(t, c, cc)
		assert.Equal(t, name, cc.String())
	}
	_, err := NewCorrelation("Langtry2006")
	var ce *types.ConfigurationError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "correlation", ce.Key)
	assert.Equal(t, "Langtry2006", ce.Value)
	assert.Contains(t, ce.Error(), "Tomac2013")
}

// Reference values are those of the published Langtry-Menter (2009) flat
// plate and pressure gradient correlation, evaluated by hand
func TestReThetatCalibration(t *testing.T) {
	var (
		c = Menter2009
	)
	{ // Low freestream turbulence, flat plate
		R := c.ReThetat(0.1, 0, 0)
		assert.InDelta(t, 1136.527, R, 1e-2)
		assert.True(t, R >= 1000 && R <= 1200)
		Rc, F := c.Evaluate(0.1, 0)
		assert.InDelta(t, 756.805, Rc, 1e-2)
		assert.InDelta(t, 0.33784, F, 1e-4)
	}
	{
		assert.InDelta(t, 584.3016, c.ReThetat(1, 0, 0), 1e-3)
		// Both branches of the flat plate correlation meet at Tu = 1.3
		assert.InDelta(t, c.ReThetat(1.3, 0, 0), c.ReThetat(1.3+1e-9, 0, 0), 1)
	}
	{ // High freestream turbulence
		R := c.ReThetat(5, 0, 0)
		assert.InDelta(t, 122.031, R, 1e-2)
		assert.True(t, R >= 100 && R <= 250)
		Rc, _ := c.Evaluate(5, 0)
		assert.InDelta(t, 107.841, Rc, 1e-2)
	}
	{ // Inputs are limited to the calibration range
		assert.Equal(t, c.ReThetat(TuMin, 0, 0), c.ReThetat(0, 0, 0))
		assert.Equal(t, c.ReThetat(1, LambdaMax, 0), c.ReThetat(1, 10, 0))
		assert.Equal(t, c.ReThetat(1, LambdaMin, 0), c.ReThetat(1, -10, 0))
		assert.True(t, c.ReThetat(1000, 0, 0) >= ReThetatMin)
	}
	{ // Favorable pressure gradient delays transition, adverse promotes it
		flat := c.ReThetat(1, 0, 0)
		assert.Greater(t, c.ReThetat(1, 0.05, 0), flat)
		assert.Less(t, c.ReThetat(1, -0.05, 0), flat)
		s := Suluksna2009
		sflat := s.ReThetat(1, 0, 0)
		assert.InDelta(t, 803.73*math.Pow(1.6067, -1.027), sflat, 1e-9)
		assert.Greater(t, s.ReThetat(1, 0.05, 1e-6), sflat)
		assert.Less(t, s.ReThetat(1, -0.05, 0), sflat)
	}
}

func TestReThetacMonotone(t *testing.T) {
	// Higher freestream turbulence never delays transition
	for _, c := range AllCorrelations {
		prev := math.Inf(1)
		for Tu := 0.1; Tu <= 10; Tu += 0.01 {
			Rc, _ := c.Evaluate(Tu, 0)
			assert.LessOrEqual(t, Rc, prev+1e-9, "%s at Tu = %f", c, Tu)
			prev = Rc
		}
	}
}

func TestReThetacBelowReThetat(t *testing.T) {
	for _, c := range AllCorrelations {
		for R := ReThetatMin; R < 4000; R += 5 {
			Rc := c.ReThetac(R)
			assert.True(t, Rc >= ReThetacMin, "%s at R = %f", c, R)
			assert.True(t, Rc <= R, "%s at R = %f", c, R)
		}
	}
}

func TestFlengthBounds(t *testing.T) {
	for _, c := range AllCorrelations {
		for Tu := 0.; Tu <= 20; Tu += 0.05 {
			for lambda := -0.2; lambda <= 0.2; lambda += 0.01 {
				_, F := c.Evaluate(Tu, lambda)
				assert.True(t, F >= FlengthMin && F <= FlengthMax, "%s Tu=%f lambda=%f F=%f", c, Tu, lambda, F)
			}
		}
		for R := 0.; R < 5000; R += 10 {
			for _, Rw := range []float64{0, 0.1, 0.4, 1, 10} {
				assert.True(t, c.FlengthNearWall(R, Rw) >= FlengthMin)
			}
		}
	}
	{ // Menter Flength is continuous across its branches
		c := Menter2009
		for _, R := range []float64{400, 596, 1200} {
			assert.InDelta(t, c.Flength(R-1e-7), c.Flength(R), 1e-2, "R = %f", R)
		}
	}
	{ // Sublayer damping drives Flength to 40 at the wall
		assert.InDelta(t, 40., Malan2009.FlengthNearWall(800, 0), 1e-12)
		assert.InDelta(t, Malan2009.Flength(800), Malan2009.FlengthNearWall(800, 10), 1e-9)
	}
}
