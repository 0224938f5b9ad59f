// Package boundary has the inflow condition for ReThetatTilda. The inflow is
// assumed free of pressure gradient, so the transported value is the
// equilibrium onset Reynolds number of the local turbulence intensity.
package boundary

import (
	"fmt"
	"math"

	log "github.com/sirupsen/logrus"

	"github.com/notargets/gotransition/InputParameters"
	"github.com/notargets/gotransition/RAS/correlations"
	"github.com/notargets/gotransition/RAS/equilibrium"
	"github.com/notargets/gotransition/types"
)

// InletCorrelations are the variants the inflow condition supports
var InletCorrelations = []correlations.Correlation{
	correlations.Menter2009,
	correlations.Suluksna2009,
	correlations.Malan2009,
	correlations.Sorensen2009,
}

type ReThetatTildaInlet struct {
	Corr      correlations.Correlation
	Intensity float64 // Fixed turbulence intensity in percent, zero derives it from k and U
	solver    *equilibrium.Solver
}

// NewReThetatTildaInlet builds the condition from the same coefficients as the
// model it feeds
func NewReThetatTildaInlet(tc *InputParameters.TransitionCoefficients, intensity float64) (bc *ReThetatTildaInlet, err error) {
	var (
		corr correlations.Correlation
	)
	if corr, err = correlations.NewCorrelation(tc.Correlation); err != nil {
		return
	}
	if !supported(corr) {
		return nil, &types.ConfigurationError{Key: "correlation", Value: tc.Correlation,
			Reason: "not available for the ReThetatTilda inlet condition"}
	}
	if intensity < 0 {
		return nil, &types.ConfigurationError{Key: "intensity",
			Value: fmt.Sprintf("%g", intensity), Reason: "must not be negative"}
	}
	bc = &ReThetatTildaInlet{Corr: corr, Intensity: intensity}
	// The inflow has no pressure gradient, the iteration settles on its first pass
	bc.solver, err = equilibrium.NewSolver(equilibrium.Settings{
		Correlation: corr,
		Tol:         tc.Tolerance,
		MaxIter:     tc.MaxIterations,
		DUds:        true,
	})
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"correlation": corr.String(),
		"intensity":   intensity,
	}).Debug("ReThetatTilda inlet condition")
	return
}

func supported(c correlations.Correlation) bool {
	for _, ic := range InletCorrelations {
		if ic == c {
			return true
		}
	}
	return false
}

// Value is the inflow ReThetatTilda for a face with turbulence kinetic energy
// k and velocity U
func (bc *ReThetatTildaInlet) Value(k float64, U [3]float64) float64 {
	var (
		Umag = math.Sqrt(U[0]*U[0] + U[1]*U[1] + U[2]*U[2])
		Tu   = bc.Intensity
	)
	if Tu == 0 {
		Tu = equilibrium.TurbulenceIntensity(k, Umag)
	}
	return bc.solver.Solve(equilibrium.Point{Tu: Tu, U: math.Max(Umag, 1), Nu: 1}).ReThetat
}

// Evaluate fills the face values of a patch. phi is the face flux, positive
// out of the domain; outflow faces take the adjacent cell value.
func (bc *ReThetatTildaInlet) Evaluate(k []float64, U [][3]float64, phi, internal, values []float64) {
	for f := range values {
		if phi[f] >= 0 {
			values[f] = internal[f]
			continue
		}
		values[f] = bc.Value(k[f], U[f])
	}
}
