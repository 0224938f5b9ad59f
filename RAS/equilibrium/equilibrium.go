// Package equilibrium solves, per cell, for the equilibrium transition onset
// momentum thickness Reynolds number ReThetat. With a streamwise pressure
// gradient the pressure gradient parameter depends on the momentum thickness,
// which itself depends on ReThetat, so the correlation is iterated to a fixed
// point. The iteration is bounded; a cell that reaches the cap keeps its last
// iterate and is counted, it is not an error.
package equilibrium

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/notargets/gotransition/RAS/correlations"
	"github.com/notargets/gotransition/types"
	"github.com/notargets/gotransition/utils"
)

type Settings struct {
	Correlation correlations.Correlation
	Tol         float64 // Absolute change in ReThetat between iterates
	MaxIter     int
	DUds        bool // Pressure gradient influence, a single evaluation when off
}

// Point holds the local flow quantities needed for one cell
type Point struct {
	Tu   float64 // Turbulence intensity in percent
	U    float64 // Velocity magnitude
	DUds float64 // Streamwise acceleration dU/ds
	Nu   float64 // Kinematic viscosity
}

type Result struct {
	ReThetat   float64
	Iterations int
	Converged  bool
}

type Solver struct {
	Settings
	nonConverged int64
	counter      prometheus.Counter
}

func NewSolver(s Settings) (sv *Solver, err error) {
	if !(s.Tol > 0) {
		return nil, &types.ConfigurationError{Key: "tolerance",
			Value: fmt.Sprintf("%g", s.Tol), Reason: "must be positive"}
	}
	if s.MaxIter < 1 {
		return nil, &types.ConfigurationError{Key: "maxIterations",
			Value: fmt.Sprintf("%d", s.MaxIter), Reason: "must be at least one"}
	}
	sv = &Solver{Settings: s}
	return
}

// SetCounter exports the number of non converged cells, nil disables it
func (sv *Solver) SetCounter(c prometheus.Counter) {
	sv.counter = c
}

// NonConverged is the number of cell evaluations that reached MaxIter since
// the solver was built, plus any count carried over by AddNonConverged
func (sv *Solver) NonConverged() int64 {
	return atomic.LoadInt64(&sv.nonConverged)
}

func (sv *Solver) Counter() prometheus.Counter {
	return sv.counter
}

// AddNonConverged carries a count over from a solver this one replaces, the
// exported counter already holds it
func (sv *Solver) AddNonConverged(n int64) {
	atomic.AddInt64(&sv.nonConverged, n)
}

// Solve starts the iteration from the zero pressure gradient correlation
func (sv *Solver) Solve(p Point) (r Result) {
	r = sv.SolveFrom(p, sv.Correlation.ReThetat(p.Tu, 0, 0))
	if !r.Converged {
		sv.countNonConverged(1)
	}
	return
}

// SolveFrom iterates from an arbitrary initial guess. With the pressure
// gradient switch off the guess is ignored and the result is the direct
// correlation value after exactly one evaluation.
func (sv *Solver) SolveFrom(p Point, guess float64) (r Result) {
	var (
		c    = sv.Correlation
		R    = guess
		U    = math.Max(p.U, utils.SMALL)
		nu   = math.Max(p.Nu, utils.VSMALL)
		K    = nu / (U * U) * p.DUds
		Rnew float64
	)
	if !sv.DUds {
		r = Result{ReThetat: c.ReThetat(p.Tu, 0, 0), Iterations: 1, Converged: true}
		return
	}
	for it := 1; it <= sv.MaxIter; it++ {
		theta := R * nu / U
		lambda := theta * theta / nu * p.DUds
		Rnew = c.ReThetat(p.Tu, lambda, K)
		if math.Abs(Rnew-R) < sv.Tol {
			r = Result{ReThetat: Rnew, Iterations: it, Converged: true}
			return
		}
		R = Rnew
	}
	r = Result{ReThetat: R, Iterations: sv.MaxIter, Converged: false}
	return
}

// SolveField evaluates every cell of the partition map in parallel, writing
// ReThetat into out. point must be safe to call concurrently for different k.
func (sv *Solver) SolveField(pm *utils.PartitionMap, point func(k int) Point,
	out []float64) (nonConverged int64) {
	var (
		counts = make([]int64, pm.ParallelDegree)
		c      = sv.Correlation
	)
	pm.ParallelFor(func(np, kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			p := point(k)
			r := sv.SolveFrom(p, c.ReThetat(p.Tu, 0, 0))
			if !r.Converged {
				counts[np]++
			}
			out[k] = r.ReThetat
		}
	})
	for _, n := range counts {
		nonConverged += n
	}
	sv.countNonConverged(nonConverged)
	return
}

func (sv *Solver) countNonConverged(n int64) {
	if n == 0 {
		return
	}
	atomic.AddInt64(&sv.nonConverged, n)
	if sv.counter != nil {
		sv.counter.Add(float64(n))
	}
}

// TurbulenceIntensity in percent from k = 1.5 (Tu U)^2, floored at the
// calibration minimum
func TurbulenceIntensity(k, U float64) float64 {
	var (
		Tu = 100 * math.Sqrt(2*math.Max(k, 0)/3) / math.Max(U, utils.SMALL)
	)
	return math.Max(Tu, correlations.TuMin)
}

// StreamwiseGradient is dU/ds = u_i u_j dU_i/dx_j / |u|^2, the acceleration
// along the local streamline. gradU[i][j] is dU_i/dx_j.
func StreamwiseGradient(u [3]float64, gradU [3][3]float64) float64 {
	var (
		U2  = u[0]*u[0] + u[1]*u[1] + u[2]*u[2]
		sum float64
	)
	if U2 < utils.SMALL {
		return 0
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum += u[i] * u[j] * gradU[i][j]
		}
	}
	return sum / U2
}
