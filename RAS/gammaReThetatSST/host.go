package gammaReThetatSST

import (
	"github.com/notargets/gotransition/types"
)

// Host is the simulation environment the closure runs inside. It owns the
// mesh, the discretization and the linear solver; the closure owns the
// turbulence fields. All slices are indexed by cell and must not be modified
// by the host while Correct is running, except Equation.Phi during Solve.
type Host interface {
	NCells() int
	WallDistance() []float64
	Velocity() [][3]float64
	// VelocityGradient is dU_i/dx_j at [i][j]
	VelocityGradient() [][3][3]float64
	// Nu is the laminar kinematic viscosity
	Nu() []float64
	// Gradient writes the cell gradient of phi into grad
	Gradient(phi []float64, grad [][3]float64)
	// Solve advances Phi by one step of
	//   d(Phi)/dt + div(U Phi) - div(Diffusivity grad(Phi)) = Su - Sp Phi
	// in place, with the boundary conditions the host holds for Name
	Solve(eq *Equation) error
}

// Equation is handed to Host.Solve for one field. Sp is never negative.
type Equation struct {
	Name        types.FieldName
	Phi         []float64
	Diffusivity []float64
	Su, Sp      []float64
}

func newEquation(name types.FieldName, phi []float64) (eq *Equation) {
	var (
		n = len(phi)
	)
	eq = &Equation{
		Name:        name,
		Phi:         phi,
		Diffusivity: make([]float64, n),
		Su:          make([]float64, n),
		Sp:          make([]float64, n),
	}
	return
}
