package FV2D

import (
	"fmt"

	"github.com/james-bowman/sparse"
	log "github.com/sirupsen/logrus"

	"github.com/notargets/gotransition/InputParameters"
	"github.com/notargets/gotransition/RAS/boundary"
	"github.com/notargets/gotransition/RAS/gammaReThetatSST"
	"github.com/notargets/gotransition/types"
	"github.com/notargets/gotransition/utils"
)

// Solver is the flat plate host of the transition closure
type Solver struct {
	Grid     *Grid
	Flow     *BoundaryLayer
	DeltaT   float64
	Tol      float64 // Relative residual of the linear solves
	MaxIter  int
	y, nu    []float64
	u        [][3]float64
	gradU    [][3][3]float64
	inlet    map[types.FieldName][]float64 // Per row j
	wall     map[types.FieldName]float64   // Fixed value on the plate, absent fields are zero gradient
	pm       *utils.PartitionMap
	log      *log.Entry
	LastIter map[types.FieldName]int
}

// NewSolver builds the mesh, the frozen velocity field and the inflow values
// of the transported fields for a case
func NewSolver(cp *InputParameters.CaseParameters, entry *log.Entry) (s *Solver, err error) {
	var (
		g       *Grid
		inletBC *boundary.ReThetatTildaInlet
		tc      = &cp.Coefficients
	)
	if g, err = NewGrid(cp.Nx, cp.Ny, cp.Length, cp.Height, cp.GradingY, cp.LeadingEdge); err != nil {
		return
	}
	if err = g.SetBoundaries(cp.West, cp.East, cp.North); err != nil {
		return
	}
	if entry == nil {
		entry = log.NewEntry(log.StandardLogger())
	}
	s = &Solver{
		Grid: g,
		Flow: &BoundaryLayer{
			UInf:        cp.UInf,
			Nu:          cp.Nu,
			LeadingEdge: cp.LeadingEdge,
			XMin:        0.5 * g.Dx(0),
		},
		DeltaT:   cp.DeltaT,
		Tol:      1.0e-8,
		MaxIter:  1000,
		y:        g.WallDistance(),
		nu:       utils.ConstArray(g.NCells(), cp.Nu),
		u:        make([][3]float64, g.NCells()),
		gradU:    make([][3][3]float64, g.NCells()),
		pm:       utils.NewPartitionMapAuto(cp.ProcLimit, g.NCells()),
		log:      entry,
		LastIter: make(map[types.FieldName]int),
	}
	for k := 0; k < g.NCells(); k++ {
		i, j := g.IJ(k)
		s.u[k], s.gradU[k] = s.Flow.At(g.XC[i], g.YC[j])
	}
	if inletBC, err = boundary.NewReThetatTildaInlet(tc, 0); err != nil {
		return nil, err
	}
	kIn, omegaIn := cp.InletTurbulence()
	var (
		ny   = g.Ny
		kF   = utils.ConstArray(ny, kIn)
		uF   = make([][3]float64, ny)
		phi  = make([]float64, ny)
		rIn  = make([]float64, ny)
		zero = make([]float64, ny)
	)
	for j := 0; j < ny; j++ {
		uF[j], _ = s.Flow.At(g.XF[0], g.YC[j])
		phi[j] = -uF[j][0] * g.Dy(j)
	}
	inletBC.Evaluate(kF, uF, phi, zero, rIn)
	s.inlet = map[types.FieldName][]float64{
		types.Gamma:         utils.ConstArray(ny, 1),
		types.ReThetatTilda: rIn,
		types.K:             kF,
		types.Omega:         utils.ConstArray(ny, omegaIn),
	}
	s.wall = map[types.FieldName]float64{
		types.K:     0,
		types.Omega: 60 * cp.Nu / (tc.Beta1 * g.YC[0] * g.YC[0]),
	}
	s.log.WithFields(log.Fields{
		"cells":          g.NCells(),
		"firstCell":      g.YC[0],
		"ReThetatInlet":  rIn[0],
		"kInlet":         kIn,
		"omegaInlet":     omegaIn,
		"omegaWall":      s.wall[types.Omega],
		"boundaries":     fmt.Sprintf("W:%s E:%s N:%s", g.West[0], g.East[0], g.North[0]),
		"parallelDegree": s.pm.ParallelDegree,
	}).Info("flat plate host ready")
	return
}

func (s *Solver) NCells() int                       { return s.Grid.NCells() }
func (s *Solver) WallDistance() []float64           { return s.y }
func (s *Solver) Velocity() [][3]float64            { return s.u }
func (s *Solver) VelocityGradient() [][3][3]float64 { return s.gradU }
func (s *Solver) Nu() []float64                     { return s.nu }

// InletValues are the fixed inflow values of a transported field, by row
func (s *Solver) InletValues(name types.FieldName) []float64 {
	return s.inlet[name]
}

// Gradient is central in the interior and one sided on the boundaries
func (s *Solver) Gradient(phi []float64, grad [][3]float64) {
	var (
		g = s.Grid
	)
	s.pm.ParallelFor(func(np, kMin, kMax int) {
		for k := kMin; k < kMax; k++ {
			i, j := g.IJ(k)
			iW, iE := max(i-1, 0), min(i+1, g.Nx-1)
			jS, jN := max(j-1, 0), min(j+1, g.Ny-1)
			grad[k] = [3]float64{
				(phi[g.Index(iE, j)] - phi[g.Index(iW, j)]) / (g.XC[iE] - g.XC[iW]),
				(phi[g.Index(i, jN)] - phi[g.Index(i, jS)]) / (g.YC[jN] - g.YC[jS]),
				0,
			}
		}
	})
}

// Solve advances eq.Phi by one implicit Euler step
func (s *Solver) Solve(eq *gammaReThetatSST.Equation) (err error) {
	var (
		ls    *LinearSystem
		iters int
		res   float64
	)
	if !eq.Name.IsTransported() {
		return fmt.Errorf("field %s is not transported", eq.Name)
	}
	ls = s.assemble(eq)
	iters, res, err = ls.BiCGSTAB(eq.Phi, s.Tol, s.MaxIter)
	s.LastIter[eq.Name] = iters
	if err != nil {
		return fmt.Errorf("field %s: %w", eq.Name, err)
	}
	s.log.WithFields(log.Fields{
		"field":      eq.Name,
		"iterations": iters,
		"residual":   res,
	}).Trace("linear solve")
	return
}

func (s *Solver) assemble(eq *gammaReThetatSST.Equation) (ls *LinearSystem) {
	var (
		g          = s.Grid
		n          = g.NCells()
		A          = sparse.NewDOK(n, n)
		b          = make([]float64, n)
		D          = eq.Diffusivity
		phiIn      = s.inlet[eq.Name]
		wallV, isW = s.wall[eq.Name]
		dt         = s.DeltaT
	)
	for k := 0; k < n; k++ {
		i, j := g.IJ(k)
		dx, dy := g.Dx(i), g.Dy(j)
		V := dx * dy
		diag := V/dt + eq.Sp[k]*V
		b[k] = V/dt*eq.Phi[k] + eq.Su[k]*V
		// neighbor couples cell k to nb through one face. F is the outward
		// face flux, only inflow enters the diagonal.
		neighbor := func(nb int, F, area, dist float64) {
			Df := 0.5 * (D[k] + D[nb]) * area / dist
			diag += max(-F, 0) + Df
			A.Set(k, nb, -(max(-F, 0) + Df))
		}
		// closeFace closes a face on the domain boundary, dist is from the cell
		// center to the face and phiB the inflow value. Outlets and slip faces
		// are zero gradient.
		closeFace := func(bf types.BCFLAG, F, area, dist, phiB float64) {
			switch bf {
			case types.BC_In:
				Fb := max(-F, 0) + D[k]*area/dist
				diag += Fb
				b[k] += Fb * phiB
			case types.BC_Far:
				if F < 0 {
					diag -= F
					b[k] -= F * phiB
				}
			case types.BC_Wall:
				if isW {
					Dw := D[k] * area / dist
					diag += Dw
					b[k] += Dw * wallV
				}
			}
		}
		if i < g.Nx-1 {
			uE, _ := s.Flow.At(g.XF[i+1], g.YC[j])
			neighbor(k+1, uE[0]*dy, dy, g.XC[i+1]-g.XC[i])
		} else if phiIn != nil {
			uE, _ := s.Flow.At(g.XF[i+1], g.YC[j])
			closeFace(g.East[j], uE[0]*dy, dy, g.XF[i+1]-g.XC[i], phiIn[j])
		}
		if i > 0 {
			uW, _ := s.Flow.At(g.XF[i], g.YC[j])
			neighbor(k-1, -uW[0]*dy, dy, g.XC[i]-g.XC[i-1])
		} else if phiIn != nil {
			uW, _ := s.Flow.At(g.XF[0], g.YC[j])
			closeFace(g.West[j], -uW[0]*dy, dy, g.XC[0]-g.XF[0], phiIn[j])
		}
		if j < g.Ny-1 {
			uN, _ := s.Flow.At(g.XC[i], g.YF[j+1])
			neighbor(k+g.Nx, uN[1]*dx, dx, g.YC[j+1]-g.YC[j])
		} else if phiIn != nil {
			uN, _ := s.Flow.At(g.XC[i], g.YF[j+1])
			closeFace(g.North[i], uN[1]*dx, dx, g.YF[j+1]-g.YC[j], phiIn[g.Ny-1])
		}
		if j > 0 {
			uS, _ := s.Flow.At(g.XC[i], g.YF[j])
			neighbor(k-g.Nx, -uS[1]*dx, dx, g.YC[j]-g.YC[j-1])
		} else {
			closeFace(g.South[i], 0, dx, g.YC[0]-g.YF[0], 0)
		}
		A.Set(k, k, diag)
	}
	ls = NewLinearSystem(A.ToCSR(), b, s.pm)
	return
}
