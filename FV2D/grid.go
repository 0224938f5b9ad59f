// Package FV2D is a small structured finite volume solver for a flat plate in
// a uniform stream. It hosts the transition closure: the velocity field is
// frozen, and each transported scalar is advanced with an implicit Euler
// step of first order upwind convection and central diffusion.
package FV2D

import (
	"fmt"
	"math"
	"slices"

	"github.com/notargets/gotransition/types"
)

// Grid is Nx x Ny cells, i streamwise and j away from the south boundary,
// with cell heights growing geometrically by GradingY. Cell k = i + j*Nx.
type Grid struct {
	Nx, Ny      int
	XF, YF      []float64 // Face coordinates, Nx+1 and Ny+1
	XC, YC      []float64 // Cell centers
	LeadingEdge float64
	South       []types.BCFLAG // Per column, slip upstream of the leading edge
	North       []types.BCFLAG // Per column
	West, East  []types.BCFLAG // Per row
}

func NewGrid(nx, ny int, length, height, grading, leadingEdge float64) (g *Grid, err error) {
	if nx < 2 || ny < 2 {
		err = fmt.Errorf("grid needs at least 2x2 cells, have %dx%d", nx, ny)
		return
	}
	if leadingEdge < 0 || leadingEdge >= length {
		err = fmt.Errorf("leading edge %g is outside the domain [0,%g)", leadingEdge, length)
		return
	}
	g = &Grid{
		Nx: nx, Ny: ny,
		XF:          make([]float64, nx+1),
		YF:          make([]float64, ny+1),
		XC:          make([]float64, nx),
		YC:          make([]float64, ny),
		LeadingEdge: leadingEdge,
		South:       make([]types.BCFLAG, nx),
		North:       make([]types.BCFLAG, nx),
		West:        make([]types.BCFLAG, ny),
		East:        make([]types.BCFLAG, ny),
	}
	for i := 0; i <= nx; i++ {
		g.XF[i] = length * float64(i) / float64(nx)
	}
	var (
		h = height / float64(ny)
	)
	if math.Abs(grading-1) > 1.0e-12 {
		h = height * (grading - 1) / (math.Pow(grading, float64(ny)) - 1)
	}
	for j := 1; j <= ny; j++ {
		g.YF[j] = g.YF[j-1] + h
		h *= grading
	}
	g.YF[ny] = height
	for i := 0; i < nx; i++ {
		g.XC[i] = 0.5 * (g.XF[i] + g.XF[i+1])
		g.South[i] = types.BC_Slip
		if g.XC[i] >= leadingEdge {
			g.South[i] = types.BC_Wall
		}
	}
	if g.South[nx-1] != types.BC_Wall {
		err = &types.ConfigurationError{Key: "LeadingEdge", Value: fmt.Sprintf("%g", leadingEdge),
			Reason: fmt.Sprintf("no cell center lies on the plate, the last is at x = %g", g.XC[nx-1])}
		return nil, err
	}
	for j := 0; j < ny; j++ {
		g.YC[j] = 0.5 * (g.YF[j] + g.YF[j+1])
	}
	err = g.SetBoundaries("inlet", "outlet", "far")
	return
}

// SetBoundaries labels the west, east and north sides, see types.NewBCFLAG.
// The plate is always the south side. The west side is an inlet or far field,
// the east side an outlet or far field, and the north side a far field, an
// outlet or a slip wall.
func (g *Grid) SetBoundaries(west, east, north string) (err error) {
	var (
		allowed = []struct {
			side  string
			label string
			flags []types.BCFLAG
			out   []types.BCFLAG
		}{
			{"West", west, []types.BCFLAG{types.BC_In, types.BC_Far}, g.West},
			{"East", east, []types.BCFLAG{types.BC_Out, types.BC_Far}, g.East},
			{"North", north, []types.BCFLAG{types.BC_Far, types.BC_Out, types.BC_Slip}, g.North},
		}
	)
	for _, a := range allowed {
		bf := types.NewBCFLAG(a.label)
		if !slices.Contains(a.flags, bf) {
			return &types.ConfigurationError{Key: a.side, Value: a.label,
				Reason: fmt.Sprintf("boundary must be one of %v", a.flags)}
		}
		for i := range a.out {
			a.out[i] = bf
		}
	}
	return
}

func (g *Grid) NCells() int { return g.Nx * g.Ny }

func (g *Grid) Index(i, j int) int { return i + j*g.Nx }

func (g *Grid) IJ(k int) (i, j int) {
	j = k / g.Nx
	i = k - j*g.Nx
	return
}

func (g *Grid) Dx(i int) float64 { return g.XF[i+1] - g.XF[i] }
func (g *Grid) Dy(j int) float64 { return g.YF[j+1] - g.YF[j] }

// WallDistance is the distance to the nearest point of the plate, which runs
// along the south boundary from the leading edge to the outlet
func (g *Grid) WallDistance() (y []float64) {
	y = make([]float64, g.NCells())
	for j := 0; j < g.Ny; j++ {
		for i := 0; i < g.Nx; i++ {
			dx := math.Max(g.LeadingEdge-g.XC[i], 0)
			y[g.Index(i, j)] = math.Hypot(dx, g.YC[j])
		}
	}
	return
}
