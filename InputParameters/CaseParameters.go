package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"

	"github.com/notargets/gotransition/types"
)

// CaseParameters describes a flat plate run on the reference structured host
type CaseParameters struct {
	Title          string                 `json:"Title"`
	Nx             int                    `json:"Nx"`
	Ny             int                    `json:"Ny"`
	Length         float64                `json:"Length"`
	Height         float64                `json:"Height"`
	LeadingEdge    float64                `json:"LeadingEdge"` // Wall starts at x = LeadingEdge
	GradingY       float64                `json:"GradingY"`    // Ratio of neighboring cell heights away from the wall
	UInf           float64                `json:"UInf"`
	Nu             float64                `json:"Nu"`
	Tu             float64                `json:"Tu"` // Inlet turbulence intensity, percent
	ViscosityRatio float64                `json:"ViscosityRatio"`
	Steps          int                    `json:"Steps"`
	DeltaT         float64                `json:"DeltaT"`
	ProcLimit      int                    `json:"ProcLimit"`
	West           string                 `json:"West"` // Boundary labels, the plate is the south side
	East           string                 `json:"East"`
	North          string                 `json:"North"`
	Coefficients   TransitionCoefficients `json:"gammaReThetatSSTCoeffs"`
}

func NewCaseParameters() (cp *CaseParameters) {
	cp = &CaseParameters{
		Title:          "Flat plate",
		Nx:             60,
		Ny:             40,
		Length:         1,
		Height:         0.05,
		LeadingEdge:    0.05,
		GradingY:       1.15,
		UInf:           5.4,
		Nu:             1.5e-5,
		Tu:             3.3,
		ViscosityRatio: 12,
		Steps:          50,
		DeltaT:         1.0e-3,
		West:           "inlet",
		East:           "outlet",
		North:          "far",
		Coefficients:   *NewTransitionCoefficients(),
	}
	return
}

func (cp *CaseParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, cp); err != nil {
		return &types.ConfigurationError{Key: "case", Reason: err.Error()}
	}
	if cp.Nx < 2 || cp.Ny < 2 {
		return &types.ConfigurationError{Key: "Nx/Ny",
			Value: fmt.Sprintf("%d/%d", cp.Nx, cp.Ny), Reason: "need at least two cells per direction"}
	}
	if !(cp.Length > 0 && cp.Height > 0 && cp.UInf > 0 && cp.Nu > 0 && cp.DeltaT > 0) {
		return &types.ConfigurationError{Key: "case", Reason: "Length, Height, UInf, Nu and DeltaT must be positive"}
	}
	if last := cp.Length * (float64(cp.Nx) - 0.5) / float64(cp.Nx); cp.LeadingEdge < 0 || cp.LeadingEdge > last {
		return &types.ConfigurationError{Key: "LeadingEdge", Value: fmt.Sprintf("%g", cp.LeadingEdge),
			Reason: fmt.Sprintf("must lie in [0,%g] so that the last cell is on the plate", last)}
	}
	for _, label := range []string{cp.West, cp.East, cp.North} {
		if types.NewBCFLAG(label) == types.BC_None {
			return &types.ConfigurationError{Key: "boundary", Value: label, Reason: "unknown boundary label"}
		}
	}
	if cp.GradingY <= 0 {
		return &types.ConfigurationError{Key: "GradingY",
			Value: fmt.Sprintf("%g", cp.GradingY), Reason: "must be positive"}
	}
	return cp.Coefficients.Validate()
}

// InletTurbulence returns k and omega at the inlet from the turbulence
// intensity and the eddy to molecular viscosity ratio
func (cp *CaseParameters) InletTurbulence() (k, omega float64) {
	var (
		I = cp.Tu / 100
	)
	k = 1.5 * (I * cp.UInf) * (I * cp.UInf)
	omega = k / (cp.ViscosityRatio * cp.Nu)
	return
}

func (cp *CaseParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", cp.Title)
	fmt.Printf("[%d x %d]\t\t= Grid\n", cp.Nx, cp.Ny)
	fmt.Printf("%8.5f x %8.5f\t= Domain\n", cp.Length, cp.Height)
	fmt.Printf("%8.5f\t\t= Leading Edge\n", cp.LeadingEdge)
	fmt.Printf("%s/%s/%s\t= West/East/North\n", cp.West, cp.East, cp.North)
	fmt.Printf("%8.5f\t\t= UInf\n", cp.UInf)
	fmt.Printf("%8.3g\t\t= Nu\n", cp.Nu)
	fmt.Printf("%8.5f\t\t= Tu [%%]\n", cp.Tu)
	fmt.Printf("%8.5f\t\t= Viscosity Ratio\n", cp.ViscosityRatio)
	fmt.Printf("[%d]\t\t\t= Steps\n", cp.Steps)
	fmt.Printf("%8.3g\t\t= DeltaT\n", cp.DeltaT)
	cp.Coefficients.Print()
}
