package InputParameters

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/notargets/gotransition/types"
)

// TransitionCoefficients is the gammaReThetatSSTCoeffs dictionary. Keys that
// are absent from an input file keep the defaults of
// NewTransitionCoefficients.
type TransitionCoefficients struct {
	Correlation string `json:"correlation"`
	// gamma-ReThetat coefficients
	SigmaThetat float64 `json:"sigmaThetat"`
	Ca1         float64 `json:"ca1"`
	Ce1         float64 `json:"ce1"`
	Ca2         float64 `json:"ca2"`
	Ce2         float64 `json:"ce2"`
	CThetat     float64 `json:"cThetat"`
	Sigmaf      float64 `json:"sigmaf"`
	S1          float64 `json:"s1"`
	DUds        bool    `json:"dUds"` // Streamwise pressure gradient influence on ReThetat
	// k-omega-SST coefficients
	AlphaK1     float64 `json:"alphaK1"`
	AlphaK2     float64 `json:"alphaK2"`
	AlphaOmega1 float64 `json:"alphaOmega1"`
	AlphaOmega2 float64 `json:"alphaOmega2"`
	Gamma1      float64 `json:"gamma1"`
	Gamma2      float64 `json:"gamma2"`
	Beta1       float64 `json:"beta1"`
	Beta2       float64 `json:"beta2"`
	BetaStar    float64 `json:"betaStar"`
	A1          float64 `json:"a1"`
	C1          float64 `json:"c1"`
	// Controlled decay of freestream turbulence, off when both are zero
	KInf     float64 `json:"kInf"`
	OmegaInf float64 `json:"omegaInf"`
	// Equilibrium ReThetat iteration
	Tolerance     float64 `json:"tolerance"`
	MaxIterations int     `json:"maxIterations"`
	// Ceiling of the separation induced intermittency
	GammaSepMax float64 `json:"gammaSepMax"`
	// Field floors
	KMin             float64 `json:"kMin"`
	OmegaMin         float64 `json:"omegaMin"`
	ReThetatTildaMin float64 `json:"ReThetatTildaMin"`
}

func NewTransitionCoefficients() (tc *TransitionCoefficients) {
	tc = &TransitionCoefficients{
		Correlation:      "Menter2009",
		SigmaThetat:      2,
		Ca1:              2,
		Ce1:              1,
		Ca2:              0.06,
		Ce2:              50,
		CThetat:          0.03,
		Sigmaf:           1,
		S1:               2,
		DUds:             false,
		AlphaK1:          0.85034,
		AlphaK2:          1,
		AlphaOmega1:      0.5,
		AlphaOmega2:      0.85616,
		Gamma1:           0.5532,
		Gamma2:           0.4403,
		Beta1:            0.075,
		Beta2:            0.0828,
		BetaStar:         0.09,
		A1:               0.31,
		C1:               10,
		Tolerance:        1.0e-4,
		MaxIterations:    100,
		GammaSepMax:      2,
		KMin:             1.0e-15,
		OmegaMin:         1.0e-15,
		ReThetatTildaMin: 20,
	}
	return
}

// ParseTransitionCoefficients reads a YAML dictionary over the defaults
func ParseTransitionCoefficients(data []byte) (tc *TransitionCoefficients, err error) {
	tc = NewTransitionCoefficients()
	if err = tc.Parse(data); err != nil {
		return nil, err
	}
	return
}

func (tc *TransitionCoefficients) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, tc); err != nil {
		return &types.ConfigurationError{Key: "gammaReThetatSSTCoeffs", Reason: err.Error()}
	}
	return tc.Validate()
}

type namedFloat struct {
	Name  string
	Value *float64
}

// floatKeys lists every real valued key of the dictionary by its input name
func (tc *TransitionCoefficients) floatKeys() []namedFloat {
	return []namedFloat{
		{"sigmaThetat", &tc.SigmaThetat},
		{"ca1", &tc.Ca1},
		{"ce1", &tc.Ce1},
		{"ca2", &tc.Ca2},
		{"ce2", &tc.Ce2},
		{"cThetat", &tc.CThetat},
		{"sigmaf", &tc.Sigmaf},
		{"s1", &tc.S1},
		{"alphaK1", &tc.AlphaK1},
		{"alphaK2", &tc.AlphaK2},
		{"alphaOmega1", &tc.AlphaOmega1},
		{"alphaOmega2", &tc.AlphaOmega2},
		{"gamma1", &tc.Gamma1},
		{"gamma2", &tc.Gamma2},
		{"beta1", &tc.Beta1},
		{"beta2", &tc.Beta2},
		{"betaStar", &tc.BetaStar},
		{"a1", &tc.A1},
		{"c1", &tc.C1},
		{"kInf", &tc.KInf},
		{"omegaInf", &tc.OmegaInf},
		{"tolerance", &tc.Tolerance},
		{"gammaSepMax", &tc.GammaSepMax},
		{"kMin", &tc.KMin},
		{"omegaMin", &tc.OmegaMin},
		{"ReThetatTildaMin", &tc.ReThetatTildaMin},
	}
}

// Validate checks the values that must be strictly positive for the model
// functions to be defined. The correlation name is validated by the model.
func (tc *TransitionCoefficients) Validate() (err error) {
	var (
		positive = map[string]float64{
			"sigmaThetat": tc.SigmaThetat,
			"sigmaf":      tc.Sigmaf,
			"ce2":         tc.Ce2,
			"cThetat":     tc.CThetat,
			"betaStar":    tc.BetaStar,
			"beta1":       tc.Beta1,
			"beta2":       tc.Beta2,
			"a1":          tc.A1,
			"c1":          tc.C1,
			"tolerance":   tc.Tolerance,
			"gammaSepMax": tc.GammaSepMax,
			"kMin":        tc.KMin,
			"omegaMin":    tc.OmegaMin,
		}
		keys = make([]string, 0, len(positive))
	)
	for key := range positive {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !(positive[key] > 0) {
			return &types.ConfigurationError{Key: key,
				Value:  fmt.Sprintf("%g", positive[key]),
				Reason: "must be positive"}
		}
	}
	if tc.Ce2 <= 1 {
		return &types.ConfigurationError{Key: "ce2",
			Value: fmt.Sprintf("%g", tc.Ce2), Reason: "must be greater than one"}
	}
	if tc.MaxIterations < 1 {
		return &types.ConfigurationError{Key: "maxIterations",
			Value: fmt.Sprintf("%d", tc.MaxIterations), Reason: "must be at least one"}
	}
	if tc.KInf < 0 || tc.OmegaInf < 0 {
		return &types.ConfigurationError{Key: "kInf/omegaInf",
			Value: fmt.Sprintf("%g/%g", tc.KInf, tc.OmegaInf), Reason: "must not be negative"}
	}
	if len(tc.Correlation) == 0 {
		return &types.ConfigurationError{Key: "correlation", Reason: "must be set"}
	}
	return
}

func (tc *TransitionCoefficients) Print() {
	fmt.Printf("[%s]\t\t= Correlation\n", tc.Correlation)
	fmt.Printf("[%v]\t\t\t= dUds\n", tc.DUds)
	for _, nf := range tc.floatKeys() {
		fmt.Printf("%12.5g\t\t= %s\n", *nf.Value, nf.Name)
	}
	fmt.Printf("[%d]\t\t\t= maxIterations\n", tc.MaxIterations)
}
