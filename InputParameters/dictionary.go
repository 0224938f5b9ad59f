package InputParameters

import (
	"bytes"
	"fmt"

	"gopkg.in/ini.v1"

	"github.com/notargets/gotransition/types"
)

const CoeffsSection = "gammaReThetatSSTCoeffs"

// LoadDictionary reads the coefficients from the [gammaReThetatSSTCoeffs]
// section of an INI style dictionary. source is a file name or a []byte.
// Missing keys fall back to the defaults, malformed ones are an error.
func LoadDictionary(source interface{}) (tc *TransitionCoefficients, err error) {
	var (
		file *ini.File
	)
	if file, err = ini.Load(source); err != nil {
		return nil, &types.ConfigurationError{Key: CoeffsSection, Reason: err.Error()}
	}
	tc = NewTransitionCoefficients()
	if err = tc.loadSection(file.Section(CoeffsSection)); err != nil {
		return nil, err
	}
	if err = tc.Validate(); err != nil {
		return nil, err
	}
	return
}

func (tc *TransitionCoefficients) loadSection(sec *ini.Section) (err error) {
	for _, nf := range tc.floatKeys() {
		if !sec.HasKey(nf.Name) {
			continue
		}
		key := sec.Key(nf.Name)
		if *nf.Value, err = key.Float64(); err != nil {
			return &types.ConfigurationError{Key: nf.Name, Value: key.String(),
				Reason: "not a number"}
		}
	}
	if sec.HasKey("dUds") {
		key := sec.Key("dUds")
		if tc.DUds, err = key.Bool(); err != nil {
			return &types.ConfigurationError{Key: "dUds", Value: key.String(),
				Reason: "not a switch (on/off, yes/no, true/false)"}
		}
	}
	if sec.HasKey("maxIterations") {
		key := sec.Key("maxIterations")
		if tc.MaxIterations, err = key.Int(); err != nil {
			return &types.ConfigurationError{Key: "maxIterations", Value: key.String(),
				Reason: "not an integer"}
		}
	}
	tc.Correlation = sec.Key("correlation").MustString(tc.Correlation)
	return
}

// WriteDictionary renders the coefficients in the form read by LoadDictionary
func (tc *TransitionCoefficients) WriteDictionary() (data []byte) {
	var (
		file = ini.Empty()
		sec  = file.Section(CoeffsSection)
	)
	sec.Key("correlation").SetValue(tc.Correlation)
	sec.Key("dUds").SetValue(fmt.Sprintf("%v", tc.DUds))
	for _, nf := range tc.floatKeys() {
		sec.Key(nf.Name).SetValue(fmt.Sprintf("%g", *nf.Value))
	}
	sec.Key("maxIterations").SetValue(fmt.Sprintf("%d", tc.MaxIterations))
	var buf bytes.Buffer
	if _, err := file.WriteTo(&buf); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
