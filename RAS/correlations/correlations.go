// Package correlations holds the empirical transition correlations of the
// gamma-ReThetat model. A Correlation is selected once from its name and then
// evaluated per cell; evaluation never re-validates the selection.
//
// All functions take the turbulence intensity Tu in percent.
package correlations

import (
	"fmt"
	"sort"
	"strings"

	"github.com/notargets/gotransition/types"
)

type Correlation uint8

const (
	Menter2009   Correlation = iota // Langtry & Menter (2009), AIAA J. 47(12)
	Suluksna2009                    // Suluksna, Dechaumphai & Juntasaro (2009), IJHFF 30
	Malan2009                       // Malan, Suluksna & Juntasaro (2009), AIAA 2009-1142
	Sorensen2009                    // Sorensen (2009), Wind Energy 12
	Tomac2013                       // Tomac, Petterson & Rizzi (2013), AIAA 2013-0532
)

var CorrelationNameMap = map[string]Correlation{
	"Menter2009":   Menter2009,
	"Suluksna2009": Suluksna2009,
	"Malan2009":    Malan2009,
	"Sorensen2009": Sorensen2009,
	"Tomac2013":    Tomac2013,
}

// AllCorrelations in declaration order
var AllCorrelations = []Correlation{Menter2009, Suluksna2009, Malan2009, Sorensen2009, Tomac2013}

func NewCorrelation(name string) (c Correlation, err error) {
	var (
		ok bool
	)
	if c, ok = CorrelationNameMap[strings.TrimSpace(name)]; !ok {
		err = &types.ConfigurationError{
			Key:    "correlation",
			Value:  name,
			Reason: fmt.Sprintf("unknown correlation, valid names are %s", Names()),
		}
	}
	return
}

// Names returns the valid correlation names, sorted
func Names() string {
	var (
		names = make([]string, 0, len(CorrelationNameMap))
	)
	for name := range CorrelationNameMap {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func (c Correlation) String() string {
	switch c {
	case Menter2009:
		return "Menter2009"
	case Suluksna2009:
		return "Suluksna2009"
	case Malan2009:
		return "Malan2009"
	case Sorensen2009:
		return "Sorensen2009"
	case Tomac2013:
		return "Tomac2013"
	}
	return fmt.Sprintf("Correlation(%d)", uint8(c))
}

// Evaluate maps the local turbulence intensity and pressure gradient
// parameter to the critical momentum thickness Reynolds number and the
// transition length multiplier, through the equilibrium onset Reynolds number
func (c Correlation) Evaluate(Tu, lambda float64) (ReThetac, Flength float64) {
	var (
		R = c.ReThetat(Tu, lambda, 0)
	)
	ReThetac, Flength = c.ReThetac(R), c.Flength(R)
	return
}
