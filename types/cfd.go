package types

import "strings"

type BCFLAG uint8

const (
	BC_None BCFLAG = iota
	BC_In
	BC_Out
	BC_Wall
	BC_Far
	BC_Slip
)

var BCNameMap = map[string]BCFLAG{
	"inflow":  BC_In,
	"in":      BC_In,
	"inlet":   BC_In,
	"out":     BC_Out,
	"outflow": BC_Out,
	"outlet":  BC_Out,
	"wall":    BC_Wall,
	"far":     BC_Far,
	"top":     BC_Far,
	"slip":    BC_Slip,
}

func (bf BCFLAG) String() string {
	switch bf {
	case BC_In:
		return "Inflow"
	case BC_Out:
		return "Outflow"
	case BC_Wall:
		return "Wall"
	case BC_Far:
		return "Far"
	case BC_Slip:
		return "Slip"
	}
	return "None"
}

// NewBCFLAG parses a patch label like "Wall" or "inlet-3", ignoring case and
// any trailing "-label"
func NewBCFLAG(token string) (bf BCFLAG) {
	var (
		name = strings.ToLower(strings.TrimSpace(token))
	)
	if i := strings.Index(name, "-"); i > 0 {
		name = name[:i]
	}
	bf = BCNameMap[name]
	return
}
