package types

// FieldName is the name under which a field is exchanged with the host, so
// that boundary conditions and output writers can address it.
type FieldName string

const (
	Gamma             FieldName = "gamma"
	ReThetatTilda     FieldName = "ReThetatTilda"
	K                 FieldName = "k"
	Omega             FieldName = "omega"
	Nut               FieldName = "nut"
	DgammaEff         FieldName = "DgammaEff"
	DReThetatTildaEff FieldName = "DReThetatTildaEff"
	DkEff             FieldName = "DkEff"
	DomegaEff         FieldName = "DomegaEff"
	Epsilon           FieldName = "epsilon"
	Rt                FieldName = "Rt"
	ReThetatEq        FieldName = "ReThetat"
	BlendF1           FieldName = "F1"
	BlendF2           FieldName = "F2"
)

// TransportedFields lists the transported scalars in the order they are
// solved each step
var TransportedFields = []FieldName{Gamma, ReThetatTilda, K, Omega}

func (fn FieldName) String() string { return string(fn) }

func (fn FieldName) IsTransported() bool {
	for _, f := range TransportedFields {
		if f == fn {
			return true
		}
	}
	return false
}
