package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypes(t *testing.T) {
	{
		tokens := []string{"WALL", "inlet-1", "Outflow-2", "Wall-22", "top", "Slip-10", "bogus"}
		flags := []BCFLAG{BC_Wall, BC_In, BC_Out, BC_Wall, BC_Far, BC_Slip, BC_None}
		for i, token := range tokens {
			bf := NewBCFLAG(token)
			assert.Equal(t, flags[i], bf, token)
		}
		assert.Equal(t, "Wall", BC_Wall.String())
	}
	{
		assert.True(t, Gamma.IsTransported())
		assert.True(t, Omega.IsTransported())
		assert.False(t, Nut.IsTransported())
		assert.Equal(t, []FieldName{Gamma, ReThetatTilda, K, Omega}, TransportedFields)
	}
	{
		base := fmt.Errorf("bicgstab stalled")
		var err error = &SolveError{Field: K, Err: base}
		assert.True(t, errors.Is(err, base))
		var se *SolveError
		assert.True(t, errors.As(err, &se))
		assert.Equal(t, K, se.Field)

		ce := &ConfigurationError{Key: "correlation", Value: "Foo", Reason: "unknown"}
		assert.Contains(t, ce.Error(), "Foo")
	}
}
