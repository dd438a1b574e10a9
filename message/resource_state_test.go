package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/simcesplatform/domain-messages/errors"
	"github.com/simcesplatform/domain-messages/registry"
)

// validResourceStateValues returns a minimal valid field map.
func validResourceStateValues() map[string]any {
	return map[string]any{
		FieldMessageID:     "storage-1-1",
		FieldTimestamp:     "2023-01-01T00:00:00Z",
		FieldEpochNumber:   1,
		FieldBus:           "B1",
		FieldRealPower:     10.5,
		FieldReactivePower: 0.5,
	}
}

// TestNewResourceState_Valid tests construction and the typed accessors
func TestNewResourceState_Valid(t *testing.T) {
	msg, err := NewResourceState(validResourceStateValues())
	require.NoError(t, err)

	assert.Equal(t, TypeResourceState, msg.Type())
	assert.Equal(t, "B1", msg.Bus())
	assert.Equal(t, 10.5, msg.RealPower())
	assert.Equal(t, 0.5, msg.ReactivePower())

	_, ok := msg.Node()
	assert.False(t, ok)
	_, ok = msg.StateOfCharge()
	assert.False(t, ok)
}

// TestNewResourceState_Full tests the optional domain fields
func TestNewResourceState_Full(t *testing.T) {
	values := validResourceStateValues()
	values[FieldNode] = "N7"
	values[FieldStateOfCharge] = 87.0

	msg, err := NewResourceState(values)
	require.NoError(t, err)

	node, ok := msg.Node()
	require.True(t, ok)
	assert.Equal(t, "N7", node)

	soc, ok := msg.StateOfCharge()
	require.True(t, ok)
	assert.Equal(t, 87.0, soc)
}

// TestNewResourceState_Validation tests the domain rules
func TestNewResourceState_Validation(t *testing.T) {
	tests := []struct {
		name      string
		tweak     func(map[string]any)
		wantField string
		wantErr   error
	}{
		{
			name:      "missing bus",
			tweak:     func(v map[string]any) { delete(v, FieldBus) },
			wantField: FieldBus,
			wantErr:   pkgerrors.ErrMissingRequiredField,
		},
		{
			name:      "empty bus",
			tweak:     func(v map[string]any) { v[FieldBus] = "" },
			wantField: FieldBus,
			wantErr:   pkgerrors.ErrTypeMismatch,
		},
		{
			name:      "real power not numeric",
			tweak:     func(v map[string]any) { v[FieldRealPower] = "abc" },
			wantField: FieldRealPower,
			wantErr:   pkgerrors.ErrTypeMismatch,
		},
		{
			name:      "missing reactive power",
			tweak:     func(v map[string]any) { delete(v, FieldReactivePower) },
			wantField: FieldReactivePower,
			wantErr:   pkgerrors.ErrMissingRequiredField,
		},
		{
			name:      "state of charge below range",
			tweak:     func(v map[string]any) { v[FieldStateOfCharge] = -0.0001 },
			wantField: FieldStateOfCharge,
			wantErr:   pkgerrors.ErrOutOfRange,
		},
		{
			name:      "state of charge above range",
			tweak:     func(v map[string]any) { v[FieldStateOfCharge] = 100.0001 },
			wantField: FieldStateOfCharge,
			wantErr:   pkgerrors.ErrOutOfRange,
		},
		{
			name:      "empty node",
			tweak:     func(v map[string]any) { v[FieldNode] = "" },
			wantField: FieldNode,
			wantErr:   pkgerrors.ErrTypeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := validResourceStateValues()
			tt.tweak(values)

			msg, err := NewResourceState(values)
			require.Error(t, err)
			assert.Nil(t, msg)
			assert.ErrorIs(t, err, tt.wantErr)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

// TestResourceState_StateOfChargeBoundaries tests the inclusive charge range
func TestResourceState_StateOfChargeBoundaries(t *testing.T) {
	for _, soc := range []float64{0.0, 100.0} {
		values := validResourceStateValues()
		values[FieldStateOfCharge] = soc

		msg, err := NewResourceState(values)
		require.NoError(t, err)
		got, ok := msg.StateOfCharge()
		require.True(t, ok)
		assert.Equal(t, soc, got)
	}
}

// TestResourceState_WireNumbers tests numeric strings from the flat wire
func TestResourceState_WireNumbers(t *testing.T) {
	values := validResourceStateValues()
	values[FieldEpochNumber] = "4"
	values[FieldRealPower] = "12.5"

	msg, err := NewResourceState(values)
	require.NoError(t, err)
	assert.Equal(t, int64(4), msg.EpochNumber())
	assert.Equal(t, 12.5, msg.RealPower())
}

// TestResourceState_PowerSign tests that consumption is a legal operating point
func TestResourceState_PowerSign(t *testing.T) {
	values := validResourceStateValues()
	values[FieldRealPower] = -250.0
	values[FieldReactivePower] = -10.0

	msg, err := NewResourceState(values)
	require.NoError(t, err)
	assert.Equal(t, -250.0, msg.RealPower())
	assert.Equal(t, -10.0, msg.ReactivePower())
}

// TestAsResourceState tests the typed wrapper guard
func TestAsResourceState(t *testing.T) {
	msg, err := ResourceStateSchema().FromValues(validResourceStateValues())
	require.NoError(t, err)

	state, ok := AsResourceState(msg)
	require.True(t, ok)
	assert.Equal(t, "B1", state.Bus())

	request, err := NewRequest(validRequestValues())
	require.NoError(t, err)
	_, ok = AsResourceState(request.ResultMessage)
	assert.False(t, ok)

	_, ok = AsResourceState(nil)
	assert.False(t, ok)
}

// TestResourceState_Registered tests the process-wide registration
func TestResourceState_Registered(t *testing.T) {
	reg, ok := registry.Lookup(TypeResourceState.Name)
	require.True(t, ok)
	assert.Equal(t, TypeResourceState.Version, reg.Version)
	assert.Same(t, ResourceStateSchema(), reg.Schema)

	// The registered example must satisfy its own schema.
	_, err := NewResourceState(reg.Example)
	assert.NoError(t, err)
}
