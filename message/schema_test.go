package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/simcesplatform/domain-messages/errors"
)

// TestBaseAttributes_Order tests the shared attribute set and its wire order
func TestBaseAttributes_Order(t *testing.T) {
	attrs := BaseAttributes()

	names := make([]string, len(attrs))
	for i, attr := range attrs {
		names[i] = attr.Name
	}
	assert.Equal(t, []string{
		FieldMessageID,
		FieldTimestamp,
		FieldEpochNumber,
		FieldSimulationID,
		FieldSourceProcessID,
		FieldLastUpdatedInEpoch,
		FieldTriggeringMessageIDs,
		FieldWarnings,
	}, names)

	// Callers get a fresh copy each time.
	attrs[0].Name = "Mutated"
	assert.Equal(t, FieldMessageID, BaseAttributes()[0].Name)
}

// TestNewSchema_Validation tests rejection of malformed declarations
func TestNewSchema_Validation(t *testing.T) {
	typ := Type{Name: "Test", Version: "1.0"}

	tests := []struct {
		name    string
		typ     Type
		domain  []Attribute
		wantErr string
	}{
		{
			name:    "incomplete type",
			typ:     Type{Name: "Test"},
			wantErr: "incomplete",
		},
		{
			name:    "unnamed attribute",
			typ:     typ,
			domain:  []Attribute{{Kind: KindString}},
			wantErr: "unnamed",
		},
		{
			name: "duplicate attribute",
			typ:  typ,
			domain: []Attribute{
				{Name: "Bus", Kind: KindString},
				{Name: "Bus", Kind: KindString},
			},
			wantErr: "twice",
		},
		{
			name:    "collision with base attribute",
			typ:     typ,
			domain:  []Attribute{{Name: FieldMessageID, Kind: KindString}},
			wantErr: "twice",
		},
		{
			name:    "enum without values",
			typ:     typ,
			domain:  []Attribute{{Name: "Direction", Kind: KindEnum}},
			wantErr: "no allowed values",
		},
		{
			name:    "enum values on numeric kind",
			typ:     typ,
			domain:  []Attribute{{Name: "Power", Kind: KindReal, Enum: []string{"a"}}},
			wantErr: "declares allowed values",
		},
		{
			name:    "bounds on string kind",
			typ:     typ,
			domain:  []Attribute{{Name: "Bus", Kind: KindString, Min: Float64Ptr(0)}},
			wantErr: "declares bounds",
		},
		{
			name:    "inverted bounds",
			typ:     typ,
			domain:  []Attribute{{Name: "Power", Kind: KindReal, Min: Float64Ptr(10), Max: Float64Ptr(5)}},
			wantErr: "above max",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSchema(tt.typ, "test schema", tt.domain)
			require.Error(t, err)
			assert.ErrorIs(t, err, pkgerrors.ErrInvalidSchema)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

// TestSchema_Accessors tests type, description and attribute lookups
func TestSchema_Accessors(t *testing.T) {
	typ := Type{Name: "Test", Version: "1.0"}
	schema, err := NewSchema(typ, "a message type for tests", []Attribute{
		{Name: "Level", Kind: KindReal, Required: true},
	})
	require.NoError(t, err)

	assert.Equal(t, typ, schema.Type())
	assert.Equal(t, "a message type for tests", schema.Description())
	assert.Len(t, schema.Attributes(), len(BaseAttributes())+1)

	attr, ok := schema.Attribute("Level")
	require.True(t, ok)
	assert.Equal(t, KindReal, attr.Kind)
	assert.True(t, attr.Required)

	_, ok = schema.Attribute("Missing")
	assert.False(t, ok)

	assert.True(t, schema.Declares(FieldMessageID))
	assert.True(t, schema.Declares("Level"))
	assert.False(t, schema.Declares("Missing"))

	// Attributes returns a copy, not the schema's own slice.
	attrs := schema.Attributes()
	attrs[0].Name = "Mutated"
	assert.Equal(t, FieldMessageID, schema.Attributes()[0].Name)
}

// TestSchema_FromValues_BaseFieldsFirst tests that base attributes validate
// before domain attributes
func TestSchema_FromValues_BaseFieldsFirst(t *testing.T) {
	// MessageId is missing and RealPower is junk. The base field is declared
	// first, so it is the one reported.
	_, err := ResourceStateSchema().FromValues(map[string]any{
		FieldTimestamp:   "2023-01-01T00:00:00Z",
		FieldEpochNumber: 1,
		FieldBus:         "B1",
		FieldRealPower:   "junk",
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, FieldMessageID, verr.Field)
	assert.Equal(t, CodeRequired, verr.Code)
}

// TestSchema_FromValues_FailFast tests that the first violation in
// declaration order wins, deterministically
func TestSchema_FromValues_FailFast(t *testing.T) {
	// Bus is missing and StateOfCharge is out of range. Bus is declared
	// first among the domain attributes, so every run reports Bus.
	values := map[string]any{
		FieldMessageID:     "storage-1-1",
		FieldTimestamp:     "2023-01-01T00:00:00Z",
		FieldEpochNumber:   1,
		FieldRealPower:     10.0,
		FieldReactivePower: 0.0,
		FieldStateOfCharge: 150.0,
	}

	for i := 0; i < 20; i++ {
		_, err := ResourceStateSchema().FromValues(values)
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, FieldBus, verr.Field)
	}
}

// TestSchema_FromValues_IgnoresUndeclared tests that unknown keys are skipped
func TestSchema_FromValues_IgnoresUndeclared(t *testing.T) {
	msg, err := ResourceStateSchema().FromValues(map[string]any{
		FieldMessageID:     "storage-1-1",
		FieldTimestamp:     "2023-01-01T00:00:00Z",
		FieldEpochNumber:   1,
		FieldBus:           "B1",
		FieldRealPower:     10.0,
		FieldReactivePower: 0.0,
		"Mystery":          "ignored",
	})
	require.NoError(t, err)

	_, ok := msg.Value("Mystery")
	assert.False(t, ok)
}

// TestSchema_FromValues_OptionalAbsent tests that absent optionals stay absent
func TestSchema_FromValues_OptionalAbsent(t *testing.T) {
	msg, err := ResourceStateSchema().FromValues(map[string]any{
		FieldMessageID:     "storage-1-1",
		FieldTimestamp:     "2023-01-01T00:00:00Z",
		FieldEpochNumber:   1,
		FieldBus:           "B1",
		FieldRealPower:     10.0,
		FieldReactivePower: 0.0,
	})
	require.NoError(t, err)

	_, ok := msg.SimulationID()
	assert.False(t, ok)
	_, ok = msg.Value(FieldStateOfCharge)
	assert.False(t, ok)
	assert.Nil(t, msg.TriggeringMessageIDs())
	assert.Nil(t, msg.Warnings())
}

// TestSchema_FromValues_AllOrNothing tests that no partial message escapes a
// failed construction
func TestSchema_FromValues_AllOrNothing(t *testing.T) {
	msg, err := ResourceStateSchema().FromValues(map[string]any{
		FieldMessageID:     "storage-1-1",
		FieldTimestamp:     "2023-01-01T00:00:00Z",
		FieldEpochNumber:   1,
		FieldBus:           "B1",
		FieldRealPower:     10.0,
		FieldReactivePower: "broken",
	})
	assert.Error(t, err)
	assert.Nil(t, msg)
}
