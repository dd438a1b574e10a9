package message

import (
	"fmt"

	pkgerrors "github.com/simcesplatform/domain-messages/errors"
)

// Wire-level names of the fields every message shares.
const (
	FieldMessageID            = "MessageId"
	FieldTimestamp            = "Timestamp"
	FieldEpochNumber          = "EpochNumber"
	FieldSimulationID         = "SimulationId"
	FieldSourceProcessID      = "SourceProcessId"
	FieldLastUpdatedInEpoch   = "LastUpdatedInEpoch"
	FieldTriggeringMessageIDs = "TriggeringMessageIds"
	FieldWarnings             = "Warnings"
)

// Warning vocabulary for the Warnings field.
const (
	WarningConvergence     = "warning.convergence"
	WarningInput           = "warning.input"
	WarningInputRange      = "warning.input.range"
	WarningInputUnreliable = "warning.input.unreliable"
	WarningInternal        = "warning.internal"
	WarningOther           = "warning.other"
)

// warningTypes lists the allowed Warnings elements.
var warningTypes = []string{
	WarningConvergence,
	WarningInput,
	WarningInputRange,
	WarningInputUnreliable,
	WarningInternal,
	WarningOther,
}

// BaseAttributes returns the shared attribute declarations, in wire order.
// Every schema validates these before its own domain attributes. The
// returned slice is a fresh copy.
func BaseAttributes() []Attribute {
	return []Attribute{
		{
			Name:        FieldMessageID,
			Kind:        KindString,
			Required:    true,
			NonEmpty:    true,
			Description: "Unique identifier for this message, assigned by the producer.",
		},
		{
			Name:        FieldTimestamp,
			Kind:        KindTimestamp,
			Required:    true,
			Description: "Creation time of the message as an ISO 8601 string.",
		},
		{
			Name:        FieldEpochNumber,
			Kind:        KindInteger,
			Required:    true,
			Min:         Float64Ptr(0),
			Description: "Simulation epoch this message belongs to. Epoch 0 is the setup phase.",
		},
		{
			Name:        FieldSimulationID,
			Kind:        KindTimestamp,
			Description: "Identifier of the simulation run, an ISO 8601 start time.",
		},
		{
			Name:        FieldSourceProcessID,
			Kind:        KindString,
			NonEmpty:    true,
			Description: "Identifier of the component that produced the message.",
		},
		{
			Name:        FieldLastUpdatedInEpoch,
			Kind:        KindInteger,
			Min:         Float64Ptr(0),
			Description: "Most recent epoch in which the reported state changed.",
		},
		{
			Name:        FieldTriggeringMessageIDs,
			Kind:        KindStringList,
			NonEmpty:    true,
			Description: "Identifiers of the messages that triggered this one. May be empty.",
		},
		{
			Name:        FieldWarnings,
			Kind:        KindStringList,
			Enum:        warningTypes,
			Description: "Warning tags attached by the producer.",
		},
	}
}

// Schema is the complete validator set for one message type: the shared
// base attributes followed by the type's domain attributes, in declaration
// order. Schemas are read-only after construction and safe for concurrent
// use.
type Schema struct {
	typ         Type
	description string
	attrs       []Attribute
	index       map[string]int
}

// NewSchema builds a schema for typ from the given domain attributes,
// appended after the base set. It rejects duplicate or base-colliding
// names, enum declarations on non-categorical kinds, bounds on non-numeric
// kinds, and inverted bounds.
func NewSchema(typ Type, description string, domain []Attribute) (*Schema, error) {
	if !typ.IsValid() {
		return nil, fmt.Errorf("%w: message type %q is incomplete", pkgerrors.ErrInvalidSchema, typ)
	}

	attrs := append(BaseAttributes(), domain...)
	index := make(map[string]int, len(attrs))
	for i, attr := range attrs {
		if attr.Name == "" {
			return nil, fmt.Errorf("%w: %s declares an unnamed attribute", pkgerrors.ErrInvalidSchema, typ)
		}
		if _, exists := index[attr.Name]; exists {
			return nil, fmt.Errorf("%w: %s declares attribute %q twice", pkgerrors.ErrInvalidSchema, typ, attr.Name)
		}
		if attr.Kind == KindEnum && len(attr.Enum) == 0 {
			return nil, fmt.Errorf("%w: enum attribute %q has no allowed values", pkgerrors.ErrInvalidSchema, attr.Name)
		}
		if len(attr.Enum) > 0 && attr.Kind != KindEnum && attr.Kind != KindStringList {
			return nil, fmt.Errorf("%w: attribute %q declares allowed values but is %s", pkgerrors.ErrInvalidSchema, attr.Name, attr.Kind)
		}
		if (attr.Min != nil || attr.Max != nil) && !attr.Kind.IsNumeric() {
			return nil, fmt.Errorf("%w: attribute %q declares bounds but is %s", pkgerrors.ErrInvalidSchema, attr.Name, attr.Kind)
		}
		if attr.Min != nil && attr.Max != nil && *attr.Min > *attr.Max {
			return nil, fmt.Errorf("%w: attribute %q has min %v above max %v", pkgerrors.ErrInvalidSchema, attr.Name, *attr.Min, *attr.Max)
		}
		index[attr.Name] = i
	}

	return &Schema{
		typ:         typ,
		description: description,
		attrs:       attrs,
		index:       index,
	}, nil
}

// Type returns the message type this schema validates.
func (s *Schema) Type() Type {
	return s.typ
}

// Description returns the human-readable summary of the message type.
func (s *Schema) Description() string {
	return s.description
}

// Attributes returns every attribute declaration in wire order. The
// returned slice is a fresh copy.
func (s *Schema) Attributes() []Attribute {
	attrs := make([]Attribute, len(s.attrs))
	copy(attrs, s.attrs)
	return attrs
}

// Attribute looks up a declaration by wire name.
func (s *Schema) Attribute(name string) (Attribute, bool) {
	i, ok := s.index[name]
	if !ok {
		return Attribute{}, false
	}
	return s.attrs[i], true
}

// Declares reports whether name is a declared field of this schema.
func (s *Schema) Declares(name string) bool {
	_, ok := s.index[name]
	return ok
}

// FromValues validates the raw field map and constructs an immutable
// message. Attributes run in declaration order, base fields first; the
// first failure aborts construction and is returned as a *ValidationError.
// Undeclared keys in values are ignored. Absent optional fields are left
// out of the instance.
func (s *Schema) FromValues(values map[string]any) (*ResultMessage, error) {
	normalized := make(map[string]any, len(s.attrs))
	for _, attr := range s.attrs {
		v, verr := attr.Validate(values[attr.Name])
		if verr != nil {
			return nil, verr
		}
		if v == nil {
			continue
		}
		normalized[attr.Name] = v
	}
	return &ResultMessage{schema: s, values: normalized}, nil
}
