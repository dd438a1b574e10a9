package message

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// ResultMessage is a validated, immutable message instance. It pairs a
// schema with the normalized values that passed the schema's attribute
// checks, so a ResultMessage in hand is proof the document was valid.
//
// ResultMessage is immutable after construction. All fields are set by the
// validated construction path and cannot be modified; With produces an
// updated copy through the same path instead of mutating in place.
//
// Construction:
//
//	msg, err := message.ResourceStateSchema().FromValues(map[string]any{
//	    "MessageId":   "storage-1-47",
//	    "Timestamp":   "2023-01-01T00:00:00Z",
//	    "EpochNumber": 4,
//	    "Bus":         "B1",
//	    "RealPower":   12.5,
//	})
//
// Normalized values use a fixed set of Go types: int64, float64, bool,
// string and []string. Typed accessors return the second result false when
// an optional field is absent.
type ResultMessage struct {
	schema *Schema
	values map[string]any
}

// Type returns the message type of the schema this instance was built from.
func (m *ResultMessage) Type() Type {
	return m.schema.typ
}

// Schema returns the schema this instance was validated against.
func (m *ResultMessage) Schema() *Schema {
	return m.schema
}

// MessageID returns the producer-assigned message identifier.
func (m *ResultMessage) MessageID() string {
	v, _ := m.StringValue(FieldMessageID)
	return v
}

// Timestamp returns the creation time as the ISO 8601 string the message
// was constructed with.
func (m *ResultMessage) Timestamp() string {
	v, _ := m.StringValue(FieldTimestamp)
	return v
}

// EpochNumber returns the simulation epoch this message belongs to.
func (m *ResultMessage) EpochNumber() int64 {
	v, _ := m.Int64Value(FieldEpochNumber)
	return v
}

// SimulationID returns the simulation run identifier, if set.
func (m *ResultMessage) SimulationID() (string, bool) {
	return m.StringValue(FieldSimulationID)
}

// SourceProcessID returns the producing component's identifier, if set.
func (m *ResultMessage) SourceProcessID() (string, bool) {
	return m.StringValue(FieldSourceProcessID)
}

// LastUpdatedInEpoch returns the epoch of the last state change, if set.
func (m *ResultMessage) LastUpdatedInEpoch() (int64, bool) {
	return m.Int64Value(FieldLastUpdatedInEpoch)
}

// TriggeringMessageIDs returns the provenance chain, or nil when the field
// is absent. The returned slice is a fresh copy.
func (m *ResultMessage) TriggeringMessageIDs() []string {
	v, ok := m.StringListValue(FieldTriggeringMessageIDs)
	if !ok {
		return nil
	}
	return v
}

// Warnings returns the producer's warning tags, or nil when the field is
// absent. The returned slice is a fresh copy.
func (m *ResultMessage) Warnings() []string {
	v, ok := m.StringListValue(FieldWarnings)
	if !ok {
		return nil
	}
	return v
}

// Value returns the normalized value of a field, or false when the field
// is absent or undeclared. List values are returned as fresh copies.
func (m *ResultMessage) Value(name string) (any, bool) {
	v, ok := m.values[name]
	if !ok {
		return nil, false
	}
	if list, isList := v.([]string); isList {
		return copyStrings(list), true
	}
	return v, true
}

// StringValue returns a string field's normalized value.
func (m *ResultMessage) StringValue(name string) (string, bool) {
	v, ok := m.values[name].(string)
	return v, ok
}

// Int64Value returns an integer field's normalized value.
func (m *ResultMessage) Int64Value(name string) (int64, bool) {
	v, ok := m.values[name].(int64)
	return v, ok
}

// Float64Value returns a real field's normalized value.
func (m *ResultMessage) Float64Value(name string) (float64, bool) {
	v, ok := m.values[name].(float64)
	return v, ok
}

// BoolValue returns a boolean field's normalized value.
func (m *ResultMessage) BoolValue(name string) (bool, bool) {
	v, ok := m.values[name].(bool)
	return v, ok
}

// StringListValue returns a list field's normalized value as a fresh copy.
func (m *ResultMessage) StringListValue(name string) ([]string, bool) {
	v, ok := m.values[name].([]string)
	if !ok {
		return nil, false
	}
	return copyStrings(v), true
}

// Document returns the flat interchange form of the message: field name to
// primitive value, absent optionals omitted, lists comma-joined so the
// document stays flat. The returned map is a fresh copy each call.
func (m *ResultMessage) Document() Document {
	doc := make(Document, len(m.values))
	for _, attr := range m.schema.attrs {
		v, ok := m.values[attr.Name]
		if !ok {
			continue
		}
		doc[attr.Name] = wireValue(v)
	}
	return doc
}

// MarshalJSON serializes the message as its interchange document with keys
// in declaration order, base fields first. Ordering is stable so encoded
// output can be compared byte for byte.
func (m *ResultMessage) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, attr := range m.schema.attrs {
		v, ok := m.values[attr.Name]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, err := json.Marshal(attr.Name)
		if err != nil {
			return nil, fmt.Errorf("marshal field name %q: %w", attr.Name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := json.Marshal(wireValue(v))
		if err != nil {
			return nil, fmt.Errorf("marshal field %q: %w", attr.Name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Equal reports value equality: same message type and every declared field
// carrying an equal normalized value. Instances differing only in schema
// description or identity are equal.
func (m *ResultMessage) Equal(other *ResultMessage) bool {
	if m == nil || other == nil {
		return m == other
	}
	if !m.schema.typ.Equal(other.schema.typ) {
		return false
	}
	if len(m.values) != len(other.values) {
		return false
	}
	for name, v := range m.values {
		ov, ok := other.values[name]
		if !ok || !normalizedEqual(v, ov) {
			return false
		}
	}
	return true
}

// With produces a new instance with the given fields replaced, running the
// full validated construction path again. The receiver is not modified.
// Setting a field to nil removes it; removing a required field fails.
func (m *ResultMessage) With(updates map[string]any) (*ResultMessage, error) {
	merged := make(map[string]any, len(m.values)+len(updates))
	for name, v := range m.values {
		merged[name] = v
	}
	for name, v := range updates {
		if v == nil {
			delete(merged, name)
			continue
		}
		merged[name] = v
	}
	return m.schema.FromValues(merged)
}

// String returns a short description for logging.
func (m *ResultMessage) String() string {
	return fmt.Sprintf("%s#%s@epoch%d", m.schema.typ.Name, m.MessageID(), m.EpochNumber())
}

// wireValue maps a normalized value to its interchange representation.
// Lists travel comma-joined; everything else is already primitive.
func wireValue(v any) any {
	if list, ok := v.([]string); ok {
		return strings.Join(list, ",")
	}
	return v
}

func normalizedEqual(a, b any) bool {
	la, aIsList := a.([]string)
	lb, bIsList := b.([]string)
	if aIsList || bIsList {
		if !aIsList || !bIsList || len(la) != len(lb) {
			return false
		}
		for i := range la {
			if la[i] != lb[i] {
				return false
			}
		}
		return true
	}
	return a == b
}

func copyStrings(src []string) []string {
	dst := make([]string, len(src))
	copy(dst, src)
	return dst
}
