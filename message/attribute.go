package message

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/simcesplatform/domain-messages/pkg/timestamp"
)

// Kind is the semantic type an attribute declares for its values.
type Kind int

const (
	// KindInteger normalizes to int64. Integral floats and integral
	// numeric strings are accepted.
	KindInteger Kind = iota
	// KindReal normalizes to float64. Numeric strings are accepted.
	KindReal
	// KindBoolean normalizes to bool.
	KindBoolean
	// KindString normalizes to string.
	KindString
	// KindEnum normalizes to string and must be a member of the
	// declared allowed set.
	KindEnum
	// KindTimestamp normalizes to a canonical ISO 8601 string. Validated
	// wire strings are preserved verbatim.
	KindTimestamp
	// KindStringList normalizes to []string. On the flat wire the list
	// travels as a comma-joined string.
	KindStringList
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindBoolean:
		return "boolean"
	case KindString:
		return "string"
	case KindEnum:
		return "enum"
	case KindTimestamp:
		return "timestamp"
	case KindStringList:
		return "string-list"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether values of this kind take range bounds.
func (k Kind) IsNumeric() bool {
	return k == KindInteger || k == KindReal
}

// Attribute declares the validation rule for a single message field: its
// semantic kind, optional inclusive numeric bounds, optional unit tag,
// optional enum set, and the required/optional flag. Attributes are
// stateless and read-only after declaration; Validate never mutates input,
// it only accepts (returning a normalized value) or rejects.
type Attribute struct {
	// Name is the wire-level field name, e.g. "StateOfCharge".
	Name string

	// Kind is the declared semantic type.
	Kind Kind

	// Required marks the field mandatory. A required StringList must
	// also be non-empty.
	Required bool

	// NonEmpty rejects blank strings and blank list elements.
	NonEmpty bool

	// Unit is the unit of measure tag (kW, kVAr, Minute, EUR, percent).
	// Units are schema metadata; wire values stay bare numbers.
	Unit string

	// Min and Max are inclusive bounds for numeric kinds.
	Min *float64
	Max *float64

	// Enum is the allowed value set for KindEnum, or the allowed element
	// vocabulary for KindStringList.
	Enum []string

	// Description documents the field for schema export.
	Description string
}

// Validate checks a raw value against the declaration and returns the
// normalized value. A nil raw value means the field was absent: required
// fields fail, optional fields return nil and are omitted downstream.
// Checks run in order: required, type coercion, enum membership, bounds.
func (a Attribute) Validate(raw any) (any, *ValidationError) {
	if raw == nil {
		if a.Required {
			return nil, newValidationError(a.Name, CodeRequired, "field %q is required", a.Name)
		}
		return nil, nil
	}

	switch a.Kind {
	case KindInteger:
		return a.validateInteger(raw)
	case KindReal:
		return a.validateReal(raw)
	case KindBoolean:
		return a.validateBoolean(raw)
	case KindString:
		return a.validateString(raw)
	case KindEnum:
		return a.validateEnum(raw)
	case KindTimestamp:
		return a.validateTimestamp(raw)
	case KindStringList:
		return a.validateStringList(raw)
	default:
		return nil, newValidationError(a.Name, CodeType, "field %q has unsupported kind", a.Name)
	}
}

func (a Attribute) validateInteger(raw any) (any, *ValidationError) {
	v, ok := coerceInt64(raw)
	if !ok {
		return nil, newValidationError(a.Name, CodeType, "field %q must be an integer, got %v", a.Name, raw)
	}
	if err := a.checkBounds(float64(v)); err != nil {
		return nil, err
	}
	return v, nil
}

func (a Attribute) validateReal(raw any) (any, *ValidationError) {
	v, ok := coerceFloat64(raw)
	if !ok {
		return nil, newValidationError(a.Name, CodeType, "field %q must be a number, got %v", a.Name, raw)
	}
	if err := a.checkBounds(v); err != nil {
		return nil, err
	}
	return v, nil
}

func (a Attribute) validateBoolean(raw any) (any, *ValidationError) {
	v, ok := raw.(bool)
	if !ok {
		return nil, newValidationError(a.Name, CodeType, "field %q must be a boolean, got %v", a.Name, raw)
	}
	return v, nil
}

func (a Attribute) validateString(raw any) (any, *ValidationError) {
	v, ok := raw.(string)
	if !ok {
		return nil, newValidationError(a.Name, CodeType, "field %q must be a string, got %v", a.Name, raw)
	}
	if a.NonEmpty && v == "" {
		return nil, newValidationError(a.Name, CodeType, "field %q must be a non-empty string", a.Name)
	}
	return v, nil
}

func (a Attribute) validateEnum(raw any) (any, *ValidationError) {
	v, ok := raw.(string)
	if !ok {
		return nil, newValidationError(a.Name, CodeType, "field %q must be a string, got %v", a.Name, raw)
	}
	if !a.inEnum(v) {
		return nil, newValidationError(a.Name, CodeEnum, "field %q must be one of %v, got %q", a.Name, a.Enum, v)
	}
	return v, nil
}

func (a Attribute) validateTimestamp(raw any) (any, *ValidationError) {
	switch v := raw.(type) {
	case string:
		if err := timestamp.Validate(v); err != nil {
			return nil, newValidationError(a.Name, CodeType, "field %q must be an ISO 8601 timestamp: %v", a.Name, err)
		}
		// Validated wire strings pass through verbatim.
		return v, nil
	case time.Time:
		if v.IsZero() {
			return nil, newValidationError(a.Name, CodeType, "field %q must not be the zero time", a.Name)
		}
		return timestamp.Format(v), nil
	default:
		return nil, newValidationError(a.Name, CodeType, "field %q must be an ISO 8601 timestamp, got %v", a.Name, raw)
	}
}

func (a Attribute) validateStringList(raw any) (any, *ValidationError) {
	var elems []string
	switch v := raw.(type) {
	case []string:
		elems = append(elems, v...)
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, newValidationError(a.Name, CodeType, "field %q elements must be strings, got %v", a.Name, item)
			}
			elems = append(elems, s)
		}
	case string:
		// Flat wire form: comma-joined. Identifiers in the platform
		// never contain commas.
		if v != "" {
			elems = strings.Split(v, ",")
		}
	default:
		return nil, newValidationError(a.Name, CodeType, "field %q must be a list of strings, got %v", a.Name, raw)
	}

	if len(elems) == 0 {
		if a.Required {
			return nil, newValidationError(a.Name, CodeRequired, "field %q requires at least one element", a.Name)
		}
		// An empty optional list normalizes to absent. On the flat wire
		// "" and a missing key mean the same thing.
		return nil, nil
	}
	for _, elem := range elems {
		if a.NonEmpty && elem == "" {
			return nil, newValidationError(a.Name, CodeType, "field %q elements must be non-empty strings", a.Name)
		}
		if len(a.Enum) > 0 && !a.inEnum(elem) {
			return nil, newValidationError(a.Name, CodeEnum, "field %q elements must be one of %v, got %q", a.Name, a.Enum, elem)
		}
	}
	return elems, nil
}

func (a Attribute) checkBounds(v float64) *ValidationError {
	if a.Min != nil && v < *a.Min {
		return newValidationError(a.Name, CodeMin, "field %q must be >= %v, got %v", a.Name, *a.Min, v)
	}
	if a.Max != nil && v > *a.Max {
		return newValidationError(a.Name, CodeMax, "field %q must be <= %v, got %v", a.Name, *a.Max, v)
	}
	return nil
}

func (a Attribute) inEnum(v string) bool {
	for _, allowed := range a.Enum {
		if v == allowed {
			return true
		}
	}
	return false
}

// coerceInt64 converts raw to int64 without precision loss. Floats and
// numeric strings are accepted only when integral: 12.0 coerces, 12.5
// does not.
func coerceInt64(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case float32:
		return floatToInt64(float64(v))
	case float64:
		return floatToInt64(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, true
		}
		if f, err := v.Float64(); err == nil {
			return floatToInt64(f)
		}
		return 0, false
	case string:
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i, true
		}
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return floatToInt64(f)
		}
		return 0, false
	default:
		return 0, false
	}
}

func floatToInt64(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}

// coerceFloat64 converts raw to float64. NaN and infinities are rejected;
// they have no interchange representation.
func coerceFloat64(raw any) (float64, bool) {
	var f float64
	switch v := raw.(type) {
	case float32:
		f = float64(v)
	case float64:
		f = v
	case int:
		f = float64(v)
	case int8:
		f = float64(v)
	case int16:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint:
		f = float64(v)
	case uint8:
		f = float64(v)
	case uint16:
		f = float64(v)
	case uint32:
		f = float64(v)
	case uint64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Float64Ptr returns a pointer to v for use in attribute bound declarations.
func Float64Ptr(v float64) *float64 {
	return &v
}
