package message

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	pkgerrors "github.com/simcesplatform/domain-messages/errors"
	"github.com/simcesplatform/domain-messages/metric"
	"github.com/simcesplatform/domain-messages/registry"
)

// Document is the flat interchange form of a message: field name to
// primitive value (string, integer, real, boolean or ISO 8601 timestamp
// string). Lists travel comma-joined so the document never nests.
type Document map[string]any

// Codec converts between validated message instances and interchange
// documents. Encoding delegates to the instance's own document form;
// decoding looks the target type up in a schema registry and runs the full
// validated construction path, so a decoded instance carries the same
// guarantees as a locally constructed one.
//
// A Codec is read-only after construction and safe for concurrent use.
type Codec struct {
	registry *registry.Registry
	strict   bool
	metrics  *metric.Metrics
	logger   *slog.Logger
}

// CodecOption configures a Codec.
type CodecOption func(*Codec)

// WithRegistry sets the schema registry used for decode lookups. The
// default is the process-wide registry.
func WithRegistry(r *registry.Registry) CodecOption {
	return func(c *Codec) {
		c.registry = r
	}
}

// WithStrictDecode controls unknown-field handling. In strict mode a
// document key not declared by the target schema fails the decode; by
// default unknown keys are ignored so newer producers stay readable.
func WithStrictDecode(strict bool) CodecOption {
	return func(c *Codec) {
		c.strict = strict
	}
}

// WithMetrics attaches codec and validation metrics.
func WithMetrics(m *metric.Metrics) CodecOption {
	return func(c *Codec) {
		c.metrics = m
	}
}

// WithLogger sets the logger. The default logs through slog.Default.
func WithLogger(logger *slog.Logger) CodecOption {
	return func(c *Codec) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCodec creates a Codec with the given options.
func NewCodec(opts ...CodecOption) *Codec {
	c := &Codec{
		registry: registry.Default(),
		logger:   slog.Default().With("component", "codec"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Strict reports whether unknown document keys fail the decode.
func (c *Codec) Strict() bool {
	return c.strict
}

// Encode converts a validated message into its interchange document.
func (c *Codec) Encode(msg *ResultMessage) (Document, error) {
	if msg == nil {
		return nil, pkgerrors.WrapInvalid(pkgerrors.ErrTypeMismatch, "Codec", "Encode", "message is nil")
	}
	start := time.Now()
	doc := msg.Document()
	c.observeDuration(msg.schema.typ.Key(), "encode", start)
	return doc, nil
}

// Decode reconstructs a validated message of the named type from an
// interchange document. The type's schema comes from the registry; an
// unregistered name fails with a schema-not-found error. Field validation
// is fail-fast in declaration order. In strict mode an undeclared document
// key fails first, lowest key in lexical order, so the reported field is
// deterministic.
func (c *Codec) Decode(doc Document, typeName string) (*ResultMessage, error) {
	start := time.Now()

	schema, err := c.lookupSchema(typeName)
	if err != nil {
		c.recordValidation(typeName, false)
		return nil, err
	}

	if c.strict {
		if verr := c.checkUnknownFields(doc, schema); verr != nil {
			c.recordFailure(typeName, verr)
			return nil, verr
		}
	}

	msg, err := schema.FromValues(doc)
	if err != nil {
		c.recordFailure(typeName, err)
		c.logger.Debug("decode rejected", "type", typeName, "error", err)
		return nil, err
	}

	c.recordValidation(typeName, true)
	c.observeDuration(typeName, "decode", start)
	return msg, nil
}

// Marshal serializes a validated message to JSON with keys in declaration
// order.
func (c *Codec) Marshal(msg *ResultMessage) ([]byte, error) {
	if msg == nil {
		return nil, pkgerrors.WrapInvalid(pkgerrors.ErrTypeMismatch, "Codec", "Marshal", "message is nil")
	}
	start := time.Now()
	data, err := msg.MarshalJSON()
	if err != nil {
		return nil, pkgerrors.WrapInvalid(err, "Codec", "Marshal", "failed to serialize message")
	}
	c.observeDuration(msg.schema.typ.Key(), "encode", start)
	return data, nil
}

// Unmarshal parses JSON into an interchange document and decodes it as the
// named type. Numbers are kept as json.Number until validation so 64-bit
// integers survive intact.
func (c *Codec) Unmarshal(data []byte, typeName string) (*ResultMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		c.recordValidation(typeName, false)
		return nil, pkgerrors.WrapInvalid(err, "Codec", "Unmarshal", "failed to parse document")
	}
	return c.Decode(doc, typeName)
}

// lookupSchema resolves a type name through the registry. Registrations
// hold schemas as opaque values, so the entry is asserted back here.
func (c *Codec) lookupSchema(typeName string) (*Schema, error) {
	reg, ok := c.registry.Lookup(typeName)
	if !ok {
		return nil, pkgerrors.WrapInvalid(pkgerrors.ErrSchemaNotFound, "Codec", "Decode",
			fmt.Sprintf("no schema registered for type %q", typeName))
	}
	schema, ok := reg.Schema.(*Schema)
	if !ok {
		return nil, pkgerrors.WrapInvalid(pkgerrors.ErrInvalidSchema, "Codec", "Decode",
			fmt.Sprintf("registration for type %q does not hold a message schema", typeName))
	}
	return schema, nil
}

func (c *Codec) checkUnknownFields(doc Document, schema *Schema) *ValidationError {
	var unknown []string
	for key := range doc {
		if !schema.Declares(key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return newValidationError(unknown[0], CodeUnknown,
		"field %q is not declared for %s", unknown[0], schema.typ.Name)
}

func (c *Codec) recordValidation(typeName string, ok bool) {
	if c.metrics == nil {
		return
	}
	result := "success"
	if !ok {
		result = "failure"
	}
	c.metrics.RecordValidation(typeName, result)
}

func (c *Codec) recordFailure(typeName string, err error) {
	c.recordValidation(typeName, false)
	if c.metrics == nil {
		return
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		c.metrics.RecordValidationFailure(typeName, verr.Field, verr.Code)
	}
}

func (c *Codec) observeDuration(typeName, operation string, start time.Time) {
	if c.metrics == nil {
		return
	}
	c.metrics.ObserveCodecDuration(typeName, operation, time.Since(start).Seconds())
}
