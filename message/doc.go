// Package message provides the typed message layer for the simulation
// platform. It defines schemas for the message types exchanged between
// simulation components, validates raw field values against them, and
// converts messages to and from flat interchange documents.
//
// # Architecture
//
// The package is built around three core concepts:
//
// 1. Attributes - Typed, validated field declarations
// 2. Schemas - Ordered attribute lists describing one message type
// 3. Messages - Immutable, validated field collections produced by a schema
//
// # Message Structure
//
// Every message shares the same base fields:
//   - MessageId and Timestamp identifying this particular message
//   - EpochNumber locating it in the simulation run
//   - SimulationId, SourceProcessId and the other optional envelope fields
//
// Concrete types (ResourceState, Request, LFMMarketResult) extend the base
// with their own attributes. Adding a message type means declaring its
// attribute list and registering the schema; validation, document
// conversion and equality come from the shared machinery.
//
// # Validation
//
// A schema validates raw values in declaration order and fails fast on the
// first violation. Every failure is a *ValidationError carrying the field
// name and a stable code, and wraps one of the sentinel variables in the
// errors package so callers can branch with errors.Is:
//
//	msg, err := message.NewResourceState(values)
//	if errors.Is(err, pkgerrors.ErrOutOfRange) {
//		// reject the reading, keep the component running
//	}
//
// Validation failures are never fatal. A failed construction leaves no
// partial message behind.
//
// # Interchange Documents
//
// Messages travel as flat JSON objects holding only primitive values.
// List-valued fields are carried as comma-joined strings. The Codec
// converts between messages and documents:
//
//	codec := message.NewCodec()
//	doc, _ := codec.Encode(msg)
//	back, _ := codec.Decode(doc, "ResourceState")
//
// Decoding a document produced by Encode yields a message equal to the
// original. Unknown document keys are ignored unless the codec is built
// with WithStrictDecode(true).
//
// # Immutability
//
// Messages never change after construction. With produces a new, fully
// re-validated message:
//
//	updated, err := msg.With(map[string]any{"EpochNumber": 5})
//
// Accessors return copies of list values, so callers cannot reach the
// internal state.
package message
