// Package domainmessages provides the typed message layer for a distributed
// energy-resource simulation platform, combining declarative message schemas
// with validation, interchange documents and schema tooling.
//
// # Philosophy: Declared Types, Flat Wire
//
// Simulation components exchange messages whose correctness matters more
// than their transport. This module separates the two concerns:
//
// Layer 1 - Message Layer (transport agnostic):
//   - Schemas: Ordered, typed attribute declarations per message type
//   - Validation: Range, enum and type checks with stable error codes
//   - Documents: Flat JSON objects holding only primitive values
//
// Layer 2 - Tooling Layer (schema consumers):
//   - JSON Schema export for cross-language validation
//   - Catalog generation for platform documentation
//   - Batch document validation with Prometheus metrics
//
// This module MUST NOT contain:
//   - Simulation logic (epoch control, market clearing, power flow)
//   - Message transport (brokers, queues, RPC)
//   - Message persistence (databases, event stores)
//
// Those belong to the platform components that exchange these messages.
//
// # Architecture
//
//	┌─────────────────────────────────────┐
//	│        Message Schemas              │  ResourceState, Request,
//	│  (typed, ordered attribute lists)   │  LFMMarketResult
//	└─────────────────────────────────────┘
//	           ↓ validate and build
//	┌─────────────────────────────────────┐
//	│        Result Messages              │  Immutable, validated
//	│   (value equality, With updates)    │  field collections
//	└─────────────────────────────────────┘
//	           ↓ encode / decode
//	┌─────────────────────────────────────┐
//	│     Interchange Documents           │  Flat JSON, primitives
//	│  (lists travel comma-joined)        │  only, key order stable
//	└─────────────────────────────────────┘
//
// # Module Packages
//
// Message Layer:
//   - message: Schemas, attributes, validation, codec, message types
//   - registry: Name to schema lookup with init-time self-registration
//   - pkg/timestamp: Canonical ISO 8601 timestamp handling
//
// Tooling Layer:
//   - schema: JSON Schema export, document validation, catalog generation
//   - config: Layered JSON configuration with environment overrides
//   - metric: Prometheus metrics and exposition server
//   - errors: Structured error handling and validation sentinels
//
// # Usage Patterns
//
// Building and encoding a message:
//
//	values := map[string]any{
//		"MessageId":     "storage-1-42",
//		"Timestamp":     "2023-01-01T00:00:00Z",
//		"EpochNumber":   4,
//		"Bus":           "B1",
//		"RealPower":     12.5,
//		"ReactivePower": 3.2,
//	}
//
//	msg, err := message.NewResourceState(values)
//	if err != nil {
//		// first violation in declaration order, *ValidationError
//	}
//
//	codec := message.NewCodec()
//	doc, _ := codec.Encode(msg.ResultMessage)
//
// Decoding and branching on the violated rule:
//
//	decoded, err := codec.Decode(doc, "ResourceState")
//	if errors.Is(err, pkgerrors.ErrOutOfRange) {
//		// recoverable: reject the document, keep running
//	}
//
// # Extension Points
//
// A new message type is added by declaring its attribute list; validation,
// document conversion, equality and export come from the shared machinery:
//
//	var TypeOffer = message.Type{Name: "Offer", Version: "1.0"}
//
//	func init() {
//		schema, err := message.NewSchema(TypeOffer, "An offer made to the market",
//			[]message.Attribute{
//				{Name: "OfferId", Kind: message.KindString, Required: true, NonEmpty: true},
//				{Name: "Price", Kind: message.KindReal, Required: true, Unit: "EUR",
//					Min: message.Float64Ptr(0)},
//			})
//		if err != nil {
//			panic(err)
//		}
//		// register for codec lookup and schema export
//	}
//
// # Design Principles
//
// Fail Fast, Recover Always:
//   - Validation stops at the first violation in declaration order
//   - Every failure is classified and non-fatal to the caller
//   - A failed construction leaves no partial message behind
//
// Deterministic Interchange:
//   - Document key order follows attribute declaration order
//   - A decoded document re-encodes byte-identically
//   - Timestamps are preserved verbatim, never converted
//
// Testability:
//   - Explicit dependencies (no globals beyond the default registry)
//   - Message equality is value equality, made for golden files
//
// # Binaries
//
// Export JSON Schemas and the message catalog:
//
//	go run ./cmd/schema-exporter -out ./schemas -catalog ./specs/catalog.yaml
//
// Validate recorded documents against a schema:
//
//	go run ./cmd/message-validator -type=ResourceState recording.ndjson
package domainmessages
