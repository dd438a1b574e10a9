// Package errors provides standardized error handling for the simulation
// platform message libraries.
//
// # Overview
//
// The errors package implements a three-class error classification system:
// Transient (temporary, retryable), Invalid (bad input, non-retryable), and
// Fatal (unrecoverable, stop processing). Message validation failures are
// always Invalid: the caller either fixes the input or drops the message,
// and retrying the same document can never succeed.
//
// The classification system integrates with Go's standard error handling,
// supporting errors.Is(), errors.As(), and error wrapping chains.
//
// # Validation Error Variables
//
// Every validation failure reported by the message package wraps exactly one
// of the validation variables, identifying the violated rule:
//
//   - ErrTypeMismatch: a raw value cannot be coerced to the declared type
//   - ErrOutOfRange: a numeric value lies outside its declared bounds
//   - ErrInvalidEnumValue: a value is not in the declared allowed set
//   - ErrMissingRequiredField: a required field is absent
//   - ErrUnknownField: a document carries an undeclared field (strict decode)
//   - ErrSchemaNotFound: decode requested for an unregistered message type
//
// Callers branch on the rule with the standard library:
//
//	msg, err := codec.Decode(doc, "ResourceState")
//	if errors.Is(err, platformerrors.ErrOutOfRange) {
//	    // reject the reading, keep the connection
//	}
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format:
//
//	"component.method: action failed: %w"
//
// This format enables consistent log parsing and operational monitoring
// across the platform. Three wrapper functions provide classification-aware
// wrapping:
//
//	errors.WrapTransient(err, "Component", "Method", "action")  // For retryable errors
//	errors.WrapInvalid(err, "Component", "Method", "action")    // For validation errors
//	errors.WrapFatal(err, "Component", "Method", "action")      // For unrecoverable errors
//
// The generic Wrap() function applies the format without attaching a class.
//
// # Classification Checks
//
// IsTransient, IsInvalid and IsFatal inspect an error chain for a
// ClassifiedError and fall back to the known error variables. IsValidation
// reports whether an error wraps any of the validation variables, which is
// useful when a caller only cares that a message was rejected, not why.
//
// Retry policy deliberately lives outside this package: the message core has
// no retry semantics, and the transport layer that does retry brings its own
// backoff configuration.
package errors
