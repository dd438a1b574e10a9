package message

import "fmt"

// Type provides structured type information for messages.
// It identifies a message schema by wire name and schema version,
// enabling type-safe registry lookups and schema evolution.
//
// Type constants are defined next to the schema declarations that use
// them. This package only provides the type definition itself.
//
// Example definition:
//
//	var TypeResourceState = message.Type{
//	    Name:    "ResourceState",
//	    Version: "1.0",
//	}
type Type struct {
	// Name is the wire-level message type name used for registry lookups.
	// Examples: "ResourceState", "Request", "LFMMarketResult"
	Name string

	// Version identifies the schema version.
	// Format: "1.0", "1.1", etc. Enables schema evolution.
	Version string
}

// Key returns the registry lookup key. Interchange documents do not carry
// the type name; it travels out of band, so the key is the bare name.
func (mt Type) Key() string {
	return mt.Name
}

// String returns the versioned notation: "name.version"
func (mt Type) String() string {
	return fmt.Sprintf("%s.%s", mt.Name, mt.Version)
}

// IsValid checks if the Type has all required fields populated
// with non-empty values.
func (mt Type) IsValid() bool {
	return mt.Name != "" && mt.Version != ""
}

// Equal compares two Type instances for equality.
func (mt Type) Equal(other Type) bool {
	return mt.Name == other.Name && mt.Version == other.Version
}
