// Package schema exports message type declarations as JSON Schema
// documents and validates interchange documents against them.
//
// The exported schemas describe the flat wire form: every property is a
// JSON primitive, list fields appear as comma-joined strings, and numeric
// bounds and unit tags carry over from the attribute declarations. Other
// platform components consume these files to validate traffic without
// linking this module.
package schema

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/simcesplatform/domain-messages/message"
	"github.com/simcesplatform/domain-messages/registry"
)

// MessageSchema represents the exported JSON Schema for one message type.
type MessageSchema struct {
	Schema               string                    `json:"$schema"`
	ID                   string                    `json:"$id"`
	Type                 string                    `json:"type"`
	Title                string                    `json:"title"`
	Description          string                    `json:"description,omitempty"`
	Properties           map[string]PropertySchema `json:"properties"`
	Required             []string                  `json:"required"`
	AdditionalProperties bool                      `json:"additionalProperties"`
	Metadata             MessageMetadata           `json:"x-message-metadata"`
}

// MessageMetadata holds message type metadata for catalog integration.
type MessageMetadata struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// PropertySchema represents a JSON Schema property definition.
type PropertySchema struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Minimum     *float64 `json:"minimum,omitempty"`
	Maximum     *float64 `json:"maximum,omitempty"`
	Format      string   `json:"format,omitempty"`
	Unit        string   `json:"x-unit,omitempty"`
}

// Export converts a message schema to its JSON Schema document.
func Export(s *message.Schema) MessageSchema {
	typ := s.Type()

	properties := make(map[string]PropertySchema)
	required := []string{}
	for _, attr := range s.Attributes() {
		properties[attr.Name] = exportAttribute(attr)
		if attr.Required {
			required = append(required, attr.Name)
		}
	}

	return MessageSchema{
		Schema:               "http://json-schema.org/draft-07/schema#",
		ID:                   SchemaFileName(typ),
		Type:                 "object",
		Title:                fmt.Sprintf("%s Message", typ.Name),
		Description:          s.Description(),
		Properties:           properties,
		Required:             required,
		AdditionalProperties: false,
		Metadata: MessageMetadata{
			Name:    typ.Name,
			Version: typ.Version,
		},
	}
}

// exportAttribute maps an attribute declaration to a JSON Schema property.
// The mapping follows the wire form: timestamps and lists are strings on
// the wire, so that is what the schema declares.
func exportAttribute(attr message.Attribute) PropertySchema {
	prop := PropertySchema{
		Description: attr.Description,
		Unit:        attr.Unit,
	}

	switch attr.Kind {
	case message.KindInteger:
		prop.Type = "integer"
		prop.Minimum = attr.Min
		prop.Maximum = attr.Max
	case message.KindReal:
		prop.Type = "number"
		prop.Minimum = attr.Min
		prop.Maximum = attr.Max
	case message.KindBoolean:
		prop.Type = "boolean"
	case message.KindEnum:
		prop.Type = "string"
		prop.Enum = attr.Enum
	case message.KindTimestamp:
		prop.Type = "string"
		prop.Format = "date-time"
	default:
		// Plain strings and comma-joined lists. Element vocabularies
		// of list fields cannot be expressed on the joined form, so
		// they stay a validation-time rule.
		prop.Type = "string"
	}

	return prop
}

// ExportAll exports every type registered in reg, in lexical name order.
// Registrations that do not hold a message schema are rejected.
func ExportAll(reg *registry.Registry) ([]MessageSchema, error) {
	names := reg.Names()
	schemas := make([]MessageSchema, 0, len(names))
	for _, name := range names {
		registration, ok := reg.Lookup(name)
		if !ok {
			continue
		}
		s, ok := registration.Schema.(*message.Schema)
		if !ok {
			return nil, fmt.Errorf("registration for type %q does not hold a message schema", name)
		}
		schemas = append(schemas, Export(s))
	}
	return schemas, nil
}

// SchemaFileName returns the conventional file name for a type's exported
// schema, e.g. "ResourceState.v1.0.json".
func SchemaFileName(typ message.Type) string {
	return fmt.Sprintf("%s.v%s.json", typ.Name, typ.Version)
}

// WriteJSONSchema writes a message schema to a JSON file.
func WriteJSONSchema(filename string, schema MessageSchema) error {
	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal schema: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
