package schema

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Catalog is the YAML summary of every message type the platform speaks.
// It is generated next to the per-type JSON Schema files and gives
// component developers one place to see the whole message vocabulary.
type Catalog struct {
	Platform    string         `yaml:"platform"`
	Description string         `yaml:"description"`
	Version     string         `yaml:"version"`
	Types       []CatalogEntry `yaml:"types"`
}

// CatalogEntry summarizes one message type.
type CatalogEntry struct {
	Name        string         `yaml:"name"`
	Version     string         `yaml:"version"`
	Description string         `yaml:"description,omitempty"`
	SchemaFile  string         `yaml:"schema"`
	Fields      []CatalogField `yaml:"fields"`
}

// CatalogField summarizes one field of a message type.
type CatalogField struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Required bool   `yaml:"required,omitempty"`
	Unit     string `yaml:"unit,omitempty"`
}

// BuildCatalog assembles a catalog from exported schemas. Entry order
// follows the input; field order within an entry is the required fields
// followed by optionals, alphabetically within each group, mirroring how
// the schema files present them.
func BuildCatalog(version string, schemas []MessageSchema) Catalog {
	entries := make([]CatalogEntry, 0, len(schemas))
	for _, ms := range schemas {
		entries = append(entries, catalogEntry(ms))
	}

	return Catalog{
		Platform:    "simces",
		Description: "Message types exchanged between simulation platform components",
		Version:     version,
		Types:       entries,
	}
}

func catalogEntry(ms MessageSchema) CatalogEntry {
	required := make(map[string]bool, len(ms.Required))
	for _, name := range ms.Required {
		required[name] = true
	}

	fields := make([]CatalogField, 0, len(ms.Properties))
	for _, name := range sortedPropertyNames(ms) {
		prop := ms.Properties[name]
		fields = append(fields, CatalogField{
			Name:     name,
			Type:     prop.Type,
			Required: required[name],
			Unit:     prop.Unit,
		})
	}

	return CatalogEntry{
		Name:        ms.Metadata.Name,
		Version:     ms.Metadata.Version,
		Description: ms.Description,
		SchemaFile:  ms.ID,
		Fields:      fields,
	}
}

// sortedPropertyNames returns property names with required fields first,
// alphabetically within each group.
func sortedPropertyNames(ms MessageSchema) []string {
	required := make(map[string]bool, len(ms.Required))
	for _, name := range ms.Required {
		required[name] = true
	}

	names := make([]string, 0, len(ms.Properties))
	for name := range ms.Properties {
		names = append(names, name)
	}

	// Required before optional, alphabetical within each group
	sort.Slice(names, func(i, j int) bool {
		if required[names[i]] != required[names[j]] {
			return required[names[i]]
		}
		return names[i] < names[j]
	})
	return names
}

// WriteCatalogYAML writes the catalog to a YAML file with a generated-file
// header.
func WriteCatalogYAML(filename string, catalog Catalog) error {
	yamlData, err := yaml.Marshal(catalog)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	header := []byte(strings.TrimSpace(`
# Message type catalog for the simulation platform
# Generated by schema-exporter tool
# DO NOT EDIT MANUALLY - This file is auto-generated from message type registrations
`) + "\n\n")

	content := append(header, yamlData...)

	if err := os.WriteFile(filename, content, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
