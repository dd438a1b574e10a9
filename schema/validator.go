package schema

import (
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"

	pkgerrors "github.com/simcesplatform/domain-messages/errors"
	"github.com/simcesplatform/domain-messages/registry"
)

// Validator checks interchange documents against the exported JSON
// Schemas. It compiles every registered type's schema once at construction
// and is read-only afterwards, so a single Validator can serve concurrent
// callers.
//
// The validator covers the structural rules JSON Schema can express:
// types, required fields, bounds, enum membership and undeclared keys.
// Wire-form rules it cannot express, like list element vocabularies, stay
// with the codec.
type Validator struct {
	compiled map[string]*gojsonschema.Schema
}

// NewValidator compiles the exported schema of every type in reg.
func NewValidator(reg *registry.Registry) (*Validator, error) {
	exported, err := ExportAll(reg)
	if err != nil {
		return nil, pkgerrors.WrapInvalid(err, "Validator", "NewValidator", "schema export failed")
	}

	compiled := make(map[string]*gojsonschema.Schema, len(exported))
	for _, ms := range exported {
		loader := gojsonschema.NewGoLoader(ms)
		schema, err := gojsonschema.NewSchema(loader)
		if err != nil {
			return nil, pkgerrors.WrapInvalid(err, "Validator", "NewValidator",
				fmt.Sprintf("failed to compile schema for %s", ms.Metadata.Name))
		}
		compiled[ms.Metadata.Name] = schema
	}

	return &Validator{compiled: compiled}, nil
}

// ValidateDocument checks a document against the named type's exported
// schema.
func (v *Validator) ValidateDocument(typeName string, doc map[string]any) error {
	return v.validate(typeName, gojsonschema.NewGoLoader(doc))
}

// ValidateJSON checks raw JSON against the named type's exported schema.
func (v *Validator) ValidateJSON(typeName string, data []byte) error {
	return v.validate(typeName, gojsonschema.NewBytesLoader(data))
}

func (v *Validator) validate(typeName string, document gojsonschema.JSONLoader) error {
	schema, ok := v.compiled[typeName]
	if !ok {
		return pkgerrors.WrapInvalid(pkgerrors.ErrSchemaNotFound, "Validator", "ValidateDocument",
			fmt.Sprintf("no schema compiled for type %q", typeName))
	}

	result, err := schema.Validate(document)
	if err != nil {
		return pkgerrors.WrapInvalid(err, "Validator", "ValidateDocument", "validation error")
	}

	if !result.Valid() {
		errMsg := fmt.Sprintf("document does not match schema %s:\n", typeName)
		for _, desc := range result.Errors() {
			errMsg += fmt.Sprintf("  - %s: %s\n", desc.Field(), desc.Description())
		}
		return pkgerrors.WrapInvalid(fmt.Errorf("%s", errMsg),
			"Validator", "ValidateDocument", "schema mismatch")
	}

	return nil
}

// Types returns the type names the validator has compiled schemas for, in
// lexical order.
func (v *Validator) Types() []string {
	names := make([]string, 0, len(v.compiled))
	for name := range v.compiled {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
