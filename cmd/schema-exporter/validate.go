package main

import (
	"fmt"
	"log"

	"github.com/simcesplatform/domain-messages/registry"
	"github.com/simcesplatform/domain-messages/schema"
)

// validateExamples checks each registered example document against the
// exported JSON Schema for its type. This catches type declarations whose
// example has drifted from the attribute list.
func validateExamples(reg *registry.Registry) error {
	validator, err := schema.NewValidator(reg)
	if err != nil {
		return fmt.Errorf("failed to build validator: %w", err)
	}

	for _, name := range reg.Names() {
		registration, ok := reg.Lookup(name)
		if !ok {
			continue
		}

		if registration.Example == nil {
			log.Printf("  ⚠️  No example for %s, skipping", name)
			continue
		}

		if err := validator.ValidateDocument(name, registration.Example); err != nil {
			return fmt.Errorf("example for %s does not match its schema: %w", name, err)
		}

		log.Printf("  ✓ Validated example: %s", name)
	}

	return nil
}
