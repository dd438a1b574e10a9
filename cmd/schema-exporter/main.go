package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/simcesplatform/domain-messages/registry"
	"github.com/simcesplatform/domain-messages/schema"

	// Register the platform message types.
	_ "github.com/simcesplatform/domain-messages/message"
)

func main() {
	// Parse command-line flags
	outDir := flag.String("out", "./schemas", "Output directory for schemas")
	catalogOut := flag.String("catalog", "./specs/catalog.yaml", "Output path for the message type catalog")
	version := flag.String("version", "1.0.0", "Catalog version")
	flag.Parse()

	log.Printf("Schema Exporter")
	log.Printf("  Output dir: %s", *outDir)
	log.Printf("  Catalog: %s", *catalogOut)

	// Message types register themselves at init time
	reg := registry.Default()
	log.Printf("Found %d message types", reg.Len())

	// Extract schemas from the registry
	schemas, err := schema.ExportAll(reg)
	if err != nil {
		log.Fatalf("Failed to export schemas: %v", err)
	}

	// Create output directory
	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	// Write versioned JSON Schema files
	for _, ms := range schemas {
		outFile := filepath.Join(*outDir, ms.ID)
		if err := schema.WriteJSONSchema(outFile, ms); err != nil {
			log.Fatalf("Failed to write schema for %s: %v", ms.Metadata.Name, err)
		}

		log.Printf("  ✓ Generated: %s", outFile)
	}

	// Check every registered example against its exported schema
	if err := validateExamples(reg); err != nil {
		log.Fatalf("Example validation failed: %v", err)
	}

	// Generate the catalog
	if *catalogOut != "" {
		catalogDir := filepath.Dir(*catalogOut)
		if err := os.MkdirAll(catalogDir, 0755); err != nil {
			log.Fatalf("Failed to create catalog directory: %v", err)
		}

		catalog := schema.BuildCatalog(*version, schemas)
		if err := schema.WriteCatalogYAML(*catalogOut, catalog); err != nil {
			log.Fatalf("Failed to write catalog: %v", err)
		}

		log.Printf("  ✓ Generated catalog: %s", *catalogOut)
	}

	log.Printf("✅ Schema generation complete!")
}
