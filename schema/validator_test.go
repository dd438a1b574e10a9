package schema

import (
	stderrors "errors"
	"strings"
	"testing"

	pkgerrors "github.com/simcesplatform/domain-messages/errors"
	"github.com/simcesplatform/domain-messages/registry"
)

func validResourceStateDoc() map[string]any {
	return map[string]any{
		"MessageId":     "storage-1-1",
		"Timestamp":     "2023-01-01T00:00:00Z",
		"EpochNumber":   4,
		"Bus":           "B1",
		"RealPower":     12.5,
		"ReactivePower": 3.2,
	}
}

func TestValidator_ValidDocument(t *testing.T) {
	validator, err := NewValidator(registry.Default())
	if err != nil {
		t.Fatalf("NewValidator failed: %v", err)
	}

	if err := validator.ValidateDocument("ResourceState", validResourceStateDoc()); err != nil {
		t.Errorf("Valid document rejected: %v", err)
	}
}

func TestValidator_RegisteredExamples(t *testing.T) {
	validator, err := NewValidator(registry.Default())
	if err != nil {
		t.Fatalf("NewValidator failed: %v", err)
	}

	// Every registered example document must satisfy its own exported schema
	for _, name := range registry.Default().Names() {
		registration, ok := registry.Default().Lookup(name)
		if !ok || registration.Example == nil {
			continue
		}
		if err := validator.ValidateDocument(name, registration.Example); err != nil {
			t.Errorf("Example for %s rejected by its own schema: %v", name, err)
		}
	}
}

func TestValidator_Violations(t *testing.T) {
	validator, err := NewValidator(registry.Default())
	if err != nil {
		t.Fatalf("NewValidator failed: %v", err)
	}

	tests := []struct {
		name     string
		typeName string
		tweak    func(map[string]any)
		wantDesc string
	}{
		{
			name:     "missing required field",
			typeName: "ResourceState",
			tweak:    func(d map[string]any) { delete(d, "Bus") },
			wantDesc: "Bus",
		},
		{
			name:     "wrong property type",
			typeName: "ResourceState",
			tweak:    func(d map[string]any) { d["RealPower"] = "abc" },
			wantDesc: "RealPower",
		},
		{
			name:     "value above maximum",
			typeName: "ResourceState",
			tweak:    func(d map[string]any) { d["StateOfCharge"] = 150.0 },
			wantDesc: "StateOfCharge",
		},
		{
			name:     "undeclared property",
			typeName: "ResourceState",
			tweak:    func(d map[string]any) { d["Mystery"] = 1 },
			wantDesc: "Mystery",
		},
		{
			name:     "malformed timestamp",
			typeName: "ResourceState",
			tweak:    func(d map[string]any) { d["Timestamp"] = "yesterday" },
			wantDesc: "Timestamp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validResourceStateDoc()
			tt.tweak(doc)

			err := validator.ValidateDocument(tt.typeName, doc)
			if err == nil {
				t.Fatal("Expected validation failure but document passed")
			}
			if !strings.Contains(err.Error(), tt.wantDesc) {
				t.Errorf("Expected error mentioning %q, got %q", tt.wantDesc, err.Error())
			}
		})
	}
}

func TestValidator_EnumViolation(t *testing.T) {
	validator, err := NewValidator(registry.Default())
	if err != nil {
		t.Fatalf("NewValidator failed: %v", err)
	}

	doc := map[string]any{
		"MessageId":        "grid-operator-1-10",
		"Timestamp":        "2023-01-01T00:00:00Z",
		"EpochNumber":      2,
		"ActivationTime":   "2023-01-01T00:15:00Z",
		"Duration":         60.0,
		"Direction":        "sideways",
		"RealPowerMin":     5.0,
		"RealPowerRequest": 20.0,
		"CustomerIds":      "GridA-1",
		"CongestionId":     "congestion-north-1",
	}

	err = validator.ValidateDocument("Request", doc)
	if err == nil {
		t.Fatal("Expected enum violation but document passed")
	}
	if !strings.Contains(err.Error(), "Direction") {
		t.Errorf("Expected error mentioning Direction, got %q", err.Error())
	}
}

func TestValidator_UnknownType(t *testing.T) {
	validator, err := NewValidator(registry.Default())
	if err != nil {
		t.Fatalf("NewValidator failed: %v", err)
	}

	err = validator.ValidateDocument("NoSuchType", validResourceStateDoc())
	if err == nil {
		t.Fatal("Expected error for unknown type")
	}
	if !stderrors.Is(err, pkgerrors.ErrSchemaNotFound) {
		t.Errorf("Expected ErrSchemaNotFound, got %v", err)
	}
}

func TestValidator_ValidateJSON(t *testing.T) {
	validator, err := NewValidator(registry.Default())
	if err != nil {
		t.Fatalf("NewValidator failed: %v", err)
	}

	valid := []byte(`{"MessageId":"storage-1-1","Timestamp":"2023-01-01T00:00:00Z",` +
		`"EpochNumber":4,"Bus":"B1","RealPower":12.5,"ReactivePower":3.2}`)
	if err := validator.ValidateJSON("ResourceState", valid); err != nil {
		t.Errorf("Valid JSON rejected: %v", err)
	}

	invalid := []byte(`{"MessageId":"storage-1-1"}`)
	if err := validator.ValidateJSON("ResourceState", invalid); err == nil {
		t.Error("Expected failure for document missing required fields")
	}

	if err := validator.ValidateJSON("ResourceState", []byte(`{`)); err == nil {
		t.Error("Expected failure for malformed JSON")
	}
}

func TestValidator_Types(t *testing.T) {
	validator, err := NewValidator(registry.Default())
	if err != nil {
		t.Fatalf("NewValidator failed: %v", err)
	}

	want := []string{"LFMMarketResult", "Request", "ResourceState"}
	got := validator.Types()
	if len(got) != len(want) {
		t.Fatalf("Expected %d types, got %v", len(want), got)
	}
	for i, name := range want {
		if got[i] != name {
			t.Errorf("Expected types[%d] = %s, got %s", i, name, got[i])
		}
	}
}
