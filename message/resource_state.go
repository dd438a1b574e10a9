package message

import (
	"github.com/simcesplatform/domain-messages/registry"
)

// Wire-level names of the ResourceState domain fields.
const (
	FieldBus           = "Bus"
	FieldRealPower     = "RealPower"
	FieldReactivePower = "ReactivePower"
	FieldNode          = "Node"
	FieldStateOfCharge = "StateOfCharge"
)

// TypeResourceState identifies resource state messages: the operating
// point an energy resource reports for one epoch.
var TypeResourceState = Type{Name: "ResourceState", Version: "1.0"}

var resourceStateSchema *Schema

// init builds and registers the ResourceState schema with the process-wide
// registry. This makes ResourceState documents decodable for any program
// importing this package.
func init() {
	schema, err := NewSchema(TypeResourceState,
		"Operating state reported by an energy resource for one simulation epoch.",
		[]Attribute{
			{
				Name:        FieldBus,
				Kind:        KindString,
				Required:    true,
				NonEmpty:    true,
				Description: "Name of the bus the resource is connected to.",
			},
			{
				Name:        FieldRealPower,
				Kind:        KindReal,
				Required:    true,
				Unit:        "kW",
				Description: "Real power output. Negative values mean consumption.",
			},
			{
				Name:        FieldReactivePower,
				Kind:        KindReal,
				Required:    true,
				Unit:        "kVAr",
				Description: "Reactive power output. Negative values mean consumption.",
			},
			{
				Name:        FieldNode,
				Kind:        KindString,
				NonEmpty:    true,
				Description: "Node of the bus the resource is connected to.",
			},
			{
				Name:        FieldStateOfCharge,
				Kind:        KindReal,
				Unit:        "percent",
				Min:         Float64Ptr(0),
				Max:         Float64Ptr(100),
				Description: "Remaining charge of a storage resource as a percentage.",
			},
		})
	if err != nil {
		panic("failed to build ResourceState schema: " + err.Error())
	}
	resourceStateSchema = schema

	err = registry.Register(&registry.Registration{
		Name:        TypeResourceState.Name,
		Version:     TypeResourceState.Version,
		Description: schema.Description(),
		Schema:      schema,
		Example: map[string]any{
			FieldMessageID:     "storage-1-1",
			FieldTimestamp:     "2023-01-01T00:00:00Z",
			FieldEpochNumber:   4,
			FieldBus:           "B1",
			FieldRealPower:     12.5,
			FieldReactivePower: 3.2,
			FieldNode:          "N7",
			FieldStateOfCharge: 87.0,
		},
	})
	if err != nil {
		panic("failed to register ResourceState schema: " + err.Error())
	}
}

// ResourceStateSchema returns the validator set for ResourceState messages.
func ResourceStateSchema() *Schema {
	return resourceStateSchema
}

// ResourceState is a typed view over a validated resource state message.
// It adds named accessors for the domain fields and nothing else; all
// validation and serialization behavior comes from ResultMessage.
type ResourceState struct {
	*ResultMessage
}

// NewResourceState validates a raw field map as a ResourceState message.
func NewResourceState(values map[string]any) (*ResourceState, error) {
	msg, err := resourceStateSchema.FromValues(values)
	if err != nil {
		return nil, err
	}
	return &ResourceState{msg}, nil
}

// AsResourceState wraps an already validated message in the typed view.
// The message must have been built from the ResourceState schema.
func AsResourceState(msg *ResultMessage) (*ResourceState, bool) {
	if msg == nil || !msg.Type().Equal(TypeResourceState) {
		return nil, false
	}
	return &ResourceState{msg}, true
}

// Bus returns the name of the bus the resource is connected to.
func (m *ResourceState) Bus() string {
	v, _ := m.StringValue(FieldBus)
	return v
}

// RealPower returns the real power output in kW.
func (m *ResourceState) RealPower() float64 {
	v, _ := m.Float64Value(FieldRealPower)
	return v
}

// ReactivePower returns the reactive power output in kVAr.
func (m *ResourceState) ReactivePower() float64 {
	v, _ := m.Float64Value(FieldReactivePower)
	return v
}

// Node returns the node of the bus, if reported.
func (m *ResourceState) Node() (string, bool) {
	return m.StringValue(FieldNode)
}

// StateOfCharge returns the remaining charge percentage, if reported.
func (m *ResourceState) StateOfCharge() (float64, bool) {
	return m.Float64Value(FieldStateOfCharge)
}
