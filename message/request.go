package message

import (
	"github.com/simcesplatform/domain-messages/registry"
)

// Wire-level names of the Request domain fields. ActivationTime, Duration,
// Direction, CongestionId and CustomerIds are shared with LFMMarketResult.
const (
	FieldActivationTime   = "ActivationTime"
	FieldDuration         = "Duration"
	FieldDirection        = "Direction"
	FieldRealPowerMin     = "RealPowerMin"
	FieldRealPowerRequest = "RealPowerRequest"
	FieldCustomerIDs      = "CustomerIds"
	FieldCongestionID     = "CongestionId"
	FieldBidResolution    = "BidResolution"
)

// Regulation directions used by flexibility requests and market results.
const (
	DirectionUpregulation   = "upregulation"
	DirectionDownregulation = "downregulation"
)

// directionValues lists the allowed Direction values.
var directionValues = []string{DirectionUpregulation, DirectionDownregulation}

// TypeRequest identifies flexibility request messages: a grid operator
// asking aggregators for regulation bids on a congestion problem.
var TypeRequest = Type{Name: "Request", Version: "1.0"}

var requestSchema *Schema

func init() {
	schema, err := NewSchema(TypeRequest,
		"Flexibility request sent by a grid operator to solve a congestion problem.",
		[]Attribute{
			{
				Name:        FieldActivationTime,
				Kind:        KindTimestamp,
				Required:    true,
				Description: "Start time of the requested regulation.",
			},
			{
				Name:        FieldDuration,
				Kind:        KindReal,
				Required:    true,
				Unit:        "Minute",
				Min:         Float64Ptr(0),
				Description: "Length of the requested regulation period.",
			},
			{
				Name:        FieldDirection,
				Kind:        KindEnum,
				Required:    true,
				Enum:        directionValues,
				Description: "Direction of the requested regulation.",
			},
			{
				Name:        FieldRealPowerMin,
				Kind:        KindReal,
				Required:    true,
				Unit:        "kW",
				Min:         Float64Ptr(0),
				Description: "Smallest bid the operator will accept.",
			},
			{
				Name:        FieldRealPowerRequest,
				Kind:        KindReal,
				Required:    true,
				Unit:        "kW",
				Min:         Float64Ptr(0),
				Description: "Amount of regulation the operator asks for.",
			},
			{
				Name:        FieldCustomerIDs,
				Kind:        KindStringList,
				Required:    true,
				NonEmpty:    true,
				Description: "Customers whose resources the request targets.",
			},
			{
				Name:        FieldCongestionID,
				Kind:        KindString,
				Required:    true,
				Description: "Identifier of the congestion problem the request addresses.",
			},
			{
				Name:        FieldBidResolution,
				Kind:        KindReal,
				Unit:        "kW",
				Min:         Float64Ptr(0),
				Description: "Step size the bids should use.",
			},
		})
	if err != nil {
		panic("failed to build Request schema: " + err.Error())
	}
	requestSchema = schema

	err = registry.Register(&registry.Registration{
		Name:        TypeRequest.Name,
		Version:     TypeRequest.Version,
		Description: schema.Description(),
		Schema:      schema,
		Example: map[string]any{
			FieldMessageID:        "grid-operator-1-10",
			FieldTimestamp:        "2023-01-01T00:00:00Z",
			FieldEpochNumber:      2,
			FieldActivationTime:   "2023-01-01T00:15:00Z",
			FieldDuration:         60.0,
			FieldDirection:        DirectionUpregulation,
			FieldRealPowerMin:     5.0,
			FieldRealPowerRequest: 20.0,
			FieldCustomerIDs:      "GridA-1,GridA-2",
			FieldCongestionID:     "congestion-north-1",
		},
	})
	if err != nil {
		panic("failed to register Request schema: " + err.Error())
	}
}

// RequestSchema returns the validator set for Request messages.
func RequestSchema() *Schema {
	return requestSchema
}

// Request is a typed view over a validated flexibility request message.
type Request struct {
	*ResultMessage
}

// NewRequest validates a raw field map as a Request message.
func NewRequest(values map[string]any) (*Request, error) {
	msg, err := requestSchema.FromValues(values)
	if err != nil {
		return nil, err
	}
	return &Request{msg}, nil
}

// AsRequest wraps an already validated message in the typed view.
func AsRequest(msg *ResultMessage) (*Request, bool) {
	if msg == nil || !msg.Type().Equal(TypeRequest) {
		return nil, false
	}
	return &Request{msg}, true
}

// ActivationTime returns the start time of the requested regulation.
func (m *Request) ActivationTime() string {
	v, _ := m.StringValue(FieldActivationTime)
	return v
}

// Duration returns the regulation period length in minutes.
func (m *Request) Duration() float64 {
	v, _ := m.Float64Value(FieldDuration)
	return v
}

// Direction returns the direction of the requested regulation.
func (m *Request) Direction() string {
	v, _ := m.StringValue(FieldDirection)
	return v
}

// RealPowerMin returns the smallest acceptable bid in kW.
func (m *Request) RealPowerMin() float64 {
	v, _ := m.Float64Value(FieldRealPowerMin)
	return v
}

// RealPowerRequest returns the requested regulation amount in kW.
func (m *Request) RealPowerRequest() float64 {
	v, _ := m.Float64Value(FieldRealPowerRequest)
	return v
}

// CustomerIDs returns the customers the request targets.
func (m *Request) CustomerIDs() []string {
	v, _ := m.StringListValue(FieldCustomerIDs)
	return v
}

// CongestionID returns the congestion problem identifier.
func (m *Request) CongestionID() string {
	v, _ := m.StringValue(FieldCongestionID)
	return v
}

// BidResolution returns the bid step size in kW, if set.
func (m *Request) BidResolution() (float64, bool) {
	return m.Float64Value(FieldBidResolution)
}
