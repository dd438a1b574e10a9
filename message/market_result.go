package message

import (
	"github.com/simcesplatform/domain-messages/registry"
)

// Wire-level names of the LFMMarketResult domain fields not shared with
// Request.
const (
	FieldPrice       = "Price"
	FieldOfferID     = "OfferId"
	FieldResultCount = "ResultCount"
)

// TypeLFMMarketResult identifies local flexibility market result messages:
// the market operator reporting an accepted offer back to the platform.
var TypeLFMMarketResult = Type{Name: "LFMMarketResult", Version: "1.0"}

var lfmMarketResultSchema *Schema

// init builds and registers the LFMMarketResult schema. ResultCount is the
// only required domain field: a result with count zero carries no offer and
// leaves every other field out.
func init() {
	schema, err := NewSchema(TypeLFMMarketResult,
		"Accepted offer reported by the local flexibility market operator.",
		[]Attribute{
			{
				Name:        FieldActivationTime,
				Kind:        KindTimestamp,
				Description: "Start time of the accepted regulation.",
			},
			{
				Name:        FieldDuration,
				Kind:        KindReal,
				Unit:        "Minute",
				Min:         Float64Ptr(0),
				Description: "Length of the accepted regulation period.",
			},
			{
				Name:        FieldDirection,
				Kind:        KindEnum,
				Enum:        directionValues,
				Description: "Direction of the accepted regulation.",
			},
			{
				Name:        FieldPrice,
				Kind:        KindReal,
				Unit:        "EUR",
				Min:         Float64Ptr(0),
				Description: "Price of the accepted offer.",
			},
			{
				Name:        FieldCongestionID,
				Kind:        KindString,
				NonEmpty:    true,
				Description: "Identifier of the congestion problem the offer solves.",
			},
			{
				Name:        FieldOfferID,
				Kind:        KindString,
				NonEmpty:    true,
				Description: "Identifier of the accepted offer.",
			},
			{
				Name:        FieldResultCount,
				Kind:        KindInteger,
				Required:    true,
				Min:         Float64Ptr(0),
				Description: "Total number of accepted offers for this congestion problem in the running epoch.",
			},
			{
				Name:        FieldCustomerIDs,
				Kind:        KindStringList,
				NonEmpty:    true,
				Description: "Customers whose resources the accepted offer uses.",
			},
		})
	if err != nil {
		panic("failed to build LFMMarketResult schema: " + err.Error())
	}
	lfmMarketResultSchema = schema

	err = registry.Register(&registry.Registration{
		Name:        TypeLFMMarketResult.Name,
		Version:     TypeLFMMarketResult.Version,
		Description: schema.Description(),
		Schema:      schema,
		Example: map[string]any{
			FieldMessageID:      "lfm-operator-1-3",
			FieldTimestamp:      "2023-01-01T00:00:00Z",
			FieldEpochNumber:    2,
			FieldActivationTime: "2023-01-01T00:15:00Z",
			FieldDuration:       60.0,
			FieldDirection:      DirectionDownregulation,
			FieldPrice:          2.5,
			FieldCongestionID:   "congestion-north-1",
			FieldOfferID:        "aggregator-2-offer-7",
			FieldResultCount:    1,
			FieldCustomerIDs:    "GridA-1",
		},
	})
	if err != nil {
		panic("failed to register LFMMarketResult schema: " + err.Error())
	}
}

// LFMMarketResultSchema returns the validator set for LFMMarketResult
// messages.
func LFMMarketResultSchema() *Schema {
	return lfmMarketResultSchema
}

// LFMMarketResult is a typed view over a validated market result message.
type LFMMarketResult struct {
	*ResultMessage
}

// NewLFMMarketResult validates a raw field map as an LFMMarketResult
// message.
func NewLFMMarketResult(values map[string]any) (*LFMMarketResult, error) {
	msg, err := lfmMarketResultSchema.FromValues(values)
	if err != nil {
		return nil, err
	}
	return &LFMMarketResult{msg}, nil
}

// AsLFMMarketResult wraps an already validated message in the typed view.
func AsLFMMarketResult(msg *ResultMessage) (*LFMMarketResult, bool) {
	if msg == nil || !msg.Type().Equal(TypeLFMMarketResult) {
		return nil, false
	}
	return &LFMMarketResult{msg}, true
}

// ResultCount returns the number of accepted offers.
func (m *LFMMarketResult) ResultCount() int64 {
	v, _ := m.Int64Value(FieldResultCount)
	return v
}

// ActivationTime returns the start time of the accepted regulation, if set.
func (m *LFMMarketResult) ActivationTime() (string, bool) {
	return m.StringValue(FieldActivationTime)
}

// Duration returns the accepted regulation period in minutes, if set.
func (m *LFMMarketResult) Duration() (float64, bool) {
	return m.Float64Value(FieldDuration)
}

// Direction returns the direction of the accepted regulation, if set.
func (m *LFMMarketResult) Direction() (string, bool) {
	return m.StringValue(FieldDirection)
}

// Price returns the price of the accepted offer in EUR, if set.
func (m *LFMMarketResult) Price() (float64, bool) {
	return m.Float64Value(FieldPrice)
}

// CongestionID returns the congestion problem identifier, if set.
func (m *LFMMarketResult) CongestionID() (string, bool) {
	return m.StringValue(FieldCongestionID)
}

// OfferID returns the accepted offer's identifier, if set.
func (m *LFMMarketResult) OfferID() (string, bool) {
	return m.StringValue(FieldOfferID)
}

// CustomerIDs returns the customers the accepted offer uses, or nil when
// not set.
func (m *LFMMarketResult) CustomerIDs() []string {
	v, _ := m.StringListValue(FieldCustomerIDs)
	return v
}
