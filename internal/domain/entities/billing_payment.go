package entities

import (
	"encoding/json"
	"time"
)

// PaymentStatus represents the payment processing outcome.
type PaymentStatus string

const (
	PaymentStatusPendente PaymentStatus = "pendente"
	PaymentStatusAprovado PaymentStatus = "aprovado"
	PaymentStatusNegado   PaymentStatus = "negado"
)

// BillingPayment is a charge made against a quote's pending amount.
//
// Storage model (DynamoDB):
//   - PK: tenant_id, SK: id
//   - quote_id is filtered in the tenant partition
//
// MPPayloadRaw keeps the provider response body for traceability.
type BillingPayment struct {
	ID       string        `json:"id"`
	TenantID string        `json:"tenant_id"`
	QuoteID  string        `json:"quote_id"`
	Amount   float64       `json:"amount"`
	Date     time.Time     `json:"date"`
	Status   PaymentStatus `json:"status"`

	MPPayloadRaw json.RawMessage        `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}
