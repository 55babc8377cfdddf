package entities

import (
	"fmt"
	"math"
	"time"
)

// QuoteStatus represents the lifecycle of a quote (orçamento):
// em_analise → aprovada/recusada → concluida.
type QuoteStatus string

const (
	QuoteStatusEmAnalise QuoteStatus = "em_analise"
	QuoteStatusAprovada  QuoteStatus = "aprovada"
	QuoteStatusRecusada  QuoteStatus = "recusada"
	QuoteStatusConcluida QuoteStatus = "concluida"
)

// QuotePaymentStatus tracks how much of a quote has been paid.
type QuotePaymentStatus string

const (
	QuotePaymentPendente QuotePaymentStatus = "pendente"
	QuotePaymentParcial  QuotePaymentStatus = "parcial"
	QuotePaymentPago     QuotePaymentStatus = "pago"
)

// Quote is a priced proposal for a customer's vehicle.
//
// Monetary representation:
//   - Total equals the sum of its items' unit_price * quantity when created
//     by the assistant (no discount in that path).
//   - AmountPaid + AmountPending == Total.
type Quote struct {
	ID             string             `json:"id"`
	TenantID       string             `json:"tenant_id"`
	QuoteNumber    string             `json:"quote_number"`
	CustomerID     string             `json:"customer_id"`
	VehicleID      string             `json:"vehicle_id"`
	VehicleMileage *int               `json:"vehicle_mileage"`
	Status         QuoteStatus        `json:"status"`
	ServiceDate    time.Time          `json:"service_date"`
	Subtotal       float64            `json:"subtotal"`
	Discount       float64            `json:"discount"`
	Total          float64            `json:"total"`
	AmountPaid     float64            `json:"amount_paid"`
	AmountPending  float64            `json:"amount_pending"`
	PaymentStatus  QuotePaymentStatus `json:"payment_status"`
	Notes          string             `json:"notes"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

// QuoteItem is a line of a quote. ServiceItemID nil marks a freeform item
// that is not in the catalog and must be priced manually.
type QuoteItem struct {
	ID            string    `json:"id"`
	TenantID      string    `json:"tenant_id"`
	QuoteID       string    `json:"quote_id"`
	ServiceItemID *string   `json:"service_item_id"`
	Description   string    `json:"description"`
	UnitPrice     float64   `json:"unit_price"`
	CostPrice     float64   `json:"cost_price"`
	Quantity      int       `json:"quantity"`
	Total         float64   `json:"total"`
	CreatedAt     time.Time `json:"created_at"`
}

// FormatQuoteNumber renders the human-readable per-tenant quote number.
func FormatQuoteNumber(seq int) string {
	return fmt.Sprintf("COT-%06d", seq)
}

// RoundMoney rounds to cents.
func RoundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// ApplyPayment registers amount as paid and recomputes pending and status.
func (q *Quote) ApplyPayment(amount float64) {
	q.AmountPaid = RoundMoney(q.AmountPaid + amount)
	q.AmountPending = RoundMoney(q.Total - q.AmountPaid)
	if q.AmountPending < 0 {
		q.AmountPending = 0
	}
	switch {
	case q.AmountPending == 0:
		q.PaymentStatus = QuotePaymentPago
	case q.AmountPaid > 0:
		q.PaymentStatus = QuotePaymentParcial
	default:
		q.PaymentStatus = QuotePaymentPendente
	}
}
