package response

import (
	"time"

	"oficina_assistant/internal/domain/entities"
	"oficina_assistant/internal/usecase"
)

type BillingPaymentResponse struct {
	PaymentID   string    `json:"payment_id"`
	QuoteID     string    `json:"quote_id"`
	Amount      float64   `json:"amount"`
	PaymentDate time.Time `json:"payment_date"`
	Status      string    `json:"status"`

	MPPayloadRaw string                 `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}

// QuotePaymentSummary is the quote state after a charge.
type QuotePaymentSummary struct {
	QuoteID       string  `json:"quote_id"`
	QuoteNumber   string  `json:"quote_number"`
	Total         float64 `json:"total"`
	AmountPaid    float64 `json:"amount_paid"`
	AmountPending float64 `json:"amount_pending"`
	PaymentStatus string  `json:"payment_status"`
}

type QuotePaymentResponse struct {
	Payment BillingPaymentResponse `json:"payment"`
	Quote   QuotePaymentSummary    `json:"quote"`
}

func FromBillingPayment(p entities.BillingPayment) BillingPaymentResponse {
	return BillingPaymentResponse{
		PaymentID:    p.ID,
		QuoteID:      p.QuoteID,
		Amount:       p.Amount,
		PaymentDate:  p.Date,
		Status:       string(p.Status),
		MPPayloadRaw: string(p.MPPayloadRaw),
		MPPayload:    p.MPPayload,
	}
}

func FromPaymentResult(r usecase.PaymentResult) QuotePaymentResponse {
	return QuotePaymentResponse{
		Payment: FromBillingPayment(r.Payment),
		Quote: QuotePaymentSummary{
			QuoteID:       r.Quote.ID,
			QuoteNumber:   r.Quote.QuoteNumber,
			Total:         r.Quote.Total,
			AmountPaid:    r.Quote.AmountPaid,
			AmountPending: r.Quote.AmountPending,
			PaymentStatus: string(r.Quote.PaymentStatus),
		},
	}
}
