package response

import (
	"encoding/json"
	"testing"
	"time"

	"oficina_assistant/internal/domain/entities"
	"oficina_assistant/internal/usecase"
)

func TestFromBillingPayment(t *testing.T) {
	now := time.Now().UTC()
	payload := map[string]interface{}{"a": "b"}
	raw := json.RawMessage(`{"id":123}`)

	res := FromBillingPayment(entities.BillingPayment{
		ID:           "pay-1",
		TenantID:     "T1",
		QuoteID:      "q-1",
		Amount:       99.9,
		Date:         now,
		Status:       entities.PaymentStatusAprovado,
		MPPayloadRaw: raw,
		MPPayload:    payload,
	})
	if res.PaymentID != "pay-1" || res.QuoteID != "q-1" || res.Amount != 99.9 {
		t.Fatalf("unexpected ids: %+v", res)
	}
	if res.Status != "aprovado" || !res.PaymentDate.Equal(now) {
		t.Fatalf("unexpected fields: %+v", res)
	}
	if res.MPPayloadRaw != string(raw) || res.MPPayload["a"] != "b" {
		t.Fatalf("unexpected payload: %+v", res)
	}
}

func TestFromPaymentResult(t *testing.T) {
	res := FromPaymentResult(usecase.PaymentResult{
		Payment: entities.BillingPayment{ID: "pay-1", QuoteID: "q-1"},
		Quote: entities.Quote{
			ID: "q-1", QuoteNumber: "COT-000003", Total: 300, AmountPaid: 300,
			PaymentStatus: entities.QuotePaymentPago,
		},
	})
	if res.Payment.PaymentID != "pay-1" {
		t.Fatalf("unexpected payment: %+v", res.Payment)
	}
	if res.Quote.QuoteNumber != "COT-000003" || res.Quote.AmountPending != 0 || res.Quote.PaymentStatus != "pago" {
		t.Fatalf("unexpected quote summary: %+v", res.Quote)
	}
}
