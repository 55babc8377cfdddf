package entities

import "testing"

func TestFormatQuoteNumber(t *testing.T) {
	if got := FormatQuoteNumber(1); got != "COT-000001" {
		t.Fatalf("expected COT-000001, got %s", got)
	}
	if got := FormatQuoteNumber(1234567); got != "COT-1234567" {
		t.Fatalf("expected COT-1234567, got %s", got)
	}
}

func TestQuote_ApplyPayment(t *testing.T) {
	q := Quote{Total: 300, AmountPending: 300, PaymentStatus: QuotePaymentPendente}

	q.ApplyPayment(100.10)
	if q.AmountPaid != 100.10 || q.AmountPending != 199.90 || q.PaymentStatus != QuotePaymentParcial {
		t.Fatalf("unexpected partial state: %+v", q)
	}

	q.ApplyPayment(199.90)
	if q.AmountPending != 0 || q.PaymentStatus != QuotePaymentPago {
		t.Fatalf("unexpected paid state: %+v", q)
	}
}

func TestTenant_Metered(t *testing.T) {
	limit := 10
	if (Tenant{}).Metered() {
		t.Fatalf("nil limit must be unmetered")
	}
	if !(Tenant{AICreditsLimit: &limit}).Metered() {
		t.Fatalf("expected metered tenant")
	}
}
