package request

import "encoding/json"

// QuotePaymentRequest is the body of POST /v1/quotes/{quote_id}/payments.
//
// `mp_payload` is forwarded to Mercado Pago as-is; the amount and
// external_reference are always taken from the quote.
type QuotePaymentRequest struct {
	MPPayload json.RawMessage `json:"mp_payload" swaggertype:"object"`
}
