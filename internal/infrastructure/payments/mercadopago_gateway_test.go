package payments

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oficina_assistant/pkg/logging"
)

func TestNewMercadoPagoGateway(t *testing.T) {
	t.Run("real mode requires a token", func(t *testing.T) {
		_, err := NewMercadoPagoGateway("", false, logging.Discard())
		assert.ErrorIs(t, err, ErrMissingMercadoPagoAccessToken)
	})

	t.Run("nil gateway is not configured", func(t *testing.T) {
		var g *MercadoPagoGateway
		_, _, _, err := g.CreatePayment(context.Background(), json.RawMessage(`{}`))
		assert.ErrorIs(t, err, ErrMercadoPagoGatewayNotConfigured)
	})
}

func TestMockPayment(t *testing.T) {
	g, err := NewMercadoPagoGateway("", true, logging.Discard())
	require.NoError(t, err)
	g.now = func() time.Time { return time.Unix(1700000000, 0) }

	id, status, raw, err := g.CreatePayment(context.Background(), json.RawMessage(`{"transaction_amount":150.5,"external_reference":"q1"}`))
	require.NoError(t, err)
	assert.Equal(t, "1700000000000000000", id)
	assert.Equal(t, "approved", status)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, 150.5, body["transaction_amount"])
	assert.Equal(t, "q1", body["external_reference"])
	assert.Equal(t, "accredited", body["status_detail"])
}
