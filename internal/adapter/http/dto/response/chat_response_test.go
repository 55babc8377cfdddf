package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oficina_assistant/internal/usecase/assistant"
)

func TestChatResponseJSON(t *testing.T) {
	limit := 10

	t.Run("metered success", func(t *testing.T) {
		res := FromChat(
			assistant.ChatResult{Message: "ok", ToolCalls: []assistant.ToolCallRecord{{Name: "list_customers"}}},
			assistant.CreditCheck{Allowed: true, Used: 3, Limit: &limit},
		)
		b, err := json.Marshal(res)
		require.NoError(t, err)
		assert.JSONEq(t, `{"message":"ok","credits_used_this_month":3,"credits_limit":10,"tool_calls":[{"name":"list_customers","error":false}]}`, string(b))
	})

	t.Run("unmetered omits credits", func(t *testing.T) {
		b, err := json.Marshal(FromChat(assistant.ChatResult{Message: "ok"}, assistant.CreditCheck{Allowed: true, Used: 4}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"message":"ok"}`, string(b))
	})

	t.Run("exhausted keeps zero values", func(t *testing.T) {
		zero := 0
		b, err := json.Marshal(CreditsExhausted(assistant.CreditCheck{Used: 0, Limit: &zero}))
		require.NoError(t, err)
		assert.JSONEq(t, `{"error":"`+MsgCreditsExhausted+`","credits_used_this_month":0,"credits_limit":0}`, string(b))
	})
}
