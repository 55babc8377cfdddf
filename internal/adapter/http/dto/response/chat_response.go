package response

import "oficina_assistant/internal/usecase/assistant"

// ChatResponse carries either message or error. Credit fields are omitted
// for unmetered tenants.
type ChatResponse struct {
	Message              string                     `json:"message,omitempty"`
	Error                string                     `json:"error,omitempty"`
	CreditsUsedThisMonth *int                       `json:"credits_used_this_month,omitempty"`
	CreditsLimit         *int                       `json:"credits_limit,omitempty"`
	ToolCalls            []assistant.ToolCallRecord `json:"tool_calls,omitempty"`
}

// MsgCreditsExhausted is returned with HTTP 200 when the monthly allowance is used up.
const MsgCreditsExhausted = "Você atingiu o limite mensal de créditos do assistente de IA. Os créditos serão renovados no início do próximo mês."

func FromChat(res assistant.ChatResult, credits assistant.CreditCheck) ChatResponse {
	out := ChatResponse{
		Message:   res.Message,
		Error:     res.Error,
		ToolCalls: res.ToolCalls,
	}
	withCredits(&out, credits)
	return out
}

func CreditsExhausted(credits assistant.CreditCheck) ChatResponse {
	out := ChatResponse{Error: MsgCreditsExhausted}
	withCredits(&out, credits)
	return out
}

func withCredits(out *ChatResponse, credits assistant.CreditCheck) {
	if credits.Limit == nil {
		return
	}
	used, limit := credits.Used, *credits.Limit
	out.CreditsUsedThisMonth = &used
	out.CreditsLimit = &limit
}
