package request

import "oficina_assistant/internal/domain/entities"

type ChatMessageRequest struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /ai/chat. Context is optional UI state
// (current screen, selected record) passed through to the assistant.
type ChatRequest struct {
	Messages []ChatMessageRequest `json:"messages" binding:"required,min=1,dive"`
	Context  map[string]any       `json:"context"`
}

func (r ChatRequest) History() []entities.ChatMessage {
	out := make([]entities.ChatMessage, 0, len(r.Messages))
	for _, m := range r.Messages {
		out = append(out, entities.ChatMessage{Role: m.Role, Content: m.Content})
	}
	return out
}
