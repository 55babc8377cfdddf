package request

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"oficina_assistant/internal/domain/entities"
)

func TestChatRequestHistory(t *testing.T) {
	req := ChatRequest{Messages: []ChatMessageRequest{
		{Role: "user", Content: "oi"},
		{Role: "assistant", Content: "olá"},
	}}
	assert.Equal(t, []entities.ChatMessage{
		{Role: entities.ChatRoleUser, Content: "oi"},
		{Role: entities.ChatRoleAssistant, Content: "olá"},
	}, req.History())
}
