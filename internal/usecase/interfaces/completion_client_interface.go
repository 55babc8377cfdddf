package interfaces

import (
	"context"
	"errors"
	"oficina_assistant/internal/domain/entities"
)

// Completion failure kinds. Clients return errors that match one of these
// with errors.Is; anything else is treated as a generic failure.
var (
	ErrCompletionNotConfigured = errors.New("completion endpoint not configured")
	ErrCompletionUnauthorized  = errors.New("completion endpoint rejected credentials")
	ErrCompletionQuota         = errors.New("completion endpoint quota exceeded")
	ErrCompletionTimeout       = errors.New("completion endpoint timed out")
)

// CompletionRequest is one round submitted to the language model. When Tools
// is non-empty the client must send tool_choice=auto.
type CompletionRequest struct {
	Model    string
	Messages []entities.ChatMessage
	Tools    []entities.ToolDescriptor
}

// CompletionResponse carries the first choice returned by the model.
type CompletionResponse struct {
	Message      entities.ChatMessage
	FinishReason string
}

// ICompletionClient abstracts the chat-completion endpoint.
//
//go:generate mockgen -source=completion_client_interface.go -destination=mocks/completion_client_mock.go -package=mock_interfaces
type ICompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, error)
}
