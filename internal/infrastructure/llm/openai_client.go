// Package llm talks to an OpenAI-compatible chat completion endpoint.
package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"oficina_assistant/internal/domain/entities"
	"oficina_assistant/internal/usecase/interfaces"
)

var errEmptyChoices = errors.New("completion returned no choices")

type Config struct {
	APIKey  string
	BaseURL string
}

type OpenAIClient struct {
	client *openai.Client
	log    *logrus.Entry
}

var _ interfaces.ICompletionClient = (*OpenAIClient)(nil)

// NewOpenAIClient never fails: without an API key every call returns an
// ErrorKindNotConfigured error, which the assistant shows to the user.
func NewOpenAIClient(cfg Config, logger *logrus.Logger) *OpenAIClient {
	c := &OpenAIClient{log: logger.WithField("component", "openai_client")}
	if strings.TrimSpace(cfg.APIKey) == "" {
		c.log.Warn("[llm][client] OPENAI_API_KEY not set, assistant disabled")
		return c
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	c.client = openai.NewClientWithConfig(clientConfig)
	return c
}

func (c *OpenAIClient) Complete(ctx context.Context, req interfaces.CompletionRequest) (interfaces.CompletionResponse, error) {
	if c.client == nil {
		return interfaces.CompletionResponse{}, &Error{Kind: ErrorKindNotConfigured}
	}

	request := openai.ChatCompletionRequest{
		Model:    req.Model,
		Messages: toOpenAIMessages(req.Messages),
	}
	if len(req.Tools) > 0 {
		request.Tools = toOpenAITools(req.Tools)
		request.ToolChoice = "auto"
	}

	resp, err := c.client.CreateChatCompletion(ctx, request)
	if err != nil {
		classified := ClassifyError(err)
		c.log.WithFields(logrus.Fields{
			"model":       req.Model,
			"kind":        classified.Kind,
			"status_code": classified.StatusCode,
		}).WithError(err).Warn("[llm][client] completion failed")
		return interfaces.CompletionResponse{}, classified
	}
	if len(resp.Choices) == 0 {
		return interfaces.CompletionResponse{}, &Error{Kind: ErrorKindUnknown, Cause: errEmptyChoices}
	}

	choice := resp.Choices[0]
	c.log.WithFields(logrus.Fields{
		"model":             req.Model,
		"finish_reason":     choice.FinishReason,
		"tool_calls":        len(choice.Message.ToolCalls),
		"prompt_tokens":     resp.Usage.PromptTokens,
		"completion_tokens": resp.Usage.CompletionTokens,
	}).Debug("[llm][client] completion done")

	return interfaces.CompletionResponse{
		Message:      fromOpenAIMessage(choice.Message),
		FinishReason: string(choice.FinishReason),
	}, nil
}

func toOpenAIMessages(messages []entities.ChatMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		msg := openai.ChatCompletionMessage{
			Role:       m.Role,
			Content:    m.Content,
			ToolCallID: m.ToolCallID,
		}
		for _, tc := range m.ToolCalls {
			msg.ToolCalls = append(msg.ToolCalls, openai.ToolCall{
				ID:   tc.ID,
				Type: openai.ToolTypeFunction,
				Function: openai.FunctionCall{
					Name:      tc.Name,
					Arguments: tc.Arguments,
				},
			})
		}
		out = append(out, msg)
	}
	return out
}

func toOpenAITools(tools []entities.ToolDescriptor) []openai.Tool {
	out := make([]openai.Tool, 0, len(tools))
	for _, t := range tools {
		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}
	return out
}

func fromOpenAIMessage(m openai.ChatCompletionMessage) entities.ChatMessage {
	msg := entities.ChatMessage{Role: m.Role, Content: m.Content}
	for _, tc := range m.ToolCalls {
		msg.ToolCalls = append(msg.ToolCalls, entities.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return msg
}
