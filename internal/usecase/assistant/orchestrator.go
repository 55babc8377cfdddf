package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"oficina_assistant/internal/domain/entities"
	"oficina_assistant/internal/usecase/interfaces"
)

// User-facing messages for terminal failures. They are shown verbatim in the
// chat thread.
const (
	MsgStepLimit       = "Atingi o limite de etapas para esta solicitação. Por favor, reformule ou divida o pedido em partes menores."
	MsgNotConfigured   = "O assistente de IA não está configurado. Peça ao administrador do sistema para cadastrar a chave da API (OPENAI_API_KEY)."
	MsgQuotaExceeded   = "O limite de uso da API de IA foi atingido. Verifique o plano e o faturamento da conta do provedor e tente novamente mais tarde."
	MsgInvalidKey      = "A chave da API de IA é inválida ou expirou. Peça ao administrador do sistema para verificar as credenciais."
	MsgTimeout         = "O assistente demorou demais para responder. Tente novamente em instantes."
	MsgGenericFailure  = "Não foi possível falar com o assistente agora. Tente novamente em instantes."
	MsgEmptyCompletion = "Não consegui gerar uma resposta. Pode reformular a pergunta?"
)

const DefaultMaxRounds = 5

type OrchestratorConfig struct {
	Model             string
	MaxRounds         int
	ChatTimeout       time.Duration
	CompletionTimeout time.Duration
	// Location is the shop's time zone for the date in the system prompt.
	Location *time.Location
}

// ChatRequest is one inbound chat turn. Only user and assistant messages of
// History are forwarded to the model.
type ChatRequest struct {
	TenantID   string
	TenantName string
	History    []entities.ChatMessage
	Context    map[string]any
}

// ToolCallRecord lists a tool executed during the run, for UI display.
type ToolCallRecord struct {
	Name  string `json:"name"`
	Error bool   `json:"error"`
}

// ChatResult carries either the final assistant Message or a user-facing
// Error, never both.
type ChatResult struct {
	Message   string
	Error     string
	ToolCalls []ToolCallRecord
	Rounds    int
}

type Orchestrator struct {
	client interfaces.ICompletionClient
	tools  ToolRunner
	cfg    OrchestratorConfig
	log    *logrus.Entry
	now    func() time.Time
}

func NewOrchestrator(client interfaces.ICompletionClient, tools ToolRunner, cfg OrchestratorConfig, logger *logrus.Logger) *Orchestrator {
	if cfg.MaxRounds <= 0 {
		cfg.MaxRounds = DefaultMaxRounds
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Orchestrator{
		client: client,
		tools:  tools,
		cfg:    cfg,
		log:    logger.WithField("component", "chat_orchestrator"),
		now:    time.Now,
	}
}

// RunChat drives the completion/tool loop until the model answers without
// tool calls or the round limit is reached.
func (o *Orchestrator) RunChat(ctx context.Context, req ChatRequest) ChatResult {
	if o.cfg.ChatTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.ChatTimeout)
		defer cancel()
	}
	log := o.log.WithField("tenant_id", req.TenantID)

	messages := make([]entities.ChatMessage, 0, len(req.History)+1)
	messages = append(messages, entities.ChatMessage{
		Role:    entities.ChatRoleSystem,
		Content: systemPrompt(req.TenantName, req.Context, o.now().In(o.cfg.Location)),
	})
	for _, m := range req.History {
		if m.Role != entities.ChatRoleUser && m.Role != entities.ChatRoleAssistant {
			continue
		}
		messages = append(messages, entities.ChatMessage{Role: m.Role, Content: m.Content})
	}

	tools := Catalog()
	var result ChatResult
	for round := 1; round <= o.cfg.MaxRounds; round++ {
		result.Rounds = round
		resp, err := o.complete(ctx, messages, tools)
		if err != nil {
			orchestrationsTotal.WithLabelValues("error").Inc()
			log.WithField("round", round).WithError(err).Error("[assistant][orchestrator] completion failed")
			result.Error = friendlyError(err)
			return result
		}

		calls := resp.Message.ToolCalls
		if len(calls) == 0 {
			orchestrationsTotal.WithLabelValues("done").Inc()
			result.Message = strings.TrimSpace(resp.Message.Content)
			if result.Message == "" {
				result.Message = MsgEmptyCompletion
			}
			log.WithFields(logrus.Fields{"round": round, "tool_calls": len(result.ToolCalls)}).Info("[assistant][orchestrator] chat done")
			return result
		}

		for _, call := range calls {
			args := json.RawMessage(call.Arguments)
			if !json.Valid(args) {
				log.WithFields(logrus.Fields{"round": round, "tool": call.Name}).Warn("[assistant][orchestrator] malformed tool arguments, using {}")
				args = json.RawMessage("{}")
			}
			out := o.tools.Execute(ctx, call.Name, args, req.TenantID)
			result.ToolCalls = append(result.ToolCalls, ToolCallRecord{Name: call.Name, Error: IsErrorResult(out)})

			messages = append(messages,
				entities.ChatMessage{Role: entities.ChatRoleAssistant, ToolCalls: []entities.ToolCall{call}},
				entities.ChatMessage{Role: entities.ChatRoleTool, ToolCallID: call.ID, Content: encodeResult(out)},
			)
		}
	}

	orchestrationsTotal.WithLabelValues("round_limit").Inc()
	log.WithField("rounds", o.cfg.MaxRounds).Warn("[assistant][orchestrator] round limit reached")
	result.Message = MsgStepLimit
	return result
}

func (o *Orchestrator) complete(ctx context.Context, messages []entities.ChatMessage, tools []entities.ToolDescriptor) (interfaces.CompletionResponse, error) {
	if o.cfg.CompletionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.cfg.CompletionTimeout)
		defer cancel()
	}
	start := time.Now()
	resp, err := o.client.Complete(ctx, interfaces.CompletionRequest{
		Model:    o.cfg.Model,
		Messages: messages,
		Tools:    tools,
	})
	completionDuration.Observe(time.Since(start).Seconds())
	status := "ok"
	if err != nil {
		status = "error"
	}
	completionCallsTotal.WithLabelValues(status).Inc()
	return resp, err
}

func encodeResult(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return `{"error":"result could not be encoded"}`
	}
	return string(b)
}

func friendlyError(err error) string {
	switch {
	case errors.Is(err, interfaces.ErrCompletionNotConfigured):
		return MsgNotConfigured
	case errors.Is(err, interfaces.ErrCompletionQuota):
		return MsgQuotaExceeded
	case errors.Is(err, interfaces.ErrCompletionUnauthorized):
		return MsgInvalidKey
	case errors.Is(err, interfaces.ErrCompletionTimeout), errors.Is(err, context.DeadlineExceeded):
		return MsgTimeout
	default:
		return MsgGenericFailure
	}
}
