package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"oficina_assistant/internal/adapter/http/dto/request"
	"oficina_assistant/internal/adapter/http/dto/response"
	"oficina_assistant/internal/adapter/http/middleware"
	"oficina_assistant/internal/usecase/assistant"
	"oficina_assistant/pkg"
)

//go:generate mockgen -source=chat_handler.go -destination=mocks/chat_handler_mock.go -package=mocks

type ChatRunner interface {
	RunChat(ctx context.Context, req assistant.ChatRequest) assistant.ChatResult
}

type CreditMeter interface {
	CheckAndConsume(ctx context.Context, tenantID string) (assistant.CreditCheck, error)
}

// ChatHandler serves the AI assistant endpoint.
type ChatHandler struct {
	chat  ChatRunner
	meter CreditMeter
	log   *logrus.Entry
}

func NewChatHandler(chat ChatRunner, meter CreditMeter, logger *logrus.Logger) *ChatHandler {
	return &ChatHandler{chat: chat, meter: meter, log: logger.WithField("component", "chat_handler")}
}

// Chat godoc
// @Summary      Talk to the shop assistant
// @Description  Runs one assistant turn. One credit is consumed per request; when the monthly allowance is exhausted the response is 200 with error and credit fields.
// @Tags         ai
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        request  body      request.ChatRequest  true  "Conversation so far"
// @Success      200      {object}  response.ChatResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      401      {object}  map[string]string
// @Router       /ai/chat [post]
func (h *ChatHandler) Chat(c *gin.Context) {
	tenantID := middleware.TenantID(c)
	log := h.log.WithField("tenant_id", tenantID)

	var req request.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.WithError(err).Info("[ai][handler] invalid chat request")
		appErr := pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	credits, err := h.meter.CheckAndConsume(c.Request.Context(), tenantID)
	if err != nil {
		if errors.Is(err, assistant.ErrTenantNotFound) {
			log.Info("[ai][handler] tenant from token does not exist")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		log.WithError(err).Error("[ai][handler] credit check failed")
		appErr := pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	if !credits.Allowed {
		c.JSON(http.StatusOK, response.CreditsExhausted(credits))
		return
	}

	res := h.chat.RunChat(c.Request.Context(), assistant.ChatRequest{
		TenantID:   tenantID,
		TenantName: credits.TenantName,
		History:    req.History(),
		Context:    req.Context,
	})
	log.WithFields(logrus.Fields{
		"rounds":     res.Rounds,
		"tool_calls": len(res.ToolCalls),
		"failed":     res.Error != "",
	}).Info("[ai][handler] chat served")
	c.JSON(http.StatusOK, response.FromChat(res, credits))
}
