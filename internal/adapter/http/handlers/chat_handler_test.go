package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"oficina_assistant/internal/adapter/http/dto/response"
	"oficina_assistant/internal/adapter/http/handlers/mocks"
	"oficina_assistant/internal/usecase/assistant"
	"oficina_assistant/pkg/logging"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func intPtr(v int) *int { return &v }

func TestChatHandler_Chat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(h *ChatHandler) *gin.Engine {
		r := gin.New()
		r.Use(withTenant("t1"))
		r.POST("/ai/chat", h.Chat)
		return r
	}
	post := func(r *gin.Engine, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/ai/chat", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	t.Run("rejects empty conversation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		chat := mocks.NewMockChatRunner(ctrl)
		meter := mocks.NewMockCreditMeter(ctrl)
		r := newRouter(NewChatHandler(chat, meter, logging.Discard()))

		w := post(r, `{"messages":[]}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown tenant is unauthorized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		chat := mocks.NewMockChatRunner(ctrl)
		meter := mocks.NewMockCreditMeter(ctrl)
		r := newRouter(NewChatHandler(chat, meter, logging.Discard()))

		meter.EXPECT().CheckAndConsume(gomock.Any(), "t1").Return(assistant.CreditCheck{}, assistant.ErrTenantNotFound)

		w := post(r, `{"messages":[{"role":"user","content":"oi"}]}`)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
	})

	t.Run("meter failure is internal error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		chat := mocks.NewMockChatRunner(ctrl)
		meter := mocks.NewMockCreditMeter(ctrl)
		r := newRouter(NewChatHandler(chat, meter, logging.Discard()))

		meter.EXPECT().CheckAndConsume(gomock.Any(), "t1").Return(assistant.CreditCheck{}, errors.New("dynamo down"))

		w := post(r, `{"messages":[{"role":"user","content":"oi"}]}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("exhausted credits skip the assistant", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		chat := mocks.NewMockChatRunner(ctrl)
		meter := mocks.NewMockCreditMeter(ctrl)
		r := newRouter(NewChatHandler(chat, meter, logging.Discard()))

		meter.EXPECT().CheckAndConsume(gomock.Any(), "t1").
			Return(assistant.CreditCheck{Allowed: false, Used: 100, Limit: intPtr(100)}, nil)

		w := post(r, `{"messages":[{"role":"user","content":"oi"}]}`)

		require.Equal(t, http.StatusOK, w.Code)
		var body response.ChatResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, response.MsgCreditsExhausted, body.Error)
		assert.Empty(t, body.Message)
		require.NotNil(t, body.CreditsUsedThisMonth)
		assert.Equal(t, 100, *body.CreditsUsedThisMonth)
		assert.Equal(t, 100, *body.CreditsLimit)
	})

	t.Run("runs the assistant with tenant and context", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		chat := mocks.NewMockChatRunner(ctrl)
		meter := mocks.NewMockCreditMeter(ctrl)
		r := newRouter(NewChatHandler(chat, meter, logging.Discard()))

		meter.EXPECT().CheckAndConsume(gomock.Any(), "t1").
			Return(assistant.CreditCheck{Allowed: true, Used: 3, Limit: intPtr(100), TenantName: "Oficina do Zé"}, nil)
		chat.EXPECT().RunChat(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, req assistant.ChatRequest) assistant.ChatResult {
			assert.Equal(t, "t1", req.TenantID)
			assert.Equal(t, "Oficina do Zé", req.TenantName)
			require.Len(t, req.History, 2)
			assert.Equal(t, "assistant", req.History[1].Role)
			assert.Equal(t, "quotes", req.Context["screen"])
			return assistant.ChatResult{
				Message:   "Você tem 2 clientes.",
				ToolCalls: []assistant.ToolCallRecord{{Name: assistant.ToolListCustomers}},
				Rounds:    2,
			}
		})

		w := post(r, `{"messages":[{"role":"user","content":"oi"},{"role":"assistant","content":"olá"}],"context":{"screen":"quotes"}}`)

		require.Equal(t, http.StatusOK, w.Code)
		var body response.ChatResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Você tem 2 clientes.", body.Message)
		assert.Empty(t, body.Error)
		assert.Equal(t, 3, *body.CreditsUsedThisMonth)
		require.Len(t, body.ToolCalls, 1)
		assert.Equal(t, assistant.ToolListCustomers, body.ToolCalls[0].Name)
	})

	t.Run("unmetered tenant gets no credit fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		chat := mocks.NewMockChatRunner(ctrl)
		meter := mocks.NewMockCreditMeter(ctrl)
		r := newRouter(NewChatHandler(chat, meter, logging.Discard()))

		meter.EXPECT().CheckAndConsume(gomock.Any(), "t1").Return(assistant.CreditCheck{Allowed: true}, nil)
		chat.EXPECT().RunChat(gomock.Any(), gomock.Any()).Return(assistant.ChatResult{Error: assistant.MsgTimeout})

		w := post(r, `{"messages":[{"role":"user","content":"oi"}]}`)

		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"error":"`+assistant.MsgTimeout+`"}`, w.Body.String())
	})
}
