package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oficina_assistant/internal/adapter/persistence/memory"
	"oficina_assistant/internal/domain/entities"
	"oficina_assistant/internal/infrastructure/config"
	"oficina_assistant/internal/usecase/assistant"
	"oficina_assistant/pkg/logging"
)

const testSecret = "routes-secret"

func testConfig() *config.Config {
	return &config.Config{
		Port:          "0",
		StorageDriver: config.StorageMemory,
		AI: config.AIConfig{
			Model:             "gpt-4o-mini",
			ChatTimeout:       5 * time.Second,
			CompletionTimeout: 2 * time.Second,
			ToolTimeout:       time.Second,
			MaxRounds:         5,
		},
		Auth:     config.AuthConfig{JWTSecret: testSecret},
		Payments: config.PaymentsConfig{Mock: "true"},
	}
}

func bearer(t *testing.T, tenantID string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"tenant_id": tenantID,
		"exp":       time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := memory.NewDB()
	limit := 10
	memory.NewTenantRepository(db).Put(entities.Tenant{
		ID:               "t1",
		Name:             "Oficina Central",
		AICreditsLimit:   &limit,
		AICreditsResetAt: time.Now().UTC().AddDate(0, 1, 0),
	})
	return newRouter(testConfig(), memoryRepositories(db), logging.Discard())
}

func TestRouter(t *testing.T) {
	r := newTestRouter(t)

	t.Run("ping", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
	})

	t.Run("metrics", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "oficina_http_request_duration_seconds")
	})

	t.Run("chat requires a token", func(t *testing.T) {
		for _, path := range []string{"/ai/chat", "/v1/ai/chat"} {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(`{"messages":[{"role":"user","content":"oi"}]}`)))

			assert.Equal(t, http.StatusUnauthorized, w.Code, path)
			assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String(), path)
		}
	})

	t.Run("unknown tenant is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/ai/chat", bytes.NewBufferString(`{"messages":[{"role":"user","content":"oi"}]}`))
		req.Header.Set("Authorization", bearer(t, "ghost"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("chat without completion key consumes a credit and explains", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/ai/chat", bytes.NewBufferString(`{"messages":[{"role":"user","content":"quantos clientes tenho?"}]}`))
		req.Header.Set("Authorization", bearer(t, "t1"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, assistant.MsgNotConfigured, body["error"])
		assert.EqualValues(t, 1, body["credits_used_this_month"])
		assert.EqualValues(t, 10, body["credits_limit"])
	})

	t.Run("payment lookup is tenant scoped", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/quotes/q-unknown/payments", nil)
		req.Header.Set("Authorization", bearer(t, "t1"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestNewRepositoriesRejectsUnknownDriver(t *testing.T) {
	cfg := testConfig()
	cfg.StorageDriver = "postgres"

	_, err := newRepositories(t.Context(), cfg, logging.Discard())

	require.Error(t, err)
}

func TestNewRepositoriesSeedsMemoryStore(t *testing.T) {
	gin.SetMode(gin.TestMode)
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"tenants": [{"id": "t1", "name": "Oficina Central", "ai_credits_limit": 5, "ai_credits_reset_at": "2099-01-01T00:00:00Z"}]
	}`), 0o600))
	cfg := testConfig()
	cfg.MemorySeedFile = path

	repos, err := newRepositories(t.Context(), cfg, logging.Discard())
	require.NoError(t, err)
	r := newRouter(cfg, repos, logging.Discard())

	req := httptest.NewRequest(http.MethodPost, "/ai/chat", bytes.NewBufferString(`{"messages":[{"role":"user","content":"oi"}]}`))
	req.Header.Set("Authorization", bearer(t, "t1"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"credits_used_this_month":1`)
	assert.Contains(t, w.Body.String(), `"credits_limit":5`)
}

func TestNewRepositoriesRejectsBrokenSeed(t *testing.T) {
	cfg := testConfig()
	cfg.MemorySeedFile = filepath.Join(t.TempDir(), "missing.json")

	_, err := newRepositories(t.Context(), cfg, logging.Discard())

	require.Error(t, err)
}
