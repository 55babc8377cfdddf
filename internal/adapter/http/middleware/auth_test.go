package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oficina_assistant/pkg/logging"
)

const testSecret = "super-secret"

func sign(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func newAuthRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(TenantAuth(secret, logging.Discard()))
	r.GET("/whoami", func(c *gin.Context) {
		c.String(http.StatusOK, TenantID(c))
	})
	return r
}

func TestTenantAuth(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()

	cases := []struct {
		name       string
		secret     string
		header     string
		wantStatus int
		wantTenant string
	}{
		{
			name:       "top-level tenant claim",
			secret:     testSecret,
			header:     "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"tenant_id": "T1", "exp": exp}),
			wantStatus: http.StatusOK,
			wantTenant: "T1",
		},
		{
			name:       "tenant in app_metadata",
			secret:     testSecret,
			header:     "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"app_metadata": map[string]any{"tenant_id": "T2"}, "exp": exp}),
			wantStatus: http.StatusOK,
			wantTenant: "T2",
		},
		{name: "missing header", secret: testSecret, wantStatus: http.StatusUnauthorized},
		{
			name:       "wrong signature",
			secret:     testSecret,
			header:     "Bearer " + sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"tenant_id": "T1"}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired",
			secret:     testSecret,
			header:     "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"tenant_id": "T1", "exp": time.Now().Add(-time.Hour).Unix()}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "no tenant claim",
			secret:     testSecret,
			header:     "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"sub": "u1"}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unsupported algorithm",
			secret:     testSecret,
			header:     "Bearer " + sign(t, jwt.SigningMethodHS512, []byte(testSecret), jwt.MapClaims{"tenant_id": "T1"}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "secret not configured",
			header:     "Bearer " + sign(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{"tenant_id": "T1"}),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			newAuthRouter(tc.secret).ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantStatus == http.StatusOK {
				assert.Equal(t, tc.wantTenant, w.Body.String())
			} else {
				assert.JSONEq(t, `{"error":"unauthorized"}`, w.Body.String())
			}
		})
	}
}
