package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

const tenantIDKey = "tenant_id"

var errMissingTenant = errors.New("token has no tenant_id claim")

// TenantClaims are the access-token claims the service relies on. The tenant
// may be a top-level claim or live under app_metadata.
type TenantClaims struct {
	jwt.RegisteredClaims
	TenantID    string `json:"tenant_id,omitempty"`
	AppMetadata struct {
		TenantID string `json:"tenant_id,omitempty"`
	} `json:"app_metadata"`
}

func (c TenantClaims) Tenant() string {
	if id := strings.TrimSpace(c.TenantID); id != "" {
		return id
	}
	return strings.TrimSpace(c.AppMetadata.TenantID)
}

// TenantAuth validates HS256 bearer tokens and stores the tenant id in the
// gin context. Requests without a valid token get 401 {"error":"unauthorized"}.
func TenantAuth(secret string, logger *logrus.Logger) gin.HandlerFunc {
	log := logger.WithField("component", "tenant_auth")
	if secret == "" {
		log.Warn("[auth][middleware] AUTH_JWT_SECRET not set, every request will be rejected")
	}
	key := []byte(secret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *gin.Context) {
		tenantID, err := tenantFromRequest(c.GetHeader("Authorization"), key, parser)
		if err != nil {
			log.WithError(err).WithField("path", c.FullPath()).Info("[auth][middleware] unauthorized")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Set(tenantIDKey, tenantID)
		c.Next()
	}
}

func tenantFromRequest(header string, key []byte, parser *jwt.Parser) (string, error) {
	if len(key) == 0 {
		return "", errors.New("auth secret not configured")
	}
	raw, ok := strings.CutPrefix(strings.TrimSpace(header), "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return "", errors.New("missing bearer token")
	}
	claims := &TenantClaims{}
	if _, err := parser.ParseWithClaims(strings.TrimSpace(raw), claims, func(*jwt.Token) (any, error) {
		return key, nil
	}); err != nil {
		return "", err
	}
	tenant := claims.Tenant()
	if tenant == "" {
		return "", errMissingTenant
	}
	return tenant, nil
}

// TenantID returns the tenant resolved by TenantAuth, or "".
func TenantID(c *gin.Context) string {
	return c.GetString(tenantIDKey)
}
