package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"anoa.com/postpilot/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	testSecret   = "test-secret"
	testAgentKey = "agent-key"
)

func newTestRouter(handlerFor func(m *middleware.AuthMiddleware) gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	m := middleware.NewAuthMiddleware(testSecret, testAgentKey)
	r := gin.New()
	r.GET("/guarded", handlerFor(m), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		agent, _ := c.Get("agent")
		c.JSON(http.StatusOK, gin.H{"user_id": userID, "agent": agent})
	})
	return r
}

func signToken(t *testing.T, subject string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	r := newTestRouter(func(m *middleware.AuthMiddleware) gin.HandlerFunc { return m.RequireAuth() })

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	r := newTestRouter(func(m *middleware.AuthMiddleware) gin.HandlerFunc { return m.RequireAuth() })

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-123", time.Hour))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	r := newTestRouter(func(m *middleware.AuthMiddleware) gin.HandlerFunc { return m.RequireAuth() })

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-123", -time.Hour))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}
}

func TestRequireAgentKeyRejectsSessionToken(t *testing.T) {
	r := newTestRouter(func(m *middleware.AuthMiddleware) gin.HandlerFunc { return m.RequireAgentKey() })

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-123", time.Hour))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}
}

func TestRequireAgentKeyAcceptsSharedSecret(t *testing.T) {
	r := newTestRouter(func(m *middleware.AuthMiddleware) gin.HandlerFunc { return m.RequireAgentKey() })

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("X-API-Key", testAgentKey)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
}

func TestRequireAgentKeyRejectsWrongSecret(t *testing.T) {
	r := newTestRouter(func(m *middleware.AuthMiddleware) gin.HandlerFunc { return m.RequireAgentKey() })

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("X-API-Key", "wrong")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}
}

func TestRequireAuthOrAgentKeyAcceptsEither(t *testing.T) {
	r := newTestRouter(func(m *middleware.AuthMiddleware) gin.HandlerFunc { return m.RequireAuthOrAgentKey() })

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("X-API-Key", testAgentKey)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("agent key: expected 200 got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-123", time.Hour))
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("session: expected 200 got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/guarded", nil)
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous: expected 401 got %d", rr.Code)
	}
}
