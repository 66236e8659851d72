package middleware

import (
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type AuthMiddleware struct {
	secret   string
	agentKey string
}

func NewAuthMiddleware(secret, agentKey string) *AuthMiddleware {
	return &AuthMiddleware{
		secret:   secret,
		agentKey: agentKey,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.authenticateSession(c) {
			return
		}
		c.Next()
	}
}

// RequireAgentKey guards machine-to-machine endpoints with the pre-shared
// automation agent secret. End-user sessions are not accepted here.
func (m *AuthMiddleware) RequireAgentKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.agentKeyValid(c) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing api key"})
			c.Abort()
			return
		}
		c.Set("agent", true)
		c.Next()
	}
}

// RequireAuthOrAgentKey accepts either an end-user session or the agent
// key. Used by the update endpoint so the agent can flip the publication
// flag without a session.
func (m *AuthMiddleware) RequireAuthOrAgentKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.agentKeyValid(c) {
			c.Set("agent", true)
			c.Next()
			return
		}
		if !m.authenticateSession(c) {
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) agentKeyValid(c *gin.Context) bool {
	if m.agentKey == "" {
		return false
	}
	key := c.GetHeader("X-API-Key")
	return key != "" && subtle.ConstantTimeCompare([]byte(key), []byte(m.agentKey)) == 1
}

func (m *AuthMiddleware) authenticateSession(c *gin.Context) bool {
	tokenString := ""
	authHeader := c.GetHeader("Authorization")

	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}

	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
		c.Abort()
		return false
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(m.secret), nil
	})

	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		c.Abort()
		return false
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token claims"})
		c.Abort()
		return false
	}

	c.Set("user_id", claims.Subject)
	return true
}
