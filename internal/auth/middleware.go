package auth

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
)

// TokenVerifier verifies a bearer credential and returns its decoded claims.
// *auth.Client from the Firebase Admin SDK satisfies this.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// RequireAuth validates the Authorization header and stores the caller's
// subject uid in the context. Missing or invalid tokens are rejected with
// 401 before anything else runs.
func RequireAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			c.Abort()
			return
		}

		decoded, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(CtxSubjectUID, decoded.UID)

		if email, ok := decoded.Claims["email"].(string); ok {
			c.Set(CtxEmail, email)
		}

		c.Next()
	}
}

// DevIdentity reads the caller's subject uid from the X-User-Id header.
// - If the header is missing, it falls back to "demo-user".
// - Use this ONLY for development.
func DevIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if uid == "" {
			uid = "demo-user"
		}

		c.Set(CtxSubjectUID, uid)
		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
