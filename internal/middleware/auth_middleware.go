package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/core"
)

// errorResponse mirrors the API layer's error body. Defined locally to
// avoid an import cycle with internal/api.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// AuthMiddleware gates the admin surface behind Firebase ID tokens.
type AuthMiddleware struct {
	authClient *auth.Client
	adminEmail string
	logger     *zap.Logger
}

// NewAuthMiddleware creates an AuthMiddleware. adminEmail is the single
// account allowed through; every other valid token is rejected.
func NewAuthMiddleware(authClient *auth.Client, adminEmail string, logger *zap.Logger) *AuthMiddleware {
	if authClient == nil {
		panic("Firebase Auth client is not initialized for AuthMiddleware")
	}
	if adminEmail == "" {
		panic("admin email is not configured for AuthMiddleware")
	}
	return &AuthMiddleware{authClient: authClient, adminEmail: adminEmail, logger: logger}
}

// RequireAdmin verifies the bearer token and checks that it belongs to the
// configured admin account. The admin's email is stored on both the Gin
// context and the request context so services can attribute actions.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "Authorization header is required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "Authorization header format must be 'Bearer {token}'"})
			return
		}

		token, err := m.authClient.VerifyIDToken(c.Request.Context(), parts[1])
		if err != nil {
			m.logger.Warn("ID token verification failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "Invalid or expired authentication token"})
			return
		}

		email, _ := token.Claims["email"].(string)
		if !strings.EqualFold(email, m.adminEmail) {
			m.logger.Warn("Non-admin account attempted dashboard access",
				zap.String("uid", token.UID), zap.String("email", email))
			c.AbortWithStatusJSON(http.StatusForbidden, errorResponse{Error: "Admin access required"})
			return
		}

		c.Set("userID", token.UID)
		c.Set("userEmail", email)
		ctx := context.WithValue(c.Request.Context(), core.ContextKeyAdminEmail, email)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
