package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/catalog-admin/internal/errors"
	"github.com/ikkim/catalog-admin/pkg/backend"
)

// TokenKey is the gin context key holding the caller's bearer token
const TokenKey = "token"

// AuthMiddleware forwards the dashboard's bearer token to the catalog backend.
// Tokens are checked for shape only; the backend decides whether they are valid.
type AuthMiddleware struct {
	// allowQueryToken accepts ?token= when no header is sent (browsers cannot
	// set headers on a websocket handshake)
	allowQueryToken bool
}

func NewAuthMiddleware(allowQueryToken bool) *AuthMiddleware {
	return &AuthMiddleware{allowQueryToken: allowQueryToken}
}

// RequireToken aborts with 401 when no bearer token is present
func (m *AuthMiddleware) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
				log.Warn("Invalid authorization header format", map[string]interface{}{
					"path": c.Request.URL.Path,
				})
				errors.RespondWithError(c, http.StatusUnauthorized, errors.AuthUnauthorized, "Invalid authorization header")
				c.Abort()
				return
			}
			token = strings.TrimSpace(parts[1])
		} else if m.allowQueryToken {
			token = c.Query("token")
		}

		if token == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			errors.Unauthorized(c, "Please sign in")
			c.Abort()
			return
		}

		c.Set(TokenKey, token)
		c.Request = c.Request.WithContext(backend.WithToken(c.Request.Context(), token))

		c.Next()
	}
}

// GetToken extracts the forwarded token from context
func GetToken(c *gin.Context) (string, bool) {
	token, exists := c.Get(TokenKey)
	if !exists {
		return "", false
	}
	s, ok := token.(string)
	return s, ok && s != ""
}
