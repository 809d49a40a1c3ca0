package middleware

import (
	"net/http"
	"net/url"
	"strings"

	"donation-hub/internal/config"
	"donation-hub/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is where the login handler stores the session token for
// browser clients; API clients use the Authorization header instead.
const SessionCookieName = "session"

// AuthMiddleware authenticates the request from the Authorization header or
// the session cookie. Unauthenticated requests get a 401 carrying a login
// URL that preserves the originally requested destination.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				token = cookie
			}
		}

		if token == "" {
			redirectToLogin(c, "Authentication required")
			return
		}

		claims, err := utils.ValidateToken(token, cfg.JWT.Secret)
		if err != nil {
			redirectToLogin(c, "Invalid or expired session")
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}

func redirectToLogin(c *gin.Context, message string) {
	loginURL := "/auth/login?redirect=" + url.QueryEscape(c.Request.URL.RequestURI())
	c.Header("Location", loginURL)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success":   false,
		"message":   message,
		"login_url": loginURL,
	})
}
