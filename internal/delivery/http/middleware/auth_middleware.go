package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"go-hiring-assistant/internal/delivery/http/response"
	"go-hiring-assistant/internal/domain"
	"go-hiring-assistant/pkg/logger"
	"go-hiring-assistant/pkg/sessiontoken"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const SessionCookieName = "hiring_session"

type SessionCookieConfig struct {
	TTL    time.Duration
	Secure bool
}

// SessionMiddleware resolves the interview session id from the signed cookie.
// A missing or invalid cookie starts a fresh session id.
func SessionMiddleware(signer *sessiontoken.Signer, cfg SessionCookieConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var sessionID string
		if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
			if sid, err := signer.Parse(cookie); err == nil {
				sessionID = sid
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
		}

		// Re-issue on every request so active sessions slide forward
		token, err := signer.Issue(sessionID, time.Now())
		if err != nil {
			logger.Log.Error("failed to issue session token", "error", err)
			response.Error(c, http.StatusInternalServerError, "Failed to start session", nil)
			c.Abort()
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookieName, token, int(cfg.TTL.Seconds()), "/", "", cfg.Secure, true)

		c.Set(string(domain.KeySessionID), sessionID)
		c.Next()
	}
}

// SessionID returns the id set by SessionMiddleware.
func SessionID(c *gin.Context) string {
	return c.GetString(string(domain.KeySessionID))
}

// AdminTokenMiddleware guards operator routes with a static bearer token.
// An empty token disables the routes entirely.
func AdminTokenMiddleware(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if adminToken == "" {
			response.Error(c, http.StatusNotFound, "Not found", nil)
			c.Abort()
			return
		}

		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if authHeader == "" || tokenString == authHeader {
			response.Error(c, http.StatusUnauthorized, "Authorization header required", nil)
			c.Abort()
			return
		}

		if subtle.ConstantTimeCompare([]byte(tokenString), []byte(adminToken)) != 1 {
			logger.Log.Warn("admin token rejected", "ip", c.ClientIP(), "path", c.FullPath())
			response.Error(c, http.StatusForbidden, "Invalid admin token", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}
