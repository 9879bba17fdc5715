package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"marketplace/storefront/internal/auth"
	"marketplace/storefront/internal/domain"
)

const (
	requestIDKey = "request_id"
	sessionKey   = "session"

	requestIDHeader = "X-Request-ID"
)

// RequestLogger assigns a request id and writes one access log line per
// request.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(requestIDHeader, requestID)

		start := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"size":       c.Writer.Size(),
			"duration":   time.Since(start),
			"client_ip":  c.ClientIP(),
		})
		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			entry.Error("HTTP request failed")
		case status >= http.StatusBadRequest:
			entry.Warn("HTTP request rejected")
		default:
			entry.Debug("HTTP request completed")
		}
	}
}

func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.WithField("request_id", c.GetString(requestIDKey)).Errorf("💥 HTTP request panicked: %v", r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody(c, "internal server error"))
			}
		}()
		c.Next()
	}
}

// RequireAdmin resolves the bearer token to a session and lets only admins
// through.
func RequireAdmin(authenticator auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			writeError(c, domain.ErrUnauthorized)
			c.Abort()
			return
		}

		session, err := authenticator.Session(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, domain.ErrUnauthorized) {
				err = errors.Join(domain.ErrUnauthorized, err)
			}
			writeError(c, err)
			c.Abort()
			return
		}

		if !session.IsAdmin() {
			log.Warnf("🚫 User %s with role %q tried to reach %s", session.UserID, session.Role, c.Request.URL.Path)
			writeError(c, domain.ErrForbidden)
			c.Abort()
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
