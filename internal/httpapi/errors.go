package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"marketplace/storefront/internal/domain"
)

func errorBody(c *gin.Context, message string) gin.H {
	return gin.H{
		"error":      message,
		"request_id": c.GetString(requestIDKey),
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidProduct), errors.Is(err, domain.ErrInvalidSettings):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrToggleInFlight):
		return http.StatusConflict
	case errors.Is(err, domain.ErrReadOnly):
		return http.StatusServiceUnavailable
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// writeError is the only place domain errors become HTTP statuses.
// Internal errors are logged and reported without detail.
func writeError(c *gin.Context, err error) {
	status := statusFor(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.WithField("request_id", c.GetString(requestIDKey)).Errorf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		message = "internal server error"
	}
	c.JSON(status, errorBody(c, message))
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorBody(c, "invalid request body: "+err.Error()))
}
