package handlers

import (
	"errors"
	"net/http"

	"tenant-admin-backend/internal/auth"
	apperrors "tenant-admin-backend/internal/errors"
	"tenant-admin-backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// retryAfterSeconds is sent with 503 responses caused by transient store errors
const retryAfterSeconds = "2"

// Messages returned to clients. Store details never leave the process.
const (
	msgAccessDenied  = "access to the requested tenant is not permitted"
	msgUnauthorized  = "user is not recognised"
	msgServiceBusy   = "service busy"
	msgUnavailable   = "service temporarily unavailable"
	msgInternalError = "internal server error"
)

// ErrorResponse represents a standard API error response
type ErrorResponse struct {
	Error string `json:"error" example:"error message"`
}

// RespondError maps err to a status code and writes a JSON error body
func RespondError(c *gin.Context, err error) {
	status, message := classifyError(err)

	log := logger.WithContext(c).WithError(err).WithField("status", status)
	switch {
	case status >= http.StatusInternalServerError:
		log.Error("request failed")
	case status == http.StatusForbidden || status == http.StatusUnauthorized:
		log.Warn("request rejected")
	default:
		log.Debug("request rejected")
	}

	if apperrors.IsTransient(err) {
		c.Header("Retry-After", retryAfterSeconds)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}

func classifyError(err error) (int, string) {
	switch {
	case apperrors.IsValidation(err), apperrors.IsInvalidIdentifier(err):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrInvalidPaginationParams), errors.Is(err, apperrors.ErrInvalidStatus):
		return http.StatusBadRequest, err.Error()
	case apperrors.IsAuthentication(err), errors.Is(err, apperrors.ErrUserNotFound):
		return http.StatusUnauthorized, msgUnauthorized
	case apperrors.IsAuthorization(err), errors.Is(err, apperrors.ErrInvalidRole):
		return http.StatusForbidden, msgAccessDenied
	case apperrors.IsNotFound(err):
		return http.StatusNotFound, err.Error()
	case apperrors.IsPoolExhausted(err):
		return http.StatusServiceUnavailable, msgServiceBusy
	case apperrors.IsTransient(err):
		return http.StatusServiceUnavailable, msgUnavailable
	default:
		return http.StatusInternalServerError, msgInternalError
	}
}

// actingUser returns the authenticated user id or writes a 401
func actingUser(c *gin.Context) (string, bool) {
	id, ok := auth.GetUserID(c)
	if !ok {
		RespondError(c, apperrors.ErrMissingUserContext)
		return "", false
	}
	return id, true
}
