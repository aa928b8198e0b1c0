package api

import (
	"errors"
	"net/http"

	"github.com/escartian/FitByte/internal/service"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// errorStatus maps service errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrValidationFailed):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrDuplicateEmail), errors.Is(err, service.ErrDuplicateExercise):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrWorkoutNotFound),
		errors.Is(err, service.ErrExerciseNotFound),
		errors.Is(err, service.ErrImageNotFound),
		errors.Is(err, service.ErrHistoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the JSON error body for err. Internal details never reach the client.
func respondError(c *gin.Context, err error) {
	status := errorStatus(err)
	_ = c.Error(err)

	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		c.AbortWithStatusJSON(status, gin.H{"error": vErr.Message, "field": vErr.Field})
		return
	}

	switch status {
	case http.StatusInternalServerError:
		log.WithField("request_id", c.GetString(ContextRequestIDKey)).Errorf("%s %s: %s", c.Request.Method, c.FullPath(), err)
		abortWithError(c, status, "an unexpected error occurred")
	case http.StatusServiceUnavailable:
		log.WithField("request_id", c.GetString(ContextRequestIDKey)).Warnf("%s %s: %s", c.Request.Method, c.FullPath(), err)
		c.Header("Retry-After", "1")
		abortWithError(c, status, service.ErrStorageUnavailable.Error())
	default:
		abortWithError(c, status, rootMessage(err))
	}
}

// rootMessage returns the message of the sentinel err wraps, so wrapped context stays out of responses.
func rootMessage(err error) string {
	for _, sentinel := range []error{
		service.ErrDuplicateEmail,
		service.ErrDuplicateExercise,
		service.ErrInvalidCredentials,
		service.ErrUnauthenticated,
		service.ErrUnauthorized,
		service.ErrUserNotFound,
		service.ErrWorkoutNotFound,
		service.ErrExerciseNotFound,
		service.ErrImageNotFound,
		service.ErrHistoryNotFound,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
