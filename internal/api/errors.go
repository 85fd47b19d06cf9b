package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gramflow/gramflow/internal/social"
	"github.com/gramflow/gramflow/pkg/logging"
)

// httpStatus maps a core error kind to an HTTP status code
func httpStatus(err error) int {
	switch {
	case errors.Is(err, social.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, social.ErrInvalidOperation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, social.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError terminates the request with the mapped status. Store
// failures are logged and reported as a generic infrastructure failure so
// no internal state leaks to the caller.
func abortWithError(c *gin.Context, err error) {
	status := httpStatus(err)
	if status == http.StatusInternalServerError {
		logging.GetLogger().Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.AbortWithStatusJSON(status, gin.H{"error": "internal error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
