package appErrors

import (
	"net/http"

	"matchboxd_backend/internal/logger"

	"github.com/gin-gonic/gin"
)

// HandleError writes an error as a JSON response with its mapped HTTP status.
// Unknown error types become a generic 500 so storage details never leak.
func HandleError(c *gin.Context, err error) {
	var appErr *AppError
	if As(err, &appErr) {
		if appErr.HTTPCode >= http.StatusInternalServerError {
			logger.Error("internal error",
				"code", appErr.Code,
				"error", appErr.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.AbortWithStatusJSON(appErr.HTTPCode, gin.H{"error": appErr})
		return
	}

	logger.Error("unhandled error", "error", err.Error(), "path", c.Request.URL.Path)
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
		"error": InternalError(err),
	})
}
