package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/job-board/internal/apperrors"
	"github.com/justsurfingit/job-board/internal/logging"
)

// ErrorHandler renders the last error attached to the context as
// {success:false, message}.
func ErrorHandler(log *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := http.StatusInternalServerError
		message := "Internal Server Error"

		if appErr, ok := apperrors.As(err); ok {
			status = appErr.Status
			message = appErr.Message
			if status >= http.StatusInternalServerError {
				log.Error("request failed",
					"path", c.FullPath(),
					"err", appErr.Err,
					"stack", string(appErr.StackTrace()),
				)
			}
		} else {
			log.Error("unhandled error", "path", c.FullPath(), "err", err)
		}

		c.JSON(status, gin.H{
			"success": false,
			"message": message,
		})
	}
}
