package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"bodyshop/internal/handler/httperr"
	"bodyshop/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const stackLinesInLogs = 12

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		for _, ginErr := range c.Errors {
			resp, ok := ginErr.Meta.(httperr.Response)
			if ok && resp.Status >= http.StatusInternalServerError {
				attrs := []any{"error", ginErr.Err.Error(), "path", c.Request.URL.Path, "request_id", GetRequestID(c)}
				if gin.Mode() != gin.ReleaseMode {
					attrs = append(attrs, "stack", errs.ExtractStackLines(ginErr.Err, stackLinesInLogs))
				}
				slog.ErrorContext(c.Request.Context(), "request failed", attrs...)
			}
		}

		if c.Writer.Written() {
			return
		}
		// Search backward through the error stack
		for i := len(c.Errors) - 1; i >= 0; i-- {
			err := c.Errors[i]

			if err.IsType(gin.ErrorTypePublic) {
				// Public: Meta ⇒ Return as is
				if resp, ok := err.Meta.(httperr.Response); ok {
					c.JSON(resp.Status, resp)
					return
				}
			}
		}
		if len(c.Errors) == 0 {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": gin.H{"message": "Internal server error"}})
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				slog.ErrorContext(c.Request.Context(), "recovered from panic",
					"error", err,
					"path", c.Request.URL.Path,
					"stack", string(debug.Stack()),
				)

				resp := httperr.Response{Status: http.StatusInternalServerError}
				resp.Error.Message = "Internal server error"

				c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
			}
		}()
		c.Next()
	}
}
