package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "budgetflow/internal/errors"
	"budgetflow/internal/logger"
)

// ErrorHandler converts errors attached to the Gin context into the uniform
// {success:false, statusCode, message} body. AppErrors keep their status and
// message; anything else is logged in full and answered generically.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		// The last error is the most relevant in a middleware chain.
		err := c.Errors.Last().Err

		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			if appErr.Internal != nil {
				logger.Get().Errorw("app error",
					"code", appErr.Code,
					"message", appErr.Message,
					"internal", appErr.Internal.Error(),
					"path", c.Request.URL.Path,
				)
			}
			c.JSON(appErr.StatusCode, gin.H{
				"success":    false,
				"statusCode": appErr.StatusCode,
				"message":    appErr.Message,
			})
			return
		}

		logger.Get().Errorw("unexpected error",
			"error", err.Error(),
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
		)
		c.JSON(apperrors.ErrInternalServer.StatusCode, gin.H{
			"success":    false,
			"statusCode": apperrors.ErrInternalServer.StatusCode,
			"message":    apperrors.ErrInternalServer.Message,
		})
	}
}
