package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "budgetflow/internal/errors"
	"budgetflow/internal/logger"
)

// getUserID extracts the authenticated user ID from the Gin context.
// Returns ErrUnauthorized if not present.
func getUserID(c *gin.Context) (uint, error) {
	userID, exists := c.Get("userID")
	if !exists {
		return 0, apperrors.ErrUnauthorized
	}
	return userID.(uint), nil
}

// parsePathID parses a uint path parameter.
// Returns ErrInvalidInput if the parameter is not a valid positive integer.
func parsePathID(c *gin.Context, param string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid "+param)
	}
	return uint(id), nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code and message. Otherwise it logs the
// unexpected error and returns a generic internal server error; internal
// detail is never sent to the client.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
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

// respondWithData writes the success envelope shared by all endpoints.
func respondWithData(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// ErrorResponse represents an error response envelope.
type ErrorResponse struct {
	Success    bool   `json:"success" example:"false"`
	StatusCode int    `json:"statusCode" example:"400"`
	Message    string `json:"message"`
}

// SuccessResponse represents a success response envelope.
type SuccessResponse struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}
