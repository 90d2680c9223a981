package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"saganowatch/pkg/logger"
)

// Common error type definitions
var (
	ErrInvalidParam     = errors.New("invalid parameter")
	ErrResourceNotFound = errors.New("resource not found")
)

// APIError represents a custom API error structure
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("API Error (Code: %d, Message: %s): %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("API Error (Code: %d, Message: %s)", e.Code, e.Message)
}

// Unwrap supports error wrapping
func (e *APIError) Unwrap() error {
	return e.Err
}

// NewBadRequestError creates a 400 Bad Request error
func NewBadRequestError(message string, err error) *APIError {
	return &APIError{Code: http.StatusBadRequest, Message: message, Err: err}
}

// NewNotFoundError creates a 404 Not Found error
func NewNotFoundError(message string, err error) *APIError {
	return &APIError{Code: http.StatusNotFound, Message: message, Err: err}
}

// NewInternalServerError creates a 500 Internal Server Error
func NewInternalServerError(message string, err error) *APIError {
	return &APIError{Code: http.StatusInternalServerError, Message: message, Err: err}
}

// HandleError writes a unified error response
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Err != nil {
			logger.Error("API error occurred",
				zap.Int("code", apiErr.Code),
				zap.String("message", apiErr.Message),
				zap.Error(apiErr.Err))
		}
		body := gin.H{"error": true, "message": apiErr.Message, "code": apiErr.Code}
		if apiErr.Err != nil {
			body["details"] = apiErr.Err.Error()
		}
		c.JSON(apiErr.Code, body)
		return
	}

	switch {
	case errors.Is(err, ErrInvalidParam):
		c.JSON(http.StatusBadRequest, gin.H{"error": true, "message": err.Error()})
	case errors.Is(err, ErrResourceNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": true, "message": err.Error()})
	default:
		logger.Error("Unexpected error occurred", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": true, "message": "Internal server error"})
	}
}
