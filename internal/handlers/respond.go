package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/jewel_backoffice_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// statusFor maps the error taxonomy onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code >= http.StatusBadRequest {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// respondError writes the error body for err. Server errors hide the cause behind failMsg.
func respondError(c *gin.Context, logger *slog.Logger, err error, failMsg string) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable {
		logger.Error(failMsg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": failMsg})
		return
	}

	logger.Warn(failMsg, slog.Int("status", status), slog.String("error", err.Error()))
	body := gin.H{"error": publicMessage(err)}
	if details := apperrors.Details(err); len(details) > 0 {
		body["error"] = "Validation failed"
		body["details"] = details
	}
	c.JSON(status, body)
}

func publicMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return err.Error()
}

// respondBindError answers a request whose body failed to bind.
func respondBindError(c *gin.Context, logger *slog.Logger, err error) {
	logger.Warn("Failed to bind request body", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": bindingDetails(err)})
}
