package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ledgerly/ledgerly-backend/internal/apperrors"
	"github.com/ledgerly/ledgerly-backend/internal/middleware"
)

// ErrorResponse is the error body every handler returns.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError translates service errors to HTTP status codes. Unrecognized
// errors become opaque 500s; their detail stays in the server log only.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrForbiddenRole):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	default:
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		if logger != nil {
			logger.Error("Unhandled error in handler", slog.String("error", err.Error()))
		}
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
