package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"storefront/internal/domain"
	"storefront/internal/logging"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// classify maps an error onto its status code and stable kind. Order matters: the
// specific cart and auth errors wrap the generic kinds.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuantity):
		return http.StatusBadRequest, "InvalidQuantity"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, "ValidationError"
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusBadRequest, "DuplicateEmail"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, "InvalidCredentials"
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, "Unauthenticated"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NotFound"
	default:
		return http.StatusInternalServerError, "InternalError"
	}
}

func respondError(c *gin.Context, logger *zap.Logger, err error) {
	status, body := errorBody(c, logger, err)
	c.JSON(status, body)
}

func abortWithError(c *gin.Context, logger *zap.Logger, err error) {
	status, body := errorBody(c, logger, err)
	c.AbortWithStatusJSON(status, body)
}

func errorBody(c *gin.Context, logger *zap.Logger, err error) (int, errorResponse) {
	status, kind := classify(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		logging.OrNop(logger).Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		msg = domain.ErrInternal.Error()
	}
	return status, errorResponse{Kind: kind, Message: msg}
}

func recoveryHandler(logger *zap.Logger) gin.RecoveryFunc {
	return func(c *gin.Context, recovered interface{}) {
		logger.Error("panic recovered", zap.Any("panic", recovered), zap.String("path", c.FullPath()))
		c.AbortWithStatusJSON(http.StatusInternalServerError, errorResponse{Kind: "InternalError", Message: domain.ErrInternal.Error()})
	}
}
