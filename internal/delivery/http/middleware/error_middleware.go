package middleware

import (
	"errors"
	"net/http"

	"go-hiring-assistant/internal/delivery/http/response"
	"go-hiring-assistant/internal/domain"
	"go-hiring-assistant/pkg/apperror"
	"go-hiring-assistant/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			appErr := toAppError(err)
			if appErr.Code >= http.StatusInternalServerError {
				// Never expose internal error details to clients
				logger.Log.Error("request failed",
					"path", c.FullPath(),
					"status", appErr.Code,
					"request_id", c.GetString("RequestID"),
					"error", err,
				)
			}
			response.Error(c, appErr.Code, appErr.Message, appErr.Details)
		}
	}
}

// toAppError maps domain failures onto HTTP status codes.
func toAppError(err error) *apperror.AppError {
	var (
		appErr   *apperror.AppError
		valErr   *domain.ValidationError
		parseErr *domain.ResponseParseError
		svcErr   *domain.ServiceError
		cfgErr   *domain.ConfigError
	)

	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.As(err, &valErr):
		return apperror.BadRequest("Validation failed").
			WithDetails(gin.H{"messages": valErr.Messages})
	case errors.As(err, &parseErr):
		return apperror.BadGateway("The model response could not be parsed", err).
			WithDetails(gin.H{"raw": parseErr.Raw})
	case errors.As(err, &svcErr):
		return apperror.BadGateway("The completion service is unavailable. Please try again.", err).
			WithDetails(gin.H{"provider": svcErr.Provider})
	case errors.As(err, &cfgErr):
		return apperror.ServiceUnavailable(cfgErr.Message)
	case errors.Is(err, domain.ErrInvalidTransition):
		return apperror.Conflict(err.Error())
	case errors.Is(err, domain.ErrNoCurrentQuestion), errors.Is(err, domain.ErrSessionNotFound):
		return apperror.NotFound(err.Error())
	default:
		return apperror.New(http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", err)
	}
}
