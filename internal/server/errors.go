package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	catalogdomain "github.com/merchantkit/pricora/internal/catalog/domain"
	channeldomain "github.com/merchantkit/pricora/internal/channel/domain"
	"github.com/merchantkit/pricora/internal/money"
	pricingdomain "github.com/merchantkit/pricora/internal/pricing/domain"
	"github.com/merchantkit/pricora/internal/profit"
)

type errorPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrInvalidRequest     = errors.New("invalid_request")
	ErrInternal           = errors.New("internal_error")
	ErrServiceUnavailable = errors.New("service_unavailable")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorPayload) {
	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: err.Error(),
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: err.Error(),
		}
	case errors.Is(err, pricingdomain.ErrSyncUnavailable),
		errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable, errorPayload{
			Type:    "service_unavailable",
			Message: "service unavailable",
		}
	case errors.Is(err, profit.ErrInfeasibleTarget):
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "infeasible_target",
			Message: err.Error(),
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, catalogdomain.ErrInvalidVariant),
		errors.Is(err, channeldomain.ErrInvalidChannel),
		errors.Is(err, pricingdomain.ErrEmptyScope),
		errors.Is(err, pricingdomain.ErrScopeNotSingular),
		errors.Is(err, pricingdomain.ErrNoChannel),
		errors.Is(err, pricingdomain.ErrNoTargetMargin),
		errors.Is(err, pricingdomain.ErrNoFeeContext),
		errors.Is(err, pricingdomain.ErrMissingCost),
		errors.Is(err, pricingdomain.ErrInvalidBulkMap),
		errors.Is(err, money.ErrUnknownStrategy),
		errors.Is(err, profit.ErrInvalidCost):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, catalogdomain.ErrVariantNotFound),
		errors.Is(err, channeldomain.ErrChannelNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}
