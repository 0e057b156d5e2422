package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/lebokota/storefront/internal/catalog/domain"
	orderdomain "github.com/lebokota/storefront/internal/order/domain"
	"github.com/lebokota/storefront/internal/validation"
	"gorm.io/gorm"
)

var ErrInvalidRequest = errors.New("invalid_request")

type errorPayload struct {
	Type    string                 `json:"type"`
	Code    string                 `json:"code,omitempty"`
	Message string                 `json:"message"`
	Errors  []validation.Violation `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

// ErrorHandlingMiddleware translates domain failures collected on the gin
// context into transport codes. The core never maps its own errors; this
// is the one place that knows about HTTP.
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
	var vErr *validation.Error
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Violations,
		}
	}

	var notFound *orderdomain.ProductNotFoundError
	if errors.As(err, &notFound) {
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Code:    "product_not_found",
			Message: notFound.Error(),
		}
	}

	var unavailable *orderdomain.ProductUnavailableError
	if errors.As(err, &unavailable) {
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Code:    "product_unavailable",
			Message: unavailable.Error(),
		}
	}

	var quantity *orderdomain.InvalidQuantityError
	if errors.As(err, &quantity) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Code:    "invalid_quantity",
			Message: quantity.Error(),
		}
	}

	var transition *orderdomain.InvalidTransitionError
	if errors.As(err, &transition) {
		return http.StatusConflict, errorPayload{
			Type:    "invalid_transition",
			Code:    "invalid_" + transition.Kind + "_transition",
			Message: transition.Error(),
		}
	}

	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, catalogdomain.ErrInvalidID),
		errors.Is(err, catalogdomain.ErrInvalidCategory),
		errors.Is(err, orderdomain.ErrInvalidID):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Code:    errorCode(err),
			Message: "invalid request",
		}
	case errors.Is(err, catalogdomain.ErrNotFound),
		errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Code:    errorCode(err),
			Message: "not found",
		}
	case errors.Is(err, orderdomain.ErrReferenceConflict),
		errors.Is(err, orderdomain.ErrUpdateConflict):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Code:    errorCode(err),
			Message: "conflict",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func errorCode(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// classifyErrorForLog feeds the request logger's error fields.
func classifyErrorForLog(err error) (string, string) {
	status, payload := mapError(err)
	switch {
	case status >= http.StatusInternalServerError:
		return "internal_error", payload.Code
	default:
		return payload.Type, payload.Code
	}
}
