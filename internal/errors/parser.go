package errors

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/catalog-admin/internal/app/form"
	"github.com/ikkim/catalog-admin/internal/app/service"
	"github.com/ikkim/catalog-admin/pkg/backend"
)

// ErrorInfo is an error translated for the dashboard
type ErrorInfo struct {
	Status  int               // HTTP status
	Code    string            // error code (see codes.go)
	Message string            // message shown to the user
	Fields  map[string]string // per-field messages for validation failures
}

type notFoundRule struct {
	err     error
	code    string
	message string
}

var notFoundRules = []notFoundRule{
	{service.ErrProductNotFound, ProductNotFound, "Product not found"},
	{service.ErrSKUNotFound, SKUNotFound, "SKU not found"},
	{service.ErrVariantNotFound, VariantNotFound, "Variant not found"},
	{service.ErrCouponNotFound, CouponNotFound, "Coupon not found"},
	{service.ErrReviewNotFound, ReviewNotFound, "Review not found"},
	{service.ErrCategoryNotFound, CategoryNotFound, "Category not found"},
	{service.ErrBrandNotFound, BrandNotFound, "Brand not found"},
	{service.ErrCollectionNotFound, CollectionNotFound, "Collection not found"},
	{service.ErrTagNotFound, TagNotFound, "Tag not found"},
}

// ParseError translates err, raised while performing action, into a status, a code and a message. The backend's
// own message is preferred over a generic one whenever it sent one.
func ParseError(err error, action string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Status:  http.StatusInternalServerError,
			Code:    InternalServerError,
			Message: "Something went wrong",
		}
	}

	// 1. Form validation
	var verr *form.ValidationError
	if errors.As(err, &verr) {
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    ValidationInvalidInput,
			Message: "Some fields are invalid",
			Fields:  verr.Fields,
		}
	}

	// 2. Service sentinels
	for _, rule := range notFoundRules {
		if errors.Is(err, rule.err) {
			return ErrorInfo{
				Status:  http.StatusNotFound,
				Code:    rule.code,
				Message: backend.MessageOf(err, rule.message),
			}
		}
	}
	if errors.Is(err, service.ErrVariantInUse) {
		return ErrorInfo{
			Status:  http.StatusConflict,
			Code:    VariantInUse,
			Message: "This variant is used by products. Remove it from those products first",
		}
	}
	if errors.Is(err, service.ErrUnsupportedSearch) {
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    SearchUnsupported,
			Message: "This list cannot be searched",
		}
	}

	// 3. Backend answers
	switch {
	case errors.Is(err, backend.ErrUnauthorized):
		return ErrorInfo{
			Status:  http.StatusUnauthorized,
			Code:    AuthUnauthorized,
			Message: backend.MessageOf(err, "Your session has expired. Please sign in again"),
		}
	case errors.Is(err, backend.ErrNotFound):
		return ErrorInfo{
			Status:  http.StatusNotFound,
			Code:    ResourceNotFound,
			Message: backend.MessageOf(err, getNotFoundMessage(action)),
		}
	case errors.Is(err, backend.ErrInvalidRequest):
		return ErrorInfo{
			Status:  http.StatusBadRequest,
			Code:    ValidationInvalidInput,
			Message: backend.MessageOf(err, "The request was rejected"),
		}
	case errors.Is(err, backend.ErrConflict):
		return ErrorInfo{
			Status:  http.StatusConflict,
			Code:    ResourceConflict,
			Message: backend.MessageOf(err, "This conflicts with existing data"),
		}
	case errors.Is(err, backend.ErrNetwork), errors.Is(err, backend.ErrUnexpected):
		return ErrorInfo{
			Status:  http.StatusBadGateway,
			Code:    InternalExternalAPI,
			Message: backend.MessageOf(err, "The catalog service is unavailable. Please try again shortly"),
		}
	}

	// 4. Deadlines
	if errors.Is(err, context.DeadlineExceeded) || strings.Contains(strings.ToLower(err.Error()), "timeout") {
		return ErrorInfo{
			Status:  http.StatusGatewayTimeout,
			Code:    InternalTimeout,
			Message: "The request took too long. Please try again",
		}
	}

	// 5. Fallback
	return ErrorInfo{
		Status:  http.StatusInternalServerError,
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(action),
	}
}

// getNotFoundMessage picks a not-found message from the operation context
func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	for _, noun := range []string{"product", "variant", "coupon", "review", "category", "brand", "collection", "tag"} {
		if strings.Contains(contextLower, noun) {
			return strings.ToUpper(noun[:1]) + noun[1:] + " not found"
		}
	}
	return "The requested data was not found"
}

// getDefaultErrorMessage picks a generic failure message from the operation context
func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	switch {
	case strings.Contains(contextLower, "create"):
		return "Failed to create. Please try again shortly"
	case strings.Contains(contextLower, "update"), strings.Contains(contextLower, "adjust"):
		return "Failed to save changes. Please try again shortly"
	case strings.Contains(contextLower, "delete"):
		return "Failed to delete. Please try again shortly"
	}
	return "Something went wrong. Please try again shortly"
}

// ParseAndRespond translates err and writes the response
func ParseAndRespond(c *gin.Context, err error, action string) {
	RespondWithInfo(c, ParseError(err, action))
}

// RespondWithInfo writes an already parsed error. Field errors use the validation body.
func RespondWithInfo(c *gin.Context, info ErrorInfo) {
	if len(info.Fields) > 0 {
		c.JSON(info.Status, ValidationError{
			Error:   info.Code,
			Message: info.Message,
			Fields:  info.Fields,
		})
		return
	}
	RespondWithError(c, info.Status, info.Code, info.Message)
}
