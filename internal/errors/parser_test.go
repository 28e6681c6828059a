package errors

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/catalog-admin/internal/app/form"
	"github.com/ikkim/catalog-admin/internal/app/service"
	"github.com/ikkim/catalog-admin/pkg/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func apiError(status int, message string) error {
	sentinel := backend.ErrUnexpected
	switch status {
	case http.StatusNotFound:
		sentinel = backend.ErrNotFound
	case http.StatusUnauthorized:
		sentinel = backend.ErrUnauthorized
	case http.StatusConflict:
		sentinel = backend.ErrConflict
	case http.StatusBadRequest:
		sentinel = backend.ErrInvalidRequest
	}
	return &backend.APIError{StatusCode: status, Message: message, Err: sentinel}
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		context string
		status  int
		code    string
		message string
	}{
		{
			name:    "product not found uses backend message",
			err:     fmt.Errorf("%w: %w", service.ErrProductNotFound, apiError(404, "No product with that id")),
			status:  http.StatusNotFound,
			code:    ProductNotFound,
			message: "No product with that id",
		},
		{
			name:    "coupon not found without backend message",
			err:     service.ErrCouponNotFound,
			status:  http.StatusNotFound,
			code:    CouponNotFound,
			message: "Coupon not found",
		},
		{
			name:    "variant in use",
			err:     fmt.Errorf("delete variant: %w", service.ErrVariantInUse),
			status:  http.StatusConflict,
			code:    VariantInUse,
			message: "This variant is used by products. Remove it from those products first",
		},
		{
			name:    "backend unauthorized",
			err:     apiError(401, "jwt expired"),
			status:  http.StatusUnauthorized,
			code:    AuthUnauthorized,
			message: "jwt expired",
		},
		{
			name:    "backend bad request",
			err:     apiError(400, "Coupon code already taken"),
			status:  http.StatusBadRequest,
			code:    ValidationInvalidInput,
			message: "Coupon code already taken",
		},
		{
			name:    "backend conflict fallback message",
			err:     apiError(409, ""),
			status:  http.StatusConflict,
			code:    ResourceConflict,
			message: "This conflicts with existing data",
		},
		{
			name:    "bare backend not found uses context",
			err:     apiError(404, ""),
			context: "get brand",
			status:  http.StatusNotFound,
			code:    ResourceNotFound,
			message: "Brand not found",
		},
		{
			name:    "network failure",
			err:     fmt.Errorf("%w: connection refused", backend.ErrNetwork),
			status:  http.StatusBadGateway,
			code:    InternalExternalAPI,
			message: "The catalog service is unavailable. Please try again shortly",
		},
		{
			name:    "deadline",
			err:     fmt.Errorf("list products: %w", context.DeadlineExceeded),
			status:  http.StatusGatewayTimeout,
			code:    InternalTimeout,
			message: "The request took too long. Please try again",
		},
		{
			name:    "unknown with create context",
			err:     fmt.Errorf("boom"),
			context: "create coupon",
			status:  http.StatusInternalServerError,
			code:    InternalServerError,
			message: "Failed to create. Please try again shortly",
		},
		{
			name:    "nil",
			err:     nil,
			status:  http.StatusInternalServerError,
			code:    InternalServerError,
			message: "Something went wrong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseError(tt.err, tt.context)
			assert.Equal(t, tt.status, info.Status)
			assert.Equal(t, tt.code, info.Code)
			assert.Equal(t, tt.message, info.Message)
		})
	}
}

func TestParseError_ValidationFields(t *testing.T) {
	fe := form.FieldErrors{}
	fe.Add("title", "Title is required")

	info := ParseError(fmt.Errorf("create product: %w", fe.Err()), "create product")

	assert.Equal(t, http.StatusBadRequest, info.Status)
	assert.Equal(t, ValidationInvalidInput, info.Code)
	assert.Equal(t, "Title is required", info.Fields["title"])
}

func TestParseAndRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("plain error body", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		ParseAndRespond(c, service.ErrReviewNotFound, "approve review")

		assert.Equal(t, http.StatusNotFound, w.Code)
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, ReviewNotFound, body.Error)
		assert.Equal(t, "Review not found", body.Message)
	})

	t.Run("validation body carries fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		fe := form.FieldErrors{"code": "Code is required"}
		ParseAndRespond(c, fe.Err(), "create coupon")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		var body ValidationError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, ValidationInvalidInput, body.Error)
		assert.Equal(t, "Code is required", body.Fields["code"])
	})
}

func TestRespondWithInfo(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	RespondWithInfo(c, ErrorInfo{Status: http.StatusBadGateway, Code: InternalExternalAPI, Message: "Backend unavailable"})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, InternalExternalAPI, body.Error)
	assert.Equal(t, "Backend unavailable", body.Message)
}
