package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/catalog-admin/internal/app/form"
	"github.com/ikkim/catalog-admin/internal/app/model"
	"github.com/ikkim/catalog-admin/internal/app/service"
	apperrors "github.com/ikkim/catalog-admin/internal/errors"
	"github.com/ikkim/catalog-admin/internal/middleware"
	"github.com/ikkim/catalog-admin/pkg/logger"
)

// pagination is the paging block every list response carries
type pagination struct {
	CurrentPage int              `json:"currentPage"`
	TotalPages  int              `json:"totalPages"`
	Total       int              `json:"total"`
	Pages       []model.PageItem `json:"pages"`
}

func newPagination[T any](p model.Page[T]) pagination {
	return pagination{
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
		Total:       p.Total,
		Pages:       model.PageNumbers(p.CurrentPage, p.TotalPages),
	}
}

// listQuery reads page, limit and search plus the named pass-through filters
func listQuery(c *gin.Context, filters ...string) model.ListQuery {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(model.DefaultLimit)))

	q := model.ListQuery{
		Page:   page,
		Limit:  limit,
		Search: c.Query("search"),
	}
	for _, f := range filters {
		if v := c.Query(f); v != "" {
			if q.Filters == nil {
				q.Filters = map[string]string{}
			}
			q.Filters[f] = v
		}
	}
	return q.Normalize()
}

func respondList[T any](c *gin.Context, key string, p model.Page[T]) {
	c.JSON(http.StatusOK, gin.H{
		key:          p.Items,
		"pagination": newPagination(p),
	})
}

// respondError logs err at a level matching its status and writes the error body
func respondError(c *gin.Context, err error, action string, fields logger.Fields) {
	log := middleware.GetLoggerFromContext(c)
	info := apperrors.ParseError(err, action)

	if fields == nil {
		fields = logger.Fields{}
	}
	fields["code"] = info.Code
	if info.Status >= http.StatusInternalServerError {
		log.Error("Failed to "+action, err, fields)
	} else {
		fields["error"] = err.Error()
		log.Warn("Failed to "+action, fields)
	}

	apperrors.RespondWithInfo(c, info)
}

// bindJSON decodes the body and applies its binding tags. Tag failures are
// reported per field, anything else as a malformed body.
func bindJSON(c *gin.Context, dst interface{}, action string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Invalid request body", logger.Fields{
			"action": action,
			"error":  err.Error(),
		})
		if errs, ok := form.FromBindingError(err); ok {
			apperrors.RespondWithValidationError(c, errs)
			return false
		}
		apperrors.BadRequest(c, apperrors.ValidationInvalidFormat, "Invalid request data")
		return false
	}
	return true
}

type bulkRequest struct {
	IDs []string `json:"ids" binding:"required,min=1,max=100,dive,notblank"`
}

func bindBulkIDs(c *gin.Context, action string) ([]string, bool) {
	var req bulkRequest
	if !bindJSON(c, &req, action) {
		return nil, false
	}
	return req.IDs, true
}

// respondBulk reports per-item outcomes; partial failure is not an HTTP error
func respondBulk(c *gin.Context, result service.BulkResult, action, noun string) {
	body := gin.H{
		"message":   result.Message(action, noun),
		"succeeded": result.Succeeded,
		"failed":    result.Failed,
	}
	if len(result.Failed) > 0 {
		body["error"] = apperrors.BulkFailed
		if result.Partial() {
			body["error"] = apperrors.BulkPartialFailure
		}
		middleware.GetLoggerFromContext(c).Warn("Bulk operation had failures", logger.Fields{
			"action":    action,
			"noun":      noun,
			"succeeded": len(result.Succeeded),
			"failed":    len(result.Failed),
		})
	}
	c.JSON(http.StatusOK, body)
}
