package response

import (
	"net/http"
	"strconv"

	"github.com/Satyam6458/HR-Management/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

type PaginationMeta struct {
	Total      int64 `json:"total,omitempty"`
	TotalPages int   `json:"totalPages,omitempty"`
	Page       int   `json:"page,omitempty"`
	PageSize   int   `json:"pageSize,omitempty"`
}

func NewPaginationMeta(total int64, page, limit int) PaginationMeta {
	totalPages := 0
	if limit > 0 {
		totalPages = int(total / int64(limit))
		if total%int64(limit) != 0 {
			totalPages++
		}
	}

	return PaginationMeta{
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   limit,
	}
}

// Paginate slices items in memory when the request carries a page query
// parameter. Without one the full list is returned and meta is nil.
func Paginate[T any](c *gin.Context, items []T) ([]T, *PaginationMeta) {
	if _, ok := c.GetQuery("page"); !ok {
		return items, nil
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	if pageSize < 1 {
		pageSize = 10
	}

	// Compare page numbers before multiplying so a huge page cannot overflow.
	start := len(items)
	if page-1 <= len(items)/pageSize {
		start = min((page-1)*pageSize, len(items))
	}
	end := len(items)
	if pageSize < end-start {
		end = start + pageSize
	}

	meta := NewPaginationMeta(int64(len(items)), page, pageSize)
	return items[start:end], &meta
}

type ApiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  any             `json:"data,omitempty"`
	Meta  *PaginationMeta `json:"meta,omitempty"`
	Error any             `json:"error,omitempty"`
}

func Success(c *gin.Context, status int, data interface{}, meta *PaginationMeta) {
	c.JSON(status, ApiEnvelope{
		Ok:   true,
		Data: data,
		Meta: meta,
	})
}

func Error(c *gin.Context, status int, errorCode string, message string, details interface{}) {
	c.JSON(status, ApiEnvelope{
		Ok: false,
		Error: map[string]interface{}{
			"code":    errorCode,
			"message": message,
			"details": details,
		},
	})
}

// Abort writes an error envelope and stops the middleware chain.
func Abort(c *gin.Context, status int, errorCode string, message string, details interface{}) {
	Error(c, status, errorCode, message, details)
	c.Abort()
}

// BindError writes the 400 envelope for a request that failed binding. The
// message names the first offending field.
func BindError(c *gin.Context, err error) {
	mapped := apperror.MapValidationError(err)
	Error(c, http.StatusBadRequest, apperror.CodeValidation, mapped.Message, mapped.Details)
}
