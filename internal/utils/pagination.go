package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pf-responses/respuestas-api/internal/constants"
)

// Pagination response headers. List bodies are bare JSON arrays.
const (
	HeaderTotalCount = "X-Total-Count"
	HeaderPage       = "X-Page"
	HeaderPerPage    = "X-Per-Page"
	HeaderTotalPages = "X-Total-Pages"
)

// PaginationParams holds the pagination parameters. The zero value means the
// client did not ask for a page and gets the whole list.
type PaginationParams struct {
	Page  int
	Limit int
}

// Paged reports whether the request asked for a single page
func (p PaginationParams) Paged() bool {
	return p.Page > 0 && p.Limit > 0
}

// GetPaginationParams extracts and validates pagination parameters from the request.
// Pagination only applies when ?page or ?limit is present.
func GetPaginationParams(c *gin.Context) PaginationParams {
	pageStr, hasPage := c.GetQuery("page")
	limitStr, hasLimit := c.GetQuery("limit")
	if !hasPage && !hasLimit {
		return PaginationParams{}
	}

	page, _ := strconv.Atoi(pageStr)
	limit, _ := strconv.Atoi(limitStr)

	if page < constants.MinPageSize {
		page = constants.MinPageSize
	}
	if limit < constants.MinPageSize || limit > constants.MaxPageSize {
		limit = constants.DefaultPageSize
	}

	return PaginationParams{
		Page:  page,
		Limit: limit,
	}
}

// SetPaginationHeaders reports the total number of items and, for a paged
// request, where this page sits.
func SetPaginationHeaders(c *gin.Context, params PaginationParams, total int64) {
	c.Header(HeaderTotalCount, strconv.FormatInt(total, 10))
	if !params.Paged() {
		return
	}
	c.Header(HeaderPage, strconv.Itoa(params.Page))
	c.Header(HeaderPerPage, strconv.Itoa(params.Limit))
	c.Header(HeaderTotalPages, strconv.Itoa(TotalPages(total, params.Limit)))
}

// TotalPages returns how many pages of size limit are needed for total items
func TotalPages(total int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	pages := int(total) / limit
	if int(total)%limit > 0 {
		pages++
	}
	return pages
}
