package utils

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestNormalizeEmail(t *testing.T) {
	cases := map[string]string{
		"a@X.com":                "a@x.com",
		"  Someone@Example.ORG ": "Someone@example.org",
		"no-at-sign":             "no-at-sign",
		"":                       "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeEmail(in), in)
	}
}

func TestIsDuplicateKeyError(t *testing.T) {
	assert.False(t, IsDuplicateKeyError(nil))
	assert.False(t, IsDuplicateKeyError(errors.New("connection refused")))
	assert.True(t, IsDuplicateKeyError(gorm.ErrDuplicatedKey))
	assert.True(t, IsDuplicateKeyError(fmt.Errorf("create tag: %w", gorm.ErrDuplicatedKey)))
	assert.True(t, IsDuplicateKeyError(errors.New("UNIQUE constraint failed: tags.nombre")))
	assert.True(t, IsDuplicateKeyError(errors.New("Error 1062: Duplicate entry 'x' for key 'idx_tags_nombre'")))
	assert.True(t, IsDuplicateKeyError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_tags_nombre"`)))
}

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		query     string
		wantPage  int
		wantLimit int
		wantPaged bool
	}{
		{"", 0, 0, false},
		{"tag=go", 0, 0, false},
		{"page=3&limit=10", 3, 10, true},
		{"page=2", 2, 20, true},
		{"limit=5", 1, 5, true},
		{"page=0&limit=1000", 1, 20, true},
		{"page=abc", 1, 20, true},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)

		params := GetPaginationParams(c)
		assert.Equal(t, tt.wantPage, params.Page, tt.query)
		assert.Equal(t, tt.wantLimit, params.Limit, tt.query)
		assert.Equal(t, tt.wantPaged, params.Paged(), tt.query)
	}
}

func TestSetPaginationHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("full list", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		SetPaginationHeaders(c, PaginationParams{}, 7)
		assert.Equal(t, "7", w.Header().Get(HeaderTotalCount))
		assert.Empty(t, w.Header().Get(HeaderTotalPages))
	})

	t.Run("paged", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		SetPaginationHeaders(c, PaginationParams{Page: 2, Limit: 3}, 7)
		assert.Equal(t, "7", w.Header().Get(HeaderTotalCount))
		assert.Equal(t, "2", w.Header().Get(HeaderPage))
		assert.Equal(t, "3", w.Header().Get(HeaderPerPage))
		assert.Equal(t, "3", w.Header().Get(HeaderTotalPages))
	})
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 20))
	assert.Equal(t, 1, TotalPages(20, 20))
	assert.Equal(t, 2, TotalPages(21, 20))
	assert.Equal(t, 0, TotalPages(5, 0))
}
