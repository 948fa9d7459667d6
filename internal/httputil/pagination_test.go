package httputil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paginationContext(t *testing.T, query string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+query, nil)
	return c
}

func TestParsePagination(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c := paginationContext(t, "")

		offset, limit, err := ParsePagination(c)
		require.NoError(t, err)
		assert.Equal(t, 0, offset)
		assert.Equal(t, 50, limit)
	})

	t.Run("explicit values", func(t *testing.T) {
		c := paginationContext(t, "offset=10&limit=25")

		offset, limit, err := ParsePagination(c)
		require.NoError(t, err)
		assert.Equal(t, 10, offset)
		assert.Equal(t, 25, limit)
	})

	t.Run("negative offset", func(t *testing.T) {
		c := paginationContext(t, "offset=-1")

		_, _, err := ParsePagination(c)
		assert.Error(t, err)
	})

	t.Run("non-numeric offset", func(t *testing.T) {
		c := paginationContext(t, "offset=abc")

		_, _, err := ParsePagination(c)
		assert.Error(t, err)
	})

	t.Run("limit above maximum", func(t *testing.T) {
		c := paginationContext(t, "limit=101")

		_, _, err := ParsePagination(c)
		assert.Error(t, err)
	})

	t.Run("limit below minimum", func(t *testing.T) {
		c := paginationContext(t, "limit=0")

		_, _, err := ParsePagination(c)
		assert.Error(t, err)
	})
}
