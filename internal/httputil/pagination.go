package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Catalog listings default to one page of 50 and never return more than 100
// rows per request, whatever the client asks for.
const (
	defaultLimit = 50
	maxLimit     = 100
)

// ParsePagination reads the offset and limit query parameters for list
// endpoints such as GET /v1/catalogs. Missing parameters take the defaults;
// out-of-range values are rejected rather than clamped so callers notice.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, fmt.Errorf("invalid offset parameter: must be a non-negative integer")
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 || limit > maxLimit {
		return 0, 0, fmt.Errorf("invalid limit parameter: must be between 1 and %d", maxLimit)
	}

	return offset, limit, nil
}
