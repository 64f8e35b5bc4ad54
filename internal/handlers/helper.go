package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/readinglab/passage-service/internal/repositories"
)

// ParseUintParam parses a numeric path parameter, writing a 400 response and
// returning 0 when it is missing or malformed.
func ParseUintParam(c *gin.Context, param string) uint {
	idStr := strings.TrimSpace(c.Param(param))
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "must be a positive integer",
		})
		return 0
	}
	return uint(id)
}

// ParseIntQuery parses an optional integer query parameter with a default.
func ParseIntQuery(c *gin.Context, name string, defaultValue int) int {
	value := c.Query(name)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}

// ResultFiltersFromQuery builds result-listing filters from the optional
// query parameters.
func ResultFiltersFromQuery(c *gin.Context) repositories.ResultFilters {
	filters := repositories.ResultFilters{
		Limit:  ParseIntQuery(c, "limit", 50),
		Offset: ParseIntQuery(c, "offset", 0),
	}

	if v := c.Query("difficulty"); v != "" {
		if level, err := strconv.Atoi(v); err == nil {
			filters.DifficultyLevel = &level
		}
	}
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filters.DateFrom = &t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			filters.DateTo = &t
		}
	}
	return filters
}
