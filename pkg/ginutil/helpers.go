package ginutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// OptionalQueryInt parses an integer query parameter strictly.
// Absent or blank returns nil; anything that is not an integer is an error.
func OptionalQueryInt(c *gin.Context, key string) (*int, error) {
	valueStr := strings.TrimSpace(c.Query(key))
	if valueStr == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return nil, fmt.Errorf("%s must be an integer", key)
	}
	return &value, nil
}

// QueryFirst returns the first non-empty query value among keys
func QueryFirst(c *gin.Context, keys ...string) string {
	for _, key := range keys {
		if v := c.Query(key); v != "" {
			return v
		}
	}
	return ""
}
