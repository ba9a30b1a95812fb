package handlers

import (
	"net/http"
	"time"

	"storepulse/api/utils"

	"github.com/gin-gonic/gin"
)

// optionalTimeQuery parses an optional timestamp query parameter. Writes the
// 400 response itself and returns ok=false on a malformed value.
func optionalTimeQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}

	t, err := utils.ParseTimeParam(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid '" + name + "' timestamp: " + err.Error()})
		return nil, false
	}
	return &t, true
}

// requiredTimeQuery parses a mandatory timestamp query parameter, writing the
// 400 response on absence or malformed input.
func requiredTimeQuery(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " query parameter is required"})
		return time.Time{}, false
	}

	t, err := utils.ParseTimeParam(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid '" + name + "' timestamp: " + err.Error()})
		return time.Time{}, false
	}
	return t, true
}
