package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		writeError(c, err)
		return false
	}
	return true
}

// partial reports whether the request is a PATCH; a PUT replaces every field.
func partial(c *gin.Context) bool {
	return c.Request.Method == http.MethodPatch
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt64(dst *int64, src *int64) {
	if src != nil {
		*dst = *src
	}
}
