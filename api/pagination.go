package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Domenick1991/airport/internal/domain"
	"github.com/Domenick1991/airport/internal/repository"
	"github.com/gin-gonic/gin"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

type pagination struct {
	Page  int
	Limit int
	Skip  int
}

func getPagination(c *gin.Context) pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	return pagination{Page: page, Limit: limit, Skip: (page - 1) * limit}
}

func (p pagination) repo() repository.Page {
	return repository.Page{Limit: p.Limit, Offset: p.Skip}
}

type listResponse struct {
	Count   int `json:"count"`
	Page    int `json:"page"`
	Limit   int `json:"limit"`
	Results any `json:"results"`
}

func writeList(c *gin.Context, p pagination, count int, results any) {
	c.JSON(http.StatusOK, listResponse{Count: count, Page: p.Page, Limit: p.Limit, Results: results})
}

// pathID parses the :id parameter; a malformed id is reported as not found.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, domain.ErrNotFound)
		return 0, false
	}
	return id, true
}

// queryIDs parses a comma separated id list such as ?country=1,2.
func queryIDs(c *gin.Context, key string) ([]int64, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}

	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{
				Error:  "invalid id list",
				Code:   "invalid_field",
				Fields: map[string]string{key: "enter a comma separated list of ids"},
			})
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

func queryCodes(c *gin.Context, key string) []string {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	var codes []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			codes = append(codes, part)
		}
	}
	return codes
}
