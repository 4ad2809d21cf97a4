package api

import (
	"net/http"
	"strings"

	"github.com/Domenick1991/airport/internal/auth"
	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID   int64
	Username string
	IsStaff  bool
}

// AuthMiddleware requires a valid "Authorization: Bearer <token>" header.
func AuthMiddleware(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			abortWithError(c, http.StatusUnauthorized, "not_authenticated", "authentication credentials were not provided")
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(token))
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "token_not_valid", "given token not valid for any token type")
			return
		}

		c.Set(principalKey, Principal{UserID: claims.UserID, Username: claims.Username, IsStaff: claims.IsStaff})
		c.Next()
	}
}

// StaffOrReadOnly lets any authenticated caller use safe methods and the
// methods listed in open; everything else needs a staff account.
func StaffOrReadOnly(open ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}
		for _, m := range open {
			if c.Request.Method == m {
				c.Next()
				return
			}
		}

		p, ok := currentUser(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, "not_authenticated", "authentication credentials were not provided")
			return
		}
		if !p.IsStaff {
			abortWithError(c, http.StatusForbidden, "permission_denied", "you do not have permission to perform this action")
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) (Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}
