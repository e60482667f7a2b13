package middleware

import (
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	autherrors "github.com/lorf543/payroll-sub000/internal/auth/errors"
	"github.com/lorf543/payroll-sub000/internal/shared/response"
)

// Authorize checks the caller's role against the casbin policy for the
// given object and action. Must run after AuthMiddleware.
func Authorize(enforcer *casbin.Enforcer, obj, act string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		if role == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing auth context", nil)
			c.Abort()
			return
		}

		allowed, err := enforcer.Enforce(role, obj, act)
		if err != nil {
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "authorization check failed", nil)
			c.Abort()
			return
		}

		if !allowed {
			response.Error(c, autherrors.ErrForbidden.HTTPStatus, autherrors.ErrForbidden.Code, autherrors.ErrForbidden.Message,
				map[string]string{"required": obj + ":" + act})
			c.Abort()
			return
		}
		c.Next()
	}
}
