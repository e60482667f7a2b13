package registry

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/lorf543/payroll-sub000/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.POST("", middleware.Authorize(enforcer, "employee", "create"), h.CreateEmployee)
		employees.GET("/:id", h.GetEmployee)
	}
}
