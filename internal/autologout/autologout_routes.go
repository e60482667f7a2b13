package autologout

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/lorf543/payroll-sub000/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	admin := r.Group("/admin/autologout")
	admin.Use(middleware.AuthMiddleware())
	{
		admin.POST("/sweep", middleware.Authorize(enforcer, "autologout", "sweep"), h.RunSweep)
		admin.POST("/force-all", middleware.Authorize(enforcer, "autologout", "force"), h.ForceLogoutAll)
	}
}
