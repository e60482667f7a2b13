package workday

import (
	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/lorf543/payroll-sub000/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, enforcer *casbin.Enforcer) {
	workdays := r.Group("/workdays")
	workdays.Use(middleware.AuthMiddleware())
	{
		workdays.POST("/sessions/start", h.StartSession)
		workdays.POST("/sessions/end", h.EndCurrentSession)
		workdays.POST("/end-day", h.EndDay)
		workdays.GET("/sessions/active", h.GetActiveSession)
		workdays.GET("/:date", h.GetWorkDay)
		workdays.POST("/employees/:employee_id/adjustments",
			middleware.Authorize(enforcer, "workday", "adjust"), h.RecordAdjustment)
	}
}
