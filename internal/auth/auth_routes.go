package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/lorf543/payroll-sub000/internal/middleware"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", middleware.RateLimitByIP(5, 10), h.Login)
		authGroup.POST("/logout", middleware.AuthMiddleware(), h.Logout)
	}
}
