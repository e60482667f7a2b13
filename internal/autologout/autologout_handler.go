package autologout

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lorf543/payroll-sub000/internal/shared/apperror"
	"github.com/lorf543/payroll-sub000/internal/shared/response"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RunSweep triggers the campaign shutdown sweep immediately instead of
// waiting for the next scheduler tick.
func (h *Handler) RunSweep(c *gin.Context) {
	summary, err := h.service.RunSweep(c.Request.Context())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	response.Success(c, http.StatusOK, summary, nil)
}

func (h *Handler) ForceLogoutAll(c *gin.Context) {
	summary, err := h.service.ForceLogoutAll(c.Request.Context())
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	response.Success(c, http.StatusOK, summary, nil)
}
