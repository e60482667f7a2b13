package workday

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

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) StartSession(c *gin.Context) {
	employeeID := c.GetString("employee_id")

	var req StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.StartSession(c.Request.Context(), employeeID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) EndCurrentSession(c *gin.Context) {
	employeeID := c.GetString("employee_id")

	resp, err := h.service.EndCurrentSession(c.Request.Context(), employeeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if resp == nil {
		// Nothing was running; report that rather than a fake session.
		response.Success(c, http.StatusOK, gin.H{"active": false}, nil)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) EndDay(c *gin.Context) {
	employeeID := c.GetString("employee_id")

	resp, err := h.service.EndDay(c.Request.Context(), employeeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetActiveSession(c *gin.Context) {
	employeeID := c.GetString("employee_id")

	resp, err := h.service.GetActiveSession(c.Request.Context(), employeeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	if resp == nil {
		response.Success(c, http.StatusOK, gin.H{"active": false}, nil)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetWorkDay(c *gin.Context) {
	employeeID := c.GetString("employee_id")
	date := c.Param("date")

	resp, err := h.service.GetWorkDay(c.Request.Context(), employeeID, date)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) RecordAdjustment(c *gin.Context) {
	employeeID := c.Param("employee_id")
	actorID := c.GetString("employee_id")

	var req RecordAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	resp, err := h.service.RecordAdjustment(c.Request.Context(), employeeID, actorID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}
