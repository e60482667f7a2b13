package registry

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lorf543/payroll-sub000/internal/shared/apperror"
	"github.com/lorf543/payroll-sub000/internal/shared/response"
)

type Handler struct {
	factory *EmployeeFactory
	repo    Repository
}

func NewHandler(factory *EmployeeFactory, repo Repository) *Handler {
	return &Handler{factory: factory, repo: repo}
}

func (h *Handler) CreateEmployee(c *gin.Context) {
	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	e, err := h.factory.CreateEmployee(c.Request.Context(), NewEmployeeInput{
		FullName:            req.FullName,
		Email:               req.Email,
		PositionID:          req.PositionID,
		CampaignID:          req.CampaignID,
		HasFixedSalary:      req.HasFixedSalary,
		CustomMonthlySalary: req.CustomMonthlySalary,
	})
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	response.Success(c, http.StatusCreated, mapEmployeeResponse(e), nil)
}

func (h *Handler) GetEmployee(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, apperror.CodeInvalidInput, "invalid employee id", nil)
		return
	}

	e, err := h.repo.GetEmployee(c.Request.Context(), id)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}
	response.Success(c, http.StatusOK, mapEmployeeResponse(e), nil)
}
