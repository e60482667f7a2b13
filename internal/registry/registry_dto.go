package registry

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	FullName            string           `json:"full_name" binding:"required,max=255"`
	Email               string           `json:"email" binding:"required,email"`
	PositionID          *uuid.UUID       `json:"position_id"`
	CampaignID          *uuid.UUID       `json:"campaign_id"`
	HasFixedSalary      bool             `json:"has_fixed_salary"`
	CustomMonthlySalary *decimal.Decimal `json:"custom_monthly_salary"`
}

type EmployeeResponse struct {
	ID             string     `json:"id"`
	EmployeeCode   string     `json:"employee_code"`
	FullName       string     `json:"full_name"`
	Email          string     `json:"email"`
	PositionID     *uuid.UUID `json:"position_id,omitempty"`
	CampaignID     *uuid.UUID `json:"campaign_id,omitempty"`
	HasFixedSalary bool       `json:"has_fixed_salary"`
	IsLoggedIn     bool       `json:"is_logged_in"`
	IsActive       bool       `json:"is_active"`
}

func mapEmployeeResponse(e *Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:             e.ID.String(),
		EmployeeCode:   e.EmployeeCode,
		FullName:       e.FullName,
		Email:          e.Email,
		PositionID:     e.PositionID,
		CampaignID:     e.CampaignID,
		HasFixedSalary: e.HasFixedSalary,
		IsLoggedIn:     e.IsLoggedIn,
		IsActive:       e.IsActive,
	}
}
