package registry

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lorf543/payroll-sub000/internal/shared/counter"
)

const employeeCodeCounter = "employee_code"

// EmployeeFactory creates registry employees with their code already
// populated from the atomic counter, so a code can never be missing.
type EmployeeFactory struct {
	repo     Repository
	counters counter.Repository
}

func NewEmployeeFactory(repo Repository, counters counter.Repository) *EmployeeFactory {
	return &EmployeeFactory{repo: repo, counters: counters}
}

type NewEmployeeInput struct {
	FullName            string
	Email               string
	PositionID          *uuid.UUID
	CampaignID          *uuid.UUID
	HasFixedSalary      bool
	CustomMonthlySalary *decimal.Decimal
}

func (f *EmployeeFactory) CreateEmployee(ctx context.Context, in NewEmployeeInput) (*Employee, error) {
	next, err := f.counters.GetNextValue(ctx, employeeCodeCounter)
	if err != nil {
		return nil, err
	}

	e := &Employee{
		ID:                  uuid.New(),
		EmployeeCode:        fmt.Sprintf("EMP-%05d", next),
		FullName:            in.FullName,
		Email:               in.Email,
		PositionID:          in.PositionID,
		CampaignID:          in.CampaignID,
		HasFixedSalary:      in.HasFixedSalary,
		CustomMonthlySalary: in.CustomMonthlySalary,
		IsActive:            true,
	}

	if err := f.repo.CreateEmployee(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}
