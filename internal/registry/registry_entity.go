package registry

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Employee is reference data owned by the HR registry. This module
// reads it and owns exactly one write: the is_logged_in presence flag.
type Employee struct {
	ID                  uuid.UUID        `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeCode        string           `gorm:"column:employee_code;type:varchar(20);uniqueIndex;not null"`
	FullName            string           `gorm:"column:full_name;type:varchar(255);not null"`
	Email               string           `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	PositionID          *uuid.UUID       `gorm:"column:position_id;type:uuid"`
	CampaignID          *uuid.UUID       `gorm:"column:campaign_id;type:uuid;index"`
	HasFixedSalary      bool             `gorm:"column:has_fixed_salary;not null;default:false"`
	CustomMonthlySalary *decimal.Decimal `gorm:"column:custom_monthly_salary;type:numeric(14,2)"`
	IsLoggedIn          bool             `gorm:"column:is_logged_in;not null;default:false;index"`
	IsActive            bool             `gorm:"column:is_active;not null;default:true"`
	CreatedAt           time.Time        `gorm:"column:created_at"`
	UpdatedAt           time.Time        `gorm:"column:updated_at"`
	DeletedAt           gorm.DeletedAt   `gorm:"column:deleted_at;index"`
}

func (Employee) TableName() string {
	return "employees"
}

type Position struct {
	ID         uuid.UUID        `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string           `gorm:"column:name;type:varchar(120);not null"`
	HourlyRate *decimal.Decimal `gorm:"column:hourly_rate;type:numeric(10,2)"`
	CreatedAt  time.Time        `gorm:"column:created_at"`
	UpdatedAt  time.Time        `gorm:"column:updated_at"`
}

func (Position) TableName() string {
	return "positions"
}

// Campaign groups employees under one client engagement. ShutdownTime
// is the local wall-clock time after which the auto-logout sweep
// force-closes the campaign's still-open workdays.
type Campaign struct {
	ID           uuid.UUID        `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string           `gorm:"column:name;type:varchar(120);not null"`
	HourlyRate   *decimal.Decimal `gorm:"column:hourly_rate;type:numeric(10,2)"`
	ShutdownTime *string          `gorm:"column:shutdown_time;type:time"`
	IsActive     bool             `gorm:"column:is_active;not null;default:true;index"`
	CreatedAt    time.Time        `gorm:"column:created_at"`
	UpdatedAt    time.Time        `gorm:"column:updated_at"`
}

func (Campaign) TableName() string {
	return "campaigns"
}
