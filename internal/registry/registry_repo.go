package registry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lorf543/payroll-sub000/internal/wage"
)

//go:generate mockgen -source=registry_repo.go -destination=mock/registry_repo_mock.go -package=mock
type Repository interface {
	CreateEmployee(ctx context.Context, e *Employee) error
	GetEmployee(ctx context.Context, id uuid.UUID) (*Employee, error)
	GetRateRefs(ctx context.Context, employeeID uuid.UUID) (wage.RateRefs, error)
	ListShutdownDueCampaigns(ctx context.Context, now time.Time) ([]Campaign, error)
	ListLoggedInEmployees(ctx context.Context, campaignID uuid.UUID) ([]Employee, error)
	SetLoggedIn(ctx context.Context, employeeID uuid.UUID, loggedIn bool) error
	ClearAllLoggedIn(ctx context.Context) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateEmployee(ctx context.Context, e *Employee) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) GetEmployee(ctx context.Context, id uuid.UUID) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) GetRateRefs(ctx context.Context, employeeID uuid.UUID) (wage.RateRefs, error) {
	e, err := r.GetEmployee(ctx, employeeID)
	if err != nil {
		return wage.RateRefs{}, err
	}

	refs := wage.RateRefs{
		HasFixedSalary:      e.HasFixedSalary,
		CustomMonthlySalary: e.CustomMonthlySalary,
	}

	if e.PositionID != nil {
		var p Position
		if err := r.db.WithContext(ctx).First(&p, "id = ?", *e.PositionID).Error; err == nil {
			refs.PositionHourlyRate = p.HourlyRate
		} else if err != gorm.ErrRecordNotFound {
			return wage.RateRefs{}, err
		}
	}

	if e.CampaignID != nil {
		var c Campaign
		if err := r.db.WithContext(ctx).First(&c, "id = ?", *e.CampaignID).Error; err == nil {
			refs.CampaignHourlyRate = c.HourlyRate
		} else if err != gorm.ErrRecordNotFound {
			return wage.RateRefs{}, err
		}
	}

	return refs, nil
}

func (r *repository) ListShutdownDueCampaigns(ctx context.Context, now time.Time) ([]Campaign, error) {
	var campaigns []Campaign
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("shutdown_time IS NOT NULL").
		Where("shutdown_time <= ?", now.Format("15:04:05")).
		Find(&campaigns).Error
	return campaigns, err
}

func (r *repository) ListLoggedInEmployees(ctx context.Context, campaignID uuid.UUID) ([]Employee, error) {
	var employees []Employee
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Where("is_logged_in = ?", true).
		Find(&employees).Error
	return employees, err
}

func (r *repository) SetLoggedIn(ctx context.Context, employeeID uuid.UUID, loggedIn bool) error {
	res := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", employeeID).
		Update("is_logged_in", loggedIn)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) ClearAllLoggedIn(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Employee{}).
		Where("is_logged_in = ?", true).
		Update("is_logged_in", false)
	return res.RowsAffected, res.Error
}
