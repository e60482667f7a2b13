package workday

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=workday_repo.go -destination=mock/workday_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Create(ctx context.Context, w *WorkDay) error
	FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*WorkDay, error)
	// FindByEmployeeAndDateForUpdate takes a row lock on the work day,
	// serializing session mutations for one employee-day.
	FindByEmployeeAndDateForUpdate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*WorkDay, error)
	// FindActiveByEmployee returns the employee's open work day, which
	// is yesterday's when a shift runs past midnight.
	FindActiveByEmployee(ctx context.Context, employeeID uuid.UUID) (*WorkDay, error)
	FindActiveByEmployeeForUpdate(ctx context.Context, employeeID uuid.UUID) (*WorkDay, error)
	Update(ctx context.Context, w *WorkDay) error

	CreateSession(ctx context.Context, s *ActivitySession) error
	UpdateSession(ctx context.Context, s *ActivitySession) error
	FindActiveSession(ctx context.Context, workDayID uuid.UUID) (*ActivitySession, error)
	FindSessions(ctx context.Context, workDayID uuid.UUID) ([]ActivitySession, error)
	MarkSessionsAdjusted(ctx context.Context, sessionIDs []uuid.UUID, actorID uuid.UUID, reason string, at time.Time) error

	// SumProductiveHours aggregates productive_hours over [from, to],
	// skipping the excluded date and the ABSENT/LEAVE statuses.
	SumProductiveHours(ctx context.Context, employeeID uuid.UUID, from, to, excludeDate time.Time) (decimal.Decimal, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn binds gorm to the service-owned transaction when one is set, so
// the FOR UPDATE lock and the writes share the same tx.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db = db.Session(&gorm.Session{NewDB: true}).WithContext(ctx)
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, w *WorkDay) error {
	return r.conn(ctx).Create(w).Error
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*WorkDay, error) {
	var w WorkDay
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Where("work_date = ?", date.Format("2006-01-02")).
		First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repository) FindByEmployeeAndDateForUpdate(ctx context.Context, employeeID uuid.UUID, date time.Time) (*WorkDay, error) {
	var w WorkDay
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ?", employeeID).
		Where("work_date = ?", date.Format("2006-01-02")).
		First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repository) FindActiveByEmployee(ctx context.Context, employeeID uuid.UUID) (*WorkDay, error) {
	var w WorkDay
	err := r.conn(ctx).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusActive).
		Order("work_date DESC").
		First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repository) FindActiveByEmployeeForUpdate(ctx context.Context, employeeID uuid.UUID) (*WorkDay, error) {
	var w WorkDay
	err := r.conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusActive).
		Order("work_date DESC").
		First(&w).Error
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *repository) Update(ctx context.Context, w *WorkDay) error {
	return r.conn(ctx).Save(w).Error
}

func (r *repository) CreateSession(ctx context.Context, s *ActivitySession) error {
	return r.conn(ctx).Create(s).Error
}

func (r *repository) UpdateSession(ctx context.Context, s *ActivitySession) error {
	return r.conn(ctx).Save(s).Error
}

func (r *repository) FindActiveSession(ctx context.Context, workDayID uuid.UUID) (*ActivitySession, error) {
	var s ActivitySession
	err := r.conn(ctx).
		Where("work_day_id = ?", workDayID).
		Where("end_time IS NULL").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) FindSessions(ctx context.Context, workDayID uuid.UUID) ([]ActivitySession, error) {
	var sessions []ActivitySession
	err := r.conn(ctx).
		Where("work_day_id = ?", workDayID).
		Order("start_time ASC").
		Find(&sessions).Error
	return sessions, err
}

func (r *repository) MarkSessionsAdjusted(ctx context.Context, sessionIDs []uuid.UUID, actorID uuid.UUID, reason string, at time.Time) error {
	if len(sessionIDs) == 0 {
		return nil
	}
	return r.conn(ctx).
		Model(&ActivitySession{}).
		Where("id IN ?", sessionIDs).
		Updates(map[string]any{
			"is_adjusted":       true,
			"adjusted_by":       actorID,
			"adjusted_at":       at,
			"adjustment_reason": reason,
		}).Error
}

func (r *repository) SumProductiveHours(ctx context.Context, employeeID uuid.UUID, from, to, excludeDate time.Time) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	err := r.conn(ctx).
		Model(&WorkDay{}).
		Select("COALESCE(SUM(productive_hours), 0)").
		Where("employee_id = ?", employeeID).
		Where("work_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Where("work_date <> ?", excludeDate.Format("2006-01-02")).
		Where("status NOT IN ?", []string{StatusAbsent, StatusLeave}).
		Scan(&total).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}
