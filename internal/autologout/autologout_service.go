// Package autologout force-closes the workdays of employees still
// logged in after their campaign's configured shutdown time, and
// carries the operational force-logout-all escape hatch.
package autologout

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lorf543/payroll-sub000/internal/authsession"
	"github.com/lorf543/payroll-sub000/internal/bootstrap"
	"github.com/lorf543/payroll-sub000/internal/registry"
	"github.com/lorf543/payroll-sub000/internal/shared/apperror"
	"github.com/lorf543/payroll-sub000/internal/workday"
)

type SweepSummary struct {
	EmployeesLoggedOut int `json:"employees_logged_out"`
	CampaignsProcessed int `json:"campaigns_processed"`
	Failures           int `json:"failures"`
}

type ForceLogoutSummary struct {
	EmployeesLoggedOut int64 `json:"employees_logged_out"`
	SessionsDeleted    int64 `json:"sessions_deleted"`
}

// DayCloser is the slice of the workday service the sweep needs.
type DayCloser interface {
	ForceEndDay(ctx context.Context, employeeID uuid.UUID, at time.Time) (workday.WorkDayResponse, error)
}

//go:generate mockgen -source=autologout_service.go -destination=mock/autologout_service_mock.go -package=mock
type Service interface {
	RunSweep(ctx context.Context) (SweepSummary, error)
	ForceLogoutAll(ctx context.Context) (ForceLogoutSummary, error)
}

type service struct {
	registry registry.Repository
	presence *registry.Presence
	workdays DayCloser
	sessions authsession.Store
	audit    bootstrap.AuditLogger
	logger   *zap.Logger
	loc      *time.Location
	now      func() time.Time
}

func NewService(
	reg registry.Repository,
	presence *registry.Presence,
	workdays DayCloser,
	sessions authsession.Store,
	audit bootstrap.AuditLogger,
	logger *zap.Logger,
	loc *time.Location,
) Service {
	return &service{
		registry: reg,
		presence: presence,
		workdays: workdays,
		sessions: sessions,
		audit:    audit,
		logger:   logger.Named("autologout"),
		loc:      loc,
		now:      time.Now,
	}
}

// RunSweep processes every campaign past its shutdown time. Each
// employee is handled in isolation: one failure is logged and counted,
// never aborting the rest of the sweep.
func (s *service) RunSweep(ctx context.Context) (SweepSummary, error) {
	now := s.now().In(s.loc)

	campaigns, err := s.registry.ListShutdownDueCampaigns(ctx, now)
	if err != nil {
		return SweepSummary{}, err
	}

	var summary SweepSummary
	for _, campaign := range campaigns {
		employees, err := s.registry.ListLoggedInEmployees(ctx, campaign.ID)
		if err != nil {
			s.logger.Error("list logged-in employees failed",
				zap.String("code", apperror.CodeSweepStepFailure),
				zap.String("campaign_id", campaign.ID.String()),
				zap.Error(err),
			)
			summary.Failures++
			continue
		}

		for _, emp := range employees {
			if err := s.logoutEmployee(ctx, emp.ID, campaign.ID, now); err != nil {
				s.logger.Error("forced logout failed",
					zap.String("code", apperror.CodeSweepStepFailure),
					zap.String("campaign_id", campaign.ID.String()),
					zap.String("employee_id", emp.ID.String()),
					zap.Error(err),
				)
				summary.Failures++
				continue
			}
			summary.EmployeesLoggedOut++
		}
		summary.CampaignsProcessed++
	}

	if summary.EmployeesLoggedOut > 0 || summary.Failures > 0 {
		s.audit.Log(ctx, bootstrap.AuditLog{
			Action:  "AUTO_LOGOUT_SWEEP",
			Message: "campaign shutdown sweep finished",
			Meta: map[string]any{
				"employees_logged_out": summary.EmployeesLoggedOut,
				"campaigns_processed":  summary.CampaignsProcessed,
				"failures":             summary.Failures,
			},
		})
	}
	return summary, nil
}

func (s *service) logoutEmployee(ctx context.Context, employeeID, campaignID uuid.UUID, now time.Time) error {
	// The day close runs in its own transaction; a crash after it
	// leaves this employee correctly closed and the rest untouched.
	if _, err := s.workdays.ForceEndDay(ctx, employeeID, now); err != nil {
		return err
	}
	if err := s.presence.Transition(ctx, employeeID, false, "campaign shutdown"); err != nil {
		return err
	}
	if _, err := s.sessions.DeleteForEmployee(ctx, employeeID); err != nil {
		return err
	}

	s.logger.Info("employee force-logged-out",
		zap.String("employee_id", employeeID.String()),
		zap.String("campaign_id", campaignID.String()),
	)
	return nil
}

// ForceLogoutAll clears every logged-in flag and wipes all transport
// sessions without closing workdays. Deliberately blunt and audit-light;
// re-running it is harmless.
func (s *service) ForceLogoutAll(ctx context.Context) (ForceLogoutSummary, error) {
	cleared, err := s.registry.ClearAllLoggedIn(ctx)
	if err != nil {
		return ForceLogoutSummary{}, err
	}

	deleted, err := s.sessions.DeleteAll(ctx)
	if err != nil {
		return ForceLogoutSummary{EmployeesLoggedOut: cleared}, err
	}

	summary := ForceLogoutSummary{
		EmployeesLoggedOut: cleared,
		SessionsDeleted:    deleted,
	}
	s.audit.Log(ctx, bootstrap.AuditLog{
		Action:  "FORCE_LOGOUT_ALL",
		Message: "all employees logged out",
		Meta: map[string]any{
			"employees_logged_out": cleared,
			"sessions_deleted":     deleted,
		},
	})
	return summary, nil
}
