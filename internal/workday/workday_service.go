package workday

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lorf543/payroll-sub000/internal/events"
	kafkaout "github.com/lorf543/payroll-sub000/internal/messaging/kafka"
	"github.com/lorf543/payroll-sub000/internal/shared/apperror"
	"github.com/lorf543/payroll-sub000/internal/shared/contextutil"
	"github.com/lorf543/payroll-sub000/internal/wage"
	wderrors "github.com/lorf543/payroll-sub000/internal/workday/errors"
)

const pgUniqueViolation = "23505"

// RateProvider resolves the effective hourly rates of one employee.
// Implemented by the registry rate resolver.
type RateProvider interface {
	ResolveRates(ctx context.Context, employeeID uuid.UUID) (wage.Rates, error)
}

//go:generate mockgen -source=workday_service.go -destination=mock/workday_service_mock.go -package=mock
type Service interface {
	StartSession(ctx context.Context, employeeID string, req StartSessionRequest) (SessionResponse, error)
	EndCurrentSession(ctx context.Context, employeeID string) (*SessionResponse, error)
	EndDay(ctx context.Context, employeeID string) (WorkDayResponse, error)
	GetActiveSession(ctx context.Context, employeeID string) (*SessionResponse, error)
	GetWorkDay(ctx context.Context, employeeID, date string) (WorkDayResponse, error)
	RecordAdjustment(ctx context.Context, employeeID, actorID string, req RecordAdjustmentRequest) (WorkDayResponse, error)

	// ForceEndDay is the auto-logout path: it closes the employee's day
	// at the given instant, creating the work day defensively when
	// absent and marking the event with a technical session when no
	// session is open.
	ForceEndDay(ctx context.Context, employeeID uuid.UUID, at time.Time) (WorkDayResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	rates  RateProvider
	outbox kafkaout.OutboxRepository
	loc    *time.Location
	now    func() time.Time
}

func NewService(db *sql.DB, repo Repository, rates RateProvider, loc *time.Location) Service {
	return &service{
		db:    db,
		repo:  repo,
		rates: rates,
		loc:   loc,
		now:   time.Now,
	}
}

// NewServiceWithOutbox additionally records a workday.completed event
// in the transactional outbox whenever a day closes.
func NewServiceWithOutbox(db *sql.DB, repo Repository, rates RateProvider, outbox kafkaout.OutboxRepository, loc *time.Location) Service {
	return &service{
		db:     db,
		repo:   repo,
		rates:  rates,
		outbox: outbox,
		loc:    loc,
		now:    time.Now,
	}
}

func (s *service) StartSession(ctx context.Context, employeeID string, req StartSessionRequest) (SessionResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return SessionResponse{}, apperror.ErrInvalidInput
	}
	if !validSessionType(req.Type) {
		return SessionResponse{}, wderrors.ErrInvalidSessionType
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SessionResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now().In(s.loc)

	day, err := s.findOrCreateDay(ctx, qtx, empID, now)
	if err != nil {
		return SessionResponse{}, err
	}
	if day.IsTerminal() {
		return SessionResponse{}, wderrors.ErrDayClosed
	}

	// A new session supersedes the active one, if any.
	if _, err := s.closeActiveSession(ctx, qtx, day, now); err != nil {
		return SessionResponse{}, err
	}

	session := &ActivitySession{
		ID:            uuid.New(),
		WorkDayID:     day.ID,
		Type:          req.Type,
		StartTime:     now,
		OriginalStart: now,
		Notes:         req.Notes,
	}
	if err := qtx.CreateSession(ctx, session); err != nil {
		return SessionResponse{}, err
	}

	if req.Type == TypeWork && day.CheckIn == nil {
		day.CheckIn = &now
	}

	if err := s.refreshDay(ctx, qtx, day); err != nil {
		return SessionResponse{}, err
	}
	if err := qtx.Update(ctx, day); err != nil {
		return SessionResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return SessionResponse{}, err
	}
	return mapSessionResponse(*session), nil
}

func (s *service) EndCurrentSession(ctx context.Context, employeeID string) (*SessionResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, apperror.ErrInvalidInput
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now().In(s.loc)

	day, err := qtx.FindActiveByEmployeeForUpdate(ctx, empID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Nothing is running; ending is a no-op.
			return nil, tx.Commit()
		}
		return nil, err
	}

	closed, err := s.closeActiveSession(ctx, qtx, day, now)
	if err != nil {
		return nil, err
	}
	if closed == nil {
		return nil, tx.Commit()
	}

	if err := s.refreshDay(ctx, qtx, day); err != nil {
		return nil, err
	}
	if err := qtx.Update(ctx, day); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	resp := mapSessionResponse(*closed)
	return &resp, nil
}

func (s *service) EndDay(ctx context.Context, employeeID string) (WorkDayResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return WorkDayResponse{}, apperror.ErrInvalidInput
	}
	return s.endDayAt(ctx, empID, s.now().In(s.loc), false)
}

func (s *service) ForceEndDay(ctx context.Context, employeeID uuid.UUID, at time.Time) (WorkDayResponse, error) {
	return s.endDayAt(ctx, employeeID, at.In(s.loc), true)
}

func (s *service) endDayAt(ctx context.Context, empID uuid.UUID, now time.Time, forced bool) (WorkDayResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WorkDayResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Close the employee's open day wherever it is on the calendar; a
	// shift running past midnight still belongs to the day it started.
	day, err := qtx.FindActiveByEmployeeForUpdate(ctx, empID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkDayResponse{}, err
		}

		today, terr := qtx.FindByEmployeeAndDateForUpdate(ctx, empID, dateOf(now))
		if terr == nil {
			if forced {
				// Already closed by a concurrent writer; the sweep
				// treats that as done.
				return mapWorkDayResponse(*today), tx.Commit()
			}
			return WorkDayResponse{}, wderrors.ErrDayClosed
		}
		if !errors.Is(terr, gorm.ErrRecordNotFound) {
			return WorkDayResponse{}, terr
		}
		if !forced {
			return WorkDayResponse{}, wderrors.ErrNoActiveDay
		}
		// Forced path creates the day defensively so the logout always
		// leaves a record.
		day, err = s.createDay(ctx, qtx, empID, now)
		if err != nil {
			return WorkDayResponse{}, err
		}
	}

	closed, err := s.closeActiveSession(ctx, qtx, day, now)
	if err != nil {
		return WorkDayResponse{}, err
	}
	if forced && closed == nil {
		// No open session to close: record the forced logout as a
		// zero-duration technical session.
		zero := int64(0)
		marker := &ActivitySession{
			ID:              uuid.New(),
			WorkDayID:       day.ID,
			Type:            TypeTechnical,
			StartTime:       now,
			EndTime:         &now,
			DurationSeconds: &zero,
			OriginalStart:   now,
			OriginalEnd:     &now,
		}
		if err := qtx.CreateSession(ctx, marker); err != nil {
			return WorkDayResponse{}, err
		}
	}

	day.CheckOut = &now
	day.Status = StatusCompleted

	if err := s.refreshDay(ctx, qtx, day); err != nil {
		return WorkDayResponse{}, err
	}
	if err := qtx.Update(ctx, day); err != nil {
		return WorkDayResponse{}, err
	}
	if err := s.enqueueCompletedEvent(ctx, tx, day, forced); err != nil {
		return WorkDayResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return WorkDayResponse{}, err
	}
	return mapWorkDayResponse(*day), nil
}

func (s *service) GetActiveSession(ctx context.Context, employeeID string) (*SessionResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, apperror.ErrInvalidInput
	}

	day, err := s.repo.FindActiveByEmployee(ctx, empID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	session, err := s.repo.FindActiveSession(ctx, day.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	resp := mapSessionResponse(*session)
	return &resp, nil
}

func (s *service) GetWorkDay(ctx context.Context, employeeID, date string) (WorkDayResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return WorkDayResponse{}, apperror.ErrInvalidInput
	}
	day0, err := time.ParseInLocation("2006-01-02", date, s.loc)
	if err != nil {
		return WorkDayResponse{}, apperror.InvalidField("Date")
	}

	day, err := s.repo.FindByEmployeeAndDate(ctx, empID, day0)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkDayResponse{}, wderrors.ErrDayNotFound
		}
		return WorkDayResponse{}, err
	}
	return mapWorkDayResponse(*day), nil
}

func (s *service) RecordAdjustment(ctx context.Context, employeeID, actorID string, req RecordAdjustmentRequest) (WorkDayResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return WorkDayResponse{}, apperror.ErrInvalidInput
	}
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return WorkDayResponse{}, apperror.InvalidField("Actor Id")
	}
	date, err := time.ParseInLocation("2006-01-02", req.Date, s.loc)
	if err != nil {
		return WorkDayResponse{}, apperror.InvalidField("Date")
	}
	sessionIDs := make([]uuid.UUID, 0, len(req.SessionIDs))
	for _, raw := range req.SessionIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return WorkDayResponse{}, apperror.InvalidField("Session Ids")
		}
		sessionIDs = append(sessionIDs, id)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return WorkDayResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	now := s.now().In(s.loc)

	day, err := qtx.FindByEmployeeAndDateForUpdate(ctx, empID, date)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return WorkDayResponse{}, wderrors.ErrDayNotFound
		}
		return WorkDayResponse{}, err
	}

	// History is append-only: existing entries are never rewritten.
	entry := AdjustmentEntry{
		Timestamp:  now,
		ActorID:    actor.String(),
		Reason:     req.Reason,
		SessionIDs: req.SessionIDs,
		Before: AdjustmentSnapshot{
			TotalWorkSeconds:  day.TotalWorkSeconds,
			TotalBreakSeconds: day.TotalBreakSeconds,
			TotalLunchSeconds: day.TotalLunchSeconds,
			ProductiveHours:   day.ProductiveHours.String(),
			TotalPay:          day.TotalPay.String(),
			Status:            day.Status,
		},
	}
	day.AdjustmentLog = append(day.AdjustmentLog, entry)
	day.AdjustmentCount++
	day.LastAdjustmentAt = &now
	day.LastAdjustmentBy = &actor
	day.LastAdjustmentReason = &req.Reason

	if err := qtx.MarkSessionsAdjusted(ctx, sessionIDs, actor, req.Reason, now); err != nil {
		return WorkDayResponse{}, err
	}
	if err := s.refreshDay(ctx, qtx, day); err != nil {
		return WorkDayResponse{}, err
	}
	if err := qtx.Update(ctx, day); err != nil {
		return WorkDayResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return WorkDayResponse{}, err
	}
	return mapWorkDayResponse(*day), nil
}

// --- internals ---

// findOrCreateDay resolves the day a new session belongs to: the open
// day first (even yesterday's, for overnight shifts), then today's row
// (so a closed day still rejects mutations), creating today's day only
// when neither exists.
func (s *service) findOrCreateDay(ctx context.Context, qtx Repository, empID uuid.UUID, now time.Time) (*WorkDay, error) {
	day, err := qtx.FindActiveByEmployeeForUpdate(ctx, empID)
	if err == nil {
		return day, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	day, err = qtx.FindByEmployeeAndDateForUpdate(ctx, empID, dateOf(now))
	if err == nil {
		return day, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return s.createDay(ctx, qtx, empID, now)
}

func (s *service) createDay(ctx context.Context, qtx Repository, empID uuid.UUID, now time.Time) (*WorkDay, error) {
	day := &WorkDay{
		ID:            uuid.New(),
		EmployeeID:    empID,
		WorkDate:      dateOf(now),
		Status:        StatusActive,
		RateSource:    wage.SourceNone,
		AdjustmentLog: AdjustmentLog{},
	}
	if err := qtx.Create(ctx, day); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			// Another writer created the row between our lock attempt
			// and the insert.
			return nil, wderrors.ErrConcurrentWrite
		}
		return nil, err
	}
	return day, nil
}

// closeActiveSession ends the open session, if any, and returns it.
func (s *service) closeActiveSession(ctx context.Context, qtx Repository, day *WorkDay, end time.Time) (*ActivitySession, error) {
	session, err := qtx.FindActiveSession(ctx, day.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := s.closeSession(ctx, qtx, session, end); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *service) closeSession(ctx context.Context, qtx Repository, session *ActivitySession, end time.Time) error {
	if session.EndTime != nil {
		return wderrors.ErrSessionAlreadyClosed
	}
	if end.Before(session.StartTime) {
		return wderrors.ErrEndBeforeStart
	}

	duration := int64(end.Sub(session.StartTime).Seconds())
	session.EndTime = &end
	session.DurationSeconds = &duration
	if session.OriginalEnd == nil {
		session.OriginalEnd = &end
	}
	return qtx.UpdateSession(ctx, session)
}

// refreshDay recomputes aggregates from the day's closed sessions and,
// when productive time exists, the pay fields. Idempotent for an
// unchanged session set.
func (s *service) refreshDay(ctx context.Context, qtx Repository, day *WorkDay) error {
	sessions, err := qtx.FindSessions(ctx, day.ID)
	if err != nil {
		return err
	}

	recomputeAggregates(day, sessions)

	if day.ProductiveHours.IsPositive() {
		return s.computePay(ctx, qtx, day, sessions)
	}
	return nil
}

func recomputeAggregates(day *WorkDay, sessions []ActivitySession) {
	var workSec, breakSec, lunchSec int64
	breaks := 0

	for i := range sessions {
		sess := &sessions[i]
		if sess.DurationSeconds == nil {
			continue // open sessions accrue nothing yet
		}
		switch {
		case countsAsWork(sess.Type):
			workSec += *sess.DurationSeconds
		case sess.Type == TypeBreak:
			breakSec += *sess.DurationSeconds
			breaks++
		case sess.Type == TypeLunch:
			lunchSec += *sess.DurationSeconds
		}
	}

	day.TotalWorkSeconds = workSec
	day.TotalBreakSeconds = breakSec
	day.TotalLunchSeconds = lunchSec
	day.BreakCount = breaks
	day.SessionCount = len(sessions)
	day.ProductiveHours = decimal.NewFromInt(workSec).
		Div(decimal.NewFromInt(3600)).
		Round(2)
}

func (s *service) computePay(ctx context.Context, qtx Repository, day *WorkDay, sessions []ActivitySession) error {
	weekStart, weekEnd := weekBounds(day.WorkDate)
	hoursBefore, err := qtx.SumProductiveHours(ctx, day.EmployeeID, weekStart, weekEnd, day.WorkDate)
	if err != nil {
		return err
	}

	var night time.Duration
	for i := range sessions {
		sess := &sessions[i]
		if sess.Type != TypeWork || sess.EndTime == nil {
			continue
		}
		night += wage.NightOverlap(sess.StartTime.In(s.loc), sess.EndTime.In(s.loc))
	}
	nightHours := decimal.NewFromInt(int64(night / time.Second)).
		Div(decimal.NewFromInt(3600))

	rates, err := s.rates.ResolveRates(ctx, day.EmployeeID)
	if err != nil {
		return err
	}

	res := wage.Calculate(wage.Input{
		TodayHours:  day.ProductiveHours,
		WeeklyHours: hoursBefore.Add(day.ProductiveHours),
		NightHours:  nightHours,
		Rates:       rates,
	})

	// Rounding happens here, at the point of persistence, and nowhere
	// inside the calculation.
	day.NightMinutes = int64(night / time.Minute)
	day.RegularHours = res.Split.Regular.Round(2)
	day.Overtime135Hours = res.Split.Overtime135.Round(2)
	day.Overtime200Hours = res.Split.Overtime200.Round(2)
	day.RegularRate = rates.Regular.Round(2)
	day.Overtime135Rate = rates.Overtime135.Round(2)
	day.Overtime200Rate = rates.Overtime200.Round(2)
	day.NightRate = rates.Night.Round(2)
	day.RateSource = rates.Source
	day.RegularPay = res.RegularPay.Round(2)
	day.Overtime135Pay = res.Overtime135Pay.Round(2)
	day.Overtime200Pay = res.Overtime200Pay.Round(2)
	day.NightPay = res.NightPay.Round(2)
	// Total is the sum of the persisted components so the audit
	// invariant regular+overtime+night == total holds exactly.
	day.TotalPay = day.RegularPay.
		Add(day.Overtime135Pay).
		Add(day.Overtime200Pay).
		Add(day.NightPay)
	return nil
}

func (s *service) enqueueCompletedEvent(ctx context.Context, tx *sql.Tx, day *WorkDay, forced bool) error {
	if s.outbox == nil {
		return nil
	}

	event := events.WorkDayCompletedEvent{
		EventType:       events.WorkDayCompletedType,
		WorkDayID:       day.ID.String(),
		EmployeeID:      day.EmployeeID.String(),
		WorkDate:        day.WorkDate.Format("2006-01-02"),
		ProductiveHours: day.ProductiveHours.String(),
		TotalPay:        day.TotalPay.String(),
		Forced:          forced,
		OccurredAt:      s.now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafkaout.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "work_day",
		AggregateID:   day.ID.String(),
		EventType:     events.WorkDayCompletedType,
		Topic:         events.WorkDayCompletedTopic,
		Payload:       payload,
		Status:        kafkaout.OutboxStatusPending,
	})
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// weekBounds returns the Monday and Sunday of the ISO week containing d.
func weekBounds(d time.Time) (time.Time, time.Time) {
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	start := dateOf(d).AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 6)
}

func mapSessionResponse(s ActivitySession) SessionResponse {
	resp := SessionResponse{
		ID:              s.ID.String(),
		WorkDayID:       s.WorkDayID.String(),
		Type:            s.Type,
		StartTime:       s.StartTime.Format(time.RFC3339),
		DurationSeconds: s.DurationSeconds,
		IsAdjusted:      s.IsAdjusted,
		Notes:           s.Notes,
	}
	if s.EndTime != nil {
		v := s.EndTime.Format(time.RFC3339)
		resp.EndTime = &v
	}
	return resp
}

func mapWorkDayResponse(w WorkDay) WorkDayResponse {
	resp := WorkDayResponse{
		ID:                w.ID.String(),
		EmployeeID:        w.EmployeeID.String(),
		WorkDate:          w.WorkDate.Format("2006-01-02"),
		Status:            w.Status,
		TotalWorkSeconds:  w.TotalWorkSeconds,
		TotalBreakSeconds: w.TotalBreakSeconds,
		TotalLunchSeconds: w.TotalLunchSeconds,
		BreakCount:        w.BreakCount,
		SessionCount:      w.SessionCount,
		ProductiveHours:   w.ProductiveHours,
		NightMinutes:      w.NightMinutes,
		RegularHours:      w.RegularHours,
		Overtime135Hours:  w.Overtime135Hours,
		Overtime200Hours:  w.Overtime200Hours,
		RegularPay:        w.RegularPay,
		Overtime135Pay:    w.Overtime135Pay,
		Overtime200Pay:    w.Overtime200Pay,
		NightPay:          w.NightPay,
		TotalPay:          w.TotalPay,
		RateSource:        w.RateSource,
		AdjustmentCount:   w.AdjustmentCount,
	}
	if w.CheckIn != nil {
		v := w.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &v
	}
	if w.CheckOut != nil {
		v := w.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &v
	}
	return resp
}
