package autologout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/lorf543/payroll-sub000/internal/bootstrap"
	"github.com/lorf543/payroll-sub000/internal/registry"
	"github.com/lorf543/payroll-sub000/internal/wage"
	"github.com/lorf543/payroll-sub000/internal/workday"
)

type fakeRegistry struct {
	campaigns    []registry.Campaign
	loggedIn     map[uuid.UUID][]registry.Employee
	listErr      map[uuid.UUID]error
	setLoggedOut []uuid.UUID
	clearedCount int64
}

func (f *fakeRegistry) CreateEmployee(context.Context, *registry.Employee) error { return nil }
func (f *fakeRegistry) GetEmployee(context.Context, uuid.UUID) (*registry.Employee, error) {
	return nil, errors.New("not implemented")
}
func (f *fakeRegistry) GetRateRefs(context.Context, uuid.UUID) (wage.RateRefs, error) {
	return wage.RateRefs{}, nil
}

func (f *fakeRegistry) ListShutdownDueCampaigns(context.Context, time.Time) ([]registry.Campaign, error) {
	return f.campaigns, nil
}

func (f *fakeRegistry) ListLoggedInEmployees(_ context.Context, campaignID uuid.UUID) ([]registry.Employee, error) {
	if err := f.listErr[campaignID]; err != nil {
		return nil, err
	}
	return f.loggedIn[campaignID], nil
}

func (f *fakeRegistry) SetLoggedIn(_ context.Context, employeeID uuid.UUID, loggedIn bool) error {
	if !loggedIn {
		f.setLoggedOut = append(f.setLoggedOut, employeeID)
	}
	return nil
}

func (f *fakeRegistry) ClearAllLoggedIn(context.Context) (int64, error) {
	cleared := f.clearedCount
	f.clearedCount = 0
	return cleared, nil
}

type fakeCloser struct {
	failFor map[uuid.UUID]error
	closed  []uuid.UUID
}

func (f *fakeCloser) ForceEndDay(_ context.Context, employeeID uuid.UUID, _ time.Time) (workday.WorkDayResponse, error) {
	if err := f.failFor[employeeID]; err != nil {
		return workday.WorkDayResponse{}, err
	}
	f.closed = append(f.closed, employeeID)
	return workday.WorkDayResponse{}, nil
}

type fakeSessions struct {
	deletedFor      []uuid.UUID
	allSessionCount int64
}

func (f *fakeSessions) Create(context.Context, uuid.UUID, time.Duration) (string, error) {
	return uuid.New().String(), nil
}

func (f *fakeSessions) DeleteForEmployee(_ context.Context, employeeID uuid.UUID) (int64, error) {
	f.deletedFor = append(f.deletedFor, employeeID)
	return 1, nil
}

func (f *fakeSessions) DeleteAll(context.Context) (int64, error) {
	deleted := f.allSessionCount
	f.allSessionCount = 0
	return deleted, nil
}

type captureAudit struct {
	entries []bootstrap.AuditLog
}

func (c *captureAudit) Log(_ context.Context, entry bootstrap.AuditLog) {
	c.entries = append(c.entries, entry)
}

func newSweepFixture(reg *fakeRegistry, closer *fakeCloser, sessions *fakeSessions, audit *captureAudit) Service {
	logger := zap.NewNop()
	presence := registry.NewPresence(reg, logger)
	loc, _ := time.LoadLocation("America/Santo_Domingo")
	return NewService(reg, presence, closer, sessions, audit, logger, loc)
}

func TestRunSweep_OneEmployeeFailingDoesNotBlockOthers(t *testing.T) {
	campaignID := uuid.New()
	emp1, emp2, emp3 := uuid.New(), uuid.New(), uuid.New()

	reg := &fakeRegistry{
		campaigns: []registry.Campaign{{ID: campaignID, Name: "Night Support"}},
		loggedIn: map[uuid.UUID][]registry.Employee{
			campaignID: {{ID: emp1}, {ID: emp2}, {ID: emp3}},
		},
	}
	closer := &fakeCloser{failFor: map[uuid.UUID]error{emp2: errors.New("deadlock detected")}}
	sessions := &fakeSessions{}
	audit := &captureAudit{}

	svc := newSweepFixture(reg, closer, sessions, audit)
	summary, err := svc.RunSweep(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 2, summary.EmployeesLoggedOut)
	assert.Equal(t, 1, summary.CampaignsProcessed)
	assert.Equal(t, 1, summary.Failures)

	assert.ElementsMatch(t, []uuid.UUID{emp1, emp3}, closer.closed)
	assert.ElementsMatch(t, []uuid.UUID{emp1, emp3}, reg.setLoggedOut)
	assert.ElementsMatch(t, []uuid.UUID{emp1, emp3}, sessions.deletedFor)

	if assert.Len(t, audit.entries, 1) {
		assert.Equal(t, "AUTO_LOGOUT_SWEEP", audit.entries[0].Action)
	}
}

func TestRunSweep_NoDueCampaignsIsQuiet(t *testing.T) {
	reg := &fakeRegistry{}
	closer := &fakeCloser{}
	sessions := &fakeSessions{}
	audit := &captureAudit{}

	svc := newSweepFixture(reg, closer, sessions, audit)
	summary, err := svc.RunSweep(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, SweepSummary{}, summary)
	assert.Empty(t, audit.entries)
}

func TestRunSweep_ListFailureCountsAndContinues(t *testing.T) {
	badCampaign := uuid.New()
	goodCampaign := uuid.New()
	emp := uuid.New()

	reg := &fakeRegistry{
		campaigns: []registry.Campaign{{ID: badCampaign}, {ID: goodCampaign}},
		loggedIn:  map[uuid.UUID][]registry.Employee{goodCampaign: {{ID: emp}}},
		listErr:   map[uuid.UUID]error{badCampaign: errors.New("connection reset")},
	}
	closer := &fakeCloser{}
	sessions := &fakeSessions{}

	svc := newSweepFixture(reg, closer, sessions, &captureAudit{})
	summary, err := svc.RunSweep(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, summary.EmployeesLoggedOut)
	assert.Equal(t, 1, summary.CampaignsProcessed)
	assert.Equal(t, 1, summary.Failures)
	assert.Equal(t, []uuid.UUID{emp}, closer.closed)
}

func TestForceLogoutAll_ReportsAndIsIdempotent(t *testing.T) {
	reg := &fakeRegistry{clearedCount: 5}
	sessions := &fakeSessions{allSessionCount: 7}
	audit := &captureAudit{}

	svc := newSweepFixture(reg, &fakeCloser{}, sessions, audit)

	summary, err := svc.ForceLogoutAll(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(5), summary.EmployeesLoggedOut)
	assert.Equal(t, int64(7), summary.SessionsDeleted)

	// Second run finds nothing to do and still succeeds.
	again, err := svc.ForceLogoutAll(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, ForceLogoutSummary{}, again)

	assert.Len(t, audit.entries, 2)
}
