package workday_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/lorf543/payroll-sub000/internal/workday"
	wderrors "github.com/lorf543/payroll-sub000/internal/workday/errors"
)

type fakeService struct {
	startFn  func(ctx context.Context, employeeID string, req workday.StartSessionRequest) (workday.SessionResponse, error)
	endFn    func(ctx context.Context, employeeID string) (*workday.SessionResponse, error)
	endDayFn func(ctx context.Context, employeeID string) (workday.WorkDayResponse, error)
	getDayFn func(ctx context.Context, employeeID, date string) (workday.WorkDayResponse, error)
}

func (f *fakeService) StartSession(ctx context.Context, employeeID string, req workday.StartSessionRequest) (workday.SessionResponse, error) {
	return f.startFn(ctx, employeeID, req)
}
func (f *fakeService) EndCurrentSession(ctx context.Context, employeeID string) (*workday.SessionResponse, error) {
	return f.endFn(ctx, employeeID)
}
func (f *fakeService) EndDay(ctx context.Context, employeeID string) (workday.WorkDayResponse, error) {
	return f.endDayFn(ctx, employeeID)
}
func (f *fakeService) GetActiveSession(ctx context.Context, employeeID string) (*workday.SessionResponse, error) {
	return nil, nil
}
func (f *fakeService) GetWorkDay(ctx context.Context, employeeID, date string) (workday.WorkDayResponse, error) {
	return f.getDayFn(ctx, employeeID, date)
}
func (f *fakeService) RecordAdjustment(ctx context.Context, employeeID, actorID string, req workday.RecordAdjustmentRequest) (workday.WorkDayResponse, error) {
	return workday.WorkDayResponse{}, nil
}
func (f *fakeService) ForceEndDay(ctx context.Context, employeeID uuid.UUID, at time.Time) (workday.WorkDayResponse, error) {
	return workday.WorkDayResponse{}, nil
}

func TestHandler_StartSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	svc := &fakeService{
		startFn: func(ctx context.Context, eid string, req workday.StartSessionRequest) (workday.SessionResponse, error) {
			assert.Equal(t, employeeID, eid)
			assert.Equal(t, workday.TypeWork, req.Type)
			return workday.SessionResponse{ID: uuid.New().String(), Type: req.Type}, nil
		},
	}
	h := workday.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", employeeID)
	c.Request = httptest.NewRequest(http.MethodPost, "/workdays/sessions/start", strings.NewReader(`{"type":"WORK"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.StartSession(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"type":"WORK"`)
}

func TestHandler_StartSessionValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := workday.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/workdays/sessions/start", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.StartSession(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_EndDayOnClosedDay(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		endDayFn: func(ctx context.Context, employeeID string) (workday.WorkDayResponse, error) {
			return workday.WorkDayResponse{}, wderrors.ErrDayClosed
		},
	}
	h := workday.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/workdays/end-day", nil)
	h.EndDay(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_STATE")
}

func TestHandler_EndSessionWithoutActive(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		endFn: func(ctx context.Context, employeeID string) (*workday.SessionResponse, error) {
			return nil, nil
		},
	}
	h := workday.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.New().String())
	c.Request = httptest.NewRequest(http.MethodPost, "/workdays/sessions/end", nil)
	h.EndCurrentSession(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"active":false`)
}

func TestHandler_GetWorkDayNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		getDayFn: func(ctx context.Context, employeeID, date string) (workday.WorkDayResponse, error) {
			return workday.WorkDayResponse{}, wderrors.ErrDayNotFound
		},
	}
	h := workday.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("employee_id", uuid.New().String())
	c.Params = gin.Params{{Key: "date", Value: "2026-02-31"}}
	c.Request = httptest.NewRequest(http.MethodGet, "/workdays/2026-02-31", nil)
	h.GetWorkDay(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
