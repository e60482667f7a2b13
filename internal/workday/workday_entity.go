package workday

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// WorkDay statuses. ACTIVE is the only non-terminal state; the session
// machine only ever reaches COMPLETED, the rest are administrative.
const (
	StatusActive    = "ACTIVE"
	StatusCompleted = "COMPLETED"
	StatusAbsent    = "ABSENT"
	StatusLeave     = "LEAVE"
	StatusHoliday   = "HOLIDAY"
)

// Activity session types.
const (
	TypeWork      = "WORK"
	TypeBreak     = "BREAK"
	TypeLunch     = "LUNCH"
	TypeTraining  = "TRAINING"
	TypeMeeting   = "MEETING"
	TypeTechnical = "TECHNICAL"
)

// WorkDay is one employee's attendance and pay record for one calendar
// date. At most one row exists per (employee, date), enforced by the
// unique index. Pay rates are retained alongside the computed amounts
// for audit.
type WorkDay struct {
	ID         uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID  `gorm:"column:employee_id;type:uuid;not null;uniqueIndex:idx_employee_work_date"`
	WorkDate   time.Time  `gorm:"column:work_date;type:date;not null;uniqueIndex:idx_employee_work_date"`
	Status     string     `gorm:"column:status;type:varchar(20);not null;default:ACTIVE;index"`
	CheckIn    *time.Time `gorm:"column:check_in;type:timestamptz"`
	CheckOut   *time.Time `gorm:"column:check_out;type:timestamptz"`

	TotalWorkSeconds  int64 `gorm:"column:total_work_seconds;not null;default:0"`
	TotalBreakSeconds int64 `gorm:"column:total_break_seconds;not null;default:0"`
	TotalLunchSeconds int64 `gorm:"column:total_lunch_seconds;not null;default:0"`
	BreakCount        int   `gorm:"column:break_count;not null;default:0"`
	SessionCount      int   `gorm:"column:session_count;not null;default:0"`

	ProductiveHours decimal.Decimal `gorm:"column:productive_hours;type:numeric(8,2);not null;default:0"`
	NightMinutes    int64           `gorm:"column:night_minutes;not null;default:0"`

	RegularHours     decimal.Decimal `gorm:"column:regular_hours;type:numeric(8,2);not null;default:0"`
	Overtime135Hours decimal.Decimal `gorm:"column:overtime_135_hours;type:numeric(8,2);not null;default:0"`
	Overtime200Hours decimal.Decimal `gorm:"column:overtime_200_hours;type:numeric(8,2);not null;default:0"`

	RegularRate     decimal.Decimal `gorm:"column:regular_rate;type:numeric(10,2);not null;default:0"`
	Overtime135Rate decimal.Decimal `gorm:"column:overtime_135_rate;type:numeric(10,2);not null;default:0"`
	Overtime200Rate decimal.Decimal `gorm:"column:overtime_200_rate;type:numeric(10,2);not null;default:0"`
	NightRate       decimal.Decimal `gorm:"column:night_rate;type:numeric(10,2);not null;default:0"`
	RateSource      string          `gorm:"column:rate_source;type:varchar(20);not null;default:NONE"`

	RegularPay     decimal.Decimal `gorm:"column:regular_pay;type:numeric(14,2);not null;default:0"`
	Overtime135Pay decimal.Decimal `gorm:"column:overtime_135_pay;type:numeric(14,2);not null;default:0"`
	Overtime200Pay decimal.Decimal `gorm:"column:overtime_200_pay;type:numeric(14,2);not null;default:0"`
	NightPay       decimal.Decimal `gorm:"column:night_pay;type:numeric(14,2);not null;default:0"`
	TotalPay       decimal.Decimal `gorm:"column:total_pay;type:numeric(14,2);not null;default:0"`

	IsApproved bool       `gorm:"column:is_approved;not null;default:false"`
	ApprovedBy *uuid.UUID `gorm:"column:approved_by;type:uuid"`
	ApprovedAt *time.Time `gorm:"column:approved_at;type:timestamptz"`

	AdjustmentCount      int           `gorm:"column:adjustment_count;not null;default:0"`
	LastAdjustmentAt     *time.Time    `gorm:"column:last_adjustment_at;type:timestamptz"`
	LastAdjustmentBy     *uuid.UUID    `gorm:"column:last_adjustment_by;type:uuid"`
	LastAdjustmentReason *string       `gorm:"column:last_adjustment_reason;type:text"`
	AdjustmentLog        AdjustmentLog `gorm:"column:adjustment_log;type:jsonb;not null;default:'[]'"`

	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`

	Sessions []ActivitySession `gorm:"foreignKey:WorkDayID;constraint:OnDelete:CASCADE"`
}

func (WorkDay) TableName() string {
	return "work_days"
}

// IsTerminal reports whether the day can no longer accept session
// mutations.
func (w *WorkDay) IsTerminal() bool {
	return w.Status != StatusActive
}

// ActivitySession is one contiguous interval of a single activity type
// within a WorkDay. EndTime and DurationSeconds stay null while the
// session is open; OriginalStart/OriginalEnd are captured once and
// never mutated, so manual adjustments remain auditable.
type ActivitySession struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	WorkDayID       uuid.UUID  `gorm:"column:work_day_id;type:uuid;not null;index"`
	Type            string     `gorm:"column:session_type;type:varchar(20);not null"`
	StartTime       time.Time  `gorm:"column:start_time;type:timestamptz;not null"`
	EndTime         *time.Time `gorm:"column:end_time;type:timestamptz"`
	DurationSeconds *int64     `gorm:"column:duration_seconds"`

	OriginalStart time.Time  `gorm:"column:original_start;type:timestamptz;not null"`
	OriginalEnd   *time.Time `gorm:"column:original_end;type:timestamptz"`

	IsAdjusted       bool       `gorm:"column:is_adjusted;not null;default:false"`
	AdjustedBy       *uuid.UUID `gorm:"column:adjusted_by;type:uuid"`
	AdjustedAt       *time.Time `gorm:"column:adjusted_at;type:timestamptz"`
	AdjustmentReason *string    `gorm:"column:adjustment_reason;type:text"`

	Notes     *string   `gorm:"column:notes;type:text"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (ActivitySession) TableName() string {
	return "activity_sessions"
}

func validSessionType(t string) bool {
	switch t {
	case TypeWork, TypeBreak, TypeLunch, TypeTraining, TypeMeeting, TypeTechnical:
		return true
	default:
		return false
	}
}

// countsAsWork reports whether a session type accrues productive time.
func countsAsWork(t string) bool {
	switch t {
	case TypeWork, TypeTraining, TypeMeeting, TypeTechnical:
		return true
	default:
		return false
	}
}

// AdjustmentEntry is one append-only record in a WorkDay's adjustment
// history. Entries are never rewritten.
type AdjustmentEntry struct {
	Timestamp  time.Time          `json:"timestamp"`
	ActorID    string             `json:"actor_id"`
	Reason     string             `json:"reason"`
	SessionIDs []string           `json:"session_ids,omitempty"`
	Before     AdjustmentSnapshot `json:"before"`
}

// AdjustmentSnapshot captures the aggregate state of the day before
// the adjustment was applied.
type AdjustmentSnapshot struct {
	TotalWorkSeconds  int64  `json:"total_work_seconds"`
	TotalBreakSeconds int64  `json:"total_break_seconds"`
	TotalLunchSeconds int64  `json:"total_lunch_seconds"`
	ProductiveHours   string `json:"productive_hours"`
	TotalPay          string `json:"total_pay"`
	Status            string `json:"status"`
}

// AdjustmentLog is stored embedded on the work_days row as jsonb.
type AdjustmentLog []AdjustmentEntry

func (l AdjustmentLog) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *AdjustmentLog) Scan(value any) error {
	if value == nil {
		*l = AdjustmentLog{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported adjustment_log column type")
	}
}
