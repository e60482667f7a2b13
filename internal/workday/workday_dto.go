package workday

import "github.com/shopspring/decimal"

type StartSessionRequest struct {
	Type  string  `json:"type" binding:"required"`
	Notes *string `json:"notes"`
}

type RecordAdjustmentRequest struct {
	Date       string   `json:"date" binding:"required"`
	Reason     string   `json:"reason" binding:"required"`
	SessionIDs []string `json:"session_ids"`
}

type SessionResponse struct {
	ID              string  `json:"id"`
	WorkDayID       string  `json:"work_day_id"`
	Type            string  `json:"type"`
	StartTime       string  `json:"start_time"`
	EndTime         *string `json:"end_time,omitempty"`
	DurationSeconds *int64  `json:"duration_seconds,omitempty"`
	IsAdjusted      bool    `json:"is_adjusted"`
	Notes           *string `json:"notes,omitempty"`
}

type WorkDayResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	WorkDate   string  `json:"work_date"`
	Status     string  `json:"status"`
	CheckIn    *string `json:"check_in,omitempty"`
	CheckOut   *string `json:"check_out,omitempty"`

	TotalWorkSeconds  int64 `json:"total_work_seconds"`
	TotalBreakSeconds int64 `json:"total_break_seconds"`
	TotalLunchSeconds int64 `json:"total_lunch_seconds"`
	BreakCount        int   `json:"break_count"`
	SessionCount      int   `json:"session_count"`

	ProductiveHours decimal.Decimal `json:"productive_hours"`
	NightMinutes    int64           `json:"night_minutes"`

	RegularHours     decimal.Decimal `json:"regular_hours"`
	Overtime135Hours decimal.Decimal `json:"overtime_135_hours"`
	Overtime200Hours decimal.Decimal `json:"overtime_200_hours"`

	RegularPay     decimal.Decimal `json:"regular_pay"`
	Overtime135Pay decimal.Decimal `json:"overtime_135_pay"`
	Overtime200Pay decimal.Decimal `json:"overtime_200_pay"`
	NightPay       decimal.Decimal `json:"night_pay"`
	TotalPay       decimal.Decimal `json:"total_pay"`
	RateSource     string          `json:"rate_source"`

	AdjustmentCount int `json:"adjustment_count"`
}
