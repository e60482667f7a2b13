package events

import "time"

const (
	WorkDayCompletedTopic = "attendance.workday.lifecycle.v1"
	WorkDayCompletedType  = "workday.completed"
)

// WorkDayCompletedEvent is published once per day close (manual or
// forced) for downstream payroll consumers. Amounts travel as decimal
// strings.
type WorkDayCompletedEvent struct {
	EventType       string    `json:"event_type"`
	WorkDayID       string    `json:"work_day_id"`
	EmployeeID      string    `json:"employee_id"`
	WorkDate        string    `json:"work_date"`
	ProductiveHours string    `json:"productive_hours"`
	TotalPay        string    `json:"total_pay"`
	Forced          bool      `json:"forced"`
	OccurredAt      time.Time `json:"occurred_at"`
}
