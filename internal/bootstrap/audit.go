package bootstrap

import (
	"context"
	"time"
)

// AuditLog is an operational audit record for actions taken on behalf
// of employees rather than by them.
type AuditLog struct {
	Action     string         `json:"action"`
	EmployeeID string         `json:"employee_id,omitempty"`
	Message    string         `json:"message"`
	Meta       map[string]any `json:"meta,omitempty"`
	At         time.Time      `json:"at"`
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
