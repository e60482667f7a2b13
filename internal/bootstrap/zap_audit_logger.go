package bootstrap

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// ZapAuditLogger writes audit records through the structured logger.
// Swapping in a database-backed sink only requires another AuditLogger.
type ZapAuditLogger struct {
	logger *zap.Logger
}

func NewZapAuditLogger(logger *zap.Logger) *ZapAuditLogger {
	return &ZapAuditLogger{logger: logger.Named("audit")}
}

func (a *ZapAuditLogger) Log(_ context.Context, entry AuditLog) {
	if entry.At.IsZero() {
		entry.At = time.Now()
	}
	fields := []zap.Field{
		zap.String("action", entry.Action),
		zap.Time("at", entry.At),
	}
	if entry.EmployeeID != "" {
		fields = append(fields, zap.String("employee_id", entry.EmployeeID))
	}
	if len(entry.Meta) > 0 {
		fields = append(fields, zap.Any("meta", entry.Meta))
	}
	a.logger.Info(entry.Message, fields...)
}
