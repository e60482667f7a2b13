package autologout

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// RunScheduler drives the shutdown sweep on a fixed interval until the
// context is cancelled. Sweep errors are logged, never fatal; the next
// tick retries from scratch.
func RunScheduler(ctx context.Context, svc Service, interval time.Duration, logger *zap.Logger) {
	log := logger.Named("autologout-scheduler")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("auto-logout scheduler started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			log.Info("auto-logout scheduler stopped")
			return
		case <-ticker.C:
			summary, err := svc.RunSweep(ctx)
			if err != nil {
				log.Error("sweep run failed", zap.Error(err))
				continue
			}
			if summary.EmployeesLoggedOut > 0 || summary.Failures > 0 {
				log.Info("sweep run finished",
					zap.Int("employees_logged_out", summary.EmployeesLoggedOut),
					zap.Int("campaigns_processed", summary.CampaignsProcessed),
					zap.Int("failures", summary.Failures),
				)
			}
		}
	}
}
