package registry

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Presence is the single authoritative owner of the employee
// is_logged_in flag. Login, logout, and the auto-logout sweep all go
// through Transition; nothing else mutates the flag.
type Presence struct {
	repo   Repository
	logger *zap.Logger
}

func NewPresence(repo Repository, logger *zap.Logger) *Presence {
	return &Presence{repo: repo, logger: logger.Named("registry.presence")}
}

func (p *Presence) Transition(ctx context.Context, employeeID uuid.UUID, loggedIn bool, reason string) error {
	if err := p.repo.SetLoggedIn(ctx, employeeID, loggedIn); err != nil {
		return err
	}
	p.logger.Info("presence transition",
		zap.String("employee_id", employeeID.String()),
		zap.Bool("logged_in", loggedIn),
		zap.String("reason", reason),
	)
	return nil
}
