package registry

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"

	"github.com/lorf543/payroll-sub000/internal/shared/apperror"
	"github.com/lorf543/payroll-sub000/internal/wage"
)

// RateResolver loads an employee's pay configuration and resolves the
// effective hourly rates. Concurrent lookups for the same employee are
// coalesced; a missing rate is logged and priced at zero, per policy.
type RateResolver struct {
	repo   Repository
	group  singleflight.Group
	logger *zap.Logger
}

func NewRateResolver(repo Repository, logger *zap.Logger) *RateResolver {
	return &RateResolver{repo: repo, logger: logger.Named("registry.rates")}
}

func (r *RateResolver) ResolveRates(ctx context.Context, employeeID uuid.UUID) (wage.Rates, error) {
	v, err, _ := r.group.Do(employeeID.String(), func() (any, error) {
		refs, err := r.repo.GetRateRefs(ctx, employeeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return wage.Rates{}, apperror.Wrap(err,
					apperror.CodeMissingReferenceData,
					"employee not found in registry", 404)
			}
			return wage.Rates{}, err
		}
		return wage.ResolveRates(refs), nil
	})
	if err != nil {
		return wage.Rates{}, err
	}

	rates := v.(wage.Rates)
	if rates.Source == wage.SourceNone {
		// Not fatal: the day is still recorded, just priced at zero.
		r.logger.Warn("no resolvable pay rate, pricing at zero",
			zap.String("code", apperror.CodeMissingReferenceData),
			zap.String("employee_id", employeeID.String()),
		)
	}
	return rates, nil
}
