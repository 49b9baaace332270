package directory

import (
	"context"

	"github.com/BruksfildServices01/randevu-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/randevu-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/randevu-scheduler/internal/domain/user"
)

type WorkingDays struct {
	repo  user.Repository
	cache ProviderCache
	audit *audit.Dispatcher
}

func NewWorkingDays(repo user.Repository, cache ProviderCache, audit *audit.Dispatcher) *WorkingDays {
	return &WorkingDays{repo: repo, cache: cache, audit: audit}
}

// Get returns the provider's working days in week order. An empty list
// means the provider accepts bookings every day.
func (uc *WorkingDays) Get(ctx context.Context, providerID uint) ([]string, error) {
	provider, err := uc.repo.GetProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}
	return domain.ParseWorkingDays(provider.WorkingDays).Names(), nil
}

// Set replaces the provider's working days. Names are validated strictly and
// stored in canonical form.
func (uc *WorkingDays) Set(ctx context.Context, providerID uint, names []string) ([]string, error) {
	days, err := domain.ValidateWorkingDays(names)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateWorkingDays(ctx, providerID, days.Encode()); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(providerID),
		Action:   audit.ActionWorkingDaysUpdated,
		Entity:   audit.EntityUser,
		EntityID: audit.Ptr(providerID),
		Metadata: map[string]any{"working_days": days.Names()},
	})

	return days.Names(), nil
}
