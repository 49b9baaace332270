package directory

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/randevu-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/randevu-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/randevu-scheduler/internal/dto"
	"github.com/BruksfildServices01/randevu-scheduler/internal/models"
)

// AllCategories is the filter value the UI sends for "no filter".
const AllCategories = "Tümü"

type ProviderCache interface {
	Get(ctx context.Context, category string) ([]dto.ProviderDTO, bool)
	Set(ctx context.Context, category string, providers []dto.ProviderDTO)
	Invalidate(ctx context.Context)
}

// ======================================================
// LIST PROVIDERS
// ======================================================

type ListProviders struct {
	repo  user.Repository
	cache ProviderCache
}

func NewListProviders(repo user.Repository, cache ProviderCache) *ListProviders {
	return &ListProviders{repo: repo, cache: cache}
}

func (uc *ListProviders) Execute(ctx context.Context, category string) ([]dto.ProviderDTO, error) {
	category = strings.TrimSpace(category)
	if category == AllCategories {
		category = ""
	}

	if cached, ok := uc.cache.Get(ctx, category); ok {
		return cached, nil
	}

	providers, err := uc.repo.ListProviders(ctx, category)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ProviderDTO, 0, len(providers))
	for i := range providers {
		out = append(out, ToProviderDTO(&providers[i]))
	}

	uc.cache.Set(ctx, category, out)
	return out, nil
}

func ToProviderDTO(u *models.User) dto.ProviderDTO {
	return dto.ProviderDTO{
		ID:          u.ID,
		FullName:    u.FullName,
		Category:    u.Category,
		Bio:         u.Bio,
		AvatarURL:   u.AvatarURL,
		WorkingDays: domain.ParseWorkingDays(u.WorkingDays).Names(),
	}
}
