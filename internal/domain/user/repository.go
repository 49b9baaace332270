package user

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/randevu-scheduler/internal/dto"
	"github.com/BruksfildServices01/randevu-scheduler/internal/models"
)

var ErrNotFound = errors.New("user not found")

// Repository is the directory side of the system: accounts, provider
// profiles and the aggregate numbers shown on the admin page.
type Repository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)

	// GetProvider satisfies appointment.ProviderLookup.
	GetProvider(ctx context.Context, id uint) (*models.User, error)
	ListProviders(ctx context.Context, category string) ([]models.User, error)

	UpdateWorkingDays(ctx context.Context, id uint, raw []byte) error
	UpdateAvatar(ctx context.Context, id uint, url string) error

	Stats(ctx context.Context) (*dto.AdminStats, error)
}
