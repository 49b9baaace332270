package directory

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/randevu-scheduler/internal/audit"
	"github.com/BruksfildServices01/randevu-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/randevu-scheduler/internal/httperr"
	"github.com/BruksfildServices01/randevu-scheduler/internal/imaging"
	"github.com/BruksfildServices01/randevu-scheduler/internal/infra/storage"
)

type UploadAvatar struct {
	repo  user.Repository
	store storage.ObjectStore // nil when object storage is not configured
	cache ProviderCache
	audit *audit.Dispatcher
	size  int
}

func NewUploadAvatar(
	repo user.Repository,
	store storage.ObjectStore,
	cache ProviderCache,
	audit *audit.Dispatcher,
	size int,
) *UploadAvatar {
	return &UploadAvatar{
		repo:  repo,
		store: store,
		cache: cache,
		audit: audit,
		size:  size,
	}
}

func (uc *UploadAvatar) Execute(ctx context.Context, providerID uint, image io.Reader) (string, error) {
	if uc.store == nil {
		return "", httperr.ErrBusiness(httperr.CodeFeatureDisabled)
	}

	if _, err := uc.repo.GetProvider(ctx, providerID); err != nil {
		return "", err
	}

	body, err := imaging.Avatar(image, uc.size)
	switch {
	case errors.Is(err, imaging.ErrTooLarge):
		return "", httperr.ErrBusinessMsg(httperr.CodeValidation, "Görsel en fazla 5 MB olabilir.")
	case errors.Is(err, imaging.ErrUnsupported):
		return "", httperr.ErrBusinessMsg(httperr.CodeValidation, "Görsel JPEG, PNG veya WebP olmalıdır.")
	case err != nil:
		return "", err
	}

	key := fmt.Sprintf("avatars/%d/%s.webp", providerID, uuid.NewString())
	url, err := uc.store.Put(ctx, key, body, imaging.ContentType)
	if err != nil {
		return "", err
	}

	if err := uc.repo.UpdateAvatar(ctx, providerID, url); err != nil {
		return "", err
	}

	uc.cache.Invalidate(ctx)

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(providerID),
		Action:   audit.ActionAvatarUpdated,
		Entity:   audit.EntityUser,
		EntityID: audit.Ptr(providerID),
		Metadata: map[string]any{"key": key},
	})

	return url, nil
}
