package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/randevu-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/randevu-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/randevu-scheduler/internal/dto"
	"github.com/BruksfildServices01/randevu-scheduler/internal/httperr"
	"github.com/BruksfildServices01/randevu-scheduler/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) Create(ctx context.Context, u *models.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if httperr.IsUniqueViolation(err) {
			return httperr.ErrBusiness(httperr.CodeUsernameTaken)
		}
		return err
	}
	return nil
}

func (r *UserGormRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, user.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --------------------------------------------------
// Providers
// --------------------------------------------------

func (r *UserGormRepository) GetProvider(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, models.RoleProvider).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeProviderNotFound)
		}
		return nil, err
	}
	return &u, nil
}

func (r *UserGormRepository) ListProviders(ctx context.Context, category string) ([]models.User, error) {
	q := r.db.WithContext(ctx).
		Select("id", "full_name", "category", "bio", "avatar_url", "working_days").
		Where("role = ?", models.RoleProvider)

	if category != "" {
		q = q.Where("category = ?", category)
	}

	var providers []models.User
	if err := q.Order("id ASC").Find(&providers).Error; err != nil {
		return nil, err
	}
	return providers, nil
}

func (r *UserGormRepository) UpdateWorkingDays(ctx context.Context, id uint, raw []byte) error {
	var value any
	if raw != nil {
		value = string(raw)
	}

	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND role = ?", id, models.RoleProvider).
		Update("working_days", value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeProviderNotFound)
	}
	return nil
}

func (r *UserGormRepository) UpdateAvatar(ctx context.Context, id uint, url string) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ? AND role = ?", id, models.RoleProvider).
		Update("avatar_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeProviderNotFound)
	}
	return nil
}

// --------------------------------------------------
// Admin
// --------------------------------------------------

func (r *UserGormRepository) Stats(ctx context.Context) (*dto.AdminStats, error) {
	db := r.db.WithContext(ctx)
	stats := &dto.AdminStats{}

	if err := db.Model(&models.User{}).Count(&stats.Users).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Appointment{}).Count(&stats.Appointments).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.User{}).
		Select("category, count(*) AS count").
		Where("role = ?", models.RoleProvider).
		Group("category").
		Scan(&stats.Categories).Error; err != nil {
		return nil, err
	}

	if err := db.Table("appointments AS a").
		Select("u.full_name, count(a.id) AS count").
		Joins("JOIN users u ON a.provider_id = u.id").
		Group("u.id, u.full_name").
		Order("count DESC").
		Limit(5).
		Scan(&stats.Popular).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

// Compile-time checks
var (
	_ user.Repository       = (*UserGormRepository)(nil)
	_ domain.ProviderLookup = (*UserGormRepository)(nil)
)
