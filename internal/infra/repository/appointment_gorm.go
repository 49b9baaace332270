package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/randevu-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/randevu-scheduler/internal/dto"
	"github.com/BruksfildServices01/randevu-scheduler/internal/httperr"
	"github.com/BruksfildServices01/randevu-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Appointment (create / conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateIfSlotFree(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var holding []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where(
				`provider_id = ? AND "date" = ? AND "time" = ? AND status <> ?`,
				ap.ProviderID, ap.Date, ap.Time, domain.StatusCancelled,
			).
			Limit(1).
			Find(&holding).Error; err != nil {
			return err
		}

		if len(holding) > 0 {
			return httperr.ErrBusiness(httperr.CodeSlotTaken)
		}

		return tx.Create(ap).Error
	})

	// two transactions can both see an empty slot; the partial unique index
	// lets only one insert through
	if httperr.IsUniqueViolation(err) {
		return httperr.ErrBusiness(httperr.CodeSlotTaken)
	}
	return err
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeAppointmentMissing)
		}
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateStatus(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) error {

	q := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ?", ap.ID)

	if from != "" {
		q = q.Where("status = ?", from)
	}

	now := time.Now()
	res := q.Updates(map[string]any{
		"status":     ap.Status,
		"updated_at": now,
	})
	if res.Error != nil {
		// re-activating a cancelled appointment whose slot was booked again
		if httperr.IsUniqueViolation(res.Error) {
			return httperr.ErrBusiness(httperr.CodeSlotTaken)
		}
		return res.Error
	}

	if res.RowsAffected == 0 {
		if from != "" {
			return httperr.ErrBusinessMsg(
				httperr.CodeInvalidTransition,
				"Randevu artık %s durumunda değil.",
				from,
			)
		}
		return httperr.ErrBusiness(httperr.CodeAppointmentMissing)
	}

	ap.UpdatedAt = now
	return nil
}

// --------------------------------------------------
// Listing
// --------------------------------------------------

type appointmentRow struct {
	ID           uint
	ProviderID   uint
	CustomerID   uint
	Date         time.Time
	Time         string
	Status       string
	Rating       *int
	Comment      *string
	CreatedAt    time.Time
	ProviderName *string
	Category     *string
	CustomerName *string
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	f domain.ListFilter,
) ([]dto.AppointmentListDTO, error) {

	q := r.db.WithContext(ctx).
		Table("appointments AS a").
		Select(`a.id, a.provider_id, a.customer_id, a."date", a."time", a.status,
			a.rating, a.comment, a.created_at,
			u_prov.full_name AS provider_name, u_prov.category AS category,
			u_cust.full_name AS customer_name`).
		Joins("LEFT JOIN users u_prov ON a.provider_id = u_prov.id").
		Joins("LEFT JOIN users u_cust ON a.customer_id = u_cust.id")

	switch f.Role {
	case models.RoleProvider:
		q = q.Where("a.provider_id = ?", f.UserID)
	case models.RoleCustomer:
		q = q.Where("a.customer_id = ?", f.UserID)
	}

	var rows []appointmentRow
	if err := q.
		Order(`a."date" DESC, a."time" ASC`).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, dto.AppointmentListDTO{
			ID:           row.ID,
			ProviderID:   row.ProviderID,
			CustomerID:   row.CustomerID,
			Date:         row.Date.Format(domain.DateLayout),
			Time:         row.Time,
			Status:       row.Status,
			Rating:       row.Rating,
			Comment:      row.Comment,
			CreatedAt:    row.CreatedAt,
			ProviderName: deref(row.ProviderName),
			Category:     row.Category,
			CustomerName: deref(row.CustomerName),
		})
	}

	return out, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
