package appointment

import (
	"context"

	"github.com/BruksfildServices01/randevu-scheduler/internal/dto"
	"github.com/BruksfildServices01/randevu-scheduler/internal/models"
)

// ListFilter selects whose appointments are listed. An empty Role lists all.
type ListFilter struct {
	UserID uint
	Role   string
}

// ProviderLookup is the directory dependency of the booking core.
type ProviderLookup interface {
	// GetProvider returns provider_not_found for unknown ids and for users
	// whose role is not provider.
	GetProvider(ctx context.Context, id uint) (*models.User, error)
}

type Repository interface {
	// -------- Appointment (create / conflict) --------

	// CreateIfSlotFree inserts ap unless another appointment still holds the
	// same (provider, date, time) slot, in which case it returns slot_taken.
	CreateIfSlotFree(ctx context.Context, ap *models.Appointment) error

	// -------- Appointment (state change) --------
	GetAppointment(ctx context.Context, id uint) (*models.Appointment, error)

	// UpdateStatus persists ap.Status. With a non-empty from the write only
	// happens while the stored status still equals from.
	UpdateStatus(ctx context.Context, ap *models.Appointment, from Status) error

	// -------- Listing --------
	ListAppointments(ctx context.Context, f ListFilter) ([]dto.AppointmentListDTO, error)
}
