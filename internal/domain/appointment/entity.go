package appointment

import (
	"github.com/BruksfildServices01/randevu-scheduler/internal/httperr"
	"github.com/BruksfildServices01/randevu-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Transition applies a strict status change made by the appointment's own
// provider and returns the previous status.
func Transition(ap *models.Appointment, providerID uint, to Status) (Status, error) {
	if ap.ProviderID != providerID {
		return "", httperr.ErrBusiness(httperr.CodeForbidden)
	}

	from := Status(ap.Status)
	if err := CanTransition(from, to); err != nil {
		return "", err
	}

	ap.Status = string(to)
	return from, nil
}

// Overwrite sets the status without looking at the current one.
func Overwrite(ap *models.Appointment, to Status) Status {
	from := Status(ap.Status)
	ap.Status = string(to)
	return from
}
