package appointment

import (
	"context"

	"github.com/BruksfildServices01/randevu-scheduler/internal/audit"
	"github.com/BruksfildServices01/randevu-scheduler/internal/config"
	domain "github.com/BruksfildServices01/randevu-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/randevu-scheduler/internal/models"
	"github.com/BruksfildServices01/randevu-scheduler/internal/notify"
)

type UpdateStatusInput struct {
	AppointmentID uint
	Status        string

	CallerID   uint
	CallerRole string
}

// UpdateStatus changes an appointment's status. By default any known status
// is written as-is. Under the strict policy only the appointment's provider
// may move it out of pending.
type UpdateStatus struct {
	repo     domain.Repository
	policy   string
	audit    *audit.Dispatcher
	notifier notify.Notifier
}

func NewUpdateStatus(
	repo domain.Repository,
	policy string,
	audit *audit.Dispatcher,
	notifier notify.Notifier,
) *UpdateStatus {
	return &UpdateStatus{
		repo:     repo,
		policy:   policy,
		audit:    audit,
		notifier: notifier,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	in UpdateStatusInput,
) (*models.Appointment, error) {

	to, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, err
	}

	var from, expected domain.Status
	if uc.policy == config.StatusPolicyStrict {
		from, err = domain.Transition(ap, in.CallerID, to)
		if err != nil {
			return nil, err
		}
		expected = from
	} else {
		from = domain.Overwrite(ap, to)
	}

	if err := uc.repo.UpdateStatus(ctx, ap, expected); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(in.CallerID),
		Action:   audit.ActionAppointmentStatusChanged,
		Entity:   audit.EntityAppointment,
		EntityID: audit.Ptr(ap.ID),
		Metadata: map[string]any{
			"from":   from,
			"to":     to,
			"policy": uc.policy,
		},
	})

	uc.notifier.AppointmentStatusChanged(ap, string(from))

	return ap, nil
}
