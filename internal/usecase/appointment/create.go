package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/randevu-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/randevu-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/randevu-scheduler/internal/httperr"
	"github.com/BruksfildServices01/randevu-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/randevu-scheduler/internal/models"
	"github.com/BruksfildServices01/randevu-scheduler/internal/notify"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ProviderID uint
	CustomerID uint // 0 means the caller

	Date string
	Time string

	CallerID   uint
	CallerRole string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo      domain.Repository
	providers domain.ProviderLookup
	locker    lock.SlotLocker
	audit     *audit.Dispatcher
	notifier  notify.Notifier
}

func NewCreateAppointment(
	repo domain.Repository,
	providers domain.ProviderLookup,
	locker lock.SlotLocker,
	audit *audit.Dispatcher,
	notifier notify.Notifier,
) *CreateAppointment {
	return &CreateAppointment{
		repo:      repo,
		providers: providers,
		locker:    locker,
		audit:     audit,
		notifier:  notifier,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1️⃣ Caller
	// --------------------------------------------------
	if in.CallerRole != models.RoleCustomer && in.CallerRole != models.RoleAdmin {
		return nil, httperr.ErrBusinessMsg(httperr.CodeForbidden, "Randevuyu yalnızca müşteriler oluşturabilir.")
	}

	customerID := in.CustomerID
	if customerID == 0 {
		customerID = in.CallerID
	}
	if customerID != in.CallerID && in.CallerRole != models.RoleAdmin {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	// --------------------------------------------------
	// 2️⃣ Slot
	// --------------------------------------------------
	if in.ProviderID == 0 {
		return nil, httperr.ErrBusinessMsg(httperr.CodeValidation, "provider_id zorunludur.")
	}

	slot, err := domain.ParseSlot(in.ProviderID, in.Date, in.Time)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Provider + working days
	// --------------------------------------------------
	provider, err := uc.providers.GetProvider(ctx, in.ProviderID)
	if err != nil {
		return nil, err
	}

	if err := domain.ParseWorkingDays(provider.WorkingDays).Allows(slot.Date); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4️⃣ Conflict check + insert
	// --------------------------------------------------
	ap := &models.Appointment{
		ProviderID: slot.ProviderID,
		CustomerID: customerID,
		Date:       models.NewDate(slot.Date),
		Time:       slot.Time,
		Status:     string(domain.InitialStatus()),
	}

	err = uc.locker.WithSlotLock(ctx, slot.Key(), func(ctx context.Context) error {
		return uc.repo.CreateIfSlotFree(ctx, ap)
	})
	if errors.Is(err, lock.ErrNotAcquired) {
		return nil, httperr.ErrBusiness(httperr.CodeSlotBeingBooked)
	}
	if httperr.IsBusiness(err, httperr.CodeSlotTaken) {
		uc.audit.Dispatch(audit.Event{
			UserID: audit.Ptr(in.CallerID),
			Action: audit.ActionAppointmentConflict,
			Entity: audit.EntityAppointment,
			Metadata: map[string]any{
				"provider_id": slot.ProviderID,
				"date":        slot.DateString(),
				"time":        slot.Time,
			},
		})
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Side effects
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		UserID:   audit.Ptr(in.CallerID),
		Action:   audit.ActionAppointmentCreated,
		Entity:   audit.EntityAppointment,
		EntityID: audit.Ptr(ap.ID),
	})

	uc.notifier.AppointmentRequested(provider, ap)

	return ap, nil
}
