package appointment

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/randevu-scheduler/internal/audit"
	"github.com/BruksfildServices01/randevu-scheduler/internal/config"
	"github.com/BruksfildServices01/randevu-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/randevu-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/randevu-scheduler/internal/models"
)

type nopSink struct{}

func (nopSink) Log(audit.Event) error { return nil }

type recordingNotifier struct {
	mu        sync.Mutex
	requested []uint
	changed   []string
}

func (n *recordingNotifier) AppointmentRequested(provider *models.User, _ *models.Appointment) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.requested = append(n.requested, provider.ID)
}

func (n *recordingNotifier) AppointmentStatusChanged(ap *models.Appointment, from string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changed = append(n.changed, from+"->"+ap.Status)
}

type busyLocker struct{}

func (busyLocker) WithSlotLock(context.Context, string, func(context.Context) error) error {
	return lock.ErrNotAcquired
}

type fixture struct {
	store    *memory.Store
	notifier *recordingNotifier

	create *CreateAppointment
	update *UpdateStatus
	list   *ListAppointments

	admin, ahmet, ayse, kemal *models.User
	mehmet, zeynep            *models.User
}

func newFixture(t *testing.T, policy string) *fixture {
	t.Helper()

	store := memory.NewStore()
	dispatcher := audit.NewDispatcher(nopSink{})
	t.Cleanup(dispatcher.Close)

	f := &fixture{
		store:    store,
		notifier: &recordingNotifier{},
	}

	f.admin = addUser(t, store, "admin", models.RoleAdmin, "Sistem Yöneticisi", "", nil)
	f.ahmet = addUser(t, store, "kuafor_ahmet", models.RoleProvider, "Ahmet Makas", "Kuaför", nil)
	f.ayse = addUser(t, store, "diyetisyen_ayse", models.RoleProvider, "Ayşe Sağlık", "Diyetisyen",
		[]string{"Pazartesi", "Çarşamba"})
	f.kemal = addUser(t, store, "berber_kemal", models.RoleProvider, "Kemal Traş", "Berber", nil)
	f.mehmet = addUser(t, store, "musteri1", models.RoleCustomer, "Mehmet Yılmaz", "", nil)
	f.zeynep = addUser(t, store, "musteri2", models.RoleCustomer, "Zeynep Kaya", "", nil)

	f.create = NewCreateAppointment(store, store, lock.NoopSlotLocker{}, dispatcher, f.notifier)
	f.update = NewUpdateStatus(store, policy, dispatcher, f.notifier)
	f.list = NewListAppointments(store)

	return f
}

func addUser(
	t *testing.T,
	store *memory.Store,
	username, role, fullName, category string,
	workingDays []string,
) *models.User {
	t.Helper()

	u := &models.User{
		Username:     username,
		PasswordHash: "x",
		Role:         role,
		FullName:     fullName,
	}
	if category != "" {
		u.Category = &category
	}
	if workingDays != nil {
		raw, err := json.Marshal(workingDays)
		require.NoError(t, err)
		u.WorkingDays = raw
	}

	require.NoError(t, store.Create(context.Background(), u))
	return u
}

func (f *fixture) book(t *testing.T, customer, provider *models.User, date, clock string) (*models.Appointment, error) {
	t.Helper()

	return f.create.Execute(context.Background(), CreateAppointmentInput{
		ProviderID: provider.ID,
		CustomerID: customer.ID,
		Date:       date,
		Time:       clock,
		CallerID:   customer.ID,
		CallerRole: customer.Role,
	})
}

func (f *fixture) setStatus(t *testing.T, caller *models.User, ap *models.Appointment, status string) (*models.Appointment, error) {
	t.Helper()

	return f.update.Execute(context.Background(), UpdateStatusInput{
		AppointmentID: ap.ID,
		Status:        status,
		CallerID:      caller.ID,
		CallerRole:    caller.Role,
	})
}

var (
	strict     = config.StatusPolicyStrict
	permissive = config.StatusPolicyPermissive
)
