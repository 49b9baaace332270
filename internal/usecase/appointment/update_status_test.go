package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/randevu-scheduler/internal/config"
	"github.com/BruksfildServices01/randevu-scheduler/internal/httperr"
)

func TestUpdateStatus_Strict(t *testing.T) {
	f := newFixture(t, strict)

	ap, err := f.book(t, f.mehmet, f.ahmet, "2024-03-04", "10:00")
	require.NoError(t, err)

	_, err = f.setStatus(t, f.kemal, ap, "approved")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden), "only the appointment's provider")

	_, err = f.setStatus(t, f.mehmet, ap, "approved")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))

	updated, err := f.setStatus(t, f.ahmet, ap, "approved")
	require.NoError(t, err)
	assert.Equal(t, "approved", updated.Status)

	_, err = f.setStatus(t, f.ahmet, ap, "rejected")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))

	stored, err := f.store.GetAppointment(context.Background(), ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "approved", stored.Status)

	assert.Equal(t, []string{"pending->approved"}, f.notifier.changed)
}

func TestUpdateStatus_StrictRejectsUnlistedTargets(t *testing.T) {
	f := newFixture(t, strict)

	ap, err := f.book(t, f.mehmet, f.ahmet, "2024-03-04", "10:00")
	require.NoError(t, err)

	for _, to := range []string{"pending", "completed", "cancelled"} {
		_, err = f.setStatus(t, f.ahmet, ap, to)
		assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition), to)
	}
}

func TestUpdateStatus_PermissiveOverwrites(t *testing.T) {
	f := newFixture(t, permissive)

	ap, err := f.book(t, f.mehmet, f.ahmet, "2024-03-04", "10:00")
	require.NoError(t, err)

	_, err = f.setStatus(t, f.ahmet, ap, "approved")
	require.NoError(t, err)

	updated, err := f.setStatus(t, f.ahmet, ap, "rejected")
	require.NoError(t, err)
	assert.Equal(t, "rejected", updated.Status)

	updated, err = f.setStatus(t, f.ahmet, ap, "completed")
	require.NoError(t, err)
	assert.Equal(t, "completed", updated.Status)
}

func TestUpdateStatus_DefaultPolicyOverwrites(t *testing.T) {
	t.Setenv("STATUS_POLICY", "")
	t.Setenv("REDIS_URL", "")

	cfg, err := config.Load()
	require.NoError(t, err)
	f := newFixture(t, cfg.StatusPolicy)

	ap, err := f.book(t, f.mehmet, f.ahmet, "2024-03-04", "10:00")
	require.NoError(t, err)

	_, err = f.setStatus(t, f.ahmet, ap, "approved")
	require.NoError(t, err)

	updated, err := f.setStatus(t, f.ahmet, ap, "rejected")
	require.NoError(t, err)
	assert.Equal(t, "rejected", updated.Status)

	stored, err := f.store.GetAppointment(context.Background(), ap.ID)
	require.NoError(t, err)
	assert.Equal(t, "rejected", stored.Status)
	assert.Equal(t, []string{"pending->approved", "approved->rejected"}, f.notifier.changed)

	// rejected still holds the slot
	_, err = f.book(t, f.zeynep, f.ahmet, "2024-03-04", "10:00")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotTaken))
}

func TestUpdateStatus_EmptyPolicyIsPermissive(t *testing.T) {
	f := newFixture(t, "")

	ap, err := f.book(t, f.mehmet, f.ahmet, "2024-03-04", "10:00")
	require.NoError(t, err)

	updated, err := f.setStatus(t, f.ahmet, ap, "completed")
	require.NoError(t, err)
	assert.Equal(t, "completed", updated.Status)
}

func TestUpdateStatus_PermissiveReactivationNeedsFreeSlot(t *testing.T) {
	f := newFixture(t, permissive)

	first, err := f.book(t, f.mehmet, f.ahmet, "2024-03-04", "10:00")
	require.NoError(t, err)

	_, err = f.setStatus(t, f.ahmet, first, "cancelled")
	require.NoError(t, err)

	_, err = f.book(t, f.zeynep, f.ahmet, "2024-03-04", "10:00")
	require.NoError(t, err)

	_, err = f.setStatus(t, f.ahmet, first, "pending")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeSlotTaken))
}

func TestUpdateStatus_Errors(t *testing.T) {
	f := newFixture(t, strict)

	ap, err := f.book(t, f.mehmet, f.ahmet, "2024-03-04", "10:00")
	require.NoError(t, err)

	_, err = f.setStatus(t, f.ahmet, ap, "done")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))

	_, err = f.update.Execute(context.Background(), UpdateStatusInput{
		AppointmentID: 999,
		Status:        "approved",
		CallerID:      f.ahmet.ID,
		CallerRole:    f.ahmet.Role,
	})
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAppointmentMissing))
}
