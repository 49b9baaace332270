package appointment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/randevu-scheduler/internal/httperr"
	"github.com/BruksfildServices01/randevu-scheduler/internal/models"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "approved", "rejected", "completed", "cancelled"} {
		st, err := ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, Status(s), st)
	}

	_, err := ParseStatus("APPROVED")
	assert.True(t, httperr.IsBusiness(err, httperr.CodeValidation))
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to Status
		ok       bool
	}{
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusCancelled, false},
		{StatusPending, StatusPending, false},
		{StatusApproved, StatusRejected, false},
		{StatusRejected, StatusApproved, false},
		{StatusCompleted, StatusApproved, false},
		{StatusCancelled, StatusPending, false},
	}

	for _, tt := range tests {
		err := CanTransition(tt.from, tt.to)
		if tt.ok {
			assert.NoError(t, err, "%s -> %s", tt.from, tt.to)
		} else {
			assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition), "%s -> %s", tt.from, tt.to)
		}
	}
}

func TestHoldsSlot(t *testing.T) {
	assert.True(t, StatusPending.HoldsSlot())
	assert.True(t, StatusApproved.HoldsSlot())
	assert.True(t, StatusRejected.HoldsSlot())
	assert.False(t, StatusCancelled.HoldsSlot())
}

func TestTransition(t *testing.T) {
	ap := &models.Appointment{ProviderID: 7, Status: string(StatusPending)}

	_, err := Transition(ap, 8, StatusApproved)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeForbidden))
	assert.Equal(t, string(StatusPending), ap.Status)

	from, err := Transition(ap, 7, StatusApproved)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, from)
	assert.Equal(t, string(StatusApproved), ap.Status)

	_, err = Transition(ap, 7, StatusRejected)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidTransition))
}

func TestOverwrite(t *testing.T) {
	ap := &models.Appointment{Status: string(StatusApproved)}

	from := Overwrite(ap, StatusRejected)

	assert.Equal(t, StatusApproved, from)
	assert.Equal(t, string(StatusRejected), ap.Status)
}
