package appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/BruksfildServices01/randevu-scheduler/internal/httperr"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Slot is the (provider, date, time) triple a booking occupies.
type Slot struct {
	ProviderID uint
	Date       time.Time
	Time       string
}

// ParseSlot validates the raw date and time. Times are kept at minute
// resolution; "10:00:00" is accepted and stored as "10:00".
func ParseSlot(providerID uint, date, clock string) (Slot, error) {
	date = strings.TrimSpace(date)
	clock = strings.TrimSpace(clock)

	if date == "" || clock == "" {
		return Slot{}, httperr.ErrBusinessMsg(httperr.CodeValidation, "Lütfen tarih ve saat seçin.")
	}

	d, err := time.ParseInLocation(DateLayout, date, time.UTC)
	if err != nil {
		return Slot{}, httperr.ErrBusinessMsg(httperr.CodeValidation, "Geçersiz tarih: %q", date)
	}

	t, err := time.Parse(TimeLayout, clock)
	if err != nil {
		t, err = time.Parse("15:04:05", clock)
		if err != nil {
			return Slot{}, httperr.ErrBusinessMsg(httperr.CodeValidation, "Geçersiz saat: %q", clock)
		}
	}

	return Slot{
		ProviderID: providerID,
		Date:       d,
		Time:       t.Format(TimeLayout),
	}, nil
}

func (s Slot) DateString() string {
	return s.Date.Format(DateLayout)
}

// Key identifies the slot for distributed locking.
func (s Slot) Key() string {
	return fmt.Sprintf("%d:%s:%s", s.ProviderID, s.DateString(), s.Time)
}
