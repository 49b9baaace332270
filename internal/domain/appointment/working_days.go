package appointment

import (
	"encoding/json"
	"time"

	"github.com/BruksfildServices01/randevu-scheduler/internal/httperr"
)

// WorkingDays is a set of weekdays, one bit per day. The zero value means the
// provider has no restriction and accepts bookings on every day.
type WorkingDays uint8

func NewWorkingDays(days ...Weekday) WorkingDays {
	var w WorkingDays
	for _, d := range days {
		if d.Valid() {
			w |= 1 << uint(d)
		}
	}
	return w
}

func (w WorkingDays) IsUnrestricted() bool {
	return w == 0
}

func (w WorkingDays) Has(d Weekday) bool {
	return d.Valid() && w&(1<<uint(d)) != 0
}

func (w WorkingDays) Days() []Weekday {
	out := make([]Weekday, 0, 7)
	for _, d := range displayOrder {
		if w.Has(d) {
			out = append(out, d)
		}
	}
	return out
}

func (w WorkingDays) Names() []string {
	days := w.Days()
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, d.String())
	}
	return out
}

// Allows checks the booking date against the set.
func (w WorkingDays) Allows(date time.Time) error {
	if w.IsUnrestricted() {
		return nil
	}

	day := WeekdayOf(date)
	if !w.Has(day) {
		return httperr.ErrBusinessMsg(
			httperr.CodeNotWorkingThatDay,
			"Hizmet veren %s günleri çalışmıyor.",
			day.String(),
		)
	}
	return nil
}

// Encode returns the stored JSON form, nil for an unrestricted set.
func (w WorkingDays) Encode() []byte {
	if w.IsUnrestricted() {
		return nil
	}
	b, _ := json.Marshal(w.Names())
	return b
}

// ParseWorkingDays decodes the stored column leniently: malformed JSON and
// lists without a single recognizable day both mean "no restriction".
func ParseWorkingDays(raw []byte) WorkingDays {
	if len(raw) == 0 {
		return 0
	}

	var names []string
	if err := json.Unmarshal(raw, &names); err != nil {
		return 0
	}

	var w WorkingDays
	for _, n := range names {
		if d, ok := ParseWeekday(n); ok {
			w |= 1 << uint(d)
		}
	}
	return w
}

// ValidateWorkingDays is the strict counterpart used when a provider
// configures the set: unknown and repeated names are rejected.
func ValidateWorkingDays(names []string) (WorkingDays, error) {
	var w WorkingDays
	for _, n := range names {
		d, ok := ParseWeekday(n)
		if !ok {
			return 0, httperr.ErrBusinessMsg(httperr.CodeValidation, "Geçersiz gün adı: %q", n)
		}
		if w.Has(d) {
			return 0, httperr.ErrBusinessMsg(httperr.CodeValidation, "Gün birden fazla kez seçilmiş: %s", d.String())
		}
		w |= 1 << uint(d)
	}
	return w, nil
}
