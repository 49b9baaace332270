package appointment

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Weekday follows time.Weekday numbering: Sunday=0 .. Saturday=6.
type Weekday int

const (
	Sunday Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// Display names used by the frontend and stored in users.working_days.
var weekdayNames = [7]string{
	"Pazar",
	"Pazartesi",
	"Salı",
	"Çarşamba",
	"Perşembe",
	"Cuma",
	"Cumartesi",
}

var englishNames = [7]string{
	"sunday",
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
}

// Monday first, the order working days are shown and stored in.
var displayOrder = [7]Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var (
	asciiFold = strings.NewReplacer("ı", "i", "ş", "s", "ç", "c", "ğ", "g", "ü", "u", "ö", "o", "â", "a", "î", "i")
	lookup    = buildLookup()
)

func buildLookup() map[string]Weekday {
	m := make(map[string]Weekday, 14)
	for i := range weekdayNames {
		m[normalizeName(weekdayNames[i])] = Weekday(i)
		m[englishNames[i]] = Weekday(i)
	}
	return m
}

// normalizeName lowercases with Turkish rules and strips diacritics so that
// "SALI", "Salı" and "sali" all compare equal.
func normalizeName(name string) string {
	// a Caser keeps state, so each call gets its own
	lower := cases.Lower(language.Turkish)
	return asciiFold.Replace(lower.String(strings.TrimSpace(name)))
}

func (d Weekday) Valid() bool {
	return d >= Sunday && d <= Saturday
}

func (d Weekday) String() string {
	if !d.Valid() {
		return ""
	}
	return weekdayNames[d]
}

// WeekdayOf resolves the weekday of a calendar date. Only the year, month and
// day of the value are used, so the result does not depend on its location.
func WeekdayOf(date time.Time) Weekday {
	y, m, d := date.Date()
	return Weekday(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Weekday())
}

func ParseWeekday(name string) (Weekday, bool) {
	d, ok := lookup[normalizeName(name)]
	return d, ok
}
