package httperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	CodeValidation         = "validation_error"
	CodeSlotTaken          = "slot_taken"
	CodeNotWorkingThatDay  = "provider_not_working_that_day"
	CodeProviderNotFound   = "provider_not_found"
	CodeAppointmentMissing = "appointment_not_found"
	CodeInvalidTransition  = "invalid_transition"
	CodeForbidden          = "forbidden"
	CodeSlotBeingBooked    = "slot_being_booked"
	CodeUsernameTaken      = "username_taken"
	CodeInvalidCredentials = "invalid_credentials"
	CodeStorage            = "storage_error"
	CodeFeatureDisabled    = "feature_disabled"
)

// Postgres SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func ErrBusinessMsg(code, format string, args ...any) error {
	return BusinessError{Code: code, Message: fmt.Sprintf(format, args...)}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}

// IsUniqueViolation reports whether err came from a unique index rejecting a write.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return false
}

// StatusFor maps a business code to its HTTP status.
func StatusFor(code string) int {
	switch code {
	case CodeValidation, CodeSlotTaken, CodeNotWorkingThatDay, CodeUsernameTaken:
		return http.StatusBadRequest
	case CodeProviderNotFound, CodeAppointmentMissing:
		return http.StatusNotFound
	case CodeInvalidTransition, CodeSlotBeingBooked:
		return http.StatusConflict
	case CodeForbidden:
		return http.StatusForbidden
	case CodeInvalidCredentials:
		return http.StatusUnauthorized
	case CodeFeatureDisabled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// defaultMessages holds the user-facing text shown when a business error carries none.
var defaultMessages = map[string]string{
	CodeValidation:         "Geçersiz istek.",
	CodeSlotTaken:          "Bu saat maalesef dolu.",
	CodeNotWorkingThatDay:  "Hizmet veren bu gün çalışmıyor.",
	CodeProviderNotFound:   "Hizmet veren bulunamadı.",
	CodeAppointmentMissing: "Randevu bulunamadı.",
	CodeInvalidTransition:  "Bu randevunun durumu değiştirilemez.",
	CodeForbidden:          "Bu işlem için yetkiniz yok.",
	CodeSlotBeingBooked:    "Bu saat şu anda başka biri tarafından alınıyor, lütfen tekrar deneyin.",
	CodeUsernameTaken:      "Bu kullanıcı adı zaten alınmış.",
	CodeInvalidCredentials: "Hatalı kullanıcı adı veya şifre.",
	CodeStorage:            "İşlem başarısız.",
	CodeFeatureDisabled:    "Bu özellik şu anda kullanılamıyor.",
}

func MessageFor(be BusinessError) string {
	if be.Message != "" {
		return be.Message
	}
	if msg, ok := defaultMessages[be.Code]; ok {
		return msg
	}
	return be.Code
}
