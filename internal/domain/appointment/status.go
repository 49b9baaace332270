package appointment

import "github.com/BruksfildServices01/randevu-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var knownStatuses = map[Status]struct{}{
	StatusPending:   {},
	StatusApproved:  {},
	StatusRejected:  {},
	StatusCompleted: {},
	StatusCancelled: {},
}

// transitions lists the moves a provider may make. completed and cancelled
// exist in the schema but nothing transitions into them yet.
var transitions = map[Status][]Status{
	StatusPending: {StatusApproved, StatusRejected},
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := knownStatuses[st]; !ok {
		return "", httperr.ErrBusinessMsg(httperr.CodeValidation, "Geçersiz randevu durumu: %q", s)
	}
	return st, nil
}

func InitialStatus() Status {
	return StatusPending
}

// HoldsSlot reports whether an appointment in this status still occupies its
// slot. Only a cancelled appointment frees it; rejected ones keep it.
func (s Status) HoldsSlot() bool {
	return s != StatusCancelled
}

// ===============================
// Validations
// ===============================

// CanTransition is the strict state machine check.
func CanTransition(from, to Status) error {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return httperr.ErrBusinessMsg(
		httperr.CodeInvalidTransition,
		"Randevu %s durumundan %s durumuna geçirilemez.",
		from, to,
	)
}
