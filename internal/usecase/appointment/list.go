package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/randevu-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/randevu-scheduler/internal/dto"
	"github.com/BruksfildServices01/randevu-scheduler/internal/httperr"
	"github.com/BruksfildServices01/randevu-scheduler/internal/models"
)

type ListAppointmentsInput struct {
	UserID uint
	Role   string // provider, customer or empty for every appointment

	CallerID   uint
	CallerRole string
}

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	in ListAppointmentsInput,
) ([]dto.AppointmentListDTO, error) {

	switch in.Role {
	case models.RoleProvider, models.RoleCustomer:
	case "":
		if in.CallerRole != models.RoleAdmin {
			return nil, httperr.ErrBusinessMsg(httperr.CodeForbidden, "Tüm randevuları yalnızca yönetici görebilir.")
		}
	default:
		return nil, httperr.ErrBusinessMsg(httperr.CodeValidation, "role provider veya customer olmalıdır.")
	}

	if in.CallerRole != models.RoleAdmin && in.UserID != in.CallerID {
		return nil, httperr.ErrBusiness(httperr.CodeForbidden)
	}

	return uc.repo.ListAppointments(ctx, domain.ListFilter{
		UserID: in.UserID,
		Role:   in.Role,
	})
}
