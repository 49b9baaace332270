// Package memory holds map-backed repositories with the same observable
// behaviour as the gorm ones, including the active-slot uniqueness rule.
// Tests use it in place of Postgres.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/randevu-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/randevu-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/randevu-scheduler/internal/dto"
	"github.com/BruksfildServices01/randevu-scheduler/internal/httperr"
	"github.com/BruksfildServices01/randevu-scheduler/internal/models"
)

type Store struct {
	mu sync.Mutex

	users        map[uint]models.User
	appointments map[uint]models.Appointment

	nextUserID        uint
	nextAppointmentID uint
}

func NewStore() *Store {
	return &Store{
		users:        make(map[uint]models.User),
		appointments: make(map[uint]models.Appointment),
	}
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (s *Store) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Username == u.Username {
			return httperr.ErrBusiness(httperr.CodeUsernameTaken)
		}
	}

	s.nextUserID++
	u.ID = s.nextUserID
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	s.users[u.ID] = *u
	return nil
}

func (s *Store) GetByID(_ context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return &u, nil
}

func (s *Store) GetByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, user.ErrNotFound
}

func (s *Store) GetProvider(_ context.Context, id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok || u.Role != models.RoleProvider {
		return nil, httperr.ErrBusiness(httperr.CodeProviderNotFound)
	}
	return &u, nil
}

func (s *Store) ListProviders(_ context.Context, category string) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.User
	for _, u := range s.users {
		if u.Role != models.RoleProvider {
			continue
		}
		if category != "" && (u.Category == nil || *u.Category != category) {
			continue
		}
		out = append(out, u)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Store) UpdateWorkingDays(_ context.Context, id uint, raw []byte) error {
	return s.updateProvider(id, func(u *models.User) {
		u.WorkingDays = raw
	})
}

func (s *Store) UpdateAvatar(_ context.Context, id uint, url string) error {
	return s.updateProvider(id, func(u *models.User) {
		u.AvatarURL = &url
	})
}

func (s *Store) updateProvider(id uint, fn func(u *models.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok || u.Role != models.RoleProvider {
		return httperr.ErrBusiness(httperr.CodeProviderNotFound)
	}
	fn(&u)
	u.UpdatedAt = time.Now()
	s.users[id] = u
	return nil
}

func (s *Store) Stats(_ context.Context) (*dto.AdminStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &dto.AdminStats{
		Users:        int64(len(s.users)),
		Appointments: int64(len(s.appointments)),
	}

	byCategory := map[string]int64{}
	var uncategorised int64
	for _, u := range s.users {
		if u.Role != models.RoleProvider {
			continue
		}
		if u.Category == nil {
			uncategorised++
			continue
		}
		byCategory[*u.Category]++
	}
	for cat, n := range byCategory {
		stats.Categories = append(stats.Categories, dto.CategoryCount{Category: &cat, Count: n})
	}
	if uncategorised > 0 {
		stats.Categories = append(stats.Categories, dto.CategoryCount{Count: uncategorised})
	}
	sort.Slice(stats.Categories, func(i, j int) bool {
		return categoryName(stats.Categories[i]) < categoryName(stats.Categories[j])
	})

	perProvider := map[uint]int64{}
	for _, ap := range s.appointments {
		perProvider[ap.ProviderID]++
	}
	for id, n := range perProvider {
		stats.Popular = append(stats.Popular, dto.ProviderPopularity{
			FullName: s.users[id].FullName,
			Count:    n,
		})
	}
	sort.Slice(stats.Popular, func(i, j int) bool {
		if stats.Popular[i].Count != stats.Popular[j].Count {
			return stats.Popular[i].Count > stats.Popular[j].Count
		}
		return stats.Popular[i].FullName < stats.Popular[j].FullName
	})
	if len(stats.Popular) > 5 {
		stats.Popular = stats.Popular[:5]
	}

	return stats, nil
}

func categoryName(c dto.CategoryCount) string {
	if c.Category == nil {
		return ""
	}
	return *c.Category
}

// --------------------------------------------------
// Appointments
// --------------------------------------------------

func (s *Store) CreateIfSlotFree(_ context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slotHeldLocked(ap, 0) {
		return httperr.ErrBusiness(httperr.CodeSlotTaken)
	}

	s.nextAppointmentID++
	ap.ID = s.nextAppointmentID
	now := time.Now()
	ap.CreatedAt, ap.UpdatedAt = now, now
	s.appointments[ap.ID] = *ap
	return nil
}

func (s *Store) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ap, ok := s.appointments[id]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeAppointmentMissing)
	}
	return &ap, nil
}

func (s *Store) UpdateStatus(_ context.Context, ap *models.Appointment, from domain.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.appointments[ap.ID]
	if !ok {
		return httperr.ErrBusiness(httperr.CodeAppointmentMissing)
	}
	if from != "" && stored.Status != string(from) {
		return httperr.ErrBusinessMsg(httperr.CodeInvalidTransition, "Randevu artık %s durumunda değil.", from)
	}

	if domain.Status(ap.Status).HoldsSlot() && s.slotHeldLocked(&stored, stored.ID) {
		return httperr.ErrBusiness(httperr.CodeSlotTaken)
	}

	stored.Status = ap.Status
	stored.UpdatedAt = time.Now()
	s.appointments[ap.ID] = stored
	ap.UpdatedAt = stored.UpdatedAt
	return nil
}

// slotHeldLocked reports whether another active appointment holds ap's slot.
func (s *Store) slotHeldLocked(ap *models.Appointment, ignoreID uint) bool {
	for id, other := range s.appointments {
		if id == ignoreID {
			continue
		}
		if other.ProviderID == ap.ProviderID &&
			other.DateString() == ap.DateString() &&
			other.Time == ap.Time &&
			domain.Status(other.Status).HoldsSlot() {
			return true
		}
	}
	return false
}

func (s *Store) ListAppointments(_ context.Context, f domain.ListFilter) ([]dto.AppointmentListDTO, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []dto.AppointmentListDTO{}
	for _, ap := range s.appointments {
		switch f.Role {
		case models.RoleProvider:
			if ap.ProviderID != f.UserID {
				continue
			}
		case models.RoleCustomer:
			if ap.CustomerID != f.UserID {
				continue
			}
		}

		provider := s.users[ap.ProviderID]
		customer := s.users[ap.CustomerID]

		out = append(out, dto.AppointmentListDTO{
			ID:           ap.ID,
			ProviderID:   ap.ProviderID,
			CustomerID:   ap.CustomerID,
			Date:         ap.DateString(),
			Time:         ap.Time,
			Status:       ap.Status,
			Rating:       ap.Rating,
			Comment:      ap.Comment,
			CreatedAt:    ap.CreatedAt,
			ProviderName: provider.FullName,
			Category:     provider.Category,
			CustomerName: customer.FullName,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		if out[i].Time != out[j].Time {
			return out[i].Time < out[j].Time
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Compile-time checks
var (
	_ domain.Repository = (*Store)(nil)
	_ user.Repository   = (*Store)(nil)
)
