package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/randevu-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/randevu-scheduler/internal/db"
	domain "github.com/BruksfildServices01/randevu-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/randevu-scheduler/internal/httperr"
	infraRepo "github.com/BruksfildServices01/randevu-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/randevu-scheduler/internal/logger"
	"github.com/BruksfildServices01/randevu-scheduler/internal/models"
)

const demoPassword = "123456"

type demoUser struct {
	username, role, fullName, category, bio string
	workingDays                             []string
}

var demoUsers = []demoUser{
	{username: "admin", role: models.RoleAdmin, fullName: "Sistem Yöneticisi"},
	{username: "kuafor_ahmet", role: models.RoleProvider, fullName: "Ahmet Makas", category: "Kuaför",
		bio: "Saç kesimi ve boya konusunda 10 yıllık deneyim."},
	{username: "diyetisyen_ayse", role: models.RoleProvider, fullName: "Ayşe Sağlık", category: "Diyetisyen",
		bio: "Kişiye özel beslenme programları.", workingDays: []string{"Pazartesi", "Çarşamba", "Cuma"}},
	{username: "berber_kemal", role: models.RoleProvider, fullName: "Kemal Traş", category: "Berber",
		bio: "Damat traşı ve cilt bakımı uzmanı."},
	{username: "antrenor_burak", role: models.RoleProvider, fullName: "Burak Fit", category: "Antrenör",
		bio: "Profesyonel fitness ve vücut geliştirme koçu."},
	{username: "musteri1", role: models.RoleCustomer, fullName: "Mehmet Yılmaz"},
}

var seedStatuses = []domain.Status{
	domain.StatusPending,
	domain.StatusApproved,
	domain.StatusRejected,
	domain.StatusCompleted,
	domain.StatusCancelled,
}

func main() {
	var customers, appointments int
	flag.IntVar(&customers, "customers", 20, "number of fake customers to add")
	flag.IntVar(&appointments, "appointments", 60, "number of random bookings to attempt")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	logger.Init("randevu-seed", cfg.Env, cfg.LogLevel)

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}

	var existing int64
	if err := db.Model(&models.User{}).Count(&existing).Error; err != nil {
		log.Fatal().Err(err).Msg("count users failed")
	}
	if existing > 0 {
		log.Info().Int64("users", existing).Msg("database already seeded, nothing to do")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("hash password failed")
	}

	gofakeit.Seed(time.Now().UnixNano())

	ctx := context.Background()
	users := infraRepo.NewUserGormRepository(db)
	appts := infraRepo.NewAppointmentGormRepository(db)

	providers, customerIDs, err := seedUsers(ctx, users, string(hash), customers)
	if err != nil {
		log.Fatal().Err(err).Msg("seed users failed")
	}

	booked, err := seedAppointments(ctx, appts, providers, customerIDs, appointments)
	if err != nil {
		log.Fatal().Err(err).Msg("seed appointments failed")
	}

	log.Info().
		Int("providers", len(providers)).
		Int("customers", len(customerIDs)).
		Int("appointments", booked).
		Str("password", demoPassword).
		Msg("seed complete")
}

func seedUsers(
	ctx context.Context,
	repo *infraRepo.UserGormRepository,
	hash string,
	fakeCustomers int,
) ([]*models.User, []uint, error) {

	var (
		providers []*models.User
		customers []uint
	)

	for _, d := range demoUsers {
		u := &models.User{
			Username:     d.username,
			PasswordHash: hash,
			Role:         d.role,
			FullName:     d.fullName,
		}
		if d.category != "" {
			u.Category = &d.category
			u.Bio = &d.bio
		}
		if d.workingDays != nil {
			days, err := domain.ValidateWorkingDays(d.workingDays)
			if err != nil {
				return nil, nil, err
			}
			u.WorkingDays = days.Encode()
		}

		if err := repo.Create(ctx, u); err != nil {
			return nil, nil, fmt.Errorf("create %s: %w", d.username, err)
		}

		switch u.Role {
		case models.RoleProvider:
			providers = append(providers, u)
		case models.RoleCustomer:
			customers = append(customers, u.ID)
		}
	}

	for i := 0; i < fakeCustomers; i++ {
		phone := gofakeit.Numerify("05#########")
		u := &models.User{
			Username:     fmt.Sprintf("musteri%d", i+2),
			PasswordHash: hash,
			Role:         models.RoleCustomer,
			FullName:     gofakeit.Name(),
			Phone:        &phone,
		}
		if err := repo.Create(ctx, u); err != nil {
			return nil, nil, fmt.Errorf("create %s: %w", u.Username, err)
		}
		customers = append(customers, u.ID)
	}

	return providers, customers, nil
}

func seedAppointments(
	ctx context.Context,
	repo *infraRepo.AppointmentGormRepository,
	providers []*models.User,
	customers []uint,
	attempts int,
) (int, error) {

	if len(providers) == 0 || len(customers) == 0 {
		return 0, nil
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	booked := 0

	for i := 0; i < attempts; i++ {
		provider := providers[gofakeit.Number(0, len(providers)-1)]
		date := today.AddDate(0, 0, gofakeit.Number(-14, 30))

		if domain.ParseWorkingDays(provider.WorkingDays).Allows(date) != nil {
			continue
		}

		ap := &models.Appointment{
			ProviderID: provider.ID,
			CustomerID: customers[gofakeit.Number(0, len(customers)-1)],
			Date:       models.NewDate(date),
			Time:       fmt.Sprintf("%02d:%s", gofakeit.Number(9, 17), []string{"00", "30"}[gofakeit.Number(0, 1)]),
			Status:     string(seedStatuses[gofakeit.Number(0, len(seedStatuses)-1)]),
		}

		err := repo.CreateIfSlotFree(ctx, ap)
		if httperr.IsBusiness(err, httperr.CodeSlotTaken) {
			continue
		}
		if err != nil {
			return booked, err
		}
		booked++
	}

	return booked, nil
}
