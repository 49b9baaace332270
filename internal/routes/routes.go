package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/randevu-scheduler/internal/audit"
	"github.com/BruksfildServices01/randevu-scheduler/internal/auth"
	"github.com/BruksfildServices01/randevu-scheduler/internal/config"
	domain "github.com/BruksfildServices01/randevu-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/randevu-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/randevu-scheduler/internal/handlers"
	"github.com/BruksfildServices01/randevu-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/randevu-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/randevu-scheduler/internal/middleware"
	"github.com/BruksfildServices01/randevu-scheduler/internal/models"
	"github.com/BruksfildServices01/randevu-scheduler/internal/notify"
	ucAppointment "github.com/BruksfildServices01/randevu-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/randevu-scheduler/internal/usecase/directory"
)

// Deps are the long-lived singletons built by main (or by tests).
type Deps struct {
	Config *config.Config

	Appointments domain.Repository
	Users        user.Repository
	AuditLogs    handlers.AuditReader

	Audit    *audit.Dispatcher
	Notifier notify.Notifier

	Locker        lock.SlotLocker
	ProviderCache directory.ProviderCache
	Objects       storage.ObjectStore // nil disables avatar uploads

	Health *handlers.HealthHandler
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// 🌍 GLOBAL MIDDLEWARE
	// ======================================================
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(),
		middleware.CORS(d.Config.CORSOrigins),
	)

	tokens := auth.NewTokenIssuer(d.Config.JWTSecret, d.Config.TokenTTL)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		d.Appointments,
		d.Users,
		d.Locker,
		d.Audit,
		d.Notifier,
	)

	updateStatusUC := ucAppointment.NewUpdateStatus(
		d.Appointments,
		d.Config.StatusPolicy,
		d.Audit,
		d.Notifier,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(d.Appointments)

	listProvidersUC := directory.NewListProviders(d.Users, d.ProviderCache)
	workingDaysUC := directory.NewWorkingDays(d.Users, d.ProviderCache, d.Audit)
	uploadAvatarUC := directory.NewUploadAvatar(
		d.Users,
		d.Objects,
		d.ProviderCache,
		d.Audit,
		d.Config.AvatarSize,
	)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.Users, tokens, d.ProviderCache, d.Audit)
	meHandler := handlers.NewMeHandler(d.Users, workingDaysUC, uploadAvatarUC)
	providerHandler := handlers.NewProviderHandler(listProvidersUC)
	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateStatusUC,
		listAppointmentsUC,
	)
	adminHandler := handlers.NewAdminHandler(d.Users, d.AuditLogs)

	// ======================================================
	// ❤️ HEALTH
	// ======================================================
	if d.Health != nil {
		r.GET("/health", d.Health.Liveness)
		r.GET("/health/ready", d.Health.Readiness)
	}

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/providers", providerHandler.List)

		// ------------------------------
		// 🔐 AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(tokens))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments/:userId", appointmentHandler.List)
			secured.PUT("/appointments/:id/status", appointmentHandler.UpdateStatus)

			provider := secured.Group("/me")
			provider.Use(middleware.RequireRole(models.RoleProvider))
			{
				provider.GET("/working-days", meHandler.GetWorkingDays)
				provider.PUT("/working-days", meHandler.UpdateWorkingDays)
				provider.PUT("/avatar", meHandler.UploadAvatar)
			}

			admin := secured.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/stats", adminHandler.Stats)
				admin.GET("/audit-logs", adminHandler.AuditLogs)
			}
		}
	}
}
