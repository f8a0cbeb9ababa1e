package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbermall-scheduler/internal/audit"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/config"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/handlers"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/infra/cache"
	infraRepo "github.com/BruksfildServices01/barbermall-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/barbermall-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/barbermall-scheduler/internal/usecase/appointment"
	ucAvailability "github.com/BruksfildServices01/barbermall-scheduler/internal/usecase/availability"
	ucSchedule "github.com/BruksfildServices01/barbermall-scheduler/internal/usecase/schedule"
)

// Deps are the process-wide singletons built in main.
type Deps struct {
	DB     *gorm.DB
	Config *config.Config
	Log    *zap.Logger
	Audit  audit.Recorder
	Cache  cache.AvailabilityCache
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg, log := d.Config, d.Log

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// INFRA
	// ======================================================
	availabilityRepo := infraRepo.NewAvailabilityGormRepository(d.DB)
	scheduleRepo := infraRepo.NewScheduleGormRepository(d.DB)
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	catalogRepo := infraRepo.NewCatalogGormRepository(d.DB)

	// ======================================================
	// USE CASES
	// ======================================================
	checkUC := ucAvailability.NewCheckAvailability(availabilityRepo, d.Cache, log)
	barberUC := ucAvailability.NewBarberAvailability(availabilityRepo, d.Cache, log, cfg.DefaultStepMinutes)
	mallUC := ucAvailability.NewMallDateAvailability(availabilityRepo, log, cfg.MallMaxDaysAhead)

	weeklyUC := ucSchedule.NewWeeklyHours(scheduleRepo, d.Audit, d.Cache, log)
	exceptionsUC := ucSchedule.NewExceptions(scheduleRepo, d.Audit, d.Cache, log)
	breaksUC := ucSchedule.NewBreaks(scheduleRepo, d.Audit, d.Cache, log)
	resolveUC := ucSchedule.NewResolveDay(availabilityRepo)

	createAppointmentUC := ucAppointment.NewCreateAppointment(appointmentRepo, d.Audit, d.Cache, log)
	cancelAppointmentUC := ucAppointment.NewCancelAppointment(appointmentRepo, d.Audit, d.Cache, log)
	listByDateUC := ucAppointment.NewListAppointmentsByDate(appointmentRepo)
	listByMonthUC := ucAppointment.NewListAppointmentsByMonth(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, cfg)
	meHandler := handlers.NewMeHandler(d.DB)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB)

	availabilityHandler := handlers.NewAvailabilityHandler(checkUC, barberUC, mallUC)
	scheduleHandler := handlers.NewScheduleHandler(weeklyUC, exceptionsUC, breaksUC, resolveUC)
	catalogHandler := handlers.NewCatalogHandler(catalogRepo, d.Audit, d.Cache, log)
	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		cancelAppointmentUC,
		listByDateUC,
		listByMonthUC,
	)

	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC AVAILABILITY
		// ------------------------------
		api.POST("/availability/check", availabilityHandler.Check)
		api.GET("/availability/barbers/:id", availabilityHandler.Barber)

		mall := middleware.NewRateLimiter(cfg.MallRatePerMin)
		api.POST("/mall/availability", mall.Middleware(), availabilityHandler.Mall)

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// MANAGEMENT
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.POST("/users", authHandler.CreateUser)

			secured.GET("/branches", catalogHandler.ListBranches)
			secured.POST("/branches", catalogHandler.CreateBranch)
			secured.GET("/branches/:id", catalogHandler.GetBranch)
			secured.PATCH("/branches/:id", catalogHandler.UpdateBranch)

			secured.GET("/barbers", catalogHandler.ListBarbers)
			secured.POST("/barbers", catalogHandler.CreateBarber)
			secured.GET("/barbers/:id", catalogHandler.GetBarber)
			secured.PATCH("/barbers/:id", catalogHandler.UpdateBarber)

			secured.GET("/services", catalogHandler.ListServices)
			secured.POST("/services", catalogHandler.CreateService)
			secured.GET("/services/:id", catalogHandler.GetService)
			secured.PATCH("/services/:id", catalogHandler.UpdateService)

			secured.GET("/clients", catalogHandler.ListClients)

			// weekly hours
			secured.GET("/branches/:id/hours", scheduleHandler.ListHours(availability.EntityBranch))
			secured.POST("/branches/:id/hours", scheduleHandler.CreateHours(availability.EntityBranch))
			secured.PATCH("/branch-hours/:id", scheduleHandler.UpdateHours(availability.EntityBranch))
			secured.DELETE("/branch-hours/:id", scheduleHandler.DeleteHours(availability.EntityBranch))

			secured.GET("/barbers/:id/hours", scheduleHandler.ListHours(availability.EntityStaff))
			secured.POST("/barbers/:id/hours", scheduleHandler.CreateHours(availability.EntityStaff))
			secured.PATCH("/barber-hours/:id", scheduleHandler.UpdateHours(availability.EntityStaff))
			secured.DELETE("/barber-hours/:id", scheduleHandler.DeleteHours(availability.EntityStaff))

			secured.GET("/branches/:id/day", scheduleHandler.ResolvedDay(availability.EntityBranch))
			secured.GET("/barbers/:id/day", scheduleHandler.ResolvedDay(availability.EntityStaff))

			// exceptions
			secured.GET("/exceptions", scheduleHandler.ListExceptions)
			secured.POST("/exceptions", scheduleHandler.CreateException)
			secured.GET("/exceptions/:id", scheduleHandler.GetException)
			secured.PATCH("/exceptions/:id", scheduleHandler.UpdateException)
			secured.DELETE("/exceptions/:id", scheduleHandler.DeleteException)

			// breaks
			secured.GET("/barbers/:id/breaks", scheduleHandler.ListBreaks)
			secured.POST("/barbers/:id/breaks", scheduleHandler.CreateBreak)
			secured.PATCH("/breaks/:id", scheduleHandler.UpdateBreak)
			secured.DELETE("/breaks/:id", scheduleHandler.DeleteBreak)

			// appointments
			secured.POST("/branches/:id/appointments", appointmentHandler.Create)
			secured.GET("/branches/:id/appointments", appointmentHandler.ListByDate)
			secured.GET("/branches/:id/appointments/month", appointmentHandler.ListByMonth)
			secured.PATCH("/branches/:id/appointments/:appointmentId/cancel", appointmentHandler.Cancel)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
