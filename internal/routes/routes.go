package routes

import (
	"context"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"medicloud-backend/internal/config"
	"medicloud-backend/internal/handlers"
	"medicloud-backend/internal/middleware"
	"medicloud-backend/internal/models"
	"medicloud-backend/internal/services"
	"medicloud-backend/internal/validation"
)

type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	Logger   *zap.Logger
	Services *services.Services
	Version  string
}

// NewRouter builds the engine with the global middleware chain. The order
// matters: ErrorHandler must sit inside the logger so the logged status is
// the rendered one. Cancelling ctx stops the rate limiter's background work.
func NewRouter(ctx context.Context, deps Deps) (*gin.Engine, error) {
	if err := validation.Register(); err != nil {
		return nil, err
	}

	r := gin.New()
	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	metrics := middleware.NewMetrics()
	r.Use(
		middleware.RequestLogger(deps.Logger),
		metrics.Middleware(),
		middleware.Recovery(deps.Logger),
		middleware.CORSMiddleware(deps.Config.CORSOrigins),
		middleware.RateLimitMiddleware(ctx, deps.Config.RateLimitRPS, deps.Config.RateLimitBurst),
		middleware.ErrorHandler(deps.Logger, deps.Config.IsDev()),
	)
	r.NoRoute(middleware.NoRoute)

	SetupRoutes(r, deps, metrics)
	return r, nil
}

func SetupRoutes(r *gin.Engine, deps Deps, metrics *middleware.Metrics) {
	svc := deps.Services

	health := handlers.NewHealthHandler(deps.DB, deps.Version)
	authHandler := handlers.NewAuthHandler(svc.Auth)
	tenantHandler := handlers.NewTenantHandler(svc.Tenants)
	userHandler := handlers.NewUserHandler(svc.Users)
	patientHandler := handlers.NewPatientHandler(svc.Patients, svc.Records)
	appointmentHandler := handlers.NewAppointmentHandler(svc.Appointments)
	recordHandler := handlers.NewRecordHandler(svc.Records)
	prescriptionHandler := handlers.NewPrescriptionHandler(svc.Prescriptions)
	inventoryHandler := handlers.NewInventoryHandler(svc.Inventory)

	authenticate := middleware.AuthMiddleware(svc.Auth)

	r.GET("/", health.Index)
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	{
		api.GET("/health", health.Health)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", authenticate, authHandler.Me)
		}

		// Public so that a new clinic can sign up and the login page can list clinics.
		tenants := api.Group("/tenants")
		{
			tenants.GET("", tenantHandler.List)
			tenants.POST("", tenantHandler.Create)
			tenants.GET("/:slug", tenantHandler.GetBySlug)
		}

		// Everything below needs a token issued by the tenant named in the path.
		clinic := api.Group("/:tenant")
		clinic.Use(authenticate, middleware.TenantMiddleware(svc.Tenants))
		{
			patients := clinic.Group("/patients")
			{
				patients.GET("", patientHandler.List)
				patients.POST("", patientHandler.Create)
				patients.GET("/:id", patientHandler.Get)
				patients.PATCH("/:id", patientHandler.Update)
				patients.DELETE("/:id", patientHandler.Delete)
				patients.GET("/:id/records", patientHandler.Records)
			}

			appointments := clinic.Group("/appointments")
			{
				appointments.GET("", appointmentHandler.List)
				appointments.POST("", appointmentHandler.Create)
				appointments.GET("/:id", appointmentHandler.Get)
				appointments.PATCH("/:id", appointmentHandler.Update)
				appointments.DELETE("/:id", appointmentHandler.Delete)
			}

			records := clinic.Group("/records")
			{
				records.POST("", middleware.Authorize(models.RoleDoctor), recordHandler.Create)
				records.GET("/:id", recordHandler.Get)
			}

			prescriptions := clinic.Group("/prescriptions")
			{
				prescriptions.GET("", prescriptionHandler.List)
				prescriptions.POST("", middleware.Authorize(models.RoleDoctor), prescriptionHandler.Create)
				prescriptions.GET("/:id", prescriptionHandler.Get)
				prescriptions.PATCH("/:id", middleware.Authorize(models.RolePharmacist), prescriptionHandler.UpdateStatus)
			}

			inventory := clinic.Group("/inventory")
			{
				inventory.GET("", inventoryHandler.List)
				inventory.POST("", middleware.Authorize(models.RolePharmacist, models.RoleAdmin), inventoryHandler.Create)
				inventory.PATCH("/:id", middleware.Authorize(models.RolePharmacist, models.RoleAdmin), inventoryHandler.UpdateStock)
			}

			users := clinic.Group("/users", middleware.Authorize(models.RoleAdmin))
			{
				users.GET("", userHandler.List)
				users.POST("", userHandler.Create)
			}
		}
	}
}
