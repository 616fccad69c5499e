package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gymdesk_backend/database"
	"gymdesk_backend/internal/auth"
	"gymdesk_backend/internal/config"
	"gymdesk_backend/internal/handlers"
	"gymdesk_backend/internal/logger"
	"gymdesk_backend/internal/middleware"
	"gymdesk_backend/internal/models"
	"gymdesk_backend/internal/repositories"
	"gymdesk_backend/internal/routes"
	"gymdesk_backend/internal/services"
	"gymdesk_backend/internal/validator"
	"gymdesk_backend/internal/workers"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Connecting to database...")
	gormDB, err := database.Connect(cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("AutoMigrate failed", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	serviceContainer := initializeServices(cfg, gormDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	workers.NewMembershipWorker(serviceContainer.MemberService, cfg.SweepInterval()).Start(ctx)

	ginRouter := SetupRouter(gormDB, serviceContainer)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter assembles the gin engine with all middleware and routes.
// Split from Run so tests can mount the full HTTP surface on their own
// database handle.
func SetupRouter(gormDB *gorm.DB, serviceContainer *services.ServiceContainer) *gin.Engine {
	appHandlers := initializeHandlers(serviceContainer)
	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers)
	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) *services.ServiceContainer {
	loc := cfg.Location()

	memberRepo := repositories.NewMemberRepository(gormDB)
	planRepo := repositories.NewPlanRepository(gormDB)
	trainerRepo := repositories.NewTrainerRepository(gormDB)
	attendanceRepo := repositories.NewAttendanceRepository(gormDB)
	paymentRepo := repositories.NewPaymentRepository(gormDB)
	userRepo := repositories.NewUserRepository(gormDB)

	sequenceService := services.NewSequenceService()
	memberService := services.NewMemberService(gormDB, memberRepo, planRepo, attendanceRepo, paymentRepo, sequenceService, loc)
	planService := services.NewPlanService(planRepo, memberRepo, paymentRepo)
	trainerService := services.NewTrainerService(gormDB, trainerRepo, memberRepo, sequenceService, loc)
	attendanceService := services.NewAttendanceService(memberRepo, attendanceRepo, loc)
	paymentService := services.NewPaymentService(paymentRepo, memberRepo, loc)
	authService := services.NewAuthService(userRepo)

	return &services.ServiceContainer{
		AuthService:       authService,
		MemberService:     memberService,
		PlanService:       planService,
		TrainerService:    trainerService,
		AttendanceService: attendanceService,
		PaymentService:    paymentService,
		SequenceService:   sequenceService,
	}
}

func initializeHandlers(serviceContainer *services.ServiceContainer) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:       handlers.NewAuthHandler(baseHandler, serviceContainer.AuthService),
		MemberHandler:     handlers.NewMemberHandler(baseHandler, serviceContainer.MemberService),
		PlanHandler:       handlers.NewPlanHandler(baseHandler, serviceContainer.PlanService),
		TrainerHandler:    handlers.NewTrainerHandler(baseHandler, serviceContainer.TrainerService),
		AttendanceHandler: handlers.NewAttendanceHandler(baseHandler, serviceContainer.AttendanceService),
		PaymentHandler:    handlers.NewPaymentHandler(baseHandler, serviceContainer.PaymentService),
		HealthHandler:     handlers.NewHealthHandler(baseHandler),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// seedFirstAdmin creates the bootstrap admin account on an empty users
// table so the first deployment can log in. Does nothing when creds are
// unset or the user already exists.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD not set; skipping admin seeding")
		return nil
	}

	userRepo := repositories.NewUserRepository(db)
	if _, err := userRepo.FindByEmail(cfg.FirstAdminEmail); err == nil {
		return nil
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return err
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:         "Administrator",
		Email:        cfg.FirstAdminEmail,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		IsActive:     true,
	}
	if err := userRepo.Create(admin); err != nil {
		return err
	}

	logger.Info("First admin user seeded", "email", admin.Email)
	return nil
}
