package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/andyrosty/diet-fitness/api"
	"github.com/andyrosty/diet-fitness/config"
	"github.com/andyrosty/diet-fitness/database"
	"github.com/andyrosty/diet-fitness/logger"
	"github.com/andyrosty/diet-fitness/middleware"
	"github.com/andyrosty/diet-fitness/models"
	"github.com/andyrosty/diet-fitness/repository"
	"github.com/andyrosty/diet-fitness/services"
)

func main() {
	if err := config.Load(); err != nil {
		logger.Fatalf("failed to load configuration: %v", err)
	}
	if err := logger.Init(config.AppConfig.LogLevel, config.AppConfig.Environment == "development"); err != nil {
		logger.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Init()
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	runMigrations(db)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	planRepo := repository.NewPlanRepository(db)

	// Services. The coach agent implements both pipeline stages and is
	// injected explicitly so tests can swap in doubles.
	tokenService := services.NewTokenService(
		config.AppConfig.Auth.JWTSecret,
		time.Duration(config.AppConfig.Auth.TokenExpiryMinutes)*time.Minute,
	)
	authService := services.NewAuthService(userRepo, tokenService)
	coachAgent := services.NewCoachAgent(config.AppConfig.OpenAI)
	planService := services.NewPlanService(coachAgent, coachAgent, planRepo)

	handler := api.NewAPIHandler(authService, planService)

	if config.AppConfig.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.SetTrustedProxies(nil)
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Cors())

	registerRoutes(r, handler, tokenService, userRepo)

	addr := ":" + config.AppConfig.Server.Port
	logger.Infof("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed to start: %v", err)
	}
}

func runMigrations(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.User{},
		&models.UserPlan{},
		&models.WorkoutDay{},
		&models.DietDay{},
	)
	if err != nil {
		logger.Fatalf("failed to auto-migrate database: %v", err)
	}
	logger.Infof("database migration completed")
}

func registerRoutes(r *gin.Engine, handler *api.APIHandler, tokens services.TokenService, users repository.UserRepository) {
	r.GET("/health", handler.HealthHandler)

	auth := r.Group("/auth")
	{
		auth.POST("/signup", handler.SignupHandler)
		auth.POST("/login", handler.LoginHandler)
	}

	apiGroup := r.Group("/api")
	apiGroup.Use(middleware.RequireAuth(tokens, users))
	{
		apiGroup.POST("/fitness-plan", handler.CreatePlanHandler)
		apiGroup.GET("/my-plans", handler.ListPlansHandler)
		apiGroup.PUT("/my-plans/:id", handler.UpdatePlanHandler)
		apiGroup.DELETE("/my-plans/:id", handler.DeletePlanHandler)
	}
}
