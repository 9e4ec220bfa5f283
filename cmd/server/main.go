package main

import (
	"context"
	stdlog "log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vuhoang/dev-connector/adapters/event"
	httpAdapter "github.com/vuhoang/dev-connector/adapters/http"
	"github.com/vuhoang/dev-connector/adapters/persistence"
	authUC "github.com/vuhoang/dev-connector/internal/application/usecase/auth"
	profileUC "github.com/vuhoang/dev-connector/internal/application/usecase/profile"
	"github.com/vuhoang/dev-connector/internal/config"
	"github.com/vuhoang/dev-connector/pkg/auth"
	"github.com/vuhoang/dev-connector/pkg/logger"
	"github.com/vuhoang/dev-connector/pkg/tracing"
)

func main() {

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		stdlog.Fatalf("FATAL: cannot load config: %v", err)
	}

	log := logger.NewZapLogger(cfg.App.Env)
	log.Info("Start Developer Connector API Server...")

	// Tracing
	tp, err := tracing.NewTracerProvider(cfg, log, "dev-connector-api")
	if err != nil {
		log.Warn("Tracing disabled", zap.Error(err))
	} else {
		defer tp.Shutdown(context.Background())
	}

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, log)
	if err != nil {
		log.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	if err := persistence.RunMigrations(context.Background(), cfg.DB.DSN, log); err != nil {
		log.Fatal("cannot run migrations", err)
	}

	redisClient, err := persistence.NewRedisClient(cfg)
	if err != nil {
		log.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		log.Fatal("cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, log)
	profileCache := persistence.NewRedisProfileCache(redisClient)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	// Use Cases
	registerUseCase := authUC.NewRegisterUseCase(userRepo, log)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, log)
	authenticateUseCase := authUC.NewAuthenticateUseCase(userRepo, jwtSvc, log)

	getProfileUseCase := profileUC.NewGetProfileUseCase(profileRepo, profileCache, log)
	upsertProfileUseCase := profileUC.NewUpsertProfileUseCase(profileRepo, profileCache, kafkaClient, log)
	experienceUseCase := profileUC.NewExperienceUseCase(profileRepo, profileCache, kafkaClient, log)
	educationUseCase := profileUC.NewEducationUseCase(profileRepo, profileCache, kafkaClient, log)
	deleteProfileUseCase := profileUC.NewDeleteProfileUseCase(profileRepo, userRepo, profileCache, kafkaClient, log)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(registerUseCase, loginUseCase)
	profileHandler := httpAdapter.NewProfileHandler(
		getProfileUseCase,
		upsertProfileUseCase,
		experienceUseCase,
		educationUseCase,
		deleteProfileUseCase,
	)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(authenticateUseCase, log)
	errorMiddleware := httpAdapter.ErrorMiddleware(log)

	// Setup Gin router
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), errorMiddleware)

	api := router.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/register", authHandler.Register)
			users.POST("/login", authHandler.Login)
		}

		profiles := api.Group("/profile")
		{
			profiles.GET("/test", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"msg": "Profile works"}) })
			profiles.GET("/all", profileHandler.ListProfiles)
			profiles.GET("/handle/:handle", profileHandler.GetProfileByHandle)
			profiles.GET("/user/:user_id", profileHandler.GetProfileByUserID)

			private := profiles.Group("")
			private.Use(authMiddleware)
			{
				private.GET("", profileHandler.GetOwnProfile)
				private.POST("", profileHandler.UpsertProfile)
				private.POST("/experience", profileHandler.AddExperience)
				private.DELETE("/experience/:exp_id", profileHandler.DeleteExperience)
				private.POST("/education", profileHandler.AddEducation)
				private.DELETE("/education/:edu_id", profileHandler.DeleteEducation)
				private.DELETE("", profileHandler.DeleteProfile)
				private.DELETE("/account", profileHandler.DeleteAccount)
			}
		}

		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })
	}

	log.Info("Server running on port " + cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatal("Cannot run server", err)
	}
}
