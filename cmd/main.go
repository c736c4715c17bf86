package main

import (
	"context"
	"net/http"
	"time"

	"github.com/Hazemprogammar/SudanEdu/config"
	"github.com/Hazemprogammar/SudanEdu/database"
	adminctrl "github.com/Hazemprogammar/SudanEdu/internal/controller/admin"
	userctrl "github.com/Hazemprogammar/SudanEdu/internal/controller/user"
	"github.com/Hazemprogammar/SudanEdu/internal/logger"
	"github.com/Hazemprogammar/SudanEdu/internal/model"
	"github.com/Hazemprogammar/SudanEdu/internal/repository"
	"github.com/Hazemprogammar/SudanEdu/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title SudanEdu Platform API
// @version 1.0
// @description Exam attempts, points wallet, referrals and notifications for the SudanEdu learning platform.
// @contact.name API Support
// @contact.email support@sudanedu.example.com
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewUserRepository,
			repository.NewExamRepository,
			repository.NewQuestionRepository,
			repository.NewExamAttemptRepository,
			repository.NewPointsTransactionRepository,
			repository.NewNotificationRepository,
			repository.NewReferralRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewNotificationService,
			service.NewWalletService,
			service.NewExamService,
			service.NewAttemptService,
			service.NewReferralService,
			service.NewAdminService,
		),

		// API Controllers Layer
		fx.Provide(
			userctrl.NewExamController,
			userctrl.NewWalletController,
			userctrl.NewReferralController,
			userctrl.NewNotificationController,
			adminctrl.NewAdminController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.DebugMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	examCtrl *userctrl.ExamController,
	walletCtrl *userctrl.WalletController,
	referralCtrl *userctrl.ReferralController,
	notificationCtrl *userctrl.NotificationController,
	adminCtrl *adminctrl.AdminController,
) {
	// Admin Routes (prefixed with /api/v1/admin)
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		adminAPIGroup.POST("/exams", adminCtrl.CreateExam)
		adminAPIGroup.POST("/exams/:exam_id/questions", adminCtrl.AddQuestion)
		adminAPIGroup.POST("/users/promote", adminCtrl.PromoteUser)
		adminAPIGroup.GET("/dashboard", adminCtrl.GetDashboardStats)
	}

	// User Routes (prefixed with /api/v1)
	userAPIGroup := router.Group("/api/v1")
	{
		// Exams and attempts
		userAPIGroup.GET("/courses/:course_id/exams", examCtrl.ListCourseExams)
		userAPIGroup.GET("/exams/:exam_id", examCtrl.GetExam)
		userAPIGroup.GET("/exams/:exam_id/questions", examCtrl.ListQuestions)
		userAPIGroup.POST("/exams/:exam_id/attempts", examCtrl.StartAttempt)
		userAPIGroup.GET("/my-attempts", examCtrl.ListMyAttempts)
		userAPIGroup.GET("/attempts/:attempt_id", examCtrl.GetAttempt)
		userAPIGroup.PATCH("/attempts/:attempt_id/answers", examCtrl.SaveAnswers)
		userAPIGroup.POST("/attempts/:attempt_id/submit", examCtrl.SubmitAttempt)

		// Points wallet
		userAPIGroup.GET("/wallet/balance", walletCtrl.GetBalance)
		userAPIGroup.GET("/wallet/transactions", walletCtrl.GetTransactions)
		userAPIGroup.POST("/wallet/purchase", walletCtrl.PurchasePoints)
		userAPIGroup.POST("/wallet/transfer", walletCtrl.TransferPoints)

		// Referrals
		userAPIGroup.POST("/referrals/register/:referral_code", referralCtrl.RegisterReferral)
		userAPIGroup.GET("/referrals/stats", referralCtrl.GetReferralStats)

		// Notifications
		userAPIGroup.GET("/notifications", notificationCtrl.ListNotifications)
		userAPIGroup.PATCH("/notifications/:id/read", notificationCtrl.MarkNotificationRead)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("SudanEdu API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Exam{},
		&model.Question{},
		&model.ExamAttempt{},
		&model.PointsTransaction{},
		&model.Notification{},
		&model.Referral{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
