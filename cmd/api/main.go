package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"

	"github.com/aqeelraza/maktab-api/internal/config"
	"github.com/aqeelraza/maktab-api/internal/database"
	"github.com/aqeelraza/maktab-api/internal/handlers"
	"github.com/aqeelraza/maktab-api/internal/middleware"
	"github.com/aqeelraza/maktab-api/internal/repository"
	"github.com/aqeelraza/maktab-api/internal/services"
	"github.com/aqeelraza/maktab-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	// Run schema migrations
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Initialize repositories, services and handlers
	repos := repository.NewRepositories(db)
	svcs := services.NewServices(repos, cfg)
	h := handlers.NewHandlers(svcs)

	// Setup router
	router := setupRouter(h, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Flush Sentry events before exit
	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check (public)
		v1.GET("/health", h.Health.Index)

		// Authentication (public)
		v1.POST("/auth/login", h.Auth.Login)

		// Protected routes (requires authentication)
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			// Admin-only routes
			admin := protected.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				// Account management
				admin.POST("/users", h.Auth.CreateUser)
				admin.POST("/admin/reset-password", h.Auth.ResetPassword)

				// Destructive operations
				admin.DELETE("/students/:student_id", h.Student.Delete)
				admin.DELETE("/teachers/:teacher_id", h.Teacher.Delete)
				admin.DELETE("/fees/:fee_id", h.Fee.Delete)
				admin.DELETE("/salaries/:salary_id", h.Salary.Delete)
				admin.DELETE("/expenses/:expense_id", h.Expense.Delete)

				// Payroll repair
				admin.POST("/salaries/reconcile", h.Salary.Reconcile)
			}

			// Own account
			protected.PATCH("/users/change_password", h.Auth.ChangePassword)

			// Students
			students := protected.Group("/students")
			{
				students.GET("", h.Student.Index)
				students.GET("/next_admission_no", h.Student.NextAdmissionNo)
				students.POST("", h.Student.Create)
				students.GET("/:student_id", h.Student.Show)
				students.PUT("/:student_id", h.Student.Update)
				students.POST("/:student_id/mark_left", h.Student.MarkLeft)
				students.GET("/:student_id/fees", h.Student.FeeHistory)
			}

			// Teachers
			teachers := protected.Group("/teachers")
			{
				teachers.GET("", h.Teacher.Index)
				teachers.POST("", h.Teacher.Create)
				teachers.GET("/:teacher_id", h.Teacher.Show)
				teachers.PUT("/:teacher_id", h.Teacher.Update)
			}

			// Fee ledger
			fees := protected.Group("/fees")
			{
				fees.GET("", h.Fee.Index)
				fees.GET("/summary", h.Fee.Summary)
				fees.POST("", h.Fee.Create)
				fees.GET("/:fee_id", h.Fee.Show)
			}

			// Payroll
			salaries := protected.Group("/salaries")
			{
				salaries.GET("", h.Salary.Index)
				salaries.POST("", h.Salary.Create)
				salaries.GET("/:salary_id", h.Salary.Show)
			}

			// Expenses
			expenses := protected.Group("/expenses")
			{
				expenses.GET("", h.Expense.Index)
				expenses.GET("/summary", h.Expense.Summary)
				expenses.POST("", h.Expense.Create)
				expenses.GET("/:expense_id", h.Expense.Show)
				expenses.PUT("/:expense_id", h.Expense.Update)
			}

			// Reports
			reports := protected.Group("/reports")
			{
				reports.GET("/outstanding", h.Report.Outstanding)
				reports.GET("/unpaid", h.Report.Unpaid)
				reports.GET("/overview", h.Report.Overview)
			}
			protected.GET("/dashboard", h.Report.Dashboard)
		}
	}

	return router
}
