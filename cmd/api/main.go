package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"kakeibo/internal/config"
	"kakeibo/internal/database"
	"kakeibo/internal/handlers"
	"kakeibo/internal/logger"
	"kakeibo/internal/middleware"
	"kakeibo/internal/services"
	"kakeibo/internal/textgen"
	"kakeibo/internal/validator"
)

// @title           Kakeibo API
// @version         1.0
// @description     Kakeibo is a shared household budgeting application: families track income, expenses, savings, and budgets together, with recurring transactions and long-term savings forecasts.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	familyService := services.NewFamilyService(db)
	categoryService := services.NewCategoryService(db)
	paymentMethodService := services.NewPaymentMethodService(db)
	transactionService := services.NewTransactionService(db, categoryService)
	savingService := services.NewSavingService(db)
	budgetService := services.NewBudgetService(db, categoryService)
	recurringService := services.NewRecurringService(db, categoryService)
	reportService := services.NewReportService(db)
	analysisService := services.NewAnalysisService(reportService, textgen.NewHTTPGenerator(appConfig))
	exportService := services.NewExportService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	familyHandler := handlers.NewFamilyHandler(familyService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	paymentMethodHandler := handlers.NewPaymentMethodHandler(paymentMethodService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	savingHandler := handlers.NewSavingHandler(savingService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, reportService)
	recurringHandler := handlers.NewRecurringHandler(recurringService)
	reportHandler := handlers.NewReportHandler(reportService, analysisService, exportService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Authenticated routes that do not require a family yet
	authed := v1.Group("/")
	authed.Use(middleware.AuthMiddleware())
	authed.GET("/auth/profile", authHandler.GetProfile)
	authed.POST("/family", familyHandler.CreateFamily)
	authed.POST("/family/join", familyHandler.JoinFamily)
	authed.GET("/currencies", familyHandler.ListCurrencies)

	// Family-scoped routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())
	protected.Use(middleware.RequireFamily(familyService))

	family := protected.Group("/family")
	family.GET("", familyHandler.GetFamily)
	family.POST("/invites", familyHandler.CreateInvite)
	family.GET("/notifications", familyHandler.GetNotificationSettings)
	family.PUT("/notifications", familyHandler.UpdateNotificationSettings)

	categories := protected.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.ListCategories)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	paymentMethods := protected.Group("/payment-methods")
	paymentMethods.POST("", paymentMethodHandler.CreatePaymentMethod)
	paymentMethods.GET("", paymentMethodHandler.ListPaymentMethods)
	paymentMethods.DELETE("/:id", paymentMethodHandler.DeletePaymentMethod)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	savings := protected.Group("/savings")
	savings.POST("", savingHandler.CreateSaving)
	savings.GET("", savingHandler.ListSavings)
	savings.DELETE("/:id", savingHandler.DeleteSaving)

	budgets := protected.Group("/budgets")
	budgets.PUT("", budgetHandler.SetBudget)
	budgets.GET("", budgetHandler.ListBudgets)
	budgets.DELETE("/:id", budgetHandler.DeleteBudget)

	recurring := protected.Group("/recurring")
	recurring.POST("", recurringHandler.CreateTemplate)
	recurring.GET("", recurringHandler.ListTemplates)
	recurring.POST("/:id/toggle", recurringHandler.ToggleTemplate)
	recurring.POST("/generate", recurringHandler.GenerateDue)

	reports := protected.Group("/reports")
	reports.GET("/summary", reportHandler.GetMonthlySummary)
	reports.GET("/trend", reportHandler.GetTrend)
	reports.GET("/forecast", reportHandler.GetForecast)
	reports.GET("/savings", reportHandler.GetSavingsSummary)
	reports.GET("/analysis", reportHandler.GetAnalysis)
	reports.GET("/export", reportHandler.ExportCSV)

	log.Infof("Starting Kakeibo backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
