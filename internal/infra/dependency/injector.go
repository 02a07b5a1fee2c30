// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/finledger/backend/config"
	"github.com/finledger/backend/internal/application/adapter"
	"github.com/finledger/backend/internal/application/usecase/auth"
	"github.com/finledger/backend/internal/application/usecase/category"
	"github.com/finledger/backend/internal/application/usecase/creditcard"
	"github.com/finledger/backend/internal/application/usecase/report"
	"github.com/finledger/backend/internal/application/usecase/transaction"
	"github.com/finledger/backend/internal/infra/db"
	"github.com/finledger/backend/internal/infra/server/router"
	"github.com/finledger/backend/internal/integration/adapters"
	"github.com/finledger/backend/internal/integration/email"
	"github.com/finledger/backend/internal/integration/entrypoint/controller"
	"github.com/finledger/backend/internal/integration/entrypoint/middleware"
	"github.com/finledger/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config         *config.Config
	DB             *gorm.DB
	Router         *router.Router
	ReminderWorker *email.ReminderWorker
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, gormDB *gorm.DB, redisClient *redis.Client) *Injector {
	// Create repositories
	userRepo := persistence.NewUserRepository(gormDB)
	categoryRepo := persistence.NewCategoryRepository(gormDB)
	transactionRepo := persistence.NewTransactionRepository(gormDB)
	creditCardRepo := persistence.NewCreditCardRepository(gormDB)
	statementRepo := persistence.NewStatementRepository(gormDB)
	reportRepo := persistence.NewReportRepository(gormDB)

	// Create adapters/services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.Issuer)

	var emailSender adapter.EmailSender
	if cfg.Email.ResendAPIKey != "" {
		emailSender = email.NewResendClient(cfg.Email.ResendAPIKey, cfg.Email.FromName, cfg.Email.FromEmail)
	}

	// Create auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService, emailSender)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

	// Create category use cases
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	renameCategoryUseCase := category.NewRenameCategoryUseCase(categoryRepo)
	deleteCategoryUseCase := category.NewDeleteCategoryUseCase(categoryRepo, transactionRepo)

	// Create ledger entry use cases
	createEntryUseCase := transaction.NewCreateEntryUseCase(transactionRepo, categoryRepo, creditCardRepo)
	listEntriesUseCase := transaction.NewListEntriesUseCase(transactionRepo)
	updateEntryUseCase := transaction.NewUpdateEntryUseCase(transactionRepo, categoryRepo, creditCardRepo)
	settleEntryUseCase := transaction.NewSettleEntryUseCase(transactionRepo)
	deleteEntryUseCase := transaction.NewDeleteEntryUseCase(transactionRepo, creditCardRepo)

	// Create credit card use cases
	createCardUseCase := creditcard.NewCreateCardUseCase(creditCardRepo)
	listCardsUseCase := creditcard.NewListCardsUseCase(creditCardRepo)
	getStatementsUseCase := creditcard.NewGetStatementsUseCase(statementRepo, creditCardRepo)
	recomputeStatementUseCase := creditcard.NewRecomputeStatementUseCase(statementRepo, creditCardRepo)
	settleStatementUseCase := creditcard.NewSettleStatementUseCase(statementRepo)

	// Create report use cases
	getBalanceUseCase := report.NewGetBalanceUseCase(reportRepo)
	getCategorySummaryUseCase := report.NewGetCategorySummaryUseCase(reportRepo)
	getMonthlyTrendUseCase := report.NewGetMonthlyTrendUseCase(reportRepo)
	getPendingCommitmentsUseCase := report.NewGetPendingCommitmentsUseCase(reportRepo)

	// Create controllers
	healthController := controller.NewHealthController(func() bool {
		sqlDB, err := gormDB.DB()
		if err != nil {
			return false
		}
		return sqlDB.Ping() == nil
	}, db.RedisHealthCheck(redisClient))

	authController := controller.NewAuthController(registerUseCase, loginUseCase)

	categoryController := controller.NewCategoryController(
		createCategoryUseCase,
		listCategoriesUseCase,
		renameCategoryUseCase,
		deleteCategoryUseCase,
	)

	transactionController := controller.NewTransactionController(
		createEntryUseCase,
		listEntriesUseCase,
		updateEntryUseCase,
		settleEntryUseCase,
		deleteEntryUseCase,
	)

	creditCardController := controller.NewCreditCardController(
		createCardUseCase,
		listCardsUseCase,
		getStatementsUseCase,
		recomputeStatementUseCase,
		settleStatementUseCase,
	)

	reportController := controller.NewReportController(
		getBalanceUseCase,
		getCategorySummaryUseCase,
		getMonthlyTrendUseCase,
		getPendingCommitmentsUseCase,
	)

	// Create middleware
	// Use higher rate limits for E2E/test environments to prevent flaky tests
	var loginRateLimiter *middleware.RateLimiter
	if redisClient != nil {
		if cfg.Server.Environment == "e2e" || cfg.Server.Environment == "test" {
			loginRateLimiter = middleware.NewRateLimiterWithConfig(redisClient, 1000, 1*time.Minute)
		} else {
			loginRateLimiter = middleware.NewRateLimiter(redisClient)
		}
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Create router
	r := router.NewRouter(
		healthController,
		authController,
		categoryController,
		transactionController,
		creditCardController,
		reportController,
		loginRateLimiter,
		authMiddleware,
	)

	// Create reminder worker (only when an email sender is configured)
	var reminderWorker *email.ReminderWorker
	if cfg.Email.ReminderEnabled && emailSender != nil {
		reminderWorker = email.NewReminderWorker(userRepo, getPendingCommitmentsUseCase, emailSender, email.ReminderWorkerConfig{
			Interval: cfg.Email.ReminderInterval,
		})
	}

	return &Injector{
		Config:         cfg,
		DB:             gormDB,
		Router:         r,
		ReminderWorker: reminderWorker,
	}
}
