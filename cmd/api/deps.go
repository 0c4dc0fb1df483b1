package main

import (
	"context"
	"fmt"
	"log"

	goredis "github.com/redis/go-redis/v9"

	"homefront/internal/domain/dashboard"
	"homefront/internal/domain/debt"
	"homefront/internal/domain/expense"
	"homefront/internal/domain/income"
	"homefront/internal/domain/notification"
	"homefront/internal/domain/user"
	"homefront/internal/infrastructure/firebase"
	"homefront/internal/infrastructure/postgres"
	"homefront/internal/infrastructure/redis"
	httphandlers "homefront/internal/interfaces/http"
	"homefront/internal/shared/auth"
	"homefront/internal/shared/config"
	"homefront/internal/shared/messages"
)

// Dependencies holds all initialized application components.
type Dependencies struct {
	DB    *postgres.DB
	Redis *goredis.Client

	// Handlers
	AuthHandler      *httphandlers.AuthHandler
	UserHandler      *httphandlers.UserHandler
	IncomeHandler    *httphandlers.IncomeHandler
	ExpenseHandler   *httphandlers.ExpenseHandler
	DebtHandler      *httphandlers.DebtHandler
	DashboardHandler *httphandlers.DashboardHandler
	DeviceHandler    *httphandlers.DeviceHandler

	JWT *auth.JWT

	// Used by the change listener and the digest scheduler
	DashboardService    *dashboard.Service
	NotificationService *notification.Service
	Messages            *messages.Messages
}

func NewDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	db, err := postgres.New(cfg.Database.ConnectionString())
	if err != nil {
		return nil, err
	}
	log.Println("Connected to database")

	deps := &Dependencies{DB: db}

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			deps.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	userRepo := postgres.NewUserRepository(db)
	incomeRepo := postgres.NewIncomeRepository(db)
	expenseRepo := postgres.NewExpenseRepository(db)
	debtRepo := postgres.NewDebtRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	userService := user.NewService(userRepo)
	incomeService := income.NewService(incomeRepo)
	expenseService := expense.NewService(expenseRepo)
	debtService := debt.NewService(debtRepo)

	// The summary cache is optional; without Redis every request recomputes.
	var cache dashboard.Cache
	if cfg.Redis.Addr != "" {
		client, err := redis.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Printf("Warning: dashboard cache disabled: %v", err)
		} else {
			deps.Redis = client
			cache = redis.NewSummaryCache(client, cfg.Redis.TTL)
			log.Printf("Dashboard cache enabled (ttl %v)", cfg.Redis.TTL)
		}
	}
	dashboardService := dashboard.NewService(incomeService, expenseService, debtService, cache)

	var messenger notification.Messenger
	if cfg.Firebase.CredentialsFile != "" {
		fcm, err := firebase.NewClient(ctx, cfg.Firebase.CredentialsFile, notificationRepo.DeactivateToken)
		if err != nil {
			deps.Close()
			return nil, err
		}
		messenger = fcm
		log.Println("Firebase messaging initialized")
	}
	notificationService := notification.NewService(notificationRepo, messenger)

	if cfg.Scheduler.Enabled {
		msgs, err := messages.Load(cfg.Messages.Path)
		if err != nil {
			deps.Close()
			return nil, err
		}
		deps.Messages = msgs
	}

	jwt := auth.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	deps.AuthHandler = httphandlers.NewAuthHandler(userService, jwt)
	deps.UserHandler = httphandlers.NewUserHandler(userService)
	deps.IncomeHandler = httphandlers.NewIncomeHandler(incomeService)
	deps.ExpenseHandler = httphandlers.NewExpenseHandler(expenseService)
	deps.DebtHandler = httphandlers.NewDebtHandler(debtService)
	deps.DashboardHandler = httphandlers.NewDashboardHandler(dashboardService)
	deps.DeviceHandler = httphandlers.NewDeviceHandler(notificationService)
	deps.JWT = jwt
	deps.DashboardService = dashboardService
	deps.NotificationService = notificationService

	return deps, nil
}

// Close releases all resources held by dependencies.
func (d *Dependencies) Close() {
	if d.Redis != nil {
		if err := d.Redis.Close(); err != nil {
			log.Printf("Error closing redis client: %v", err)
		}
	}
	if d.DB != nil {
		d.DB.Close()
	}
}
