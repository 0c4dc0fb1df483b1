package main

import (
	"log"
	"net/http"

	httphandlers "homefront/internal/interfaces/http"
	"homefront/internal/shared/config"
	"homefront/internal/shared/middleware"
)

// SetupRoutes configures all HTTP routes and returns the final handler with middleware.
func SetupRoutes(deps *Dependencies, cfg *config.Config) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", httphandlers.HandleHealth)

	// Public auth routes
	mux.HandleFunc("/api/auth/register", deps.AuthHandler.HandleRegister)
	mux.HandleFunc("/api/auth/login", deps.AuthHandler.HandleLogin)
	mux.HandleFunc("/api/auth/logout", deps.AuthHandler.HandleLogout)

	// Protected routes
	authMiddleware := middleware.Auth(deps.JWT)
	protect := func(h http.HandlerFunc) http.Handler {
		return authMiddleware(h)
	}

	mux.Handle("/api/users/me", protect(deps.UserHandler.HandleMe))
	mux.Handle("/api/incomes/", protect(deps.IncomeHandler.HandleIncomes))
	mux.Handle("/api/incomes/{id}", protect(deps.IncomeHandler.HandleIncomeByID))
	mux.Handle("/api/expenses/", protect(deps.ExpenseHandler.HandleExpenses))
	mux.Handle("/api/expenses/{id}", protect(deps.ExpenseHandler.HandleExpenseByID))
	mux.Handle("/api/debts/", protect(deps.DebtHandler.HandleDebts))
	mux.Handle("/api/debts/{id}", protect(deps.DebtHandler.HandleDebtByID))
	mux.Handle("/api/dashboard/", protect(deps.DashboardHandler.HandleDashboard))
	mux.Handle("/api/devices/", protect(deps.DeviceHandler.HandleRegisterDevice))
	mux.Handle("/api/devices/{token}", protect(deps.DeviceHandler.HandleDeviceByToken))

	// Apply global middleware
	handler := middleware.Logging(middleware.CORS(cfg.Server.AllowedHosts)(mux))

	if cfg.Telemetry.Enabled {
		handler = middleware.Telemetry(handler)
	}

	// Apply security middleware when TLS is enabled
	if cfg.TLS.Enabled {
		handler = middleware.HSTS(middleware.SecureCookies(handler))
		log.Println("TLS security middleware enabled (HSTS + SecureCookies)")
	}

	return handler
}
