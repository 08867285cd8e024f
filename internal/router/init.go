package router

import (
	"expense-tracker-api/internal/application"
	"expense-tracker-api/internal/container"
	pginfra "expense-tracker-api/internal/infrastructure/postgres"
	handlers "expense-tracker-api/internal/interface/http"
	"expense-tracker-api/internal/router/modules"
)

type appDeps struct {
	Users      *application.UserService
	Categories *application.CategoryService
	Expenses   *application.ExpenseService
	Reports    *application.ReportService
}

func buildDeps() appDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	catRepo := pginfra.NewCategoryRepository(pool)
	expRepo := pginfra.NewExpenseRepository(pool)
	reportRepo := pginfra.NewReportRepository(pool)

	return appDeps{
		Users:      application.NewUserService(userRepo, container.GetJWT(), container.GetRabbitPub(), logger, cfg.MailSendEnabled),
		Categories: application.NewCategoryService(catRepo, logger),
		Expenses:   application.NewExpenseService(expRepo, logger, container.GetES(), cfg.ESExpensesIndex, container.GetGCS(), cfg.GCSBucket),
		Reports:    application.NewReportService(reportRepo, userRepo, logger),
	}
}

// InitModules wires repositories, services and handlers from the
// container singletons and registers every feature module. Called once
// during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	jwt := container.GetJWT()
	dev := cfg.IsDevelopment()

	deps := buildDeps()

	authH := handlers.NewAuthHandler(deps.Users, cfg.CookieDomain, cfg.CookieSecure, logger, dev)
	catH := handlers.NewCategoryHandler(deps.Categories, logger, dev)
	expH := handlers.NewExpenseHandler(deps.Expenses, logger, dev)
	repH := handlers.NewReportHandler(deps.Reports, logger, dev)

	r.Add(
		modules.NewAuthModule(authH, jwt),
		modules.NewCategoryModule(catH, jwt),
		modules.NewExpenseModule(expH, jwt),
		modules.NewReportModule(repH, jwt),
	)

	if dev {
		r.Add(modules.NewDebugModule(handlers.NewDebugHandler(deps.Reports, logger)))
	}
}
