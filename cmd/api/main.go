package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/fichajes-dashboard/internal/config"
	appHTTP "github.com/cmlabs-hris/fichajes-dashboard/internal/handler/http"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/cron"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/database"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/format"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/jwt"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/retry"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/sse"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/pkg/storage"
	"github.com/cmlabs-hris/fichajes-dashboard/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/fichajes-dashboard/internal/service/attendance"
	serviceCompany "github.com/cmlabs-hris/fichajes-dashboard/internal/service/company"
	dashboardService "github.com/cmlabs-hris/fichajes-dashboard/internal/service/dashboard"
	exportService "github.com/cmlabs-hris/fichajes-dashboard/internal/service/export"
)

const version = "v1.0.0"

func main() {
	if err := run(); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})).With(
		slog.String("app", "fichajes-dashboard"),
		slog.String("env", cfg.App.Env),
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath)
	if err != nil {
		return fmt.Errorf("initialize local storage: %w", err)
	}

	loc := cfg.Location()
	locale := format.LookupLocale(cfg.App.Locale)

	companyRepo := postgresql.NewCompanyRepository(db)
	eventStore := attendanceService.WithRetry(postgresql.NewEventStore(db), retry.Policy{
		Attempts:  cfg.Dashboard.QueryAttempts,
		BaseDelay: cfg.Dashboard.QueryBackoff,
		MaxDelay:  4 * cfg.Dashboard.QueryBackoff,
	})

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()

	scopeSvc := serviceCompany.NewScopeService(companyRepo, cfg.Dashboard.MaxEmployees)
	attendanceSvc := attendanceService.NewAttendanceService(eventStore, scopeSvc, cfg.Dashboard.EventLimit)
	dashboardSvc := dashboardService.NewDashboardService(attendanceSvc, hub, dashboardService.Config{
		Locale:       locale,
		Location:     loc,
		DefaultDays:  cfg.Dashboard.DefaultDays,
		MaxEmployees: cfg.Dashboard.MaxEmployees,
	})
	exportSvc := exportService.NewExportService(
		exportService.Options{Locale: locale, Location: loc},
		exportService.NewStorageLogoSource(fileStorage, companyRepo, cfg.Storage.LogoPath),
	)

	scheduler := cron.NewScheduler()
	cron.NewDashboardJobs(dashboardSvc, cfg.Dashboard.RefreshInterval).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:         cfg.App.Env,
			Version:     version,
			FrontendURL: cfg.App.FrontendURL,
			LogLevel:    cfg.SlogLevel(),
		},
		JWTService,
		appHTTP.NewDashboardHandler(dashboardSvc, JWTService, locale),
		appHTTP.NewExportHandler(dashboardSvc, exportSvc),
		appHTTP.NewCompanyHandler(scopeSvc),
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server running", "addr", server.Addr, "timezone", loc.String(), "locale", locale.Code)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
