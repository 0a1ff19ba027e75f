// Command server runs the internship hours hub API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/estagio-hub/estagio-hours-hub/config"
	"github.com/estagio-hub/estagio-hours-hub/internal/application/command"
	"github.com/estagio-hub/estagio-hours-hub/internal/application/query"
	"github.com/estagio-hub/estagio-hours-hub/internal/application/report"
	"github.com/estagio-hub/estagio-hours-hub/internal/application/transfer"
	"github.com/estagio-hub/estagio-hours-hub/internal/domain/holiday"
	"github.com/estagio-hub/estagio-hours-hub/internal/infrastructure/persistence/postgres"
	"github.com/estagio-hub/estagio-hours-hub/internal/infrastructure/persistence/redis"
	"github.com/estagio-hub/estagio-hours-hub/internal/infrastructure/scheduler"
	"github.com/estagio-hub/estagio-hours-hub/internal/infrastructure/scheduler/jobs"
	httpapi "github.com/estagio-hub/estagio-hours-hub/internal/interface/http"
	"github.com/estagio-hub/estagio-hours-hub/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Output:    os.Stdout,
		Level:     logger.ParseLevel(cfg.App.LogLevel),
		AddCaller: !cfg.IsProduction(),
	})
	log.Info("starting", logger.String("app", cfg.App.Name),
		logger.String("env", string(cfg.App.Environment)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Database
	conn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer conn.Close()

	if cfg.Database.RunMigrations {
		if err := postgres.NewMigrator(conn).Migrate(ctx); err != nil {
			return err
		}
		log.Info("migrations applied")
	}

	// Repositories
	workLogRepo := postgres.NewWorkLogRepository(conn)
	settingsRepo := postgres.NewSettingsRepository(conn)

	var holidayRepo holiday.Repository = postgres.NewHolidayRepository(conn)
	var cache *redis.Cache
	if cfg.Redis.Enabled {
		cache, err = redis.NewCache(ctx, redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer cache.Close()
		log.Info("redis cache enabled")
	}
	holidayRepo = redis.NewCachedHolidayRepository(holidayRepo, cache)

	// Application layer
	generateHolidays := command.NewGenerateHolidaysHandler(holidayRepo, log)

	deps := httpapi.Dependencies{
		DashboardStats: query.NewGetDashboardStatsHandler(workLogRepo, holidayRepo, settingsRepo),
		WeeklySummary:  query.NewGetWeeklySummaryHandler(workLogRepo),
		MonthlySummary: query.NewGetMonthlySummaryHandler(workLogRepo),
		ListWorkLogs:   query.NewListWorkLogsHandler(workLogRepo),
		GetWorkLog:     query.NewGetWorkLogHandler(workLogRepo),
		ListHolidays:   query.NewListHolidaysHandler(holidayRepo),

		CreateWorkLog:    command.NewCreateWorkLogHandler(workLogRepo),
		UpdateWorkLog:    command.NewUpdateWorkLogHandler(workLogRepo),
		DeleteWorkLog:    command.NewDeleteWorkLogHandler(workLogRepo),
		GenerateHolidays: generateHolidays,
		AddCustomHoliday: command.NewAddCustomHolidayHandler(holidayRepo),
		DeleteHoliday:    command.NewDeleteHolidayHandler(holidayRepo),
		UpdateSettings:   command.NewUpdateSettingsHandler(settingsRepo),

		SettingsReader: settingsRepo,
		CSV:            transfer.NewCSVService(workLogRepo, log),
		Midterm:        report.NewMidtermGenerator(workLogRepo, settingsRepo, log),

		Database: conn,
		Logger:   log,
	}

	// Scheduler
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.New(log)
		sched.Register(jobs.NewHolidaySeedJob(generateHolidays, cfg.Scheduler.HolidaySeedInterval))
		sched.Start(ctx)
		defer sched.Stop()
	}

	// HTTP server
	server := httpapi.NewServer(httpapi.Config{
		Host:               cfg.HTTP.Host,
		Port:               cfg.HTTP.Port,
		ReadTimeout:        httpapi.DefaultConfig().ReadTimeout,
		WriteTimeout:       httpapi.DefaultConfig().WriteTimeout,
		IdleTimeout:        httpapi.DefaultConfig().IdleTimeout,
		EnableCORS:         true,
		AllowedOrigins:     cfg.HTTP.AllowedOrigins,
		RateLimitPerMinute: cfg.HTTP.RateLimitPerMinute,
	}, deps)

	errCh := server.StartAsync()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
