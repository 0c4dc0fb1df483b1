package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homefront/internal/infrastructure/postgres/listener"
	"homefront/internal/interfaces/scheduler"
	"homefront/internal/shared/config"
	"homefront/internal/shared/telemetry"
)

const shutdownTimeout = 30 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx := context.Background()
	var bg Background

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Init(ctx, telemetry.Config{
			ServiceName:  cfg.Telemetry.ServiceName,
			Environment:  cfg.Telemetry.Environment,
			OTLPEndpoint: cfg.Telemetry.OTLPEndpoint,
			MetricsPort:  cfg.Telemetry.MetricsPort,
		})
		if err != nil {
			return err
		}
		bg.Telemetry = shutdown
	}

	deps, err := NewDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer deps.Close()

	if cfg.Listener.Enabled {
		bg.Listener = listener.NewFinanceListener(cfg.Database.ConnectionString(), deps.DashboardService)
		bg.Listener.Start(ctx)
	} else {
		log.Println("Change listener is disabled; cached summaries expire by TTL only")
	}

	if cfg.Scheduler.Enabled {
		sched, err := scheduler.NewScheduler(scheduler.SchedulerConfig{
			ScheduleTimes: cfg.Scheduler.ScheduleTimes,
			WorkerCount:   cfg.Scheduler.WorkerCount,
			JobDelay:      cfg.Scheduler.JobDelay,
			QueueSize:     cfg.Scheduler.QueueSize,
			RunOnStartup:  cfg.Scheduler.RunOnStartup,
			JobProvider: scheduler.NewPayoffDigestProvider(
				deps.NotificationService,
				deps.DashboardService,
				deps.NotificationService,
				deps.Messages,
			),
		})
		if err != nil {
			if bg.Listener != nil {
				bg.Listener.Stop()
			}
			return err
		}
		sched.Start()
		bg.Scheduler = sched
	} else {
		log.Println("Scheduler is disabled")
	}

	handler := SetupRoutes(deps, cfg)
	srv, redirectSrv := StartServers(NewServerConfigFromConfig(handler, cfg))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	GracefulShutdown(srv, redirectSrv, bg, shutdownTimeout)
	return nil
}
