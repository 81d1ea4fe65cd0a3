package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"robi-be/internal/bootstrap"
	"robi-be/internal/config"
	"robi-be/internal/pkg/logger"
	"robi-be/internal/server"
	"robi-be/internal/tracer"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Load Configuration (fail fast on a missing credential)
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	defer sysLogger.Sync()

	// 2. Tracer
	shutdownTracer := tracer.InitTracer(cfg.Infra.OtelEnabled, cfg.Infra.OtelEndpoint, sysLogger)
	defer shutdownTracer(context.Background())

	// 3. Bootstrap Dependencies (Container)
	container, err := bootstrap.NewContainer(ctx, cfg, sysLogger)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	defer container.Close()

	// 4. Start Background Services
	go container.Hub.Run(ctx)

	if err := container.ConsumerService.Consume(ctx); err != nil {
		sysLogger.Error("MAIN", "Consumer service failed to start", map[string]interface{}{"error": err.Error()})
	}

	// Queries arriving before the first load finishes get a "not loaded" answer.
	if cfg.Resources.LoadOnStartup {
		go func() {
			if err := container.AssistantService.Reload(ctx); err != nil {
				sysLogger.Error("MAIN", "Initial resource load failed", map[string]interface{}{"error": err.Error()})
			}
		}()
	}

	if container.Watcher != nil {
		go func() {
			if err := container.Watcher.Run(ctx); err != nil {
				sysLogger.Error("MAIN", "Resource watcher stopped", map[string]interface{}{"error": err.Error()})
			}
		}()
	}
	if container.Scheduler != nil {
		container.Scheduler.Start()
		defer container.Scheduler.Stop(context.Background())
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sysLogger.Error("MAIN", "Server shutdown failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// 6. Run Server
	if err := srv.Run(); err != nil {
		sysLogger.Error("MAIN", "Server stopped", map[string]interface{}{"error": err.Error()})
	}
}
