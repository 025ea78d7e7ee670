package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"brandlink-be/internal/bootstrap"
	"brandlink-be/internal/config"
	"brandlink-be/internal/server"
	"brandlink-be/internal/tracer"
	"brandlink-be/pkg/database"

	"golang.org/x/sync/errgroup"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	pool := database.DefaultPoolConfig()
	pool.MaxIdleConns = cfg.Database.MaxIdleConns
	pool.MaxOpenConns = cfg.Database.MaxOpenConns
	pool.ConnMaxLifetime = cfg.Database.ConnMaxLifetime

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection, pool)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()

	shutdownTracer := tracer.InitTracer(cfg.Tracing, container.Logger)
	defer shutdownTracer(context.Background())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, container)

	// 4. Run server and background workers under one supervisor
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		container.WebSocketHub.Run(gctx)
		return nil
	})
	g.Go(func() error {
		if err := container.ConsumerService.Consume(gctx); err != nil {
			return err
		}
		<-gctx.Done()
		return nil
	})
	g.Go(func() error {
		return container.SchedulerService.Run(gctx)
	})
	if container.ActivityService != nil {
		g.Go(func() error {
			// a broken subscription is not fatal, the API keeps serving
			if err := container.ActivityService.Start(gctx); err != nil {
				container.Logger.Error("ACTIVITY", "Activity service failed to start", map[string]interface{}{"error": err.Error()})
			}
			return nil
		})
	}
	g.Go(func() error {
		return srv.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		container.Logger.Error("SERVER", "Server stopped with error", map[string]interface{}{"error": err.Error()})
	}
}
