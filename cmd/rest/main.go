package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"inquiry-be/internal/bootstrap"
	"inquiry-be/internal/config"
	"inquiry-be/internal/server"
	"inquiry-be/internal/tracer"
	"inquiry-be/pkg/database"
)

func main() {
	// 0. Initialize tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load configuration
	cfg := config.Load()

	// 2. Initialize database
	gormDB, err := database.NewGormDB(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap dependencies
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Start background services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Println("Background: Starting Consumer Service...")
	if err := container.ConsumerService.Consume(ctx); err != nil {
		log.Printf("Background Consumer Error: %v", err)
	}

	log.Println("Background: Starting Metadata Scheduler...")
	container.MetadataScheduler.Start(ctx)
	defer container.MetadataScheduler.Stop()

	// 5. Serve until interrupted
	srv := server.New(cfg, container)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		cancel()
		_ = srv.GetApp().Shutdown()
	}()

	if err := srv.Run(); err != nil {
		log.Fatal(err)
	}
}
