package main

import (
	"context"
	"log"

	"github.com/raneshrk02/regulations-chat/internal/bootstrap"
	"github.com/raneshrk02/regulations-chat/internal/config"
	"github.com/raneshrk02/regulations-chat/internal/server"
	"github.com/raneshrk02/regulations-chat/internal/tracer"
	"github.com/raneshrk02/regulations-chat/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	// 4. Startup store check
	if count, err := container.DocumentService.CountAll(context.Background()); err != nil {
		log.Printf("Warning: document store check failed: %v", err)
	} else {
		log.Printf("Document store reachable, %d documents available", count)
	}

	// 5. Start Background Services
	go container.WebSocketHub.Run()

	go func() {
		log.Println("Background: Starting ingestion event consumer...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	go func() {
		log.Println("Background: Starting registry poller...")
		container.IngestService.RunPolling(context.Background(), cfg.Registry.PollInterval, cfg.Registry.PollWindow)
	}()

	// 6. Initialize Server
	srv := server.New(cfg, container)

	// 7. Run Server
	log.Fatal(srv.Run())
}
