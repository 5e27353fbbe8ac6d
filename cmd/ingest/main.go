// One-shot backfill: ingest a posted-date window from regulations.gov and exit.
// Usage: ingest [-days 30] or ingest [-start 2024-01-01 -end 2024-01-31]
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/raneshrk02/regulations-chat/internal/bootstrap"
	"github.com/raneshrk02/regulations-chat/internal/config"
	"github.com/raneshrk02/regulations-chat/pkg/database"
)

func main() {
	days := flag.Int("days", 30, "ingest the last N days (ignored when -start/-end are set)")
	startStr := flag.String("start", "", "window start, YYYY-MM-DD")
	endStr := flag.String("end", "", "window end, YYYY-MM-DD")
	flag.Parse()

	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	end := time.Now()
	start := end.AddDate(0, 0, -*days)
	if *startStr != "" && *endStr != "" {
		start, err = time.Parse("2006-01-02", *startStr)
		if err != nil {
			log.Fatalf("Invalid -start: %v", err)
		}
		end, err = time.Parse("2006-01-02", *endStr)
		if err != nil {
			log.Fatalf("Invalid -end: %v", err)
		}
	}

	stored, err := container.IngestService.IngestWindow(context.Background(), start, end)
	if err != nil {
		log.Fatalf("Ingestion failed: %v", err)
	}
	log.Printf("Ingestion complete: %d documents stored", stored)
}
