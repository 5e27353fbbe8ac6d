package main

import (
	"log"

	"github.com/raneshrk02/regulations-chat/internal/config"
	"github.com/raneshrk02/regulations-chat/internal/model"
	"github.com/raneshrk02/regulations-chat/pkg/database"
)

func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	if err := gormDB.AutoMigrate(&model.RegulationDocument{}); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Println("Migration complete")
}
