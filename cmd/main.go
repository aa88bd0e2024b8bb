package main

import (
	"MenuGacha/config"
	"MenuGacha/services/menu"
	"MenuGacha/services/redis"
	"context"
	"time"

	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

// Imports the configured menu file into the menu_items table and exits,
// e.g. MENU_FILE=data/menu.yaml go run ./cmd
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	db, err := config.ConnectGORM(cfg.Postgres)
	if err != nil {
		log.Fatalf("Error connecting to PostgreSQL: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
	}
	defer sqlDB.Close()

	if err := config.MigrateDatabase(db); err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	file := menu.NewFileSource(cfg.Menu.File)
	records, err := file.Records(ctx)
	if err != nil {
		log.Fatalf("Error reading menu file: %v", err)
	}

	store := menu.NewStore(db)
	report, err := store.Import(ctx, file.Name(), records)
	if err != nil {
		log.Fatalf("Error importing menu: %v", err)
	}

	log.WithFields(log.Fields{"inserted": report.Inserted, "skipped": len(report.SkippedNames)}).
		Infof("Imported %s", cfg.Menu.File)
	for _, name := range report.SkippedNames {
		log.Infof("  skipped existing item %q", name)
	}

	// Drop the shared catalog so running servers pick up the new items
	if report.Inserted > 0 && cfg.Redis.URL != "" {
		redisClient, err := config.Connect_redis(cfg.Redis)
		if err != nil {
			log.Warnf("Could not clear the cached catalog: %v", err)
			return
		}
		defer redis.CloseRedis(redisClient)
		if err := redisClient.DeleteCatalogSnapshot(ctx, store.Name()); err != nil {
			log.Warnf("Could not clear the cached catalog: %v", err)
		}
	}
}
