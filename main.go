package main

import (
	"MenuGacha/config"
	_ "MenuGacha/config/swagger"
	"MenuGacha/middleware"
	"MenuGacha/routes"
	"MenuGacha/services/gacha"
	"MenuGacha/services/menu"
	"MenuGacha/services/redis"
	"MenuGacha/services/socket_io"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
)

// @title Menu Gacha API
// @version 1.0
// @description Gin-Gonic server that proposes a random menu within a budget
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	if level, err := log.ParseLevel(cfg.Server.LogLevel); err == nil {
		log.SetLevel(level)
	}
	log.Println("Setting up server...")

	if cfg.Server.Prod {
		gin.SetMode(gin.ReleaseMode)
		log.SetFormatter(&log.JSONFormatter{})
	}

	// The Redis catalog cache is optional, without it every process loads
	// the catalog on its own
	var redisClient *redis.RedisClient
	if cfg.Redis.URL != "" {
		redisClient, err = config.Connect_redis(cfg.Redis)
		if err != nil {
			log.Warnf("Continuing without the Redis catalog cache: %v", err)
			redisClient = nil
		} else {
			defer redis.CloseRedis(redisClient)
		}
	}

	fileSource := menu.NewFileSource(cfg.Menu.File)

	var store *menu.Store
	var source menu.Source = fileSource
	if cfg.Menu.Source == "db" {
		gormDB, err := config.ConnectGORM(cfg.Postgres)
		if err != nil {
			log.Fatalf("Error connecting to PostgreSQL: %v", err)
		}
		log.Println("GORM Connected")

		// Only migrate in development or during deployment
		if cfg.Postgres.Migrate {
			log.Println("Migrating PostgreSQL database...")
			if err := config.MigrateDatabase(gormDB); err != nil {
				log.Fatalf("Database migration failed: %v", err)
			}
			log.Println("Database migrated successfully")
		}

		sqlDB, err := gormDB.DB()
		if err != nil {
			log.Fatalf("Error reading GORM PostgreSQL instance: %v", err)
		}
		defer sqlDB.Close()

		store = menu.NewStore(gormDB)
		source = store

		if cfg.Menu.SeedFromFile {
			seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			report, err := store.SeedIfEmpty(seedCtx, fileSource)
			cancel()
			if err != nil {
				log.Warnf("Could not seed the menu from %s: %v", cfg.Menu.File, err)
			} else if report != nil {
				log.WithFields(log.Fields{"inserted": report.Inserted, "skipped": len(report.SkippedNames)}).
					Info("Menu seeded from file")
			}
		}
	}

	provider := menu.NewProvider(source, cfg.Menu.CategoryOrder, redisClient, cfg.Redis.CatalogTTL)

	// Fail fast on a broken menu instead of on the first request
	loadCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	catalog, err := provider.Catalog(loadCtx)
	cancel()
	if err != nil {
		log.Fatalf("Error loading menu: %v", err)
	}
	log.WithFields(log.Fields{"source": source.Name(), "items": catalog.Len()}).Info("Menu loaded")

	service := gacha.NewService(gacha.NewSelector(cfg.Gacha.Seed), cfg.Gacha.MinBudget, cfg.Gacha.MaxBudget)

	r := gin.New()
	r.Use(gin.Recovery())

	middleware.SetUpMiddleware(r, cfg.Session.Name, cfg.Session.Key, cfg.Server.Origins)

	routes.SetupRoutes(r, routes.Dependencies{
		Provider:      provider,
		Service:       service,
		DefaultBudget: cfg.Gacha.DefaultBudget,
		DrawLimiter:   middleware.NewClientRateLimiter(cfg.Gacha.RatePerMinute, cfg.Gacha.RatePerMinute/6+1),
		Store:         store,
		MenuFile:      fileSource,
		AdminHash:     cfg.Admin.PasswordHash,
		JWTSecret:     []byte(cfg.Admin.JWTSecret),
		TokenTTL:      cfg.Admin.TokenTTL,
	})

	sio := &socket_io.MySocketServer{}
	sio.Start(r, provider, service, cfg.Server.Origins)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}

	go func() {
		log.Printf("Server started on port %d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	signalC := make(chan os.Signal, 1)
	signal.Notify(signalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	<-signalC

	log.Println("Shutting down...")
	sio.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Error during shutdown: %v", err)
	}
}
