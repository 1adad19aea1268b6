package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"project-service/internal/config"
	"project-service/internal/handlers"
	"project-service/internal/metrics"
	"project-service/internal/models"
	"project-service/internal/repository"
	"project-service/internal/seed"
	"project-service/internal/services"
)

const tokenTTL = 2 * time.Hour

func main() {
	cfg := InitConfig()
	db := ConnectDatabase(cfg)
	MigrateDatabase(db)

	repo := repository.NewProjectRepository(db)
	projectService := services.NewProjectService(repo)
	authService := services.NewAuthService([]byte(cfg.JWTSecret), tokenTTL)
	seeder := seed.NewSeeder(repo)
	apiMetrics := metrics.NewMetrics(prometheus.DefaultRegisterer)

	SeedDatabase(seeder)

	app := fiber.New()
	app.Use(cors.New())

	// Register Prometheus metrics endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.Register(app, handlers.Deps{
		Projects: handlers.NewProjectHandler(projectService, apiMetrics),
		Auth:     handlers.NewAuthHandler(authService, apiMetrics),
		Health:   handlers.NewHealthHandler(repo),
		Seed:     handlers.NewSeedHandler(seeder),
		Guard:    handlers.NewAuthMiddleware(authService),
		DevMode:  cfg.DevMode(),
	})

	routes := app.GetRoutes()
	log.Println("Registered routes:")
	for _, r := range routes {
		log.Printf("  %s %s\n", r.Method, r.Path)
	}

	// Shut down on SIGINT/SIGTERM; the store connection is closed after the
	// server stops accepting traffic.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down")
		if err := app.Shutdown(); err != nil {
			log.Printf("Server shutdown failed: %v", err)
		}
	}()

	log.Printf("Server listening on port %s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("Server failed: %v", err)
	}

	CloseDatabase(db)
}

func InitConfig() *config.Config {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}
	return cfg
}

func ConnectDatabase(cfg *config.Config) *gorm.DB {
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	return db
}

func MigrateDatabase(db *gorm.DB) {
	err := db.AutoMigrate(&models.Project{})
	if err != nil {
		log.Fatalf("Database migration failed: %v", err)
	}
}

func SeedDatabase(seeder *seed.Seeder) {
	seeded, err := seeder.Run()
	if err != nil {
		log.Fatalf("Database seeding failed: %v", err)
	}
	if seeded {
		log.Println("Seeded demo data")
	}
}

func CloseDatabase(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Database handle unavailable at shutdown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Database close failed: %v", err)
	}
}
