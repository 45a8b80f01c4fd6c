package main

import (
	"flag"
	"log"

	"gutvbooker/internal/config"
	"gutvbooker/internal/database"
	"gutvbooker/internal/logger"
	"gutvbooker/internal/seed"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file (optional)")
	reset := flag.Bool("reset", false, "Delete existing users, equipment and bookings first")
	adminPassword := flag.String("admin-password", "admin123", "Password for the seeded admin")
	userPassword := flag.String("user-password", "user123", "Password for the seeded users")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	logger.Info("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	if err := seed.Run(db, seed.Options{
		Reset:         *reset,
		AdminPassword: *adminPassword,
		UserPassword:  *userPassword,
	}); err != nil {
		log.Fatal("Seeding failed:", err)
	}

	logger.Info("Seed completed", "admin_login", "admin")
}
