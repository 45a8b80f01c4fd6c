package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gutvbooker/internal/config"
	"gutvbooker/internal/database"
	"gutvbooker/internal/jobs"
	"gutvbooker/internal/logger"
	"gutvbooker/internal/repository"
	"gutvbooker/internal/scheduler"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML configuration file (optional)")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'promote-osnova', 'all')")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting cronjob runner...", "log_level", cfg.Log.Level)

	db, err := database.Connect(cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	jobRunner := jobs.NewJobRunner(repository.NewUserRepository(db))

	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	cronScheduler, err := scheduler.NewScheduler(jobRunner, scheduler.Specs{
		PromoteOsnova: cfg.Jobs.OsnovaPromotionCron,
	})
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}

	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	cronScheduler.Stop()
}

func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "promote-osnova":
		jobRunner.PromoteOsnova()
	case "all":
		jobRunner.RunAll()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - promote-osnova\n")
		fmt.Printf("  - all\n")
		os.Exit(1)
	}
}
