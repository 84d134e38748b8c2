package main

import (
	"database/sql"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"rentalops-backend/internal/config"
	"rentalops-backend/internal/intel"
	"rentalops-backend/internal/jobs"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/repository/postgres"
	"rentalops-backend/internal/scheduler"
	"rentalops-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'activate-due-rentals', 'complete-overdue-rentals', 'send-invoice-reminders', 'refresh-reputation-scores', 'all-nightly')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentalOps cronjob runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	analyzer := intel.NewAnalyzer(intel.Config{
		PlacesBaseURL:  cfg.Intel.PlacesBaseURL,
		PlacesAPIKey:   cfg.Intel.PlacesAPIKey,
		SocialBaseURL:  cfg.Intel.SocialBaseURL,
		SocialToken:    cfg.Intel.SocialToken,
		TextGenBaseURL: cfg.Intel.TextGenBaseURL,
		TextGenAPIKey:  cfg.Intel.TextGenAPIKey,
		TextGenModel:   cfg.Intel.TextGenModel,
	})
	emailService := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)
	rentalService := service.NewRentalService(store.RentalRepository, store.EquipmentRepository, store.CustomerRepository, store.BusinessRepository)
	businessService := service.NewBusinessService(store.BusinessRepository, store.RentalRepository, analyzer, int32(cfg.Billing.DefaultTaxRateBps))

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(db, store, &jobs.Services{
		Rental:   rentalService,
		Business: businessService,
		Email:    emailService,
	}, cfg)

	// Run-once mode for manual execution and container cron
	if *runOnce != "" {
		runSingleJob(jobRunner, *runOnce)
		return
	}

	// Scheduled mode: run until interrupted
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sched.Stop()
}

func runSingleJob(jobRunner *jobs.JobRunner, name string) {
	logger.Info("Running single job", "job", name)
	switch name {
	case "activate-due-rentals":
		jobRunner.ActivateDueRentals()
	case "complete-overdue-rentals":
		jobRunner.CompleteOverdueRentals()
	case "send-invoice-reminders":
		jobRunner.SendInvoiceReminders()
	case "refresh-reputation-scores":
		jobRunner.RefreshReputationScores()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		log.Fatalf("Unknown job: %s", name)
	}
}
