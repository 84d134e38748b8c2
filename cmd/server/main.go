package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "rentalops-backend/internal/api/http"
	"rentalops-backend/internal/config"
	"rentalops-backend/internal/importer"
	"rentalops-backend/internal/intel"
	"rentalops-backend/internal/logger"
	"rentalops-backend/internal/payments"
	"rentalops-backend/internal/repository/postgres"
	"rentalops-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentalOps backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("SMTP configuration", "host", cfg.SMTP.Host, "port", cfg.SMTP.Port)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
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

	// Initialize Payment Gateway
	var gateway payments.Gateway
	if cfg.Gateway.Type == "" || cfg.Gateway.Type == "mock" {
		logger.Info("Using mock payment gateway")
		gateway = payments.NewMockGateway()
	} else {
		logger.Info("Using HTTP payment gateway", "base_url", cfg.Gateway.BaseURL)
		gateway = payments.NewHTTPGateway(cfg.Gateway.BaseURL, cfg.Gateway.SecretKey)
	}

	// Initialize Web Intelligence Analyzer
	analyzer := intel.NewAnalyzer(intel.Config{
		PlacesBaseURL:  cfg.Intel.PlacesBaseURL,
		PlacesAPIKey:   cfg.Intel.PlacesAPIKey,
		SocialBaseURL:  cfg.Intel.SocialBaseURL,
		SocialToken:    cfg.Intel.SocialToken,
		TextGenBaseURL: cfg.Intel.TextGenBaseURL,
		TextGenAPIKey:  cfg.Intel.TextGenAPIKey,
		TextGenModel:   cfg.Intel.TextGenModel,
	})

	// Initialize Email Service
	emailSvc := service.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.User,
		cfg.SMTP.Password,
		cfg.SMTP.From,
	)

	// Initialize Services
	businessSvc := service.NewBusinessService(store.BusinessRepository, store.RentalRepository, analyzer, int32(cfg.Billing.DefaultTaxRateBps))
	equipmentSvc := service.NewEquipmentService(store.EquipmentRepository, store.BusinessRepository, store.RentalRepository, store.MaintenanceRepository)
	customerSvc := service.NewCustomerService(store.CustomerRepository, store.BusinessRepository, store.RentalRepository)
	rentalSvc := service.NewRentalService(store.RentalRepository, store.EquipmentRepository, store.CustomerRepository, store.BusinessRepository)
	invoiceSvc := service.NewInvoiceService(store.InvoiceRepository, store.RentalRepository, store.CustomerRepository, store.BusinessRepository, store.EquipmentRepository, emailSvc, cfg.Billing.InvoiceDueDays)
	paymentSvc := service.NewPaymentService(store.PaymentRepository, invoiceSvc, store.CustomerRepository, store.BusinessRepository, gateway, emailSvc, cfg.Gateway.Currency)
	deliverySvc := service.NewDeliveryService(store.DeliveryRepository, store.RentalRepository)
	staffSvc := service.NewStaffService(store.StaffRepository, store.BusinessRepository)
	adminSvc := service.NewAdminService(store.BusinessRepository)
	imp := importer.New(store.CustomerRepository, store.EquipmentRepository)

	// Initialize HTTP handlers and router
	handler := httpapi.NewHandler(businessSvc, equipmentSvc, customerSvc, rentalSvc, invoiceSvc, paymentSvc, deliverySvc, staffSvc, adminSvc, imp)
	router := httpapi.NewRouter(handler)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// Serve until interrupted, then drain in-flight requests
	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	logger.Info("Server stopped")
}
