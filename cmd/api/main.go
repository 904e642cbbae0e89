package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/finsight/finsight-service/internal/config"
	"github.com/finsight/finsight-service/internal/handler"
	"github.com/finsight/finsight-service/internal/integrations/rates"
	"github.com/finsight/finsight-service/internal/middleware"
	"github.com/finsight/finsight-service/internal/repository"
	"github.com/finsight/finsight-service/internal/service"
	"github.com/finsight/finsight-service/internal/utils/email"
)

func main() {
	// Load .env if present
	_ = godotenv.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewPostgresRepository(db)
	var mailer *email.Sender
	if cfg.SMTPHost != "" {
		mailer = email.NewSender(cfg, logger)
	}
	svc := service.NewService(repo, logger, cfg, mailer)
	ratesClient := rates.NewClient(cfg, logger)
	h := handler.NewHandler(svc, ratesClient)

	// Setup router
	r := mux.NewRouter()
	// Public routes
	r.HandleFunc("/auth/signup", h.Register).Methods("POST")
	r.HandleFunc("/auth/login", h.Login).Methods("POST")
	r.HandleFunc("/benchmark-rate", h.BenchmarkRate).Methods("GET")
	// Protected routes
	authRouter := r.PathPrefix("/").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/user/me", h.Me).Methods("GET")
	authRouter.HandleFunc("/consent", h.Consent).Methods("POST")
	authRouter.HandleFunc("/financial-data", h.FinancialData).Methods("GET")
	authRouter.HandleFunc("/summary", h.Summary).Methods("GET")
	authRouter.HandleFunc("/simulate", h.Simulate).Methods("POST")
	authRouter.HandleFunc("/anomalies", h.Anomalies).Methods("GET")

	// Scheduled bundle refresh
	c := cron.New()
	if _, err := c.AddFunc(cfg.RefreshSchedule, func() {
		if err := svc.RefreshAll(); err != nil {
			logger.Errorf("Scheduled refresh failed: %v", err)
		}
	}); err != nil {
		logger.Fatalf("Invalid refresh schedule %q: %v", cfg.RefreshSchedule, err)
	}
	c.Start()
	defer c.Stop()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
