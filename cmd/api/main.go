package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/raviminds/estate-crm/internal/assignment"
	"github.com/raviminds/estate-crm/internal/infra/database"
	"github.com/raviminds/estate-crm/internal/infra/http/handlers"
	"github.com/raviminds/estate-crm/internal/infra/http/middleware"
	"github.com/raviminds/estate-crm/internal/infra/integration/meta"
	"github.com/raviminds/estate-crm/internal/infra/mail"
	"github.com/raviminds/estate-crm/internal/infra/queue"
	"github.com/raviminds/estate-crm/internal/usecase"
)

func main() {
	godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		logger.Fatal("rabbitmq connection failed", zap.Error(err))
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// Repositories
	leadRepo := database.NewLeadRepository(db)
	salespersonRepo := database.NewSalespersonRepository(db)
	companyRepo := database.NewCompanyRepository(db)
	auditRepo := database.NewAuditRepository(db)

	// Gateways and adapters
	assigner := assignment.NewAssigner(salespersonRepo, leadRepo, logger)
	metaClient := meta.NewClient(envOr("META_GRAPH_URL", meta.DefaultBaseURL), 10*time.Second)
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"),
		envOrInt("MAIL_PORT", 587),
		os.Getenv("MAIL_USER"),
		os.Getenv("MAIL_PASS"),
		os.Getenv("MAIL_FROM"),
	)

	// Worker consuming assignment notifications
	worker := queue.NewWorker(rabbitMQ.Ch, salespersonRepo, mailSender, logger)
	go func() {
		if err := worker.Start(queue.QueueName); err != nil {
			logger.Error("notification worker stopped", zap.Error(err))
		}
	}()

	// UseCases
	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo, assigner, producer, logger)
	importUC := usecase.NewImportLeadsUseCase(
		leadRepo, companyRepo, auditRepo, assigner, nil, producer, mailSender, logger,
	)
	metaUC := usecase.NewMetaWebhookUseCase(
		leadRepo, companyRepo, auditRepo, assigner, metaClient, producer, logger,
	)
	googleUC := usecase.NewGoogleWebhookUseCase(leadRepo, companyRepo, assigner, producer, logger)

	// Handlers
	leadHandler := handlers.NewLeadHandler(createLeadUC, leadRepo, auditRepo, logger)
	importHandler := handlers.NewImportHandler(importUC, logger)
	metaHandler := handlers.NewMetaWebhookHandler(metaUC, os.Getenv("META_VERIFY_TOKEN"), logger)
	googleHandler := handlers.NewGoogleWebhookHandler(googleUC, logger)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Post("/leads", leadHandler.Create)
	r.Get("/leads", leadHandler.List)
	r.Get("/leads/stats", leadHandler.Stats)
	r.Patch("/leads/{id}/status", leadHandler.UpdateStatus)
	r.Patch("/leads/{id}/project-property", leadHandler.AssignProjectProperty)
	r.Post("/leads/import", importHandler.Handle)

	r.Get("/webhooks/meta", metaHandler.Verify)
	r.Post("/webhooks/meta", metaHandler.Deliver)
	r.Post("/webhooks/google", googleHandler.Deliver)

	r.Get("/healthz", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := ":" + envOr("PORT", "8080")
	logger.Info("lead ingestion API listening", zap.String("port", port))
	if err := http.ListenAndServe(port, r); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
