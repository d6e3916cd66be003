package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"skillmatch/db"
	"skillmatch/db/migrations"
	"skillmatch/internal/blob"
	"skillmatch/internal/config"
	"skillmatch/internal/handlers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	dbConn, err := sqlx.Connect("postgres", cfg.PostgresConn)
	if err != nil {
		logger.Fatal("Cannot connect to DB", zap.Error(err))
	}
	defer dbConn.Close()

	if err := migrations.Run(dbConn, cfg.MigrationsDir); err != nil {
		logger.Fatal("Migrations failed", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logger.Fatal("Cannot create upload dir", zap.String("dir", cfg.UploadDir), zap.Error(err))
	}

	blobs, err := blob.NewS3Store(context.Background(), cfg.AWSRegion, cfg.BucketName)
	if err != nil {
		logger.Fatal("Cannot init blob store", zap.Error(err))
	}

	store := db.NewStorage(dbConn)
	h := handlers.NewHandler(store, blobs, logger, cfg.UploadDir, handlers.AuthConfig{
		Region:     cfg.AWSRegion,
		UserPoolID: cfg.UserPoolID,
		ClientID:   cfg.ClientID,
	})

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(handlers.MetricsMiddleware)

	r.Get("/ping", h.PingHandler)
	r.Get("/config", h.ConfigHandler)
	r.Handle("/metrics", promhttp.Handler())

	// projects
	r.Get("/projects", h.GetProjectsHandler)
	r.Post("/projects", h.CreateProjectHandler)
	r.Get("/projects/{projectId}", h.GetProjectHandler)
	r.Put("/projects/{projectId}/progress", h.UpdateProjectProgressHandler)
	r.Get("/projectsfreelancer", h.GetFreelancerProjectsHandler)

	// applications
	r.Post("/apply", h.ApplyHandler)
	r.Get("/applications", h.GetFreelancerApplicationsHandler)
	r.Get("/applications/{projectId}", h.GetProjectApplicantsHandler)
	r.Put("/applications/confirm/{applicationId}", h.ConfirmApplicantHandler)

	// tasks
	r.Get("/projects/{projectId}/tasks", h.GetProjectTasksHandler)
	r.Post("/projects/{projectId}/tasks", h.CreateTaskHandler)
	r.Put("/tasks/{taskId}/status", h.UpdateTaskStatusHandler)
	r.Delete("/tasks/{taskId}", h.DeleteTaskHandler)

	// inbox
	r.Post("/inbox/send-message", h.SendMessageHandler)
	r.Get("/inbox/company-messages", h.GetCompanyMessagesHandler)
	r.Put("/inbox/mark-read/{messageId}", h.MarkMessageReadHandler)

	srv := &http.Server{
		Addr:    cfg.ServerAddress,
		Handler: r,
	}

	go func() {
		logger.Info("Starting server", zap.String("addr", cfg.ServerAddress))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Shutdown failed", zap.Error(err))
	}
}
