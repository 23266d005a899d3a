package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"perfeval/internal/config"
	"perfeval/internal/db"
	"perfeval/internal/domain/access"
	"perfeval/internal/domain/audit"
	"perfeval/internal/domain/auth"
	"perfeval/internal/domain/employee"
	"perfeval/internal/domain/evaluation"
	"perfeval/internal/domain/kpi"
	"perfeval/internal/domain/objection"
	"perfeval/internal/domain/period"
	"perfeval/internal/domain/reports"
	audithandler "perfeval/internal/transport/http/handlers/audit"
	authhandler "perfeval/internal/transport/http/handlers/auth"
	employeehandler "perfeval/internal/transport/http/handlers/employee"
	evaluationhandler "perfeval/internal/transport/http/handlers/evaluation"
	kpihandler "perfeval/internal/transport/http/handlers/kpi"
	objectionhandler "perfeval/internal/transport/http/handlers/objection"
	periodhandler "perfeval/internal/transport/http/handlers/period"
	reportshandler "perfeval/internal/transport/http/handlers/reports"
	"perfeval/internal/transport/http/middleware"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}

	if err := db.Seed(ctx, pool, cfg); err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	scoper := access.NewScoper(access.NewStore(pool))
	auditSvc := audit.New(pool)
	employeeStore := employee.NewStore(pool)
	kpiService := kpi.NewService(kpi.NewStore(pool))
	evaluationService := evaluation.NewService(evaluation.NewStore(pool), kpiService, scoper)
	objectionService := objection.NewService(objection.NewStore(pool), scoper)
	reportsService := reports.NewService(reports.NewStore(pool))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(auth.NewStore(pool), employeeStore, cfg.JWTSecret).RegisterRoutes(r)
		kpihandler.NewHandler(kpiService, employeeStore, scoper, auditSvc).RegisterRoutes(r)
		periodhandler.NewHandler(period.NewStore(pool), auditSvc).RegisterRoutes(r)
		employeehandler.NewHandler(employeeStore, scoper).RegisterRoutes(r)
		evaluationhandler.NewHandler(evaluationService, auditSvc).RegisterRoutes(r)
		objectionhandler.NewHandler(objectionService, auditSvc).RegisterRoutes(r)
		reportshandler.NewHandler(reportsService).RegisterRoutes(r)
		audithandler.NewHandler(auditSvc).RegisterRoutes(r)
	})

	log.Printf("performance evaluation server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
