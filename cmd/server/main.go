package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"

	"otcwise-backend/internal/auth"
	"otcwise-backend/internal/config"
	"otcwise-backend/internal/consent"
	"otcwise-backend/internal/platform/logger"
	"otcwise-backend/internal/triage"
)

func main() {
	// 1. Configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Server.Mode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// 2. Knowledge base. The process must not serve without it.
	kb, err := triage.LoadKnowledgeBase(cfg.Triage.KnowledgeBasePath)
	if err != nil {
		log.Fatal("failed to load knowledge base", "path", cfg.Triage.KnowledgeBasePath, "error", err)
	}
	log.Info("knowledge base loaded", "path", cfg.Triage.KnowledgeBasePath)

	// 3. Storage
	var db *sql.DB
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err == nil {
			err = db.Ping()
		}
		if err == nil {
			break
		}
		log.Info("waiting for database", "attempt", i+1)
		time.Sleep(2 * time.Second)
	}

	var consentStore consent.Store
	var recorder triage.CheckRecorder
	if err != nil {
		// Consent gating still holds per process; records just do not
		// survive a restart.
		log.Warn("database unavailable, using in-memory consent store", "error", err)
		consentStore = consent.NewMemoryStore()
	} else {
		log.Info("connected to database")
		m, err := migrate.New(cfg.Triage.MigrationsURL, cfg.DatabaseURL)
		if err != nil {
			log.Fatal("migration init failed", "error", err)
		}
		if err := m.Up(); err != nil && err != migrate.ErrNoChange {
			log.Fatal("migration up failed", "error", err)
		}
		log.Info("migrations applied")

		consentStore = consent.NewPostgresStore(db)
		recorder = triage.NewRecorder(db)
	}

	if cfg.RedisAddr != "" {
		rdb := goredis.NewClient(&goredis.Options{
			Addr:        cfg.RedisAddr,
			DialTimeout: 5 * time.Second,
		})
		consentStore = consent.NewCachedStore(log, consentStore, rdb)
		log.Info("consent cache enabled", "addr", cfg.RedisAddr)
	}

	// 4. Services
	consentSvc := consent.NewService(log, consentStore)
	triageSvc := triage.NewService(log, kb, consentSvc, recorder)

	consentHandler := consent.NewHandler(consentSvc)
	triageHandler := triage.NewHandler(triageSvc)

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret)
	authMiddleware := auth.NewMiddleware(log, verifier)

	// 5. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS for frontend
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
			if r.Method == "OPTIONS" {
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/healthcheck", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth)
		consent.RegisterRoutes(r, consentHandler)
		triage.RegisterRoutes(r, triageHandler)
	})

	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}

	log.Info("server starting", "port", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
