package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"

	"symptom-voice-agent/internal/agent"
	"symptom-voice-agent/internal/config"
	"symptom-voice-agent/internal/search"
	"symptom-voice-agent/internal/symptom"
)

func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	// 2. Run history (optional). Without a database the pipeline still
	// serves requests, it just keeps no record of them.
	var repo symptom.Repository
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err == nil {
			err = db.Ping()
		}
		if err != nil {
			log.Printf("Could not connect to DB: %v. Continuing without run history.", err)
		} else {
			log.Println("Connected to Database.")
			m, err := migrate.New("file://migrations", cfg.DatabaseURL)
			if err != nil {
				log.Printf("Migration init failed: %v", err)
			} else if err := m.Up(); err != nil && err != migrate.ErrNoChange {
				log.Printf("Migration up failed: %v", err)
			} else {
				log.Println("Migrations applied successfully!")
			}
			repo = symptom.NewRepository(db)
		}
	}

	// 3. Clients and services
	completionClient := agent.NewOpenAIClient(cfg.OpenAIKey, cfg.OpenAIModel)
	searchClient := search.NewClient(cfg.SearchAPIKey)

	svc := symptom.NewService(completionClient, searchClient, cfg.AmazonDomain, repo)
	handler := symptom.NewHandler(svc, repo)

	// 4. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS for the call platform's dashboard
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization")
			if req.Method == "OPTIONS" {
				return
			}
			next.ServeHTTP(w, req)
		})
	})

	symptom.RegisterRoutes(r, handler)

	fmt.Printf("Server starting on port %s...\n", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
