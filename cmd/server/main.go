package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Simplici0/supplydesk/internal/catalog"
	"github.com/Simplici0/supplydesk/internal/config"
	"github.com/Simplici0/supplydesk/internal/db"
	"github.com/Simplici0/supplydesk/internal/migrations"
	"github.com/Simplici0/supplydesk/internal/quotation"
	"github.com/Simplici0/supplydesk/internal/seed"
)

type server struct {
	auth       *authService
	db         *sql.DB
	catalog    *catalog.Store
	quotes     catalog.QuoteSource
	quotations *quotation.Store
	currency   string
}

func newServer(database *sql.DB, cfg config.Config) *server {
	store := catalog.NewStore(database)
	return &server{
		auth:       newAuthService(database, cfg.SessionSecret),
		db:         database,
		catalog:    store,
		quotes:     store,
		quotations: quotation.NewStore(database),
		currency:   cfg.DefaultCurrency,
	}
}

func main() {
	cfg := config.Load()
	if cfg.SessionSecret == "" && !cfg.IsDev() {
		log.Fatal("SESSION_SECRET is required outside development")
	}
	ctx := context.Background()

	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer database.Close()

	if err := migrations.Up(database); err != nil {
		log.Fatalf("failed to run database migrations: %v", err)
	}

	stats, err := seed.Run(ctx, database, seed.Config{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		Currency:      cfg.DefaultCurrency,
	})
	if err != nil {
		log.Fatalf("failed to seed database: %v", err)
	}
	if cfg.IsDev() {
		log.Printf("seed complete: %d inserts, %d updates", stats.Inserts, stats.Updates)
	}

	srv := newServer(database, cfg)

	if cfg.QuoteSource == config.QuoteSourceMongo {
		client, err := catalog.Connect(ctx, cfg.MongoURI)
		if err != nil {
			log.Fatalf("failed to connect quote source: %v", err)
		}
		defer func() {
			_ = client.Disconnect(context.Background())
		}()

		source := catalog.NewMongoQuoteSource(client, cfg.MongoDB)
		if err := source.EnsureIndexes(ctx); err != nil {
			log.Fatalf("failed to create quote indexes: %v", err)
		}
		srv.quotes = source
	}
	log.Printf("vendor quotes served from %s", cfg.QuoteSource)

	addr := ":" + cfg.Port
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           newRouter(srv),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("listening on %s", addr)
	if err := httpServer.ListenAndServe(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newRouter(srv *server) http.Handler {
	r := chi.NewRouter()
	r.Use(srv.requireSession)

	r.Get("/health", srv.handleHealth)
	r.Post("/api/login", srv.handleLogin)
	r.Post("/api/logout", srv.handleLogout)

	r.Get("/api/settings", srv.handleSettingsGet)
	r.Put("/api/settings", srv.handleSettingsUpdate)

	r.Route("/api/pricing", func(r chi.Router) {
		r.Post("/selling-price", srv.handleSellingPrice)
		r.Post("/margin", srv.handleMargin)
		r.Post("/compare", srv.handleCompare)
		r.Post("/bulk", srv.handleBulk)
		r.Post("/competitive", srv.handleCompetitive)
	})

	r.Get("/api/vendors", srv.handleVendorsList)
	r.Post("/api/vendors", srv.handleVendorsCreate)

	r.Get("/api/products", srv.handleProductsList)
	r.Post("/api/products", srv.handleProductsCreate)
	r.Post("/api/products/{id}/prices", srv.handleProductPriceCreate)
	r.Get("/api/products/{id}/comparison", srv.handleProductComparison)
	r.Get("/api/products/{id}/comparison.xlsx", srv.handleProductComparisonXLSX)
	r.Get("/api/products/{id}/comparison.pdf", srv.handleProductComparisonPDF)

	r.Get("/api/quotations", srv.handleQuotationsList)
	r.Post("/api/quotations", srv.handleQuotationsCreate)
	r.Get("/api/quotations/{id}", srv.handleQuotationGet)
	r.Get("/api/quotations/{id}/pdf", srv.handleQuotationPDF)

	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	version, err := migrations.Version(s.db)
	if err != nil {
		log.Printf("health: %v", err)
		writeError(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"schema_version": version,
	})
}
