// Package main implements the HTTP API server for quickspot.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	apihttp "github.com/dsjohal14/quickspot/internal/http"
	"github.com/dsjohal14/quickspot/internal/libs/config"
	"github.com/dsjohal14/quickspot/internal/libs/obs"
	"github.com/dsjohal14/quickspot/internal/loader"
	"github.com/dsjohal14/quickspot/internal/scope/db"
	"github.com/dsjohal14/quickspot/internal/scope/textnorm"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func main() {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Init logger
	obs.InitLogger(cfg.LogLevel)
	logger := obs.Logger("api")

	store, err := initStore(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize datastore")
	}

	// Create HTTP handler
	handler := apihttp.NewHandler(store, cfg.MaxResults, logger)

	// Setup router
	r := setupRouter(handler)

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	logger.Info().Str("addr", addr).Msg("starting API server")

	if err := http.ListenAndServe(addr, r); err != nil {
		logger.Fatal().Err(err).Msg("server failed")
	}
}

func setupRouter(h *apihttp.Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Routes
	h.Routes(r)

	return r
}

// initStore loads the configured dataset and builds the datastore over it
func initStore(cfg *config.Config, logger zerolog.Logger) (*db.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	storeCfg, err := storeConfig(cfg)
	if err != nil {
		return nil, err
	}

	src := loader.Open(cfg.DataSource, cfg.DataQuery)
	logger.Info().Str("source", src.Name()).Msg("loading dataset")

	data, err := src.Load(ctx)
	if err != nil {
		return nil, err
	}

	store, err := db.New(data, storeCfg)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int("record_count", store.Len()).
		Str("key_field", store.KeyField()).
		Msg("datastore initialized")
	return store, nil
}

// storeConfig maps environment configuration onto datastore options
func storeConfig(cfg *config.Config) (db.Config, error) {
	normalizer, err := textnorm.ByName(cfg.Normalizer)
	if err != nil {
		return db.Config{}, err
	}

	storeCfg := db.Config{
		KeyValue:                   db.Literal(cfg.KeyValue),
		DisableOccurrenceWeighting: cfg.DisableOccurrenceWeighting,
		Normalizer:                 normalizer,
	}
	if cfg.SearchOn != nil {
		storeCfg.SearchOn = db.Literal(cfg.SearchOn)
	}
	return storeCfg, nil
}
