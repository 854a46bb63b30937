package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"optigenius/internal/analysis"
	"optigenius/internal/config"
	"optigenius/internal/entity"
	"optigenius/internal/fetcher"
	server "optigenius/internal/http"
	"optigenius/internal/insights"
	"optigenius/internal/jobs"
	"optigenius/internal/migrate"
	"optigenius/internal/store"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	configPath := flag.String("config", "config/config.yaml", "path to config file")
	flag.Parse()

	cfg := config.Load(*configPath)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))

	// Storage is optional: with no DSN the service still analyzes, it
	// just cannot save reports.
	var st *store.Store
	if cfg.Database.DSN != "" {
		if err := migrate.Run(cfg.Database.DSN); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}

		db, err := sql.Open("pgx", cfg.Database.DSN)
		if err != nil {
			log.Fatalf("open db failed: %v", err)
		}
		db.SetMaxOpenConns(20)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)

		st = store.New(db)
	} else {
		logger.Warn("no database configured, report storage disabled")
	}

	timeout := time.Duration(cfg.Fetcher.TimeoutMs) * time.Millisecond
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	httpFetcher := fetcher.NewHTTPFetcher(timeout, cfg.Fetcher.UserAgent, cfg.Robots.Respect)

	var rodFetcher fetcher.Fetcher
	if cfg.Rod.Enabled {
		rodFetcher = fetcher.NewRodFetcher(timeout)
	}

	var insightsProvider analysis.InsightsProvider
	if cfg.Insights.Enabled {
		gen, err := insights.NewGenerator(cfg.Insights, logger)
		if err != nil {
			logger.Warn("insights disabled", "error", err)
		} else {
			insightsProvider = gen
		}
	}

	entityOpts := entity.Options{
		TextLimit:      cfg.Analysis.EntityTextLimit,
		RawPerType:     cfg.Analysis.EntitiesPerType,
		DisplayPerType: cfg.Analysis.EntityDisplayCap,
		MergedCap:      cfg.Analysis.EntityMergedCap,
	}

	analyzer := analysis.NewService(httpFetcher, rodFetcher, insightsProvider, entityOpts, logger)

	if st != nil && cfg.Retention.Enabled {
		go jobs.RunRetentionLoop(context.Background(), cfg, st, logger)
	}

	s := server.NewServer(cfg, analyzer, st, logger)
	if err := s.Listen(); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
