package main

import (
	"context"
	"database/sql"
	"eld-trip-service/internal/adapters/repositories"
	"eld-trip-service/internal/config"
	"eld-trip-service/internal/platform/db"
	"eld-trip-service/internal/platform/logging"
	"eld-trip-service/internal/ports"
	"flag"
	"log/slog"
	"os"
	"strings"
)

// dbtool initializes the schema and optionally seeds demo trips.
func main() {
	config.LoadDotEnv()
	cfg := config.Load()

	driver := flag.String("driver", cfg.DBDriver, "database driver: sqlite or postgres")
	seedPath := flag.String("seed", cfg.SeedPath, "JSON file with demo trips (optional)")
	flag.Parse()

	logger := logging.NewStructuredLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))
	ctx := logging.WithLogger(context.Background(), logger)

	var (
		conn *sql.DB
		repo ports.TripRepository
		err  error
	)

	switch strings.ToLower(*driver) {
	case "sqlite":
		conn, err = db.OpenSQLite(cfg.DBPath)
		if err == nil {
			err = initSchema(logger, conn, repositories.InitSchema)
			repo = repositories.NewSqliteTripRepository(conn)
		}
	case "postgres":
		if strings.TrimSpace(cfg.DatabaseURL) == "" {
			logger.Error("DATABASE_URL is required")
			os.Exit(1)
		}
		conn, err = db.Open(cfg.DatabaseURL)
		if err == nil {
			err = initSchema(logger, conn, repositories.InitPostgresSchema)
		}
		if err == nil {
			pool, perr := db.OpenPool(ctx, cfg.DatabaseURL)
			if perr != nil {
				err = perr
				break
			}
			defer pool.Close()
			repo = repositories.NewPostgresTripRepository(pool)
		}
	default:
		logger.Error("unsupported driver", slog.String("driver", *driver))
		os.Exit(2)
	}
	if conn != nil {
		defer conn.Close()
	}
	if err != nil {
		logging.LogError(logger, "database setup failed", err)
		os.Exit(1)
	}

	if *seedPath == "" {
		return
	}

	logger.Info("seeding database", slog.String("path", *seedPath))
	n, err := repositories.SeedFromJSON(ctx, repo, *seedPath)
	if err != nil {
		logging.LogError(logger, "seeding failed", err)
		os.Exit(1)
	}
	logger.Info("seeding complete", slog.Int("created", n))
}

func initSchema(logger *slog.Logger, conn *sql.DB, initFn func(*sql.DB) error) error {
	logger.Info("initializing database schema")
	if err := initFn(conn); err != nil {
		return err
	}
	logger.Info("schema ready")
	return nil
}
