package main

import (
	"context"
	"database/sql"
	"eld-trip-service/internal/adapters/cache"
	"eld-trip-service/internal/adapters/repositories"
	"eld-trip-service/internal/adapters/routing"
	"eld-trip-service/internal/api"
	"eld-trip-service/internal/config"
	"eld-trip-service/internal/hos"
	"eld-trip-service/internal/platform/db"
	"eld-trip-service/internal/platform/logging"
	"eld-trip-service/internal/ports"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// store bundles the persistence adapters selected by DB_DRIVER.
type store struct {
	repo     ports.TripRepository
	geocodes ports.GeocodeCache
	routes   ports.RouteCache
	close    func()
}

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, Nominatim, OSRM) behind ports and starts the HTTP server.
func main() {
	loaded := config.LoadDotEnv()
	cfg := config.Load()

	logger := logging.NewStructuredLogger(os.Stdout, logging.ParseLevel(cfg.LogLevel))
	slog.SetDefault(logger)
	if !loaded {
		logger.Info("no .env file found, using environment variables")
	}

	if err := run(cfg, logger); err != nil {
		logging.LogError(logger, "server stopped", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithLogger(ctx, logger)

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.close()

	if cfg.SeedPath != "" {
		n, err := repositories.SeedFromJSON(ctx, st.repo, cfg.SeedPath)
		if err != nil {
			return err
		}
		logger.Info("seeded trips", slog.Int("count", n), slog.String("path", cfg.SeedPath))
	}

	// Nominatim's usage policy allows one request per second per client.
	geoOpts := routing.DefaultClientOptions()
	geoOpts.UserAgent = cfg.UserAgent
	geoOpts.Timeout = cfg.HTTPTimeout
	geoOpts.RequestsPerSecond = cfg.GeocodeRPS

	geocoder, err := routing.NewCachedGeocoder(
		routing.NewNominatimGeocoder(cfg.NominatimURL, geoOpts),
		st.geocodes,
		cfg.GeocodeTTL,
	)
	if err != nil {
		return fmt.Errorf("build geocoder: %w", err)
	}

	routeOpts := routing.DefaultClientOptions()
	routeOpts.UserAgent = cfg.UserAgent
	routeOpts.Timeout = cfg.HTTPTimeout

	routes, err := routing.NewOSRMRouteProvider(cfg.OSRMURL, routeOpts, geocoder, st.routes)
	if err != nil {
		return fmt.Errorf("build route provider: %w", err)
	}

	router := api.NewRouter(api.Deps{
		Repo:           st.repo,
		Routes:         routes,
		Engine:         hos.NewDefaultEngine(),
		Logger:         logger,
		CORSOrigins:    cfg.CORSOrigins,
		RateLimitRPS:   cfg.RateLimitRPS,
		EnableFuelStop: cfg.EnableFuelStop,
	})

	// Timeouts are tuned for cold-cache trip planning (external API latency).
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", srv.Addr), slog.String("db_driver", cfg.DBDriver))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openStore(ctx context.Context, cfg config.Config) (*store, error) {
	switch cfg.DBDriver {
	case "sqlite":
		conn, err := db.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		if err := repositories.InitSchema(conn); err != nil {
			_ = conn.Close()
			return nil, err
		}
		return &store{
			repo:     repositories.NewSqliteTripRepository(conn),
			geocodes: cache.NewSqliteGeocodeCache(conn),
			routes:   cache.NewSqliteRouteCache(conn),
			close:    func() { _ = conn.Close() },
		}, nil

	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, errors.New("DATABASE_URL is required when DB_DRIVER=postgres")
		}

		conn, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := repositories.InitPostgresSchema(conn); err != nil {
			_ = conn.Close()
			return nil, err
		}

		pool, err := db.OpenPool(ctx, cfg.DatabaseURL)
		if err != nil {
			_ = conn.Close()
			return nil, err
		}

		return &store{
			repo:     repositories.NewPostgresTripRepository(pool),
			geocodes: cache.NewSQLGeocodeCache(conn),
			routes:   cache.NewSQLRouteCache(conn),
			close:    closeAll(conn, pool.Close),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want sqlite or postgres)", cfg.DBDriver)
	}
}

func closeAll(conn *sql.DB, closePool func()) func() {
	return func() {
		closePool()
		_ = conn.Close()
	}
}
