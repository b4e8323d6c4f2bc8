package api

import (
	"eld-trip-service/internal/api/handlers"
	"eld-trip-service/internal/hos"
	"eld-trip-service/internal/ports"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/klauspost/compress/gzhttp"
)

type Deps struct {
	Repo           ports.TripRepository
	Routes         ports.RouteProvider
	Engine         *hos.Engine
	Logger         *slog.Logger
	CORSOrigins    []string
	RateLimitRPS   int
	EnableFuelStop bool
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(d Deps) http.Handler {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	health := &handlers.HealthHandler{Repo: d.Repo}
	trips := &handlers.TripHandler{
		Repo:           d.Repo,
		Router:         d.Routes,
		Engine:         d.Engine,
		EnableFuelStop: d.EnableFuelStop,
	}
	schedule := &handlers.HOSHandler{Engine: d.Engine}

	r := chi.NewRouter()
	r.Use(requestContext(logger))
	r.Use(loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", requestIDHeader},
		ExposedHeaders:   []string{requestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", health.Health)

	r.Group(func(r chi.Router) {
		r.Use(newRateLimiter(d.RateLimitRPS).middleware)

		r.Post("/api/trips/create/", trips.Create)
		r.Get("/api/trips", trips.List)
		r.Get("/api/trips/{id}", trips.Get)
		r.Post("/api/hos/simulate", schedule.Simulate)
	})

	return gzhttp.GzipHandler(r)
}
