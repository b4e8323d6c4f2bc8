package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the service configuration resolved from the environment.
type Config struct {
	Port           string
	DBDriver       string
	DBPath         string
	DatabaseURL    string
	SeedPath       string
	NominatimURL   string
	OSRMURL        string
	UserAgent      string
	GeocodeRPS     float64
	GeocodeTTL     time.Duration
	HTTPTimeout    time.Duration
	RateLimitRPS   int
	CORSOrigins    []string
	LogLevel       string
	EnableFuelStop bool
}

// LoadDotEnv reads .env if present. It reports whether a file was loaded.
func LoadDotEnv(paths ...string) bool {
	return godotenv.Load(paths...) == nil
}

// Load resolves the configuration from environment variables.
func Load() Config {
	return Config{
		Port:           Get("PORT", "8080"),
		DBDriver:       strings.ToLower(Get("DB_DRIVER", "sqlite")),
		DBPath:         Get("DB_PATH", "data/app.db"),
		DatabaseURL:    Get("DATABASE_URL", ""),
		SeedPath:       Get("SEED_PATH", ""),
		NominatimURL:   Get("NOMINATIM_URL", "https://nominatim.openstreetmap.org"),
		OSRMURL:        Get("OSRM_URL", "https://router.project-osrm.org"),
		UserAgent:      Get("USER_AGENT", "tripcop-eld-planner"),
		GeocodeRPS:     GetFloat("GEOCODE_RPS", 1),
		GeocodeTTL:     GetDuration("GEOCODE_CACHE_TTL", 24*time.Hour),
		HTTPTimeout:    GetDuration("HTTP_TIMEOUT", 15*time.Second),
		RateLimitRPS:   GetInt("RATE_LIMIT_RPS", 10),
		CORSOrigins:    GetList("CORS_ORIGINS", []string{"http://localhost:5173"}),
		LogLevel:       Get("LOG_LEVEL", "info"),
		EnableFuelStop: GetBool("ENABLE_FUEL_STOP", true),
	}
}

func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	n, err := strconv.Atoi(Get(key, ""))
	if err != nil {
		return fallback
	}
	return n
}

func GetFloat(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(Get(key, ""), 64)
	if err != nil {
		return fallback
	}
	return f
}

func GetBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(Get(key, ""))
	if err != nil {
		return fallback
	}
	return b
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(Get(key, ""))
	if err != nil {
		return fallback
	}
	return d
}

// GetList splits a comma-separated value, dropping empty items.
func GetList(key string, fallback []string) []string {
	raw := Get(key, "")
	if raw == "" {
		return fallback
	}

	out := make([]string, 0, 4)
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
