package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverNeo4j    = "neo4j"
	DriverMemory   = "memory"
)

// Config contains runtime settings for the server and CLI
type Config struct {
	LogLevel string
	Host     string // default 0.0.0.0
	Port     string // default PORT env or 8080

	Store struct {
		Driver      string
		SQLitePath  string
		PostgresDSN string
	}
	Neo4j struct {
		URI      string
		Username string
		Password string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
		TTL      time.Duration
	}
	Adzuna struct {
		AppID   string
		AppKey  string
		Country string
	}
	Ingest struct {
		Providers []string
		Query     string
		Location  string
		Interval  time.Duration
	}

	NATSURL               string
	SheetsCredentialsPath string
	OTLPEndpoint          string
	AnalyzeInterval       time.Duration
	HeuristicsFile        string
}

// Load populates config from environment variables. A .env file in the
// working directory is read first when present; real environment wins.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		LogLevel: env("LOG_LEVEL", "info"),
		Host:     env("HTTP_HOST", "0.0.0.0"),
		Port:     env("PORT", "8080"),
	}

	var problems []string

	cfg.Store.Driver = strings.ToLower(env("STORE_DRIVER", DriverSQLite))
	cfg.Store.SQLitePath = env("SQLITE_PATH", "jobmarket.db")
	cfg.Store.PostgresDSN = os.Getenv("POSTGRES_DSN")

	cfg.Neo4j.URI = os.Getenv("NEO4J_URI")
	cfg.Neo4j.Username = os.Getenv("NEO4J_USERNAME")
	cfg.Neo4j.Password = os.Getenv("NEO4J_PASSWORD")

	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
	if v := os.Getenv("REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			problems = append(problems, fmt.Sprintf("REDIS_DB: %q is not an integer", v))
		}
		cfg.Redis.DB = n
	}
	cfg.Redis.TTL = duration("CACHE_TTL", 5*time.Minute, &problems)

	cfg.Adzuna.AppID = os.Getenv("ADZUNA_APP_ID")
	cfg.Adzuna.AppKey = os.Getenv("ADZUNA_APP_KEY")
	cfg.Adzuna.Country = env("ADZUNA_COUNTRY", "us")

	cfg.Ingest.Providers = list(env("INGEST_PROVIDERS", "mock"))
	cfg.Ingest.Query = env("INGEST_QUERY", "software developer")
	cfg.Ingest.Location = os.Getenv("INGEST_LOCATION")
	cfg.Ingest.Interval = duration("INGEST_INTERVAL", 6*time.Hour, &problems)

	cfg.NATSURL = os.Getenv("NATS_URL")
	cfg.SheetsCredentialsPath = os.Getenv("GOOGLE_SHEETS_CREDENTIALS_PATH")
	cfg.OTLPEndpoint = os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	cfg.AnalyzeInterval = duration("ANALYZE_INTERVAL", time.Hour, &problems)
	cfg.HeuristicsFile = os.Getenv("HEURISTICS_FILE")

	var missingVars []string

	switch cfg.Store.Driver {
	case DriverSQLite, DriverMemory:
	case DriverPostgres:
		if cfg.Store.PostgresDSN == "" {
			missingVars = append(missingVars, "POSTGRES_DSN")
		}
	case DriverNeo4j:
		if cfg.Neo4j.URI == "" {
			missingVars = append(missingVars, "NEO4J_URI")
		}
		if cfg.Neo4j.Username == "" {
			missingVars = append(missingVars, "NEO4J_USERNAME")
		}
		if cfg.Neo4j.Password == "" {
			missingVars = append(missingVars, "NEO4J_PASSWORD")
		}
	default:
		problems = append(problems, fmt.Sprintf("STORE_DRIVER: unknown driver %q", cfg.Store.Driver))
	}

	for _, p := range cfg.Ingest.Providers {
		switch p {
		case "mock":
		case "adzuna":
			if cfg.Adzuna.AppID == "" {
				missingVars = append(missingVars, "ADZUNA_APP_ID")
			}
			if cfg.Adzuna.AppKey == "" {
				missingVars = append(missingVars, "ADZUNA_APP_KEY")
			}
		default:
			problems = append(problems, fmt.Sprintf("INGEST_PROVIDERS: unknown provider %q", p))
		}
	}

	if len(missingVars) > 0 {
		problems = append(problems, "missing required environment variables: "+strings.Join(missingVars, ", "))
	}
	if len(problems) > 0 {
		return cfg, fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}

	return cfg, nil
}

func env(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func duration(key string, fallback time.Duration, problems *[]string) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		*problems = append(*problems, fmt.Sprintf("%s: %q is not a positive duration", key, v))
		return fallback
	}
	return d
}

func list(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
