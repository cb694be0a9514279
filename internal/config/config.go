package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Cheertaboi/clinic-fees-service/internal/logger"
	"github.com/Cheertaboi/clinic-fees-service/internal/pricing"
)

const (
	SourceAPI      = "api"
	SourcePostgres = "postgres"

	defaultAddr         = ":8080"
	defaultAPIBase      = "https://api.tend.nz/marketing"
	defaultFetchTimeout = 10 * time.Second
)

type Config struct {
	ServerAddr   string
	PriceSource  string
	APIBaseURL   string
	FetchTimeout time.Duration
	PolicyName   string
}

// LoadEnv reads a .env file from the working directory when one exists.
func LoadEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil {
		logger.LogInfo("No .env file loaded (%v), using system environment variables", err)
		return
	}
	logger.LogInfo("Loaded environment variables from %s", strings.Join(files, ", "))
}

// Load builds the service configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		ServerAddr:   getenv("SERVER_ADDR", defaultAddr),
		PriceSource:  strings.ToLower(getenv("PRICE_SOURCE", SourceAPI)),
		APIBaseURL:   strings.TrimRight(getenv("MARKETING_API_BASE", defaultAPIBase), "/"),
		FetchTimeout: defaultFetchTimeout,
		PolicyName:   getenv("PRICING_POLICY", pricing.DefaultPolicyName),
	}

	if v := os.Getenv("FETCH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid FETCH_TIMEOUT %q", v)
		}
		cfg.FetchTimeout = d
	}

	switch cfg.PriceSource {
	case SourceAPI, SourcePostgres:
	default:
		return Config{}, fmt.Errorf("invalid PRICE_SOURCE %q: want %q or %q", cfg.PriceSource, SourceAPI, SourcePostgres)
	}

	if _, err := pricing.LookupPolicy(cfg.PolicyName); err != nil {
		logger.LogWarn("PRICING_POLICY %q not recognised, using %q", cfg.PolicyName, pricing.DefaultPolicyName)
		cfg.PolicyName = pricing.DefaultPolicyName
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
