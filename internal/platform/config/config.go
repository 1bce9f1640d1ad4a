package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Market rate providers accepted by MARKET_RATES_PROVIDER.
const (
	RatesProviderNone   = "none"
	RatesProviderHTTP   = "http"
	RatesProviderScrape = "scrape"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	StorageDriver  string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	RequireAuth        bool
	JWTSecret          string
	JWTIssuer          string
	CORSAllowedOrigins []string
	RateLimit          string
	PostHogAPIKey      string

	// BusinessLocation decides which calendar month an invoice belongs to and where report days start.
	BusinessLocation     *time.Location
	InvoiceRetryAttempts int

	MarketRatesProvider       string
	MarketRatesGoldURL        string
	MarketRatesSilverURL      string
	MarketRatesScrapeURL      string
	MarketRatesScrapeSelector string
	MarketRatesTimeout        time.Duration
	MarketRatesCacheTTL       time.Duration

	// Cron specs with a seconds field; empty disables the job.
	ReconcileSchedule    string
	RatesRefreshSchedule string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("STORAGE_DRIVER", StoragePostgres)
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", true)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("REQUIRE_AUTH", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "jewel-backoffice")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("BUSINESS_TIMEZONE", "Asia/Kolkata")
	viper.SetDefault("INVOICE_RETRY_ATTEMPTS", 3)
	viper.SetDefault("MARKET_RATES_PROVIDER", RatesProviderNone)
	viper.SetDefault("MARKET_RATES_GOLD_URL", "")
	viper.SetDefault("MARKET_RATES_SILVER_URL", "")
	viper.SetDefault("MARKET_RATES_SCRAPE_URL", "")
	viper.SetDefault("MARKET_RATES_SCRAPE_SELECTOR", "table tr")
	viper.SetDefault("MARKET_RATES_TIMEOUT", "5s")
	viper.SetDefault("MARKET_RATES_CACHE_TTL", "10m")
	viper.SetDefault("RECONCILE_SCHEDULE", "0 */15 * * * *")
	viper.SetDefault("RATES_REFRESH_SCHEDULE", "0 */10 * * * *")

	// Actual environment variables override the .env file and the defaults above.
	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	cfg.StorageDriver = strings.ToLower(viper.GetString("STORAGE_DRIVER"))
	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StorageMemory:
		log.Println("Warning: STORAGE_DRIVER=memory, data will not survive a restart.")
	default:
		log.Printf("Warning: Unknown STORAGE_DRIVER ('%s'). Defaulting to %s.\n", cfg.StorageDriver, StoragePostgres)
		cfg.StorageDriver = StoragePostgres
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080" // Default port
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")

	cfg.RequireAuth = viper.GetBool("REQUIRE_AUTH")
	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.PostHogAPIKey = viper.GetString("POSTHOG_API_KEY")

	tz := viper.GetString("BUSINESS_TIMEZONE")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("Warning: Invalid value for BUSINESS_TIMEZONE ('%s'). Defaulting to UTC.\n", tz)
		loc = time.UTC
	}
	cfg.BusinessLocation = loc

	cfg.InvoiceRetryAttempts = viper.GetInt("INVOICE_RETRY_ATTEMPTS")
	if cfg.InvoiceRetryAttempts < 1 {
		log.Printf("Warning: Invalid value for INVOICE_RETRY_ATTEMPTS (%d). Defaulting to 3.\n", cfg.InvoiceRetryAttempts)
		cfg.InvoiceRetryAttempts = 3
	}

	cfg.MarketRatesProvider = strings.ToLower(viper.GetString("MARKET_RATES_PROVIDER"))
	cfg.MarketRatesGoldURL = viper.GetString("MARKET_RATES_GOLD_URL")
	cfg.MarketRatesSilverURL = viper.GetString("MARKET_RATES_SILVER_URL")
	cfg.MarketRatesScrapeURL = viper.GetString("MARKET_RATES_SCRAPE_URL")
	cfg.MarketRatesScrapeSelector = viper.GetString("MARKET_RATES_SCRAPE_SELECTOR")
	cfg.MarketRatesTimeout = durationOrDefault("MARKET_RATES_TIMEOUT", 5*time.Second)
	cfg.MarketRatesCacheTTL = durationOrDefault("MARKET_RATES_CACHE_TTL", 10*time.Minute)

	cfg.ReconcileSchedule = strings.TrimSpace(viper.GetString("RECONCILE_SCHEDULE"))
	cfg.RatesRefreshSchedule = strings.TrimSpace(viper.GetString("RATES_REFRESH_SCHEDULE"))

	return cfg, nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def)
		}
		return def
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
