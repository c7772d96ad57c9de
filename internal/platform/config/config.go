package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// DeliverySettlementLagDays is how many days after a delivery-platform
	// sale the payout falls due.
	DeliverySettlementLagDays int

	// RestDays are weekdays the store does not open. Retroactive closings
	// for these days are rejected.
	RestDays []time.Weekday

	CORSAllowedOrigins []string
	PosthogAPIKey      string `mapstructure:"POSTHOG_API_KEY"`
}

var weekdaysByName = map[string]time.Weekday{
	"SUNDAY":    time.Sunday,
	"MONDAY":    time.Monday,
	"TUESDAY":   time.Tuesday,
	"WEDNESDAY": time.Wednesday,
	"THURSDAY":  time.Thursday,
	"FRIDAY":    time.Friday,
	"SATURDAY":  time.Saturday,
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "belafarma-backoffice")
	viper.SetDefault("DELIVERY_SETTLEMENT_LAG_DAYS", 30)
	viper.SetDefault("REST_DAYS", "SUNDAY")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("POSTHOG_API_KEY", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		if jwtExpiryStr != "" {
			log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration.String())
		}
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.DeliverySettlementLagDays = viper.GetInt("DELIVERY_SETTLEMENT_LAG_DAYS")
	if cfg.DeliverySettlementLagDays <= 0 {
		cfg.DeliverySettlementLagDays = 30
		log.Printf("Warning: Invalid DELIVERY_SETTLEMENT_LAG_DAYS. Defaulting to %d.\n", cfg.DeliverySettlementLagDays)
	}

	cfg.RestDays = parseRestDays(viper.GetString("REST_DAYS"))

	cfg.CORSAllowedOrigins = splitAndTrim(viper.GetString("CORS_ALLOWED_ORIGINS"))
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	return cfg, nil
}

// parseRestDays parses a comma-separated list of weekday names. Unknown names
// are logged and skipped.
func parseRestDays(raw string) []time.Weekday {
	days := []time.Weekday{}
	for _, part := range splitAndTrim(raw) {
		day, ok := weekdaysByName[strings.ToUpper(part)]
		if !ok {
			log.Printf("Warning: Unknown rest day %q in REST_DAYS, skipping.\n", part)
			continue
		}
		days = append(days, day)
	}
	return days
}

func splitAndTrim(raw string) []string {
	parts := []string{}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
