package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// RateLimit is a ulule/limiter formatted rate, e.g. "100-M".
	RateLimit string

	// Treasury write conflicts are retried this many times with a growing
	// backoff before an error is surfaced.
	TreasuryMaxRetries   int
	TreasuryRetryBackoff time.Duration

	// Credentials for the admin account seeded on an empty database. An
	// empty password disables the seeding.
	BootstrapAdminUsername string
	BootstrapAdminPassword string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "eskan-sales-app")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("TREASURY_MAX_RETRIES", 3)
	viper.SetDefault("TREASURY_RETRY_BACKOFF", "50ms")
	viper.SetDefault("BOOTSTRAP_ADMIN_USERNAME", "admin")
	viper.SetDefault("BOOTSTRAP_ADMIN_PASSWORD", "admin123")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION (%q). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	cfg.TreasuryMaxRetries = viper.GetInt("TREASURY_MAX_RETRIES")
	backoffStr := viper.GetString("TREASURY_RETRY_BACKOFF")
	backoff, err := time.ParseDuration(backoffStr)
	if err != nil {
		backoff = 50 * time.Millisecond
		log.Printf("Warning: Invalid value for TREASURY_RETRY_BACKOFF (%q). Defaulting to %s.\n", backoffStr, backoff)
	}
	cfg.TreasuryRetryBackoff = backoff

	cfg.BootstrapAdminUsername = viper.GetString("BOOTSTRAP_ADMIN_USERNAME")
	cfg.BootstrapAdminPassword = viper.GetString("BOOTSTRAP_ADMIN_PASSWORD")
	if cfg.BootstrapAdminPassword == "admin123" {
		log.Println("Warning: BOOTSTRAP_ADMIN_PASSWORD not set. Using default insecure password.")
	}

	return cfg, nil
}
