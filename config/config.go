package config

import (
	"log"
	"os"
	"time"
)

// FallbackJWTSecret is used when JWT_SECRET is unset. It exists so the server
// comes up in development without configuration; running production on it is
// a known weakness, hence the loud warning in Load.
const FallbackJWTSecret = "fallback_secret_key_for_development"

const DefaultTokenLifetime = 30 * 24 * time.Hour

type Config struct {
	Port          string
	PostgresURL   string
	JWTSecret     string
	TokenLifetime time.Duration
}

// Load reads configuration from the environment. Call godotenv.Load first if
// a .env file should be honored.
func Load() Config {
	cfg := Config{
		Port:          os.Getenv("PORT"),
		PostgresURL:   os.Getenv("POSTGRES_URL"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		TokenLifetime: DefaultTokenLifetime,
	}

	if cfg.Port == "" {
		cfg.Port = "5000"
	}

	if cfg.JWTSecret == "" {
		log.Println("WARNING: JWT_SECRET is not set, using the insecure development fallback")
		cfg.JWTSecret = FallbackJWTSecret
	}

	if lifetime := os.Getenv("JWT_LIFETIME"); lifetime != "" {
		d, err := time.ParseDuration(lifetime)
		if err != nil {
			log.Printf("Invalid JWT_LIFETIME %q, keeping default: %v", lifetime, err)
		} else {
			cfg.TokenLifetime = d
		}
	}

	return cfg
}
