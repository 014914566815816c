// Package config loads runtime configuration from environment variables.
package config

import (
	"os"
	"time"
)

// Config holds every runtime setting the application needs.  Fields map
// one to one onto environment variables.
type Config struct {
	Env            string // APP_ENV: dev, test or prod
	Port           string // APP_PORT: HTTP listen port
	DBUser         string
	DBPass         string
	DBHost         string
	DBPort         string
	DBName         string
	DBMaxOpen      int           // DB_MAX_OPEN_CONNS
	DBMaxIdle      int           // DB_MAX_IDLE_CONNS
	DBConnLifetime time.Duration // DB_CONN_MAX_LIFETIME
	JWTSecret      string
	AccessTTLMin   int // access token lifetime in minutes
	RefreshTTLDays int // refresh token lifetime in days
	BcryptCost     int
	AMQPURL        string // RabbitMQ connection URL, empty uses the local default
	MediaDir       string // directory for uploaded poster images
}

// Load reads configuration from the environment.  Missing required
// variables terminate the process with a fatal log message.
func Load() Config {
	return Config{
		Env:            getenv("APP_ENV", "dev"),
		Port:           getenv("APP_PORT", "8080"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		DBMaxOpen:      envInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdle:      envInt("DB_MAX_IDLE_CONNS", 10),
		DBConnLifetime: envDur("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   envInt("ACCESS_TOKEN_TTL_MIN", 15),
		RefreshTTLDays: envInt("REFRESH_TOKEN_TTL_DAYS", 14),
		BcryptCost:     envInt("BCRYPT_COST", 12),
		AMQPURL:        os.Getenv("RABBITMQ_URL"),
		MediaDir:       getenv("MEDIA_DIR", "media/posters"),
	}
}
