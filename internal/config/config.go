// Package config loads process settings from the environment and database
// credentials from the local secrets file.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds runtime settings that are not secrets. Database credentials
// live in the secrets file instead (see LoadCredentials).
type Config struct {
	Env         string // application environment (dev, test, prod)
	Port        string // HTTP port to listen on
	SecretsPath string // path to the YAML credentials file
	LogLevel    string // zap level name: debug, info, warn, error
	JWTSecret   string // curator token secret; empty leaves write routes open
	AMQPURL     string // broker for audit events; empty disables publishing
}

// Load reads a .env file when one exists and then builds a Config from the
// environment. Unset variables fall back to development defaults.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: ignoring unreadable .env: %v", err)
	}
	return Config{
		Env:         envStr("APP_ENV", "dev"),
		Port:        envStr("APP_PORT", "8080"),
		SecretsPath: envStr("CATALOG_SECRETS", DefaultSecretsPath),
		LogLevel:    strings.ToLower(envStr("LOG_LEVEL", "info")),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		AMQPURL:     AMQPURL(),
	}
}

// AMQPURL returns the broker URL from RABBITMQ_URL or AMQP_URL, in that order.
func AMQPURL() string {
	if v := os.Getenv("RABBITMQ_URL"); v != "" {
		return v
	}
	return os.Getenv("AMQP_URL")
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}
