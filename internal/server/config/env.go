package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// loadDotEnv copies variables from the given .env file into the process
// environment without overriding variables that are already set.
// A missing file is not an error.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

type lookupFunc func(key string) (string, bool)

// parseEnv overlays environment variables onto config.
//
// Recognised variables:
//
//	API_PORT            port to listen on (":<port>")
//	HTTP_ADDR           full listen address, wins over API_PORT
//	DATABASE_DSN        PostgreSQL DSN
//	DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_DATABASE
//	                    DSN parts, used when DATABASE_DSN is not set
//	JWT_SECRET          token signing secret
//	TOKEN_VALIDITY      token lifetime, Go duration ("1h")
//	DB_MAX_OPEN_CONNS   pool size
//	DB_MAX_IDLE_CONNS   idle pool size
//	CORS_ORIGINS        comma-separated allowed origins
//	SHUTDOWN_TIMEOUT    graceful shutdown timeout, Go duration
//	LOG_LEVEL           debug, info, warn, error
func parseEnv(config *Config, lookup lookupFunc) error {
	if v, ok := lookup("API_PORT"); ok && v != "" {
		config.HTTPAddr = ":" + v
	}
	if v, ok := lookup("HTTP_ADDR"); ok && v != "" {
		config.HTTPAddr = v
	}

	if v, ok := lookup("DATABASE_DSN"); ok && v != "" {
		config.DatabaseDSN = v
	} else if host, ok := lookup("DB_HOST"); ok && host != "" {
		config.DatabaseDSN = dsnFromParts(host, lookup)
	}

	if v, ok := lookup("JWT_SECRET"); ok {
		config.SecretKey = v
	}

	if v, ok := lookup("TOKEN_VALIDITY"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid TOKEN_VALIDITY: %w", err)
		}
		config.TokenValidity = d
	}
	if v, ok := lookup("SHUTDOWN_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid SHUTDOWN_TIMEOUT: %w", err)
		}
		config.ShutdownTimeout = d
	}

	if v, ok := lookup("DB_MAX_OPEN_CONNS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DB_MAX_OPEN_CONNS: %w", err)
		}
		config.DBMaxOpenConns = n
	}
	if v, ok := lookup("DB_MAX_IDLE_CONNS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DB_MAX_IDLE_CONNS: %w", err)
		}
		config.DBMaxIdleConns = n
	}

	if v, ok := lookup("CORS_ORIGINS"); ok && v != "" {
		config.CORSOrigins = splitList(v)
	}
	if v, ok := lookup("LOG_LEVEL"); ok && v != "" {
		config.LogLevel = v
	}

	return nil
}

func dsnFromParts(host string, lookup lookupFunc) string {
	get := func(key, fallback string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return fallback
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(get("DB_USER", "postgres"), get("DB_PASSWORD", "")),
		Host:     net.JoinHostPort(host, get("DB_PORT", "5432")),
		Path:     "/" + get("DB_DATABASE", "booktracker"),
		RawQuery: "sslmode=" + get("DB_SSLMODE", "disable"),
	}
	return u.String()
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
