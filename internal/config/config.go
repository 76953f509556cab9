// README: Config loader with env defaults for HTTP, Firebase, Redis, and session settings.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	Firebase struct {
		ProjectID       string
		CredentialsFile string
	}
	Redis struct {
		Addr string
	}
	Events struct {
		// DSN for the transition audit log; empty disables it.
		DSN string
	}
	Imgur struct {
		ClientID string
	}
	Session struct {
		TTL time.Duration
	}
	Store struct {
		OpTimeout time.Duration
	}
}

func Load() (Config, error) {
	var cfg Config
	cfg.HTTP.Addr = envOrDefault("OXA_HTTP_ADDR", ":8080")
	cfg.Firebase.ProjectID = envOrDefault("OXA_FIREBASE_PROJECT_ID", "")
	cfg.Firebase.CredentialsFile = envOrDefault("OXA_FIREBASE_CREDENTIALS", "")
	cfg.Redis.Addr = envOrDefault("OXA_REDIS_ADDR", "localhost:6379")
	cfg.Events.DSN = envOrDefault("OXA_EVENTS_DSN", "")
	cfg.Imgur.ClientID = envOrDefault("OXA_IMGUR_CLIENT_ID", "")
	cfg.Session.TTL = time.Duration(envOrDefaultInt("OXA_SESSION_TTL_HOURS", 24)) * time.Hour
	cfg.Store.OpTimeout = time.Duration(envOrDefaultInt("OXA_STORE_TIMEOUT_SECONDS", 10)) * time.Second
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
