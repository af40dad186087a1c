package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        int
	DatabaseURL string
	JWTSecret   string

	// Per-IP rate limit applied to register and login.
	AuthRateLimit float64
	AuthRateBurst int
}

func Load() Config {
	cfg := Config{
		Port:          3008,
		DatabaseURL:   os.Getenv("SLOTBOOK_DATABASE_URL"),
		JWTSecret:     os.Getenv("SLOTBOOK_JWT_SECRET"),
		AuthRateLimit: 5,
		AuthRateBurst: 10,
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	if v := os.Getenv("SLOTBOOK_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 && p < 65536 {
			cfg.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil && p > 0 && p < 65536 {
			cfg.Port = p
		}
	}

	if v := os.Getenv("SLOTBOOK_AUTH_RPS"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil && n > 0 {
			cfg.AuthRateLimit = n
		}
	}
	if v := os.Getenv("SLOTBOOK_AUTH_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AuthRateBurst = n
		}
	}

	return cfg
}

func (c Config) ListenAddr() string {
	return ":" + strconv.Itoa(c.Port)
}
