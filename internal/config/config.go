// Package config carga la configuración del proceso desde variables de
// entorno, con .env opcional para desarrollo local.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port   string `validate:"required,numeric"`
	DBPath string `validate:"required"`

	// CloudDSN vacío = modo solo local, sin engine de sync.
	CloudDSN        string
	SyncIntervalSec int `validate:"gte=1"`

	LogLevel  string
	LogFormat string
	AppName   string
}

func Load() (Config, error) {
	// .env es opcional; las env reales pisan lo que traiga el archivo
	_ = godotenv.Load()

	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		DBPath:          getEnv("DB_PATH", "lovingpaws.db"),
		CloudDSN:        os.Getenv("CLOUD_DSN"),
		SyncIntervalSec: getEnvInt("SYNC_INTERVAL_SEC", 30),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "text"),
		AppName:         getEnv("APP_NAME", "lovingpaws"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c Config) SyncInterval() time.Duration {
	return time.Duration(c.SyncIntervalSec) * time.Second
}

func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
