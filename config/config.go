package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	StorageType string // "postgres" or "inmemory"
	CacheType   string // "redis" or "inmemory"
	EventsType  string // "nats" or "inprocess"

	Postgres PostgresConfig
	Redis    RedisConfig
	NATS     NATSConfig
	HTTP     HTTPConfig
	Auth     AuthConfig

	MediaDir     string
	ClientOrigin string
	LogLevel     string
}

type PostgresConfig struct {
	User     string
	Password string
	DB       string
	Host     string
	Port     int
	SSLMode  string
}

func (pc PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		pc.User,
		pc.Password,
		pc.Host,
		pc.Port,
		pc.DB,
		pc.SSLMode,
	)
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type NATSConfig struct {
	URL string
}

type HTTPConfig struct {
	Port string
}

type AuthConfig struct {
	JWTSecret string
}

func LoadConfig() Config {
	storageType := mustGetEnv("STORAGE_TYPE")

	cfg := Config{
		StorageType: storageType,
		CacheType:   getEnv("CACHE_TYPE", "inmemory"),
		EventsType:  getEnv("EVENTS_TYPE", "inprocess"),
		HTTP: HTTPConfig{
			Port: mustGetEnv("HTTP_PORT"),
		},
		Auth: AuthConfig{
			JWTSecret: mustGetEnv("JWT_SECRET"),
		},
		MediaDir:     getEnv("MEDIA_DIR", "./media"),
		ClientOrigin: getEnv("CLIENT_ORIGIN", ""),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}

	if storageType == "postgres" {
		cfg.Postgres = PostgresConfig{
			User:     mustGetEnv("POSTGRES_USER"),
			Password: mustGetEnv("POSTGRES_PASSWORD"),
			DB:       mustGetEnv("POSTGRES_DB"),
			Host:     mustGetEnv("POSTGRES_HOST"),
			Port:     mustGetInt("POSTGRES_PORT"),
			SSLMode:  mustGetEnv("POSTGRES_SSLMODE"),
		}
	}

	if cfg.CacheType == "redis" {
		cfg.Redis = RedisConfig{
			Addr:     mustGetEnv("REDIS_ADDR"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		}
	}

	if cfg.EventsType == "nats" {
		cfg.NATS = NATSConfig{
			URL: mustGetEnv("NATS_URL"),
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func mustGetEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic("missing required env var: " + key)
	}
	return val
}

func mustGetInt(key string) int {
	val := mustGetEnv(key)
	i, err := strconv.Atoi(val)
	if err != nil {
		panic("invalid int for env var " + key + ": " + val)
	}
	return i
}
