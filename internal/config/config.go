// Package config loads process settings from the environment, reading a .env
// file first when one exists.
package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Transport names accepted in MESH_TRANSPORT
const (
	TransportRedis  = "redis"
	TransportNATS   = "nats"
	TransportMemory = "memory"
)

type Config struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// MeshTransport selects how editor sessions reach each other
	MeshTransport string
	NATSURL       string

	// LocalStorePath is the badger directory for offline writes
	LocalStorePath string

	MetricsAddr string

	DiscordToken  string
	ApplicationID string
	GuildID       string

	PollInterval time.Duration
	QuietPeriod  time.Duration
	PresenceTTL  time.Duration

	LogLevel string
}

// Load reads .env files (missing ones are fine) then the environment
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		MeshTransport:  getEnv("MESH_TRANSPORT", TransportRedis),
		NATSURL:        getEnv("NATS_URL", "nats://localhost:4222"),
		LocalStorePath: getEnv("LOCAL_STORE_PATH", "./data/local"),
		MetricsAddr:    getEnv("METRICS_ADDR", ":9090"),
		DiscordToken:   getEnv("DISCORD_TOKEN", ""),
		ApplicationID:  getEnv("APPLICATION_ID", ""),
		GuildID:        getEnv("GUILD_ID", ""),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return nil, errors.New("REDIS_DB must be an integer")
	}
	if cfg.PollInterval, err = getDuration("POLL_INTERVAL", 3*time.Second); err != nil {
		return nil, err
	}
	if cfg.QuietPeriod, err = getDuration("AUTOSAVE_QUIET_PERIOD", 2*time.Second); err != nil {
		return nil, err
	}
	if cfg.PresenceTTL, err = getDuration("PRESENCE_TTL", 15*time.Second); err != nil {
		return nil, err
	}

	switch cfg.MeshTransport {
	case TransportRedis, TransportNATS, TransportMemory:
	default:
		return nil, errors.New("MESH_TRANSPORT must be redis, nats or memory")
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, defaultValue.String()))
	if err != nil {
		return 0, errors.New(key + " must be a duration such as 3s")
	}
	return d, nil
}
