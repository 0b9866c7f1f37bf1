// Package app builds the repositories, services and transport shared by the
// binaries.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/KirkDiggler/codearena/internal/config"
	roomRepo "github.com/KirkDiggler/codearena/internal/repositories/room"
	snapshotRepo "github.com/KirkDiggler/codearena/internal/repositories/snapshot"
	statsRepo "github.com/KirkDiggler/codearena/internal/repositories/stats"
	arenaService "github.com/KirkDiggler/codearena/internal/services/arena"
	statsService "github.com/KirkDiggler/codearena/internal/services/stats"
	"github.com/KirkDiggler/codearena/internal/store/local"
	"github.com/KirkDiggler/codearena/internal/transport"
)

// App holds the wired dependencies
type App struct {
	Config *config.Config
	Logger *zap.Logger

	Redis *redis.Client
	Local *local.Store

	RoomRepo     roomRepo.Repository
	SnapshotRepo snapshotRepo.Repository
	StatsService statsService.Service
	ArenaService arenaService.Service

	nats *nats.Conn
}

// NewLogger builds a production zap logger at the given level
func NewLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(lvl)
	return zcfg.Build()
}

// New connects to Redis, opens the local store and builds the services
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	store, err := local.Open(local.Config{Path: cfg.LocalStorePath, Logger: logger})
	if err != nil {
		_ = redisClient.Close()
		return nil, fmt.Errorf("failed to open local store: %w", err)
	}

	a := &App{
		Config: cfg,
		Logger: logger,
		Redis:  redisClient,
		Local:  store,
	}
	if err := a.build(); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) build() error {
	rooms, err := roomRepo.NewRedis(&roomRepo.Config{RedisClient: a.Redis})
	if err != nil {
		return fmt.Errorf("failed to create room repository: %w", err)
	}
	a.RoomRepo = rooms

	primary, err := snapshotRepo.NewRedis(&snapshotRepo.Config{RedisClient: a.Redis})
	if err != nil {
		return fmt.Errorf("failed to create snapshot repository: %w", err)
	}
	snapshots, err := snapshotRepo.NewFallback(&snapshotRepo.FallbackConfig{
		Primary: primary,
		Local:   a.Local,
		Logger:  a.Logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create snapshot fallback: %w", err)
	}
	a.SnapshotRepo = snapshots

	stats, err := statsRepo.NewRedis(&statsRepo.Config{RedisClient: a.Redis})
	if err != nil {
		return fmt.Errorf("failed to create stats repository: %w", err)
	}

	statsSvc, err := statsService.NewService(&statsService.Config{
		StatsRepo: stats,
		Local:     a.Local,
		Logger:    a.Logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create stats service: %w", err)
	}
	a.StatsService = statsSvc

	arenaSvc, err := arenaService.NewService(&arenaService.Config{
		RoomRepo:     a.RoomRepo,
		SnapshotRepo: a.SnapshotRepo,
		StatsService: statsSvc,
		Logger:       a.Logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create arena service: %w", err)
	}
	a.ArenaService = arenaSvc

	return nil
}

// Transport builds the mesh transport named in the config
func (a *App) Transport() (transport.Transport, error) {
	switch a.Config.MeshTransport {
	case config.TransportMemory:
		return transport.NewMemoryHub(), nil
	case config.TransportNATS:
		if a.nats == nil {
			conn, err := nats.Connect(a.Config.NATSURL, nats.Name("codearena"))
			if err != nil {
				return nil, fmt.Errorf("failed to connect to NATS: %w", err)
			}
			a.nats = conn
		}
		return transport.NewNATS(&transport.NATSConfig{
			Conn:        a.nats,
			PresenceTTL: a.Config.PresenceTTL,
			Logger:      a.Logger,
		})
	default:
		return transport.NewRedis(&transport.RedisConfig{
			RedisClient: a.Redis,
			PresenceTTL: a.Config.PresenceTTL,
			Logger:      a.Logger,
		})
	}
}

// Close releases every connection the app opened
func (a *App) Close() error {
	var errs []error
	if a.nats != nil {
		if err := a.nats.Drain(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.Local != nil {
		if err := a.Local.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
