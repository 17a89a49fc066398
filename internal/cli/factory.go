// Package cli wires configuration, map files, drivers and stores into ready
// navigation sessions for the wayfinder command.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/wayfinder"
	"github.com/aretw0/wayfinder/internal/config"
	"github.com/aretw0/wayfinder/internal/logging"
	"github.com/aretw0/wayfinder/pkg/adapters/mapfile"
	"github.com/aretw0/wayfinder/pkg/adapters/process"
	"github.com/aretw0/wayfinder/pkg/adapters/redis"
	"github.com/aretw0/wayfinder/pkg/adapters/simulator"
	"github.com/aretw0/wayfinder/pkg/domain"
	"github.com/aretw0/wayfinder/pkg/observability"
	"github.com/aretw0/wayfinder/pkg/ports"
	"github.com/aretw0/wayfinder/pkg/registry"
	"github.com/prometheus/client_golang/prometheus"
)

// Runtime is everything a command needs to drive one map.
type Runtime struct {
	Config    *config.Config
	Logger    *slog.Logger
	Map       *mapfile.Map
	Screens   []domain.Navigable
	Driver    ports.Driver
	Simulator *simulator.Driver // nil unless the simulator driver is used
	Registry  *prometheus.Registry
	Metrics   *observability.Metrics

	redis     *redis.Store // connection shared by every session store
	redisBase string
}

// Setup loads the map and prepares driver, actions and metrics.
func Setup(cfg *config.Config, logger *slog.Logger) (*Runtime, error) {
	m, err := mapfile.Load(cfg.Map)
	if err != nil {
		return nil, err
	}

	rt := &Runtime{
		Config:   cfg,
		Logger:   logger,
		Map:      m,
		Registry: prometheus.NewRegistry(),
	}

	actions := registry.WithBuiltins()
	switch cfg.Driver {
	case config.DriverProcess:
		driverCfg, err := process.LoadConfig(cfg.DriverConfig)
		if err != nil {
			return nil, err
		}
		rt.Driver = process.NewRunner(process.WithConfig(driverCfg))
	default:
		sim := simulator.New(simulator.WithStart(m.Start), simulator.WithSettle(cfg.Settle))
		sim.Register(actions)
		rt.Simulator = sim
		rt.Driver = sim
	}

	if rt.Screens, err = mapfile.Bind(m, rt.Driver, actions); err != nil {
		return nil, err
	}

	if rt.Metrics, err = observability.NewMetrics(rt.Registry); err != nil {
		return nil, err
	}

	if cfg.Redis.Addr != "" {
		rt.redisBase = prefixOr(cfg.Redis.Prefix, m.Name)
		rt.redis = redis.New(cfg.Redis.Addr, "", 0)
		if err := rt.redis.Client().Ping(context.Background()).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect record store: %w", err)
		}
	}

	return rt, nil
}

// NewSession creates a session positioned on the map start screen.
func (rt *Runtime) NewSession(name string) (*wayfinder.Session, error) {
	opts := []wayfinder.Option{
		wayfinder.WithLogger(rt.Logger),
		wayfinder.WithName(name),
		wayfinder.WithDefaultTimeout(rt.Config.DefaultTimeout),
		wayfinder.WithPollInterval(rt.Config.PollInterval),
		wayfinder.WithLifecycleHooks(observability.Combine(
			rt.Metrics.Hooks(),
			observability.LoggingHooks(rt.Logger),
		)),
	}
	if rt.Map.Start != "" {
		opts = append(opts, wayfinder.WithStartID(rt.Map.Start))
	}
	if rt.redis != nil {
		store := redis.NewFromClient(rt.redis.Client(),
			redis.WithPrefix(rt.redisBase+name+":"),
			redis.WithTTL(rt.Config.Redis.TTL),
		)
		opts = append(opts, wayfinder.WithRecordStore(store))
	}
	return wayfinder.New(rt.Screens, opts...)
}

// Factory adapts NewSession to session.Factory.
func (rt *Runtime) Factory(ctx context.Context, id string) (ports.Navigator, error) {
	return rt.NewSession(id)
}

// Close releases external connections.
func (rt *Runtime) Close() error {
	if rt.redis != nil {
		return rt.redis.Client().Close()
	}
	return nil
}

// NewLogger builds the CLI logger from configuration.
func NewLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewWithWriter(os.Stderr, level, cfg.LogFormat == "json"), nil
}

func prefixOr(prefix, mapName string) string {
	if prefix != "" {
		return prefix
	}
	if mapName == "" {
		return redis.DefaultPrefix
	}
	return redis.DefaultPrefix + mapName + ":"
}
