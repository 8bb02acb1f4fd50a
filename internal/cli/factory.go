package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/voltcraft/troubleshoot"
	"github.com/voltcraft/troubleshoot/internal/config"
	"github.com/voltcraft/troubleshoot/internal/logging"
	"github.com/voltcraft/troubleshoot/pkg/adapters/memory"
	"github.com/voltcraft/troubleshoot/pkg/adapters/redis"
	"github.com/voltcraft/troubleshoot/pkg/catalog"
	"github.com/voltcraft/troubleshoot/pkg/domain"
	"github.com/voltcraft/troubleshoot/pkg/observability"
	"github.com/voltcraft/troubleshoot/pkg/session"
)

// NewLogger builds the process logger from the configured level and format.
func NewLogger(w io.Writer, cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	format := logging.Format(cfg.LogFormat)
	if format != logging.FormatText && format != logging.FormatJSON {
		return nil, fmt.Errorf("unknown log format %q (want text or json)", cfg.LogFormat)
	}
	return logging.NewWithWriter(w, level, format), nil
}

// NewEngine creates the wizard from the configured catalog. Navigation events
// are logged at debug level; extra hooks (e.g. metrics) are merged in.
func NewEngine(cfg config.Config, logger *slog.Logger, hooks ...domain.LifecycleHooks) (*troubleshoot.Engine, error) {
	opts := []troubleshoot.Option{
		troubleshoot.WithLogger(logger),
		troubleshoot.WithLifecycleHooks(observability.LoggingHooks(logger)),
	}
	for _, h := range hooks {
		opts = append(opts, troubleshoot.WithLifecycleHooks(h))
	}

	switch {
	case cfg.Catalog == "":
		// builtin trees
	case cfg.Loam:
		opts = append(opts, troubleshoot.WithLoamRepository(cfg.Catalog))
	default:
		opts = append(opts, troubleshoot.WithSource(catalog.DirSource(cfg.Catalog)))
	}

	engine, err := troubleshoot.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

// NewSessions creates the session manager. With a Redis URL sessions are shared
// between processes and guarded by a distributed lock; otherwise they live in memory.
// The returned close func releases the backing connection.
func NewSessions(cfg config.Config, logger *slog.Logger) (*session.Manager, func() error, error) {
	if cfg.RedisURL == "" {
		logger.Debug("using in-memory session store")
		return session.NewManager(memory.NewStore(), session.WithLogger(logger)), func() error { return nil }, nil
	}

	store, err := redis.NewFromURL(cfg.RedisURL, redis.WithTTL(cfg.SessionTTL))
	if err != nil {
		return nil, nil, err
	}
	locker := redis.NewLocker(store.Client(), redis.DefaultPrefix)
	logger.Debug("using redis session store", "ttl", cfg.SessionTTL)

	manager := session.NewManager(store,
		session.WithLocker(locker),
		session.WithLogger(logger),
	)
	return manager, store.Close, nil
}
