// Package store provides the session backends: an in-process map and a
// redis driver for multi-instance deployments.
package store

import (
	"fmt"
	"strings"

	"keneviz-panel-go/internal/domain/session"
	"keneviz-panel-go/internal/platform/config"
	"keneviz-panel-go/internal/platform/errors"
	"keneviz-panel-go/internal/platform/logging"
)

// New selects the session backend from configuration.
func New(cfg config.SessionConfig, logger *logging.Logger) (session.Store, error) {
	switch strings.ToLower(cfg.Store) {
	case "", "memory":
		logger.Info("session store using memory backend (ttl=%s)", cfg.TTL)
		return NewMemoryStore(cfg.TTL), nil
	case "redis":
		s, err := NewRedisStore(cfg.Redis, cfg.TTL)
		if err != nil {
			return nil, err
		}
		logger.Info("session store using redis backend at %s (ttl=%s)", cfg.Redis.Addr, cfg.TTL)
		return s, nil
	default:
		return nil, errors.New(errors.KindConfig, "session.factory",
			fmt.Sprintf("unknown session store %q", cfg.Store))
	}
}
