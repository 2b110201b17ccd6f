package factory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/focusflow/focusflow-server/internal/config"
	storepkg "github.com/focusflow/focusflow-server/internal/store"
	storepg "github.com/focusflow/focusflow-server/internal/store/postgres"
	storelite "github.com/focusflow/focusflow-server/internal/store/sqlite"
)

// NewStore returns the store.Store selected by cfg.DBDriver.
// SQLite bootstraps its schema synchronously; Postgres schema is managed by
// migrations and only connectivity is verified here.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.DBDriver {
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("FOCUSFLOW_POSTGRES_DSN is required when DB_DRIVER=postgres")
		}
		db, err := storepg.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		log.Info().Str("driver", cfg.DBDriver).Msg("store opened")
		return storepg.NewWithDB(db), nil

	case "sqlite":
		db, err := storelite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		s := storelite.NewWithDB(db)

		bootstrapTimeout := time.Duration(cfg.BootstrapTimeoutSeconds) * time.Second
		bootstrapCtx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
		defer cancel()
		if err := s.EnsureSchema(bootstrapCtx); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite schema bootstrap: %w", err)
		}
		log.Info().Str("driver", cfg.DBDriver).Str("path", cfg.SQLitePath).Msg("store opened")
		return s, nil

	default:
		return nil, fmt.Errorf("unknown DB_DRIVER: %s", cfg.DBDriver)
	}
}
