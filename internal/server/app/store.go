package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/rolekeeper/internal/server/storage"
	"github.com/iudanet/rolekeeper/internal/server/storage/postgres"
	"github.com/iudanet/rolekeeper/internal/server/storage/sqlite"
)

// OpenStore открывает хранилище по схеме DSN:
// postgres:// и postgresql:// для PostgreSQL, sqlite:// или путь к файлу для SQLite.
func OpenStore(ctx context.Context, dsn string) (storage.CredentialStore, error) {
	dsn = strings.TrimSpace(dsn)
	switch {
	case dsn == "":
		return nil, fmt.Errorf("empty database DSN")
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		store, err := postgres.New(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres storage: %w", err)
		}
		return store, nil
	default:
		store, err := sqlite.New(ctx, strings.TrimPrefix(dsn, "sqlite://"))
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite storage: %w", err)
		}
		return store, nil
	}
}
