package history

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// ledgerVersion is stamped into the database header via PRAGMA user_version.
// Bump it on incompatible changes to the records table; old databases are
// deleted and rebuilt, never migrated.
const ledgerVersion = 1

// ErrSchemaMismatch reports a database written by an incompatible sprocket.
var ErrSchemaMismatch = errors.New("history schema mismatch")

func (s *Store) initSchema(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read ledger version: %w", err)
	}

	switch version {
	case ledgerVersion:
		return nil
	case 0:
		// Fresh file. The DDL is idempotent, so a lost race with another
		// process stamping the same version is harmless.
		if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
			return fmt.Errorf("create ledger schema: %w", err)
		}
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", ledgerVersion)); err != nil {
			return fmt.Errorf("stamp ledger version: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %s reports version %d, want %d; delete the database to rebuild it",
			ErrSchemaMismatch, s.path, version, ledgerVersion)
	}
}
