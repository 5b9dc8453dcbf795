// Package store implements the local credential store: credential records
// keyed by identity plus a pointer to the active identity, kept in a SQLite
// database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pinkeeper/internal/client/migrations"
	"github.com/dmitrijs2005/pinkeeper/internal/client/models"
	"github.com/dmitrijs2005/pinkeeper/internal/client/repositories/credentials"
	"github.com/dmitrijs2005/pinkeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/pinkeeper/internal/common"
	"github.com/dmitrijs2005/pinkeeper/internal/dbx"
	"github.com/dmitrijs2005/pinkeeper/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// Store is the local credential store.
//
// Save makes the saved record the active one; Load resolves the active record.
// Absence is not an error: Load and LoadIdentity return (nil, nil). Failures of
// the underlying storage match common.ErrStorage.
type Store interface {
	// Save writes rec under rec.Identity and activates it. rec.Revision must
	// equal the stored revision for that identity (0 when there is none),
	// otherwise common.ErrVersionConflict is returned and nothing changes.
	// On success rec.Revision holds the new revision.
	Save(ctx context.Context, rec *models.CredentialRecord) error
	Load(ctx context.Context) (*models.CredentialRecord, error)
	LoadIdentity(ctx context.Context, identity string) (*models.CredentialRecord, error)
	// Deactivate forgets which identity is active. Stored records stay.
	Deactivate(ctx context.Context) error
	Close() error
}

type SQLiteStore struct {
	db *sql.DB

	metadataRepo   func(dbx.DBTX) metadata.Repository
	credentialRepo func(dbx.DBTX) credentials.Repository
}

// New wraps an already migrated database.
func New(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{
		db: db,
		metadataRepo: func(tx dbx.DBTX) metadata.Repository {
			return metadata.NewSQLiteRepository(tx)
		},
		credentialRepo: func(tx dbx.DBTX) credentials.Repository {
			return credentials.NewSQLiteRepository(tx)
		},
	}
}

// Open creates (if needed) and migrates the database file at path.
func Open(ctx context.Context, path string) (*SQLiteStore, error) {
	if _, err := filex.EnsureParentDir(path); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", common.ErrStorage, path, err)
	}
	// a single connection serializes writers and keeps transactions simple
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %w", common.ErrStorage, err)
	}

	return New(db), nil
}

// RunMigrations applies the embedded schema migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrations up: %w", err)
	}
	return nil
}

func dsn(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_pragma=busy_timeout(5000)"
}

func (s *SQLiteStore) Save(ctx context.Context, rec *models.CredentialRecord) error {
	next := rec.Revision + 1

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		creds := s.credentialRepo(tx)

		current, err := creds.Get(ctx, rec.Identity)
		if err != nil {
			return err
		}
		var stored int64
		if current != nil {
			stored = current.Revision
		}
		if stored != rec.Revision {
			return fmt.Errorf("%w: identity %s at revision %d, expected %d",
				common.ErrVersionConflict, rec.Identity, stored, rec.Revision)
		}

		toWrite := *rec
		toWrite.Revision = next
		if err := creds.Put(ctx, &toWrite); err != nil {
			return err
		}

		return s.metadataRepo(tx).Set(ctx, common.ActiveIdentityKey, []byte(rec.Identity))
	})
	if err != nil {
		return classify(err)
	}

	rec.Revision = next
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*models.CredentialRecord, error) {
	var rec *models.CredentialRecord

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		active, err := s.metadataRepo(tx).Get(ctx, common.ActiveIdentityKey)
		if err != nil || active == nil {
			return err
		}
		rec, err = s.credentialRepo(tx).Get(ctx, string(active))
		return err
	})
	if err != nil {
		return nil, classify(err)
	}
	return rec, nil
}

func (s *SQLiteStore) LoadIdentity(ctx context.Context, identity string) (*models.CredentialRecord, error) {
	rec, err := s.credentialRepo(s.db).Get(ctx, identity)
	if err != nil {
		return nil, classify(err)
	}
	return rec, nil
}

func (s *SQLiteStore) Deactivate(ctx context.Context) error {
	if err := s.metadataRepo(s.db).Delete(ctx, common.ActiveIdentityKey); err != nil {
		return classify(err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func classify(err error) error {
	if errors.Is(err, common.ErrVersionConflict) || errors.Is(err, common.ErrStorage) {
		return err
	}
	return fmt.Errorf("%w: %w", common.ErrStorage, err)
}
