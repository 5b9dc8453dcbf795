package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/pinkeeper/internal/client/models"
	"github.com/dmitrijs2005/pinkeeper/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Get(ctx context.Context, identity string) (*models.CredentialRecord, error) {
	var (
		rec      models.CredentialRecord
		issuedAt int64
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT identity, id, digest, issued_at, version, revision, content_id, retrieval_url
		FROM credentials WHERE identity = ?
	`, identity).Scan(&rec.Identity, &rec.ID, &rec.Digest, &issuedAt, &rec.Version, &rec.Revision,
		&rec.ContentID, &rec.RetrievalURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credential[%s]: %w", identity, err)
	}
	rec.IssuedAt = time.UnixMilli(issuedAt).UTC()
	return &rec, nil
}

func (r *SQLiteRepository) Put(ctx context.Context, rec *models.CredentialRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO credentials (identity, id, digest, issued_at, version, revision, content_id, retrieval_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(identity) DO UPDATE SET
			id = excluded.id,
			digest = excluded.digest,
			issued_at = excluded.issued_at,
			version = excluded.version,
			revision = excluded.revision,
			content_id = excluded.content_id,
			retrieval_url = excluded.retrieval_url
	`, rec.Identity, rec.ID, rec.Digest, rec.IssuedAt.UnixMilli(), rec.Version, rec.Revision,
		rec.ContentID, rec.RetrievalURL)
	if err != nil {
		return fmt.Errorf("failed to put credential[%s]: %w", rec.Identity, err)
	}
	return nil
}
