// Package credentials persists credential records keyed by identity.
package credentials

import (
	"context"

	"github.com/dmitrijs2005/pinkeeper/internal/client/models"
)

// Repository stores at most one credential record per identity.
type Repository interface {
	// Get returns the record for identity, or (nil, nil) if there is none.
	Get(ctx context.Context, identity string) (*models.CredentialRecord, error)

	// Put inserts or fully replaces the record for rec.Identity.
	Put(ctx context.Context, rec *models.CredentialRecord) error
}
