package models

import (
	"time"

	"github.com/dmitrijs2005/pinkeeper/internal/common"
)

// BackupPayload is the document mirrored to the remote backup service.
type BackupPayload struct {
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Hash      string `json:"hash"`
	CreatedAt string `json:"createdAt"`
	Version   string `json:"version"`
}

// NewBackupPayload builds the backup document for a freshly issued record.
func NewBackupPayload(id Identity, rec *CredentialRecord) BackupPayload {
	version := rec.Version
	if version == "" {
		version = common.CredentialVersion
	}
	return BackupPayload{
		Email:     id.Email,
		Phone:     id.Phone,
		Hash:      rec.Digest,
		CreatedAt: rec.IssuedAt.UTC().Format(time.RFC3339Nano),
		Version:   version,
	}
}
