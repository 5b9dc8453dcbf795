package models

import "time"

// CredentialRecord is the stored association between an identity and the
// last digest issued for it. A record is immutable once issued; a new
// registration for the same identity replaces it wholesale.
type CredentialRecord struct {
	// ID is a random identifier assigned at issue time.
	ID string

	// Identity is the normalized email the record is keyed by.
	Identity string

	// Digest is the 64-character lowercase hex SHA-256 credential.
	Digest string

	// IssuedAt is the timestamp that salted Digest, with millisecond precision, in UTC.
	IssuedAt time.Time

	// Version is the record format tag.
	Version string

	// Revision counts writes for Identity; it guards against lost updates.
	Revision int64

	// ContentID and RetrievalURL describe the remote backup copy.
	ContentID    string
	RetrievalURL string
}

// Locator points at content uploaded to the remote backup service.
type Locator struct {
	ContentID    string
	RetrievalURL string
}
