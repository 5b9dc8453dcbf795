// Package common contains shared constants and sentinel errors used across
// pinkeeper components.
package common

// CredentialVersion tags every credential record and backup payload.
const CredentialVersion = "1.0.0"

// ActiveIdentityKey is the metadata key pointing at the identity whose
// credential record is currently active.
const ActiveIdentityKey = "active_identity"
