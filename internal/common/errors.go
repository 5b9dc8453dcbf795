// Package common defines shared constants and sentinel errors used across
// the client layers of pinkeeper. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// ErrStorage marks failures of the local persistent storage.
	ErrStorage = errors.New("local storage error")

	// ErrVersionConflict is returned when a stored credential record changed
	// between read and write.
	ErrVersionConflict = errors.New("version conflict")
)
