// Package models defines the client-side data models of pinkeeper.
package models

import "strings"

// Identity is the transient registration input. It is consumed by the
// registration flow and never persisted as such.
type Identity struct {
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone" validate:"required,phonedigits"`
}

// Key returns the normalized identity used to key stored credential records.
func (i Identity) Key() string {
	return NormalizeEmail(i.Email)
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
