// Package cryptox holds the credential digest primitives.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strconv"
)

// DigestLength is the length of a hex-encoded SHA-256 digest.
const DigestLength = sha256.Size * 2

// GenerateDigest derives the credential digest for an identity.
//
// The input is the UTF-8 string email + ":" + phone + ":" + nowMillis, where
// nowMillis is rendered in decimal. The SHA-256 sum is returned as lowercase
// hex, always DigestLength characters long.
//
// The timestamp is supplied by the caller so the function stays pure:
// identical arguments always produce the identical digest. Input syntax is
// not checked here.
//
// Example:
//
//	d := GenerateDigest("a@b.com", "1234567890", 1000)
//	// d == "672d128c54952e0c96d3f61ec0bd5a7d554ba6b0058f6980c63606893aee621b"
func GenerateDigest(email, phone string, nowMillis int64) string {
	material := email + ":" + phone + ":" + strconv.FormatInt(nowMillis, 10)
	sum := sha256.Sum256([]byte(material))
	return hex.EncodeToString(sum[:])
}

// IsDigest reports whether s looks like a digest produced by GenerateDigest:
// exactly DigestLength lowercase hex characters.
func IsDigest(s string) bool {
	if len(s) != DigestLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// EqualDigests reports whether a and b are exactly equal. The comparison time
// does not depend on where the strings differ.
func EqualDigests(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
