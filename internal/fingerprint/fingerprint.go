package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Package fingerprint computes the content digest used to anchor and verify
// documents. The digest is the lower-case hex SHA-256 of the exact file
// bytes; it is computed once at upload time and never recomputed for a
// stored document.

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Equal compares two hex digests. Hex encoding is case-insensitive, so
// digests from different producers compare equal regardless of casing.
func Equal(a, b string) bool {
	return a != "" && strings.EqualFold(a, b)
}
