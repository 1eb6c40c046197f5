package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// HashText returns the SHA-256 hex digest of the provided text.
// It is the one-way transform applied to every PII field before storage.
func HashText(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// DeriveSubmissionID derives a stable submission identifier from a
// normalized (lowercased) email and the receipt time, bucketed to the
// UTC hour. Two submissions from the same email within the same hour
// share an identifier unless the caller supplied one explicitly.
func DeriveSubmissionID(email string, ts time.Time) string {
	bucket := ts.UTC().Format("2006010215")
	return HashText(email + bucket)
}
