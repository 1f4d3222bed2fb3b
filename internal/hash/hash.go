// Package hash provides the content-digest service used for document
// identity and deduplication.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// PrefixLength is the length of the short digest prefix used for grouping
// and display.
const PrefixLength = 10

// Service computes SHA-256 content digests.
type Service struct{}

// NewService creates a new hashing service.
func NewService() *Service {
	return &Service{}
}

// Digest returns the lowercase hex SHA-256 of the given bytes. Deterministic
// and content-only: no file metadata is involved.
func (s *Service) Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Prefix returns the short display prefix of a digest.
func (s *Service) Prefix(digest string) string {
	if len(digest) <= PrefixLength {
		return digest
	}
	return digest[:PrefixLength]
}
