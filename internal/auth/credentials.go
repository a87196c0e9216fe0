package auth

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// VerifyResult is the outcome of a login attempt
type VerifyResult int

const (
	// Rejected means a secret is set and the candidate did not match
	Rejected VerifyResult = iota
	// Accepted means the candidate matched the stored secret
	Accepted
	// Bootstrapped means no secret existed and the candidate became it
	Bootstrapped
)

// CredentialStore holds the single shared admin secret as a sha256 hex
// digest. It is constructed once at startup and injected into everything
// that gates on admin access.
//
// There are no sessions and no rate limiting: every privileged call checks
// only whether a secret has ever been set. This is a known hardening gap
// carried over from the product's design, not an oversight.
type CredentialStore struct {
	mu   sync.RWMutex
	hash string
}

// NewCredentialStore creates a credential store. seedHash may be a
// pre-computed sha256 hex digest from configuration, or empty for
// first-use bootstrap.
func NewCredentialStore(seedHash string) *CredentialStore {
	return &CredentialStore{hash: seedHash}
}

// HashSecret returns the lowercase hex sha256 digest of a secret
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// VerifyOrBootstrap checks the candidate secret against the stored digest.
// When no secret has ever been set, the candidate's digest is stored and
// Bootstrapped is reported.
func (s *CredentialStore) VerifyOrBootstrap(secret string) VerifyResult {
	candidate := HashSecret(secret)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hash == "" {
		s.hash = candidate
		return Bootstrapped
	}
	if s.hash == candidate {
		return Accepted
	}
	return Rejected
}

// ChangeSecret replaces the stored secret if oldSecret matches it
func (s *CredentialStore) ChangeSecret(oldSecret, newSecret string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hash == "" || s.hash != HashSecret(oldSecret) {
		return false
	}
	s.hash = HashSecret(newSecret)
	return true
}

// IsBootstrapped reports whether an admin secret has ever been set
func (s *CredentialStore) IsBootstrapped() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hash != ""
}
