// Package auth isolates credential verification from the session
// machinery so a real identity store can replace the single configured
// principal without touching the gate itself.
package auth

import "github.com/jpkrishna28/mls-point-locator/internal/utils"

// CredentialVerifier checks a username/password pair. Implementations must
// be safe for concurrent use.
type CredentialVerifier interface {
	Verify(username, password string) bool
}

// StaticVerifier authenticates exactly one principal against a bcrypt
// hash. This mirrors the deployed system's single admin account; swapping
// in a user table later only means providing another CredentialVerifier.
type StaticVerifier struct {
	Username     string
	PasswordHash string
}

// NewStaticVerifier builds a verifier for one username and its bcrypt hash.
func NewStaticVerifier(username, passwordHash string) *StaticVerifier {
	return &StaticVerifier{Username: username, PasswordHash: passwordHash}
}

// Verify reports whether the pair matches the configured principal. The
// bcrypt comparison runs even for unknown usernames so response timing
// does not reveal which credential was wrong.
func (v *StaticVerifier) Verify(username, password string) bool {
	ok := utils.VerifyPassword(v.PasswordHash, password)
	return username == v.Username && ok
}
