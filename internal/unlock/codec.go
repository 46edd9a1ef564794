// Package unlock implements the anonymous-authorization scheme: a short
// unlock code chosen at creation time is derived into a one-way credential,
// and every privileged action re-verifies a plaintext attempt against it.
package unlock

import "golang.org/x/crypto/bcrypt"

const deriveCost = bcrypt.DefaultCost

// Derive transforms a plaintext unlock code into its storable credential.
// bcrypt salts every derivation, so two calls on the same plaintext yield
// different credentials; equality on credentials is meaningless and only
// Verify may be used to check an attempt.
func Derive(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), deriveCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether the plaintext attempt matches the stored credential.
// Empty attempt or empty credential is always false, without invoking the
// underlying comparison. Malformed credentials degrade to false, never panic.
func Verify(attempt, stored string) bool {
	if attempt == "" || stored == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(attempt)) == nil
}
