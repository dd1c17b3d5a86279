// Package auth holds the credential strategies that gate the store API.
//
// The store issues a single shared bearer token at login and accepts exactly
// that token afterwards. Callers depend on CredentialChecker so the static
// token can be swapped for signed per-user tokens without touching the code
// that consumes it.
package auth

import (
	"github.com/go-faster/errors"
)

var (
	// ErrInvalidCredential is returned for an absent or mismatched credential.
	ErrInvalidCredential = errors.New("invalid authentication token")
)

// CredentialChecker decides whether a bearer credential is acceptable.
type CredentialChecker interface {
	Check(credential string) error
}

// TokenIssuer hands out credentials after a successful login.
type TokenIssuer interface {
	Issue(username string) string
}

// StaticToken is the process-wide shared secret. It is built once from
// configuration and never changes afterwards.
type StaticToken struct {
	secret string
}

// NewStaticToken returns a StaticToken for secret.
func NewStaticToken(secret string) StaticToken {
	return StaticToken{secret: secret}
}

// Check accepts only a non-empty credential equal to the secret.
func (t StaticToken) Check(credential string) error {
	if credential == "" || t.secret == "" || credential != t.secret {
		return ErrInvalidCredential
	}
	return nil
}

// Issue returns the shared secret regardless of who logged in.
func (t StaticToken) Issue(string) string {
	return t.secret
}

// CheckerFunc adapts a function to CredentialChecker.
type CheckerFunc func(credential string) error

func (f CheckerFunc) Check(credential string) error {
	return f(credential)
}
