package server

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"

	log "github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"golang.org/x/crypto/bcrypt"
)

// dummyHash is compared against when the user doesn't match, so both paths take similar time.
const dummyHash = "$2a$10$C615A0mfUEFBupj9qcqhiuBEyf60EqrsakB90CozUoSON8d2Dc1uS"

// OperatorAuth checks basic auth credentials of the kiosk operator against a bcrypt hash.
type OperatorAuth struct {
	user string
	hash []byte
}

// NewOperatorAuth makes an operator check. Returns nil if hash is empty, meaning auth is disabled.
func NewOperatorAuth(user, hash string) (*OperatorAuth, error) {
	if hash == "" {
		return nil, nil
	}
	if user == "" {
		return nil, errors.New("auth user is required with password hash")
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid password hash: %w", err)
	}
	return &OperatorAuth{user: user, hash: []byte(hash)}, nil
}

// Enabled reports whether operator auth is configured.
func (a *OperatorAuth) Enabled() bool { return a != nil }

// Check matches user and password, used as rest.BasicAuth checker.
func (a *OperatorAuth) Check(user, passwd string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(user), []byte(a.user)) == 1
	hash := a.hash
	if !userOK {
		hash = []byte(dummyHash)
	}
	// always run bcrypt comparison to prevent timing-based username enumeration
	if err := bcrypt.CompareHashAndPassword(hash, []byte(passwd)); err != nil || !userOK {
		log.Printf("[WARN] operator auth failed for user %q", user)
		return false
	}
	return true
}

// Middleware returns basic auth middleware, or a pass-through one when auth is disabled.
func (a *OperatorAuth) Middleware() func(http.Handler) http.Handler {
	if !a.Enabled() {
		return NoopAuth
	}
	return rest.BasicAuth(a.Check)
}

// NoopAuth returns a pass-through middleware (used when auth is disabled).
func NoopAuth(next http.Handler) http.Handler {
	return next
}
