package services

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the service layer. Controllers branch on these
// with errors.Is to pick the response; nothing downstream inspects message
// text.
var (
	ErrDuplicateUsername   = errors.New("username already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrSessionInvalid      = errors.New("session is not valid")
	ErrNotFound            = errors.New("not found")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrMissingReference    = errors.New("referenced word or set does not exist")
	ErrDuplicateMembership = errors.New("word is already in the set")
	ErrStoreUnavailable    = errors.New("store unavailable")
)

// storeError wraps an unexpected database failure. Store failures are fatal
// for the request; the service layer never retries.
func storeError(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
