package session

import (
	"errors"
	"fmt"
)

// ErrNotInitialized is returned by Current when no process-wide session has
// been installed via Init.
var ErrNotInitialized = errors.New("session: not initialized")

// CredentialRefreshError reports that the JWT source itself failed. The relay
// client treats it as fatal for the current invocation; there is no further
// retry.
type CredentialRefreshError struct {
	Err error
}

func (e *CredentialRefreshError) Error() string {
	return fmt.Sprintf("session: credential refresh failed: %v", e.Err)
}

func (e *CredentialRefreshError) Unwrap() error {
	return e.Err
}
