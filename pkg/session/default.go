package session

import "sync"

// defaultSession is the process-wide session installed by Init. Guarded by
// defaultMu; Current returns ErrNotInitialized until Init has run.
var (
	defaultMu      sync.RWMutex
	defaultSession *Session
)

// Init constructs the process-wide session. Calling it again replaces the
// previous session; requests already holding the old handle keep using it.
func Init(relayAddr string, cred Credential) (*Session, error) {
	s, err := New(relayAddr, cred)
	if err != nil {
		return nil, err
	}

	defaultMu.Lock()
	defaultSession = s
	defaultMu.Unlock()
	return s, nil
}

// Current returns the process-wide session, or ErrNotInitialized when Init
// has never been called. Accessing the session before Init is a programming
// error, not a recoverable condition.
func Current() (*Session, error) {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	if defaultSession == nil {
		return nil, ErrNotInitialized
	}
	return defaultSession, nil
}

// Reset clears the process-wide session. Intended for tests.
func Reset() {
	defaultMu.Lock()
	defaultSession = nil
	defaultMu.Unlock()
}
