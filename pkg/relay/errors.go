package relay

import "fmt"

// ValidationError reports an invocation that is incomplete before any I/O:
// interface name, instance address or method name is empty. Never retried and
// no HTTP request is issued.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("relay: invocation is missing %s", e.Field)
}

// UnauthorizedError reports a 401 from the relay that the client will not
// recover from: any 401 in private-key mode, or a 401 that persists after the
// one-shot JWT refresh in public-key mode.
type UnauthorizedError struct {
	// Attempts is the number of HTTP requests issued before giving up.
	Attempts int
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("relay: unauthorized after %d attempt(s)", e.Attempts)
}

// HTTPError reports any non-2xx, non-401 relay response. It carries the
// status code and status text; fatal, not retried by this layer.
type HTTPError struct {
	Status     int
	StatusText string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("relay: unexpected status %d %s", e.Status, e.StatusText)
}

// NetworkError reports a transport-level failure (DNS, connection reset,
// timeout). Fatal for the invocation; retry policy belongs to the caller.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("relay: network failure: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
