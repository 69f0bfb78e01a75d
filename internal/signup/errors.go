package signup

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidEmail   = errors.New("invalid email format")
	ErrDuplicateEmail = errors.New("email already registered")
	ErrRemoteRejected = errors.New("subscription rejected by backend")
	ErrNetwork        = errors.New("network error")

	// ErrIncompleteConfig is returned when a backend is built without its required settings.
	ErrIncompleteConfig = errors.New("incomplete backend configuration")
)

// RemoteError is a non-2xx answer from a subscription backend. It matches ErrRemoteRejected.
type RemoteError struct {
	Backend string
	Status  int
	Message string // backend's own error message, or the HTTP status text
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s rejected subscription (status %d): %s", e.Backend, e.Status, e.Message)
}

func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteRejected
}
