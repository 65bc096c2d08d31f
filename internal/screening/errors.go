package screening

import (
	"errors"
	"fmt"
)

// ErrSessionUnavailable is returned when a session can be neither found in
// memory nor loaded from storage.
var ErrSessionUnavailable = errors.New("session unavailable")

// ErrUnknownSession is returned by lookups for a session id that was never
// stored.
var ErrUnknownSession = errors.New("unknown session")

// PersistenceError reports that a turn was processed but could not be
// stored. The reply it accompanies is valid and the in-memory session stays
// authoritative; durability of that turn is not guaranteed.
type PersistenceError struct {
	SessionID string
	Op        string
	Err       error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist session %s (%s): %v", e.SessionID, e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsPersistence reports whether err carries a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
