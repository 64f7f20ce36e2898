package history

import (
	"errors"
	"fmt"
)

// ErrNoData is returned by Collect when no provider produced a usable reading.
var ErrNoData = errors.New("no provider readings available")

// ValidationError reports an observation or reading that was rejected before
// any write occurred.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s (got %v)", e.Field, e.Message, e.Value)
}

// PersistenceError wraps a storage failure. Callers are expected to degrade
// gracefully (empty history) rather than terminate.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("history storage %s failed for %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsPersistence reports whether err is (or wraps) a PersistenceError.
func IsPersistence(err error) bool {
	var pe *PersistenceError
	return errors.As(err, &pe)
}
