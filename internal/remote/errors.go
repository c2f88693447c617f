package remote

import (
	"errors"
	"fmt"
)

// ReadError reports a failed or malformed fetch from the record store.
// The canonical list must stay untouched when one of these surfaces.
type ReadError struct {
	Table   string
	Message string
	Err     error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read %s: %s", e.Table, e.Message)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a create or update the record store rejected.
type WriteError struct {
	Table   string
	Op      string // "create" | "update"
	Message string
	Err     error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Table, e.Message)
}

func (e *WriteError) Unwrap() error { return e.Err }

// IsRead reports whether err is (or wraps) a ReadError.
func IsRead(err error) bool {
	var re *ReadError
	return errors.As(err, &re)
}

// IsWrite reports whether err is (or wraps) a WriteError.
func IsWrite(err error) bool {
	var we *WriteError
	return errors.As(err, &we)
}

// UserMessage extracts the human-readable message carried by a remote
// error, falling back to the plain error text.
func UserMessage(err error) string {
	var re *ReadError
	if errors.As(err, &re) {
		return re.Message
	}
	var we *WriteError
	if errors.As(err, &we) {
		return we.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
