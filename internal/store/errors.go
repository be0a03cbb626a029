package store

import (
	"errors"
	"fmt"
)

// ErrWrongType is the sentinel for cross-type operations. Callers match it
// with errors.Is; the concrete *WrongTypeError carries the details.
var ErrWrongType = errors.New("operation against a key holding the wrong kind of value")

// WrongTypeError reports an operation whose required variant does not match
// the variant stored under the key. It is the only recoverable error the
// store produces; absence of a key or field is never an error.
type WrongTypeError struct {
	Key  string
	Have DataType
	Want DataType
}

func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("key %q holds a %s, not a %s", e.Key, e.Have, e.Want)
}

func (e *WrongTypeError) Is(target error) bool {
	return target == ErrWrongType
}

func wrongType(key string, have, want DataType) error {
	return &WrongTypeError{Key: key, Have: have, Want: want}
}
