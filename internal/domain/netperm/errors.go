package netperm

import (
	"errors"
	"fmt"
)

// Entry errors
var (
	ErrEntryNotFound  = errors.New("permission entry not found")
	ErrDuplicateEntry = errors.New("permission entry already exists")
)

// UnknownLabelError reports a permission label outside the canonical table.
type UnknownLabelError struct {
	Token string
}

func (e *UnknownLabelError) Error() string {
	return fmt.Sprintf("permission %q not recognized", e.Token)
}

// InvalidTargetError reports an endpoint or subnet segment that did not
// parse. The underlying parser error is preserved for unwrapping.
type InvalidTargetError struct {
	Segment string
	Err     error
}

func (e *InvalidTargetError) Error() string {
	return fmt.Sprintf("invalid target %q: %v", e.Segment, e.Err)
}

func (e *InvalidTargetError) Unwrap() error {
	return e.Err
}
