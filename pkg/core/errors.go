package core

import (
	"errors"
	"fmt"
)

// ErrSessionClosed is wrapped by DataAccessError when a closed session or
// store is used.
var ErrSessionClosed = errors.New("store connection is closed")

// DataAccessError is returned when the backing store is unreachable, a table
// is missing, or a scan cannot complete.
type DataAccessError struct {
	Table string
	Op    string
	Err   error
}

func (e *DataAccessError) Error() string {
	if e.Table == "" {
		return fmt.Sprintf("data access error: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("data access error: %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *DataAccessError) Unwrap() error {
	return e.Err
}

// ResolutionError is returned when a coded value has no usable match in its
// reference table.
type ResolutionError struct {
	View   string
	Column string
	Key    any
	Reason string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolution error: view %s, column %s: key %v %s", e.View, e.Column, e.Key, e.Reason)
}

// SchemaError is returned when a table does not have the shape the system
// depends on (missing key column, unexpected layout, duplicate index).
type SchemaError struct {
	Table   string
	Message string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: table %s: %s", e.Table, e.Message)
}

// Common resolution reasons
const (
	ReasonMissingKey = "not found in reference table"
	ReasonNullKey    = "is null"
	ReasonAbsent     = "maps to an absent value"
	ReasonBadDate    = "does not resolve to a parseable date"
)
