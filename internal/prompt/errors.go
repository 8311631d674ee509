package prompt

import "errors"

// Sentinel errors for component store operations.

// ErrUnknownField indicates the caller referenced a field that does not exist
// in the active tier's schema. This is a programmer error and is never
// silently ignored.
var ErrUnknownField = errors.New("field is not part of the active tier's schema")

// ErrTypeMismatch indicates a value operation that does not match the field's
// kind (e.g. appending to a scalar text field).
var ErrTypeMismatch = errors.New("operation does not match the field's kind")
