package snapshot

import "errors"

// Sentinel errors for snapshot persistence.

// ErrWrite indicates the snapshot file could not be written. The in-memory
// prompt and metrics remain valid and usable after this error.
var ErrWrite = errors.New("failed to write snapshot file")

// ErrRead indicates the snapshot file could not be read.
var ErrRead = errors.New("failed to read snapshot file")

// ErrParse indicates the snapshot file contents could not be decoded.
var ErrParse = errors.New("failed to parse snapshot file")
