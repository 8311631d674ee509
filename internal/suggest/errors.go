package suggest

import "errors"

// Sentinel errors for suggestion client operations.

// ErrClientNil indicates the underlying OpenAI client was nil when used.
var ErrClientNil = errors.New("suggestion client cannot be nil")

// ErrCompletion indicates an error occurred during the suggestion API call
// (network error, API error). The underlying SDK error is wrapped.
var ErrCompletion = errors.New("failed to create suggestion completion")

// ErrEmptyResponse indicates the service returned no usable content.
var ErrEmptyResponse = errors.New("received an empty response from suggestion service")
