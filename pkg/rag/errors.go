package rag

import "errors"

// ErrInvalidInput marks a malformed rank or percentile. Surfaced to the user
// as a clarification request, never a crash.
var ErrInvalidInput = errors.New("invalid input")

// ErrUpstreamGeneration marks a failure of the external generation service.
// The core's own state is unaffected; no partial answer is cached.
var ErrUpstreamGeneration = errors.New("upstream generation failure")
