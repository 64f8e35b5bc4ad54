package generator

import "errors"

var (
	// ErrInvalidLevel is returned when a difficulty level is outside the
	// supported 1-16 domain.
	ErrInvalidLevel = errors.New("difficulty level out of range")

	// ErrGenerationFailed wraps failures of the external generation call
	// (network, quota, auth). The client performs no retries; pacing and
	// retry policy belong to the caller.
	ErrGenerationFailed = errors.New("passage generation failed")

	// ErrMalformedResponse is returned when the model reply contains no
	// parseable JSON object.
	ErrMalformedResponse = errors.New("no JSON object found in generation response")

	// ErrInvalidPassageShape is returned when the parsed object violates the
	// passage schema (missing fields, empty questions, answer index out of
	// range). Callers should treat it like a generation failure and may retry
	// with a fresh brief.
	ErrInvalidPassageShape = errors.New("generated passage has invalid shape")
)
