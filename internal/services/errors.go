package services

import (
	"errors"

	"github.com/readinglab/passage-service/internal/generator"
	"github.com/readinglab/passage-service/internal/scoring"
)

var (
	ErrPassageNotFound = errors.New("passage not found")
	ErrPendingNotFound = errors.New("pending result not found or expired")
	ErrInternalError   = errors.New("internal server error")
)

// IsValidationError reports whether err is an input-validation failure:
// rejected immediately, never retried, surfaced verbatim to the caller.
func IsValidationError(err error) bool {
	return errors.Is(err, generator.ErrInvalidLevel) ||
		errors.Is(err, scoring.ErrAnswerCountMismatch) ||
		errors.Is(err, scoring.ErrNoQuestions)
}

// IsGenerationError reports whether err came from the external generation
// service or its output. These are surfaced to the immediate caller and, in
// the batch context, recorded per item so the job reports partial success.
func IsGenerationError(err error) bool {
	return errors.Is(err, generator.ErrGenerationFailed) ||
		errors.Is(err, generator.ErrMalformedResponse) ||
		errors.Is(err, generator.ErrInvalidPassageShape)
}

// IsNotFound reports whether err represents a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPassageNotFound) || errors.Is(err, ErrPendingNotFound)
}
