package llm

import "fmt"

// ProviderError wraps a failed call to the external generation service
// (network, quota, auth or server-side failures).
type ProviderError struct {
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("generation provider error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("generation provider error: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// EmptyResponseError indicates the provider returned no usable text content.
type EmptyResponseError struct {
	Model string
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("no text content in response from %s", e.Model)
}
