package coach

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMissingCredential indicates the ambient AI credential is absent. The
// caller should prompt for (re-)configuration instead of showing a generic
// failure.
var ErrMissingCredential = errors.New("generative AI credential is not configured")

// ErrEmptyResponse indicates the provider returned no payload.
var ErrEmptyResponse = errors.New("empty response from the model")

// ProviderError wraps any other provider or transport failure, preserving
// the provider's message for display.
type ProviderError struct {
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error: %v", e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// MalformedPlanError indicates the payload did not parse into the expected
// plan shape. Diagnostic is for debugging; users cannot act on it.
type MalformedPlanError struct {
	Diagnostic string
	Raw        string
}

func (e *MalformedPlanError) Error() string {
	return fmt.Sprintf("malformed plan: %s", e.Diagnostic)
}

// looksLikeMissingKey classifies provider failures caused by an absent or
// rejected API key so the caller can prompt for re-authentication.
func looksLikeMissingKey(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "api key") || strings.Contains(msg, "api_key")
}
