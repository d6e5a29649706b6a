package model

import "fmt"

// ExternalServiceError indicates the text-generation call failed at
// the transport level (network, HTTP status, timeout).
type ExternalServiceError struct {
	Provider string
	Err      error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s service call failed: %v", e.Provider, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// MalformedResponseError indicates the service responded but the
// payload was not parseable structured data.
type MalformedResponseError struct {
	Agent string
	Err   error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("%s: malformed response: %v", e.Agent, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// ValidationError indicates a parsed payload failed the guardrail
// rules (score range, sources, notes, confidence floor).
type ValidationError struct {
	Agent   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Agent, e.Message)
}

// InvariantViolation indicates broken internal consistency, such as
// scoring weights not summing to 1.0. These are configuration or
// programming errors, not per-request failures.
type InvariantViolation struct {
	Message string
}

func (e *InvariantViolation) Error() string {
	return "invariant violation: " + e.Message
}
