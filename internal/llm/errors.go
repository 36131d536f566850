package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies why a remote answer could not be produced.
type Kind int

const (
	KindNone Kind = iota
	KindMissingCredential
	KindTimeout
	KindRateLimited
	KindAuthRejected
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindMissingCredential:
		return "missing_credential"
	case KindTimeout:
		return "timeout"
	case KindRateLimited:
		return "rate_limited"
	case KindAuthRejected:
		return "auth_rejected"
	default:
		return "other"
	}
}

// ProviderError represents a classified provider failure
type ProviderError struct {
	Provider string
	Kind     Kind
	Msg      string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// ErrMissingCredential indicates no API key was available for the provider
func ErrMissingCredential(provider, envVar string) error {
	return &ProviderError{
		Provider: provider,
		Kind:     KindMissingCredential,
		Msg:      fmt.Sprintf("%s not set for provider '%s'", envVar, provider),
	}
}

// ErrProviderNotAvailable indicates the provider could not be constructed (SDK init failed)
func ErrProviderNotAvailable(provider string, err error) error {
	return &ProviderError{
		Provider: provider,
		Kind:     KindOther,
		Msg:      fmt.Sprintf("provider '%s' not available", provider),
		Err:      err,
	}
}

// ErrTimeout indicates the request did not complete in time
func ErrTimeout(provider string, err error) error {
	return &ProviderError{
		Provider: provider,
		Kind:     KindTimeout,
		Msg:      fmt.Sprintf("request to provider '%s' timed out", provider),
		Err:      err,
	}
}

// ErrAuthenticationFailed indicates authentication failure (invalid API key, etc.)
func ErrAuthenticationFailed(provider string, err error) error {
	return &ProviderError{
		Provider: provider,
		Kind:     KindAuthRejected,
		Msg:      fmt.Sprintf("authentication failed for provider '%s'", provider),
		Err:      err,
	}
}

// ErrRateLimitExceeded indicates the provider's rate limit was hit
func ErrRateLimitExceeded(provider string, err error) error {
	return &ProviderError{
		Provider: provider,
		Kind:     KindRateLimited,
		Msg:      fmt.Sprintf("rate limit exceeded for provider '%s'", provider),
		Err:      err,
	}
}

// ErrRemote wraps any other provider failure
func ErrRemote(provider string, err error) error {
	return &ProviderError{
		Provider: provider,
		Kind:     KindOther,
		Msg:      fmt.Sprintf("provider '%s' request failed", provider),
		Err:      err,
	}
}

// RemoteError carries the status a back end reported next to its error.
// Error() is the underlying text unchanged so text classification still sees it.
type RemoteError struct {
	StatusCode int
	Status     string
	Err        error
}

func (e *RemoteError) Error() string {
	return e.Err.Error()
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Classify maps a provider failure to a ProviderError.
//
// The lower-cased error text is matched first ("timeout", "rate_limit",
// "authentication", in that order), even for errors that already carry a
// kind. An existing kind, context deadlines and status codes are only
// consulted when no text rule matches.
func Classify(provider string, err error) error {
	if err == nil {
		return nil
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "timeout"):
		return ErrTimeout(provider, err)
	case strings.Contains(msg, "rate_limit"):
		return ErrRateLimitExceeded(provider, err)
	case strings.Contains(msg, "authentication"):
		return ErrAuthenticationFailed(provider, err)
	}

	var pe *ProviderError
	if errors.As(err, &pe) && pe.Kind != KindOther {
		return pe
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout(provider, err)
	}

	var re *RemoteError
	if errors.As(err, &re) {
		switch {
		case re.StatusCode == http.StatusTooManyRequests, re.Status == "RESOURCE_EXHAUSTED", re.Status == "rate_limit_exceeded":
			return ErrRateLimitExceeded(provider, err)
		case re.StatusCode == http.StatusUnauthorized, re.StatusCode == http.StatusForbidden,
			re.Status == "UNAUTHENTICATED", re.Status == "PERMISSION_DENIED", re.Status == "invalid_api_key":
			return ErrAuthenticationFailed(provider, err)
		case re.StatusCode == http.StatusGatewayTimeout, re.StatusCode == http.StatusRequestTimeout, re.Status == "DEADLINE_EXCEEDED":
			return ErrTimeout(provider, err)
		}
	}

	if pe != nil {
		return pe
	}
	return ErrRemote(provider, err)
}

// TypeName reports the Go type of the innermost descriptive error, skipping
// the llmqa wrappers so users see the SDK's own error type.
func TypeName(err error) string {
	for {
		switch e := err.(type) {
		case *ProviderError:
			if e.Err == nil {
				return fmt.Sprintf("%T", e)
			}
			err = e.Err
		case *RemoteError:
			err = e.Err
		default:
			return fmt.Sprintf("%T", err)
		}
	}
}
