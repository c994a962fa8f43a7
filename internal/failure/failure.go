// Copyright (c) CurioSwitch (choko@curioswitch.org)
// SPDX-License-Identifier: BUSL-1.1

// Package failure defines the fixed taxonomy of generation failures and the
// classifier that maps vendor error shapes onto it. Adapters classify at
// their boundary so the pipeline only ever sees typed failures.
package failure

import (
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Kind is a classified failure kind.
type Kind string

const (
	// KindQuota is a quota/rate-limit failure. Not retryable; callers stop
	// issuing further requests in the batch but continue the user flow.
	KindQuota Kind = "quota_exceeded"

	// KindInvalidCredentials indicates the API key is invalid or lacks
	// access to the requested product.
	KindInvalidCredentials Kind = "invalid_credentials"

	// KindPermissionDenied indicates the API key was rejected, for example
	// after being reported as leaked.
	KindPermissionDenied Kind = "permission_denied"

	// KindTransient is a failure worth retrying with backoff.
	KindTransient Kind = "transient"

	// KindTimeout indicates a long-running operation exceeded its poll cap.
	KindTimeout Kind = "timeout"

	// KindInvalidResponse indicates vendor output failed schema parsing.
	KindInvalidResponse Kind = "invalid_response"

	// KindUnknown is any other failure, surfaced with a truncated vendor
	// message.
	KindUnknown Kind = "unknown"
)

// Vendor messages on unknown failures are truncated to this length.
const maxMessageLen = 200

// Error is a classified failure.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// New returns a classified failure with the given kind and message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap returns a classified failure wrapping cause.
func Wrap(kind Kind, cause error) *Error {
	return &Error{Kind: kind, Message: cause.Error(), cause: cause}
}

// KindOf returns the kind of a classified failure, or KindUnknown for any
// other error.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return KindUnknown
}

// Classify maps a vendor error onto the taxonomy. Already-classified errors
// pass through unchanged.
func Classify(err error) *Error {
	if err == nil {
		return nil
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}

	status := ""
	code := 0
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.Status
		code = apiErr.Code
	}

	return classify(status, code, err.Error(), err)
}

// FromOperation classifies the error payload of a long-running operation.
// The payload is the vendor's structured error: code, message, and status
// fields.
func FromOperation(payload map[string]any) *Error {
	if payload == nil {
		return nil
	}
	status, _ := payload["status"].(string)
	message, _ := payload["message"].(string)
	code := 0
	if c, ok := payload["code"].(float64); ok {
		code = int(c)
	}
	if message == "" {
		message = fmt.Sprintf("%v", payload)
	}
	return classify(status, code, message, nil)
}

func classify(status string, code int, message string, cause error) *Error {
	st := strings.ToLower(status)
	msg := strings.ToLower(message)

	e := &Error{Message: truncate(message), cause: cause}
	switch {
	case code == 429 || strings.Contains(st, "resource_exhausted") ||
		strings.Contains(msg, "quota") || strings.Contains(msg, "429") ||
		strings.Contains(msg, "resource_exhausted") || strings.Contains(msg, "rate limit"):
		e.Kind = KindQuota
	case code == 404 || strings.Contains(st, "not_found") || strings.Contains(msg, "not found") ||
		strings.Contains(msg, "404"):
		e.Kind = KindInvalidCredentials
	case code == 403 || strings.Contains(st, "permission_denied") ||
		strings.Contains(msg, "permission denied") || strings.Contains(msg, "403") ||
		strings.Contains(msg, "leaked"):
		e.Kind = KindPermissionDenied
	case strings.Contains(st, "unavailable") || strings.Contains(st, "deadline_exceeded") ||
		strings.Contains(msg, "unavailable") || strings.Contains(msg, "deadline_exceeded") ||
		strings.Contains(msg, "timeout"):
		e.Kind = KindTransient
	default:
		e.Kind = KindUnknown
	}
	return e
}

func truncate(s string) string {
	if len(s) <= maxMessageLen {
		return s
	}
	return s[:maxMessageLen] + "..."
}

// Hint returns a user-facing remediation hint for terminal credential
// failures, or an empty string.
func Hint(kind Kind) string {
	switch kind {
	case KindInvalidCredentials:
		return "The API key is invalid or lacks access to video generation. Select a valid key and try again."
	case KindPermissionDenied:
		return "The API key does not have permission or was reported as leaked. Issue a new key and update the configuration."
	default:
		return ""
	}
}
