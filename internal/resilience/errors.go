// Copyright Lease Lens contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package resilience classifies failures from the external language-model
// service. Calls are single-attempt by design: the pipeline never retries on
// its own. Classification makes the transient/permanent boundary explicit so
// a future caller can add retries without touching pipeline logic.
package resilience

import (
	"context"
	"errors"
	"net"
	"net/http"
)

// ErrorType separates failures a retry could cure from ones it cannot.
type ErrorType int

const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeTransient
	ErrorTypePermanent
	ErrorTypeTimeout
	ErrorTypeRateLimit
)

// ClassifiedError wraps an error with its failure class.
type ClassifiedError struct {
	Original  error
	Type      ErrorType
	Message   string
	Retryable bool
}

func (e *ClassifiedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Original.Error()
}

func (e *ClassifiedError) Unwrap() error { return e.Original }

// IsRetryable reports whether a retry could plausibly succeed.
func (e *ClassifiedError) IsRetryable() bool { return e.Retryable }

// NewTransientError marks err as retry-curable.
func NewTransientError(message string, err error) *ClassifiedError {
	return &ClassifiedError{Original: err, Type: ErrorTypeTransient, Message: message, Retryable: true}
}

// NewPermanentError marks err as not worth retrying.
func NewPermanentError(message string, err error) *ClassifiedError {
	return &ClassifiedError{Original: err, Type: ErrorTypePermanent, Message: message, Retryable: false}
}

// ClassifyHTTPStatus maps a chat-completions HTTP status to a failure class.
func ClassifyHTTPStatus(status int, err error) *ClassifiedError {
	switch {
	case status == http.StatusTooManyRequests:
		return &ClassifiedError{Original: err, Type: ErrorTypeRateLimit, Retryable: true}
	case status >= 500:
		return &ClassifiedError{Original: err, Type: ErrorTypeTransient, Retryable: true}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return &ClassifiedError{Original: err, Type: ErrorTypePermanent, Retryable: false}
	case status >= 400:
		return &ClassifiedError{Original: err, Type: ErrorTypePermanent, Retryable: false}
	default:
		return &ClassifiedError{Original: err, Type: ErrorTypeUnknown, Retryable: false}
	}
}

// Classify categorizes a transport-level error.
func Classify(err error) *ClassifiedError {
	if err == nil {
		return nil
	}
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &ClassifiedError{Original: err, Type: ErrorTypeTimeout, Retryable: true}
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return &ClassifiedError{Original: err, Type: ErrorTypeTransient, Retryable: true}
	}
	return &ClassifiedError{Original: err, Type: ErrorTypeUnknown, Retryable: false}
}
