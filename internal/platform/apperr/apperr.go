// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for the importer.

It provides a rich error type that carries a machine-readable code alongside the
underlying cause, so that the import pipeline can classify every failure into a
report bucket without string matching.

Architecture:

  - AppError: A struct containing a machine-readable Code and a readable message.
  - Classification: Codes map one to one onto the failure categories of an import run.
  - Chains: [AppError.Unwrap] exposes the cause to [errors.Is] and [errors.As].
*/
package apperr

import (
	"errors"
	"fmt"
)

// # Codes

const (
	CodeEncoding   = "ENCODING"
	CodeContent    = "CONTENT"
	CodeDuplicate  = "DUPLICATE"
	CodeDatabase   = "DATABASE"
	CodeNotFound   = "NOT_FOUND"
	CodeValidation = "VALIDATION_ERROR"
	CodeInternal   = "INTERNAL_ERROR"
)

// AppError is the canonical error type for the importer.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "ENCODING", "DUPLICATE").
	Code string `json:"code"`
	// Message is a human-readable description of the failure.
	Message string `json:"error"`
	// Cause is the underlying error, if any.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_ERROR.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface. The cause is appended when present.
func (e *AppError) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + e.Cause.Error()
}

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Pipeline Errors

// Encoding creates an [AppError] for bytes that no candidate charset could decode.
func Encoding(msg string) *AppError {
	return &AppError{Code: CodeEncoding, Message: msg}
}

// Content creates an [AppError] for decoded text that is unusable as a novel.
func Content(msg string) *AppError {
	return &AppError{Code: CodeContent, Message: msg}
}

// Duplicate creates an [AppError] for a record that already exists.
//
// Example:
//
//	apperr.Duplicate("Novel", "斗破苍穹") // Returns "Novel already exists: 斗破苍穹"
func Duplicate(resource, key string) *AppError {
	return &AppError{
		Code:    CodeDuplicate,
		Message: fmt.Sprintf("%s already exists: %s", resource, key),
	}
}

// Database creates an [AppError] wrapping a storage failure.
func Database(action string, cause error) *AppError {
	return &AppError{
		Code:    CodeDatabase,
		Message: "database error during " + action,
		Cause:   cause,
	}
}

// # Lookup & Input Errors

// NotFound creates an [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Category") // Returns "Category not found"
func NotFound(resource string) *AppError {
	return &AppError{Code: CodeNotFound, Message: resource + " not found"}
}

// ValidationError creates an [AppError] with optional per-field details.
func ValidationError(msg string, details ...FieldError) *AppError {
	return &AppError{Code: CodeValidation, Message: msg, Details: details}
}

// Internal wraps an unexpected error.
func Internal(cause error) *AppError {
	return &AppError{Code: CodeInternal, Message: "unexpected error", Cause: cause}
}

// # Helpers

// Wrap returns a copy of e with cause attached.
func (e *AppError) Wrap(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// CodeOf returns the code of the first [*AppError] in err's chain, or
// [CodeInternal] when there is none.
func CodeOf(err error) string {
	if ae := As(err); ae != nil {
		return ae.Code
	}
	return CodeInternal
}
