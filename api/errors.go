// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for fastqueue.

package api

import (
	"errors"
	"fmt"
)

// Common errors used across the library.
var (
	ErrInvalidCapacity   = fmt.Errorf("capacity must be a positive integer")
	ErrIndexOutOfRange   = fmt.Errorf("queue index out of range")
	ErrEmptyBuffer       = fmt.Errorf("queue is empty")
	ErrBufferDestroyed   = fmt.Errorf("queue has been destroyed")
	ErrInvalidHandle     = fmt.Errorf("invalid queue handle")
	ErrInvalidArgument   = fmt.Errorf("invalid argument")
	ErrResourceExhausted = fmt.Errorf("resource exhausted")
	ErrRegistryClosed    = fmt.Errorf("registry is closed")
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidCapacity
	ErrCodeIndexOutOfRange
	ErrCodeEmptyBuffer
	ErrCodeBufferDestroyed
	ErrCodeInvalidHandle
	ErrCodeInvalidArgument
	ErrCodeResourceExhausted
	ErrCodeRegistryClosed
	ErrCodeInternal
)

var codeSentinels = map[ErrorCode]error{
	ErrCodeInvalidCapacity:   ErrInvalidCapacity,
	ErrCodeIndexOutOfRange:   ErrIndexOutOfRange,
	ErrCodeEmptyBuffer:       ErrEmptyBuffer,
	ErrCodeBufferDestroyed:   ErrBufferDestroyed,
	ErrCodeInvalidHandle:     ErrInvalidHandle,
	ErrCodeInvalidArgument:   ErrInvalidArgument,
	ErrCodeResourceExhausted: ErrResourceExhausted,
	ErrCodeRegistryClosed:    ErrRegistryClosed,
}

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
}

// Error implements the error interface.
func (e *Error) Error() string {
	if len(e.Context) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (context: %+v)", e.Message, e.Context)
}

// Unwrap exposes the sentinel matching Code, so errors.Is works against
// the package-level Err* values.
func (e *Error) Unwrap() error {
	return codeSentinels[e.Code]
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// CodeOf extracts the ErrorCode carried anywhere in err's chain, or
// ErrCodeInternal when the chain holds neither a structured *Error nor a
// sentinel. A nil err yields ErrCodeOK.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrCodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	for code, sentinel := range codeSentinels {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return ErrCodeInternal
}
