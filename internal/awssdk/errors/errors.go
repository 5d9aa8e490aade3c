package errors

import (
	goerrors "errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// NotFoundError indicates the addressed resource does not exist. Deletes treat it as benign.
type NotFoundError struct{ Cause error }

func (e *NotFoundError) Error() string { return fmt.Sprintf("not found: %v", e.Cause) }
func (e *NotFoundError) Unwrap() error { return e.Cause }

// ConflictError indicates a uniqueness/concurrent-modification conflict; callers should not blindly retry.
type ConflictError struct{ Cause error }

func (e *ConflictError) Error() string { return fmt.Sprintf("conflict: %v", e.Cause) }
func (e *ConflictError) Unwrap() error { return e.Cause }

// RetryableError indicates the request may succeed on retry with backoff.
type RetryableError struct{ Cause error }

func (e *RetryableError) Error() string { return fmt.Sprintf("retryable: %v", e.Cause) }
func (e *RetryableError) Unwrap() error { return e.Cause }

// OpError is a generic wrapper for unexpected failures.
type OpError struct{ Cause error }

func (e *OpError) Error() string { return fmt.Sprintf("op error: %v", e.Cause) }
func (e *OpError) Unwrap() error { return e.Cause }

// Classify maps smithy errors from the Cognito identity provider API to tool-wide categories.
// Already-classified errors are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if isClassified(err) {
		return err
	}
	var api smithy.APIError
	if goerrors.As(err, &api) {
		switch api.ErrorCode() {
		case "ResourceNotFoundException", "UserPoolDomainNotFoundException":
			return &NotFoundError{Cause: err}
		case "ConcurrentModificationException", "InvalidParameterException", "AliasExistsException":
			return &ConflictError{Cause: err}
		case "TooManyRequestsException", "ThrottlingException", "LimitExceededException", "InternalErrorException":
			return &RetryableError{Cause: err}
		}
	}
	return &OpError{Cause: err}
}

// IsNotFound reports whether err (or anything it wraps) was classified as NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return goerrors.As(err, &nf)
}

func isClassified(err error) bool {
	var (
		nf *NotFoundError
		cf *ConflictError
		rt *RetryableError
		op *OpError
	)
	return goerrors.As(err, &nf) || goerrors.As(err, &cf) || goerrors.As(err, &rt) || goerrors.As(err, &op)
}
