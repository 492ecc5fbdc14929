package storage

import (
	"errors"
	"fmt"

	"invoicegen/internal/gcloud"
)

// Common storage errors
var (
	// ErrInvalidRequest is returned when a PutObjectRequest is incomplete.
	ErrInvalidRequest = errors.New("invalid put object request")

	// ErrUploadFailed is matched by every ServiceError.
	ErrUploadFailed = errors.New("object upload failed")

	// ErrMissingCredentials is returned when no Google Cloud credentials can be found.
	ErrMissingCredentials = gcloud.ErrMissingCredentials
)

// ServiceError is a failure reported by the storage service.
type ServiceError struct {
	// Status is the HTTP status code.
	Status int

	// Code is the service error code (e.g., "forbidden", "notFound").
	Code string

	// Message is the service error message.
	Message string
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("storage service error: status %d, code %s, message %s", e.Status, e.Code, e.Message)
}

// Is matches ErrUploadFailed.
func (e *ServiceError) Is(target error) bool {
	return target == ErrUploadFailed
}

// StorageError wraps errors with the storage operation that failed.
type StorageError struct {
	// Op is the operation that failed (e.g., "PutObject", "NewGCSUploader").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("storage: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("storage: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *StorageError) Unwrap() error {
	return e.Err
}

// WrapStorageError wraps an error as a StorageError if it isn't already one.
func WrapStorageError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		return err
	}

	return &StorageError{Op: op, Err: err, Details: details}
}
