package services

import (
	"fmt"

	"research-program-api/models"
)

// ValidationError reports a user-correctable problem with the submitted
// fields, e.g. approving an entry whose required documents are missing.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// ConflictError reports that the requested mutation collides with an existing
// record. It carries enough identifying detail for the caller to redirect to
// the existing record instead of retrying blindly.
type ConflictError struct {
	Reason         string
	ExistingID     uint
	Status         models.PublicationStatus
	WorkflowStatus models.WorkflowStatus
}

func (e *ConflictError) Error() string {
	if e.ExistingID != 0 {
		return fmt.Sprintf("%s (existing id %d)", e.Reason, e.ExistingID)
	}
	return e.Reason
}

// NotFoundError reports that a referenced id did not resolve.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	if e.ID != 0 {
		return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// StorageError wraps an underlying database failure. Multi-statement
// operations roll back before returning one of these; it is never swallowed.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
