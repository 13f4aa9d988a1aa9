package models

import (
	"errors"
	"fmt"
)

// ErrRecordNotFound is returned by repositories when a lookup matches nothing.
var ErrRecordNotFound = errors.New("record not found")

// ValidationError reports a missing, malformed or unrecognised input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// ForbiddenError reports that the caller is not allowed to perform the action.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return e.Reason
}

func NewRequiredFieldError(field string) error {
	return &ValidationError{Field: field, Reason: "is required"}
}

func NewInvalidIDError(field string) error {
	return &ValidationError{Field: field, Reason: "must be a valid UUID"}
}

func NewInvalidMessageTypeError(field string) error {
	return &ValidationError{Field: field, Reason: "must be one of " + messageTypeList()}
}

func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func NewForbiddenError(reason string) error {
	return &ForbiddenError{Reason: reason}
}

// AsValidationError unwraps err into a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsForbidden(err error) bool {
	var fe *ForbiddenError
	return errors.As(err, &fe)
}
