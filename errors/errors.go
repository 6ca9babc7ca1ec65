/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Common sentinel errors
var (
	// ErrUnknownField is returned when a namespace references fields the schema does not know
	ErrUnknownField = errors.New("unknown field")

	// ErrNoMatchingField is returned when a namespace prefix matches no schema field
	ErrNoMatchingField = errors.New("no field matches prefix")

	// ErrFieldClaimed is returned when a field already belongs to another namespace
	ErrFieldClaimed = errors.New("field already claimed by a namespace")

	// ErrMethodConflict is returned when a namespace name collides with a field or method
	ErrMethodConflict = errors.New("method name conflict")

	// ErrClassConflict is returned when a value class is re-requested with different fields
	ErrClassConflict = errors.New("value class conflict")

	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoIndexMap is returned when no index map is registered for a schema
	ErrNoIndexMap = errors.New("no index map found for schema")
)

// UnknownFieldError lists every field an explicit mapping referenced that the schema lacks.
type UnknownFieldError struct {
	Schema string
	Fields []string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s: unknown field(s): %s", e.Schema, sentence(e.Fields))
}

func (e *UnknownFieldError) Is(target error) bool {
	return target == ErrUnknownField
}

// NoMatchingFieldError is returned when a prefix selects zero fields.
type NoMatchingFieldError struct {
	Schema string
	Prefix string
}

func (e *NoMatchingFieldError) Error() string {
	return fmt.Sprintf("%s: no fields found with prefix %q", e.Schema, e.Prefix)
}

func (e *NoMatchingFieldError) Is(target error) bool {
	return target == ErrNoMatchingField
}

// FieldClaimedError reports a flat field shared by two namespaces.
type FieldClaimedError struct {
	Field     string
	Namespace string
	ClaimedBy string
}

func (e *FieldClaimedError) Error() string {
	return fmt.Sprintf("field %q requested by namespace %q is already claimed by namespace %q", e.Field, e.Namespace, e.ClaimedBy)
}

func (e *FieldClaimedError) Is(target error) bool {
	return target == ErrFieldClaimed
}

// MethodConflictError reports a namespace whose name is already taken on the schema.
type MethodConflictError struct {
	Schema string
	Method string
}

func (e *MethodConflictError) Error() string {
	return fmt.Sprintf("%s: %q is already defined", e.Schema, e.Method)
}

func (e *MethodConflictError) Is(target error) bool {
	return target == ErrMethodConflict
}

// ClassConflictError reports a value class requested twice with different fields.
type ClassConflictError struct {
	Class    string
	Existing []string
	Request  []string
}

func (e *ClassConflictError) Error() string {
	return fmt.Sprintf("value class %q already defined with fields [%s], requested [%s]",
		e.Class, strings.Join(e.Existing, ", "), strings.Join(e.Request, ", "))
}

func (e *ClassConflictError) Is(target error) bool {
	return target == ErrClassConflict
}

// NotFoundError represents an error when a record is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// Helper functions for creating errors

// NewUnknownFieldError creates a new UnknownFieldError
func NewUnknownFieldError(schema string, fields []string) error {
	return &UnknownFieldError{Schema: schema, Fields: fields}
}

// NewNoMatchingFieldError creates a new NoMatchingFieldError
func NewNoMatchingFieldError(schema, prefix string) error {
	return &NoMatchingFieldError{Schema: schema, Prefix: prefix}
}

// NewFieldClaimedError creates a new FieldClaimedError
func NewFieldClaimedError(field, namespace, claimedBy string) error {
	return &FieldClaimedError{Field: field, Namespace: namespace, ClaimedBy: claimedBy}
}

// NewMethodConflictError creates a new MethodConflictError
func NewMethodConflictError(schema, method string) error {
	return &MethodConflictError{Schema: schema, Method: method}
}

// NewClassConflictError creates a new ClassConflictError
func NewClassConflictError(class string, existing, request []string) error {
	return &ClassConflictError{Class: class, Existing: existing, Request: request}
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(recordType, key string) error {
	return &NotFoundError{Type: recordType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsUnknownField checks if an error is an unknown field error
func IsUnknownField(err error) bool {
	return errors.Is(err, ErrUnknownField)
}

// IsNoMatchingField checks if an error is a no matching field error
func IsNoMatchingField(err error) bool {
	return errors.Is(err, ErrNoMatchingField)
}

// IsFieldClaimed checks if an error is a field claimed error
func IsFieldClaimed(err error) bool {
	return errors.Is(err, ErrFieldClaimed)
}

// IsMethodConflict checks if an error is a method conflict error
func IsMethodConflict(err error) bool {
	return errors.Is(err, ErrMethodConflict)
}

// IsClassConflict checks if an error is a class conflict error
func IsClassConflict(err error) bool {
	return errors.Is(err, ErrClassConflict)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// sentence joins names as "a", "a and b" or "a, b, and c".
func sentence(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	}
	return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
}
