package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

type Code string

const (
	CodeValidation             Code = "VALIDATION_ERROR"
	CodeDuplicateFieldSlug     Code = "DUPLICATE_FIELD_SLUG"
	CodeFieldRequired          Code = "FIELD_REQUIRED"
	CodeInvalidFieldFormat     Code = "INVALID_FIELD_FORMAT"
	CodeReadonlyFieldType      Code = "READONLY_FIELD_TYPE"
	CodeInvalidFieldType       Code = "INVALID_FIELD_TYPE"
	CodeInvalidSlug            Code = "INVALID_SLUG"
	CodeInvalidConfiguration   Code = "INVALID_CONFIGURATION"
	CodeNameRequired           Code = "NAME_REQUIRED"
	CodeInvalidReactionType    Code = "INVALID_REACTION_TYPE"
	CodeInvalidEvaluation      Code = "INVALID_EVALUATION_VALUE"
	CodeFieldNotReactionType   Code = "FIELD_NOT_REACTION_TYPE"
	CodeFieldNotEvaluation     Code = "FIELD_NOT_EVALUATION_TYPE"
	CodeFieldTypeMismatch      Code = "FIELD_TYPE_MISMATCH"
	CodeTableNotFound          Code = "TABLE_NOT_FOUND"
	CodeRowNotFound            Code = "ROW_NOT_FOUND"
	CodeFieldNotFound          Code = "FIELD_NOT_FOUND"
	CodeCategoryNodeNotFound   Code = "CATEGORY_NODE_NOT_FOUND"
	CodeSeparatorHasChildren   Code = "SEPARATOR_HAS_CHILDREN"
	CodeTableSlugTaken         Code = "TABLE_SLUG_TAKEN"
	CodeConcurrentUpdate       Code = "CONCURRENT_UPDATE"
	CodeAuthenticationRequired Code = "AUTHENTICATION_REQUIRED"
	CodeAccessDenied           Code = "ACCESS_DENIED"
	CodeStorageTimeout         Code = "STORAGE_TIMEOUT"
	CodeInternal               Code = "INTERNAL_ERROR"
)

// Error is a domain failure identified by a wire stable code. Two errors
// with the same code match under errors.Is.
type Error struct {
	Code    Code
	Message string
}

func NewError(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

var (
	ErrValidation             = &Error{Code: CodeValidation}
	ErrDuplicateFieldSlug     = &Error{Code: CodeDuplicateFieldSlug}
	ErrFieldRequired          = &Error{Code: CodeFieldRequired}
	ErrInvalidFieldFormat     = &Error{Code: CodeInvalidFieldFormat}
	ErrReadonlyFieldType      = &Error{Code: CodeReadonlyFieldType}
	ErrInvalidFieldType       = &Error{Code: CodeInvalidFieldType}
	ErrInvalidSlug            = &Error{Code: CodeInvalidSlug}
	ErrInvalidConfiguration   = &Error{Code: CodeInvalidConfiguration}
	ErrTableNameRequired      = &Error{Code: CodeNameRequired, Message: "table name is required"}
	ErrFieldNameRequired      = &Error{Code: CodeNameRequired, Message: "field name is required"}
	ErrInvalidReactionType    = &Error{Code: CodeInvalidReactionType}
	ErrInvalidEvaluation      = &Error{Code: CodeInvalidEvaluation}
	ErrFieldNotReactionType   = &Error{Code: CodeFieldNotReactionType}
	ErrFieldNotEvaluation     = &Error{Code: CodeFieldNotEvaluation}
	ErrFieldTypeMismatch      = &Error{Code: CodeFieldTypeMismatch}
	ErrTableNotFound          = &Error{Code: CodeTableNotFound}
	ErrRowNotFound            = &Error{Code: CodeRowNotFound}
	ErrFieldNotFound          = &Error{Code: CodeFieldNotFound}
	ErrCategoryNodeNotFound   = &Error{Code: CodeCategoryNodeNotFound}
	ErrSeparatorHasChildren   = &Error{Code: CodeSeparatorHasChildren}
	ErrTableSlugTaken         = &Error{Code: CodeTableSlugTaken}
	ErrConcurrentUpdate       = &Error{Code: CodeConcurrentUpdate}
	ErrAuthenticationRequired = &Error{Code: CodeAuthenticationRequired}
	ErrAccessDenied           = &Error{Code: CodeAccessDenied}
	ErrStorageTimeout         = &Error{Code: CodeStorageTimeout}
	ErrInternal               = &Error{Code: CodeInternal}
)

// ValidationError lists every failing field of a payload. Nested FIELD_GROUP
// failures are keyed as "group.child".
type ValidationError struct {
	FieldErrors map[string]*Error
}

func NewValidationError() *ValidationError {
	return &ValidationError{FieldErrors: make(map[string]*Error)}
}

func (e *ValidationError) Add(key string, err *Error) {
	e.FieldErrors[key] = err
}

// Merge copies nested errors under prefix.
func (e *ValidationError) Merge(prefix string, nested *ValidationError) {
	for key, err := range nested.FieldErrors {
		e.FieldErrors[prefix+"."+key] = err
	}
}

func (e *ValidationError) HasErrors() bool {
	return len(e.FieldErrors) > 0
}

// OrNil returns nil when no field failed.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.FieldErrors))
	for key := range e.FieldErrors {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", key, e.FieldErrors[key].Code))
	}
	return fmt.Sprintf("%s: %s", CodeValidation, strings.Join(parts, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return ErrValidation.Is(target)
}

// SeparatorHasChildrenError refuses to trash a category node that still has
// active children. The children are returned so the caller can confirm.
type SeparatorHasChildrenError struct {
	NodeID        ID
	ChildrenCount int
	Children      []CategoryNode
}

func NewSeparatorHasChildrenError(node CategoryNode, children []CategoryNode) *SeparatorHasChildrenError {
	return &SeparatorHasChildrenError{
		NodeID:        node.ID,
		ChildrenCount: len(children),
		Children:      children,
	}
}

func (e *SeparatorHasChildrenError) Error() string {
	return fmt.Sprintf("%s: node %q has %d active children", CodeSeparatorHasChildren, e.NodeID, e.ChildrenCount)
}

func (e *SeparatorHasChildrenError) Is(target error) bool {
	return ErrSeparatorHasChildren.Is(target)
}

// CodeOf extracts the domain code carried by err, INTERNAL_ERROR otherwise.
func CodeOf(err error) Code {
	var validation *ValidationError
	if errors.As(err, &validation) {
		return CodeValidation
	}
	var separator *SeparatorHasChildrenError
	if errors.As(err, &separator) {
		return CodeSeparatorHasChildren
	}
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeInternal
}

type Class string

const (
	ClassBadRequest      Class = "bad_request"
	ClassNotFound        Class = "not_found"
	ClassConflict        Class = "conflict"
	ClassUnauthenticated Class = "unauthenticated"
	ClassForbidden       Class = "forbidden"
	ClassInternal        Class = "internal"
)

// ClassOf maps err onto the coarse outcome the HTTP layer turns into a status.
func ClassOf(err error) Class {
	switch CodeOf(err) {
	case CodeValidation, CodeDuplicateFieldSlug, CodeFieldRequired, CodeInvalidFieldFormat,
		CodeReadonlyFieldType, CodeInvalidFieldType, CodeInvalidSlug, CodeInvalidConfiguration,
		CodeNameRequired, CodeInvalidReactionType, CodeInvalidEvaluation, CodeFieldNotReactionType,
		CodeFieldNotEvaluation, CodeFieldTypeMismatch:
		return ClassBadRequest
	case CodeTableNotFound, CodeRowNotFound, CodeFieldNotFound, CodeCategoryNodeNotFound:
		return ClassNotFound
	case CodeSeparatorHasChildren, CodeTableSlugTaken, CodeConcurrentUpdate:
		return ClassConflict
	case CodeAuthenticationRequired:
		return ClassUnauthenticated
	case CodeAccessDenied:
		return ClassForbidden
	default:
		return ClassInternal
	}
}
