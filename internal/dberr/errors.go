package dberr

import (
	"errors"
	"fmt"
)

// Error carries a classified outcome to the transport layer.
type Error struct {
	Kind    Kind
	Entity  string
	Field   string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case e.Field != "":
		return fmt.Sprintf("%s %s: %s: %s", e.Entity, e.Kind, e.Field, e.Message)
	case e.Message != "":
		return fmt.Sprintf("%s %s: %s", e.Entity, e.Kind, e.Message)
	default:
		return fmt.Sprintf("%s %s", e.Entity, e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

// FromOutcome wraps a classifier outcome for entity.
func FromOutcome(entity string, o Outcome, cause error) *Error {
	return &Error{Kind: o.Kind, Entity: entity, Field: o.Field, Message: o.Message, Cause: cause}
}

func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity}
}

// Conflict builds a conflict that is not attributed to a field.
func Conflict(entity, message string) *Error {
	return &Error{Kind: KindConflict, Entity: entity, Message: message}
}

// KindOf returns the kind of a classified error, or KindInternal for any
// other non-nil error.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool { return KindOf(err) == KindConflict }
