// Package dberr turns storage failures into caller-facing outcomes. A
// constraint failure reported by the engine is attributed to a payload field
// by matching the engine's diagnostic text against a schema descriptor.
package dberr

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"sales-service/internal/schema"
)

type Kind string

const (
	KindNotFound Kind = "not_found"
	KindConflict Kind = "conflict"
	KindInternal Kind = "internal"
)

// Outcome is the result of classifying a storage error.
type Outcome struct {
	Kind    Kind
	Field   string
	Message string
}

// Diagnostic returns the engine message carried by err, if any.
func Diagnostic(err error) (string, bool) {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Message != "" {
		return myErr.Message, true
	}
	return "", false
}

// Number returns the MySQL error number carried by err, or 0.
func Number(err error) uint16 {
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number
	}
	return 0
}

// Classify attributes err to a field of desc. Errors without a diagnostic,
// or classified without a descriptor, are internal.
func Classify(err error, desc *schema.Descriptor) Outcome {
	if err == nil {
		return Outcome{Kind: KindInternal}
	}
	msg, ok := Diagnostic(err)
	if !ok || desc == nil {
		return Outcome{Kind: KindInternal, Message: err.Error()}
	}
	if field, found := findField(msg, desc); found {
		return Outcome{Kind: KindConflict, Field: field, Message: msg}
	}
	return Outcome{Kind: KindInternal, Message: msg}
}

func findField(msg string, desc *schema.Descriptor) (string, bool) {
	lower := strings.ToLower(msg)
	for _, f := range desc.Fields {
		if mentionsColumn(lower, f.Name) {
			return f.Name, true
		}
	}
	for _, nested := range desc.Nested {
		if field, ok := findField(msg, nested); ok {
			return field, true
		}
	}
	return "", false
}

// mentionsColumn checks the engine's "Column '<name>'" wording first (unknown
// references, required columns), then a bare mention of the name, which is
// how duplicate-key messages embed the key.
func mentionsColumn(lowerMsg, name string) bool {
	name = strings.ToLower(name)
	if name == "" {
		return false
	}
	if strings.Contains(lowerMsg, "column '"+name+"'") {
		return true
	}
	return strings.Contains(lowerMsg, name)
}
