package core

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every error produced while loading or querying wraps exactly
// one of these, so callers can branch with errors.Is.
var (
	ErrTypeRegistered        = errors.New("type already registered")
	ErrTypeNotFound          = errors.New("type not registered")
	ErrRecordNotFound        = errors.New("record not found")
	ErrDuplicateKey          = errors.New("duplicate key")
	ErrUnresolvedLink        = errors.New("relationship target not found")
	ErrInvalidLinkField      = errors.New("invalid relationship field")
	ErrReservedField         = errors.New("reserved field")
	ErrInvalidTransform      = errors.New("invalid input transform")
	ErrUnregisteredTransform = errors.New("transform not registered")
	ErrTransformFailed       = errors.New("transform failed")
	ErrShape                 = errors.New("invalid shape")
)

// Error is the structured failure returned by silt. Kind is one of the
// sentinels above; the remaining fields identify where it happened and are
// left empty when they do not apply.
type Error struct {
	Kind   error
	Type   string // type (collection) name
	Key    any    // identity value involved
	Field  string // field or property name
	Target string // target type of a relationship
	Detail string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	var parts []string
	if e.Type != "" {
		parts = append(parts, "type "+e.Type)
	}
	if e.Field != "" {
		parts = append(parts, "field "+e.Field)
	}
	if e.Target != "" {
		parts = append(parts, "target "+e.Target)
	}
	if e.Key != nil {
		parts = append(parts, "key "+FormatKey(e.Key))
	}
	if len(parts) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString(")")
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Errorf builds an Error of the given kind with a formatted detail.
func Errorf(kind error, typeName string, format string, args ...any) *Error {
	return &Error{Kind: kind, Type: typeName, Detail: fmt.Sprintf(format, args...)}
}
