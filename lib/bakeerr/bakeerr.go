// Copyright 2026 The PlatE Authors
// SPDX-License-Identifier: Apache-2.0

package bakeerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a bake failure.
type Kind int

const (
	// MalformedInput means the source could not be parsed, or a value
	// has the wrong dynamic type for its field.
	MalformedInput Kind = iota + 1

	// MissingField means a required field is absent.
	MissingField

	// IrregularShape means a repeated structure is inconsistent, such as
	// a tile grid whose rows differ in length.
	IrregularShape

	// InvalidGeometryType means a hitbox carries an unknown type tag.
	InvalidGeometryType

	// UnknownEnumValue means a value is outside a closed enumeration.
	UnknownEnumValue

	// DuplicateName means a list that must be set-unique repeats a name.
	DuplicateName

	// UnresolvedReference means a name or index refers to something
	// that is not defined.
	UnresolvedReference

	// IllegalIdentifier means a name does not match the identifier
	// grammar [A-Za-z_][A-Za-z0-9_]*.
	IllegalIdentifier

	// OutOfRange means a numeric value does not fit its wire type.
	OutOfRange

	// UnsupportedKind means the asset kind has no encoder.
	UnsupportedKind
)

// String returns the name of the kind as used in reports.
func (k Kind) String() string {
	switch k {
	case MalformedInput:
		return "malformed input"
	case MissingField:
		return "missing field"
	case IrregularShape:
		return "irregular shape"
	case InvalidGeometryType:
		return "invalid geometry type"
	case UnknownEnumValue:
		return "unknown enum value"
	case DuplicateName:
		return "duplicate name"
	case UnresolvedReference:
		return "unresolved reference"
	case IllegalIdentifier:
		return "illegal identifier"
	case OutOfRange:
		return "out of range"
	case UnsupportedKind:
		return "unsupported kind"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Sentinels for errors.Is. An *Error matches the sentinel of its Kind.
var (
	ErrMalformedInput      = &Error{Kind: MalformedInput}
	ErrMissingField        = &Error{Kind: MissingField}
	ErrIrregularShape      = &Error{Kind: IrregularShape}
	ErrInvalidGeometryType = &Error{Kind: InvalidGeometryType}
	ErrUnknownEnumValue    = &Error{Kind: UnknownEnumValue}
	ErrDuplicateName       = &Error{Kind: DuplicateName}
	ErrUnresolvedReference = &Error{Kind: UnresolvedReference}
	ErrIllegalIdentifier   = &Error{Kind: IllegalIdentifier}
	ErrOutOfRange          = &Error{Kind: OutOfRange}
	ErrUnsupportedKind     = &Error{Kind: UnsupportedKind}
)

// Error is a single bake failure.
type Error struct {
	// Kind classifies the failure.
	Kind Kind

	// Field is the document path of the offending field, for example
	// "frames[2].collision[0].hitbox.type". Empty when the failure is
	// not tied to one field.
	Field string

	// Values holds the offending values: the unknown tag, every
	// duplicated name, the missing reference.
	Values []string

	// Message is the human-readable cause.
	Message string

	// Err is an underlying cause, such as a JSON syntax error.
	Err error
}

func (e *Error) Error() string {
	var builder strings.Builder
	if e.Field != "" {
		builder.WriteString(e.Field)
		builder.WriteString(": ")
	}
	builder.WriteString(e.Kind.String())
	if e.Message != "" {
		builder.WriteString(": ")
		builder.WriteString(e.Message)
	}
	if len(e.Values) > 0 {
		quoted := make([]string, len(e.Values))
		for index, value := range e.Values {
			quoted[index] = fmt.Sprintf("%q", value)
		}
		builder.WriteString(" (")
		builder.WriteString(strings.Join(quoted, ", "))
		builder.WriteString(")")
	}
	if e.Err != nil {
		builder.WriteString(": ")
		builder.WriteString(e.Err.Error())
	}
	return builder.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same Kind. This lets
// errors.Is(err, ErrMissingField) match any missing-field failure.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.Kind == e.Kind
}

// New creates an Error of the given kind for field.
func New(kind Kind, field, format string, args ...any) *Error {
	return &Error{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}

// Malformed reports a field whose value cannot be interpreted.
func Malformed(field, format string, args ...any) *Error {
	return New(MalformedInput, field, format, args...)
}

// Missing reports an absent required field. context names the
// enclosing structure ("sprite", "frames[3]").
func Missing(field, context string) *Error {
	return &Error{Kind: MissingField, Field: field, Message: "required by " + context}
}

// Irregular reports an inconsistently shaped repeated structure.
func Irregular(field, format string, args ...any) *Error {
	return New(IrregularShape, field, format, args...)
}

// InvalidGeometry reports an unknown hitbox type tag.
func InvalidGeometry(field, tag string) *Error {
	return &Error{Kind: InvalidGeometryType, Field: field, Values: []string{tag}}
}

// UnknownEnum reports a value outside a closed enumeration named set.
func UnknownEnum(field, set, value string) *Error {
	return &Error{Kind: UnknownEnumValue, Field: field, Message: "not a valid " + set, Values: []string{value}}
}

// Duplicates reports every duplicated name in a set-unique list.
func Duplicates(field, what string, names []string) *Error {
	return &Error{Kind: DuplicateName, Field: field, Message: "duplicate " + what + " name(s)", Values: names}
}

// Unresolved reports a reference to a name that is not defined.
func Unresolved(field, what, name string) *Error {
	return &Error{Kind: UnresolvedReference, Field: field, Message: "no " + what + " with this name", Values: []string{name}}
}

// UnresolvedIndex reports an index past the end of the list it refers to.
func UnresolvedIndex(field, what string, index, count int) *Error {
	return &Error{
		Kind:    UnresolvedReference,
		Field:   field,
		Message: fmt.Sprintf("%s index %d out of range (have %d)", what, index, count),
	}
}

// Illegal reports a name that violates the identifier grammar.
func Illegal(field, what, name string) *Error {
	return &Error{Kind: IllegalIdentifier, Field: field, Message: "illegal name for " + what, Values: []string{name}}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var bakeErr *Error
	if errors.As(err, &bakeErr) {
		return bakeErr.Kind
	}
	return 0
}
