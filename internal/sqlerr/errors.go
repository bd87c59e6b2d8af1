// Package sqlerr defines the error taxonomy shared by the composer packages.
//
// Every failure is a caller-input error. Builders surface them at the call
// that caused them whenever possible; group balance can only be confirmed
// once a clause is rendered.
package sqlerr

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes composer errors.
type ErrorCode string

const (
	// ErrCodeInvalidOperator indicates an operator name not in the catalog.
	ErrCodeInvalidOperator ErrorCode = "INVALID_OPERATOR"

	// ErrCodeOperandCount indicates an operator received the wrong number of operands.
	ErrCodeOperandCount ErrorCode = "OPERAND_COUNT"

	// ErrCodeTypeArgument indicates a type-tag string that cannot be aligned
	// with the bound parameters it describes.
	ErrCodeTypeArgument ErrorCode = "TYPE_ARGUMENT"

	// ErrCodeUnbalancedGroup indicates a close without an open, or an open
	// left unclosed at render time.
	ErrCodeUnbalancedGroup ErrorCode = "UNBALANCED_GROUP"

	// ErrCodeEmptyGroup indicates a group closed without any member.
	ErrCodeEmptyGroup ErrorCode = "EMPTY_GROUP"

	// ErrCodePlaceholderCount indicates a fragment whose "?" count differs
	// from the number of parameters supplied with it.
	ErrCodePlaceholderCount ErrorCode = "PLACEHOLDER_COUNT"
)

// Sentinels for errors.Is. Matching is by code only.
var (
	ErrInvalidOperator  = &Error{Code: ErrCodeInvalidOperator}
	ErrOperandCount     = &Error{Code: ErrCodeOperandCount}
	ErrTypeArgument     = &Error{Code: ErrCodeTypeArgument}
	ErrUnbalancedGroup  = &Error{Code: ErrCodeUnbalancedGroup}
	ErrEmptyGroup       = &Error{Code: ErrCodeEmptyGroup}
	ErrPlaceholderCount = &Error{Code: ErrCodePlaceholderCount}
)

// Error is a composer failure with enough context to locate the bad call.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Column is the column the condition was built for, if any.
	Column string

	// Operator is the operator involved, if any.
	Operator string
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case e.Column != "" && e.Operator != "":
		return fmt.Sprintf("%s: %s (column=%s, operator=%s)", e.Code, e.Message, e.Column, e.Operator)
	case e.Operator != "":
		return fmt.Sprintf("%s: %s (operator=%s)", e.Code, e.Message, e.Operator)
	default:
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// NewInvalidOperator creates an error for an operator missing from the catalog.
func NewInvalidOperator(op string) *Error {
	return &Error{
		Code:     ErrCodeInvalidOperator,
		Message:  fmt.Sprintf("invalid operator: %s", op),
		Operator: op,
	}
}

// NewOperandCount creates an error for an operator given the wrong number of operands.
func NewOperandCount(column, op string, want string, got int) *Error {
	return &Error{
		Code:     ErrCodeOperandCount,
		Message:  fmt.Sprintf("expected %s operand(s), got %d", want, got),
		Column:   column,
		Operator: op,
	}
}

// NewTypeArgument creates an error for a tag string that does not fit its parameters.
func NewTypeArgument(tags string, params int) *Error {
	return &Error{
		Code:    ErrCodeTypeArgument,
		Message: fmt.Sprintf("type tags %q do not match %d parameter(s)", tags, params),
	}
}

// NewUnbalancedGroup creates an error for a mismatched group boundary.
func NewUnbalancedGroup(msg string) *Error {
	return &Error{Code: ErrCodeUnbalancedGroup, Message: msg}
}

// NewEmptyGroup creates an error for a group with no members.
func NewEmptyGroup() *Error {
	return &Error{Code: ErrCodeEmptyGroup, Message: "group closed without any condition"}
}

// NewPlaceholderCount creates an error for a fragment whose placeholders and
// parameters disagree.
func NewPlaceholderCount(sql string, placeholders, params int) *Error {
	return &Error{
		Code:    ErrCodePlaceholderCount,
		Message: fmt.Sprintf("%q has %d placeholder(s) but %d parameter(s)", sql, placeholders, params),
	}
}

// IsInvalidOperator returns true if err is an invalid operator error.
// Uses errors.As to handle wrapped errors.
func IsInvalidOperator(err error) bool {
	return hasCode(err, ErrCodeInvalidOperator)
}

// IsOperandCount returns true if err is an operand count error.
func IsOperandCount(err error) bool {
	return hasCode(err, ErrCodeOperandCount)
}

// IsTypeArgument returns true if err is a type argument error.
func IsTypeArgument(err error) bool {
	return hasCode(err, ErrCodeTypeArgument)
}

// IsUnbalancedGroup returns true if err is an unbalanced group error.
func IsUnbalancedGroup(err error) bool {
	return hasCode(err, ErrCodeUnbalancedGroup)
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}
