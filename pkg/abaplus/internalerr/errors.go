// Package internalerr defines the sentinel and tagged errors raised by
// framework construction, WCP checking, and the textual parser.
package internalerr

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks. Each Kind error below wraps
// the sentinel matching its category so callers can check broadly
// (errors.Is(err, ErrValidation)) or narrowly (errors.As(err, &kindErr)).
var (
	ErrValidation = errors.New("framework validation failed")
	ErrWCP        = errors.New("weak contraposition violated")
	ErrParse      = errors.New("parse failed")
)

// Kind enumerates the distinct error kinds spec.md §7 requires to be
// surfaced as tagged values rather than ad hoc strings.
type Kind int

const (
	NonFlat Kind = iota
	InvalidPreference
	CyclicPreference
	WCPViolation
	InvalidContraryDeclaration
	DuplicateSymbol
	InvalidPreferenceDeclaration
)

func (k Kind) String() string {
	switch k {
	case NonFlat:
		return "NonFlat"
	case InvalidPreference:
		return "InvalidPreference"
	case CyclicPreference:
		return "CyclicPreference"
	case WCPViolation:
		return "WCPViolation"
	case InvalidContraryDeclaration:
		return "InvalidContraryDeclaration"
	case DuplicateSymbol:
		return "DuplicateSymbol"
	case InvalidPreferenceDeclaration:
		return "InvalidPreferenceDeclaration"
	default:
		return "Unknown"
	}
}

// Error is a tagged error carrying a Kind and a human-readable detail.
// Construction-time validation errors and parser errors are all of
// this shape; runtime queries never raise (spec.md §7) so Error never
// appears outside construction and parsing.
type Error struct {
	Kind   Kind
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

// Unwrap lets errors.Is(err, ErrValidation) / ErrWCP / ErrParse match
// depending on the kind's category.
func (e *Error) Unwrap() error {
	switch e.Kind {
	case WCPViolation:
		return ErrWCP
	case InvalidContraryDeclaration, DuplicateSymbol, InvalidPreferenceDeclaration:
		return ErrParse
	default:
		return ErrValidation
	}
}

// New builds a tagged error of the given kind.
func New(kind Kind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// Newf builds a tagged error with a formatted detail.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}
