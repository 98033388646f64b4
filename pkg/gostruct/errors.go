package gostruct

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is matching.
var (
	ErrUnsupportedValueKind = errors.New("unsupported value kind")
	ErrEmptySequence        = errors.New("empty sequence")
	ErrEmptyIdentifier      = errors.New("empty identifier")
	ErrInvalidIdentifier    = errors.New("invalid identifier")
	ErrDuplicateIdentifier  = errors.New("duplicate identifier")
	ErrInvalidTagKey        = errors.New("invalid tag key")
	ErrInvalidIndent        = errors.New("invalid indent width")
	ErrInvalidPackageName   = errors.New("invalid package name")
)

// UnsupportedValueKindError reports a field whose value cannot be mapped to a
// Go type: null, a floating-point number, a sequence whose first element is not
// a mapping, or a root that is not a mapping.
type UnsupportedValueKindError struct {
	Path string // dotted path of the value, "" for the root
	Key  string
	Kind string
}

func (e *UnsupportedValueKindError) Error() string {
	return fmt.Sprintf("%s: field %q has unsupported value kind %s", at(e.Path), e.Key, e.Kind)
}

func (e *UnsupportedValueKindError) Is(target error) bool {
	return target == ErrUnsupportedValueKind
}

// EmptySequenceError reports a sequence field with no element to infer from.
type EmptySequenceError struct {
	Path string
	Key  string
}

func (e *EmptySequenceError) Error() string {
	return fmt.Sprintf("%s: field %q is an empty sequence, no element to infer a type from", at(e.Path), e.Key)
}

func (e *EmptySequenceError) Is(target error) bool {
	return target == ErrEmptySequence
}

// IdentifierError reports a key that does not convert to a usable Go name.
// It matches ErrEmptyIdentifier when the conversion is empty and
// ErrInvalidIdentifier otherwise.
type IdentifierError struct {
	Path       string
	Key        string
	Identifier string
}

func (e *IdentifierError) Error() string {
	if e.Identifier == "" {
		return fmt.Sprintf("%s: key %q converts to an empty identifier", at(e.Path), e.Key)
	}
	return fmt.Sprintf("%s: key %q converts to %q, which is not a valid exported Go identifier", at(e.Path), e.Key, e.Identifier)
}

func (e *IdentifierError) Is(target error) bool {
	if e.Identifier == "" {
		return target == ErrEmptyIdentifier
	}
	return target == ErrInvalidIdentifier
}

// DuplicateIdentifierError reports two keys of one mapping that convert to the
// same Go field name, such as "a_b" and "aB".
type DuplicateIdentifierError struct {
	Path       string
	Key        string
	Other      string
	Identifier string
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("%s: keys %q and %q both convert to %q", at(e.Path), e.Other, e.Key, e.Identifier)
}

func (e *DuplicateIdentifierError) Is(target error) bool {
	return target == ErrDuplicateIdentifier
}

// OptionError reports a rendering option that would produce invalid Go.
type OptionError struct {
	Option string
	Value  string
	Err    error
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Option, e.Value, e.Err)
}

func (e *OptionError) Unwrap() error {
	return e.Err
}

func at(path string) string {
	if path == "" {
		return "<root>"
	}
	return path
}
