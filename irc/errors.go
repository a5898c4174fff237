package irc

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSpaceAfterTags is returned when a tags segment is not followed by a
	// space (so there is no command or prefix).
	ErrNoSpaceAfterTags = errors.New("no space found after tags (no command/prefix)")
	// ErrEmptyTagsDeclaration is returned when there are no tags after the @ sign.
	ErrEmptyTagsDeclaration = errors.New("no tags after @ sign")
	// ErrNoSpaceAfterPrefix is returned when a prefix segment is not followed by
	// a space (so there is no command).
	ErrNoSpaceAfterPrefix = errors.New("no space found after prefix (no command)")
	// ErrEmptyPrefixDeclaration is returned when there is no prefix after the : sign.
	ErrEmptyPrefixDeclaration = errors.New("no prefix after : sign")
	// ErrMalformedCommand is returned when the command is empty or not made up of
	// only ASCII-alphabetic or only numeric characters.
	ErrMalformedCommand = errors.New("expected command to only consist of alphabetic or numeric characters")
	// ErrTooManySpacesInMiddleParams is returned when middle parameters are
	// separated by more than a single space.
	ErrTooManySpacesInMiddleParams = errors.New("expected only single spaces between middle parameters")
	// ErrNewlinesInMessage is returned when the raw input contains CR or LF.
	ErrNewlinesInMessage = errors.New("newlines are not permitted in raw IRC messages")
)

// ParseError reports why a raw IRC line could not be parsed. It wraps one of
// the sentinel errors above and carries the offending line.
type ParseError struct {
	Raw string
	Err error
}

func parseErr(raw string, err error) *ParseError {
	return &ParseError{Raw: raw, Err: err}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse %q as an IRC message: %s", e.Raw, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
