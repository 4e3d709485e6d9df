package ber

import (
	"errors"
	"fmt"

	"github.com/emvtools/bertlv/bufferview"
)

// Error conditions.
var (
	ErrIndefiniteLength = errors.New("indefinite length form is not supported")
	ErrLengthOctets     = errors.New("more than 4 subsequent length octets")
	ErrIdentifier       = errors.New("malformed identifier")
	ErrContentTooLong   = errors.New("content longer than 0xFFFFFFFF octets")
	ErrBuilderModified  = errors.New("nested builder modified after being added")
	ErrNilBuilder       = errors.New("nil nested builder")
)

// ContentBoundError indicates a TLV whose content extends beyond the enclosing limit.
// It matches bufferview.ErrOutOfBounds with errors.Is.
type ContentBoundError struct {
	Bound int
	Limit int
}

func (e *ContentBoundError) Error() string {
	return fmt.Sprintf("content bound is beyond content limit (b=%d; l=%d)", e.Bound, e.Limit)
}

// Is allows ContentBoundError to match bufferview.ErrOutOfBounds.
func (e *ContentBoundError) Is(target error) bool {
	return target == bufferview.ErrOutOfBounds
}

// IdentifierError indicates an identifier that cannot be encoded.
// It matches ErrIdentifier with errors.Is.
type IdentifierError struct {
	Identifier Identifier
}

func (e *IdentifierError) Error() string {
	switch n := len(e.Identifier); {
	case n == 0:
		return "empty identifier"
	case n > MaxIdentifierLength:
		return fmt.Sprintf("identifier %s is longer than %d octets", e.Identifier, MaxIdentifierLength)
	}
	return fmt.Sprintf("wrong identifier leading octet value: 0x%02x", e.Identifier[0])
}

// Is allows IdentifierError to match ErrIdentifier.
func (e *IdentifierError) Is(target error) bool {
	return target == ErrIdentifier
}

// DecodeError indicates a parse failure.
// It carries the frame of top-level TLVs parsed before the failure and the trailing octets
// that were not decoded.
type DecodeError struct {
	Err error

	// Partial contains the top-level TLVs parsed before the failure.
	// The last of them may have incomplete children if the failure occurred inside it.
	Partial *Frame

	// Undecoded is a copy of the octets after the last top-level TLV in Partial.
	Undecoded []byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("BER decode error with %d undecoded octets: %v", len(e.Undecoded), e.Err)
}

// Unwrap returns the underlying cause.
func (e *DecodeError) Unwrap() error {
	return e.Err
}
