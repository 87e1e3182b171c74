// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-stack/stack"
)

// ErrEndOfStream indicates that a value was required but the source was
// already exhausted. It is returned when a consumed deserializer is driven
// again and when a map sub-bridge value is requested without a preceding key.
var ErrEndOfStream = errors.New("end of stream")

// ErrEOA is the error returned when the end of a BSON array has been reached.
var ErrEOA = errors.New("end of array")

// ErrEOD is the error returned when the end of a BSON document has been
// reached. It signals normal termination, not a fault.
var ErrEOD = errors.New("end of document")

// ErrInvalidLength indicates that a length in a binary representation of a
// BSON document is invalid.
var ErrInvalidLength = errors.New("document length is invalid")

// ErrMissingNull indicates that a BSON document is missing its trailing null
// terminator.
var ErrMissingNull = errors.New("document end is missing null byte")

// ErrInvalidKey indicates that the BSON representation of a key is missing a
// null terminator.
var ErrInvalidKey = errors.New("invalid document key")

// ErrInvalidString indicates that a BSON string value had an incorrect length
// or was missing its null terminator.
var ErrInvalidString = errors.New("invalid string value")

// ErrInvalidUTF8 indicates that a BSON string or key was not valid UTF-8.
var ErrInvalidUTF8 = errors.New("string is not valid UTF-8")

// ErrNilDocument indicates that an operation was attempted on a nil *Document.
var ErrNilDocument = errors.New("document is nil")

// ErrEmptyKey indicates that no key was provided to a Lookup method.
var ErrEmptyKey = errors.New("empty key provided")

// ErrElementNotFound indicates that an Element matching a certain condition
// does not exist.
var ErrElementNotFound = errors.New("element not found")

// ErrOutOfBounds indicates that an index provided to access something was
// invalid.
var ErrOutOfBounds = errors.New("out of bounds")

// ErrMaxDepthExceeded indicates that a document was nested too deeply to be
// traversed safely.
var ErrMaxDepthExceeded = errors.New("maximum nesting depth exceeded")

// ErrTooSmall indicates that a slice of bytes is smaller than the data it is
// declared to hold.
type ErrTooSmall struct {
	Stack stack.CallStack
}

// NewErrTooSmall creates a new ErrTooSmall with the current stack.
func NewErrTooSmall() ErrTooSmall {
	return ErrTooSmall{Stack: stack.Trace().TrimRuntime()}
}

// Error implements the error interface.
func (e ErrTooSmall) Error() string {
	return "too small"
}

// ErrorStack returns a string representing the stack at the point where the
// error occurred.
func (e ErrTooSmall) ErrorStack() string {
	s := bytes.NewBufferString("too small: [")

	for i, call := range e.Stack {
		if i != 0 {
			s.WriteString(", ")
		}

		// go vet doesn't like %k even though it's part of stack's API, so we
		// move the format string so it doesn't complain.
		callFormat := "%k.%n %v"

		s.WriteString(fmt.Sprintf(callFormat, call, call, call))
	}

	s.WriteRune(']')

	return s.String()
}

// Equals checks that err2 also is an ErrTooSmall.
func (e ErrTooSmall) Equals(err2 error) bool {
	switch err2.(type) {
	case ErrTooSmall:
		return true
	default:
		return false
	}
}

// InvalidTypeError indicates that the shape a source offered does not match
// what the target required. Received renders the offered value and Expected
// describes the required shape.
type InvalidTypeError struct {
	Received string
	Expected string
}

// Error implements the error interface.
func (e InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid type %s, expected %s", e.Received, e.Expected)
}

// InvalidValueError indicates that a value had an acceptable shape but its
// content failed further parsing.
type InvalidValueError struct {
	Received string
	Expected string
}

// Error implements the error interface.
func (e InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %s, expected %s", e.Received, e.Expected)
}

// InvalidLengthError indicates that a fixed-size payload received the wrong
// number of bytes.
type InvalidLengthError struct {
	Length   int
	Expected string
}

// Error implements the error interface.
func (e InvalidLengthError) Error() string {
	return fmt.Sprintf("invalid length %d, expected %s", e.Length, e.Expected)
}

// ElementTypeError specifies that a method to obtain a BSON value of one type
// was called on a Value of another type.
type ElementTypeError struct {
	Method string
	Type   Type
}

// Error implements the error interface.
func (ete ElementTypeError) Error() string {
	return "Call of " + ete.Method + " on " + ete.Type.String() + " type"
}
