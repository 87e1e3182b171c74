// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import "strings"

// Array represents an ordered collection of BSON values.
//
// A nil Array is usable as an empty array for read operations, but mutating
// methods panic.
type Array struct {
	values []Value
}

// NewArray creates an Array from the provided values.
func NewArray(values ...Value) *Array {
	vals := make([]Value, 0, len(values))
	vals = append(vals, values...)
	return &Array{values: vals}
}

// Len returns the number of values in the array.
func (a *Array) Len() int {
	if a == nil {
		return 0
	}
	return len(a.values)
}

// Append adds the provided values to the end of the array.
func (a *Array) Append(values ...Value) *Array {
	if a == nil {
		panic(ErrNilDocument)
	}
	a.values = append(a.values, values...)
	return a
}

// Lookup returns the value at the given index. It panics if the index is out
// of bounds.
func (a *Array) Lookup(index uint) Value {
	val, ok := a.LookupOK(index)
	if !ok {
		panic(ErrOutOfBounds)
	}
	return val
}

// LookupOK is the same as Lookup, but returns a boolean instead of panicking.
func (a *Array) LookupOK(index uint) (Value, bool) {
	if a == nil || index >= uint(len(a.values)) {
		return Value{}, false
	}
	return a.values[index], true
}

// Set replaces the value at the given index. It panics if the index is out of
// bounds.
func (a *Array) Set(index uint, value Value) *Array {
	if a == nil || index >= uint(len(a.values)) {
		panic(ErrOutOfBounds)
	}
	a.values[index] = value
	return a
}

// Equal compares a to a2 and returns true if they hold the same values in the
// same order.
func (a *Array) Equal(a2 *Array) bool {
	if a == nil && a2 == nil {
		return true
	}
	if a.Len() != a2.Len() {
		return false
	}
	for i := range a.values {
		if !a.values[i].Equal(a2.values[i]) {
			return false
		}
	}
	return true
}

// String implements the fmt.Stringer interface.
func (a *Array) String() string {
	if a == nil {
		return "null"
	}
	var sb strings.Builder
	sb.WriteByte('[')
	for i, val := range a.values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(val.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

// take transfers the values out of the array, leaving it empty. The sequence
// bridge uses this to hand each value to its consumer exactly once.
func (a *Array) take() []Value {
	if a == nil {
		return nil
	}
	values := a.values
	a.values = nil
	return values
}
