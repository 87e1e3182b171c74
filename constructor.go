// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"math"
	"strings"
	"time"

	"github.com/ikmak/bson/decimal"
)

// EC is a convenience variable provided for access to the ElementConstructor
// methods.
var EC ElementConstructor

// VC is a convenience variable provided for access to the ValueConstructor
// methods.
var VC ValueConstructor

// ElementConstructor is used as a namespace for document element constructor
// functions.
type ElementConstructor struct{}

// ValueConstructor is used as a namespace for value constructor functions.
type ValueConstructor struct{}

// Double creates a double element with the given key and value.
func (ElementConstructor) Double(key string, f float64) Element {
	return Element{Key: key, Value: VC.Double(f)}
}

// String creates a string element with the given key and value.
func (ElementConstructor) String(key string, val string) Element {
	return Element{Key: key, Value: VC.String(val)}
}

// SubDocument creates a subdocument element with the given key and value.
func (ElementConstructor) SubDocument(key string, d *Document) Element {
	return Element{Key: key, Value: VC.Document(d)}
}

// SubDocumentFromElements creates a subdocument element with the given key.
// The elements passed as arguments will be used to create a new subdocument.
func (ElementConstructor) SubDocumentFromElements(key string, elems ...Element) Element {
	return Element{Key: key, Value: VC.DocumentFromElements(elems...)}
}

// Array creates an array element with the given key and value.
func (ElementConstructor) Array(key string, a *Array) Element {
	return Element{Key: key, Value: VC.Array(a)}
}

// ArrayFromElements creates an array element with the given key. The values
// passed as arguments will be used to create a new array.
func (ElementConstructor) ArrayFromElements(key string, values ...Value) Element {
	return Element{Key: key, Value: VC.ArrayFromValues(values...)}
}

// Binary creates a binary element with the given key and value.
func (ElementConstructor) Binary(key string, b []byte) Element {
	return Element{Key: key, Value: VC.Binary(b)}
}

// BinaryWithSubtype creates a binary element with the given key. It will
// create a new BSON binary value with the given data and subtype.
func (ElementConstructor) BinaryWithSubtype(key string, b []byte, btype byte) Element {
	return Element{Key: key, Value: VC.BinaryWithSubtype(b, btype)}
}

// Boolean creates a boolean element with the given key and value.
func (ElementConstructor) Boolean(key string, b bool) Element {
	return Element{Key: key, Value: VC.Boolean(b)}
}

// DateTime creates a datetime element with the given key and value.
func (ElementConstructor) DateTime(key string, dt DateTime) Element {
	return Element{Key: key, Value: VC.DateTime(dt)}
}

// Time creates a datetime element with the given key and value.
func (ElementConstructor) Time(key string, t time.Time) Element {
	return Element{Key: key, Value: VC.Time(t)}
}

// Null creates a null element with the given key.
func (ElementConstructor) Null(key string) Element {
	return Element{Key: key, Value: VC.Null()}
}

// Int32 creates an int32 element with the given key and value.
func (ElementConstructor) Int32(key string, i int32) Element {
	return Element{Key: key, Value: VC.Int32(i)}
}

// Timestamp creates a timestamp element with the given key and value.
func (ElementConstructor) Timestamp(key string, t uint32, i uint32) Element {
	return Element{Key: key, Value: VC.Timestamp(t, i)}
}

// Int64 creates an int64 element with the given key and value.
func (ElementConstructor) Int64(key string, i int64) Element {
	return Element{Key: key, Value: VC.Int64(i)}
}

// UInt32 creates a uint32 element with the given key and value.
func (ElementConstructor) UInt32(key string, u uint32) Element {
	return Element{Key: key, Value: VC.UInt32(u)}
}

// UInt64 creates a uint64 element with the given key and value.
func (ElementConstructor) UInt64(key string, u uint64) Element {
	return Element{Key: key, Value: VC.UInt64(u)}
}

// Decimal128 creates a decimal element with the given key and value.
func (ElementConstructor) Decimal128(key string, d decimal.Decimal128) Element {
	return Element{Key: key, Value: VC.Decimal128(d)}
}

// Double creates a double value.
func (ValueConstructor) Double(f float64) Value {
	var v Value
	v.t = TypeDouble
	putu64(v.bootstrap[0:8], math.Float64bits(f))
	return v
}

// String creates a string value.
func (ValueConstructor) String(val string) Value {
	var v Value
	v.t = TypeString
	if len(val) <= len(v.bootstrap) && strings.IndexByte(val, 0x00) == -1 {
		copy(v.bootstrap[:], val)
		return v
	}
	v.primitive = val
	return v
}

// Document creates an embedded document value. A nil document is replaced
// with an empty one.
func (ValueConstructor) Document(d *Document) Value {
	if d == nil {
		d = NewDocument()
	}
	return Value{t: TypeEmbeddedDocument, primitive: d}
}

// DocumentFromElements creates an embedded document value from the provided
// elements.
func (ValueConstructor) DocumentFromElements(elems ...Element) Value {
	return VC.Document(NewDocument(elems...))
}

// Array creates an array value. A nil array is replaced with an empty one.
func (ValueConstructor) Array(a *Array) Value {
	if a == nil {
		a = NewArray()
	}
	return Value{t: TypeArray, primitive: a}
}

// ArrayFromValues creates an array value from the provided values.
func (ValueConstructor) ArrayFromValues(values ...Value) Value {
	return VC.Array(NewArray(values...))
}

// Binary creates a binary value with the generic subtype.
func (ValueConstructor) Binary(b []byte) Value {
	return VC.BinaryWithSubtype(b, TypeBinaryGeneric)
}

// BinaryWithSubtype creates a binary value with the given subtype.
func (ValueConstructor) BinaryWithSubtype(b []byte, btype byte) Value {
	return Value{t: TypeBinary, primitive: Binary{Subtype: btype, Data: b}}
}

// Boolean creates a boolean value.
func (ValueConstructor) Boolean(b bool) Value {
	var v Value
	v.t = TypeBoolean
	if b {
		v.bootstrap[0] = 0x01
	}
	return v
}

// DateTime creates a datetime value.
func (ValueConstructor) DateTime(dt DateTime) Value {
	var v Value
	v.t = TypeDateTime
	putu64(v.bootstrap[0:8], uint64(dt))
	return v
}

// Time creates a datetime value from a time.Time.
func (ValueConstructor) Time(t time.Time) Value {
	return VC.DateTime(NewDateTimeFromTime(t))
}

// Null creates a null value.
func (ValueConstructor) Null() Value {
	return Value{t: TypeNull}
}

// Int32 creates an int32 value.
func (ValueConstructor) Int32(i int32) Value {
	var v Value
	v.t = TypeInt32
	putu32(v.bootstrap[0:4], uint32(i))
	return v
}

// Timestamp creates a timestamp value.
func (ValueConstructor) Timestamp(t uint32, i uint32) Value {
	var v Value
	v.t = TypeTimestamp
	putu32(v.bootstrap[0:4], i)
	putu32(v.bootstrap[4:8], t)
	return v
}

// Int64 creates an int64 value.
func (ValueConstructor) Int64(i int64) Value {
	var v Value
	v.t = TypeInt64
	putu64(v.bootstrap[0:8], uint64(i))
	return v
}

// UInt32 creates a uint32 value.
func (ValueConstructor) UInt32(u uint32) Value {
	var v Value
	v.t = TypeUInt32
	putu32(v.bootstrap[0:4], u)
	return v
}

// UInt64 creates a uint64 value.
func (ValueConstructor) UInt64(u uint64) Value {
	var v Value
	v.t = TypeUInt64
	putu64(v.bootstrap[0:8], u)
	return v
}

// Decimal128 creates a decimal128 value.
func (ValueConstructor) Decimal128(d decimal.Decimal128) Value {
	return Value{t: TypeDecimal128, primitive: d}
}

func putu32(b []byte, v uint32) {
	_ = b[3]
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

func putu64(b []byte, v uint64) {
	_ = b[7]
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
	b[4] = byte(v >> 32)
	b[5] = byte(v >> 40)
	b[6] = byte(v >> 48)
	b[7] = byte(v >> 56)
}
