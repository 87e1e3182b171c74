// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"fmt"
	"math"
	"time"

	"github.com/ikmak/bson/decimal"
)

// RawDocument is a BSON document backed by its wire bytes. Construction
// validates only the outer frame; elements are parsed lazily as the document
// is iterated or searched, so a fault deep inside the buffer surfaces from
// the read that reaches it.
type RawDocument struct {
	buf []byte
}

// NewRawDocument wraps the provided bytes as a raw document. The declared
// length must equal the buffer length exactly and the buffer must end with a
// null byte.
func NewRawDocument(b []byte) (RawDocument, error) {
	if len(b) < 5 {
		return RawDocument{}, NewErrTooSmall()
	}
	if int(readi32(b[0:4])) != len(b) {
		return RawDocument{}, ErrInvalidLength
	}
	if b[len(b)-1] != 0x00 {
		return RawDocument{}, ErrMissingNull
	}
	return RawDocument{buf: b}, nil
}

// Bytes returns the backing buffer.
func (rd RawDocument) Bytes() []byte { return rd.buf }

// Iterator returns an iterator over the document's elements.
func (rd RawDocument) Iterator() *RawIterator {
	return &RawIterator{buf: rd.buf, pos: 4}
}

// Lookup scans the document for the first element with the given key. It
// returns ErrElementNotFound if no element has that key; parse faults in
// elements before the match are reported as errors.
func (rd RawDocument) Lookup(key string) (RawValue, error) {
	itr := rd.Iterator()
	for {
		elem, err := itr.Next()
		if err == ErrEOD {
			return RawValue{}, ErrElementNotFound
		}
		if err != nil {
			return RawValue{}, err
		}
		if elem.Key == key {
			return elem.Value, nil
		}
	}
}

// RawArray is a BSON array backed by its wire bytes. The wire shape is that
// of a document; keys are not inspected during iteration.
type RawArray struct {
	doc RawDocument
}

// NewRawArray wraps the provided bytes as a raw array, applying the same
// frame validation as NewRawDocument.
func NewRawArray(b []byte) (RawArray, error) {
	doc, err := NewRawDocument(b)
	if err != nil {
		return RawArray{}, err
	}
	return RawArray{doc: doc}, nil
}

// Bytes returns the backing buffer.
func (ra RawArray) Bytes() []byte { return ra.doc.buf }

// Iterator returns an iterator over the array's values.
func (ra RawArray) Iterator() *RawArrayIterator {
	return &RawArrayIterator{itr: ra.doc.Iterator()}
}

// Index returns the value at the given position, or ErrOutOfBounds if the
// array is shorter.
func (ra RawArray) Index(index uint) (RawValue, error) {
	itr := ra.Iterator()
	for {
		val, err := itr.Next()
		if err == ErrEOA {
			return RawValue{}, ErrOutOfBounds
		}
		if err != nil {
			return RawValue{}, err
		}
		if index == 0 {
			return val, nil
		}
		index--
	}
}

// RawElement is a single parsed element of a raw document.
type RawElement struct {
	Key   string
	Value RawValue
}

// RawIterator walks the elements of a raw document in order.
type RawIterator struct {
	buf []byte
	pos int
}

// Next parses and returns the next element. It returns ErrEOD once the
// terminating null byte is reached.
func (itr *RawIterator) Next() (RawElement, error) {
	if itr.pos >= len(itr.buf)-1 {
		return RawElement{}, ErrEOD
	}

	t := Type(itr.buf[itr.pos])
	itr.pos++

	start := itr.pos
	for {
		if itr.pos >= len(itr.buf)-1 {
			return RawElement{}, ErrInvalidKey
		}
		if itr.buf[itr.pos] == 0x00 {
			break
		}
		itr.pos++
	}
	key := string(itr.buf[start:itr.pos])
	itr.pos++

	val, length, err := parseRawValue(t, itr.buf[itr.pos:len(itr.buf)-1])
	if err != nil {
		return RawElement{}, err
	}
	itr.pos += length
	return RawElement{Key: key, Value: val}, nil
}

// RawArrayIterator walks the values of a raw array in order.
type RawArrayIterator struct {
	itr *RawIterator
}

// Next parses and returns the next value. It returns ErrEOA once the array is
// exhausted.
func (itr *RawArrayIterator) Next() (RawValue, error) {
	elem, err := itr.itr.Next()
	if err == ErrEOD {
		return RawValue{}, ErrEOA
	}
	if err != nil {
		return RawValue{}, err
	}
	return elem.Value, nil
}

// RawValue is a single BSON value inside a raw buffer. Fixed-size scalars are
// copied into the bootstrap array; strings, documents, arrays, and binary
// payloads borrow from the backing buffer.
type RawValue struct {
	t Type

	bootstrap [16]byte
	data      []byte
}

// parseRawValue parses one value of type t from the front of b and returns it
// together with the number of bytes it occupied.
func parseRawValue(t Type, b []byte) (RawValue, int, error) {
	v := RawValue{t: t}
	switch t {
	case TypeDouble, TypeDateTime, TypeInt64, TypeTimestamp, TypeUInt64:
		if len(b) < 8 {
			return RawValue{}, 0, NewErrTooSmall()
		}
		copy(v.bootstrap[0:8], b[0:8])
		return v, 8, nil
	case TypeInt32, TypeUInt32:
		if len(b) < 4 {
			return RawValue{}, 0, NewErrTooSmall()
		}
		copy(v.bootstrap[0:4], b[0:4])
		return v, 4, nil
	case TypeDecimal128:
		if len(b) < 16 {
			return RawValue{}, 0, NewErrTooSmall()
		}
		copy(v.bootstrap[0:16], b[0:16])
		return v, 16, nil
	case TypeBoolean:
		if len(b) < 1 {
			return RawValue{}, 0, NewErrTooSmall()
		}
		if b[0] > 0x01 {
			return RawValue{}, 0, InvalidValueError{
				Received: fmt.Sprintf("%#x", b[0]),
				Expected: "a boolean byte of 0 or 1",
			}
		}
		v.bootstrap[0] = b[0]
		return v, 1, nil
	case TypeNull:
		return v, 0, nil
	case TypeString:
		if len(b) < 4 {
			return RawValue{}, 0, NewErrTooSmall()
		}
		l := int(readi32(b[0:4]))
		if l < 1 || len(b) < 4+l {
			return RawValue{}, 0, ErrInvalidString
		}
		if b[4+l-1] != 0x00 {
			return RawValue{}, 0, ErrInvalidString
		}
		v.data = b[4 : 4+l-1]
		return v, 4 + l, nil
	case TypeEmbeddedDocument, TypeArray:
		if len(b) < 5 {
			return RawValue{}, 0, NewErrTooSmall()
		}
		l := int(readi32(b[0:4]))
		if l < 5 || len(b) < l {
			return RawValue{}, 0, ErrInvalidLength
		}
		if b[l-1] != 0x00 {
			return RawValue{}, 0, ErrMissingNull
		}
		v.data = b[:l]
		return v, l, nil
	case TypeBinary:
		if len(b) < 5 {
			return RawValue{}, 0, NewErrTooSmall()
		}
		l := int(readi32(b[0:4]))
		if l < 0 || len(b) < 5+l {
			return RawValue{}, 0, ErrInvalidLength
		}
		subtype := b[4]
		payload := b[5 : 5+l]
		if subtype == TypeBinaryBinaryOld {
			if l < 4 || int(readi32(payload[0:4])) != l-4 {
				return RawValue{}, 0, ErrInvalidLength
			}
			payload = payload[4:]
		}
		v.bootstrap[0] = subtype
		v.data = payload
		return v, 5 + l, nil
	default:
		return RawValue{}, 0, fmt.Errorf("invalid element type %#x", byte(t))
	}
}

// Type returns the BSON type of this value.
func (v RawValue) Type() Type { return v.t }

// IsNull returns true if v is the BSON null value.
func (v RawValue) IsNull() bool { return v.t == TypeNull }

// Double returns the float64 value. It panics if v is not a BSON double.
func (v RawValue) Double() float64 {
	if v.t != TypeDouble {
		panic(ElementTypeError{"bson.RawValue.Double", v.t})
	}
	return math.Float64frombits(readu64(v.bootstrap[0:8]))
}

// DoubleOK is the same as Double, but returns a boolean instead of panicking.
func (v RawValue) DoubleOK() (float64, bool) {
	if v.t != TypeDouble {
		return 0, false
	}
	return math.Float64frombits(readu64(v.bootstrap[0:8])), true
}

// StringValue returns the string value, copying out of the backing buffer.
// It panics if v is not a BSON string. The bytes are not validated as UTF-8.
func (v RawValue) StringValue() string {
	if v.t != TypeString {
		panic(ElementTypeError{"bson.RawValue.StringValue", v.t})
	}
	return string(v.data)
}

// StringValueOK is the same as StringValue, but returns a boolean instead of
// panicking.
func (v RawValue) StringValueOK() (string, bool) {
	if v.t != TypeString {
		return "", false
	}
	return string(v.data), true
}

// StringValueBytes returns the string payload without copying. The returned
// slice aliases the backing buffer.
func (v RawValue) StringValueBytes() ([]byte, bool) {
	if v.t != TypeString {
		return nil, false
	}
	return v.data, true
}

// Document returns the embedded document as a raw view sharing the backing
// buffer. It panics if v is not a BSON embedded document.
func (v RawValue) Document() RawDocument {
	if v.t != TypeEmbeddedDocument {
		panic(ElementTypeError{"bson.RawValue.Document", v.t})
	}
	return RawDocument{buf: v.data}
}

// DocumentOK is the same as Document, but returns a boolean instead of
// panicking.
func (v RawValue) DocumentOK() (RawDocument, bool) {
	if v.t != TypeEmbeddedDocument {
		return RawDocument{}, false
	}
	return RawDocument{buf: v.data}, true
}

// Array returns the embedded array as a raw view sharing the backing buffer.
// It panics if v is not a BSON array.
func (v RawValue) Array() RawArray {
	if v.t != TypeArray {
		panic(ElementTypeError{"bson.RawValue.Array", v.t})
	}
	return RawArray{doc: RawDocument{buf: v.data}}
}

// ArrayOK is the same as Array, but returns a boolean instead of panicking.
func (v RawValue) ArrayOK() (RawArray, bool) {
	if v.t != TypeArray {
		return RawArray{}, false
	}
	return RawArray{doc: RawDocument{buf: v.data}}, true
}

// Binary returns the binary value. The data aliases the backing buffer. It
// panics if v is not a BSON binary.
func (v RawValue) Binary() Binary {
	if v.t != TypeBinary {
		panic(ElementTypeError{"bson.RawValue.Binary", v.t})
	}
	return Binary{Subtype: v.bootstrap[0], Data: v.data}
}

// BinaryOK is the same as Binary, but returns a boolean instead of panicking.
func (v RawValue) BinaryOK() (Binary, bool) {
	if v.t != TypeBinary {
		return Binary{}, false
	}
	return Binary{Subtype: v.bootstrap[0], Data: v.data}, true
}

// Boolean returns the bool value. It panics if v is not a BSON boolean.
func (v RawValue) Boolean() bool {
	if v.t != TypeBoolean {
		panic(ElementTypeError{"bson.RawValue.Boolean", v.t})
	}
	return v.bootstrap[0] == 0x01
}

// BooleanOK is the same as Boolean, but returns a boolean instead of
// panicking.
func (v RawValue) BooleanOK() (bool, bool) {
	if v.t != TypeBoolean {
		return false, false
	}
	return v.bootstrap[0] == 0x01, true
}

// DateTime returns the datetime value. It panics if v is not a BSON datetime.
func (v RawValue) DateTime() DateTime {
	if v.t != TypeDateTime {
		panic(ElementTypeError{"bson.RawValue.DateTime", v.t})
	}
	return DateTime(readu64(v.bootstrap[0:8]))
}

// DateTimeOK is the same as DateTime, but returns a boolean instead of
// panicking.
func (v RawValue) DateTimeOK() (DateTime, bool) {
	if v.t != TypeDateTime {
		return 0, false
	}
	return DateTime(readu64(v.bootstrap[0:8])), true
}

// Time returns the datetime value as a time.Time. It panics if v is not a
// BSON datetime.
func (v RawValue) Time() time.Time {
	return v.DateTime().Time()
}

// Int32 returns the int32 value. It panics if v is not a BSON 32-bit integer.
func (v RawValue) Int32() int32 {
	if v.t != TypeInt32 {
		panic(ElementTypeError{"bson.RawValue.Int32", v.t})
	}
	return readi32(v.bootstrap[0:4])
}

// Int32OK is the same as Int32, but returns a boolean instead of panicking.
func (v RawValue) Int32OK() (int32, bool) {
	if v.t != TypeInt32 {
		return 0, false
	}
	return readi32(v.bootstrap[0:4]), true
}

// Int64 returns the int64 value. It panics if v is not a BSON 64-bit integer.
func (v RawValue) Int64() int64 {
	if v.t != TypeInt64 {
		panic(ElementTypeError{"bson.RawValue.Int64", v.t})
	}
	return int64(readu64(v.bootstrap[0:8]))
}

// Int64OK is the same as Int64, but returns a boolean instead of panicking.
func (v RawValue) Int64OK() (int64, bool) {
	if v.t != TypeInt64 {
		return 0, false
	}
	return int64(readu64(v.bootstrap[0:8])), true
}

// UInt32 returns the uint32 value. It panics if v is not a BSON 32-bit
// unsigned integer.
func (v RawValue) UInt32() uint32 {
	if v.t != TypeUInt32 {
		panic(ElementTypeError{"bson.RawValue.UInt32", v.t})
	}
	return uint32(readi32(v.bootstrap[0:4]))
}

// UInt32OK is the same as UInt32, but returns a boolean instead of panicking.
func (v RawValue) UInt32OK() (uint32, bool) {
	if v.t != TypeUInt32 {
		return 0, false
	}
	return uint32(readi32(v.bootstrap[0:4])), true
}

// UInt64 returns the uint64 value. It panics if v is not a BSON 64-bit
// unsigned integer.
func (v RawValue) UInt64() uint64 {
	if v.t != TypeUInt64 {
		panic(ElementTypeError{"bson.RawValue.UInt64", v.t})
	}
	return readu64(v.bootstrap[0:8])
}

// UInt64OK is the same as UInt64, but returns a boolean instead of panicking.
func (v RawValue) UInt64OK() (uint64, bool) {
	if v.t != TypeUInt64 {
		return 0, false
	}
	return readu64(v.bootstrap[0:8]), true
}

// Timestamp returns the timestamp value. It panics if v is not a BSON
// timestamp.
func (v RawValue) Timestamp() Timestamp {
	if v.t != TypeTimestamp {
		panic(ElementTypeError{"bson.RawValue.Timestamp", v.t})
	}
	return Timestamp{
		I: uint32(readi32(v.bootstrap[0:4])),
		T: uint32(readi32(v.bootstrap[4:8])),
	}
}

// TimestampOK is the same as Timestamp, but returns a boolean instead of
// panicking.
func (v RawValue) TimestampOK() (Timestamp, bool) {
	if v.t != TypeTimestamp {
		return Timestamp{}, false
	}
	return Timestamp{
		I: uint32(readi32(v.bootstrap[0:4])),
		T: uint32(readi32(v.bootstrap[4:8])),
	}, true
}

// Decimal128 returns the decimal128 value. It panics if v is not a BSON
// decimal128.
func (v RawValue) Decimal128() decimal.Decimal128 {
	if v.t != TypeDecimal128 {
		panic(ElementTypeError{"bson.RawValue.Decimal128", v.t})
	}
	d, _ := decimal.FromBytes(v.bootstrap[:])
	return d
}

// Decimal128OK is the same as Decimal128, but returns a boolean instead of
// panicking.
func (v RawValue) Decimal128OK() (decimal.Decimal128, bool) {
	if v.t != TypeDecimal128 {
		return decimal.Decimal128{}, false
	}
	d, _ := decimal.FromBytes(v.bootstrap[:])
	return d, true
}
