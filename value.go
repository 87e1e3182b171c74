// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"bytes"
	"math"
	"strconv"
	"time"

	"github.com/ikmak/bson/decimal"
)

// Value represents a single BSON value of any type. The zero value of Value
// is the empty value, which has no type and reports true from IsZero.
//
// Small values are stored inline in the bootstrap array; strings that do not
// fit, documents, arrays, binary data, and decimals live behind the primitive
// field.
type Value struct {
	t Type

	bootstrap [15]byte
	primitive interface{}
}

// Type returns the BSON type of this value. The empty value has Type 0, which
// is not a valid BSON type.
func (v Value) Type() Type { return v.t }

// IsZero returns true if this is the empty Value.
func (v Value) IsZero() bool { return v.t == 0 && v.primitive == nil }

// IsNumber returns true if the type of v is a numeric BSON type.
func (v Value) IsNumber() bool {
	switch v.t {
	case TypeDouble, TypeInt32, TypeInt64, TypeUInt32, TypeUInt64, TypeDecimal128:
		return true
	default:
		return false
	}
}

// IsNull returns true if v is the BSON null value.
func (v Value) IsNull() bool { return v.t == TypeNull }

// Double returns the float64 value for this element. It panics if v is not a
// BSON double.
func (v Value) Double() float64 {
	if v.t != TypeDouble {
		panic(ElementTypeError{"bson.Value.Double", v.t})
	}
	return math.Float64frombits(readu64(v.bootstrap[0:8]))
}

// DoubleOK is the same as Double, but returns a boolean instead of panicking.
func (v Value) DoubleOK() (float64, bool) {
	if v.t != TypeDouble {
		return 0, false
	}
	return math.Float64frombits(readu64(v.bootstrap[0:8])), true
}

// StringValue returns the string value for this element. It panics if v is
// not a BSON string.
//
// NOTE: This method is called StringValue to avoid a collision with the
// String method which implements the fmt.Stringer interface.
func (v Value) StringValue() string {
	if v.t != TypeString {
		panic(ElementTypeError{"bson.Value.StringValue", v.t})
	}
	if str, ok := v.primitive.(string); ok {
		return str
	}
	idx := bytes.IndexByte(v.bootstrap[:], 0x00)
	if idx == -1 {
		idx = 15
	}
	return string(v.bootstrap[:idx])
}

// StringValueOK is the same as StringValue, but returns a boolean instead of
// panicking.
func (v Value) StringValueOK() (string, bool) {
	if v.t != TypeString {
		return "", false
	}
	return v.StringValue(), true
}

// Document returns the *Document for this element. It panics if v is not a
// BSON embedded document.
func (v Value) Document() *Document {
	if v.t != TypeEmbeddedDocument {
		panic(ElementTypeError{"bson.Value.Document", v.t})
	}
	return v.primitive.(*Document)
}

// DocumentOK is the same as Document, but returns a boolean instead of
// panicking.
func (v Value) DocumentOK() (*Document, bool) {
	if v.t != TypeEmbeddedDocument {
		return nil, false
	}
	return v.primitive.(*Document), true
}

// Array returns the *Array for this element. It panics if v is not a BSON
// array.
func (v Value) Array() *Array {
	if v.t != TypeArray {
		panic(ElementTypeError{"bson.Value.Array", v.t})
	}
	return v.primitive.(*Array)
}

// ArrayOK is the same as Array, but returns a boolean instead of panicking.
func (v Value) ArrayOK() (*Array, bool) {
	if v.t != TypeArray {
		return nil, false
	}
	return v.primitive.(*Array), true
}

// Binary returns the BSON binary value for this element. It panics if v is
// not a BSON binary.
func (v Value) Binary() Binary {
	if v.t != TypeBinary {
		panic(ElementTypeError{"bson.Value.Binary", v.t})
	}
	return v.primitive.(Binary)
}

// BinaryOK is the same as Binary, but returns a boolean instead of panicking.
func (v Value) BinaryOK() (Binary, bool) {
	if v.t != TypeBinary {
		return Binary{}, false
	}
	return v.primitive.(Binary), true
}

// Boolean returns the bool value for this element. It panics if v is not a
// BSON boolean.
func (v Value) Boolean() bool {
	if v.t != TypeBoolean {
		panic(ElementTypeError{"bson.Value.Boolean", v.t})
	}
	return v.bootstrap[0] == 0x01
}

// BooleanOK is the same as Boolean, but returns a boolean instead of
// panicking.
func (v Value) BooleanOK() (bool, bool) {
	if v.t != TypeBoolean {
		return false, false
	}
	return v.bootstrap[0] == 0x01, true
}

// DateTime returns the BSON datetime value for this element. It panics if v
// is not a BSON datetime.
func (v Value) DateTime() DateTime {
	if v.t != TypeDateTime {
		panic(ElementTypeError{"bson.Value.DateTime", v.t})
	}
	return DateTime(readu64(v.bootstrap[0:8]))
}

// DateTimeOK is the same as DateTime, but returns a boolean instead of
// panicking.
func (v Value) DateTimeOK() (DateTime, bool) {
	if v.t != TypeDateTime {
		return 0, false
	}
	return DateTime(readu64(v.bootstrap[0:8])), true
}

// Time returns the BSON datetime value for this element as a time.Time. It
// panics if v is not a BSON datetime.
func (v Value) Time() time.Time {
	if v.t != TypeDateTime {
		panic(ElementTypeError{"bson.Value.Time", v.t})
	}
	return v.DateTime().Time()
}

// TimeOK is the same as Time, but returns a boolean instead of panicking.
func (v Value) TimeOK() (time.Time, bool) {
	if v.t != TypeDateTime {
		return time.Time{}, false
	}
	return v.DateTime().Time(), true
}

// Int32 returns the int32 value for this element. It panics if v is not a
// BSON 32-bit integer.
func (v Value) Int32() int32 {
	if v.t != TypeInt32 {
		panic(ElementTypeError{"bson.Value.Int32", v.t})
	}
	return readi32(v.bootstrap[0:4])
}

// Int32OK is the same as Int32, but returns a boolean instead of panicking.
func (v Value) Int32OK() (int32, bool) {
	if v.t != TypeInt32 {
		return 0, false
	}
	return readi32(v.bootstrap[0:4]), true
}

// Int64 returns the int64 value for this element. It panics if v is not a
// BSON 64-bit integer.
func (v Value) Int64() int64 {
	if v.t != TypeInt64 {
		panic(ElementTypeError{"bson.Value.Int64", v.t})
	}
	return int64(readu64(v.bootstrap[0:8]))
}

// Int64OK is the same as Int64, but returns a boolean instead of panicking.
func (v Value) Int64OK() (int64, bool) {
	if v.t != TypeInt64 {
		return 0, false
	}
	return int64(readu64(v.bootstrap[0:8])), true
}

// UInt32 returns the uint32 value for this element. It panics if v is not a
// BSON 32-bit unsigned integer.
func (v Value) UInt32() uint32 {
	if v.t != TypeUInt32 {
		panic(ElementTypeError{"bson.Value.UInt32", v.t})
	}
	return uint32(readi32(v.bootstrap[0:4]))
}

// UInt32OK is the same as UInt32, but returns a boolean instead of panicking.
func (v Value) UInt32OK() (uint32, bool) {
	if v.t != TypeUInt32 {
		return 0, false
	}
	return uint32(readi32(v.bootstrap[0:4])), true
}

// UInt64 returns the uint64 value for this element. It panics if v is not a
// BSON 64-bit unsigned integer.
func (v Value) UInt64() uint64 {
	if v.t != TypeUInt64 {
		panic(ElementTypeError{"bson.Value.UInt64", v.t})
	}
	return readu64(v.bootstrap[0:8])
}

// UInt64OK is the same as UInt64, but returns a boolean instead of panicking.
func (v Value) UInt64OK() (uint64, bool) {
	if v.t != TypeUInt64 {
		return 0, false
	}
	return readu64(v.bootstrap[0:8]), true
}

// Timestamp returns the BSON timestamp value for this element. It panics if v
// is not a BSON timestamp.
func (v Value) Timestamp() Timestamp {
	if v.t != TypeTimestamp {
		panic(ElementTypeError{"bson.Value.Timestamp", v.t})
	}
	return Timestamp{
		I: uint32(readi32(v.bootstrap[0:4])),
		T: uint32(readi32(v.bootstrap[4:8])),
	}
}

// TimestampOK is the same as Timestamp, but returns a boolean instead of
// panicking.
func (v Value) TimestampOK() (Timestamp, bool) {
	if v.t != TypeTimestamp {
		return Timestamp{}, false
	}
	return Timestamp{
		I: uint32(readi32(v.bootstrap[0:4])),
		T: uint32(readi32(v.bootstrap[4:8])),
	}, true
}

// Decimal128 returns the decimal128 value for this element. It panics if v is
// not a BSON decimal128.
func (v Value) Decimal128() decimal.Decimal128 {
	if v.t != TypeDecimal128 {
		panic(ElementTypeError{"bson.Value.Decimal128", v.t})
	}
	return v.primitive.(decimal.Decimal128)
}

// Decimal128OK is the same as Decimal128, but returns a boolean instead of
// panicking.
func (v Value) Decimal128OK() (decimal.Decimal128, bool) {
	if v.t != TypeDecimal128 {
		return decimal.Decimal128{}, false
	}
	return v.primitive.(decimal.Decimal128), true
}

// Equal compares v to v2 and returns true if they are equal. Documents and
// arrays are compared element-wise and in order.
func (v Value) Equal(v2 Value) bool {
	if v.t != v2.t {
		return false
	}

	switch v.t {
	case TypeString:
		return v.StringValue() == v2.StringValue()
	case TypeEmbeddedDocument:
		return v.Document().Equal(v2.Document())
	case TypeArray:
		return v.Array().Equal(v2.Array())
	case TypeBinary:
		return v.Binary().Equal(v2.Binary())
	case TypeDecimal128:
		return v.Decimal128().Equal(v2.Decimal128())
	case TypeNull:
		return true
	default:
		return v.bootstrap == v2.bootstrap
	}
}

// Interface returns the Go value of this Value. Scalars map to their native
// Go types, documents and arrays to *Document and *Array, and null to nil.
// The empty Value also returns nil.
func (v Value) Interface() interface{} {
	switch v.t {
	case TypeDouble:
		return v.Double()
	case TypeString:
		return v.StringValue()
	case TypeEmbeddedDocument:
		return v.Document()
	case TypeArray:
		return v.Array()
	case TypeBinary:
		return v.Binary()
	case TypeBoolean:
		return v.Boolean()
	case TypeDateTime:
		return v.DateTime()
	case TypeInt32:
		return v.Int32()
	case TypeTimestamp:
		return v.Timestamp()
	case TypeInt64:
		return v.Int64()
	case TypeDecimal128:
		return v.Decimal128()
	case TypeUInt32:
		return v.UInt32()
	case TypeUInt64:
		return v.UInt64()
	default:
		return nil
	}
}

// String implements the fmt.Stringer interface. The rendering is meant for
// logs and error messages, not for interchange.
func (v Value) String() string {
	switch v.t {
	case TypeDouble:
		return strconv.FormatFloat(v.Double(), 'g', -1, 64)
	case TypeString:
		return strconv.Quote(v.StringValue())
	case TypeEmbeddedDocument:
		return v.Document().String()
	case TypeArray:
		return v.Array().String()
	case TypeBinary:
		return v.Binary().String()
	case TypeBoolean:
		return strconv.FormatBool(v.Boolean())
	case TypeDateTime:
		return v.DateTime().String()
	case TypeNull:
		return "null"
	case TypeInt32:
		return strconv.FormatInt(int64(v.Int32()), 10)
	case TypeTimestamp:
		return v.Timestamp().String()
	case TypeInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case TypeDecimal128:
		return v.Decimal128().String()
	case TypeUInt32:
		return strconv.FormatUint(uint64(v.UInt32()), 10)
	case TypeUInt64:
		return strconv.FormatUint(v.UInt64(), 10)
	default:
		return "<empty>"
	}
}
