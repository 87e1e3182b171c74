// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/ikmak/bson/decimal"
	"github.com/ikmak/bson/objectid"
)

// DecodeValue drives the deserializer and folds whatever it produces into an
// owned Value. Marker documents produced by the extended JSON detour are
// recognized and collapsed back into their scalar types.
func DecodeValue(d Deserializer) (Value, error) {
	res, err := d.DeserializeAny(valueVisitor{})
	if err != nil {
		return Value{}, err
	}
	return res.(Value), nil
}

// DecodeDocument drives the deserializer and requires the result to be a
// document.
func DecodeDocument(d Deserializer) (*Document, error) {
	v, err := DecodeValue(d)
	if err != nil {
		return nil, err
	}
	doc, ok := v.DocumentOK()
	if !ok {
		return nil, InvalidTypeError{Received: v.String(), Expected: "a document"}
	}
	return doc, nil
}

// DecodeString drives the deserializer and requires a string.
func DecodeString(d Deserializer) (string, error) {
	res, err := d.DeserializeAny(stringVisitor{DefaultVisitor{Expected: "a string"}})
	if err != nil {
		return "", err
	}
	return res.(string), nil
}

// DecodeBoolean drives the deserializer and requires a boolean.
func DecodeBoolean(d Deserializer) (bool, error) {
	res, err := d.DeserializeAny(booleanVisitor{DefaultVisitor{Expected: "a boolean"}})
	if err != nil {
		return false, err
	}
	return res.(bool), nil
}

// DecodeInt64 drives the deserializer and requires an integer representable
// as an int64.
func DecodeInt64(d Deserializer) (int64, error) {
	v, err := DecodeValue(d)
	if err != nil {
		return 0, err
	}
	switch v.Type() {
	case TypeInt32:
		return int64(v.Int32()), nil
	case TypeInt64:
		return v.Int64(), nil
	case TypeUInt32:
		return int64(v.UInt32()), nil
	case TypeUInt64:
		u := v.UInt64()
		if u > math.MaxInt64 {
			return 0, InvalidValueError{Received: v.String(), Expected: "an integer representable as an int64"}
		}
		return int64(u), nil
	default:
		return 0, InvalidTypeError{Received: v.String(), Expected: "an integer"}
	}
}

// DecodeUInt64 drives the deserializer and requires a non-negative integer.
func DecodeUInt64(d Deserializer) (uint64, error) {
	v, err := DecodeValue(d)
	if err != nil {
		return 0, err
	}
	switch v.Type() {
	case TypeInt32:
		if v.Int32() < 0 {
			return 0, InvalidValueError{Received: v.String(), Expected: "a non-negative integer"}
		}
		return uint64(v.Int32()), nil
	case TypeInt64:
		if v.Int64() < 0 {
			return 0, InvalidValueError{Received: v.String(), Expected: "a non-negative integer"}
		}
		return uint64(v.Int64()), nil
	case TypeUInt32:
		return uint64(v.UInt32()), nil
	case TypeUInt64:
		return v.UInt64(), nil
	default:
		return 0, InvalidTypeError{Received: v.String(), Expected: "an integer"}
	}
}

// DecodeDouble drives the deserializer and requires a double or an integer
// that converts to one.
func DecodeDouble(d Deserializer) (float64, error) {
	v, err := DecodeValue(d)
	if err != nil {
		return 0, err
	}
	switch v.Type() {
	case TypeDouble:
		return v.Double(), nil
	case TypeInt32:
		return float64(v.Int32()), nil
	case TypeInt64:
		return float64(v.Int64()), nil
	case TypeUInt32:
		return float64(v.UInt32()), nil
	case TypeUInt64:
		return float64(v.UInt64()), nil
	default:
		return 0, InvalidTypeError{Received: v.String(), Expected: "a double"}
	}
}

// DecodeBinary drives the deserializer and requires a binary value.
func DecodeBinary(d Deserializer) (Binary, error) {
	v, err := DecodeValue(d)
	if err != nil {
		return Binary{}, err
	}
	bin, ok := v.BinaryOK()
	if !ok {
		return Binary{}, InvalidTypeError{Received: v.String(), Expected: "a binary value"}
	}
	return bin, nil
}

// DecodeDateTime drives the deserializer and requires a datetime.
func DecodeDateTime(d Deserializer) (DateTime, error) {
	v, err := DecodeValue(d)
	if err != nil {
		return 0, err
	}
	dt, ok := v.DateTimeOK()
	if !ok {
		return 0, InvalidTypeError{Received: v.String(), Expected: "a datetime"}
	}
	return dt, nil
}

// DecodeTimestamp drives the deserializer and requires a timestamp.
func DecodeTimestamp(d Deserializer) (Timestamp, error) {
	v, err := DecodeValue(d)
	if err != nil {
		return Timestamp{}, err
	}
	ts, ok := v.TimestampOK()
	if !ok {
		return Timestamp{}, InvalidTypeError{Received: v.String(), Expected: "a timestamp"}
	}
	return ts, nil
}

// DecodeDecimal128 drives the deserializer and requires a decimal128.
func DecodeDecimal128(d Deserializer) (decimal.Decimal128, error) {
	v, err := DecodeValue(d)
	if err != nil {
		return decimal.Decimal128{}, err
	}
	dec, ok := v.Decimal128OK()
	if !ok {
		return decimal.Decimal128{}, InvalidTypeError{Received: v.String(), Expected: "a decimal128"}
	}
	return dec, nil
}

// DecodeObjectID drives the deserializer and requires either 12 raw bytes or
// a 24 character hex string. Both forms are accepted regardless of the human
// readable setting, so ids stored as strings still parse.
func DecodeObjectID(d Deserializer) (objectid.ObjectID, error) {
	res, err := d.DeserializeAny(objectIDVisitor{DefaultVisitor{Expected: "an ObjectID"}})
	if err != nil {
		return objectid.NilObjectID, err
	}
	return res.(objectid.ObjectID), nil
}

// valueVisitor folds any deserializer output into an owned Value. It is the
// generic half of the bridge; every visit method returns a Value.
type valueVisitor struct{}

var _ Visitor = valueVisitor{}

// VisitDouble implements the Visitor interface.
func (valueVisitor) VisitDouble(f float64) (interface{}, error) { return VC.Double(f), nil }

// VisitString implements the Visitor interface.
func (valueVisitor) VisitString(s string) (interface{}, error) { return VC.String(s), nil }

// VisitBoolean implements the Visitor interface.
func (valueVisitor) VisitBoolean(b bool) (interface{}, error) { return VC.Boolean(b), nil }

// VisitNull implements the Visitor interface.
func (valueVisitor) VisitNull() (interface{}, error) { return VC.Null(), nil }

// VisitInt32 implements the Visitor interface.
func (valueVisitor) VisitInt32(i int32) (interface{}, error) { return VC.Int32(i), nil }

// VisitInt64 implements the Visitor interface.
func (valueVisitor) VisitInt64(i int64) (interface{}, error) { return VC.Int64(i), nil }

// VisitUInt32 implements the Visitor interface.
func (valueVisitor) VisitUInt32(u uint32) (interface{}, error) { return VC.UInt32(u), nil }

// VisitUInt64 implements the Visitor interface.
func (valueVisitor) VisitUInt64(u uint64) (interface{}, error) { return VC.UInt64(u), nil }

// VisitBytes implements the Visitor interface. The bytes may be borrowed from
// a raw buffer, so they are copied.
func (valueVisitor) VisitBytes(b []byte) (interface{}, error) {
	data := make([]byte, len(b))
	copy(data, b)
	return VC.Binary(data), nil
}

// VisitNone implements the Visitor interface.
func (valueVisitor) VisitNone() (interface{}, error) { return VC.Null(), nil }

// VisitSome implements the Visitor interface.
func (vv valueVisitor) VisitSome(d Deserializer) (interface{}, error) {
	return d.DeserializeAny(vv)
}

// VisitArray implements the Visitor interface.
func (vv valueVisitor) VisitArray(ar ArrayReader) (interface{}, error) {
	values := make([]Value, 0, ar.Len())
	for {
		vd, err := ar.ReadValue()
		if err == ErrEOA {
			break
		}
		if err != nil {
			return nil, err
		}
		res, err := vd.DeserializeAny(vv)
		if err != nil {
			return nil, err
		}
		values = append(values, res.(Value))
	}
	return VC.Array(&Array{values: values}), nil
}

// VisitDocument implements the Visitor interface. Marker resolution looks
// only at the first key. When a marker matches, its body is decoded and the
// result returned immediately; later entries are neither read nor validated.
func (vv valueVisitor) VisitDocument(dr DocumentReader) (interface{}, error) {
	key, err := dr.ReadKey()
	if err == ErrEOD {
		return VC.Document(NewDocument()), nil
	}
	if err != nil {
		return nil, err
	}

	switch key {
	case markerInt32:
		s, err := readStringBody(dr, key)
		if err != nil {
			return nil, err
		}
		i, perr := strconv.ParseInt(s, 10, 32)
		if perr != nil {
			return nil, InvalidValueError{Received: strconv.Quote(s), Expected: "a 32-bit integer string"}
		}
		return VC.Int32(int32(i)), nil
	case markerInt64:
		s, err := readStringBody(dr, key)
		if err != nil {
			return nil, err
		}
		i, perr := strconv.ParseInt(s, 10, 64)
		if perr != nil {
			return nil, InvalidValueError{Received: strconv.Quote(s), Expected: "a 64-bit integer string"}
		}
		return VC.Int64(i), nil
	case markerUInt32:
		s, err := readStringBody(dr, key)
		if err != nil {
			return nil, err
		}
		u, perr := strconv.ParseUint(s, 10, 32)
		if perr != nil {
			return nil, InvalidValueError{Received: strconv.Quote(s), Expected: "a 32-bit unsigned integer string"}
		}
		return VC.UInt32(uint32(u)), nil
	case markerUInt64:
		s, err := readStringBody(dr, key)
		if err != nil {
			return nil, err
		}
		u, perr := strconv.ParseUint(s, 10, 64)
		if perr != nil {
			return nil, InvalidValueError{Received: strconv.Quote(s), Expected: "a 64-bit unsigned integer string"}
		}
		return VC.UInt64(u), nil
	case markerDouble:
		s, err := readStringBody(dr, key)
		if err != nil {
			return nil, err
		}
		return decodeNumberDouble(s)
	case markerDecimal:
		return nil, fmt.Errorf("deserializing a decimal128 from a string is not supported")
	case markerDecimalBytes:
		b, err := readBytesBody(dr, key)
		if err != nil {
			return nil, err
		}
		dec, err := decimal.FromBytes(b)
		if err != nil {
			return nil, err
		}
		return VC.Decimal128(dec), nil
	case markerBinary:
		body, err := readValueBody(dr)
		if err != nil {
			return nil, err
		}
		return decodeBinaryBody(body)
	case markerDateTime:
		body, err := readValueBody(dr)
		if err != nil {
			return nil, err
		}
		return decodeDateTimeBody(body)
	case markerTimestamp:
		body, err := readValueBody(dr)
		if err != nil {
			return nil, err
		}
		return decodeTimestampBody(body)
	case markerRawDocument:
		b, err := readBytesBody(dr, key)
		if err != nil {
			return nil, err
		}
		doc, err := ReadDocument(b)
		if err != nil {
			return nil, err
		}
		return VC.Document(doc), nil
	case markerRawArray:
		b, err := readBytesBody(dr, key)
		if err != nil {
			return nil, err
		}
		arr, err := ReadArray(b)
		if err != nil {
			return nil, err
		}
		return VC.Array(arr), nil
	}

	// Not a marker, so fold the whole thing into a plain document.
	first, err := readValueBody(dr)
	if err != nil {
		return nil, err
	}
	doc := NewDocument(Element{Key: key, Value: first})
	for {
		key, err := dr.ReadKey()
		if err == ErrEOD {
			break
		}
		if err != nil {
			return nil, err
		}
		val, err := readValueBody(dr)
		if err != nil {
			return nil, err
		}
		doc.Append(Element{Key: key, Value: val})
	}
	return VC.Document(doc), nil
}

// decodeNumberDouble maps the $numberDouble string body to a value. The
// non-finite names produce doubles; any other string is read as a signed
// 64-bit integer.
func decodeNumberDouble(s string) (Value, error) {
	switch s {
	case "Infinity":
		return VC.Double(math.Inf(1)), nil
	case "-Infinity":
		return VC.Double(math.Inf(-1)), nil
	case "NaN":
		return VC.Double(math.NaN()), nil
	}
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Value{}, InvalidValueError{Received: strconv.Quote(s), Expected: "a 64-bit integer string or a non-finite double name"}
	}
	return VC.Int64(i), nil
}

// decodeBinaryBody accepts both $binary body forms: a raw bytes payload under
// "bytes" with a numeric subtype, or the textual base64 string with a hex
// subtype string.
func decodeBinaryBody(body Value) (Value, error) {
	doc, ok := body.DocumentOK()
	if !ok {
		return Value{}, InvalidTypeError{Received: body.String(), Expected: "a document with a binary payload and subType"}
	}

	var data []byte
	if raw, lerr := doc.LookupErr("bytes"); lerr == nil {
		bin, ok := raw.BinaryOK()
		if !ok {
			return Value{}, InvalidTypeError{Received: raw.String(), Expected: "a bytes payload"}
		}
		data = bin.Data
	} else {
		b64, lerr := doc.LookupErr("base64")
		if lerr != nil {
			return Value{}, InvalidValueError{Received: body.String(), Expected: "a document with a bytes or base64 payload"}
		}
		b64s, ok := b64.StringValueOK()
		if !ok {
			return Value{}, InvalidTypeError{Received: b64.String(), Expected: "a base64 string"}
		}
		var derr error
		data, derr = base64.StdEncoding.DecodeString(b64s)
		if derr != nil {
			return Value{}, InvalidValueError{Received: strconv.Quote(b64s), Expected: "valid base64"}
		}
	}

	st, err := doc.LookupErr("subType")
	if err != nil {
		return Value{}, InvalidValueError{Received: body.String(), Expected: "a document with a subType"}
	}
	subtype, err := decodeBinarySubtype(st)
	if err != nil {
		return Value{}, err
	}
	return VC.BinaryWithSubtype(data, subtype), nil
}

func decodeBinarySubtype(v Value) (byte, error) {
	if s, ok := v.StringValueOK(); ok {
		u, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			return 0, InvalidValueError{Received: strconv.Quote(s), Expected: "a hex subtype string"}
		}
		return byte(u), nil
	}
	switch v.Type() {
	case TypeInt32:
		if v.Int32() < 0 || v.Int32() > math.MaxUint8 {
			return 0, InvalidValueError{Received: v.String(), Expected: "a subtype between 0 and 255"}
		}
		return byte(v.Int32()), nil
	case TypeInt64:
		if v.Int64() < 0 || v.Int64() > math.MaxUint8 {
			return 0, InvalidValueError{Received: v.String(), Expected: "a subtype between 0 and 255"}
		}
		return byte(v.Int64()), nil
	case TypeUInt32:
		if v.UInt32() > math.MaxUint8 {
			return 0, InvalidValueError{Received: v.String(), Expected: "a subtype between 0 and 255"}
		}
		return byte(v.UInt32()), nil
	case TypeUInt64:
		if v.UInt64() > math.MaxUint8 {
			return 0, InvalidValueError{Received: v.String(), Expected: "a subtype between 0 and 255"}
		}
		return byte(v.UInt64()), nil
	default:
		return 0, InvalidTypeError{Received: v.String(), Expected: "a numeric or hex string subtype"}
	}
}

func decodeDateTimeBody(body Value) (Value, error) {
	switch body.Type() {
	case TypeInt32:
		return VC.DateTime(DateTime(body.Int32())), nil
	case TypeInt64:
		return VC.DateTime(DateTime(body.Int64())), nil
	case TypeString:
		t, err := time.Parse(time.RFC3339Nano, body.StringValue())
		if err != nil {
			return Value{}, InvalidValueError{Received: body.String(), Expected: "an RFC 3339 datetime string"}
		}
		return VC.Time(t), nil
	default:
		return Value{}, InvalidTypeError{Received: body.String(), Expected: "a millisecond count or datetime string"}
	}
}

func decodeTimestampBody(body Value) (Value, error) {
	doc, ok := body.DocumentOK()
	if !ok {
		return Value{}, InvalidTypeError{Received: body.String(), Expected: "a document with t and i"}
	}
	t, err := lookupUint32(doc, "t")
	if err != nil {
		return Value{}, err
	}
	i, err := lookupUint32(doc, "i")
	if err != nil {
		return Value{}, err
	}
	return VC.Timestamp(t, i), nil
}

func lookupUint32(doc *Document, key string) (uint32, error) {
	v, err := doc.LookupErr(key)
	if err != nil {
		return 0, InvalidValueError{Received: doc.String(), Expected: fmt.Sprintf("a document with an unsigned 32-bit %q", key)}
	}
	switch v.Type() {
	case TypeInt32:
		if v.Int32() < 0 {
			return 0, InvalidValueError{Received: v.String(), Expected: "an unsigned 32-bit integer"}
		}
		return uint32(v.Int32()), nil
	case TypeInt64:
		if v.Int64() < 0 || v.Int64() > math.MaxUint32 {
			return 0, InvalidValueError{Received: v.String(), Expected: "an unsigned 32-bit integer"}
		}
		return uint32(v.Int64()), nil
	case TypeUInt32:
		return v.UInt32(), nil
	case TypeUInt64:
		if v.UInt64() > math.MaxUint32 {
			return 0, InvalidValueError{Received: v.String(), Expected: "an unsigned 32-bit integer"}
		}
		return uint32(v.UInt64()), nil
	default:
		return 0, InvalidTypeError{Received: v.String(), Expected: "an unsigned 32-bit integer"}
	}
}

// readValueBody reads the pending value of the current entry and folds it
// into an owned Value.
func readValueBody(dr DocumentReader) (Value, error) {
	vd, err := dr.ReadValue()
	if err != nil {
		return Value{}, err
	}
	res, err := vd.DeserializeAny(valueVisitor{})
	if err != nil {
		return Value{}, err
	}
	return res.(Value), nil
}

// readStringBody reads the pending value of the current entry and requires a
// string.
func readStringBody(dr DocumentReader, marker string) (string, error) {
	vd, err := dr.ReadValue()
	if err != nil {
		return "", err
	}
	res, err := vd.DeserializeAny(stringVisitor{DefaultVisitor{Expected: "a string value for " + marker}})
	if err != nil {
		return "", err
	}
	return res.(string), nil
}

// readBytesBody reads the pending value of the current entry and requires raw
// bytes.
func readBytesBody(dr DocumentReader, marker string) ([]byte, error) {
	vd, err := dr.ReadValue()
	if err != nil {
		return nil, err
	}
	res, err := vd.DeserializeAny(bytesVisitor{DefaultVisitor{Expected: "a byte payload for " + marker}})
	if err != nil {
		return nil, err
	}
	return res.([]byte), nil
}

type stringVisitor struct{ DefaultVisitor }

func (stringVisitor) VisitString(s string) (interface{}, error) { return s, nil }

type booleanVisitor struct{ DefaultVisitor }

func (booleanVisitor) VisitBoolean(b bool) (interface{}, error) { return b, nil }

type bytesVisitor struct{ DefaultVisitor }

func (bytesVisitor) VisitBytes(b []byte) (interface{}, error) { return b, nil }

type objectIDVisitor struct{ DefaultVisitor }

func (objectIDVisitor) VisitString(s string) (interface{}, error) {
	oid, err := objectid.FromHex(s)
	if err != nil {
		return nil, err
	}
	return oid, nil
}

func (objectIDVisitor) VisitBytes(b []byte) (interface{}, error) {
	oid, err := objectid.FromBytes(b)
	if err != nil {
		return nil, err
	}
	return oid, nil
}
