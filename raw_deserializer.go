// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"math"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Deserializer returns a Deserializer that produces this raw document without
// converting it to the owned model first. A nil opts uses the defaults.
func (rd RawDocument) Deserializer(opts *DeserializerOptions) Deserializer {
	return NewRawDeserializer(RawValue{t: TypeEmbeddedDocument, data: rd.buf}, opts)
}

// Deserializer returns a Deserializer that produces this raw array without
// converting it to the owned model first. A nil opts uses the defaults.
func (ra RawArray) Deserializer(opts *DeserializerOptions) Deserializer {
	return NewRawDeserializer(RawValue{t: TypeArray, data: ra.doc.buf}, opts)
}

// NewRawDeserializer creates a Deserializer over a raw value. Like its owned
// counterpart it produces the value exactly once.
//
// Embedded documents and arrays are not walked; they are presented as single
// entry marker documents carrying the sub-buffer, which the generic decode
// path converts and the raw decode path adopts without copying. Enums are not
// available in raw mode.
func NewRawDeserializer(v RawValue, opts *DeserializerOptions) Deserializer {
	if opts == nil {
		opts = NewDeserializerOptions()
	}
	return &rawDeserializer{value: v, opts: opts}
}

type rawDeserializer struct {
	value RawValue
	taken bool
	opts  *DeserializerOptions
}

var _ Deserializer = (*rawDeserializer)(nil)

func (d *rawDeserializer) take() (RawValue, error) {
	if d.taken {
		return RawValue{}, ErrEndOfStream
	}
	d.taken = true
	return d.value, nil
}

// HumanReadable implements the Deserializer interface.
func (d *rawDeserializer) HumanReadable() bool { return d.opts.humanReadable }

// DeserializeAny implements the Deserializer interface.
func (d *rawDeserializer) DeserializeAny(vis Visitor) (interface{}, error) {
	v, err := d.take()
	if err != nil {
		return nil, err
	}
	return d.dispatch(v, vis)
}

func (d *rawDeserializer) dispatch(v RawValue, vis Visitor) (interface{}, error) {
	switch v.Type() {
	case TypeDouble:
		return vis.VisitDouble(v.Double())
	case TypeString:
		s := v.StringValue()
		if !utf8.ValidString(s) {
			return nil, errors.Wrap(ErrInvalidUTF8, "string value")
		}
		return vis.VisitString(s)
	case TypeEmbeddedDocument:
		return vis.VisitDocument(&oneEntryReader{
			key:   markerRawDocument,
			value: &bytesDeserializer{b: v.data, opts: d.opts},
		})
	case TypeArray:
		return vis.VisitDocument(&oneEntryReader{
			key:   markerRawArray,
			value: &bytesDeserializer{b: v.data, opts: d.opts},
		})
	case TypeBinary:
		bin := v.Binary()
		if bin.Subtype == TypeBinaryGeneric {
			return vis.VisitBytes(bin.Data)
		}
		return vis.VisitDocument(newDocumentDeserializer(binaryRawDocument(bin), d.opts))
	case TypeBoolean:
		return vis.VisitBoolean(v.Boolean())
	case TypeDateTime:
		return vis.VisitDocument(newDocumentDeserializer(dateTimeExtendedDocument(v.DateTime()), d.opts))
	case TypeNull:
		return vis.VisitNull()
	case TypeInt32:
		return vis.VisitInt32(v.Int32())
	case TypeTimestamp:
		return vis.VisitDocument(newDocumentDeserializer(timestampExtendedDocument(v.Timestamp()), d.opts))
	case TypeInt64:
		return vis.VisitInt64(v.Int64())
	case TypeDecimal128:
		return vis.VisitDocument(newDecimal128Access(v.Decimal128(), d.opts))
	case TypeUInt32:
		return vis.VisitUInt32(v.UInt32())
	case TypeUInt64:
		return vis.VisitUInt64(v.UInt64())
	default:
		return nil, errors.Errorf("cannot deserialize value of invalid type %#x", byte(v.Type()))
	}
}

// DeserializeOption implements the Deserializer interface.
func (d *rawDeserializer) DeserializeOption(vis Visitor) (interface{}, error) {
	v, err := d.take()
	if err != nil {
		return nil, err
	}
	if v.IsNull() {
		return vis.VisitNone()
	}
	return vis.VisitSome(NewRawDeserializer(v, d.opts))
}

// DeserializeUnit implements the Deserializer interface. A zero length array
// is visible on the wire as a five byte buffer.
func (d *rawDeserializer) DeserializeUnit(vis Visitor) (interface{}, error) {
	v, err := d.take()
	if err != nil {
		return nil, err
	}
	if v.IsNull() {
		return vis.VisitNull()
	}
	if v.Type() == TypeArray && len(v.data) == 5 {
		return vis.VisitNull()
	}
	return d.dispatch(v, vis)
}

// DeserializeEnum implements the Deserializer interface. Enums require the
// owned model; convert the raw view first.
func (d *rawDeserializer) DeserializeEnum(EnumVisitor) (interface{}, error) {
	return nil, errors.New("enums cannot be deserialized from a raw document")
}

// DeserializeNewtype implements the Deserializer interface.
func (d *rawDeserializer) DeserializeNewtype(name string, vis Visitor) (interface{}, error) {
	if name != UUIDNewtypeName {
		return d.DeserializeAny(vis)
	}

	v, err := d.take()
	if err != nil {
		return nil, err
	}
	bin, ok := v.BinaryOK()
	if !ok {
		return nil, InvalidTypeError{Received: v.Type().String(), Expected: "a binary value with the UUID subtype"}
	}
	if bin.Subtype != TypeBinaryUUID {
		return nil, InvalidValueError{
			Received: errors.Errorf("binary subtype %d", bin.Subtype).Error(),
			Expected: errors.Errorf("binary subtype %d", TypeBinaryUUID).Error(),
		}
	}
	return vis.VisitBytes(bin.Data)
}

// oneEntryReader is a DocumentReader over a single fixed entry.
type oneEntryReader struct {
	key     string
	value   Deserializer
	keyRead bool
	done    bool
}

var _ DocumentReader = (*oneEntryReader)(nil)

func (or *oneEntryReader) ReadKey() (string, error) {
	if or.done {
		return "", ErrEOD
	}
	or.keyRead = true
	return or.key, nil
}

func (or *oneEntryReader) ReadValue() (Deserializer, error) {
	if !or.keyRead || or.done {
		return nil, ErrEndOfStream
	}
	or.done = true
	return or.value, nil
}

func (or *oneEntryReader) Len() int {
	if or.done {
		return 0
	}
	return 1
}

// DecodeRawValue drives the deserializer and adopts its output as a raw
// value. Sub-buffers carried under the raw markers are adopted without
// copying; a plain document that is not a recognized marker cannot become a
// raw view and is an error.
func DecodeRawValue(d Deserializer) (RawValue, error) {
	res, err := d.DeserializeAny(rawVisitor{})
	if err != nil {
		return RawValue{}, err
	}
	return res.(RawValue), nil
}

// DecodeRawDocument drives the deserializer and requires a raw document.
func DecodeRawDocument(d Deserializer) (RawDocument, error) {
	v, err := DecodeRawValue(d)
	if err != nil {
		return RawDocument{}, err
	}
	rd, ok := v.DocumentOK()
	if !ok {
		return RawDocument{}, InvalidTypeError{Received: v.Type().String(), Expected: "a document"}
	}
	return rd, nil
}

// DecodeRawArray drives the deserializer and requires a raw array.
func DecodeRawArray(d Deserializer) (RawArray, error) {
	v, err := DecodeRawValue(d)
	if err != nil {
		return RawArray{}, err
	}
	ra, ok := v.ArrayOK()
	if !ok {
		return RawArray{}, InvalidTypeError{Received: v.Type().String(), Expected: "an array"}
	}
	return ra, nil
}

// rawVisitor folds deserializer output into a RawValue.
type rawVisitor struct{}

var _ Visitor = rawVisitor{}

// VisitDouble implements the Visitor interface.
func (rawVisitor) VisitDouble(f float64) (interface{}, error) {
	var v RawValue
	v.t = TypeDouble
	putu64(v.bootstrap[0:8], math.Float64bits(f))
	return v, nil
}

// VisitString implements the Visitor interface.
func (rawVisitor) VisitString(s string) (interface{}, error) {
	return RawValue{t: TypeString, data: []byte(s)}, nil
}

// VisitBoolean implements the Visitor interface.
func (rawVisitor) VisitBoolean(b bool) (interface{}, error) {
	var v RawValue
	v.t = TypeBoolean
	if b {
		v.bootstrap[0] = 0x01
	}
	return v, nil
}

// VisitNull implements the Visitor interface.
func (rawVisitor) VisitNull() (interface{}, error) {
	return RawValue{t: TypeNull}, nil
}

// VisitInt32 implements the Visitor interface.
func (rawVisitor) VisitInt32(i int32) (interface{}, error) {
	var v RawValue
	v.t = TypeInt32
	putu32(v.bootstrap[0:4], uint32(i))
	return v, nil
}

// VisitInt64 implements the Visitor interface.
func (rawVisitor) VisitInt64(i int64) (interface{}, error) {
	var v RawValue
	v.t = TypeInt64
	putu64(v.bootstrap[0:8], uint64(i))
	return v, nil
}

// VisitUInt32 implements the Visitor interface.
func (rawVisitor) VisitUInt32(u uint32) (interface{}, error) {
	var v RawValue
	v.t = TypeUInt32
	putu32(v.bootstrap[0:4], u)
	return v, nil
}

// VisitUInt64 implements the Visitor interface.
func (rawVisitor) VisitUInt64(u uint64) (interface{}, error) {
	var v RawValue
	v.t = TypeUInt64
	putu64(v.bootstrap[0:8], u)
	return v, nil
}

// VisitBytes implements the Visitor interface.
func (rawVisitor) VisitBytes(b []byte) (interface{}, error) {
	return RawValue{t: TypeBinary, data: b}, nil
}

// VisitNone implements the Visitor interface.
func (rawVisitor) VisitNone() (interface{}, error) {
	return RawValue{t: TypeNull}, nil
}

// VisitSome implements the Visitor interface.
func (rv rawVisitor) VisitSome(d Deserializer) (interface{}, error) {
	return d.DeserializeAny(rv)
}

// VisitArray implements the Visitor interface. An array can only become a raw
// view through the raw array marker; a generic sequence has no backing
// buffer.
func (rawVisitor) VisitArray(ArrayReader) (interface{}, error) {
	return nil, errors.New("cannot decode a raw view from a generic array")
}

// VisitDocument implements the Visitor interface. Only the marker documents
// produced by raw sources are accepted; any other first key is an error.
func (rv rawVisitor) VisitDocument(dr DocumentReader) (interface{}, error) {
	key, err := dr.ReadKey()
	if err == ErrEOD {
		return nil, errors.New("cannot decode a raw view from a generic document")
	}
	if err != nil {
		return nil, err
	}

	switch key {
	case markerRawDocument:
		b, err := readBytesBody(dr, key)
		if err != nil {
			return nil, err
		}
		rd, err := NewRawDocument(b)
		if err != nil {
			return nil, err
		}
		return RawValue{t: TypeEmbeddedDocument, data: rd.buf}, nil
	case markerRawArray:
		b, err := readBytesBody(dr, key)
		if err != nil {
			return nil, err
		}
		ra, err := NewRawArray(b)
		if err != nil {
			return nil, err
		}
		return RawValue{t: TypeArray, data: ra.doc.buf}, nil
	case markerBinary:
		body, err := readValueBody(dr)
		if err != nil {
			return nil, err
		}
		val, err := decodeBinaryBody(body)
		if err != nil {
			return nil, err
		}
		bin := val.Binary()
		var v RawValue
		v.t = TypeBinary
		v.bootstrap[0] = bin.Subtype
		v.data = bin.Data
		return v, nil
	case markerDateTime:
		body, err := readValueBody(dr)
		if err != nil {
			return nil, err
		}
		val, err := decodeDateTimeBody(body)
		if err != nil {
			return nil, err
		}
		var v RawValue
		v.t = TypeDateTime
		putu64(v.bootstrap[0:8], uint64(val.DateTime()))
		return v, nil
	case markerTimestamp:
		body, err := readValueBody(dr)
		if err != nil {
			return nil, err
		}
		val, err := decodeTimestampBody(body)
		if err != nil {
			return nil, err
		}
		ts := val.Timestamp()
		var v RawValue
		v.t = TypeTimestamp
		putu32(v.bootstrap[0:4], ts.I)
		putu32(v.bootstrap[4:8], ts.T)
		return v, nil
	case markerDecimalBytes:
		b, err := readBytesBody(dr, key)
		if err != nil {
			return nil, err
		}
		if len(b) != 16 {
			return nil, InvalidLengthError{Length: len(b), Expected: "16 bytes"}
		}
		var v RawValue
		v.t = TypeDecimal128
		copy(v.bootstrap[0:16], b)
		return v, nil
	default:
		return nil, errors.Errorf("cannot decode a raw view from a document with key %q", key)
	}
}
