// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import "fmt"

// DeserializerOptions configures deserialization.
type DeserializerOptions struct {
	humanReadable bool
}

// NewDeserializerOptions creates a new DeserializerOptions with human
// readable output enabled.
func NewDeserializerOptions() *DeserializerOptions {
	return &DeserializerOptions{humanReadable: true}
}

// SetHumanReadable specifies whether consumers should prefer human readable
// representations. Defaults to true.
func (opts *DeserializerOptions) SetHumanReadable(h bool) *DeserializerOptions {
	opts.humanReadable = h
	return opts
}

// ValueDeserializer is a Deserializer over an owned Value. It produces its
// value exactly once; any further use returns ErrEndOfStream. Embedded
// documents and arrays are consumed as they are bridged, so the value should
// be considered spent after deserialization.
type ValueDeserializer struct {
	value Value
	taken bool
	opts  *DeserializerOptions
}

var _ Deserializer = (*ValueDeserializer)(nil)

// NewValueDeserializer creates a Deserializer over the provided value. A nil
// opts uses the defaults.
func NewValueDeserializer(v Value, opts *DeserializerOptions) *ValueDeserializer {
	if opts == nil {
		opts = NewDeserializerOptions()
	}
	return &ValueDeserializer{value: v, opts: opts}
}

func (d *ValueDeserializer) take() (Value, error) {
	if d.taken {
		return Value{}, ErrEndOfStream
	}
	d.taken = true
	return d.value, nil
}

// HumanReadable implements the Deserializer interface.
func (d *ValueDeserializer) HumanReadable() bool { return d.opts.humanReadable }

// DeserializeAny implements the Deserializer interface.
func (d *ValueDeserializer) DeserializeAny(vis Visitor) (interface{}, error) {
	v, err := d.take()
	if err != nil {
		return nil, err
	}
	return deserializeValue(v, vis, d.opts)
}

func deserializeValue(v Value, vis Visitor, opts *DeserializerOptions) (interface{}, error) {
	switch v.Type() {
	case TypeDouble:
		return vis.VisitDouble(v.Double())
	case TypeString:
		return vis.VisitString(v.StringValue())
	case TypeEmbeddedDocument:
		return vis.VisitDocument(newDocumentDeserializer(v.Document(), opts))
	case TypeArray:
		return vis.VisitArray(newArrayDeserializer(v.Array(), opts))
	case TypeBinary:
		bin := v.Binary()
		if bin.Subtype == TypeBinaryGeneric {
			return vis.VisitBytes(bin.Data)
		}
		return vis.VisitDocument(newDocumentDeserializer(binaryExtendedDocument(bin), opts))
	case TypeBoolean:
		return vis.VisitBoolean(v.Boolean())
	case TypeDateTime:
		return vis.VisitDocument(newDocumentDeserializer(dateTimeExtendedDocument(v.DateTime()), opts))
	case TypeNull:
		return vis.VisitNull()
	case TypeInt32:
		return vis.VisitInt32(v.Int32())
	case TypeTimestamp:
		return vis.VisitDocument(newDocumentDeserializer(timestampExtendedDocument(v.Timestamp()), opts))
	case TypeInt64:
		return vis.VisitInt64(v.Int64())
	case TypeDecimal128:
		return vis.VisitDocument(newDecimal128Access(v.Decimal128(), opts))
	case TypeUInt32:
		return vis.VisitUInt32(v.UInt32())
	case TypeUInt64:
		return vis.VisitUInt64(v.UInt64())
	default:
		return nil, fmt.Errorf("cannot deserialize value of invalid type %d", byte(v.Type()))
	}
}

// DeserializeOption implements the Deserializer interface.
func (d *ValueDeserializer) DeserializeOption(vis Visitor) (interface{}, error) {
	v, err := d.take()
	if err != nil {
		return nil, err
	}
	if v.IsNull() {
		return vis.VisitNone()
	}
	return vis.VisitSome(NewValueDeserializer(v, d.opts))
}

// DeserializeUnit implements the Deserializer interface.
func (d *ValueDeserializer) DeserializeUnit(vis Visitor) (interface{}, error) {
	v, err := d.take()
	if err != nil {
		return nil, err
	}
	if v.IsNull() {
		return vis.VisitNull()
	}
	if arr, ok := v.ArrayOK(); ok && arr.Len() == 0 {
		return vis.VisitNull()
	}
	return deserializeValue(v, vis, d.opts)
}

// DeserializeEnum implements the Deserializer interface.
func (d *ValueDeserializer) DeserializeEnum(ev EnumVisitor) (interface{}, error) {
	v, err := d.take()
	if err != nil {
		return nil, err
	}

	switch v.Type() {
	case TypeString:
		return ev.VisitEnum(v.StringValue(), unitVariantReader{})
	case TypeEmbeddedDocument:
		doc := v.Document()
		elems := doc.take()
		if len(elems) == 0 {
			return nil, InvalidValueError{
				Received: "empty document",
				Expected: "a document with a single key naming the enum variant",
			}
		}
		if len(elems) > 1 {
			return nil, InvalidValueError{
				Received: fmt.Sprintf("extra key %q", elems[1].Key),
				Expected: "a document with a single key naming the enum variant",
			}
		}
		return ev.VisitEnum(elems[0].Key, &valueVariantReader{payload: elems[0].Value, opts: d.opts})
	default:
		return nil, InvalidTypeError{Received: v.String(), Expected: "a string or a single entry document"}
	}
}

// DeserializeNewtype implements the Deserializer interface.
func (d *ValueDeserializer) DeserializeNewtype(name string, vis Visitor) (interface{}, error) {
	if name != UUIDNewtypeName {
		return d.DeserializeAny(vis)
	}

	v, err := d.take()
	if err != nil {
		return nil, err
	}
	bin, ok := v.BinaryOK()
	if !ok {
		return nil, InvalidTypeError{Received: v.String(), Expected: "a binary value with the UUID subtype"}
	}
	if bin.Subtype != TypeBinaryUUID {
		return nil, InvalidValueError{
			Received: fmt.Sprintf("binary subtype %d", bin.Subtype),
			Expected: fmt.Sprintf("binary subtype %d", TypeBinaryUUID),
		}
	}
	return vis.VisitBytes(bin.Data)
}

// documentDeserializer bridges an owned document to the DocumentReader
// interface. The document's elements are moved out when the bridge is
// created.
type documentDeserializer struct {
	elems   []Element
	pos     int
	pending Value
	hasPend bool
	opts    *DeserializerOptions
}

var _ DocumentReader = (*documentDeserializer)(nil)

func newDocumentDeserializer(d *Document, opts *DeserializerOptions) *documentDeserializer {
	return &documentDeserializer{elems: d.take(), opts: opts}
}

// ReadKey returns the next key. An unread pending value is dropped.
func (dd *documentDeserializer) ReadKey() (string, error) {
	if dd.pos >= len(dd.elems) {
		dd.hasPend = false
		return "", ErrEOD
	}
	elem := dd.elems[dd.pos]
	dd.pos++
	dd.pending = elem.Value
	dd.hasPend = true
	return elem.Key, nil
}

// ReadValue returns a deserializer for the value belonging to the most
// recently read key.
func (dd *documentDeserializer) ReadValue() (Deserializer, error) {
	if !dd.hasPend {
		return nil, ErrEndOfStream
	}
	dd.hasPend = false
	return NewValueDeserializer(dd.pending, dd.opts), nil
}

// Len returns the number of entries not yet read.
func (dd *documentDeserializer) Len() int {
	return len(dd.elems) - dd.pos
}

// arrayDeserializer bridges an owned array to the ArrayReader interface. The
// array's values are moved out when the bridge is created.
type arrayDeserializer struct {
	values []Value
	pos    int
	opts   *DeserializerOptions
}

var _ ArrayReader = (*arrayDeserializer)(nil)

func newArrayDeserializer(a *Array, opts *DeserializerOptions) *arrayDeserializer {
	return &arrayDeserializer{values: a.take(), opts: opts}
}

// ReadValue returns a deserializer for the next array element.
func (ad *arrayDeserializer) ReadValue() (Deserializer, error) {
	if ad.pos >= len(ad.values) {
		return nil, ErrEOA
	}
	v := ad.values[ad.pos]
	ad.pos++
	return NewValueDeserializer(v, ad.opts), nil
}

// Len returns the number of elements not yet read.
func (ad *arrayDeserializer) Len() int {
	return len(ad.values) - ad.pos
}

// unitVariantReader is the VariantReader for enum variants decoded from a
// bare string. Only the unit form is available.
type unitVariantReader struct{}

var _ VariantReader = unitVariantReader{}

func (unitVariantReader) Unit() error { return nil }

func (unitVariantReader) Newtype() (Deserializer, error) {
	return nil, InvalidTypeError{Received: "unit variant", Expected: "newtype variant"}
}

func (unitVariantReader) Tuple(Visitor) (interface{}, error) {
	return nil, InvalidTypeError{Received: "unit variant", Expected: "tuple variant"}
}

func (unitVariantReader) Struct(Visitor) (interface{}, error) {
	return nil, InvalidTypeError{Received: "unit variant", Expected: "struct variant"}
}

// valueVariantReader is the VariantReader for enum variants decoded from a
// single entry document. The entry's value is the variant payload.
type valueVariantReader struct {
	payload Value
	opts    *DeserializerOptions
}

var _ VariantReader = (*valueVariantReader)(nil)

// Unit discards whatever payload the document form carried. A unit target
// only cares about the variant name.
func (vr *valueVariantReader) Unit() error {
	return nil
}

func (vr *valueVariantReader) Newtype() (Deserializer, error) {
	return NewValueDeserializer(vr.payload, vr.opts), nil
}

func (vr *valueVariantReader) Tuple(vis Visitor) (interface{}, error) {
	arr, ok := vr.payload.ArrayOK()
	if !ok {
		return nil, InvalidTypeError{Received: vr.payload.String(), Expected: "tuple variant"}
	}
	return vis.VisitArray(newArrayDeserializer(arr, vr.opts))
}

func (vr *valueVariantReader) Struct(vis Visitor) (interface{}, error) {
	doc, ok := vr.payload.DocumentOK()
	if !ok {
		return nil, InvalidTypeError{Received: vr.payload.String(), Expected: "struct variant"}
	}
	return vis.VisitDocument(newDocumentDeserializer(doc, vr.opts))
}
