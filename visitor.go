// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import "strconv"

// Deserializer is a source of BSON values that can be driven by a Visitor.
// A Deserializer produces exactly one value; driving it a second time returns
// ErrEndOfStream.
type Deserializer interface {
	// HumanReadable reports whether consumers should prefer human readable
	// representations where both a compact and a readable form exist.
	HumanReadable() bool

	// DeserializeAny resolves the underlying value and calls the matching
	// visit method on the visitor.
	DeserializeAny(Visitor) (interface{}, error)

	// DeserializeOption maps BSON null to VisitNone and everything else to
	// VisitSome with a deserializer for the present value.
	DeserializeOption(Visitor) (interface{}, error)

	// DeserializeUnit decodes a value expected to carry no payload. BSON null
	// and the empty array both satisfy a unit target with VisitNull; any other
	// value resolves through the visitor as DeserializeAny would.
	DeserializeUnit(Visitor) (interface{}, error)

	// DeserializeEnum decodes an externally tagged enum. A plain string is a
	// unit variant; a document must hold exactly one entry whose key names
	// the variant and whose value is the payload.
	DeserializeEnum(EnumVisitor) (interface{}, error)

	// DeserializeNewtype decodes a newtype with the given name. Names without
	// special handling pass through to DeserializeAny; the UUIDNewtypeName
	// requires a Binary with the UUID subtype and visits its bytes.
	DeserializeNewtype(name string, v Visitor) (interface{}, error)
}

// Visitor receives the value a Deserializer resolved. Each method handles one
// BSON shape; implementations embed DefaultVisitor and override the shapes
// they accept, so unexpected shapes fail with InvalidTypeError.
type Visitor interface {
	VisitDouble(f float64) (interface{}, error)
	VisitString(s string) (interface{}, error)
	VisitBoolean(b bool) (interface{}, error)
	VisitNull() (interface{}, error)
	VisitInt32(i int32) (interface{}, error)
	VisitInt64(i int64) (interface{}, error)
	VisitUInt32(u uint32) (interface{}, error)
	VisitUInt64(u uint64) (interface{}, error)
	VisitBytes(b []byte) (interface{}, error)
	VisitArray(ar ArrayReader) (interface{}, error)
	VisitDocument(dr DocumentReader) (interface{}, error)
	VisitNone() (interface{}, error)
	VisitSome(d Deserializer) (interface{}, error)
}

// ArrayReader is the sequence side of the bridge. ReadValue returns a
// Deserializer for the next array element and ErrEOA once the array is
// exhausted.
type ArrayReader interface {
	ReadValue() (Deserializer, error)
	Len() int
}

// DocumentReader is the map side of the bridge. The cursor is strict: every
// ReadKey must be followed by exactly one ReadValue. ReadKey returns ErrEOD
// once the document is exhausted; ReadValue without a pending key returns
// ErrEndOfStream.
type DocumentReader interface {
	ReadKey() (string, error)
	ReadValue() (Deserializer, error)
	Len() int
}

// EnumVisitor receives the variant name of an externally tagged enum together
// with a reader for the variant payload.
type EnumVisitor interface {
	VisitEnum(variant string, vr VariantReader) (interface{}, error)
}

// VariantReader gives access to an enum variant's payload. Exactly one of its
// methods should be called, matching the expected variant kind.
type VariantReader interface {
	// Unit succeeds if the variant carries no payload.
	Unit() error

	// Newtype returns a deserializer for a single payload value.
	Newtype() (Deserializer, error)

	// Tuple requires the payload to be an array and visits it.
	Tuple(Visitor) (interface{}, error)

	// Struct requires the payload to be a document and visits it.
	Struct(Visitor) (interface{}, error)
}

// DefaultVisitor rejects every shape with an InvalidTypeError naming Expected
// as the required shape. Concrete visitors embed it and override the methods
// for the shapes they accept.
type DefaultVisitor struct {
	Expected string
}

func (dv DefaultVisitor) reject(received string) (interface{}, error) {
	return nil, InvalidTypeError{Received: received, Expected: dv.Expected}
}

// VisitDouble implements the Visitor interface.
func (dv DefaultVisitor) VisitDouble(f float64) (interface{}, error) {
	return dv.reject(strconv.FormatFloat(f, 'g', -1, 64))
}

// VisitString implements the Visitor interface.
func (dv DefaultVisitor) VisitString(s string) (interface{}, error) {
	return dv.reject(strconv.Quote(s))
}

// VisitBoolean implements the Visitor interface.
func (dv DefaultVisitor) VisitBoolean(b bool) (interface{}, error) {
	return dv.reject(strconv.FormatBool(b))
}

// VisitNull implements the Visitor interface.
func (dv DefaultVisitor) VisitNull() (interface{}, error) {
	return dv.reject("null")
}

// VisitInt32 implements the Visitor interface.
func (dv DefaultVisitor) VisitInt32(i int32) (interface{}, error) {
	return dv.reject(strconv.FormatInt(int64(i), 10))
}

// VisitInt64 implements the Visitor interface.
func (dv DefaultVisitor) VisitInt64(i int64) (interface{}, error) {
	return dv.reject(strconv.FormatInt(i, 10))
}

// VisitUInt32 implements the Visitor interface.
func (dv DefaultVisitor) VisitUInt32(u uint32) (interface{}, error) {
	return dv.reject(strconv.FormatUint(uint64(u), 10))
}

// VisitUInt64 implements the Visitor interface.
func (dv DefaultVisitor) VisitUInt64(u uint64) (interface{}, error) {
	return dv.reject(strconv.FormatUint(u, 10))
}

// VisitBytes implements the Visitor interface.
func (dv DefaultVisitor) VisitBytes(b []byte) (interface{}, error) {
	return dv.reject("bytes of length " + strconv.Itoa(len(b)))
}

// VisitArray implements the Visitor interface.
func (dv DefaultVisitor) VisitArray(ar ArrayReader) (interface{}, error) {
	return dv.reject("array")
}

// VisitDocument implements the Visitor interface.
func (dv DefaultVisitor) VisitDocument(dr DocumentReader) (interface{}, error) {
	return dv.reject("document")
}

// VisitNone implements the Visitor interface.
func (dv DefaultVisitor) VisitNone() (interface{}, error) {
	return dv.reject("none")
}

// VisitSome implements the Visitor interface.
func (dv DefaultVisitor) VisitSome(d Deserializer) (interface{}, error) {
	return dv.reject("some")
}
