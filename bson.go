// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

// Type represents a BSON type.
type Type byte

// The BSON element types supported by this package. UInt32 and UInt64 are
// extensions to the standard set; they use tags from the range the BSON
// specification leaves unassigned.
const (
	TypeDouble           Type = 0x01
	TypeString           Type = 0x02
	TypeEmbeddedDocument Type = 0x03
	TypeArray            Type = 0x04
	TypeBinary           Type = 0x05
	TypeBoolean          Type = 0x08
	TypeDateTime         Type = 0x09
	TypeNull             Type = 0x0A
	TypeInt32            Type = 0x10
	TypeTimestamp        Type = 0x11
	TypeInt64            Type = 0x12
	TypeDecimal128       Type = 0x13
	TypeUInt32           Type = 0x14
	TypeUInt64           Type = 0x15
)

// String returns the string representation of the BSON type's name.
func (t Type) String() string {
	switch t {
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeEmbeddedDocument:
		return "embedded document"
	case TypeArray:
		return "array"
	case TypeBinary:
		return "binary"
	case TypeBoolean:
		return "boolean"
	case TypeDateTime:
		return "UTC datetime"
	case TypeNull:
		return "null"
	case TypeInt32:
		return "32-bit integer"
	case TypeTimestamp:
		return "timestamp"
	case TypeInt64:
		return "64-bit integer"
	case TypeDecimal128:
		return "decimal128"
	case TypeUInt32:
		return "32-bit unsigned integer"
	case TypeUInt64:
		return "64-bit unsigned integer"
	default:
		return "invalid"
	}
}

// IsValid will return true if the Type is valid.
func (t Type) IsValid() bool {
	switch t {
	case TypeDouble, TypeString, TypeEmbeddedDocument, TypeArray, TypeBinary,
		TypeBoolean, TypeDateTime, TypeNull, TypeInt32, TypeTimestamp,
		TypeInt64, TypeDecimal128, TypeUInt32, TypeUInt64:
		return true
	default:
		return false
	}
}

// BSON binary element subtypes as described in https://bsonspec.org/spec.html.
const (
	TypeBinaryGeneric     byte = 0x00
	TypeBinaryFunction    byte = 0x01
	TypeBinaryBinaryOld   byte = 0x02
	TypeBinaryUUIDOld     byte = 0x03
	TypeBinaryUUID        byte = 0x04
	TypeBinaryMD5         byte = 0x05
	TypeBinaryEncrypted   byte = 0x06
	TypeBinaryUserDefined byte = 0x80
)

// The reserved extended JSON marker keys recognized by the generic decode
// path. Marker resolution looks only at the first key of a document; once a
// marker matches the decoder returns immediately with the one decoded value.
const (
	markerInt32        = "$numberInt"
	markerInt64        = "$numberLong"
	markerUInt32       = "$numberUInt32"
	markerUInt64       = "$numberUInt64"
	markerDouble       = "$numberDouble"
	markerDecimal      = "$numberDecimal"
	markerDecimalBytes = "$numberDecimalBytes"
	markerBinary       = "$binary"
	markerTimestamp    = "$timestamp"
	markerDateTime     = "$date"
)

// Internal-only markers used by the raw deserializer when a target is itself
// typed as a raw document or raw array. The values carried under these keys
// are byte slices that are revalidated as nested raw views without copying.
const (
	markerRawDocument = "$rawDocument"
	markerRawArray    = "$rawArray"
)

// UUIDNewtypeName is the newtype name that requests UUID handling from
// DeserializeNewtype. The wrapped value must be a Binary with the UUID
// subtype.
const UUIDNewtypeName = "$uuid"

// readi32 is a helper function for reading an int32 from a slice of bytes.
func readi32(b []byte) int32 {
	_ = b[3] // bounds check hint to compiler; see golang.org/issue/14808
	return int32(b[0]) | int32(b[1])<<8 | int32(b[2])<<16 | int32(b[3])<<24
}

// readu64 is a helper function for reading a uint64 from a slice of bytes.
func readu64(b []byte) uint64 {
	_ = b[7]
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}
