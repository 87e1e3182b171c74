// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MarshalBSON encodes the document into its binary representation.
func (d *Document) MarshalBSON() ([]byte, error) {
	return appendDocument(nil, d)
}

// MarshalBSON encodes the array into its binary representation. On the wire
// an array is a document whose keys are the decimal indexes "0", "1", etc.
func (a *Array) MarshalBSON() ([]byte, error) {
	return appendArray(nil, a)
}

// UnmarshalBSON replaces the contents of the document with the elements
// decoded from the provided binary representation.
func (d *Document) UnmarshalBSON(b []byte) error {
	if d == nil {
		return ErrNilDocument
	}
	doc, err := ReadDocument(b)
	if err != nil {
		return err
	}
	d.elems = doc.elems
	d.index = doc.index
	return nil
}

// UnmarshalBSON replaces the contents of the array with the values decoded
// from the provided binary representation.
func (a *Array) UnmarshalBSON(b []byte) error {
	if a == nil {
		return ErrNilDocument
	}
	arr, err := ReadArray(b)
	if err != nil {
		return err
	}
	a.values = arr.values
	return nil
}

func appendDocument(dst []byte, d *Document) ([]byte, error) {
	var err error
	start := len(dst)
	dst = append(dst, 0x00, 0x00, 0x00, 0x00)
	for i := 0; i < d.Len(); i++ {
		elem := d.elems[i]
		dst, err = appendElement(dst, elem.Key, elem.Value)
		if err != nil {
			return nil, err
		}
	}
	dst = append(dst, 0x00)
	putu32(dst[start:start+4], uint32(len(dst)-start))
	return dst, nil
}

func appendArray(dst []byte, a *Array) ([]byte, error) {
	var err error
	start := len(dst)
	dst = append(dst, 0x00, 0x00, 0x00, 0x00)
	for i := 0; i < a.Len(); i++ {
		dst, err = appendElement(dst, strconv.Itoa(i), a.values[i])
		if err != nil {
			return nil, err
		}
	}
	dst = append(dst, 0x00)
	putu32(dst[start:start+4], uint32(len(dst)-start))
	return dst, nil
}

func appendElement(dst []byte, key string, v Value) ([]byte, error) {
	if strings.IndexByte(key, 0x00) != -1 {
		return nil, ErrInvalidKey
	}
	if v.IsZero() {
		return nil, fmt.Errorf("cannot encode empty value for key %q", key)
	}

	dst = append(dst, byte(v.t))
	dst = append(dst, key...)
	dst = append(dst, 0x00)

	var err error
	switch v.t {
	case TypeDouble:
		dst = appendu64(dst, math.Float64bits(v.Double()))
	case TypeString:
		dst = appendString(dst, v.StringValue())
	case TypeEmbeddedDocument:
		dst, err = appendDocument(dst, v.Document())
		if err != nil {
			return nil, err
		}
	case TypeArray:
		dst, err = appendArray(dst, v.Array())
		if err != nil {
			return nil, err
		}
	case TypeBinary:
		dst = appendBinary(dst, v.Binary())
	case TypeBoolean:
		if v.Boolean() {
			dst = append(dst, 0x01)
		} else {
			dst = append(dst, 0x00)
		}
	case TypeDateTime:
		dst = appendu64(dst, uint64(v.DateTime()))
	case TypeNull:
	case TypeInt32:
		dst = appendu32(dst, uint32(v.Int32()))
	case TypeTimestamp:
		ts := v.Timestamp()
		dst = appendu32(dst, ts.I)
		dst = appendu32(dst, ts.T)
	case TypeInt64:
		dst = appendu64(dst, uint64(v.Int64()))
	case TypeDecimal128:
		b := v.Decimal128().Bytes()
		dst = append(dst, b[:]...)
	case TypeUInt32:
		dst = appendu32(dst, v.UInt32())
	case TypeUInt64:
		dst = appendu64(dst, v.UInt64())
	default:
		return nil, fmt.Errorf("cannot encode value of invalid type %d for key %q", byte(v.t), key)
	}
	return dst, nil
}

func appendString(dst []byte, s string) []byte {
	dst = appendu32(dst, uint32(len(s)+1))
	dst = append(dst, s...)
	return append(dst, 0x00)
}

func appendBinary(dst []byte, b Binary) []byte {
	if b.Subtype == TypeBinaryBinaryOld {
		// The old binary subtype carries its own inner length prefix.
		dst = appendu32(dst, uint32(len(b.Data)+4))
		dst = append(dst, b.Subtype)
		dst = appendu32(dst, uint32(len(b.Data)))
		return append(dst, b.Data...)
	}
	dst = appendu32(dst, uint32(len(b.Data)))
	dst = append(dst, b.Subtype)
	return append(dst, b.Data...)
}

func appendu32(dst []byte, v uint32) []byte {
	return append(dst, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
}

func appendu64(dst []byte, v uint64) []byte {
	return append(dst,
		byte(v), byte(v>>8), byte(v>>16), byte(v>>24),
		byte(v>>32), byte(v>>40), byte(v>>48), byte(v>>56))
}
