// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"unicode/utf8"

	"github.com/pkg/errors"
)

// maxNestingDepth bounds document nesting during recursive traversal.
const maxNestingDepth = 2048

// ReadDocument validates the provided bytes and converts them into an owned
// document. The whole buffer is traversed; the first fault aborts the
// conversion. Unlike the raw accessors, conversion validates that every key
// and string is valid UTF-8.
func ReadDocument(b []byte) (*Document, error) {
	rd, err := NewRawDocument(b)
	if err != nil {
		return nil, err
	}
	return rd.ToDocument()
}

// ReadArray validates the provided bytes and converts them into an owned
// array.
func ReadArray(b []byte) (*Array, error) {
	ra, err := NewRawArray(b)
	if err != nil {
		return nil, err
	}
	return ra.ToArray()
}

// ToDocument converts the raw document into an owned Document.
func (rd RawDocument) ToDocument() (*Document, error) {
	return convertRawDocument(rd, 0)
}

// ToArray converts the raw array into an owned Array.
func (ra RawArray) ToArray() (*Array, error) {
	return convertRawArray(ra, 0)
}

// ToValue converts the raw value into an owned Value, copying any borrowed
// payloads.
func (v RawValue) ToValue() (Value, error) {
	return convertRawValue(v, 0)
}

func convertRawDocument(rd RawDocument, depth int) (*Document, error) {
	if depth > maxNestingDepth {
		return nil, ErrMaxDepthExceeded
	}
	doc := NewDocument()
	itr := rd.Iterator()
	for {
		elem, err := itr.Next()
		if err == ErrEOD {
			break
		}
		if err != nil {
			return nil, err
		}
		if !utf8.ValidString(elem.Key) {
			return nil, errors.Wrapf(ErrInvalidUTF8, "key %q", elem.Key)
		}
		val, err := convertRawValue(elem.Value, depth+1)
		if err != nil {
			return nil, errors.Wrapf(err, "element %q", elem.Key)
		}
		doc.Append(Element{Key: elem.Key, Value: val})
	}
	return doc, nil
}

func convertRawArray(ra RawArray, depth int) (*Array, error) {
	if depth > maxNestingDepth {
		return nil, ErrMaxDepthExceeded
	}
	arr := NewArray()
	itr := ra.Iterator()
	idx := 0
	for {
		raw, err := itr.Next()
		if err == ErrEOA {
			break
		}
		if err != nil {
			return nil, err
		}
		val, err := convertRawValue(raw, depth+1)
		if err != nil {
			return nil, errors.Wrapf(err, "index %d", idx)
		}
		arr.Append(val)
		idx++
	}
	return arr, nil
}

func convertRawValue(v RawValue, depth int) (Value, error) {
	if depth > maxNestingDepth {
		return Value{}, ErrMaxDepthExceeded
	}
	switch v.Type() {
	case TypeDouble:
		return VC.Double(v.Double()), nil
	case TypeString:
		s := v.StringValue()
		if !utf8.ValidString(s) {
			return Value{}, errors.Wrap(ErrInvalidUTF8, "string value")
		}
		return VC.String(s), nil
	case TypeEmbeddedDocument:
		doc, err := convertRawDocument(v.Document(), depth)
		if err != nil {
			return Value{}, err
		}
		return VC.Document(doc), nil
	case TypeArray:
		arr, err := convertRawArray(v.Array(), depth)
		if err != nil {
			return Value{}, err
		}
		return VC.Array(arr), nil
	case TypeBinary:
		bin := v.Binary()
		data := make([]byte, len(bin.Data))
		copy(data, bin.Data)
		return VC.BinaryWithSubtype(data, bin.Subtype), nil
	case TypeBoolean:
		return VC.Boolean(v.Boolean()), nil
	case TypeDateTime:
		return VC.DateTime(v.DateTime()), nil
	case TypeNull:
		return VC.Null(), nil
	case TypeInt32:
		return VC.Int32(v.Int32()), nil
	case TypeTimestamp:
		ts := v.Timestamp()
		return VC.Timestamp(ts.T, ts.I), nil
	case TypeInt64:
		return VC.Int64(v.Int64()), nil
	case TypeDecimal128:
		return VC.Decimal128(v.Decimal128()), nil
	case TypeUInt32:
		return VC.UInt32(v.UInt32()), nil
	case TypeUInt64:
		return VC.UInt64(v.UInt64()), nil
	default:
		return Value{}, errors.Errorf("invalid element type %#x", byte(v.Type()))
	}
}
