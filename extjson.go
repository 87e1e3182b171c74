// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"math"
	"strconv"

	"github.com/buger/jsonparser"
)

// ParseExtJSONDocument parses an extended JSON object into an owned document.
// Marker documents are folded into their scalar types, so a top level object
// that is itself a marker is an error here; use ParseExtJSONValue for those.
func ParseExtJSONDocument(data []byte) (*Document, error) {
	v, err := ParseExtJSONValue(data)
	if err != nil {
		return nil, err
	}
	doc, ok := v.DocumentOK()
	if !ok {
		return nil, InvalidTypeError{Received: v.String(), Expected: "a document"}
	}
	return doc, nil
}

// ParseExtJSONValue parses any extended JSON value. The literal JSON is read
// first and then run through the generic decode path, which resolves the
// marker keys the same way any other source would.
func ParseExtJSONValue(data []byte) (Value, error) {
	raw, t, _, err := jsonparser.Get(data)
	if err != nil {
		return Value{}, err
	}
	v, err := parseJSONValue(raw, t)
	if err != nil {
		return Value{}, err
	}
	return DecodeValue(NewValueDeserializer(v, nil))
}

func parseJSONValue(data []byte, t jsonparser.ValueType) (Value, error) {
	switch t {
	case jsonparser.Object:
		doc := NewDocument()
		err := jsonparser.ObjectEach(data, func(key, value []byte, vt jsonparser.ValueType, _ int) error {
			val, err := parseJSONValue(value, vt)
			if err != nil {
				return err
			}
			doc.Append(Element{Key: string(key), Value: val})
			return nil
		})
		if err != nil {
			return Value{}, err
		}
		return VC.Document(doc), nil
	case jsonparser.Array:
		arr := NewArray()
		var innerErr error
		_, err := jsonparser.ArrayEach(data, func(value []byte, vt jsonparser.ValueType, _ int, cbErr error) {
			if innerErr != nil {
				return
			}
			if cbErr != nil {
				innerErr = cbErr
				return
			}
			val, err := parseJSONValue(value, vt)
			if err != nil {
				innerErr = err
				return
			}
			arr.Append(val)
		})
		if err != nil {
			return Value{}, err
		}
		if innerErr != nil {
			return Value{}, innerErr
		}
		return VC.Array(arr), nil
	case jsonparser.String:
		s, err := jsonparser.ParseString(data)
		if err != nil {
			return Value{}, err
		}
		return VC.String(s), nil
	case jsonparser.Number:
		return parseJSONNumber(string(data))
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(data)
		if err != nil {
			return Value{}, err
		}
		return VC.Boolean(b), nil
	case jsonparser.Null:
		return VC.Null(), nil
	default:
		return Value{}, InvalidValueError{Received: string(data), Expected: "a JSON value"}
	}
}

// parseJSONNumber maps a plain JSON number to the narrowest fitting type: an
// integral literal becomes an int32 when it fits, an int64 otherwise, and
// everything else becomes a double.
func parseJSONNumber(lit string) (Value, error) {
	if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
		if i >= math.MinInt32 && i <= math.MaxInt32 {
			return VC.Int32(int32(i)), nil
		}
		return VC.Int64(i), nil
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return Value{}, InvalidValueError{Received: strconv.Quote(lit), Expected: "a JSON number"}
	}
	return VC.Double(f), nil
}
