// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"fmt"
	"time"

	"github.com/ikmak/bson/decimal"
)

// ValueOf converts a native Go value into a Value. Signed integers up to 32
// bits become int32 values and 64 bit signed integers become int64 values.
// Unsigned integers of every width become uint64 values; a uint32 value can
// only be produced explicitly, through VC.UInt32 or the $numberUInt32 marker.
func ValueOf(v interface{}) (Value, error) {
	switch t := v.(type) {
	case nil:
		return VC.Null(), nil
	case bool:
		return VC.Boolean(t), nil
	case int8:
		return VC.Int32(int32(t)), nil
	case int16:
		return VC.Int32(int32(t)), nil
	case int32:
		return VC.Int32(t), nil
	case int:
		return VC.Int64(int64(t)), nil
	case int64:
		return VC.Int64(t), nil
	case uint8:
		return VC.UInt64(uint64(t)), nil
	case uint16:
		return VC.UInt64(uint64(t)), nil
	case uint32:
		return VC.UInt64(uint64(t)), nil
	case uint:
		return VC.UInt64(uint64(t)), nil
	case uint64:
		return VC.UInt64(t), nil
	case float32:
		return VC.Double(float64(t)), nil
	case float64:
		return VC.Double(t), nil
	case string:
		return VC.String(t), nil
	case []byte:
		return VC.Binary(t), nil
	case time.Time:
		return VC.Time(t), nil
	case DateTime:
		return VC.DateTime(t), nil
	case Timestamp:
		return VC.Timestamp(t.T, t.I), nil
	case Binary:
		return VC.BinaryWithSubtype(t.Data, t.Subtype), nil
	case decimal.Decimal128:
		return VC.Decimal128(t), nil
	case UUID:
		return VC.UUID(t), nil
	case *Document:
		return VC.Document(t), nil
	case *Array:
		return VC.Array(t), nil
	case Value:
		return t, nil
	case Element:
		return VC.DocumentFromElements(t), nil
	case []interface{}:
		arr := NewArray()
		for _, item := range t {
			val, err := ValueOf(item)
			if err != nil {
				return Value{}, err
			}
			arr.Append(val)
		}
		return VC.Array(arr), nil
	case map[string]interface{}:
		doc := NewDocument()
		for key, item := range t {
			val, err := ValueOf(item)
			if err != nil {
				return Value{}, err
			}
			doc.Append(Element{Key: key, Value: val})
		}
		return VC.Document(doc), nil
	default:
		return Value{}, fmt.Errorf("cannot convert %T into a BSON value", v)
	}
}
