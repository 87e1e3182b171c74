// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"encoding/base64"
	"fmt"
	"strconv"

	"github.com/ikmak/bson/decimal"
)

// The types without a native visit method are bridged as their canonical
// extended JSON documents. The generic decode path recognizes these marker
// documents and folds them back into the original value, so a value that
// takes this detour round-trips exactly.

func binaryExtendedDocument(b Binary) *Document {
	return NewDocument(
		EC.SubDocumentFromElements(markerBinary,
			EC.String("base64", base64.StdEncoding.EncodeToString(b.Data)),
			EC.String("subType", fmt.Sprintf("%02x", b.Subtype)),
		),
	)
}

// binaryRawDocument is the binary native form of the $binary detour used by
// raw sources. The payload stays a borrowed byte slice and the subtype is
// numeric; no base64 step is involved.
func binaryRawDocument(b Binary) *Document {
	return NewDocument(
		EC.SubDocumentFromElements(markerBinary,
			EC.Binary("bytes", b.Data),
			EC.Int32("subType", int32(b.Subtype)),
		),
	)
}

func dateTimeExtendedDocument(dt DateTime) *Document {
	return NewDocument(
		EC.SubDocumentFromElements(markerDateTime,
			EC.String(markerInt64, strconv.FormatInt(int64(dt), 10)),
		),
	)
}

func timestampExtendedDocument(ts Timestamp) *Document {
	return NewDocument(
		EC.SubDocumentFromElements(markerTimestamp,
			EC.Int64("t", int64(ts.T)),
			EC.Int64("i", int64(ts.I)),
		),
	)
}

// decimal128Access is the DocumentReader for a decimal128 value. It yields a
// single entry whose key is the decimal bytes marker and whose value visits
// the 16 byte little-endian form, which preserves the bits exactly.
type decimal128Access struct {
	bytes   [16]byte
	opts    *DeserializerOptions
	keyRead bool
	done    bool
}

var _ DocumentReader = (*decimal128Access)(nil)

func newDecimal128Access(d decimal.Decimal128, opts *DeserializerOptions) *decimal128Access {
	return &decimal128Access{bytes: d.Bytes(), opts: opts}
}

func (da *decimal128Access) ReadKey() (string, error) {
	if da.done {
		return "", ErrEOD
	}
	da.keyRead = true
	return markerDecimalBytes, nil
}

func (da *decimal128Access) ReadValue() (Deserializer, error) {
	if !da.keyRead || da.done {
		return nil, ErrEndOfStream
	}
	da.done = true
	return &bytesDeserializer{b: da.bytes[:], opts: da.opts}, nil
}

func (da *decimal128Access) Len() int {
	if da.done {
		return 0
	}
	return 1
}

// bytesDeserializer is a Deserializer over a raw byte payload.
type bytesDeserializer struct {
	b     []byte
	taken bool
	opts  *DeserializerOptions
}

var _ Deserializer = (*bytesDeserializer)(nil)

func (d *bytesDeserializer) take() ([]byte, error) {
	if d.taken {
		return nil, ErrEndOfStream
	}
	d.taken = true
	return d.b, nil
}

func (d *bytesDeserializer) HumanReadable() bool { return d.opts.humanReadable }

func (d *bytesDeserializer) DeserializeAny(vis Visitor) (interface{}, error) {
	b, err := d.take()
	if err != nil {
		return nil, err
	}
	return vis.VisitBytes(b)
}

func (d *bytesDeserializer) DeserializeOption(vis Visitor) (interface{}, error) {
	b, err := d.take()
	if err != nil {
		return nil, err
	}
	return vis.VisitSome(&bytesDeserializer{b: b, opts: d.opts})
}

func (d *bytesDeserializer) DeserializeUnit(vis Visitor) (interface{}, error) {
	return d.DeserializeAny(vis)
}

func (d *bytesDeserializer) DeserializeEnum(EnumVisitor) (interface{}, error) {
	return nil, InvalidTypeError{Received: "bytes", Expected: "a string or a single entry document"}
}

func (d *bytesDeserializer) DeserializeNewtype(name string, vis Visitor) (interface{}, error) {
	if name != UUIDNewtypeName {
		return d.DeserializeAny(vis)
	}
	return nil, InvalidTypeError{Received: "bytes", Expected: "a binary value with the UUID subtype"}
}
