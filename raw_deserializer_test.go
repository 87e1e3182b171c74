// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"math"
	"testing"

	"github.com/ikmak/bson/decimal"
	"github.com/stretchr/testify/require"
)

func TestRawDeserializer(t *testing.T) {
	newDoc := func() *Document {
		return NewDocument(
			EC.Double("double", math.Pi),
			EC.String("string", "text"),
			EC.SubDocumentFromElements("doc", EC.Int32("x", 1)),
			EC.ArrayFromElements("arr", VC.String("a"), VC.Int64(2)),
			EC.Binary("bin", []byte{0xDE, 0xAD}),
			EC.BinaryWithSubtype("md5", make([]byte, 16), TypeBinaryMD5),
			EC.Boolean("bool", true),
			EC.DateTime("date", DateTime(1500000000123)),
			EC.Null("null"),
			EC.Timestamp("ts", 9, 3),
			EC.Decimal128("dec", decimal.NewDecimal128(0x3040000000000000, 7)),
			EC.UInt32("u32", 1),
			EC.UInt64("u64", math.MaxUint64),
		)
	}

	t.Run("decoding from raw equals the owned model", func(t *testing.T) {
		buf, err := newDoc().MarshalBSON()
		require.NoError(t, err)
		rd, err := NewRawDocument(buf)
		require.NoError(t, err)

		got, err := DecodeDocument(rd.Deserializer(nil))
		require.NoError(t, err)
		require.True(t, newDoc().Equal(got), "got %v", got)
	})
	t.Run("produces its value exactly once", func(t *testing.T) {
		d := NewRawDeserializer(RawValue{t: TypeNull}, nil)
		_, err := DecodeValue(d)
		require.NoError(t, err)
		_, err = d.DeserializeAny(valueVisitor{})
		require.Equal(t, ErrEndOfStream, err)
	})
	t.Run("unit targets", func(t *testing.T) {
		t.Run("null", func(t *testing.T) {
			res, err := NewRawDeserializer(RawValue{t: TypeNull}, nil).DeserializeUnit(unitProbe{})
			require.NoError(t, err)
			require.Equal(t, "unit", res)
		})
		t.Run("empty array", func(t *testing.T) {
			buf, err := NewArray().MarshalBSON()
			require.NoError(t, err)
			ra, err := NewRawArray(buf)
			require.NoError(t, err)

			res, err := ra.Deserializer(nil).DeserializeUnit(unitProbe{})
			require.NoError(t, err)
			require.Equal(t, "unit", res)
		})
		t.Run("scalar is rejected", func(t *testing.T) {
			var v RawValue
			v.t = TypeInt32
			putu32(v.bootstrap[0:4], 5)
			_, err := NewRawDeserializer(v, nil).DeserializeUnit(unitProbe{})
			_, ok := err.(InvalidTypeError)
			require.True(t, ok, "expected InvalidTypeError, got %v", err)
		})
	})
	t.Run("non generic binary presents raw bytes and a numeric subtype", func(t *testing.T) {
		data := []byte{0xDE, 0xAD}
		buf, err := NewDocument(EC.BinaryWithSubtype("b", data, TypeBinaryUserDefined)).MarshalBSON()
		require.NoError(t, err)
		rd, err := NewRawDocument(buf)
		require.NoError(t, err)
		val, err := rd.Lookup("b")
		require.NoError(t, err)
		borrowed := val.Binary().Data

		_, err = NewRawDeserializer(val, nil).DeserializeAny(mapProbe{probe: func(dr DocumentReader) (interface{}, error) {
			key, err := dr.ReadKey()
			require.NoError(t, err)
			require.Equal(t, "$binary", key)

			bd, err := dr.ReadValue()
			require.NoError(t, err)
			return bd.DeserializeAny(mapProbe{probe: func(body DocumentReader) (interface{}, error) {
				key, err := body.ReadKey()
				require.NoError(t, err)
				require.Equal(t, "bytes", key)
				vd, err := body.ReadValue()
				require.NoError(t, err)
				res, err := vd.DeserializeAny(bytesVisitor{})
				require.NoError(t, err)
				got := res.([]byte)
				require.Equal(t, data, got)
				require.True(t, &got[0] == &borrowed[0], "payload should stay a borrowed slice")

				key, err = body.ReadKey()
				require.NoError(t, err)
				require.Equal(t, "subType", key)
				vd, err = body.ReadValue()
				require.NoError(t, err)
				st, err := DecodeValue(vd)
				require.NoError(t, err)
				require.True(t, VC.Int32(int32(TypeBinaryUserDefined)).Equal(st))
				return nil, nil
			}})
		}})
		require.NoError(t, err)
	})
	t.Run("enums are unavailable", func(t *testing.T) {
		buf, err := NewDocument(EC.Int32("Size", 4)).MarshalBSON()
		require.NoError(t, err)
		rd, err := NewRawDocument(buf)
		require.NoError(t, err)

		_, err = rd.Deserializer(nil).DeserializeEnum(testEnumVisitor{kind: "newtype"})
		require.Error(t, err)
	})
	t.Run("uuid newtype from raw", func(t *testing.T) {
		u, err := NewUUID()
		require.NoError(t, err)
		buf, err := NewDocument(EC.UUID("id", u)).MarshalBSON()
		require.NoError(t, err)
		rd, err := NewRawDocument(buf)
		require.NoError(t, err)

		val, err := rd.Lookup("id")
		require.NoError(t, err)
		got, err := DecodeUUID(NewRawDeserializer(val, nil))
		require.NoError(t, err)
		require.Equal(t, u, got)
	})
}

func TestDecodeRawViews(t *testing.T) {
	t.Run("raw document is adopted without copying", func(t *testing.T) {
		buf, err := NewDocument(EC.Int32("x", 1)).MarshalBSON()
		require.NoError(t, err)
		rd, err := NewRawDocument(buf)
		require.NoError(t, err)

		got, err := DecodeRawDocument(rd.Deserializer(nil))
		require.NoError(t, err)
		require.True(t, &got.Bytes()[0] == &buf[0], "decoded raw document should alias the source buffer")
	})
	t.Run("nested raw document", func(t *testing.T) {
		buf, err := NewDocument(
			EC.SubDocumentFromElements("inner", EC.Int64("answer", 42)),
		).MarshalBSON()
		require.NoError(t, err)
		rd, err := NewRawDocument(buf)
		require.NoError(t, err)

		val, err := rd.Lookup("inner")
		require.NoError(t, err)
		inner, err := DecodeRawDocument(NewRawDeserializer(val, nil))
		require.NoError(t, err)

		answer, err := inner.Lookup("answer")
		require.NoError(t, err)
		require.Equal(t, int64(42), answer.Int64())
	})
	t.Run("raw array", func(t *testing.T) {
		buf, err := NewDocument(
			EC.ArrayFromElements("list", VC.Int32(10), VC.Int32(20)),
		).MarshalBSON()
		require.NoError(t, err)
		rd, err := NewRawDocument(buf)
		require.NoError(t, err)

		val, err := rd.Lookup("list")
		require.NoError(t, err)
		arr, err := DecodeRawArray(NewRawDeserializer(val, nil))
		require.NoError(t, err)

		first, err := arr.Index(0)
		require.NoError(t, err)
		require.Equal(t, int32(10), first.Int32())
	})
	t.Run("scalars become raw scalars", func(t *testing.T) {
		v, err := DecodeRawValue(NewValueDeserializer(VC.Int32(-5), nil))
		require.NoError(t, err)
		require.Equal(t, int32(-5), v.Int32())

		v, err = DecodeRawValue(NewValueDeserializer(VC.String("s"), nil))
		require.NoError(t, err)
		require.Equal(t, "s", v.StringValue())
	})
	t.Run("marker detours survive the raw path", func(t *testing.T) {
		want := decimal.NewDecimal128(0x3040000000000000, 99)
		v, err := DecodeRawValue(NewValueDeserializer(VC.Decimal128(want), nil))
		require.NoError(t, err)
		require.True(t, want.Equal(v.Decimal128()))

		ts, err := DecodeRawValue(NewValueDeserializer(VC.Timestamp(8, 1), nil))
		require.NoError(t, err)
		require.Equal(t, Timestamp{T: 8, I: 1}, ts.Timestamp())

		dt, err := DecodeRawValue(NewValueDeserializer(VC.DateTime(123), nil))
		require.NoError(t, err)
		require.Equal(t, DateTime(123), dt.DateTime())

		bin, err := DecodeRawValue(NewValueDeserializer(VC.BinaryWithSubtype([]byte{0x01}, TypeBinaryUserDefined), nil))
		require.NoError(t, err)
		require.Equal(t, Binary{Subtype: TypeBinaryUserDefined, Data: []byte{0x01}}, bin.Binary())
	})
	t.Run("generic documents cannot become raw views", func(t *testing.T) {
		d := NewValueDeserializer(VC.DocumentFromElements(EC.Int32("x", 1)), nil)
		_, err := DecodeRawValue(d)
		require.Error(t, err)
		require.Contains(t, err.Error(), "raw view")
	})
	t.Run("generic arrays cannot become raw views", func(t *testing.T) {
		d := NewValueDeserializer(VC.ArrayFromValues(VC.Int32(1)), nil)
		_, err := DecodeRawValue(d)
		require.Error(t, err)
	})
}
