// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/ikmak/bson/decimal"
	"github.com/stretchr/testify/require"
)

func TestValue(t *testing.T) {
	t.Run("accessors", func(t *testing.T) {
		now := time.Now().Truncate(time.Millisecond)

		testCases := []struct {
			name string
			val  Value
			t    Type
			want interface{}
		}{
			{"double", VC.Double(3.14159), TypeDouble, 3.14159},
			{"short string", VC.String("foo"), TypeString, "foo"},
			{"long string", VC.String(strings.Repeat("a", 42)), TypeString, strings.Repeat("a", 42)},
			{"boolean", VC.Boolean(true), TypeBoolean, true},
			{"datetime", VC.Time(now), TypeDateTime, NewDateTimeFromTime(now)},
			{"int32", VC.Int32(-27), TypeInt32, int32(-27)},
			{"int64", VC.Int64(1 << 40), TypeInt64, int64(1 << 40)},
			{"uint32", VC.UInt32(math.MaxUint32), TypeUInt32, uint32(math.MaxUint32)},
			{"uint64", VC.UInt64(math.MaxUint64), TypeUInt64, uint64(math.MaxUint64)},
			{"timestamp", VC.Timestamp(42, 1), TypeTimestamp, Timestamp{T: 42, I: 1}},
			{"binary", VC.Binary([]byte{0x01, 0x02}), TypeBinary, Binary{Subtype: TypeBinaryGeneric, Data: []byte{0x01, 0x02}}},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				require.Equal(t, tc.t, tc.val.Type())
				require.Equal(t, tc.want, tc.val.Interface())
			})
		}
	})
	t.Run("string with interior null byte", func(t *testing.T) {
		s := "ab\x00cd"
		require.Equal(t, s, VC.String(s).StringValue())
	})
	t.Run("fifteen byte string fills the bootstrap", func(t *testing.T) {
		s := strings.Repeat("b", 15)
		require.Equal(t, s, VC.String(s).StringValue())
	})
	t.Run("panic on type mismatch", func(t *testing.T) {
		defer func() {
			got := recover()
			want := ElementTypeError{"bson.Value.Int32", TypeString}
			if got != want {
				t.Errorf("recovered %v; want %v", got, want)
			}
		}()
		VC.String("nope").Int32()
	})
	t.Run("OK variants do not panic", func(t *testing.T) {
		_, ok := VC.String("nope").Int32OK()
		require.False(t, ok)
		i, ok := VC.Int32(5).Int32OK()
		require.True(t, ok)
		require.Equal(t, int32(5), i)
	})
	t.Run("IsNumber", func(t *testing.T) {
		require.True(t, VC.Int32(1).IsNumber())
		require.True(t, VC.UInt64(1).IsNumber())
		require.True(t, VC.Decimal128(decimal.NewDecimal128(0, 0)).IsNumber())
		require.False(t, VC.String("1").IsNumber())
	})
	t.Run("Equal", func(t *testing.T) {
		testCases := []struct {
			name  string
			v1    Value
			v2    Value
			equal bool
		}{
			{"same int32", VC.Int32(5), VC.Int32(5), true},
			{"different widths", VC.Int32(5), VC.Int64(5), false},
			{"signedness", VC.UInt64(5), VC.Int64(5), false},
			{"null", VC.Null(), VC.Null(), true},
			{"strings", VC.String("abc"), VC.String("abc"), true},
			{
				"documents",
				VC.DocumentFromElements(EC.Int32("x", 1)),
				VC.DocumentFromElements(EC.Int32("x", 1)),
				true,
			},
			{
				"arrays",
				VC.ArrayFromValues(VC.Int32(1), VC.Int32(2)),
				VC.ArrayFromValues(VC.Int32(2), VC.Int32(1)),
				false,
			},
			{
				"binary subtypes differ",
				VC.Binary([]byte{0x01}),
				VC.BinaryWithSubtype([]byte{0x01}, TypeBinaryUUID),
				false,
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				if got := tc.v1.Equal(tc.v2); got != tc.equal {
					t.Errorf("Equal() = %v; want %v", got, tc.equal)
				}
			})
		}
	})
	t.Run("String", func(t *testing.T) {
		testCases := []struct {
			name string
			val  Value
			want string
		}{
			{"double", VC.Double(1.5), "1.5"},
			{"string", VC.String("x"), `"x"`},
			{"bool", VC.Boolean(false), "false"},
			{"null", VC.Null(), "null"},
			{"int64", VC.Int64(-9), "-9"},
			{"uint64", VC.UInt64(9), "9"},
			{"timestamp", VC.Timestamp(4, 2), "Timestamp(4, 2)"},
			{"empty", Value{}, "<empty>"},
			{"document", VC.DocumentFromElements(EC.Int32("a", 1)), `{"a": 1}`},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				require.Equal(t, tc.want, tc.val.String())
			})
		}
	})
	t.Run("zero value", func(t *testing.T) {
		var v Value
		require.True(t, v.IsZero())
		require.Nil(t, v.Interface())
	})
}

func TestDateTime(t *testing.T) {
	t.Run("round trips through time.Time", func(t *testing.T) {
		now := time.Now().Truncate(time.Millisecond)
		dt := NewDateTimeFromTime(now)
		require.True(t, now.Equal(dt.Time()))
	})
	t.Run("truncates to milliseconds", func(t *testing.T) {
		base := time.Unix(1500000000, 123456789)
		require.Equal(t, DateTime(1500000000123), NewDateTimeFromTime(base))
	})
}
