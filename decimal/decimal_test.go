// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package decimal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecimal128String(t *testing.T) {
	testCases := []struct {
		name string
		h    uint64
		l    uint64
		want string
	}{
		{"zero", 0x3040000000000000, 0, "0"},
		{"one", 0x3040000000000000, 1, "1"},
		{"negative one", 0xB040000000000000, 1, "-1"},
		{"forty two", 0x3040000000000000, 42, "42"},
		{"one point five", 0x303E000000000000, 15, "1.5"},
		{"NaN", 0x7C00000000000000, 0, "NaN"},
		{"Infinity", 0x7800000000000000, 0, "Infinity"},
		{"-Infinity", 0xF800000000000000, 0, "-Infinity"},
		{"exponent", 0x3044000000000000, 3, "3E+2"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDecimal128(tc.h, tc.l)
			require.Equal(t, tc.want, d.String())
		})
	}
}

func TestDecimal128Bytes(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		d := NewDecimal128(0x3040000000000000, 42)
		b := d.Bytes()
		got, err := FromBytes(b[:])
		require.NoError(t, err)
		require.True(t, d.Equal(got))
	})
	t.Run("little endian layout", func(t *testing.T) {
		d := NewDecimal128(0x0102030405060708, 0x090A0B0C0D0E0F10)
		b := d.Bytes()
		// Low half first, each half little endian.
		require.Equal(t, byte(0x10), b[0])
		require.Equal(t, byte(0x09), b[7])
		require.Equal(t, byte(0x08), b[8])
		require.Equal(t, byte(0x01), b[15])
	})
	t.Run("wrong length", func(t *testing.T) {
		_, err := FromBytes(make([]byte, 12))
		require.Error(t, err)
	})
	t.Run("GetBytes returns high then low", func(t *testing.T) {
		d := NewDecimal128(7, 9)
		h, l := d.GetBytes()
		require.Equal(t, uint64(7), h)
		require.Equal(t, uint64(9), l)
	})
}

func TestDecimal128Predicates(t *testing.T) {
	require.True(t, NewDecimal128(0x7C00000000000000, 0).IsNaN())
	require.False(t, NewDecimal128(0x3040000000000000, 1).IsNaN())

	require.Equal(t, 1, NewDecimal128(0x7800000000000000, 0).IsInf())
	require.Equal(t, -1, NewDecimal128(0xF800000000000000, 0).IsInf())
	require.Equal(t, 0, NewDecimal128(0x3040000000000000, 1).IsInf())
}
