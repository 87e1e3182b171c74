// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/pretty"
)

func TestParseExtJSONValue(t *testing.T) {
	t.Run("plain numbers take the narrowest type", func(t *testing.T) {
		testCases := []struct {
			name string
			json string
			want Value
		}{
			{"small int", `5`, VC.Int32(5)},
			{"negative int32 boundary", `-2147483648`, VC.Int32(math.MinInt32)},
			{"past int32", `2147483648`, VC.Int64(2147483648)},
			{"large int", `3000000000`, VC.Int64(3000000000)},
			{"fraction", `1.5`, VC.Double(1.5)},
			{"exponent", `2e3`, VC.Double(2000)},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				got, err := ParseExtJSONValue([]byte(tc.json))
				require.NoError(t, err)
				require.True(t, tc.want.Equal(got), "got %v; want %v", got, tc.want)
			})
		}
	})
	t.Run("scalars", func(t *testing.T) {
		got, err := ParseExtJSONValue([]byte(`"a\"b"`))
		require.NoError(t, err)
		require.Equal(t, `a"b`, got.StringValue())

		got, err = ParseExtJSONValue([]byte(`true`))
		require.NoError(t, err)
		require.True(t, got.Boolean())

		got, err = ParseExtJSONValue([]byte(`null`))
		require.NoError(t, err)
		require.True(t, got.IsNull())
	})
	t.Run("markers fold", func(t *testing.T) {
		got, err := ParseExtJSONValue([]byte(`{"$numberLong": "99"}`))
		require.NoError(t, err)
		require.True(t, VC.Int64(99).Equal(got))

		got, err = ParseExtJSONValue([]byte(`{"$numberDouble": "NaN"}`))
		require.NoError(t, err)
		require.True(t, math.IsNaN(got.Double()))
	})
	t.Run("arrays", func(t *testing.T) {
		got, err := ParseExtJSONValue([]byte(`[1, "two", null]`))
		require.NoError(t, err)
		want := VC.ArrayFromValues(VC.Int32(1), VC.String("two"), VC.Null())
		require.True(t, want.Equal(got))
	})
	t.Run("invalid JSON", func(t *testing.T) {
		_, err := ParseExtJSONValue([]byte(`{"a":`))
		require.Error(t, err)
	})
}

func TestParseExtJSONDocument(t *testing.T) {
	t.Run("nested structure", func(t *testing.T) {
		indented := []byte(`{
			"name": "test",
			"count": {"$numberInt": "12"},
			"tags": ["a", "b"],
			"meta": {
				"when": {"$date": {"$numberLong": "1500000000123"}}
			}
		}`)

		doc, err := ParseExtJSONDocument(pretty.Ugly(indented))
		require.NoError(t, err)

		require.Equal(t, "test", doc.Lookup("name").StringValue())
		require.Equal(t, int32(12), doc.Lookup("count").Int32())
		require.Equal(t, 2, doc.Lookup("tags").Array().Len())
		when := doc.Lookup("meta").Document().Lookup("when")
		require.Equal(t, DateTime(1500000000123), when.DateTime())
	})
	t.Run("top level marker object is not a document", func(t *testing.T) {
		_, err := ParseExtJSONDocument([]byte(`{"$numberInt": "5"}`))
		_, ok := err.(InvalidTypeError)
		require.True(t, ok, "expected InvalidTypeError, got %v", err)
	})
	t.Run("top level array is not a document", func(t *testing.T) {
		_, err := ParseExtJSONDocument([]byte(`[1]`))
		require.Error(t, err)
	})
}
