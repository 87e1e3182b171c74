// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// optionVisitor distinguishes null from present values.
type optionVisitor struct{ DefaultVisitor }

func (optionVisitor) VisitNone() (interface{}, error) { return nil, nil }

func (optionVisitor) VisitSome(d Deserializer) (interface{}, error) {
	v, err := DecodeValue(d)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// enumResult is what testEnumVisitor produces: the variant name plus whatever
// the payload decoded to.
type enumResult struct {
	variant string
	payload interface{}
}

// testEnumVisitor decodes one fixed variant kind.
type testEnumVisitor struct {
	kind string
}

func (ev testEnumVisitor) VisitEnum(variant string, vr VariantReader) (interface{}, error) {
	switch ev.kind {
	case "unit":
		if err := vr.Unit(); err != nil {
			return nil, err
		}
		return enumResult{variant: variant}, nil
	case "newtype":
		d, err := vr.Newtype()
		if err != nil {
			return nil, err
		}
		v, err := DecodeValue(d)
		if err != nil {
			return nil, err
		}
		return enumResult{variant: variant, payload: v}, nil
	case "tuple":
		res, err := vr.Tuple(valueVisitor{})
		if err != nil {
			return nil, err
		}
		return enumResult{variant: variant, payload: res}, nil
	default:
		res, err := vr.Struct(valueVisitor{})
		if err != nil {
			return nil, err
		}
		return enumResult{variant: variant, payload: res}, nil
	}
}

// unitProbe accepts only the null that DeserializeUnit produces for a unit
// target.
type unitProbe struct{ DefaultVisitor }

func (unitProbe) VisitNull() (interface{}, error) { return "unit", nil }

// mapProbe exposes the DocumentReader so tests can drive the cursor
// directly.
type mapProbe struct {
	DefaultVisitor
	probe func(DocumentReader) (interface{}, error)
}

func (mp mapProbe) VisitDocument(dr DocumentReader) (interface{}, error) {
	return mp.probe(dr)
}

func TestValueDeserializer(t *testing.T) {
	t.Run("produces its value exactly once", func(t *testing.T) {
		d := NewValueDeserializer(VC.Int32(1), nil)
		_, err := DecodeValue(d)
		require.NoError(t, err)

		_, err = d.DeserializeAny(valueVisitor{})
		require.Equal(t, ErrEndOfStream, err)
	})
	t.Run("human readable defaults to true", func(t *testing.T) {
		require.True(t, NewValueDeserializer(VC.Null(), nil).HumanReadable())

		opts := NewDeserializerOptions().SetHumanReadable(false)
		require.False(t, NewValueDeserializer(VC.Null(), opts).HumanReadable())
	})
	t.Run("unit", func(t *testing.T) {
		t.Run("null satisfies a unit target", func(t *testing.T) {
			res, err := NewValueDeserializer(VC.Null(), nil).DeserializeUnit(unitProbe{})
			require.NoError(t, err)
			require.Equal(t, "unit", res)
		})
		t.Run("empty array satisfies a unit target", func(t *testing.T) {
			res, err := NewValueDeserializer(VC.ArrayFromValues(), nil).DeserializeUnit(unitProbe{})
			require.NoError(t, err)
			require.Equal(t, "unit", res)
		})
		t.Run("non-empty array does not", func(t *testing.T) {
			_, err := NewValueDeserializer(VC.ArrayFromValues(VC.Int32(1)), nil).DeserializeUnit(unitProbe{})
			_, ok := err.(InvalidTypeError)
			require.True(t, ok, "expected InvalidTypeError, got %v", err)
		})
		t.Run("scalar does not", func(t *testing.T) {
			_, err := NewValueDeserializer(VC.Int32(1), nil).DeserializeUnit(unitProbe{})
			_, ok := err.(InvalidTypeError)
			require.True(t, ok, "expected InvalidTypeError, got %v", err)
		})
	})
	t.Run("option", func(t *testing.T) {
		t.Run("null is none", func(t *testing.T) {
			res, err := NewValueDeserializer(VC.Null(), nil).DeserializeOption(optionVisitor{})
			require.NoError(t, err)
			require.Nil(t, res)
		})
		t.Run("value is some", func(t *testing.T) {
			res, err := NewValueDeserializer(VC.Int32(7), nil).DeserializeOption(optionVisitor{})
			require.NoError(t, err)
			require.True(t, VC.Int32(7).Equal(res.(Value)))
		})
	})
}

func TestMapCursorDiscipline(t *testing.T) {
	newDeserializer := func() Deserializer {
		return NewValueDeserializer(VC.DocumentFromElements(EC.Int32("only", 1)), nil)
	}

	t.Run("value before any key", func(t *testing.T) {
		_, err := newDeserializer().DeserializeAny(mapProbe{probe: func(dr DocumentReader) (interface{}, error) {
			_, err := dr.ReadValue()
			require.Equal(t, ErrEndOfStream, err)
			return nil, nil
		}})
		require.NoError(t, err)
	})
	t.Run("alternating reads", func(t *testing.T) {
		_, err := newDeserializer().DeserializeAny(mapProbe{probe: func(dr DocumentReader) (interface{}, error) {
			require.Equal(t, 1, dr.Len())

			key, err := dr.ReadKey()
			require.NoError(t, err)
			require.Equal(t, "only", key)

			vd, err := dr.ReadValue()
			require.NoError(t, err)
			v, err := DecodeValue(vd)
			require.NoError(t, err)
			require.True(t, VC.Int32(1).Equal(v))

			// Reading the value twice for one key is out of phase.
			_, err = dr.ReadValue()
			require.Equal(t, ErrEndOfStream, err)

			// The end of the document is signaled on every further key read.
			_, err = dr.ReadKey()
			require.Equal(t, ErrEOD, err)
			_, err = dr.ReadKey()
			require.Equal(t, ErrEOD, err)
			_, err = dr.ReadValue()
			require.Equal(t, ErrEndOfStream, err)

			require.Equal(t, 0, dr.Len())
			return nil, nil
		}})
		require.NoError(t, err)
	})
}

func TestDeserializeEnum(t *testing.T) {
	t.Run("unit variant from string", func(t *testing.T) {
		d := NewValueDeserializer(VC.String("Red"), nil)
		res, err := d.DeserializeEnum(testEnumVisitor{kind: "unit"})
		require.NoError(t, err)
		require.Equal(t, enumResult{variant: "Red"}, res)
	})
	t.Run("string variant has no payload", func(t *testing.T) {
		d := NewValueDeserializer(VC.String("Red"), nil)
		_, err := d.DeserializeEnum(testEnumVisitor{kind: "newtype"})
		_, ok := err.(InvalidTypeError)
		require.True(t, ok, "expected InvalidTypeError, got %v", err)
	})
	t.Run("newtype variant", func(t *testing.T) {
		d := NewValueDeserializer(VC.DocumentFromElements(EC.Int32("Size", 4)), nil)
		res, err := d.DeserializeEnum(testEnumVisitor{kind: "newtype"})
		require.NoError(t, err)
		er := res.(enumResult)
		require.Equal(t, "Size", er.variant)
		require.True(t, VC.Int32(4).Equal(er.payload.(Value)))
	})
	t.Run("tuple variant requires an array payload", func(t *testing.T) {
		d := NewValueDeserializer(VC.DocumentFromElements(
			EC.ArrayFromElements("Point", VC.Int32(1), VC.Int32(2)),
		), nil)
		res, err := d.DeserializeEnum(testEnumVisitor{kind: "tuple"})
		require.NoError(t, err)
		er := res.(enumResult)
		require.Equal(t, "Point", er.variant)
		require.True(t, VC.ArrayFromValues(VC.Int32(1), VC.Int32(2)).Equal(er.payload.(Value)))

		d = NewValueDeserializer(VC.DocumentFromElements(EC.Int32("Point", 1)), nil)
		_, err = d.DeserializeEnum(testEnumVisitor{kind: "tuple"})
		require.Error(t, err)
	})
	t.Run("struct variant requires a document payload", func(t *testing.T) {
		d := NewValueDeserializer(VC.DocumentFromElements(
			EC.SubDocumentFromElements("Rect", EC.Int32("w", 3), EC.Int32("h", 4)),
		), nil)
		res, err := d.DeserializeEnum(testEnumVisitor{kind: "struct"})
		require.NoError(t, err)
		er := res.(enumResult)
		require.Equal(t, "Rect", er.variant)
		require.True(t, VC.DocumentFromElements(EC.Int32("w", 3), EC.Int32("h", 4)).Equal(er.payload.(Value)))
	})
	t.Run("unit from document discards the payload", func(t *testing.T) {
		d := NewValueDeserializer(VC.DocumentFromElements(EC.Null("Empty")), nil)
		res, err := d.DeserializeEnum(testEnumVisitor{kind: "unit"})
		require.NoError(t, err)
		require.Equal(t, enumResult{variant: "Empty"}, res)

		d = NewValueDeserializer(VC.DocumentFromElements(EC.Int32("Empty", 1)), nil)
		res, err = d.DeserializeEnum(testEnumVisitor{kind: "unit"})
		require.NoError(t, err)
		require.Equal(t, enumResult{variant: "Empty"}, res)
	})
	t.Run("empty document", func(t *testing.T) {
		d := NewValueDeserializer(VC.DocumentFromElements(), nil)
		_, err := d.DeserializeEnum(testEnumVisitor{kind: "unit"})
		_, ok := err.(InvalidValueError)
		require.True(t, ok, "expected InvalidValueError, got %v", err)
	})
	t.Run("second key is named in the error", func(t *testing.T) {
		d := NewValueDeserializer(VC.DocumentFromElements(
			EC.Int32("Size", 4),
			EC.Int32("Extra", 5),
		), nil)
		_, err := d.DeserializeEnum(testEnumVisitor{kind: "newtype"})
		require.Error(t, err)
		require.Contains(t, err.Error(), `"Extra"`)
	})
	t.Run("scalar values cannot be enums", func(t *testing.T) {
		d := NewValueDeserializer(VC.Int32(1), nil)
		_, err := d.DeserializeEnum(testEnumVisitor{kind: "unit"})
		_, ok := err.(InvalidTypeError)
		require.True(t, ok, "expected InvalidTypeError, got %v", err)
	})
}

func TestDeserializeNewtype(t *testing.T) {
	t.Run("uuid requires the uuid subtype", func(t *testing.T) {
		u, err := NewUUID()
		require.NoError(t, err)

		got, err := DecodeUUID(NewValueDeserializer(VC.UUID(u), nil))
		require.NoError(t, err)
		require.Equal(t, u, got)
	})
	t.Run("generic binary is rejected", func(t *testing.T) {
		d := NewValueDeserializer(VC.Binary(make([]byte, 16)), nil)
		_, err := DecodeUUID(d)
		_, ok := err.(InvalidValueError)
		require.True(t, ok, "expected InvalidValueError, got %v", err)
	})
	t.Run("non-binary is rejected", func(t *testing.T) {
		d := NewValueDeserializer(VC.String("not a uuid"), nil)
		_, err := DecodeUUID(d)
		_, ok := err.(InvalidTypeError)
		require.True(t, ok, "expected InvalidTypeError, got %v", err)
	})
	t.Run("wrong payload length is rejected", func(t *testing.T) {
		d := NewValueDeserializer(VC.BinaryWithSubtype(make([]byte, 4), TypeBinaryUUID), nil)
		_, err := DecodeUUID(d)
		_, ok := err.(InvalidLengthError)
		require.True(t, ok, "expected InvalidLengthError, got %v", err)
	})
	t.Run("unknown names pass through", func(t *testing.T) {
		d := NewValueDeserializer(VC.Int32(3), nil)
		res, err := d.DeserializeNewtype("wrapper", valueVisitor{})
		require.NoError(t, err)
		require.True(t, VC.Int32(3).Equal(res.(Value)))
	})
}
