// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import "github.com/google/uuid"

// UUID represents a universally unique identifier. On the wire it is a
// binary value with the UUID subtype.
type UUID [16]byte

// NewUUID generates a random UUID.
func NewUUID() (UUID, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return UUID{}, err
	}
	return UUID(u), nil
}

// ParseUUID parses the textual representation of a UUID.
func ParseUUID(s string) (UUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, err
	}
	return UUID(u), nil
}

// String returns the canonical hyphenated form.
func (u UUID) String() string {
	return uuid.UUID(u).String()
}

// UUID creates a binary value with the UUID subtype.
func (ValueConstructor) UUID(u UUID) Value {
	return VC.BinaryWithSubtype(u[:], TypeBinaryUUID)
}

// UUID creates a binary element with the UUID subtype.
func (ElementConstructor) UUID(key string, u UUID) Element {
	return Element{Key: key, Value: VC.UUID(u)}
}

// DecodeUUID drives the deserializer through the UUID newtype and requires a
// binary value with the UUID subtype holding exactly 16 bytes.
func DecodeUUID(d Deserializer) (UUID, error) {
	res, err := d.DeserializeNewtype(UUIDNewtypeName, uuidVisitor{DefaultVisitor{Expected: "a UUID"}})
	if err != nil {
		return UUID{}, err
	}
	return res.(UUID), nil
}

type uuidVisitor struct{ DefaultVisitor }

func (uuidVisitor) VisitBytes(b []byte) (interface{}, error) {
	if len(b) != 16 {
		return nil, InvalidLengthError{Length: len(b), Expected: "16 bytes"}
	}
	var u UUID
	copy(u[:], b)
	return u, nil
}
