// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"bytes"
	"fmt"
	"time"
)

// Binary represents a BSON binary value.
type Binary struct {
	Subtype byte
	Data    []byte
}

// Equal compares bp to bp2 and returns true if they are equal.
func (bp Binary) Equal(bp2 Binary) bool {
	if bp.Subtype != bp2.Subtype {
		return false
	}
	return bytes.Equal(bp.Data, bp2.Data)
}

func (bp Binary) String() string {
	return fmt.Sprintf(`Binary(subtype %d, %d bytes)`, bp.Subtype, len(bp.Data))
}

// Timestamp represents a BSON timestamp value.
type Timestamp struct {
	T uint32
	I uint32
}

// Equal compares tp to tp2 and returns true if they are equal.
func (tp Timestamp) Equal(tp2 Timestamp) bool {
	return tp.T == tp2.T && tp.I == tp2.I
}

func (tp Timestamp) String() string {
	return fmt.Sprintf(`Timestamp(%d, %d)`, tp.T, tp.I)
}

// DateTime represents a BSON datetime value as milliseconds since the Unix
// epoch.
type DateTime int64

// NewDateTimeFromTime creates a new DateTime from a time.Time, truncating to
// milliseconds.
func NewDateTimeFromTime(t time.Time) DateTime {
	return DateTime(t.Unix()*1000 + int64(t.Nanosecond()/1e6))
}

// Time returns the DateTime as a time.Time.
func (d DateTime) Time() time.Time {
	return time.Unix(int64(d)/1000, int64(d)%1000*1000000)
}

func (d DateTime) String() string {
	return fmt.Sprintf(`DateTime(%d)`, int64(d))
}
