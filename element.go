// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import "strconv"

// Element represents a BSON element, i.e. a key-value pair inside a document.
type Element struct {
	Key   string
	Value Value
}

// Equal compares e to e2 and returns true if they are equal.
func (e Element) Equal(e2 Element) bool {
	if e.Key != e2.Key {
		return false
	}
	return e.Value.Equal(e2.Value)
}

// String implements the fmt.Stringer interface.
func (e Element) String() string {
	return strconv.Quote(e.Key) + ": " + e.Value.String()
}
