// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

// Package bson implements an ordered BSON value model, a zero-copy view over
// encoded BSON, and a pull-based visitor bridge for decoding BSON into
// arbitrary Go shapes.
//
// The Value type is a closed tagged union over the supported BSON types. A
// Document is a mutable ordered map of string keys to Values; ordering is part
// of the contract and is preserved through every operation, including the
// decode bridge.
//
// RawDocument, RawArray, and RawValue interpret an encoded buffer in place.
// Construction validates only the outer framing; elements are parsed lazily,
// one at a time. Raw values borrow from the underlying buffer and must not
// outlive it.
//
// The ValueDeserializer drives a Visitor over a single owned Value. Documents
// whose first key is one of the reserved extended JSON marker keys (for
// example "$numberLong") decode to the binary-only type the marker names
// rather than to an ordinary Document.
package bson
