// Copyright (C) MongoDB, Inc. 2017-present.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License. You may obtain
// a copy of the License at http://www.apache.org/licenses/LICENSE-2.0

package bson

import (
	"sort"
	"strings"
)

// Document is an ordered collection of BSON elements. Insertion order is
// preserved; duplicate keys are allowed, in which case key based lookups
// return the first match.
//
// A nil Document is usable as an empty document for read operations, but
// mutating methods return ErrNilDocument.
type Document struct {
	elems []Element
	index []uint32
}

// NewDocument creates a Document from the provided elements.
func NewDocument(elems ...Element) *Document {
	doc := &Document{
		elems: make([]Element, 0, len(elems)),
		index: make([]uint32, 0, len(elems)),
	}
	doc.Append(elems...)
	return doc
}

// Len returns the number of elements in the document.
func (d *Document) Len() int {
	if d == nil {
		return 0
	}
	return len(d.elems)
}

// Keys returns the keys of the document in insertion order.
func (d *Document) Keys() []string {
	if d == nil {
		return nil
	}
	keys := make([]string, 0, len(d.elems))
	for _, elem := range d.elems {
		keys = append(keys, elem.Key)
	}
	return keys
}

// Append adds the provided elements to the end of the document.
func (d *Document) Append(elems ...Element) *Document {
	if d == nil {
		panic(ErrNilDocument)
	}
	for _, elem := range elems {
		d.elems = append(d.elems, elem)
		i := sort.Search(len(d.index), func(i int) bool {
			return d.elems[d.index[i]].Key >= elem.Key
		})
		if i < len(d.index) {
			d.index = append(d.index[:i+1], d.index[i:]...)
			d.index[i] = uint32(len(d.elems) - 1)
		} else {
			d.index = append(d.index, uint32(len(d.elems)-1))
		}
	}
	return d
}

// Prepend adds the provided elements to the front of the document.
func (d *Document) Prepend(elems ...Element) *Document {
	if d == nil {
		panic(ErrNilDocument)
	}
	if len(elems) == 0 {
		return d
	}
	combined := make([]Element, 0, len(elems)+len(d.elems))
	combined = append(combined, elems...)
	combined = append(combined, d.elems...)
	d.elems = combined
	d.rebuildIndex()
	return d
}

// Set replaces the first element with the given key, or appends a new element
// if the key is not present.
func (d *Document) Set(elem Element) *Document {
	if d == nil {
		panic(ErrNilDocument)
	}
	idx, ok := d.findKey(elem.Key)
	if !ok {
		return d.Append(elem)
	}
	d.elems[d.index[idx]] = elem
	return d
}

// Delete removes the first element with the given key and returns it. The
// second return value is false if no element had that key.
func (d *Document) Delete(key string) (Element, bool) {
	if d == nil {
		return Element{}, false
	}
	idx, ok := d.findKey(key)
	if !ok {
		return Element{}, false
	}
	elemIdx := d.index[idx]
	elem := d.elems[elemIdx]
	d.elems = append(d.elems[:elemIdx], d.elems[elemIdx+1:]...)
	d.index = append(d.index[:idx], d.index[idx+1:]...)
	for i := range d.index {
		if d.index[i] > elemIdx {
			d.index[i]--
		}
	}
	return elem, true
}

// ElementAt returns the element at the given index. It panics if the index is
// out of bounds.
func (d *Document) ElementAt(index uint) Element {
	if d == nil || index >= uint(len(d.elems)) {
		panic(ErrOutOfBounds)
	}
	return d.elems[index]
}

// ElementAtOK is the same as ElementAt, but returns a boolean instead of
// panicking.
func (d *Document) ElementAtOK(index uint) (Element, bool) {
	if d == nil || index >= uint(len(d.elems)) {
		return Element{}, false
	}
	return d.elems[index], true
}

// Lookup returns the value of the first element with the given key, or the
// empty Value if the key is not present.
func (d *Document) Lookup(key string) Value {
	val, err := d.LookupErr(key)
	if err != nil {
		return Value{}
	}
	return val
}

// LookupErr returns the value of the first element with the given key.
func (d *Document) LookupErr(key string) (Value, error) {
	elem, err := d.LookupElementErr(key)
	if err != nil {
		return Value{}, err
	}
	return elem.Value, nil
}

// LookupElementErr returns the first element with the given key.
func (d *Document) LookupElementErr(key string) (Element, error) {
	if d == nil {
		return Element{}, ErrNilDocument
	}
	if key == "" {
		return Element{}, ErrEmptyKey
	}
	idx, ok := d.findKey(key)
	if !ok {
		return Element{}, ErrElementNotFound
	}
	return d.elems[d.index[idx]], nil
}

// Reset removes all elements from the document while keeping the underlying
// storage.
func (d *Document) Reset() {
	if d == nil {
		panic(ErrNilDocument)
	}
	d.elems = d.elems[:0]
	d.index = d.index[:0]
}

// Equal compares d to d2 and returns true if they hold the same elements in
// the same order.
func (d *Document) Equal(d2 *Document) bool {
	if d == nil && d2 == nil {
		return true
	}
	if d.Len() != d2.Len() {
		return false
	}
	for i := range d.elems {
		if !d.elems[i].Equal(d2.elems[i]) {
			return false
		}
	}
	return true
}

// Copy returns a shallow copy of the document. The elements themselves are
// shared with the original.
func (d *Document) Copy() *Document {
	if d == nil {
		return nil
	}
	doc := &Document{
		elems: make([]Element, len(d.elems)),
		index: make([]uint32, len(d.index)),
	}
	copy(doc.elems, d.elems)
	copy(doc.index, d.index)
	return doc
}

// String implements the fmt.Stringer interface.
func (d *Document) String() string {
	if d == nil {
		return "null"
	}
	var sb strings.Builder
	sb.WriteByte('{')
	for i, elem := range d.elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(elem.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

// take transfers the elements out of the document, leaving it empty. The map
// bridge uses this to hand each element to its consumer exactly once.
func (d *Document) take() []Element {
	if d == nil {
		return nil
	}
	elems := d.elems
	d.elems = nil
	d.index = nil
	return elems
}

// rebuildIndex recomputes the sorted key index from the element slice.
func (d *Document) rebuildIndex() {
	d.index = d.index[:0]
	for pos, elem := range d.elems {
		i := sort.Search(len(d.index), func(i int) bool {
			return d.elems[d.index[i]].Key >= elem.Key
		})
		if i < len(d.index) {
			d.index = append(d.index[:i+1], d.index[i:]...)
			d.index[i] = uint32(pos)
		} else {
			d.index = append(d.index, uint32(pos))
		}
	}
}

// findKey locates the position of key inside the sorted index. The returned
// position refers to the first index entry whose element has that key.
func (d *Document) findKey(key string) (int, bool) {
	if d == nil || len(d.index) == 0 {
		return 0, false
	}
	i := sort.Search(len(d.index), func(i int) bool {
		return d.elems[d.index[i]].Key >= key
	})
	if i >= len(d.index) || d.elems[d.index[i]].Key != key {
		return 0, false
	}
	// Duplicate keys keep insertion order in the index region, so prefer the
	// earliest element.
	best := i
	for j := i + 1; j < len(d.index) && d.elems[d.index[j]].Key == key; j++ {
		if d.index[j] < d.index[best] {
			best = j
		}
	}
	return best, true
}
