// Copyright (c) 2024 The probemap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package probemap provides the Map type, an open-addressed hash
// table with linear probing whose capacity only grows. Users provide
// an equal and hash function at construction; NewString covers the
// common string-keyed case with built-in functions.
//
// The following requirements are the user's responsibility to follow:
//   - equal(a, b) => hash(a) == hash(b)
//   - equal(a, a) must be true for all values of a. Be careful around
//     NaN float values.
//   - If a key or elem contains references -- such as pointers, maps,
//     or slices -- the Map stores the reference, never a copy of the
//     referenced data. Modifying referenced key data in a way that
//     affects the result of the equal or hash functions results in
//     undefined behavior.
//
// A Map is not safe for concurrent use without external
// synchronization, and mutating a Map during an in-progress Each,
// EachChecked, All or Values walk is undefined.
package probemap

// This file contains the table engine: slot layout, probing, growth
// and the lazily rebuilt key cache.
//
// The data is a single slice of slots. A key's home slot is
// hash(key) mod capacity; on collision the next slot (wrapping) is
// tried, and lookups search the same sequence. Capacity is any
// positive integer, not necessarily a power of two.
//
// Delete leaves a tombstone rather than a hole, so a lookup probing
// past a deleted entry keeps going and only a never-used slot ends a
// negative search early. Set reuses the first tombstone it passes.
// Tombstones are discarded when the table grows.
//
// When a probe cycle has no room left, the table doubles: a new slot
// array is fully built by rehashing every occupied slot in index
// order, and only then swapped in. A failure while rebuilding can
// therefore never leave the table partially rehashed.
//
// Keys serves a snapshot slice of the live keys. It is rebuilt
// lazily: any mutation flips the dirty flag, and the next Keys call
// rescans the slots. Two Keys calls with no mutation in between
// return the identical slice.

import "errors"

// defaultCapacity is the slot count used when the constructor's
// capacity hint is not positive.
const defaultCapacity = 16

var (
	// ErrEmpty is returned by read operations on a map holding no
	// entries.
	ErrEmpty = errors.New("probemap: map has no entries")
	// ErrNotFound is returned when the key is absent from a
	// non-empty map.
	ErrNotFound = errors.New("probemap: key not found")
)

type slotState uint8

const (
	// never used since the last growth or Clear
	slotEmpty slotState = iota
	// holds a live key/elem pair
	slotOccupied
	// held a pair that was deleted; probe sequences pass through
	slotTombstone
)

type slot[K, E any] struct {
	key   K
	elem  E
	state slotState
}

// Map implements a hashmap. The zero value is not usable; construct
// with New or NewString.
type Map[K, E any] struct {
	slots []slot[K, E]
	count int // # of occupied slots

	equal func(a, b K) bool
	hash  func(K) uint32

	// keys is the enumeration cache served by Keys. It is only
	// valid while dirty is false.
	keys  []K
	dirty bool
}

// New instantiates a Map with capacity for hint entries before the
// first growth. A hint <= 0 falls back to a small default. The equal
// func must return true for two values of K that are equal and false
// otherwise. The hash func should return uniformly distributed
// values; if equal(a, b) then hash(a) == hash(b) must hold.
func New[K, E any](hint int, equal func(a, b K) bool, hash func(K) uint32) *Map[K, E] {
	if equal == nil || hash == nil {
		panic("probemap: New called with nil equal or hash func")
	}
	if hint <= 0 {
		hint = defaultCapacity
	}
	return &Map[K, E]{
		slots: make([]slot[K, E], hint),
		equal: equal,
		hash:  hash,
		dirty: true,
	}
}

// NewString instantiates a string-keyed Map using == for equality and
// the one-at-a-time hash from String32.
func NewString[E any](hint int) *Map[string, E] {
	return New[string, E](hint, func(a, b string) bool { return a == b }, String32)
}

// Len returns the count of occupied entries in m.
func (m *Map[K, E]) Len() int {
	if m == nil {
		return 0
	}
	return m.count
}

// Cap returns m's current slot capacity. Capacity only grows for the
// lifetime of the map.
func (m *Map[K, E]) Cap() int {
	if m == nil {
		return 0
	}
	return len(m.slots)
}

// find locates key's occupied slot. Probing starts at the home slot
// and wraps for at most one full cycle. Tombstones are passed
// through; only a never-used slot proves the key absent before the
// cycle completes.
func (m *Map[K, E]) find(key K) (int, bool) {
	capacity := len(m.slots)
	i := int(m.hash(key) % uint32(capacity))
	for n := 0; n < capacity; n++ {
		s := &m.slots[i]
		switch s.state {
		case slotEmpty:
			return 0, false
		case slotOccupied:
			if m.equal(s.key, key) {
				return i, true
			}
		}
		i++
		if i == capacity {
			i = 0
		}
	}
	return 0, false
}

// probePut returns the slot index at which key should be stored in
// slots: the slot already holding key if present, otherwise the first
// tombstone passed on the way to a never-used slot, otherwise that
// never-used slot. ok is false when the full cycle offers no room.
func (m *Map[K, E]) probePut(slots []slot[K, E], key K) (int, bool) {
	capacity := len(slots)
	i := int(m.hash(key) % uint32(capacity))
	reuse := -1
	for n := 0; n < capacity; n++ {
		s := &slots[i]
		switch s.state {
		case slotEmpty:
			if reuse >= 0 {
				return reuse, true
			}
			return i, true
		case slotTombstone:
			if reuse < 0 {
				reuse = i
			}
		case slotOccupied:
			if m.equal(s.key, key) {
				return i, true
			}
		}
		i++
		if i == capacity {
			i = 0
		}
	}
	if reuse >= 0 {
		return reuse, true
	}
	return 0, false
}

// Set associates key with elem in m, overwriting in place if key is
// already present. Overwriting replaces the stored key as well as the
// elem. The caller never observes a full table: when the probe cycle
// has no room, the table grows and the insert is retried.
func (m *Map[K, E]) Set(key K, elem E) {
	if m == nil {
		// We have to panic here rather than initialize an
		// empty map because we need the user to pass in hash
		// and equal functions.
		panic("probemap: Set called on nil Map")
	}
	for {
		i, ok := m.probePut(m.slots, key)
		if !ok {
			m.grow()
			continue
		}
		s := &m.slots[i]
		if s.state != slotOccupied {
			m.count++
		}
		s.key = key
		s.elem = elem
		s.state = slotOccupied
		m.dirty = true
		return
	}
}

// Get returns the elem associated with key. It returns ErrEmpty when
// m holds no entries at all and ErrNotFound when key is absent from a
// non-empty map.
func (m *Map[K, E]) Get(key K) (E, error) {
	var zero E
	if m == nil || m.count == 0 {
		return zero, ErrEmpty
	}
	i, ok := m.find(key)
	if !ok {
		return zero, ErrNotFound
	}
	return m.slots[i].elem, nil
}

// Delete removes key from m and returns the elem it was associated
// with. ErrEmpty and ErrNotFound follow the same rules as Get. The
// vacated slot becomes a tombstone so probe sequences running through
// it stay intact until the next growth.
func (m *Map[K, E]) Delete(key K) (E, error) {
	var zero E
	if m == nil || m.count == 0 {
		return zero, ErrEmpty
	}
	i, ok := m.find(key)
	if !ok {
		return zero, ErrNotFound
	}
	s := &m.slots[i]
	elem := s.elem
	var zeroK K
	// Clear key and elem in case they hold pointers.
	s.key = zeroK
	s.elem = zero
	s.state = slotTombstone
	m.count--
	m.dirty = true
	return elem, nil
}

// Update sets key's elem to the result of calling update with the
// current elem, or with the zero value of E when key is absent.
func (m *Map[K, E]) Update(key K, update func(cur E) E) {
	if m == nil {
		panic("probemap: Update called on nil Map")
	}
	var cur E
	if m.count > 0 {
		if i, ok := m.find(key); ok {
			cur = m.slots[i].elem
		}
	}
	m.Set(key, update(cur))
}

// Keys returns every key currently in m, in ascending slot order (not
// insertion order), with length equal to Len. It returns ErrEmpty
// when m holds no entries.
//
// The returned slice is an internal cache rebuilt only after a
// mutation: two consecutive calls with no mutation in between return
// the identical slice. Callers must not modify it, and must call Keys
// again after mutating m to get a fresh view.
func (m *Map[K, E]) Keys() ([]K, error) {
	if m == nil || m.count == 0 {
		return nil, ErrEmpty
	}
	if m.dirty {
		m.keys = m.keys[:0]
		for i := range m.slots {
			if m.slots[i].state == slotOccupied {
				m.keys = append(m.keys, m.slots[i].key)
			}
		}
		m.dirty = false
	}
	return m.keys, nil
}

// Clear deletes all keys from m. Capacity is retained.
func (m *Map[K, E]) Clear() {
	if m == nil || m.count == 0 {
		return
	}
	for i := range m.slots {
		m.slots[i] = slot[K, E]{}
	}
	m.keys = nil
	m.count = 0
	m.dirty = true
}

// grow doubles capacity, rehashing every occupied slot in ascending
// index order into a fresh slot array. Tombstones are dropped. The
// new array is built completely before it replaces the old one, so a
// failure mid-rebuild cannot leave the table partially rehashed.
func (m *Map[K, E]) grow() {
	capacity := len(m.slots) * 2
rebuild:
	for {
		slots := make([]slot[K, E], capacity)
		for i := range m.slots {
			old := &m.slots[i]
			if old.state != slotOccupied {
				continue
			}
			j, ok := m.probePut(slots, old.key)
			if !ok {
				// Unreachable while count < capacity: a
				// fresh array with free slots always has
				// room on the probe cycle. Double again
				// rather than trust a corrupt count.
				capacity *= 2
				continue rebuild
			}
			slots[j] = slot[K, E]{key: old.key, elem: old.elem, state: slotOccupied}
		}
		m.slots = slots
		return
	}
}
