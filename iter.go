// Copyright (c) 2024 The probemap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package probemap

import "iter"

// Each applies visit to the elem of every occupied slot, in ascending
// slot order. Errors returned by visit are ignored and the walk
// always completes.
func (m *Map[K, E]) Each(visit func(elem E) error) {
	m.each(visit, false)
}

// EachChecked is Each except that the walk stops at the first visit
// call returning a non-nil error, which is returned. It returns nil
// when every visit succeeded or m holds no entries.
func (m *Map[K, E]) EachChecked(visit func(elem E) error) error {
	return m.each(visit, true)
}

// each is the single traversal both entry points share: a bounded
// pass over the live slot array.
func (m *Map[K, E]) each(visit func(elem E) error, checked bool) error {
	if m == nil || m.count == 0 {
		return nil
	}
	for i := range m.slots {
		if m.slots[i].state != slotOccupied {
			continue
		}
		if err := visit(m.slots[i].elem); checked && err != nil {
			return err
		}
	}
	return nil
}

// All returns an iterator over key-elem pairs from m, in ascending
// slot order.
func (m *Map[K, E]) All() iter.Seq2[K, E] {
	return func(yield func(K, E) bool) {
		if m == nil {
			return
		}
		for i := range m.slots {
			if m.slots[i].state != slotOccupied {
				continue
			}
			if !yield(m.slots[i].key, m.slots[i].elem) {
				return
			}
		}
	}
}

// Values returns an iterator over elems in m, in ascending slot
// order.
func (m *Map[K, E]) Values() iter.Seq[E] {
	return func(yield func(E) bool) {
		if m == nil {
			return
		}
		for i := range m.slots {
			if m.slots[i].state != slotOccupied {
				continue
			}
			if !yield(m.slots[i].elem) {
				return
			}
		}
	}
}
