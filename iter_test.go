// Copyright (c) 2024 The probemap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package probemap

import (
	"errors"
	"maps"
	"testing"

	"golang.org/x/exp/slices"
)

func TestEachVisitsInSlotOrder(t *testing.T) {
	m := New[int, int](8, intEqual, identHash)
	for _, k := range []int{4, 0, 2, 6} {
		m.Set(k, k*10)
	}
	var got []int
	m.Each(func(elem int) error {
		got = append(got, elem)
		return nil
	})
	if expected := []int{0, 20, 40, 60}; !slices.Equal(got, expected) {
		t.Errorf("Got: %v Expected: %v", got, expected)
	}
}

func TestEachIgnoresVisitErrors(t *testing.T) {
	m := NewString[int](8)
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)
	visits := 0
	m.Each(func(int) error {
		visits++
		return errors.New("ignored")
	})
	if visits != m.Len() {
		t.Errorf("visited %d of %d", visits, m.Len())
	}
}

func TestEachChecked(t *testing.T) {
	m := New[int, int](8, intEqual, identHash)
	for i := 0; i < 5; i++ {
		m.Set(i, i)
	}

	t.Run("completes", func(t *testing.T) {
		visits := 0
		err := m.EachChecked(func(int) error {
			visits++
			return nil
		})
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if visits != 5 {
			t.Errorf("visited %d of 5", visits)
		}
	})

	t.Run("short-circuits", func(t *testing.T) {
		stop := errors.New("stop")
		visits := 0
		err := m.EachChecked(func(elem int) error {
			visits++
			if elem == 2 {
				return stop
			}
			return nil
		})
		if !errors.Is(err, stop) {
			t.Errorf("expected stop error, got %v", err)
		}
		// identHash puts elem i in slot i, so the walk ends on
		// the third visit.
		if visits != 3 {
			t.Errorf("visited %d, expected 3", visits)
		}
	})
}

func TestEachEmpty(t *testing.T) {
	m := NewString[int](4)
	called := false
	m.Each(func(int) error { called = true; return nil })
	if called {
		t.Error("visit called on empty map")
	}
	if err := m.EachChecked(func(int) error { return errors.New("x") }); err != nil {
		t.Errorf("EachChecked on empty map: %v", err)
	}
	var nilMap *Map[string, int]
	nilMap.Each(func(int) error { t.Error("visit called on nil map"); return nil })
}

func TestAll(t *testing.T) {
	m := NewString[string](16)
	exp := map[string]string{
		"Avenue": "AVE",
		"Street": "ST",
		"Court":  "CT",
	}
	for k, v := range exp {
		m.Set(k, v)
	}

	got := make(map[string]string)
	for k, v := range m.All() {
		got[k] = v
	}
	if !maps.Equal(exp, got) {
		t.Errorf("expected: %v got: %v", exp, got)
	}
}

func TestAllEarlyExit(t *testing.T) {
	m := New[int, int](8, intEqual, identHash)
	for i := 0; i < 5; i++ {
		m.Set(i, i)
	}
	seen := 0
	for range m.All() {
		seen++
		if seen == 2 {
			break
		}
	}
	if seen != 2 {
		t.Errorf("saw %d pairs after break", seen)
	}
}

func TestValues(t *testing.T) {
	m := NewString[string](16)
	m.Set("Avenue", "AVE")
	m.Set("Street", "ST")
	m.Set("Court", "CT")

	exp := map[string]struct{}{
		"AVE": {},
		"ST":  {},
		"CT":  {},
	}
	got := make(map[string]struct{})
	for v := range m.Values() {
		got[v] = struct{}{}
	}
	if !maps.Equal(exp, got) {
		t.Errorf("expected: %v got: %v", exp, got)
	}
}

func BenchmarkEach(b *testing.B) {
	m := NewString[int](0)
	m.Set("one", 1)
	m.Set("two", 2)
	m.Set("three", 3)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m.Each(func(int) error { return nil })
	}
}
