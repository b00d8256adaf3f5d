// Copyright (c) 2024 The probemap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package probemap_test

import (
	"fmt"

	"github.com/openaddr/probemap"
)

func ExampleMap_All() {
	m := probemap.NewString[string](16)
	m.Set("Avenue", "AVE")
	m.Set("Street", "ST")
	m.Set("Court", "CT")

	for k, v := range m.All() {
		fmt.Printf("The abbreviation for %q is %q\n", k, v)
	}
}

func ExampleMap_EachChecked() {
	m := probemap.NewString[int](16)
	m.Set("a", 1)
	m.Set("b", -2)
	m.Set("c", 3)

	err := m.EachChecked(func(elem int) error {
		if elem < 0 {
			return fmt.Errorf("negative elem: %d", elem)
		}
		return nil
	})
	if err != nil {
		fmt.Println("walk stopped:", err)
	}
}
