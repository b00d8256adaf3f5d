// Copyright (c) 2024 The probemap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package probemap

import "github.com/cespare/xxhash/v2"

// String32 hashes s with Bob Jenkins' one-at-a-time algorithm. It is
// the hash NewString installs.
func String32(s string) uint32 {
	var h uint32
	for i := 0; i < len(s); i++ {
		h += uint32(s[i])
		h += h << 10
		h ^= h >> 6
	}
	h += h << 3
	h ^= h >> 11
	h += h << 15
	return h
}

// Bytes32 is String32 over a byte slice.
func Bytes32(b []byte) uint32 {
	var h uint32
	for i := 0; i < len(b); i++ {
		h += uint32(b[i])
		h += h << 10
		h ^= h >> 6
	}
	h += h << 3
	h ^= h >> 11
	h += h << 15
	return h
}

// XXString32 hashes s with xxhash64 folded to 32 bits. It distributes
// better than String32 on long or structured keys.
func XXString32(s string) uint32 {
	h := xxhash.Sum64String(s)
	return uint32(h ^ h>>32)
}

// XXBytes32 is XXString32 over a byte slice.
func XXBytes32(b []byte) uint32 {
	h := xxhash.Sum64(b)
	return uint32(h ^ h>>32)
}
