// Package stablehash provides the deterministic 64-bit string hash used for
// synthetic analysis scores and cache sub-keys. The function is FNV-1a and
// must stay stable across releases; stored analyses and recorded tests
// depend on its exact values.
package stablehash

import "hash/fnv"

// Hash returns the FNV-1a 64-bit hash of s.
func Hash(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}
